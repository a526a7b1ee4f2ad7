// Package reduce implements the out-of-core consumer kernels layered on
// top of the matrix interface: row/column sums, ranges, NaN and zero
// counts, and grouped medians (grounded on tatami's stats/ headers). Every
// kernel here walks the rows or columns in a straight loop, building a
// full-extent extractor for each one; none of it is part of the core access
// layer.
package reduce

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	sparse "github.com/jbowman-labs/tatami"
)

// RowSums returns the sum of every row of m.
func RowSums[V sparse.Value, I sparse.Index](m sparse.Matrix[V, I]) []float64 {
	return dimSums[V, I](m, true)
}

// ColSums returns the sum of every column of m.
func ColSums[V sparse.Value, I sparse.Index](m sparse.Matrix[V, I]) []float64 {
	return dimSums[V, I](m, false)
}

func dimSums[V sparse.Value, I sparse.Index](m sparse.Matrix[V, I], row bool) []float64 {
	dim, other := dims(m, row)
	out := make([]float64, dim)
	if other == 0 {
		return out
	}
	opts := sparse.DefaultOptions[I]()
	for i := 0; i < dim; i++ {
		if m.IsSparse() {
			vbuf := make([]V, other)
			ibuf := make([]I, other)
			r := sparseFetch[V, I](m, row, I(i), vbuf, ibuf, opts)
			out[i] = sumValues(r.Value[:r.Number])
		} else {
			buf := make([]V, other)
			r := denseFetch[V, I](m, row, I(i), buf, opts)
			out[i] = sumValues(r)
		}
	}
	return out
}

func sumValues[V sparse.Value](vs []V) float64 {
	fs := make([]float64, len(vs))
	for k, v := range vs {
		fs[k] = float64(v)
	}
	return floats.Sum(fs)
}

// RangeResult holds the minimum and maximum of a row or column. Min/Max are
// zero when the row or column has no stored entries and the matrix is
// sparse, matching the "leave min/max as the structural zero" behaviour of
// the source material.
type RangeResult struct {
	Min, Max float64
}

// RowRanges returns the (min, max) pair of every row of m.
func RowRanges[V sparse.Value, I sparse.Index](m sparse.Matrix[V, I]) []RangeResult {
	return dimRanges[V, I](m, true)
}

// ColRanges returns the (min, max) pair of every column of m.
func ColRanges[V sparse.Value, I sparse.Index](m sparse.Matrix[V, I]) []RangeResult {
	return dimRanges[V, I](m, false)
}

func dimRanges[V sparse.Value, I sparse.Index](m sparse.Matrix[V, I], row bool) []RangeResult {
	dim, other := dims(m, row)
	out := make([]RangeResult, dim)
	if other == 0 {
		return out
	}
	opts := sparse.DefaultOptions[I]()
	for i := 0; i < dim; i++ {
		if m.IsSparse() {
			vbuf := make([]V, other)
			ibuf := make([]I, other)
			r := sparseFetch[V, I](m, row, I(i), vbuf, ibuf, opts)
			if r.Number == 0 {
				continue
			}
			mn, mx := float64(r.Value[0]), float64(r.Value[0])
			for _, v := range r.Value[:r.Number] {
				f := float64(v)
				if f < mn {
					mn = f
				}
				if f > mx {
					mx = f
				}
			}
			if r.Number < other {
				if mn > 0 {
					mn = 0
				}
				if mx < 0 {
					mx = 0
				}
			}
			out[i] = RangeResult{Min: mn, Max: mx}
		} else {
			buf := make([]V, other)
			r := denseFetch[V, I](m, row, I(i), buf, opts)
			mn, mx := float64(r[0]), float64(r[0])
			for _, v := range r[1:] {
				f := float64(v)
				if f < mn {
					mn = f
				}
				if f > mx {
					mx = f
				}
			}
			out[i] = RangeResult{Min: mn, Max: mx}
		}
	}
	return out
}

// RowNaNCounts counts, per row, the number of IEEE-754 NaN entries.
func RowNaNCounts[V sparse.Value, I sparse.Index](m sparse.Matrix[V, I]) []int {
	return dimCounts[V, I](m, true, math.IsNaN)
}

// ColNaNCounts counts, per column, the number of IEEE-754 NaN entries.
func ColNaNCounts[V sparse.Value, I sparse.Index](m sparse.Matrix[V, I]) []int {
	return dimCounts[V, I](m, false, math.IsNaN)
}

// RowZeroCounts counts, per row, the number of zero entries - structural
// and explicit alike.
func RowZeroCounts[V sparse.Value, I sparse.Index](m sparse.Matrix[V, I]) []int {
	dim, other := dims(m, true)
	out := make([]int, dim)
	nz := dimNonZeroCounts[V, I](m, true)
	for i := range out {
		out[i] = other - nz[i]
	}
	return out
}

// ColZeroCounts counts, per column, the number of zero entries.
func ColZeroCounts[V sparse.Value, I sparse.Index](m sparse.Matrix[V, I]) []int {
	dim, other := dims(m, false)
	out := make([]int, dim)
	nz := dimNonZeroCounts[V, I](m, false)
	for i := range out {
		out[i] = other - nz[i]
	}
	return out
}

func dimNonZeroCounts[V sparse.Value, I sparse.Index](m sparse.Matrix[V, I], row bool) []int {
	dim, other := dims(m, row)
	out := make([]int, dim)
	if other == 0 {
		return out
	}
	opts := sparse.DefaultOptions[I]()
	opts.ExtractIndex = false
	for i := 0; i < dim; i++ {
		if m.IsSparse() {
			vbuf := make([]V, other)
			ibuf := make([]I, other)
			r := sparseFetch[V, I](m, row, I(i), vbuf, ibuf, opts)
			n := 0
			for _, v := range r.Value[:r.Number] {
				if v != 0 {
					n++
				}
			}
			out[i] = n
		} else {
			buf := make([]V, other)
			r := denseFetch[V, I](m, row, I(i), buf, sparse.DefaultOptions[I]())
			n := 0
			for _, v := range r {
				if v != 0 {
					n++
				}
			}
			out[i] = n
		}
	}
	return out
}

func dimCounts[V sparse.Value, I sparse.Index](m sparse.Matrix[V, I], row bool, pred func(float64) bool) []int {
	dim, other := dims(m, row)
	out := make([]int, dim)
	if other == 0 {
		return out
	}
	opts := sparse.DefaultOptions[I]()
	for i := 0; i < dim; i++ {
		buf := make([]V, other)
		r := denseFetch[V, I](m, row, I(i), buf, opts)
		n := 0
		for _, v := range r {
			if pred(float64(v)) {
				n++
			}
		}
		out[i] = n
	}
	return out
}

// GroupedMedians computes, for every row of m, the median of that row's
// values restricted to each group of columns (grounded on
// stats/grouped_medians.hpp). groups[j] gives the group index of column j,
// in [0, numGroups). Structural zeros count toward each group's size even
// though they are never materialised when the matrix is sparse.
func GroupedMedians[V sparse.Value, I sparse.Index](m sparse.Matrix[V, I], groups []int, numGroups int) [][]float64 {
	nrow := int(m.NRow())
	ncol := int(m.NCol())
	groupSize := make([]int, numGroups)
	for _, g := range groups {
		groupSize[g]++
	}

	out := make([][]float64, nrow)
	opts := sparse.DefaultOptions[I]()
	for i := 0; i < nrow; i++ {
		workspace := make([][]float64, numGroups)
		for g := range workspace {
			workspace[g] = make([]float64, 0, groupSize[g])
		}
		if m.IsSparse() {
			vbuf := make([]V, ncol)
			ibuf := make([]I, ncol)
			r := sparseFetch[V, I](m, true, I(i), vbuf, ibuf, opts)
			for k := 0; k < r.Number; k++ {
				g := groups[int(r.Index[k])]
				workspace[g] = append(workspace[g], float64(r.Value[k]))
			}
		} else {
			buf := make([]V, ncol)
			r := denseFetch[V, I](m, true, I(i), buf, opts)
			for j, v := range r {
				g := groups[j]
				workspace[g] = append(workspace[g], float64(v))
			}
		}
		row := make([]float64, numGroups)
		for g, w := range workspace {
			row[g] = median(w, groupSize[g])
		}
		out[i] = row
	}
	return out
}

// median pads w with implicit zeros up to total, then returns the 0.5
// quantile via gonum/stat, matching compute_median's zero-padding for
// sparse rows (stats/medians.hpp).
func median(w []float64, total int) float64 {
	if total == 0 {
		return math.NaN()
	}
	padded := make([]float64, total)
	copy(padded, w)
	sort.Float64s(padded)
	return stat.Quantile(0.5, stat.Empirical, padded, nil)
}

func dims[V sparse.Value, I sparse.Index](m sparse.Matrix[V, I], row bool) (dim, other int) {
	if row {
		return int(m.NRow()), int(m.NCol())
	}
	return int(m.NCol()), int(m.NRow())
}

func denseFetch[V sparse.Value, I sparse.Index](m sparse.Matrix[V, I], row bool, i I, buf []V, opts sparse.Options[I]) []V {
	if row {
		return m.DenseRowFull(opts).Fetch(i, buf)
	}
	return m.DenseColumnFull(opts).Fetch(i, buf)
}

func sparseFetch[V sparse.Value, I sparse.Index](m sparse.Matrix[V, I], row bool, i I, vbuf []V, ibuf []I, opts sparse.Options[I]) sparse.Range[V, I] {
	if row {
		return m.SparseRowFull(opts).Fetch(i, vbuf, ibuf)
	}
	return m.SparseColumnFull(opts).Fetch(i, vbuf, ibuf)
}
