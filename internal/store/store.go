// Package store holds the generic parallel-array storage behind the
// compressed-sparse backend (the fragmented-sparse backend keeps its own
// per-primary slices and does not use it). It is adapted from the
// teacher's blas.SparseMatrix (Indptr/Ind/Data), generalised over the value
// and index type parameters and split so that Pointers uses plain int (a
// stand-in for the wider storage-offset type spec §3 calls for) while
// Indices uses the caller-chosen index width.
package store

import "golang.org/x/exp/constraints"

// Value mirrors the root package's Value constraint; duplicated here to
// avoid an import cycle back into the root package.
type Value interface {
	~float64 | ~float32 |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Index mirrors the root package's Index constraint.
type Index interface {
	constraints.Integer
}

// Compressed is the common layout behind CSR and CSC: Pointers has length
// Primary+1 with Pointers[0] == 0 and Pointers[Primary] == len(Values);
// the slice [Pointers[p], Pointers[p+1]) addresses the non-zeros of primary
// element p. Within each primary slice, Indices is strictly increasing.
type Compressed[V Value, I Index] struct {
	Primary   int
	Secondary int
	Pointers  []int
	Indices   []I
	Values    []V
}

// NNZ returns the number of stored non-zero elements.
func (c *Compressed[V, I]) NNZ() int { return len(c.Values) }

// Slice returns the bounds [start, end) of primary element p's non-zeros.
func (c *Compressed[V, I]) Slice(p int) (start, end int) {
	return c.Pointers[p], c.Pointers[p+1]
}

// Validate checks the invariants spec §3 requires when a construction check
// flag is set: Pointers is non-decreasing and terminates at NNZ, indices
// are strictly increasing within each primary slice, and every index lies
// in [0, Secondary).
func (c *Compressed[V, I]) Validate() error {
	if len(c.Pointers) != c.Primary+1 {
		return errLen("pointers", c.Primary+1, len(c.Pointers))
	}
	if c.Pointers[0] != 0 {
		return errStart()
	}
	if c.Pointers[c.Primary] != len(c.Values) {
		return errEnd(c.Pointers[c.Primary], len(c.Values))
	}
	for p := 0; p < c.Primary; p++ {
		if c.Pointers[p] > c.Pointers[p+1] {
			return errNonDecreasing(p)
		}
		start, end := c.Slice(p)
		var prev I
		for k := start; k < end; k++ {
			idx := c.Indices[k]
			if idx < 0 || int(idx) >= c.Secondary {
				return errOutOfRange(p, int(idx), c.Secondary)
			}
			if k > start && idx <= prev {
				return errNotIncreasing(p)
			}
			prev = idx
		}
	}
	return nil
}

// LowerBound returns the first position in [lo, hi) whose Indices value is
// >= target, using a strict < comparator throughout to avoid surprises when
// comparing differently-signed/widthed index types (spec §4.6).
func (c *Compressed[V, I]) LowerBound(lo, hi int, target I) int {
	for lo < hi {
		mid := lo + (hi-lo)/2
		if c.Indices[mid] < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// UpperBound returns the first position in [lo, hi) whose Indices value is
// > target.
func (c *Compressed[V, I]) UpperBound(lo, hi int, target I) int {
	for lo < hi {
		mid := lo + (hi-lo)/2
		if target < c.Indices[mid] {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}
