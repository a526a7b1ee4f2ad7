package sparse

import (
	"github.com/jbowman-labs/tatami/internal/store"
	"gonum.org/v1/gonum/mat"
)

// compressedSparse is the shared structure behind CSR and CSC (spec §4.4),
// generalised from the teacher's compressedSparse/blas.SparseMatrix to be
// generic over the value and index types and to know which dimension is
// primary.
type compressedSparse[V Value, I Index] struct {
	nrow, ncol int
	rowMajor   bool
	raw        store.Compressed[V, I]
}

func newCompressedSparse[V Value, I Index](nrow, ncol int, rowMajor bool, pointers []int, indices []I, values []V, check bool) (compressedSparse[V, I], error) {
	primary, secondary := nrow, ncol
	if !rowMajor {
		primary, secondary = ncol, nrow
	}
	c := compressedSparse[V, I]{
		nrow: nrow, ncol: ncol, rowMajor: rowMajor,
		raw: store.Compressed[V, I]{
			Primary: primary, Secondary: secondary,
			Pointers: pointers, Indices: indices, Values: values,
		},
	}
	if check {
		if err := c.raw.Validate(); err != nil {
			return c, err
		}
	}
	return c, nil
}

// NNZ returns the number of stored non-zero elements.
func (c *compressedSparse[V, I]) NNZ() int { return c.raw.NNZ() }

// at returns the element located at (primary, secondary) via a primary
// slice scan, mirroring the teacher's compressedSparse.at.
func (c *compressedSparse[V, I]) at(primary, secondary int) V {
	start, end := c.raw.Slice(primary)
	for k := start; k < end; k++ {
		if int(c.raw.Indices[k]) == secondary {
			return c.raw.Values[k]
		}
	}
	var zero V
	return zero
}

func (c *compressedSparse[V, I]) isPrimary(rowFlag bool) bool {
	return rowFlag == c.rowMajor
}

// CSR is a Compressed Sparse Row matrix (spec §4.4): rows are the primary
// dimension. CSR is efficient for row-direction access and arithmetic but
// poor for incremental construction; build one via NewCSR or NewCSRFromTriplets.
type CSR[V Value, I Index] struct {
	compressedSparse[V, I]
}

// NewCSR builds a CSR matrix over nrow x ncol, with pointers of length
// nrow+1, column indices ind, and values data. The slices back the matrix
// directly; mutating them after construction is undefined. If check is
// true, the storage invariants of spec §3 are validated and a non-nil error
// is returned on violation.
func NewCSR[V Value, I Index](nrow, ncol int, pointers []int, ind []I, data []V, check bool) (*CSR[V, I], error) {
	cs, err := newCompressedSparse[V, I](nrow, ncol, true, pointers, ind, data, check)
	if err != nil {
		return nil, err
	}
	return &CSR[V, I]{compressedSparse: cs}, nil
}

func (c *CSR[V, I]) NRow() I { return I(c.nrow) }
func (c *CSR[V, I]) NCol() I { return I(c.ncol) }

func (c *CSR[V, I]) IsSparse() bool                { return true }
func (c *CSR[V, I]) SparseProportion() float64     { return 1 }
func (c *CSR[V, I]) PreferRows() bool              { return true }
func (c *CSR[V, I]) PreferRowsProportion() float64 { return 1 }
func (c *CSR[V, I]) UsesOracle(bool) bool          { return false }

// mat.Matrix compliance, matching the teacher's own CSR/CSC.
func (c *CSR[V, I]) Dims() (int, int) { return c.nrow, c.ncol }
func (c *CSR[V, I]) At(i, j int) float64 {
	checkRow(i, c.nrow)
	checkCol(j, c.ncol)
	return float64(c.at(i, j))
}
func (c *CSR[V, I]) T() mat.Matrix {
	return &CSC[V, I]{compressedSparse: compressedSparse[V, I]{
		nrow: c.ncol, ncol: c.nrow, rowMajor: false, raw: c.raw,
	}}
}

func (c *CSR[V, I]) DenseRowFull(opts Options[I]) DenseExtractor[V, I] {
	return newCompressedDenseExtractor[V, I](&c.compressedSparse, true, fullSelection(c.ncol), opts)
}
func (c *CSR[V, I]) DenseRowBlock(start, length I, opts Options[I]) DenseExtractor[V, I] {
	return newCompressedDenseExtractor[V, I](&c.compressedSparse, true, blockSelection[I](int(start), int(length)), opts)
}
func (c *CSR[V, I]) DenseRowIndex(idx []I, opts Options[I]) DenseExtractor[V, I] {
	return newCompressedDenseExtractor[V, I](&c.compressedSparse, true, indexSelection(idx), opts)
}
func (c *CSR[V, I]) DenseColumnFull(opts Options[I]) DenseExtractor[V, I] {
	return newCompressedDenseExtractor[V, I](&c.compressedSparse, false, fullSelection(c.nrow), opts)
}
func (c *CSR[V, I]) DenseColumnBlock(start, length I, opts Options[I]) DenseExtractor[V, I] {
	return newCompressedDenseExtractor[V, I](&c.compressedSparse, false, blockSelection[I](int(start), int(length)), opts)
}
func (c *CSR[V, I]) DenseColumnIndex(idx []I, opts Options[I]) DenseExtractor[V, I] {
	return newCompressedDenseExtractor[V, I](&c.compressedSparse, false, indexSelection(idx), opts)
}

func (c *CSR[V, I]) SparseRowFull(opts Options[I]) SparseExtractor[V, I] {
	return newCompressedSparseExtractor[V, I](&c.compressedSparse, true, fullSelection(c.ncol), opts)
}
func (c *CSR[V, I]) SparseRowBlock(start, length I, opts Options[I]) SparseExtractor[V, I] {
	return newCompressedSparseExtractor[V, I](&c.compressedSparse, true, blockSelection[I](int(start), int(length)), opts)
}
func (c *CSR[V, I]) SparseRowIndex(idx []I, opts Options[I]) SparseExtractor[V, I] {
	return newCompressedSparseExtractor[V, I](&c.compressedSparse, true, indexSelection(idx), opts)
}
func (c *CSR[V, I]) SparseColumnFull(opts Options[I]) SparseExtractor[V, I] {
	return newCompressedSparseExtractor[V, I](&c.compressedSparse, false, fullSelection(c.nrow), opts)
}
func (c *CSR[V, I]) SparseColumnBlock(start, length I, opts Options[I]) SparseExtractor[V, I] {
	return newCompressedSparseExtractor[V, I](&c.compressedSparse, false, blockSelection[I](int(start), int(length)), opts)
}
func (c *CSR[V, I]) SparseColumnIndex(idx []I, opts Options[I]) SparseExtractor[V, I] {
	return newCompressedSparseExtractor[V, I](&c.compressedSparse, false, indexSelection(idx), opts)
}

// CSC is a Compressed Sparse Column matrix (spec §4.4): columns are the
// primary dimension. It is the transpose-equivalent of CSR, sharing the
// same underlying storage layout but with rows and columns swapped.
type CSC[V Value, I Index] struct {
	compressedSparse[V, I]
}

// NewCSC builds a CSC matrix over nrow x ncol, with pointers of length
// ncol+1 and row indices ind.
func NewCSC[V Value, I Index](nrow, ncol int, pointers []int, ind []I, data []V, check bool) (*CSC[V, I], error) {
	cs, err := newCompressedSparse[V, I](nrow, ncol, false, pointers, ind, data, check)
	if err != nil {
		return nil, err
	}
	return &CSC[V, I]{compressedSparse: cs}, nil
}

func (c *CSC[V, I]) NRow() I { return I(c.nrow) }
func (c *CSC[V, I]) NCol() I { return I(c.ncol) }

func (c *CSC[V, I]) IsSparse() bool                { return true }
func (c *CSC[V, I]) SparseProportion() float64     { return 1 }
func (c *CSC[V, I]) PreferRows() bool              { return false }
func (c *CSC[V, I]) PreferRowsProportion() float64 { return 0 }
func (c *CSC[V, I]) UsesOracle(bool) bool          { return false }

func (c *CSC[V, I]) Dims() (int, int) { return c.nrow, c.ncol }
func (c *CSC[V, I]) At(i, j int) float64 {
	checkRow(i, c.nrow)
	checkCol(j, c.ncol)
	return float64(c.at(j, i))
}
func (c *CSC[V, I]) T() mat.Matrix {
	return &CSR[V, I]{compressedSparse: compressedSparse[V, I]{
		nrow: c.ncol, ncol: c.nrow, rowMajor: true, raw: c.raw,
	}}
}

func (c *CSC[V, I]) DenseRowFull(opts Options[I]) DenseExtractor[V, I] {
	return newCompressedDenseExtractor[V, I](&c.compressedSparse, true, fullSelection(c.ncol), opts)
}
func (c *CSC[V, I]) DenseRowBlock(start, length I, opts Options[I]) DenseExtractor[V, I] {
	return newCompressedDenseExtractor[V, I](&c.compressedSparse, true, blockSelection[I](int(start), int(length)), opts)
}
func (c *CSC[V, I]) DenseRowIndex(idx []I, opts Options[I]) DenseExtractor[V, I] {
	return newCompressedDenseExtractor[V, I](&c.compressedSparse, true, indexSelection(idx), opts)
}
func (c *CSC[V, I]) DenseColumnFull(opts Options[I]) DenseExtractor[V, I] {
	return newCompressedDenseExtractor[V, I](&c.compressedSparse, false, fullSelection(c.nrow), opts)
}
func (c *CSC[V, I]) DenseColumnBlock(start, length I, opts Options[I]) DenseExtractor[V, I] {
	return newCompressedDenseExtractor[V, I](&c.compressedSparse, false, blockSelection[I](int(start), int(length)), opts)
}
func (c *CSC[V, I]) DenseColumnIndex(idx []I, opts Options[I]) DenseExtractor[V, I] {
	return newCompressedDenseExtractor[V, I](&c.compressedSparse, false, indexSelection(idx), opts)
}

func (c *CSC[V, I]) SparseRowFull(opts Options[I]) SparseExtractor[V, I] {
	return newCompressedSparseExtractor[V, I](&c.compressedSparse, true, fullSelection(c.ncol), opts)
}
func (c *CSC[V, I]) SparseRowBlock(start, length I, opts Options[I]) SparseExtractor[V, I] {
	return newCompressedSparseExtractor[V, I](&c.compressedSparse, true, blockSelection[I](int(start), int(length)), opts)
}
func (c *CSC[V, I]) SparseRowIndex(idx []I, opts Options[I]) SparseExtractor[V, I] {
	return newCompressedSparseExtractor[V, I](&c.compressedSparse, true, indexSelection(idx), opts)
}
func (c *CSC[V, I]) SparseColumnFull(opts Options[I]) SparseExtractor[V, I] {
	return newCompressedSparseExtractor[V, I](&c.compressedSparse, false, fullSelection(c.nrow), opts)
}
func (c *CSC[V, I]) SparseColumnBlock(start, length I, opts Options[I]) SparseExtractor[V, I] {
	return newCompressedSparseExtractor[V, I](&c.compressedSparse, false, blockSelection[I](int(start), int(length)), opts)
}
func (c *CSC[V, I]) SparseColumnIndex(idx []I, opts Options[I]) SparseExtractor[V, I] {
	return newCompressedSparseExtractor[V, I](&c.compressedSparse, false, indexSelection(idx), opts)
}

// --- selection shapes ---------------------------------------------------

type selectionKind int

const (
	selFull selectionKind = iota
	selBlock
	selIndex
)

// selection describes the along-dimension restriction requested of an
// extractor: the full secondary/along length, a contiguous block, or an
// arbitrary (sorted, unique) index list.
type selection[I Index] struct {
	kind   selectionKind
	length int
	start  int
	idx    []I
}

func fullSelection[I Index](length int) selection[I] { return selection[I]{kind: selFull, length: length} }
func blockSelection[I Index](start, length int) selection[I] {
	return selection[I]{kind: selBlock, start: start, length: length}
}
func indexSelection[I Index](idx []I) selection[I] {
	return selection[I]{kind: selIndex, idx: idx, length: len(idx)}
}

func (s selection[I]) at(p int) I {
	switch s.kind {
	case selIndex:
		return s.idx[p]
	default:
		return I(s.start + p)
	}
}

// oracleCursor implements the FetchNext half of an extractor generically:
// when an Oracle is attached, it simply forwards to Fetch with the next
// index the oracle promises - core backends never use the oracle to
// prefetch (spec §4.2: "Core backends ignore it").
type oracleCursor[I Index] struct {
	oracle Oracle[I]
	next   int
}

func (o *oracleCursor[I]) nextIndex() I {
	i := o.oracle.Get(o.next)
	o.next++
	return i
}

// --- primary-direction extraction (spec §4.4.1) -------------------------

func newCompressedDenseExtractor[V Value, I Index](m *compressedSparse[V, I], row bool, sel selection[I], opts Options[I]) DenseExtractor[V, I] {
	if m.isPrimary(row) {
		return &primaryDense[V, I]{m: m, sel: sel, oracleCursor: oracleCursor[I]{oracle: opts.Oracle}}
	}
	return newSecondaryDenseExtractor[V, I](m, sel, opts)
}

func newCompressedSparseExtractor[V Value, I Index](m *compressedSparse[V, I], row bool, sel selection[I], opts Options[I]) SparseExtractor[V, I] {
	if m.isPrimary(row) {
		return &primarySparse[V, I]{m: m, sel: sel, opts: opts, oracleCursor: oracleCursor[I]{oracle: opts.Oracle}}
	}
	return newSecondaryExtractor[V, I](m, sel, opts)
}

type primaryDense[V Value, I Index] struct {
	m   *compressedSparse[V, I]
	sel selection[I]
	oracleCursor[I]
}

func (e *primaryDense[V, I]) Fetch(i I, buffer []V) []V {
	start, end := e.m.raw.Slice(int(i))
	out := buffer[:e.sel.length]
	for k := range out {
		out[k] = 0
	}
	switch e.sel.kind {
	case selFull:
		for k := start; k < end; k++ {
			out[e.m.raw.Indices[k]] = e.m.raw.Values[k]
		}
	case selBlock:
		lo := e.m.raw.LowerBound(start, end, I(e.sel.start))
		hi := e.m.raw.LowerBound(lo, end, I(e.sel.start+e.sel.length))
		for k := lo; k < hi; k++ {
			out[int(e.m.raw.Indices[k])-e.sel.start] = e.m.raw.Values[k]
		}
	case selIndex:
		k := start
		for p, want := range e.sel.idx {
			for k < end && e.m.raw.Indices[k] < want {
				k++
			}
			if k < end && e.m.raw.Indices[k] == want {
				out[p] = e.m.raw.Values[k]
			}
		}
	}
	return out
}

func (e *primaryDense[V, I]) FetchNext(buffer []V) (I, []V) {
	i := e.nextIndex()
	return i, e.Fetch(i, buffer)
}

type primarySparse[V Value, I Index] struct {
	m    *compressedSparse[V, I]
	sel  selection[I]
	opts Options[I]
	oracleCursor[I]
}

func (e *primarySparse[V, I]) Fetch(i I, vbuffer []V, ibuffer []I) Range[V, I] {
	start, end := e.m.raw.Slice(int(i))
	switch e.sel.kind {
	case selFull:
		return sliceRange[V, I](e.m, start, end, vbuffer, ibuffer, 0, e.opts)
	case selBlock:
		lo := e.m.raw.LowerBound(start, end, I(e.sel.start))
		hi := e.m.raw.LowerBound(lo, end, I(e.sel.start+e.sel.length))
		return sliceRange[V, I](e.m, lo, hi, vbuffer, ibuffer, e.sel.start, e.opts)
	default:
		return indexRange[V, I](e.m, start, end, e.sel.idx, vbuffer, ibuffer, e.opts)
	}
}

func (e *primarySparse[V, I]) FetchNext(vbuffer []V, ibuffer []I) (I, Range[V, I]) {
	i := e.nextIndex()
	return i, e.Fetch(i, vbuffer, ibuffer)
}

// sliceRange returns the slice [start,end) directly, possibly by pointer
// into backing storage when the caller's buffer is nil (zero copy), per
// spec §4.4.1 "Full sparse".
func sliceRange[V Value, I Index](m *compressedSparse[V, I], start, end int, vbuffer []V, ibuffer []I, subtract int, opts Options[I]) Range[V, I] {
	n := end - start
	var vout []V
	var iout []I
	if opts.ExtractValue {
		if subtract == 0 && vbuffer == nil {
			vout = m.raw.Values[start:end]
		} else {
			vout = vbuffer[:n]
			copy(vout, m.raw.Values[start:end])
		}
	}
	if opts.ExtractIndex {
		if subtract == 0 && ibuffer == nil {
			iout = m.raw.Indices[start:end]
		} else {
			iout = ibuffer[:n]
			for k := 0; k < n; k++ {
				iout[k] = m.raw.Indices[start+k] - I(subtract)
			}
		}
	}
	return Range[V, I]{Number: n, Value: vout, Index: iout}
}

// indexRange walks the primary slice and the sorted, unique requested index
// list in lockstep, emitting matches (spec §4.4.1 "Indexed sparse").
func indexRange[V Value, I Index](m *compressedSparse[V, I], start, end int, idx []I, vbuffer []V, ibuffer []I, opts Options[I]) Range[V, I] {
	var vout []V
	var iout []I
	count := 0
	k, q := start, 0
	for k < end && q < len(idx) {
		sv := m.raw.Indices[k]
		qv := idx[q]
		switch {
		case sv < qv:
			k++
		case sv > qv:
			q++
		default:
			if opts.ExtractValue {
				vbuffer[count] = m.raw.Values[k]
			}
			if opts.ExtractIndex {
				ibuffer[count] = I(q)
			}
			count++
			k++
			q++
		}
	}
	if opts.ExtractValue {
		vout = vbuffer[:count]
	}
	if opts.ExtractIndex {
		iout = ibuffer[:count]
	}
	return Range[V, I]{Number: count, Value: vout, Index: iout}
}
