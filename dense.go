package sparse

import "gonum.org/v1/gonum/mat"

// denseMatrix is the shared structure behind DenseRowMajor and
// DenseColMajor (spec §6): a single flat backing array addressed either
// row-major or column-major, serving as the concrete leaf most delayed
// wrappers in this package are tested against.
type denseMatrix[V Value, I Index] struct {
	nrow, ncol int
	rowMajor   bool
	data       []V
}

func newDenseMatrix[V Value, I Index](nrow, ncol int, rowMajor bool, data []V) denseMatrix[V, I] {
	return denseMatrix[V, I]{nrow: nrow, ncol: ncol, rowMajor: rowMajor, data: data}
}

func (d *denseMatrix[V, I]) primaryLen() int {
	if d.rowMajor {
		return d.nrow
	}
	return d.ncol
}

func (d *denseMatrix[V, I]) secondaryLen() int {
	if d.rowMajor {
		return d.ncol
	}
	return d.nrow
}

func (d *denseMatrix[V, I]) isPrimary(rowFlag bool) bool { return rowFlag == d.rowMajor }

func (d *denseMatrix[V, I]) primarySlice(p int) []V {
	n := d.secondaryLen()
	return d.data[p*n : p*n+n]
}

func (d *denseMatrix[V, I]) at(primary, secondary int) V {
	return d.primarySlice(primary)[secondary]
}

// NNZ counts stored non-zero values by a full scan, matching the teacher's
// own dense.NNZ for its equivalent Dense type.
func (d *denseMatrix[V, I]) NNZ() int {
	n := 0
	var zero V
	for _, v := range d.data {
		if v != zero {
			n++
		}
	}
	return n
}

// DenseRowMajor stores a dense matrix as nrow*ncol values in row-major
// order (spec §6, an external collaborator that most delayed wrappers are
// exercised against in tests).
type DenseRowMajor[V Value, I Index] struct {
	denseMatrix[V, I]
}

// NewDenseRowMajor wraps data (length nrow*ncol, row-major) as a Matrix.
// The slice backs the matrix directly.
func NewDenseRowMajor[V Value, I Index](nrow, ncol int, data []V) *DenseRowMajor[V, I] {
	return &DenseRowMajor[V, I]{denseMatrix: newDenseMatrix[V, I](nrow, ncol, true, data)}
}

func (d *DenseRowMajor[V, I]) NRow() I { return I(d.nrow) }
func (d *DenseRowMajor[V, I]) NCol() I { return I(d.ncol) }

func (d *DenseRowMajor[V, I]) IsSparse() bool            { return false }
func (d *DenseRowMajor[V, I]) SparseProportion() float64 { return 0 }
func (d *DenseRowMajor[V, I]) PreferRows() bool              { return true }
func (d *DenseRowMajor[V, I]) PreferRowsProportion() float64 { return 1 }
func (d *DenseRowMajor[V, I]) UsesOracle(bool) bool          { return false }

func (d *DenseRowMajor[V, I]) Dims() (int, int) { return d.nrow, d.ncol }
func (d *DenseRowMajor[V, I]) At(i, j int) float64 {
	checkRow(i, d.nrow)
	checkCol(j, d.ncol)
	return float64(d.at(i, j))
}
func (d *DenseRowMajor[V, I]) T() mat.Matrix {
	return &DenseColMajor[V, I]{denseMatrix: denseMatrix[V, I]{
		nrow: d.ncol, ncol: d.nrow, rowMajor: false, data: d.data,
	}}
}

func (d *DenseRowMajor[V, I]) DenseRowFull(opts Options[I]) DenseExtractor[V, I] {
	return newDensePrimaryExtractor[V, I](&d.denseMatrix, true, fullSelection(d.ncol), opts)
}
func (d *DenseRowMajor[V, I]) DenseRowBlock(start, length I, opts Options[I]) DenseExtractor[V, I] {
	return newDensePrimaryExtractor[V, I](&d.denseMatrix, true, blockSelection[I](int(start), int(length)), opts)
}
func (d *DenseRowMajor[V, I]) DenseRowIndex(idx []I, opts Options[I]) DenseExtractor[V, I] {
	return newDensePrimaryExtractor[V, I](&d.denseMatrix, true, indexSelection(idx), opts)
}
func (d *DenseRowMajor[V, I]) DenseColumnFull(opts Options[I]) DenseExtractor[V, I] {
	return newDenseSecondaryExtractor[V, I](&d.denseMatrix, false, fullSelection(d.nrow), opts)
}
func (d *DenseRowMajor[V, I]) DenseColumnBlock(start, length I, opts Options[I]) DenseExtractor[V, I] {
	return newDenseSecondaryExtractor[V, I](&d.denseMatrix, false, blockSelection[I](int(start), int(length)), opts)
}
func (d *DenseRowMajor[V, I]) DenseColumnIndex(idx []I, opts Options[I]) DenseExtractor[V, I] {
	return newDenseSecondaryExtractor[V, I](&d.denseMatrix, false, indexSelection(idx), opts)
}

func (d *DenseRowMajor[V, I]) SparseRowFull(opts Options[I]) SparseExtractor[V, I] {
	return newDenseSparseWrapper[V, I](d.DenseRowFull(opts), d.ncol, opts)
}
func (d *DenseRowMajor[V, I]) SparseRowBlock(start, length I, opts Options[I]) SparseExtractor[V, I] {
	return newDenseSparseWrapper[V, I](d.DenseRowBlock(start, length, opts), int(length), opts)
}
func (d *DenseRowMajor[V, I]) SparseRowIndex(idx []I, opts Options[I]) SparseExtractor[V, I] {
	return newDenseSparseWrapper[V, I](d.DenseRowIndex(idx, opts), len(idx), opts)
}
func (d *DenseRowMajor[V, I]) SparseColumnFull(opts Options[I]) SparseExtractor[V, I] {
	return newDenseSparseWrapper[V, I](d.DenseColumnFull(opts), d.nrow, opts)
}
func (d *DenseRowMajor[V, I]) SparseColumnBlock(start, length I, opts Options[I]) SparseExtractor[V, I] {
	return newDenseSparseWrapper[V, I](d.DenseColumnBlock(start, length, opts), int(length), opts)
}
func (d *DenseRowMajor[V, I]) SparseColumnIndex(idx []I, opts Options[I]) SparseExtractor[V, I] {
	return newDenseSparseWrapper[V, I](d.DenseColumnIndex(idx, opts), len(idx), opts)
}

// DenseColMajor is the column-major counterpart, efficient for column-wise
// access.
type DenseColMajor[V Value, I Index] struct {
	denseMatrix[V, I]
}

// NewDenseColMajor wraps data (length nrow*ncol, column-major) as a Matrix.
func NewDenseColMajor[V Value, I Index](nrow, ncol int, data []V) *DenseColMajor[V, I] {
	return &DenseColMajor[V, I]{denseMatrix: newDenseMatrix[V, I](nrow, ncol, false, data)}
}

func (d *DenseColMajor[V, I]) NRow() I { return I(d.nrow) }
func (d *DenseColMajor[V, I]) NCol() I { return I(d.ncol) }

func (d *DenseColMajor[V, I]) IsSparse() bool                { return false }
func (d *DenseColMajor[V, I]) SparseProportion() float64     { return 0 }
func (d *DenseColMajor[V, I]) PreferRows() bool              { return false }
func (d *DenseColMajor[V, I]) PreferRowsProportion() float64 { return 0 }
func (d *DenseColMajor[V, I]) UsesOracle(bool) bool          { return false }

func (d *DenseColMajor[V, I]) Dims() (int, int) { return d.nrow, d.ncol }
func (d *DenseColMajor[V, I]) At(i, j int) float64 {
	checkRow(i, d.nrow)
	checkCol(j, d.ncol)
	return float64(d.at(j, i))
}
func (d *DenseColMajor[V, I]) T() mat.Matrix {
	return &DenseRowMajor[V, I]{denseMatrix: denseMatrix[V, I]{
		nrow: d.ncol, ncol: d.nrow, rowMajor: true, data: d.data,
	}}
}

func (d *DenseColMajor[V, I]) DenseRowFull(opts Options[I]) DenseExtractor[V, I] {
	return newDenseSecondaryExtractor[V, I](&d.denseMatrix, true, fullSelection(d.ncol), opts)
}
func (d *DenseColMajor[V, I]) DenseRowBlock(start, length I, opts Options[I]) DenseExtractor[V, I] {
	return newDenseSecondaryExtractor[V, I](&d.denseMatrix, true, blockSelection[I](int(start), int(length)), opts)
}
func (d *DenseColMajor[V, I]) DenseRowIndex(idx []I, opts Options[I]) DenseExtractor[V, I] {
	return newDenseSecondaryExtractor[V, I](&d.denseMatrix, true, indexSelection(idx), opts)
}
func (d *DenseColMajor[V, I]) DenseColumnFull(opts Options[I]) DenseExtractor[V, I] {
	return newDensePrimaryExtractor[V, I](&d.denseMatrix, false, fullSelection(d.nrow), opts)
}
func (d *DenseColMajor[V, I]) DenseColumnBlock(start, length I, opts Options[I]) DenseExtractor[V, I] {
	return newDensePrimaryExtractor[V, I](&d.denseMatrix, false, blockSelection[I](int(start), int(length)), opts)
}
func (d *DenseColMajor[V, I]) DenseColumnIndex(idx []I, opts Options[I]) DenseExtractor[V, I] {
	return newDensePrimaryExtractor[V, I](&d.denseMatrix, false, indexSelection(idx), opts)
}

func (d *DenseColMajor[V, I]) SparseRowFull(opts Options[I]) SparseExtractor[V, I] {
	return newDenseSparseWrapper[V, I](d.DenseRowFull(opts), d.ncol, opts)
}
func (d *DenseColMajor[V, I]) SparseRowBlock(start, length I, opts Options[I]) SparseExtractor[V, I] {
	return newDenseSparseWrapper[V, I](d.DenseRowBlock(start, length, opts), int(length), opts)
}
func (d *DenseColMajor[V, I]) SparseRowIndex(idx []I, opts Options[I]) SparseExtractor[V, I] {
	return newDenseSparseWrapper[V, I](d.DenseRowIndex(idx, opts), len(idx), opts)
}
func (d *DenseColMajor[V, I]) SparseColumnFull(opts Options[I]) SparseExtractor[V, I] {
	return newDenseSparseWrapper[V, I](d.DenseColumnFull(opts), d.nrow, opts)
}
func (d *DenseColMajor[V, I]) SparseColumnBlock(start, length I, opts Options[I]) SparseExtractor[V, I] {
	return newDenseSparseWrapper[V, I](d.DenseColumnBlock(start, length, opts), int(length), opts)
}
func (d *DenseColMajor[V, I]) SparseColumnIndex(idx []I, opts Options[I]) SparseExtractor[V, I] {
	return newDenseSparseWrapper[V, I](d.DenseColumnIndex(idx, opts), len(idx), opts)
}

// --- extraction -----------------------------------------------------

// densePrimaryExtractor serves the cheap direction: a contiguous slice of
// the backing array per primary element.
type densePrimaryExtractor[V Value, I Index] struct {
	d   *denseMatrix[V, I]
	sel selection[I]
	oracleCursor[I]
}

func newDensePrimaryExtractor[V Value, I Index](d *denseMatrix[V, I], _ bool, sel selection[I], opts Options[I]) DenseExtractor[V, I] {
	return &densePrimaryExtractor[V, I]{d: d, sel: sel, oracleCursor: oracleCursor[I]{oracle: opts.Oracle}}
}

func (e *densePrimaryExtractor[V, I]) Fetch(i I, buffer []V) []V {
	full := e.d.primarySlice(int(i))
	switch e.sel.kind {
	case selFull:
		return full
	case selBlock:
		return full[e.sel.start : e.sel.start+e.sel.length]
	default:
		out := buffer[:len(e.sel.idx)]
		for k, want := range e.sel.idx {
			out[k] = full[want]
		}
		return out
	}
}

func (e *densePrimaryExtractor[V, I]) FetchNext(buffer []V) (I, []V) {
	i := e.nextIndex()
	return i, e.Fetch(i, buffer)
}

// denseSecondaryExtractor serves the expensive direction via a strided
// gather, one element from each tracked primary element per request.
type denseSecondaryExtractor[V Value, I Index] struct {
	d         *denseMatrix[V, I]
	sel       selection[I]
	primaries []int
	oracleCursor[I]
}

func newDenseSecondaryExtractor[V Value, I Index](d *denseMatrix[V, I], _ bool, sel selection[I], opts Options[I]) DenseExtractor[V, I] {
	return &denseSecondaryExtractor[V, I]{d: d, sel: sel, primaries: primariesFor(sel, d.primaryLen()), oracleCursor: oracleCursor[I]{oracle: opts.Oracle}}
}

func (e *denseSecondaryExtractor[V, I]) Fetch(secondary I, buffer []V) []V {
	out := buffer[:len(e.primaries)]
	for k, p := range e.primaries {
		out[k] = e.d.at(p, int(secondary))
	}
	return out
}

func (e *denseSecondaryExtractor[V, I]) FetchNext(buffer []V) (I, []V) {
	i := e.nextIndex()
	return i, e.Fetch(i, buffer)
}

// denseSparseWrapper adapts a DenseExtractor into a SparseExtractor by
// filtering zeroes, the dense backend's equivalent of the teacher's
// generic "iterate and skip zero" fallback for non-native-sparse sources.
type denseSparseWrapper[V Value, I Index] struct {
	dense  DenseExtractor[V, I]
	length int
	opts   Options[I]
	scratch []V
}

func newDenseSparseWrapper[V Value, I Index](dense DenseExtractor[V, I], length int, opts Options[I]) SparseExtractor[V, I] {
	return &denseSparseWrapper[V, I]{dense: dense, length: length, opts: opts, scratch: make([]V, length)}
}

func (e *denseSparseWrapper[V, I]) Fetch(i I, vbuffer []V, ibuffer []I) Range[V, I] {
	full := e.dense.Fetch(i, e.scratch)
	return e.filter(full, vbuffer, ibuffer)
}

func (e *denseSparseWrapper[V, I]) FetchNext(vbuffer []V, ibuffer []I) (I, Range[V, I]) {
	i, full := e.dense.FetchNext(e.scratch)
	return i, e.filter(full, vbuffer, ibuffer)
}

func (e *denseSparseWrapper[V, I]) filter(full []V, vbuffer []V, ibuffer []I) Range[V, I] {
	var zero V
	count := 0
	for k, v := range full {
		if v == zero {
			continue
		}
		if e.opts.ExtractValue {
			vbuffer[count] = v
		}
		if e.opts.ExtractIndex {
			ibuffer[count] = I(k)
		}
		count++
	}
	var vout []V
	var iout []I
	if e.opts.ExtractValue {
		vout = vbuffer[:count]
	}
	if e.opts.ExtractIndex {
		iout = ibuffer[:count]
	}
	return Range[V, I]{Number: count, Value: vout, Index: iout}
}
