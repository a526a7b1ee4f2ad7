package sparse

import "gonum.org/v1/gonum/mat"

// ConstantMatrix fabricates a matrix that returns the same scalar value at
// every position (spec §4.9). It is sparse when the constant is zero, since
// every element is then structurally absent.
type ConstantMatrix[V Value, I Index] struct {
	nrow, ncol I
	value      V
}

// NewConstantMatrix builds an nrow x ncol matrix filled uniformly with value.
func NewConstantMatrix[V Value, I Index](nrow, ncol I, value V) *ConstantMatrix[V, I] {
	return &ConstantMatrix[V, I]{nrow: nrow, ncol: ncol, value: value}
}

func (c *ConstantMatrix[V, I]) NRow() I { return c.nrow }
func (c *ConstantMatrix[V, I]) NCol() I { return c.ncol }

func (c *ConstantMatrix[V, I]) IsSparse() bool        { return c.value == 0 }
func (c *ConstantMatrix[V, I]) SparseProportion() float64 {
	if c.value == 0 {
		return 1
	}
	return 0
}
func (c *ConstantMatrix[V, I]) PreferRows() bool              { return true }
func (c *ConstantMatrix[V, I]) PreferRowsProportion() float64 { return 1 }
func (c *ConstantMatrix[V, I]) UsesOracle(row bool) bool      { return false }

func (c *ConstantMatrix[V, I]) Dims() (int, int) { return int(c.nrow), int(c.ncol) }
func (c *ConstantMatrix[V, I]) At(i, j int) float64 {
	checkRow(i, int(c.nrow))
	checkCol(j, int(c.ncol))
	return float64(c.value)
}
func (c *ConstantMatrix[V, I]) T() mat.Matrix {
	return NewConstantMatrix[V, I](c.ncol, c.nrow, c.value)
}

type constantDense[V Value, I Index] struct {
	value V
	n     I
	oracleCursor[I]
}

func (e *constantDense[V, I]) Fetch(i I, buffer []V) []V {
	out := buffer[:e.n]
	for k := range out {
		out[k] = e.value
	}
	return out
}
func (e *constantDense[V, I]) FetchNext(buffer []V) (I, []V) {
	i := e.nextIndex()
	return i, e.Fetch(i, buffer)
}

func (c *ConstantMatrix[V, I]) DenseRowFull(opts Options[I]) DenseExtractor[V, I] {
	return &constantDense[V, I]{value: c.value, n: c.ncol, oracleCursor: oracleCursor[I]{oracle: opts.Oracle}}
}
func (c *ConstantMatrix[V, I]) DenseRowBlock(start, length I, opts Options[I]) DenseExtractor[V, I] {
	return &constantDense[V, I]{value: c.value, n: length, oracleCursor: oracleCursor[I]{oracle: opts.Oracle}}
}
func (c *ConstantMatrix[V, I]) DenseRowIndex(idx []I, opts Options[I]) DenseExtractor[V, I] {
	return &constantDense[V, I]{value: c.value, n: I(len(idx)), oracleCursor: oracleCursor[I]{oracle: opts.Oracle}}
}
func (c *ConstantMatrix[V, I]) DenseColumnFull(opts Options[I]) DenseExtractor[V, I] {
	return &constantDense[V, I]{value: c.value, n: c.nrow, oracleCursor: oracleCursor[I]{oracle: opts.Oracle}}
}
func (c *ConstantMatrix[V, I]) DenseColumnBlock(start, length I, opts Options[I]) DenseExtractor[V, I] {
	return &constantDense[V, I]{value: c.value, n: length, oracleCursor: oracleCursor[I]{oracle: opts.Oracle}}
}
func (c *ConstantMatrix[V, I]) DenseColumnIndex(idx []I, opts Options[I]) DenseExtractor[V, I] {
	return &constantDense[V, I]{value: c.value, n: I(len(idx)), oracleCursor: oracleCursor[I]{oracle: opts.Oracle}}
}

// constantSparse reports no entries when value is zero, one dense run of
// entries otherwise. idx holds the ranks 0..n-1 of the enclosing selection,
// supplied at construction since the constant never varies by position.
type constantSparse[V Value, I Index] struct {
	value V
	idx   []I // secondary-dimension indices to report when value != 0
	oracleCursor[I]
}

func (e *constantSparse[V, I]) Fetch(i I, vbuffer []V, ibuffer []I) Range[V, I] {
	if e.value == 0 {
		return Range[V, I]{}
	}
	n := len(e.idx)
	vout := vbuffer[:n]
	iout := ibuffer[:n]
	for k, ix := range e.idx {
		vout[k] = e.value
		iout[k] = ix
	}
	return Range[V, I]{Number: n, Value: vout, Index: iout}
}
func (e *constantSparse[V, I]) FetchNext(vbuffer []V, ibuffer []I) (I, Range[V, I]) {
	i := e.nextIndex()
	return i, e.Fetch(i, vbuffer, ibuffer)
}

func fullIdx[I Index](n I) []I {
	out := make([]I, n)
	for k := range out {
		out[k] = I(k)
	}
	return out
}

func (c *ConstantMatrix[V, I]) SparseRowFull(opts Options[I]) SparseExtractor[V, I] {
	return &constantSparse[V, I]{value: c.value, idx: fullIdx(c.ncol), oracleCursor: oracleCursor[I]{oracle: opts.Oracle}}
}
func (c *ConstantMatrix[V, I]) SparseRowBlock(start, length I, opts Options[I]) SparseExtractor[V, I] {
	return &constantSparse[V, I]{value: c.value, idx: fullIdx(length), oracleCursor: oracleCursor[I]{oracle: opts.Oracle}}
}
func (c *ConstantMatrix[V, I]) SparseRowIndex(idx []I, opts Options[I]) SparseExtractor[V, I] {
	return &constantSparse[V, I]{value: c.value, idx: fullIdx(I(len(idx))), oracleCursor: oracleCursor[I]{oracle: opts.Oracle}}
}
func (c *ConstantMatrix[V, I]) SparseColumnFull(opts Options[I]) SparseExtractor[V, I] {
	return &constantSparse[V, I]{value: c.value, idx: fullIdx(c.nrow), oracleCursor: oracleCursor[I]{oracle: opts.Oracle}}
}
func (c *ConstantMatrix[V, I]) SparseColumnBlock(start, length I, opts Options[I]) SparseExtractor[V, I] {
	return &constantSparse[V, I]{value: c.value, idx: fullIdx(length), oracleCursor: oracleCursor[I]{oracle: opts.Oracle}}
}
func (c *ConstantMatrix[V, I]) SparseColumnIndex(idx []I, opts Options[I]) SparseExtractor[V, I] {
	return &constantSparse[V, I]{value: c.value, idx: fullIdx(I(len(idx))), oracleCursor: oracleCursor[I]{oracle: opts.Oracle}}
}
