package sparse

import "gonum.org/v1/gonum/mat"

// DelayedTranspose swaps the row and column extractors of its child (spec
// §4.9). Concrete backends implement T() by returning a cheap relabelled
// view of their own storage (see CSR.T/CSC.T); DelayedTranspose is for
// delayed wrappers that have no such relabelling available and must swap
// at the Matrix-interface level instead.
type DelayedTranspose[V Value, I Index] struct {
	child Matrix[V, I]
}

// NewDelayedTranspose wraps child so that rows and columns are swapped.
func NewDelayedTranspose[V Value, I Index](child Matrix[V, I]) *DelayedTranspose[V, I] {
	return &DelayedTranspose[V, I]{child: child}
}

func (d *DelayedTranspose[V, I]) NRow() I { return d.child.NCol() }
func (d *DelayedTranspose[V, I]) NCol() I { return d.child.NRow() }

func (d *DelayedTranspose[V, I]) IsSparse() bool            { return d.child.IsSparse() }
func (d *DelayedTranspose[V, I]) SparseProportion() float64 { return d.child.SparseProportion() }
func (d *DelayedTranspose[V, I]) PreferRows() bool          { return !d.child.PreferRows() }
func (d *DelayedTranspose[V, I]) PreferRowsProportion() float64 {
	return 1 - d.child.PreferRowsProportion()
}
func (d *DelayedTranspose[V, I]) UsesOracle(row bool) bool { return d.child.UsesOracle(!row) }

func (d *DelayedTranspose[V, I]) Dims() (int, int) { return int(d.NRow()), int(d.NCol()) }
func (d *DelayedTranspose[V, I]) At(i, j int) float64 {
	checkRow(i, int(d.NRow()))
	checkCol(j, int(d.NCol()))
	return d.child.(mat.Matrix).At(j, i)
}
func (d *DelayedTranspose[V, I]) T() mat.Matrix { return asMatMatrix[V, I](d.child) }

func asMatMatrix[V Value, I Index](m Matrix[V, I]) mat.Matrix { return m.(mat.Matrix) }

func (d *DelayedTranspose[V, I]) DenseRowFull(opts Options[I]) DenseExtractor[V, I] {
	return d.child.DenseColumnFull(opts)
}
func (d *DelayedTranspose[V, I]) DenseRowBlock(start, length I, opts Options[I]) DenseExtractor[V, I] {
	return d.child.DenseColumnBlock(start, length, opts)
}
func (d *DelayedTranspose[V, I]) DenseRowIndex(idx []I, opts Options[I]) DenseExtractor[V, I] {
	return d.child.DenseColumnIndex(idx, opts)
}
func (d *DelayedTranspose[V, I]) DenseColumnFull(opts Options[I]) DenseExtractor[V, I] {
	return d.child.DenseRowFull(opts)
}
func (d *DelayedTranspose[V, I]) DenseColumnBlock(start, length I, opts Options[I]) DenseExtractor[V, I] {
	return d.child.DenseRowBlock(start, length, opts)
}
func (d *DelayedTranspose[V, I]) DenseColumnIndex(idx []I, opts Options[I]) DenseExtractor[V, I] {
	return d.child.DenseRowIndex(idx, opts)
}

func (d *DelayedTranspose[V, I]) SparseRowFull(opts Options[I]) SparseExtractor[V, I] {
	return d.child.SparseColumnFull(opts)
}
func (d *DelayedTranspose[V, I]) SparseRowBlock(start, length I, opts Options[I]) SparseExtractor[V, I] {
	return d.child.SparseColumnBlock(start, length, opts)
}
func (d *DelayedTranspose[V, I]) SparseRowIndex(idx []I, opts Options[I]) SparseExtractor[V, I] {
	return d.child.SparseColumnIndex(idx, opts)
}
func (d *DelayedTranspose[V, I]) SparseColumnFull(opts Options[I]) SparseExtractor[V, I] {
	return d.child.SparseRowFull(opts)
}
func (d *DelayedTranspose[V, I]) SparseColumnBlock(start, length I, opts Options[I]) SparseExtractor[V, I] {
	return d.child.SparseRowBlock(start, length, opts)
}
func (d *DelayedTranspose[V, I]) SparseColumnIndex(idx []I, opts Options[I]) SparseExtractor[V, I] {
	return d.child.SparseRowIndex(idx, opts)
}
