package sparse

import "gonum.org/v1/gonum/mat"

// BinaryOp is the collaborator behind DelayedBinaryIsometric (spec §4.8).
type BinaryOp[V Value, I Index] interface {
	// Dense applies the operation elementwise to left and right, writing
	// the result to out. All three slices share positions' length and
	// meaning, as in UnaryOp.Dense.
	Dense(row bool, i I, positions []I, left, right, out []V)

	// Scalar is the core two-operand kernel, used by the sparse merge to
	// combine one left value and one right value at a shared or singleton
	// index (with 0 substituted for an absent side).
	Scalar(l, r V) V

	// MustHaveBoth reports whether an index present on only one side
	// should be dropped instead of evaluated against an implicit zero
	// (spec §4.8, e.g. multiplication by an absent - structurally zero -
	// operand is itself structurally zero and need not be computed).
	MustHaveBoth() bool

	Fill(row bool, i I) V
	IsSparse() bool
	ZeroDependsOnRow() bool
	ZeroDependsOnColumn() bool
	NonZeroDependsOnRow() bool
	NonZeroDependsOnColumn() bool
}

// DelayedBinaryIsometric pairs corresponding entries of two equally-shaped
// matrices through a binary op (spec §4.8).
type DelayedBinaryIsometric[V Value, I Index] struct {
	left, right Matrix[V, I]
	op          BinaryOp[V, I]
}

// NewDelayedBinaryIsometric combines left and right elementwise via op. It
// panics if the two matrices disagree in shape.
func NewDelayedBinaryIsometric[V Value, I Index](left, right Matrix[V, I], op BinaryOp[V, I]) *DelayedBinaryIsometric[V, I] {
	if left.NRow() != right.NRow() || left.NCol() != right.NCol() {
		panic("tatami: DelayedBinaryIsometric operands disagree in shape")
	}
	return &DelayedBinaryIsometric[V, I]{left: left, right: right, op: op}
}

func (d *DelayedBinaryIsometric[V, I]) NRow() I { return d.left.NRow() }
func (d *DelayedBinaryIsometric[V, I]) NCol() I { return d.left.NCol() }

func (d *DelayedBinaryIsometric[V, I]) IsSparse() bool {
	return d.left.IsSparse() && d.right.IsSparse() && d.op.IsSparse()
}
func (d *DelayedBinaryIsometric[V, I]) SparseProportion() float64 {
	if d.IsSparse() {
		lo, hi := d.left.SparseProportion(), d.right.SparseProportion()
		if lo < hi {
			return lo
		}
		return hi
	}
	return 0
}
func (d *DelayedBinaryIsometric[V, I]) PreferRows() bool { return d.left.PreferRows() }
func (d *DelayedBinaryIsometric[V, I]) PreferRowsProportion() float64 {
	return d.left.PreferRowsProportion()
}
func (d *DelayedBinaryIsometric[V, I]) UsesOracle(row bool) bool {
	return d.left.UsesOracle(row) && d.right.UsesOracle(row)
}

func (d *DelayedBinaryIsometric[V, I]) Dims() (int, int) { return int(d.NRow()), int(d.NCol()) }
func (d *DelayedBinaryIsometric[V, I]) At(i, j int) float64 {
	checkRow(i, int(d.NRow()))
	checkCol(j, int(d.NCol()))
	lv := d.left.(mat.Matrix).At(i, j)
	rv := d.right.(mat.Matrix).At(i, j)
	return float64(d.op.Scalar(V(lv), V(rv)))
}
func (d *DelayedBinaryIsometric[V, I]) T() mat.Matrix {
	return &DelayedTranspose[V, I]{child: d}
}

type binaryDense[V Value, I Index] struct {
	left, right DenseExtractor[V, I]
	op          BinaryOp[V, I]
	row         bool
	positions   []I
}

func (e *binaryDense[V, I]) Fetch(i I, buffer []V) []V {
	rbuf := make([]V, len(buffer))
	lraw := e.left.Fetch(i, buffer)
	rraw := e.right.Fetch(i, rbuf)
	out := buffer[:len(lraw)]
	e.op.Dense(e.row, i, e.positions[:len(lraw)], lraw, rraw, out)
	return out
}
func (e *binaryDense[V, I]) FetchNext(buffer []V) (I, []V) {
	rbuf := make([]V, len(buffer))
	i, lraw := e.left.FetchNext(buffer)
	_, rraw := e.right.FetchNext(rbuf)
	out := buffer[:len(lraw)]
	e.op.Dense(e.row, i, e.positions[:len(lraw)], lraw, rraw, out)
	return i, out
}

// binarySparse implements the sparse merge (spec §4.8 "Binary sparse
// merge"): two sorted, unique ranges are walked in lockstep, producing one
// output element per distinct index. MustHaveBoth controls whether a
// singleton (index present on only one side) contributes an entry.
type binarySparse[V Value, I Index] struct {
	left, right SparseExtractor[V, I]
	denseLeft, denseRight DenseExtractor[V, I]
	op        BinaryOp[V, I]
	row       bool
	positions []I
	sparse    bool
}

func (e *binarySparse[V, I]) Fetch(i I, vbuffer []V, ibuffer []I) Range[V, I] {
	if e.sparse {
		lv := make([]V, len(vbuffer))
		li := make([]I, len(ibuffer))
		rv := make([]V, len(vbuffer))
		ri := make([]I, len(ibuffer))
		lref := e.left.Fetch(i, lv, li)
		rref := e.right.Fetch(i, rv, ri)
		return mergeSparse(lref, rref, e.op, vbuffer, ibuffer)
	}
	rbuf := make([]V, len(vbuffer))
	lraw := e.denseLeft.Fetch(i, vbuffer)
	rraw := e.denseRight.Fetch(i, rbuf)
	out := vbuffer[:len(lraw)]
	e.op.Dense(e.row, i, e.positions[:len(lraw)], lraw, rraw, out)
	idx := ibuffer[:len(lraw)]
	copy(idx, e.positions[:len(lraw)])
	return Range[V, I]{Number: len(lraw), Value: out, Index: idx}
}

func (e *binarySparse[V, I]) FetchNext(vbuffer []V, ibuffer []I) (I, Range[V, I]) {
	if e.sparse {
		lv := make([]V, len(vbuffer))
		li := make([]I, len(ibuffer))
		rv := make([]V, len(vbuffer))
		ri := make([]I, len(ibuffer))
		i, lref := e.left.FetchNext(lv, li)
		_, rref := e.right.FetchNext(rv, ri)
		return i, mergeSparse(lref, rref, e.op, vbuffer, ibuffer)
	}
	rbuf := make([]V, len(vbuffer))
	i, lraw := e.denseLeft.FetchNext(vbuffer)
	_, rraw := e.denseRight.FetchNext(rbuf)
	out := vbuffer[:len(lraw)]
	e.op.Dense(e.row, i, e.positions[:len(lraw)], lraw, rraw, out)
	idx := ibuffer[:len(lraw)]
	copy(idx, e.positions[:len(lraw)])
	return i, Range[V, I]{Number: len(lraw), Value: out, Index: idx}
}

func mergeSparse[V Value, I Index](l, r Range[V, I], op BinaryOp[V, I], vbuffer []V, ibuffer []I) Range[V, I] {
	mustBoth := op.MustHaveBoth()
	var vout []V
	var iout []I
	n := 0
	a, b := 0, 0
	for a < l.Number || b < r.Number {
		switch {
		case b >= r.Number || (a < l.Number && l.Index[a] < r.Index[b]):
			if !mustBoth {
				vbuffer[n] = op.Scalar(l.Value[a], 0)
				ibuffer[n] = l.Index[a]
				n++
			}
			a++
		case a >= l.Number || r.Index[b] < l.Index[a]:
			if !mustBoth {
				vbuffer[n] = op.Scalar(0, r.Value[b])
				ibuffer[n] = r.Index[b]
				n++
			}
			b++
		default:
			vbuffer[n] = op.Scalar(l.Value[a], r.Value[b])
			ibuffer[n] = l.Index[a]
			n++
			a++
			b++
		}
	}
	vout = vbuffer[:n]
	iout = ibuffer[:n]
	return Range[V, I]{Number: n, Value: vout, Index: iout}
}

func (d *DelayedBinaryIsometric[V, I]) DenseRowFull(opts Options[I]) DenseExtractor[V, I] {
	return &binaryDense[V, I]{left: d.left.DenseRowFull(opts), right: d.right.DenseRowFull(opts), op: d.op, row: true, positions: fullIdx(d.NCol())}
}
func (d *DelayedBinaryIsometric[V, I]) DenseRowBlock(start, length I, opts Options[I]) DenseExtractor[V, I] {
	return &binaryDense[V, I]{left: d.left.DenseRowBlock(start, length, opts), right: d.right.DenseRowBlock(start, length, opts), op: d.op, row: true, positions: blockIdx(start, length)}
}
func (d *DelayedBinaryIsometric[V, I]) DenseRowIndex(idx []I, opts Options[I]) DenseExtractor[V, I] {
	return &binaryDense[V, I]{left: d.left.DenseRowIndex(idx, opts), right: d.right.DenseRowIndex(idx, opts), op: d.op, row: true, positions: idx}
}
func (d *DelayedBinaryIsometric[V, I]) DenseColumnFull(opts Options[I]) DenseExtractor[V, I] {
	return &binaryDense[V, I]{left: d.left.DenseColumnFull(opts), right: d.right.DenseColumnFull(opts), op: d.op, row: false, positions: fullIdx(d.NRow())}
}
func (d *DelayedBinaryIsometric[V, I]) DenseColumnBlock(start, length I, opts Options[I]) DenseExtractor[V, I] {
	return &binaryDense[V, I]{left: d.left.DenseColumnBlock(start, length, opts), right: d.right.DenseColumnBlock(start, length, opts), op: d.op, row: false, positions: blockIdx(start, length)}
}
func (d *DelayedBinaryIsometric[V, I]) DenseColumnIndex(idx []I, opts Options[I]) DenseExtractor[V, I] {
	return &binaryDense[V, I]{left: d.left.DenseColumnIndex(idx, opts), right: d.right.DenseColumnIndex(idx, opts), op: d.op, row: false, positions: idx}
}

func (d *DelayedBinaryIsometric[V, I]) sparseOpts(opts Options[I]) Options[I] {
	o := opts
	o.OrderedIndex = true
	o.ExtractIndex = true
	o.ExtractValue = true
	return o
}

func (d *DelayedBinaryIsometric[V, I]) SparseRowFull(opts Options[I]) SparseExtractor[V, I] {
	if d.IsSparse() {
		o := d.sparseOpts(opts)
		return &binarySparse[V, I]{left: d.left.SparseRowFull(o), right: d.right.SparseRowFull(o), op: d.op, row: true, sparse: true}
	}
	return &binarySparse[V, I]{denseLeft: d.left.DenseRowFull(opts), denseRight: d.right.DenseRowFull(opts), op: d.op, row: true, positions: fullIdx(d.NCol())}
}
func (d *DelayedBinaryIsometric[V, I]) SparseRowBlock(start, length I, opts Options[I]) SparseExtractor[V, I] {
	if d.IsSparse() {
		o := d.sparseOpts(opts)
		return &binarySparse[V, I]{left: d.left.SparseRowBlock(start, length, o), right: d.right.SparseRowBlock(start, length, o), op: d.op, row: true, sparse: true}
	}
	return &binarySparse[V, I]{denseLeft: d.left.DenseRowBlock(start, length, opts), denseRight: d.right.DenseRowBlock(start, length, opts), op: d.op, row: true, positions: blockIdx(start, length)}
}
func (d *DelayedBinaryIsometric[V, I]) SparseRowIndex(idx []I, opts Options[I]) SparseExtractor[V, I] {
	if d.IsSparse() {
		o := d.sparseOpts(opts)
		return &binarySparse[V, I]{left: d.left.SparseRowIndex(idx, o), right: d.right.SparseRowIndex(idx, o), op: d.op, row: true, sparse: true}
	}
	return &binarySparse[V, I]{denseLeft: d.left.DenseRowIndex(idx, opts), denseRight: d.right.DenseRowIndex(idx, opts), op: d.op, row: true, positions: idx}
}
func (d *DelayedBinaryIsometric[V, I]) SparseColumnFull(opts Options[I]) SparseExtractor[V, I] {
	if d.IsSparse() {
		o := d.sparseOpts(opts)
		return &binarySparse[V, I]{left: d.left.SparseColumnFull(o), right: d.right.SparseColumnFull(o), op: d.op, row: false, sparse: true}
	}
	return &binarySparse[V, I]{denseLeft: d.left.DenseColumnFull(opts), denseRight: d.right.DenseColumnFull(opts), op: d.op, row: false, positions: fullIdx(d.NRow())}
}
func (d *DelayedBinaryIsometric[V, I]) SparseColumnBlock(start, length I, opts Options[I]) SparseExtractor[V, I] {
	if d.IsSparse() {
		o := d.sparseOpts(opts)
		return &binarySparse[V, I]{left: d.left.SparseColumnBlock(start, length, o), right: d.right.SparseColumnBlock(start, length, o), op: d.op, row: false, sparse: true}
	}
	return &binarySparse[V, I]{denseLeft: d.left.DenseColumnBlock(start, length, opts), denseRight: d.right.DenseColumnBlock(start, length, opts), op: d.op, row: false, positions: blockIdx(start, length)}
}
func (d *DelayedBinaryIsometric[V, I]) SparseColumnIndex(idx []I, opts Options[I]) SparseExtractor[V, I] {
	if d.IsSparse() {
		o := d.sparseOpts(opts)
		return &binarySparse[V, I]{left: d.left.SparseColumnIndex(idx, o), right: d.right.SparseColumnIndex(idx, o), op: d.op, row: false, sparse: true}
	}
	return &binarySparse[V, I]{denseLeft: d.left.DenseColumnIndex(idx, opts), denseRight: d.right.DenseColumnIndex(idx, opts), op: d.op, row: false, positions: idx}
}
