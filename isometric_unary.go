package sparse

import "gonum.org/v1/gonum/mat"

// UnaryOp is the collaborator behind DelayedUnaryIsometric (spec §4.8). An
// op answers two kinds of question: how to compute a value (Dense, Sparse)
// and whether the structural zeros of the child survive the operation
// (IsSparse and the four dependency flags), which the wrapper uses to
// decide its own IsSparse()/SparseProportion() without evaluating a single
// element.
type UnaryOp[V Value, I Index] interface {
	// Dense applies the operation to in, writing the result to out. Both
	// slices have the same length as positions; positions[k] gives the
	// column identity (row extraction) or row identity (column extraction)
	// of in[k], for ops whose result depends on that coordinate. in and out
	// may alias the same underlying array.
	Dense(row bool, i I, positions []I, in, out []V)

	// Sparse applies the operation to a structural-zero-preserving range,
	// in place: for k in [0, in.Number), out value k is the result of
	// applying the operation to in.Value[k] at in.Index[k]. Indices are
	// unchanged; the operation must not alter sparsity here, since Sparse
	// is only ever invoked when IsSparse() is true.
	Sparse(row bool, i I, in Range[V, I], outVal []V)

	// Fill is the result of applying the operation to a structural zero at
	// row/column i. Op authors use it at construction time to answer
	// IsSparse(); the wrapper does not call it, since its non-sparse path
	// goes through Dense over a complete row/column, which already
	// produces the correct fill value at every untouched position.
	Fill(row bool, i I) V

	IsSparse() bool
	ZeroDependsOnRow() bool
	ZeroDependsOnColumn() bool
	NonZeroDependsOnRow() bool
	NonZeroDependsOnColumn() bool
}

// DelayedUnaryIsometric wraps child with a per-element operation that
// preserves its shape (spec §4.8).
type DelayedUnaryIsometric[V Value, I Index] struct {
	child Matrix[V, I]
	op    UnaryOp[V, I]
}

// NewDelayedUnaryIsometric applies op to every element of child.
func NewDelayedUnaryIsometric[V Value, I Index](child Matrix[V, I], op UnaryOp[V, I]) *DelayedUnaryIsometric[V, I] {
	return &DelayedUnaryIsometric[V, I]{child: child, op: op}
}

func (d *DelayedUnaryIsometric[V, I]) NRow() I { return d.child.NRow() }
func (d *DelayedUnaryIsometric[V, I]) NCol() I { return d.child.NCol() }

func (d *DelayedUnaryIsometric[V, I]) IsSparse() bool {
	return d.child.IsSparse() && d.op.IsSparse()
}
func (d *DelayedUnaryIsometric[V, I]) SparseProportion() float64 {
	if d.IsSparse() {
		return d.child.SparseProportion()
	}
	return 0
}
func (d *DelayedUnaryIsometric[V, I]) PreferRows() bool              { return d.child.PreferRows() }
func (d *DelayedUnaryIsometric[V, I]) PreferRowsProportion() float64 { return d.child.PreferRowsProportion() }
func (d *DelayedUnaryIsometric[V, I]) UsesOracle(row bool) bool      { return d.child.UsesOracle(row) }

func (d *DelayedUnaryIsometric[V, I]) Dims() (int, int) { return int(d.NRow()), int(d.NCol()) }
func (d *DelayedUnaryIsometric[V, I]) At(i, j int) float64 {
	checkRow(i, int(d.NRow()))
	checkCol(j, int(d.NCol()))
	raw := d.child.(mat.Matrix).At(i, j)
	in := []V{V(raw)}
	out := make([]V, 1)
	d.op.Dense(true, I(i), []I{I(j)}, in, out)
	return float64(out[0])
}

func (d *DelayedUnaryIsometric[V, I]) T() mat.Matrix {
	return &DelayedTranspose[V, I]{child: d}
}

func blockIdx[I Index](start, length I) []I {
	out := make([]I, length)
	for k := range out {
		out[k] = start + I(k)
	}
	return out
}

type unaryDense[V Value, I Index] struct {
	child     DenseExtractor[V, I]
	op        UnaryOp[V, I]
	row       bool
	positions []I
}

func (e *unaryDense[V, I]) Fetch(i I, buffer []V) []V {
	raw := e.child.Fetch(i, buffer)
	out := buffer[:len(raw)]
	e.op.Dense(e.row, i, e.positions[:len(raw)], raw, out)
	return out
}
func (e *unaryDense[V, I]) FetchNext(buffer []V) (I, []V) {
	i, raw := e.child.FetchNext(buffer)
	out := buffer[:len(raw)]
	e.op.Dense(e.row, i, e.positions[:len(raw)], raw, out)
	return i, out
}

type unarySparse[V Value, I Index] struct {
	// sparse-preserving path
	child SparseExtractor[V, I]
	// dense-fallback path, used when the wrapper is not sparse
	denseChild DenseExtractor[V, I]
	op         UnaryOp[V, I]
	row        bool
	positions  []I
	sparse     bool
}

func (e *unarySparse[V, I]) Fetch(i I, vbuffer []V, ibuffer []I) Range[V, I] {
	if e.sparse {
		ref := e.child.Fetch(i, vbuffer, ibuffer)
		e.op.Sparse(e.row, i, ref, vbuffer[:ref.Number])
		return Range[V, I]{Number: ref.Number, Value: vbuffer[:ref.Number], Index: ref.Index}
	}
	raw := e.denseChild.Fetch(i, vbuffer)
	out := vbuffer[:len(raw)]
	e.op.Dense(e.row, i, e.positions[:len(raw)], raw, out)
	idx := ibuffer[:len(raw)]
	copy(idx, e.positions[:len(raw)])
	return Range[V, I]{Number: len(raw), Value: out, Index: idx}
}
func (e *unarySparse[V, I]) FetchNext(vbuffer []V, ibuffer []I) (I, Range[V, I]) {
	if e.sparse {
		i, ref := e.child.FetchNext(vbuffer, ibuffer)
		e.op.Sparse(e.row, i, ref, vbuffer[:ref.Number])
		return i, Range[V, I]{Number: ref.Number, Value: vbuffer[:ref.Number], Index: ref.Index}
	}
	i, raw := e.denseChild.FetchNext(vbuffer)
	out := vbuffer[:len(raw)]
	e.op.Dense(e.row, i, e.positions[:len(raw)], raw, out)
	idx := ibuffer[:len(raw)]
	copy(idx, e.positions[:len(raw)])
	return i, Range[V, I]{Number: len(raw), Value: out, Index: idx}
}

func (d *DelayedUnaryIsometric[V, I]) DenseRowFull(opts Options[I]) DenseExtractor[V, I] {
	return &unaryDense[V, I]{child: d.child.DenseRowFull(opts), op: d.op, row: true, positions: fullIdx(d.NCol())}
}
func (d *DelayedUnaryIsometric[V, I]) DenseRowBlock(start, length I, opts Options[I]) DenseExtractor[V, I] {
	return &unaryDense[V, I]{child: d.child.DenseRowBlock(start, length, opts), op: d.op, row: true, positions: blockIdx(start, length)}
}
func (d *DelayedUnaryIsometric[V, I]) DenseRowIndex(idx []I, opts Options[I]) DenseExtractor[V, I] {
	return &unaryDense[V, I]{child: d.child.DenseRowIndex(idx, opts), op: d.op, row: true, positions: idx}
}
func (d *DelayedUnaryIsometric[V, I]) DenseColumnFull(opts Options[I]) DenseExtractor[V, I] {
	return &unaryDense[V, I]{child: d.child.DenseColumnFull(opts), op: d.op, row: false, positions: fullIdx(d.NRow())}
}
func (d *DelayedUnaryIsometric[V, I]) DenseColumnBlock(start, length I, opts Options[I]) DenseExtractor[V, I] {
	return &unaryDense[V, I]{child: d.child.DenseColumnBlock(start, length, opts), op: d.op, row: false, positions: blockIdx(start, length)}
}
func (d *DelayedUnaryIsometric[V, I]) DenseColumnIndex(idx []I, opts Options[I]) DenseExtractor[V, I] {
	return &unaryDense[V, I]{child: d.child.DenseColumnIndex(idx, opts), op: d.op, row: false, positions: idx}
}

func (d *DelayedUnaryIsometric[V, I]) SparseRowFull(opts Options[I]) SparseExtractor[V, I] {
	return d.sparseExtractor(true, fullIdx(d.NCol()), func(o Options[I]) SparseExtractor[V, I] { return d.child.SparseRowFull(o) }, func() DenseExtractor[V, I] { return d.child.DenseRowFull(opts) }, opts)
}
func (d *DelayedUnaryIsometric[V, I]) SparseRowBlock(start, length I, opts Options[I]) SparseExtractor[V, I] {
	return d.sparseExtractor(true, blockIdx(start, length), func(o Options[I]) SparseExtractor[V, I] { return d.child.SparseRowBlock(start, length, o) }, func() DenseExtractor[V, I] { return d.child.DenseRowBlock(start, length, opts) }, opts)
}
func (d *DelayedUnaryIsometric[V, I]) SparseRowIndex(idx []I, opts Options[I]) SparseExtractor[V, I] {
	return d.sparseExtractor(true, idx, func(o Options[I]) SparseExtractor[V, I] { return d.child.SparseRowIndex(idx, o) }, func() DenseExtractor[V, I] { return d.child.DenseRowIndex(idx, opts) }, opts)
}
func (d *DelayedUnaryIsometric[V, I]) SparseColumnFull(opts Options[I]) SparseExtractor[V, I] {
	return d.sparseExtractor(false, fullIdx(d.NRow()), func(o Options[I]) SparseExtractor[V, I] { return d.child.SparseColumnFull(o) }, func() DenseExtractor[V, I] { return d.child.DenseColumnFull(opts) }, opts)
}
func (d *DelayedUnaryIsometric[V, I]) SparseColumnBlock(start, length I, opts Options[I]) SparseExtractor[V, I] {
	return d.sparseExtractor(false, blockIdx(start, length), func(o Options[I]) SparseExtractor[V, I] { return d.child.SparseColumnBlock(start, length, o) }, func() DenseExtractor[V, I] { return d.child.DenseColumnBlock(start, length, opts) }, opts)
}
func (d *DelayedUnaryIsometric[V, I]) SparseColumnIndex(idx []I, opts Options[I]) SparseExtractor[V, I] {
	return d.sparseExtractor(false, idx, func(o Options[I]) SparseExtractor[V, I] { return d.child.SparseColumnIndex(idx, o) }, func() DenseExtractor[V, I] { return d.child.DenseColumnIndex(idx, opts) }, opts)
}

// sparseOpts forces value and index extraction on the child regardless of
// what the caller asked for: op.Sparse always needs in.Value to compute its
// output, and some ops (e.g. a column-vector op applied while extracting
// rows) also key off in.Index, even when the caller only wants one or
// neither back.
func (d *DelayedUnaryIsometric[V, I]) sparseOpts(opts Options[I]) Options[I] {
	o := opts
	o.ExtractValue = true
	o.ExtractIndex = true
	return o
}

func (d *DelayedUnaryIsometric[V, I]) sparseExtractor(row bool, positions []I, sparse func(Options[I]) SparseExtractor[V, I], dense func() DenseExtractor[V, I], opts Options[I]) SparseExtractor[V, I] {
	if d.IsSparse() {
		return &unarySparse[V, I]{child: sparse(d.sparseOpts(opts)), op: d.op, row: row, sparse: true}
	}
	return &unarySparse[V, I]{denseChild: dense(), op: d.op, row: row, positions: positions, sparse: false}
}
