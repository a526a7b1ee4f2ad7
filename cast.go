package sparse

import "gonum.org/v1/gonum/mat"

// DelayedCast translates the value and index types of a child matrix
// through element-wise casting in the extractor (spec §4.9).
type DelayedCast[V Value, I Index, CV Value, CI Index] struct {
	child Matrix[CV, CI]
}

// NewDelayedCast wraps child, presenting it as a Matrix[V,I] by casting
// every value and index through Go's numeric conversion rules.
func NewDelayedCast[V Value, I Index, CV Value, CI Index](child Matrix[CV, CI]) *DelayedCast[V, I, CV, CI] {
	return &DelayedCast[V, I, CV, CI]{child: child}
}

func (d *DelayedCast[V, I, CV, CI]) NRow() I { return I(d.child.NRow()) }
func (d *DelayedCast[V, I, CV, CI]) NCol() I { return I(d.child.NCol()) }

func (d *DelayedCast[V, I, CV, CI]) IsSparse() bool                { return d.child.IsSparse() }
func (d *DelayedCast[V, I, CV, CI]) SparseProportion() float64     { return d.child.SparseProportion() }
func (d *DelayedCast[V, I, CV, CI]) PreferRows() bool              { return d.child.PreferRows() }
func (d *DelayedCast[V, I, CV, CI]) PreferRowsProportion() float64 { return d.child.PreferRowsProportion() }
func (d *DelayedCast[V, I, CV, CI]) UsesOracle(row bool) bool      { return d.child.UsesOracle(row) }

func (d *DelayedCast[V, I, CV, CI]) Dims() (int, int) { return int(d.NRow()), int(d.NCol()) }
func (d *DelayedCast[V, I, CV, CI]) At(i, j int) float64 {
	checkRow(i, int(d.NRow()))
	checkCol(j, int(d.NCol()))
	return d.child.(mat.Matrix).At(i, j)
}
func (d *DelayedCast[V, I, CV, CI]) T() mat.Matrix {
	return &DelayedCast[V, I, CV, CI]{child: matMatrixT[CV, CI](d.child)}
}

func matMatrixT[CV Value, CI Index](m Matrix[CV, CI]) Matrix[CV, CI] {
	return m.(mat.Matrix).T().(Matrix[CV, CI])
}

func castOpts[CI Index, I Index](opts Options[I]) Options[CI] {
	out := Options[CI]{
		ExtractValue:  opts.ExtractValue,
		ExtractIndex:  opts.ExtractIndex,
		OrderedIndex:  opts.OrderedIndex,
		CacheForReuse: opts.CacheForReuse,
	}
	if opts.Oracle != nil {
		out.Oracle = &castOracle[CI, I]{parent: opts.Oracle}
	}
	return out
}

// castOracle remaps a parent Oracle[I] onto the child's index type, so an
// oracular request made through a DelayedCast still reaches the child.
type castOracle[CI Index, I Index] struct {
	parent Oracle[I]
}

func (o *castOracle[CI, I]) Get(i int) CI { return CI(o.parent.Get(i)) }
func (o *castOracle[CI, I]) Total() int   { return o.parent.Total() }

func castIndices[CI Index, I Index](idx []I) []CI {
	out := make([]CI, len(idx))
	for k, v := range idx {
		out[k] = CI(v)
	}
	return out
}

type castDense[V Value, I Index, CV Value, CI Index] struct {
	child DenseExtractor[CV, CI]
}

func (e *castDense[V, I, CV, CI]) Fetch(i I, buffer []V) []V {
	scratch := make([]CV, len(buffer))
	ref := e.child.Fetch(CI(i), scratch)
	out := buffer[:len(ref)]
	for k, v := range ref {
		out[k] = V(v)
	}
	return out
}
func (e *castDense[V, I, CV, CI]) FetchNext(buffer []V) (I, []V) {
	scratch := make([]CV, len(buffer))
	ci, ref := e.child.FetchNext(scratch)
	out := buffer[:len(ref)]
	for k, v := range ref {
		out[k] = V(v)
	}
	return I(ci), out
}

type castSparse[V Value, I Index, CV Value, CI Index] struct {
	child SparseExtractor[CV, CI]
}

func (e *castSparse[V, I, CV, CI]) Fetch(i I, vbuffer []V, ibuffer []I) Range[V, I] {
	vs := make([]CV, len(vbuffer))
	is := make([]CI, len(ibuffer))
	ref := e.child.Fetch(CI(i), vs, is)
	return castRange[V, I](ref, vbuffer, ibuffer)
}
func (e *castSparse[V, I, CV, CI]) FetchNext(vbuffer []V, ibuffer []I) (I, Range[V, I]) {
	vs := make([]CV, len(vbuffer))
	is := make([]CI, len(ibuffer))
	ci, ref := e.child.FetchNext(vs, is)
	return I(ci), castRange[V, I](ref, vbuffer, ibuffer)
}

func castRange[V Value, I Index, CV Value, CI Index](ref Range[CV, CI], vbuffer []V, ibuffer []I) Range[V, I] {
	var vout []V
	var iout []I
	if ref.Value != nil {
		vout = vbuffer[:ref.Number]
		for k, v := range ref.Value {
			vout[k] = V(v)
		}
	}
	if ref.Index != nil {
		iout = ibuffer[:ref.Number]
		for k, v := range ref.Index {
			iout[k] = I(v)
		}
	}
	return Range[V, I]{Number: ref.Number, Value: vout, Index: iout}
}

func (d *DelayedCast[V, I, CV, CI]) DenseRowFull(opts Options[I]) DenseExtractor[V, I] {
	return &castDense[V, I, CV, CI]{child: d.child.DenseRowFull(castOpts[CI](opts))}
}
func (d *DelayedCast[V, I, CV, CI]) DenseRowBlock(start, length I, opts Options[I]) DenseExtractor[V, I] {
	return &castDense[V, I, CV, CI]{child: d.child.DenseRowBlock(CI(start), CI(length), castOpts[CI](opts))}
}
func (d *DelayedCast[V, I, CV, CI]) DenseRowIndex(idx []I, opts Options[I]) DenseExtractor[V, I] {
	return &castDense[V, I, CV, CI]{child: d.child.DenseRowIndex(castIndices[CI](idx), castOpts[CI](opts))}
}
func (d *DelayedCast[V, I, CV, CI]) DenseColumnFull(opts Options[I]) DenseExtractor[V, I] {
	return &castDense[V, I, CV, CI]{child: d.child.DenseColumnFull(castOpts[CI](opts))}
}
func (d *DelayedCast[V, I, CV, CI]) DenseColumnBlock(start, length I, opts Options[I]) DenseExtractor[V, I] {
	return &castDense[V, I, CV, CI]{child: d.child.DenseColumnBlock(CI(start), CI(length), castOpts[CI](opts))}
}
func (d *DelayedCast[V, I, CV, CI]) DenseColumnIndex(idx []I, opts Options[I]) DenseExtractor[V, I] {
	return &castDense[V, I, CV, CI]{child: d.child.DenseColumnIndex(castIndices[CI](idx), castOpts[CI](opts))}
}

func (d *DelayedCast[V, I, CV, CI]) SparseRowFull(opts Options[I]) SparseExtractor[V, I] {
	return &castSparse[V, I, CV, CI]{child: d.child.SparseRowFull(castOpts[CI](opts))}
}
func (d *DelayedCast[V, I, CV, CI]) SparseRowBlock(start, length I, opts Options[I]) SparseExtractor[V, I] {
	return &castSparse[V, I, CV, CI]{child: d.child.SparseRowBlock(CI(start), CI(length), castOpts[CI](opts))}
}
func (d *DelayedCast[V, I, CV, CI]) SparseRowIndex(idx []I, opts Options[I]) SparseExtractor[V, I] {
	return &castSparse[V, I, CV, CI]{child: d.child.SparseRowIndex(castIndices[CI](idx), castOpts[CI](opts))}
}
func (d *DelayedCast[V, I, CV, CI]) SparseColumnFull(opts Options[I]) SparseExtractor[V, I] {
	return &castSparse[V, I, CV, CI]{child: d.child.SparseColumnFull(castOpts[CI](opts))}
}
func (d *DelayedCast[V, I, CV, CI]) SparseColumnBlock(start, length I, opts Options[I]) SparseExtractor[V, I] {
	return &castSparse[V, I, CV, CI]{child: d.child.SparseColumnBlock(CI(start), CI(length), castOpts[CI](opts))}
}
func (d *DelayedCast[V, I, CV, CI]) SparseColumnIndex(idx []I, opts Options[I]) SparseExtractor[V, I] {
	return &castSparse[V, I, CV, CI]{child: d.child.SparseColumnIndex(castIndices[CI](idx), castOpts[CI](opts))}
}
