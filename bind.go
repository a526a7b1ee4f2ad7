package sparse

import "gonum.org/v1/gonum/mat"

// DelayedBind stacks matrices along one axis (spec §4.9). All children must
// agree on the perpendicular dimension. Every request is delegated to the
// child (or children) owning the requested along-index, after translating
// that index into the child's own coordinate space.
type DelayedBind[V Value, I Index] struct {
	children  []Matrix[V, I]
	alongRows bool
	offsets   []int // offsets[k] is the first along-index owned by children[k]
	total     int
}

// NewDelayedBind stacks children along rows (alongRows=true) or columns. It
// panics if the perpendicular dimensions disagree, matching the teacher's
// own convention of panicking on shape mismatches discovered at
// construction rather than returning an error (c.f. gonum's own ErrShape
// panics).
func NewDelayedBind[V Value, I Index](alongRows bool, children ...Matrix[V, I]) *DelayedBind[V, I] {
	offsets := make([]int, len(children))
	total := 0
	var perp I
	for k, c := range children {
		var p I
		if alongRows {
			p = c.NCol()
		} else {
			p = c.NRow()
		}
		if k == 0 {
			perp = p
		} else if p != perp {
			panic("tatami: DelayedBind children disagree on perpendicular dimension")
		}
		offsets[k] = total
		if alongRows {
			total += int(c.NRow())
		} else {
			total += int(c.NCol())
		}
	}
	return &DelayedBind[V, I]{children: children, alongRows: alongRows, offsets: offsets, total: total}
}

// locate returns the child owning along-index i and i translated into that
// child's own coordinate space.
func (d *DelayedBind[V, I]) locate(i int) (int, int) {
	k := 0
	for k+1 < len(d.offsets) && d.offsets[k+1] <= i {
		k++
	}
	return k, i - d.offsets[k]
}

func (d *DelayedBind[V, I]) NRow() I {
	if d.alongRows {
		return I(d.total)
	}
	return d.children[0].NRow()
}
func (d *DelayedBind[V, I]) NCol() I {
	if d.alongRows {
		return d.children[0].NCol()
	}
	return I(d.total)
}

func (d *DelayedBind[V, I]) IsSparse() bool { return d.SparseProportion() > 0.5 }

// SparseProportion reports the weighted average of child proportions (spec
// §4.9), weighted by each child's share of the along dimension.
func (d *DelayedBind[V, I]) SparseProportion() float64 {
	if d.total == 0 {
		return 0
	}
	sum := 0.0
	for k, c := range d.children {
		n := d.childAlongLen(k)
		sum += c.SparseProportion() * float64(n)
	}
	return sum / float64(d.total)
}

func (d *DelayedBind[V, I]) childAlongLen(k int) int {
	if d.alongRows {
		return int(d.children[k].NRow())
	}
	return int(d.children[k].NCol())
}

func (d *DelayedBind[V, I]) PreferRows() bool { return d.PreferRowsProportion() > 0.5 }
func (d *DelayedBind[V, I]) PreferRowsProportion() float64 {
	if len(d.children) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range d.children {
		sum += c.PreferRowsProportion()
	}
	return sum / float64(len(d.children))
}

// UsesOracle is always false: binding fans a single fetch out across
// however many children overlap the requested along-range, so there is no
// single child oracle to forward predictions to.
func (d *DelayedBind[V, I]) UsesOracle(bool) bool { return false }

func (d *DelayedBind[V, I]) Dims() (int, int) { return int(d.NRow()), int(d.NCol()) }
func (d *DelayedBind[V, I]) At(i, j int) float64 {
	checkRow(i, int(d.NRow()))
	checkCol(j, int(d.NCol()))
	if d.alongRows {
		k, li := d.locate(i)
		return d.children[k].(mat.Matrix).At(li, j)
	}
	k, lj := d.locate(j)
	return d.children[k].(mat.Matrix).At(i, lj)
}
func (d *DelayedBind[V, I]) T() mat.Matrix { return &DelayedTranspose[V, I]{child: d} }

// bindStep is one child's contribution to an along-direction request: the
// child index, the selection to forward to it (already translated into the
// child's own along-space), and where in the overall output this child's
// results start.
type bindStep[I Index] struct {
	child    int
	localSel selection[I]
	outStart int
}

// planAlong partitions sel - a selection expressed over the full along
// dimension (the dimension being stacked) - into per-child steps. Index
// selections are assumed sorted and unique, matching the convention used
// throughout the package for "arbitrary index vector" selections, so each
// child's share of idx is a single contiguous run.
func (d *DelayedBind[V, I]) planAlong(sel selection[I]) []bindStep[I] {
	switch sel.kind {
	case selFull:
		steps := make([]bindStep[I], len(d.children))
		for k := range d.children {
			steps[k] = bindStep[I]{child: k, localSel: fullSelection[I](d.childAlongLen(k)), outStart: d.offsets[k]}
		}
		return steps
	case selBlock:
		var steps []bindStep[I]
		lo, hi := sel.start, sel.start+sel.length
		for k := range d.children {
			cstart := d.offsets[k]
			cend := cstart + d.childAlongLen(k)
			os, oe := maxInt(lo, cstart), minInt(hi, cend)
			if os < oe {
				steps = append(steps, bindStep[I]{
					child:    k,
					localSel: blockSelection[I](os-cstart, oe-os),
					outStart: os - lo,
				})
			}
		}
		return steps
	default:
		var steps []bindStep[I]
		i := 0
		for k := range d.children {
			cstart := d.offsets[k]
			cend := cstart + d.childAlongLen(k)
			start := i
			for i < len(sel.idx) && int(sel.idx[i]) < cend {
				i++
			}
			if i > start {
				local := make([]I, i-start)
				for p := start; p < i; p++ {
					local[p-start] = sel.idx[p] - I(cstart)
				}
				steps = append(steps, bindStep[I]{child: k, localSel: indexSelection(local), outStart: start})
			}
		}
		return steps
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func childDenseExtractor[V Value, I Index](c Matrix[V, I], row bool, sel selection[I], opts Options[I]) DenseExtractor[V, I] {
	if row {
		switch sel.kind {
		case selFull:
			return c.DenseRowFull(opts)
		case selBlock:
			return c.DenseRowBlock(I(sel.start), I(sel.length), opts)
		default:
			return c.DenseRowIndex(sel.idx, opts)
		}
	}
	switch sel.kind {
	case selFull:
		return c.DenseColumnFull(opts)
	case selBlock:
		return c.DenseColumnBlock(I(sel.start), I(sel.length), opts)
	default:
		return c.DenseColumnIndex(sel.idx, opts)
	}
}

func childSparseExtractor[V Value, I Index](c Matrix[V, I], row bool, sel selection[I], opts Options[I]) SparseExtractor[V, I] {
	if row {
		switch sel.kind {
		case selFull:
			return c.SparseRowFull(opts)
		case selBlock:
			return c.SparseRowBlock(I(sel.start), I(sel.length), opts)
		default:
			return c.SparseRowIndex(sel.idx, opts)
		}
	}
	switch sel.kind {
	case selFull:
		return c.SparseColumnFull(opts)
	case selBlock:
		return c.SparseColumnBlock(I(sel.start), I(sel.length), opts)
	default:
		return c.SparseColumnIndex(sel.idx, opts)
	}
}

// bindDense serves both directions of DelayedBind. When row matches
// alongRows, i itself identifies the along-coordinate (the row, say, of a
// row bind): the request is perpendicular, a single child owns i, and sel
// (over columns) forwards untouched since columns align 1:1 across
// children. Otherwise i is a shared perpendicular coordinate (a column of a
// row bind) and sel selects across the along dimension, so the request
// fans out across every child sel overlaps.
type bindDense[V Value, I Index] struct {
	d    *DelayedBind[V, I]
	row  bool
	sel  selection[I]
	opts Options[I]
}

func (e *bindDense[V, I]) Fetch(i I, buffer []V) []V {
	if e.row == e.d.alongRows {
		k, li := e.d.locate(int(i))
		return childDenseExtractor(e.d.children[k], e.row, e.sel, e.opts).Fetch(I(li), buffer)
	}
	out := buffer[:e.sel.length]
	for _, st := range e.d.planAlong(e.sel) {
		sub := childDenseExtractor(e.d.children[st.child], e.row, st.localSel, e.opts)
		vals := sub.Fetch(i, out[st.outStart:st.outStart+st.localSel.length])
		copy(out[st.outStart:st.outStart+st.localSel.length], vals)
	}
	return out
}
func (e *bindDense[V, I]) FetchNext([]V) (I, []V) {
	panic("tatami: DelayedBind oracular access is unsupported, see UsesOracle")
}

func (d *DelayedBind[V, I]) DenseRowFull(opts Options[I]) DenseExtractor[V, I] {
	return &bindDense[V, I]{d: d, opts: opts, row: true, sel: fullSelection[I](int(d.NCol()))}
}
func (d *DelayedBind[V, I]) DenseRowBlock(start, length I, opts Options[I]) DenseExtractor[V, I] {
	return &bindDense[V, I]{d: d, opts: opts, row: true, sel: blockSelection[I](int(start), int(length))}
}
func (d *DelayedBind[V, I]) DenseRowIndex(idx []I, opts Options[I]) DenseExtractor[V, I] {
	return &bindDense[V, I]{d: d, opts: opts, row: true, sel: indexSelection(idx)}
}
func (d *DelayedBind[V, I]) DenseColumnFull(opts Options[I]) DenseExtractor[V, I] {
	return &bindDense[V, I]{d: d, opts: opts, row: false, sel: fullSelection[I](int(d.NRow()))}
}
func (d *DelayedBind[V, I]) DenseColumnBlock(start, length I, opts Options[I]) DenseExtractor[V, I] {
	return &bindDense[V, I]{d: d, opts: opts, row: false, sel: blockSelection[I](int(start), int(length))}
}
func (d *DelayedBind[V, I]) DenseColumnIndex(idx []I, opts Options[I]) DenseExtractor[V, I] {
	return &bindDense[V, I]{d: d, opts: opts, row: false, sel: indexSelection(idx)}
}

type bindSparse[V Value, I Index] struct {
	d    *DelayedBind[V, I]
	row  bool
	sel  selection[I]
	opts Options[I]
}

func (e *bindSparse[V, I]) Fetch(i I, vbuffer []V, ibuffer []I) Range[V, I] {
	if e.row == e.d.alongRows {
		k, li := e.d.locate(int(i))
		return childSparseExtractor(e.d.children[k], e.row, e.sel, e.opts).Fetch(I(li), vbuffer, ibuffer)
	}
	count := 0
	for _, st := range e.d.planAlong(e.sel) {
		sub := childSparseExtractor(e.d.children[st.child], e.row, st.localSel, e.opts)
		vscratch := make([]V, st.localSel.length)
		iscratch := make([]I, st.localSel.length)
		ref := sub.Fetch(i, vscratch, iscratch)
		for k := 0; k < ref.Number; k++ {
			if e.opts.ExtractValue {
				vbuffer[count] = ref.Value[k]
			}
			if e.opts.ExtractIndex {
				ibuffer[count] = ref.Index[k] + I(st.outStart)
			}
			count++
		}
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
func (e *bindSparse[V, I]) FetchNext([]V, []I) (I, Range[V, I]) {
	panic("tatami: DelayedBind oracular access is unsupported, see UsesOracle")
}

func (d *DelayedBind[V, I]) SparseRowFull(opts Options[I]) SparseExtractor[V, I] {
	return &bindSparse[V, I]{d: d, opts: opts, row: true, sel: fullSelection[I](int(d.NCol()))}
}
func (d *DelayedBind[V, I]) SparseRowBlock(start, length I, opts Options[I]) SparseExtractor[V, I] {
	return &bindSparse[V, I]{d: d, opts: opts, row: true, sel: blockSelection[I](int(start), int(length))}
}
func (d *DelayedBind[V, I]) SparseRowIndex(idx []I, opts Options[I]) SparseExtractor[V, I] {
	return &bindSparse[V, I]{d: d, opts: opts, row: true, sel: indexSelection(idx)}
}
func (d *DelayedBind[V, I]) SparseColumnFull(opts Options[I]) SparseExtractor[V, I] {
	return &bindSparse[V, I]{d: d, opts: opts, row: false, sel: fullSelection[I](int(d.NRow()))}
}
func (d *DelayedBind[V, I]) SparseColumnBlock(start, length I, opts Options[I]) SparseExtractor[V, I] {
	return &bindSparse[V, I]{d: d, opts: opts, row: false, sel: blockSelection[I](int(start), int(length))}
}
func (d *DelayedBind[V, I]) SparseColumnIndex(idx []I, opts Options[I]) SparseExtractor[V, I] {
	return &bindSparse[V, I]{d: d, opts: opts, row: false, sel: indexSelection(idx)}
}
