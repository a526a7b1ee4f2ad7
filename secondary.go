package sparse

import "github.com/jbowman-labs/tatami/internal/cache"

// compressedSlices adapts a compressedSparse's Pointers/Indices to the
// cache.Slices contract: the whole module shares one concatenated Values/
// Indices array, so At ignores which primary element it was asked about and
// simply indexes the global array at pos (see internal/cache doc comment).
type compressedSlices[V Value, I Index] struct {
	m *compressedSparse[V, I]
}

func (s compressedSlices[V, I]) Start(p int) int      { start, _ := s.m.raw.Slice(p); return start }
func (s compressedSlices[V, I]) End(p int) int        { _, end := s.m.raw.Slice(p); return end }
func (s compressedSlices[V, I]) At(_, pos int) I      { return s.m.raw.Indices[pos] }

// secondaryDense serves dense secondary-direction extraction (column on
// CSR, row on CSC) via the traversal cache, scattering each hit into the
// caller's buffer (spec §4.4.2).
type secondaryDense[V Value, I Index] struct {
	m         *compressedSparse[V, I]
	sel       selection[I]
	primaries []int
	cache     *cache.Cache[I]
	oracleCursor[I]
}

func newSecondaryDenseExtractor[V Value, I Index](m *compressedSparse[V, I], sel selection[I], opts Options[I]) DenseExtractor[V, I] {
	primaries := primariesFor(sel, m.raw.Primary)
	c := cache.New[I](primaries, compressedSlices[V, I]{m: m}, I(m.raw.Secondary))
	return &secondaryDense[V, I]{m: m, sel: sel, primaries: primaries, cache: c, oracleCursor: oracleCursor[I]{oracle: opts.Oracle}}
}

func primariesFor[I Index](sel selection[I], full int) []int {
	switch sel.kind {
	case selFull:
		out := make([]int, full)
		for i := range out {
			out[i] = i
		}
		return out
	case selBlock:
		out := make([]int, sel.length)
		for i := range out {
			out[i] = sel.start + i
		}
		return out
	default:
		out := make([]int, len(sel.idx))
		for i, v := range sel.idx {
			out[i] = int(v)
		}
		return out
	}
}

func (e *secondaryDense[V, I]) Fetch(secondary I, buffer []V) []V {
	out := buffer[:len(e.primaries)]
	for k := range out {
		out[k] = 0
	}
	e.cache.Search(secondary, func(_ int, posInSelection int, valueOffset int) {
		out[posInSelection] = e.m.raw.Values[valueOffset]
	})
	return out
}

func (e *secondaryDense[V, I]) FetchNext(buffer []V) (I, []V) {
	i := e.nextIndex()
	return i, e.Fetch(i, buffer)
}

// secondaryExtractor serves sparse secondary-direction extraction.
type secondaryExtractor[V Value, I Index] struct {
	m         *compressedSparse[V, I]
	sel       selection[I]
	primaries []int
	opts      Options[I]
	cache     *cache.Cache[I]
	oracleCursor[I]
}

func newSecondaryExtractor[V Value, I Index](m *compressedSparse[V, I], sel selection[I], opts Options[I]) SparseExtractor[V, I] {
	primaries := primariesFor(sel, m.raw.Primary)
	c := cache.New[I](primaries, compressedSlices[V, I]{m: m}, I(m.raw.Secondary))
	return &secondaryExtractor[V, I]{m: m, sel: sel, primaries: primaries, opts: opts, cache: c, oracleCursor: oracleCursor[I]{oracle: opts.Oracle}}
}

func (e *secondaryExtractor[V, I]) Fetch(secondary I, vbuffer []V, ibuffer []I) Range[V, I] {
	count := 0
	e.cache.Search(secondary, func(_ int, posInSelection int, valueOffset int) {
		if e.opts.ExtractValue {
			vbuffer[count] = e.m.raw.Values[valueOffset]
		}
		if e.opts.ExtractIndex {
			// Reported in selection-space (block- or index-list-relative),
			// matching the dense path and the primary-direction indexed
			// case (spec §4.4.1/§4.4.2).
			ibuffer[count] = I(posInSelection)
		}
		count++
	})
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

func (e *secondaryExtractor[V, I]) FetchNext(vbuffer []V, ibuffer []I) (I, Range[V, I]) {
	i := e.nextIndex()
	return i, e.Fetch(i, vbuffer, ibuffer)
}
