package sparse

import (
	"github.com/jbowman-labs/tatami/internal/cache"
	"gonum.org/v1/gonum/mat"
)

// fragmentedSparse is the shared structure behind FragmentedSparseRow and
// FragmentedSparseCol (spec §4.5): each primary element owns a separately
// allocated (values, indices) pair of equal length, indices strictly
// increasing and in [0, secondary).
type fragmentedSparse[V Value, I Index] struct {
	nrow, ncol int
	rowMajor   bool
	secondary  int
	values     [][]V
	indices    [][]I
}

func newFragmentedSparse[V Value, I Index](nrow, ncol int, rowMajor bool, values [][]V, indices [][]I, check bool) (fragmentedSparse[V, I], error) {
	secondary := ncol
	if !rowMajor {
		secondary = nrow
	}
	f := fragmentedSparse[V, I]{nrow: nrow, ncol: ncol, rowMajor: rowMajor, secondary: secondary, values: values, indices: indices}
	if check {
		if err := f.validate(); err != nil {
			return f, err
		}
	}
	return f, nil
}

func (f *fragmentedSparse[V, I]) validate() error {
	if len(f.values) != len(f.indices) {
		return errFragLen(len(f.values), len(f.indices))
	}
	for p := range f.indices {
		if len(f.values[p]) != len(f.indices[p]) {
			return errFragPairLen(p)
		}
		var prev I
		for k, idx := range f.indices[p] {
			if int(idx) < 0 || int(idx) >= f.secondary {
				return errFragRange(p, int(idx), f.secondary)
			}
			if k > 0 && idx <= prev {
				return errFragIncreasing(p)
			}
			prev = idx
		}
	}
	return nil
}

func (f *fragmentedSparse[V, I]) isPrimary(rowFlag bool) bool { return rowFlag == f.rowMajor }

func (f *fragmentedSparse[V, I]) at(primary, secondary int) V {
	for k, idx := range f.indices[primary] {
		if int(idx) == secondary {
			return f.values[primary][k]
		}
	}
	var zero V
	return zero
}

func (f *fragmentedSparse[V, I]) NNZ() int {
	n := 0
	for _, v := range f.values {
		n += len(v)
	}
	return n
}

// fragmentedSlices adapts a fragmentedSparse to cache.Slices: every primary
// element owns its own array, so positions start at 0 (unlike the
// compressed backend's single concatenated array).
type fragmentedSlices[V Value, I Index] struct {
	f *fragmentedSparse[V, I]
}

func (s fragmentedSlices[V, I]) Start(int) int       { return 0 }
func (s fragmentedSlices[V, I]) End(p int) int        { return len(s.f.indices[p]) }
func (s fragmentedSlices[V, I]) At(p, pos int) I       { return s.f.indices[p][pos] }

// FragmentedSparseRow stores each row as an independent (values, indices)
// pair (spec §4.5), with rows as the primary dimension.
type FragmentedSparseRow[V Value, I Index] struct {
	fragmentedSparse[V, I]
}

// NewFragmentedSparseRow builds a row-fragmented matrix from per-row
// (values, indices) pairs. len(values) and len(indices) must equal nrow.
func NewFragmentedSparseRow[V Value, I Index](nrow, ncol int, values [][]V, indices [][]I, check bool) (*FragmentedSparseRow[V, I], error) {
	fs, err := newFragmentedSparse[V, I](nrow, ncol, true, values, indices, check)
	if err != nil {
		return nil, err
	}
	return &FragmentedSparseRow[V, I]{fragmentedSparse: fs}, nil
}

func (f *FragmentedSparseRow[V, I]) NRow() I { return I(f.nrow) }
func (f *FragmentedSparseRow[V, I]) NCol() I { return I(f.ncol) }

func (f *FragmentedSparseRow[V, I]) IsSparse() bool                { return true }
func (f *FragmentedSparseRow[V, I]) SparseProportion() float64     { return 1 }
func (f *FragmentedSparseRow[V, I]) PreferRows() bool              { return true }
func (f *FragmentedSparseRow[V, I]) PreferRowsProportion() float64 { return 1 }
func (f *FragmentedSparseRow[V, I]) UsesOracle(bool) bool          { return false }

func (f *FragmentedSparseRow[V, I]) Dims() (int, int) { return f.nrow, f.ncol }
func (f *FragmentedSparseRow[V, I]) At(i, j int) float64 {
	checkRow(i, f.nrow)
	checkCol(j, f.ncol)
	return float64(f.at(i, j))
}
func (f *FragmentedSparseRow[V, I]) T() mat.Matrix {
	return &FragmentedSparseCol[V, I]{fragmentedSparse: fragmentedSparse[V, I]{
		nrow: f.ncol, ncol: f.nrow, rowMajor: false, secondary: f.secondary, values: f.values, indices: f.indices,
	}}
}

func (f *FragmentedSparseRow[V, I]) DenseRowFull(opts Options[I]) DenseExtractor[V, I] {
	return newFragmentedDenseExtractor[V, I](&f.fragmentedSparse, true, fullSelection(f.ncol), opts)
}
func (f *FragmentedSparseRow[V, I]) DenseRowBlock(start, length I, opts Options[I]) DenseExtractor[V, I] {
	return newFragmentedDenseExtractor[V, I](&f.fragmentedSparse, true, blockSelection[I](int(start), int(length)), opts)
}
func (f *FragmentedSparseRow[V, I]) DenseRowIndex(idx []I, opts Options[I]) DenseExtractor[V, I] {
	return newFragmentedDenseExtractor[V, I](&f.fragmentedSparse, true, indexSelection(idx), opts)
}
func (f *FragmentedSparseRow[V, I]) DenseColumnFull(opts Options[I]) DenseExtractor[V, I] {
	return newFragmentedDenseExtractor[V, I](&f.fragmentedSparse, false, fullSelection(f.nrow), opts)
}
func (f *FragmentedSparseRow[V, I]) DenseColumnBlock(start, length I, opts Options[I]) DenseExtractor[V, I] {
	return newFragmentedDenseExtractor[V, I](&f.fragmentedSparse, false, blockSelection[I](int(start), int(length)), opts)
}
func (f *FragmentedSparseRow[V, I]) DenseColumnIndex(idx []I, opts Options[I]) DenseExtractor[V, I] {
	return newFragmentedDenseExtractor[V, I](&f.fragmentedSparse, false, indexSelection(idx), opts)
}

func (f *FragmentedSparseRow[V, I]) SparseRowFull(opts Options[I]) SparseExtractor[V, I] {
	return newFragmentedSparseExtractor[V, I](&f.fragmentedSparse, true, fullSelection(f.ncol), opts)
}
func (f *FragmentedSparseRow[V, I]) SparseRowBlock(start, length I, opts Options[I]) SparseExtractor[V, I] {
	return newFragmentedSparseExtractor[V, I](&f.fragmentedSparse, true, blockSelection[I](int(start), int(length)), opts)
}
func (f *FragmentedSparseRow[V, I]) SparseRowIndex(idx []I, opts Options[I]) SparseExtractor[V, I] {
	return newFragmentedSparseExtractor[V, I](&f.fragmentedSparse, true, indexSelection(idx), opts)
}
func (f *FragmentedSparseRow[V, I]) SparseColumnFull(opts Options[I]) SparseExtractor[V, I] {
	return newFragmentedSparseExtractor[V, I](&f.fragmentedSparse, false, fullSelection(f.nrow), opts)
}
func (f *FragmentedSparseRow[V, I]) SparseColumnBlock(start, length I, opts Options[I]) SparseExtractor[V, I] {
	return newFragmentedSparseExtractor[V, I](&f.fragmentedSparse, false, blockSelection[I](int(start), int(length)), opts)
}
func (f *FragmentedSparseRow[V, I]) SparseColumnIndex(idx []I, opts Options[I]) SparseExtractor[V, I] {
	return newFragmentedSparseExtractor[V, I](&f.fragmentedSparse, false, indexSelection(idx), opts)
}

// FragmentedSparseCol is the column-fragmented counterpart, with columns as
// the primary dimension.
type FragmentedSparseCol[V Value, I Index] struct {
	fragmentedSparse[V, I]
}

// NewFragmentedSparseCol builds a column-fragmented matrix from per-column
// (values, indices) pairs. len(values) and len(indices) must equal ncol.
func NewFragmentedSparseCol[V Value, I Index](nrow, ncol int, values [][]V, indices [][]I, check bool) (*FragmentedSparseCol[V, I], error) {
	fs, err := newFragmentedSparse[V, I](nrow, ncol, false, values, indices, check)
	if err != nil {
		return nil, err
	}
	return &FragmentedSparseCol[V, I]{fragmentedSparse: fs}, nil
}

func (f *FragmentedSparseCol[V, I]) NRow() I { return I(f.nrow) }
func (f *FragmentedSparseCol[V, I]) NCol() I { return I(f.ncol) }

func (f *FragmentedSparseCol[V, I]) IsSparse() bool                { return true }
func (f *FragmentedSparseCol[V, I]) SparseProportion() float64     { return 1 }
func (f *FragmentedSparseCol[V, I]) PreferRows() bool              { return false }
func (f *FragmentedSparseCol[V, I]) PreferRowsProportion() float64 { return 0 }
func (f *FragmentedSparseCol[V, I]) UsesOracle(bool) bool          { return false }

func (f *FragmentedSparseCol[V, I]) Dims() (int, int) { return f.nrow, f.ncol }
func (f *FragmentedSparseCol[V, I]) At(i, j int) float64 {
	checkRow(i, f.nrow)
	checkCol(j, f.ncol)
	return float64(f.at(j, i))
}
func (f *FragmentedSparseCol[V, I]) T() mat.Matrix {
	return &FragmentedSparseRow[V, I]{fragmentedSparse: fragmentedSparse[V, I]{
		nrow: f.ncol, ncol: f.nrow, rowMajor: true, secondary: f.secondary, values: f.values, indices: f.indices,
	}}
}

func (f *FragmentedSparseCol[V, I]) DenseRowFull(opts Options[I]) DenseExtractor[V, I] {
	return newFragmentedDenseExtractor[V, I](&f.fragmentedSparse, true, fullSelection(f.ncol), opts)
}
func (f *FragmentedSparseCol[V, I]) DenseRowBlock(start, length I, opts Options[I]) DenseExtractor[V, I] {
	return newFragmentedDenseExtractor[V, I](&f.fragmentedSparse, true, blockSelection[I](int(start), int(length)), opts)
}
func (f *FragmentedSparseCol[V, I]) DenseRowIndex(idx []I, opts Options[I]) DenseExtractor[V, I] {
	return newFragmentedDenseExtractor[V, I](&f.fragmentedSparse, true, indexSelection(idx), opts)
}
func (f *FragmentedSparseCol[V, I]) DenseColumnFull(opts Options[I]) DenseExtractor[V, I] {
	return newFragmentedDenseExtractor[V, I](&f.fragmentedSparse, false, fullSelection(f.nrow), opts)
}
func (f *FragmentedSparseCol[V, I]) DenseColumnBlock(start, length I, opts Options[I]) DenseExtractor[V, I] {
	return newFragmentedDenseExtractor[V, I](&f.fragmentedSparse, false, blockSelection[I](int(start), int(length)), opts)
}
func (f *FragmentedSparseCol[V, I]) DenseColumnIndex(idx []I, opts Options[I]) DenseExtractor[V, I] {
	return newFragmentedDenseExtractor[V, I](&f.fragmentedSparse, false, indexSelection(idx), opts)
}

func (f *FragmentedSparseCol[V, I]) SparseRowFull(opts Options[I]) SparseExtractor[V, I] {
	return newFragmentedSparseExtractor[V, I](&f.fragmentedSparse, true, fullSelection(f.ncol), opts)
}
func (f *FragmentedSparseCol[V, I]) SparseRowBlock(start, length I, opts Options[I]) SparseExtractor[V, I] {
	return newFragmentedSparseExtractor[V, I](&f.fragmentedSparse, true, blockSelection[I](int(start), int(length)), opts)
}
func (f *FragmentedSparseCol[V, I]) SparseRowIndex(idx []I, opts Options[I]) SparseExtractor[V, I] {
	return newFragmentedSparseExtractor[V, I](&f.fragmentedSparse, true, indexSelection(idx), opts)
}
func (f *FragmentedSparseCol[V, I]) SparseColumnFull(opts Options[I]) SparseExtractor[V, I] {
	return newFragmentedSparseExtractor[V, I](&f.fragmentedSparse, false, fullSelection(f.nrow), opts)
}
func (f *FragmentedSparseCol[V, I]) SparseColumnBlock(start, length I, opts Options[I]) SparseExtractor[V, I] {
	return newFragmentedSparseExtractor[V, I](&f.fragmentedSparse, false, blockSelection[I](int(start), int(length)), opts)
}
func (f *FragmentedSparseCol[V, I]) SparseColumnIndex(idx []I, opts Options[I]) SparseExtractor[V, I] {
	return newFragmentedSparseExtractor[V, I](&f.fragmentedSparse, false, indexSelection(idx), opts)
}

// --- extraction -----------------------------------------------------

func newFragmentedDenseExtractor[V Value, I Index](f *fragmentedSparse[V, I], row bool, sel selection[I], opts Options[I]) DenseExtractor[V, I] {
	if f.isPrimary(row) {
		return &fragmentedPrimaryDense[V, I]{f: f, sel: sel, oracleCursor: oracleCursor[I]{oracle: opts.Oracle}}
	}
	primaries := primariesFor(sel, len(f.indices))
	c := cache.New[I](primaries, fragmentedSlices[V, I]{f: f}, I(f.secondary))
	return &fragmentedSecondaryDense[V, I]{f: f, primaries: primaries, cache: c, oracleCursor: oracleCursor[I]{oracle: opts.Oracle}}
}

func newFragmentedSparseExtractor[V Value, I Index](f *fragmentedSparse[V, I], row bool, sel selection[I], opts Options[I]) SparseExtractor[V, I] {
	if f.isPrimary(row) {
		return &fragmentedPrimarySparse[V, I]{f: f, sel: sel, opts: opts, oracleCursor: oracleCursor[I]{oracle: opts.Oracle}}
	}
	primaries := primariesFor(sel, len(f.indices))
	c := cache.New[I](primaries, fragmentedSlices[V, I]{f: f}, I(f.secondary))
	return &fragmentedSecondaryExtractor[V, I]{f: f, primaries: primaries, opts: opts, cache: c, oracleCursor: oracleCursor[I]{oracle: opts.Oracle}}
}

type fragmentedPrimaryDense[V Value, I Index] struct {
	f   *fragmentedSparse[V, I]
	sel selection[I]
	oracleCursor[I]
}

func (e *fragmentedPrimaryDense[V, I]) Fetch(i I, buffer []V) []V {
	out := buffer[:e.sel.length]
	for k := range out {
		out[k] = 0
	}
	idx, vals := e.f.indices[i], e.f.values[i]
	switch e.sel.kind {
	case selFull:
		for k, ix := range idx {
			out[ix] = vals[k]
		}
	case selBlock:
		for k, ix := range idx {
			p := int(ix) - e.sel.start
			if p >= 0 && p < e.sel.length {
				out[p] = vals[k]
			}
		}
	case selIndex:
		k := 0
		for p, want := range e.sel.idx {
			for k < len(idx) && idx[k] < want {
				k++
			}
			if k < len(idx) && idx[k] == want {
				out[p] = vals[k]
			}
		}
	}
	return out
}

func (e *fragmentedPrimaryDense[V, I]) FetchNext(buffer []V) (I, []V) {
	i := e.nextIndex()
	return i, e.Fetch(i, buffer)
}

type fragmentedPrimarySparse[V Value, I Index] struct {
	f    *fragmentedSparse[V, I]
	sel  selection[I]
	opts Options[I]
	oracleCursor[I]
}

func (e *fragmentedPrimarySparse[V, I]) Fetch(i I, vbuffer []V, ibuffer []I) Range[V, I] {
	idx, vals := e.f.indices[i], e.f.values[i]
	switch e.sel.kind {
	case selFull:
		return fragSliceRange[V, I](idx, vals, 0, len(idx), vbuffer, ibuffer, 0, e.opts)
	case selBlock:
		lo := lowerBoundSlice(idx, I(e.sel.start))
		hi := lowerBoundSlice(idx, I(e.sel.start+e.sel.length))
		return fragSliceRange[V, I](idx, vals, lo, hi, vbuffer, ibuffer, e.sel.start, e.opts)
	default:
		return fragIndexRange[V, I](idx, vals, e.sel.idx, vbuffer, ibuffer, e.opts)
	}
}

func (e *fragmentedPrimarySparse[V, I]) FetchNext(vbuffer []V, ibuffer []I) (I, Range[V, I]) {
	i := e.nextIndex()
	return i, e.Fetch(i, vbuffer, ibuffer)
}

func lowerBoundSlice[I Index](idx []I, target I) int {
	lo, hi := 0, len(idx)
	for lo < hi {
		mid := lo + (hi-lo)/2
		if idx[mid] < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

func fragSliceRange[V Value, I Index](idx []I, vals []V, lo, hi int, vbuffer []V, ibuffer []I, subtract int, opts Options[I]) Range[V, I] {
	n := hi - lo
	var vout []V
	var iout []I
	if opts.ExtractValue {
		vout = vbuffer[:n]
		copy(vout, vals[lo:hi])
	}
	if opts.ExtractIndex {
		iout = ibuffer[:n]
		for k := 0; k < n; k++ {
			iout[k] = idx[lo+k] - I(subtract)
		}
	}
	return Range[V, I]{Number: n, Value: vout, Index: iout}
}

func fragIndexRange[V Value, I Index](idx []I, vals []V, want []I, vbuffer []V, ibuffer []I, opts Options[I]) Range[V, I] {
	var vout []V
	var iout []I
	count := 0
	k, q := 0, 0
	for k < len(idx) && q < len(want) {
		switch {
		case idx[k] < want[q]:
			k++
		case idx[k] > want[q]:
			q++
		default:
			if opts.ExtractValue {
				vbuffer[count] = vals[k]
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

type fragmentedSecondaryDense[V Value, I Index] struct {
	f         *fragmentedSparse[V, I]
	primaries []int
	cache     *cache.Cache[I]
	oracleCursor[I]
}

func (e *fragmentedSecondaryDense[V, I]) Fetch(secondary I, buffer []V) []V {
	out := buffer[:len(e.primaries)]
	for k := range out {
		out[k] = 0
	}
	e.cache.Search(secondary, func(primary int, posInSelection int, valueOffset int) {
		out[posInSelection] = e.f.values[primary][valueOffset]
	})
	return out
}

func (e *fragmentedSecondaryDense[V, I]) FetchNext(buffer []V) (I, []V) {
	i := e.nextIndex()
	return i, e.Fetch(i, buffer)
}

type fragmentedSecondaryExtractor[V Value, I Index] struct {
	f         *fragmentedSparse[V, I]
	primaries []int
	opts      Options[I]
	cache     *cache.Cache[I]
	oracleCursor[I]
}

func (e *fragmentedSecondaryExtractor[V, I]) Fetch(secondary I, vbuffer []V, ibuffer []I) Range[V, I] {
	count := 0
	e.cache.Search(secondary, func(primary int, posInSelection int, valueOffset int) {
		if e.opts.ExtractValue {
			vbuffer[count] = e.f.values[primary][valueOffset]
		}
		if e.opts.ExtractIndex {
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

func (e *fragmentedSecondaryExtractor[V, I]) FetchNext(vbuffer []V, ibuffer []I) (I, Range[V, I]) {
	i := e.nextIndex()
	return i, e.Fetch(i, vbuffer, ibuffer)
}
