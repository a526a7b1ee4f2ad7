package sparse

import "gonum.org/v1/gonum/mat"

// DenseExtractor is bound to one dimension (rows or columns) and one
// selection shape (full, block or index list) of a matrix. Fetch is the
// myopic operation: the caller supplies the target row/column index.
// FetchNext is the oracular mode: the extractor obtains the next index from
// its attached Oracle instead. Both return the same data, written into the
// caller-supplied buffer, which must be large enough for the selection
// shape. The returned slice may or may not alias buffer - backends may hand
// back a pointer into their own storage to avoid a copy; callers must never
// write through it.
type DenseExtractor[V Value, I Index] interface {
	Fetch(i I, buffer []V) []V
	FetchNext(buffer []V) (I, []V)
}

// SparseExtractor is the sparse-result counterpart of DenseExtractor.
type SparseExtractor[V Value, I Index] interface {
	Fetch(i I, vbuffer []V, ibuffer []I) Range[V, I]
	FetchNext(vbuffer []V, ibuffer []I) (I, Range[V, I])
}

// Matrix is the abstract, read-only contract implemented identically by
// concrete backends and by every delayed wrapper (spec §4.3). Implementers
// also satisfy gonum's mat.Matrix for V == float64 instantiations via At/
// Dims/T, so they interoperate with the wider gonum ecosystem.
type Matrix[V Value, I Index] interface {
	NRow() I
	NCol() I

	// IsSparse reports whether the matrix is considered sparse, and
	// SparseProportion gives the proportion of structural non-zeros in
	// [0,1] - useful when a bind wraps matrices of mixed sparsity.
	IsSparse() bool
	SparseProportion() float64

	// PreferRows and PreferRowsProportion identify which dimension is
	// cheap to iterate, e.g. for a DelayedBind of mixed row-/column-major
	// children.
	PreferRows() bool
	PreferRowsProportion() float64

	// UsesOracle reports whether the extractor for the given dimension
	// ("row" when true) takes advantage of an attached Oracle. Core
	// backends always report false; delayed wrappers may report their
	// child's answer.
	UsesOracle(row bool) bool

	DenseRowFull(opts Options[I]) DenseExtractor[V, I]
	DenseRowBlock(start, length I, opts Options[I]) DenseExtractor[V, I]
	DenseRowIndex(idx []I, opts Options[I]) DenseExtractor[V, I]
	DenseColumnFull(opts Options[I]) DenseExtractor[V, I]
	DenseColumnBlock(start, length I, opts Options[I]) DenseExtractor[V, I]
	DenseColumnIndex(idx []I, opts Options[I]) DenseExtractor[V, I]

	SparseRowFull(opts Options[I]) SparseExtractor[V, I]
	SparseRowBlock(start, length I, opts Options[I]) SparseExtractor[V, I]
	SparseRowIndex(idx []I, opts Options[I]) SparseExtractor[V, I]
	SparseColumnFull(opts Options[I]) SparseExtractor[V, I]
	SparseColumnBlock(start, length I, opts Options[I]) SparseExtractor[V, I]
	SparseColumnIndex(idx []I, opts Options[I]) SparseExtractor[V, I]
}

// Sparser augments Matrix with an NNZ method reporting stored non-zeros,
// matching the teacher's own Sparser contract.
type Sparser[V Value, I Index] interface {
	Matrix[V, I]
	NNZ() int
}

// denseRowOf reads a full row out of m using its dense extractor, a small
// convenience behind AtRow and the package's tests.
func denseRowOf[V Value, I Index](m Matrix[V, I], i I) []V {
	ext := m.DenseRowFull(DefaultOptions[I]())
	buf := make([]V, m.NCol())
	return ext.Fetch(i, buf)
}

func denseColOf[V Value, I Index](m Matrix[V, I], j I) []V {
	ext := m.DenseColumnFull(DefaultOptions[I]())
	buf := make([]V, m.NRow())
	return ext.Fetch(j, buf)
}

// AtRow returns the value at (i, j) by extracting row i densely. It is a
// convenience for tests and simple callers; hot loops should hold an
// extractor instead of calling this per-element.
func AtRow[V Value, I Index](m Matrix[V, I], i, j I) V {
	row := denseRowOf(m, i)
	return row[j]
}

// checkRow and checkCol mirror gonum's own precondition panics (mat.ErrRowAccess etc.)
// rather than returning an error - spec §7 treats out-of-range access as a
// precondition violation the core does not verify for performance, and the
// teacher's own convention for this is to panic with a gonum sentinel.
func checkRow(i, nrow int) {
	if uint(i) >= uint(nrow) {
		panic(mat.ErrRowAccess)
	}
}

func checkCol(j, ncol int) {
	if uint(j) >= uint(ncol) {
		panic(mat.ErrColAccess)
	}
}
