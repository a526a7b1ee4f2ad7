package sparse

// Options is threaded through every extractor constructor (spec §4.2).
// The zero value requests neither values nor indices, unordered, with no
// reuse hint and no oracle; DefaultOptions gives the conservative default.
type Options[I Index] struct {
	// ExtractValue, if false, permits sparse extractors to leave Range.Value
	// nil and skip loading values entirely.
	ExtractValue bool

	// ExtractIndex, if false, permits sparse extractors to leave Range.Index
	// nil and skip loading indices entirely.
	ExtractIndex bool

	// OrderedIndex requires that returned indices be strictly ascending.
	// When false, backends may return indices in any order, but they remain
	// unique; delayed subsetting along the perpendicular dimension is the
	// only core component that can introduce unsortedness.
	OrderedIndex bool

	// CacheForReuse hints that the same row/column may be re-requested, so
	// a backend may choose to memoise.
	CacheForReuse bool

	// Oracle, if non-nil, promises the sequence of forthcoming requests to
	// FetchNext. Core backends ignore it; delayed wrappers may remap it for
	// their child. It must never change the result, only its latency.
	Oracle Oracle[I]
}

// DefaultOptions returns the conservative default: both values and indices
// materialised and ordered, matching spec's "ascending order" guarantee
// holding by default for every primary-dimension extraction.
func DefaultOptions[I Index]() Options[I] {
	return Options[I]{ExtractValue: true, ExtractIndex: true, OrderedIndex: true}
}

// Oracle promises that the sequence of forthcoming requests on an extractor
// will be exactly Get(0), Get(1), ..., Get(Total()-1) (spec §4.2). It exists
// so that a backend with expensive random access can prefetch; it must never
// alter the result of a fetch, only its latency.
type Oracle[I Index] interface {
	Get(i int) I
	Total() int
}

// sliceOracle is the straightforward Oracle over a fixed, known sequence of
// indices - the common case used by delayed wrappers that remap a parent
// oracle onto a child's index space.
type sliceOracle[I Index] struct {
	seq []I
}

// NewSliceOracle builds an Oracle that replays seq verbatim.
func NewSliceOracle[I Index](seq []I) Oracle[I] {
	return &sliceOracle[I]{seq: seq}
}

func (o *sliceOracle[I]) Get(i int) I { return o.seq[i] }
func (o *sliceOracle[I]) Total() int  { return len(o.seq) }
