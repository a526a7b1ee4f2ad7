package sparse

// Range is the immutable view returned by a sparse extractor for one row
// or column (see spec §4.1). Value and Index are only valid until the next
// Fetch call on the extractor that produced them - they may alias the
// caller-supplied buffers or the backend's own storage.
type Range[V Value, I Index] struct {
	// Number is the count of reported structural non-zeros.
	Number int

	// Value holds Number values, or is nil if the caller asked not to
	// materialise values (Options.ExtractValue == false).
	Value []V

	// Index holds Number secondary-dimension indices in ascending order
	// whenever Options.OrderedIndex was requested, or is nil if the caller
	// asked not to materialise indices (Options.ExtractIndex == false).
	Index []I
}
