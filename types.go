package sparse

import "golang.org/x/exp/constraints"

// Value is the set of numeric types usable as the value type of a matrix.
// Callers choose the concrete value width (e.g. float64, float32, int32);
// the package never promotes across a mismatch - see DelayedCast.
type Value interface {
	~float64 | ~float32 |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Index is the set of integer types usable to address rows and columns.
// It must be wide enough to hold both dimensions of any matrix it indexes.
type Index interface {
	constraints.Integer
}
