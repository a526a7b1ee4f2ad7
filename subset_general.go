package sparse

// NewDelayedSubsetGeneral builds a DelayedSubset over an arbitrary subset
// vector: possibly duplicated and unsorted (spec §4.7 case 4, combining
// cases 2 and 3). No invariant is assumed or checked; the general
// sort-and-group construction in subsetTables handles any input.
func NewDelayedSubsetGeneral[V Value, I Index](child Matrix[V, I], alongRows bool, subset []I) *DelayedSubset[V, I] {
	return newDelayedSubset[V, I](child, alongRows, subset, subsetGeneral)
}
