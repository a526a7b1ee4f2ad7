package sparse

// NewDelayedSubsetSorted builds a DelayedSubset over a subset vector known
// to be non-decreasing but possibly containing duplicates (spec §4.7 case
// 2). The child is asked only for the unique elements of the subset, and
// each result is expanded by the run length of its duplicates.
func NewDelayedSubsetSorted[V Value, I Index](child Matrix[V, I], alongRows bool, subset []I, check bool) (*DelayedSubset[V, I], error) {
	if check {
		for i := 1; i < len(subset); i++ {
			if subset[i] < subset[i-1] {
				return nil, errSubsetNotSorted()
			}
		}
	}
	return newDelayedSubset[V, I](child, alongRows, subset, subsetSorted), nil
}
