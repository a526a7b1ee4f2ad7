package sparse

// NewDelayedSubsetSortedUnique builds a DelayedSubset over a subset vector
// known to be strictly increasing (spec §4.7 case 1). This is the cheapest
// variant: every occByRank run built by the shared extraction engine has
// length exactly one, so along-direction access never expands duplicates.
func NewDelayedSubsetSortedUnique[V Value, I Index](child Matrix[V, I], alongRows bool, subset []I, check bool) (*DelayedSubset[V, I], error) {
	if check {
		for i := 1; i < len(subset); i++ {
			if subset[i] <= subset[i-1] {
				return nil, errSubsetNotSorted()
			}
		}
	}
	return newDelayedSubset[V, I](child, alongRows, subset, subsetSortedUnique), nil
}
