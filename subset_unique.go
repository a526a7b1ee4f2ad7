package sparse

// NewDelayedSubsetUnique builds a DelayedSubset over a subset vector known
// to contain no duplicates but not necessarily sorted (spec §4.7 case 3).
// The child is queried with a sorted copy of the subset (for its own
// benefit), and results are permuted back into subset order.
func NewDelayedSubsetUnique[V Value, I Index](child Matrix[V, I], alongRows bool, subset []I, check bool) (*DelayedSubset[V, I], error) {
	if check {
		seen := make(map[I]struct{}, len(subset))
		for _, v := range subset {
			if _, dup := seen[v]; dup {
				return nil, errSubsetNotUnique()
			}
			seen[v] = struct{}{}
		}
	}
	return newDelayedSubset[V, I](child, alongRows, subset, subsetUnique), nil
}
