// Package scratch provides pooled reusable buffers, adapted from the
// teacher's own sync.Pool-backed getFloats/getInts/putFloats/putInts in
// pool.go. sync.Pool only deals in interface{}, so unlike the teacher's
// float64-specific pool this one is pinned to []int. Its one user is the
// triplet-to-compressed conversion in triplets.go, which takes its
// counting arrays from here.
package scratch

import "sync"

const pooledIntSize = 200

var intPool = sync.Pool{
	New: func() interface{} {
		return make([]int, pooledIntSize)
	},
}

// Ints returns a []int of length l, possibly reused from the pool.
func Ints(l int) []int {
	w := intPool.Get().([]int)
	if cap(w) < l {
		return make([]int, l)
	}
	return w[:l]
}

// PutInts returns w to the pool. w must not be used afterwards, and must
// not be a slice whose backing array is referenced elsewhere.
func PutInts(w []int) {
	if cap(w) >= pooledIntSize {
		intPool.Put(w)
	}
}
