package cache

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

// sliceStore is a plain Slices[int] over, per primary element, a sorted
// slice of secondary indices - standing in for both the compressed- and
// fragmented-backend Slices implementations.
type sliceStore struct {
	idx [][]int
}

func (s sliceStore) Start(primary int) int   { return 0 }
func (s sliceStore) End(primary int) int     { return len(s.idx[primary]) }
func (s sliceStore) At(primary, pos int) int { return s.idx[primary][pos] }

// Two primary elements over a secondary dimension of size 5:
//
//	primary 0: indices {1, 3}
//	primary 1: indices {0, 2, 4}
var testIdx = [][]int{{1, 3}, {0, 2, 4}}

func newTestCache() *Cache[int] {
	return New[int]([]int{0, 1}, sliceStore{idx: testIdx}, 5)
}

// expectedHits returns the primaries that the cache contract (spec §4.6)
// guarantees store is called for at secondary index s: those whose index
// set contains s, regardless of how s was reached.
func expectedHits(s int) []int {
	var hits []int
	for p, idx := range testIdx {
		for _, v := range idx {
			if v == s {
				hits = append(hits, p)
				break
			}
		}
	}
	return hits
}

func collect(c *Cache[int], s int) []int {
	var hits []int
	c.Search(s, func(primary, posInSelection, valueOffset int) {
		hits = append(hits, primary)
	})
	sort.Ints(hits)
	return hits
}

func assertHits(t *testing.T, c *Cache[int], s int) {
	t.Helper()
	assert.Equal(t, expectedHits(s), collect(c, s), "Search(%d)", s)
}

// hit pairs a primary with the valueOffset reported for it, so tests can
// check not just which primary matched but where in its backing slice.
type hit struct {
	primary     int
	valueOffset int
}

func collectOffsets(c *Cache[int], s int) []hit {
	var hits []hit
	c.Search(s, func(primary, posInSelection, valueOffset int) {
		hits = append(hits, hit{primary: primary, valueOffset: valueOffset})
	})
	sort.Slice(hits, func(i, j int) bool { return hits[i].primary < hits[j].primary })
	return hits
}

// expectedOffsets derives the ground-truth (primary, valueOffset) pairs
// directly from testIdx: valueOffset is the position of s within the
// primary's own index slice, since sliceStore starts every primary at 0.
func expectedOffsets(s int) []hit {
	var hits []hit
	for p, idx := range testIdx {
		for pos, v := range idx {
			if v == s {
				hits = append(hits, hit{primary: p, valueOffset: pos})
				break
			}
		}
	}
	return hits
}

func assertOffsets(t *testing.T, c *Cache[int], s int) {
	t.Helper()
	assert.Equal(t, expectedOffsets(s), collectOffsets(c, s), "Search(%d)", s)
}

// TestCacheValueOffsetSurvivesDirectionFlip reproduces the exact
// ascending-then-descending sequence (primary 0's index set {1,3}: request
// 4, then 3) where a stale ptr left over from the flip previously reported
// the offset of the element above the match instead of the match itself.
func TestCacheValueOffsetSurvivesDirectionFlip(t *testing.T) {
	c := newTestCache()
	assertOffsets(t, c, 4)
	assertOffsets(t, c, 3)
}

func TestCacheValueOffsetAscendingScan(t *testing.T) {
	c := newTestCache()
	for _, s := range []int{0, 1, 2, 3, 4} {
		assertOffsets(t, c, s)
	}
}

func TestCacheValueOffsetRepeatedDirectionFlips(t *testing.T) {
	c := newTestCache()
	for _, s := range []int{1, 2, 3, 4, 3, 4, 2, 0, 1} {
		assertOffsets(t, c, s)
	}
}

func TestCacheAscendingScan(t *testing.T) {
	c := newTestCache()
	for _, s := range []int{0, 1, 2, 3, 4} {
		assertHits(t, c, s)
	}
}

func TestCacheSkipsAheadWithoutRevisiting(t *testing.T) {
	c := newTestCache()
	assertHits(t, c, 4)
}

func TestCacheDescendingScanAfterDirectionFlip(t *testing.T) {
	c := newTestCache()
	for _, s := range []int{4, 3, 2, 1, 0} {
		assertHits(t, c, s)
	}
}

func TestCacheRepeatedDirectionFlips(t *testing.T) {
	c := newTestCache()
	for _, s := range []int{1, 2, 3, 4, 3, 4, 2, 0, 1} {
		assertHits(t, c, s)
	}
}

func TestCacheRevisitingSameIndexTwice(t *testing.T) {
	c := newTestCache()
	assertHits(t, c, 2)
	assertHits(t, c, 2)
}

func TestCacheEmptyPrimarySet(t *testing.T) {
	c := New[int](nil, sliceStore{idx: nil}, 5)
	assert.NotPanics(t, func() {
		c.Search(2, func(primary, posInSelection, valueOffset int) {
			t.Fatalf("store should never be called with no primaries")
		})
	})
}

func TestCacheSingleEmptyPrimary(t *testing.T) {
	c := New[int]([]int{0}, sliceStore{idx: [][]int{{}}}, 5)
	for _, s := range []int{0, 2, 4, 1, 3} {
		assert.Equal(t, []int(nil), collect(c, s))
	}
}
