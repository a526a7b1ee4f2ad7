// Package cache implements the secondary-dimension traversal cache that
// makes secondary-direction extraction from compressed- and fragmented-
// sparse backends tractable (spec §4.6). It is the most interesting kernel
// in the module, grounded on original_source's
// tatami::sparse_utils::SparseSecondaryExtractionCache.
package cache

import "golang.org/x/exp/constraints"

// Index mirrors the root package's Index constraint.
type Index interface {
	constraints.Integer
}

// Slices abstracts over "where does primary element p's index slice start
// and end, and what is the index value at absolute position k" so the same
// cache serves both compressed (pointers-based) and fragmented (per-primary
// vector) backends.
type Slices[I Index] interface {
	Start(primary int) int
	End(primary int) int
	At(primary, pos int) I
}

// Store is called once per primary element that has a non-zero at the
// requested secondary index, in increasing order of position-in-selection.
// valueOffset is the absolute position usable to read the backing values
// array.
type Store[I Index] func(primary int, posInSelection int, valueOffset int)

// Cache holds per-primary-element traversal state for a fixed set of K
// primary elements (the whole primary dimension, a block, or an arbitrary
// subset) being walked along the secondary dimension. It supports forward
// scans, backward scans, and arbitrary jumps without redoing binary
// searches from scratch when the access pattern is near-sequential.
type Cache[I Index] struct {
	primaries []int // the actual primary-element identifiers in the selection
	slices    Slices[I]
	maxIndex  I

	ptr  []int // ptr[p]: current offset into p's index slice
	hint []I   // hint[p]: meaning depends on direction, see peekAscending/peekDescending

	lastRequest   I
	ascending     bool
	haveRequest   bool
	closest       I
}

// New builds a cache for the given primary-element identifiers (in
// selection order) drawing from slices, with maxIndex one past the largest
// valid secondary index (used as the ascending past-end sentinel).
func New[I Index](primaries []int, slices Slices[I], maxIndex I) *Cache[I] {
	return &Cache[I]{
		primaries: primaries,
		slices:    slices,
		maxIndex:  maxIndex,
		ptr:       make([]int, len(primaries)),
		hint:      make([]I, len(primaries)),
	}
}

// Search advances the cache to secondary index s, invoking store once per
// primary element with a non-zero at s, in increasing position-in-selection
// order. No calls are made when the short-circuit fires (spec §4.6 step 2).
func (c *Cache[I]) Search(s I, store Store[I]) {
	n := len(c.primaries)
	if n == 0 {
		return
	}

	if !c.haveRequest || s > c.lastRequest || (c.ascending && s == c.lastRequest) {
		if c.haveRequest && !c.ascending {
			// Direction flip: hint[p] must be re-established under the
			// ascending meaning before we can reuse ptr[p]. Re-establishing
			// on every flip avoids stale comparisons (spec design notes).
			c.ascending = true
			for p := range c.primaries {
				c.hint[p] = c.peekAscending(p)
			}
		} else if !c.haveRequest {
			c.ascending = true
			for p := range c.primaries {
				c.hint[p] = c.peekAscending(p)
			}
		}

		if c.haveRequest && s < c.closest {
			c.lastRequest = s
			c.haveRequest = true
			return
		}
		for p, primary := range c.primaries {
			c.searchAbove(s, p, primary, store)
		}
		c.closest = c.hint[0]
		for _, h := range c.hint[1:] {
			if h < c.closest {
				c.closest = h
			}
		}
	} else {
		if c.ascending {
			c.ascending = false
			for p := range c.primaries {
				c.hint[p] = c.peekDescending(p)
			}
		}

		if s+1 > c.closest {
			c.lastRequest = s
			c.haveRequest = true
			return
		}
		for p, primary := range c.primaries {
			c.searchBelow(s, p, primary, store)
		}
		c.closest = c.hint[0]
		for _, h := range c.hint[1:] {
			if h > c.closest {
				c.closest = h
			}
		}
	}

	c.lastRequest = s
	c.haveRequest = true
}

// peekAscending computes hint[p] fresh from the current ptr[p] under the
// ascending meaning: the index value at that offset, or maxIndex if past
// the end of the slice.
func (c *Cache[I]) peekAscending(p int) I {
	primary := c.primaries[p]
	start, end := c.slices.Start(primary), c.slices.End(primary)
	pos := start + c.ptr[p]
	if pos >= end {
		return c.maxIndex
	}
	return c.slices.At(primary, pos)
}

// peekDescending computes hint[p] fresh under the descending meaning: the
// largest secondary index not greater than lastRequest (encoded as index+1,
// with 0 meaning "before start"), relative to the request we are about to
// serve (spec §4.6 "meaning of hint[p] when descending").
//
// When the hint comes from the element below the current pointer, ptr[p]
// is walked back to that element too, so it stays the offset of the value
// the hint describes rather than the one above it.
func (c *Cache[I]) peekDescending(p int) I {
	primary := c.primaries[p]
	start, end := c.slices.Start(primary), c.slices.End(primary)
	pos := start + c.ptr[p]
	if pos != end && c.slices.At(primary, pos) == c.lastRequest {
		return c.lastRequest + 1
	}
	if pos == start {
		return 0
	}
	c.ptr[p]--
	return c.slices.At(primary, pos-1) + 1
}

func (c *Cache[I]) searchAbove(s I, p, primary int, store Store[I]) {
	if c.hint[p] > s {
		return
	}
	if c.hint[p] == s {
		store(primary, p, c.slices.Start(primary)+c.ptr[p])
		return
	}

	start, end := c.slices.Start(primary), c.slices.End(primary)
	c.ptr[p]++
	pos := start + c.ptr[p]
	if pos == end {
		c.hint[p] = c.maxIndex
		return
	}
	v := c.slices.At(primary, pos)
	if v > s {
		c.hint[p] = v
		return
	}
	if v == s {
		c.hint[p] = v
		store(primary, p, pos)
		return
	}

	// Binary search above pos+1 using a strict < comparator, per spec.
	lo, hi := pos+1, end
	for lo < hi {
		mid := lo + (hi-lo)/2
		if c.slices.At(primary, mid) < s {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	c.ptr[p] = lo - start
	if lo == end {
		c.hint[p] = c.maxIndex
		return
	}
	v = c.slices.At(primary, lo)
	c.hint[p] = v
	if v == s {
		store(primary, p, lo)
	}
}

func (c *Cache[I]) searchBelow(s I, p, primary int, store Store[I]) {
	sPlus1 := s + 1
	if c.hint[p] < sPlus1 {
		return
	}
	start, _ := c.slices.Start(primary), c.slices.End(primary)
	if c.hint[p] == sPlus1 {
		store(primary, p, start+c.ptr[p])
		return
	}
	if c.ptr[p] == 0 {
		c.hint[p] = 0
		return
	}

	c.ptr[p]--
	pos := start + c.ptr[p]
	v := c.slices.At(primary, pos) + 1
	c.hint[p] = v
	if v < sPlus1 {
		return
	}
	if v == sPlus1 {
		store(primary, p, pos)
		return
	}

	// Binary search below pos using a strict < comparator.
	lo, hi := start, pos
	for lo < hi {
		mid := lo + (hi-lo)/2
		if c.slices.At(primary, mid) < s {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	c.ptr[p] = lo - start
	v = c.slices.At(primary, lo) + 1
	if v == sPlus1 {
		c.hint[p] = v
		store(primary, p, lo)
		return
	}
	if lo == start {
		c.hint[p] = 0
		return
	}
	c.ptr[p] = lo - 1 - start
	c.hint[p] = c.slices.At(primary, lo-1) + 1
}
