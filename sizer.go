// Copyright 2024 The Cockroach Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rhindex

import (
	"math"
	"math/bits"
)

// DefaultLoadFactor is used whenever an Index's LoadFactor is unset (the
// zero value, 0).
const DefaultLoadFactor = 0.75

// initialEntryFloor is the smallest entry count Grow will ask for the
// first time an Index is grown from empty.
const initialEntryFloor = 16

// minEntries is the smallest entry count the sizer will ever produce,
// regardless of desired size.
const minEntries = 4

// wordAlign is the alignment, in bytes, that Sizing.AllocSize is rounded
// up to, so that a caller appending a record array after the entries and
// hashes tables can rely on up-to-16-byte alignment for its own elements.
const wordAlign = 16

// Sizing is the (entry-count, element-capacity, allocation-size) triple
// the sizer derives from a desired element count and load factor.
type Sizing struct {
	// Entries is N, the power-of-two length of the entries array.
	Entries uint32
	// Capacity is the maximum number of elements the table can hold
	// before another grow is required, floor(Entries*LoadFactor).
	Capacity uint32
	// AllocSize is the number of bytes required for entries and hashes
	// combined, aligned up to wordAlign, so a caller may append its own
	// record array to the same allocation.
	AllocSize uint32
}

// nextPow2 returns the smallest power of two >= x, or 1 if x == 0.
func nextPow2(x uint32) uint32 {
	if x <= 1 {
		return 1
	}
	return 1 << bits.Len32(x-1)
}

// computeSizing implements the C2 sizer: given a desired element count, the
// current live size, and a load factor, derive the smallest valid
// (entries, capacity, allocSize) triple that can hold size elements.
//
// The while-loop in step 4 exists because a caller may lower LoadFactor
// between rehashes, which can shrink Capacity below the number of elements
// already live; doubling Entries until Capacity catches back up preserves
// correctness without the caller needing to special-case that transition.
func computeSizing(desiredSize, size uint32, loadFactor float64) Sizing {
	if loadFactor <= 0 {
		loadFactor = DefaultLoadFactor
	}

	n := nextPow2(uint32(ceilDiv(desiredSize, loadFactor)))
	if n < minEntries {
		n = minEntries
	}
	capacity := uint32(float64(n) * loadFactor)
	for capacity < size {
		n *= 2
		capacity = uint32(float64(n) * loadFactor)
	}

	allocWords := n + capacity
	allocBytes := allocWords * 4
	allocBytes = (allocBytes + wordAlign - 1) &^ (wordAlign - 1)

	return Sizing{Entries: n, Capacity: capacity, AllocSize: allocBytes}
}

// ceilDiv computes ceil(desired / loadFactor) in floating point, mirroring
// the reference implementation's `(double)size / (double)load_factor`
// arithmetic rather than integer division.
func ceilDiv(desired uint32, loadFactor float64) float64 {
	return math.Ceil(float64(desired) / loadFactor)
}

// SizingFor returns the sizing an Index should rehash into to hold at
// least desired elements at the given load factor, for callers that want
// to pre-size a fresh Index (e.g. a typed facade's New(capacity int))
// rather than grow it incrementally. Pass 0 for loadFactor to use
// DefaultLoadFactor.
func SizingFor(desired uint32, loadFactor float64) Sizing {
	assert(desired <= math.MaxInt32, "SizingFor: desired %d exceeds the maximum index size", desired)
	return computeSizing(desired, 0, loadFactor)
}

// GrowSizing returns the sizing an Index should rehash into to accommodate
// at least one more element than it currently holds. It doubles the
// current entry count (or starts from initialEntryFloor if the index has
// never been sized), following the geometric growth policy in spec §4.2.
func (ix *Index) GrowSizing() Sizing {
	loadFactor := ix.effectiveLoadFactor()
	desired := ix.size + 1
	if grown := uint32(float64(ix.entries()) * loadFactor * 2); grown > desired {
		desired = grown
	}
	if floor := uint32(float64(initialEntryFloor) * loadFactor); desired < floor {
		desired = floor
	}
	return computeSizing(desired, ix.size, loadFactor)
}

// ShrinkSizing returns the smallest sizing that still fits the Index's
// current live elements, useful after a bulk removal to reclaim space.
func (ix *Index) ShrinkSizing() Sizing {
	loadFactor := ix.effectiveLoadFactor()
	return computeSizing(ix.size, ix.size, loadFactor)
}

func (ix *Index) entries() uint32 {
	if ix.mask == 0 && len(ix.entriesArr) == 0 {
		return 0
	}
	return ix.mask + 1
}

func (ix *Index) effectiveLoadFactor() float64 {
	if ix.LoadFactor <= 0 {
		return DefaultLoadFactor
	}
	return ix.LoadFactor
}
