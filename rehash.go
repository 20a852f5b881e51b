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

// Clear removes every element but keeps the current allocation, so a
// caller that expects to refill the table can skip a Rehash entirely.
func (ix *Index) Clear() {
	for i := range ix.entriesArr {
		ix.entriesArr[i] = 0
	}
	ix.size = 0
}

// Reset returns Index to its pristine zero state, handing back whatever
// entries/hashes slices it was borrowing so the caller can reuse or
// discard them. After Reset, the Index behaves exactly as a freshly
// zero-valued one: Find returns false for everything, and a Rehash is
// required before Insert is usable again.
func (ix *Index) Reset() (oldEntries, oldHashes []uint32) {
	oldEntries, oldHashes = ix.entriesArr, ix.hashesArr
	ix.entriesArr, ix.hashesArr = nil, nil
	ix.mask, ix.capacity, ix.size = 0, 0, 0
	ix.LoadFactor = 0
	return oldEntries, oldHashes
}

// Rehash moves every live element into a new pair of allocations sized by
// the caller (typically from GrowSizing or ShrinkSizing), returning the
// allocations it was using before so the caller can free or recycle them.
// newEntries must have power-of-two length and newHashes must have length
// >= newCapacity; both are what Sizing.Entries/Sizing.Capacity describe.
//
// Because element indices are re-established in the same order as the
// source hashes, the caller's own record array does not need permuting to
// match - only copying (or reallocating) to the same new length, which it
// must do before calling Rehash.
func (ix *Index) Rehash(newEntries, newHashes []uint32, newCapacity uint32) (oldEntries, oldHashes []uint32) {
	assert(len(newEntries) >= 4 && len(newEntries)&(len(newEntries)-1) == 0,
		"Rehash: entries length %d is not a power of two >= 4", len(newEntries))
	assert(newCapacity <= uint32(len(newHashes)), "Rehash: hashes length %d too small for capacity %d", len(newHashes), newCapacity)

	oldEntries, oldHashes = ix.entriesArr, ix.hashesArr
	oldSize := ix.size

	for i := range newEntries {
		newEntries[i] = 0
	}

	ix.entriesArr = newEntries
	ix.hashesArr = newHashes
	ix.mask = uint32(len(newEntries)) - 1
	ix.capacity = newCapacity
	ix.size = 0

	for i := uint32(0); i < oldSize; i++ {
		h := oldHashes[i]
		scan := uint32(0)
		_, found := ix.Find(h, &scan)
		assert(!found, "Rehash: hash %#x unexpectedly already present while replaying index %d", h, i)
		ix.Insert(h, scan, i)
	}

	ix.checkInvariants()
	return oldEntries, oldHashes
}
