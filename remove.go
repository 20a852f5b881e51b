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

// Remove deletes the element at the bucket a prior verified Find
// identified; scan must be one past that matching bucket, exactly as Find
// left it on the call that produced the match. Remove shifts subsequent
// entries backward until the Robin Hood invariant is restored again,
// rather than leaving a tombstone, and returns the compact element index
// that was freed.
//
// Remove never touches the caller's side array. If the returned index is
// not Size() (post-decrement), the caller must move its last record into
// the hole and call UpdateValue to keep the index in sync - see the
// package doc comment for the full protocol.
func (ix *Index) Remove(hash, scan uint32) (removedIndex uint32) {
	mask := ix.mask
	hash &= hashMask
	bucket := (hash + scan - 1) & mask

	removed := entry(ix.entriesArr[bucket])
	assert(!removed.empty(), "Remove: bucket %d already empty", bucket)
	removedIndex = removed.decodeIndex(mask)

	i := bucket
	for {
		next := (i + 1) & mask
		e := entry(ix.entriesArr[next])
		if e.empty() || e.decodeProbe() == 1 {
			break
		}

		p := e.decodeProbe()
		var shifted uint32
		if p < maxProbe {
			shifted = uint32(e) - (1 << 28)
		} else {
			idx := e.decodeIndex(mask)
			newProbe := clampProbe((next - ix.hashesArr[idx]) & mask)
			shifted = (uint32(e) &^ (maxProbe << 28)) | (newProbe << 28)
		}
		ix.entriesArr[i] = shifted
		i = next
	}
	ix.entriesArr[i] = 0
	ix.size--
	ix.checkInvariants()
	return removedIndex
}

// UpdateValue rewrites the entry currently pointing at oldIndex to point
// at newIndex instead, and records swapHash as that element's hash. It is
// the index-renaming half of the caller's tail-swap-on-remove protocol:
// after Remove frees a hole at some index < Size(), the caller moves its
// last live record into that hole and calls UpdateValue(lastRecordHash,
// oldIndex=Size(), newIndex=theHole) to keep the index consistent.
// The partial-hash and probe fields of the entry are left untouched.
func (ix *Index) UpdateValue(swapHash, oldIndex, newIndex uint32) {
	hash := swapHash & hashMask
	bucket, _, found := ix.scanForIndex(hash, oldIndex, 0)
	assert(found, "UpdateValue: no entry decodes to index %d", oldIndex)

	e := uint32(ix.entriesArr[bucket])
	ix.entriesArr[bucket] = (e &^ ix.mask) | (newIndex & ix.mask)
	ix.hashesArr[newIndex] = swapHash
}

// RemoveIndexed removes the element already known to be at index, without
// requiring the caller to run its own Find first. It composes FindValue
// and Remove for callers (typically a typed facade's RemoveAt) that know
// an element's compact index but not its bucket.
func (ix *Index) RemoveIndexed(hash, index uint32) (removedIndex uint32) {
	scan := uint32(0)
	found := ix.FindValue(hash, &scan, index)
	assert(found, "RemoveIndexed: no entry decodes to index %d", index)
	return ix.Remove(hash, scan)
}

// FindValue resumes a scan for hash looking for the bucket that decodes to
// index specifically, rather than any hash/probe match - a helper for
// callers (typically Remove's caller) that already know the target index
// but must locate its bucket before calling Remove. Leaves *scan one past
// the match, mirroring Find's contract.
func (ix *Index) FindValue(hash uint32, scan *uint32, index uint32) bool {
	_, s, found := ix.scanForIndex(hash, index, *scan)
	*scan = s
	return found
}
