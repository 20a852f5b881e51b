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

// Find drives one step of a probe sequence for hash, resuming from the
// cursor *scan (pass 0 to start a fresh search). It mutates *scan on every
// step it takes, so that after Find returns false, *scan holds the exact
// position Insert needs to continue from - this is what lets
//
//	scan := uint32(0)
//	for {
//		idx, ok := ix.Find(hash, &scan)
//		if !ok {
//			break
//		}
//		if keysEqual(records[idx].Key, key) {
//			return idx, true
//		}
//	}
//	// not found; ix.Insert(hash, scan, ix.Size()) is now valid.
//
// be the entire caller-side protocol: Find only ever reports *candidates*,
// leaving key comparison to the caller.
func (ix *Index) Find(hash uint32, scan *uint32) (index uint32, ok bool) {
	if ix.capacity == 0 {
		return 0, false
	}
	hash &= hashMask
	mask := ix.mask
	for {
		b := (hash + *scan) & mask
		e := entry(ix.entriesArr[b])
		*scan++
		probe := clampProbe(*scan)
		if e.matches(hash, probe, mask) {
			return e.decodeIndex(mask), true
		}
		if e.decodeProbe() < probe {
			// Robin Hood invariant: whatever occupies b has probed less
			// than we have (this subsumes b being empty, decodeProbe==0).
			// No bucket past this one can hold our hash either.
			return 0, false
		}
	}
}

// Insert places newIndex into the table at the position a prior failed
// Find sequence identified, performing whatever Robin Hood displacement is
// required to preserve the invariant. scan must be the value Find left
// behind when it returned false, and newIndex must equal Size(). The
// caller must ensure Size() < Capacity() before calling; Insert asserts
// this rather than growing, since growing requires a caller-driven
// reallocation (see Rehash).
func (ix *Index) Insert(hash, scan, newIndex uint32) {
	assert(newIndex == ix.size, "Insert: new_index %d does not equal size %d", newIndex, ix.size)
	assert(ix.size < ix.capacity, "Insert: table full (size=%d capacity=%d)", ix.size, ix.capacity)
	assert(scan >= 1, "Insert: scan %d must follow a Find call", scan)

	fullHash := hash
	hash &= hashMask
	mask := ix.mask
	bucket := (hash + scan - 1) & mask
	actualProbe := scan
	// carryBits holds the hash/index portion (no probe field) of whichever
	// entry is currently being relocated, starting with the new element.
	carryBits := (hash &^ mask) | newIndex

	for {
		existing := entry(ix.entriesArr[bucket])
		probeClamped := clampProbe(actualProbe)
		if existing.empty() {
			ix.entriesArr[bucket] = carryBits | (probeClamped << 28)
			break
		}
		existingProbe := existing.resolveProbe(bucket, mask, ix.hashesArr)
		if existingProbe < actualProbe {
			// Robin Hood: the resident has probed less than our carry.
			// Steal its slot and carry it onward in our place.
			ix.entriesArr[bucket] = carryBits | (probeClamped << 28)
			carryBits = uint32(existing) &^ (maxProbe << 28)
			actualProbe = existingProbe
		}
		bucket = (bucket + 1) & mask
		actualProbe++
	}

	ix.hashesArr[newIndex] = fullHash
	ix.size++
	ix.checkInvariants()
}

// Next iterates live elements in element-index order (0, 1, ..., Size()-1),
// which is the order the caller's side array is compact in - not bucket
// order. Pass (0, 0) to start; Next returns false once every index has
// been visited. On success, *hash and *scan are rewritten to describe the
// bucket holding the element just returned, so the pair can be fed back
// in to resume.
func (ix *Index) Next(hash, scan *uint32) (index uint32, ok bool) {
	if ix.capacity == 0 {
		return 0, false
	}
	mask := ix.mask
	var nextIndex uint32
	if *scan != 0 {
		bucket := (*hash + *scan - 1) & mask
		nextIndex = entry(ix.entriesArr[bucket]).decodeIndex(mask) + 1
	}
	if nextIndex >= ix.size {
		return 0, false
	}

	h := ix.hashesArr[nextIndex]
	b, s, found := ix.scanForIndex(h, nextIndex, 0)
	assert(found, "Next: index %d not reachable from its own recorded hash", nextIndex)
	_ = b
	*hash = h
	*scan = s
	return nextIndex, true
}

// scanForIndex walks the probe sequence for hash starting at offset start,
// looking for the unique bucket whose entry decodes to target rather than
// matching a hash/probe pattern. It underlies FindValue, UpdateValue, and
// Next: all three need "which bucket currently claims this element index",
// not "does this hash have a candidate here". It visits at most one full
// pass of the table and reports found=false if no bucket decodes to target.
func (ix *Index) scanForIndex(hash, target, start uint32) (bucket, scan uint32, found bool) {
	mask := ix.mask
	hash &= hashMask
	scan = start
	for n := uint32(0); n <= mask; n++ {
		b := (hash + scan) & mask
		scan++
		e := entry(ix.entriesArr[b])
		if !e.empty() && e.decodeIndex(mask) == target {
			return b, scan, true
		}
	}
	return 0, scan, false
}
