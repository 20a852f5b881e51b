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

// Package alloc carves a caller's entries array, hashes array, and record
// array out of one contiguous allocation, rather than issuing three
// separate ones. It exists because rhindex.Sizing already reports the
// combined byte size of the entries and hashes tables (see its AllocSize
// field's doc comment) so a typed facade can append its own record array
// to the same block.
package alloc

import "unsafe"

// Layout bundles the three slices carved out of a single allocation: the
// entries and hashes arrays rhindex.Index wants, and a caller-typed slots
// array sized to the same element capacity.
type Layout[T any] struct {
	Entries []uint32
	Hashes  []uint32
	Slots   []T

	// backing keeps the combined allocation reachable for as long as the
	// Layout is; Entries/Hashes/Slots all point into it.
	backing []uint64
}

// New allocates entryCount uint32s, hashCount uint32s, and slotCount T's
// out of a single block, laid out entries-then-hashes-then-slots. The
// slots region starts on an 8-byte boundary regardless of how many
// entries/hashes precede it, since T may itself contain 8-byte-aligned
// fields.
func New[T any](entryCount, hashCount, slotCount int) Layout[T] {
	var zero T
	slotSize := int(unsafe.Sizeof(zero))

	entriesBytes := entryCount * 4
	hashesBytes := hashCount * 4
	uint32Bytes := entriesBytes + hashesBytes
	pad := (8 - uint32Bytes%8) % 8
	slotsOffset := uint32Bytes + pad
	totalBytes := slotsOffset + slotCount*slotSize

	backing := make([]uint64, (totalBytes+7)/8)
	l := Layout[T]{backing: backing}
	if len(backing) == 0 {
		return l
	}
	base := unsafe.Pointer(unsafe.SliceData(backing))

	if entryCount > 0 {
		l.Entries = unsafe.Slice((*uint32)(base), entryCount)
	}
	if hashCount > 0 {
		l.Hashes = unsafe.Slice((*uint32)(unsafe.Add(base, entriesBytes)), hashCount)
	}
	if slotCount > 0 {
		l.Slots = unsafe.Slice((*T)(unsafe.Add(base, slotsOffset)), slotCount)
	}
	return l
}
