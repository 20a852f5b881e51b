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

// Package rhindex implements a Robin Hood open-addressed hash index: a
// structure that maps a 32-bit hash value to a compact, contiguous element
// index. It is deliberately not a full hash-map container - it does not own
// keys or values, does not compare keys, and does not allocate. It exposes a
// low-level protocol by which a caller maintains a side array of records in
// insertion-compact layout ({0, 1, ..., size-1}), while Index provides
// near-O(1) hash-to-index find, insert, remove, iterate, grow, and shrink.
//
// # Robin Hood hashing
//
// Robin Hood hashing is an open-addressing scheme where, on insertion
// collision, the entry that has probed the least distance from its home
// bucket is displaced in favor of the one that has probed the most. See
// https://cs.uwaterloo.ca/research/tr/1986/CS-86-14.pdf. The effect is that
// the variance of probe distances across the table is minimized, which in
// turn bounds worst-case lookup cost far tighter than naive linear probing.
//
// Unlike a Swiss table, there is no group metadata and no tombstones: deletion shifts entries
// backward until the invariant is restored, so probe distances stay exact
// (up to a clamp) rather than degrading as tombstones accumulate.
//
// # Layout
//
// entries is a power-of-two-sized array of 32-bit words. Each word packs
// three fields: the element index in the low mask bits, the hash bits
// above mask (the bits below it are implied by the bucket's position), and
// the clamped probe distance in the top four bits. A word of zero means the bucket is empty. hashes is a parallel
// element-index-major array recording the full 32-bit hash of the element
// currently at each compact index, needed to recompute a probe distance
// once it clamps.
//
// # Protocol
//
// Index never touches the caller's side array. The caller computes a hash,
// then drives Find in a loop, comparing each candidate index's key against
// its own records. Insert and Remove only ever manipulate entries/hashes;
// callers are responsible for mirror-mutating their side array, including
// the tail-swap Remove's contract requires. See the rhmap package for a
// complete, typed implementation of that contract.
package rhindex
