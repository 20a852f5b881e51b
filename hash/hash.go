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

// Package hash collects the 32-bit hash mixers used by the rhmap and rhset
// facades: fast avalanche mixers for integers, and xxhash-backed mixers for
// strings and byte slices.
package hash

import "github.com/cespare/xxhash/v2"

// Uint32 avalanches a 32-bit integer. It is the murmur3-style finalizer
// variant (lowbias32): every input bit affects every output bit roughly
// equally, which keeps the table's partial-hash field from correlating with
// the low bits used to pick a home bucket.
func Uint32(v uint32) uint32 {
	v ^= v >> 16
	v *= 0x7feb352d
	v ^= v >> 15
	v *= 0x846ca68b
	v ^= v >> 16
	return v
}

// Uint64 avalanches a 64-bit integer down to 32 bits using three rounds of
// xorshift-multiply with a 64-bit splitmix constant.
func Uint64(v uint64) uint32 {
	v ^= v >> 32
	v *= 0xd6e8feb86659fd93
	v ^= v >> 32
	v *= 0xd6e8feb86659fd93
	v ^= v >> 32
	return uint32(v)
}

// String hashes s with xxhash and folds the 64-bit digest down to 32 bits.
func String(s string) uint32 {
	return fold(xxhash.Sum64String(s))
}

// Bytes hashes b with xxhash and folds the 64-bit digest down to 32 bits.
func Bytes(b []byte) uint32 {
	return fold(xxhash.Sum64(b))
}

func fold(h uint64) uint32 {
	return uint32(h) ^ uint32(h>>32)
}
