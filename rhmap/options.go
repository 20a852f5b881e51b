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

package rhmap

import "github.com/polarhash/rhindex/internal/alloc"

// option provides an interface to do work on a Map while it is being
// created.
type option[K comparable, V any] interface {
	apply(m *Map[K, V])
}

type hashOption[K comparable, V any] struct {
	hash HashFunc[K]
}

func (op hashOption[K, V]) apply(m *Map[K, V]) {
	m.hash = op.hash
}

// WithHash overrides the hash function a Map uses for its keys. The default
// is derived from hash/maphash.Comparable, which works for any comparable K
// but is slower than a type-specific mixer; use this with one of the
// mixers in package hash (hash.String, hash.Bytes, hash.Uint64, ...) to
// trade the generality away for speed once K is known.
func WithHash[K comparable, V any](hash HashFunc[K]) option[K, V] {
	return hashOption[K, V]{hash}
}

// Allocator controls how a Map obtains and releases the backing arrays for
// its underlying rhindex.Index and its own key/value slots. The default
// allocator carves all three out of a single allocation (package
// internal/alloc) and allows the GC to reclaim memory; Close is a no-op
// for it.
//
// If the allocator manages memory that must be explicitly released, Close
// must be called to ensure Free runs.
type Allocator[K comparable, V any] interface {
	// Alloc should return slices equivalent to make([]uint32, entryCount),
	// make([]uint32, hashCount), and make([]Slot[K,V], slotCount).
	Alloc(entryCount, hashCount, slotCount int) (entries, hashes []uint32, slots []Slot[K, V])
	// Free can optionally release memory returned by a prior Alloc call.
	Free(entries, hashes []uint32, slots []Slot[K, V])
}

type defaultAllocator[K comparable, V any] struct{}

func (defaultAllocator[K, V]) Alloc(
	entryCount, hashCount, slotCount int,
) (entries, hashes []uint32, slots []Slot[K, V]) {
	l := alloc.New[Slot[K, V]](entryCount, hashCount, slotCount)
	return l.Entries, l.Hashes, l.Slots
}

func (defaultAllocator[K, V]) Free(entries, hashes []uint32, slots []Slot[K, V]) {}

type allocatorOption[K comparable, V any] struct {
	allocator Allocator[K, V]
}

func (op allocatorOption[K, V]) apply(m *Map[K, V]) {
	m.allocator = op.allocator
}

// WithAllocator specifies the Allocator a Map uses for the entries/hashes
// arrays backing its rhindex.Index and its key/value slots.
func WithAllocator[K comparable, V any](allocator Allocator[K, V]) option[K, V] {
	return allocatorOption[K, V]{allocator}
}

type loadFactorOption[K comparable, V any] struct {
	loadFactor float64
}

func (op loadFactorOption[K, V]) apply(m *Map[K, V]) {
	m.ix.LoadFactor = op.loadFactor
}

// WithLoadFactor overrides the load factor the Map's Index uses to decide
// when to grow. See rhindex.WithLoadFactor.
func WithLoadFactor[K comparable, V any](loadFactor float64) option[K, V] {
	return loadFactorOption[K, V]{loadFactor}
}
