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

// Package rhmap is a generic, typed map built on top of package rhindex's
// Robin Hood index. rhindex only knows about 32-bit hashes and compact
// element indices; rhmap supplies the missing half of the caller protocol
// described there - key storage, key comparison, and the tail-swap dance
// that keeps the index in sync when an element is removed - the same
// division of labor the teacher package kept between its Map[K,V] and the
// Go runtime's map internals it borrowed a hash function from.
//
// A Map is NOT goroutine-safe.
package rhmap

import (
	"hash/maphash"

	"github.com/polarhash/rhindex"
)

// HashFunc hashes a key of type K down to the 32 bits rhindex.Index slots
// on. Only the low 28 bits are significant to the index; a HashFunc may
// return a value with uninteresting high bits with no correctness cost.
type HashFunc[K comparable] func(key K) uint32

// Slot holds a key and value. Map keeps one Slot per live element, indexed
// by the compact element index rhindex.Index hands back from Find/Insert.
type Slot[K comparable, V any] struct {
	Key   K
	Value V
}

// Map is an unordered map from keys to values with Put, Get, Delete, and
// All operations, backed by a rhindex.Index. By default a Map[K,V] hashes
// keys with hash/maphash.Comparable, seeded randomly per Map; a
// type-specific hash function can be supplied with WithHash for speed.
type Map[K comparable, V any] struct {
	ix        rhindex.Index
	slots     []Slot[K, V]
	hash      HashFunc[K]
	seed      maphash.Seed
	allocator Allocator[K, V]
}

// New constructs a Map with the specified initial capacity. If
// initialCapacity is 0 the map starts with zero capacity and grows on the
// first Put.
func New[K comparable, V any](initialCapacity int, opts ...option[K, V]) *Map[K, V] {
	m := &Map[K, V]{
		seed:      maphash.MakeSeed(),
		allocator: defaultAllocator[K, V]{},
	}
	m.hash = m.defaultHash
	for _, op := range opts {
		op.apply(m)
	}
	if initialCapacity > 0 {
		m.growTo(uint32(initialCapacity))
	}
	return m
}

func (m *Map[K, V]) defaultHash(key K) uint32 {
	h := maphash.Comparable(m.seed, key)
	return uint32(h) ^ uint32(h>>32)
}

// Close releases the Map's backing arrays back to its configured
// allocator. It is unnecessary to close a Map using the default allocator.
// It is invalid to use a Map after Close, though Close itself is
// idempotent.
func (m *Map[K, V]) Close() {
	if m.allocator == nil {
		return
	}
	oldEntries, oldHashes := m.ix.Reset()
	m.allocator.Free(oldEntries, oldHashes, m.slots)
	m.slots = nil
	m.allocator = nil
}

// Len returns the number of entries in the map.
func (m *Map[K, V]) Len() int {
	return int(m.ix.Size())
}

// Put inserts an entry into the map, overwriting an existing value if an
// entry with the same key is already present.
func (m *Map[K, V]) Put(key K, value V) {
	h := m.hash(key)
	scan := uint32(0)
	for {
		idx, found := m.ix.Find(h, &scan)
		if !found {
			break
		}
		if m.slots[idx].Key == key {
			m.slots[idx].Value = value
			return
		}
	}

	if m.ix.Size() >= m.ix.Capacity() {
		m.grow()
		// The grow invalidated scan; replay the probe against the fresh
		// table to find where the new element belongs.
		scan = 0
		for {
			_, found := m.ix.Find(h, &scan)
			if !found {
				break
			}
		}
	}

	idx := m.ix.Size()
	m.ix.Insert(h, scan, idx)
	m.slots[idx] = Slot[K, V]{Key: key, Value: value}
}

// Get retrieves the value for key, returning ok=false if key is not
// present.
func (m *Map[K, V]) Get(key K) (value V, ok bool) {
	h := m.hash(key)
	scan := uint32(0)
	for {
		idx, found := m.ix.Find(h, &scan)
		if !found {
			return value, false
		}
		if m.slots[idx].Key == key {
			return m.slots[idx].Value, true
		}
	}
}

// Delete removes the entry for key. It is a no-op if key is not present.
func (m *Map[K, V]) Delete(key K) {
	h := m.hash(key)
	scan := uint32(0)
	for {
		idx, found := m.ix.Find(h, &scan)
		if !found {
			return
		}
		if m.slots[idx].Key == key {
			m.removeAt(h, scan, idx)
			return
		}
	}
}

// removeAt frees the index bucket a verified Find identified and performs
// the tail-swap rename described in rhindex's package doc: if the freed
// index wasn't the last live one, the last record moves into the hole and
// UpdateValue renames it.
func (m *Map[K, V]) removeAt(hash, scan, idx uint32) {
	removed := m.ix.Remove(hash, scan)
	m.fillHole(removed)
}

// RemoveAt deletes the element already known to be at the given compact
// slot index, without running a key lookup first. It performs the same
// tail-swap rename Delete does.
func (m *Map[K, V]) RemoveAt(index int) {
	idx := uint32(index)
	h := m.hash(m.slots[idx].Key)
	removed := m.ix.RemoveIndexed(h, idx)
	m.fillHole(removed)
}

// fillHole backfills the slot freed at removed with the current last live
// record, unless removed was itself the last one, and tells the index
// about the rename.
func (m *Map[K, V]) fillHole(removed uint32) {
	last := m.ix.Size()
	if removed != last {
		lastSlot := m.slots[last]
		lastHash := m.hash(lastSlot.Key)
		m.ix.UpdateValue(lastHash, last, removed)
		m.slots[removed] = lastSlot
	}
	var zero Slot[K, V]
	m.slots[last] = zero
}

// Clear removes every entry but keeps the current allocation, so a caller
// that expects to refill the map can skip a grow/rehash entirely.
func (m *Map[K, V]) Clear() {
	for i := range m.slots {
		m.slots[i] = Slot[K, V]{}
	}
	m.ix.Clear()
}

// All calls yield sequentially for each key and value present in the map,
// in compact index order. If yield returns false, iteration stops.
func (m *Map[K, V]) All(yield func(key K, value V) bool) {
	for i := uint32(0); i < m.ix.Size(); i++ {
		if !yield(m.slots[i].Key, m.slots[i].Value) {
			return
		}
	}
}

// grow doubles (at least) the Map's capacity, following rhindex's
// caller-driven Grow/Rehash protocol: the index only tells the caller the
// sizing to use, the caller must supply the new allocations.
func (m *Map[K, V]) grow() {
	s := m.ix.GrowSizing()
	m.rehashTo(s)
}

func (m *Map[K, V]) growTo(desired uint32) {
	m.rehashTo(rhindex.SizingFor(desired, m.ix.LoadFactor))
}

// rehashTo asks the allocator for one combined block sized for the new
// entries, hashes, and slots arrays, copies the live slots across as
// rhindex.Index.Rehash's doc comment requires, and frees the old block.
func (m *Map[K, V]) rehashTo(s rhindex.Sizing) {
	newEntries, newHashes, newSlots := m.allocator.Alloc(int(s.Entries), int(s.Capacity), int(s.Capacity))
	copy(newSlots, m.slots[:m.ix.Size()])
	oldEntries, oldHashes := m.ix.Rehash(newEntries, newHashes, s.Capacity)
	oldSlots := m.slots
	m.slots = newSlots
	if oldEntries != nil {
		m.allocator.Free(oldEntries, oldHashes, oldSlots)
	}
}
