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

// Package rhset is a typed set built on top of rhmap.Map[K, struct{}].
package rhset

import (
	"github.com/emirpasic/gods/sets/hashset"

	"github.com/polarhash/rhindex/rhmap"
)

// Set is an unordered collection of distinct comparable elements, backed
// by the same rhindex.Index as rhmap.Map.
//
// A Set is NOT goroutine-safe.
type Set[K comparable] struct {
	m *rhmap.Map[K, struct{}]
}

// New constructs a Set with the specified initial capacity.
func New[K comparable](initialCapacity int) *Set[K] {
	return &Set[K]{m: rhmap.New[K, struct{}](initialCapacity)}
}

// Add inserts e into the set, returning true if e was not already present.
func (s *Set[K]) Add(e K) bool {
	if s.Contains(e) {
		return false
	}
	s.m.Put(e, struct{}{})
	return true
}

// Contains reports whether e is in the set.
func (s *Set[K]) Contains(e K) bool {
	_, ok := s.m.Get(e)
	return ok
}

// Remove deletes e from the set, returning true if it was present.
func (s *Set[K]) Remove(e K) bool {
	if !s.Contains(e) {
		return false
	}
	s.m.Delete(e)
	return true
}

// Len returns the number of elements in the set.
func (s *Set[K]) Len() int {
	return s.m.Len()
}

// Range calls yield sequentially for each element in the set. If yield
// returns false, Range stops.
func (s *Set[K]) Range(yield func(e K) bool) {
	s.m.All(func(k K, _ struct{}) bool {
		return yield(k)
	})
}

// Take returns an arbitrary element of the set, or the zero value and
// ok=false if the set is empty. It uses Range and stops after the first
// element.
func (s *Set[K]) Take() (e K, ok bool) {
	s.Range(func(k K) bool {
		e, ok = k, true
		return false
	})
	return
}

// Equal reports whether s and other contain exactly the same elements.
func (s *Set[K]) Equal(other *Set[K]) bool {
	if s.Len() != other.Len() {
		return false
	}
	equal := true
	s.Range(func(e K) bool {
		if !other.Contains(e) {
			equal = false
			return false
		}
		return true
	})
	return equal
}

// Union adds every element of other into s.
func (s *Set[K]) Union(other *Set[K]) {
	other.Range(func(e K) bool {
		s.Add(e)
		return true
	})
}

// Intersect removes every element of s that is not also in other.
func (s *Set[K]) Intersect(other *Set[K]) {
	var toRemove []K
	s.Range(func(e K) bool {
		if !other.Contains(e) {
			toRemove = append(toRemove, e)
		}
		return true
	})
	for _, e := range toRemove {
		s.Remove(e)
	}
}

// SymmetricDifference returns the elements present in exactly one of s and
// other. It stages the computation in a gods hashset keyed by interface{}
// rather than directly building the result Set[K], since that lets a
// single pass over each input decide membership with O(1) Contains checks
// regardless of what K is, before the typed Set[K] is built from the
// surviving elements.
func (s *Set[K]) SymmetricDifference(other *Set[K]) *Set[K] {
	staged := hashset.New()

	s.Range(func(e K) bool {
		if !other.Contains(e) {
			staged.Add(e)
		}
		return true
	})
	other.Range(func(e K) bool {
		if !s.Contains(e) {
			staged.Add(e)
		}
		return true
	})

	result := New[K](staged.Size())
	for _, v := range staged.Values() {
		result.Add(v.(K))
	}
	return result
}
