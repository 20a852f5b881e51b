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

import "github.com/google/btree"

// OrderedKeys returns the Map's keys sorted by less. A Map has no
// intrinsic order - All visits keys in whatever compact index order the
// tail-swap-on-remove protocol happens to leave them in - so callers that
// need a sorted view build one on demand with a btree.BTreeG. Each call to
// OrderedKeys or AscendRange builds a new tree from every key in the Map.
func OrderedKeys[K comparable, V any](m *Map[K, V], less func(a, b K) bool) []K {
	tree := btree.NewG(32, less)
	m.All(func(k K, _ V) bool {
		tree.ReplaceOrInsert(k)
		return true
	})
	keys := make([]K, 0, tree.Len())
	tree.Ascend(func(k K) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// AscendRange calls yield for every (key, value) pair with a key in
// [from, to) in ascending order, stopping early if yield returns false.
func AscendRange[K comparable, V any](
	m *Map[K, V], less func(a, b K) bool, from, to K, yield func(key K, value V) bool,
) {
	tree := btree.NewG(32, less)
	m.All(func(k K, _ V) bool {
		tree.ReplaceOrInsert(k)
		return true
	})
	tree.AscendRange(from, to, func(k K) bool {
		v, ok := m.Get(k)
		if !ok {
			return true
		}
		return yield(k, v)
	})
}
