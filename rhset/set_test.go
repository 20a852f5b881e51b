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

package rhset

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func (s *Set[K]) toSlice() []K {
	var out []K
	s.Range(func(e K) bool {
		out = append(out, e)
		return true
	})
	return out
}

func TestAddContainsRemove(t *testing.T) {
	s := New[int](0)
	require.Equal(t, 0, s.Len())

	require.True(t, s.Add(1))
	require.False(t, s.Add(1), "re-adding an existing element reports no change")
	require.Equal(t, 1, s.Len())
	require.True(t, s.Contains(1))
	require.False(t, s.Contains(2))

	require.True(t, s.Remove(1))
	require.False(t, s.Remove(1), "removing an absent element reports no change")
	require.Equal(t, 0, s.Len())
	require.False(t, s.Contains(1))
}

func TestTake(t *testing.T) {
	s := New[int](0)
	_, ok := s.Take()
	require.False(t, ok)

	s.Add(42)
	v, ok := s.Take()
	require.True(t, ok)
	require.Equal(t, 42, v)
}

func TestEqual(t *testing.T) {
	a := New[int](0)
	b := New[int](0)
	require.True(t, a.Equal(b))

	for _, v := range []int{1, 2, 3} {
		a.Add(v)
	}
	require.False(t, a.Equal(b))

	for _, v := range []int{3, 2, 1} {
		b.Add(v)
	}
	require.True(t, a.Equal(b))

	b.Add(4)
	require.False(t, a.Equal(b))
}

func TestUnion(t *testing.T) {
	a := New[int](0)
	b := New[int](0)
	for _, v := range []int{1, 2, 3} {
		a.Add(v)
	}
	for _, v := range []int{3, 4, 5} {
		b.Add(v)
	}
	a.Union(b)

	got := a.toSlice()
	sort.Ints(got)
	require.Equal(t, []int{1, 2, 3, 4, 5}, got)
}

func TestIntersect(t *testing.T) {
	a := New[int](0)
	b := New[int](0)
	for _, v := range []int{1, 2, 3, 4} {
		a.Add(v)
	}
	for _, v := range []int{3, 4, 5, 6} {
		b.Add(v)
	}
	a.Intersect(b)

	got := a.toSlice()
	sort.Ints(got)
	require.Equal(t, []int{3, 4}, got)
}

func TestSymmetricDifference(t *testing.T) {
	a := New[int](0)
	b := New[int](0)
	for _, v := range []int{1, 2, 3, 4} {
		a.Add(v)
	}
	for _, v := range []int{3, 4, 5, 6} {
		b.Add(v)
	}

	diff := a.SymmetricDifference(b)
	got := diff.toSlice()
	sort.Ints(got)
	require.Equal(t, []int{1, 2, 5, 6}, got)

	// a and b are unmodified by SymmetricDifference.
	require.Equal(t, 4, a.Len())
	require.Equal(t, 4, b.Len())
}

func TestSymmetricDifferenceDisjoint(t *testing.T) {
	a := New[int](0)
	b := New[int](0)
	for _, v := range []int{1, 2} {
		a.Add(v)
	}
	for _, v := range []int{3, 4} {
		b.Add(v)
	}

	diff := a.SymmetricDifference(b)
	got := diff.toSlice()
	sort.Ints(got)
	require.Equal(t, []int{1, 2, 3, 4}, got)
}

func TestSymmetricDifferenceIdentical(t *testing.T) {
	a := New[int](0)
	b := New[int](0)
	for _, v := range []int{1, 2, 3} {
		a.Add(v)
		b.Add(v)
	}
	diff := a.SymmetricDifference(b)
	require.Equal(t, 0, diff.Len())
}

func TestStringSet(t *testing.T) {
	s := New[string](0)
	for _, w := range []string{"apple", "banana", "cherry"} {
		s.Add(w)
	}
	require.Equal(t, 3, s.Len())
	require.True(t, s.Contains("banana"))
	require.False(t, s.Contains("durian"))
}
