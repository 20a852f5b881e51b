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

import "github.com/pkg/errors"

// Index is a Robin Hood open-addressed hash index mapping 32-bit hashes to
// compact element indices in [0, Size()). The zero value is a valid, empty
// Index - equivalent to an explicit Init - so it may be embedded in larger
// aggregates without a constructor call. It becomes usable for Insert only
// after a successful Rehash establishing Capacity() > 0.
//
// Index borrows exactly one pair of allocations (entries, hashes) at a
// time; it never allocates them itself. The caller retains ownership and
// is responsible for supplying replacements via Rehash and reclaiming
// what Rehash/Reset return.
//
// An Index must be accessed by one mutator at a time. Concurrent Finds are
// safe only while no mutator is active; Index provides no synchronization
// of its own.
type Index struct {
	entriesArr []uint32
	hashesArr  []uint32
	mask       uint32
	capacity   uint32
	size       uint32

	// LoadFactor is a value in (0, 1] used to translate a desired element
	// count into an entries count. Zero (the zero-value default) means
	// DefaultLoadFactor.
	LoadFactor float64
}

// Option configures an Index at construction time.
type Option func(*Index)

// WithLoadFactor sets the load factor an Index's sizing decisions use.
// Equivalent to setting the LoadFactor field directly; provided for
// symmetry with the option-based constructors of the typed facades built
// on top of Index (see package rhmap).
func WithLoadFactor(loadFactor float64) Option {
	return func(ix *Index) { ix.LoadFactor = loadFactor }
}

// New returns an Index ready for use. Passing no options is equivalent to
// the zero value; New exists so options compose the same way they do on
// rhmap.Map and rhset.Set.
func New(opts ...Option) *Index {
	ix := &Index{}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// Size returns the current number of live elements.
func (ix *Index) Size() uint32 { return ix.size }

// Capacity returns the maximum number of elements Index can hold before
// the caller must grow and rehash.
func (ix *Index) Capacity() uint32 { return ix.capacity }

// Mask returns entries-length-minus-one, i.e. N-1 in spec terms. Zero
// before the first Rehash.
func (ix *Index) Mask() uint32 { return ix.mask }

// full reports whether Insert would violate its precondition.
func (ix *Index) full() bool { return ix.size >= ix.capacity }

// assert panics with a stack-trace-carrying error rather than a bare
// string, so an invariant violation surfaced from a CI soak run (see
// cmd/rhfuzz) can be logged with its origin intact.
func assert(cond bool, format string, args ...any) {
	if !cond {
		panic(errors.Errorf(format, args...))
	}
}
