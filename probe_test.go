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

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindOnEmptyIndex(t *testing.T) {
	ix := New()
	scan := uint32(0)
	_, ok := ix.Find(0x12345678, &scan)
	require.False(t, ok)
}

// TestFindInsertDistinctBuckets covers the case where three elements land
// in three distinct home buckets: each should be found with no spurious
// second candidate once its one true match has been returned.
func TestFindInsertDistinctBuckets(t *testing.T) {
	ix := New(WithLoadFactor(0.75))
	growTo(t, ix, 16, 12)

	hashes := []uint32{0x11111111, 0x22222222, 0x33333333}
	for i, h := range hashes {
		scan := uint32(0)
		_, found := ix.Find(h, &scan)
		require.False(t, found)
		ix.Insert(h, scan, uint32(i))
	}

	scan := uint32(0)
	idx, ok := ix.Find(0x22222222, &scan)
	require.True(t, ok)
	require.EqualValues(t, 1, idx)

	_, ok = ix.Find(0x22222222, &scan)
	require.False(t, ok, "no second candidate should exist for a hash with no collisions")
}

// TestInsertCollisionChain covers a three-way collision on the same home
// bucket: Robin Hood displacement should leave three entries occupying
// consecutive buckets starting at the home bucket, with probe distances
// 1, 2, 3 in insertion order (equal-probe newcomers never displace an
// equally-displaced resident).
func TestInsertCollisionChain(t *testing.T) {
	ix := New(WithLoadFactor(0.75))
	growTo(t, ix, 16, 12)

	hashes := []uint32{0x01000005, 0x02000005, 0x03000005}
	for i, h := range hashes {
		scan := uint32(0)
		_, found := ix.Find(h, &scan)
		require.False(t, found)
		ix.Insert(h, scan, uint32(i))
	}

	require.EqualValues(t, 1, entry(ix.entriesArr[5]).decodeProbe())
	require.EqualValues(t, 0, entry(ix.entriesArr[5]).decodeIndex(ix.mask))
	require.EqualValues(t, 2, entry(ix.entriesArr[6]).decodeProbe())
	require.EqualValues(t, 1, entry(ix.entriesArr[6]).decodeIndex(ix.mask))
	require.EqualValues(t, 3, entry(ix.entriesArr[7]).decodeProbe())
	require.EqualValues(t, 2, entry(ix.entriesArr[7]).decodeIndex(ix.mask))
}

func TestInsertDisplacesPoorerEntry(t *testing.T) {
	// Two elements sharing a home bucket, but arriving in an order where
	// the second has probed further by the time it reaches a bucket the
	// first (less-displaced) element occupies - the second should steal
	// the slot and carry the first element onward instead.
	ix := New(WithLoadFactor(0.75))
	growTo(t, ix, 16, 12)

	// home bucket 5 for both; insert h1 at 5, then an unrelated filler at 6
	// so h2 (also home 5) must pass through 6 with actualProbe=2 before
	// reaching a bucket whose resident it can out-rank.
	h1 := uint32(0x01000005)
	filler := uint32(0x40000006) // home bucket 6, lands there at probe 1
	h2 := uint32(0x02000005)

	for i, h := range []uint32{h1, filler, h2} {
		scan := uint32(0)
		_, found := ix.Find(h, &scan)
		require.False(t, found)
		ix.Insert(h, scan, uint32(i))
	}

	// h2 should have displaced filler out of bucket 6 since by the time h2
	// reaches bucket 6 its actual probe (2) exceeds filler's (1).
	require.EqualValues(t, 2, entry(ix.entriesArr[6]).decodeProbe())
	require.EqualValues(t, 2, entry(ix.entriesArr[6]).decodeIndex(ix.mask), "h2 should occupy bucket 6")
	require.EqualValues(t, 2, entry(ix.entriesArr[7]).decodeProbe())
	require.EqualValues(t, 1, entry(ix.entriesArr[7]).decodeIndex(ix.mask), "filler should have been carried to bucket 7")
}

func TestNextVisitsEveryElementInIndexOrder(t *testing.T) {
	ix := New(WithLoadFactor(0.75))
	growTo(t, ix, 16, 12)

	want := []uint32{0x11111111, 0x22222222, 0x33333333, 0x44444444}
	for i, h := range want {
		scan := uint32(0)
		_, found := ix.Find(h, &scan)
		require.False(t, found)
		ix.Insert(h, scan, uint32(i))
	}

	var hash, scan uint32
	var got []uint32
	for {
		idx, ok := ix.Next(&hash, &scan)
		if !ok {
			break
		}
		got = append(got, idx)
	}
	require.Equal(t, []uint32{0, 1, 2, 3}, got)
}

func TestFindStopsAtFirstLesserProbe(t *testing.T) {
	ix := New(WithLoadFactor(0.75))
	growTo(t, ix, 16, 12)

	scan := uint32(0)
	_, found := ix.Find(0x10000005, &scan)
	require.False(t, found)
	ix.Insert(0x10000005, scan, 0)

	// Looking for a hash that was never inserted but shares the home
	// bucket should terminate once it meets a lower-probe resident,
	// rather than scanning the whole table.
	miss := uint32(0x09000005)
	s := uint32(0)
	_, ok := ix.Find(miss, &s)
	require.False(t, ok)
}
