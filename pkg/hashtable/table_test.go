package hashtable

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsNonPositiveCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1, -57} {
		_, err := New(capacity, 0)
		require.ErrorIs(t, err, ErrInvalidCapacity, "capacity %d", capacity)
	}
}

func TestLookupMissingReturnsDefault(t *testing.T) {
	tbl, err := New(8, "empty")
	require.NoError(t, err)

	assert.Equal(t, "empty", tbl.Lookup("nope"))
	assert.Equal(t, "empty", tbl.Lookup(""))
	assert.Equal(t, 0, tbl.Len())
}

func TestUpdateOverwritesInPlace(t *testing.T) {
	tbl, err := New(16, 0)
	require.NoError(t, err)

	require.NoError(t, tbl.Update("ab", 1))
	require.NoError(t, tbl.Update("ab", 7))

	assert.Equal(t, 7, tbl.Lookup("ab"))
	assert.Equal(t, 1, tbl.Len())
}

func TestRoundTripMostRecentWriteWins(t *testing.T) {
	tbl, err := New(3, -1)
	require.NoError(t, err)

	want := make(map[string]int)
	for i := 0; i < 500; i++ {
		key := fmt.Sprintf("k%d", i%137)
		require.NoError(t, tbl.Update(key, i))
		want[key] = i
	}

	for key, v := range want {
		assert.Equal(t, v, tbl.Lookup(key), "key %q", key)
	}
	assert.Equal(t, len(want), tbl.Len())
}

func TestLoadFactorStaysBelowHalf(t *testing.T) {
	tbl, err := New(1, 0)
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		require.NoError(t, tbl.Update(fmt.Sprintf("key-%d", i), i))
		assert.Less(t, 2*tbl.Len(), tbl.Cap(), "after insert %d: size=%d cap=%d", i, tbl.Len(), tbl.Cap())
	}
}

func TestGrowthDoublesAndPreservesEntries(t *testing.T) {
	const initial = 5
	tbl, err := New(initial, 0)
	require.NoError(t, err)

	inserted := make(map[string]int)
	for i := 0; i < 200; i++ {
		before := tbl.Rehashes()
		key := fmt.Sprintf("%c%d", 'a'+rune(i%26), i)
		require.NoError(t, tbl.Update(key, i*i))
		inserted[key] = i * i

		assert.Equal(t, initial<<tbl.Rehashes(), tbl.Cap())
		if tbl.Rehashes() != before {
			for k, v := range inserted {
				require.Equal(t, v, tbl.Lookup(k), "lost %q across rehash", k)
			}
		}
	}
	assert.Positive(t, tbl.Rehashes())
}

func TestSingleSlotTableGrowsTwiceOnFirstInsert(t *testing.T) {
	tbl, err := New(1, "empty")
	require.NoError(t, err)

	require.NoError(t, tbl.Update("hi", "there"))

	assert.Equal(t, 4, tbl.Cap())
	assert.Equal(t, 2, tbl.Rehashes())
	assert.Equal(t, "there", tbl.Lookup("hi"))
}

func TestRehashFailureLeavesTableUnchanged(t *testing.T) {
	tbl, err := New(4, 0, WithMaxCapacity(8))
	require.NoError(t, err)

	require.NoError(t, tbl.Update("a", 1))
	require.NoError(t, tbl.Update("b", 2)) // grows to 8
	require.NoError(t, tbl.Update("c", 3))
	require.Equal(t, 8, tbl.Cap())

	err = tbl.Update("d", 4)
	require.ErrorIs(t, err, ErrCapacityOverflow)

	assert.Equal(t, 8, tbl.Cap())
	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, 0, tbl.Lookup("d"))
	assert.Equal(t, 1, tbl.Lookup("a"))
	assert.Equal(t, 2, tbl.Lookup("b"))
	assert.Equal(t, 3, tbl.Lookup("c"))

	// Overwrites never need growth.
	require.NoError(t, tbl.Update("c", 30))
	assert.Equal(t, 30, tbl.Lookup("c"))
}

func TestHashDependsOnCapacity(t *testing.T) {
	assert.Equal(t, 0, hash("", 7))
	// 'h' = 104, 'i' = 105
	assert.Equal(t, ((104%11)*37+105)%11, hash("hi", 11))
	assert.Equal(t, ((104%13)*37+105)%13, hash("hi", 13))
	assert.Equal(t, int('é')%1000, hash("é", 1000))
}

func TestProbeExhaustedOnFullSlots(t *testing.T) {
	slots := []slot[int]{
		{key: "x", used: true},
		{key: "y", used: true},
	}
	_, _, err := probe(slots, "z")
	assert.ErrorIs(t, err, ErrCapacityExhausted)

	idx, found, err := probe(slots, "y")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, idx)
}

func TestCollidingKeysUseLinearProbing(t *testing.T) {
	tbl, err := New(64, 0)
	require.NoError(t, err)

	// Single-rune keys hash to their code point modulo 64.
	require.NoError(t, tbl.Update("A", 1))    // 65 % 64 = 1
	require.NoError(t, tbl.Update("\x01", 2)) // 1 % 64 = 1, collides
	require.NoError(t, tbl.Update("\x02", 3)) // 2, taken by the probe above

	assert.Equal(t, 1, tbl.Lookup("A"))
	assert.Equal(t, 2, tbl.Lookup("\x01"))
	assert.Equal(t, 3, tbl.Lookup("\x02"))
	assert.Equal(t, "A", tbl.slots[1].key)
	assert.Equal(t, "\x01", tbl.slots[2].key)
	assert.Equal(t, "\x02", tbl.slots[3].key)
}

func TestAllVisitsEveryEntry(t *testing.T) {
	tbl, err := New(2, 0)
	require.NoError(t, err)
	for i, k := range []string{"a", "aa", "ab", "b"} {
		require.NoError(t, tbl.Update(k, i+1))
	}

	got := make(map[string]int)
	for k, v := range tbl.All() {
		got[k] = v
	}
	assert.Equal(t, map[string]int{"a": 1, "aa": 2, "ab": 3, "b": 4}, got)
}

func BenchmarkUpdate(b *testing.B) {
	keys := make([]string, 4096)
	for i := range keys {
		keys[i] = fmt.Sprintf("gram-%d", i)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tbl, _ := New(57, 0)
		for _, k := range keys {
			_ = tbl.Update(k, tbl.Lookup(k)+1)
		}
	}
}
