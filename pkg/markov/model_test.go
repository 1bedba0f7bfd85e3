package markov

import (
	"errors"
	"math"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsInvalidInput(t *testing.T) {
	_, err := New(-1, "abc")
	assert.ErrorIs(t, err, ErrInvalidOrder)

	_, err = New(2, "")
	assert.ErrorIs(t, err, ErrEmptyTrainingText)
}

func TestNewComputesAlphabet(t *testing.T) {
	m, err := New(1, "abracadabra")
	require.NoError(t, err)

	assert.Equal(t, 5, m.AlphabetSize())
	assert.Equal(t, 1, m.Order())
	assert.Equal(t, "abracadabra", m.Text())
}

func TestTrainCountsCircularGrams(t *testing.T) {
	m, err := New(1, "aaaa")
	require.NoError(t, err)

	assert.Equal(t, 4, m.contextCounts.Lookup("a"))
	assert.Equal(t, 4, m.extendedCounts.Lookup("aa"))
	assert.Equal(t, 1, m.contextCounts.Len())
	assert.Equal(t, 1, m.extendedCounts.Len())
}

func TestTrainOrderZeroCountsEmptyContext(t *testing.T) {
	m, err := New(0, "abca")
	require.NoError(t, err)

	assert.Equal(t, 4, m.contextCounts.Lookup(""))
	assert.Equal(t, 2, m.extendedCounts.Lookup("a"))
	assert.Equal(t, 1, m.extendedCounts.Lookup("b"))
	assert.Equal(t, 1, m.extendedCounts.Lookup("c"))
}

func TestTrainOrderLongerThanText(t *testing.T) {
	m, err := New(4, "ab")
	require.NoError(t, err)

	// Contexts at positions 0 and 1 are "abab" and "baba".
	assert.Equal(t, 1, m.contextCounts.Lookup("abab"))
	assert.Equal(t, 1, m.contextCounts.Lookup("baba"))
	assert.Equal(t, 1, m.extendedCounts.Lookup("ababa"))
	assert.Equal(t, 1, m.extendedCounts.Lookup("babab"))
}

func TestStats(t *testing.T) {
	m, err := New(1, "abab")
	require.NoError(t, err)

	stats := m.Stats()
	assert.Equal(t, ModelStats{
		Order:            1,
		AlphabetSize:     2,
		TextLength:       4,
		DistinctContexts: 2,
		DistinctGrams:    2,
		ContextCapacity:  initialTableCells,
		GramCapacity:     initialTableCells,
	}, stats)
}

func TestStatsAfterGrowth(t *testing.T) {
	var sb strings.Builder
	for r := 'a'; r < 'a'+200; r++ {
		sb.WriteRune(r)
	}
	m, err := New(0, sb.String())
	require.NoError(t, err)

	stats := m.Stats()
	assert.Equal(t, 200, stats.DistinctGrams)
	assert.Less(t, 2*stats.DistinctGrams, stats.GramCapacity)
	assert.Equal(t, 0, stats.GramCapacity%initialTableCells)
}

func TestNewFromReader(t *testing.T) {
	m, err := NewFromReader(1, strings.NewReader("aaaa"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, m.LogProbability("aaaa"))

	readErr := errors.New("disk on fire")
	_, err = NewFromReader(1, iotest.ErrReader(readErr))
	assert.ErrorIs(t, err, readErr)

	_, err = NewFromReader(1, strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyTrainingText)
}

func TestSetLoggerIgnoresNil(t *testing.T) {
	m, err := New(1, "ab")
	require.NoError(t, err)
	m.SetLogger(nil)
	assert.NotNil(t, m.logger)
	assert.False(t, math.IsNaN(m.LogProbability("ab")))
}
