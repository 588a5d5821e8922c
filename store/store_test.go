package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MVinothkumarAWS/k2-Quiz/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "questions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func question(text string) types.QuestionRecord {
	return types.QuestionRecord{
		Question: text,
		Options:  []string{"A", "B", "C", "D"},
		Correct:  0,
		Category: "General",
		Language: "english",
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "what is the capital of india?", Normalize("  What   is the\tcapital of India?  "))
	assert.Equal(t, Hash("What is X?"), Hash("  what IS x?  "))
	assert.NotEqual(t, Hash("What is X?"), Hash("What is Y?"))
}

func TestFilterDuplicatesWithinBatch(t *testing.T) {
	s := newTestStore(t)

	// Two candidates normalizing identically: only the first is accepted.
	accepted, rejected, err := s.FilterDuplicates([]types.QuestionRecord{
		question("What is the capital of India?"),
		question("  what is the capital of INDIA?  "),
	})
	require.NoError(t, err)
	require.Len(t, accepted, 1)
	require.Len(t, rejected, 1)
	assert.Equal(t, "What is the capital of India?", accepted[0].Question)
}

func TestFilterDuplicatesAcrossCalls(t *testing.T) {
	s := newTestStore(t)

	accepted, rejected, err := s.FilterDuplicates([]types.QuestionRecord{question("Who wrote Hamlet?")})
	require.NoError(t, err)
	require.Len(t, accepted, 1)
	require.Empty(t, rejected)

	// Same normalized text in every later call is rejected.
	accepted, rejected, err = s.FilterDuplicates([]types.QuestionRecord{question("who wrote hamlet?")})
	require.NoError(t, err)
	assert.Empty(t, accepted)
	assert.Len(t, rejected, 1)
}

func TestAddDuplicateSentinel(t *testing.T) {
	s := newTestStore(t)

	q := question("What is 2+2?")
	require.NoError(t, s.Add(&q))
	err := s.Add(&q)
	require.ErrorIs(t, err, ErrDuplicate)
}

func TestSeen(t *testing.T) {
	s := newTestStore(t)

	seen, err := s.Seen("Largest planet?")
	require.NoError(t, err)
	assert.False(t, seen)

	q := question("Largest planet?")
	require.NoError(t, s.Add(&q))

	seen, err = s.Seen("  largest PLANET?")
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestStatsAndClear(t *testing.T) {
	s := newTestStore(t)

	q1 := question("Q one")
	q2 := question("Q two")
	q2.Category = "History"
	require.NoError(t, s.Add(&q1))
	require.NoError(t, s.Add(&q2))

	stats, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.ByCategory["General"])
	assert.Equal(t, 1, stats.ByCategory["History"])
	assert.Equal(t, 2, stats.ByLanguage["english"])

	require.NoError(t, s.Clear())
	stats, err = s.Stats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total)

	// Cleared questions can be added again.
	require.NoError(t, s.Add(&q1))
}
