package service

import (
	"fmt"
	"testing"

	"gcse_prep_backend/internal/bank"
	"gcse_prep_backend/internal/model"
	"gcse_prep_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeBank(size int) *bank.LessonBank {
	questions := make([]bank.Question, size)
	for i := range questions {
		questions[i] = bank.Question{
			ID:     fmt.Sprintf("q-%d", i+1),
			Prompt: fmt.Sprintf("question %d", i+1),
		}
	}
	return &bank.LessonBank{Questions: questions}
}

// positionOf maps question ids back to their bank index so tests can
// assert which difficulty tier a pick came from.
func positionOf(t *testing.T, lb *bank.LessonBank, id string) int {
	t.Helper()
	for i, q := range lb.Questions {
		if q.ID == id {
			return i
		}
	}
	t.Fatalf("question %s not in bank", id)
	return -1
}

func assertNoDuplicates(t *testing.T, questions []bank.Question) {
	t.Helper()
	seen := make(map[string]bool, len(questions))
	for _, q := range questions {
		assert.False(t, seen[q.ID], "question %s selected twice", q.ID)
		seen[q.ID] = true
	}
}

func TestSampleFromBankPracticeMode(t *testing.T) {
	lb := makeBank(300)

	selected, err := SampleFromBank(lb, model.ModePractice, nil)
	require.NoError(t, err)
	require.Len(t, selected, 10)
	assertNoDuplicates(t, selected)

	easy, medium := 0, 0
	for _, q := range selected {
		pos := positionOf(t, lb, q.ID)
		switch {
		case pos < 30:
			easy++
		case pos < 60:
			medium++
		default:
			t.Fatalf("question %s drawn from position %d, outside practice tiers", q.ID, pos)
		}
	}
	assert.Equal(t, 8, easy)
	assert.Equal(t, 2, medium)
}

func TestSampleFromBankTimedMode(t *testing.T) {
	lb := makeBank(300)

	selected, err := SampleFromBank(lb, model.ModeTimed, nil)
	require.NoError(t, err)
	require.Len(t, selected, 15)
	assertNoDuplicates(t, selected)

	easy, medium := 0, 0
	for _, q := range selected {
		pos := positionOf(t, lb, q.ID)
		switch {
		case pos < 30:
			easy++
		case pos < 60:
			medium++
		default:
			t.Fatalf("question %s drawn from position %d, outside timed tiers", q.ID, pos)
		}
	}
	assert.Equal(t, 12, easy)
	assert.Equal(t, 3, medium)
}

func TestSampleFromBankExpertMode(t *testing.T) {
	lb := makeBank(300)

	selected, err := SampleFromBank(lb, model.ModeExpert, nil)
	require.NoError(t, err)
	require.Len(t, selected, 15)
	assertNoDuplicates(t, selected)

	for _, q := range selected {
		pos := positionOf(t, lb, q.ID)
		assert.GreaterOrEqual(t, pos, 149, "question %s below the expert tier", q.ID)
	}
}

func TestSampleFromBankShortBank(t *testing.T) {
	// 20 questions: the medium tier [30:60) is empty and the easy draw
	// is capped by the pool size.
	lb := makeBank(20)

	selected, err := SampleFromBank(lb, model.ModePractice, nil)
	require.NoError(t, err)
	assert.Len(t, selected, 8)
	assertNoDuplicates(t, selected)

	// Expert tier starts past the end of a short bank entirely.
	selected, err = SampleFromBank(lb, model.ModeExpert, nil)
	require.NoError(t, err)
	assert.Empty(t, selected)
}

func TestSampleFromBankWeakAreas(t *testing.T) {
	lb := makeBank(60)

	weakIDs := []string{"q-3", "q-17", "q-41"}
	selected, err := SampleFromBank(lb, model.ModeWeakAreas, weakIDs)
	require.NoError(t, err)
	require.Len(t, selected, 3)
	assertNoDuplicates(t, selected)
	for _, q := range selected {
		assert.Contains(t, weakIDs, q.ID)
	}
}

func TestSampleFromBankWeakAreasCapped(t *testing.T) {
	lb := makeBank(60)

	weakIDs := make([]string, 25)
	for i := range weakIDs {
		weakIDs[i] = fmt.Sprintf("q-%d", i+1)
	}

	selected, err := SampleFromBank(lb, model.ModeWeakAreas, weakIDs)
	require.NoError(t, err)
	assert.Len(t, selected, 10)
	assertNoDuplicates(t, selected)
}

func TestSampleFromBankWeakAreasEmpty(t *testing.T) {
	lb := makeBank(60)

	_, err := SampleFromBank(lb, model.ModeWeakAreas, nil)
	assert.ErrorIs(t, err, util.ErrNoWeakQuestions)

	// Weak ids no longer present in the bank count as no weak pool.
	_, err = SampleFromBank(lb, model.ModeWeakAreas, []string{"gone-1", "gone-2"})
	assert.ErrorIs(t, err, util.ErrNoWeakQuestions)
}

func TestSampleFromBankUnknownMode(t *testing.T) {
	lb := makeBank(60)

	_, err := SampleFromBank(lb, model.PracticeMode("speedrun"), nil)
	assert.ErrorIs(t, err, util.ErrInvalidMode)
}
