package repository

import (
	"testing"
	"time"

	"gcse_prep_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetWeakQuestionIDsLatestAttemptWins(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionAttemptRepository(db)

	at := time.Now().Add(-time.Hour)
	record := func(learnerID uint, lessonID uint, questionID string, correct bool) {
		at = at.Add(time.Minute)
		require.NoError(t, repo.Create(&model.QuestionAttempt{
			LearnerID:    learnerID,
			CourseSlug:   "maths",
			LessonID:     lessonID,
			QuestionID:   questionID,
			IsCorrect:    correct,
			PracticeMode: model.ModePractice,
			AttemptedAt:  at,
		}))
	}

	// Wrong then right: recovered, no longer weak.
	record(1, 3, "q-1", false)
	record(1, 3, "q-1", true)

	// Once wrong, never retried: weak.
	record(1, 3, "q-2", false)

	// Only ever right: not weak.
	record(1, 3, "q-3", true)

	// Right then wrong: the latest attempt decides.
	record(1, 3, "q-4", true)
	record(1, 3, "q-4", false)

	// Other learners and lessons must not leak in.
	record(2, 3, "q-5", false)
	record(1, 4, "q-6", false)

	ids, err := repo.GetWeakQuestionIDs(1, "maths", 3)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"q-2", "q-4"}, ids)
}

func TestGetWeakQuestionIDsEmptyHistory(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionAttemptRepository(db)

	ids, err := repo.GetWeakQuestionIDs(1, "maths", 3)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestGetLessonAccuracyStatsCountsRepeats(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionAttemptRepository(db)

	now := time.Now()
	for i, correct := range []bool{true, false, true, true} {
		questionID := "q-1"
		if i >= 2 {
			questionID = "q-2"
		}
		require.NoError(t, repo.Create(&model.QuestionAttempt{
			LearnerID:   1,
			CourseSlug:  "maths",
			LessonID:    3,
			QuestionID:  questionID,
			IsCorrect:   correct,
			AttemptedAt: now,
		}))
	}

	stats, err := repo.GetLessonAccuracyStats(1, "maths", 3)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalAttempts)
	assert.Equal(t, 3, stats.CorrectAnswers)
	assert.Equal(t, 75, stats.AccuracyPercentage)
	assert.Equal(t, 2, stats.UniqueQuestions)
}
