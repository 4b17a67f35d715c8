package repository

import (
	"testing"
	"time"

	"gcse_prep_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdatePredictionKeepsPaperWhenUnset(t *testing.T) {
	db := newTestDB(t)
	repo := NewEnrollmentRepository(db)

	enrollment := &model.Enrollment{
		LearnerID:  1,
		CourseSlug: "maths",
		Status:     model.EnrollmentActive,
		EnrolledAt: time.Now(),
	}
	require.NoError(t, db.Create(enrollment).Error)

	require.NoError(t, repo.UpdatePrediction(enrollment.ID, 6, model.PaperHigher))

	got, err := repo.FindByCourse(1, "maths")
	require.NoError(t, err)
	assert.Equal(t, 6, got.PredictedGrade)
	assert.Equal(t, model.PaperHigher, got.RecommendedPaper)

	// A prediction with no recommendation updates the grade only.
	require.NoError(t, repo.UpdatePrediction(enrollment.ID, 7, ""))

	got, err = repo.FindByCourse(1, "maths")
	require.NoError(t, err)
	assert.Equal(t, 7, got.PredictedGrade)
	assert.Equal(t, model.PaperHigher, got.RecommendedPaper)
}
