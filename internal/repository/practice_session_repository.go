package repository

import (
	"time"

	"gcse_prep_backend/internal/model"

	"gorm.io/gorm"
)

type PracticeSessionRepository struct {
	DB *gorm.DB
}

func NewPracticeSessionRepository(db *gorm.DB) *PracticeSessionRepository {
	return &PracticeSessionRepository{DB: db}
}

func (r *PracticeSessionRepository) Create(session *model.PracticeSession) error {
	return r.DB.Create(session).Error
}

func (r *PracticeSessionRepository) FindByID(sessionID string, learnerID uint) (*model.PracticeSession, error) {
	var session model.PracticeSession
	err := r.DB.Where("id = ? AND learner_id = ?", sessionID, learnerID).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// IncrementTallies bumps the in-flight counters after one submission.
// The authoritative numbers still arrive at completion.
func (r *PracticeSessionRepository) IncrementTallies(sessionID string, correct bool) error {
	updates := map[string]interface{}{
		"questions_attempted": gorm.Expr("questions_attempted + 1"),
	}
	if correct {
		updates["questions_correct"] = gorm.Expr("questions_correct + 1")
	}
	return r.DB.Model(&model.PracticeSession{}).
		Where("id = ?", sessionID).
		Updates(updates).Error
}

// Complete stamps the final tallies and closes the session. Calling
// it on an already-closed session overwrites silently.
func (r *PracticeSessionRepository) Complete(sessionID string, learnerID uint, attempted, correct, accuracy, durationSeconds int, completedAt time.Time) error {
	return r.DB.Model(&model.PracticeSession{}).
		Where("id = ? AND learner_id = ?", sessionID, learnerID).
		Updates(map[string]interface{}{
			"questions_attempted": attempted,
			"questions_correct":   correct,
			"accuracy_percentage": accuracy,
			"duration_seconds":    durationSeconds,
			"completed_at":        completedAt,
		}).Error
}

// SumClosedDurations totals duration over completed sessions for a lesson.
func (r *PracticeSessionRepository) SumClosedDurations(learnerID uint, courseSlug string, lessonID uint) (int64, error) {
	var total int64
	err := r.DB.Model(&model.PracticeSession{}).
		Where("learner_id = ? AND course_slug = ? AND lesson_id = ? AND completed_at IS NOT NULL", learnerID, courseSlug, lessonID).
		Select("COALESCE(SUM(duration_seconds), 0)").
		Scan(&total).Error
	return total, err
}

// CountClosed counts completed practice runs for a lesson.
func (r *PracticeSessionRepository) CountClosed(learnerID uint, courseSlug string, lessonID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.PracticeSession{}).
		Where("learner_id = ? AND course_slug = ? AND lesson_id = ? AND completed_at IS NOT NULL", learnerID, courseSlug, lessonID).
		Count(&count).Error
	return count, err
}

// CourseTotals sums correct/attempted over a course's completed
// sessions, feeding the grade predictor's average accuracy.
type CourseTotals struct {
	QuestionsCorrect   int
	QuestionsAttempted int
}

func (r *PracticeSessionRepository) GetCourseTotals(learnerID uint, courseSlug string) (*CourseTotals, error) {
	var totals CourseTotals
	err := r.DB.Model(&model.PracticeSession{}).
		Select("COALESCE(SUM(questions_correct), 0) AS questions_correct, COALESCE(SUM(questions_attempted), 0) AS questions_attempted").
		Where("learner_id = ? AND course_slug = ? AND completed_at IS NOT NULL", learnerID, courseSlug).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}
