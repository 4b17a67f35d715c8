package repository

import (
	"errors"
	"time"

	"gcse_prep_backend/internal/model"

	"gorm.io/gorm"
)

type LessonProgressRepository struct {
	DB *gorm.DB
}

func NewLessonProgressRepository(db *gorm.DB) *LessonProgressRepository {
	return &LessonProgressRepository{DB: db}
}

func (r *LessonProgressRepository) FindByLesson(learnerID uint, courseSlug string, lessonID uint) (*model.LessonProgress, error) {
	var progress model.LessonProgress
	err := r.DB.Where("learner_id = ? AND course_slug = ? AND lesson_id = ?", learnerID, courseSlug, lessonID).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// RollupUpdate carries the recomputed aggregate fields. The perfect
// flags and lesson-completed state live outside the rollup and are
// never touched by it.
type RollupUpdate struct {
	AccuracyScore    int
	Attempts         int
	TimeSpentMinutes int
	LastAttemptAt    time.Time
}

// ReplaceRollup overwrites the aggregate columns wholesale, creating
// the row if missing. Callers never patch these columns directly.
func (r *LessonProgressRepository) ReplaceRollup(learnerID uint, courseSlug string, lessonID uint, lessonSlug string, rollup RollupUpdate) (*model.LessonProgress, error) {
	updates := map[string]interface{}{
		"accuracy_score":     rollup.AccuracyScore,
		"attempts":           rollup.Attempts,
		"time_spent_minutes": rollup.TimeSpentMinutes,
		"last_attempt_at":    rollup.LastAttemptAt,
	}

	existing, err := r.FindByLesson(learnerID, courseSlug, lessonID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		progress := &model.LessonProgress{
			LearnerID:        learnerID,
			CourseSlug:       courseSlug,
			LessonID:         lessonID,
			LessonSlug:       lessonSlug,
			AccuracyScore:    rollup.AccuracyScore,
			Attempts:         rollup.Attempts,
			TimeSpentMinutes: rollup.TimeSpentMinutes,
			LastAttemptAt:    &rollup.LastAttemptAt,
		}
		if err := r.DB.Create(progress).Error; err != nil {
			return nil, err
		}
		return progress, nil
	}

	if err := r.DB.Model(existing).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.FindByLesson(learnerID, courseSlug, lessonID)
}

// SetPerfectFlag raises the one-way perfect flag for a mode. Nothing
// ever lowers it.
func (r *LessonProgressRepository) SetPerfectFlag(learnerID uint, courseSlug string, lessonID uint, lessonSlug string, mode model.PracticeMode) error {
	var column string
	switch mode {
	case model.ModePractice:
		column = "practice_perfect"
	case model.ModeTimed:
		column = "timed_perfect"
	case model.ModeExpert:
		column = "expert_perfect"
	default:
		return nil
	}

	existing, err := r.FindByLesson(learnerID, courseSlug, lessonID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		progress := &model.LessonProgress{
			LearnerID:  learnerID,
			CourseSlug: courseSlug,
			LessonID:   lessonID,
			LessonSlug: lessonSlug,
		}
		switch mode {
		case model.ModePractice:
			progress.PracticePerfect = true
		case model.ModeTimed:
			progress.TimedPerfect = true
		case model.ModeExpert:
			progress.ExpertPerfect = true
		}
		return r.DB.Create(progress).Error
	}

	return r.DB.Model(existing).Update(column, true).Error
}

// SetLessonCompleted marks the lesson content as viewed to the end.
func (r *LessonProgressRepository) SetLessonCompleted(learnerID uint, courseSlug string, lessonID uint, lessonSlug string, completedAt time.Time) error {
	existing, err := r.FindByLesson(learnerID, courseSlug, lessonID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		progress := &model.LessonProgress{
			LearnerID:         learnerID,
			CourseSlug:        courseSlug,
			LessonID:          lessonID,
			LessonSlug:        lessonSlug,
			LessonCompleted:   true,
			LessonCompletedAt: &completedAt,
		}
		return r.DB.Create(progress).Error
	}

	return r.DB.Model(existing).Updates(map[string]interface{}{
		"lesson_completed":    true,
		"lesson_completed_at": completedAt,
	}).Error
}
