package repository

import (
	"gcse_prep_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionAttemptRepository struct {
	DB *gorm.DB
}

func NewQuestionAttemptRepository(db *gorm.DB) *QuestionAttemptRepository {
	return &QuestionAttemptRepository{DB: db}
}

// Create appends one attempt row. Attempts are never updated or
// deleted here; bulk withdrawal is handled by the enrollment system.
func (r *QuestionAttemptRepository) Create(attempt *model.QuestionAttempt) error {
	return r.DB.Create(attempt).Error
}

// LessonAccuracyStats aggregates a learner's attempts for one lesson.
// Repeated attempts for the same question all count.
type LessonAccuracyStats struct {
	TotalAttempts      int `json:"totalAttempts"`
	CorrectAnswers     int `json:"correctAnswers"`
	AccuracyPercentage int `json:"accuracyPercentage"`
	UniqueQuestions    int `json:"uniqueQuestions"`
}

func (r *QuestionAttemptRepository) GetLessonAccuracyStats(learnerID uint, courseSlug string, lessonID uint) (*LessonAccuracyStats, error) {
	var row struct {
		TotalAttempts   int
		CorrectAnswers  int
		UniqueQuestions int
	}

	err := r.DB.Model(&model.QuestionAttempt{}).
		Select("COUNT(*) AS total_attempts, COALESCE(SUM(is_correct), 0) AS correct_answers, COUNT(DISTINCT question_id) AS unique_questions").
		Where("learner_id = ? AND course_slug = ? AND lesson_id = ?", learnerID, courseSlug, lessonID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	stats := &LessonAccuracyStats{
		TotalAttempts:   row.TotalAttempts,
		CorrectAnswers:  row.CorrectAnswers,
		UniqueQuestions: row.UniqueQuestions,
	}
	if row.TotalAttempts > 0 {
		stats.AccuracyPercentage = int(float64(row.CorrectAnswers)/float64(row.TotalAttempts)*100 + 0.5)
	}
	return stats, nil
}

// GetWeakQuestionIDs returns the ids whose most recent attempt was
// incorrect. "Most recent" is by attempted_at with insertion order
// breaking ties; attempt ids are monotonic so MAX(id) encodes both.
func (r *QuestionAttemptRepository) GetWeakQuestionIDs(learnerID uint, courseSlug string, lessonID uint) ([]string, error) {
	var ids []string
	err := r.DB.Raw(`
		SELECT qa.question_id
		FROM question_attempts qa
		JOIN (
			SELECT question_id, MAX(id) AS latest_id
			FROM question_attempts
			WHERE learner_id = ? AND course_slug = ? AND lesson_id = ? AND deleted_at IS NULL
			GROUP BY question_id
		) latest ON qa.id = latest.latest_id
		WHERE qa.is_correct = 0`,
		learnerID, courseSlug, lessonID,
	).Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
