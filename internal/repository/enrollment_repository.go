package repository

import (
	"gcse_prep_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) FindActiveByLearner(learnerID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Where("learner_id = ? AND status = ?", learnerID, model.EnrollmentActive).
		Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentRepository) FindByCourse(learnerID uint, courseSlug string) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.Where("learner_id = ? AND course_slug = ?", learnerID, courseSlug).
		First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentRepository) UpdateTargets(enrollmentID string, targetPaper model.PaperTier, targetGrade int) error {
	return r.DB.Model(&model.Enrollment{}).
		Where("id = ?", enrollmentID).
		Updates(map[string]interface{}{
			"target_paper": targetPaper,
			"target_grade": targetGrade,
		}).Error
}

// UpdatePrediction persists the latest computed prediction onto the
// enrollment so dashboards can show it without recomputing. An empty
// recommendation leaves the stored paper untouched rather than
// blanking it; single-tier courses never produce one.
func (r *EnrollmentRepository) UpdatePrediction(enrollmentID string, predictedGrade int, recommendedPaper model.PaperTier) error {
	updates := map[string]interface{}{
		"predicted_grade": predictedGrade,
	}
	if recommendedPaper != "" {
		updates["recommended_paper"] = recommendedPaper
	}
	return r.DB.Model(&model.Enrollment{}).
		Where("id = ?", enrollmentID).
		Updates(updates).Error
}

func (r *EnrollmentRepository) IncrementLessonsCompleted(learnerID uint, courseSlug string) error {
	return r.DB.Model(&model.Enrollment{}).
		Where("learner_id = ? AND course_slug = ? AND status = ?", learnerID, courseSlug, model.EnrollmentActive).
		Update("lessons_completed", gorm.Expr("lessons_completed + 1")).Error
}
