package repository

import (
	"time"

	"gcse_prep_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StudyActivityRepository struct {
	DB *gorm.DB
}

func NewStudyActivityRepository(db *gorm.DB) *StudyActivityRepository {
	return &StudyActivityRepository{DB: db}
}

// Record logs activity for the given day, at day granularity. The
// unique index makes repeat submissions within a day a no-op.
func (r *StudyActivityRepository) Record(learnerID uint, at time.Time) error {
	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	activity := &model.StudyActivity{
		LearnerID:    learnerID,
		ActivityDate: day,
	}
	return r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(activity).Error
}

// GetDistinctDatesDesc returns the learner's activity dates, most
// recent first, across all courses.
func (r *StudyActivityRepository) GetDistinctDatesDesc(learnerID uint) ([]time.Time, error) {
	var dates []time.Time
	err := r.DB.Model(&model.StudyActivity{}).
		Where("learner_id = ?", learnerID).
		Order("activity_date DESC").
		Pluck("activity_date", &dates).Error
	return dates, err
}
