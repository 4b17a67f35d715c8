package model

import (
	"time"
)

// StudyActivity logs one row per learner per calendar day with any
// practice activity. Feeds the streak computation; time-of-day is
// discarded on write.
// swagger:model StudyActivity
type StudyActivity struct {
	BaseModel
	LearnerID    uint      `gorm:"uniqueIndex:idx_activity_day;not null" json:"learnerId"`
	ActivityDate time.Time `gorm:"uniqueIndex:idx_activity_day;type:date;not null" json:"activityDate"`
}

func (StudyActivity) TableName() string {
	return "study_activity"
}
