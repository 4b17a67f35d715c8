package model

import (
	"time"
)

// LessonProgress is a materialized rollup over question_attempts and
// practice_sessions. It is only ever written by a full recomputation;
// nothing patches individual fields from the outside. The perfect
// flags are one-way: once earned they are never cleared.
// swagger:model LessonProgress
type LessonProgress struct {
	BaseModel
	LearnerID         uint       `gorm:"uniqueIndex:idx_progress_lesson;not null" json:"learnerId"`
	CourseSlug        string     `gorm:"uniqueIndex:idx_progress_lesson;type:varchar(64);not null" json:"courseSlug"`
	LessonID          uint       `gorm:"uniqueIndex:idx_progress_lesson;not null" json:"lessonId"`
	LessonSlug        string     `gorm:"type:varchar(128)" json:"lessonSlug"`
	AccuracyScore     int        `gorm:"default:0" json:"accuracyScore"`
	Attempts          int        `gorm:"default:0" json:"attempts"` // completed practice runs, not questions answered
	TimeSpentMinutes  int        `gorm:"default:0" json:"timeSpentMinutes"`
	LastAttemptAt     *time.Time `json:"lastAttemptAt"`
	LessonCompleted   bool       `gorm:"default:false" json:"lessonCompleted"`
	LessonCompletedAt *time.Time `json:"lessonCompletedAt"`
	PracticePerfect   bool       `gorm:"default:false" json:"practicePerfect"`
	TimedPerfect      bool       `gorm:"default:false" json:"timedPerfect"`
	ExpertPerfect     bool       `gorm:"default:false" json:"expertPerfect"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}
