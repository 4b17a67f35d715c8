package model

import (
	"time"
)

// PracticeSession tracks one practice run as a single unit. A session
// with nil CompletedAt is open; completion closes it exactly once.
// An open session that is never completed simply stays open.
// swagger:model PracticeSession
type PracticeSession struct {
	UUIDBase
	LearnerID          uint         `gorm:"index:idx_session_lesson;not null" json:"learnerId"`
	CourseSlug         string       `gorm:"index:idx_session_lesson;type:varchar(64);not null" json:"courseSlug"`
	LessonID           uint         `gorm:"index:idx_session_lesson;not null" json:"lessonId"`
	LessonSlug         string       `gorm:"type:varchar(128)" json:"lessonSlug"`
	PracticeMode       PracticeMode `gorm:"type:varchar(16);not null" json:"practiceMode"`
	QuestionsPlanned   int          `gorm:"not null" json:"questionsPlanned"`
	QuestionsAttempted int          `gorm:"default:0" json:"questionsAttempted"`
	QuestionsCorrect   int          `gorm:"default:0" json:"questionsCorrect"`
	AccuracyPercentage int          `gorm:"default:0" json:"accuracyPercentage"`
	DurationSeconds    int          `gorm:"default:0" json:"durationSeconds"`
	StartedAt          time.Time    `gorm:"not null" json:"startedAt"`
	CompletedAt        *time.Time   `gorm:"index" json:"completedAt"`
}

func (PracticeSession) TableName() string {
	return "practice_sessions"
}

func (s *PracticeSession) IsOpen() bool {
	return s.CompletedAt == nil
}
