package model

import (
	"time"
)

// QuestionAttempt records a single answer submission. Rows are
// append-only; repeated submissions for the same question add rows.
// swagger:model QuestionAttempt
type QuestionAttempt struct {
	BaseModel
	LearnerID        uint         `gorm:"index:idx_attempt_lesson;not null" json:"learnerId"`
	CourseSlug       string       `gorm:"index:idx_attempt_lesson;type:varchar(64);not null" json:"courseSlug"`
	LessonID         uint         `gorm:"index:idx_attempt_lesson;not null" json:"lessonId"`
	LessonSlug       string       `gorm:"type:varchar(128)" json:"lessonSlug"`
	QuestionID       string       `gorm:"type:varchar(64);index;not null" json:"questionId"`
	SectionID        string       `gorm:"type:varchar(64)" json:"sectionId"`
	SubmittedAnswer  string       `gorm:"type:text" json:"submittedAnswer"`
	CanonicalAnswer  string       `gorm:"type:text" json:"canonicalAnswer"`
	IsCorrect        bool         `gorm:"not null" json:"isCorrect"`
	PracticeMode     PracticeMode `gorm:"type:varchar(16);default:practice" json:"practiceMode"`
	TimeTakenSeconds int          `json:"timeTakenSeconds"`
	AttemptedAt      time.Time    `gorm:"index;not null" json:"attemptedAt"`
}

func (QuestionAttempt) TableName() string {
	return "question_attempts"
}
