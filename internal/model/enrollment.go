package model

import (
	"time"
)

type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentWithdrawn EnrollmentStatus = "withdrawn"
	EnrollmentCompleted EnrollmentStatus = "completed"
)

type PaperTier string

const (
	PaperFoundation PaperTier = "foundation"
	PaperHigher     PaperTier = "higher"
	PaperNone       PaperTier = "none"
)

// Enrollment links a learner to a course and carries their exam
// targets plus the latest persisted prediction. Enrollment lifecycle
// (payment, withdrawal) is owned elsewhere; the engine reads active
// rows and writes back predicted_grade / recommended_paper.
// swagger:model Enrollment
type Enrollment struct {
	UUIDBase
	LearnerID        uint             `gorm:"uniqueIndex:idx_enrollment_course;not null" json:"learnerId"`
	CourseSlug       string           `gorm:"uniqueIndex:idx_enrollment_course;type:varchar(64);not null" json:"courseSlug"`
	Status           EnrollmentStatus `gorm:"type:varchar(16);default:active;index" json:"status"`
	TargetPaper      PaperTier        `gorm:"type:varchar(16);default:foundation" json:"targetPaper"`
	TargetGrade      int              `gorm:"default:4" json:"targetGrade"`
	LessonsCompleted int              `gorm:"default:0" json:"lessonsCompleted"`
	PredictedGrade   int              `gorm:"default:0" json:"predictedGrade"`
	RecommendedPaper PaperTier        `gorm:"type:varchar(16)" json:"recommendedPaper"`
	EnrolledAt       time.Time        `json:"enrolledAt"`
	LastAccessedAt   *time.Time       `json:"lastAccessedAt"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
