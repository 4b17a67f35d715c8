package service

import (
	"errors"
	"fmt"

	"gcse_prep_backend/internal/model"
	"gcse_prep_backend/internal/repository"
	"gcse_prep_backend/internal/util"
	"gcse_prep_backend/pkg/logger"
	"gcse_prep_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// PerformanceData is the predictor's input, assembled from rollups
// and enrollment state.
type PerformanceData struct {
	LessonsCompleted   int
	TotalLessons       int
	AverageAccuracy    float64
	QuestionsAttempted int
	TargetPaper        model.PaperTier
	TargetGrade        int
	CourseSlug         string
}

// PredictionResult is recomputed on demand and has no lifecycle of
// its own; only the grade and paper are persisted, on the enrollment.
type PredictionResult struct {
	PredictedGrade    int             `json:"predictedGrade"`
	Confidence        Confidence      `json:"confidence"`
	RecommendedPaper  model.PaperTier `json:"recommendedPaper,omitempty"`
	PaperChangeReason string          `json:"paperChangeReason,omitempty"`
	OnTrack           bool            `json:"onTrack"`
}

// CalculatePredictedGrade maps accuracy to a grade through the tier's
// boundary table, discounts thin samples, and for two-tier subjects
// attaches a paper recommendation. Deterministic rule table, not a
// statistical model.
func CalculatePredictedGrade(data PerformanceData) PredictionResult {
	progress := 0.0
	if data.TotalLessons > 0 {
		progress = float64(data.LessonsCompleted) / float64(data.TotalLessons) * 100
	}

	confidence := ConfidenceLow
	if progress >= 50 && data.QuestionsAttempted >= 100 {
		confidence = ConfidenceHigh
	} else if progress >= 20 && data.QuestionsAttempted >= 30 {
		confidence = ConfidenceMedium
	}

	boundaries := model.BoundariesFor(data.CourseSlug, data.TargetPaper)
	predictedGrade := gradeFromBoundaries(data.AverageAccuracy, boundaries)

	// Don't trust an early, thin sample.
	if confidence == ConfidenceLow && progress < 10 {
		predictedGrade = maxInt(1, predictedGrade-2)
	} else if confidence == ConfidenceMedium {
		predictedGrade = maxInt(1, predictedGrade-1)
	}

	result := PredictionResult{
		PredictedGrade: predictedGrade,
		Confidence:     confidence,
		OnTrack:        predictedGrade >= data.TargetGrade,
	}

	if model.HasTwoTiers(data.CourseSlug) {
		paper, reason := recommendPaperTier(data, predictedGrade, progress)
		result.RecommendedPaper = paper
		result.PaperChangeReason = reason
	}

	return result
}

// gradeFromBoundaries picks the highest grade whose boundary the
// accuracy meets, falling back to the table's lowest grade.
func gradeFromBoundaries(accuracy float64, boundaries model.GradeBoundaries) int {
	best := 0
	lowest := 0
	for grade, minAccuracy := range boundaries {
		if lowest == 0 || grade < lowest {
			lowest = grade
		}
		if accuracy >= minAccuracy && grade > best {
			best = grade
		}
	}
	if best == 0 {
		return lowest
	}
	return best
}

// recommendPaperTier is a three-stage policy keyed on course
// progress: early it follows the target grade, mid-course it reacts
// to performance, late it only flags significant mismatches.
func recommendPaperTier(data PerformanceData, predictedGrade int, progress float64) (model.PaperTier, string) {
	if data.TargetPaper == model.PaperNone {
		return model.PaperFoundation, ""
	}

	if progress < 15 {
		if data.TargetGrade >= 6 {
			reason := ""
			if data.TargetPaper != model.PaperHigher {
				reason = "Target grade 6+ requires Higher tier"
			}
			return model.PaperHigher, reason
		}
		if data.TargetGrade <= 4 {
			reason := ""
			if data.TargetPaper == model.PaperHigher {
				reason = "Foundation tier may be more suitable for grade 4 target"
			}
			return model.PaperFoundation, reason
		}
		return data.TargetPaper, ""
	}

	if progress < 40 {
		if data.TargetPaper == model.PaperHigher && data.AverageAccuracy < 40 {
			return model.PaperFoundation, "Struggling on Higher tier - Foundation would secure grades 4-5"
		}
		if data.TargetPaper == model.PaperFoundation && data.AverageAccuracy >= 70 && predictedGrade == 5 {
			return model.PaperHigher, "Strong Foundation performance - ready for Higher tier to target grades 6+"
		}
		return data.TargetPaper, ""
	}

	if data.TargetPaper == model.PaperHigher && predictedGrade < 4 {
		return model.PaperFoundation, "Below grade 4 on Higher - switch to Foundation to secure a pass"
	}
	if data.TargetPaper == model.PaperFoundation && data.AverageAccuracy >= 80 {
		return model.PaperHigher, "Exceptional Foundation performance - consider Higher tier for grades 6-9"
	}

	return data.TargetPaper, ""
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// PredictionService recomputes predictions per active enrollment and
// persists the headline grade/paper back onto the enrollment row.
type PredictionService struct {
	Enrollments *repository.EnrollmentRepository
	Sessions    *repository.PracticeSessionRepository
}

func NewPredictionService(enrollments *repository.EnrollmentRepository, sessions *repository.PracticeSessionRepository) *PredictionService {
	return &PredictionService{Enrollments: enrollments, Sessions: sessions}
}

type CoursePrediction struct {
	CourseSlug string `json:"courseSlug"`
	PredictionResult
	Stats struct {
		LessonsCompleted   int `json:"lessonsCompleted"`
		AverageAccuracy    int `json:"averageAccuracy"`
		QuestionsAttempted int `json:"questionsAttempted"`
	} `json:"stats"`
}

// PredictAll computes one prediction per active enrollment. Average
// accuracy comes from completed sessions for the course.
func (s *PredictionService) PredictAll(learnerID uint) ([]CoursePrediction, error) {
	enrollments, err := s.Enrollments.FindActiveByLearner(learnerID)
	if err != nil {
		return nil, err
	}

	predictions := make([]CoursePrediction, 0, len(enrollments))
	for _, enrollment := range enrollments {
		totals, err := s.Sessions.GetCourseTotals(learnerID, enrollment.CourseSlug)
		if err != nil {
			return nil, err
		}

		averageAccuracy := 0.0
		if totals.QuestionsAttempted > 0 {
			averageAccuracy = float64(totals.QuestionsCorrect) / float64(totals.QuestionsAttempted) * 100
		}

		targetPaper := enrollment.TargetPaper
		if targetPaper == "" {
			targetPaper = model.PaperFoundation
		}
		targetGrade := enrollment.TargetGrade
		if targetGrade == 0 {
			targetGrade = 4
		}

		data := PerformanceData{
			LessonsCompleted:   enrollment.LessonsCompleted,
			TotalLessons:       model.TotalLessonsPerCourse,
			AverageAccuracy:    averageAccuracy,
			QuestionsAttempted: totals.QuestionsAttempted,
			TargetPaper:        targetPaper,
			TargetGrade:        targetGrade,
			CourseSlug:         enrollment.CourseSlug,
		}

		prediction := CalculatePredictedGrade(data)
		monitoring.PredictionsComputed.Inc()

		if err := s.Enrollments.UpdatePrediction(enrollment.ID, prediction.PredictedGrade, prediction.RecommendedPaper); err != nil {
			logger.Log.Warn("failed to persist prediction",
				zap.String("enrollmentId", enrollment.ID),
				zap.String("course", enrollment.CourseSlug),
				zap.Error(err))
		}

		cp := CoursePrediction{
			CourseSlug:       enrollment.CourseSlug,
			PredictionResult: prediction,
		}
		cp.Stats.LessonsCompleted = enrollment.LessonsCompleted
		cp.Stats.AverageAccuracy = int(averageAccuracy + 0.5)
		cp.Stats.QuestionsAttempted = totals.QuestionsAttempted
		predictions = append(predictions, cp)
	}

	return predictions, nil
}

// SetTargets updates a learner's exam targets on an enrollment,
// validating the paper against the course's tier system.
func (s *PredictionService) SetTargets(learnerID uint, courseSlug string, targetPaper model.PaperTier, targetGrade int) error {
	if targetGrade < 1 || targetGrade > 9 {
		return fmt.Errorf("target grade %d out of range 1-9", targetGrade)
	}

	if model.HasTwoTiers(courseSlug) {
		if targetPaper != model.PaperFoundation && targetPaper != model.PaperHigher {
			return fmt.Errorf("course %s requires a foundation or higher target paper", courseSlug)
		}
	} else {
		targetPaper = model.PaperNone
	}

	enrollment, err := s.Enrollments.FindByCourse(learnerID, courseSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrEnrollmentNotFound
		}
		return err
	}

	return s.Enrollments.UpdateTargets(enrollment.ID, targetPaper, targetGrade)
}
