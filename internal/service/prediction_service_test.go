package service

import (
	"testing"

	"gcse_prep_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

// perf builds PerformanceData with enough volume for high confidence
// so boundary tests are not distorted by the thin-sample discount.
func perf(courseSlug string, paper model.PaperTier, accuracy float64) PerformanceData {
	return PerformanceData{
		LessonsCompleted:   60,
		TotalLessons:       model.TotalLessonsPerCourse,
		AverageAccuracy:    accuracy,
		QuestionsAttempted: 200,
		TargetPaper:        paper,
		TargetGrade:        5,
		CourseSlug:         courseSlug,
	}
}

func TestCalculatePredictedGradeFoundationBoundaries(t *testing.T) {
	tests := []struct {
		accuracy float64
		want     int
	}{
		{0, 1},
		{14, 1},
		{15, 2},
		{28, 3},
		{42, 3},
		{43, 4},
		{59, 4},
		{60, 5},
		{95, 5},
	}

	for _, tt := range tests {
		got := CalculatePredictedGrade(perf("maths", model.PaperFoundation, tt.accuracy))
		assert.Equal(t, tt.want, got.PredictedGrade, "foundation accuracy %.0f", tt.accuracy)
		assert.Equal(t, ConfidenceHigh, got.Confidence)
	}
}

func TestCalculatePredictedGradeHigherBoundaries(t *testing.T) {
	tests := []struct {
		accuracy float64
		want     int
	}{
		{0, 4},
		{19, 4},
		{20, 5},
		{33, 6},
		{48, 7},
		{63, 8},
		{77, 8},
		{78, 9},
		{100, 9},
	}

	for _, tt := range tests {
		got := CalculatePredictedGrade(perf("physics", model.PaperHigher, tt.accuracy))
		assert.Equal(t, tt.want, got.PredictedGrade, "higher accuracy %.0f", tt.accuracy)
	}
}

func TestCalculatePredictedGradeSingleTier(t *testing.T) {
	got := CalculatePredictedGrade(perf("history", model.PaperNone, 80))
	assert.Equal(t, 9, got.PredictedGrade)
	assert.Empty(t, got.RecommendedPaper, "single-tier subjects carry no paper recommendation")
	assert.Empty(t, got.PaperChangeReason)

	got = CalculatePredictedGrade(perf("geography", model.PaperNone, 45))
	assert.Equal(t, 5, got.PredictedGrade)
}

func TestCalculatePredictedGradeConfidence(t *testing.T) {
	data := perf("maths", model.PaperFoundation, 60)

	data.LessonsCompleted = 50
	data.QuestionsAttempted = 100
	assert.Equal(t, ConfidenceHigh, CalculatePredictedGrade(data).Confidence)

	data.QuestionsAttempted = 99
	assert.Equal(t, ConfidenceMedium, CalculatePredictedGrade(data).Confidence)

	data.LessonsCompleted = 20
	data.QuestionsAttempted = 30
	assert.Equal(t, ConfidenceMedium, CalculatePredictedGrade(data).Confidence)

	data.QuestionsAttempted = 29
	assert.Equal(t, ConfidenceLow, CalculatePredictedGrade(data).Confidence)
}

func TestCalculatePredictedGradeThinSampleDiscount(t *testing.T) {
	// Low confidence and under 10% progress knocks two grades off.
	data := perf("maths", model.PaperFoundation, 90)
	data.LessonsCompleted = 5
	data.QuestionsAttempted = 10
	got := CalculatePredictedGrade(data)
	assert.Equal(t, ConfidenceLow, got.Confidence)
	assert.Equal(t, 3, got.PredictedGrade)

	// Medium confidence knocks one off.
	data.LessonsCompleted = 20
	data.QuestionsAttempted = 40
	got = CalculatePredictedGrade(data)
	assert.Equal(t, ConfidenceMedium, got.Confidence)
	assert.Equal(t, 4, got.PredictedGrade)

	// The discount never predicts below grade 1.
	data = perf("maths", model.PaperFoundation, 5)
	data.LessonsCompleted = 2
	data.QuestionsAttempted = 4
	got = CalculatePredictedGrade(data)
	assert.Equal(t, 1, got.PredictedGrade)
}

func TestCalculatePredictedGradeOnTrack(t *testing.T) {
	data := perf("maths", model.PaperFoundation, 60)
	data.TargetGrade = 5
	assert.True(t, CalculatePredictedGrade(data).OnTrack)

	data.TargetGrade = 6
	assert.False(t, CalculatePredictedGrade(data).OnTrack)
}

func TestRecommendPaperTierEarly(t *testing.T) {
	// Under 15% progress the recommendation follows the target grade.
	data := perf("maths", model.PaperFoundation, 50)
	data.LessonsCompleted = 5
	data.QuestionsAttempted = 10
	data.TargetGrade = 7

	got := CalculatePredictedGrade(data)
	assert.Equal(t, model.PaperHigher, got.RecommendedPaper)
	assert.Equal(t, "Target grade 6+ requires Higher tier", got.PaperChangeReason)

	// Already on Higher: same recommendation, no nag.
	data.TargetPaper = model.PaperHigher
	got = CalculatePredictedGrade(data)
	assert.Equal(t, model.PaperHigher, got.RecommendedPaper)
	assert.Empty(t, got.PaperChangeReason)

	// Modest target on Higher points back to Foundation.
	data.TargetGrade = 4
	got = CalculatePredictedGrade(data)
	assert.Equal(t, model.PaperFoundation, got.RecommendedPaper)
	assert.Equal(t, "Foundation tier may be more suitable for grade 4 target", got.PaperChangeReason)

	// Grade 5 target sits on either paper.
	data.TargetGrade = 5
	got = CalculatePredictedGrade(data)
	assert.Equal(t, model.PaperHigher, got.RecommendedPaper)
	assert.Empty(t, got.PaperChangeReason)
}

func TestRecommendPaperTierMidCourse(t *testing.T) {
	// 15-40% progress reacts to observed performance.
	data := perf("maths", model.PaperHigher, 35)
	data.LessonsCompleted = 25
	data.QuestionsAttempted = 60

	got := CalculatePredictedGrade(data)
	assert.Equal(t, model.PaperFoundation, got.RecommendedPaper)
	assert.Equal(t, "Struggling on Higher tier - Foundation would secure grades 4-5", got.PaperChangeReason)

	// Foundation learner already at the tier ceiling gets nudged up.
	data = perf("maths", model.PaperFoundation, 75)
	data.LessonsCompleted = 25
	data.QuestionsAttempted = 20
	got = CalculatePredictedGrade(data)
	assert.Equal(t, 5, got.PredictedGrade)
	assert.Equal(t, model.PaperHigher, got.RecommendedPaper)
	assert.Equal(t, "Strong Foundation performance - ready for Higher tier to target grades 6+", got.PaperChangeReason)

	// With more volume the medium discount pulls the grade to 4 and the
	// upgrade nudge no longer fires.
	data.QuestionsAttempted = 60
	got = CalculatePredictedGrade(data)
	assert.Equal(t, ConfidenceMedium, got.Confidence)
	assert.Equal(t, 4, got.PredictedGrade)
	assert.Equal(t, model.PaperFoundation, got.RecommendedPaper)
	assert.Empty(t, got.PaperChangeReason)
}

func TestRecommendPaperTierLateCourse(t *testing.T) {
	// Past 40% progress only significant mismatches move the paper.
	data := perf("maths", model.PaperHigher, 10)
	data.LessonsCompleted = 50
	data.QuestionsAttempted = 50

	got := CalculatePredictedGrade(data)
	assert.Equal(t, 3, got.PredictedGrade)
	assert.Equal(t, model.PaperFoundation, got.RecommendedPaper)
	assert.Equal(t, "Below grade 4 on Higher - switch to Foundation to secure a pass", got.PaperChangeReason)

	data = perf("maths", model.PaperFoundation, 85)
	got = CalculatePredictedGrade(data)
	assert.Equal(t, model.PaperHigher, got.RecommendedPaper)
	assert.Equal(t, "Exceptional Foundation performance - consider Higher tier for grades 6-9", got.PaperChangeReason)

	// Solid but unexceptional Foundation work stays put.
	data = perf("maths", model.PaperFoundation, 65)
	got = CalculatePredictedGrade(data)
	assert.Equal(t, model.PaperFoundation, got.RecommendedPaper)
	assert.Empty(t, got.PaperChangeReason)
}
