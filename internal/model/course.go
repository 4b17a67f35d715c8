package model

// Course tier registry and grade boundary tables. These are product
// constants, not rows: the question bank and lesson content live
// outside this service, and every course carries 100 lessons.

const TotalLessonsPerCourse = 100

// Subjects examined on two papers (Foundation grades 1-5, Higher 4-9).
var twoTierSubjects = map[string]bool{
	"maths":              true,
	"englishlanguage":    true,
	"chemistry":          true,
	"physics":            true,
	"biology":            true,
	"combined-science":   true,
	"english-literature": true,
}

func HasTwoTiers(courseSlug string) bool {
	return twoTierSubjects[courseSlug]
}

// GradeBoundaries maps grade -> minimum accuracy percentage. Lookup
// picks the highest grade whose boundary the accuracy meets; below
// every boundary the lowest grade in the table applies.
type GradeBoundaries map[int]float64

var (
	FoundationBoundaries = GradeBoundaries{
		1: 0,
		2: 15,
		3: 28,
		4: 43,
		5: 60,
	}

	HigherBoundaries = GradeBoundaries{
		4: 0,
		5: 20,
		6: 33,
		7: 48,
		8: 63,
		9: 78,
	}

	SingleTierBoundaries = GradeBoundaries{
		1: 0,
		2: 10,
		3: 20,
		4: 30,
		5: 40,
		6: 50,
		7: 60,
		8: 70,
		9: 80,
	}
)

// BoundariesFor selects the boundary table for a course and target
// paper. Single-tier subjects ignore the paper.
func BoundariesFor(courseSlug string, targetPaper PaperTier) GradeBoundaries {
	if HasTwoTiers(courseSlug) && targetPaper != PaperNone {
		if targetPaper == PaperHigher {
			return HigherBoundaries
		}
		return FoundationBoundaries
	}
	return SingleTierBoundaries
}
