package model

// PracticeMode determines question sampling policy and time budget.
type PracticeMode string

const (
	ModePractice  PracticeMode = "practice"
	ModeTimed     PracticeMode = "timed"
	ModeExpert    PracticeMode = "expert"
	ModeWeakAreas PracticeMode = "weak_areas"
)

func (m PracticeMode) Valid() bool {
	switch m {
	case ModePractice, ModeTimed, ModeExpert, ModeWeakAreas:
		return true
	}
	return false
}

// TimedBudgetSeconds is the advisory wall-clock budget for timed mode.
// The server never force-closes a session; clients own the countdown.
const TimedBudgetSeconds = 900
