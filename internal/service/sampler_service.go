package service

import (
	"context"
	"math/rand"

	"gcse_prep_backend/internal/bank"
	"gcse_prep_backend/internal/model"
	"gcse_prep_backend/internal/repository"
	"gcse_prep_backend/internal/util"
)

// tierDraw samples count questions uniformly from the half-open bank
// slice [lo:hi). Bank position encodes difficulty, so the slice
// bounds are the difficulty tiers.
type tierDraw struct {
	lo, hi, count int
}

var modePolicies = map[model.PracticeMode][]tierDraw{
	model.ModePractice: {{0, 30, 8}, {30, 60, 2}},
	model.ModeTimed:    {{0, 30, 12}, {30, 60, 3}},
	model.ModeExpert:   {{149, 300, 15}},
}

const weakAreasCap = 10

type SamplerService struct {
	Bank     *bank.Store
	Attempts *repository.QuestionAttemptRepository
}

func NewSamplerService(bankStore *bank.Store, attempts *repository.QuestionAttemptRepository) *SamplerService {
	return &SamplerService{Bank: bankStore, Attempts: attempts}
}

// Sample picks the ordered question set to present for one session.
func (s *SamplerService) Sample(ctx context.Context, learnerID uint, courseSlug string, lessonID uint, mode model.PracticeMode) ([]bank.Question, error) {
	lb, err := s.Bank.LessonBank(ctx, courseSlug, lessonID)
	if err != nil {
		return nil, err
	}

	if mode == model.ModeWeakAreas {
		weakIDs, err := s.Attempts.GetWeakQuestionIDs(learnerID, courseSlug, lessonID)
		if err != nil {
			return nil, err
		}
		return SampleFromBank(lb, mode, weakIDs)
	}

	return SampleFromBank(lb, mode, nil)
}

// WeakQuestionIDs exposes the weak-question derivation directly. A
// question answered wrong then later right is not weak; one attempted
// once and wrong is.
func (s *SamplerService) WeakQuestionIDs(learnerID uint, courseSlug string, lessonID uint) ([]string, error) {
	return s.Attempts.GetWeakQuestionIDs(learnerID, courseSlug, lessonID)
}

// SampleFromBank applies a mode's sampling policy to a loaded bank.
// weakIDs is only consulted for weak_areas mode. The result is always
// a duplicate-free subset of the bank.
func SampleFromBank(lb *bank.LessonBank, mode model.PracticeMode, weakIDs []string) ([]bank.Question, error) {
	if mode == model.ModeWeakAreas {
		pool := filterByIDs(lb.Questions, weakIDs)
		if len(pool) == 0 {
			return nil, util.ErrNoWeakQuestions
		}
		return drawUniform(pool, weakAreasCap), nil
	}

	policy, ok := modePolicies[mode]
	if !ok {
		return nil, util.ErrInvalidMode
	}

	var selected []bank.Question
	for _, draw := range policy {
		pool := sliceBank(lb.Questions, draw.lo, draw.hi)
		selected = append(selected, drawUniform(pool, draw.count)...)
	}

	// Reshuffle the concatenation so the harder tier's questions are
	// not clustered at the end.
	rand.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})

	return selected, nil
}

func sliceBank(questions []bank.Question, lo, hi int) []bank.Question {
	if lo >= len(questions) {
		return nil
	}
	if hi > len(questions) {
		hi = len(questions)
	}
	return questions[lo:hi]
}

// drawUniform picks min(count, len(pool)) questions uniformly without
// replacement via a Fisher-Yates shuffle of a copy.
func drawUniform(pool []bank.Question, count int) []bank.Question {
	shuffled := make([]bank.Question, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}

func filterByIDs(questions []bank.Question, ids []string) []bank.Question {
	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}

	var filtered []bank.Question
	for _, q := range questions {
		if idSet[q.ID] {
			filtered = append(filtered, q)
		}
	}
	return filtered
}
