package service

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"gcse_prep_backend/internal/bank"
	"gcse_prep_backend/internal/model"
	"gcse_prep_backend/internal/repository"
	"gcse_prep_backend/internal/util"
	"gcse_prep_backend/pkg/logger"
	"gcse_prep_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SessionService owns the practice session lifecycle: start, one
// submission per presented question, completion. Sessions move Open
// -> Closed exactly once; an abandoned session just stays Open.
type SessionService struct {
	Sessions *repository.PracticeSessionRepository
	Attempts *repository.QuestionAttemptRepository
	Activity *repository.StudyActivityRepository
	Sampler  *SamplerService
	Bank     *bank.Store
	Progress *ProgressService
}

func NewSessionService(
	sessions *repository.PracticeSessionRepository,
	attempts *repository.QuestionAttemptRepository,
	activity *repository.StudyActivityRepository,
	sampler *SamplerService,
	bankStore *bank.Store,
	progress *ProgressService,
) *SessionService {
	return &SessionService{
		Sessions: sessions,
		Attempts: attempts,
		Activity: activity,
		Sampler:  sampler,
		Bank:     bankStore,
		Progress: progress,
	}
}

type SessionQuestion struct {
	ID           string `json:"id"`
	Prompt       string `json:"question"`
	SectionID    string `json:"sectionId,omitempty"`
	SectionTitle string `json:"sectionTitle,omitempty"`
}

type StartSessionResult struct {
	SessionID        string            `json:"sessionId"`
	Questions        []SessionQuestion `json:"questions"`
	TimeLimitSeconds int               `json:"timeLimitSeconds,omitempty"`
}

// Start samples the question set and opens a session sized to it.
// Starting while an older session is still open is permitted; the old
// one is simply abandoned.
func (s *SessionService) Start(ctx context.Context, learnerID uint, courseSlug string, lessonID uint, lessonSlug string, mode model.PracticeMode) (*StartSessionResult, error) {
	if !mode.Valid() {
		return nil, util.ErrInvalidMode
	}

	questions, err := s.Sampler.Sample(ctx, learnerID, courseSlug, lessonID, mode)
	if err != nil {
		return nil, err
	}

	session := &model.PracticeSession{
		LearnerID:        learnerID,
		CourseSlug:       courseSlug,
		LessonID:         lessonID,
		LessonSlug:       lessonSlug,
		PracticeMode:     mode,
		QuestionsPlanned: len(questions),
		StartedAt:        time.Now(),
	}
	if err := s.Sessions.Create(session); err != nil {
		return nil, err
	}

	monitoring.SessionsStarted.WithLabelValues(string(mode)).Inc()
	logger.Log.Info("practice session started",
		zap.String("sessionId", session.ID),
		zap.Uint("learnerId", learnerID),
		zap.String("course", courseSlug),
		zap.Uint("lessonId", lessonID),
		zap.String("mode", string(mode)),
		zap.Int("planned", len(questions)))

	result := &StartSessionResult{
		SessionID: session.ID,
		Questions: make([]SessionQuestion, len(questions)),
	}
	for i, q := range questions {
		result.Questions[i] = SessionQuestion{
			ID:           q.ID,
			Prompt:       q.Prompt,
			SectionID:    q.SectionID,
			SectionTitle: q.SectionTitle,
		}
	}
	if mode == model.ModeTimed {
		// Advisory client countdown; the server never force-closes.
		result.TimeLimitSeconds = model.TimedBudgetSeconds
	}

	return result, nil
}

type SubmitAnswerResult struct {
	IsCorrect     bool   `json:"isCorrect"`
	CorrectAnswer string `json:"correctAnswer"`
}

// SubmitAnswer marks one answer against the bank's canonical answer
// and appends the attempt. Re-submitting the same question records an
// additional attempt; the design deliberately does not reject it.
func (s *SessionService) SubmitAnswer(ctx context.Context, learnerID uint, sessionID, questionID, answer string, timeTakenSeconds int) (*SubmitAnswerResult, error) {
	session, err := s.Sessions.FindByID(sessionID, learnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}
	if !session.IsOpen() {
		return nil, util.ErrInvalidSession
	}

	lb, err := s.Bank.LessonBank(ctx, session.CourseSlug, session.LessonID)
	if err != nil {
		return nil, err
	}
	canonical, ok := lb.CanonicalAnswer(questionID)
	if !ok {
		return nil, util.ErrQuestionNotFound
	}

	isCorrect := AnswersMatch(answer, canonical)

	var sectionID string
	for _, q := range lb.Questions {
		if q.ID == questionID {
			sectionID = q.SectionID
			break
		}
	}

	attempt := &model.QuestionAttempt{
		LearnerID:        learnerID,
		CourseSlug:       session.CourseSlug,
		LessonID:         session.LessonID,
		LessonSlug:       session.LessonSlug,
		QuestionID:       questionID,
		SectionID:        sectionID,
		SubmittedAnswer:  answer,
		CanonicalAnswer:  canonical,
		IsCorrect:        isCorrect,
		PracticeMode:     session.PracticeMode,
		TimeTakenSeconds: timeTakenSeconds,
		AttemptedAt:      time.Now(),
	}
	if err := s.Attempts.Create(attempt); err != nil {
		return nil, err
	}

	if err := s.Sessions.IncrementTallies(sessionID, isCorrect); err != nil {
		return nil, err
	}

	// Secondary enrichment; a miss here must not fail the submission.
	if err := s.Progress.RecordActivity(ctx, learnerID, attempt.AttemptedAt); err != nil {
		logger.Log.Warn("failed to record study activity",
			zap.Uint("learnerId", learnerID), zap.Error(err))
	}

	monitoring.AnswersSubmitted.WithLabelValues(strconv.FormatBool(isCorrect)).Inc()

	return &SubmitAnswerResult{
		IsCorrect:     isCorrect,
		CorrectAnswer: canonical,
	}, nil
}

// Complete closes the session with the caller's final tallies.
// Calling it twice overwrites the previous tallies; callers are
// expected to call it exactly once.
func (s *SessionService) Complete(ctx context.Context, learnerID uint, sessionID string, questionsAttempted, questionsCorrect, durationSeconds int) (*model.PracticeSession, error) {
	session, err := s.Sessions.FindByID(sessionID, learnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}

	accuracy := AccuracyPercentage(questionsCorrect, questionsAttempted)
	completedAt := time.Now()

	if err := s.Sessions.Complete(sessionID, learnerID, questionsAttempted, questionsCorrect, accuracy, durationSeconds, completedAt); err != nil {
		return nil, err
	}

	monitoring.SessionsCompleted.WithLabelValues(string(session.PracticeMode)).Inc()

	// Perfect flags are a one-way enrichment on the rollup; failing to
	// raise one is logged and swallowed, never surfaced to the caller.
	if accuracy == 100 && session.PracticeMode != model.ModeWeakAreas {
		if err := s.Progress.ProgressRepo.SetPerfectFlag(learnerID, session.CourseSlug, session.LessonID, session.LessonSlug, session.PracticeMode); err != nil {
			logger.Log.Warn("failed to set perfect flag",
				zap.String("sessionId", sessionID),
				zap.String("mode", string(session.PracticeMode)),
				zap.Error(err))
		}
	}

	// The rollup self-heals on the next recomputation, so a failure
	// here does not fail the completion either.
	if _, err := s.Progress.Recompute(learnerID, session.CourseSlug, session.LessonID, session.LessonSlug); err != nil {
		logger.Log.Warn("failed to recompute lesson progress",
			zap.String("sessionId", sessionID), zap.Error(err))
	}

	return s.Sessions.FindByID(sessionID, learnerID)
}

// AnswersMatch compares a submitted answer against the canonical one
// using trimmed, case-insensitive equality.
func AnswersMatch(submitted, canonical string) bool {
	return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(canonical))
}

// AccuracyPercentage rounds to the nearest whole percent, 0 when
// nothing was attempted.
func AccuracyPercentage(correct, attempted int) int {
	if attempted <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(attempted) * 100))
}
