package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gcse_prep_backend/internal/repository"
	"gcse_prep_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const streakCacheTTL = 10 * time.Minute

// ProgressService owns the LessonProgress rollup. Every write to the
// rollup is a full recomputation from attempt and session history;
// concurrent recomputations resolve last-writer-wins because the
// record is a derived cache.
type ProgressService struct {
	Attempts     *repository.QuestionAttemptRepository
	Sessions     *repository.PracticeSessionRepository
	ProgressRepo *repository.LessonProgressRepository
	Enrollments  *repository.EnrollmentRepository
	Activity     *repository.StudyActivityRepository
	Redis        *redis.Client
}

func NewProgressService(
	attempts *repository.QuestionAttemptRepository,
	sessions *repository.PracticeSessionRepository,
	progress *repository.LessonProgressRepository,
	enrollments *repository.EnrollmentRepository,
	activity *repository.StudyActivityRepository,
	rdb *redis.Client,
) *ProgressService {
	return &ProgressService{
		Attempts:     attempts,
		Sessions:     sessions,
		ProgressRepo: progress,
		Enrollments:  enrollments,
		Activity:     activity,
		Redis:        rdb,
	}
}

type ProgressStats struct {
	Accuracy        int `json:"accuracy"`
	TotalAttempts   int `json:"totalAttempts"`
	CorrectAnswers  int `json:"correctAnswers"`
	UniqueQuestions int `json:"uniqueQuestions"`
}

// Recompute rebuilds the lesson rollup from scratch: accuracy over
// all attempts (repeats count), time from closed sessions floored to
// minutes, attempts meaning completed practice runs.
func (s *ProgressService) Recompute(learnerID uint, courseSlug string, lessonID uint, lessonSlug string) (*ProgressStats, error) {
	stats, err := s.Attempts.GetLessonAccuracyStats(learnerID, courseSlug, lessonID)
	if err != nil {
		return nil, err
	}

	totalSeconds, err := s.Sessions.SumClosedDurations(learnerID, courseSlug, lessonID)
	if err != nil {
		return nil, err
	}

	closedRuns, err := s.Sessions.CountClosed(learnerID, courseSlug, lessonID)
	if err != nil {
		return nil, err
	}

	rollup := repository.RollupUpdate{
		AccuracyScore:    stats.AccuracyPercentage,
		Attempts:         int(closedRuns),
		TimeSpentMinutes: int(totalSeconds / 60),
		LastAttemptAt:    time.Now(),
	}
	if _, err := s.ProgressRepo.ReplaceRollup(learnerID, courseSlug, lessonID, lessonSlug, rollup); err != nil {
		return nil, err
	}

	logger.Log.Debug("lesson progress recomputed",
		zap.Uint("learnerId", learnerID),
		zap.String("course", courseSlug),
		zap.Uint("lessonId", lessonID),
		zap.Int("accuracy", stats.AccuracyPercentage),
		zap.Int("runs", int(closedRuns)))

	return &ProgressStats{
		Accuracy:        stats.AccuracyPercentage,
		TotalAttempts:   stats.TotalAttempts,
		CorrectAnswers:  stats.CorrectAnswers,
		UniqueQuestions: stats.UniqueQuestions,
	}, nil
}

// CompleteLesson marks lesson content as viewed and, on the first
// completion only, bumps the enrollment's lessons-completed counter.
func (s *ProgressService) CompleteLesson(learnerID uint, courseSlug string, lessonID uint, lessonSlug string) error {
	existing, err := s.ProgressRepo.FindByLesson(learnerID, courseSlug, lessonID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	alreadyCompleted := existing != nil && existing.LessonCompleted

	if err := s.ProgressRepo.SetLessonCompleted(learnerID, courseSlug, lessonID, lessonSlug, time.Now()); err != nil {
		return err
	}

	if !alreadyCompleted {
		if err := s.Enrollments.IncrementLessonsCompleted(learnerID, courseSlug); err != nil {
			logger.Log.Warn("failed to bump lessons completed",
				zap.Uint("learnerId", learnerID),
				zap.String("course", courseSlug),
				zap.Error(err))
		}
	}
	return nil
}

func streakCacheKey(learnerID uint) string {
	return fmt.Sprintf("streak:%d", learnerID)
}

// RecordActivity logs a study day and invalidates the cached streak.
func (s *ProgressService) RecordActivity(ctx context.Context, learnerID uint, at time.Time) error {
	if err := s.Activity.Record(learnerID, at); err != nil {
		return err
	}
	if s.Redis != nil {
		if err := s.Redis.Del(ctx, streakCacheKey(learnerID)).Err(); err != nil {
			logger.Log.Debug("streak cache invalidation failed", zap.Error(err))
		}
	}
	return nil
}

// Streak returns the learner's consecutive-day study streak,
// Redis-cached since dashboards poll it on every load.
func (s *ProgressService) Streak(ctx context.Context, learnerID uint) (int, error) {
	key := streakCacheKey(learnerID)
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
			if streak, err := strconv.Atoi(cached); err == nil {
				return streak, nil
			}
		}
	}

	dates, err := s.Activity.GetDistinctDatesDesc(learnerID)
	if err != nil {
		return 0, err
	}

	streak := CalculateStreak(dates, time.Now())

	if s.Redis != nil {
		if err := s.Redis.Set(ctx, key, strconv.Itoa(streak), streakCacheTTL).Err(); err != nil {
			logger.Log.Debug("streak cache write failed", zap.Error(err))
		}
	}
	return streak, nil
}

// CalculateStreak counts consecutive study days ending today or
// yesterday. dates must be sorted most recent first; time-of-day is
// discarded. A gap before yesterday means the streak is broken.
func CalculateStreak(dates []time.Time, now time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	today := truncateToDay(now)
	yesterday := today.AddDate(0, 0, -1)

	latest := truncateToDay(dates[0])
	if latest.Before(yesterday) {
		return 0
	}

	streak := 0
	current := latest
	for _, d := range dates {
		day := truncateToDay(d)
		if day.Equal(current) {
			streak++
			current = current.AddDate(0, 0, -1)
		} else if day.Before(current) {
			break
		}
	}
	return streak
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
