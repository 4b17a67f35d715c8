package repository

import (
	"testing"

	"gcse_prep_backend/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.QuestionAttempt{},
		&model.PracticeSession{},
		&model.LessonProgress{},
		&model.Enrollment{},
		&model.StudyActivity{},
	))

	return db
}
