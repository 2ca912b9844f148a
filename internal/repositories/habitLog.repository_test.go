package repositories

import (
	"context"
	"testing"
	"time"
	. "wellness360/internal/models"
	"wellness360/internal/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	// SkipDefaultTransaction matches the production gorm.Config; repository
	// calls run inside an explicit transaction when they need one.
	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestHabitLogRepository_ArchiveDoneFor(t *testing.T) {
	gormDB, mock := setupTestDB(t)
	repo := NewHabitLogRepository()

	date, err := time.Parse(utils.DateLayout, "2026-08-29")
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO habit_logs").
		WithArgs(date, HabitStatusDone, date).
		WillReturnResult(sqlmock.NewResult(0, 3))

	archived, err := repo.ArchiveDoneFor(context.Background(), gormDB, date)

	require.NoError(t, err)
	assert.Equal(t, int64(3), archived)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHabitLogRepository_ArchiveDoneFor_RerunArchivesNothing(t *testing.T) {
	gormDB, mock := setupTestDB(t)
	repo := NewHabitLogRepository()

	date, err := time.Parse(utils.DateLayout, "2026-08-29")
	require.NoError(t, err)

	// ON CONFLICT DO NOTHING swallows every row the second time around.
	mock.ExpectExec("INSERT INTO habit_logs").
		WithArgs(date, HabitStatusDone, date).
		WillReturnResult(sqlmock.NewResult(0, 0))

	archived, err := repo.ArchiveDoneFor(context.Background(), gormDB, date)

	require.NoError(t, err)
	assert.Zero(t, archived)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHabitLogRepository_HasCompletion(t *testing.T) {
	gormDB, mock := setupTestDB(t)
	repo := NewHabitLogRepository()

	date, err := time.Parse(utils.DateLayout, "2026-08-29")
	require.NoError(t, err)

	mock.ExpectQuery("SELECT count").
		WithArgs(7, date).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	found, err := repo.HasCompletion(context.Background(), gormDB, 7, date)

	require.NoError(t, err)
	assert.True(t, found)

	mock.ExpectQuery("SELECT count").
		WithArgs(8, date).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	found, err = repo.HasCompletion(context.Background(), gormDB, 8, date)

	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}
