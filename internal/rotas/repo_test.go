package rotas

import (
	"context"
	"testing"

	"github.com/dattendance/attendance-backend/pkg/db/models"
	dbtypes "github.com/dattendance/attendance-backend/pkg/db/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRotasTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	rotas := `
CREATE TABLE IF NOT EXISTS rotas (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  day_of_week TEXT NOT NULL,
  shift_start TEXT NOT NULL,
  shift_end TEXT NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME
);`
	index := `
CREATE UNIQUE INDEX IF NOT EXISTS idx_rotas_user_day_active
  ON rotas (user_id, day_of_week) WHERE is_active;`
	require.NoError(t, db.Exec(rotas).Error)
	require.NoError(t, db.Exec(index).Error)
	t.Cleanup(func() {
		db.Exec("DELETE FROM rotas")
	})
	return db
}

func TestUpsertCreatesThenUpdates(t *testing.T) {
	db := setupRotasTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	first, err := repo.Upsert(ctx, &models.Rota{
		UserID:     userID,
		DayOfWeek:  "Monday",
		ShiftStart: dbtypes.NewTimeOfDay(9, 0, 0),
		ShiftEnd:   dbtypes.NewTimeOfDay(17, 0, 0),
	})
	require.NoError(t, err)
	require.True(t, first.IsActive)

	second, err := repo.Upsert(ctx, &models.Rota{
		UserID:     userID,
		DayOfWeek:  "Monday",
		ShiftStart: dbtypes.NewTimeOfDay(10, 0, 0),
		ShiftEnd:   dbtypes.NewTimeOfDay(18, 0, 0),
	})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "10:00", second.ShiftStart.HHMM())

	var count int64
	require.NoError(t, db.Model(&models.Rota{}).Where("user_id = ?", userID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestUpsertKeepsDaysIndependent(t *testing.T) {
	db := setupRotasTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	for _, day := range []string{"Monday", "Tuesday"} {
		_, err := repo.Upsert(ctx, &models.Rota{
			UserID:     userID,
			DayOfWeek:  day,
			ShiftStart: dbtypes.NewTimeOfDay(9, 0, 0),
			ShiftEnd:   dbtypes.NewTimeOfDay(17, 0, 0),
		})
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&models.Rota{}).Where("user_id = ?", userID).Count(&count).Error)
	require.EqualValues(t, 2, count)
}

func TestListActiveForUserMondayFirst(t *testing.T) {
	db := setupRotasTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	for _, day := range []string{"Sunday", "Wednesday", "Monday"} {
		_, err := repo.Upsert(ctx, &models.Rota{
			UserID:     userID,
			DayOfWeek:  day,
			ShiftStart: dbtypes.NewTimeOfDay(9, 0, 0),
			ShiftEnd:   dbtypes.NewTimeOfDay(17, 0, 0),
		})
		require.NoError(t, err)
	}

	rows, err := repo.ListActiveForUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "Monday", rows[0].DayOfWeek)
	require.Equal(t, "Wednesday", rows[1].DayOfWeek)
	require.Equal(t, "Sunday", rows[2].DayOfWeek)
}

func TestFindActiveForDayIgnoresInactive(t *testing.T) {
	db := setupRotasTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	inactive := &models.Rota{
		ID:         uuid.New(),
		UserID:     userID,
		DayOfWeek:  "Friday",
		ShiftStart: dbtypes.NewTimeOfDay(8, 0, 0),
		ShiftEnd:   dbtypes.NewTimeOfDay(16, 0, 0),
	}
	require.NoError(t, db.Create(inactive).Error)
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)

	_, err := repo.FindActiveForDay(ctx, userID, "Friday")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteRota(t *testing.T) {
	db := setupRotasTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	rota, err := repo.Upsert(ctx, &models.Rota{
		UserID:     userID,
		DayOfWeek:  "Monday",
		ShiftStart: dbtypes.NewTimeOfDay(9, 0, 0),
		ShiftEnd:   dbtypes.NewTimeOfDay(17, 0, 0),
	})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, rota.ID))
	_, err = repo.FindByID(ctx, rota.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
