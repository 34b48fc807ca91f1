package attendance

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dattendance/attendance-backend/pkg/db/models"
	"github.com/dattendance/attendance-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAttendanceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	attendance := `
CREATE TABLE IF NOT EXISTS attendance (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  date DATETIME NOT NULL,
  check_in DATETIME,
  check_out DATETIME,
  status TEXT NOT NULL DEFAULT 'present',
  notes TEXT,
  created_at DATETIME
);`
	index := `
CREATE UNIQUE INDEX IF NOT EXISTS idx_attendance_user_date
  ON attendance (user_id, date);`
	require.NoError(t, db.Exec(attendance).Error)
	require.NoError(t, db.Exec(index).Error)
	t.Cleanup(func() {
		db.Exec("DELETE FROM attendance")
	})
	return db
}

func day(yearDay int) time.Time {
	return time.Date(2026, 1, yearDay, 0, 0, 0, 0, time.UTC)
}

func TestFindForDateNormalizesTimestamp(t *testing.T) {
	db := setupAttendanceTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	noon := time.Date(2026, 1, 5, 12, 30, 0, 0, time.UTC)
	_, err := repo.Create(ctx, &models.Attendance{
		UserID: userID,
		Date:   noon,
		Status: models.StatusPresent,
	})
	require.NoError(t, err)

	row, err := repo.FindForDate(ctx, userID, noon.Add(4*time.Hour))
	require.NoError(t, err)
	require.Equal(t, day(5), row.Date.UTC())
}

func TestUniqueRowPerUserAndDate(t *testing.T) {
	db := setupAttendanceTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	_, err := repo.Create(ctx, &models.Attendance{
		UserID: userID,
		Date:   day(5),
		Status: models.StatusPresent,
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.Attendance{
		UserID: userID,
		Date:   day(5),
		Status: models.StatusPresent,
	})
	require.Error(t, err)
}

func TestUpdateClearsCheckOut(t *testing.T) {
	db := setupAttendanceTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	in := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	out := time.Date(2026, 1, 5, 17, 0, 0, 0, time.UTC)
	row, err := repo.Create(ctx, &models.Attendance{
		UserID:   userID,
		Date:     day(5),
		CheckIn:  &in,
		CheckOut: &out,
		Status:   models.StatusPresent,
	})
	require.NoError(t, err)

	later := time.Date(2026, 1, 5, 18, 0, 0, 0, time.UTC)
	row.CheckIn = &later
	row.CheckOut = nil
	require.NoError(t, repo.Update(ctx, row))

	got, err := repo.FindForDate(ctx, userID, day(5))
	require.NoError(t, err)
	require.NotNil(t, got.CheckIn)
	require.Nil(t, got.CheckOut)
}

func TestListAllOrderingAndFilters(t *testing.T) {
	db := setupAttendanceTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for _, d := range []int{3, 5, 7} {
		in := time.Date(2026, 1, d, 9, 0, 0, 0, time.UTC)
		_, err := repo.Create(ctx, &models.Attendance{
			UserID:  uuid.New(),
			Date:    day(d),
			CheckIn: &in,
			Status:  models.StatusPresent,
		})
		require.NoError(t, err)
	}

	rows, total, err := repo.ListAll(ctx, pagination.Params{}, RecordFilters{})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Equal(t, day(7), rows[0].Date.UTC())
	require.Equal(t, day(3), rows[2].Date.UTC())

	from := day(4)
	to := day(6)
	rows, total, err = repo.ListAll(ctx, pagination.Params{}, RecordFilters{DateFrom: &from, DateTo: &to})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, day(5), rows[0].Date.UTC())
}

func TestCountForDate(t *testing.T) {
	db := setupAttendanceTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.Attendance{
		UserID: uuid.New(),
		Date:   day(5),
		Status: models.StatusPresent,
	})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &models.Attendance{
		UserID: uuid.New(),
		Date:   day(5),
		Status: models.StatusAbsent,
	})
	require.NoError(t, err)

	count, err := repo.CountForDate(ctx, day(5), models.StatusPresent)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

// applyMigratedSchema runs the schema migration's Up statements so the test
// database matches what goose actually creates.
func applyMigratedSchema(t *testing.T, db *gorm.DB) {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join("..", "..", "pkg", "migrate", "migrations", "*_create_attendance_schema.sql"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)

	up := string(data)
	if i := strings.Index(up, "-- +goose Down"); i >= 0 {
		up = up[:i]
	}
	for _, stmt := range strings.Split(up, ";") {
		if !hasSQL(stmt) {
			continue
		}
		require.NoError(t, db.Exec(stmt).Error)
	}
}

func hasSQL(stmt string) bool {
	for _, line := range strings.Split(stmt, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "--") {
			return true
		}
	}
	return false
}

func TestMigratedSchemaRoundTripsNotes(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	applyMigratedSchema(t, db)

	userID := uuid.New()
	require.NoError(t, db.Exec(
		"INSERT INTO users (id, username, email, password_hash, full_name, role, is_active) VALUES (?, ?, ?, ?, ?, ?, ?)",
		userID, "alice", "alice@example.com", "x", "Alice A", "employee", true,
	).Error)

	repo := NewRepository(db)
	ctx := context.Background()
	noon := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)

	created, err := repo.Create(ctx, &models.Attendance{
		UserID:  userID,
		Date:    noon,
		CheckIn: &noon,
		Status:  models.StatusPresent,
		Notes:   "left early, dentist",
	})
	require.NoError(t, err)

	row, err := repo.FindForDate(ctx, userID, noon)
	require.NoError(t, err)
	require.Equal(t, created.ID, row.ID)
	require.Equal(t, "left early, dentist", row.Notes)
}
