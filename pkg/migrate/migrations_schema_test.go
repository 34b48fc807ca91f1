package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSchemaMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_attendance_schema.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no schema migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS users",
		"CREATE TABLE IF NOT EXISTS rotas",
		"CREATE TABLE IF NOT EXISTS attendance",
		"notes text",
		"FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE",
		"ON rotas (user_id, day_of_week) WHERE is_active",
		"ON attendance (user_id, date)",
		"DROP TABLE IF EXISTS attendance",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
