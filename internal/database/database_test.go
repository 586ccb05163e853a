package database

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestMigrate_CreatesSchema(t *testing.T) {
	db := newTestDB(t)

	for _, table := range []string{"students", "courses", "student_courses", "settings"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("expected table %s to exist: %v", table, err)
		}
	}

	// Running migrations again must be a no-op.
	if err := db.Migrate(); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}
}

func TestTransaction_CommitsOnNil(t *testing.T) {
	db := newTestDB(t)

	err := db.Transaction(func(tx *sql.Tx) error {
		_, err := tx.Exec("INSERT INTO students (name, surname, age, city) VALUES ('Max', 'Brooks', 24, 'Spb')")
		return err
	})
	if err != nil {
		t.Fatalf("transaction failed: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM students").Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 student, got %d", count)
	}
}

func TestTransaction_RollsBackAndReturnsOriginalError(t *testing.T) {
	db := newTestDB(t)

	boom := errors.New("boom")
	err := db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec("INSERT INTO students (name, surname, age, city) VALUES ('Max', 'Brooks', 24, 'Spb')"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the body's error back, got %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM students").Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback to hide the insert, found %d rows", count)
	}
}

func TestForeignKeys_Enforced(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Exec("INSERT INTO student_courses (student_id, course_id) VALUES (1, 1)")
	if err == nil {
		t.Fatal("expected foreign key violation for dangling enrollment")
	}
}

func TestSettings_RoundTripAndDefaults(t *testing.T) {
	db := newTestDB(t)

	if err := db.InitializeDefaults(); err != nil {
		t.Fatalf("failed to initialize defaults: %v", err)
	}

	val, err := db.GetSetting("log.level")
	if err != nil {
		t.Fatalf("get setting failed: %v", err)
	}
	if val != "info" {
		t.Fatalf("expected default log.level 'info', got %q", val)
	}

	if err := db.SetSetting("log.level", "debug"); err != nil {
		t.Fatalf("set setting failed: %v", err)
	}
	// Defaults must not clobber explicit values.
	if err := db.InitializeDefaults(); err != nil {
		t.Fatalf("re-initialize failed: %v", err)
	}
	val, _ = db.GetSetting("log.level")
	if val != "debug" {
		t.Fatalf("expected 'debug' to survive, got %q", val)
	}

	val, err = db.GetSetting("does.not.exist")
	if err != nil || val != "" {
		t.Fatalf("expected empty value for missing key, got %q, %v", val, err)
	}
}
