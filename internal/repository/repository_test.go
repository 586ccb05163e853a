package repository

import (
	"path/filepath"
	"testing"

	"github.com/27serj23/schoolreg/internal/database"
	"github.com/27serj23/schoolreg/internal/model"
)

func newTestSet(t *testing.T) (*Set, *database.DB) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.New(dbPath)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return NewSet(db), db
}

// seedFixture loads the level-2 style fixture: python and java courses,
// four students, Max/John/Andy on python, Kate on java. With a fresh
// database the storage-assigned ids are 1..4 for students and 1..2 for
// courses.
func seedFixture(t *testing.T, r *Set) {
	t.Helper()

	courses := []model.Course{
		{Name: "python", TimeStart: "21.07.21", TimeEnd: "21.08.21"},
		{Name: "java", TimeStart: "13.07.21", TimeEnd: "16.08.21"},
	}
	for i := range courses {
		if _, err := r.Courses.Create(&courses[i]); err != nil {
			t.Fatalf("failed to seed course %q: %v", courses[i].Name, err)
		}
	}

	students := []model.Student{
		{Name: "Max", Surname: "Brooks", Age: 24, City: "Spb"},
		{Name: "John", Surname: "Stones", Age: 15, City: "Spb"},
		{Name: "Andy", Surname: "Wings", Age: 45, City: "Manchester"},
		{Name: "Kate", Surname: "Brooks", Age: 34, City: "Spb"},
	}
	for i := range students {
		if _, err := r.Students.Create(&students[i]); err != nil {
			t.Fatalf("failed to seed student %q: %v", students[i].Name, err)
		}
	}

	enrollments := [][2]int64{{1, 1}, {2, 1}, {3, 1}, {4, 2}}
	for _, e := range enrollments {
		if err := r.Enrollments.Enroll(e[0], e[1]); err != nil {
			t.Fatalf("failed to seed enrollment %v: %v", e, err)
		}
	}
}

func studentNames(students []model.Student) []string {
	names := make([]string, 0, len(students))
	for _, s := range students {
		names = append(names, s.Name)
	}
	return names
}

func studentIDs(students []model.Student) []int64 {
	ids := make([]int64, 0, len(students))
	for _, s := range students {
		ids = append(ids, s.ID)
	}
	return ids
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
