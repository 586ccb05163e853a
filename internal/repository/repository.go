// Package repository maps the school entities to storage rows and
// translates storage-level constraint violations into the domain error
// kinds in internal/model.
//
// Repositories hold no state beyond the handle they are given and never
// commit: they stage changes against whatever Querier they were
// constructed with. Handing them a *sql.Tx makes several writes part of
// one unit of work; the transaction boundary belongs to the caller
// (internal/service).
package repository

import (
	"database/sql"
	"errors"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Querier is the subset of database/sql shared by *sql.DB and *sql.Tx.
type Querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Set bundles one repository per entity, all bound to the same handle.
// Sets are cheap to construct; make a fresh one per unit of work.
type Set struct {
	Students    *StudentRepository
	Courses     *CourseRepository
	Enrollments *EnrollmentRepository
}

// NewSet builds repositories bound to q.
func NewSet(q Querier) *Set {
	return &Set{
		Students:    NewStudentRepository(q),
		Courses:     NewCourseRepository(q),
		Enrollments: NewEnrollmentRepository(q),
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// constraintCode extracts the SQLite extended result code from err, or
// returns 0 when err is not a driver error.
func constraintCode(err error) int {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code()
	}
	return 0
}

func isUniqueViolation(code int) bool {
	return code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY || code == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

func isForeignKeyViolation(code int) bool {
	return code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
}
