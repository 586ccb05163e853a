// Package service composes repository operations into units of work.
//
// Composite operations are atomic: WithTransaction opens one
// transaction scope, hands the body a repository set bound to it, and
// commits only when the body returns nil — any error rolls back every
// staged change and is returned to the caller unchanged. The one
// deliberate exception is EnrollStudents, a best-effort batch (see
// enrollment.go).
package service

import (
	"database/sql"

	"github.com/27serj23/schoolreg/internal/database"
	"github.com/27serj23/schoolreg/internal/model"
	"github.com/27serj23/schoolreg/internal/repository"
)

// Service owns the storage handle for the duration of each unit of work.
type Service struct {
	db *database.DB
}

// New creates a service on top of an opened, migrated database.
func New(db *database.DB) *Service {
	return &Service{db: db}
}

// WithTransaction runs fn inside one transaction scope. Repositories in
// the set stage their writes against the transaction; a nil return
// commits, any error rolls everything back and is re-raised as-is.
func (s *Service) WithTransaction(fn func(r *repository.Set) error) error {
	return s.db.Transaction(func(tx *sql.Tx) error {
		return fn(repository.NewSet(tx))
	})
}

// reads returns a repository set bound to the plain connection, for
// single-statement reads that need no transaction scope.
func (s *Service) reads() *repository.Set {
	return repository.NewSet(s.db)
}

// Stats reports row counts for the overview screens.
type Stats struct {
	Students int
	Courses  int
}

// Stats returns the current student and course counts.
func (s *Service) Stats() (Stats, error) {
	r := s.reads()
	students, err := r.Students.Count()
	if err != nil {
		return Stats{}, err
	}
	courses, err := r.Courses.Count()
	if err != nil {
		return Stats{}, err
	}
	return Stats{Students: students, Courses: courses}, nil
}

// notFound converts the repository's (nil, nil) single-lookup contract
// into the taxonomy kind callers branch on.
func notFound(entity string, id int64) error {
	return &model.NotFoundError{Entity: entity, ID: id}
}
