package model

import (
	"fmt"
	"strings"
)

// The repository and service layers report failures exclusively through
// the error kinds below. Raw driver errors never cross the repository
// boundary; anything that is not a recognized constraint violation is
// wrapped in a StorageError.

// FieldError describes a single failed field invariant.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError reports one or more field invariant violations. It is
// raised at construction/assignment time, before any storage interaction.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// NotFoundError reports an operation that addressed an entity id with no
// matching row.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// DuplicateEnrollmentError reports an insert of an already existing
// (student, course) pair.
type DuplicateEnrollmentError struct {
	StudentID int64
	CourseID  int64
}

func (e *DuplicateEnrollmentError) Error() string {
	return fmt.Sprintf("student %d is already enrolled on course %d", e.StudentID, e.CourseID)
}

// DanglingReferenceError reports an enrollment referencing a student or
// course id that does not exist at the storage level.
type DanglingReferenceError struct {
	StudentID int64
	CourseID  int64
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("enrollment (%d, %d) references a missing student or course", e.StudentID, e.CourseID)
}

// DuplicateCourseError reports a course create violating the unique name
// constraint.
type DuplicateCourseError struct {
	Name string
}

func (e *DuplicateCourseError) Error() string {
	return fmt.Sprintf("course %q already exists", e.Name)
}

// StorageError wraps any other underlying storage failure. It is fatal
// to the current unit of work and always triggers a rollback.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
