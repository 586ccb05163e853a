package service

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/27serj23/schoolreg/internal/model"
	"github.com/27serj23/schoolreg/internal/repository"
)

// EnrollmentFailure records one student id that could not be enrolled
// during a batch, with the domain error that rejected it.
type EnrollmentFailure struct {
	StudentID int64
	Err       error
}

// EnrollmentReport is the structured outcome of a best-effort batch
// enrollment.
type EnrollmentReport struct {
	Successful      []int64
	AlreadyEnrolled []int64
	Failures        []EnrollmentFailure
}

// EnrollStudent enrolls one student on one course as a unit of work.
func (s *Service) EnrollStudent(studentID, courseID int64) error {
	return s.WithTransaction(func(r *repository.Set) error {
		return r.Enrollments.Enroll(studentID, courseID)
	})
}

// UnenrollStudent removes one enrollment. Returns *model.NotFoundError
// when the pair does not exist.
func (s *Service) UnenrollStudent(studentID, courseID int64) error {
	return s.WithTransaction(func(r *repository.Set) error {
		removed, err := r.Enrollments.Unenroll(studentID, courseID)
		if err != nil {
			return err
		}
		if !removed {
			return notFound("enrollment for student", studentID)
		}
		return nil
	})
}

// EnrollStudents enrolls each of studentIDs on the given course.
//
// Unlike the composite operations this batch is deliberately NOT
// all-or-nothing per student: an already enrolled id goes into
// AlreadyEnrolled, an id rejected by the reference check goes into
// Failures, and the remaining ids still get enrolled and committed.
// Only a storage-level failure aborts and rolls back the whole batch.
func (s *Service) EnrollStudents(studentIDs []int64, courseID int64) (*EnrollmentReport, error) {
	report := &EnrollmentReport{
		Successful:      []int64{},
		AlreadyEnrolled: []int64{},
	}

	err := s.WithTransaction(func(r *repository.Set) error {
		for _, studentID := range studentIDs {
			err := r.Enrollments.Enroll(studentID, courseID)

			var dup *model.DuplicateEnrollmentError
			var dangling *model.DanglingReferenceError
			switch {
			case err == nil:
				report.Successful = append(report.Successful, studentID)
			case errors.As(err, &dup):
				report.AlreadyEnrolled = append(report.AlreadyEnrolled, studentID)
			case errors.As(err, &dangling):
				report.Failures = append(report.Failures, EnrollmentFailure{StudentID: studentID, Err: err})
			default:
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int64("course_id", courseID).
		Int("successful", len(report.Successful)).
		Int("already_enrolled", len(report.AlreadyEnrolled)).
		Int("failed", len(report.Failures)).
		Msg("Batch enrollment complete")

	return report, nil
}

// StudentsOnCourse returns the students enrolled on the named course,
// optionally filtered by city (empty city means no filter). Both forms
// order by student id, so the filter never reshuffles results.
func (s *Service) StudentsOnCourse(courseName, city string) ([]model.Student, error) {
	if city == "" {
		return s.reads().Enrollments.StudentsOnCourse(courseName)
	}
	return s.reads().Enrollments.StudentsOnCourseFromCity(courseName, city)
}

// CoursesForStudent returns the courses the student is enrolled on.
func (s *Service) CoursesForStudent(studentID int64) ([]model.Course, error) {
	return s.reads().Enrollments.CoursesForStudent(studentID)
}
