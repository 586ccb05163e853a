package repository

import (
	"database/sql"

	"github.com/27serj23/schoolreg/internal/model"
)

// EnrollmentRepository maps the (student, course) relationship to the
// student_courses link table. Uniqueness of the pair and the existence
// of both sides are enforced by the storage layer; this repository's
// job is to recognize those constraint signals and re-surface them as
// domain error kinds.
type EnrollmentRepository struct {
	q Querier
}

// NewEnrollmentRepository returns a repository bound to q.
func NewEnrollmentRepository(q Querier) *EnrollmentRepository {
	return &EnrollmentRepository{q: q}
}

// Enroll inserts one (student, course) pair.
// A duplicate pair returns *model.DuplicateEnrollmentError; a missing
// student or course returns *model.DanglingReferenceError.
func (r *EnrollmentRepository) Enroll(studentID, courseID int64) error {
	_, err := r.q.Exec(`
		INSERT INTO student_courses (student_id, course_id)
		VALUES (?, ?)
	`, studentID, courseID)
	if err != nil {
		code := constraintCode(err)
		switch {
		case isUniqueViolation(code):
			return &model.DuplicateEnrollmentError{StudentID: studentID, CourseID: courseID}
		case isForeignKeyViolation(code):
			return &model.DanglingReferenceError{StudentID: studentID, CourseID: courseID}
		}
		return &model.StorageError{Op: "enroll student", Err: err}
	}
	return nil
}

// Unenroll removes one (student, course) pair. Reports whether a row
// was removed.
func (r *EnrollmentRepository) Unenroll(studentID, courseID int64) (bool, error) {
	result, err := r.q.Exec(`
		DELETE FROM student_courses
		WHERE student_id = ? AND course_id = ?
	`, studentID, courseID)
	if err != nil {
		return false, &model.StorageError{Op: "unenroll student", Err: err}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, &model.StorageError{Op: "unenroll student", Err: err}
	}
	return affected > 0, nil
}

// IsEnrolled reports whether the (student, course) pair exists.
func (r *EnrollmentRepository) IsEnrolled(studentID, courseID int64) (bool, error) {
	var one int
	err := r.q.QueryRow(`
		SELECT 1 FROM student_courses
		WHERE student_id = ? AND course_id = ?
	`, studentID, courseID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, &model.StorageError{Op: "check enrollment", Err: err}
	}
	return true, nil
}

// StudentsOnCourse retrieves the students enrolled on the course with
// the given name, in ascending student id order.
func (r *EnrollmentRepository) StudentsOnCourse(courseName string) ([]model.Student, error) {
	return r.listStudents(`
		SELECT s.id, s.name, s.surname, s.age, s.city
		FROM students s
		JOIN student_courses sc ON s.id = sc.student_id
		JOIN courses c ON sc.course_id = c.id
		WHERE c.name = ?
		ORDER BY s.id
	`, courseName)
}

// StudentsOnCourseFromCity retrieves the students enrolled on the named
// course who live in city, in ascending student id order — the same
// ordering as the unfiltered query, so filter combinations compose.
func (r *EnrollmentRepository) StudentsOnCourseFromCity(courseName, city string) ([]model.Student, error) {
	return r.listStudents(`
		SELECT s.id, s.name, s.surname, s.age, s.city
		FROM students s
		JOIN student_courses sc ON s.id = sc.student_id
		JOIN courses c ON sc.course_id = c.id
		WHERE c.name = ? AND s.city = ?
		ORDER BY s.id
	`, courseName, city)
}

// CoursesForStudent retrieves the courses the student is enrolled on,
// in ascending course id order.
func (r *EnrollmentRepository) CoursesForStudent(studentID int64) ([]model.Course, error) {
	rows, err := r.q.Query(`
		SELECT c.id, c.name, c.time_start, c.time_end
		FROM courses c
		JOIN student_courses sc ON c.id = sc.course_id
		WHERE sc.student_id = ?
		ORDER BY c.id
	`, studentID)
	if err != nil {
		return nil, &model.StorageError{Op: "list courses for student", Err: err}
	}
	defer rows.Close()

	courses, err := scanCourses(rows)
	if err != nil {
		return nil, &model.StorageError{Op: "scan courses", Err: err}
	}
	return courses, nil
}

func (r *EnrollmentRepository) listStudents(query string, args ...any) ([]model.Student, error) {
	rows, err := r.q.Query(query, args...)
	if err != nil {
		return nil, &model.StorageError{Op: "list students on course", Err: err}
	}
	defer rows.Close()

	students, err := scanStudents(rows)
	if err != nil {
		return nil, &model.StorageError{Op: "scan students", Err: err}
	}
	return students, nil
}
