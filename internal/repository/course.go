package repository

import (
	"database/sql"

	"github.com/27serj23/schoolreg/internal/model"
)

// CourseRepository maps model.Course to the courses table.
type CourseRepository struct {
	q Querier
}

// NewCourseRepository returns a repository bound to q.
func NewCourseRepository(q Querier) *CourseRepository {
	return &CourseRepository{q: q}
}

// scanCourse reads one courses row in fixed column order
// (id, name, time_start, time_end).
func scanCourse(rs rowScanner) (*model.Course, error) {
	c := &model.Course{}
	if err := rs.Scan(&c.ID, &c.Name, &c.TimeStart, &c.TimeEnd); err != nil {
		return nil, err
	}
	return c, nil
}

func scanCourses(rows *sql.Rows) ([]model.Course, error) {
	courses := make([]model.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *c)
	}
	return courses, rows.Err()
}

// Create inserts a new course row and fills in the storage-assigned id.
// A name collision surfaces as *model.DuplicateCourseError.
func (r *CourseRepository) Create(c *model.Course) (int64, error) {
	result, err := r.q.Exec(`
		INSERT INTO courses (name, time_start, time_end)
		VALUES (?, ?, ?)
	`, c.Name, c.TimeStart, c.TimeEnd)
	if err != nil {
		if isUniqueViolation(constraintCode(err)) {
			return 0, &model.DuplicateCourseError{Name: c.Name}
		}
		return 0, &model.StorageError{Op: "create course", Err: err}
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, &model.StorageError{Op: "get course id", Err: err}
	}

	c.ID = id
	return id, nil
}

// GetByID retrieves a course by id. Returns (nil, nil) when no row matches.
func (r *CourseRepository) GetByID(id int64) (*model.Course, error) {
	row := r.q.QueryRow(`
		SELECT id, name, time_start, time_end
		FROM courses WHERE id = ?
	`, id)
	c, err := scanCourse(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &model.StorageError{Op: "get course", Err: err}
	}
	return c, nil
}

// GetByName retrieves a course by its unique name. Returns (nil, nil)
// when no row matches.
func (r *CourseRepository) GetByName(name string) (*model.Course, error) {
	row := r.q.QueryRow(`
		SELECT id, name, time_start, time_end
		FROM courses WHERE name = ?
	`, name)
	c, err := scanCourse(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &model.StorageError{Op: "get course by name", Err: err}
	}
	return c, nil
}

// GetAll retrieves every course in ascending id order.
func (r *CourseRepository) GetAll() ([]model.Course, error) {
	rows, err := r.q.Query(`
		SELECT id, name, time_start, time_end
		FROM courses ORDER BY id
	`)
	if err != nil {
		return nil, &model.StorageError{Op: "list courses", Err: err}
	}
	defer rows.Close()

	courses, err := scanCourses(rows)
	if err != nil {
		return nil, &model.StorageError{Op: "scan courses", Err: err}
	}
	return courses, nil
}

// Delete removes the course row with the given id; enrollment rows go
// with it via the cascade. Reports whether a row existed.
func (r *CourseRepository) Delete(id int64) (bool, error) {
	result, err := r.q.Exec("DELETE FROM courses WHERE id = ?", id)
	if err != nil {
		return false, &model.StorageError{Op: "delete course", Err: err}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, &model.StorageError{Op: "delete course", Err: err}
	}
	return affected > 0, nil
}

// Count returns the number of course rows.
func (r *CourseRepository) Count() (int, error) {
	var n int
	if err := r.q.QueryRow("SELECT COUNT(*) FROM courses").Scan(&n); err != nil {
		return 0, &model.StorageError{Op: "count courses", Err: err}
	}
	return n, nil
}
