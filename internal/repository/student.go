package repository

import (
	"database/sql"
	"strings"

	"github.com/27serj23/schoolreg/internal/model"
)

// StudentRepository maps model.Student to the students table.
type StudentRepository struct {
	q Querier
}

// NewStudentRepository returns a repository bound to q.
func NewStudentRepository(q Querier) *StudentRepository {
	return &StudentRepository{q: q}
}

// scanStudent reads one students row in fixed column order
// (id, name, surname, age, city).
func scanStudent(rs rowScanner) (*model.Student, error) {
	s := &model.Student{}
	if err := rs.Scan(&s.ID, &s.Name, &s.Surname, &s.Age, &s.City); err != nil {
		return nil, err
	}
	return s, nil
}

func scanStudents(rows *sql.Rows) ([]model.Student, error) {
	students := make([]model.Student, 0)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, *s)
	}
	return students, rows.Err()
}

// Create inserts a new student row and fills in the storage-assigned id.
func (r *StudentRepository) Create(s *model.Student) (int64, error) {
	result, err := r.q.Exec(`
		INSERT INTO students (name, surname, age, city)
		VALUES (?, ?, ?, ?)
	`, s.Name, s.Surname, s.Age, s.City)
	if err != nil {
		return 0, &model.StorageError{Op: "create student", Err: err}
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, &model.StorageError{Op: "get student id", Err: err}
	}

	s.ID = id
	return id, nil
}

// GetByID retrieves a student by id. Returns (nil, nil) when no row matches.
func (r *StudentRepository) GetByID(id int64) (*model.Student, error) {
	row := r.q.QueryRow(`
		SELECT id, name, surname, age, city
		FROM students WHERE id = ?
	`, id)
	s, err := scanStudent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &model.StorageError{Op: "get student", Err: err}
	}
	return s, nil
}

// GetByIDs retrieves the students whose ids appear in ids, in ascending
// id order. An empty input returns an empty slice without touching the
// database; ids with no matching row are silently absent from the result.
func (r *StudentRepository) GetByIDs(ids []int64) ([]model.Student, error) {
	if len(ids) == 0 {
		return []model.Student{}, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.q.Query(`
		SELECT id, name, surname, age, city
		FROM students WHERE id IN (`+placeholders+`) ORDER BY id
	`, args...)
	if err != nil {
		return nil, &model.StorageError{Op: "get students by ids", Err: err}
	}
	defer rows.Close()

	students, err := scanStudents(rows)
	if err != nil {
		return nil, &model.StorageError{Op: "scan students", Err: err}
	}
	return students, nil
}

// GetAll retrieves every student in ascending id order.
func (r *StudentRepository) GetAll() ([]model.Student, error) {
	return r.list(`
		SELECT id, name, surname, age, city
		FROM students ORDER BY id
	`)
}

// GetByCity retrieves the students living in city, in ascending id order.
func (r *StudentRepository) GetByCity(city string) ([]model.Student, error) {
	return r.list(`
		SELECT id, name, surname, age, city
		FROM students WHERE city = ? ORDER BY id
	`, city)
}

// GetByAgeGreaterThan retrieves the students strictly older than age,
// in ascending id order.
func (r *StudentRepository) GetByAgeGreaterThan(age int) ([]model.Student, error) {
	return r.list(`
		SELECT id, name, surname, age, city
		FROM students WHERE age > ? ORDER BY id
	`, age)
}

func (r *StudentRepository) list(query string, args ...any) ([]model.Student, error) {
	rows, err := r.q.Query(query, args...)
	if err != nil {
		return nil, &model.StorageError{Op: "list students", Err: err}
	}
	defer rows.Close()

	students, err := scanStudents(rows)
	if err != nil {
		return nil, &model.StorageError{Op: "scan students", Err: err}
	}
	return students, nil
}

// Update replaces the row matching s.ID with s's fields. Reports whether
// a row was changed.
func (r *StudentRepository) Update(s *model.Student) (bool, error) {
	if s.ID == 0 {
		return false, &model.ValidationError{Fields: []model.FieldError{
			{Field: "ID", Message: "must be set"},
		}}
	}

	result, err := r.q.Exec(`
		UPDATE students SET name = ?, surname = ?, age = ?, city = ?
		WHERE id = ?
	`, s.Name, s.Surname, s.Age, s.City, s.ID)
	if err != nil {
		return false, &model.StorageError{Op: "update student", Err: err}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, &model.StorageError{Op: "update student", Err: err}
	}
	return affected > 0, nil
}

// Delete removes the student row with the given id; enrollment rows go
// with it via the cascade. Reports whether a row existed.
func (r *StudentRepository) Delete(id int64) (bool, error) {
	result, err := r.q.Exec("DELETE FROM students WHERE id = ?", id)
	if err != nil {
		return false, &model.StorageError{Op: "delete student", Err: err}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, &model.StorageError{Op: "delete student", Err: err}
	}
	return affected > 0, nil
}

// Count returns the number of student rows.
func (r *StudentRepository) Count() (int, error) {
	var n int
	if err := r.q.QueryRow("SELECT COUNT(*) FROM students").Scan(&n); err != nil {
		return 0, &model.StorageError{Op: "count students", Err: err}
	}
	return n, nil
}
