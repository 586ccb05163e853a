package service

import (
	"github.com/rs/zerolog/log"

	"github.com/27serj23/schoolreg/internal/model"
	"github.com/27serj23/schoolreg/internal/repository"
)

// CreateStudent validates and inserts one student as a unit of work.
func (s *Service) CreateStudent(name, surname string, age int, city string) (*model.Student, error) {
	student, err := model.NewStudent(name, surname, age, city)
	if err != nil {
		return nil, err
	}

	err = s.WithTransaction(func(r *repository.Set) error {
		_, err := r.Students.Create(student)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Debug().Int64("id", student.ID).Msg("Student created")
	return student, nil
}

// CreateStudentWithEnrollment inserts a student and enrolls it on the
// given course as one atomic unit. If the enrollment fails — a missing
// course id surfaces as *model.DanglingReferenceError — the student
// insert is rolled back with it.
func (s *Service) CreateStudentWithEnrollment(name, surname string, age int, city string, courseID int64) (*model.Student, error) {
	student, err := model.NewStudent(name, surname, age, city)
	if err != nil {
		return nil, err
	}

	err = s.WithTransaction(func(r *repository.Set) error {
		if _, err := r.Students.Create(student); err != nil {
			return err
		}
		return r.Enrollments.Enroll(student.ID, courseID)
	})
	if err != nil {
		student.ID = 0 // the insert was rolled back
		return nil, err
	}

	log.Debug().Int64("id", student.ID).Int64("course_id", courseID).Msg("Student created and enrolled")
	return student, nil
}

// UpdateStudent looks up the student, applies the non-nil fields of upd,
// re-validates, and persists — all in one unit of work. Returns
// *model.NotFoundError when the id does not exist.
func (s *Service) UpdateStudent(id int64, upd model.StudentUpdate) (*model.Student, error) {
	var student *model.Student

	err := s.WithTransaction(func(r *repository.Set) error {
		existing, err := r.Students.GetByID(id)
		if err != nil {
			return err
		}
		if existing == nil {
			return notFound("student", id)
		}

		upd.ApplyTo(existing)
		if err := existing.Validate(); err != nil {
			return err
		}

		if _, err := r.Students.Update(existing); err != nil {
			return err
		}
		student = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	return student, nil
}

// DeleteStudent removes the student and, via the cascade, all of its
// enrollment rows. Returns *model.NotFoundError when the id does not
// exist.
func (s *Service) DeleteStudent(id int64) error {
	return s.WithTransaction(func(r *repository.Set) error {
		removed, err := r.Students.Delete(id)
		if err != nil {
			return err
		}
		if !removed {
			return notFound("student", id)
		}
		return nil
	})
}

// Student returns the student with the given id, or *model.NotFoundError.
func (s *Service) Student(id int64) (*model.Student, error) {
	student, err := s.reads().Students.GetByID(id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, notFound("student", id)
	}
	return student, nil
}

// Students returns every student in ascending id order.
func (s *Service) Students() ([]model.Student, error) {
	return s.reads().Students.GetAll()
}

// StudentsByCity returns the students living in city.
func (s *Service) StudentsByCity(city string) ([]model.Student, error) {
	return s.reads().Students.GetByCity(city)
}

// StudentsOlderThan returns the students strictly older than age.
func (s *Service) StudentsOlderThan(age int) ([]model.Student, error) {
	return s.reads().Students.GetByAgeGreaterThan(age)
}
