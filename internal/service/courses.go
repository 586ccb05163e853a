package service

import (
	"github.com/rs/zerolog/log"

	"github.com/27serj23/schoolreg/internal/model"
	"github.com/27serj23/schoolreg/internal/repository"
)

// CreateCourse validates and inserts one course as a unit of work.
// A name collision surfaces as *model.DuplicateCourseError.
func (s *Service) CreateCourse(name, timeStart, timeEnd string) (*model.Course, error) {
	course, err := model.NewCourse(name, timeStart, timeEnd)
	if err != nil {
		return nil, err
	}

	err = s.WithTransaction(func(r *repository.Set) error {
		_, err := r.Courses.Create(course)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Debug().Int64("id", course.ID).Str("name", course.Name).Msg("Course created")
	return course, nil
}

// DeleteCourse removes the course and, via the cascade, all of its
// enrollment rows. Returns *model.NotFoundError when the id does not
// exist.
func (s *Service) DeleteCourse(id int64) error {
	return s.WithTransaction(func(r *repository.Set) error {
		removed, err := r.Courses.Delete(id)
		if err != nil {
			return err
		}
		if !removed {
			return notFound("course", id)
		}
		return nil
	})
}

// Course returns the course with the given id, or *model.NotFoundError.
func (s *Service) Course(id int64) (*model.Course, error) {
	course, err := s.reads().Courses.GetByID(id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, notFound("course", id)
	}
	return course, nil
}

// CourseByName returns the course with the given name, or (nil, nil)
// when it does not exist — name lookups are a search, not an address.
func (s *Service) CourseByName(name string) (*model.Course, error) {
	return s.reads().Courses.GetByName(name)
}

// Courses returns every course in ascending id order.
func (s *Service) Courses() ([]model.Course, error) {
	return s.reads().Courses.GetAll()
}
