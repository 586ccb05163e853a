package service

import (
	"github.com/rs/zerolog/log"

	"github.com/27serj23/schoolreg/internal/model"
	"github.com/27serj23/schoolreg/internal/repository"
)

var seedCourses = []model.Course{
	{Name: "python", TimeStart: "21.07.21", TimeEnd: "21.08.21"},
	{Name: "java", TimeStart: "13.07.21", TimeEnd: "16.08.21"},
}

var seedStudents = []model.Student{
	{Name: "Max", Surname: "Brooks", Age: 24, City: "Spb"},
	{Name: "John", Surname: "Stones", Age: 15, City: "Spb"},
	{Name: "Andy", Surname: "Wings", Age: 45, City: "Manchester"},
	{Name: "Kate", Surname: "Brooks", Age: 34, City: "Spb"},
}

// seedEnrollments indexes into seedStudents/seedCourses: Max, John and
// Andy take python, Kate takes java.
var seedEnrollments = [][2]int{
	{0, 0}, {1, 0}, {2, 0}, {3, 1},
}

// Seed loads the demo fixture (two courses, four students, their
// enrollments) in one transaction. It refuses to run on a non-empty
// database so repeated runs stay harmless.
func (s *Service) Seed() error {
	stats, err := s.Stats()
	if err != nil {
		return err
	}
	if stats.Students > 0 || stats.Courses > 0 {
		log.Info().Msg("Database is not empty; skipping seed")
		return nil
	}

	err = s.WithTransaction(func(r *repository.Set) error {
		courseIDs := make([]int64, len(seedCourses))
		for i, c := range seedCourses {
			course := c
			id, err := r.Courses.Create(&course)
			if err != nil {
				return err
			}
			courseIDs[i] = id
		}

		studentIDs := make([]int64, len(seedStudents))
		for i, st := range seedStudents {
			student := st
			id, err := r.Students.Create(&student)
			if err != nil {
				return err
			}
			studentIDs[i] = id
		}

		for _, e := range seedEnrollments {
			if err := r.Enrollments.Enroll(studentIDs[e[0]], courseIDs[e[1]]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info().
		Int("students", len(seedStudents)).
		Int("courses", len(seedCourses)).
		Msg("Demo data seeded")
	return nil
}
