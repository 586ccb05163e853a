package model

import "strings"

// Student represents a row in the students table. ID is assigned by
// storage on create and immutable afterwards.
type Student struct {
	ID      int64  `validate:"-"`
	Name    string `validate:"required"`
	Surname string `validate:"required"`
	Age     int    `validate:"gte=14,lte=100"`
	City    string `validate:"required"`
}

// NewStudent builds a validated Student with no id. Text fields are
// trimmed before validation, so whitespace-only input is rejected.
func NewStudent(name, surname string, age int, city string) (*Student, error) {
	s := &Student{
		Name:    strings.TrimSpace(name),
		Surname: strings.TrimSpace(surname),
		Age:     age,
		City:    strings.TrimSpace(city),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the field invariants and returns a *ValidationError
// listing every violated field.
func (s *Student) Validate() error {
	return validateStruct(s)
}

// StudentUpdate carries field-level changes for an existing student.
// All fields are pointers so callers only set what needs changing;
// nil fields are left untouched.
type StudentUpdate struct {
	Name    *string
	Surname *string
	Age     *int
	City    *string
}

// ApplyTo copies the non-nil fields onto s, trimming text values.
// The result still needs to pass Validate before it is persisted.
func (u StudentUpdate) ApplyTo(s *Student) {
	if u.Name != nil {
		s.Name = strings.TrimSpace(*u.Name)
	}
	if u.Surname != nil {
		s.Surname = strings.TrimSpace(*u.Surname)
	}
	if u.Age != nil {
		s.Age = *u.Age
	}
	if u.City != nil {
		s.City = strings.TrimSpace(*u.City)
	}
}
