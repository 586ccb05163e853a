package model

import "strings"

// Course represents a row in the courses table. The name is globally
// unique; TimeStart and TimeEnd are opaque date strings (the original
// data uses DD.MM.YY) and are not validated beyond being non-empty.
type Course struct {
	ID        int64  `validate:"-"`
	Name      string `validate:"required"`
	TimeStart string `validate:"required"`
	TimeEnd   string `validate:"required"`
}

// NewCourse builds a validated Course with no id.
func NewCourse(name, timeStart, timeEnd string) (*Course, error) {
	c := &Course{
		Name:      strings.TrimSpace(name),
		TimeStart: strings.TrimSpace(timeStart),
		TimeEnd:   strings.TrimSpace(timeEnd),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the field invariants and returns a *ValidationError
// listing every violated field.
func (c *Course) Validate() error {
	return validateStruct(c)
}
