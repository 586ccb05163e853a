package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStudent_Valid(t *testing.T) {
	s, err := NewStudent("  Max ", "Brooks", 24, "Spb")
	require.NoError(t, err)

	assert.Equal(t, int64(0), s.ID)
	assert.Equal(t, "Max", s.Name, "text fields are trimmed")
	assert.Equal(t, "Brooks", s.Surname)
	assert.Equal(t, 24, s.Age)
	assert.Equal(t, "Spb", s.City)
}

func TestNewStudent_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		student func() (*Student, error)
		field   string
	}{
		{"blank name", func() (*Student, error) { return NewStudent("   ", "Brooks", 24, "Spb") }, "Name"},
		{"blank surname", func() (*Student, error) { return NewStudent("Max", "", 24, "Spb") }, "Surname"},
		{"blank city", func() (*Student, error) { return NewStudent("Max", "Brooks", 24, "  ") }, "City"},
		{"too young", func() (*Student, error) { return NewStudent("Max", "Brooks", 13, "Spb") }, "Age"},
		{"too old", func() (*Student, error) { return NewStudent("Max", "Brooks", 101, "Spb") }, "Age"},
		{"zero age", func() (*Student, error) { return NewStudent("Max", "Brooks", 0, "Spb") }, "Age"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.student()
			assert.Nil(t, s)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			fields := make([]string, 0, len(verr.Fields))
			for _, f := range verr.Fields {
				fields = append(fields, f.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestNewStudent_CollectsAllViolations(t *testing.T) {
	_, err := NewStudent("", "", 5, "")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 4)
}

func TestNewCourse(t *testing.T) {
	c, err := NewCourse("python", "21.07.21", "21.08.21")
	require.NoError(t, err)
	assert.Equal(t, "python", c.Name)

	_, err = NewCourse("python", "  ", "21.08.21")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "TimeStart", verr.Fields[0].Field)
}

func TestStudentUpdate_ApplyTo(t *testing.T) {
	s := &Student{ID: 3, Name: "Andy", Surname: "Wings", Age: 45, City: "Manchester"}

	city := " London "
	age := 46
	StudentUpdate{City: &city, Age: &age}.ApplyTo(s)

	assert.Equal(t, "London", s.City)
	assert.Equal(t, 46, s.Age)
	assert.Equal(t, "Andy", s.Name, "nil fields stay untouched")
	assert.Equal(t, "Wings", s.Surname)
	assert.Equal(t, int64(3), s.ID)
}

func TestErrorKinds_AreDistinguishable(t *testing.T) {
	var err error = &DuplicateEnrollmentError{StudentID: 1, CourseID: 2}

	var dup *DuplicateEnrollmentError
	var dangling *DanglingReferenceError
	assert.True(t, errors.As(err, &dup))
	assert.False(t, errors.As(err, &dangling))

	serr := &StorageError{Op: "enroll student", Err: errors.New("disk I/O error")}
	assert.ErrorContains(t, serr, "enroll student")
	assert.ErrorContains(t, serr, "disk I/O error")
	require.NotNil(t, errors.Unwrap(serr))
}
