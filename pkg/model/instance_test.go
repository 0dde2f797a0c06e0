package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStudent(t *testing.T) {
	t.Run("Normalizes priorities to 1-based ranks", func(t *testing.T) {
		student, err := NewStudent("1001", []string{"CS101", "CS102", "CS103"}, []int{10, 5, 7})
		assert.NoError(t, err)
		assert.Equal(t, []Enrollment{
			{Section: "CS102", Priority: 1},
			{Section: "CS103", Priority: 2},
			{Section: "CS101", Priority: 3},
		}, student.Enrollments)
	})

	t.Run("Keeps input order on ties", func(t *testing.T) {
		student, err := NewStudent("1002", []string{"CS101", "CS102"}, []int{3, 3})
		assert.NoError(t, err)
		assert.Equal(t, []Enrollment{
			{Section: "CS101", Priority: 1},
			{Section: "CS102", Priority: 2},
		}, student.Enrollments)
	})

	t.Run("Rejects mismatched lists", func(t *testing.T) {
		_, err := NewStudent("1003", []string{"CS101", "CS102"}, []int{1})
		assert.Error(t, err)
	})
}

func TestInstanceValidate(t *testing.T) {
	valid := func() Instance {
		return Instance{
			Sections: []CourseSection{{Code: "CS101", Enrolled: 40, Credits: 3}},
			Rooms:    []Room{{Code: "R1", Capacity: 60}},
			Students: []Student{{Id: "1001", Enrollments: []Enrollment{{Section: "CS101", Priority: 1}}}},
		}
	}
	assert.NoError(t, valid().Validate())

	cases := []struct {
		name   string
		mutate func(*Instance)
	}{
		{"No sections", func(i *Instance) { i.Sections = nil }},
		{"No rooms", func(i *Instance) { i.Rooms = nil }},
		{"Empty section code", func(i *Instance) { i.Sections[0].Code = "" }},
		{"Duplicated section", func(i *Instance) { i.Sections = append(i.Sections, i.Sections[0]) }},
		{"Non-positive credits", func(i *Instance) { i.Sections[0].Credits = 0 }},
		{"Negative enrolled", func(i *Instance) { i.Sections[0].Enrolled = -1 }},
		{"Duplicated room", func(i *Instance) { i.Rooms = append(i.Rooms, i.Rooms[0]) }},
		{"Non-positive capacity", func(i *Instance) { i.Rooms[0].Capacity = 0 }},
		{"Student without enrollments", func(i *Instance) { i.Students[0].Enrollments = nil }},
		{"Unknown section", func(i *Instance) { i.Students[0].Enrollments[0].Section = "CS999" }},
		{"Non-positive priority", func(i *Instance) { i.Students[0].Enrollments[0].Priority = 0 }},
	}
	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			instance := valid()
			testCase.mutate(&instance)
			assert.Error(t, instance.Validate())
		})
	}
}

func TestDayString(t *testing.T) {
	assert.Equal(t, "Monday", Monday.String())
	assert.Equal(t, "Friday", Friday.String())
	assert.Equal(t, "Day(9)", Day(9).String())
}
