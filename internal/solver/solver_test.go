package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jadwalin/internal/schedule"
	"jadwalin/pkg/model"
)

// testProblem is a small instance with a shared student, so all three penalty
// terms can fire during a search.
func testProblem(t *testing.T) *schedule.Problem {
	instance := model.Instance{
		Sections: []model.CourseSection{
			{Code: "IF1101", Enrolled: 40, Credits: 2},
			{Code: "IF1102", Enrolled: 25, Credits: 2},
			{Code: "IF1103", Enrolled: 70, Credits: 1},
		},
		Rooms: []model.Room{
			{Code: "7602", Capacity: 60},
			{Code: "7603", Capacity: 100},
		},
		Students: []model.Student{
			{Id: "13522001", Enrollments: []model.Enrollment{
				{Section: "IF1101", Priority: 1},
				{Section: "IF1102", Priority: 2},
			}},
			{Id: "13522002", Enrollments: []model.Enrollment{
				{Section: "IF1102", Priority: 1},
				{Section: "IF1103", Priority: 2},
			}},
		},
	}
	problem, err := schedule.NewProblem(instance, schedule.SingleBlock)
	assert.NoError(t, err)
	return problem
}

// solvableProblem admits a zero-penalty schedule: two sections, one room that
// seats both, no shared students.
func solvableProblem(t *testing.T) *schedule.Problem {
	instance := model.Instance{
		Sections: []model.CourseSection{
			{Code: "IF1101", Enrolled: 40, Credits: 2},
			{Code: "IF1102", Enrolled: 30, Credits: 2},
		},
		Rooms: []model.Room{{Code: "7602", Capacity: 60}},
	}
	problem, err := schedule.NewProblem(instance, schedule.SingleBlock)
	assert.NoError(t, err)
	return problem
}

// overfullProblem floors the penalty at 30: every room is 30 seats short for
// the first section, so the best reachable schedule scores exactly 30.
func overfullProblem(t *testing.T) *schedule.Problem {
	instance := model.Instance{
		Sections: []model.CourseSection{
			{Code: "IF1101", Enrolled: 60, Credits: 2},
			{Code: "IF1102", Enrolled: 20, Credits: 1},
		},
		Rooms: []model.Room{
			{Code: "7602", Capacity: 30},
			{Code: "7603", Capacity: 30},
		},
	}
	problem, err := schedule.NewProblem(instance, schedule.SingleBlock)
	assert.NoError(t, err)
	return problem
}
