package objective

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"jadwalin/internal/schedule"
	"jadwalin/pkg/model"
)

func testProblem(t *testing.T) *schedule.Problem {
	instance := model.Instance{
		Sections: []model.CourseSection{
			{Code: "IF1101", Enrolled: 40, Credits: 1},
			{Code: "IF1102", Enrolled: 25, Credits: 1},
		},
		Rooms: []model.Room{
			{Code: "7602", Capacity: 60},
			{Code: "7603", Capacity: 60},
		},
		Students: []model.Student{
			{Id: "13522001", Enrollments: []model.Enrollment{
				{Section: "IF1101", Priority: 1},
				{Section: "IF1102", Priority: 2},
			}},
		},
	}
	problem, err := schedule.NewProblem(instance, schedule.SingleBlock)
	assert.NoError(t, err)
	return problem
}

func TestWeightsValidate(t *testing.T) {
	assert.NoError(t, DefaultWeights().Validate())
	assert.Error(t, Weights{StudentConflict: -1, RoomConflict: 1, Capacity: 1}.Validate())
	assert.Error(t, Weights{StudentConflict: 1, RoomConflict: -1, Capacity: 1}.Validate())
	assert.Error(t, Weights{StudentConflict: 1, RoomConflict: 1, Capacity: -1}.Validate())
}

func TestPriorityWeight(t *testing.T) {
	assert.Equal(t, 1.75, priorityWeight(1))
	assert.Equal(t, 1.50, priorityWeight(2))
	assert.Equal(t, 1.25, priorityWeight(3))
	assert.Equal(t, 1.0, priorityWeight(4))
	assert.Equal(t, 1.0, priorityWeight(100))
}

func TestStudentConflictPenalty(t *testing.T) {
	problem := testProblem(t)
	evaluator, err := NewEvaluator(problem, DefaultWeights())
	assert.NoError(t, err)

	state := schedule.RandomInitializer{}.NewState(problem, rand.New(rand.NewSource(1)))

	// One shared hour between the student's rank-1 and rank-2 sections,
	// distinct rooms so only the student term contributes.
	state.Assign[0] = schedule.Assignment{Day: model.Monday, Start: 9, Room: 0}
	state.Assign[1] = schedule.Assignment{Day: model.Monday, Start: 9, Room: 1}
	assert.InDelta(t, 1.75+1.50, evaluator.Penalty(state), 1e-9)

	// Disjoint hours clear the penalty entirely.
	state.Assign[1] = schedule.Assignment{Day: model.Monday, Start: 11, Room: 1}
	assert.Equal(t, 0.0, evaluator.Penalty(state))
}

func TestRoomConflictPenalty(t *testing.T) {
	problem := testProblem(t)
	evaluator, err := NewEvaluator(problem, Weights{RoomConflict: 1})
	assert.NoError(t, err)

	state := schedule.RandomInitializer{}.NewState(problem, rand.New(rand.NewSource(1)))
	state.Assign[0] = schedule.Assignment{Day: model.Tuesday, Start: 9, Room: 0}
	state.Assign[1] = schedule.Assignment{Day: model.Tuesday, Start: 9, Room: 0}
	assert.Equal(t, 1.0, evaluator.Penalty(state))

	state.Assign[1].Room = 1
	assert.Equal(t, 0.0, evaluator.Penalty(state))
}

func TestCapacityPenalty(t *testing.T) {
	instance := model.Instance{
		Sections: []model.CourseSection{
			{Code: "IF1101", Enrolled: 60, Credits: 1},
			{Code: "IF1102", Enrolled: 20, Credits: 1},
		},
		Rooms: []model.Room{
			{Code: "7602", Capacity: 30},
			{Code: "7603", Capacity: 30},
		},
	}
	problem, err := schedule.NewProblem(instance, schedule.SingleBlock)
	assert.NoError(t, err)
	evaluator, err := NewEvaluator(problem, Weights{Capacity: 1})
	assert.NoError(t, err)

	// Every room is 30 seats short for the first section, so the overflow
	// term is the same no matter where the meetings land.
	rng := rand.New(rand.NewSource(1))
	for range 50 {
		state := schedule.RandomInitializer{}.NewState(problem, rng)
		assert.Equal(t, 30.0, evaluator.Penalty(state))
	}
}

func TestPenaltyDeterminism(t *testing.T) {
	problem := testProblem(t)
	evaluator, err := NewEvaluator(problem, DefaultWeights())
	assert.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	for range 50 {
		state := schedule.RandomInitializer{}.NewState(problem, rng)
		penalty := evaluator.Penalty(state)
		assert.GreaterOrEqual(t, penalty, 0.0)
		assert.Equal(t, penalty, evaluator.Penalty(state))
	}
}

func TestWeightScaling(t *testing.T) {
	problem := testProblem(t)
	state := schedule.RandomInitializer{}.NewState(problem, rand.New(rand.NewSource(1)))
	state.Assign[0] = schedule.Assignment{Day: model.Monday, Start: 9, Room: 0}
	state.Assign[1] = schedule.Assignment{Day: model.Monday, Start: 9, Room: 0}

	unit, err := NewEvaluator(problem, DefaultWeights())
	assert.NoError(t, err)
	doubled, err := NewEvaluator(problem, Weights{StudentConflict: 2, RoomConflict: 2, Capacity: 2})
	assert.NoError(t, err)

	assert.InDelta(t, 2*unit.Penalty(state), doubled.Penalty(state), 1e-9)
}

func TestNewEvaluatorRejectsInvalidWeights(t *testing.T) {
	_, err := NewEvaluator(testProblem(t), Weights{StudentConflict: -1})
	assert.Error(t, err)
}
