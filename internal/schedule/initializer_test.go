package schedule

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"jadwalin/pkg/model"
)

func assertInGrid(t *testing.T, state *State) {
	problem := state.Problem()
	for i, meeting := range problem.Meetings {
		assignment := state.Assign[i]
		assert.GreaterOrEqual(t, int(assignment.Day), 0)
		assert.Less(t, int(assignment.Day), DaysPerWeek)
		assert.GreaterOrEqual(t, assignment.Start, FirstHour)
		assert.LessOrEqual(t, assignment.Start+meeting.Length, LastHour)
		assert.GreaterOrEqual(t, assignment.Room, 0)
		assert.Less(t, assignment.Room, len(problem.Rooms))
	}
}

func TestRandomInitializer(t *testing.T) {
	problem, err := NewProblem(testInstance(), SingleBlock)
	assert.NoError(t, err)

	state := RandomInitializer{}.NewState(problem, rand.New(rand.NewSource(1)))
	assertInGrid(t, state)

	again := RandomInitializer{}.NewState(problem, rand.New(rand.NewSource(1)))
	assert.Equal(t, state.Assign, again.Assign)
}

func TestMatchedInitializer(t *testing.T) {
	problem, err := NewProblem(testInstance(), SingleBlock)
	assert.NoError(t, err)

	state := MatchedInitializer{}.NewState(problem, rand.New(rand.NewSource(1)))
	assertInGrid(t, state)

	again := MatchedInitializer{}.NewState(problem, rand.New(rand.NewSource(1)))
	assert.Equal(t, state.Assign, again.Assign)
}

func TestMatchRooms(t *testing.T) {
	instance := model.Instance{
		Sections: []model.CourseSection{
			{Code: "IF1101", Enrolled: 90, Credits: 2},
			{Code: "IF1102", Enrolled: 20, Credits: 2},
		},
		Rooms: []model.Room{
			{Code: "7602", Capacity: 100},
			{Code: "7603", Capacity: 30},
		},
	}
	problem, err := NewProblem(instance, SingleBlock)
	assert.NoError(t, err)

	// Only the larger room seats the first section, so a largest matching
	// must route it there and leave the smaller room to the second section.
	assert.Equal(t, map[int]int{0: 0, 1: 1}, matchRooms(problem, []int{0, 1}))
}

func TestOverlapComponents(t *testing.T) {
	problem, err := NewProblem(testInstance(), SingleBlock)
	assert.NoError(t, err)

	state := problem.emptyState()
	state.Assign[0] = Assignment{Day: model.Monday, Start: 8, Room: 0}  // 8-11
	state.Assign[1] = Assignment{Day: model.Monday, Start: 10, Room: 0} // 10-12, chains with the first
	state.Assign[2] = Assignment{Day: model.Monday, Start: 13, Room: 0} // disjoint

	components := overlapComponents(state, []int{2, 0, 1})
	assert.Equal(t, [][]int{{0, 1}, {2}}, components)
}
