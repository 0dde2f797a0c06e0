package schedule

import (
	"math/rand"
	"sort"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"

	"jadwalin/pkg/model"
)

// Initializer produces a fresh starting state for a solver run.
type Initializer interface {
	NewState(problem *Problem, rng *rand.Rand) *State
}

// RandomInitializer places every meeting uniformly at random in the grid.
type RandomInitializer struct{}

func (RandomInitializer) NewState(problem *Problem, rng *rand.Rand) *State {
	state := problem.emptyState()
	for i, meeting := range problem.Meetings {
		state.Assign[i] = problem.positionAt(meeting.Length, rng.Intn(problem.positionCount(meeting.Length)))
	}
	return state
}

// MatchedInitializer places meetings in time at random, then reassigns rooms
// day by day with a maximum bipartite matching on capacity fit, so meetings
// whose blocks overlap start in distinct rooms that seat their sections
// whenever the room pool allows it. Meetings left out of the matching keep
// their random room.
type MatchedInitializer struct{}

func (MatchedInitializer) NewState(problem *Problem, rng *rand.Rand) *State {
	state := RandomInitializer{}.NewState(problem, rng)

	for day := range DaysPerWeek {
		var onDay []int
		for i := range problem.Meetings {
			if state.Assign[i].Day == model.Day(day) {
				onDay = append(onDay, i)
			}
		}

		for _, component := range overlapComponents(state, onDay) {
			for meeting, room := range matchRooms(problem, component) {
				state.Assign[meeting].Room = room
			}
		}
	}

	return state
}

// overlapComponents groups same-day meetings into runs of transitively
// overlapping blocks, via a sweep over start hours.
func overlapComponents(state *State, meetings []int) [][]int {
	sort.Slice(meetings, func(i, j int) bool {
		return state.Assign[meetings[i]].Start < state.Assign[meetings[j]].Start
	})

	var components [][]int
	end := 0
	for _, meeting := range meetings {
		start := state.Assign[meeting].Start
		if len(components) == 0 || start >= end {
			components = append(components, nil)
			end = start
		}
		last := len(components) - 1
		components[last] = append(components[last], meeting)
		end = max(end, start+state.problem.Meetings[meeting].Length)
	}
	return components
}

// matchRooms computes a largest matching between the meetings and the rooms
// that seat their sections.
func matchRooms(problem *Problem, meetings []int) map[int]int {
	fits := func(meetingAny any, roomAny any) (bool, error) {
		meeting := meetingAny.(int)
		room := roomAny.(int)
		return problem.Rooms[room].Capacity >= problem.Sections[problem.Meetings[meeting].Section].Enrolled, nil
	}

	meetingsAny := lo.Map(meetings, func(meeting int, _ int) any { return meeting })
	roomsAny := lo.Map(lo.Range(len(problem.Rooms)), func(room int, _ int) any { return room })

	graph, err := bipartitegraph.NewBipartiteGraph(meetingsAny, roomsAny, fits)
	if err != nil {
		return nil
	}

	assignment := make(map[int]int)
	for _, edge := range graph.LargestMatching() {
		assignment[meetings[edge.Node1]] = edge.Node2 - len(meetings)
	}
	return assignment
}
