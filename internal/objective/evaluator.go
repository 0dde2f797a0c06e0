package objective

import (
	"fmt"

	"jadwalin/internal/schedule"
)

// Weights scale the three penalty terms of the objective function.
type Weights struct {
	StudentConflict float64
	RoomConflict    float64
	Capacity        float64
}

func DefaultWeights() Weights {
	return Weights{StudentConflict: 1, RoomConflict: 1, Capacity: 1}
}

func (w Weights) Validate() error {
	if w.StudentConflict < 0 || w.RoomConflict < 0 || w.Capacity < 0 {
		return fmt.Errorf("penalty weights must be non-negative (got %+v)", w)
	}
	return nil
}

// priorityWeights scales student conflicts by priority rank: a conflict on a
// higher-priority course costs the student more. Ranks past the table weigh 1.
var priorityWeights = map[int]float64{
	1: 1.75,
	2: 1.50,
	3: 1.25,
}

func priorityWeight(rank int) float64 {
	if weight, ok := priorityWeights[rank]; ok {
		return weight
	}
	return 1.0
}

// Evaluator maps a state to a scalar penalty. It is deterministic,
// side-effect-free and total over all meetings; zero means a conflict-free,
// capacity-respecting schedule.
type Evaluator struct {
	weights Weights
	problem *schedule.Problem
}

func NewEvaluator(problem *schedule.Problem, weights Weights) (*Evaluator, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{weights: weights, problem: problem}, nil
}

func (e *Evaluator) Penalty(state *schedule.State) float64 {
	return e.weights.StudentConflict*e.studentConflictPenalty(state) +
		e.weights.RoomConflict*e.roomConflictPenalty(state) +
		e.weights.Capacity*e.capacityPenalty(state)
}

// studentConflictPenalty sums, over every student and every overlapping pair
// of their meetings, the overlap hours scaled by the pair's combined priority
// weighting.
func (e *Evaluator) studentConflictPenalty(state *schedule.State) float64 {
	total := 0.0
	for _, meetings := range e.problem.StudentMeetings {
		for i := 0; i < len(meetings); i++ {
			for j := i + 1; j < len(meetings); j++ {
				overlap := state.Overlap(meetings[i].Meeting, meetings[j].Meeting)
				if overlap == 0 {
					continue
				}
				total += float64(overlap) * (priorityWeight(meetings[i].Priority) + priorityWeight(meetings[j].Priority))
			}
		}
	}
	return total
}

// roomConflictPenalty adds one unit per hour two meetings share the same room.
func (e *Evaluator) roomConflictPenalty(state *schedule.State) float64 {
	total := 0.0
	for i := range e.problem.Meetings {
		for j := i + 1; j < len(e.problem.Meetings); j++ {
			if state.Assign[i].Room != state.Assign[j].Room {
				continue
			}
			total += float64(state.Overlap(i, j))
		}
	}
	return total
}

// capacityPenalty adds the seat overflow of every meeting whose room is
// smaller than its section's enrollment.
func (e *Evaluator) capacityPenalty(state *schedule.State) float64 {
	total := 0.0
	for i, meeting := range e.problem.Meetings {
		overflow := e.problem.Sections[meeting.Section].Enrolled - e.problem.Rooms[state.Assign[i].Room].Capacity
		if overflow > 0 {
			total += float64(overflow)
		}
	}
	return total
}
