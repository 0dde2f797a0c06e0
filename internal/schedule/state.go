package schedule

import "jadwalin/pkg/model"

// Assignment places a meeting in the weekly grid.
type Assignment struct {
	Day   model.Day
	Start int // first occupied hour
	Room  int // index into Problem.Rooms
}

// State is one candidate schedule: an assignment for every meeting of the
// problem. States store and mutate assignments only; scoring lives in the
// objective package. A state is owned by exactly one solver during a run.
type State struct {
	problem *Problem
	Assign  []Assignment // indexed by meeting
}

func (s *State) Problem() *Problem {
	return s.problem
}

func (s *State) Clone() *State {
	assign := make([]Assignment, len(s.Assign))
	copy(assign, s.Assign)
	return &State{problem: s.problem, Assign: assign}
}

// Overlap returns how many hours meetings i and j share on the same day.
func (s *State) Overlap(i, j int) int {
	a, b := s.Assign[i], s.Assign[j]
	if a.Day != b.Day {
		return 0
	}
	start := max(a.Start, b.Start)
	end := min(a.Start+s.problem.Meetings[i].Length, b.Start+s.problem.Meetings[j].Length)
	if end <= start {
		return 0
	}
	return end - start
}

func (p *Problem) emptyState() *State {
	return &State{problem: p, Assign: make([]Assignment, len(p.Meetings))}
}
