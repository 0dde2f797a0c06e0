package schedule

import "math/rand"

type MoveKind int

const (
	// Relocate changes one meeting's (day, start, room) placement.
	Relocate MoveKind = iota
	// Swap exchanges the placements of two meetings.
	Swap
)

// Move is one neighbor-generating mutation of a state.
type Move struct {
	Kind    MoveKind
	Meeting int
	Other   int        // Swap only: the second meeting
	To      Assignment // Relocate only: the destination
}

// Apply mutates the state and returns the inverse move.
func (s *State) Apply(move Move) Move {
	if move.Kind == Swap {
		s.Assign[move.Meeting], s.Assign[move.Other] = s.Assign[move.Other], s.Assign[move.Meeting]
		return move
	}
	undo := Move{Kind: Relocate, Meeting: move.Meeting, To: s.Assign[move.Meeting]}
	s.Assign[move.Meeting] = move.To
	return undo
}

// Moves enumerates every legal move from the current state: all relocations
// of each meeting to a different placement, and all swaps of two meetings
// whose block lengths fit both target positions. The slice is recomputed
// fresh on every call.
func (s *State) Moves() []Move {
	problem := s.problem
	moves := make([]Move, 0, len(problem.Meetings)*problem.positionCount(1))

	for i, meeting := range problem.Meetings {
		count := problem.positionCount(meeting.Length)
		for index := range count {
			to := problem.positionAt(meeting.Length, index)
			if to == s.Assign[i] {
				continue
			}
			moves = append(moves, Move{Kind: Relocate, Meeting: i, To: to})
		}
	}

	for i := range problem.Meetings {
		for j := i + 1; j < len(problem.Meetings); j++ {
			if !s.swapFits(i, j) || s.Assign[i] == s.Assign[j] {
				continue
			}
			moves = append(moves, Move{Kind: Swap, Meeting: i, Other: j})
		}
	}

	return moves
}

// swapFits reports whether exchanging the placements of meetings i and j
// keeps both blocks inside the grid.
func (s *State) swapFits(i, j int) bool {
	return s.Assign[j].Start+s.problem.Meetings[i].Length <= LastHour &&
		s.Assign[i].Start+s.problem.Meetings[j].Length <= LastHour
}

// RandomMove draws one move uniformly from the move space without
// materializing it. Draws that land on an infeasible or no-op swap are
// redrawn; relocations are always available, so the loop terminates.
func (s *State) RandomMove(rng *rand.Rand) Move {
	problem := s.problem

	relocations := 0
	for _, meeting := range problem.Meetings {
		relocations += problem.positionCount(meeting.Length) - 1
	}
	pairs := len(problem.Meetings) * (len(problem.Meetings) - 1) / 2

	for {
		draw := rng.Intn(relocations + pairs)

		if draw < relocations {
			for i, meeting := range problem.Meetings {
				count := problem.positionCount(meeting.Length) - 1
				if draw >= count {
					draw -= count
					continue
				}
				// Skip over the current placement to keep the draw uniform
				// among the count-1 real relocations.
				if draw >= problem.positionIndex(meeting.Length, s.Assign[i]) {
					draw++
				}
				return Move{Kind: Relocate, Meeting: i, To: problem.positionAt(meeting.Length, draw)}
			}
		}

		draw -= relocations
		i := 0
		for draw >= len(problem.Meetings)-1-i {
			draw -= len(problem.Meetings) - 1 - i
			i++
		}
		j := i + 1 + draw
		if s.swapFits(i, j) && s.Assign[i] != s.Assign[j] {
			return Move{Kind: Swap, Meeting: i, Other: j}
		}
	}
}

// RandomSwap draws a random feasible swap of two meetings. The second return
// is false when no feasible swap was drawn within the attempt budget.
func (s *State) RandomSwap(rng *rand.Rand) (Move, bool) {
	meetings := len(s.problem.Meetings)
	if meetings < 2 {
		return Move{}, false
	}
	for range 32 {
		i := rng.Intn(meetings)
		j := rng.Intn(meetings - 1)
		if j >= i {
			j++
		}
		if s.swapFits(i, j) && s.Assign[i] != s.Assign[j] {
			return Move{Kind: Swap, Meeting: min(i, j), Other: max(i, j)}, true
		}
	}
	return Move{}, false
}

// RandomFreeMove relocates a random meeting to a placement whose room is not
// occupied by any other meeting during the block. It falls back to a plain
// random relocation when no free placement is drawn within the attempt
// budget.
func (s *State) RandomFreeMove(rng *rand.Rand) Move {
	problem := s.problem
	meeting := rng.Intn(len(problem.Meetings))
	length := problem.Meetings[meeting].Length

	for range 64 {
		to := problem.positionAt(length, rng.Intn(problem.positionCount(length)))
		if s.roomFree(meeting, to, length) {
			return Move{Kind: Relocate, Meeting: meeting, To: to}
		}
	}
	return Move{Kind: Relocate, Meeting: meeting, To: problem.positionAt(length, rng.Intn(problem.positionCount(length)))}
}

// roomFree reports whether the placement's room is unoccupied during the
// block, ignoring the meeting being relocated.
func (s *State) roomFree(meeting int, at Assignment, length int) bool {
	for j := range s.problem.Meetings {
		if j == meeting || s.Assign[j].Room != at.Room || s.Assign[j].Day != at.Day {
			continue
		}
		if at.Start < s.Assign[j].Start+s.problem.Meetings[j].Length && s.Assign[j].Start < at.Start+length {
			return false
		}
	}
	return true
}
