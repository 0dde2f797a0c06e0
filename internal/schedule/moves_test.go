package schedule

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func testState(t *testing.T, seed int64) (*State, *rand.Rand) {
	problem, err := NewProblem(testInstance(), SingleBlock)
	assert.NoError(t, err)

	rng := rand.New(rand.NewSource(seed))
	return RandomInitializer{}.NewState(problem, rng), rng
}

func assertLegal(t *testing.T, state *State, move Move) {
	problem := state.Problem()
	switch move.Kind {
	case Relocate:
		length := problem.Meetings[move.Meeting].Length
		assert.GreaterOrEqual(t, int(move.To.Day), 0)
		assert.Less(t, int(move.To.Day), DaysPerWeek)
		assert.GreaterOrEqual(t, move.To.Start, FirstHour)
		assert.LessOrEqual(t, move.To.Start+length, LastHour)
		assert.GreaterOrEqual(t, move.To.Room, 0)
		assert.Less(t, move.To.Room, len(problem.Rooms))
		assert.NotEqual(t, state.Assign[move.Meeting], move.To)
	case Swap:
		assert.NotEqual(t, move.Meeting, move.Other)
		assert.True(t, state.swapFits(move.Meeting, move.Other))
		assert.NotEqual(t, state.Assign[move.Meeting], state.Assign[move.Other])
	}
}

func TestMoves(t *testing.T) {
	state, _ := testState(t, 1)
	problem := state.Problem()
	moves := state.Moves()

	for _, move := range moves {
		assertLegal(t, state, move)
	}

	relocations := lo.CountBy(moves, func(move Move) bool { return move.Kind == Relocate })
	expected := lo.SumBy(problem.Meetings, func(meeting Meeting) int {
		return problem.positionCount(meeting.Length) - 1
	})
	assert.Equal(t, expected, relocations)
}

func TestApplyUndo(t *testing.T) {
	state, rng := testState(t, 2)
	original := slices.Clone(state.Assign)

	for range 200 {
		move := state.RandomMove(rng)
		undo := state.Apply(move)
		state.Apply(undo)
		assert.Equal(t, original, state.Assign)
	}
}

func TestRandomMove(t *testing.T) {
	state, rng := testState(t, 3)

	for range 500 {
		move := state.RandomMove(rng)
		assertLegal(t, state, move)
	}
}

func TestRandomSwap(t *testing.T) {
	t.Run("Draws a feasible swap", func(t *testing.T) {
		state, rng := testState(t, 4)
		for range 100 {
			move, ok := state.RandomSwap(rng)
			if !ok {
				continue
			}
			assert.Equal(t, Swap, move.Kind)
			assertLegal(t, state, move)
		}
	})

	t.Run("Fails on a single meeting", func(t *testing.T) {
		instance := testInstance()
		instance.Sections = instance.Sections[:1]
		instance.Students = nil
		problem, err := NewProblem(instance, SingleBlock)
		assert.NoError(t, err)

		rng := rand.New(rand.NewSource(1))
		state := RandomInitializer{}.NewState(problem, rng)
		_, ok := state.RandomSwap(rng)
		assert.False(t, ok)
	})
}

func TestRandomFreeMove(t *testing.T) {
	state, rng := testState(t, 5)

	for range 200 {
		move := state.RandomFreeMove(rng)
		assert.Equal(t, Relocate, move.Kind)

		length := state.Problem().Meetings[move.Meeting].Length
		assert.GreaterOrEqual(t, move.To.Start, FirstHour)
		assert.LessOrEqual(t, move.To.Start+length, LastHour)
		assert.Less(t, move.To.Room, len(state.Problem().Rooms))
	}
}
