package solver

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"slices"
	"time"

	"jadwalin/internal/objective"
	"jadwalin/internal/schedule"
)

type Variant string

const (
	SteepestAscent Variant = "steepest_ascent"
	Stochastic     Variant = "stochastic"
	SidewaysMove   Variant = "sideways_move"
	RandomRestart  Variant = "random_restart"
)

var Variants = []Variant{SteepestAscent, Stochastic, SidewaysMove, RandomRestart}

type HillClimbingConfig struct {
	Variant       Variant
	MaxIterations int
	// DrawBudget bounds the random neighbor draws per iteration of the
	// stochastic variant.
	DrawBudget int
	// MaxSideways bounds the consecutive equal-penalty moves of the
	// sideways_move variant.
	MaxSideways int
	MaxRestarts int
	// RestartVariant is the inner variant driven by random_restart.
	RestartVariant Variant
	Weights        objective.Weights
}

func DefaultHillClimbingConfig() HillClimbingConfig {
	return HillClimbingConfig{
		Variant:        SteepestAscent,
		MaxIterations:  1000,
		DrawBudget:     100,
		MaxSideways:    100,
		MaxRestarts:    10,
		RestartVariant: SteepestAscent,
		Weights:        objective.DefaultWeights(),
	}
}

func (c HillClimbingConfig) Validate() error {
	if !slices.Contains(Variants, c.Variant) {
		return fmt.Errorf("%v is not a valid hill-climbing variant", c.Variant)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("MaxIterations must be > 0 (got %v)", c.MaxIterations)
	}
	if c.DrawBudget <= 0 {
		return fmt.Errorf("DrawBudget must be > 0 (got %v)", c.DrawBudget)
	}
	if c.MaxSideways <= 0 {
		return fmt.Errorf("MaxSideways must be > 0 (got %v)", c.MaxSideways)
	}
	if c.Variant == RandomRestart {
		if c.MaxRestarts <= 0 {
			return fmt.Errorf("MaxRestarts must be > 0 (got %v)", c.MaxRestarts)
		}
		if c.RestartVariant == RandomRestart || !slices.Contains(Variants, c.RestartVariant) {
			return fmt.Errorf("%v cannot drive a random restart", c.RestartVariant)
		}
	}
	return c.Weights.Validate()
}

// HillClimbing drives the four hill-climbing variants over the move space.
type HillClimbing struct {
	Cfg  HillClimbingConfig
	Rng  *rand.Rand
	Init schedule.Initializer
}

func NewHillClimbing(cfg HillClimbingConfig, rng *rand.Rand) (*HillClimbing, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("random source is not initialized (nil)")
	}
	return &HillClimbing{Cfg: cfg, Rng: rng, Init: schedule.RandomInitializer{}}, nil
}

func (h *HillClimbing) Solve(ctx context.Context, problem *schedule.Problem) (Result, error) {
	start := time.Now()

	if err := h.Cfg.Validate(); err != nil {
		return Result{}, err
	}
	if h.Rng == nil {
		return Result{}, fmt.Errorf("random source is not initialized (nil)")
	}
	evaluator, err := objective.NewEvaluator(problem, h.Cfg.Weights)
	if err != nil {
		return Result{}, err
	}

	var result Result
	if h.Cfg.Variant == RandomRestart {
		result, err = h.randomRestart(ctx, problem, evaluator)
	} else {
		result, err = h.climb(ctx, h.Init.NewState(problem, h.Rng), evaluator, h.Cfg.Variant)
	}
	result.Duration = time.Since(start)
	return result, err
}

// climb runs one of the three direct variants from the given initial state
// until it improves no further, exhausts the iteration budget, or is
// cancelled.
func (h *HillClimbing) climb(ctx context.Context, initial *schedule.State, evaluator *objective.Evaluator, variant Variant) (Result, error) {
	current := initial
	currentPenalty := evaluator.Penalty(current)
	best := current.Clone()
	bestPenalty := currentPenalty

	trace := []TracePoint{{Iteration: 0, Penalty: currentPenalty}}
	sideways := 0

	for iteration := 1; iteration <= h.Cfg.MaxIterations; iteration++ {
		if err := ctx.Err(); err != nil {
			return Result{Best: best, Penalty: bestPenalty, Trace: trace, Iterations: len(trace) - 1}, err
		}

		stuck := false
		switch variant {
		case Stochastic:
			improved := false
			for draw := 0; draw < h.Cfg.DrawBudget; draw++ {
				undo := current.Apply(current.RandomMove(h.Rng))
				if penalty := evaluator.Penalty(current); penalty < currentPenalty {
					currentPenalty = penalty
					improved = true
					break
				}
				current.Apply(undo)
			}
			stuck = !improved

		default: // SteepestAscent and SidewaysMove evaluate the full neighbor set
			bestMove, bestMovePenalty := bestNeighbor(current, evaluator)
			switch {
			case bestMovePenalty < currentPenalty:
				current.Apply(bestMove)
				currentPenalty = bestMovePenalty
				sideways = 0
			case variant == SidewaysMove && bestMovePenalty == currentPenalty && sideways < h.Cfg.MaxSideways:
				current.Apply(bestMove)
				sideways++
			default:
				stuck = true
			}
		}

		if stuck {
			break
		}
		if currentPenalty < bestPenalty {
			best = current.Clone()
			bestPenalty = currentPenalty
		}
		trace = append(trace, TracePoint{Iteration: iteration, Penalty: currentPenalty})
		if currentPenalty == 0 {
			break
		}
	}

	return Result{Best: best, Penalty: bestPenalty, Trace: trace, Iterations: len(trace) - 1}, nil
}

// bestNeighbor evaluates every neighbor of the state and returns the
// lowest-penalty move along with its penalty. Neighbors are tried in place
// and undone, so the state is unchanged on return.
func bestNeighbor(state *schedule.State, evaluator *objective.Evaluator) (schedule.Move, float64) {
	var bestMove schedule.Move
	bestPenalty := math.Inf(1)
	for _, move := range state.Moves() {
		undo := state.Apply(move)
		if penalty := evaluator.Penalty(state); penalty < bestPenalty {
			bestMove, bestPenalty = move, penalty
		}
		state.Apply(undo)
	}
	return bestMove, bestPenalty
}

// randomRestart repeats the configured inner variant from fresh random
// states, retaining the best result across restarts. The trace holds one
// point per restart: that restart's best penalty.
func (h *HillClimbing) randomRestart(ctx context.Context, problem *schedule.Problem, evaluator *objective.Evaluator) (Result, error) {
	var best *schedule.State
	bestPenalty := math.Inf(1)
	trace := make([]TracePoint, 0, h.Cfg.MaxRestarts)
	iterations := 0

	for restart := 0; restart < h.Cfg.MaxRestarts; restart++ {
		inner, err := h.climb(ctx, h.Init.NewState(problem, h.Rng), evaluator, h.Cfg.RestartVariant)
		iterations += inner.Iterations
		if inner.Penalty < bestPenalty {
			best = inner.Best
			bestPenalty = inner.Penalty
		}
		trace = append(trace, TracePoint{Iteration: restart, Penalty: inner.Penalty})
		if err != nil {
			return Result{Best: best, Penalty: bestPenalty, Trace: trace, Iterations: iterations, Restarts: len(trace)}, err
		}
		if bestPenalty == 0 {
			break
		}
	}

	return Result{Best: best, Penalty: bestPenalty, Trace: trace, Iterations: iterations, Restarts: len(trace)}, nil
}
