package solver

import (
	"context"
	"time"

	"jadwalin/internal/schedule"
)

// TracePoint is one record of the per-iteration search trace, suitable for
// downstream plotting.
type TracePoint struct {
	Iteration  int
	Penalty    float64 // current penalty (per-restart best for random restarts, generation best for the GA)
	Average    float64 // genetic algorithm only: mean population penalty
	Acceptance float64 // simulated annealing only: acceptance probability of the drawn neighbor
}

// Result is the outcome of one solver run. Ownership of Best transfers to
// the caller; the solver keeps no reference to it.
type Result struct {
	Best        *schedule.State
	Penalty     float64
	Trace       []TracePoint
	Iterations  int
	Restarts    int // hill climbing with random restarts
	LocalOptima int // simulated annealing: flat-best windows observed
	Duration    time.Duration
}

// Solver runs one search over the problem's state space. Implementations are
// single-threaded and poll ctx once per iteration, so an external driver can
// stop a long run between steps.
type Solver interface {
	Solve(ctx context.Context, problem *schedule.Problem) (Result, error)
}
