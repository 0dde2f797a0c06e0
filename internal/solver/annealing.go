package solver

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/samber/lo"

	"jadwalin/internal/objective"
	"jadwalin/internal/schedule"
)

// minPositiveTemp guards the Metropolis exponent against division by a
// vanishing temperature: below it the acceptance probability clamps to zero.
const minPositiveTemp = 1e-10

type AnnealingConfig struct {
	InitialTemp   float64
	CoolingRate   float64 // geometric cooling factor, in (0,1)
	MinTemp       float64
	MaxIterations int
	// StuckWindow is the number of iterations without an improved best after
	// which a local-optimum episode is recorded. Diagnostic only; it never
	// terminates the run.
	StuckWindow int
	Weights     objective.Weights
}

func DefaultAnnealingConfig() AnnealingConfig {
	return AnnealingConfig{
		InitialTemp:   500,
		CoolingRate:   0.97,
		MinTemp:       0.01,
		MaxIterations: 5000,
		StuckWindow:   50,
		Weights:       objective.DefaultWeights(),
	}
}

func (c AnnealingConfig) Validate() error {
	if c.InitialTemp <= 0 {
		return fmt.Errorf("InitialTemp must be > 0 (got %v)", c.InitialTemp)
	}
	if c.MinTemp <= 0 {
		return fmt.Errorf("MinTemp must be > 0 (got %v)", c.MinTemp)
	}
	if c.MinTemp >= c.InitialTemp {
		return fmt.Errorf("MinTemp must be < InitialTemp (got %v >= %v)", c.MinTemp, c.InitialTemp)
	}
	if c.CoolingRate <= 0 || c.CoolingRate >= 1 {
		return fmt.Errorf("CoolingRate must be inside (0,1) (got %v)", c.CoolingRate)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("MaxIterations must be > 0 (got %v)", c.MaxIterations)
	}
	if c.StuckWindow <= 0 {
		return fmt.Errorf("StuckWindow must be > 0 (got %v)", c.StuckWindow)
	}
	return c.Weights.Validate()
}

// Annealing drives temperature-scheduled probabilistic acceptance over the
// move space.
type Annealing struct {
	Cfg  AnnealingConfig
	Rng  *rand.Rand
	Init schedule.Initializer
}

func NewAnnealing(cfg AnnealingConfig, rng *rand.Rand) (*Annealing, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("random source is not initialized (nil)")
	}
	return &Annealing{Cfg: cfg, Rng: rng, Init: schedule.RandomInitializer{}}, nil
}

// AcceptanceProbability implements the Metropolis criterion: an improving or
// equal neighbor is always accepted; a worsening neighbor is accepted with
// probability exp(delta/T) where delta = current - candidate < 0.
func AcceptanceProbability(current, candidate, temperature float64) float64 {
	if candidate <= current {
		return 1
	}
	if temperature < minPositiveTemp {
		return 0
	}
	return math.Min(math.Exp((current-candidate)/temperature), 1)
}

func (a *Annealing) Solve(ctx context.Context, problem *schedule.Problem) (Result, error) {
	start := time.Now()

	if err := a.Cfg.Validate(); err != nil {
		return Result{}, err
	}
	if a.Rng == nil {
		return Result{}, fmt.Errorf("random source is not initialized (nil)")
	}
	evaluator, err := objective.NewEvaluator(problem, a.Cfg.Weights)
	if err != nil {
		return Result{}, err
	}

	current := a.Init.NewState(problem, a.Rng)
	currentPenalty := evaluator.Penalty(current)
	best := current.Clone()
	bestPenalty := currentPenalty

	temperature := a.Cfg.InitialTemp
	trace := []TracePoint{{Iteration: 0, Penalty: bestPenalty, Acceptance: 1}}
	bestHistory := []float64{bestPenalty}
	localOptima := 0

	iteration := 0
	for ; iteration < a.Cfg.MaxIterations && temperature > a.Cfg.MinTemp; iteration++ {
		if err := ctx.Err(); err != nil {
			return Result{
				Best:        best,
				Penalty:     bestPenalty,
				Trace:       trace,
				Iterations:  iteration,
				LocalOptima: localOptima,
				Duration:    time.Since(start),
			}, err
		}

		candidate := current.Clone()
		candidate.Apply(current.RandomMove(a.Rng))
		candidatePenalty := evaluator.Penalty(candidate)

		probability := AcceptanceProbability(currentPenalty, candidatePenalty, temperature)
		if a.Rng.Float64() < probability {
			current = candidate
			currentPenalty = candidatePenalty
			if currentPenalty < bestPenalty {
				best = current.Clone()
				bestPenalty = currentPenalty
			}
		}

		trace = append(trace, TracePoint{Iteration: iteration + 1, Penalty: bestPenalty, Acceptance: probability})
		bestHistory = append(bestHistory, bestPenalty)
		temperature *= a.Cfg.CoolingRate

		if (iteration+1)%a.Cfg.StuckWindow == 0 && flatWindow(bestHistory, a.Cfg.StuckWindow) {
			localOptima++
		}
		if bestPenalty == 0 {
			iteration++
			break
		}
	}

	return Result{
		Best:        best,
		Penalty:     bestPenalty,
		Trace:       trace,
		Iterations:  iteration,
		LocalOptima: localOptima,
		Duration:    time.Since(start),
	}, nil
}

// flatWindow reports whether the best penalty stayed flat over the last
// window records.
func flatWindow(history []float64, window int) bool {
	if len(history) < window {
		return false
	}
	recent := history[len(history)-window:]
	return lo.Max(recent)-lo.Min(recent) < 0.01
}
