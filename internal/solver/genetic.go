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

type GeneticConfig struct {
	Population     int
	Generations    int
	TournamentSize int
	CrossoverRate  float64
	MutationRate   float64
	// Elitism copies the best individual of each generation into the next
	// population; when false the population is fully replaced and the best
	// individual is only tracked in the result.
	Elitism bool
	Weights objective.Weights
}

func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		Population:     32,
		Generations:    100,
		TournamentSize: 2,
		CrossoverRate:  0.9,
		MutationRate:   0.2,
		Elitism:        true,
		Weights:        objective.DefaultWeights(),
	}
}

func (c GeneticConfig) Validate() error {
	if c.Population <= 1 {
		return fmt.Errorf("Population must be > 1 (got %v)", c.Population)
	}
	if c.Generations <= 0 {
		return fmt.Errorf("Generations must be > 0 (got %v)", c.Generations)
	}
	if c.TournamentSize <= 0 || c.TournamentSize > c.Population {
		return fmt.Errorf("TournamentSize must be inside [1, Population] (got %v)", c.TournamentSize)
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf("CrossoverRate must be inside [0,1] (got %v)", c.CrossoverRate)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("MutationRate must be inside [0,1] (got %v)", c.MutationRate)
	}
	return c.Weights.Validate()
}

// Genetic evolves a fixed-size population of states through tournament
// selection, meeting-level crossover and mutation, with generational
// replacement.
type Genetic struct {
	Cfg  GeneticConfig
	Rng  *rand.Rand
	Init schedule.Initializer
}

func NewGenetic(cfg GeneticConfig, rng *rand.Rand) (*Genetic, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("random source is not initialized (nil)")
	}
	return &Genetic{Cfg: cfg, Rng: rng, Init: schedule.RandomInitializer{}}, nil
}

// Fitness is the selection score of a penalty: monotonically decreasing and
// inside (0, 1], so lower penalties select more often.
func Fitness(penalty float64) float64 {
	return 1 / (1 + penalty)
}

func (g *Genetic) Solve(ctx context.Context, problem *schedule.Problem) (Result, error) {
	start := time.Now()

	if err := g.Cfg.Validate(); err != nil {
		return Result{}, err
	}
	if g.Rng == nil {
		return Result{}, fmt.Errorf("random source is not initialized (nil)")
	}
	evaluator, err := objective.NewEvaluator(problem, g.Cfg.Weights)
	if err != nil {
		return Result{}, err
	}

	population := make([]*schedule.State, g.Cfg.Population)
	penalties := make([]float64, g.Cfg.Population)
	for i := range population {
		population[i] = g.Init.NewState(problem, g.Rng)
		penalties[i] = evaluator.Penalty(population[i])
	}

	var best *schedule.State
	bestPenalty := math.Inf(1)
	trace := make([]TracePoint, 0, g.Cfg.Generations)

	generation := 0
	for ; generation < g.Cfg.Generations; generation++ {
		if err := ctx.Err(); err != nil {
			return Result{
				Best:       best,
				Penalty:    bestPenalty,
				Trace:      trace,
				Iterations: generation,
				Duration:   time.Since(start),
			}, err
		}

		eliteIndex := 0
		for i, penalty := range penalties {
			if penalty < penalties[eliteIndex] {
				eliteIndex = i
			}
		}
		if penalties[eliteIndex] < bestPenalty {
			best = population[eliteIndex].Clone()
			bestPenalty = penalties[eliteIndex]
		}
		trace = append(trace, TracePoint{
			Iteration: generation,
			Penalty:   penalties[eliteIndex],
			Average:   lo.Sum(penalties) / float64(len(penalties)),
		})
		if bestPenalty == 0 {
			generation++
			break
		}

		next := make([]*schedule.State, 0, g.Cfg.Population)
		nextPenalties := make([]float64, 0, g.Cfg.Population)
		if g.Cfg.Elitism {
			next = append(next, population[eliteIndex].Clone())
			nextPenalties = append(nextPenalties, penalties[eliteIndex])
		}

		for len(next) < g.Cfg.Population {
			parent1 := g.tournament(population, penalties)
			parent2 := g.tournament(population, penalties)

			child1, child2 := parent1.Clone(), parent2.Clone()
			if g.Rng.Float64() < g.Cfg.CrossoverRate {
				child1, child2 = crossover(parent1, parent2, g.Rng)
			}

			for _, child := range []*schedule.State{child1, child2} {
				if len(next) == g.Cfg.Population {
					break
				}
				if g.Rng.Float64() < g.Cfg.MutationRate {
					mutate(child, g.Rng)
				}
				next = append(next, child)
				nextPenalties = append(nextPenalties, evaluator.Penalty(child))
			}
		}

		population, penalties = next, nextPenalties
	}

	// The last generation never reached the top of the loop, so fold it into
	// the best-ever tracking before returning.
	for i, penalty := range penalties {
		if penalty < bestPenalty {
			best = population[i].Clone()
			bestPenalty = penalty
		}
	}

	return Result{
		Best:       best,
		Penalty:    bestPenalty,
		Trace:      trace,
		Iterations: generation,
		Duration:   time.Since(start),
	}, nil
}

// tournament samples TournamentSize individuals uniformly without
// replacement and keeps the lowest-penalty one.
func (g *Genetic) tournament(population []*schedule.State, penalties []float64) *schedule.State {
	indices := g.Rng.Perm(len(population))[:g.Cfg.TournamentSize]
	best := indices[0]
	for _, index := range indices[1:] {
		if penalties[index] < penalties[best] {
			best = index
		}
	}
	return population[best]
}

// crossover partitions the meeting set in half: each offspring inherits every
// meeting's whole (day, start, room) assignment from one parent or the other,
// so block lengths are never recombined below the meeting level.
func crossover(parent1, parent2 *schedule.State, rng *rand.Rand) (*schedule.State, *schedule.State) {
	child1 := parent1.Clone()
	child2 := parent2.Clone()
	meetings := len(parent1.Assign)
	for _, index := range rng.Perm(meetings)[:meetings/2] {
		child1.Assign[index] = parent2.Assign[index]
		child2.Assign[index] = parent1.Assign[index]
	}
	return child1, child2
}

// mutate applies either a meeting swap or a relocation of one meeting to a
// currently-unoccupied placement.
func mutate(state *schedule.State, rng *rand.Rand) {
	if rng.Intn(2) == 0 {
		if move, ok := state.RandomSwap(rng); ok {
			state.Apply(move)
			return
		}
	}
	state.Apply(state.RandomFreeMove(rng))
}
