package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"

	"github.com/samber/lo"

	"jadwalin/internal/schedule"
	"jadwalin/internal/solver"
	"jadwalin/pkg/model"
)

type AlgorithmType int

const (
	steepest AlgorithmType = iota
	stochastic
	sideways
	restart
	annealing
	genetic
)

var algorithmTypes = map[AlgorithmType]string{
	steepest:   "hc-steepest",
	stochastic: "hc-stochastic",
	sideways:   "hc-sideways",
	restart:    "hc-restart",
	annealing:  "sa",
	genetic:    "ga",
}

type BenchmarkResult struct {
	Algorithm   AlgorithmType
	Run         int
	Seed        int64
	Penalty     float64
	Iterations  int
	Restarts    int
	LocalOptima int
	DurationMs  int64
}

func main() {
	filePtr := flag.String("file", "", "Path to the input JSON file")
	runsPtr := flag.Int("runs", 10, "Independent runs per algorithm")
	seedPtr := flag.Int64("seed", 1, "Base seed; run i of an algorithm uses seed + i")
	outPtr := flag.String("out", "benchmark_results.csv", "Path of the CSV report")
	flag.Parse()

	if *filePtr == "" {
		log.Fatal("an input file must be specified via -file")
	}

	instance, err := model.InstanceFromJson(*filePtr)
	if err != nil {
		log.Fatalf("cannot parse input file: %v", err)
	}
	problem, err := schedule.NewProblem(instance, schedule.SingleBlock)
	if err != nil {
		log.Fatalf("cannot build problem: %v", err)
	}

	algorithms := getAlgorithms()
	results := make([]BenchmarkResult, 0, len(algorithms)*(*runsPtr))

	for _, algorithm := range algorithms {
		for run := 0; run < *runsPtr; run++ {
			seed := *seedPtr + int64(run)
			fmt.Printf("Benchmarking algorithm \"%v\" with seed \"%v\"\n", algorithmTypes[algorithm], seed)

			search, err := buildSolver(algorithm, seed)
			if err != nil {
				log.Fatalf("cannot build solver %v: %v", algorithmTypes[algorithm], err)
			}
			result, err := search.Solve(context.Background(), problem)
			if err != nil {
				log.Fatalf("an error occurred during the search with %v: %v", algorithmTypes[algorithm], err)
			}

			results = append(results, BenchmarkResult{
				Algorithm:   algorithm,
				Run:         run,
				Seed:        seed,
				Penalty:     result.Penalty,
				Iterations:  result.Iterations,
				Restarts:    result.Restarts,
				LocalOptima: result.LocalOptima,
				DurationMs:  result.Duration.Milliseconds(),
			})
		}
	}

	report(results)
	toCsv(*outPtr, results)
}

func getAlgorithms() []AlgorithmType {
	return []AlgorithmType{steepest, stochastic, sideways, restart, annealing, genetic}
}

func buildSolver(algorithm AlgorithmType, seed int64) (solver.Solver, error) {
	rng := rand.New(rand.NewSource(seed))
	switch algorithm {
	case annealing:
		return solver.NewAnnealing(solver.DefaultAnnealingConfig(), rng)
	case genetic:
		return solver.NewGenetic(solver.DefaultGeneticConfig(), rng)
	default:
		cfg := solver.DefaultHillClimbingConfig()
		cfg.Variant = map[AlgorithmType]solver.Variant{
			steepest:   solver.SteepestAscent,
			stochastic: solver.Stochastic,
			sideways:   solver.SidewaysMove,
			restart:    solver.RandomRestart,
		}[algorithm]
		return solver.NewHillClimbing(cfg, rng)
	}
}

func report(results []BenchmarkResult) {
	for _, algorithm := range getAlgorithms() {
		runs := lo.Filter(results, func(result BenchmarkResult, _ int) bool {
			return result.Algorithm == algorithm
		})
		penalties := lo.Map(runs, func(result BenchmarkResult, _ int) float64 {
			return result.Penalty
		})
		durations := lo.Map(runs, func(result BenchmarkResult, _ int) float64 {
			return float64(result.DurationMs)
		})
		fmt.Printf(
			"%v: penalty %.2f +- %.2f (best %.2f), duration %.0fms\n",
			algorithmTypes[algorithm],
			mean(penalties),
			std(penalties),
			lo.Min(penalties),
			mean(durations),
		)
	}
}

func toCsv(path string, results []BenchmarkResult) {
	file, err := os.Create(path)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Algorithm", "Run", "Seed", "Penalty", "Iterations", "Restarts", "Local-Optima", "Duration(ms)"}
	if err := writer.Write(header); err != nil {
		log.Panicf("cannot write CSV header: %v", err)
	}

	for _, result := range results {
		record := []string{
			algorithmTypes[result.Algorithm],
			fmt.Sprintf("%d", result.Run),
			fmt.Sprintf("%d", result.Seed),
			fmt.Sprintf("%.4f", result.Penalty),
			fmt.Sprintf("%d", result.Iterations),
			fmt.Sprintf("%d", result.Restarts),
			fmt.Sprintf("%d", result.LocalOptima),
			fmt.Sprintf("%d", result.DurationMs),
		}
		if err := writer.Write(record); err != nil {
			log.Panicf("cannot write CSV record: %v", err)
		}
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return lo.Sum(values) / float64(len(values))
}

func std(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	average := mean(values)
	variance := lo.SumBy(values, func(value float64) float64 {
		return (value - average) * (value - average)
	}) / float64(len(values)-1)
	return math.Sqrt(variance)
}
