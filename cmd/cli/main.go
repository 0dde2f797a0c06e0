package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"jadwalin/internal/csvio"
	"jadwalin/internal/objective"
	"jadwalin/internal/render"
	"jadwalin/internal/schedule"
	"jadwalin/internal/solver"
	"jadwalin/pkg/model"
)

var (
	validAlgorithms = []string{"hc", "sa", "ga"}
	validVariants   = lo.Map(solver.Variants, func(variant solver.Variant, _ int) string { return string(variant) })
	validPatterns   = []string{"single_block", "split_daily"}
	validInits      = []string{"random", "matched"}

	patterns = map[string]schedule.Pattern{
		"single_block": schedule.SingleBlock,
		"split_daily":  schedule.SplitDaily,
	}
	initializers = map[string]schedule.Initializer{
		"random":  schedule.RandomInitializer{},
		"matched": schedule.MatchedInitializer{},
	}
)

func main() {
	// Input
	filePtr := flag.String("file", "", "Path to the input JSON file")
	sectionsPtr := flag.String("sections", "", "Path to the sections CSV file (used with -rooms and -students instead of -file)")
	roomsPtr := flag.String("rooms", "", "Path to the rooms CSV file")
	studentsPtr := flag.String("students", "", "Path to the students CSV file")

	// Search selection
	algorithmPtr := flag.String("algorithm", "hc", `Search algorithm. Allowed values are:
- "hc" (hill climbing, see -variant),
- "sa" (simulated annealing) and
- "ga" (genetic algorithm), where "hc" is the default`)
	variantPtr := flag.String("variant", string(solver.SteepestAscent), fmt.Sprintf("Hill-climbing variant. Allowed values are: %v", strings.Join(validVariants, ", ")))
	restartVariantPtr := flag.String("restart-variant", string(solver.SteepestAscent), "Inner variant driven by random_restart")
	patternPtr := flag.String("pattern", "single_block", `Meeting footprint of a section's credit value: "single_block" (one meeting of N hours) or "split_daily" (N one-hour meetings)`)
	initPtr := flag.String("init", "random", `Initial-state generator: "random" or "matched" (capacity-aware room matching)`)

	// Budgets and parameters
	maxIterationsPtr := flag.Int("max-iterations", 0, "Maximum iterations (0 keeps the solver default)")
	drawBudgetPtr := flag.Int("draw-budget", 100, "Stochastic hill climbing: neighbor draws per iteration")
	sidewaysPtr := flag.Int("max-sideways", 100, "Sideways-move hill climbing: consecutive equal-penalty moves allowed")
	restartsPtr := flag.Int("max-restarts", 10, "Random-restart hill climbing: restart budget")
	initialTempPtr := flag.Float64("initial-temp", 500, "Simulated annealing: initial temperature")
	coolingRatePtr := flag.Float64("cooling-rate", 0.97, "Simulated annealing: geometric cooling rate, inside (0,1)")
	minTempPtr := flag.Float64("min-temp", 0.01, "Simulated annealing: temperature floor")
	populationPtr := flag.Int("population", 32, "Genetic algorithm: population size")
	generationsPtr := flag.Int("generations", 100, "Genetic algorithm: generation count")
	tournamentPtr := flag.Int("tournament", 2, "Genetic algorithm: tournament size")
	crossoverPtr := flag.Float64("crossover-rate", 0.9, "Genetic algorithm: crossover rate")
	mutationPtr := flag.Float64("mutation-rate", 0.2, "Genetic algorithm: mutation rate")
	elitismPtr := flag.Bool("elitism", true, "Genetic algorithm: carry the generation best into the next population")

	studentWeightPtr := flag.Float64("w-student", 1, "Objective weight of student conflicts")
	roomWeightPtr := flag.Float64("w-room", 1, "Objective weight of room conflicts")
	capacityWeightPtr := flag.Float64("w-capacity", 1, "Objective weight of capacity overflow")

	seedPtr := flag.Int64("seed", 1, "Random seed; the same instance, configuration and seed reproduce the same result")

	// Output
	outPtr := flag.String("out", "", "Write the rendered per-room timetable to this file instead of the standard output")
	icsPtr := flag.String("ics", "", "Write an iCalendar export of the best schedule to this file")
	tracePtr := flag.String("trace", "", "Write the per-iteration penalty trace to this CSV file")
	flag.Parse()

	algorithm := strings.ToLower(*algorithmPtr)
	variant := strings.ToLower(*variantPtr)
	pattern := strings.ToLower(*patternPtr)
	initName := strings.ToLower(*initPtr)

	// Validate arguments
	if !slices.Contains(validAlgorithms, algorithm) {
		log.Fatalf("%v is not a valid algorithm", algorithm)
	} else if !slices.Contains(validVariants, variant) {
		log.Fatalf("%v is not a valid hill-climbing variant", variant)
	} else if !slices.Contains(validPatterns, pattern) {
		log.Fatalf("%v is not a valid meeting pattern", pattern)
	} else if !slices.Contains(validInits, initName) {
		log.Fatalf("%v is not a valid initializer", initName)
	}

	instance := loadInstance(*filePtr, *sectionsPtr, *roomsPtr, *studentsPtr)

	problem, err := schedule.NewProblem(instance, patterns[pattern])
	if err != nil {
		log.Fatalf("cannot build problem: %v", err)
	}

	weights := objective.Weights{
		StudentConflict: *studentWeightPtr,
		RoomConflict:    *roomWeightPtr,
		Capacity:        *capacityWeightPtr,
	}
	rng := rand.New(rand.NewSource(*seedPtr))
	initializer := initializers[initName]

	var search solver.Solver
	switch algorithm {
	case "hc":
		cfg := solver.DefaultHillClimbingConfig()
		cfg.Variant = solver.Variant(variant)
		cfg.RestartVariant = solver.Variant(strings.ToLower(*restartVariantPtr))
		cfg.DrawBudget = *drawBudgetPtr
		cfg.MaxSideways = *sidewaysPtr
		cfg.MaxRestarts = *restartsPtr
		cfg.Weights = weights
		if *maxIterationsPtr > 0 {
			cfg.MaxIterations = *maxIterationsPtr
		}
		hc, err := solver.NewHillClimbing(cfg, rng)
		if err != nil {
			log.Fatalf("invalid configuration: %v", err)
		}
		hc.Init = initializer
		search = hc
	case "sa":
		cfg := solver.DefaultAnnealingConfig()
		cfg.InitialTemp = *initialTempPtr
		cfg.CoolingRate = *coolingRatePtr
		cfg.MinTemp = *minTempPtr
		cfg.Weights = weights
		if *maxIterationsPtr > 0 {
			cfg.MaxIterations = *maxIterationsPtr
		}
		sa, err := solver.NewAnnealing(cfg, rng)
		if err != nil {
			log.Fatalf("invalid configuration: %v", err)
		}
		sa.Init = initializer
		search = sa
	case "ga":
		cfg := solver.DefaultGeneticConfig()
		cfg.Population = *populationPtr
		cfg.TournamentSize = *tournamentPtr
		cfg.CrossoverRate = *crossoverPtr
		cfg.MutationRate = *mutationPtr
		cfg.Elitism = *elitismPtr
		cfg.Weights = weights
		if *maxIterationsPtr > 0 {
			cfg.Generations = *maxIterationsPtr
		} else {
			cfg.Generations = *generationsPtr
		}
		ga, err := solver.NewGenetic(cfg, rng)
		if err != nil {
			log.Fatalf("invalid configuration: %v", err)
		}
		ga.Init = initializer
		search = ga
	}

	result, err := search.Solve(context.Background(), problem)
	if err != nil {
		log.Fatalf("an error occurred during the search: %v", err)
	}

	fmt.Printf("Penalty: %v\n", result.Penalty)
	fmt.Printf("Iterations: %v\n", result.Iterations)
	if result.Restarts > 0 {
		fmt.Printf("Restarts: %v\n", result.Restarts)
	}
	if result.LocalOptima > 0 {
		fmt.Printf("Local optima episodes: %v\n", result.LocalOptima)
	}
	fmt.Printf("Duration: %v\n", result.Duration)

	table := render.WeeklyTables(result.Best)
	if *outPtr == "" {
		fmt.Println(table)
	} else if err := os.WriteFile(*outPtr, []byte(table), 0666); err != nil {
		log.Fatalf("an error occurred while writing to the output file: %v", err)
	}

	if *icsPtr != "" {
		feed := render.Calendar(result.Best, nextMonday(time.Now()))
		if err := os.WriteFile(*icsPtr, []byte(feed), 0666); err != nil {
			log.Fatalf("an error occurred while writing the calendar file: %v", err)
		}
	}

	if *tracePtr != "" {
		if err := writeTrace(*tracePtr, result.Trace); err != nil {
			log.Fatalf("an error occurred while writing the trace file: %v", err)
		}
	}
}

func loadInstance(file, sections, rooms, students string) model.Instance {
	if file == "" && sections == "" {
		log.Fatal("an input file must be specified (-file, or -sections/-rooms/-students)")
	}
	if file != "" {
		instance, err := model.InstanceFromJson(file)
		if err != nil {
			log.Fatalf("cannot parse input file: %v", err)
		}
		return instance
	}
	if rooms == "" || students == "" {
		log.Fatal("-sections requires -rooms and -students")
	}
	instance, err := csvio.LoadInstance(sections, rooms, students)
	if err != nil {
		log.Fatalf("cannot parse input files: %v", err)
	}
	return instance
}

func writeTrace(path string, trace []solver.TracePoint) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"iteration", "penalty", "average", "acceptance"}); err != nil {
		return err
	}
	for _, point := range trace {
		record := []string{
			strconv.Itoa(point.Iteration),
			strconv.FormatFloat(point.Penalty, 'f', -1, 64),
			strconv.FormatFloat(point.Average, 'f', -1, 64),
			strconv.FormatFloat(point.Acceptance, 'f', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// nextMonday returns the first Monday at midnight after now, so calendar
// exports land in the upcoming week.
func nextMonday(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	offset := (int(time.Monday) - int(day.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return day.AddDate(0, 0, offset)
}
