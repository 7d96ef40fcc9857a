package solver

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/jobshop/core/graph"
	"github.com/kilianp07/jobshop/core/logger"
	"github.com/kilianp07/jobshop/core/model"
)

// GeneticConfig defines the genetic optimizer parameters. A zero
// PopulationSize, Generations or MutationRate selects the default;
// a mutation-free run is therefore not expressible, the closest is a
// rate small enough to never trigger on the generation count used.
type GeneticConfig struct {
	PopulationSize int     `json:"population_size" yaml:"population_size"`
	Generations    int     `json:"generations" yaml:"generations"`
	MutationRate   float64 `json:"mutation_rate" yaml:"mutation_rate"`
	// Seed initialises the random generator so runs are reproducible.
	Seed int64 `json:"seed" yaml:"seed"`
}

// SetDefaults applies sane defaults.
func (c *GeneticConfig) SetDefaults() {
	if c.PopulationSize == 0 {
		c.PopulationSize = 50
	}
	if c.Generations == 0 {
		c.Generations = 100
	}
	if c.MutationRate == 0 {
		c.MutationRate = 0.1
	}
}

// Validate checks the parameter ranges.
func (c GeneticConfig) Validate() error {
	if c.PopulationSize < 4 {
		return fmt.Errorf("population_size must be at least 4, got %d", c.PopulationSize)
	}
	if c.Generations < 1 {
		return fmt.Errorf("generations must be positive, got %d", c.Generations)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("mutation_rate must be in [0,1], got %g", c.MutationRate)
	}
	return nil
}

// GenerationStats summarises one generation of the search.
type GenerationStats struct {
	Generation    int
	Best          float64 // best fitness in this generation's population
	BestSeen      float64 // best fitness observed so far, non-increasing
	MeanFeasible  float64 // mean fitness over feasible individuals, NaN when none
	FeasibleCount int
}

// GeneticResult is the outcome of a genetic optimization run.
type GeneticResult struct {
	BestOrder []string
	Schedule  model.Schedule
	Stats     []GenerationStats
}

// Genetic searches the space of job orderings with an elitist genetic
// algorithm: truncation selection to the top half, order-preserving
// cut-point crossover and swap mutation, for a fixed number of
// generations. Individuals violating precedence are scored +Inf and
// dominated during selection; they only surface as ErrAllInfeasible
// when the whole final population is infeasible. A cyclic dependency
// set refuses the run with graph.ErrCycleDetected.
func (e *Engine) Genetic(cfg GeneticConfig) (*GeneticResult, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := e.graph.TopologicalOrder(); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(e.jobs))
	for _, j := range e.jobs {
		ids = append(ids, j.ID)
	}
	opt := &geneticOptimizer{
		cfg:  cfg,
		jobs: e.byID,
		ids:  ids,
		g:    e.graph,
		rng:  rand.New(rand.NewSource(cfg.Seed)),
		log:  e.log,
	}
	best, stats, err := opt.optimize()
	if err != nil {
		return nil, err
	}
	starts, makespan, _ := Evaluate(e.byID, e.graph, best)
	return &GeneticResult{
		BestOrder: best,
		Schedule:  e.buildSchedule(starts, makespan),
		Stats:     stats,
	}, nil
}

type geneticOptimizer struct {
	cfg  GeneticConfig
	jobs map[string]model.Job
	ids  []string
	g    *graph.Graph
	rng  *rand.Rand
	log  logger.Logger
}

func (o *geneticOptimizer) optimize() ([]string, []GenerationStats, error) {
	population := make([][]string, o.cfg.PopulationSize)
	for i := range population {
		population[i] = o.randomPermutation()
	}

	stats := make([]GenerationStats, 0, o.cfg.Generations)
	bestSeen := math.Inf(1)

	for gen := 0; gen < o.cfg.Generations; gen++ {
		fitness := o.fitness(population)
		gs := summarize(gen, fitness, &bestSeen)
		stats = append(stats, gs)
		o.log.Debugw("generation evaluated", map[string]any{
			"generation": gs.Generation,
			"best":       gs.Best,
			"best_seen":  gs.BestSeen,
			"feasible":   gs.FeasibleCount,
		})

		survivors := o.selectSurvivors(population, fitness)
		children := make([][]string, 0, o.cfg.PopulationSize)
		for len(children) < o.cfg.PopulationSize {
			p1, p2 := o.pickParents(survivors)
			child := o.crossover(p1, p2)
			o.mutate(child)
			children = append(children, child)
		}
		population = children
	}

	fitness := o.fitness(population)
	best := -1
	for i, f := range fitness {
		if !math.IsInf(f, 1) && (best < 0 || f < fitness[best]) {
			best = i
		}
	}
	if best < 0 {
		return nil, stats, ErrAllInfeasible
	}
	return population[best], stats, nil
}

func (o *geneticOptimizer) randomPermutation() []string {
	perm := o.rng.Perm(len(o.ids))
	individual := make([]string, len(o.ids))
	for i, p := range perm {
		individual[i] = o.ids[p]
	}
	return individual
}

func (o *geneticOptimizer) fitness(population [][]string) []float64 {
	fitness := make([]float64, len(population))
	for i, individual := range population {
		if _, makespan, ok := Evaluate(o.jobs, o.g, individual); ok {
			fitness[i] = float64(makespan)
		} else {
			fitness[i] = math.Inf(1)
		}
	}
	return fitness
}

// selectSurvivors keeps the better half of the population, ranked
// ascending by fitness.
func (o *geneticOptimizer) selectSurvivors(population [][]string, fitness []float64) [][]string {
	idx := make([]int, len(population))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return fitness[idx[a]] < fitness[idx[b]] })
	keep := len(population) / 2
	survivors := make([][]string, keep)
	for i := 0; i < keep; i++ {
		survivors[i] = population[idx[i]]
	}
	return survivors
}

// pickParents draws two distinct parents uniformly from the survivors.
func (o *geneticOptimizer) pickParents(survivors [][]string) ([]string, []string) {
	i := o.rng.Intn(len(survivors))
	j := o.rng.Intn(len(survivors) - 1)
	if j >= i {
		j++
	}
	return survivors[i], survivors[j]
}

// crossover builds a child from the first parent's prefix up to a
// random cut point, completed with the second parent's genes in their
// relative order, skipping those already present. The child is always
// a permutation of the full job id set.
func (o *geneticOptimizer) crossover(p1, p2 []string) []string {
	n := len(p1)
	if n < 2 {
		child := make([]string, n)
		copy(child, p1)
		return child
	}
	cut := 1 + o.rng.Intn(n-1)
	child := make([]string, 0, n)
	seen := make(map[string]struct{}, n)
	for _, id := range p1[:cut] {
		child = append(child, id)
		seen[id] = struct{}{}
	}
	for _, id := range p2 {
		if _, ok := seen[id]; !ok {
			child = append(child, id)
		}
	}
	return child
}

// mutate swaps two distinct positions with probability MutationRate.
func (o *geneticOptimizer) mutate(individual []string) {
	n := len(individual)
	if n < 2 || o.rng.Float64() >= o.cfg.MutationRate {
		return
	}
	i := o.rng.Intn(n)
	j := o.rng.Intn(n - 1)
	if j >= i {
		j++
	}
	individual[i], individual[j] = individual[j], individual[i]
}

func summarize(gen int, fitness []float64, bestSeen *float64) GenerationStats {
	best := math.Inf(1)
	feasible := make([]float64, 0, len(fitness))
	for _, f := range fitness {
		if f < best {
			best = f
		}
		if !math.IsInf(f, 1) {
			feasible = append(feasible, f)
		}
	}
	if best < *bestSeen {
		*bestSeen = best
	}
	mean := math.NaN()
	if len(feasible) > 0 {
		mean = stat.Mean(feasible, nil)
	}
	return GenerationStats{
		Generation:    gen,
		Best:          best,
		BestSeen:      *bestSeen,
		MeanFeasible:  mean,
		FeasibleCount: len(feasible),
	}
}
