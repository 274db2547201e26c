// Package ga implements a genetic-algorithm solver for docket selection.
//
// Individuals are fixed-length bit-vectors over the candidate pool. All
// operators are feasibility-preserving: initialization, crossover and
// mutation only ever set a bit when the case still fits the remaining
// capacity, and fitness assigns 0 to any infeasible individual rather
// than a proportional penalty. Combined with best-ever elitism this
// guarantees the returned selection is feasible and that best-ever
// fitness never regresses across generations, but there is no
// optimality guarantee.
//
// The solver owns a seeded rand.Rand instance; identical inputs and seed
// reproduce identical output.
package ga

import (
	"context"
	"math"
	"math/rand"

	"github.com/fiscalworks/DOCKET/internal/knapsack"
)

// initInclusionProb is the probability with which the seeded
// initialization includes each still-fitting case, offered in descending
// value/cost order. It biases the initial population toward efficient,
// feasible individuals instead of uniform bit-strings.
const initInclusionProb = 0.3

// tournamentSize is the sample size for parent selection, capped at the
// population size.
const tournamentSize = 3

// Config holds the GA hyperparameters for a solve.
type Config struct {
	// Capacity is the effort budget in hours.
	Capacity float64
	// PopulationSize is the number of individuals per generation.
	PopulationSize int
	// Generations is the exact number of iterations to run; there is no
	// convergence-based early stop.
	Generations int
	// CrossoverRate is the probability of recombining a parent pair.
	CrossoverRate float64
	// MutationRate is the per-gene flip probability.
	MutationRate float64
	// Seed seeds the solver-owned random number generator.
	Seed int64
}

// Solver is the genetic-algorithm solver. It is not safe for concurrent
// Solve calls; create one solver per run.
type Solver struct {
	cfg Config

	// best-ever fitness after each generation, recorded for inspection.
	history []float64
}

// New creates a GA solver with the given hyperparameters.
func New(cfg Config) *Solver {
	return &Solver{cfg: cfg}
}

// Name identifies the algorithm in summaries and metrics.
func (s *Solver) Name() string {
	return "ga"
}

// BestFitnessHistory returns the best-ever fitness recorded after each
// generation of the last Solve call. Elitism makes the sequence
// non-decreasing.
func (s *Solver) BestFitnessHistory() []float64 {
	return append([]float64(nil), s.history...)
}

// individual is a candidate selection with its running totals cached.
// cost and value are maintained incrementally by every operator, so
// fitness is O(1).
type individual struct {
	genes []bool
	cost  float64
	value float64
}

func (ind *individual) clone() *individual {
	return &individual{
		genes: append([]bool(nil), ind.genes...),
		cost:  ind.cost,
		value: ind.value,
	}
}

// fitness is the total value when feasible and 0 otherwise. Operators
// never construct infeasible individuals, but the rule stands on its
// own: an over-budget individual is worthless, which is what makes
// elitism monotonic.
func (ind *individual) fitness(capacity float64) float64 {
	if ind.cost > capacity {
		return 0
	}
	return ind.value
}

// Solve runs the configured number of generations and returns the set
// bits of the best-ever individual in ascending index order. A capacity,
// population size or generation count of zero or less short-circuits to
// an empty selection without error. Cancellation is checked once per
// generation.
func (s *Solver) Solve(ctx context.Context, in *knapsack.Instance) (knapsack.Selection, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.validateRates(); err != nil {
		return nil, err
	}
	s.history = nil
	if s.cfg.Capacity <= 0 || s.cfg.PopulationSize <= 0 || s.cfg.Generations <= 0 {
		return knapsack.Selection{}, nil
	}

	rng := rand.New(rand.NewSource(s.cfg.Seed))
	order := knapsack.RankByRatio(in)
	popSize := s.cfg.PopulationSize

	population := make([]*individual, popSize)
	for i := range population {
		population[i] = s.newIndividual(in, order, rng)
	}

	bestEver := s.fittest(population).clone()

	for g := 0; g < s.cfg.Generations; g++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		parents := s.tournament(population, rng)
		next := s.breed(in, parents, rng)

		// Elitism: a strictly better generation best replaces the
		// incumbent; otherwise the incumbent overwrites the generation's
		// worst so best-ever fitness never decreases.
		candidate := s.fittest(next)
		if candidate.fitness(s.cfg.Capacity) > bestEver.fitness(s.cfg.Capacity) {
			bestEver = candidate.clone()
		} else {
			next[s.weakestIndex(next)] = bestEver.clone()
		}
		population = next
		s.history = append(s.history, bestEver.fitness(s.cfg.Capacity))
	}

	// Set bits are emitted in ascending index order.
	selected := knapsack.Selection{}
	for i, set := range bestEver.genes {
		if set {
			selected = append(selected, i)
		}
	}
	return selected, nil
}

func (s *Solver) validateRates() error {
	if math.IsNaN(s.cfg.CrossoverRate) || s.cfg.CrossoverRate < 0 || s.cfg.CrossoverRate > 1 {
		return knapsack.NewInvalidInputf("crossover rate = %v, want in [0, 1]", s.cfg.CrossoverRate).
			WithComponent("ga")
	}
	if math.IsNaN(s.cfg.MutationRate) || s.cfg.MutationRate < 0 || s.cfg.MutationRate > 1 {
		return knapsack.NewInvalidInputf("mutation rate = %v, want in [0, 1]", s.cfg.MutationRate).
			WithComponent("ga")
	}
	return nil
}

// newIndividual seeds one individual: cases are offered in descending
// value/cost order and each still-fitting case is included with fixed
// probability.
func (s *Solver) newIndividual(in *knapsack.Instance, order []int, rng *rand.Rand) *individual {
	ind := &individual{genes: make([]bool, in.Len())}
	for _, i := range order {
		if ind.cost+in.Costs[i] <= s.cfg.Capacity && rng.Float64() < initInclusionProb {
			ind.genes[i] = true
			ind.cost += in.Costs[i]
			ind.value += in.Values[i]
		}
	}
	return ind
}

// tournament draws PopulationSize parents with replacement. Each parent
// is the fittest of a tournamentSize sample; ties keep the running
// maximum, so the earliest-drawn of equal individuals wins.
func (s *Solver) tournament(population []*individual, rng *rand.Rand) []*individual {
	size := tournamentSize
	if len(population) < size {
		size = len(population)
	}
	parents := make([]*individual, len(population))
	for i := range parents {
		best := population[rng.Intn(len(population))]
		for j := 1; j < size; j++ {
			cand := population[rng.Intn(len(population))]
			if cand.fitness(s.cfg.Capacity) > best.fitness(s.cfg.Capacity) {
				best = cand
			}
		}
		parents[i] = best
	}
	return parents
}

// breed builds the next generation from consecutive parent pairs,
// wrapping a trailing unpaired parent with the first, and truncates to
// the population size.
func (s *Solver) breed(in *knapsack.Instance, parents []*individual, rng *rand.Rand) []*individual {
	next := make([]*individual, 0, len(parents)+1)
	for i := 0; i < len(parents); i += 2 {
		p1 := parents[i]
		p2 := parents[(i+1)%len(parents)]

		var c1, c2 *individual
		if rng.Float64() < s.cfg.CrossoverRate {
			c1, c2 = s.crossover(in, p1, p2, rng)
		} else {
			c1, c2 = p1.clone(), p2.clone()
		}
		s.mutate(in, c1, rng)
		s.mutate(in, c2, rng)
		next = append(next, c1, c2)
	}
	return next[:len(parents)]
}

// crossover recombines two parents gene-by-gene with a uniform mask: one
// coin per position decides which parent each child inherits from. A
// gene only lands set in a child when the case still fits the child's
// running cost, so crossover never produces an infeasible child.
func (s *Solver) crossover(in *knapsack.Instance, p1, p2 *individual, rng *rand.Rand) (*individual, *individual) {
	n := in.Len()
	c1 := &individual{genes: make([]bool, n)}
	c2 := &individual{genes: make([]bool, n)}
	for g := 0; g < n; g++ {
		src1, src2 := p1, p2
		if rng.Float64() < 0.5 {
			src1, src2 = p2, p1
		}
		if src1.genes[g] && c1.cost+in.Costs[g] <= s.cfg.Capacity {
			c1.genes[g] = true
			c1.cost += in.Costs[g]
			c1.value += in.Values[g]
		}
		if src2.genes[g] && c2.cost+in.Costs[g] <= s.cfg.Capacity {
			c2.genes[g] = true
			c2.cost += in.Costs[g]
			c2.value += in.Values[g]
		}
	}
	return c1, c2
}

// mutate flips each gene with the configured probability. Clearing a set
// gene always succeeds and frees capacity; setting a cleared gene is a
// no-op unless the case fits.
func (s *Solver) mutate(in *knapsack.Instance, ind *individual, rng *rand.Rand) {
	for g := range ind.genes {
		if rng.Float64() >= s.cfg.MutationRate {
			continue
		}
		if ind.genes[g] {
			ind.genes[g] = false
			ind.cost -= in.Costs[g]
			ind.value -= in.Values[g]
		} else if ind.cost+in.Costs[g] <= s.cfg.Capacity {
			ind.genes[g] = true
			ind.cost += in.Costs[g]
			ind.value += in.Values[g]
		}
	}
}

// fittest returns the individual with the highest fitness, keeping the
// running maximum on ties.
func (s *Solver) fittest(population []*individual) *individual {
	best := population[0]
	for _, ind := range population[1:] {
		if ind.fitness(s.cfg.Capacity) > best.fitness(s.cfg.Capacity) {
			best = ind
		}
	}
	return best
}

// weakestIndex returns the index of the lowest-fitness individual,
// keeping the running minimum on ties.
func (s *Solver) weakestIndex(population []*individual) int {
	worst := 0
	for i, ind := range population[1:] {
		if ind.fitness(s.cfg.Capacity) < population[worst].fitness(s.cfg.Capacity) {
			worst = i + 1
		}
	}
	return worst
}
