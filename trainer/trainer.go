package trainer

import (
	"fmt"
	"time"

	"gostop/experiments/metrics"
	"gostop/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Sampling int

const (
	Vanilla          Sampling = iota // Full-width traversal
	ExternalSampling                 // Sample opponent actions, full width for the trained player
	OutcomeSampling                  // Sample one trajectory per traversal
)

func (s Sampling) String() string {
	switch s {
	case Vanilla:
		return "vanilla"
	case ExternalSampling:
		return "external"
	case OutcomeSampling:
		return "outcome"
	default:
		return fmt.Sprintf("Sampling(%d)", int(s))
	}
}

func ParseSampling(name string) (Sampling, error) {
	switch name {
	case "vanilla", "":
		return Vanilla, nil
	case "external":
		return ExternalSampling, nil
	case "outcome":
		return OutcomeSampling, nil
	default:
		return Vanilla, fmt.Errorf("unknown sampling mode %q", name)
	}
}

const (
	DefaultExploration = 0.6
	logInterval        = 100
)

type Option func(t *Trainer)

type Trainer struct {
	iterations  int
	seed        uint64
	dealer      game.Dealer
	sampling    Sampling
	exploration float64
	table       *Table
	rng         *rand.Rand
	metrics     metrics.Collector
	progress    func(iteration int, utility [2]float64)
}

func WithIterations(iterations int) Option {
	return func(t *Trainer) {
		if iterations > 0 {
			t.iterations = iterations
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(t *Trainer) {
		t.seed = seed
	}
}

func WithDealer(dealer game.Dealer) Option {
	return func(t *Trainer) {
		if dealer != nil {
			t.dealer = dealer
		}
	}
}

func WithSampling(sampling Sampling) Option {
	return func(t *Trainer) {
		t.sampling = sampling
	}
}

// WithExploration sets the share of uniform exploration at the trained player's nodes in
// outcome sampling.
func WithExploration(epsilon float64) Option {
	return func(t *Trainer) {
		if epsilon > 0 && epsilon <= 1 {
			t.exploration = epsilon
		}
	}
}

// WithTable continues training from an existing table.
func WithTable(table *Table) Option {
	return func(t *Trainer) {
		if table != nil {
			t.table = table
		}
	}
}

func WithMetrics() Option {
	return func(t *Trainer) {
		t.metrics = metrics.NewCollector()
	}
}

// WithProgress registers a callback run after every iteration.
func WithProgress(fn func(iteration int, utility [2]float64)) Option {
	return func(t *Trainer) {
		t.progress = fn
	}
}

func New(options ...Option) *Trainer {
	t := &Trainer{ // Default values
		seed:        1,
		dealer:      func(*rand.Rand) *game.GameState { return game.NewEndgame() },
		sampling:    Vanilla,
		exploration: DefaultExploration,
		table:       NewTable(),
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(t)
	}
	if t.iterations <= 0 {
		panic("Must specify training iterations")
	}
	t.rng = rand.New(rand.NewSource(t.seed))
	return t
}

func (t *Trainer) Table() *Table {
	return t.table
}

func (t *Trainer) Metrics() metrics.Collector {
	return t.metrics
}

// Train runs the configured number of iterations. Any rules-engine error aborts training.
func (t *Trainer) Train() (metrics.TrainingMetric, error) {
	log.Info().Msgf("training %d iterations, %s sampling, seed %d", t.iterations, t.sampling, t.seed)
	t.metrics.Start(t.iterations, t.sampling.String())
	start := time.Now()

	for i := 1; i <= t.iterations; i++ {
		utility, err := t.Iterate()
		if err != nil {
			log.Error().Err(err).Msgf("training aborted at iteration %d", i)
			return t.metrics.Complete(), fmt.Errorf("iteration %d: %w", i, err)
		}
		if t.progress != nil {
			t.progress(i, utility)
		}
		if i%logInterval == 0 {
			log.Debug().Msgf("iteration %d: utility %.3f/%.3f, %d nodes", i, utility[0], utility[1], t.table.Len())
		}
	}

	log.Info().Msgf("trained %d nodes in %v", t.table.Len(), time.Since(start))
	return t.metrics.Complete(), nil
}

// Iterate deals one hand and traverses it once for each player. The returned utilities are
// diagnostic only.
func (t *Trainer) Iterate() ([2]float64, error) {
	state := t.dealer(t.rng)
	var utility [2]float64
	for _, trained := range []game.Player{game.Player1, game.Player2} {
		var u float64
		var err error
		switch t.sampling {
		case OutcomeSampling:
			_, u, err = t.outcome(trained, state, [2]float64{1, 1}, 1)
		default:
			u, err = t.cfr(trained, state, nil, [2]float64{1, 1})
		}
		if err != nil {
			return utility, err
		}
		utility[trained.Index()] = u
	}
	t.metrics.AddIteration(utility, t.table.Len())
	return utility, nil
}

// cfr applies action, when given, and returns the expected winnings of trained under the
// current strategy profile. Regrets are only updated at nodes where trained is to move.
func (t *Trainer) cfr(trained game.Player, state *game.GameState, action *game.Action, reach [2]float64) (float64, error) {
	if action != nil {
		next, err := state.Apply(*action)
		if err != nil {
			return 0, err
		}
		state = next
	}
	if state.Terminal {
		return float64(game.Winnings(state)[trained.Index()]), nil
	}
	t.metrics.AddNodeVisit()

	mover := state.Player()
	actions := state.LegalActions()
	node, err := t.table.GetOrCreate(state.View(mover).Key(), len(actions))
	if err != nil {
		return 0, err
	}

	if t.sampling == ExternalSampling && mover != trained {
		return t.sampleOpponent(trained, state, actions, node, reach)
	}

	var strategy []float64
	if t.sampling == ExternalSampling {
		strategy = node.Current()
	} else {
		strategy = node.Strategy(reach[mover.Index()])
	}

	utilities := make([]float64, len(actions))
	nodeUtility := 0.0
	for i := range actions {
		next := reach
		next[mover.Index()] *= strategy[i]
		utilities[i], err = t.cfr(trained, state, &actions[i], next)
		if err != nil {
			return 0, err
		}
		nodeUtility += strategy[i] * utilities[i]
	}

	if mover == trained {
		weight := reach[mover.Opponent().Index()]
		if t.sampling == ExternalSampling {
			weight = 1
		}
		for i, u := range utilities {
			node.RegretSum[i] += (u - nodeUtility) * weight
		}
	}
	return nodeUtility, nil
}
