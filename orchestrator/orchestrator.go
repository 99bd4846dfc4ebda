package orchestrator

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/spacemeshos/solflood/epoch"
	"github.com/spacemeshos/solflood/logging"
	"github.com/spacemeshos/solflood/puzzle"
	"github.com/spacemeshos/solflood/types"
)

//go:generate mockgen -package mocks -destination mocks/chain.go . Chain

// Chain is the node API the orchestrator drives.
// Implementations must be safe for concurrent use.
type Chain interface {
	epoch.BlockSource
	SubmitSolution(ctx context.Context, solution *types.Solution) error
}

type options struct {
	cfg Config
	rng *rand.Rand
}

type OptionFunc func(*options)

func WithConfig(cfg Config) OptionFunc {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithRand sets the randomness source of the orchestrator.
// Flood submissions derive their own sources from it.
func WithRand(rng *rand.Rand) OptionFunc {
	return func(o *options) {
		o.rng = rng
	}
}

// Orchestrator shapes submission traffic in three phases:
//   - seed: fill the node's solution queue with genuine solutions, one at a time,
//   - flood: fire synthetic solutions concurrently without waiting for them,
//   - steady state: submit a genuine solution every interval, forever.
//
// Submission and proving failures are logged and dropped. Only failing to
// resolve the network state stops a phase.
//
// An Orchestrator is not safe for concurrent use.
type Orchestrator struct {
	chain    Chain
	resolver *epoch.Resolver
	producer *puzzle.Producer
	cfg      Config
	rng      *rand.Rand
}

func New(chain Chain, resolver *epoch.Resolver, producer *puzzle.Producer, opts ...OptionFunc) *Orchestrator {
	options := options{
		cfg: DefaultConfig(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.rng == nil {
		options.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return &Orchestrator{
		chain:    chain,
		resolver: resolver,
		producer: producer,
		cfg:      options.cfg,
		rng:      options.rng,
	}
}

// Run executes the seed and flood phases and then stays in the steady state
// until resolving the network state fails or ctx is canceled.
func (o *Orchestrator) Run(ctx context.Context) error {
	logger := logging.FromContext(ctx).Named("orchestrator")
	ctx = logging.NewContext(ctx, logger)
	logger.Info("starting", zap.Object("config", o.cfg))

	state, err := o.Seed(ctx)
	if err != nil {
		return fmt.Errorf("seeding solution queue: %w", err)
	}
	o.Flood(ctx, state)
	return o.SteadyState(ctx)
}

// Seed resolves the network state once, proves exactly SeedSolutions genuine
// solutions for it and submits them one after another.
// It returns the state so the flood phase can target the same epoch.
func (o *Orchestrator) Seed(ctx context.Context) (epoch.NetworkState, error) {
	logger := logging.FromContext(ctx)

	state, err := o.resolve(ctx)
	if err != nil {
		return epoch.NetworkState{}, err
	}

	solutions := make([]*types.Solution, 0, o.cfg.SeedSolutions)
	for len(solutions) < o.cfg.SeedSolutions {
		if err := ctx.Err(); err != nil {
			return epoch.NetworkState{}, err
		}
		if solution := o.genuine(ctx, state); solution != nil {
			solutions = append(solutions, solution)
		}
	}

	logger.Info("filling the solution queue", zap.Int("solutions", len(solutions)), zap.Object("state", state))
	for _, solution := range solutions {
		o.submit(ctx, phaseSeed, solution)
	}
	return state, nil
}

// Flood fires FloodSolutions synthetic solutions for the given state, each
// from its own goroutine with its own randomness source. It returns right
// away: the goroutines are detached, nothing waits for them and their
// outcomes are only logged. Canceling ctx does not abort them, they end
// when the request completes or times out.
func (o *Orchestrator) Flood(ctx context.Context, state epoch.NetworkState) {
	logger := logging.FromContext(ctx)
	logger.Info("flooding the solution queue", zap.Int("solutions", o.cfg.FloodSolutions))

	detached := context.WithoutCancel(ctx)
	for i := 0; i < o.cfg.FloodSolutions; i++ {
		rng := rand.New(rand.NewPCG(o.rng.Uint64(), o.rng.Uint64()))
		inFlightMetric.Inc()
		go func() {
			defer inFlightMetric.Dec()
			o.submit(detached, phaseFlood, o.producer.Synthetic(state, rng))
		}()
	}
	logger.Info("flood dispatched")
}

// SteadyState keeps submitting genuine solutions for the freshest network
// state, pausing Interval after each submission. A failed proving attempt
// is retried right away against a newly resolved state.
// It only returns when resolution fails or ctx is canceled.
func (o *Orchestrator) SteadyState(ctx context.Context) error {
	logger := logging.FromContext(ctx)
	logger.Info("entering steady state", zap.Duration("interval", o.cfg.Interval))

	for {
		state, err := o.resolve(ctx)
		if err != nil {
			return err
		}
		solution := o.genuine(ctx, state)
		if solution == nil {
			continue
		}
		o.submit(ctx, phaseSteady, solution)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(o.cfg.Interval):
		}
	}
}

func (o *Orchestrator) resolve(ctx context.Context) (epoch.NetworkState, error) {
	state, err := o.resolver.Resolve(ctx, o.chain)
	if err != nil {
		resolveFailuresMetric.Inc()
		return epoch.NetworkState{}, fmt.Errorf("resolving network state: %w", err)
	}
	heightMetric.Set(float64(state.BlockHeight))
	epochMetric.Set(float64(state.EpochNumber))
	proofTargetMetric.Set(float64(state.ProofTarget))
	logging.FromContext(ctx).Debug("resolved network state", zap.Object("state", state))
	return state, nil
}

// genuine makes one proving attempt. Failures are expected and only
// logged at debug level.
func (o *Orchestrator) genuine(ctx context.Context, state epoch.NetworkState) *types.Solution {
	solution, err := o.producer.Genuine(state, o.rng)
	if err != nil {
		productionMetric.WithLabelValues("failed").Inc()
		logging.FromContext(ctx).Debug("no solution found", zap.Error(err))
		return nil
	}
	productionMetric.WithLabelValues("ok").Inc()
	return solution
}

func (o *Orchestrator) submit(ctx context.Context, phase string, solution *types.Solution) {
	err := o.chain.SubmitSolution(ctx, solution)
	submissionsMetric.WithLabelValues(phase, submitResult(err)).Inc()
	if err != nil {
		logging.FromContext(ctx).Warn("broadcasting solution failed",
			zap.String("phase", phase),
			zap.Object("solution", solution),
			zap.Error(err),
		)
		return
	}
	logging.FromContext(ctx).Debug("solution broadcast", zap.String("phase", phase), zap.Object("solution", solution))
}
