package app

import (
	"context"
	"fmt"
	"time"

	"absim/domain/audience"
	"absim/domain/core"
	"absim/domain/experiment"
	"absim/domain/run"
	"absim/internal"
	"absim/internal/catalog"
	"absim/internal/config"
	"absim/internal/metrics"
	"absim/internal/population"
	"absim/internal/trial"
	"absim/ports"
)

// streamName labels the shared stream of a sequential run
const streamName = "simulation"

// SimulationService runs the full pipeline: population, items, variant
// transform, one trial pass per arm, aggregation and, for Evaluate, the
// significance tests
type SimulationService struct {
	config     config.SimulationConfig
	rngPort    ports.RNGPort
	population *population.Generator
	catalog    *catalog.Generator
	runner     *trial.Runner
	evaluator  *EvaluatorService
	logger     *internal.Logger
}

// SimulationResult is the output of Simulate
type SimulationResult struct {
	Summary   experiment.SummaryTable `json:"summary"`
	Manifest  *run.RunManifest        `json:"manifest"`
	RuntimeMs int64                   `json:"runtime_ms"`
}

// EvaluationResult is the output of Evaluate. Summary is the table the
// p-values were computed from.
type EvaluationResult struct {
	Summary    experiment.SummaryTable    `json:"summary"`
	Evaluation experiment.EvaluationTable `json:"evaluation"`
	Alpha      float64                    `json:"alpha"`
	Manifest   *run.RunManifest           `json:"manifest"`
	RuntimeMs  int64                      `json:"runtime_ms"`
}

// PopulationPreview is a generated population and item set with their
// summary statistics
type PopulationPreview struct {
	Consumers   []audience.Consumer    `json:"-"`
	Description population.Description `json:"population"`
	ItemCounts  map[string]int         `json:"item_categories"`
}

// NewSimulationService creates a simulation service. The configuration is
// validated here so Simulate and Evaluate fail only on their own arguments.
func NewSimulationService(cfg config.SimulationConfig, rngPort ports.RNGPort, evaluator *EvaluatorService, logger *internal.Logger) (*SimulationService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pop, err := population.NewGenerator(cfg.Population)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.NewGenerator(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &SimulationService{
		config:     cfg,
		rngPort:    rngPort,
		population: pop,
		catalog:    cat,
		runner:     trial.NewRunner(rngPort, cfg.Workers),
		evaluator:  evaluator,
		logger:     logger,
	}, nil
}

// Config returns the simulation configuration in use
func (s *SimulationService) Config() config.SimulationConfig {
	return s.config
}

// Simulate returns one metric summary per variant. A nil labels slice
// means A and B.
func (s *SimulationService) Simulate(ctx context.Context, numConsumers, numItems int, labels []experiment.Variant) (*SimulationResult, error) {
	start := time.Now()

	arms, err := s.execute(ctx, numConsumers, numItems, labels)
	if err != nil {
		return nil, err
	}

	summary := summarize(arms)
	manifest := run.NewRunManifest(run.KindSimulate, s.parameters(numConsumers, numItems), summary.Hash())
	s.logger.Info("simulate run=%s seed=%d consumers=%d items=%d fingerprint=%s",
		manifest.RunID, s.config.Seed, numConsumers, numItems, manifest.Fingerprint.Fingerprint.Short())

	return &SimulationResult{
		Summary:   summary,
		Manifest:  manifest,
		RuntimeMs: time.Since(start).Milliseconds(),
	}, nil
}

// Evaluate returns the three p-values of every metric for arms A and B
func (s *SimulationService) Evaluate(ctx context.Context, numConsumers, numItems int) (*EvaluationResult, error) {
	start := time.Now()

	if s.evaluator == nil {
		return nil, fmt.Errorf("evaluate: no evaluator configured")
	}

	arms, err := s.execute(ctx, numConsumers, numItems, nil)
	if err != nil {
		return nil, err
	}

	table, err := s.evaluator.Evaluate(arms[0], arms[1])
	if err != nil {
		return nil, err
	}
	for _, row := range table {
		for _, res := range row.Results() {
			if !res.Defined {
				s.logger.Warn("%s %s undefined: %s", row.Metric, res.Test, res.Reason)
			}
		}
	}

	manifest := run.NewRunManifest(run.KindEvaluate, s.parameters(numConsumers, numItems), table.Hash())
	s.logger.Info("evaluate run=%s seed=%d consumers=%d items=%d fingerprint=%s",
		manifest.RunID, s.config.Seed, numConsumers, numItems, manifest.Fingerprint.Fingerprint.Short())

	return &EvaluationResult{
		Summary:    summarize(arms),
		Evaluation: table,
		Alpha:      s.config.Tests.Alpha,
		Manifest:   manifest,
		RuntimeMs:  time.Since(start).Milliseconds(),
	}, nil
}

// Describe generates a population and item set from the configured seed
// and summarizes them without running trials
func (s *SimulationService) Describe(ctx context.Context, numConsumers, numItems int) (*PopulationPreview, error) {
	if err := validateCounts(numConsumers, numItems); err != nil {
		return nil, err
	}
	stream, err := s.rngPort.SeededStream(ctx, streamName, s.config.Seed)
	if err != nil {
		return nil, err
	}
	consumers, err := s.population.Generate(numConsumers, stream)
	if err != nil {
		return nil, err
	}
	items, err := s.catalog.Generate(numItems, stream)
	if err != nil {
		return nil, err
	}

	itemCounts := make(map[string]int)
	for category, n := range catalog.CategoryCounts(items) {
		itemCounts[string(category)] = n
	}
	return &PopulationPreview{
		Consumers:   consumers,
		Description: population.Describe(consumers),
		ItemCounts:  itemCounts,
	}, nil
}

// execute runs the pipeline up to per-arm series. Draws happen in a fixed
// order from one stream: population, items, then arm by arm.
func (s *SimulationService) execute(ctx context.Context, numConsumers, numItems int, labels []experiment.Variant) ([]metrics.Arm, error) {
	if err := validateCounts(numConsumers, numItems); err != nil {
		return nil, err
	}

	stream, err := s.rngPort.SeededStream(ctx, streamName, s.config.Seed)
	if err != nil {
		return nil, err
	}

	consumers, err := s.population.Generate(numConsumers, stream)
	if err != nil {
		return nil, fmt.Errorf("generate population: %w", err)
	}
	items, err := s.catalog.Generate(numItems, stream)
	if err != nil {
		return nil, fmt.Errorf("generate items: %w", err)
	}

	set := catalog.NewVariantSet(items)
	if labels != nil {
		if set, err = set.Relabel(labels); err != nil {
			return nil, err
		}
	}

	arms := make([]metrics.Arm, 0, len(set.Variants()))
	for _, variant := range set.Variants() {
		variantItems, _ := set.Items(variant)

		var outcomes []experiment.Outcome
		if s.runner.Partitioned() {
			outcomes, err = s.runner.RunPartitioned(ctx, variant, consumers, variantItems, s.config.Seed)
		} else {
			outcomes, err = s.runner.Run(ctx, variant, consumers, variantItems, stream)
		}
		if err != nil {
			return nil, fmt.Errorf("trial %s: %w", variant, err)
		}

		arm := metrics.Collect(variant, outcomes)
		s.logger.Debug("variant %s: trials=%d clicks=%d bounces=%d", variant, arm.Trials(), arm.Clicks(), arm.Bounces())
		arms = append(arms, arm)
	}
	return arms, nil
}

func (s *SimulationService) parameters(numConsumers, numItems int) run.Parameters {
	return run.Parameters{
		Seed:         s.config.Seed,
		NumConsumers: numConsumers,
		NumItems:     numItems,
		Workers:      s.runner.Workers(),
		ConfigHash:   s.config.Hash(),
	}
}

func summarize(arms []metrics.Arm) experiment.SummaryTable {
	table := make(experiment.SummaryTable, 0, len(arms))
	for _, arm := range arms {
		table = append(table, metrics.Summarize(arm))
	}
	return table
}

func validateCounts(numConsumers, numItems int) error {
	if numConsumers <= 0 {
		return core.NewCountError("num_consumers", numConsumers, "must be > 0")
	}
	if numItems <= 0 {
		return core.NewCountError("num_items", numItems, "must be > 0")
	}
	return nil
}
