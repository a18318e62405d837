package container

import (
	"fmt"

	"absim/adapters/rng"
	"absim/adapters/stats/significance"
	"absim/app"
	"absim/internal"
	"absim/internal/api"
	"absim/internal/config"
	"absim/ports"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Adapters
	RNG         ports.RNGPort
	Proportion  ports.ProportionTest
	Means       ports.MeanDifferenceTest
	Association ports.AssociationTest

	// Services
	Evaluator  *app.EvaluatorService
	Simulation *app.SimulationService
}

// New wires adapters and services from a loaded configuration
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config: cfg,
		Logger: internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel)),
	}

	tests := cfg.Simulation.Tests
	c.RNG = rng.NewPCGAdapter()
	c.Proportion = significance.NewZTest()
	c.Means = significance.NewTTest(tests.EqualVar)
	c.Association = significance.NewChiSquareTest(tests.YatesCorrection)

	c.Evaluator = app.NewEvaluatorService(c.Proportion, c.Means, c.Association)

	sim, err := app.NewSimulationService(cfg.Simulation, c.RNG, c.Evaluator, c.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create simulation service: %w", err)
	}
	c.Simulation = sim

	c.Logger.Debug("container ready: seed=%d workers=%d equal_var=%t yates=%t",
		cfg.Simulation.Seed, cfg.Simulation.Workers, tests.EqualVar, tests.YatesCorrection)
	return c, nil
}

// Server builds the HTTP API over the simulation service
func (c *Container) Server() *api.Server {
	return api.NewServer(c.Simulation, c.Logger, c.Config.Server.GinMode)
}

// Addr is the listen address from the server configuration
func (c *Container) Addr() string {
	return ":" + c.Config.Server.Port
}
