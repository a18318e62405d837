package container

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"absim/adapters/stats/significance"
	"absim/internal/config"
)

func TestNew_WiresTestOptions(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "ERROR"
	cfg.Simulation.Tests.EqualVar = false
	cfg.Simulation.Tests.YatesCorrection = false
	cfg.Server.GinMode = "test"

	c, err := New(cfg)
	require.NoError(t, err)

	tt, ok := c.Means.(*significance.TTest)
	require.True(t, ok)
	assert.False(t, tt.EqualVar)

	chi, ok := c.Association.(*significance.ChiSquareTest)
	require.True(t, ok)
	assert.False(t, chi.YatesCorrection)

	assert.Equal(t, ":8080", c.Addr())
	assert.NotNil(t, c.Server().Router())

	res, err := c.Simulation.Evaluate(context.Background(), 200, 10)
	require.NoError(t, err)
	assert.Len(t, res.Evaluation, 3)
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestNew_InvalidSimulation(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "ERROR"
	cfg.Simulation.Workers = 0

	_, err := New(cfg)
	assert.Error(t, err)
}
