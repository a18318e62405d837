package internal

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelError, ParseLogLevel("ERROR"))
	assert.Equal(t, LogLevelWarn, ParseLogLevel("warn"))
	assert.Equal(t, LogLevelDebug, ParseLogLevel(" DEBUG "))
	assert.Equal(t, LogLevelTrace, ParseLogLevel("TRACE"))
	assert.Equal(t, LogLevelInfo, ParseLogLevel(""))
	assert.Equal(t, LogLevelInfo, ParseLogLevel("verbose"))
}

func TestLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerTo(&buf, LogLevelWarn)

	log.Info("hidden %d", 1)
	log.Debug("hidden %d", 2)
	log.Warn("shown %d", 3)
	log.Error("shown %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown 3")
	assert.Contains(t, out, "shown 4")
}

func TestLogger_TraceLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerTo(&buf, LogLevelTrace)

	log.Trace("draw %d", 7)
	assert.Contains(t, buf.String(), "draw 7")
}

func TestLogger_WithAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerTo(&buf, LogLevelInfo).With("run_id", "abc")

	log.Info("started")
	assert.Contains(t, buf.String(), "run_id=abc")
	assert.Equal(t, LogLevelInfo, log.GetLevel())
}

func TestLogger_NilIsSilent(t *testing.T) {
	var log *Logger
	assert.NotPanics(t, func() { log.Info("nothing") })
}
