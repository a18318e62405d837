package run

import (
	"absim/domain/core"
)

// Kind distinguishes the two entry points
type Kind string

const (
	KindSimulate Kind = "simulate"
	KindEvaluate Kind = "evaluate"
)

// RunManifest is the envelope returned alongside every result table
type RunManifest struct {
	RunID       core.RunID     `json:"run_id"`
	Kind        Kind           `json:"kind"`
	Fingerprint RunFingerprint `json:"fingerprint"`
	CreatedAt   core.Timestamp `json:"created_at"`
}

// NewRunManifest stamps a manifest with a fresh run id
func NewRunManifest(kind Kind, params Parameters, resultHash core.Hash) *RunManifest {
	return &RunManifest{
		RunID:       core.NewRunID(),
		Kind:        kind,
		Fingerprint: NewRunFingerprint(params, resultHash),
		CreatedAt:   core.Now(),
	}
}

// SameOutput reports whether two runs produced identical output from
// identical parameters. Run ids and timestamps are ignored.
func (m *RunManifest) SameOutput(other *RunManifest) bool {
	if m == nil || other == nil {
		return false
	}
	return m.Kind == other.Kind && m.Fingerprint.Fingerprint.Equals(other.Fingerprint.Fingerprint)
}
