package run

import (
	"crypto/sha256"
	"fmt"

	"absim/domain/core"
)

// Parameters are the inputs that fully determine a run's output
type Parameters struct {
	Seed         int64  `json:"seed"`
	NumConsumers int    `json:"num_consumers"`
	NumItems     int    `json:"num_items"`
	Workers      int    `json:"workers"`
	ConfigHash   string `json:"config_hash"` // hash of weight tables and test options
}

// RunFingerprint ensures deterministic replay
type RunFingerprint struct {
	Parameters  Parameters `json:"parameters"`
	ResultHash  core.Hash  `json:"result_hash"`
	Fingerprint core.Hash  `json:"fingerprint"` // Hash of all above
}

// NewRunFingerprint creates a fingerprint from determinism parameters and
// the hash of the produced table
func NewRunFingerprint(params Parameters, resultHash core.Hash) RunFingerprint {
	return RunFingerprint{
		Parameters:  params,
		ResultHash:  resultHash,
		Fingerprint: computeRunFingerprint(params, resultHash),
	}
}

// computeRunFingerprint generates deterministic hash from all determinism parameters
func computeRunFingerprint(p Parameters, resultHash core.Hash) core.Hash {
	data := fmt.Sprintf("seed:%d|consumers:%d|items:%d|workers:%d|config:%s|result:%s",
		p.Seed, p.NumConsumers, p.NumItems, p.Workers, p.ConfigHash, resultHash)

	hash := sha256.Sum256([]byte(data))
	return core.Hash(fmt.Sprintf("%x", hash))
}
