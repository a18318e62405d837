package run

import (
	"testing"

	"absim/domain/core"
)

func TestRunFingerprint_Deterministic(t *testing.T) {
	params := Parameters{Seed: 42, NumConsumers: 1000, NumItems: 30, Workers: 1, ConfigHash: "cfg"}
	result := core.Hash("result")

	fp1 := NewRunFingerprint(params, result)
	fp2 := NewRunFingerprint(params, result)

	if fp1.Fingerprint != fp2.Fingerprint {
		t.Errorf("Fingerprints not identical: %s vs %s", fp1.Fingerprint, fp2.Fingerprint)
	}
	if fp1.Parameters != params {
		t.Errorf("Parameters mismatch: %+v vs %+v", fp1.Parameters, params)
	}
}

func TestRunFingerprint_Unique(t *testing.T) {
	base := Parameters{Seed: 42, NumConsumers: 1000, NumItems: 30, Workers: 1, ConfigHash: "cfg"}
	baseFP := NewRunFingerprint(base, "result")

	testCases := []struct {
		name   string
		params Parameters
		result core.Hash
	}{
		{"different seed", Parameters{Seed: 43, NumConsumers: 1000, NumItems: 30, Workers: 1, ConfigHash: "cfg"}, "result"},
		{"different consumers", Parameters{Seed: 42, NumConsumers: 999, NumItems: 30, Workers: 1, ConfigHash: "cfg"}, "result"},
		{"different items", Parameters{Seed: 42, NumConsumers: 1000, NumItems: 31, Workers: 1, ConfigHash: "cfg"}, "result"},
		{"different workers", Parameters{Seed: 42, NumConsumers: 1000, NumItems: 30, Workers: 4, ConfigHash: "cfg"}, "result"},
		{"different config", Parameters{Seed: 42, NumConsumers: 1000, NumItems: 30, Workers: 1, ConfigHash: "other"}, "result"},
		{"different result", base, "other-result"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fp := NewRunFingerprint(tc.params, tc.result)
			if fp.Fingerprint == baseFP.Fingerprint {
				t.Errorf("expected fingerprint to change for %s", tc.name)
			}
		})
	}
}

func TestRunManifest_SameOutputIgnoresRunID(t *testing.T) {
	params := Parameters{Seed: 7, NumConsumers: 10, NumItems: 3, Workers: 1}

	m1 := NewRunManifest(KindEvaluate, params, "h")
	m2 := NewRunManifest(KindEvaluate, params, "h")

	if m1.RunID == m2.RunID {
		t.Fatal("expected distinct run ids")
	}
	if !m1.SameOutput(m2) {
		t.Error("expected manifests with identical inputs and output to match")
	}

	m3 := NewRunManifest(KindSimulate, params, "h")
	if m1.SameOutput(m3) {
		t.Error("expected different kinds not to match")
	}
	if m1.SameOutput(nil) {
		t.Error("expected nil manifest not to match")
	}
}
