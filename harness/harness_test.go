package harness

import (
	"errors"
	"strings"
	"testing"

	"github.com/ecsmark/ecsmark/backend"
	"github.com/ecsmark/ecsmark/workload"
)

func smallParams() workload.Params {
	return workload.Params{
		Entities:          50,
		Replication:       2,
		Families:          3,
		ComputeEntities:   8,
		ComputeIterations: 2,
	}
}

func TestRunProducesSamples(t *testing.T) {
	b, err := backend.Open("mapstore")
	if err != nil {
		t.Fatal(err)
	}

	w, err := workload.ByName("spawn")
	if err != nil {
		t.Fatal(err)
	}

	result, err := Run(b, w, smallParams(), Options{
		Trials: 5,
		Warmup: 1,
		Verify: true,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Pair() != "spawn/mapstore" {
		t.Errorf("pair = %q, want spawn/mapstore", result.Pair())
	}
	if result.Trials != 5 {
		t.Errorf("trials = %d, want 5", result.Trials)
	}
	if len(result.Samples) != 5 {
		t.Errorf("samples = %d, want 5", len(result.Samples))
	}
	if result.Digest == "" {
		t.Error("expected a digest with Verify enabled")
	}
	if result.Min > result.Mean || result.Mean > result.Max {
		t.Errorf("stats out of order: min=%v mean=%v max=%v",
			result.Min, result.Mean, result.Max)
	}
	if result.InsertSemantics != "overwrite" {
		t.Errorf("insert semantics = %q, want overwrite", result.InsertSemantics)
	}
}

func TestRunSkipsDigestWithoutVerify(t *testing.T) {
	b, err := backend.Open("sparse")
	if err != nil {
		t.Fatal(err)
	}

	w, err := workload.ByName("simple_iter")
	if err != nil {
		t.Fatal(err)
	}

	result, err := Run(b, w, smallParams(), Options{Trials: 2, Warmup: 0})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Digest != "" {
		t.Errorf("digest = %q, want empty without Verify", result.Digest)
	}
}

func TestRunPropagatesHotError(t *testing.T) {
	errBoom := errors.New("boom")

	w := workload.Workload{
		Name:  "boom",
		Setup: func(b backend.Backend, _ workload.Params) error { b.Reset(); return nil },
		Hot: func(backend.Backend, workload.Params) error {
			return errBoom
		},
		Check: func(backend.Backend, workload.Params) (string, error) {
			return "boom", nil
		},
	}

	b, err := backend.Open("mapstore")
	if err != nil {
		t.Fatal(err)
	}

	_, err = Run(b, w, workload.Params{}, Options{Trials: 3, Warmup: 0})
	if !errors.Is(err, errBoom) {
		t.Fatalf("Run = %v, want wrapped errBoom", err)
	}

	if !strings.Contains(err.Error(), "boom/mapstore") {
		t.Errorf("error %q does not name the pair", err)
	}
}

func TestRunPropagatesCheckFailure(t *testing.T) {
	errBad := errors.New("invariant violated")

	w := workload.Workload{
		Name:  "badcheck",
		Setup: func(b backend.Backend, _ workload.Params) error { b.Reset(); return nil },
		Hot:   func(backend.Backend, workload.Params) error { return nil },
		Check: func(backend.Backend, workload.Params) (string, error) {
			return "", errBad
		},
	}

	b, err := backend.Open("sparse")
	if err != nil {
		t.Fatal(err)
	}

	_, err = Run(b, w, workload.Params{}, Options{Trials: 1, Verify: true})
	if !errors.Is(err, errBad) {
		t.Fatalf("Run = %v, want wrapped errBad", err)
	}
}

func TestRunRejectsInvalidParams(t *testing.T) {
	b, err := backend.Open("mapstore")
	if err != nil {
		t.Fatal(err)
	}

	w, err := workload.ByName("spawn")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Run(b, w, workload.Params{Entities: -1}, Options{}); err == nil {
		t.Fatal("expected error for negative entity count")
	}
}
