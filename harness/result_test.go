package harness

import (
	"testing"
	"time"
)

func TestResultStats(t *testing.T) {
	samples := []time.Duration{
		1 * time.Millisecond,
		2 * time.Millisecond,
		4 * time.Millisecond,
	}

	r := newResult("spawn", "sparse", samples)

	if r.Trials != 3 {
		t.Errorf("trials = %d, want 3", r.Trials)
	}
	if r.Total != 7*time.Millisecond {
		t.Errorf("total = %v, want 7ms", r.Total)
	}
	if r.Min != 1*time.Millisecond {
		t.Errorf("min = %v, want 1ms", r.Min)
	}
	if r.Max != 4*time.Millisecond {
		t.Errorf("max = %v, want 4ms", r.Max)
	}
	if r.Mean != 2333333*time.Nanosecond {
		t.Errorf("mean = %v, want 2.333333ms", r.Mean)
	}

	// Population standard deviation about the exact mean 7/3 ms:
	// sqrt(42/27) ms = 1247219ns after truncation.
	if r.StdDev != 1247219*time.Nanosecond {
		t.Errorf("stddev = %v, want 1.247219ms", r.StdDev)
	}
}

func TestResultEmptySamples(t *testing.T) {
	r := newResult("spawn", "sparse", nil)

	if r.Trials != 0 || r.Total != 0 || r.Min != 0 || r.Max != 0 ||
		r.Mean != 0 || r.StdDev != 0 {
		t.Errorf("empty sample stats not all zero: %+v", r)
	}
}
