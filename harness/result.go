package harness

import (
	"math"
	"time"
)

// Result holds the timing distribution of one (workload, backend) pair.
type Result struct {
	Workload        string          `json:"workload"`
	Backend         string          `json:"backend"`
	Trials          int             `json:"trials"`
	InsertSemantics string          `json:"insert_semantics,omitempty"`
	Digest          string          `json:"digest,omitempty"`
	Samples         []time.Duration `json:"samples_ns"`
	Total           time.Duration   `json:"total_ns"`
	Min             time.Duration   `json:"min_ns"`
	Max             time.Duration   `json:"max_ns"`
	Mean            time.Duration   `json:"mean_ns"`
	StdDev          time.Duration   `json:"stddev_ns"`
}

// Pair returns the canonical "<workload>/<backend>" pair name.
func (r Result) Pair() string {
	return r.Workload + "/" + r.Backend
}

func newResult(workloadName, backendName string, samples []time.Duration) Result {
	r := Result{
		Workload: workloadName,
		Backend:  backendName,
		Trials:   len(samples),
		Samples:  samples,
	}

	if len(samples) == 0 {
		return r
	}

	r.Min = samples[0]
	r.Max = samples[0]

	for _, s := range samples {
		r.Total += s

		if s < r.Min {
			r.Min = s
		}
		if s > r.Max {
			r.Max = s
		}
	}

	r.Mean = r.Total / time.Duration(len(samples))

	var sq float64

	mean := float64(r.Total) / float64(len(samples))
	for _, s := range samples {
		d := float64(s) - mean
		sq += d * d
	}

	r.StdDev = time.Duration(math.Sqrt(sq / float64(len(samples))))

	return r
}
