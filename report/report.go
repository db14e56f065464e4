// Package report formats benchmark results into comparison tables.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/ecsmark/ecsmark/harness"
)

// Generate writes a markdown comparison table for the given results,
// grouped by workload in first-seen order.
func Generate(w io.Writer, results []harness.Result) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to report")
	}

	fmt.Fprintln(w, "## Benchmark Results")
	fmt.Fprintln(w)

	for _, name := range workloadOrder(results) {
		group := filterWorkload(results, name)

		fmt.Fprintf(w, "### %s\n\n", name)

		// Conforming backends must agree on the logical end state even
		// though their layouts and timings differ.
		if digestsMatch(group) {
			fmt.Fprintln(w, "Logical end states: **all match**")
		} else {
			fmt.Fprintln(w, "Logical end states: **MISMATCH**")

			for _, r := range group {
				fmt.Fprintf(w, "  - %s: %s\n", r.Backend, r.Digest)
			}
		}

		fmt.Fprintln(w)

		fastest := findFastest(group)

		fmt.Fprintln(w, "| Backend | Trials | Mean | Min | Max | StdDev "+
			"| Dup. Insert | Speedup |")
		fmt.Fprintln(w, "|---------|--------|------|-----|-----|--------"+
			"|-------------|---------|")

		for _, r := range group {
			speedup := 1.0
			if fastest > 0 && r.Mean > 0 {
				speedup = float64(r.Mean) / float64(fastest)
			}

			fmt.Fprintf(w, "| %s | %d | %s | %s | %s | %s | %s | %.2fx |\n",
				r.Backend,
				r.Trials,
				formatDuration(r.Mean),
				formatDuration(r.Min),
				formatDuration(r.Max),
				formatDuration(r.StdDev),
				r.InsertSemantics,
				speedup,
			)
		}

		fmt.Fprintln(w)
	}

	return nil
}

// GenerateJSON writes results as JSON to w.
func GenerateJSON(w io.Writer, results []harness.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(results)
}

func workloadOrder(results []harness.Result) []string {
	var order []string

	seen := make(map[string]bool)

	for _, r := range results {
		if !seen[r.Workload] {
			seen[r.Workload] = true
			order = append(order, r.Workload)
		}
	}

	return order
}

func filterWorkload(results []harness.Result, name string) []harness.Result {
	var group []harness.Result

	for _, r := range results {
		if r.Workload == name {
			group = append(group, r)
		}
	}

	return group
}

func digestsMatch(group []harness.Result) bool {
	if len(group) < 2 {
		return true
	}

	first := group[0].Digest
	for _, r := range group[1:] {
		if r.Digest != first {
			return false
		}
	}

	return true
}

func findFastest(group []harness.Result) time.Duration {
	fastest := time.Duration(math.MaxInt64)
	for _, r := range group {
		if r.Mean > 0 && r.Mean < fastest {
			fastest = r.Mean
		}
	}

	if fastest == math.MaxInt64 {
		return 0
	}

	return fastest
}

func formatDuration(d time.Duration) string {
	switch {
	case d == 0:
		return "-"
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%.2fµs", float64(d.Nanoseconds())/1e3)
	case d < time.Second:
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}
