package workload

import (
	"testing"

	"github.com/ecsmark/ecsmark/backend"
)

// Runs the full workload x backend matrix under the standard Go
// benchmark driver. Reset happens outside the timer; the hot region is
// what gets attributed, mirroring the harness.
func BenchmarkMatrix(b *testing.B) {
	p := DefaultParams()

	for _, w := range All() {
		for _, name := range backend.Names() {
			b.Run(w.Name+"/"+name, func(b *testing.B) {
				be, err := backend.Open(name)
				if err != nil {
					b.Fatal(err)
				}

				for b.Loop() {
					b.StopTimer()
					if err := w.Setup(be, p); err != nil {
						b.Fatal(err)
					}
					b.StartTimer()

					if err := w.Hot(be, p); err != nil {
						b.Fatal(err)
					}
				}

				b.ReportAllocs()
			})
		}
	}
}
