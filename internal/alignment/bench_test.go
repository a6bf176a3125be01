package alignment_test

import (
	"testing"

	"swingmatch/internal/alignment"
	"swingmatch/internal/resample"
	"swingmatch/internal/testsupport"
)

// benchmarkAlign runs Align on two random trajectories of n frames.
func benchmarkAlign(b *testing.B, n int, opts alignment.Options) {
	ta, err := resample.Resample(testsupport.RandomMotion(1, n), n)
	if err != nil {
		b.Fatalf("resample: %v", err)
	}
	tb, err := resample.Resample(testsupport.RandomMotion(2, n), n)
	if err != nil {
		b.Fatalf("resample: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := alignment.Align(ta, tb, &opts); err != nil {
			b.Fatalf("Align failed: %v", err)
		}
	}
}

// BenchmarkAlign_TwoRowsDefault benchmarks the production configuration.
func BenchmarkAlign_TwoRowsDefault(b *testing.B) {
	benchmarkAlign(b, resample.DefaultFrames, alignment.DefaultOptions())
}

// BenchmarkAlign_FullMatrixPath benchmarks full-table alignment with backtracking.
func BenchmarkAlign_FullMatrixPath(b *testing.B) {
	benchmarkAlign(b, resample.DefaultFrames, alignment.Options{MemoryMode: alignment.FullMatrix, ReturnPath: true})
}

// BenchmarkAlign_Window benchmarks a Sakoe-Chiba band of 20 frames.
func BenchmarkAlign_Window(b *testing.B) {
	benchmarkAlign(b, resample.DefaultFrames, alignment.Options{Window: 20, MemoryMode: alignment.TwoRows})
}
