package selection

import (
	"math/rand/v2"
	"testing"
)

// ============================================================================
// Setup Helpers
// ============================================================================

// setupScattered returns n disjoint ranges in shuffled order.
func setupScattered(b *testing.B, n int) []Range {
	b.Helper()
	rng := rand.New(rand.NewPCG(3, 5))
	ranges := make([]Range, n)
	for i := range ranges {
		ranges[i] = NewRange(i*10, i*10+5)
	}
	rng.Shuffle(n, func(i, j int) { ranges[i], ranges[j] = ranges[j], ranges[i] })
	return ranges
}

// setupOverlapping returns n ranges that all merge into one.
func setupOverlapping(b *testing.B, n int) []Range {
	b.Helper()
	ranges := make([]Range, n)
	for i := range ranges {
		ranges[i] = NewRange(i*3+8, i*3)
	}
	return ranges
}

// ============================================================================
// Normalize Benchmarks
// ============================================================================

func BenchmarkNormalizeScattered(b *testing.B) {
	list := MustRangeList(WithRanges(setupScattered(b, 1000)...))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = list.Normalize()
	}
}

func BenchmarkNormalizeOverlapping(b *testing.B) {
	list := MustRangeList(WithRanges(setupOverlapping(b, 1000)...))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = list.Normalize()
	}
}

func BenchmarkNormalizeSingle(b *testing.B) {
	var list RangeList
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = list.Normalize()
	}
}

// ============================================================================
// Mutation Benchmarks
// ============================================================================

func BenchmarkAddRange(b *testing.B) {
	list := MustRangeList(WithRanges(setupScattered(b, 100)...)).Normalize()
	r := NewRange(10_000, 10_005)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = list.AddRange(r)
	}
}

func BenchmarkUpdateFocusedRange(b *testing.B) {
	list := MustRangeList(WithRanges(setupScattered(b, 100)...)).Normalize()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = list.UpdateFocusedRange(Range.Flip)
	}
}
