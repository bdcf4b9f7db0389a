package retry

import (
	"context"
	"fmt"
	"testing"
)

// BenchmarkBackoff_ImmediateSuccess measures overhead when the first
// attempt succeeds (the common case).
func BenchmarkBackoff_ImmediateSuccess(b *testing.B) {
	bo := &Backoff{MaxAttempts: 3}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bo.Do(ctx, func(_ int) error { return nil }) //nolint:errcheck
	}
}

// BenchmarkBreaker_ClosedPath benchmarks the fast path when the
// breaker is closed and the operation succeeds.
func BenchmarkBreaker_ClosedPath(b *testing.B) {
	var br Breaker

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		br.Execute(func() error { return nil }) //nolint:errcheck
	}
}

// BenchmarkBackoff_PermanentError measures early-exit overhead.
func BenchmarkBackoff_PermanentError(b *testing.B) {
	bo := &Backoff{MaxAttempts: 3}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bo.Do(ctx, func(_ int) error { //nolint:errcheck
			return Permanent(fmt.Errorf("fatal"))
		})
	}
}
