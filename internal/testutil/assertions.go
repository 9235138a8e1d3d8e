package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuzuminami/Collatz/internal/collatz"
)

// SequenceValues flattens a result to int64 step values for compact
// comparisons. Fails the test when a value does not fit in an int64.
func SequenceValues(t *testing.T, r *collatz.Result) []int64 {
	t.Helper()

	require.NotNil(t, r, "result is nil")
	out := make([]int64, len(r.Steps))
	for i, s := range r.Steps {
		require.True(t, s.Value.IsInt64(), "step %d does not fit int64", i)
		out[i] = s.Value.Int64()
	}
	return out
}

// AssertSequenceValues asserts that a result holds exactly the expected
// step values in order.
func AssertSequenceValues(t *testing.T, r *collatz.Result, expected []int64) {
	t.Helper()
	assert.Equal(t, expected, SequenceValues(t, r), "sequence values mismatch")
}

// AssertConverged asserts that a sequence reached 1 within the cap.
func AssertConverged(t *testing.T, r *collatz.Result) {
	t.Helper()

	require.NotNil(t, r, "result is nil")
	assert.False(t, r.Truncated, "sequence should have converged")
	require.NotEmpty(t, r.Steps, "sequence has no steps")
	assert.Equal(t, "1", r.Steps[len(r.Steps)-1].Value.String(), "sequence should end at 1")
}

// AssertTruncated asserts that a sequence was cut off by the step cap
// before reaching 1.
func AssertTruncated(t *testing.T, r *collatz.Result) {
	t.Helper()

	require.NotNil(t, r, "result is nil")
	assert.True(t, r.Truncated, "sequence should have been truncated")
	require.NotEmpty(t, r.Steps, "sequence has no steps")
	assert.NotEqual(t, "1", r.Steps[len(r.Steps)-1].Value.String(), "truncated sequence should not end at 1")
}
