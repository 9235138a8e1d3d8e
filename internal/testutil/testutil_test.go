package testutil

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuzuminami/Collatz/internal/collatz"
)

func TestBig(t *testing.T) {
	t.Parallel()

	n := Big(t, "340282366920938463463374607431768211457")
	assert.Equal(t, "340282366920938463463374607431768211457", n.String())
	assert.False(t, n.IsInt64())
}

func TestSequenceValues(t *testing.T) {
	t.Parallel()

	r, err := collatz.Generate(big.NewInt(6), collatz.DefaultMaxSteps)
	require.NoError(t, err)

	assert.Equal(t, []int64{6, 3, 10, 5, 16, 8, 4, 2, 1}, SequenceValues(t, r))
}

func TestAssertOutcomes(t *testing.T) {
	t.Parallel()

	converged, err := collatz.Generate(big.NewInt(6), collatz.DefaultMaxSteps)
	require.NoError(t, err)
	AssertConverged(t, converged)
	AssertSequenceValues(t, converged, []int64{6, 3, 10, 5, 16, 8, 4, 2, 1})

	truncated, err := collatz.Generate(big.NewInt(27), 5)
	require.NoError(t, err)
	AssertTruncated(t, truncated)
	AssertSequenceValues(t, truncated, []int64{27, 82, 41, 124, 62, 31})
}
