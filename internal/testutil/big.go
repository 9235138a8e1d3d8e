package testutil

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

// Big parses a base-10 literal into a big.Int, failing the test on a
// bad literal. Keeps wide fixture values readable at call sites.
func Big(t *testing.T, s string) *big.Int {
	t.Helper()

	n, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, "bad big.Int literal %q", s)
	return n
}
