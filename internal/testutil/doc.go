// Package testutil provides shared test helpers for collatz.
//
// # Helpers
//
//   - Big(t, s) - parses a base-10 literal into a big.Int
//   - SequenceValues(t, r) - flattens a result to int64 step values
//   - AssertSequenceValues(t, r, expected) - compares step values
//   - AssertConverged(t, r), AssertTruncated(t, r) - outcome checks
//
// # Usage
//
// Import the package in your test files:
//
//	import "github.com/tuzuminami/Collatz/internal/testutil"
//
// Then use the helpers:
//
//	func TestSomething(t *testing.T) {
//	    r, err := collatz.Generate(testutil.Big(t, "27"), 50)
//	    require.NoError(t, err)
//	    testutil.AssertTruncated(t, r)
//	}
package testutil
