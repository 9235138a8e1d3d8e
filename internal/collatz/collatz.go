// Package collatz computes Collatz (3n+1) sequences.
//
// A sequence starts from a positive integer and repeatedly halves even
// values and applies 3n+1 to odd values until it reaches 1. Convergence
// is conjectured for every positive integer but not proven, so
// generation is bounded by a step cap and results carry a truncated
// flag when the cap was hit first.
//
// Values are arbitrary precision. Intermediate values can exceed any
// fixed-width integer for large seeds, so the package works with
// math/big throughout.
package collatz

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// DefaultMaxSteps bounds how many transformations a sequence may take
// before it is cut off.
const DefaultMaxSteps = 1000

// Operation labels attached to each step.
const (
	OpInitial = "initial value"
	OpHalve   = "n / 2"
	OpTriple  = "3n + 1"
)

// Step records one value in a sequence and the operation that produced
// it. Step 0 always carries the starting value.
type Step struct {
	Index     int
	Value     *big.Int
	Operation string
}

// Result is a computed sequence. Truncated reports that the step cap
// was reached before the sequence converged to 1.
type Result struct {
	Steps     []Step
	Truncated bool
}

// ErrorKind classifies why an input was rejected.
type ErrorKind int

const (
	// KindMissing means no value was supplied at all.
	KindMissing ErrorKind = iota
	// KindNotInteger means the value is not a base-10 integer.
	KindNotInteger
	// KindNotPositive means the value is an integer but not >= 1.
	KindNotPositive
)

// InvalidInputError reports a start value that cannot begin a sequence.
// Value holds the offending input as supplied, empty when none was.
type InvalidInputError struct {
	Kind  ErrorKind
	Value string
}

func (e *InvalidInputError) Error() string {
	switch e.Kind {
	case KindNotInteger:
		return fmt.Sprintf("invalid input: %q is not an integer", e.Value)
	case KindNotPositive:
		return fmt.Sprintf("invalid input: %s is not a positive integer", e.Value)
	default:
		return "invalid input: no number supplied"
	}
}

// IsInvalidInput checks if an error is an InvalidInputError.
func IsInvalidInput(err error) bool {
	var ie *InvalidInputError
	return errors.As(err, &ie)
}

var (
	one   = big.NewInt(1)
	three = big.NewInt(3)
)

// Generate computes the Collatz sequence starting from start.
//
// Step 0 is the initial value. Each following step halves an even value
// or applies 3n+1 to an odd one, stopping at 1 or after maxSteps
// transformations, whichever comes first. A maxSteps <= 0 selects
// DefaultMaxSteps. The result is deterministic and start is not
// modified.
func Generate(start *big.Int, maxSteps int) (*Result, error) {
	if start == nil {
		return nil, &InvalidInputError{Kind: KindMissing}
	}
	if start.Sign() < 1 {
		return nil, &InvalidInputError{Kind: KindNotPositive, Value: start.String()}
	}
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}

	current := new(big.Int).Set(start)
	steps := make([]Step, 0, 32)
	steps = append(steps, Step{Index: 0, Value: new(big.Int).Set(current), Operation: OpInitial})

	for i := 0; i < maxSteps && current.Cmp(one) != 0; i++ {
		var op string
		if current.Bit(0) == 0 {
			current.Rsh(current, 1)
			op = OpHalve
		} else {
			current.Mul(current, three)
			current.Add(current, one)
			op = OpTriple
		}
		steps = append(steps, Step{Index: i + 1, Value: new(big.Int).Set(current), Operation: op})
	}

	return &Result{Steps: steps, Truncated: current.Cmp(one) != 0}, nil
}

// ParseStart converts user input to a sequence start value. Only
// base-10 integers with an optional sign are accepted; surrounding
// whitespace is ignored.
func ParseStart(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, &InvalidInputError{Kind: KindMissing}
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, &InvalidInputError{Kind: KindNotInteger, Value: s}
	}
	if n.Sign() < 1 {
		return nil, &InvalidInputError{Kind: KindNotPositive, Value: s}
	}
	return n, nil
}
