package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuzuminami/Collatz/internal/collatz"
)

// captureRoot runs the root command against one argument and returns
// what it wrote to stdout and stderr. Flag variables must be set by the
// caller beforehand.
func captureRoot(t *testing.T, arg string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	defer rootCmd.SetOut(nil)
	defer rootCmd.SetErr(nil)

	err := runRoot(rootCmd, []string{arg})
	return stdout.String(), stderr.String(), err
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRootCommand_TextOutput(t *testing.T) {
	rootMaxSteps = collatz.DefaultMaxSteps
	rootFormat = "text"

	stdout, stderr, err := captureRoot(t, "6")
	require.NoError(t, err)
	assert.Empty(t, stderr)

	g := newGoldie(t)
	g.Assert(t, "sequence_6", []byte(stdout))
}

func TestRootCommand_TruncatedText(t *testing.T) {
	rootMaxSteps = 5
	rootFormat = "text"

	stdout, stderr, err := captureRoot(t, "27")
	require.NoError(t, err, "truncation is not an error")

	g := newGoldie(t)
	g.Assert(t, "sequence_27_capped", []byte(stdout))

	assert.Contains(t, stderr, "stopped at the 5-step limit")
}

func TestRootCommand_JSONOutput(t *testing.T) {
	rootMaxSteps = collatz.DefaultMaxSteps
	rootFormat = "json"

	stdout, stderr, err := captureRoot(t, "5")
	require.NoError(t, err)
	assert.Empty(t, stderr)

	g := newGoldie(t)
	g.Assert(t, "sequence_5_json", []byte(stdout))
}

func TestRootCommand_JSONTruncated(t *testing.T) {
	rootMaxSteps = 5
	rootFormat = "json"

	stdout, stderr, err := captureRoot(t, "27")
	require.NoError(t, err)
	assert.Empty(t, stderr, "the truncation note belongs to text mode only")

	var doc resultJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))

	assert.True(t, doc.Truncated)
	assert.Equal(t, 5, doc.MaxSteps)
	require.Len(t, doc.Steps, 6)
	assert.Equal(t, "27", doc.Steps[0].Value.String())
	assert.Equal(t, "31", doc.Steps[5].Value.String())
}

func TestRootCommand_LargeNumber(t *testing.T) {
	rootMaxSteps = collatz.DefaultMaxSteps
	rootFormat = "text"

	// 2^64-1 is odd, so step 1 exceeds 64-bit range
	stdout, _, err := captureRoot(t, "18446744073709551615")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Step  0: 18446744073709551615")
	assert.Contains(t, stdout, "Step  1: 55340232221128654846")
}

func TestRootCommand_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		wantErr string
	}{
		{"letters", "abc", "is not an integer"},
		{"decimal", "6.5", "is not an integer"},
		{"negative", "-5", "is not a positive integer"},
		{"zero", "0", "is not a positive integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rootMaxSteps = collatz.DefaultMaxSteps
			rootFormat = "text"

			stdout, _, err := captureRoot(t, tt.arg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Empty(t, stdout)
			assert.True(t, collatz.IsInvalidInput(err))
		})
	}
}

func TestRootCommand_UnknownFormat(t *testing.T) {
	rootMaxSteps = collatz.DefaultMaxSteps
	rootFormat = "yaml"

	_, _, err := captureRoot(t, "6")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "yaml"`)
}

func TestRootCommand_MaxStepsNormalized(t *testing.T) {
	rootMaxSteps = 0
	rootFormat = "json"

	stdout, _, err := captureRoot(t, "6")
	require.NoError(t, err)

	var doc resultJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))

	assert.Equal(t, collatz.DefaultMaxSteps, doc.MaxSteps)
	assert.False(t, doc.Truncated)
}
