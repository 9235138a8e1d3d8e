package cli

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/spf13/cobra"
	"github.com/tuzuminami/Collatz/internal/collatz"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	rootMaxSteps int
	rootFormat   string
)

var rootCmd = &cobra.Command{
	Use:   "collatz <number>",
	Short: "Compute the Collatz (3n+1) sequence for a positive integer",
	Long: `Collatz computes the 3n+1 sequence for a starting number: even values
are halved, odd values are tripled plus one, until the value reaches 1.

Starting numbers may be arbitrarily large. Sequences that do not reach 1
within --max-steps transformations stop early and are reported as
truncated.

Example:
  collatz 27
  collatz 27 --max-steps 50
  collatz 97 --format json
  collatz serve --port 8080`,
	Args: cobra.ExactArgs(1),
	RunE: runRoot,
}

func init() {
	rootCmd.Flags().IntVar(&rootMaxSteps, "max-steps", collatz.DefaultMaxSteps, "maximum transformations before the sequence is cut off")
	rootCmd.Flags().StringVar(&rootFormat, "format", "text", "output format: text or json")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("collatz version {{.Version}}\n")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// stepJSON is one sequence entry in the json output format. It matches
// the documents served by the /api/collatz endpoint.
type stepJSON struct {
	Step      int      `json:"step"`
	Value     *big.Int `json:"value"`
	Operation string   `json:"operation"`
}

// resultJSON is the json output format document.
type resultJSON struct {
	Steps     []stepJSON `json:"steps"`
	Truncated bool       `json:"truncated"`
	MaxSteps  int        `json:"max_steps"`
}

func runRoot(cmd *cobra.Command, args []string) error {
	if rootFormat != "text" && rootFormat != "json" {
		return fmt.Errorf("unknown format %q, expected text or json", rootFormat)
	}

	maxSteps := rootMaxSteps
	if maxSteps <= 0 {
		maxSteps = collatz.DefaultMaxSteps
	}

	start, err := collatz.ParseStart(args[0])
	if err != nil {
		return err
	}

	result, err := collatz.Generate(start, maxSteps)
	if err != nil {
		return err
	}

	if rootFormat == "json" {
		return printJSON(cmd, result, maxSteps)
	}
	return printText(cmd, result, maxSteps)
}

// printText writes one line per sequence value to stdout. A truncated
// sequence gets a note on stderr; truncation is a result, not an error,
// so the exit status stays zero.
func printText(cmd *cobra.Command, result *collatz.Result, maxSteps int) error {
	out := cmd.OutOrStdout()
	for _, step := range result.Steps {
		fmt.Fprintf(out, "Step %2d: %s\n", step.Index, step.Value)
	}
	if result.Truncated {
		fmt.Fprintf(cmd.ErrOrStderr(), "sequence stopped at the %d-step limit before reaching 1\n", maxSteps)
	}
	return nil
}

// printJSON writes the sequence as an indented JSON document to stdout.
func printJSON(cmd *cobra.Command, result *collatz.Result, maxSteps int) error {
	doc := resultJSON{
		Steps:     make([]stepJSON, len(result.Steps)),
		Truncated: result.Truncated,
		MaxSteps:  maxSteps,
	}
	for i, step := range result.Steps {
		doc.Steps[i] = stepJSON{Step: step.Index, Value: step.Value, Operation: step.Operation}
	}

	output, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(output))

	return nil
}
