// Package cmd implements the slox command-line driver: the thin
// lexer/parser/resolver/evaluator pipeline wiring that sits outside
// spec.md's evaluator core (SPEC_FULL.md §1.1), grounded on the teacher's
// cmd/dwscript/cmd package (a cobra root command plus one file per
// sub-command).
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

// ExitCode is set by whichever sub-command handler fails, so main can exit
// with the status spec.md §6 assigns: 0 success, 64 usage error, 65 static
// error, 70 runtime error.
var ExitCode int

var rootCmd = &cobra.Command{
	Use:   "slox",
	Short: "slox interpreter",
	Long: `slox is a tree-walking interpreter for a small dynamically-typed,
class-based scripting language: lexer, recursive-descent parser, a static
resolver pass, and an evaluator over environments, closures, and classes.`,
	Version:       Version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("slox version {{.Version}} (%s)\n", GitCommit))
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if ExitCode == 0 {
			ExitCode = 64
		}
	}
	return ExitCode
}
