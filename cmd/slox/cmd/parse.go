package cmd

import (
	"fmt"
	"os"

	ierrors "github.com/cwbudde/go-slox/internal/errors"
	"github.com/spf13/cobra"
)

var parseEvalExpr string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a file or expression and print the AST, without running it",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "parse inline code instead of reading from file")
}

func runParse(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(parseEvalExpr, args)
	if err != nil {
		ExitCode = 64
		return err
	}

	stmts, _, compileErrs := compile(source, filename)
	if len(compileErrs) > 0 {
		fmt.Fprintln(os.Stderr, ierrors.FormatErrors(compileErrs))
		ExitCode = 65
		return fmt.Errorf("parsing failed with %d error(s)", len(compileErrs))
	}

	for _, s := range stmts {
		fmt.Println(s.String())
	}
	return nil
}
