package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-slox/internal/ast"
	ierrors "github.com/cwbudde/go-slox/internal/errors"
	"github.com/cwbudde/go-slox/internal/interp"
	"github.com/cwbudde/go-slox/internal/options"
	"github.com/spf13/cobra"
)

var (
	evalExpr    string
	dumpAST     bool
	trace       bool
	optionsPath string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a program file or expression",
	Long: `Execute a program from a file or inline expression.

Examples:
  # Run a script file
  slox run script.slox

  # Evaluate inline code
  slox run -e "print 1 + 2;"

  # Dump the parsed AST before running
  slox run --dump-ast script.slox

  # Trace statement execution
  slox run --trace script.slox`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "run inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST before running")
	runCmd.Flags().BoolVar(&trace, "trace", false, "trace each statement's environment depth before executing it")
	runCmd.Flags().StringVar(&optionsPath, "options", "", "YAML file of interpreter tuning options")
}

func runScript(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(evalExpr, args)
	if err != nil {
		ExitCode = 64
		return err
	}

	stmts, locals, compileErrs := compile(source, filename)
	if len(compileErrs) > 0 {
		fmt.Fprintln(os.Stderr, ierrors.FormatErrors(compileErrs))
		ExitCode = 65
		return fmt.Errorf("compilation failed with %d error(s)", len(compileErrs))
	}

	if dumpAST {
		fmt.Println("AST:")
		for _, s := range stmts {
			fmt.Println(s.String())
		}
		fmt.Println()
	}

	opts := options.Default()
	if optionsPath != "" {
		loaded, err := options.Load(optionsPath)
		if err != nil {
			ExitCode = 64
			return fmt.Errorf("failed to load options file %s: %w", optionsPath, err)
		}
		opts = loaded
	}

	it := interp.NewInterpreter(os.Stdout)
	it.SetMaxCallDepth(opts.MaxCallDepth)
	it.SetLocals(locals)

	if trace {
		it.SetTrace(func(stmt ast.Stmt, depth int) {
			fmt.Fprintf(os.Stderr, "[trace] env depth %d: %s\n", depth, stmt.String())
		})
	}

	if err := it.Interpret(stmts); err != nil {
		reportRuntimeError(err)
		ExitCode = 70
		return fmt.Errorf("execution failed")
	}

	return nil
}

// reportRuntimeError prints a runtime failure the way spec.md §6 specifies:
// "<message>\n[line N]" for a RuntimeError, or a plain message for the
// driver-level recursion guard (interp.ErrMaxCallDepthExceeded), which is
// not one of spec.md §7's six kinds.
func reportRuntimeError(err error) {
	if rerr, ok := err.(*interp.RuntimeError); ok {
		fmt.Fprintln(os.Stderr, interp.FormatRuntimeError(rerr))
		return
	}
	fmt.Fprintln(os.Stderr, err.Error())
}
