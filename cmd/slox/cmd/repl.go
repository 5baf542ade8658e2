package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/cwbudde/go-slox/internal/ast"
	ierrors "github.com/cwbudde/go-slox/internal/errors"
	"github.com/cwbudde/go-slox/internal/interp"
	"github.com/cwbudde/go-slox/internal/options"
	"github.com/spf13/cobra"
)

var replOptionsPath string

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive prompt",
	Long: `Read one line at a time and run it through the full pipeline. With the
autoPrint option set, a line that is a single expression statement has its
value printed. A runtime error is reported to stderr and the prompt continues
(spec.md §4.E: in interactive mode, control returns to the prompt).`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().StringVar(&replOptionsPath, "options", "", "YAML file of interpreter tuning options")
}

func runRepl(_ *cobra.Command, _ []string) error {
	opts := options.Default()
	if replOptionsPath != "" {
		loaded, err := options.Load(replOptionsPath)
		if err != nil {
			ExitCode = 64
			return fmt.Errorf("failed to load options file %s: %w", replOptionsPath, err)
		}
		opts = loaded
	}

	it := interp.NewInterpreter(os.Stdout)
	it.SetMaxCallDepth(opts.MaxCallDepth)

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Fprint(os.Stderr, "> ")
	for scanner.Scan() {
		line := scanner.Text()

		stmts, locals, compileErrs := compile(line, "<repl>")
		if len(compileErrs) > 0 {
			fmt.Fprintln(os.Stderr, ierrors.FormatErrors(compileErrs))
			fmt.Fprint(os.Stderr, "> ")
			continue
		}
		it.SetLocals(locals)

		if opts.AutoPrint {
			if exprStmt, ok := soleExpressionStmt(stmts); ok {
				v, err := it.EvalExpr(exprStmt.Expr)
				if err != nil {
					reportRuntimeError(err)
				} else {
					fmt.Println(v.String())
				}
				fmt.Fprint(os.Stderr, "> ")
				continue
			}
		}

		if err := it.Interpret(stmts); err != nil {
			reportRuntimeError(err)
		}
		fmt.Fprint(os.Stderr, "> ")
	}
	fmt.Fprintln(os.Stderr)
	return nil
}

func soleExpressionStmt(stmts []ast.Stmt) (*ast.ExpressionStmt, bool) {
	if len(stmts) != 1 {
		return nil, false
	}
	s, ok := stmts[0].(*ast.ExpressionStmt)
	return s, ok
}
