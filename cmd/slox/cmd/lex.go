package cmd

import (
	"fmt"

	"github.com/cwbudde/go-slox/internal/lexer"
	"github.com/spf13/cobra"
)

var (
	lexEvalExpr string
	showPos     bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a file or expression and print the token stream",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
}

func runLex(_ *cobra.Command, args []string) error {
	source, _, err := readSource(lexEvalExpr, args)
	if err != nil {
		ExitCode = 64
		return err
	}

	l := lexer.New(source)
	for _, tok := range l.ScanTokens() {
		if showPos {
			fmt.Printf("%-12s %-20q %s\n", tok.Type, tok.Lexeme, tok.Pos)
		} else {
			fmt.Printf("%-12s %q\n", tok.Type, tok.Lexeme)
		}
	}

	if errs := l.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Println(e)
		}
		ExitCode = 65
		return fmt.Errorf("lexing failed with %d error(s)", len(errs))
	}
	return nil
}
