package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dr8co/langkit/demo"
	"github.com/dr8co/langkit/opcode"
	"github.com/dr8co/langkit/scanner"
)

func newLexCmd(flags *rootFlags) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "lex",
		Short: "Tokenize a demo-grammar source file and print its token stream",
		RunE: func(_ *cobra.Command, _ []string) error {
			if file == "" {
				return fmt.Errorf("langkit lex: -f/--file is required")
			}
			//nolint:gosec // the file path is operator-supplied CLI input
			content, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("langkit lex: %w", err)
			}

			def := demo.NewDefinition()
			sc := scanner.NewSourceScanner(def, string(content), file)
			for sc.Continues() {
				tok := sc.Current()
				printToken(tok)
				sc.Next()
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "source file to tokenize")
	return cmd
}

func printToken(tok interface {
	Category() opcode.Code
	Text() string
}) {
	if tok.Category() == opcode.Identifier || tok.Category() == opcode.Number || tok.Category() == opcode.String {
		fmt.Printf("%04x %q\n", uint32(tok.Category()), tok.Text())
		return
	}
	fmt.Printf("%04x\n", uint32(tok.Category()))
}
