package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dr8co/langkit/demo"
	"github.com/dr8co/langkit/errlog"
)

func newParseCmd(flags *rootFlags) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse a demo-grammar source file, reporting syntax errors and hints",
		RunE: func(_ *cobra.Command, _ []string) error {
			if file == "" {
				return fmt.Errorf("langkit parse: -f/--file is required")
			}
			//nolint:gosec // the file path is operator-supplied CLI input
			content, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("langkit parse: %w", err)
			}

			log := errlog.New(newLogger(flags))
			_, _, parseErr := demo.Run(string(content), file, nil, log)
			if parseErr != nil {
				return fmt.Errorf("langkit parse: %w", parseErr)
			}

			fmt.Printf("%d error(s), %d warning(s), %d hint(s)\n", log.Errors(), log.Warnings(), log.Hints())
			if log.Errors() > 0 {
				return fmt.Errorf("langkit parse: %d syntax error(s)", log.Errors())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "source file to parse")
	return cmd
}
