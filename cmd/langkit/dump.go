package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dr8co/langkit/demo"
	"github.com/dr8co/langkit/errlog"
	"github.com/dr8co/langkit/iostream"
	"github.com/dr8co/langkit/symbol"
	"github.com/dr8co/langkit/symref"
)

func newDumpCmd(flags *rootFlags) *cobra.Command {
	var file, out string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Parse a source file and write its intermediate code to <out>.tokens/.symbols",
		RunE: func(_ *cobra.Command, _ []string) error {
			if file == "" {
				return fmt.Errorf("langkit dump: -f/--file is required")
			}
			if out == "" {
				out = file
			}

			//nolint:gosec // the file path is operator-supplied CLI input
			content, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("langkit dump: %w", err)
			}

			tokensFile, err := os.Create(out + ".tokens")
			if err != nil {
				return fmt.Errorf("langkit dump: %w", err)
			}
			defer func() { _ = tokensFile.Close() }()
			tokensStream := iostream.NewBuffered(out+".tokens", tokensFile)

			log := errlog.New(newLogger(flags))
			p, _, parseErr := demo.Run(string(content), file, tokensStream, log)
			if parseErr != nil {
				return fmt.Errorf("langkit dump: %w", parseErr)
			}
			if log.Errors() > 0 {
				return fmt.Errorf("langkit dump: %d syntax error(s), not dumping", log.Errors())
			}

			symbolsFile, err := os.Create(out + ".symbols")
			if err != nil {
				return fmt.Errorf("langkit dump: %w", err)
			}
			defer func() { _ = symbolsFile.Close() }()
			symbolsStream := iostream.NewBuffered(out+".symbols", symbolsFile)

			for _, sym := range p.GlobalTable().Entries() {
				parentRef := symref.NoneRef
				if sym.Parent != nil {
					parentRef = sym.Parent.Ref()
				}
				if _, err := symbol.WriteTo(symbolsStream, sym.Symbol, parentRef); err != nil {
					return fmt.Errorf("langkit dump: %w", err)
				}
			}

			fmt.Printf("wrote %s.tokens and %s.symbols\n", out, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "source file to parse")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output basename (defaults to the input file name)")
	return cmd
}
