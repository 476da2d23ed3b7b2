package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dr8co/langkit/iostream"
	"github.com/dr8co/langkit/scanner"
	"github.com/dr8co/langkit/symbol"
	"github.com/dr8co/langkit/symref"
	"github.com/dr8co/langkit/symtab"
)

func newLoadCmd(_ *rootFlags) *cobra.Command {
	var in string

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Read back <in>.tokens/.symbols written by dump, printing tokens resolved against the recalled symbol table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if in == "" {
				return fmt.Errorf("langkit load: -i/--in is required")
			}

			vv, err := loadSymbols(in + ".symbols")
			if err != nil {
				return fmt.Errorf("langkit load: %w", err)
			}

			tokensFile, err := os.Open(in + ".tokens")
			if err != nil {
				return fmt.Errorf("langkit load: %w", err)
			}
			defer func() { _ = tokensFile.Close() }()
			tokensStream := iostream.NewBuffered(in+".tokens", tokensFile)

			out := cmd.OutOrStdout()
			sc := scanner.NewBinaryScanner(tokensStream)
			for sc.Continues() {
				tok := sc.Current()
				if ref, ok := tok.SymbolRef(); ok {
					if sym, found := vv.Resolve(ref); found {
						fmt.Fprintf(out, "%04x %s\n", uint32(tok.Category()), sym.Name)
						sc.Next()
						continue
					}
				}
				fmt.Fprintf(out, "%04x\n", uint32(tok.Opcode))
				sc.Next()
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "input basename (as passed to dump --out)")
	return cmd
}

// loadSymbols reads a flat .symbols file — one global-scope record
// after another, as written by dump — into a single-vector
// [symtab.VectorVector].
func loadSymbols(path string) (*symtab.VectorVector, error) {
	//nolint:gosec // the file path is operator-supplied CLI input
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	s := iostream.NewBuffered(path, f)
	vv := symtab.NewVectorVector()
	global := vv.Push()

	for {
		rec, err := symbol.ReadRecalled(s, symref.Global, int32(global.Len()))
		if err != nil {
			if errors.Is(err, io.EOF) || s.HasEnded() {
				break
			}
			return nil, err
		}
		global.Append(rec)
	}
	return vv, nil
}
