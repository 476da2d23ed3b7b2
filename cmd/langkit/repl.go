package main

import (
	"os/user"

	"github.com/spf13/cobra"

	"github.com/dr8co/langkit/repl"
)

func newReplCmd(flags *rootFlags) *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive demo-grammar REPL",
		RunE: func(_ *cobra.Command, _ []string) error {
			username := "unknown"
			if usr, err := user.Current(); err == nil {
				username = usr.Username
			}
			repl.Start(username, repl.Options{NoColor: noColor, Debug: flags.debug})
			return nil
		},
	}
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable styled output")
	return cmd
}
