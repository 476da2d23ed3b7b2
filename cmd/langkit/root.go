package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

// rootFlags are shared across subcommands: -d/--debug, a flag name kept
// from the teacher. Each subcommand declares its own -f/--file.
type rootFlags struct {
	debug bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:     "langkit",
		Short:   "langkit drives the demo grammar through the recursive-descent parser toolkit",
		Version: version,
	}
	root.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug-level logging")

	root.AddCommand(
		newLexCmd(flags),
		newParseCmd(flags),
		newDumpCmd(flags),
		newLoadCmd(flags),
		newReplCmd(flags),
	)
	return root
}

// newLogger returns a [logrus.Logger] at Info level, or Debug level
// under -d/--debug.
func newLogger(flags *rootFlags) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if flags.debug {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}
	return l
}
