package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpThenLoadRoundTripsTokensAndSymbols(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "prog.lk")
	require.NoError(t, os.WriteFile(src, []byte("let x = 1 + 2; let y = x + 3;"), 0o600))
	out := filepath.Join(dir, "prog")

	dumpCmd := newRootCmd()
	dumpCmd.SetArgs([]string{"dump", "-f", src, "-o", out})
	require.NoError(t, dumpCmd.Execute())

	require.FileExists(t, out+".tokens")
	require.FileExists(t, out+".symbols")

	var stdout bytes.Buffer
	loadCmd := newRootCmd()
	loadCmd.SetOut(&stdout)
	loadCmd.SetArgs([]string{"load", "-i", out})
	require.NoError(t, loadCmd.Execute())

	printed := stdout.String()
	assert.Contains(t, printed, "x")
	assert.Contains(t, printed, "y")
}

func TestParseReportsSyntaxErrorCount(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bad.lk")
	require.NoError(t, os.WriteFile(src, []byte("let = 1;"), 0o600))

	parseCmd := newRootCmd()
	parseCmd.SetArgs([]string{"parse", "-f", src})
	err := parseCmd.Execute()
	require.Error(t, err)
}
