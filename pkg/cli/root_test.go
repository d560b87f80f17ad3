package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findCommand(t *testing.T, root *cobra.Command, name string) *cobra.Command {
	t.Helper()
	for _, c := range root.Commands() {
		if c.Name() == name {
			return c
		}
	}
	t.Fatalf("command %q not registered", name)
	return nil
}

func TestRootCommandWiring(t *testing.T) {
	root := newRootCmd()

	assert.True(t, root.SilenceUsage)
	assert.True(t, root.SilenceErrors)

	for _, name := range []string{
		"history", "flightlist", "rawdata", "query", "cancel",
		"config", "cache", "version", "completion",
	} {
		findCommand(t, root, name)
	}
}

func TestHistoryCommandFlags(t *testing.T) {
	hist := findCommand(t, newRootCmd(), "history")

	for _, name := range []string{
		"start", "stop", "duration", "icao24", "callsign",
		"departure", "arrival", "airport", "bounds", "limit",
		"output", "show-query", "no-cache", "progress",
	} {
		assert.NotNil(t, hist.Flags().Lookup(name), "flag --%s", name)
	}
}

func TestHistoryShowQuery(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{
		"history", "--show-query",
		"--icao24", "485020",
		"--start", "2025-01-01 10:00:00",
		"--stop", "2025-01-01 11:00:00",
	})

	require.NoError(t, root.Execute())
}

func TestHistoryRejectsBadDuration(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"history", "--start", "2025-01-01", "--duration", "2w"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "one week")
}

func TestConfigSubcommands(t *testing.T) {
	cfg := findCommand(t, newRootCmd(), "config")
	for _, name := range []string{"set", "show", "path"} {
		findCommand(t, cfg, name)
	}

	cache := findCommand(t, newRootCmd(), "cache")
	for _, name := range []string{"stats", "clear", "purge"} {
		findCommand(t, cache, name)
	}
}
