package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()
	want := []string{"process", "add", "ingest", "search", "query", "chat", "version"}
	have := map[string]bool{}
	for _, c := range root.Commands() {
		have[c.Name()] = true
	}
	for _, name := range want {
		assert.True(t, have[name], "missing subcommand %s", name)
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))

	// main prints the returned error itself; cobra must not print it too.
	assert.True(t, root.SilenceErrors)
	assert.True(t, root.SilenceUsage)
}

func TestQueryCmd_Flags(t *testing.T) {
	cmd := NewQueryCmd()
	for _, name := range []string{"top-k", "filter", "model", "temperature"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag %s", name)
	}
	k, err := cmd.Flags().GetInt("top-k")
	require.NoError(t, err)
	assert.Equal(t, 4, k)
}

func TestParseFilter(t *testing.T) {
	filter, err := parseFilter("")
	require.NoError(t, err)
	assert.Nil(t, filter)

	filter, err = parseFilter("{}")
	require.NoError(t, err)
	assert.Nil(t, filter)

	filter, err = parseFilter(`{"source": "a.md"}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"source": "a.md"}, filter)

	_, err = parseFilter("{broken")
	assert.Error(t, err)
}
