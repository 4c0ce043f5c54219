package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "ontopy", cmd.Use)
	assert.Contains(t, cmd.Long, "SPARQL endpoints")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"query", "list", "get", "classes", "properties", "history", "kinds"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	timeoutFlag := cmd.PersistentFlags().Lookup("timeout")
	require.NotNil(t, timeoutFlag)
	assert.Equal(t, "30s", timeoutFlag.DefValue)

	for _, name := range []string{"config", "env-file"} {
		require.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestHistoryCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	historyCmd, _, err := cmd.Find([]string{"history"})
	require.NoError(t, err)

	dbFlag := historyCmd.Flags().Lookup("db")
	require.NotNil(t, dbFlag)
	// --db is required, so default is empty
	assert.Equal(t, "", dbFlag.DefValue)

	limitFlag := historyCmd.Flags().Lookup("limit")
	require.NotNil(t, limitFlag)
	assert.Equal(t, "20", limitFlag.DefValue)
}

func TestListCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	listCmd, _, err := cmd.Find([]string{"list"})
	require.NoError(t, err)

	for _, name := range []string{"where", "optional", "distinct", "order-by", "slice", "at", "db"} {
		assert.NotNil(t, listCmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "w", listCmd.Flags().Lookup("where").Shorthand)
}

func TestExecute_InvalidFormat(t *testing.T) {
	_, stderr, code := runCLI(t, "kinds", "--format", "yaml")
	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, `invalid format "yaml"`)
}

func TestExecute_UnknownFlag(t *testing.T) {
	_, stderr, code := runCLI(t, "kinds", "--nope")
	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, "invalid flags")
}

func TestExecute_WrongArgCount(t *testing.T) {
	_, stderr, code := runCLI(t, "query")
	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, "invalid arguments")
}

func TestExecute_MissingConfig(t *testing.T) {
	t.Setenv("ONTOPY_CONFIG", "")

	_, stderr, code := runCLI(t, "kinds")
	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, "no kinds file")
}

func TestExecute_JSONErrorEnvelope(t *testing.T) {
	stdout, _, code := runCLI(t, "query", "Album", "--config", writeKinds(t, "http://example.org/sparql"), "--format", "json")
	assert.Equal(t, ExitCommandError, code)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeConfig, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, `unknown kind "Album"`)
}
