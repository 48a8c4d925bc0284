package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triplet/agent"
	"triplet/console"
	"triplet/engine/match3"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(nil)
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand(nil)
	require.NotNil(t, cmd)
	assert.Equal(t, "triplet", cmd.Use)
	assert.Contains(t, cmd.Long, "match-3")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand(nil)
	commands := []string{"play", "text", "agent", "script", "render"}

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
	cmd := NewRootCommand(nil)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	logFlag := cmd.PersistentFlags().Lookup("debug-log")
	require.NotNil(t, logFlag)
	assert.Equal(t, "", logFlag.DefValue)
}

func TestBoardFlagDefaults(t *testing.T) {
	cmd := NewRootCommand(nil)

	renderCmd, _, err := cmd.Find([]string{"render"})
	require.NoError(t, err)
	assert.Equal(t, "7", renderCmd.Flags().Lookup("rows").DefValue)
	assert.Equal(t, "4", renderCmd.Flags().Lookup("colours").DefValue)
	assert.Equal(t, "10000", renderCmd.Flags().Lookup("max-resets").DefValue)

	textCmd, _, err := cmd.Find([]string{"text"})
	require.NoError(t, err)
	assert.Equal(t, "3", textCmd.Flags().Lookup("colours").DefValue)

	agentCmd, _, err := cmd.Find([]string{"agent"})
	require.NoError(t, err)
	assert.Equal(t, "n", agentCmd.Flags().Lookup("episodes").Shorthand)
	assert.Equal(t, "legal", agentCmd.Flags().Lookup("policy").DefValue)
}

func TestFormatValidation(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))
	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))

	_, err := execute(t, "", "--format", "invalid", "render")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(WrapExitError(ExitCommandError, "x", io.EOF)))

	wrapped := WrapExitError(ExitFailure, "scripts", io.EOF)
	assert.ErrorIs(t, wrapped, io.EOF)
	assert.Equal(t, "scripts: EOF", wrapped.Error())
}

func TestRenderText(t *testing.T) {
	out, err := execute(t, "", "render", "--rows", "3", "--cols", "4", "--colours", "3", "--seed", "7")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "  0 1 2 3 ", lines[0])
	for i, line := range lines[1:] {
		assert.Len(t, []rune(line), 6, "row %d", i)
	}

	again, err := execute(t, "", "render", "--rows", "3", "--cols", "4", "--colours", "3", "--seed", "7")
	require.NoError(t, err)
	assert.Equal(t, out, again, "same seed, same board")
}

func TestRenderJSON(t *testing.T) {
	out, err := execute(t, "", "--format", "json", "render", "--rows", "5", "--cols", "6", "--colours", "3", "--seed", "11")
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   RenderReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.NotNil(t, resp.Data.State)
	assert.Equal(t, 5, resp.Data.State.Height())
	assert.Equal(t, 6, resp.Data.State.Width())
	assert.Len(t, resp.Data.Observation, 5*6*3)
	assert.NotEmpty(t, resp.Data.Moves, "a started board always has a legal swap")
}

func TestRenderBadBoard(t *testing.T) {
	out, err := execute(t, "", "render", "--colours", "0")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	var invalid *match3.InvalidConfig
	assert.ErrorAs(t, err, &invalid)
	assert.Contains(t, out, "E002")

	_, err = execute(t, "", "render", "--colours", "1", "--max-resets", "3")
	assert.ErrorIs(t, err, match3.ErrUnsolvable)
}

func TestTextSession(t *testing.T) {
	out, err := execute(t, "Q\n", "text", "--rows", "4", "--cols", "4", "--seed", "9")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "  0 1 2 3 \n"), "board is printed on start")
	assert.Contains(t, out, console.Prompt)

	_, err = execute(t, "1 2\n", "text", "--seed", "9")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestScriptCommand(t *testing.T) {
	dir := filepath.Join("..", "script", "testdata")

	out, err := execute(t, "", "script", filepath.Join(dir, "one_row.yaml"), filepath.Join(dir, "seeded_7x7.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "PASS one-row (3 moves)")
	assert.Contains(t, out, "PASS seeded-7x7 (4 moves)")
	assert.Contains(t, out, "2 passed, 0 failed")

	out, err = execute(t, "", "script", filepath.Join(dir, "one_row.yaml"), filepath.Join(dir, "wrong_expectation.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "FAIL wrong-expectation")
	assert.Contains(t, out, "1 passed, 1 failed")
}

func TestScriptCommandJSON(t *testing.T) {
	out, err := execute(t, "", "--format", "json", "script", filepath.Join("..", "script", "testdata", "one_row.yaml"))
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   []struct {
			Name   string  `json:"name"`
			Passed bool    `json:"passed"`
			Grid   [][]int `json:"grid"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 1)
	assert.True(t, resp.Data[0].Passed)
	assert.Equal(t, [][]int{{1, 1, 1, 2}}, resp.Data[0].Grid)
}

func TestScriptMissingFile(t *testing.T) {
	out, err := execute(t, "", "script", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "E005")
}

func TestAgentCommand(t *testing.T) {
	out, err := execute(t, "", "--format", "json", "agent", "-n", "3", "-w", "2", "--seed", "5", "--max-steps", "60")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   AgentReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "legal", resp.Data.Policy)
	require.Len(t, resp.Data.Episodes, 3)
	for i, ep := range resp.Data.Episodes {
		assert.Equal(t, i, ep.Index)
		assert.Equal(t, int64(5+i), ep.Seed)
		assert.LessOrEqual(t, ep.Steps, 60)
	}
	assert.Equal(t, 3, resp.Data.Summary.Episodes)

	_, err = execute(t, "", "agent", "--policy", "greedy")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "unknown policy")
}

func TestAgentCommandText(t *testing.T) {
	out, err := execute(t, "", "agent", "-n", "2", "-w", "1", "--seed", "1", "--policy", "random", "--max-steps", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "episode   0")
	assert.Contains(t, out, "2 episodes, 40 steps")
}

func TestDebugLog(t *testing.T) {
	t.Cleanup(func() {
		match3.Log.SetOutput(io.Discard)
		agent.Log.SetOutput(io.Discard)
	})
	path := filepath.Join(t.TempDir(), "debug.log")

	_, err := execute(t, "", "--debug-log", path, "render", "--seed", "3")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "board started")
}
