package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "thisdate", cmd.Use)
	assert.Contains(t, cmd.Long, "recurrence rules")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"events", "dayoff", "workdays", "between", "rules", "validate", "populate", "export", "test", "easter"}

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

	for _, name := range []string{"config", "calendar", "definition", "log-level", "log-format"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestInvalidFormat(t *testing.T) {
	isolate(t)
	run := execute(t, "--format", "xml", "rules")
	require.Error(t, run.Err)
	assert.Equal(t, ExitCommandError, GetExitCode(run.Err))
	assert.Contains(t, run.Err.Error(), `invalid format "xml"`)
}

func TestInvalidLogLevel(t *testing.T) {
	isolate(t)
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--log-level", "loud", "rules"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestConfigFileSelectsCalendar(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".config", "thisdate")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("calendar:\n  preset: usa-federal\n"), 0o644))

	run := execute(t, "rules")
	require.NoError(t, run.Err)
	assert.Contains(t, run.Stdout, "USA Federal:")
	assert.Contains(t, run.Stdout, "Columbus Day")
}

func TestExplicitConfigFile(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "desk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("calendar:\n  preset: usa-observance\n"), 0o644))

	run := execute(t, "--config", path, "rules")
	require.NoError(t, run.Err)
	assert.Contains(t, run.Stdout, "USA Observance:")
}

func TestFlagOverridesEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("THISDATE_CALENDAR_PRESET", "usa-federal")

	run := execute(t, "rules")
	require.NoError(t, run.Err)
	assert.Contains(t, run.Stdout, "USA Federal:")

	run = execute(t, "--calendar", "nyse", "rules")
	require.NoError(t, run.Err)
	assert.Contains(t, run.Stdout, "NYSE:")
}

func TestUnknownPreset(t *testing.T) {
	isolate(t)
	run := execute(t, "--calendar", "lse", "rules")
	require.Error(t, run.Err)
	assert.Equal(t, ExitCommandError, GetExitCode(run.Err))
	assert.Contains(t, run.Stdout, "Error [E002]")
	assert.Contains(t, run.Stdout, `unknown preset "lse"`)
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(os.ErrNotExist))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad")))
	assert.Equal(t, ExitFailure, GetExitCode(WrapExitError(ExitFailure, "wrapped", os.ErrNotExist)))
}
