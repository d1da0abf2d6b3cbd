package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/thisdate/internal/store"
)

func TestPopulateCommand(t *testing.T) {
	dir := isolate(t)
	db := filepath.Join(dir, "warehouse.db")

	run := execute(t, "--format", "json", "populate", "--db", db, "--from", "2016", "--to", "2016", "--time-increment", "1h")
	require.NoError(t, run.Err, run.Stdout)

	var out PopulateOutput
	decodeData(t, run.Stdout, &out)
	assert.Equal(t, db, out.Database)
	assert.Equal(t, "NYSE", out.Calendar)
	assert.NotEmpty(t, out.LoadID)
	assert.Equal(t, 366, out.Rows)
	assert.Equal(t, []int{2016}, out.Years)
	assert.Empty(t, out.SkippedYears)
	assert.NotEmpty(t, out.TimeLoadID)
	assert.Equal(t, 24, out.TimeRows)

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	dates, err := st.CountDates(ctx)
	require.NoError(t, err)
	assert.Equal(t, 366, dates)
	times, err := st.CountTimes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 24, times)
}

func TestPopulateCommand_SkipsLoadedYears(t *testing.T) {
	dir := isolate(t)
	db := filepath.Join(dir, "warehouse.db")

	run := execute(t, "populate", "--db", db, "--from", "2016", "--to", "2016")
	require.NoError(t, run.Err)
	assert.Contains(t, run.Stdout, "366 date row(s) for [2016]")

	run = execute(t, "populate", "--db", db, "--from", "2016", "--to", "2017")
	require.NoError(t, run.Err)
	assert.Contains(t, run.Stdout, "365 date row(s) for [2017], skipped [2016]")
}

func TestPopulateCommand_DatabaseFromConfig(t *testing.T) {
	dir := isolate(t)
	t.Setenv("THISDATE_DATABASE_PATH", filepath.Join(dir, "env.db"))

	run := execute(t, "populate", "--from", "2020", "--to", "2020")
	require.NoError(t, run.Err)
	assert.Contains(t, run.Stdout, filepath.Join(dir, "env.db")+": 366 date row(s)")
}

func TestPopulateCommand_Progress(t *testing.T) {
	dir := isolate(t)

	run := execute(t, "populate", "--db", filepath.Join(dir, "p.db"), "--from", "2019", "--to", "2019", "--progress")
	require.NoError(t, run.Err)
	assert.Contains(t, run.Stderr, "Populating date dimension")
	assert.NotContains(t, run.Stdout, "Populating")
}

func TestPopulateCommand_Errors(t *testing.T) {
	dir := isolate(t)
	db := filepath.Join(dir, "warehouse.db")

	run := execute(t, "populate", "--db", db, "--from", "2017", "--to", "2016")
	require.Error(t, run.Err)
	assert.Equal(t, ExitCommandError, GetExitCode(run.Err))
	assert.Contains(t, run.Stdout, "Error [INVALID_ARGUMENT]")

	run = execute(t, "populate", "--db", db, "--from", "2016")
	require.Error(t, run.Err)
	assert.Contains(t, run.Err.Error(), `required flag(s) "to" not set`)
}
