package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventsCommand(t *testing.T) {
	isolate(t)

	run := execute(t, "events", "2016-01-01")
	require.NoError(t, run.Err)
	assert.Equal(t, "New Year's Day\n", run.Stdout)

	run = execute(t, "events", "2016-01-04")
	require.NoError(t, run.Err)
	assert.Equal(t, "2016-01-04: no events\n", run.Stdout)
}

func TestEventsCommand_Filters(t *testing.T) {
	isolate(t)

	run := execute(t, "--format", "json", "events", "2016-01-02", "--workdays=false")
	require.NoError(t, run.Err)

	var result EventsResult
	resp := decodeData(t, run.Stdout, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "2016-01-02", result.Date)
	assert.Equal(t, []string{"Saturday"}, result.Events)

	run = execute(t, "--format", "json", "events", "2016-01-02", "--days-off=false")
	require.NoError(t, run.Err)
	decodeData(t, run.Stdout, &result)
	assert.Empty(t, result.Events)
}

func TestEventsCommand_BadDate(t *testing.T) {
	isolate(t)

	run := execute(t, "events", "2016-13-01")
	require.Error(t, run.Err)
	assert.Equal(t, ExitCommandError, GetExitCode(run.Err))
	assert.Contains(t, run.Stdout, "Error [E002]")
}

func TestEventsCommand_Definition(t *testing.T) {
	path := testdataPath(t, "definition", "acme.yaml")
	isolate(t)

	run := execute(t, "--definition", path, "events", "2024-03-15")
	require.NoError(t, run.Err)
	assert.Contains(t, run.Stdout, "Office Move")
}

func TestDayOffCommand(t *testing.T) {
	isolate(t)

	run := execute(t, "dayoff", "2016-12-26")
	require.NoError(t, run.Err)
	assert.Equal(t, "2016-12-26: day off (Christmas Day)\n", run.Stdout)

	run = execute(t, "dayoff", "2016-12-27")
	require.NoError(t, run.Err)
	assert.Equal(t, "2016-12-27: workday\n", run.Stdout)

	run = execute(t, "--format", "json", "dayoff", "2016-12-25")
	require.NoError(t, run.Err)
	var result DayOffResult
	decodeData(t, run.Stdout, &result)
	assert.True(t, result.DayOff)
	assert.False(t, result.WorkDay)
	assert.Equal(t, []string{"Sunday"}, result.Reasons)
}

func TestWorkdaysCommand(t *testing.T) {
	isolate(t)

	run := execute(t, "workdays", "2016-01-01", "16")
	require.NoError(t, run.Err)
	assert.Equal(t, "2016-01-26\n", run.Stdout)

	run = execute(t, "--format", "json", "workdays", "2016-01-26", "--", "-16")
	require.NoError(t, run.Err)
	var result WorkdaysResult
	decodeData(t, run.Stdout, &result)
	assert.Equal(t, WorkdaysResult{From: "2016-01-26", N: -16, Result: "2015-12-31"}, result)
}

func TestWorkdaysCommand_Errors(t *testing.T) {
	isolate(t)

	run := execute(t, "workdays", "2016-01-01", "many")
	require.Error(t, run.Err)
	assert.Equal(t, ExitCommandError, GetExitCode(run.Err))

	run = execute(t, "--format", "json", "workdays", "9999-12-31", "1")
	require.Error(t, run.Err)
	assert.Equal(t, ExitFailure, GetExitCode(run.Err))
	resp := decodeData(t, run.Stdout, nil)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "OUT_OF_RANGE", resp.Error.Code)
}

func TestBetweenCommand(t *testing.T) {
	isolate(t)

	run := execute(t, "between", "christmas day", "2016-01-01", "2017-12-31")
	require.NoError(t, run.Err)
	assert.Equal(t, "2016-12-26\n2017-12-25\n", run.Stdout)

	run = execute(t, "--format", "json", "between", "Good Friday", "2018", "2019", "--years")
	require.NoError(t, run.Err)
	var result BetweenResult
	decodeData(t, run.Stdout, &result)
	assert.Equal(t, []string{"2018-03-30", "2019-04-19"}, result.Dates)

	run = execute(t, "between", "Columbus Day", "2016-01-01", "2016-12-31")
	require.NoError(t, run.Err)
	assert.Equal(t, "Columbus Day: no dates between 2016-01-01 and 2016-12-31\n", run.Stdout)
}

func TestBetweenCommand_YearOutOfRange(t *testing.T) {
	isolate(t)

	run := execute(t, "between", "Good Friday", "2018", "10000", "--years")
	require.Error(t, run.Err)
	assert.Equal(t, ExitFailure, GetExitCode(run.Err))
	assert.Contains(t, run.Stdout, "Error [OUT_OF_RANGE]")
}

func TestRulesCommand(t *testing.T) {
	isolate(t)

	run := execute(t, "--format", "json", "rules")
	require.NoError(t, run.Err)

	var result RulesResult
	decodeData(t, run.Stdout, &result)
	assert.Equal(t, "NYSE", result.Calendar)
	assert.Equal(t, 11, result.Total)
	assert.Len(t, result.Yearly, 9)
	assert.Empty(t, result.Monthly)
	assert.Len(t, result.Weekly, 2)
	assert.Empty(t, result.Dated)
	assert.Equal(t, "New Year's Day", result.Yearly[0].Name)
	assert.True(t, result.Yearly[0].DayOff)

	run = execute(t, "rules")
	require.NoError(t, run.Err)
	assert.Contains(t, run.Stdout, "NYSE: 11 rule(s)")
	assert.Contains(t, run.Stdout, "Yearly (9)")
	assert.Contains(t, run.Stdout, "* Good Friday")
}

func TestEasterCommand(t *testing.T) {
	isolate(t)

	run := execute(t, "--format", "json", "easter", "2018", "2016")
	require.NoError(t, run.Err)

	var years []EasterDates
	decodeData(t, run.Stdout, &years)
	assert.Equal(t, []EasterDates{
		{Year: 2016, GoodFriday: "2016-03-25", EasterSunday: "2016-03-27"},
		{Year: 2017, GoodFriday: "2017-04-14", EasterSunday: "2017-04-16"},
		{Year: 2018, GoodFriday: "2018-03-30", EasterSunday: "2018-04-01"},
	}, years)

	run = execute(t, "easter", "2016", "2016")
	require.NoError(t, run.Err)
	assert.Equal(t, "2016  Good Friday 2016-03-25  Easter Sunday 2016-03-27\n", run.Stdout)

	run = execute(t, "easter", "0", "2016")
	require.Error(t, run.Err)
	assert.Equal(t, ExitFailure, GetExitCode(run.Err))
}
