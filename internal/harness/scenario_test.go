package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario_ValidFile(t *testing.T) {
	scenario, err := LoadScenario("testdata/nyse_2016.yaml")
	require.NoError(t, err)

	assert.Equal(t, "nyse_2016", scenario.Name)
	assert.Equal(t, []any{"nyse"}, scenario.Calendar["presets"])
	require.Len(t, scenario.Steps, 9)

	first := scenario.Steps[0]
	assert.Equal(t, OpEventsOn, first.Op)
	assert.Equal(t, "2016-01-01", first.Date)
	require.NotNil(t, first.Expect)
	assert.Equal(t, []string{"New Year's Day"}, first.Expect.Events)

	last := scenario.Steps[8]
	require.NotNil(t, last.DaysOff)
	assert.False(t, *last.DaysOff)
	assert.Nil(t, last.Workdays)
	assert.NotNil(t, last.Expect.Events)
	assert.Empty(t, last.Expect.Events)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_FromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: tiny
description: "one step"
steps:
  - op: count
`), 0o644))

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Nil(t, scenario.Calendar)
	assert.Nil(t, scenario.Steps[0].Expect)
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "unknown field",
			yaml: "name: x\ndescription: y\nstep: []\n",
			want: "failed to parse YAML",
		},
		{
			name: "missing name",
			yaml: "description: y\nsteps: [{op: count}]\n",
			want: "name is required",
		},
		{
			name: "missing description",
			yaml: "name: x\nsteps: [{op: count}]\n",
			want: "description is required",
		},
		{
			name: "no steps",
			yaml: "name: x\ndescription: y\n",
			want: "steps list is required",
		},
		{
			name: "missing op",
			yaml: "name: x\ndescription: y\nsteps: [{date: '2020-01-01'}]\n",
			want: "steps[0]: op is required",
		},
		{
			name: "unknown op",
			yaml: "name: x\ndescription: y\nsteps: [{op: explode}]\n",
			want: `unknown op "explode"`,
		},
		{
			name: "missing date",
			yaml: "name: x\ndescription: y\nsteps: [{op: is_day_off}]\n",
			want: "date is required for is_day_off",
		},
		{
			name: "bad date",
			yaml: "name: x\ndescription: y\nsteps: [{op: events_on, date: '2020-02-30'}]\n",
			want: `date: invalid date "2020-02-30"`,
		},
		{
			name: "between without name",
			yaml: "name: x\ndescription: y\nsteps: [{op: between, from: '2020-01-01', to: '2020-02-01'}]\n",
			want: "name is required for between",
		},
		{
			name: "between with bad to",
			yaml: "name: x\ndescription: y\nsteps: [{op: between, name: a, to: '2020-1-1'}]\n",
			want: `to: invalid date "2020-1-1"`,
		},
		{
			name: "add without event",
			yaml: "name: x\ndescription: y\nsteps: [{op: add}]\n",
			want: "event is required for add",
		},
		{
			name: "unknown category",
			yaml: "name: x\ndescription: y\nsteps: [{op: count, category: hourly}]\n",
			want: `unknown category "hourly"`,
		},
		{
			name: "populate without years",
			yaml: "name: x\ndescription: y\nsteps: [{op: populate, from_year: 2020}]\n",
			want: "from_year and to_year is required for populate",
		},
		{
			name: "unknown expect field",
			yaml: "name: x\ndescription: y\nsteps: [{op: count, expect: {total: 1}}]\n",
			want: "failed to parse YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
