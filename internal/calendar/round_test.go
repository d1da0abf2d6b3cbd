package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundToInterval(t *testing.T) {
	base := time.Date(2018, time.May, 21, 10, 36, 47, 854*int(time.Millisecond), time.UTC)

	got, err := RoundToInterval(base, 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2018, time.May, 21, 10, 36, 47, 850*int(time.Millisecond), time.UTC), got)

	got, err = RoundToInterval(base, 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2018, time.May, 21, 10, 30, 0, 0, time.UTC), got)
}

func TestRoundToInterval_TiesRoundUp(t *testing.T) {
	tie := time.Date(2018, time.May, 21, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2018, time.May, 21, 11, 0, 0, 0, time.UTC), RoundToHour(tie))

	below := tie.Add(-time.Nanosecond * 100)
	assert.Equal(t, time.Date(2018, time.May, 21, 10, 0, 0, 0, time.UTC), RoundToHour(below))
}

func TestRoundToInterval_RejectsSubTick(t *testing.T) {
	_, err := RoundToInterval(time.Now(), 0)
	assert.True(t, IsInvalidArgument(err))

	_, err = RoundToInterval(time.Now(), -time.Hour)
	assert.True(t, IsInvalidArgument(err))
}

func TestRoundToInterval_RejectsPartialTicks(t *testing.T) {
	_, err := RoundToInterval(time.Now(), 150*time.Nanosecond)
	assert.True(t, IsInvalidArgument(err))

	_, err = RoundToInterval(time.Now(), time.Millisecond+1)
	assert.True(t, IsInvalidArgument(err))

	_, err = RoundToInterval(time.Now(), 300*time.Nanosecond)
	assert.NoError(t, err)
}

func TestRoundToInterval_CrossesMidnight(t *testing.T) {
	late := time.Date(2018, time.May, 21, 23, 59, 59, 600*int(time.Millisecond), time.UTC)
	assert.Equal(t, time.Date(2018, time.May, 22, 0, 0, 0, 0, time.UTC), RoundToSecond(late))
}

func TestTimeID(t *testing.T) {
	at := time.Date(2018, time.May, 21, 23, 36, 47, 854*int(time.Millisecond), time.UTC)
	assert.Equal(t, "233647854", TimeID(at))

	morning := time.Date(2018, time.May, 21, 10, 36, 47, 854*int(time.Millisecond), time.UTC)
	assert.Equal(t, "110000000", TimeIDToHour(morning))
	assert.Equal(t, "103700000", TimeIDToMinute(morning))
	assert.Equal(t, "103648000", TimeIDToSecond(morning))

	id, err := TimeIDToInterval(morning, 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "103647850", id)

	_, err = TimeIDToInterval(morning, 0)
	assert.Error(t, err)
}
