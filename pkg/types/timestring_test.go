package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	for _, bad := range []string{"", "9h30", "25:00", "09:60", "24:00"} {
		_, err := NewTimeStringFromString(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	ts, err := NewTimeStringFromMinutes(570)
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	// Ровно полночь следующего дня допустима как конец интервала
	ts, err = NewTimeStringFromMinutes(1440)
	require.NoError(t, err)
	assert.Equal(t, "24:00", ts.String())

	_, err = NewTimeStringFromMinutes(1441)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	_, err = NewTimeStringFromMinutes(-1)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_Minutes(t *testing.T) {
	ts := TimeString("14:45")
	m, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 885, m)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("23:30")

	next, err := ts.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, "24:00", next.String())

	_, err = ts.AddMinutes(60)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_Comparison(t *testing.T) {
	a := TimeString("09:00")
	b := TimeString("09:30")

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsBefore(a))

	// Некорректные значения сравнению не поддаются
	assert.False(t, TimeString("garbage").IsBefore(b))
	assert.False(t, a.IsAfter(TimeString("garbage")))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:00"))
	assert.Equal(t, "10:00", ts.String())

	require.NoError(t, ts.Scan([]byte("11:30")))
	assert.Equal(t, "11:30", ts.String())

	require.NoError(t, ts.Scan(time.Date(2025, 10, 15, 8, 15, 0, 0, time.UTC)))
	assert.Equal(t, "08:15", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestNewTimeString_DropsSeconds(t *testing.T) {
	ts := NewTimeString(time.Date(2025, 10, 15, 9, 5, 59, 0, time.UTC))
	assert.Equal(t, "09:05", ts.String())
}
