package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysFrom(t *testing.T) {
	start := time.Date(2024, 2, 27, 0, 0, 0, 0, time.UTC)

	days := DaysFrom(start, 4)

	require.Len(t, days, 4)
	assert.Equal(t, "2024-02-27", FormatDate(days[0]))
	assert.Equal(t, "2024-02-28", FormatDate(days[1]))
	assert.Equal(t, "2024-02-29", FormatDate(days[2]))
	assert.Equal(t, "2024-03-01", FormatDate(days[3]))
	assert.Nil(t, DaysFrom(start, 0))
}

func TestSameDay(t *testing.T) {
	vienna, err := time.LoadLocation("Europe/Vienna")
	require.NoError(t, err)

	day := time.Date(2024, 3, 15, 0, 0, 0, 0, vienna)

	assert.True(t, SameDay(day, time.Date(2024, 3, 15, 21, 40, 0, 0, vienna)))
	// 23:30 UTC on the 15th is already the 16th in Vienna
	assert.False(t, SameDay(day, time.Date(2024, 3, 15, 23, 30, 0, 0, time.UTC)))
	assert.False(t, SameDay(day, time.Date(2024, 3, 14, 23, 59, 0, 0, vienna)))
}

func TestParseDate(t *testing.T) {
	day, err := ParseDate("2024-03-15", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), day)

	_, err = ParseDate("15.03.2024", time.UTC)
	assert.Error(t, err)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "100", FormatPrice(100))
	assert.Equal(t, "29.9", FormatPrice(29.9))
	assert.Equal(t, "0", FormatPrice(0))
}

func TestSortedKeys(t *testing.T) {
	keys := SortedKeys(map[string]struct{}{"single": {}, "couchette4": {}, "double": {}})
	assert.Equal(t, []string{"couchette4", "double", "single"}, keys)
}
