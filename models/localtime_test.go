package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalTimeStringHasNoZoneSuffix(t *testing.T) {
	lt := NewLocalTime(2024, time.March, 15, 9, 30, 0)
	assert.Equal(t, "2024-03-15T09:30:00", lt.String())
}

func TestLocalTimeJSONRoundTrip(t *testing.T) {
	lt := NewLocalTime(2024, time.December, 31, 23, 59, 59)

	data, err := json.Marshal(lt)
	require.NoError(t, err)
	assert.Equal(t, `"2024-12-31T23:59:59"`, string(data))

	var back LocalTime
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Equal(lt))
}

func TestParseLocalTimeTrimsLegacyZSuffix(t *testing.T) {
	// Rows written by an older serializer carry a trailing Z. The digits are
	// read verbatim, not converted through UTC.
	lt, err := ParseLocalTime("2024-03-15T09:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15T09:30:00", lt.String())
}

func TestParseLocalTimeAcceptsMinutePrecision(t *testing.T) {
	lt, err := ParseLocalTime("2024-03-15T09:30")
	require.NoError(t, err)

	hh, mm, ss := lt.Clock()
	assert.Equal(t, 9, hh)
	assert.Equal(t, 30, mm)
	assert.Equal(t, 0, ss)
}

func TestParseLocalTimeRejectsGarbage(t *testing.T) {
	_, err := ParseLocalTime("not-a-time")
	assert.Error(t, err)
}

func TestLocalTimeOfDropsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	src := time.Date(2024, time.March, 15, 9, 30, 0, 0, loc)

	lt := LocalTimeOf(src)
	assert.Equal(t, "2024-03-15T09:30:00", lt.String())
}

func TestLocalTimeInReinterpretsWallClock(t *testing.T) {
	lt := NewLocalTime(2024, time.March, 15, 9, 30, 0)
	loc := time.FixedZone("UTC+2", 2*3600)

	abs := lt.In(loc)
	assert.Equal(t, loc, abs.Location())
	assert.Equal(t, 9, abs.Hour())
	assert.Equal(t, time.Date(2024, time.March, 15, 7, 30, 0, 0, time.UTC).Unix(), abs.Unix())
}

func TestLocalTimeSameDay(t *testing.T) {
	lt := NewLocalTime(2024, time.March, 15, 23, 59, 59)
	assert.True(t, lt.SameDay(2024, time.March, 15))
	assert.False(t, lt.SameDay(2024, time.March, 16))
}

func TestLocalTimeStringOrderMatchesChronology(t *testing.T) {
	// Persistence relies on lexicographic comparison of the stored strings.
	earlier := NewLocalTime(2024, time.September, 5, 8, 0, 0)
	later := NewLocalTime(2024, time.October, 1, 7, 0, 0)

	assert.True(t, earlier.Before(later))
	assert.Less(t, earlier.String(), later.String())
}
