package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media-planner/calendar"
	"media-planner/models"
)

func fixedNow(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	}
}

func postOn(year int, month time.Month, day, hour int, platform models.Platform) models.Post {
	return models.Post{
		Platform:    platform,
		TextContent: "post",
		ScheduledAt: models.NewLocalTime(year, month, day, hour, 0, 0),
		Status:      models.StatusScheduled,
	}
}

func TestProjectMarch2024Grid(t *testing.T) {
	// March 2024 starts on a Friday and ends on a Sunday: the grid runs from
	// Monday Feb 26 through Sunday Mar 31.
	p := calendar.NewProjectorAt(fixedNow(2024, time.March, 15))
	days := p.Project(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), nil)

	require.Len(t, days, 35)
	assert.Zero(t, len(days)%7)

	first := days[0]
	assert.Equal(t, time.February, first.Month)
	assert.Equal(t, 26, first.DayOfMonth)
	assert.False(t, first.InMonth)
	assert.Equal(t, time.Monday, first.Date().Weekday())

	last := days[len(days)-1]
	assert.Equal(t, time.March, last.Month)
	assert.Equal(t, 31, last.DayOfMonth)
	assert.True(t, last.InMonth)
	assert.Equal(t, time.Sunday, last.Date().Weekday())
}

func TestProjectMarksInMonthAndToday(t *testing.T) {
	p := calendar.NewProjectorAt(fixedNow(2024, time.March, 15))
	days := p.Project(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), nil)

	inMonth := 0
	todayCount := 0
	for _, d := range days {
		if d.InMonth {
			inMonth++
		}
		if d.IsToday {
			todayCount++
			assert.Equal(t, 15, d.DayOfMonth)
			assert.Equal(t, time.March, d.Month)
		}
	}
	assert.Equal(t, 31, inMonth)
	assert.Equal(t, 1, todayCount)
}

func TestProjectTodayOutsideViewedMonth(t *testing.T) {
	// Viewing April while today is March 15: no cell is marked today.
	p := calendar.NewProjectorAt(fixedNow(2024, time.March, 15))
	days := p.Project(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), nil)

	for _, d := range days {
		assert.False(t, d.IsToday)
	}
}

func TestProjectBucketsPostsByWallClockDate(t *testing.T) {
	p := calendar.NewProjectorAt(fixedNow(2024, time.March, 15))
	posts := []models.Post{
		postOn(2024, time.March, 5, 9, models.PlatformLinkedIn),
		postOn(2024, time.March, 5, 18, models.PlatformInstagram),
		postOn(2024, time.February, 27, 8, models.PlatformFacebook), // leading cell
		postOn(2024, time.April, 2, 8, models.PlatformFacebook),     // off-grid
	}

	days := p.Project(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), posts)

	var march5, feb27 calendar.Day
	total := 0
	for _, d := range days {
		total += len(d.Posts)
		if d.Month == time.March && d.DayOfMonth == 5 {
			march5 = d
		}
		if d.Month == time.February && d.DayOfMonth == 27 {
			feb27 = d
		}
	}

	// Off-grid posts appear nowhere; everything else lands in exactly one cell.
	assert.Equal(t, 3, total)
	require.Len(t, march5.Posts, 2)
	// Supplied order is preserved within a cell.
	assert.Equal(t, models.PlatformLinkedIn, march5.Posts[0].Platform)
	assert.Equal(t, models.PlatformInstagram, march5.Posts[1].Platform)
	require.Len(t, feb27.Posts, 1)
}

func TestProjectFebruaryNonLeapStartsOnMonday(t *testing.T) {
	// February 2021 starts on a Monday and spans exactly four weeks.
	p := calendar.NewProjectorAt(fixedNow(2021, time.February, 10))
	days := p.Project(time.Date(2021, time.February, 1, 0, 0, 0, 0, time.UTC), nil)

	require.Len(t, days, 28)
	for _, d := range days {
		assert.True(t, d.InMonth)
	}
}

func TestAdvanceClampsDayOfMonth(t *testing.T) {
	jan31 := time.Date(2024, time.January, 31, 10, 30, 0, 0, time.UTC)

	feb := calendar.Advance(jan31, 1)
	assert.Equal(t, time.February, feb.Month())
	assert.Equal(t, 29, feb.Day()) // 2024 is a leap year
	assert.Equal(t, 10, feb.Hour())

	feb2023 := calendar.Advance(time.Date(2023, time.January, 31, 0, 0, 0, 0, time.UTC), 1)
	assert.Equal(t, time.February, feb2023.Month())
	assert.Equal(t, 28, feb2023.Day())
}

func TestAdvanceBackAndForth(t *testing.T) {
	ref := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	back := calendar.Advance(ref, -1)
	assert.Equal(t, time.February, back.Month())
	assert.Equal(t, 15, back.Day())

	forth := calendar.Advance(back, 1)
	assert.True(t, forth.Equal(ref))
}

func TestAdvanceAcrossYearBoundary(t *testing.T) {
	dec := time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC)

	jan := calendar.Advance(dec, 1)
	assert.Equal(t, 2024, jan.Year())
	assert.Equal(t, time.January, jan.Month())
	assert.Equal(t, 31, jan.Day())
}

func TestPlatformGlyphFallback(t *testing.T) {
	assert.Equal(t, "💼", calendar.PlatformGlyph(models.PlatformLinkedIn))
	assert.Equal(t, "📷", calendar.PlatformGlyph(models.PlatformInstagram))
	assert.Equal(t, "👥", calendar.PlatformGlyph(models.PlatformFacebook))
	assert.Equal(t, "📱", calendar.PlatformGlyph(models.Platform("tiktok")))
}

func TestStatusColorAndLabelFallback(t *testing.T) {
	assert.Equal(t, "blue", calendar.StatusColor(models.StatusScheduled))
	assert.Equal(t, "green", calendar.StatusColor(models.StatusSent))
	assert.Equal(t, "red", calendar.StatusColor(models.StatusFailed))
	assert.Equal(t, "gray", calendar.StatusColor(models.Status("draft")))

	assert.Equal(t, "Scheduled", calendar.StatusLabel(models.StatusScheduled))
	assert.Equal(t, "Sent", calendar.StatusLabel(models.StatusSent))
	assert.Equal(t, "Failed", calendar.StatusLabel(models.StatusFailed))
	assert.Equal(t, "draft", calendar.StatusLabel(models.Status("draft")))
}
