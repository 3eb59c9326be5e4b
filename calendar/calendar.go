package calendar

import (
	"time"

	"media-planner/models"
)

// Day is one cell of the month grid. Days are ephemeral view values: rebuilt
// on every projection, never persisted, never mutated after being returned.
type Day struct {
	Year       int
	Month      time.Month
	DayOfMonth int
	InMonth    bool
	IsToday    bool
	Posts      []models.Post
}

// Date returns the cell's calendar date at midnight UTC, for formatting.
func (d Day) Date() time.Time {
	return time.Date(d.Year, d.Month, d.DayOfMonth, 0, 0, 0, 0, time.UTC)
}

// Projector lays a post collection out on a month grid.
type Projector struct {
	now func() time.Time
}

func NewProjector() *Projector {
	return &Projector{now: time.Now}
}

// NewProjectorAt pins "today" for deterministic projections.
func NewProjectorAt(now func() time.Time) *Projector {
	return &Projector{now: now}
}

// Project returns the 7-column grid for reference's month: from the Monday
// on or before the 1st through the Sunday on or after the last day, so the
// result length is always a multiple of 7. Each post lands in the single
// cell whose calendar date equals its scheduled wall-clock date; posts keep
// the order they were supplied in.
//
// Matching uses the wall-clock date carried by models.LocalTime directly.
// Converting through UTC here could shift a post into the adjacent day for
// any viewer not at UTC+0, which is exactly the bug the encoding avoids.
func (p *Projector) Project(reference time.Time, posts []models.Post) []Day {
	year, month, _ := reference.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	start := first.AddDate(0, 0, -mondayOffset(first))
	end := last.AddDate(0, 0, 6-mondayOffset(last))

	today := p.now()
	ty, tm, td := today.Date()

	var days []Day
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
		y, m, d := cur.Date()
		day := Day{
			Year:       y,
			Month:      m,
			DayOfMonth: d,
			InMonth:    m == month && y == year,
			IsToday:    y == ty && m == tm && d == td,
		}
		for _, post := range posts {
			if post.ScheduledAt.SameDay(y, m, d) {
				day.Posts = append(day.Posts, post)
			}
		}
		days = append(days, day)
	}
	return days
}

// mondayOffset returns how many days t lies after the Monday of its week.
func mondayOffset(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// Advance shifts a reference date by whole months. A day-of-month that does
// not exist in the target month is clamped to that month's last day rather
// than rolled over into the next one, so navigating from Jan 31 lands on
// Feb 29 (leap) or Feb 28, never Mar 2.
func Advance(reference time.Time, deltaMonths int) time.Time {
	year, month, day := reference.Date()
	hour, min, sec := reference.Clock()

	anchor := time.Date(year, month, 1, 0, 0, 0, 0, reference.Location()).AddDate(0, deltaMonths, 0)
	if max := daysIn(anchor.Year(), anchor.Month()); day > max {
		day = max
	}
	return time.Date(anchor.Year(), anchor.Month(), day, hour, min, sec, reference.Nanosecond(), reference.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
