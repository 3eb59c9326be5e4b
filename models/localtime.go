package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Layout is the wire format for scheduled instants: the user's wall-clock
// fields, verbatim, with no UTC offset and no zone suffix. Serializing
// through a zone-normalizing format (e.g. RFC3339) would silently shift the
// time the user selected whenever the machine is not at UTC+0.
const Layout = "2006-01-02T15:04:05"

// layoutShort accepts values produced without a seconds field.
const layoutShort = "2006-01-02T15:04"

// LocalTime is a wall-clock instant: year, month, day, hour, minute, second
// with no timezone attached. It means "publish at this local time" wherever
// the post is observed, so both the encode and decode path preserve the
// digits exactly. Interpretation against a concrete timezone happens only at
// the single point that needs an absolute instant (the dispatcher's due
// comparison, via In).
type LocalTime struct {
	wall time.Time
}

// NewLocalTime builds a LocalTime from explicit wall-clock fields.
func NewLocalTime(year int, month time.Month, day, hour, min, sec int) LocalTime {
	return LocalTime{wall: time.Date(year, month, day, hour, min, sec, 0, time.UTC)}
}

// LocalTimeOf captures t's wall-clock fields and drops its location.
func LocalTimeOf(t time.Time) LocalTime {
	return NewLocalTime(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
}

// ParseLocalTime decodes a stored scheduled_at value. A trailing "Z" written
// by older rows is trimmed, not converted: the remaining digits are read
// verbatim so the wall clock the user picked survives the round trip.
func ParseLocalTime(s string) (LocalTime, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(s), "Z")
	for _, layout := range []string{Layout, layoutShort} {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return LocalTime{wall: t}, nil
		}
	}
	return LocalTime{}, fmt.Errorf("invalid local time %q (want %s)", s, Layout)
}

func (t LocalTime) String() string { return t.wall.Format(Layout) }

func (t LocalTime) IsZero() bool { return t.wall.IsZero() }

// Date returns the calendar date the instant falls on.
func (t LocalTime) Date() (year int, month time.Month, day int) { return t.wall.Date() }

// Clock returns the time-of-day fields.
func (t LocalTime) Clock() (hour, min, sec int) { return t.wall.Clock() }

// Equal reports whether both values carry the same wall-clock fields.
func (t LocalTime) Equal(u LocalTime) bool { return t.wall.Equal(u.wall) }

// Before orders two wall-clock values.
func (t LocalTime) Before(u LocalTime) bool { return t.wall.Before(u.wall) }

// SameDay reports whether the instant falls on the given calendar date.
func (t LocalTime) SameDay(year int, month time.Month, day int) bool {
	y, m, d := t.wall.Date()
	return y == year && m == month && d == day
}

// In interprets the wall clock in loc and returns the absolute instant.
func (t LocalTime) In(loc *time.Location) time.Time {
	y, m, d := t.wall.Date()
	hh, mm, ss := t.wall.Clock()
	return time.Date(y, m, d, hh, mm, ss, 0, loc)
}

func (t LocalTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *LocalTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseLocalTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalBSONValue stores the value as its wire string. Zero-padded fields
// make lexicographic order match chronological order, so range queries on
// scheduled_at work directly against the stored strings.
func (t LocalTime) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(t.String())
}

func (t *LocalTime) UnmarshalBSONValue(bt bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: bt, Value: data}
	var s string
	if err := raw.Unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseLocalTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
