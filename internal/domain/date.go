package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DayLayout is the textual date pattern used everywhere at the boundary.
const DayLayout = "02-01-2006"

// PendingSentinel is rendered in place of a missing arrival date.
const PendingSentinel = "null"

// Day is a calendar date (no time-of-day component) rendered as dd-MM-yyyy.
type Day struct {
	time.Time
}

// NewDay truncates t to its calendar date in UTC.
func NewDay(t time.Time) Day {
	return Day{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDay parses a dd-MM-yyyy string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return NewDay(t), nil
}

func (d Day) String() string {
	return d.Format(DayLayout)
}

// AddDays returns the day n days later (negative n for earlier).
func (d Day) AddDays(n int) Day {
	return NewDay(d.AddDate(0, 0, n))
}

func (d Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Day) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	day, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = day
	return nil
}

func (d Day) Value() (driver.Value, error) {
	return d.Time, nil
}

func (d *Day) Scan(v interface{}) error {
	switch t := v.(type) {
	case time.Time:
		*d = NewDay(t)
		return nil
	case string:
		return d.scanText(t)
	case []byte:
		return d.scanText(string(t))
	case nil:
		*d = Day{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Day", v)
	}
}

func (d *Day) scanText(s string) error {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			*d = NewDay(t)
			return nil
		}
	}
	return fmt.Errorf("cannot scan %q into Day", s)
}

// GormDataType tells the migrator what column type to create.
func (Day) GormDataType() string {
	return "date"
}

// NullableDay is an optional calendar date. A missing value marshals as the
// literal string "null"; its absence is the only pending-status signal.
type NullableDay struct {
	Day   Day
	Valid bool
}

// SomeDay wraps a present date.
func SomeDay(d Day) NullableDay {
	return NullableDay{Day: d, Valid: true}
}

func (n NullableDay) String() string {
	if !n.Valid {
		return PendingSentinel
	}
	return n.Day.String()
}

func (n NullableDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.String())
}

func (n *NullableDay) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == PendingSentinel || s == "" {
		*n = NullableDay{}
		return nil
	}
	day, err := ParseDay(s)
	if err != nil {
		return err
	}
	*n = SomeDay(day)
	return nil
}

func (n NullableDay) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Day.Time, nil
}

func (n *NullableDay) Scan(v interface{}) error {
	if v == nil {
		*n = NullableDay{}
		return nil
	}
	var d Day
	if err := d.Scan(v); err != nil {
		return err
	}
	*n = SomeDay(d)
	return nil
}

func (NullableDay) GormDataType() string {
	return "date"
}
