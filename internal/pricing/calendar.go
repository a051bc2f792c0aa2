package pricing

import (
	"fmt"
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

// Date is a civil calendar date without time of day or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses YYYY-MM-DD. Out-of-range parts are rejected instead of normalized.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(layoutDate, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// DateOf returns the civil date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// NewDate normalizes like time.Date (e.g. July 32 becomes August 1).
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// midnight anchors the date in UTC so day arithmetic never crosses a DST shift.
func (d Date) midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) AddDays(n int) Date {
	return NewDate(d.Year, d.Month, d.Day+n)
}

func (d Date) Before(o Date) bool {
	return d.midnight().Before(o.midnight())
}

func (d Date) After(o Date) bool {
	return o.Before(d)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// DaysUntil returns whole days from d to o, negative when o is earlier.
func (d Date) DaysUntil(o Date) int {
	return int(o.midnight().Sub(d.midnight()).Hours() / 24)
}

// String formats as YYYY-MM-DD.
func (d Date) String() string {
	return d.midnight().Format(layoutDate)
}

// Display formats as dd/mm/yyyy.
func (d Date) Display() string {
	return fmt.Sprintf("%02d/%02d/%d", d.Day, int(d.Month), d.Year)
}

var monthNamesIT = [12]string{
	"gennaio", "febbraio", "marzo", "aprile", "maggio", "giugno",
	"luglio", "agosto", "settembre", "ottobre", "novembre", "dicembre",
}

// MonthKey returns the price-data key (Italian month name) for m.
func MonthKey(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNamesIT[m-1]
}

// ParseMonthKey accepts Italian or English month names, case-insensitive.
func ParseMonthKey(s string) (time.Month, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range monthNamesIT {
		if s == name {
			return time.Month(i + 1), true
		}
	}
	for m := time.January; m <= time.December; m++ {
		if s == strings.ToLower(m.String()) {
			return m, true
		}
	}
	return 0, false
}

// MonthLabel is the presentation name of m.
func MonthLabel(m time.Month) string {
	return m.String()
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
