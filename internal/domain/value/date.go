package value

import (
	"fmt"
	"time"
)

// Date календарная дата без времени, в JSON как YYYY-MM-DD.
type Date struct {
	t time.Time
}

func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, fmt.Errorf("time.Parse: %w", err)
	}

	return Date{t: t}, nil
}

func (d Date) Time() time.Time {
	return d.t
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

func (d Date) Month() Month {
	return NewMonth(d.t)
}

func (d Date) String() string {
	if d.t.IsZero() {
		return ""
	}

	return d.t.Format(time.DateOnly)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}

	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

// Month календарный месяц, в JSON как YYYY-MM.
type Month struct {
	Year  int
	Month time.Month
}

func NewMonth(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("time.Parse: %w", err)
	}

	return NewMonth(t), nil
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}

	return m.Month < other.Month
}

func (m Month) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Month) UnmarshalText(b []byte) error {
	parsed, err := ParseMonth(string(b))
	if err != nil {
		return err
	}

	*m = parsed

	return nil
}
