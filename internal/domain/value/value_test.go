package value_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"card_tracker/internal/domain/value"
)

func TestParseInventoryID(t *testing.T) {
	rq := require.New(t)

	id := value.NewInventoryID()
	rq.False(id.IsZero())

	parsed, err := value.ParseInventoryID(id.String())
	rq.NoError(err)
	rq.Equal(id, parsed)

	_, err = value.ParseInventoryID("not-a-uuid")
	rq.Error(err)
}

func TestDate(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expected  string
		expectErr bool
	}{
		{name: "valid", input: "2024-03-15", expected: "2024-03-15"},
		{name: "leap day", input: "2024-02-29", expected: "2024-02-29"},
		{name: "not a date", input: "15/03/2024", expectErr: true},
		{name: "impossible day", input: "2023-02-30", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			d, err := value.ParseDate(tc.input)
			if tc.expectErr {
				rq.Error(err)
				return
			}

			rq.NoError(err)
			rq.Equal(tc.expected, d.String())
		})
	}
}

func TestDateText(t *testing.T) {
	rq := require.New(t)

	var d value.Date
	rq.NoError(d.UnmarshalText([]byte("2024-12-01")))
	rq.Equal(value.Month{Year: 2024, Month: time.December}, d.Month())

	b, err := d.MarshalText()
	rq.NoError(err)
	rq.Equal("2024-12-01", string(b))

	rq.NoError(d.UnmarshalText(nil))
	rq.True(d.IsZero())
}

func TestMonth(t *testing.T) {
	rq := require.New(t)

	m, err := value.ParseMonth("2024-01")
	rq.NoError(err)
	rq.Equal("2024-01", m.String())

	rq.True(m.Before(value.Month{Year: 2024, Month: time.February}))
	rq.True(value.Month{Year: 2023, Month: time.December}.Before(m))
	rq.False(m.Before(m))

	_, err = value.ParseMonth("2024-13")
	rq.Error(err)
}
