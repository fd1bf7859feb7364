package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("accepts strict DD-MM-YYYY", func(t *testing.T) {
		got, err := Parse("05-01-2026")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("rejects loose and foreign formats", func(t *testing.T) {
		for _, s := range []string{
			"5-1-2026",    // unpadded
			"2026-01-05",  // ISO
			"05/01/2026",  // wrong separator
			"31-02-2026",  // impossible day
			"05-13-2026",  // impossible month
			"05-01-26",    // two-digit year
			"",            // empty
			"not-a-date",
		} {
			_, err := Parse(s)
			assert.Error(t, err, "input %q", s)
		}
	})
}

func TestFormatRoundTrip(t *testing.T) {
	in := "28-02-2027"
	parsed, err := Parse(in)
	require.NoError(t, err)
	assert.Equal(t, in, Format(parsed))
}

func TestDayCount(t *testing.T) {
	from, err := Parse("05-01-2026")
	require.NoError(t, err)

	cases := []struct {
		to   string
		want int
	}{
		{"06-01-2026", 1},
		{"10-01-2026", 5},
		{"05-02-2026", 31},
	}
	for _, tc := range cases {
		to, err := Parse(tc.to)
		require.NoError(t, err)
		assert.Equal(t, tc.want, DayCount(from, to), "05-01-2026 .. %s", tc.to)
	}
}

func TestToday(t *testing.T) {
	today := Today()
	assert.Equal(t, time.UTC, today.Location())
	assert.Equal(t, 0, today.Hour())
	assert.Equal(t, 0, today.Minute())
}
