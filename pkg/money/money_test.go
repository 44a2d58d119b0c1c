package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotal(t *testing.T) {
	cases := []struct {
		name     string
		duration int64
		rate     int64
		want     int64
	}{
		{name: "exact", duration: 250, rate: 4000, want: 10000},
		{name: "rounds half up", duration: 150, rate: 3333, want: 5000}, // 49.995 -> 50.00
		{name: "rounds down below half", duration: 133, rate: 3777, want: 5023},
		{name: "zero duration", duration: 0, rate: 4000, want: 0},
		{name: "negative adjustment", duration: -100, rate: 4000, want: -4000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Total(tc.duration, tc.rate))
		})
	}
}

func TestParseFixed2(t *testing.T) {
	for input, want := range map[string]int64{
		"2.5":    250,
		"120.75": 12075,
		"0":      0,
		"7":      700,
		".5":     50,
		"-1.25":  -125,
		"+3.00":  300,
		" 4.2 ":  420,
	} {
		got, err := ParseFixed2(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}

	for _, bad := range []string{"", "abc", "1.234", "1..2", "1.2.3"} {
		_, err := ParseFixed2(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestFormatFixed2(t *testing.T) {
	assert.Equal(t, "2.50", FormatFixed2(250))
	assert.Equal(t, "0.05", FormatFixed2(5))
	assert.Equal(t, "-1.25", FormatFixed2(-125))
	assert.Equal(t, "0.00", FormatFixed2(0))
}

func TestRoundTrip(t *testing.T) {
	for _, v := range []int64{0, 1, 99, 100, 12345, -250} {
		got, err := ParseFixed2(FormatFixed2(v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}
