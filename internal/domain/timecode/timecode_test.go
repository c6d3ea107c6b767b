package timecode

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		input   string
		ok      bool
		minutes int
	}{
		{"00:00", true, 0},
		{"09:00", true, 540},
		{"09:05", true, 545},
		{"17:30", true, 1050},
		{"23:59", true, 1439},
		{"", false, 0},
		{"9:00", false, 0},
		{"09:0", false, 0},
		{"09:000", false, 0},
		{"0900", false, 0},
		{"ab:cd", false, 0},
		{" 09:00", false, 0},
		{"24:00", false, 0},
		{"25:99", false, 0},
		{"23:61", false, 0},
		{"30:00", false, 0},
	}
	for _, c := range cases {
		tc, ok := Parse(c.input)
		if ok != c.ok {
			t.Errorf("Parse(%q) ok = %v, want %v", c.input, ok, c.ok)
			continue
		}
		if ok && tc.Minutes() != c.minutes {
			t.Errorf("Parse(%q).Minutes() = %d, want %d", c.input, tc.Minutes(), c.minutes)
		}
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	// every valid HH:MM survives a parse/format cycle unchanged
	for total := 0; total < 24*60; total += 7 {
		text := fmt.Sprintf("%02d:%02d", total/60, total%60)
		tc, ok := Parse(text)
		require.True(t, ok, "Parse(%q)", text)
		assert.Equal(t, total, tc.Minutes())
		assert.Equal(t, text, tc.String())
		assert.Equal(t, text, FormatMinutes(tc.Minutes()))
	}
}

func TestFormatMinutes(t *testing.T) {
	cases := []struct {
		total int
		want  string
	}{
		{0, "00:00"},
		{510, "08:30"},
		{545, "09:05"},
		{1439, "23:59"},
		{-1, "-00:01"},
		{-90, "-01:30"},
	}
	for _, c := range cases {
		if got := FormatMinutes(c.total); got != c.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", c.total, got, c.want)
		}
	}
}

func TestMidnightUTC(t *testing.T) {
	instant, err := MidnightUTC("2025-03-14")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), instant)

	_, err = MidnightUTC("14-03-2025")
	assert.Error(t, err)
}

func TestCombineUTC(t *testing.T) {
	tc, ok := Parse("09:10")
	require.True(t, ok)

	instant, err := CombineUTC("2025-03-14", tc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 14, 9, 10, 0, 0, time.UTC), instant)

	_, err = CombineUTC("not-a-date", tc)
	assert.Error(t, err)
}

func TestFromInstantUTC(t *testing.T) {
	// extraction must use UTC getters regardless of the instant's location
	jakarta := time.FixedZone("WIB", 7*3600)
	instant := time.Date(2025, 3, 14, 16, 30, 0, 0, jakarta) // 09:30 UTC

	tc := FromInstantUTC(instant)
	assert.Equal(t, "09:30", tc.String())
}
