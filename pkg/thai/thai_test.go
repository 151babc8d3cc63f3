package thai

import (
	"testing"
	"time"
)

func TestFormatDate_BuddhistYear(t *testing.T) {
	cases := []struct{ in, want string }{
		{"2026-03-01", "01/03/2569"},
		{"2025-12-31", "31/12/2568"},
		{"", ""},
		{"not a date", "not a date"}, // hand-edited cells pass through
	}
	for _, c := range cases {
		if got := FormatDate(c.in); got != c.want {
			t.Errorf("FormatDate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatLateDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{2*time.Hour + 30*time.Minute, "2 ชม. 30 น."},
		{45 * time.Minute, "0 ชม. 45 น."},
		{0, "0 ชม. 0 น."},
		{-time.Hour, "0 ชม. 0 น."}, // clamps, never renders negative
	}
	for _, c := range cases {
		if got := FormatLateDuration(c.in); got != c.want {
			t.Errorf("FormatLateDuration(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestBangkokOffset(t *testing.T) {
	_, offset := time.Date(2026, 3, 1, 12, 0, 0, 0, Bangkok).Zone()
	if offset != 7*60*60 {
		t.Fatalf("Bangkok offset = %d, want +07:00", offset)
	}
}
