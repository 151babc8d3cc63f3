// Package thai holds the few locale rules the fleet board presents to users:
// the Bangkok wall clock, Buddhist-calendar dates, and duration text.
package thai

import (
	"fmt"
	"time"
)

// Bangkok is the fleet's operating timezone. A fixed offset is used instead of
// a tzdata lookup: Thailand has no DST and the binary may run on images
// without zoneinfo.
var Bangkok = time.FixedZone("ICT", 7*60*60)

// Now returns the current Bangkok wall-clock time.
func Now() time.Time {
	return time.Now().In(Bangkok)
}

// DateFormat and ClockFormat are the sheet's persisted layouts.
const (
	DateFormat  = "2006-01-02"
	ClockFormat = "15:04"
)

// FormatDate renders a sheet date (2006-01-02) as dd/mm/yyyy with the
// Buddhist year (+543). Unparsable input is returned unchanged, matching the
// dashboard's tolerance for hand-edited cells.
func FormatDate(dateStr string) string {
	if dateStr == "" {
		return ""
	}
	d, err := time.Parse(DateFormat, dateStr)
	if err != nil {
		return dateStr
	}
	return fmt.Sprintf("%02d/%02d/%d", d.Day(), int(d.Month()), d.Year()+543)
}

// FormatLateDuration renders a lateness duration as "X ชม. Y น."
// (hours/minutes). Negative input clamps to zero.
func FormatLateDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d / time.Hour)
	mins := int(d%time.Hour) / int(time.Minute)
	return fmt.Sprintf("%d ชม. %d น.", hours, mins)
}
