package service

import (
	"strings"

	"github.com/lmt-transport/LMT-Driver-App/internal/model"
)

// WorkloadHistory counts a driver's historical trips per shift, scanned over
// all job rows, not just the dashboard date.
type WorkloadHistory struct {
	Day   int `json:"day"`
	Night int `json:"night"`
}

// IdleBuckets splits the drivers with no trip today by their historical
// specialization.
//
// Bucket policy: the source system disagreed with itself across revisions
// about which side a day-only history lands on. This implementation fixes the
// mapping as: day+night history → Hybrid, day-only → Day, night-only (or
// unclassifiable rounds) → Night, no history → New. The mapping is covered by
// an explicit test and must not drift.
type IdleBuckets struct {
	Day    []model.Driver `json:"idle_drivers_day"`
	Night  []model.Driver `json:"idle_drivers_night"`
	Hybrid []model.Driver `json:"idle_drivers_hybrid"`
	New    []model.Driver `json:"idle_drivers_new"`
}

// BuildWorkloadHistory scans every job row and tallies day/night rounds per
// driver name. Rows with a blank driver or round are skipped; rows whose
// round hour cannot be parsed are skipped from the tally only.
func BuildWorkloadHistory(allJobs []model.JobRecord) map[string]*WorkloadHistory {
	history := make(map[string]*WorkloadHistory)
	for i := range allJobs {
		j := &allJobs[i]
		name := strings.TrimSpace(j.Driver)
		round := strings.TrimSpace(j.Round)
		if name == "" || round == "" {
			continue
		}

		h, ok := history[name]
		if !ok {
			h = &WorkloadHistory{}
			history[name] = h
		}
		if _, err := clockMinutes(round); err != nil {
			continue // tally only parseable rounds; the map entry still marks history
		}
		if model.ShiftOf(round) == model.ShiftDay {
			h.Day++
		} else {
			h.Night++
		}
	}
	return history
}

// ClassifyIdle buckets the roster: drivers with at least one trip today are
// working and appear in no bucket.
func ClassifyIdle(drivers []model.Driver, working map[string]bool, history map[string]*WorkloadHistory) IdleBuckets {
	var buckets IdleBuckets
	for _, d := range drivers {
		name := strings.TrimSpace(d.Name)
		if name == "" || working[name] {
			continue
		}

		h, ok := history[name]
		switch {
		case !ok:
			buckets.New = append(buckets.New, d)
		case h.Day > 0 && h.Night > 0:
			buckets.Hybrid = append(buckets.Hybrid, d)
		case h.Day > 0:
			buckets.Day = append(buckets.Day, d)
		default:
			buckets.Night = append(buckets.Night, d)
		}
	}
	return buckets
}
