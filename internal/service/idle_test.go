package service

import (
	"testing"

	"github.com/lmt-transport/LMT-Driver-App/internal/model"
)

func TestBuildWorkloadHistory(t *testing.T) {
	jobs := []model.JobRecord{
		row("2026-02-27", "1", "08:00", "สมชาย", "สาขา A"),
		row("2026-02-28", "1", "21:00", "สมชาย", "สาขา B"),
		row("2026-02-28", "2", "09:00", "วิชัย", "สาขา C"),
		row("2026-02-28", "3", "after lunch", "ประยุทธ", "สาขา D"), // hand-edited round
		{PODate: "2026-02-28", Round: "08:00", CarNo: "4", BranchName: "สาขา E"}, // blank driver
	}

	history := BuildWorkloadHistory(jobs)

	if h := history["สมชาย"]; h == nil || h.Day != 1 || h.Night != 1 {
		t.Errorf("history[สมชาย] = %+v, want day 1 night 1", h)
	}
	if h := history["วิชัย"]; h == nil || h.Day != 1 || h.Night != 0 {
		t.Errorf("history[วิชัย] = %+v, want day 1 night 0", h)
	}
	// Unparsable round still marks the driver as having history, tally empty.
	if h := history["ประยุทธ"]; h == nil || h.Day != 0 || h.Night != 0 {
		t.Errorf("history[ประยุทธ] = %+v, want zero tallies but present", h)
	}
	if len(history) != 3 {
		t.Errorf("history size = %d, want 3 (blank drivers skipped)", len(history))
	}
}

func TestClassifyIdle_Buckets(t *testing.T) {
	drivers := []model.Driver{
		{Name: "สมชาย"},   // day+night history
		{Name: "วิชัย"},   // day only
		{Name: "ประยุทธ"}, // night only
		{Name: "สมหญิง"},  // no history
		{Name: "มานะ"},    // working today
	}
	history := map[string]*WorkloadHistory{
		"สมชาย":   {Day: 3, Night: 2},
		"วิชัย":   {Day: 4},
		"ประยุทธ": {Night: 5},
		"มานะ":    {Day: 1},
	}
	working := map[string]bool{"มานะ": true}

	buckets := ClassifyIdle(drivers, working, history)

	if len(buckets.Hybrid) != 1 || buckets.Hybrid[0].Name != "สมชาย" {
		t.Errorf("hybrid = %v", buckets.Hybrid)
	}
	if len(buckets.Day) != 1 || buckets.Day[0].Name != "วิชัย" {
		t.Errorf("day = %v", buckets.Day)
	}
	if len(buckets.Night) != 1 || buckets.Night[0].Name != "ประยุทธ" {
		t.Errorf("night = %v", buckets.Night)
	}
	if len(buckets.New) != 1 || buckets.New[0].Name != "สมหญิง" {
		t.Errorf("new = %v", buckets.New)
	}
}

func TestClassifyIdle_UnclassifiableHistoryLandsNight(t *testing.T) {
	drivers := []model.Driver{{Name: "ประยุทธ"}}
	history := map[string]*WorkloadHistory{"ประยุทธ": {}} // history exists, no parseable rounds

	buckets := ClassifyIdle(drivers, nil, history)

	if len(buckets.Night) != 1 {
		t.Fatalf("driver with unclassifiable history should land in the night bucket, got %+v", buckets)
	}
}
