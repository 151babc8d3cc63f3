package service

import (
	"testing"
	"time"

	"github.com/lmt-transport/LMT-Driver-App/internal/model"
	"github.com/lmt-transport/LMT-Driver-App/pkg/thai"
)

func bkk(date, clock string) time.Time {
	t, err := time.ParseInLocation(thai.DateFormat+" "+thai.ClockFormat, date+" "+clock, thai.Bangkok)
	if err != nil {
		panic(err)
	}
	return t
}

func row(poDate, carNo, round, driver, branch string) model.JobRecord {
	return model.JobRecord{
		PODate:     poDate,
		LoadDate:   poDate,
		Round:      round,
		CarNo:      carNo,
		Driver:     driver,
		Plate:      "70-1234",
		BranchName: branch,
		Status:     model.StatusNew,
	}
}

func TestAggregate_GroupsBranchRowsIntoTrips(t *testing.T) {
	jobs := []model.JobRecord{
		row("2026-03-01", "1", "08:00", "สมชาย", "สาขา A"),
		row("2026-03-01", "1", "08:00", "สมชาย", "สาขา B"),
		row("2026-03-01", "2", "09:00", "วิชัย", "สาขา C"),
	}

	res := Aggregate(jobs, "2026-03-01", bkk("2026-03-01", "07:00"))

	if len(res.Trips) != 2 {
		t.Fatalf("trips = %d, want 2", len(res.Trips))
	}
	if got := len(res.Trips[0].Branches); got != 2 {
		t.Errorf("first trip branches = %d, want 2", got)
	}
	if res.TotalTrips != 2 || res.TotalBranches != 3 {
		t.Errorf("totals = (%d trips, %d branches), want (2, 3)", res.TotalTrips, res.TotalBranches)
	}
}

func TestAggregate_SameCarDifferentRoundSplits(t *testing.T) {
	jobs := []model.JobRecord{
		row("2026-03-01", "1", "08:00", "สมชาย", "สาขา A"),
		row("2026-03-01", "1", "13:00", "สมชาย", "สาขา B"),
	}

	res := Aggregate(jobs, "2026-03-01", bkk("2026-03-01", "07:00"))

	if len(res.Trips) != 2 {
		t.Fatalf("trips = %d, want 2 (round participates in the key)", len(res.Trips))
	}
}

func TestAggregate_FiltersByDate(t *testing.T) {
	jobs := []model.JobRecord{
		row("2026-03-01", "1", "08:00", "สมชาย", "สาขา A"),
		row("2026-03-02", "1", "08:00", "สมชาย", "สาขา B"),
	}

	res := Aggregate(jobs, "2026-03-01", bkk("2026-03-01", "07:00"))
	if len(res.Trips) != 1 {
		t.Fatalf("trips = %d, want 1", len(res.Trips))
	}
	if res.Trips[0].Branches[0].BranchName != "สาขา A" {
		t.Errorf("wrong row survived the date filter")
	}
}

func TestShiftOf_Boundaries(t *testing.T) {
	cases := []struct {
		round string
		want  model.Shift
	}{
		{"06:00", model.ShiftDay},
		{"18:59", model.ShiftDay},
		{"19:00", model.ShiftNight},
		{"05:59", model.ShiftNight},
		{"00:30", model.ShiftNight},
		{"12:00", model.ShiftDay},
		{"garbage", model.ShiftDay}, // unparsable defaults to day
	}
	for _, c := range cases {
		if got := model.ShiftOf(c.round); got != c.want {
			t.Errorf("ShiftOf(%q) = %s, want %s", c.round, got, c.want)
		}
	}
}

func TestAggregate_NonNumericCarSortsLast(t *testing.T) {
	jobs := []model.JobRecord{
		row("2026-03-01", "A12", "08:00", "ก", "สาขา A"),
		row("2026-03-01", "10", "08:30", "ข", "สาขา B"),
		row("2026-03-01", "2", "09:00", "ค", "สาขา C"),
	}

	res := Aggregate(jobs, "2026-03-01", bkk("2026-03-01", "07:00"))

	var order []string
	for _, tr := range res.Trips {
		order = append(order, tr.Key.CarNo)
	}
	want := []string{"2", "10", "A12"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("car order = %v, want %v", order, want)
		}
	}
}

func TestDeriveStage_Precedence(t *testing.T) {
	base := row("2026-03-01", "1", "08:00", "สมชาย", "สาขา A")

	t.Run("waiting when nothing recorded", func(t *testing.T) {
		st := model.DeriveStage([]model.JobRecord{base})
		if st.Code != model.StageWaiting {
			t.Errorf("stage = %v, want waiting", st.Code)
		}
	})

	t.Run("most advanced factory milestone wins", func(t *testing.T) {
		r := base
		r.T1Enter = "08:05"
		r.T3EndLoad = "09:00"
		st := model.DeriveStage([]model.JobRecord{r})
		if st.Code != model.StageEndLoad || st.At != "09:00" {
			t.Errorf("stage = %+v, want end-load at 09:00", st)
		}
	})

	t.Run("branch activity beats factory fields", func(t *testing.T) {
		r1 := base
		r1.T6Exit = "10:00"
		r1.T7ArriveBranch = "11:00"
		r2 := row("2026-03-01", "1", "08:00", "สมชาย", "สาขา B")
		r2.T6Exit = "10:00"
		st := model.DeriveStage([]model.JobRecord{r1, r2})
		if st.Code != model.StageArrivedBranch || st.Branch != 1 {
			t.Errorf("stage = %+v, want arrived at branch 1", st)
		}
	})

	t.Run("furthest branch wins over earlier finished one", func(t *testing.T) {
		r1 := base
		r1.T8EndJob = "12:00"
		r2 := row("2026-03-01", "1", "08:00", "สมชาย", "สาขา B")
		r2.T7ArriveBranch = "12:30"
		st := model.DeriveStage([]model.JobRecord{r1, r2})
		if st.Code != model.StageArrivedBranch || st.Branch != 2 {
			t.Errorf("stage = %+v, want arrived at branch 2", st)
		}
	})

	t.Run("all done beats everything", func(t *testing.T) {
		r1 := base
		r1.Status = model.StatusDone
		r1.T8EndJob = "12:00"
		r2 := row("2026-03-01", "1", "08:00", "สมชาย", "สาขา B")
		r2.Status = model.StatusDone
		r2.T8EndJob = "14:00"
		st := model.DeriveStage([]model.JobRecord{r1, r2})
		if st.Code != model.StageAllFinished || st.At != "14:00" {
			t.Errorf("stage = %+v, want all finished at 14:00", st)
		}
	})
}

func TestLoadDelay_MidnightAlignment(t *testing.T) {
	cases := []struct {
		round, t2 string
		want      int
		ok        bool
	}{
		{"08:00", "08:45", 45, true},
		{"08:00", "07:30", -30, true},
		{"23:30", "00:15", 45, true},   // crossed midnight forward
		{"00:15", "23:30", -45, true},  // recorded the evening before
		{"08:00", "", 0, false},        // no actual time yet
		{"bad", "08:00", 0, false},     // unparsable plan
	}
	for _, c := range cases {
		got, ok := loadDelay(c.round, c.t2)
		if ok != c.ok || got != c.want {
			t.Errorf("loadDelay(%q, %q) = (%d, %v), want (%d, %v)", c.round, c.t2, got, ok, c.want, c.ok)
		}
	}
}

func TestAggregate_LateRoster(t *testing.T) {
	late1 := row("2026-03-01", "1", "08:00", "สมชาย", "สาขา A")
	late2 := row("2026-03-01", "1", "08:00", "สมชาย", "สาขา B") // same truck, second branch
	onTime := row("2026-03-01", "2", "08:00", "วิชัย", "สาขา C")
	onTime.T1Enter = "07:55"
	done := row("2026-03-01", "3", "08:00", "ประยุทธ", "สาขา D")
	done.Status = model.StatusDone
	future := row("2026-03-01", "4", "15:00", "สมหญิง", "สาขา E")

	res := Aggregate(
		[]model.JobRecord{late1, late2, onTime, done, future},
		"2026-03-01",
		bkk("2026-03-01", "10:30"),
	)

	entries := res.LateByPODate["2026-03-01"]
	if len(entries) != 1 {
		t.Fatalf("late entries = %d, want 1 (dedupe per truck, exclude entered/done/future)", len(entries))
	}
	e := entries[0]
	if e.CarNo != "1" || e.LateMinutes != 150 {
		t.Errorf("entry = %+v, want car 1 late 150 min", e)
	}
	if e.LateDuration != "2 ชม. 30 น." {
		t.Errorf("duration = %q, want 2 ชม. 30 น.", e.LateDuration)
	}
	if res.TotalLateCars != 1 {
		t.Errorf("total late = %d, want 1", res.TotalLateCars)
	}
}

func TestAggregate_LatenessMonotonic(t *testing.T) {
	job := row("2026-03-01", "1", "08:00", "สมชาย", "สาขา A")

	at10 := Aggregate([]model.JobRecord{job}, "2026-03-01", bkk("2026-03-01", "10:00"))
	at11 := Aggregate([]model.JobRecord{job}, "2026-03-01", bkk("2026-03-01", "11:00"))

	m10 := at10.LateByPODate["2026-03-01"][0].LateMinutes
	m11 := at11.LateByPODate["2026-03-01"][0].LateMinutes
	if m11 <= m10 {
		t.Errorf("lateness did not grow with the clock: %d then %d", m10, m11)
	}
}

func TestAggregate_ShiftStatsExcludeCancelled(t *testing.T) {
	day := row("2026-03-01", "1", "08:00", "สมชาย", "สาขา A")
	day.T1Enter = "08:05"
	day.T6Exit = "10:00"
	cancelled := row("2026-03-01", "2", "09:00", "วิชัย", "สาขา B")
	cancelled.Status = "cancel" // sheet-edited lowercase
	night := row("2026-03-01", "3", "21:00", "ประยุทธ", "สาขา C")
	night.T1Enter = "21:10"
	night.Status = model.StatusDone
	night.T8EndJob = "23:40"

	res := Aggregate([]model.JobRecord{day, cancelled, night}, "2026-03-01", bkk("2026-03-01", "23:00"))

	if res.Day.Total != 1 || res.Day.Entered != 1 || res.Day.Exited != 1 || res.Day.Finished != 0 {
		t.Errorf("day stats = %+v", res.Day)
	}
	if !res.Day.IsComplete {
		t.Errorf("day shift should be complete, every counted truck entered")
	}
	if res.Night.Total != 1 || res.Night.Finished != 1 {
		t.Errorf("night stats = %+v", res.Night)
	}
}

func TestAggregate_NightRowsSortAcrossMidnight(t *testing.T) {
	jobs := []model.JobRecord{
		row("2026-03-01", "1", "02:00", "ก", "สาขา A"),
		row("2026-03-01", "2", "19:30", "ข", "สาขา B"),
		row("2026-03-01", "3", "23:00", "ค", "สาขา C"),
	}

	res := Aggregate(jobs, "2026-03-01", bkk("2026-03-01", "20:00"))

	if len(res.RowsNight) != 3 {
		t.Fatalf("night rows = %d, want 3", len(res.RowsNight))
	}
	want := []string{"19:30", "23:00", "02:00"}
	for i, w := range want {
		if res.RowsNight[i].Round != w {
			t.Fatalf("night order = %v..., want %v", res.RowsNight[i].Round, want)
		}
	}
}

func TestAggregate_DriverStats(t *testing.T) {
	a := row("2026-03-01", "5", "08:00", "สมชาย", "สาขา A")
	b := row("2026-03-01", "2", "13:00", "สมชาย", "สาขา B")
	b.Status = model.StatusDone
	b.T8EndJob = "16:00"

	res := Aggregate([]model.JobRecord{a, b}, "2026-03-01", bkk("2026-03-01", "07:00"))

	stat := res.DriverStats["สมชาย"]
	if stat == nil || stat.TotalTrips != 2 {
		t.Fatalf("driver stat = %+v, want 2 trips", stat)
	}
	// Rounds order by numeric car slot, not by round time.
	if stat.Rounds[0].CarNo != "2" || stat.Rounds[1].CarNo != "5" {
		t.Errorf("round order = %s, %s; want 2 then 5", stat.Rounds[0].CarNo, stat.Rounds[1].CarNo)
	}
	if stat.Rounds[0].Status != "Done" || stat.Rounds[1].Status != "Pending" {
		t.Errorf("statuses = %s, %s", stat.Rounds[0].Status, stat.Rounds[1].Status)
	}
}
