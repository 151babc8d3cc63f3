package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/lmt-transport/LMT-Driver-App/internal/cache"
	"github.com/lmt-transport/LMT-Driver-App/internal/model"
)

func setupDashboard(jobs *mockJobRepo, drivers []model.Driver, at time.Time) DashboardService {
	repo := newTestRepo(jobs, nil)
	repo.Driver = &mockDriverRepo{drivers: drivers}
	store := cache.NewStore(repo, time.Minute, fixedClock(at))
	return NewDashboardService(store, zap.NewNop(), fixedClock(at))
}

func TestDashboard_DefaultsToToday(t *testing.T) {
	now := bkk("2026-03-01", "10:00")
	jobs := newMockJobRepo(
		row("2026-03-01", "1", "08:00", "สมชาย", "สาขา A"),
		row("2026-02-28", "1", "08:00", "สมชาย", "สาขา B"),
	)
	svc := setupDashboard(jobs, nil, now)

	data, err := svc.Dashboard(context.Background(), "")
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if data.Date != "2026-03-01" || data.Today != "2026-03-01" {
		t.Errorf("date = %q today = %q, want both 2026-03-01", data.Date, data.Today)
	}
	if data.NowTime != "10:00" {
		t.Errorf("now_time = %q, want 10:00", data.NowTime)
	}
	if len(data.Trips) != 1 {
		t.Errorf("trips = %d, want only today's", len(data.Trips))
	}
}

func TestDashboard_DatePagination(t *testing.T) {
	now := bkk("2026-03-01", "10:00")
	svc := setupDashboard(newMockJobRepo(), nil, now)

	data, err := svc.Dashboard(context.Background(), "2026-03-01")
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if data.PrevDate != "2026-02-28" || data.NextDate != "2026-03-02" {
		t.Errorf("prev/next = %q / %q", data.PrevDate, data.NextDate)
	}
}

func TestDashboard_AllDatesNewestFirst(t *testing.T) {
	now := bkk("2026-03-01", "10:00")
	jobs := newMockJobRepo(
		row("2026-02-27", "1", "08:00", "ก", "สาขา A"),
		row("2026-03-01", "1", "08:00", "ข", "สาขา B"),
		row("2026-02-28", "1", "08:00", "ค", "สาขา C"),
		row("2026-03-01", "2", "09:00", "ง", "สาขา D"), // duplicate date
	)
	svc := setupDashboard(jobs, nil, now)

	data, err := svc.Dashboard(context.Background(), "2026-03-01")
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	want := []string{"2026-03-01", "2026-02-28", "2026-02-27"}
	if len(data.AllDates) != len(want) {
		t.Fatalf("all_dates = %v, want %v", data.AllDates, want)
	}
	for i := range want {
		if data.AllDates[i] != want[i] {
			t.Fatalf("all_dates = %v, want %v", data.AllDates, want)
		}
	}
}

func TestDashboard_WorkingDriverNotIdle(t *testing.T) {
	now := bkk("2026-03-01", "10:00")
	jobs := newMockJobRepo(
		row("2026-03-01", "1", "08:00", "สมชาย", "สาขา A"),
		row("2026-02-28", "1", "09:00", "วิชัย", "สาขา B"), // history only
	)
	drivers := []model.Driver{{Name: "สมชาย"}, {Name: "วิชัย"}, {Name: "สมหญิง"}}
	svc := setupDashboard(jobs, drivers, now)

	data, err := svc.Dashboard(context.Background(), "2026-03-01")
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if len(data.Idle.Day) != 1 || data.Idle.Day[0].Name != "วิชัย" {
		t.Errorf("idle day = %v, want วิชัย (day history, no trip today)", data.Idle.Day)
	}
	if len(data.Idle.New) != 1 || data.Idle.New[0].Name != "สมหญิง" {
		t.Errorf("idle new = %v, want สมหญิง", data.Idle.New)
	}
}

func TestShiftsAndLateProjections(t *testing.T) {
	now := bkk("2026-03-01", "10:30")
	entered := row("2026-03-01", "1", "08:00", "สมชาย", "สาขา A")
	entered.T1Enter = "08:05"
	late := row("2026-03-01", "2", "08:00", "วิชัย", "สาขา B")
	jobs := newMockJobRepo(entered, late)
	svc := setupDashboard(jobs, nil, now)

	shifts, err := svc.Shifts(context.Background(), "2026-03-01")
	if err != nil {
		t.Fatalf("Shifts: %v", err)
	}
	if shifts.Day.Total != 2 || shifts.Day.Entered != 1 || shifts.Day.IsComplete {
		t.Errorf("day stats = %+v", shifts.Day)
	}

	lateRes, err := svc.Late(context.Background(), "2026-03-01")
	if err != nil {
		t.Fatalf("Late: %v", err)
	}
	if lateRes.TotalLateCars != 1 {
		t.Errorf("late cars = %d, want 1", lateRes.TotalLateCars)
	}
}
