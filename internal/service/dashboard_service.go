package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lmt-transport/LMT-Driver-App/internal/cache"
	"github.com/lmt-transport/LMT-Driver-App/internal/model"
	"github.com/lmt-transport/LMT-Driver-App/pkg/thai"
)

// DashboardData is the full manager-dashboard view for one date.
type DashboardData struct {
	*AggregateResult

	Idle IdleBuckets `json:"idle"`

	Today    string   `json:"today"`
	NowTime  string   `json:"now_time"`
	PrevDate string   `json:"prev_date"`
	NextDate string   `json:"next_date"`
	AllDates []string `json:"all_dates"`
}

// ShiftSummary is the per-shift snapshot pair served to the presentation
// layer.
type ShiftSummary struct {
	Date  string     `json:"date"`
	Day   ShiftStats `json:"day"`
	Night ShiftStats `json:"night"`
}

// LateSummary is the late roster for one dashboard date.
type LateSummary struct {
	Date          string                 `json:"date"`
	LateByPODate  map[string][]LateEntry `json:"late_by_po_date"`
	TotalLateCars int                    `json:"total_late_cars"`
}

// DashboardService reads the cached job rows and derives the dashboard
// views. Reads go through the cache store; only the notification engine
// bypasses it.
type DashboardService interface {
	Dashboard(ctx context.Context, date string) (*DashboardData, error)
	Shifts(ctx context.Context, date string) (*ShiftSummary, error)
	Late(ctx context.Context, date string) (*LateSummary, error)
	Idle(ctx context.Context, date string) (*IdleBuckets, error)
}

type dashboardService struct {
	store  *cache.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewDashboardService creates the dashboard read service. The clock is
// injectable for tests; pass thai.Now in production.
func NewDashboardService(store *cache.Store, logger *zap.Logger, now func() time.Time) DashboardService {
	if now == nil {
		now = thai.Now
	}
	return &dashboardService{store: store, logger: logger, now: now}
}

func (s *dashboardService) Dashboard(ctx context.Context, date string) (*DashboardData, error) {
	jobs, err := s.store.Jobs(ctx)
	if err != nil {
		s.logger.Error("dashboard: job read failed", zap.Error(err))
		return nil, err
	}
	drivers, err := s.store.Drivers(ctx)
	if err != nil {
		s.logger.Error("dashboard: driver read failed", zap.Error(err))
		return nil, err
	}

	now := s.now()
	today := now.Format(thai.DateFormat)
	if date == "" {
		date = today
	}

	agg := Aggregate(jobs, date, now)

	working := make(map[string]bool, len(agg.DriverStats))
	for name := range agg.DriverStats {
		working[name] = true
	}
	idle := ClassifyIdle(drivers, working, BuildWorkloadHistory(jobs))

	prevDate, nextDate := adjacentDates(date)

	return &DashboardData{
		AggregateResult: agg,
		Idle:            idle,
		Today:           today,
		NowTime:         now.Format(thai.ClockFormat),
		PrevDate:        prevDate,
		NextDate:        nextDate,
		AllDates:        distinctDates(jobs),
	}, nil
}

func (s *dashboardService) Shifts(ctx context.Context, date string) (*ShiftSummary, error) {
	agg, err := s.aggregate(ctx, &date)
	if err != nil {
		return nil, err
	}
	return &ShiftSummary{Date: date, Day: agg.Day, Night: agg.Night}, nil
}

func (s *dashboardService) Late(ctx context.Context, date string) (*LateSummary, error) {
	agg, err := s.aggregate(ctx, &date)
	if err != nil {
		return nil, err
	}
	return &LateSummary{
		Date:          date,
		LateByPODate:  agg.LateByPODate,
		TotalLateCars: agg.TotalLateCars,
	}, nil
}

func (s *dashboardService) Idle(ctx context.Context, date string) (*IdleBuckets, error) {
	data, err := s.Dashboard(ctx, date)
	if err != nil {
		return nil, err
	}
	return &data.Idle, nil
}

func (s *dashboardService) aggregate(ctx context.Context, date *string) (*AggregateResult, error) {
	jobs, err := s.store.Jobs(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if *date == "" {
		*date = now.Format(thai.DateFormat)
	}
	return Aggregate(jobs, *date, now), nil
}

// adjacentDates computes the pagination neighbours. An unparsable date
// paginates to itself, the dashboard just stays put.
func adjacentDates(date string) (prev, next string) {
	d, err := time.Parse(thai.DateFormat, date)
	if err != nil {
		return date, date
	}
	return d.AddDate(0, 0, -1).Format(thai.DateFormat),
		d.AddDate(0, 0, 1).Format(thai.DateFormat)
}

// distinctDates lists every po_date present, newest first, for the date
// picker.
func distinctDates(jobs []model.JobRecord) []string {
	seen := make(map[string]bool)
	var dates []string
	for i := range jobs {
		d := strings.TrimSpace(jobs[i].PODate)
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates
}
