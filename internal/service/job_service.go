package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/lmt-transport/LMT-Driver-App/internal/cache"
	"github.com/lmt-transport/LMT-Driver-App/internal/dto"
	"github.com/lmt-transport/LMT-Driver-App/internal/model"
	"github.com/lmt-transport/LMT-Driver-App/internal/repository"
	"github.com/lmt-transport/LMT-Driver-App/pkg/thai"
)

var (
	ErrTripNotFound   = errors.New("trip not found")
	ErrInvalidField   = errors.New("unknown status field")
	ErrBranchRequired = errors.New("branch_name required for branch-level fields")
)

// statusFields maps the request field names to job columns. Trip-shared
// fields fan out to every row; t7/t8 address a single branch row.
var statusFields = map[string]struct {
	column    string
	perBranch bool
	isTime    bool
}{
	"t1_enter":         {"t1_enter", false, true},
	"t2_start_load":    {"t2_start_load", false, true},
	"t3_end_load":      {"t3_end_load", false, true},
	"t4_submit_doc":    {"t4_submit_doc", false, true},
	"t5_recv_doc":      {"t5_recv_doc", false, true},
	"t6_exit":          {"t6_exit", false, true},
	"t7_arrive_branch": {"t7_arrive_branch", true, true},
	"t8_end_job":       {"t8_end_job", true, true},
	"status":           {"status", false, false},
}

// JobService owns every write to the jobs table. Each mutation invalidates
// the jobs cache so the next dashboard read sees it, and status advances
// hand off to the notification engine.
type JobService interface {
	CreateTrip(ctx context.Context, req *dto.CreateTripRequest) error
	CancelTrip(ctx context.Context, key model.TripKey) error
	ReassignDriver(ctx context.Context, req *dto.ReassignDriverRequest) error
	AdvanceStatus(ctx context.Context, req *dto.AdvanceStatusRequest) (*model.Trip, error)
}

type jobService struct {
	repo   *repository.Repository
	store  *cache.Store
	notify NotifyService
	logger *zap.Logger
	now    func() time.Time
}

// NewJobService wires the job write path. The clock is injectable for tests;
// pass thai.Now in production.
func NewJobService(
	repo *repository.Repository,
	store *cache.Store,
	notify NotifyService,
	logger *zap.Logger,
	now func() time.Time,
) JobService {
	if now == nil {
		now = thai.Now
	}
	return &jobService{repo: repo, store: store, notify: notify, logger: logger, now: now}
}

func (s *jobService) CreateTrip(ctx context.Context, req *dto.CreateTripRequest) error {
	loadDate := req.LoadDate
	if loadDate == "" {
		loadDate = req.PODate
	}

	rows := make([]model.JobRecord, 0, len(req.Branches))
	for _, branch := range req.Branches {
		rows = append(rows, model.JobRecord{
			PODate:     req.PODate,
			LoadDate:   loadDate,
			Round:      req.Round,
			CarNo:      req.CarNo,
			Driver:     req.Driver,
			Plate:      req.Plate,
			BranchName: branch,
			Weight:     req.Weight,
			PONos:      req.PONos,
			Status:     model.StatusNew,
		})
	}
	if err := s.repo.Job.CreateBatch(ctx, rows); err != nil {
		return err
	}

	s.store.Invalidate(cache.ResourceJobs)
	s.logger.Info("trip created",
		zap.String("po_date", req.PODate),
		zap.String("car_no", req.CarNo),
		zap.String("round", req.Round),
		zap.Int("branches", len(rows)),
	)
	return nil
}

func (s *jobService) CancelTrip(ctx context.Context, key model.TripKey) error {
	n, err := s.repo.Job.DeleteTrip(ctx, key)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTripNotFound
	}

	s.store.Invalidate(cache.ResourceJobs)
	s.logger.Info("trip cancelled",
		zap.String("po_date", key.PODate),
		zap.String("car_no", key.CarNo),
		zap.String("round", key.Round),
		zap.Int64("rows", n),
	)
	return nil
}

func (s *jobService) ReassignDriver(ctx context.Context, req *dto.ReassignDriverRequest) error {
	key := model.TripKey{PODate: req.PODate, CarNo: req.CarNo, Round: req.Round}
	updates := map[string]interface{}{"driver": req.NewDriver}
	if req.NewPlate != "" {
		updates["plate"] = req.NewPlate
	}

	n, err := s.repo.Job.UpdateTrip(ctx, key, updates)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTripNotFound
	}

	s.store.Invalidate(cache.ResourceJobs)
	s.logger.Info("driver reassigned",
		zap.String("po_date", key.PODate),
		zap.String("car_no", key.CarNo),
		zap.String("round", key.Round),
		zap.String("driver", req.NewDriver),
	)
	return nil
}

func (s *jobService) AdvanceStatus(ctx context.Context, req *dto.AdvanceStatusRequest) (*model.Trip, error) {
	field, ok := statusFields[req.Field]
	if !ok {
		return nil, ErrInvalidField
	}
	if field.perBranch && req.BranchName == "" {
		return nil, ErrBranchRequired
	}

	value := req.Value
	if value == "" && field.isTime {
		value = s.now().Format(thai.ClockFormat)
	}

	key := model.TripKey{PODate: req.PODate, CarNo: req.CarNo, Round: req.Round}
	updates := map[string]interface{}{field.column: value}

	var (
		n   int64
		err error
	)
	if field.perBranch {
		n, err = s.repo.Job.UpdateBranch(ctx, key, req.BranchName, updates)
	} else {
		n, err = s.repo.Job.UpdateTrip(ctx, key, updates)
	}
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrTripNotFound
	}

	s.store.Invalidate(cache.ResourceJobs)

	rows, err := s.repo.Job.GetTrip(ctx, key)
	if err != nil || len(rows) == 0 {
		// The write landed; a failed read-back only costs the response body
		// and the movement message.
		s.logger.Warn("trip read-back after status advance failed",
			zap.String("car_no", key.CarNo),
			zap.Error(err),
		)
		return nil, ErrTripNotFound
	}
	trip := buildTrip(rows)

	s.dispatchNotifications(ctx, &trip, req.Field)
	return &trip, nil
}

// dispatchNotifications announces the per-truck movement when warranted and
// always re-checks the shift milestones. Notification failures never
// propagate to the caller.
func (s *jobService) dispatchNotifications(ctx context.Context, trip *model.Trip, field string) {
	switch {
	case field == "t1_enter":
		s.notify.NotifyMovement(ctx, trip, MovementEntered)
	case field == "t6_exit":
		s.notify.NotifyMovement(ctx, trip, MovementExited)
	case trip.Done:
		s.notify.NotifyMovement(ctx, trip, MovementFinished)
	}
	s.notify.CheckMilestones(ctx, trip.Key.Round)
}
