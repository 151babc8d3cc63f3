package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lmt-transport/LMT-Driver-App/config"
	"github.com/lmt-transport/LMT-Driver-App/internal/model"
	"github.com/lmt-transport/LMT-Driver-App/internal/notifier"
	"github.com/lmt-transport/LMT-Driver-App/internal/repository"
	"github.com/lmt-transport/LMT-Driver-App/pkg/thai"
)

// MovementEvent is a per-truck status transition worth a chat message.
type MovementEvent int

const (
	MovementEntered MovementEvent = iota
	MovementExited
	MovementFinished
)

// NotifyService owns everything that leaves the system as a chat message:
// per-truck movement lines, the shift-wide completion milestones, and the
// hourly late roster. Every send is gated by the idempotency ledger where a
// duplicate would be noise, and every delivery failure is logged and
// swallowed; notifications never fail the request that raised them.
type NotifyService interface {
	// NotifyMovement announces one truck's transition. Best-effort.
	NotifyMovement(ctx context.Context, trip *model.Trip, event MovementEvent)
	// CheckMilestones re-scans today's jobs fresh from the store and fires
	// any newly-complete shift milestone for the shift the given round
	// belongs to.
	CheckMilestones(ctx context.Context, round string)
	// RunBackground drives the hourly late alert and the daily ledger prune
	// until the context is cancelled.
	RunBackground(ctx context.Context)
}

type notifyService struct {
	repo     *repository.Repository
	notifier notifier.Notifier
	logger   *zap.Logger
	cfg      config.NotifyConfig
	now      func() time.Time
}

// NewNotifyService wires the notification engine. The clock is injectable
// for tests; pass thai.Now in production.
func NewNotifyService(
	repo *repository.Repository,
	n notifier.Notifier,
	cfg config.NotifyConfig,
	logger *zap.Logger,
	now func() time.Time,
) NotifyService {
	if now == nil {
		now = thai.Now
	}
	return &notifyService{repo: repo, notifier: n, logger: logger, cfg: cfg, now: now}
}

// markAndSend claims the ledger key and, on winning the claim, delivers the
// message. A ledger failure counts as already-notified: missing one alert is
// cheaper than flooding the channel while the store misbehaves.
func (s *notifyService) markAndSend(ctx context.Context, key, message string) {
	inserted, err := s.repo.NotifyLog.InsertIfAbsent(ctx, key)
	if err != nil {
		s.logger.Error("notify ledger unavailable, skipping alert",
			zap.String("key", key),
			zap.Error(err),
		)
		return
	}
	if !inserted {
		return // someone already announced this milestone
	}

	s.send(ctx, message)
}

func (s *notifyService) send(ctx context.Context, message string) {
	if err := s.notifier.Send(ctx, message); err != nil {
		s.logger.Warn("notification dispatch failed", zap.Error(err))
	}
}

// ── per-truck movement ──

var movementText = map[MovementEvent]string{
	MovementEntered:  "เข้าโรงงานแล้ว",
	MovementExited:   "ออกโรงงานแล้ว",
	MovementFinished: "จบงานครบทุกสาขาแล้ว",
}

func (s *notifyService) NotifyMovement(ctx context.Context, trip *model.Trip, event MovementEvent) {
	text, ok := movementText[event]
	if !ok {
		return
	}
	msg := fmt.Sprintf("🚛 รถ `%s` รอบ `%s` (ทะเบียน %s) %s 🕒 `%s น.`",
		trip.Key.CarNo, trip.Key.Round, trip.Plate, text,
		s.now().Format(thai.ClockFormat),
	)
	s.send(ctx, msg)
}

// ── shift milestones ──

type milestone struct {
	event   string
	reached func(ShiftStats) bool
	label   string
}

// Milestones in announcement order. Each compares a counter against the trip
// total; cancelled trips are already excluded from both sides.
var milestones = []milestone{
	{model.NotifyCompletedIn, func(st ShiftStats) bool { return st.Entered == st.Total }, "เข้าโรงงาน ครบแล้ว!"},
	{model.NotifyCompletedOut, func(st ShiftStats) bool { return st.Exited == st.Total }, "ออกโรงงาน ครบแล้ว!"},
	{model.NotifyCompletedDone, func(st ShiftStats) bool { return st.Finished == st.Total }, "จบงาน ครบแล้ว!"},
}

func shiftEmoji(shift model.Shift) string {
	if shift == model.ShiftNight {
		return "🌙"
	}
	return "☀️"
}

func shiftName(shift model.Shift) string {
	if shift == model.ShiftNight {
		return "รอบดึก"
	}
	return "รอบเช้า"
}

func (s *notifyService) CheckMilestones(ctx context.Context, round string) {
	// An unparsable round cannot be routed to a shift; do nothing rather
	// than guess which channel to announce on.
	if _, err := clockMinutes(round); err != nil {
		return
	}
	shift := model.ShiftOf(round)

	now := s.now()
	today := now.Format(thai.DateFormat)

	// Fresh read on purpose: deciding "every truck is in" on a snapshot up
	// to a minute old would fire the milestone early or late.
	rows, err := s.repo.Job.ListByDate(ctx, today)
	if err != nil {
		s.logger.Error("milestone check: fresh job read failed", zap.Error(err))
		return
	}

	agg := Aggregate(rows, today, now)
	stats := agg.Day
	if shift == model.ShiftNight {
		stats = agg.Night
	}
	if stats.Total == 0 {
		return
	}

	for _, m := range milestones {
		if !m.reached(stats) {
			continue
		}
		key := model.MilestoneKey(m.event, today, shift)
		msg := fmt.Sprintf("%s **แจ้งเตือน: รถ%s%s**\n✅ จำนวนทั้งหมด: `%d` คัน\n🕒 เวลา: `%s น.`",
			shiftEmoji(shift), shiftName(shift), m.label,
			stats.Total,
			now.Format(thai.ClockFormat),
		)
		s.markAndSend(ctx, key, msg)
	}
}

// ── background loop: hourly late roster + ledger retention ──

func (s *notifyService) RunBackground(ctx context.Context) {
	interval := s.cfg.PollInterval
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastPrune time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.lateAlertTick(ctx)
			if s.now().Sub(lastPrune) >= 24*time.Hour {
				s.pruneLedger(ctx)
				lastPrune = s.now()
			}
		}
	}
}

// lateAlertTick assembles the late roster and alerts per shift, at most once
// per hour per shift courtesy of the hour-scoped ledger key.
func (s *notifyService) lateAlertTick(ctx context.Context) {
	now := s.now()
	today := now.Format(thai.DateFormat)

	rows, err := s.repo.Job.ListByDate(ctx, today)
	if err != nil {
		s.logger.Error("late alert: fresh job read failed", zap.Error(err))
		return
	}

	agg := Aggregate(rows, today, now)

	threshold := int(s.cfg.LateThreshold.Minutes())
	byShift := map[model.Shift][]LateEntry{}
	for _, entries := range agg.LateByPODate {
		for _, e := range entries {
			if e.LateMinutes < threshold {
				continue
			}
			shift := model.ShiftOf(e.Round)
			byShift[shift] = append(byShift[shift], e)
		}
	}

	for _, shift := range []model.Shift{model.ShiftDay, model.ShiftNight} {
		entries := byShift[shift]
		if len(entries) == 0 {
			continue
		}
		key := model.LateAlertKey(shift, today, now.Hour())
		s.markAndSend(ctx, key, lateRosterMessage(shift, entries))
	}
}

func lateRosterMessage(shift model.Shift, entries []LateEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "⚠️ **แจ้งเตือน: รถ%sยังไม่เข้าโรงงาน `%d` คัน**\n", shiftName(shift), len(entries))
	for _, e := range entries {
		fmt.Fprintf(&b, "• รถ `%s` รอบ `%s` คนขับ %s ช้า %s\n",
			e.CarNo, e.Round, e.Driver, e.LateDuration)
	}
	return b.String()
}

func (s *notifyService) pruneLedger(ctx context.Context) {
	cutoff := s.now().AddDate(0, 0, -s.cfg.RetentionDays)
	n, err := s.repo.NotifyLog.PruneBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("notify ledger prune failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Info("notify ledger pruned",
			zap.Int64("removed", n),
			zap.Time("cutoff", cutoff),
		)
	}
}
