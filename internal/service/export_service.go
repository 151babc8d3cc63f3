package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/lmt-transport/LMT-Driver-App/internal/cache"
	"github.com/lmt-transport/LMT-Driver-App/internal/model"
	"github.com/lmt-transport/LMT-Driver-App/internal/sheet"
	"github.com/lmt-transport/LMT-Driver-App/pkg/thai"
)

var ErrExportNoJobs = errors.New("no jobs to export")

// ExportService renders the job table as downloadable artifacts: an Excel
// workbook mirroring the sheet layout, and an iCalendar feed of planned
// rounds for the drivers' phones.
type ExportService interface {
	// ExportJobs writes the rows for one date (or every date when date is
	// empty) into an xlsx workbook.
	ExportJobs(ctx context.Context, date string) (*bytes.Buffer, string, error)
	// ExportCalendar serializes one VEVENT per trip, spanning the planned
	// round for ninety minutes.
	ExportCalendar(ctx context.Context, date string) ([]byte, string, error)
}

type exportService struct {
	store  *cache.Store
	logger *zap.Logger
}

// NewExportService wires the export paths over the cache store.
func NewExportService(store *cache.Store, logger *zap.Logger) ExportService {
	return &exportService{store: store, logger: logger}
}

const exportSheet = "Jobs"

func (s *exportService) ExportJobs(ctx context.Context, date string) (*bytes.Buffer, string, error) {
	rows, err := s.jobsFor(ctx, date)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, "", err
	}

	header := make([]interface{}, len(sheet.Headers))
	for i, h := range sheet.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, "", err
	}

	for i := range rows {
		cells := sheet.EncodeRow(&rows[i])
		rowData := make([]interface{}, len(cells))
		for j, c := range cells {
			rowData[j] = c
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetSheetRow(exportSheet, cell, &rowData); err != nil {
			return nil, "", err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	name := "jobs_all.xlsx"
	if date != "" {
		name = fmt.Sprintf("jobs_%s.xlsx", date)
	}
	s.logger.Info("jobs exported", zap.String("file", name), zap.Int("rows", len(rows)))
	return buf, name, nil
}

func (s *exportService) ExportCalendar(ctx context.Context, date string) ([]byte, string, error) {
	rows, err := s.jobsFor(ctx, date)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//LMT Transport//Fleet Board//TH")

	sortJobs(rows)
	for _, t := range groupTrips(rows) {
		if len(t.Branches) == 0 || t.Branches[0].IsCancelled() {
			continue
		}
		start, err := plannedEntry(&t.Branches[0])
		if err != nil {
			continue // hand-edited round, nothing to schedule
		}

		ev := cal.AddEvent(uuid.New().String())
		ev.SetCreatedTime(thai.Now())
		ev.SetStartAt(start)
		ev.SetEndAt(start.Add(90 * time.Minute))
		ev.SetSummary(fmt.Sprintf("รถ %s รอบ %s (%s)", t.Key.CarNo, t.Key.Round, t.Driver))
		ev.SetLocation(strings.Join(t.BranchNames(), ", "))
		ev.SetDescription(fmt.Sprintf("ทะเบียน %s สาขา %d จุด", t.Plate, len(t.Branches)))
	}

	name := "rounds_all.ics"
	if date != "" {
		name = fmt.Sprintf("rounds_%s.ics", date)
	}
	return []byte(cal.Serialize()), name, nil
}

func (s *exportService) jobsFor(ctx context.Context, date string) ([]model.JobRecord, error) {
	jobs, err := s.store.Jobs(ctx)
	if err != nil {
		return nil, err
	}
	jobs = filterByDate(jobs, date)
	if len(jobs) == 0 {
		return nil, ErrExportNoJobs
	}
	return jobs, nil
}
