package service

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lmt-transport/LMT-Driver-App/internal/model"
	"github.com/lmt-transport/LMT-Driver-App/pkg/thai"
)

// carNoSentinel sorts malformed car numbers after every real one. The sheet
// occasionally carries values like "A12" or blanks; those trucks still belong
// to their trip, they just sort last within the date.
const carNoSentinel = math.MaxInt32

// ShiftStats is the per-shift completion snapshot for one date: trip counts
// and how many trips have reached each fleet milestone. Computed fresh per
// check, never persisted.
type ShiftStats struct {
	Total      int  `json:"total"`
	Entered    int  `json:"entered"`
	Exited     int  `json:"exited"`
	Finished   int  `json:"finished"`
	IsComplete bool `json:"is_complete"`
}

// LateEntry is one truck on the late roster: planned entry time passed with
// no yard entry recorded.
type LateEntry struct {
	CarNo        string `json:"car_no"`
	Driver       string `json:"driver"`
	Plate        string `json:"plate"`
	Round        string `json:"round"`
	LoadDate     string `json:"load_date"`
	LateMinutes  int    `json:"late_minutes"`
	LateDuration string `json:"late_duration"` // "X ชม. Y น."
}

// TripStatusRow is one line of the live trip board.
type TripStatusRow struct {
	Round        string   `json:"round"`
	CarNo        string   `json:"car_no"`
	Plate        string   `json:"plate"`
	Driver       string   `json:"driver"`
	LoadDate     string   `json:"load_date"`
	Branches     []string `json:"branches"`
	LatestStatus string   `json:"latest_status"`
}

// DriverRound is one trip under a driver's daily stats.
type DriverRound struct {
	Round    string   `json:"round"`
	CarNo    string   `json:"car_no"`
	Plate    string   `json:"plate"`
	Branches []string `json:"branches"`
	Status   string   `json:"status"` // Done | Pending
}

// DriverStat aggregates one driver's trips for the day.
type DriverStat struct {
	TotalTrips int           `json:"total_trips"`
	Rounds     []DriverRound `json:"rounds"`
}

// AggregateResult is everything the dashboard derives from one pass over the
// job rows of a date.
type AggregateResult struct {
	Date string `json:"date"`

	Trips []model.Trip `json:"trips"`

	TotalTrips     int `json:"total_trips"`
	TotalBranches  int `json:"total_branches"`
	DoneBranches   int `json:"done_branches"`
	CompletedTrips int `json:"completed_trips"`

	TripLastEnd map[model.TripKey]string `json:"-"`

	Day   ShiftStats `json:"day"`
	Night ShiftStats `json:"night"`

	RowsDay   []TripStatusRow `json:"rows_day"`
	RowsNight []TripStatusRow `json:"rows_night"`

	LateByPODate  map[string][]LateEntry `json:"late_by_po_date"`
	TotalLateCars int                    `json:"total_late_cars"`

	DriverStats map[string]*DriverStat `json:"driver_stats"`
}

// Aggregate reconstructs trips from flat branch rows and derives the full
// dashboard state as of the given instant.
//
// date filters by po_date; empty means all rows. Grouping is exact: every
// row lands in exactly one trip regardless of malformed fields. Lateness is
// best-effort: rows whose planned instant cannot be parsed are skipped from
// the late roster but still grouped and counted.
func Aggregate(jobs []model.JobRecord, date string, asOf time.Time) *AggregateResult {
	res := &AggregateResult{
		Date:         date,
		TripLastEnd:  make(map[model.TripKey]string),
		LateByPODate: make(map[string][]LateEntry),
		DriverStats:  make(map[string]*DriverStat),
	}

	filtered := filterByDate(jobs, date)
	sortJobs(filtered)

	res.TotalBranches = len(filtered)
	for i := range filtered {
		if filtered[i].Status == model.StatusDone {
			res.DoneBranches++
		}
	}

	res.Trips = groupTrips(filtered)
	collectLateRoster(res, filtered, asOf)
	collectTripTotals(res, filtered)
	collectShiftStats(res, filtered)
	collectStatusRows(res)
	collectDriverStats(res)

	return res
}

// filterByDate keeps rows whose po_date matches. Values are trimmed: the
// sheet import preserves stray whitespace from hand-edited cells.
func filterByDate(jobs []model.JobRecord, date string) []model.JobRecord {
	if date == "" {
		return append([]model.JobRecord(nil), jobs...)
	}
	want := strings.TrimSpace(date)
	out := make([]model.JobRecord, 0, len(jobs))
	for _, j := range jobs {
		if strings.TrimSpace(j.PODate) == want {
			out = append(out, j)
		}
	}
	return out
}

// carNoSort parses a car number for ordering. Non-numeric values get the
// overflow sentinel so they sort after all real slots within the date.
func carNoSort(carNo string) int {
	n, err := strconv.Atoi(strings.TrimSpace(carNo))
	if err != nil {
		return carNoSentinel
	}
	return n
}

// sortJobs orders rows by (po_date, numeric car_no, round). Branch rows of a
// trip stay adjacent, which is what lets groupTrips run in a single pass.
func sortJobs(jobs []model.JobRecord) {
	sort.SliceStable(jobs, func(a, b int) bool {
		ja, jb := &jobs[a], &jobs[b]
		if ja.PODate != jb.PODate {
			return ja.PODate < jb.PODate
		}
		ca, cb := carNoSort(ja.CarNo), carNoSort(jb.CarNo)
		if ca != cb {
			return ca < cb
		}
		return ja.Round < jb.Round
	})
}

type groupKey struct {
	poDate, carNo, round, driver string
}

func keyOf(j *model.JobRecord) groupKey {
	return groupKey{j.PODate, j.CarNo, j.Round, j.Driver}
}

// groupTrips walks the sorted rows and closes a trip whenever the
// (po_date, car_no, round, driver) tuple changes.
func groupTrips(sorted []model.JobRecord) []model.Trip {
	var trips []model.Trip
	var group []model.JobRecord

	flush := func() {
		if len(group) == 0 {
			return
		}
		trips = append(trips, buildTrip(group))
		group = nil
	}

	var prev groupKey
	for i := range sorted {
		curr := keyOf(&sorted[i])
		if len(group) > 0 && curr != prev {
			flush()
		}
		group = append(group, sorted[i])
		prev = curr
	}
	flush()

	return trips
}

// buildTrip lifts the trip-shared fields off the first leg and derives the
// completion state and progress stage.
func buildTrip(group []model.JobRecord) model.Trip {
	first := &group[0]
	t := model.Trip{
		Key:      model.TripKey{PODate: first.PODate, CarNo: first.CarNo, Round: first.Round},
		Driver:   first.Driver,
		Plate:    first.Plate,
		Shift:    model.ShiftOf(first.Round),
		Branches: group,
	}
	t.Done = model.TripDone(group)
	t.LastEndJob = model.LastEndJob(group)
	t.Stage = model.DeriveStage(group)

	if delay, ok := loadDelay(first.Round, first.T2StartLoad); ok && delay > 0 {
		t.LateLoading = true
		t.LoadDelayMin = delay
	}
	return t
}

// loadDelay compares the planned round against the actual loading start,
// both clock times. When the raw difference exceeds twelve hours the actual
// time is shifted one day so the midnight-crossing night shift compares on
// the same calendar day; a 23:30 round loading at 00:15 is 45 minutes late,
// not negative.
func loadDelay(round, t2 string) (int, bool) {
	planned, err := clockMinutes(round)
	if err != nil {
		return 0, false
	}
	actual, err := clockMinutes(t2)
	if err != nil {
		return 0, false
	}

	diff := actual - planned
	const halfDay = 12 * 60
	if diff > halfDay {
		diff -= 24 * 60
	} else if diff < -halfDay {
		diff += 24 * 60
	}
	return diff, true
}

func clockMinutes(clock string) (int, error) {
	t, err := time.Parse(thai.ClockFormat, strings.TrimSpace(clock))
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// collectLateRoster gathers trucks past their planned yard entry. The first
// late branch row per (po_date, car_no) wins; further rows of the same truck
// are suppressed so a three-branch trip does not list the truck three times.
func collectLateRoster(res *AggregateResult, filtered []model.JobRecord, asOf time.Time) {
	seen := make(map[[2]string]bool)

	for i := range filtered {
		j := &filtered[i]
		if j.T1Enter != "" || j.Status == model.StatusDone {
			continue
		}

		planned, err := plannedEntry(j)
		if err != nil {
			continue // unparsable plan: grouping keeps the row, lateness skips it
		}
		if !asOf.After(planned) {
			continue
		}

		dedupeKey := [2]string{j.PODate, j.CarNo}
		if seen[dedupeKey] {
			continue
		}
		seen[dedupeKey] = true

		late := asOf.Sub(planned)
		res.LateByPODate[j.PODate] = append(res.LateByPODate[j.PODate], LateEntry{
			CarNo:        j.CarNo,
			Driver:       j.Driver,
			Plate:        j.Plate,
			Round:        j.Round,
			LoadDate:     loadDateOf(j),
			LateMinutes:  int(late / time.Minute),
			LateDuration: thai.FormatLateDuration(late),
		})
		res.TotalLateCars++
	}
}

// plannedEntry resolves the planned yard-entry instant: load_date (falling
// back to po_date for same-day trips) plus the round time, Bangkok clock.
func plannedEntry(j *model.JobRecord) (time.Time, error) {
	return time.ParseInLocation(
		thai.DateFormat+" "+thai.ClockFormat,
		loadDateOf(j)+" "+strings.TrimSpace(j.Round),
		thai.Bangkok,
	)
}

func loadDateOf(j *model.JobRecord) string {
	if strings.TrimSpace(j.LoadDate) != "" {
		return strings.TrimSpace(j.LoadDate)
	}
	return strings.TrimSpace(j.PODate)
}

// collectTripTotals counts distinct trips by (po_date, car_no, round),
// ignoring the driver, and records the last completion time of every
// finished trip.
func collectTripTotals(res *AggregateResult, filtered []model.JobRecord) {
	byKey := make(map[model.TripKey][]model.JobRecord)
	var order []model.TripKey
	for _, j := range filtered {
		k := model.TripKey{PODate: j.PODate, CarNo: j.CarNo, Round: j.Round}
		if _, ok := byKey[k]; !ok {
			order = append(order, k)
		}
		byKey[k] = append(byKey[k], j)
	}

	res.TotalTrips = len(byKey)
	for _, k := range order {
		rows := byKey[k]
		if model.TripDone(rows) {
			res.CompletedTrips++
			res.TripLastEnd[k] = model.LastEndJob(rows)
		} else {
			res.TripLastEnd[k] = ""
		}
	}
}

// collectShiftStats builds the day/night completion snapshots. Cancelled rows
// are excluded entirely; the milestone checks must not wait for a truck that
// will never come.
func collectShiftStats(res *AggregateResult, filtered []model.JobRecord) {
	byKey := make(map[model.TripKey][]model.JobRecord)
	var order []model.TripKey
	for _, j := range filtered {
		if j.IsCancelled() {
			continue
		}
		k := model.TripKey{PODate: j.PODate, CarNo: j.CarNo, Round: j.Round}
		if _, ok := byKey[k]; !ok {
			order = append(order, k)
		}
		byKey[k] = append(byKey[k], j)
	}

	for _, k := range order {
		rows := byKey[k]
		first := &rows[0]

		stats := &res.Day
		if model.ShiftOf(first.Round) == model.ShiftNight {
			stats = &res.Night
		}
		stats.Total++
		if strings.TrimSpace(first.T1Enter) != "" {
			stats.Entered++
		}
		if strings.TrimSpace(first.T6Exit) != "" {
			stats.Exited++
		}
		if model.TripDone(rows) {
			stats.Finished++
		}
	}

	res.Day.IsComplete = res.Day.Total > 0 && res.Day.Entered == res.Day.Total
	res.Night.IsComplete = res.Night.Total > 0 && res.Night.Entered == res.Night.Total
}

// collectStatusRows renders the live board rows, split and sorted per shift.
// Night rounds before 06:00 sort after the late-evening ones: the night shift
// runs 19:00 through 05:59 and the board reads in operational order.
func collectStatusRows(res *AggregateResult) {
	for i := range res.Trips {
		t := &res.Trips[i]
		row := TripStatusRow{
			Round:        t.Key.Round,
			CarNo:        t.Key.CarNo,
			Plate:        t.Plate,
			Driver:       t.Driver,
			LoadDate:     t.Branches[0].LoadDate,
			Branches:     t.BranchNames(),
			LatestStatus: t.Stage.Label(),
		}
		if t.Shift == model.ShiftDay {
			res.RowsDay = append(res.RowsDay, row)
		} else {
			res.RowsNight = append(res.RowsNight, row)
		}
	}

	sort.SliceStable(res.RowsDay, func(a, b int) bool {
		return res.RowsDay[a].Round < res.RowsDay[b].Round
	})
	sort.SliceStable(res.RowsNight, func(a, b int) bool {
		return nightRoundOrder(res.RowsNight[a].Round) < nightRoundOrder(res.RowsNight[b].Round)
	})
}

// nightRoundOrder maps a night round onto a single continuous axis: hours
// before 06:00 belong to the tail of the previous evening's shift.
func nightRoundOrder(round string) int {
	m, err := clockMinutes(round)
	if err != nil {
		return carNoSentinel
	}
	if m < 6*60 {
		m += 24 * 60
	}
	return m
}

// collectDriverStats folds trips into per-driver daily stats, rounds sorted
// by numeric car slot.
func collectDriverStats(res *AggregateResult) {
	for i := range res.Trips {
		t := &res.Trips[i]
		if t.Driver == "" {
			continue
		}
		stat, ok := res.DriverStats[t.Driver]
		if !ok {
			stat = &DriverStat{}
			res.DriverStats[t.Driver] = stat
		}
		stat.TotalTrips++

		status := "Pending"
		if t.Done {
			status = "Done"
		}
		stat.Rounds = append(stat.Rounds, DriverRound{
			Round:    t.Key.Round,
			CarNo:    t.Key.CarNo,
			Plate:    t.Plate,
			Branches: t.BranchNames(),
			Status:   status,
		})
	}

	for _, stat := range res.DriverStats {
		rounds := stat.Rounds
		sort.SliceStable(rounds, func(a, b int) bool {
			return carNoSort(rounds[a].CarNo) < carNoSort(rounds[b].CarNo)
		})
	}
}
