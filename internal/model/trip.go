package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Shift classifies a trip by the hour of its planned load time.
type Shift string

const (
	ShiftDay   Shift = "day"
	ShiftNight Shift = "night"
)

// ShiftOf derives the shift from a round time (15:04). Hours 6..18 are day,
// everything else night. An unparsable round defaults to day, the same
// fallback the dashboard has always applied to hand-edited cells.
func ShiftOf(round string) Shift {
	h, err := roundHour(round)
	if err != nil {
		return ShiftDay
	}
	if h < 6 || h >= 19 {
		return ShiftNight
	}
	return ShiftDay
}

// roundHour extracts the hour component from a 15:04 string.
func roundHour(round string) (int, error) {
	hh, _, ok := strings.Cut(strings.TrimSpace(round), ":")
	if !ok {
		return 0, fmt.Errorf("round %q: missing colon", round)
	}
	return strconv.Atoi(hh)
}

// TripKey identifies one scheduled truck movement. Car numbers are unique
// only within a date, which is why the date participates in the key.
type TripKey struct {
	PODate string `json:"po_date"`
	CarNo  string `json:"car_no"`
	Round  string `json:"round"`
}

// Trip is the derived two-level view over the flat branch rows: the shared
// per-trip fields are lifted from the first row, and every member row rides
// along as a branch leg. Trips are never persisted in this shape.
type Trip struct {
	Key    TripKey `json:"key"`
	Driver string  `json:"driver"`
	Plate  string  `json:"plate"`
	Shift  Shift   `json:"shift"`

	Branches []JobRecord `json:"branches"`

	Done       bool      `json:"done"`
	LastEndJob string    `json:"last_end_job"`
	Stage      TripStage `json:"stage"`

	// Loading lateness: actual T2 behind the planned round, in minutes,
	// after same-day alignment of the two clock times.
	LateLoading  bool `json:"late_loading,omitempty"`
	LoadDelayMin int  `json:"load_delay_min,omitempty"`
}

// BranchNames lists the branch legs in sheet order.
func (t *Trip) BranchNames() []string {
	names := make([]string, len(t.Branches))
	for i, b := range t.Branches {
		names[i] = b.BranchName
	}
	return names
}

// TripDone reports whether every branch leg has been marked Done.
func TripDone(branches []JobRecord) bool {
	for _, b := range branches {
		if b.Status != StatusDone {
			return false
		}
	}
	return len(branches) > 0
}

// LastEndJob returns the latest non-empty T8 across the legs. Times are
// compared lexicographically, which is exact for HH:MM within a single day;
// a trip whose legs straddle midnight keeps the sheet's own ordering.
func LastEndJob(branches []JobRecord) string {
	last := ""
	for _, b := range branches {
		if b.T8EndJob != "" && b.T8EndJob > last {
			last = b.T8EndJob
		}
	}
	return last
}

// StageCode is the trip progress state machine. The numeric order of the
// factory-side codes matters: DeriveStage checks the exit-side milestones
// first so the most advanced recorded timestamp wins, not the most recent.
type StageCode int

const (
	StageWaiting StageCode = iota
	StageEntered
	StageStartLoad
	StageEndLoad
	StageDocSubmitted
	StageDocReceived
	StageExited
	StageArrivedBranch
	StageFinishedBranch
	StageAllFinished
)

// TripStage is a derived progress snapshot: the code, the branch ordinal for
// branch-side stages (1-based), and the timestamp that produced it.
type TripStage struct {
	Code   StageCode `json:"code"`
	Branch int       `json:"branch,omitempty"`
	At     string    `json:"at,omitempty"`
}

var stageLabels = map[StageCode]string{
	StageWaiting:      "รอเข้า",
	StageEntered:      "เข้าโรงงาน",
	StageStartLoad:    "เริ่มขึ้นสินค้า",
	StageEndLoad:      "ขึ้นสินค้าเสร็จ",
	StageDocSubmitted: "ยื่นเอกสาร",
	StageDocReceived:  "รับเอกสาร",
	StageExited:       "ออกโรงงาน",
	StageAllFinished:  "จบงานทุกสาขา",
}

// Label renders the stage in dashboard form, e.g. "ถึงสาขา 2 (14:30)".
func (s TripStage) Label() string {
	var text string
	switch s.Code {
	case StageArrivedBranch:
		text = fmt.Sprintf("ถึงสาขา %d", s.Branch)
	case StageFinishedBranch:
		text = fmt.Sprintf("จบงานสาขา %d", s.Branch)
	default:
		text = stageLabels[s.Code]
	}
	if s.At == "" {
		return text
	}
	return fmt.Sprintf("%s (%s)", text, s.At)
}

// factoryMilestone pairs a trip-shared timestamp accessor with the stage it
// implies. Evaluated in fixed precedence, exit side first.
type factoryMilestone struct {
	code StageCode
	at   func(*JobRecord) string
}

var factoryMilestones = []factoryMilestone{
	{StageExited, func(j *JobRecord) string { return j.T6Exit }},
	{StageDocReceived, func(j *JobRecord) string { return j.T5RecvDoc }},
	{StageDocSubmitted, func(j *JobRecord) string { return j.T4SubmitDoc }},
	{StageEndLoad, func(j *JobRecord) string { return j.T3EndLoad }},
	{StageStartLoad, func(j *JobRecord) string { return j.T2StartLoad }},
	{StageEntered, func(j *JobRecord) string { return j.T1Enter }},
}

// DeriveStage computes the progress label for a group of branch rows.
//
// Precedence: every leg Done beats everything; otherwise the legs are walked
// in sheet order and the furthest T8/T7 activity wins; with no branch-side
// activity at all, the factory milestones are consulted T6 down to T1.
func DeriveStage(branches []JobRecord) TripStage {
	if len(branches) == 0 {
		return TripStage{Code: StageWaiting}
	}

	if TripDone(branches) {
		return TripStage{Code: StageAllFinished, At: LastEndJob(branches)}
	}

	stage := TripStage{Code: StageWaiting}
	for i := range branches {
		b := &branches[i]
		if b.T8EndJob != "" {
			stage = TripStage{Code: StageFinishedBranch, Branch: i + 1, At: b.T8EndJob}
		} else if b.T7ArriveBranch != "" {
			stage = TripStage{Code: StageArrivedBranch, Branch: i + 1, At: b.T7ArriveBranch}
		}
	}
	if stage.Code != StageWaiting {
		return stage
	}

	// Factory-side fallback reads the trip-shared fields off the first leg.
	first := &branches[0]
	for _, m := range factoryMilestones {
		if at := m.at(first); at != "" {
			return TripStage{Code: m.code, At: at}
		}
	}
	return TripStage{Code: StageWaiting}
}
