package model

import "strings"

// Job statuses as persisted in the Jobs sheet. Status is shared by every row
// of a trip.
const (
	StatusNew    = "New"
	StatusDone   = "Done"
	StatusCancel = "Cancel"
)

// JobRecord is one branch leg of a trip, table jobs.
//
// All date and time fields are kept as sheet-form strings (2006-01-02 /
// 15:04): the spreadsheet import is the system of record and malformed cells
// must survive grouping untouched. Parsing happens at the point of use and is
// best-effort there.
//
// T1..T6 and Driver/Plate/Status are trip-shared and written redundantly onto
// every row of the trip; T7/T8 belong to the individual branch leg.
type JobRecord struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"-"`

	PODate   string `gorm:"column:po_date;type:varchar(10);not null;index"  json:"po_date"`
	LoadDate string `gorm:"column:load_date;type:varchar(10)"               json:"load_date"`
	Round    string `gorm:"column:round;type:varchar(5);not null"           json:"round"`
	CarNo    string `gorm:"column:car_no;type:varchar(10);not null"         json:"car_no"`
	Driver   string `gorm:"column:driver;type:varchar(100)"                 json:"driver"`
	Plate    string `gorm:"column:plate;type:varchar(20)"                   json:"plate"`

	BranchName string `gorm:"column:branch_name;type:varchar(100)" json:"branch_name"`
	Weight     string `gorm:"column:weight;type:varchar(20)"       json:"weight"`

	T1Enter        string `gorm:"column:t1_enter;type:varchar(5)"         json:"t1_enter"`
	T2StartLoad    string `gorm:"column:t2_start_load;type:varchar(5)"    json:"t2_start_load"`
	T3EndLoad      string `gorm:"column:t3_end_load;type:varchar(5)"      json:"t3_end_load"`
	T4SubmitDoc    string `gorm:"column:t4_submit_doc;type:varchar(5)"    json:"t4_submit_doc"`
	T5RecvDoc      string `gorm:"column:t5_recv_doc;type:varchar(5)"      json:"t5_recv_doc"`
	T6Exit         string `gorm:"column:t6_exit;type:varchar(5)"          json:"t6_exit"`
	T7ArriveBranch string `gorm:"column:t7_arrive_branch;type:varchar(5)" json:"t7_arrive_branch"`
	T8EndJob       string `gorm:"column:t8_end_job;type:varchar(5)"       json:"t8_end_job"`

	Status string `gorm:"column:status;type:varchar(10);not null;default:'New'" json:"status"`

	Loc1 string `gorm:"column:loc1;type:varchar(100)" json:"loc1"`
	Loc2 string `gorm:"column:loc2;type:varchar(100)" json:"loc2"`
	Loc3 string `gorm:"column:loc3;type:varchar(100)" json:"loc3"`
	Loc4 string `gorm:"column:loc4;type:varchar(100)" json:"loc4"`
	Loc5 string `gorm:"column:loc5;type:varchar(100)" json:"loc5"`
	Loc6 string `gorm:"column:loc6;type:varchar(100)" json:"loc6"`
	Loc7 string `gorm:"column:loc7;type:varchar(100)" json:"loc7"`
	Loc8 string `gorm:"column:loc8;type:varchar(100)" json:"loc8"`

	PONos        string `gorm:"column:po_nos;type:text"           json:"po_nos"`
	DocResult    string `gorm:"column:doc_result;type:varchar(50)"    json:"doc_result"`
	WeightResult string `gorm:"column:weight_result;type:varchar(50)" json:"weight_result"`
}

// TableName maps the model to the jobs table.
func (JobRecord) TableName() string { return "jobs" }

// IsCancelled reports whether the row belongs to a cancelled trip.
// Imported sheets carry mixed-case values, so the check is case-insensitive.
func (j *JobRecord) IsCancelled() bool {
	return strings.EqualFold(strings.TrimSpace(j.Status), StatusCancel)
}
