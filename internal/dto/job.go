package dto

// CreateTripRequest is the body of POST /api/v1/jobs. One trip, one row per branch; the
// shared fields are written redundantly onto every branch row.
type CreateTripRequest struct {
	PODate   string   `json:"po_date" binding:"required"`
	LoadDate string   `json:"load_date"`
	Round    string   `json:"round" binding:"required"`
	CarNo    string   `json:"car_no" binding:"required"`
	Driver   string   `json:"driver"`
	Plate    string   `json:"plate"`
	Branches []string `json:"branches" binding:"required,min=1"`
	Weight   string   `json:"weight"`
	PONos    string   `json:"po_nos"`
}

// TripKeyRequest addresses one trip, e.g. for cancellation.
type TripKeyRequest struct {
	PODate string `json:"po_date" binding:"required"`
	Round  string `json:"round" binding:"required"`
	CarNo  string `json:"car_no" binding:"required"`
}

// ReassignDriverRequest is the body of PUT /api/v1/jobs/driver. Swaps driver and plate on
// every row of the trip.
type ReassignDriverRequest struct {
	PODate    string `json:"po_date" binding:"required"`
	Round     string `json:"round" binding:"required"`
	CarNo     string `json:"car_no" binding:"required"`
	NewDriver string `json:"new_driver" binding:"required"`
	NewPlate  string `json:"new_plate"`
}

// AdvanceStatusRequest is the body of POST /api/v1/jobs/status. Advances one timestamp
// or the trip status. t1..t6 and status fan out to every row of the trip;
// t7/t8 need a branch_name and touch that single row.
type AdvanceStatusRequest struct {
	PODate string `json:"po_date" binding:"required"`
	Round  string `json:"round" binding:"required"`
	CarNo  string `json:"car_no" binding:"required"`
	// Field is one of: t1_enter, t2_start_load, t3_end_load, t4_submit_doc,
	// t5_recv_doc, t6_exit, t7_arrive_branch, t8_end_job, status.
	Field string `json:"field" binding:"required"`
	// Value is the HH:MM timestamp (defaults to the current Bangkok clock
	// for time fields) or the new status.
	Value      string `json:"value"`
	BranchName string `json:"branch_name"`
}
