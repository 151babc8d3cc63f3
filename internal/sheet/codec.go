// Package sheet fixes the Jobs worksheet column contract. Several consumers
// (the Excel export, the bulk sheet import) address fields by position, not by
// header lookup, so the offsets here are load-bearing: reordering them breaks
// every sheet produced or consumed so far.
package sheet

import (
	"fmt"

	"github.com/lmt-transport/LMT-Driver-App/internal/model"
)

// Zero-indexed column offsets of the Jobs worksheet, in persisted order.
const (
	ColPODate = iota
	ColLoadDate
	ColRound
	ColCarNo
	ColDriver
	ColPlate
	ColBranchName
	ColWeight
	ColT1Enter
	ColT2StartLoad
	ColT3EndLoad
	ColT4SubmitDoc
	ColT5RecvDoc
	ColT6Exit
	ColT7ArriveBranch
	ColT8EndJob
	ColStatus
	ColLoc1
	ColLoc2
	ColLoc3
	ColLoc4
	ColLoc5
	ColLoc6
	ColLoc7
	ColLoc8
	ColPONos
	ColDocResult
	ColWeightResult

	// NumCols is the row width of the Jobs worksheet.
	NumCols
)

// Headers are the worksheet header captions, index-aligned with the Col
// constants above.
var Headers = [NumCols]string{
	"PO_Date", "Load_Date", "Round", "Car_No", "Driver", "Plate",
	"Branch_Name", "Weight",
	"T1_Enter", "T2_StartLoad", "T3_EndLoad", "T4_SubmitDoc", "T5_RecvDoc",
	"T6_Exit", "T7_ArriveBranch", "T8_EndJob",
	"Status",
	"Loc1", "Loc2", "Loc3", "Loc4", "Loc5", "Loc6", "Loc7", "Loc8",
	"PO_Nos", "Doc_Result", "Weight_Result",
}

// EncodeRow flattens a JobRecord into a worksheet row in contract order.
func EncodeRow(j *model.JobRecord) []string {
	row := make([]string, NumCols)
	row[ColPODate] = j.PODate
	row[ColLoadDate] = j.LoadDate
	row[ColRound] = j.Round
	row[ColCarNo] = j.CarNo
	row[ColDriver] = j.Driver
	row[ColPlate] = j.Plate
	row[ColBranchName] = j.BranchName
	row[ColWeight] = j.Weight
	row[ColT1Enter] = j.T1Enter
	row[ColT2StartLoad] = j.T2StartLoad
	row[ColT3EndLoad] = j.T3EndLoad
	row[ColT4SubmitDoc] = j.T4SubmitDoc
	row[ColT5RecvDoc] = j.T5RecvDoc
	row[ColT6Exit] = j.T6Exit
	row[ColT7ArriveBranch] = j.T7ArriveBranch
	row[ColT8EndJob] = j.T8EndJob
	row[ColStatus] = j.Status
	row[ColLoc1] = j.Loc1
	row[ColLoc2] = j.Loc2
	row[ColLoc3] = j.Loc3
	row[ColLoc4] = j.Loc4
	row[ColLoc5] = j.Loc5
	row[ColLoc6] = j.Loc6
	row[ColLoc7] = j.Loc7
	row[ColLoc8] = j.Loc8
	row[ColPONos] = j.PONos
	row[ColDocResult] = j.DocResult
	row[ColWeightResult] = j.WeightResult
	return row
}

// DecodeRow rebuilds a JobRecord from a worksheet row. Short rows are an
// error: the sheet writes the full width even for blank trailing cells, so a
// truncated row means a corrupt export.
func DecodeRow(row []string) (*model.JobRecord, error) {
	if len(row) < NumCols {
		return nil, fmt.Errorf("sheet row has %d columns, want %d", len(row), NumCols)
	}
	return &model.JobRecord{
		PODate:         row[ColPODate],
		LoadDate:       row[ColLoadDate],
		Round:          row[ColRound],
		CarNo:          row[ColCarNo],
		Driver:         row[ColDriver],
		Plate:          row[ColPlate],
		BranchName:     row[ColBranchName],
		Weight:         row[ColWeight],
		T1Enter:        row[ColT1Enter],
		T2StartLoad:    row[ColT2StartLoad],
		T3EndLoad:      row[ColT3EndLoad],
		T4SubmitDoc:    row[ColT4SubmitDoc],
		T5RecvDoc:      row[ColT5RecvDoc],
		T6Exit:         row[ColT6Exit],
		T7ArriveBranch: row[ColT7ArriveBranch],
		T8EndJob:       row[ColT8EndJob],
		Status:         row[ColStatus],
		Loc1:           row[ColLoc1],
		Loc2:           row[ColLoc2],
		Loc3:           row[ColLoc3],
		Loc4:           row[ColLoc4],
		Loc5:           row[ColLoc5],
		Loc6:           row[ColLoc6],
		Loc7:           row[ColLoc7],
		Loc8:           row[ColLoc8],
		PONos:          row[ColPONos],
		DocResult:      row[ColDocResult],
		WeightResult:   row[ColWeightResult],
	}, nil
}
