package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"emptrack_backend/internals/features/attendance/attendance_records/model"
)

const (
	exportSheet  = "Attendance"
	summarySheet = "Summary"
)

var exportHeader = []any{"Date", "Check In", "Check Out", "Hours", "Status", "Notes"}

// BuildWorkbook renders records (newest first) plus their summary as an XLSX file.
func BuildWorkbook(records []model.AttendanceRecordModel, sum Summary, loc *time.Location) (*bytes.Buffer, error) {
	if loc == nil {
		loc = time.UTC
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	_ = f.SetRowStyle(exportSheet, 1, 1, bold)
	_ = f.SetColWidth(exportSheet, "A", "E", 14)
	_ = f.SetColWidth(exportSheet, "F", "F", 48)

	for i, r := range records {
		notes := ""
		if r.Notes != nil {
			notes = *r.Notes
		}
		row := []any{
			r.Day().Format("2006-01-02"),
			clock(r.CheckIn, loc),
			clock(r.CheckOut, loc),
			hoursWorked(r),
			r.Status,
			notes,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, err
	}
	lines := [][]any{
		{"Total records", sum.Total},
		{"Working days", sum.WorkingDays},
		{"Attendance rate (%)", sum.AttendanceRate},
		{"Average check-in", sum.AverageCheckIn},
	}
	for _, st := range model.Statuses {
		lines = append(lines, []any{"Status " + st, sum.ByStatus[st]})
	}
	for i, line := range lines {
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", i+1), &line); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(summarySheet, "A", "A", 24)

	return f.WriteToBuffer()
}

func clock(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	return t.In(loc).Format("15:04")
}

func hoursWorked(r model.AttendanceRecordModel) any {
	if r.CheckIn == nil || r.CheckOut == nil {
		return ""
	}
	h := r.CheckOut.Sub(*r.CheckIn).Hours()
	return float64(int(h*100+0.5)) / 100
}
