package export

import (
	"bytes"
	"fmt"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet = "Summary"
	DailySheet   = "Daily"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	summaryHeader = []string{"Employee ID", "Employee", "Present", "Late", "Absent", "Leave", "Week Off", "Config Incomplete"}
	dailyHeader   = []string{"Employee ID", "Employee", "Date", "Status", "Clock In", "Clock Out", "Total Hours", "Notes"}
)

// MonthlyWorkbook renders monthly attendance views as an xlsx workbook with a
// per-employee summary sheet and one row per classified day.
func MonthlyWorkbook(month string, views []attendance.MonthlyAttendanceResponse) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(DailySheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	f.SetCellValue(SummarySheet, "A1", "Month:")
	f.SetCellValue(SummarySheet, "B1", month)
	if err := writeRow(f, SummarySheet, 3, toAny(summaryHeader)); err != nil {
		return nil, err
	}
	f.SetCellStyle(SummarySheet, "A3", "H3", headerStyle)

	if err := writeRow(f, DailySheet, 1, toAny(dailyHeader)); err != nil {
		return nil, err
	}
	f.SetCellStyle(DailySheet, "A1", "H1", headerStyle)

	summaryRow, dailyRow := 4, 2
	for _, view := range views {
		if err := writeRow(f, SummarySheet, summaryRow, []any{
			view.EmployeeID,
			view.EmployeeName,
			view.Stats.Present,
			view.Stats.Late,
			view.Stats.Absent,
			view.Stats.Leave,
			view.Stats.WeekOff,
			yesNo(view.ConfigIncomplete),
		}); err != nil {
			return nil, err
		}
		summaryRow++

		// days are most recent first in the view; the sheet reads top down
		for i := len(view.Days) - 1; i >= 0; i-- {
			day := view.Days[i]
			var hours any = ""
			if day.TotalHours != nil {
				hours = day.TotalHours.InexactFloat64()
			}
			if err := writeRow(f, DailySheet, dailyRow, []any{
				view.EmployeeID,
				view.EmployeeName,
				day.Date,
				day.Status,
				deref(day.ClockIn),
				deref(day.ClockOut),
				hours,
				deref(day.Notes),
			}); err != nil {
				return nil, err
			}
			dailyRow++
		}
	}

	f.SetColWidth(SummarySheet, "A", "B", 38)
	f.SetColWidth(DailySheet, "A", "B", 38)
	f.SetColWidth(DailySheet, "E", "F", 27)
	f.SetActiveSheet(0)

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buffer, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
