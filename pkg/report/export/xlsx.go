// Package export renders a generated report as a spreadsheet download.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"genreport/pkg/report"
)

const sheet = "Report"

// Column headings as printed on the daily oil report.
var oilHeaders = []string{
	"Mỏ",
	"KHCP  (tr.tấn)",
	"KHQT  (tr.tấn)",
	"Tháng trước - Cộng dồn (ng.tấn)",
	"Tháng trước - %KHCP",
	"Tháng trước - %KHQT",
	"Tháng này - KHCP (ng.tấn)",
	"Tháng này - KHQT (ng.tấn)",
	"Tháng này - Thực hiện (ng.tấn)",
	"Tháng này - %KHCP",
	"Tháng này - %KHQT",
	"SL hiện tại - Cộng dồn (ng.tấn)",
	"SL hiện tại - Cộng dồn (thùng)",
	"SL hiện tại - %KHCP",
	"SL hiện tại - %KHQT",
	"SL ngày (tấn)",
	"SL ngày (thùng)",
	"Số liệu ngày",
}

var gasHeaders = []string{
	"Field",
	"Commitment plan (m3)",
	"Operational plan (m3)",
	"Prior months accum (m3)",
	"Prior months %commitment",
	"Prior months %operational",
	"Month commitment plan (m3)",
	"Month operational plan (m3)",
	"Month actual (m3)",
	"Month %commitment",
	"Month %operational",
	"Year to date (m3)",
	"Year to date (ft3)",
	"Year to date / commitment",
	"Year to date / operational",
	"Daily (m3)",
	"Daily (ft3)",
	"Data as of",
}

func Headers(flavor string) []string {
	if flavor == report.Oil.Name {
		return oilHeaders
	}
	return gasHeaders
}

// Values flattens a row in header order, numbers as float64.
func Values(r report.Row) []any {
	return []any{
		r.Name,
		r.PlanCommit,
		r.PlanOperational,
		r.PriorMonthsAccum,
		r.PctOfPlanCommitPrior,
		r.PctOfPlanOperationalPrior,
		r.CurrentMonthPlanCommit,
		r.CurrentMonthPlanOperational,
		r.CurrentMonthActual,
		r.PctCurrentMonthCommit,
		r.PctCurrentMonthOperational,
		r.YearToDateAccum,
		r.YearToDateAccumSecondaryUnit,
		r.PctYTDCommit,
		r.PctYTDOperational,
		r.DailyPrimaryUnit,
		r.DailySecondaryUnit,
		report.AsOfLabel(r.AsOf),
	}
}

// WriteXLSX writes rep as a single-sheet workbook. Oil numbers get a 0.00
// display format; gas numbers are left as stored.
func WriteXLSX(w io.Writer, rep *report.Report) error {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", sheet)

	headers := Headers(rep.Flavor)
	head := make([]any, len(headers))
	for i, h := range headers {
		head[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		return fmt.Errorf("xlsx header: %w", err)
	}
	for i, r := range rep.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		vals := Values(r)
		if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
			return fmt.Errorf("xlsx row %s: %w", r.GroupID, err)
		}
	}

	if rep.Flavor == report.Oil.Name && len(rep.Rows) > 0 {
		style, err := f.NewStyle(&excelize.Style{NumFmt: 2})
		if err != nil {
			return err
		}
		last, err := excelize.CoordinatesToCellName(len(headers)-1, len(rep.Rows)+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "B2", last, style); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

// Filename is the download name for rep.
func Filename(rep *report.Report) string {
	return fmt.Sprintf("daily_%s_report_%s.xlsx", rep.Flavor, rep.Requested.Format("20060102"))
}
