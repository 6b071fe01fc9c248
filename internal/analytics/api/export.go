package analytics_api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/xuri/excelize/v2"

	"snow-tracker/internal/analytics"
	"snow-tracker/internal/utils"
)

// BuildWorkbook writes the metrics into Bookings, Users and Revenue sheets.
func BuildWorkbook(m *analytics.Metrics) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", "Bookings"); err != nil {
		return nil, err
	}
	if err := setRow(f, "Bookings", 1, "Date", "Bookings"); err != nil {
		return nil, err
	}
	for i, p := range m.BookingSeries {
		if err := setRow(f, "Bookings", i+2, p.Date, p.Bookings); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet("Users"); err != nil {
		return nil, err
	}
	if err := setRow(f, "Users", 1, "Date", "New Users", "Returning Users"); err != nil {
		return nil, err
	}
	for i, p := range m.UserSeries {
		if err := setRow(f, "Users", i+2, p.Date, p.NewUsers, p.ReturningUsers); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet("Revenue"); err != nil {
		return nil, err
	}
	if err := setRow(f, "Revenue", 1, "Resort", "Start Date", "End Date", "Revenue"); err != nil {
		return nil, err
	}
	if err := setRow(f, "Revenue", 2, m.Resort, m.StartDate, m.EndDate, m.RevenueTotal.InexactFloat64()); err != nil {
		return nil, err
	}

	return f, nil
}

func setRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// ExportMetrics downloads the filtered metrics as an xlsx workbook
func (h *Handler) ExportMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, ok := h.computeFromRequest(w, r)
	if !ok {
		return
	}

	f, err := BuildWorkbook(metrics)
	if err != nil {
		h.Logger.Error("EXPORT", "Failed to build workbook: "+err.Error())
		utils.SendJSONResponse(h.Logger, w, http.StatusInternalServerError, utils.ErrorResponse("Failed to export metrics"))
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("metrics-%s-%s-%s.xlsx", slug(metrics.Resort), metrics.StartDate, metrics.EndDate)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := f.Write(w); err != nil {
		h.Logger.Error("EXPORT", "Failed to write workbook: "+err.Error())
	}
}

func slug(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "-"))
}
