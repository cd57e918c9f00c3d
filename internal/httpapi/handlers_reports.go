package httpapi

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"

	"salestrack/backend/internal/domain"
)

func (a *API) handleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := a.service.Dashboard(r.Context())
	if err != nil {
		a.writeServiceError(w, r, err, errRouteNotFound)
		return
	}

	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format"))) {
	case "csv":
		body, err := dailySalesToCSV(stats.DailySales)
		if err != nil {
			a.writeServiceError(w, r, err, errRouteNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="daily-sales.csv"`)
		_, _ = w.Write(body)
	default:
		writeJSON(w, http.StatusOK, stats)
	}
}

func (a *API) handleInventoryStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.service.InventoryStats(r.Context())
	if err != nil {
		a.writeServiceError(w, r, err, errRouteNotFound)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (a *API) handleSalesChart(w http.ResponseWriter, r *http.Request) {
	chart, err := a.service.SalesChart(r.Context())
	if err != nil {
		a.writeServiceError(w, r, err, errRouteNotFound)
		return
	}
	writeJSON(w, http.StatusOK, chart)
}

func dailySalesToCSV(days []domain.DailySales) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	rows := make([][]string, 0, len(days)+1)
	rows = append(rows, []string{"date", "revenue", "profit", "transactions"})
	for _, day := range days {
		rows = append(rows, []string{
			day.Date,
			strconv.FormatFloat(day.Revenue, 'f', -1, 64),
			strconv.FormatFloat(day.Profit, 'f', -1, 64),
			strconv.Itoa(day.Transactions),
		})
	}
	if err := writer.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
