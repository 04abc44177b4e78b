package handlers

import (
	"net/http"

	"langlab/internal/export"
	"langlab/internal/service"
)

// ExportHandler serves the attempt-history downloads
type ExportHandler struct {
	practiceService *service.PracticeService
}

// NewExportHandler creates a new export handler
func NewExportHandler(practiceService *service.PracticeService) *ExportHandler {
	return &ExportHandler{practiceService: practiceService}
}

// HistoryCSV streams the session's history as a CSV download
func (h *ExportHandler) HistoryCSV(w http.ResponseWriter, r *http.Request) {
	history := h.practiceService.HistorySnapshot(SessionID(r.Context()))

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="practice_history.csv"`)
	if err := export.WriteCSV(w, history); err != nil {
		respondError(w, http.StatusInternalServerError, "Export failed", "Write CSV export", err)
	}
}

// HistoryXLSX streams the session's history as a spreadsheet download
func (h *ExportHandler) HistoryXLSX(w http.ResponseWriter, r *http.Request) {
	history := h.practiceService.HistorySnapshot(SessionID(r.Context()))

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="practice_history.xlsx"`)
	if err := export.WriteXLSX(w, history); err != nil {
		respondError(w, http.StatusInternalServerError, "Export failed", "Write XLSX export", err)
	}
}
