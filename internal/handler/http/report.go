package http

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/corvitlabs/attendance-tracker/internal/domain/report"
	"github.com/corvitlabs/attendance-tracker/internal/handler/http/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler interface {
	DailySummary(w http.ResponseWriter, r *http.Request)
	EmployeeReport(w http.ResponseWriter, r *http.Request)
	ExportEmployeeReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// DailySummary handles GET /reports/daily?date=YYYY-MM-DD
func (h *reportHandlerImpl) DailySummary(w http.ResponseWriter, r *http.Request) {
	req := report.DailySummaryRequest{Date: r.URL.Query().Get("date")}

	result, err := h.reportService.DailySummary(r.Context(), req)
	if err != nil {
		slog.Error("Daily summary service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// EmployeeReport handles GET /reports/employees/{id}?start_date=&end_date=
func (h *reportHandlerImpl) EmployeeReport(w http.ResponseWriter, r *http.Request) {
	req, err := employeeReportRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.EmployeeReport(r.Context(), req)
	if err != nil {
		slog.Error("Employee report service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportEmployeeReport handles GET /reports/employees/{id}/export
func (h *reportHandlerImpl) ExportEmployeeReport(w http.ResponseWriter, r *http.Request) {
	req, err := employeeReportRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	buf, filename, err := h.reportService.ExportEmployeeReport(r.Context(), req)
	if err != nil {
		slog.Error("Export employee report service error", "error", err)
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Description", "File Transfer")
	w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	w.Header().Set("Content-Type", xlsxContentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("Failed to write report export", "error", err)
	}
}

func employeeReportRequest(r *http.Request) (report.EmployeeReportRequest, error) {
	id, err := pathID(r, "id")
	if err != nil {
		return report.EmployeeReportRequest{}, err
	}
	req := report.EmployeeReportRequest{
		UserID:    id,
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}
	if err := req.Validate(); err != nil {
		return report.EmployeeReportRequest{}, err
	}
	return req, nil
}
