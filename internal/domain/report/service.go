package report

import (
	"bytes"
	"context"
)

// ReportService defines the interface for report generation
type ReportService interface {
	DailySummary(ctx context.Context, req DailySummaryRequest) (DailySummaryResponse, error)

	EmployeeReport(ctx context.Context, req EmployeeReportRequest) (EmployeeReportResponse, error)

	// ExportEmployeeReport renders EmployeeReport as an .xlsx workbook and
	// returns it with a suggested file name.
	ExportEmployeeReport(ctx context.Context, req EmployeeReportRequest) (*bytes.Buffer, string, error)
}
