package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/report"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/handler/http/response"
)

type ReportHandler interface {
	Punctuality(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// Punctuality implements ReportHandler.
func (h *reportHandlerImpl) Punctuality(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")

	result, err := h.reportService.GeneratePunctualityReport(r.Context(), companyID, report.PunctualityReportRequest{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
