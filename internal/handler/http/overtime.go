package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/overtime"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/handler/http/response"
)

type OvertimeHandler interface {
	GetStats(w http.ResponseWriter, r *http.Request)
	GetCurrent(w http.ResponseWriter, r *http.Request)
	RunSweep(w http.ResponseWriter, r *http.Request)
}

type overtimeHandlerImpl struct {
	overtimeService overtime.OvertimeService
}

func NewOvertimeHandler(overtimeService overtime.OvertimeService) OvertimeHandler {
	return &overtimeHandlerImpl{
		overtimeService: overtimeService,
	}
}

// GetStats implements OvertimeHandler.
func (h *overtimeHandlerImpl) GetStats(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")

	from, to, err := parseDateRange(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result, err := h.overtimeService.GetOvertimeStats(r.Context(), companyID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetCurrent implements OvertimeHandler.
func (h *overtimeHandlerImpl) GetCurrent(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")

	result, err := h.overtimeService.GetCurrentOvertimeStatus(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// RunSweep implements OvertimeHandler. Triggers the sweep for one company
// on demand, outside the scheduled interval.
func (h *overtimeHandlerImpl) RunSweep(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")

	result, err := h.overtimeService.RunSweep(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime sweep finished", result)
}
