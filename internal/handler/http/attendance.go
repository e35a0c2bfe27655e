package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/event"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/timesheet"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/handler/http/response"
)

type AttendanceHandler interface {
	RecordEvent(w http.ResponseWriter, r *http.Request)
	ListEvents(w http.ResponseWriter, r *http.Request)
	GetLiveStatus(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	timesheetService timesheet.TimesheetService
}

func NewAttendanceHandler(timesheetService timesheet.TimesheetService) AttendanceHandler {
	return &attendanceHandlerImpl{
		timesheetService: timesheetService,
	}
}

// RecordEvent implements AttendanceHandler.
func (h *attendanceHandlerImpl) RecordEvent(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")

	var req event.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.timesheetService.RecordEvent(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance event recorded", result)
}

// ListEvents implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListEvents(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		response.BadRequest(w, "user_id is required", nil)
		return
	}

	filter, err := parseRangeFilter(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result, err := h.timesheetService.ListEvents(r.Context(), companyID, userID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetLiveStatus implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetLiveStatus(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	userID := chi.URLParam(r, "userID")

	result, err := h.timesheetService.GetLiveStatus(r.Context(), companyID, userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// parseRangeFilter reads optional RFC3339 from/to query parameters.
func parseRangeFilter(r *http.Request) (event.ListEventsFilter, error) {
	var filter event.ListEventsFilter

	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return event.ListEventsFilter{}, errInvalidFrom
		}
		from = from.UTC()
		filter.From = &from
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return event.ListEventsFilter{}, errInvalidTo
		}
		to = to.UTC()
		filter.To = &to
	}

	return filter, nil
}
