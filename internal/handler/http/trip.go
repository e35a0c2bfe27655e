package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/domain/trip"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/handler/http/response"
)

type TripHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Start(w http.ResponseWriter, r *http.Request)
	End(w http.ResponseWriter, r *http.Request)
}

type tripHandlerImpl struct {
	tripService trip.TripService
}

func NewTripHandler(tripService trip.TripService) TripHandler {
	return &tripHandlerImpl{
		tripService: tripService,
	}
}

// Create implements TripHandler.
func (h *tripHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")

	var req trip.CreateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.tripService.Create(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Business trip requested", result)
}

// List implements TripHandler.
func (h *tripHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	filter := trip.TripFilter{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Status:     r.URL.Query().Get("status"),
		Page:       page,
		Limit:      limit,
	}

	result, err := h.tripService.List(r.Context(), companyID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Trips, response.PageMeta(result.Page, result.Limit, result.TotalCount))
}

// Get implements TripHandler.
func (h *tripHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	tripID := chi.URLParam(r, "tripID")

	result, err := h.tripService.Get(r.Context(), companyID, tripID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Approve implements TripHandler.
func (h *tripHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	tripID := chi.URLParam(r, "tripID")

	result, err := h.tripService.Approve(r.Context(), companyID, tripID, callerID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Business trip approved", result)
}

// Reject implements TripHandler.
func (h *tripHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")

	var req trip.RejectTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "tripID")

	result, err := h.tripService.Reject(r.Context(), companyID, req, callerID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Business trip rejected", result)
}

// Start implements TripHandler.
func (h *tripHandlerImpl) Start(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	tripID := chi.URLParam(r, "tripID")

	result, err := h.tripService.Start(r.Context(), companyID, tripID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Business trip started", result)
}

// End implements TripHandler.
func (h *tripHandlerImpl) End(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	tripID := chi.URLParam(r, "tripID")

	result, err := h.tripService.End(r.Context(), companyID, tripID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Business trip completed", result)
}
