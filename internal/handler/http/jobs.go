package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/handler/http/response"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/pkg/cron"
)

type JobsHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Start(w http.ResponseWriter, r *http.Request)
	Stop(w http.ResponseWriter, r *http.Request)
	RunNow(w http.ResponseWriter, r *http.Request)
}

type jobsHandlerImpl struct {
	scheduler *cron.Scheduler
}

func NewJobsHandler(scheduler *cron.Scheduler) JobsHandler {
	return &jobsHandlerImpl{
		scheduler: scheduler,
	}
}

// List implements JobsHandler.
func (h *jobsHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.scheduler.Status())
}

// Start implements JobsHandler.
func (h *jobsHandlerImpl) Start(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.scheduler.StartJob(name); err != nil {
		h.handleJobError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Job started", nil)
}

// Stop implements JobsHandler.
func (h *jobsHandlerImpl) Stop(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.scheduler.StopJob(name); err != nil {
		h.handleJobError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Job stopped", nil)
}

// RunNow implements JobsHandler. Executes one tick immediately; a tick
// already in flight is reported as skipped, not an error.
func (h *jobsHandlerImpl) RunNow(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	ran, err := h.scheduler.RunNow(r.Context(), name)
	if err != nil {
		h.handleJobError(w, err)
		return
	}
	if !ran {
		response.SuccessWithMessage(w, "Job already executing, run skipped", map[string]bool{"ran": false})
		return
	}

	response.SuccessWithMessage(w, "Job executed", map[string]bool{"ran": true})
}

func (h *jobsHandlerImpl) handleJobError(w http.ResponseWriter, err error) {
	if errors.Is(err, cron.ErrJobNotFound) {
		response.NotFound(w, "Job not found")
		return
	}
	response.HandleError(w, err)
}
