package http

import (
	"errors"
	"net/http"
	"time"
)

var (
	errInvalidFrom = errors.New("from must be RFC3339")
	errInvalidTo   = errors.New("to must be RFC3339")
)

// parseDateRange reads required from/to YYYY-MM-DD query parameters and
// returns the inclusive date bounds.
func parseDateRange(r *http.Request) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("from must be YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("to must be YYYY-MM-DD")
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, errors.New("to must not be before from")
	}
	return from, to, nil
}

// callerID identifies the acting user for review operations. Authentication
// is handled upstream; the gateway forwards the identity in this header.
func callerID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}
