package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"salestrack/backend/internal/store"
)

var (
	errTooManyRequests = errors.New("too many requests")
	errRouteNotFound   = errors.New("not found")
	errSaleNotFound    = errors.New("transaction not found")
	errItemNotFound    = errors.New("inventory item not found")
)

type messageResponse struct {
	Message string `json:"message"`
}

type validationResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// writeServiceError maps service and store errors onto HTTP statuses.
// notFound is the message returned for store.ErrNotFound.
func (a *API) writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, notFound)
	case errors.Is(err, store.ErrInvalidRecord):
		writeError(w, http.StatusUnprocessableEntity, err)
	default:
		a.logger.Error("internal error",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, err)
	}
}

func writeMethodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
}

func writeError(w http.ResponseWriter, status int, err error) {
	// 5xx bodies stay generic; the cause is logged by the caller.
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		msg = "internal server error"
	}
	writeJSON(w, status, map[string]any{
		"error": msg,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
