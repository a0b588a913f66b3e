package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ray/storefront-backend/internal/usecase"
)

// Envelope is the only response shape clients ever see: success, validation
// failure with field detail, or a generic error. Internal error text never
// leaves the server.
type Envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Field   string      `json:"field,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func respond(w http.ResponseWriter, code int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(env)
}

func respondOK(w http.ResponseWriter, message string, data interface{}) {
	respond(w, http.StatusOK, Envelope{Status: "success", Message: message, Data: data})
}

func respondNotFound(w http.ResponseWriter) {
	respond(w, http.StatusNotFound, Envelope{Status: "error", Message: "not found"})
}

func respondBadRequest(w http.ResponseWriter, message string) {
	respond(w, http.StatusBadRequest, Envelope{Status: "error", Message: message})
}

// respondError maps the use-case error taxonomy to transport codes:
// ValidationError to 400 with field detail, everything else to a generic
// 500.
func respondError(w http.ResponseWriter, err error) {
	var verr *usecase.ValidationError
	if errors.As(err, &verr) {
		respond(w, http.StatusBadRequest, Envelope{
			Status:  "error",
			Message: verr.Message,
			Field:   verr.Field,
		})
		return
	}
	respond(w, http.StatusInternalServerError, Envelope{Status: "error", Message: "internal server error"})
}
