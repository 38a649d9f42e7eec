package httputil

import (
	"encoding/json"
	"net/http"

	"giftlist/internal/domain"
)

// errorBody is the fixed client-visible error shape.
type errorBody struct {
	Message string              `json:"message"`
	Name    string              `json:"name"`
	Status  int                 `json:"status"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

// RespondJSON writes a JSON response with the given status code. It marshals
// before touching the ResponseWriter so an encoding failure cannot produce a
// partial body after headers are sent.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		RespondHTTPError(w, domain.NewApplicationError("failed to encode response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// RespondHTTPError writes a typed error in the fixed error body shape.
func RespondHTTPError(w http.ResponseWriter, httpErr domain.HTTPError) {
	body := errorBody{
		Message: httpErr.Error(),
		Name:    httpErr.Kind(),
		Status:  httpErr.StatusCode(),
	}
	if badReq, ok := httpErr.(*domain.BadRequestError); ok && len(badReq.Errors) > 0 {
		body.Errors = badReq.Errors
	}

	payload, err := json.Marshal(body)
	if err != nil {
		// Fallback to plain text if JSON encoding fails
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpErr.StatusCode())
	w.Write(payload)
}
