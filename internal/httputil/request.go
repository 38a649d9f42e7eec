package httputil

import (
	"encoding/json"
	"net/http"

	"giftlist/internal/domain"
)

// ParseJSON decodes JSON from the request body into dest. The body is capped
// at 1MB; payloads here are small structured records, never uploads.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return domain.NewBadRequestError("invalid JSON body")
	}

	return nil
}
