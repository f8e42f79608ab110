package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/DukeRupert/vigil/internal/domain"
)

// maxRequestBody caps request bodies at 1 MiB. Inspection documents are a few
// kilobytes in practice.
const maxRequestBody = 1 << 20

// decodeJSON decodes the request body into dst, returning an EINVALID domain
// error on malformed input.
func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxRequestBody)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return domain.Wrap(err, domain.EINVALID, "", "Invalid JSON request body")
	}
	return nil
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}
