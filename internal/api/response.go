/**
 * @description
 * Response shaping for the library-service API: JSON bodies, the uniform
 * `{"error": "..."}` envelope, and the mapping from domain error kinds to
 * HTTP status codes.
 */
package api

import (
	"bytes"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/transfa/library-service/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// requestJSON decodes request bodies. Keys must match the field tags exactly.
var requestJSON = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	CaseSensitive:          true,
}.Froze()

const (
	msgInvalidBody    = "Invalid request body"
	msgInternalError  = "Internal Server Error"
	msgRouteNotFound  = "Not found"
	msgMethodNotAllow = "Method not allowed"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the body of informational endpoints.
type messageResponse struct {
	Message string `json:"message"`
}

// writeJSON is a helper to write JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Failed to encode response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// statusFor maps a domain error kind to its HTTP status.
func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindBadRequest:
		return http.StatusBadRequest
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondWithError writes err as a JSON error. Unclassified errors are logged
// and hidden from the client.
func (h *Handler) respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	if kind := domain.KindOf(err); kind != 0 {
		writeError(w, statusFor(kind), err.Error())
		return
	}

	h.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, msgInternalError)
}

// decodeBody reads a JSON request body into dst. An empty body leaves dst at
// its zero value so the required-field checks report what is missing.
func decodeBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	return requestJSON.Unmarshal(raw, dst)
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, msgRouteNotFound)
}

func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllow)
}
