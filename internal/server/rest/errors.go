package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// messages overrides the default client-facing text for a sentinel error.
type messages map[error]string

var defaultMessages = messages{
	common.ErrorValidation:   "Invalid request",
	common.ErrorUnauthorized: "Invalid email or password",
	common.ErrInvalidToken:   "Invalid token",
	common.ErrTokenExpired:   "Token expired",
	common.ErrorNotFound:     "Not found",
	common.ErrorConflict:     "Already exists",
}

// statusOf maps an error onto exactly one HTTP status and its sentinel.
func statusOf(err error) (int, error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, common.ErrorValidation
	case errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, common.ErrTokenExpired
	case errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, common.ErrInvalidToken
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, common.ErrorUnauthorized
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, common.ErrorNotFound
	case errors.Is(err, common.ErrorConflict):
		return http.StatusConflict, common.ErrorConflict
	default:
		return http.StatusInternalServerError, nil
	}
}

// writeError renders err as {message, error?}. Validation errors carry their
// own message; 500s are logged and only reveal detail in debug mode.
func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error, overrides messages) {
	status, kind := statusOf(err)

	if status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		resp := errorResponse{Message: "Server error"}
		if s.debug {
			resp.Error = err.Error()
		}
		writeJSON(w, status, resp)
		return
	}

	var ve *common.ValidationError
	if errors.As(err, &ve) {
		writeMessage(w, status, ve.Msg)
		return
	}

	msg, ok := overrides[kind]
	if !ok {
		msg = defaultMessages[kind]
	}
	writeMessage(w, status, msg)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads a JSON body into dst. Unknown fields are ignored;
// malformed or missing bodies are validation errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return common.NewValidationError("Request body is required")
		}
		return common.NewValidationError("Invalid JSON body")
	}
	return nil
}
