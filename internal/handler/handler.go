package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"gellies-store/internal/middleware"
	"gellies-store/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// validate is shared by every handler; validator.Validate caches struct metadata.
var validate = validator.New()

// Options tunes the behaviour shared by all handlers.
type Options struct {
	// ExposeErrors echoes the underlying error text in 500 responses.
	ExposeErrors bool
}

// writeJSON writes a JSON response with the given status code. Encoding
// errors are dropped: the status line is already sent.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeMessage writes a {message} acknowledgment.
func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, model.MessageResponse{Message: message})
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger zerolog.Logger) {
	logger.Warn().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{
		Message:       message,
		CorrelationID: middleware.RequestIDFromContext(r.Context()),
	})
}

// statusFor maps a domain error code to an HTTP status.
func statusFor(code string) int {
	switch code {
	case model.ErrCodeValidation, model.ErrCodeInvalidJSON, model.ErrCodeConflict, model.ErrCodeAuthFailed:
		return http.StatusBadRequest
	case model.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// failure writes err as a response. Client errors carry their own message;
// everything else is reported under fallback.
func failure(w http.ResponseWriter, r *http.Request, err error, fallback string, opts Options, logger zerolog.Logger) {
	var de *model.DomainError
	if errors.As(err, &de) {
		if status := statusFor(de.Code); status < http.StatusInternalServerError {
			writeError(w, r, status, de.Message, logger)
			return
		}
	}

	id := middleware.RequestIDFromContext(r.Context())
	logger.Error().Err(err).Str("request_id", id).Msg(fallback)

	resp := model.ErrorResponse{
		Message:       fallback,
		CorrelationID: id,
	}
	if opts.ExposeErrors {
		resp.Error = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, resp)
}

// decodeJSON reads a JSON body into dst. An empty body leaves dst untouched.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return model.WrapDomainError(model.ErrCodeInvalidJSON, model.ErrInvalidBody.Message, err)
	}
	return nil
}
