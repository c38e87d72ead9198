package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/tartampluch/go-numerology/internal/numerology"
	"github.com/tartampluch/go-numerology/internal/search"
)

var (
	json     = jsoniter.ConfigCompatibleWithStandardLibrary
	validate = validator.New(validator.WithRequiredStructEnabled())
)

var (
	errDecode   = errors.New(config.ErrRequestDecode)
	errInvalid  = errors.New(config.ErrRequestInvalid)
	errNotFound = errors.New(config.HTTPMsgNotFound)
)

type errorResponse struct {
	Error string `json:"error"`
}

// handler adapts an error-returning handler; errors become JSON replies.
func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			writeError(w, r, err)
		}
	}
}

// readJSON decodes the body into dest and validates it.
func readJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: %v", errDecode, err)
	}
	if err := validate.StructCtx(r.Context(), dest); err != nil {
		return fmt.Errorf("%w: %w", errInvalid, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.ErrorContext(r.Context(), config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}

// statusOf maps an error to its HTTP status.
func statusOf(err error) int {
	var ve validator.ValidationErrors
	switch {
	case errors.Is(err, errDecode),
		errors.Is(err, errInvalid),
		errors.As(err, &ve),
		errors.Is(err, numerology.ErrInvalidDate),
		errors.Is(err, numerology.ErrInvalidGender),
		errors.Is(err, search.ErrInvalidMode):
		return http.StatusBadRequest
	case errors.Is(err, search.ErrNoCandidateWords):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), config.HTTPMsgInternalErr,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPath, r.URL.Path,
			config.LogKeyError, err,
		)
		msg = config.HTTPMsgInternalErr
	}
	writeJSON(w, r, status, errorResponse{Error: msg})
}
