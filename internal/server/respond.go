package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/logger"
	"github.com/jonathan/career-coach/internal/server/middleware"
)

// maxJSONBody caps every JSON request body.
const maxJSONBody = 1 << 20

// responder writes JSON responses and logs what it cannot send.
type responder struct {
	log *logger.Logger
}

// jsonResponse writes a JSON response
func (rs responder) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		rs.log.Warn("encode response failed", "error", err)
	}
}

// errorResponse writes a {"message": ...} body.
func (rs responder) errorResponse(w http.ResponseWriter, status int, message string) {
	rs.jsonResponse(w, status, map[string]string{"message": message})
}

// fail maps err to its status and public message. Server errors are logged.
func (rs responder) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		rs.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	rs.errorResponse(w, status, publicMessage(err))
}

// decode reads a JSON body into dst. An empty body leaves dst untouched.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return &ErrPayloadTooLarge{Limit: tooLarge.Limit}
	}
	return &ErrValidation{Message: "Invalid request body"}
}

// invalid turns a validator error into an ErrValidation carrying message.
func invalid(err error, message string) *ErrValidation {
	var fields validator.ValidationErrors
	if errors.As(err, &fields) && len(fields) > 0 {
		return &ErrValidation{Field: fields[0].Field(), Message: message}
	}
	return &ErrValidation{Message: message}
}

// requireUser returns the authenticated caller or writes a 401.
func (rs responder) requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		rs.errorResponse(w, http.StatusUnauthorized, middleware.MessageUnauthorized)
		return uuid.Nil, false
	}
	return userID, true
}
