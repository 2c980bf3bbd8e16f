package server

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/xxracer/clearcomply2.1/internal/directory"
	"github.com/xxracer/clearcomply2.1/internal/llm"
)

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var nf *directory.NotFoundError
	if errors.As(err, &nf) {
		return http.StatusNotFound
	}
	var ve *directory.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return http.StatusBadRequest
	}
	var se *llm.ServiceError
	if errors.As(err, &se) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// writeError maps a domain error onto the wire. Server-side failures are
// logged with their cause; the client only sees the message.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	s.errorResponse(w, status, err.Error())
}
