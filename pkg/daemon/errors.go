/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/

package daemon

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mtaops/statctl/pkg/errors"
	"github.com/mtaops/statctl/pkg/serializer"
	"github.com/mtaops/statctl/pkg/transport"
)

// writeError writes a structured error response with the request ID
// attached for log correlation.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, statusCode int,
	code errors.ErrorCode, message string, details map[string]any) {

	requestID, _ := r.Context().Value(contextKeyRequestID).(string)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	serializer.RespondJSON(w, statusCode, transport.ErrorResponse{
		Error: transport.ErrorBody{
			Code:      code,
			Message:   message,
			RequestID: requestID,
			Details:   details,
		},
	})
}

// writeStructuredError maps a StructuredError onto an HTTP status.
func (s *Server) writeStructuredError(w http.ResponseWriter, r *http.Request, serr *errors.StructuredError) {
	status := http.StatusInternalServerError
	switch serr.Code {
	case errors.ErrCodeInvalidRequest, errors.ErrCodeInvalidQuery:
		status = http.StatusBadRequest
	case errors.ErrCodeRateLimitExceeded:
		status = http.StatusTooManyRequests
	case errors.ErrCodeMethodNotAllowed:
		status = http.StatusMethodNotAllowed
	}
	s.writeError(w, r, status, serr.Code, serr.Message, serr.Context)
}
