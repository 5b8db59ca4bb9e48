package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/agbru/polycalc/internal/config"
	"github.com/agbru/polycalc/internal/engine"
	apperrors "github.com/agbru/polycalc/internal/errors"
	"github.com/agbru/polycalc/internal/poly"
	"github.com/agbru/polycalc/internal/service"
)

// maxBodyBytes bounds the body of POST /evaluate.
const maxBodyBytes = 1 << 20

// handleHealth reports that the server is up.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

// operationInfo describes one operation in GET /operations.
type operationInfo struct {
	Name    string `json:"name"`
	Arity   int    `json:"arity"`
	Summary string `json:"summary"`
}

// handleOperations lists the registered operations with their arity.
func (s *Server) handleOperations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	all := s.factory.GetAll()
	infos := make([]operationInfo, 0, len(all))
	for _, name := range s.factory.List() {
		op := all[name]
		infos = append(infos, operationInfo{Name: name, Arity: op.Arity(), Summary: op.Summary()})
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]any{
		"operations": infos,
	})
}

// handleEvaluate applies an operation to its operands. It accepts either
// GET /evaluate?op=mul&p=x-1&p=x+1 or a POST with an EvaluateRequest body.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var (
		req EvaluateRequest
		err error
	)
	switch r.Method {
	case http.MethodGet:
		req, err = parseEvaluateQuery(r)
	case http.MethodPost:
		req, err = decodeEvaluateBody(w, r)
	default:
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if err != nil {
		var reqErr requestError
		if errors.As(err, &reqErr) {
			s.writeErrorResponse(w, reqErr.StatusCode, reqErr.Message)
		} else {
			s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	start := time.Now()
	result, err := s.service.Evaluate(ctx, req.Op, req.Operands)
	duration := time.Since(start)

	if err != nil {
		s.writeErrorResponse(w, statusForError(err), err.Error())
		return
	}

	s.writeJSONResponse(w, http.StatusOK, Response{
		Op:       req.Op,
		Operands: req.Operands,
		Results:  result.Strings(),
		Duration: duration.String(),
	})
}

// parseEvaluateQuery reads op and the repeated p parameters.
func parseEvaluateQuery(r *http.Request) (EvaluateRequest, error) {
	q := r.URL.Query()
	req := EvaluateRequest{Op: q.Get("op"), Operands: q["p"]}
	return normalizeRequest(req)
}

// decodeEvaluateBody decodes a JSON EvaluateRequest of bounded size.
func decodeEvaluateBody(w http.ResponseWriter, r *http.Request) (EvaluateRequest, error) {
	var req EvaluateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return EvaluateRequest{}, requestError{
				Message:    fmt.Sprintf("Request body exceeds %d bytes", maxBodyBytes),
				StatusCode: http.StatusRequestEntityTooLarge,
			}
		}
		return EvaluateRequest{}, requestError{
			Message:    "Invalid JSON body: " + err.Error(),
			StatusCode: http.StatusBadRequest,
		}
	}
	return normalizeRequest(req)
}

// normalizeRequest applies the default operation and requires operands.
func normalizeRequest(req EvaluateRequest) (EvaluateRequest, error) {
	if req.Op == "" {
		req.Op = config.DefaultOp
	}
	if len(req.Operands) == 0 {
		return EvaluateRequest{}, requestError{
			Message:    "Missing operands: pass one or more 'p' parameters",
			StatusCode: http.StatusBadRequest,
		}
	}
	return req, nil
}

// statusForError maps an evaluation error to an HTTP status:
// malformed input is 400, an oversized operand 413, a domain failure 422,
// and an expired or canceled evaluation 504.
func statusForError(err error) int {
	var valErr apperrors.ValidationError
	switch {
	case apperrors.IsContextError(err):
		return http.StatusGatewayTimeout
	case errors.Is(err, service.ErrInputTooLarge):
		return http.StatusRequestEntityTooLarge
	case engine.IsDomainError(err):
		return http.StatusUnprocessableEntity
	case errors.As(err, &valErr), errors.Is(err, poly.ErrParse),
		errors.Is(err, engine.ErrUnknownOperation), errors.Is(err, engine.ErrArity),
		errors.Is(err, engine.ErrUnknownStrategy):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeJSONResponse writes data as JSON with the given status.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", err)
	}
}

// writeErrorResponse writes an ErrorResponse with the given status.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	s.writeJSONResponse(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
