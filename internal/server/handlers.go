package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/koustreak/json2sqlite/internal/convert"
	"github.com/koustreak/json2sqlite/internal/errs"
	"github.com/koustreak/json2sqlite/internal/logger"
)

const maxBodyBytes = 1 << 20

// APIResponse is the envelope for every response.
type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
	Meta    *APIMeta  `json:"meta,omitempty"`
}

// APIError carries the error kind and a readable message.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIMeta holds response metadata.
type APIMeta struct {
	Timestamp string `json:"timestamp"`
}

// ConvertRequest is the POST /v1/convert body. Omitted naming fields use
// the server defaults.
type ConvertRequest struct {
	Source                 string  `json:"source"`
	UseFilenameAsTableName *bool   `json:"useFilenameAsTableName,omitempty"`
	CustomTableName        *string `json:"customTableName,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var body ConvertRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, errs.ErrKindInvalidInput.String(), "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(body.Source) == "" {
		respondError(w, http.StatusBadRequest, errs.ErrKindInvalidInput.String(), "source is required")
		return
	}

	req := convert.Request{
		Source:                 body.Source,
		UseFilenameAsTableName: s.cfg.UseFilenameAsTableName,
		CustomTableName:        s.cfg.CustomTableName,
	}
	if body.UseFilenameAsTableName != nil {
		req.UseFilenameAsTableName = *body.UseFilenameAsTableName
	}
	if body.CustomTableName != nil {
		req.CustomTableName = *body.CustomTableName
	}

	report, err := s.conv.Convert(r.Context(), req)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	respond(w, http.StatusOK, report)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		respondError(w, http.StatusBadRequest, errs.ErrKindInvalidInput.String(), "path is required")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, errs.ErrKindInvalidInput.String(), "limit must be a positive integer")
			return
		}
		limit = n
	}

	p, err := s.conv.Preview(r.Context(), path, limit)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	respond(w, http.StatusOK, p)
}

func (s *Server) respondErr(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.FromContext(r.Context()).ErrorWith("request failed", err, nil)
	}

	msg := err.Error()
	var e *errs.Error
	if errors.As(err, &e) {
		msg = e.Message
	}
	respondError(w, status, errs.KindOf(err).String(), msg)
}

// statusFor maps an error kind to an HTTP status.
func statusFor(err error) int {
	switch errs.KindOf(err) {
	case errs.ErrKindInvalidInput:
		return http.StatusBadRequest
	case errs.ErrKindParseFailure, errs.ErrKindEmptyInput, errs.ErrKindUnsupportedShape:
		return http.StatusUnprocessableEntity
	case errs.ErrKindInputNotFound:
		return http.StatusNotFound
	case errs.ErrKindDuplicateTable:
		return http.StatusConflict
	case errs.ErrKindPermissionDenied:
		return http.StatusForbidden
	case errs.ErrKindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func respond(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, APIResponse{
		Success: true,
		Data:    data,
		Meta:    &APIMeta{Timestamp: time.Now().UTC().Format(time.RFC3339)},
	})
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: message},
		Meta:    &APIMeta{Timestamp: time.Now().UTC().Format(time.RFC3339)},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
