package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/gridgen/pkg/buildinfo"
	"github.com/matzehuels/gridgen/pkg/errors"
	"github.com/matzehuels/gridgen/pkg/pipeline"
)

// errorBody is the JSON form of a failed request.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type healthBody struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthBody{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) compile(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		msg := err.Error()
		if err == io.EOF {
			msg = "empty request body"
		}
		writeError(w, http.StatusBadRequest, string(errors.ErrCodeInvalidInput), "decode request: "+msg, nil)
		return
	}
	if opts.Container == "" {
		opts.Container = s.container
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	// X-Request-ID stays the request's; the result carries its own ID.
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) layouts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalogue.List())
}

func (s *Server) layout(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	l, ok := s.catalogue.Lookup(name)
	if !ok {
		writeError(w, http.StatusNotFound, string(errors.ErrCodeUnknownLayout), fmt.Sprintf("unknown layout %q", name), nil)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// fail maps a pipeline error to a response: user errors are 400 (404 for
// unknown layouts), cancelled requests 503, everything else 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}

	var details []string
	if list := errors.List(err); len(list) > 1 {
		for _, e := range list {
			details = append(details, errors.UserMessage(e))
		}
	}

	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("compile failed", "error", err)
		msg = "internal error"
		details = nil
	}
	writeError(w, status, code, msg, details)
}

func statusOf(err error) int {
	switch {
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	case errors.Is(err, errors.ErrCodeUnknownLayout):
		return http.StatusNotFound
	case pipeline.IsUserError(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, status int, code, msg string, details []string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: msg, Details: details}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
