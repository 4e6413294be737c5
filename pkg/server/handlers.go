package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/matzehuels/vnav/pkg/buildinfo"
	"github.com/matzehuels/vnav/pkg/drawing"
	verrors "github.com/matzehuels/vnav/pkg/errors"
	"github.com/matzehuels/vnav/pkg/schema"
)

type errorResponse struct {
	Error string      `json:"error"`
	Code  verrors.Code `json:"code,omitempty"`
}

type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

type parseResponse struct {
	Drawings []drawing.Drawing `json:"drawings,omitzero"`
	Errors   []string          `json:"errors"`
	Hash     string            `json:"hash"`
	Cached   bool              `json:"cached"`
}

type validateResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

type resolveRequest struct {
	Drawings []json.RawMessage `json:"drawings"`
	EndPoint json.RawMessage   `json:"endpoint"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Info: buildinfo.Get()})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}

	res, err := s.cfg.Runner.Parse(r.Context(), body, s.cfg.Options)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	resp := parseResponse{Errors: nonNil(res.Errors), Hash: res.ContentHash, Cached: res.CacheHit}
	if !res.Fatal() {
		resp.Drawings = res.Drawings.Sorted()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}

	record, err := schema.DecodeRecord(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, verrors.Wrap(verrors.ErrCodeInvalidInput, err, "body is not JSON"))
		return
	}

	rep := s.registry.Validate(schema.DrawingSchema, record)
	writeJSON(w, http.StatusOK, validateResponse{Valid: rep.OK(), Errors: rep.Strings()})
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}

	var req resolveRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, verrors.Wrap(verrors.ErrCodeInvalidInput, err, "body is not a resolve request"))
		return
	}

	m := make(drawing.Map, len(req.Drawings))
	for i, raw := range req.Drawings {
		d, err := drawing.Decode(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, verrors.Wrap(verrors.ErrCodeInvalidDrawing, err, "drawing %d", i))
			return
		}
		m.Put(d)
	}
	ep, err := drawing.DecodeEndPoint(req.EndPoint)
	if err != nil {
		writeError(w, http.StatusBadRequest, verrors.Wrap(verrors.ErrCodeInvalidInput, err, "endpoint"))
		return
	}

	p, err := drawing.Resolve(ep, m)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, verrors.Wrap(drawing.ResolveCode(err), err, "cannot resolve endpoint"))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		return nil, verrors.Wrap(verrors.ErrCodeInvalidInput, err, "read body")
	}
	return body, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: verrors.UserMessage(err) + causeSuffix(err), Code: verrors.GetCode(err)})
}

func causeSuffix(err error) string {
	if cause := errors.Unwrap(err); cause != nil {
		return ": " + cause.Error()
	}
	return ""
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
