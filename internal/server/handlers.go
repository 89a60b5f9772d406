package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/boardfit/pkg/errors"
	"github.com/matzehuels/boardfit/pkg/pcb"
	"github.com/matzehuels/boardfit/pkg/pcb/constraint"
	"github.com/matzehuels/boardfit/pkg/pcb/score"
	"github.com/matzehuels/boardfit/pkg/pipeline"
)

// checkResponse is the body returned by POST /api/v1/check.
type checkResponse struct {
	Hash   string            `json:"hash"`
	Report constraint.Report `json:"report"`
	Score  score.Breakdown   `json:"score"`
}

// listResponse is the body returned by GET /api/v1/placements.
type listResponse struct {
	Placements []Record `json:"placements"`
}

// errorResponse is the body returned for every failed request.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSolve runs the solver with the options from the request body,
// stores the checked result, and returns the new record. An empty body
// solves with defaults.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil && err != io.EOF {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse solve options"))
		return
	}

	placement, _, err := s.Runner.Solve(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	rep, breakdown, err := s.Runner.Check(r.Context(), placement, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	seed, seeded := opts.SeedValue()
	rec := Record{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Hash:      placement.Hash(),
		Seed:      seed,
		Seeded:    seeded,
		Placement: placement.Normalized(),
		Report:    rep,
		Score:     breakdown,
		Options:   opts,
	}
	if err := s.Store.Insert(r.Context(), rec); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

// handleCheck validates and scores the placement from the request body
// without storing anything.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var p pcb.Placement
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse placement"))
		return
	}

	rep, breakdown, err := s.Runner.Check(r.Context(), p, pipeline.Options{})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, checkResponse{
		Hash:   p.Hash(),
		Report: rep,
		Score:  breakdown,
	})
}

func (s *Server) handleListPlacements(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}

	records, err := s.Store.List(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Placements: records})
}

func (s *Server) handleGetPlacement(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.fetchRecord(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleRenderPlacement renders a stored placement on demand. Query
// parameters: format (svg, png, pdf, json, dot), viz (schematic,
// constraints), scale.
func (s *Server) handleRenderPlacement(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.fetchRecord(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}

	// Render under the rule parameters the placement was solved with.
	opts := rec.Options
	opts.VizType = q.Get("viz")
	opts.Formats = []string{format}
	opts.Scale = 0
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid scale %q", v))
			return
		}
		opts.Scale = scale
	}

	artifacts, err := s.Runner.Render(r.Context(), rec.Placement, rec.Report, rec.Score, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

// fetchRecord resolves the {id} path parameter to a stored record,
// writing the error response itself when that fails.
func (s *Server) fetchRecord(w http.ResponseWriter, r *http.Request) (Record, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid placement id %q", id))
		return Record{}, false
	}

	rec, err := s.Store.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return Record{}, false
	}
	return rec, true
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatPDF:
		return "application/pdf"
	case pipeline.FormatJSON:
		return "application/json"
	case pipeline.FormatDOT:
		return "text/vnd.graphviz"
	default:
		return "application/octet-stream"
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeError maps an error to its HTTP status and writes the standard
// error body.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	writeJSON(w, statusForCode(code), errorResponse{
		Code:    string(code),
		Message: errors.UserMessage(err),
	})
}

func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidVizType, errors.ErrCodeInvalidPath,
		errors.ErrCodeInvalidProfile, errors.ErrCodeMalformedPlacement:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeSearchExhausted:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
