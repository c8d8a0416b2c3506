package server

import (
	"encoding/json"
	"net/http"

	werrors "github.com/matzehuels/warehousemap/pkg/errors"
	"github.com/matzehuels/warehousemap/pkg/graph"
	"github.com/matzehuels/warehousemap/pkg/pipeline"
	"github.com/matzehuels/warehousemap/pkg/render/figure"
)

// TablesResponse is the body of GET /api/tables.
type TablesResponse struct {
	System  string               `json:"system"`
	Figure  figure.Figure        `json:"figure"`
	Details pipeline.DetailsView `json:"details"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes an API error.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Title:     s.runner.Options.Title,
		Legend:    s.system.Legend,
		Systems:   s.system.Systems,
		PlotlyURL: PlotlyURL,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, data); err != nil {
		s.logger.Error("render dashboard", "err", err, "request_id", RequestIDFrom(r.Context()))
	}
}

func (s *Server) handleSystem(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.system)
}

func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	system := r.URL.Query().Get("system")
	fig, details := s.runner.Recompute(r.Context(), system)
	s.writeJSON(w, http.StatusOK, TablesResponse{System: system, Figure: fig, Details: details})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := pipeline.ExportOptions{
		Scope:    q.Get("scope"),
		System:   q.Get("system"),
		Format:   q.Get("format"),
		Detailed: q.Get("detailed") == "true",
	}
	data, err := s.runner.Export(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	switch opts.Format {
	case pipeline.FormatDOT:
		w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	case pipeline.FormatJSON:
		w.Header().Set("Content-Type", "application/json")
	default:
		w.Header().Set("Content-Type", "image/svg+xml")
	}
	_, _ = w.Write(data)
}

// writeJSON encodes v as the response body. Debug servers indent the output.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if s.cfg.Debug {
		if err := graph.WriteJSON(w, v); err != nil {
			s.logger.Error("encode response", "err", err)
		}
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

// writeError maps coded errors to HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := werrors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case werrors.ErrCodeInvalidInput, werrors.ErrCodeInvalidFormat, werrors.ErrCodeInvalidScope:
		status = http.StatusBadRequest
	case werrors.ErrCodeNotFound:
		status = http.StatusNotFound
	case "":
		code = werrors.ErrCodeInternal
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err, "request_id", RequestIDFrom(r.Context()))
	}
	s.writeJSON(w, status, ErrorResponse{Error: ErrorBody{Code: string(code), Message: werrors.UserMessage(err)}})
}
