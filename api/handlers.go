/*
handlers.go - HTTP handlers for the voucher pipeline

PURPOSE:
  Exposes the pipeline operations via REST. Handles HTTP
  request/response, JSON serialization, and delegates to the pipeline.

ENDPOINTS:
  POST /api/reports                    Generate a monthly report
  POST /api/reports/validate           Re-validate a written report
  GET  /api/reports/validations?path=  Read a report's Validações sheet
  GET  /api/schemas                    List input-table schemas
  GET  /api/schemas/{table}            Required columns of one table

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed request, rule-config or input-data errors
  - 404: Missing file, table or schema
  - 500: Everything else

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/warp/voucher-engine/factory"
	"github.com/warp/voucher-engine/pipeline"
	"github.com/warp/voucher-engine/tabular"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Pipeline *pipeline.Pipeline
}

// NewHandler creates a handler around a pipeline.
func NewHandler(p *pipeline.Pipeline) *Handler {
	return &Handler{Pipeline: p}
}

// GenerateReport runs the full pipeline.
// POST /api/reports
func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	cfg, err := factory.FromJSON(req.RuleConfig)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid rule config", err)
		return
	}

	res, err := h.Pipeline.Generate(pipeline.GenerateParams{
		InputsDir:    req.InputsDir,
		Month:        time.Month(req.Month),
		Year:         req.Year,
		OutputName:   req.OutputName,
		TemplatePath: req.TemplatePath,
		Config:       cfg,
	})
	if err != nil {
		writePipelineError(w, "Failed to generate report", err)
		return
	}

	writeJSON(w, http.StatusCreated, GenerateResponse{
		OutputPath: res.OutputPath,
		Metrics:    res.Metrics,
		Validation: res.Validation,
	})
}

// ValidateReport re-checks a written report against a template.
// POST /api/reports/validate
func (h *Handler) ValidateReport(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.OutputPath == "" || req.TemplatePath == "" {
		writeError(w, http.StatusBadRequest, "output_path and template_path are required", nil)
		return
	}

	vr, err := h.Pipeline.Validate(req.OutputPath, req.TemplatePath)
	if err != nil {
		writePipelineError(w, "Failed to validate report", err)
		return
	}
	writeJSON(w, http.StatusOK, vr)
}

// ReadValidations returns the persisted Validações sheet.
// GET /api/reports/validations?path=VR_MENSAL_08_2025.xlsx
func (h *Handler) ReadValidations(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest, "query parameter 'path' is required", nil)
		return
	}

	vr, err := h.Pipeline.ReadValidations(path)
	if err != nil {
		writePipelineError(w, "Failed to read validations", err)
		return
	}
	writeJSON(w, http.StatusOK, vr)
}

// ListSchemas returns every registered input-table schema.
// GET /api/schemas
func (h *Handler) ListSchemas(w http.ResponseWriter, r *http.Request) {
	schemas := tabular.ListSchemas()
	dtos := make([]SchemaDTO, len(schemas))
	for i, s := range schemas {
		dtos[i] = SchemaDTO{Table: s.Table, Required: s.Required, Optional: s.Optional}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetSchema returns the required columns of one table.
// GET /api/schemas/{table}
func (h *Handler) GetSchema(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	required, err := h.Pipeline.ListRequiredColumns(table)
	if err != nil {
		writePipelineError(w, "Unknown table", err)
		return
	}

	s := tabular.MustLookupSchema(table)
	writeJSON(w, http.StatusOK, SchemaDTO{Table: s.Table, Required: required, Optional: s.Optional})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

// writePipelineError maps the pipeline error taxonomy to HTTP status.
func writePipelineError(w http.ResponseWriter, message string, err error) {
	switch {
	case tabular.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case tabular.IsInputError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
