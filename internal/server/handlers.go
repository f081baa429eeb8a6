package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-layout/internal/db"
	"github.com/jonathan/resume-layout/internal/pipeline"
	"github.com/jonathan/resume-layout/internal/rendering"
	"github.com/jonathan/resume-layout/internal/types"
)

// tightHeader tells render clients the content was estimated to overflow the page.
const tightHeader = "X-Layout-Tight"

var validate = validator.New()

// PlanRequest is the body of POST /layout/plan and the render endpoints.
type PlanRequest struct {
	Document json.RawMessage `json:"document" validate:"required"`
	Variant  string          `json:"variant,omitempty"`
	BudgetMm float64         `json:"budget_mm,omitempty" validate:"gte=0,lte=297"`
}

// BatchRequest is the body of POST /layout/plan/batch.
type BatchRequest struct {
	Documents []json.RawMessage `json:"documents" validate:"required,min=1,max=500"`
	Variant   string            `json:"variant,omitempty"`
	BudgetMm  float64           `json:"budget_mm,omitempty" validate:"gte=0,lte=297"`
}

// PlanResponse is one planned document, with the run log ID when the run was recorded.
type PlanResponse struct {
	*pipeline.Result
	RunID *uuid.UUID `json:"run_id,omitempty"`
}

// BatchResponse holds plans in request order.
type BatchResponse struct {
	Results []PlanResponse `json:"results"`
}

// TemplateInfo describes one template variant.
type TemplateInfo struct {
	Name           string  `json:"name"`
	BudgetMm       float64 `json:"budget_mm"`
	HeaderMm       float64 `json:"header_mm"`
	BottomMarginMm float64 `json:"bottom_margin_mm"`
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	s.errorResponse(w, status, err.Error())
}

func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return err
		}
		return &ErrValidation{Field: "body", Message: "invalid JSON"}
	}
	if err := validate.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}

func (s *Server) optionsFor(variant string, budgetMm float64) pipeline.Options {
	opts := s.options
	if variant != "" {
		opts.Variant = variant
	}
	if budgetMm > 0 {
		opts.BudgetMm = budgetMm
	}
	return opts
}

// planOne decodes and plans the request's document.
func (s *Server) planOne(w http.ResponseWriter, r *http.Request) (*types.ResumeDocument, *pipeline.Result, error) {
	var req PlanRequest
	if err := decodeRequest(w, r, &req); err != nil {
		return nil, nil, err
	}
	doc, err := pipeline.DecodeDocument(req.Document)
	if err != nil {
		return nil, nil, err
	}
	res, err := pipeline.Plan(doc, s.optionsFor(req.Variant, req.BudgetMm))
	if err != nil {
		return nil, nil, err
	}
	return doc, res, nil
}

// recordRun logs the plan when a store is configured. Failures are logged and never fail the request.
func (s *Server) recordRun(r *http.Request, res *pipeline.Result) *uuid.UUID {
	if s.store == nil {
		return nil
	}
	run := db.NewLayoutRun(res.Name, db.SourceHTTP, res.Layout)
	if err := s.store.SaveLayoutRun(r.Context(), &run); err != nil {
		s.logger.Warn("failed to record layout run", zap.Error(err))
		return nil
	}
	return &run.ID
}

// handlePlan plans a single document.
func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	_, res, err := s.planOne(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, PlanResponse{Result: res, RunID: s.recordRun(r, res)})
}

// handlePlanBatch plans many documents concurrently.
func (s *Server) handlePlanBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}

	docs := make([]*types.ResumeDocument, len(req.Documents))
	for i, raw := range req.Documents {
		doc, err := pipeline.DecodeDocument(raw)
		if err != nil {
			s.fail(w, fmt.Errorf("document %d: %w", i, err))
			return
		}
		docs[i] = doc
	}

	results, err := pipeline.PlanBatch(r.Context(), docs, s.optionsFor(req.Variant, req.BudgetMm), s.concurrency)
	if err != nil {
		s.fail(w, err)
		return
	}

	resp := BatchResponse{Results: make([]PlanResponse, len(results))}
	for i, res := range results {
		resp.Results[i] = PlanResponse{Result: res, RunID: s.recordRun(r, res)}
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request, format pipeline.Format, contentType string) {
	doc, res, err := s.planOne(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}

	out, err := pipeline.Render(doc, res, format)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.recordRun(r, res)

	w.Header().Set("Content-Type", contentType)
	w.Header().Set(tightHeader, strconv.FormatBool(res.Layout.Tight))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(out)); err != nil {
		s.logger.Warn("failed to write render response", zap.Error(err))
	}
}

// handleRenderHTML renders a document as HTML.
func (s *Server) handleRenderHTML(w http.ResponseWriter, r *http.Request) {
	s.handleRender(w, r, pipeline.FormatHTML, "text/html; charset=utf-8")
}

// handleRenderLaTeX renders a document as LaTeX source.
func (s *Server) handleRenderLaTeX(w http.ResponseWriter, r *http.Request) {
	s.handleRender(w, r, pipeline.FormatLaTeX, "application/x-latex; charset=utf-8")
}

// handleTemplates lists the template variants and their page budgets.
func (s *Server) handleTemplates(w http.ResponseWriter, _ *http.Request) {
	variants := rendering.Variants()
	infos := make([]TemplateInfo, len(variants))
	for i, v := range variants {
		infos[i] = TemplateInfo{
			Name:           v.Name,
			BudgetMm:       v.BudgetMm(),
			HeaderMm:       v.Page.HeaderMm,
			BottomMarginMm: v.Page.BottomMarginMm,
		}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"templates": infos})
}

// handleListRuns returns recent layout runs, newest first.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, ErrNoDatabase)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 500 {
			s.fail(w, &ErrValidation{Field: "limit", Message: "must be between 1 and 500"})
			return
		}
		limit = n
	}

	runs, err := s.store.ListLayoutRuns(r.Context(), limit)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"runs": runs})
}

// handleGetRun returns one layout run.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.fail(w, ErrNoDatabase)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.fail(w, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return
	}

	run, err := s.store.GetLayoutRun(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, run)
}
