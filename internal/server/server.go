// Package server exposes the feasibility engine over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sells-group/feasibility-cli/internal/catalog"
	"github.com/sells-group/feasibility-cli/internal/display"
	"github.com/sells-group/feasibility-cli/internal/feasibility"
	"github.com/sells-group/feasibility-cli/internal/model"
	"github.com/sells-group/feasibility-cli/internal/report"
)

// Evaluator produces a report for a plan.
type Evaluator interface {
	Evaluate(plan model.PlanInput) (*model.FeasibilityReport, error)
}

// Narrator produces advisory text for a report. It never fails.
type Narrator interface {
	Insight(ctx context.Context, plan model.PlanInput, r *model.FeasibilityReport) string
}

// Config tunes the HTTP layer.
type Config struct {
	RatePerMinute   int
	Burst           int
	CORSOrigins     []string
	Rates           display.Rates
	DefaultCurrency display.Currency
	MaxBodyBytes    int64
	RequestTimeout  time.Duration
}

// DefaultConfig returns permissive defaults for local use.
func DefaultConfig() Config {
	return Config{
		RatePerMinute:   60,
		Burst:           10,
		CORSOrigins:     []string{"*"},
		Rates:           display.DefaultRates(),
		DefaultCurrency: display.SAR,
		MaxBodyBytes:    64 << 10,
		RequestTimeout:  30 * time.Second,
	}
}

// Server holds the HTTP handlers.
type Server struct {
	engine   Evaluator
	narrator Narrator
	cfg      Config
	limiter  *ClientLimiter
}

// New creates a Server. A nil narrator leaves the narrative empty.
func New(engine Evaluator, narrator Narrator, cfg Config) *Server {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultConfig().MaxBodyBytes
	}
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = display.SAR
	}
	return &Server{
		engine:   engine,
		narrator: narrator,
		cfg:      cfg,
		limiter:  NewClientLimiter(cfg.RatePerMinute, cfg.Burst),
	}
}

// Close releases background resources.
func (s *Server) Close() {
	s.limiter.Stop()
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", HeaderRequestID},
		ExposedHeaders: []string{HeaderRequestID},
		MaxAge:         300,
	}))
	if s.cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.cfg.RequestTimeout))
	}

	r.Get("/health", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Use(RateLimit(s.limiter))
		r.Get("/options", s.handleOptions)
		r.Post("/evaluate", s.handleEvaluate)
		r.Post("/narrative", s.handleNarrative)
		r.Post("/report.pdf", s.handleReport(formatPDF))
		r.Post("/report.xlsx", s.handleReport(formatXLSX))
		r.Post("/report.html", s.handleReport(formatHTML))
	})
	return r
}

// EvaluateResponse is the body of /v1/evaluate and /v1/narrative.
type EvaluateResponse struct {
	Report    *model.FeasibilityReport `json:"report"`
	Display   *display.Summary         `json:"display,omitempty"`
	Narrative string                   `json:"narrative,omitempty"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Fields  []string          `json:"fields,omitempty"`
	Reasons map[string]string `json:"reasons,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleOptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"fields": catalog.Fields()})
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	_, rep, ok := s.evaluate(w, r)
	if !ok {
		return
	}
	resp := EvaluateResponse{Report: rep}
	if r.URL.Query().Has("currency") {
		f, ok := s.formatter(w, r)
		if !ok {
			return
		}
		sum := f.Summarize(rep, equity(r))
		resp.Display = &sum
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleNarrative(w http.ResponseWriter, r *http.Request) {
	plan, rep, ok := s.evaluate(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, EvaluateResponse{
		Report:    rep,
		Narrative: s.insight(r.Context(), plan, rep),
	})
}

type reportFormat int

const (
	formatPDF reportFormat = iota
	formatXLSX
	formatHTML
)

func (s *Server) handleReport(format reportFormat) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		plan, rep, ok := s.evaluate(w, r)
		if !ok {
			return
		}
		f, ok := s.formatter(w, r)
		if !ok {
			return
		}

		var narrative string
		if v, _ := strconv.ParseBool(r.URL.Query().Get("narrative")); v {
			narrative = s.insight(r.Context(), plan, rep)
		}

		doc, err := report.NewDocument(plan, rep, f, narrative)
		if err != nil {
			s.internalError(w, r, err)
			return
		}

		var buf bytes.Buffer
		var contentType, filename string
		switch format {
		case formatPDF:
			contentType, filename = "application/pdf", "feasibility-report.pdf"
			err = doc.PDF(&buf)
		case formatXLSX:
			contentType, filename = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "feasibility-report.xlsx"
			err = doc.XLSX(&buf)
		case formatHTML:
			contentType = "text/html; charset=utf-8"
			var page []byte
			page, err = doc.HTML()
			buf.Write(page)
		}
		if err != nil {
			s.internalError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", contentType)
		if filename != "" {
			w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}

// evaluate decodes the plan and runs the engine, writing the error reply
// itself when it returns ok=false.
func (s *Server) evaluate(w http.ResponseWriter, r *http.Request) (model.PlanInput, *model.FeasibilityReport, bool) {
	var plan model.PlanInput
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&plan); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return plan, nil, false
	}

	rep, err := s.engine.Evaluate(plan)
	if err != nil {
		var missing *feasibility.MissingFieldError
		var invalid *feasibility.InvalidFieldError
		switch {
		case errors.As(err, &missing):
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Fields: missing.Fields})
		case errors.As(err, &invalid):
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Fields: invalid.Fields, Reasons: invalid.Reasons})
		default:
			s.internalError(w, r, err)
		}
		return plan, nil, false
	}
	return plan, rep, true
}

func (s *Server) insight(ctx context.Context, plan model.PlanInput, rep *model.FeasibilityReport) string {
	if s.narrator == nil {
		return ""
	}
	return s.narrator.Insight(ctx, plan, rep)
}

func (s *Server) formatter(w http.ResponseWriter, r *http.Request) (*display.Formatter, bool) {
	cur := s.cfg.DefaultCurrency
	if q := r.URL.Query().Get("currency"); q != "" {
		c, err := display.ParseCurrency(q)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "unsupported currency", Fields: []string{"currency"}})
			return nil, false
		}
		cur = c
	}
	f, err := display.New(cur, s.cfg.Rates)
	if err != nil {
		s.internalError(w, r, err)
		return nil, false
	}
	return f, true
}

func equity(r *http.Request) int {
	v, err := strconv.Atoi(r.URL.Query().Get("equity"))
	if err != nil {
		return display.DefaultEquity
	}
	return display.ClampEquity(v)
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	zap.L().Error("server: handler failed",
		zap.String("request_id", RequestIDFrom(r.Context())),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Debug("server: write response", zap.Error(err))
	}
}
