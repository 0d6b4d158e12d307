package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/bordro/internal/calculation"
	"github.com/rgehrsitz/bordro/internal/domain"
	"github.com/shopspring/decimal"
)

const maxBodyBytes = 1 << 20

// Server exposes the calculation engine over HTTP
type Server struct {
	Engine    *calculation.CalculationEngine
	AccessLog *log.Logger
}

// New creates a server for engine. Access log lines go to w.
func New(engine *calculation.CalculationEngine, w io.Writer) *Server {
	return &Server{Engine: engine, AccessLog: log.New(w, "", 0)}
}

// Router builds the HTTP routes
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(RequestID)
	router.Use(AccessLog(s.AccessLog))
	router.Use(chimw.Recoverer)
	router.Use(BodyLimit(maxBodyBytes))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/rates", s.handleRates)
		r.Get("/exemptions", s.handleExemptions)
		r.Post("/calculate", s.handleCalculate)
		r.Post("/simulate", s.handleSimulate)
	})
	return router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Engine.Logger.Infof("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	}
}

type exemptionView struct {
	Month              int             `json:"month"`
	MonthName          string          `json:"monthName"`
	IncomeTaxExemption decimal.Decimal `json:"incomeTaxExemption"`
	StampDutyExemption decimal.Decimal `json:"stampDutyExemption"`
}

type exemptionsResponse struct {
	Year                     int             `json:"year"`
	Months                   []exemptionView `json:"months"`
	AnnualIncomeTaxExemption decimal.Decimal `json:"annualIncomeTaxExemption"`
}

// CalculateRequest asks for a single month. Month is 0-based like the
// results it returns; Wage is gross or target net depending on Mode.
type CalculateRequest struct {
	Mode              string               `json:"mode"`
	Wage              decimal.Decimal      `json:"wage"`
	Month             int                  `json:"month"`
	CumulativeTaxBase decimal.Decimal      `json:"cumulativeTaxBase"`
	IncentiveTier     domain.IncentiveTier `json:"incentiveTier,omitempty"`
}

type CalculateResponse struct {
	Result     domain.MonthlyDeductionResult `json:"result"`
	Iterations int                           `json:"iterations,omitempty"`
	Converged  *bool                         `json:"converged,omitempty"`
}

// SimulateRequest runs a batch of employees through the year
type SimulateRequest struct {
	Mode             string               `json:"mode"`
	RaiseRate        *decimal.Decimal     `json:"raiseRate,omitempty"`
	CorporateTaxRate *decimal.Decimal     `json:"corporateTaxRate,omitempty"`
	IncentiveTier    domain.IncentiveTier `json:"incentiveTier,omitempty"`
	Employees        []domain.Employee    `json:"employees"`
}

func (s *Server) handleRates(w http.ResponseWriter, r *http.Request) {
	Success(w, s.Engine.Rates.Spec(), GetRequestID(r.Context()))
}

func (s *Server) handleExemptions(w http.ResponseWriter, r *http.Request) {
	entries := s.Engine.Schedule.Entries()
	resp := exemptionsResponse{
		Year:                     s.Engine.Rates.Year(),
		Months:                   make([]exemptionView, len(entries)),
		AnnualIncomeTaxExemption: s.Engine.Schedule.AnnualIncomeTaxExemption(),
	}
	for i, e := range entries {
		resp.Months[i] = exemptionView{
			Month:              i,
			MonthName:          domain.MonthNames[i],
			IncomeTaxExemption: e.IncomeTaxExemption,
			StampDutyExemption: e.StampDutyExemption,
		}
	}
	Success(w, resp, GetRequestID(r.Context()))
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	reqID := GetRequestID(r.Context())

	var req CalculateRequest
	if !decode(w, r, &req) {
		return
	}
	mode, err := domain.ParseCalculationMode(req.Mode)
	if err != nil {
		failFromError(w, err, reqID)
		return
	}
	engine, err := s.engineFor(req.IncentiveTier)
	if err != nil {
		failFromError(w, err, reqID)
		return
	}

	resp := CalculateResponse{}
	gross := req.Wage
	if mode == domain.NetAnchored {
		solved, err := engine.SolveGross(req.Wage, req.Month, req.CumulativeTaxBase)
		if err != nil {
			failFromError(w, err, reqID)
			return
		}
		gross = solved.GrossWage
		resp.Iterations = solved.Iterations
		resp.Converged = &solved.Converged
	}

	resp.Result, err = engine.ComputeMonth(gross, req.Month, req.CumulativeTaxBase)
	if err != nil {
		failFromError(w, err, reqID)
		return
	}
	Success(w, resp, reqID)
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	reqID := GetRequestID(r.Context())

	var req SimulateRequest
	if !decode(w, r, &req) {
		return
	}
	if len(req.Employees) == 0 {
		Fail(w, http.StatusBadRequest, "invalid_input", "no employees provided", reqID)
		return
	}

	params := domain.DefaultSimulationParams()
	mode, err := domain.ParseCalculationMode(req.Mode)
	if err != nil {
		failFromError(w, err, reqID)
		return
	}
	params.Mode = mode
	if req.RaiseRate != nil {
		params.RaiseRate = *req.RaiseRate
	}
	if req.CorporateTaxRate != nil {
		params.CorporateTaxRate = *req.CorporateTaxRate
	}
	for i := range req.Employees {
		if req.Employees[i].Name == "" {
			req.Employees[i].Name = fmt.Sprintf("Personel %d", i+1)
		}
	}

	engine, err := s.engineFor(req.IncentiveTier)
	if err != nil {
		failFromError(w, err, reqID)
		return
	}
	batch, err := engine.RunBatch(r.Context(), req.Employees, params)
	if err != nil {
		failFromError(w, err, reqID)
		return
	}
	Success(w, batch, reqID)
}

// engineFor returns the shared engine, or a derived one for another tier
func (s *Server) engineFor(tier domain.IncentiveTier) (*calculation.CalculationEngine, error) {
	if tier == domain.IncentiveNone || tier == s.Engine.Rates.IncentiveTier() {
		return s.Engine, nil
	}
	rc, err := s.Engine.Rates.WithIncentive(tier)
	if err != nil {
		return nil, err
	}
	return s.Engine.WithRates(rc), nil
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			Fail(w, http.StatusRequestEntityTooLarge, "body_too_large", "request body too large", GetRequestID(r.Context()))
			return false
		}
		Fail(w, http.StatusBadRequest, "invalid_json", err.Error(), GetRequestID(r.Context()))
		return false
	}
	return true
}

func failFromError(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, domain.ErrInvalidWage):
		Fail(w, http.StatusBadRequest, "invalid_wage", err.Error(), requestID)
	case errors.Is(err, domain.ErrInvalidInput):
		Fail(w, http.StatusBadRequest, "invalid_input", err.Error(), requestID)
	case errors.Is(err, domain.ErrConfiguration):
		Fail(w, http.StatusBadRequest, "invalid_configuration", err.Error(), requestID)
	case errors.Is(err, context.Canceled):
		Fail(w, http.StatusServiceUnavailable, "cancelled", "request cancelled", requestID)
	default:
		Fail(w, http.StatusInternalServerError, "internal_error", "calculation failed", requestID)
	}
}
