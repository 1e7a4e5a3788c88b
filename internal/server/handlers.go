package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/agbru/trampcalc/internal/calc"
	"github.com/agbru/trampcalc/internal/config"
	apperrors "github.com/agbru/trampcalc/internal/errors"
	"github.com/agbru/trampcalc/internal/logging"
	procmetrics "github.com/agbru/trampcalc/internal/metrics"
	"github.com/agbru/trampcalc/internal/orchestration"
	"github.com/agbru/trampcalc/internal/sysmon"
	"github.com/agbru/trampcalc/internal/telemetry"
)

// ErrOnlyIntegers is the message returned for malformed integer input.
const ErrOnlyIntegers = "Error: only accepts integers"

// CalculationResponse is the body of a successful calculation.
type CalculationResponse struct {
	Function   string  `json:"function"`
	Algorithm  string  `json:"algorithm"`
	M          *uint64 `json:"m,omitempty"`
	N          uint64  `json:"n"`
	Result     string  `json:"result"`
	Digits     int     `json:"digits"`
	DurationMs float64 `json:"duration_ms"`
	Steps      uint64  `json:"steps,omitempty"`
	MaxDepth   int     `json:"max_depth,omitempty"`
	RequestID  string  `json:"request_id,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// HealthResponse is the body of /health.
type HealthResponse struct {
	Status        string       `json:"status"`
	Version       string       `json:"version"`
	UptimeSeconds float64      `json:"uptime_seconds"`
	HeapAlloc     uint64       `json:"heap_alloc_bytes"`
	PeakRSS       uint64       `json:"peak_rss_bytes,omitempty"`
	System        sysmon.Stats `json:"system"`
}

// ackermannParams and fibonacciParams hold the raw form values. Integers
// stay strings until validated so that "abc" and "-1" map to 400.
type ackermannParams struct {
	M    string `validate:"required,number"`
	N    string `validate:"required,number"`
	Algo string `validate:"omitempty,oneof=iterative recursive"`
}

type fibonacciParams struct {
	N    string `validate:"required,number"`
	Algo string `validate:"omitempty,alpha"`
}

type requestIDKey struct{}

// RequestID returns the ID assigned to the request by the server.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// requestIDMiddleware reuses a well-formed inbound X-Request-ID and
// generates one otherwise.
func (s *Server) requestIDMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", id)
		next(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	}
}

// formValue returns the first non-empty value among names.
func formValue(r *http.Request, names ...string) string {
	for _, name := range names {
		if v := r.FormValue(name); v != "" {
			return v
		}
	}
	return ""
}

// legacyAckAlgorithm maps ack_algorithm_choice: "tail_recursive" is the
// iterative engine, anything else the recursive definition.
func legacyAckAlgorithm(choice string) string {
	if choice == "tail_recursive" {
		return "iterative"
	}
	return "recursive"
}

// legacyFibAlgorithm maps fib_algorithm_choice the way the original form
// did, with the naive recursion as the fallback.
func legacyFibAlgorithm(choice string) string {
	switch choice {
	case "tail_recursive_1":
		return "doubling"
	case "tail_recursive_2":
		return "linear"
	default:
		return "recursive"
	}
}

func (s *Server) handleAckermann(w http.ResponseWriter, r *http.Request) {
	if !s.allowCalculationMethod(w, r) {
		return
	}
	p := ackermannParams{
		M:    formValue(r, "m", "ack_param_m"),
		N:    formValue(r, "n", "ack_param_n"),
		Algo: r.FormValue("algo"),
	}
	if p.Algo == "" {
		if choice := r.FormValue("ack_algorithm_choice"); choice != "" {
			p.Algo = legacyAckAlgorithm(choice)
		} else {
			p.Algo = "iterative"
		}
	}
	if err := s.validate.Struct(p); err != nil {
		s.writeValidationError(w, r, err)
		return
	}
	m, n, err := parseUints(p.M, p.N)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrOnlyIntegers)
		return
	}
	if err := s.checkCap(m, n); err != nil {
		s.writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := config.CheckAckermann(m, n, s.cfg.MaxM, s.cfg.MaxNAck); err != nil {
		s.writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.calculate(w, r, calc.Request{Function: calc.Ackermann, M: m, N: n}, p.Algo)
}

func (s *Server) handleFibonacci(w http.ResponseWriter, r *http.Request) {
	if !s.allowCalculationMethod(w, r) {
		return
	}
	p := fibonacciParams{
		N:    formValue(r, "n", "fib_param_n"),
		Algo: r.FormValue("algo"),
	}
	if p.Algo == "" {
		if choice := r.FormValue("fib_algorithm_choice"); choice != "" {
			p.Algo = legacyFibAlgorithm(choice)
		} else {
			p.Algo = "doubling"
		}
	}
	if err := s.validate.Struct(p); err != nil {
		s.writeValidationError(w, r, err)
		return
	}
	_, n, err := parseUints("0", p.N)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrOnlyIntegers)
		return
	}
	if err := s.checkCap(n); err != nil {
		s.writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if n > s.cfg.MaxNFib {
		s.writeError(w, r, http.StatusUnprocessableEntity, apperrors.CapacityError{Resource: "n", Limit: s.cfg.MaxNFib}.Error())
		return
	}
	s.calculate(w, r, calc.Request{Function: calc.Fibonacci, N: n}, p.Algo)
}

func (s *Server) allowCalculationMethod(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodPost {
		return true
	}
	w.Header().Set("Allow", "GET, POST")
	s.writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

// parseUints parses both values. Validation already restricted them to
// digits, so an error here means overflow.
func parseUints(a, b string) (uint64, uint64, error) {
	x, err := strconv.ParseUint(a, 10, 64)
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.ParseUint(b, 10, 64)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// checkCap applies the MaxNValue hard cap.
func (s *Server) checkCap(values ...uint64) error {
	for _, v := range values {
		if err := s.validate.Var(v, fmt.Sprintf("lte=%d", s.security.MaxNValue)); err != nil {
			return apperrors.CapacityError{Resource: "parameter", Limit: s.security.MaxNValue}
		}
	}
	return nil
}

// writeValidationError maps a failed field to its HTTP error: integers
// that do not parse give the historical 400 message.
func (s *Server) writeValidationError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "Algo" {
		s.writeError(w, r, http.StatusBadRequest, "unknown algorithm")
		return
	}
	s.writeError(w, r, http.StatusBadRequest, ErrOnlyIntegers)
}

func (s *Server) calculate(w http.ResponseWriter, r *http.Request, req calc.Request, algo string) {
	c, err := s.factory.Get(req.Function, algo)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Timeout)
	defer cancel()
	ctx, span := telemetry.Tracer().Start(ctx, "http"+r.URL.Path)
	defer span.End()
	span.SetAttributes(telemetry.AttrRequestID.String(RequestID(r.Context())))

	opts := calc.Options{MaxSteps: s.cfg.MaxSteps, RecursionBudget: s.cfg.RecursionBudget}
	res := orchestration.ExecuteCalculations(ctx, []calc.Calculator{c}, req, opts, orchestration.NullProgressReporter{}, io.Discard)[0]

	fields := []logging.Field{
		logging.String("request_id", RequestID(r.Context())),
		logging.String("request", req.String()),
		logging.String("algorithm", res.Name),
		logging.Duration("duration", res.Duration),
		logging.String("trace_id", telemetry.TraceID(ctx)),
	}
	if res.Err != nil {
		telemetry.RecordError(span, res.Err)
		code, outcome := statusFor(res.Err)
		s.metrics.ObserveCalculation(string(req.Function), res.Name, outcome)
		if apperrors.IsContextError(res.Err) {
			s.logger.Info("calculation interrupted", append(fields, logging.String("outcome", outcome))...)
		} else {
			s.logger.Error("calculation failed", res.Err, fields...)
		}
		s.writeError(w, r, code, res.Err.Error())
		return
	}
	s.metrics.ObserveCalculation(string(req.Function), res.Name, "ok")
	s.logger.Info("calculation completed", append(fields, logging.Uint64("steps", res.Steps))...)

	value := res.Result.String()
	telemetry.RecordSuccess(span, telemetry.AttrDigits.Int(len(value)))
	body := CalculationResponse{
		Function:   string(req.Function),
		Algorithm:  res.Name,
		N:          req.N,
		Result:     value,
		Digits:     len(value),
		DurationMs: float64(res.Duration) / float64(time.Millisecond),
		Steps:      res.Steps,
		MaxDepth:   res.MaxDepth,
		RequestID:  RequestID(r.Context()),
	}
	if req.Function == calc.Ackermann {
		m := req.M
		body.M = &m
	}
	writeJSON(w, http.StatusOK, body)
}

// statusFor maps a calculation error to a status code and a metrics
// outcome label.
func statusFor(err error) (int, string) {
	var capErr apperrors.CapacityError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	case errors.As(err, &capErr):
		return http.StatusUnprocessableEntity, "refused"
	case errors.Is(err, context.Canceled):
		// The client went away; the status is never read.
		return http.StatusServiceUnavailable, "canceled"
	default:
		return http.StatusInternalServerError, "error"
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	mem := procmetrics.NewMemoryCollector().Snapshot()
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:        "ok",
		Version:       s.version,
		UptimeSeconds: time.Since(s.startedAt).Seconds(),
		HeapAlloc:     mem.HeapAlloc,
		PeakRSS:       mem.PeakRSS,
		System:        sysmon.Sample(r.Context()),
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Debug("rejected metrics request", logging.String("method", r.Method))
		w.Header().Set("Allow", "GET")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	s.logger.Debug("request failed", logging.Int("status", code), logging.String("path", r.URL.Path))
	writeJSON(w, code, ErrorResponse{Error: msg, RequestID: RequestID(r.Context())})
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
