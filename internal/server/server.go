// Package server exposes the amortization engine over an HTTP JSON API.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hypotools/amortize/internal/cache"
	"github.com/hypotools/amortize/internal/config"
	"github.com/hypotools/amortize/pkg/amortization"
	"github.com/hypotools/amortize/pkg/datetime"
	"github.com/hypotools/amortize/pkg/mathutil"
	"go.uber.org/zap"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	store         cache.Cache
	version       string
}

// NewHandler constructs the HTTP handler that serves the amortization API.
// A nil store disables result caching.
func NewHandler(logger *zap.Logger, maxUploadSize int64, store cache.Cache, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, store: store, version: trimmedVersion}

	mux := http.NewServeMux()

	// Schedule API: YAML portfolio upload, JSON schedules back
	mux.HandleFunc("/api/schedule", h.handleSchedule)

	// Point-in-time balance projection
	mux.HandleFunc("/api/projection", h.handleProjection)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type scheduleResponse struct {
	Loans    []loanResult `json:"loans"`
	Warnings []string     `json:"warnings,omitempty"`
	Duration string       `json:"duration"`
}

type loanResult struct {
	Name           string     `json:"name"`
	StartDate      string     `json:"startDate,omitempty"`
	Payments       int        `json:"payments"`
	TotalInterest  float64    `json:"totalInterest"`
	TotalPrincipal float64    `json:"totalPrincipal"`
	Cached         bool       `json:"cached,omitempty"`
	Entries        []entryRow `json:"entries"`
}

type entryRow struct {
	PaymentNumber       int     `json:"paymentNumber"`
	Date                string  `json:"date,omitempty"`
	StartingBalance     float64 `json:"startingBalance"`
	EndingBalance       float64 `json:"endingBalance"`
	InterestPaid        float64 `json:"interestPaid"`
	PrincipalPaid       float64 `json:"principalPaid"`
	ExtraPaymentApplied float64 `json:"extraPaymentApplied"`
	InterestPaidTotal   float64 `json:"interestPaidTotal"`
	PrincipalPaidTotal  float64 `json:"principalPaidTotal"`
}

type projectionRequest struct {
	Loan          config.Loan `json:"loan"`
	MonthsElapsed int         `json:"monthsElapsed"`
}

type projectionResponse struct {
	Name              string  `json:"name,omitempty"`
	CurrentBalance    float64 `json:"currentBalance"`
	MonthsElapsed     int     `json:"monthsElapsed"`
	RemainingPayments int     `json:"remainingPayments"`
	RemainingInterest float64 `json:"remainingInterest"`
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), "server.handleSchedule")
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to read upload: %v", err), "server.handleSchedule")
		return
	}

	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(body))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleSchedule")
		return
	}
	if len(cfg.Loans) == 0 {
		h.respondError(w, http.StatusBadRequest, "configuration contains no loans", "server.handleSchedule")
		return
	}

	warnings := cfg.ValidateConfiguration()

	results := make([]loanResult, 0, len(cfg.Loans))
	for i := range cfg.Loans {
		result, err := h.loanSchedule(r.Context(), &cfg.Loans[i])
		if err != nil {
			h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleSchedule")
			return
		}
		results = append(results, result)
	}

	elapsed := time.Since(start)
	h.logger.Info("schedules computed",
		zap.String("op", "server.handleSchedule"),
		zap.Int("loans", len(results)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, scheduleResponse{
		Loans:    results,
		Warnings: warnings,
		Duration: elapsed.String(),
	})
}

// loanSchedule computes one loan's schedule, consulting the cache first. The
// cached value excludes the name and start date since those do not influence
// the numbers.
func (h *handler) loanSchedule(ctx context.Context, l *config.Loan) (loanResult, error) {
	key := cache.Key(*l)

	if h.store != nil {
		if cached, ok := h.store.Get(ctx, key); ok {
			var result loanResult
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				result.Name = l.Name
				result.StartDate = l.StartDate
				result.Cached = true
				h.labelEntries(&result)
				return result, nil
			}
			h.logger.Warn("discarding undecodable cache entry",
				zap.String("op", "server.loanSchedule"),
				zap.String("key", key),
			)
		}
	}

	if err := l.GetSchedule(h.logger); err != nil {
		return loanResult{}, err
	}

	result := loanResult{
		Name:           l.Name,
		StartDate:      l.StartDate,
		Payments:       l.Schedule.Payments(),
		TotalInterest:  mathutil.Round(l.Schedule.TotalInterest.InexactFloat64()),
		TotalPrincipal: mathutil.Round(l.Schedule.TotalPrincipal.InexactFloat64()),
		Entries:        make([]entryRow, 0, l.Schedule.Payments()),
	}
	for _, entry := range l.Schedule.Entries {
		result.Entries = append(result.Entries, entryRow{
			PaymentNumber:       entry.PaymentNumber,
			StartingBalance:     mathutil.Round(entry.StartingBalance.InexactFloat64()),
			EndingBalance:       mathutil.Round(entry.EndingBalance.InexactFloat64()),
			InterestPaid:        mathutil.Round(entry.InterestPaid.InexactFloat64()),
			PrincipalPaid:       mathutil.Round(entry.PrincipalPaid.InexactFloat64()),
			ExtraPaymentApplied: mathutil.Round(entry.ExtraPaymentApplied.InexactFloat64()),
			InterestPaidTotal:   mathutil.Round(entry.InterestPaidTotal.InexactFloat64()),
			PrincipalPaidTotal:  mathutil.Round(entry.PrincipalPaidTotal.InexactFloat64()),
		})
	}

	if h.store != nil {
		cacheable := result
		cacheable.Name = ""
		cacheable.StartDate = ""
		if encoded, err := json.Marshal(cacheable); err == nil {
			if err := h.store.Set(ctx, key, string(encoded)); err != nil {
				h.logger.Warn("failed to cache schedule",
					zap.String("op", "server.loanSchedule"),
					zap.String("key", key),
					zap.Error(err),
				)
			}
		}
	}

	h.labelEntries(&result)
	return result, nil
}

// labelEntries fills the date column from the loan's start date.
func (h *handler) labelEntries(result *loanResult) {
	if result.StartDate == "" {
		return
	}
	for i := range result.Entries {
		date, err := datetime.PaymentDate(result.StartDate, result.Entries[i].PaymentNumber)
		if err != nil {
			return
		}
		result.Entries[i].Date = date
	}
}

func (h *handler) handleProjection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var req projectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), "server.handleProjection")
		return
	}

	loanConf, err := req.Loan.BuildConfiguration()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleProjection")
		return
	}
	plan, err := req.Loan.BuildPlan()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleProjection")
		return
	}

	snapshot, err := amortization.NewEngine(h.logger).ProjectBalance(loanConf, plan, req.MonthsElapsed)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleProjection")
		return
	}

	h.writeJSON(w, http.StatusOK, projectionResponse{
		Name:              req.Loan.Name,
		CurrentBalance:    mathutil.Round(snapshot.CurrentBalance.InexactFloat64()),
		MonthsElapsed:     snapshot.MonthsElapsed,
		RemainingPayments: snapshot.RemainingPayments,
		RemainingInterest: mathutil.Round(snapshot.RemainingInterest.InexactFloat64()),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
