// Package service exposes the detection engine and subscription store over
// thin JSON HTTP handlers.
package service

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/avast/retry-go"
	"github.com/google/uuid"

	"github.com/breakwater-app/breakwater/internal/detect"
	"github.com/breakwater-app/breakwater/internal/store"
)

// SubscriptionService serves the subscription API: listing stored
// subscriptions, recomputing them from a posted transaction batch, and
// applying user edits.
type SubscriptionService struct {
	store    store.Store
	detector *detect.Detector
	logger   *slog.Logger
}

// NewSubscriptionService creates the service. A nil logger falls back to
// slog.Default().
func NewSubscriptionService(s store.Store, d *detect.Detector, logger *slog.Logger) *SubscriptionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SubscriptionService{store: s, detector: d, logger: logger}
}

// Register attaches all routes to the mux.
func (s *SubscriptionService) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/subscriptions", s.handleList)
	mux.HandleFunc("PATCH /api/subscriptions", s.handlePatch)
	mux.HandleFunc("POST /api/recurring/recompute", s.handleRecompute)
	mux.HandleFunc("GET /api/cashflow", s.handleCashflow)
	mux.HandleFunc("GET /api/infrastructure", s.handleInfrastructure)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// Middleware tags each request with an id and logs it on completion.
func (s *SubscriptionService) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			"id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

type listResponse struct {
	Subscriptions []*detect.Candidate `json:"subscriptions"`
	AnnualTotal   float64             `json:"annualTotal"`
}

func (s *SubscriptionService) handleList(w http.ResponseWriter, r *http.Request) {
	subs, err := s.store.List(r.Context())
	if err != nil {
		s.serverError(w, "listing subscriptions", err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{
		Subscriptions: nonNil(subs),
		AnnualTotal:   annualTotal(subs),
	})
}

type recomputeRequest struct {
	Transactions []detect.Transaction `json:"transactions"`
}

func (s *SubscriptionService) handleRecompute(w http.ResponseWriter, r *http.Request) {
	var req recomputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	candidates := s.detector.Detect(req.Transactions)
	s.logger.Info("recompute",
		"transactions", len(req.Transactions),
		"candidates", len(candidates),
	)

	var merged []*detect.Candidate
	err := retry.Do(
		func() error {
			var err error
			merged, err = s.store.UpsertMany(r.Context(), candidates)
			return err
		},
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.Context(r.Context()),
	)
	if err != nil {
		s.serverError(w, "upserting subscriptions", err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse{
		Subscriptions: nonNil(merged),
		AnnualTotal:   annualTotal(merged),
	})
}

type patchRequest struct {
	ID    string      `json:"id"`
	Patch store.Patch `json:"patch"`
}

func (s *SubscriptionService) handlePatch(w http.ResponseWriter, r *http.Request) {
	var req patchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.ID == "" {
		badRequest(w, "id is required")
		return
	}

	updated, err := s.store.Update(r.Context(), req.ID, req.Patch)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, store.ErrInvalidPatch):
			badRequest(w, err.Error())
		default:
			s.serverError(w, "updating subscription", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (s *SubscriptionService) handleCashflow(w http.ResponseWriter, r *http.Request) {
	months := 0
	if v := r.URL.Query().Get("months"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			badRequest(w, "months must be an integer")
			return
		}
		months = n
	}

	subs, err := s.store.List(r.Context())
	if err != nil {
		s.serverError(w, "listing subscriptions", err)
		return
	}
	writeJSON(w, http.StatusOK, BuildCashflow(subs, months, time.Now().UTC()))
}

func (s *SubscriptionService) handleInfrastructure(w http.ResponseWriter, r *http.Request) {
	subs, err := s.store.List(r.Context())
	if err != nil {
		s.serverError(w, "listing subscriptions", err)
		return
	}
	writeJSON(w, http.StatusOK, BuildClusters(subs))
}

func (s *SubscriptionService) serverError(w http.ResponseWriter, msg string, err error) {
	s.logger.Error(msg, "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func annualTotal(subs []*detect.Candidate) float64 {
	var total float64
	for _, sub := range subs {
		if sub.Status == detect.StatusConfirmed {
			total += sub.AnnualCost
		}
	}
	return round2(total)
}

func nonNil(subs []*detect.Candidate) []*detect.Candidate {
	if subs == nil {
		return []*detect.Candidate{}
	}
	return subs
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusBadRequest, msg)
}
