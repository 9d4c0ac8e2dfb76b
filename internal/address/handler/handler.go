// Package handler wires the validation pipeline to HTTP. It owns the
// request state machine: sanitize, cache check, orchestrated provider call,
// best-effort cache store.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"addrgate/internal/address/metrics"
	"addrgate/internal/address/models"
	"addrgate/internal/address/normalizer"
	"addrgate/internal/address/orchestrator"
	pkgerrors "addrgate/pkg/errors"
	"addrgate/pkg/httputil"
	"addrgate/pkg/requestcontext"
)

// Validator runs the quota-gated provider leg for a cache miss.
type Validator interface {
	Validate(ctx context.Context, sanitized string) (*orchestrator.Result, error)
}

// AddressCache is the fail-open cache in front of the validator.
type AddressCache interface {
	Get(ctx context.Context, addressText string) (*models.StandardizedAddress, bool)
	Set(ctx context.Context, addressText string, addr *models.StandardizedAddress)
}

// Handler serves the address validation endpoints.
type Handler struct {
	cache     AddressCache
	validator Validator
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// New constructs the handler with its pipeline dependencies.
func New(cache AddressCache, validator Validator, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		cache:     cache,
		validator: validator,
		logger:    logger,
		metrics:   m,
	}
}

// Register mounts the address endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/validate-address", h.HandleValidate)
}

// HandleValidate handles POST /validate-address.
//
// Per-request state machine: invalid input and cache hits terminate early as
// successful responses; quota and provider failures map to coded errors; a
// provider no-match is a successful valid=false response.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	var req models.ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AddressRaw == "" {
		httputil.WriteError(w, pkgerrors.New(pkgerrors.CodeBadRequest, "address_raw is required"))
		return
	}

	result := normalizer.Process(req.AddressRaw)
	if !result.Valid {
		h.logger.InfoContext(ctx, "input rejected",
			"request_id", requestID,
			"reason", result.ErrorMessage,
		)
		h.metrics.IncrementOutcome("invalid_input")
		httputil.WriteJSON(w, http.StatusOK, models.ValidateResponse{
			AddressRaw: req.AddressRaw,
			Valid:      false,
			Message:    result.ErrorMessage,
		})
		return
	}

	if addr, ok := h.cache.Get(ctx, result.SanitizedInput); ok {
		h.metrics.IncrementOutcome("cache_hit")
		httputil.WriteJSON(w, http.StatusOK, models.ValidateResponse{
			AddressRaw:   req.AddressRaw,
			Valid:        true,
			Standardized: addr,
		})
		return
	}

	outcome, err := h.validator.Validate(ctx, result.SanitizedInput)
	if err != nil {
		code := pkgerrors.CodeOf(err)
		h.logger.ErrorContext(ctx, "validation failed",
			"request_id", requestID,
			"code", code,
			"error", err,
		)
		h.metrics.IncrementOutcome(string(code))
		httputil.WriteError(w, err)
		return
	}

	if !outcome.Match() {
		h.metrics.IncrementOutcome("no_match")
		httputil.WriteJSON(w, http.StatusOK, models.ValidateResponse{
			AddressRaw: req.AddressRaw,
			Valid:      false,
		})
		return
	}

	// Store the confirmed address; a cache failure never alters the outcome.
	h.cache.Set(ctx, result.SanitizedInput, outcome.Address)

	h.logger.InfoContext(ctx, "address validated",
		"request_id", requestID,
		"corrected", outcome.Corrected,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	h.metrics.IncrementOutcome("match")

	httputil.WriteJSON(w, http.StatusOK, models.ValidateResponse{
		AddressRaw:   req.AddressRaw,
		Valid:        true,
		Standardized: outcome.Address,
	})
}
