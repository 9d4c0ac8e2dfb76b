// Package orchestrator coordinates one quota-gated external validation:
// reserve quota, enrich the query with a best-effort local parse, call the
// provider under a hard timeout, and map the outcome onto the canonical
// address type and error taxonomy.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"addrgate/internal/address/metrics"
	"addrgate/internal/address/models"
	"addrgate/internal/address/parser"
	"addrgate/internal/address/provider"
	pkgerrors "addrgate/pkg/errors"
)

// QuotaGate reserves one unit of the daily provider budget.
type QuotaGate interface {
	Reserve(ctx context.Context, dailyLimit int) error
}

// Result is a successful validation outcome. Address is nil when the provider
// found no deliverable match; that is a valid answer, not an error.
type Result struct {
	Address *models.StandardizedAddress

	// Corrected is informational: the provider confidently matched but its
	// delivery line differs from what the client sent.
	Corrected bool
}

// Match reports whether the provider returned a deliverable address.
func (r *Result) Match() bool {
	return r != nil && r.Address != nil
}

// Orchestrator runs the provider leg of the validation pipeline.
type Orchestrator struct {
	gate       QuotaGate
	provider   provider.Provider
	dailyLimit int
	timeout    time.Duration
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

type Option func(*Orchestrator)

// WithTimeout overrides the default 5s provider deadline.
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.timeout = d
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Orchestrator) {
		o.metrics = m
	}
}

// New constructs an Orchestrator. Gate, provider, and logger are required and
// the daily limit must be positive.
func New(gate QuotaGate, p provider.Provider, dailyLimit int, logger *slog.Logger, opts ...Option) (*Orchestrator, error) {
	if gate == nil {
		return nil, fmt.Errorf("quota gate is required")
	}
	if p == nil {
		return nil, fmt.Errorf("provider is required")
	}
	if dailyLimit <= 0 {
		return nil, fmt.Errorf("daily limit must be positive, got %d", dailyLimit)
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	o := &Orchestrator{
		gate:       gate,
		provider:   p,
		dailyLimit: dailyLimit,
		timeout:    5 * time.Second,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

type lookupReply struct {
	candidates []provider.Candidate
	err        error
}

// Validate runs quota reservation, local parse, and the provider lookup for
// an already-sanitized address. Quota errors propagate unchanged; provider
// failures are mapped to provider_timeout / provider_error codes.
func (o *Orchestrator) Validate(ctx context.Context, sanitized string) (*Result, error) {
	if err := o.gate.Reserve(ctx, o.dailyLimit); err != nil {
		return nil, err
	}

	comps := parser.Parse(sanitized)
	query := provider.Query{
		Street:        comps.Street,
		City:          comps.City,
		State:         comps.State,
		Zip:           comps.Zip,
		MaxCandidates: 1,
	}

	lookupCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	// The lookup runs in its own goroutine so a provider that ignores
	// cancellation is abandoned at the deadline instead of holding the worker.
	replyCh := make(chan lookupReply, 1)
	start := time.Now()
	go func() {
		candidates, err := o.provider.Lookup(lookupCtx, query)
		replyCh <- lookupReply{candidates: candidates, err: err}
	}()

	var reply lookupReply
	select {
	case <-lookupCtx.Done():
		o.metrics.ObserveProviderLatency(time.Since(start))
		o.metrics.IncrementProviderError(string(provider.ErrorTimeout))
		o.logger.WarnContext(ctx, "provider lookup timed out", "timeout", o.timeout)
		return nil, pkgerrors.New(pkgerrors.CodeProviderTimeout, "address provider timed out")
	case reply = <-replyCh:
	}
	o.metrics.ObserveProviderLatency(time.Since(start))

	if reply.err != nil {
		category := provider.CategoryOf(reply.err)
		o.metrics.IncrementProviderError(string(category))
		o.logger.ErrorContext(ctx, "provider lookup failed", "category", category, "error", reply.err)

		if category == provider.ErrorTimeout {
			return nil, pkgerrors.Wrap(reply.err, pkgerrors.CodeProviderTimeout, "address provider timed out")
		}
		return nil, pkgerrors.Wrap(reply.err, pkgerrors.CodeProviderError, "address provider unavailable")
	}

	if len(reply.candidates) == 0 {
		o.logger.InfoContext(ctx, "provider returned no match")
		return &Result{}, nil
	}

	candidate := reply.candidates[0]
	result := &Result{
		Address: &models.StandardizedAddress{
			Street:  candidate.DeliveryLine,
			City:    candidate.City,
			State:   candidate.State,
			ZipCode: candidate.ZipCode(),
		},
		Corrected: candidate.Confident() && !strings.EqualFold(candidate.DeliveryLine, sanitized),
	}

	if result.Corrected {
		o.metrics.IncrementCorrected()
		o.logger.InfoContext(ctx, "provider corrected address", "delivery_line", candidate.DeliveryLine)
	}

	return result, nil
}
