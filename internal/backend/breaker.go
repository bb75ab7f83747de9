// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

package backend

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/cartoproxy/internal/logging"
	"github.com/tomtom215/cartoproxy/internal/metrics"
	"github.com/tomtom215/cartoproxy/internal/models"
	"github.com/tomtom215/cartoproxy/internal/ogc"
)

// BreakerClient wraps a MapClient with circuit breaker protection so a
// struggling map engine sheds load instead of piling up requests.
//
// The breaker uses real time (via sony/gobreaker) for its interval and
// timeout calculations. The timing governs recovery, not correctness;
// unit tests should exercise the wrapped client directly.
type BreakerClient struct {
	client ogc.MapClient
	cb     *gobreaker.CircuitBreaker[models.OGCResponse]
	name   string
}

// NewBreakerClient wraps client with a circuit breaker named after the
// backend kind. Breaker tuning:
//   - max 3 concurrent probes in half-open state
//   - 1 minute measurement window in closed state
//   - 30 second timeout before an open breaker probes again
//   - opens at >= 60% failure rate with at least 10 requests
func NewBreakerClient(client ogc.MapClient, kind string) *BreakerClient {
	name := "backend-" + kind

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[models.OGCResponse](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().
					Str("breaker", name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()

			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &BreakerClient{client: client, cb: cb, name: name}
}

// Do forwards the request through the breaker. A rejected request (open
// circuit, half-open saturation) returns gobreaker's sentinel errors.
func (b *BreakerClient) Do(ctx context.Context, params ogc.Params) (models.OGCResponse, error) {
	resp, err := b.cb.Execute(func() (models.OGCResponse, error) {
		return b.client.Do(ctx, params)
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			logging.Warn().Str("breaker", b.name).Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
			counts := b.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(counts.ConsecutiveFailures))
		}
		return models.OGCResponse{}, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)
	return resp, nil
}

// stateToFloat converts breaker state to its metric encoding.
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts breaker state to a log label.
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
