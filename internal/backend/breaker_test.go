// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

package backend

import (
	"context"
	"errors"
	"testing"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/cartoproxy/internal/models"
	"github.com/tomtom215/cartoproxy/internal/ogc"
)

// stubClient is a MapClient returning a canned response or error.
type stubClient struct {
	resp  models.OGCResponse
	err   error
	calls int
}

func (s *stubClient) Do(ctx context.Context, params ogc.Params) (models.OGCResponse, error) {
	s.calls++
	return s.resp, s.err
}

func TestBreakerClientPassesThrough(t *testing.T) {
	stub := &stubClient{resp: models.OGCResponse{StatusCode: 200, MimeType: "image/png", Body: "ok"}}
	client := NewBreakerClient(stub, "web")

	resp, err := client.Do(context.Background(), ogc.NewParams(nil))
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if resp.StatusCode != 200 || resp.Body != "ok" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if stub.calls != 1 {
		t.Errorf("calls = %d, want 1", stub.calls)
	}
}

func TestBreakerClientPropagatesErrors(t *testing.T) {
	stub := &stubClient{err: errors.New("connection refused")}
	client := NewBreakerClient(stub, "gis")

	_, err := client.Do(context.Background(), ogc.NewParams(nil))
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestBreakerClientOpensAfterFailures(t *testing.T) {
	stub := &stubClient{err: errors.New("backend down")}
	client := NewBreakerClient(stub, "web-failing")
	ctx := context.Background()

	// 10 failures at 100% failure rate trips the breaker.
	for i := 0; i < 10; i++ {
		client.Do(ctx, ogc.NewParams(nil))
	}

	callsBefore := stub.calls
	_, err := client.Do(ctx, ogc.NewParams(nil))
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("expected ErrOpenState, got %v", err)
	}
	if stub.calls != callsBefore {
		t.Error("open breaker must not reach the wrapped client")
	}
}

func TestBreakerClientStaysClosedUnderThreshold(t *testing.T) {
	stub := &stubClient{err: errors.New("flaky")}
	client := NewBreakerClient(stub, "web-flaky")
	ctx := context.Background()

	// Fewer than 10 requests never trip regardless of failure rate.
	for i := 0; i < 9; i++ {
		_, err := client.Do(ctx, ogc.NewParams(nil))
		if errors.Is(err, gobreaker.ErrOpenState) {
			t.Fatalf("breaker opened after %d requests", i+1)
		}
	}
}
