// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

package ogc

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/cartoproxy/internal/cache"
	"github.com/tomtom215/cartoproxy/internal/config"
	"github.com/tomtom215/cartoproxy/internal/models"
)

// fakeClient is a MapClient counting calls and returning a canned
// response or error.
type fakeClient struct {
	resp  models.OGCResponse
	err   error
	calls int
}

func (f *fakeClient) Do(ctx context.Context, params Params) (models.OGCResponse, error) {
	f.calls++
	return f.resp, f.err
}

func testProject() *models.Project {
	return &models.Project{
		Key:           "nature",
		RepositoryKey: "demo",
		MapPath:       "/srv/projects/nature.qgs",
		Layers:        []models.LayerConfig{{Name: "parks", Cached: true}},
	}
}

func newTestMediator(web, gis MapClient, store cache.Store, services *config.ServicesConfig) *Mediator {
	if services == nil {
		services = &config.ServicesConfig{}
	}
	return NewMediator(MediatorConfig{
		Services: services,
		Web:      web,
		GIS:      gis,
		Store:    store,
		CacheTTL: time.Minute,
		BaseURL:  "http://portal/ows",
	})
}

func TestMediatorRoutesWebClient(t *testing.T) {
	web := &fakeClient{resp: models.OGCResponse{StatusCode: 200, MimeType: "image/png", Body: "tile"}}
	gis := &fakeClient{}
	m := newTestMediator(web, gis, nil, nil)

	resp, err := m.Handle(context.Background(), testProject(),
		Params{"request": "GetMap", "height": "256", "layers": "parks"}, models.Identity{})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if resp.Body != "tile" {
		t.Errorf("body = %q", resp.Body)
	}
	if web.calls != 1 || gis.calls != 0 {
		t.Errorf("calls: web=%d gis=%d", web.calls, gis.calls)
	}
}

func TestMediatorRoutesGISForTallRequests(t *testing.T) {
	web := &fakeClient{}
	gis := &fakeClient{resp: models.OGCResponse{StatusCode: 200, MimeType: "image/png", Body: "map"}}
	m := newTestMediator(web, gis, nil, nil)

	_, err := m.Handle(context.Background(), testProject(),
		Params{"request": "GetMap", "height": "351", "layers": "parks"}, models.Identity{})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if web.calls != 0 || gis.calls != 1 {
		t.Errorf("calls: web=%d gis=%d", web.calls, gis.calls)
	}
}

func TestMediatorSizeRejection(t *testing.T) {
	web := &fakeClient{}
	m := newTestMediator(web, web, nil, &config.ServicesConfig{WMSMaxWidth: "25", WMSMaxHeight: "25"})

	resp, err := m.Handle(context.Background(), testProject(),
		Params{"request": "GetMap", "width": "50", "height": "50"}, models.Identity{})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", resp.StatusCode)
	}
	if resp.Body != "The requested map size is too large" {
		t.Errorf("body = %q", resp.Body)
	}
	if web.calls != 0 {
		t.Error("rejected request must not reach the backend")
	}
}

func TestMediatorNoHeightBoundSkipsEnforcement(t *testing.T) {
	// A configured maxWidth alone imposes nothing: the gate only
	// engages when an effective maxHeight exists.
	web := &fakeClient{resp: models.OGCResponse{StatusCode: 200, Body: "ok"}}
	m := newTestMediator(web, web, nil, &config.ServicesConfig{WMSMaxWidth: "55"})

	resp, err := m.Handle(context.Background(), testProject(),
		Params{"request": "GetMap", "width": "5000", "height": "200"}, models.Identity{})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if web.calls != 1 {
		t.Error("request should have reached the backend")
	}
}

func TestMediatorSizeGateOnlyForGetMap(t *testing.T) {
	web := &fakeClient{resp: models.OGCResponse{StatusCode: 200, MimeType: "text/xml", Body: "<x/>"}}
	m := newTestMediator(web, web, nil, &config.ServicesConfig{WMSMaxHeight: "25"})

	resp, err := m.Handle(context.Background(), testProject(),
		Params{"request": "GetCapabilities", "height": "5000"}, models.Identity{})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestMediatorCachesEligibleResponses(t *testing.T) {
	store := cache.NewMemoryStore(time.Minute)
	defer store.Close()

	web := &fakeClient{resp: models.OGCResponse{StatusCode: 200, MimeType: "image/png", Body: "tile"}}
	m := newTestMediator(web, &fakeClient{}, store, nil)

	params := Params{"request": "GetMap", "height": "256", "layers": "parks"}
	ctx := context.Background()

	if _, err := m.Handle(ctx, testProject(), params, models.Identity{}); err != nil {
		t.Fatalf("first Handle failed: %v", err)
	}
	resp, err := m.Handle(ctx, testProject(), params, models.Identity{})
	if err != nil {
		t.Fatalf("second Handle failed: %v", err)
	}

	if web.calls != 1 {
		t.Errorf("backend called %d times, want 1 (second call cached)", web.calls)
	}
	if resp.Body != "tile" || resp.MimeType != "image/png" {
		t.Errorf("cached response = %+v", resp)
	}
}

func TestMediatorCacheKeyVariesByIdentity(t *testing.T) {
	store := cache.NewMemoryStore(time.Minute)
	defer store.Close()

	web := &fakeClient{resp: models.OGCResponse{StatusCode: 200, MimeType: "image/png", Body: "tile"}}
	m := newTestMediator(web, &fakeClient{}, store, nil)

	params := Params{"request": "GetMap", "height": "256", "layers": "parks"}
	ctx := context.Background()

	m.Handle(ctx, testProject(), params, models.Identity{UserName: "alice"})
	m.Handle(ctx, testProject(), params, models.Identity{UserName: "bob"})

	if web.calls != 2 {
		t.Errorf("backend called %d times, want 2 (different identities must not share entries)", web.calls)
	}
}

func TestMediatorSkipsCacheForUncachedLayer(t *testing.T) {
	store := cache.NewMemoryStore(time.Minute)
	defer store.Close()

	project := testProject()
	project.Layers = []models.LayerConfig{{Name: "parks", Cached: false}}

	web := &fakeClient{resp: models.OGCResponse{StatusCode: 200, Body: "tile"}}
	m := newTestMediator(web, &fakeClient{}, store, nil)

	params := Params{"request": "GetMap", "height": "256", "layers": "parks"}
	ctx := context.Background()
	m.Handle(ctx, project, params, models.Identity{})
	m.Handle(ctx, project, params, models.Identity{})

	if web.calls != 2 {
		t.Errorf("backend called %d times, want 2", web.calls)
	}
}

func TestMediatorDoesNotCacheErrors(t *testing.T) {
	store := cache.NewMemoryStore(time.Minute)
	defer store.Close()

	web := &fakeClient{resp: models.OGCResponse{StatusCode: 500, MimeType: "text/xml", Body: "<err/>"}}
	m := newTestMediator(web, &fakeClient{}, store, nil)

	params := Params{"request": "GetMap", "height": "256", "layers": "parks"}
	ctx := context.Background()
	m.Handle(ctx, testProject(), params, models.Identity{})
	m.Handle(ctx, testProject(), params, models.Identity{})

	if web.calls != 2 {
		t.Errorf("backend called %d times, want 2 (non-200 never cached)", web.calls)
	}
}

func TestMediatorRewritesCapabilities(t *testing.T) {
	web := &fakeClient{resp: models.OGCResponse{
		StatusCode: 200,
		MimeType:   "text/xml",
		Body:       `<Get xlink:href="http://internal:8380/qgis"/>`,
	}}
	m := newTestMediator(web, web, nil, nil)

	resp, err := m.Handle(context.Background(), testProject(),
		Params{"request": "GetCapabilities"}, models.Identity{})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !strings.Contains(resp.Body, `xlink:href="http://portal/ows?repository=demo&amp;project=nature&amp;&amp;"`) {
		t.Errorf("href not rewritten: %q", resp.Body)
	}
}

func TestMediatorRewritesFeatureInfoMedia(t *testing.T) {
	web := &fakeClient{resp: models.OGCResponse{
		StatusCode: 200,
		MimeType:   "text/html",
		Body:       `<img src="media/photo.jpg">`,
	}}
	m := newTestMediator(web, web, nil, nil)

	resp, err := m.Handle(context.Background(), testProject(),
		Params{"request": "GetFeatureInfo"}, models.Identity{})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !strings.Contains(resp.Body, `src="getMedia?path=media/photo.jpg"`) {
		t.Errorf("media not rewritten: %q", resp.Body)
	}
}

func TestMediatorMediaRewriteOnlyForFeatureInfo(t *testing.T) {
	web := &fakeClient{resp: models.OGCResponse{
		StatusCode: 200,
		MimeType:   "text/html",
		Body:       `<img src="media/photo.jpg">`,
	}}
	m := newTestMediator(web, web, nil, nil)

	resp, _ := m.Handle(context.Background(), testProject(),
		Params{"request": "GetCapabilities"}, models.Identity{})
	if strings.Contains(resp.Body, "getMedia") {
		t.Errorf("media rewritten outside feature info: %q", resp.Body)
	}
}

func TestMediatorBackendError(t *testing.T) {
	web := &fakeClient{err: errors.New("connection refused")}
	m := newTestMediator(web, web, nil, nil)

	_, err := m.Handle(context.Background(), testProject(),
		Params{"request": "GetMap"}, models.Identity{})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestFirstLayer(t *testing.T) {
	tests := []struct {
		layers string
		want   string
	}{
		{"parks", "parks"},
		{"parks,roads", "parks"},
		{" parks , roads", "parks"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := firstLayer(Params{"layers": tt.layers}); got != tt.want {
			t.Errorf("firstLayer(%q) = %q, want %q", tt.layers, got, tt.want)
		}
	}
}
