// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

package ogc

import (
	"strings"
	"testing"

	"github.com/tomtom215/cartoproxy/internal/models"
)

func TestServiceURL(t *testing.T) {
	got := ServiceURL("http://portal/ows", "demo", "nature")
	want := "http://portal/ows?repository=demo&project=nature"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestServiceURLEscapesKeys(t *testing.T) {
	got := ServiceURL("http://portal/ows", "a b", "c&d")
	if !strings.Contains(got, "repository=a+b") || !strings.Contains(got, "project=c%26d") {
		t.Errorf("keys not escaped: %q", got)
	}
}

func TestRewriteHrefs(t *testing.T) {
	fullURL := "http://portal/ows?repository=demo&project=nature"
	resp := models.OGCResponse{
		StatusCode: 200,
		MimeType:   "text/xml",
		Body: `<OnlineResource xlink:href="http://internal:8380/cgi-bin/qgis?map=/srv/x.qgs&amp;SERVICE=WMS"/>` +
			`<Get xlink:href=""/>`,
	}

	out := RewriteHrefs(resp, fullURL)

	want := `xlink:href="http://portal/ows?repository=demo&amp;project=nature&amp;&amp;"`
	if count := strings.Count(out.Body, want); count != 2 {
		t.Errorf("rewritten href appears %d times, want 2:\n%s", count, out.Body)
	}
	if strings.Contains(out.Body, "internal:8380") {
		t.Error("internal engine URL leaked")
	}
	if out.StatusCode != 200 || out.MimeType != "text/xml" {
		t.Errorf("status/mime changed: %+v", out)
	}
}

func TestRewriteHrefsTrailingArtifact(t *testing.T) {
	out := RewriteHrefs(models.OGCResponse{
		StatusCode: 200,
		MimeType:   "application/xml",
		Body:       `xlink:href="x"`,
	}, "http://p/ows?repository=r&project=p")

	if !strings.HasSuffix(out.Body, `&amp;&amp;"`) {
		t.Errorf("missing literal trailing &amp;&amp;: %q", out.Body)
	}
}

func TestRewriteHrefsBinaryPassthrough(t *testing.T) {
	resp := models.OGCResponse{
		StatusCode: 200,
		MimeType:   "image/png",
		Body:       `fake-png-with xlink:href="x" inside`,
	}
	out := RewriteHrefs(resp, "http://p/ows")
	if out.Body != resp.Body {
		t.Error("binary body must pass through untouched")
	}
}

func TestRewriteHrefsNoOccurrences(t *testing.T) {
	resp := models.OGCResponse{StatusCode: 200, MimeType: "text/xml", Body: "<Capabilities/>"}
	out := RewriteHrefs(resp, "http://p/ows")
	if out.Body != resp.Body {
		t.Error("body without hrefs must be unchanged")
	}
}

func TestRewriteMediaURLs(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		want     string
	}{
		{
			name:     "src with media path",
			fragment: `<img src="media/photo.jpg">`,
			want:     `<img src="getMedia?path=media/photo.jpg">`,
		},
		{
			name:     "href with parent hop",
			fragment: `<a href="../media/doc.pdf">doc</a>`,
			want:     `<a href="getMedia?path=../media/doc.pdf">doc</a>`,
		},
		{
			name:     "single quotes preserved",
			fragment: `<img src='media/x.png'>`,
			want:     `<img src='getMedia?path=media/x.png'>`,
		},
		{
			name:     "multiple references",
			fragment: `<img src="media/a.png"><a href="media/b.pdf">b</a>`,
			want:     `<img src="getMedia?path=media/a.png"><a href="getMedia?path=media/b.pdf">b</a>`,
		},
		{
			name:     "two parent hops not recognized",
			fragment: `<img src="../../media/x.png">`,
			want:     `<img src="../../media/x.png">`,
		},
		{
			name:     "short extension not recognized",
			fragment: `<img src="media/file.z">`,
			want:     `<img src="media/file.z">`,
		},
		{
			name:     "bare media directory not recognized",
			fragment: `<a href="media/">dir</a>`,
			want:     `<a href="media/">dir</a>`,
		},
		{
			name:     "non-media path untouched",
			fragment: `<img src="assets/logo.png">`,
			want:     `<img src="assets/logo.png">`,
		},
		{
			name:     "no references",
			fragment: `<p>plain text</p>`,
			want:     `<p>plain text</p>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RewriteMediaURLs(tt.fragment, ""); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRewriteMediaURLsCustomEndpoint(t *testing.T) {
	got := RewriteMediaURLs(`<img src="media/x.png">`, "fetchMedia")
	if got != `<img src="fetchMedia?path=media/x.png">` {
		t.Errorf("got %q", got)
	}
}
