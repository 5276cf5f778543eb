package checker

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/khanhnv2901/dnstrust-cli/internal/trust"
)

func trustTestResolver() *trust.MockResolver {
	return &trust.MockResolver{
		TXT: map[string][]string{
			"example.com":        {"v=spf1 -all"},
			"_dmarc.example.com": {"v=DMARC1; p=none;"},
		},
		NS:    map[string][]string{"example.com": {"ns1.cloudflare.com"}},
		CNAME: map[string]string{"www.example.com": "example.com."},
		A:     map[string][]string{"example.com": {"192.0.2.10"}},
		MX:    map[string][]*net.MX{"example.com": {{Host: "mail.example.com", Pref: 10}}},
		PTR:   map[string][]string{"192.0.2.10": {"ec2-192-0-2-10.compute-1.amazonaws.com"}},
	}
}

func TestTrustChecker_Name(t *testing.T) {
	c := &TrustChecker{Timeout: 5 * time.Second}
	if c.Name() != "check trust" {
		t.Errorf("expected name 'check trust', got %q", c.Name())
	}
}

func TestTrustChecker_Check(t *testing.T) {
	c := &TrustChecker{Resolver: trustTestResolver()}

	result := c.Check(context.Background(), "https://example.com/login")
	if result.Status != "ok" {
		t.Fatalf("expected ok, got %q (%s)", result.Status, result.Error)
	}
	if result.Score != 45 {
		t.Errorf("expected score 45, got %d", result.Score)
	}
	if len(result.Findings) != 6 {
		t.Errorf("expected 6 findings, got %d", len(result.Findings))
	}

	sum := 0
	for _, f := range result.Findings {
		sum += f.Delta
	}
	if sum != result.Score {
		t.Errorf("score %d does not match finding sum %d", result.Score, sum)
	}
}

func TestTrustChecker_InvalidTarget(t *testing.T) {
	c := &TrustChecker{Resolver: &trust.MockResolver{}}

	result := c.Check(context.Background(), "   ")
	if result.Status != "error" {
		t.Fatalf("expected error status, got %q", result.Status)
	}
	if !strings.Contains(result.Error, "trust evaluation failed") {
		t.Errorf("unexpected error text: %q", result.Error)
	}
}
