package checker

import (
	"testing"
	"time"
)

func TestParseCreated(t *testing.T) {
	testCases := []struct {
		name     string
		response string
		want     string
		ok       bool
	}{
		{
			name:     "ICANN style",
			response: "Domain Name: EXAMPLE.COM\nCreation Date: 1995-08-14T04:00:00Z\nRegistry Expiry Date: 2026-08-13T04:00:00Z\n",
			want:     "1995-08-14",
			ok:       true,
		},
		{
			name:     "Date only",
			response: "created: 2019-05-01\n",
			want:     "2019-05-01",
			ok:       true,
		},
		{
			name:     "Nominet style",
			response: "    Registered on: 02-Jan-2006\n",
			want:     "2006-01-02",
			ok:       true,
		},
		{
			name:     "Datetime with UTC suffix",
			response: "Registration Time: 2020-03-15 10:30:00 UTC\n",
			want:     "2020-03-15",
			ok:       true,
		},
		{
			name:     "No date line",
			response: "No match for domain \"NOPE.EXAMPLE\".\n",
			ok:       false,
		},
		{
			name:     "Unparsable value",
			response: "Creation Date: soonish\n",
			ok:       false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := parseCreated(tc.response)
			if ok != tc.ok {
				t.Fatalf("expected ok=%v, got %v", tc.ok, ok)
			}
			if ok && got.Format("2006-01-02") != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got.Format("2006-01-02"))
			}
		})
	}
}

func TestWhoisChecker_AgeFinding(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	c := &WhoisChecker{now: func() time.Time { return now }}

	testCases := []struct {
		name      string
		created   time.Time
		ok        bool
		wantDelta int
	}{
		{
			name:      "Registered last week",
			created:   now.Add(-7 * 24 * time.Hour),
			ok:        true,
			wantDelta: -15,
		},
		{
			name:      "Registered six months ago",
			created:   now.Add(-180 * 24 * time.Hour),
			ok:        true,
			wantDelta: -5,
		},
		{
			name:      "Registered years ago",
			created:   time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC),
			ok:        true,
			wantDelta: 5,
		},
		{
			name:      "Unknown date",
			ok:        false,
			wantDelta: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := c.ageFinding(tc.created, tc.ok)
			if f.Delta != tc.wantDelta {
				t.Errorf("expected delta %d, got %d", tc.wantDelta, f.Delta)
			}
		})
	}
}

func TestWhoisChecker_Server(t *testing.T) {
	c := &WhoisChecker{}
	if got := c.server("example.com"); got != "com.whois-servers.net:43" {
		t.Errorf("expected com.whois-servers.net:43, got %q", got)
	}
	if got := c.server("example.co.uk"); got != "uk.whois-servers.net:43" {
		t.Errorf("expected uk.whois-servers.net:43, got %q", got)
	}

	c.Server = "whois.example.net:4343"
	if got := c.server("example.com"); got != "whois.example.net:4343" {
		t.Errorf("expected override to win, got %q", got)
	}
}

func TestWhoisChecker_Name(t *testing.T) {
	c := &WhoisChecker{}
	if c.Name() != "check whois" {
		t.Errorf("expected name 'check whois', got %q", c.Name())
	}
}
