package checker

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/khanhnv2901/dnstrust-cli/internal/trust"
)

// maxWhoisResponse caps how much of a WHOIS reply is read.
const maxWhoisResponse = 64 << 10

// WhoisChecker estimates domain age from the WHOIS registration record.
// Freshly registered domains are a common phishing signal.
type WhoisChecker struct {
	Timeout time.Duration
	Server  string // optional override, host:port; default <tld>.whois-servers.net:43

	now func() time.Time // test seam
}

// creationPrefixes are the registration-date labels seen across registry
// formats, lowercase.
var creationPrefixes = []string{
	"creation date:",
	"created:",
	"created on:",
	"registered on:",
	"registration time:",
	"domain registration date:",
}

// creationLayouts are tried in order against the extracted date value.
var creationLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-Jan-2006",
	"2006.01.02 15:04:05",
}

// Check queries WHOIS for the target's domain and scores its age.
func (c *WhoisChecker) Check(ctx context.Context, target string) CheckResult {
	result := CheckResult{
		Target:    target,
		CheckedAt: time.Now().UTC(),
	}

	host := ExtractHost(target)
	response, err := c.query(ctx, host)
	if err != nil {
		// WHOIS being unreachable is not a signal about the domain.
		result.Status = "ok"
		result.Findings = []trust.Finding{{
			Check:    "whois",
			Severity: trust.SeverityInfo,
			Delta:    0,
			Message:  "WHOIS lookup failed, registration age not scored",
			Evidence: err.Error(),
		}}
		return result
	}

	created, ok := parseCreated(response)
	result.Status = "ok"
	result.Findings = []trust.Finding{c.ageFinding(created, ok)}
	result.Score = result.Findings[0].Delta
	if ok {
		result.Notes = fmt.Sprintf("registered %s", created.Format("2006-01-02"))
	}
	return result
}

func (c *WhoisChecker) Name() string {
	return "check whois"
}

func (c *WhoisChecker) ageFinding(created time.Time, ok bool) trust.Finding {
	if !ok {
		return trust.Finding{
			Check:    "whois",
			Severity: trust.SeverityInfo,
			Delta:    0,
			Message:  "registration date not determined",
		}
	}

	nowFn := c.now
	if nowFn == nil {
		nowFn = time.Now
	}
	age := nowFn().Sub(created)
	evidence := fmt.Sprintf("registered %s", created.Format("2006-01-02"))

	switch {
	case age < 30*24*time.Hour:
		return trust.Finding{
			Check: "whois", Severity: trust.SeverityBad, Delta: -15,
			Message: "domain registered within the last month", Evidence: evidence,
		}
	case age < 365*24*time.Hour:
		return trust.Finding{
			Check: "whois", Severity: trust.SeverityBad, Delta: -5,
			Message: "domain registered within the last year", Evidence: evidence,
		}
	default:
		return trust.Finding{
			Check: "whois", Severity: trust.SeverityGood, Delta: 5,
			Message: "domain registered more than a year ago", Evidence: evidence,
		}
	}
}

func (c *WhoisChecker) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return 10 * time.Second
}

func (c *WhoisChecker) server(host string) string {
	if c.Server != "" {
		return c.Server
	}
	labels := strings.Split(host, ".")
	tld := labels[len(labels)-1]
	return tld + ".whois-servers.net:43"
}

// query performs one WHOIS exchange: connect, send the domain, read the
// reply. No registrar referral following, a single server answer is enough
// for the creation date on most TLDs.
func (c *WhoisChecker) query(ctx context.Context, host string) (string, error) {
	dialer := &net.Dialer{Timeout: c.timeout()}
	conn, err := dialer.DialContext(ctx, "tcp", c.server(host))
	if err != nil {
		return "", fmt.Errorf("whois dial: %w", err)
	}
	defer conn.Close()

	_ = conn.SetDeadline(time.Now().Add(c.timeout()))
	if _, err := fmt.Fprintf(conn, "%s\r\n", host); err != nil {
		return "", fmt.Errorf("whois send: %w", err)
	}
	data, err := io.ReadAll(io.LimitReader(conn, maxWhoisResponse))
	if err != nil {
		return "", fmt.Errorf("whois read: %w", err)
	}
	return string(data), nil
}

// parseCreated scans a WHOIS response for a registration date line.
func parseCreated(response string) (time.Time, bool) {
	scanner := bufio.NewScanner(strings.NewReader(response))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		lower := strings.ToLower(line)
		for _, prefix := range creationPrefixes {
			if !strings.HasPrefix(lower, prefix) {
				continue
			}
			value := strings.TrimSpace(line[len(prefix):])
			// Some registries append a zone, e.g. "2019-05-01 12:00:00 UTC".
			value = strings.TrimSuffix(value, " UTC")
			for _, layout := range creationLayouts {
				if t, err := time.Parse(layout, value); err == nil {
					return t, true
				}
			}
		}
	}
	return time.Time{}, false
}
