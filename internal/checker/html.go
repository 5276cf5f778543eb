package checker

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/khanhnv2901/dnstrust-cli/internal/trust"
)

// maxHTMLBody caps how much of a page the HTML checker reads.
const maxHTMLBody = 2 << 20

// defaultExternalScriptLimit is the external-script count at and above which
// the page is flagged.
const defaultExternalScriptLimit = 10

// HTMLChecker performs a single-pass static scan of a target's landing page:
// forms, scripts, meta refresh and iframes. No JavaScript is executed.
type HTMLChecker struct {
	Timeout             time.Duration
	ExternalScriptLimit int          // defaultExternalScriptLimit when zero
	Client              *http.Client // optional override, for tests
}

// htmlSignals are the raw counts one pass over the markup produces.
type htmlSignals struct {
	forms           int
	passwordInputs  int
	offSiteForms    int
	scripts         int
	externalScripts int
	metaRefresh     bool
	iframes         int
}

// Check fetches the target page and scores its markup.
func (c *HTMLChecker) Check(ctx context.Context, target string) CheckResult {
	result := CheckResult{
		Target:    target,
		CheckedAt: time.Now().UTC(),
	}

	host, fullURL := ParseTarget(target)

	client := c.Client
	if client == nil {
		client = &http.Client{Timeout: c.timeout()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		result.Status = "error"
		result.Error = fmt.Sprintf("invalid target URL: %v", err)
		return result
	}
	req.Header.Set("User-Agent", "dnstrust-cli")

	resp, err := client.Do(req)
	if err != nil {
		result.Status = "error"
		result.Error = fmt.Sprintf("fetch failed: %v", err)
		return result
	}
	defer resp.Body.Close()

	signals := scanHTML(io.LimitReader(resp.Body, maxHTMLBody), host)
	result.Findings = c.findings(signals)
	for _, f := range result.Findings {
		result.Score += f.Delta
	}
	result.Status = "ok"
	result.Notes = fmt.Sprintf("%d form(s), %d script(s), %d iframe(s)",
		signals.forms, signals.scripts, signals.iframes)
	return result
}

func (c *HTMLChecker) Name() string {
	return "check html"
}

func (c *HTMLChecker) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return 10 * time.Second
}

func (c *HTMLChecker) scriptLimit() int {
	if c.ExternalScriptLimit > 0 {
		return c.ExternalScriptLimit
	}
	return defaultExternalScriptLimit
}

// findings maps the raw counts onto scored findings. Exactly one finding is
// emitted per signal that fired, plus a positive one when nothing fired.
func (c *HTMLChecker) findings(s htmlSignals) []trust.Finding {
	var out []trust.Finding
	add := func(check string, delta int, message, evidence string) {
		sev := trust.SeverityInfo
		if delta > 0 {
			sev = trust.SeverityGood
		} else if delta < 0 {
			sev = trust.SeverityBad
		}
		out = append(out, trust.Finding{
			Check:    check,
			Severity: sev,
			Delta:    delta,
			Message:  message,
			Evidence: evidence,
		})
	}

	if s.passwordInputs > 0 && s.offSiteForms > 0 {
		add("html_forms", -15, "password form posts to another host",
			fmt.Sprintf("%d off-site form(s), %d password input(s)", s.offSiteForms, s.passwordInputs))
	}
	if s.metaRefresh {
		add("html_meta", -10, "page redirects via meta refresh", "")
	}
	if s.externalScripts >= c.scriptLimit() {
		add("html_scripts", -5, "unusually many external scripts",
			fmt.Sprintf("%d external script(s)", s.externalScripts))
	}
	if s.iframes > 2 {
		add("html_iframes", -5, "page embeds several iframes",
			fmt.Sprintf("%d iframe(s)", s.iframes))
	} else if s.iframes > 0 {
		add("html_iframes", 0, "page embeds an iframe",
			fmt.Sprintf("%d iframe(s)", s.iframes))
	}
	if len(out) == 0 {
		add("html", 5, "no risky markup found", "")
	}
	return out
}

// scanHTML tokenizes the page once and counts the signals of interest.
// Parse errors end the scan quietly; whatever was counted so far stands.
func scanHTML(r io.Reader, host string) htmlSignals {
	var s htmlSignals
	z := html.NewTokenizer(r)
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return s
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		token := z.Token()
		switch token.Data {
		case "form":
			s.forms++
			if action := attrVal(token, "action"); offSite(action, host) {
				s.offSiteForms++
			}
		case "input":
			if strings.EqualFold(attrVal(token, "type"), "password") {
				s.passwordInputs++
			}
		case "script":
			s.scripts++
			if src := attrVal(token, "src"); offSite(src, host) {
				s.externalScripts++
			}
		case "meta":
			if strings.EqualFold(attrVal(token, "http-equiv"), "refresh") {
				s.metaRefresh = true
			}
		case "iframe":
			s.iframes++
		}
	}
}

func attrVal(token html.Token, name string) string {
	for _, a := range token.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}

// offSite reports whether ref points at a different host than the page.
// Relative references and unparsable values count as same-site.
func offSite(ref, host string) bool {
	if ref == "" {
		return false
	}
	u, err := url.Parse(ref)
	if err != nil || u.Hostname() == "" {
		return false
	}
	return !strings.EqualFold(u.Hostname(), host)
}
