package trust

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	sharederrors "github.com/khanhnv2901/dnstrust-cli/internal/shared/errors"
)

// Evaluator runs the six DNS trust checks against a domain and aggregates
// their classified outcomes into a TrustReport. The zero value is not usable;
// Resolver must be set. Rules and the provider allowlists fall back to the
// defaults when nil.
type Evaluator struct {
	Resolver    Resolver
	Rules       RuleTable
	NSProviders []string
	IPProviders []string
	Logger      *zap.SugaredLogger
}

// Evaluate runs all checks with the default policy. Convenience wrapper for
// callers that do not override configuration.
func Evaluate(ctx context.Context, domain string, resolver Resolver) (*TrustReport, error) {
	e := &Evaluator{Resolver: resolver}
	return e.Evaluate(ctx, domain)
}

// Evaluate analyzes one domain. The six checks run concurrently; no check
// failure aborts the analysis, every check contributes exactly one finding in
// fixed order. The only error conditions are a missing resolver and an
// invalid domain argument, both detected before any lookup is issued.
func (e *Evaluator) Evaluate(ctx context.Context, domain string) (*TrustReport, error) {
	if e.Resolver == nil {
		return nil, sharederrors.ErrNoResolver
	}
	domain = strings.TrimSpace(strings.ToLower(domain))
	if err := validateDomain(domain); err != nil {
		return nil, err
	}

	rules := e.Rules
	if rules == nil {
		rules = DefaultRules()
	}

	var (
		outcomes [numChecks]Outcome
		evidence [numChecks]string
		wg       sync.WaitGroup
	)
	for _, kind := range checkOrder {
		wg.Add(1)
		go func(kind CheckKind) {
			defer wg.Done()
			outcomes[kind], evidence[kind] = e.runCheck(ctx, kind, domain)
		}(kind)
	}
	wg.Wait()

	report := &TrustReport{
		Domain:      domain,
		Findings:    make([]Finding, 0, numChecks),
		EvaluatedAt: time.Now().UTC(),
	}
	for _, kind := range checkOrder {
		rule, ok := rules[kind][outcomes[kind]]
		if !ok {
			// A rule table override missing a pair falls back to an
			// unscored finding rather than dropping the check.
			rule = RuleOutcome{Delta: 0, Message: fmt.Sprintf("no rule for %s/%s", kind, outcomes[kind])}
			if e.Logger != nil {
				e.Logger.Warnw("rule table has no entry", "check", kind.String(), "outcome", outcomes[kind].String())
			}
		}
		report.Findings = append(report.Findings, Finding{
			Check:    kind.String(),
			Severity: severityFor(rule.Delta),
			Delta:    rule.Delta,
			Message:  rule.Message,
			Evidence: evidence[kind],
		})
		report.Score += rule.Delta
	}
	return report, nil
}

func (e *Evaluator) runCheck(ctx context.Context, kind CheckKind, domain string) (Outcome, string) {
	switch kind {
	case CheckSPF:
		return e.checkTXTPolicy(ctx, domain, "v=spf1")
	case CheckDMARC:
		return e.checkTXTPolicy(ctx, "_dmarc."+domain, "v=DMARC1")
	case CheckNS:
		return e.checkNS(ctx, domain)
	case CheckCNAME:
		return e.checkCNAME(ctx, "www."+domain)
	case CheckA:
		return e.checkAddresses(ctx, domain)
	case CheckMX:
		return e.checkMX(ctx, domain)
	default:
		return OutcomeLookupFailed, ""
	}
}

// checkTXTPolicy covers SPF and DMARC: both look for a TXT record starting
// with a version prefix. Absence of the record kind is a scored state, only a
// transient lookup failure goes unscored.
func (e *Evaluator) checkTXTPolicy(ctx context.Context, name, prefix string) (Outcome, string) {
	records, err := e.Resolver.LookupTXT(ctx, name)
	if err != nil {
		if ClassOf(err) == FailTransient {
			return OutcomeLookupFailed, err.Error()
		}
		return OutcomeAbsent, ""
	}
	for _, rec := range records {
		if strings.HasPrefix(rec, prefix) {
			return OutcomePresent, rec
		}
	}
	return OutcomeAbsent, ""
}

func (e *Evaluator) checkNS(ctx context.Context, domain string) (Outcome, string) {
	hosts, err := e.Resolver.LookupNS(ctx, domain)
	if err != nil {
		// Failing to resolve NS at all is unusual enough to report, but it
		// matches neither positive rule, so it stays unscored.
		return OutcomeLookupFailed, err.Error()
	}
	if len(hosts) == 0 {
		return OutcomeLookupFailed, "no NS records returned"
	}
	if h, ok := matchProvider(hosts, e.nsProviders()); ok {
		return OutcomeReliableProvider, h
	}
	return OutcomeUnreliableProvider, strings.Join(hosts, ", ")
}

func (e *Evaluator) checkCNAME(ctx context.Context, host string) (Outcome, string) {
	target, err := e.Resolver.LookupCNAME(ctx, host)
	if err != nil {
		switch ClassOf(err) {
		case FailNoData:
			return OutcomeNoRecord, ""
		case FailNotFound:
			return OutcomeUnreachable, host
		default:
			return OutcomeLookupFailed, err.Error()
		}
	}
	return OutcomeResolves, target
}

func (e *Evaluator) checkAddresses(ctx context.Context, domain string) (Outcome, string) {
	addrs, err := e.Resolver.LookupHost(ctx, domain)
	if err != nil {
		if ClassOf(err) == FailTransient {
			// Suppress the raw error text: ordinary absence codes read as
			// failures and add noise to reports.
			return OutcomeLookupFailed, ""
		}
		return OutcomeNoAddresses, ""
	}
	addrs = distinct(addrs)
	if len(addrs) == 0 {
		return OutcomeNoAddresses, ""
	}
	if len(addrs) >= fastFluxThreshold {
		return OutcomeManyAddresses, fmt.Sprintf("%d distinct addresses", len(addrs))
	}
	names := e.reverseNames(ctx, addrs)
	if h, ok := matchProvider(names, e.ipProviders()); ok {
		return OutcomeStableProvider, h
	}
	return OutcomeUnknownProvider, strings.Join(addrs, ", ")
}

func (e *Evaluator) checkMX(ctx context.Context, domain string) (Outcome, string) {
	records, err := e.Resolver.LookupMX(ctx, domain)
	if err != nil {
		if ClassOf(err) == FailTransient {
			return OutcomeLookupFailed, err.Error()
		}
		return OutcomeAbsent, ""
	}
	if len(records) == 0 {
		return OutcomeAbsent, ""
	}
	hosts := make([]string, 0, len(records))
	for _, mx := range records {
		hosts = append(hosts, mx.Host)
	}
	return OutcomePresent, strings.Join(hosts, ", ")
}

// reverseNames gathers PTR names for each address with partial tolerance:
// every lookup runs independently, a failure contributes nothing and never
// cancels its siblings.
func (e *Evaluator) reverseNames(ctx context.Context, addrs []string) []string {
	perAddr := make([][]string, len(addrs))
	var wg sync.WaitGroup
	for i, addr := range addrs {
		wg.Add(1)
		go func(i int, addr string) {
			defer wg.Done()
			names, err := e.Resolver.LookupAddr(ctx, addr)
			if err != nil {
				if e.Logger != nil {
					e.Logger.Debugw("reverse lookup failed", "addr", addr, "err", err)
				}
				return
			}
			perAddr[i] = names
		}(i, addr)
	}
	wg.Wait()

	var out []string
	for _, names := range perAddr {
		out = append(out, names...)
	}
	return out
}

func (e *Evaluator) nsProviders() []string {
	if e.NSProviders != nil {
		return e.NSProviders
	}
	return DefaultNSProviders
}

func (e *Evaluator) ipProviders() []string {
	if e.IPProviders != nil {
		return e.IPProviders
	}
	return DefaultIPProviders
}

// matchProvider reports the first name containing any of the provider
// substrings, case-insensitively.
func matchProvider(names, providers []string) (string, bool) {
	for _, name := range names {
		lower := strings.ToLower(name)
		for _, p := range providers {
			if strings.Contains(lower, strings.ToLower(p)) {
				return name, true
			}
		}
	}
	return "", false
}

func distinct(addrs []string) []string {
	seen := make(map[string]struct{}, len(addrs))
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

func validateDomain(domain string) error {
	if domain == "" {
		return sharederrors.ErrEmptyDomain
	}
	if strings.ContainsAny(domain, " \t/\\@:") {
		return fmt.Errorf("%w: %q", sharederrors.ErrInvalidDomain, domain)
	}
	return nil
}
