package checker

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/khanhnv2901/dnstrust-cli/internal/trust"
)

// TrustChecker scores a target's DNS posture through the trust evaluator.
type TrustChecker struct {
	Timeout     time.Duration
	Nameservers []string // Optional custom nameservers
	NSProviders []string // Optional override of the nameserver allowlist
	IPProviders []string // Optional override of the PTR provider allowlist
	Logger      *zap.SugaredLogger

	// Resolver overrides the default net-backed resolver, for tests.
	Resolver trust.Resolver
}

// Check runs the six DNS trust checks on the target and folds the report into
// a CheckResult.
func (c *TrustChecker) Check(ctx context.Context, target string) CheckResult {
	result := CheckResult{
		Target:    target,
		CheckedAt: time.Now().UTC(),
	}

	resolver := c.Resolver
	if resolver == nil {
		resolver = &trust.NetResolver{
			Timeout:     c.Timeout,
			Nameservers: c.Nameservers,
			Logger:      c.Logger,
		}
	}

	evaluator := &trust.Evaluator{
		Resolver:    resolver,
		NSProviders: c.NSProviders,
		IPProviders: c.IPProviders,
		Logger:      c.Logger,
	}

	report, err := evaluator.Evaluate(ctx, ExtractHost(target))
	if err != nil {
		result.Status = "error"
		result.Error = fmt.Sprintf("trust evaluation failed: %v", err)
		return result
	}

	result.Status = "ok"
	result.Score = report.Score
	result.Findings = report.Findings
	result.Notes = fmt.Sprintf("trust score %d from %d checks", report.Score, len(report.Findings))
	return result
}

func (c *TrustChecker) Name() string {
	return "check trust"
}
