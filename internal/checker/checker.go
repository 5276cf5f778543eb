package checker

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/khanhnv2901/dnstrust-cli/internal/trust"
)

// CheckResult represents the outcome of analyzing a single target with one
// checker. Findings reuse the trust.Finding shape so DNS, HTML and WHOIS
// signals render uniformly.
type CheckResult struct {
	Target    string          `json:"target"`
	CheckedAt time.Time       `json:"checked_at"`
	Status    string          `json:"status"`
	Score     int             `json:"score"`
	Findings  []trust.Finding `json:"findings,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// Checker is the interface that all check implementations must satisfy
type Checker interface {
	// Check performs the actual check logic for a single target
	Check(ctx context.Context, target string) CheckResult

	// Name returns the name of this checker (e.g., "check trust", "check html")
	Name() string
}

// Runner orchestrates the execution of checks with concurrency and rate limiting
type Runner struct {
	Concurrency int           // Maximum number of concurrent checks
	RateLimit   int           // Checks started per second (global)
	Timeout     time.Duration // Timeout for each check
}

// RunChecks executes a checker against multiple targets using a worker pool.
// Results keep the order of the targets argument.
func (r *Runner) RunChecks(ctx context.Context, targets []string, checker Checker) []CheckResult {
	limiter := rate.NewLimiter(rate.Limit(r.RateLimit), r.RateLimit)

	sem := make(chan struct{}, r.Concurrency)
	var wg sync.WaitGroup
	results := make([]CheckResult, len(targets))

	for i, target := range targets {
		wg.Add(1)
		go func(i int, t string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			_ = limiter.Wait(ctx)

			checkCtx, cancel := context.WithTimeout(ctx, r.Timeout)
			defer cancel()

			results[i] = checker.Check(checkCtx, t)
		}(i, target)
	}

	wg.Wait()
	return results
}
