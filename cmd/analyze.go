package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/khanhnv2901/dnstrust-cli/internal/checker"
)

var (
	analyzeJSON        bool
	analyzeHTML        bool
	analyzeWhois       bool
	analyzeAll         bool
	analyzeNameservers []string
	analyzeTimeout     int
	analyzeConcurrency int
	analyzeRateLimit   int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [domain|url ...]",
	Short: "Analyze the trustworthiness of one or more domains",
	Long: `Run the DNS trust checks against each domain and print a scored
finding list. URLs are accepted; the hostname is extracted automatically.

With no arguments an interactive prompt reads domains from stdin until
"quit" or "exit".

Checks performed:
- SPF and DMARC TXT policies
- Nameserver provider reputation
- www CNAME resolution
- Address stability (fast-flux heuristic, hosting provider PTRs)
- Mail exchanger presence
- Optionally: static HTML analysis (--html) and WHOIS registration age (--whois)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyConfigDefaults(cmd.Flags())
		if len(args) > 0 {
			return analyzeTargets(cmd.Context(), args, cmd.OutOrStdout())
		}
		return interactiveLoop(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "emit structured JSON instead of text")
	analyzeCmd.Flags().BoolVar(&analyzeHTML, "html", false, "also run the static HTML analysis")
	analyzeCmd.Flags().BoolVar(&analyzeWhois, "whois", false, "also check WHOIS registration age")
	analyzeCmd.Flags().BoolVar(&analyzeAll, "all", false, "run every available check")
	analyzeCmd.Flags().StringSliceVar(&analyzeNameservers, "nameserver", nil, "custom nameserver (host:port), may be repeated")
	analyzeCmd.Flags().IntVar(&analyzeTimeout, "timeout", 0, "per-lookup timeout in seconds (overrides config)")
	analyzeCmd.Flags().IntVar(&analyzeConcurrency, "concurrency", 0, "concurrent targets (overrides config)")
	analyzeCmd.Flags().IntVar(&analyzeRateLimit, "rate-limit", 0, "checks started per second (overrides config)")
}

// applyConfigDefaults fills flags the user did not pass from the loaded
// configuration, so flag > config file > built-in default.
func applyConfigDefaults(flags *pflag.FlagSet) {
	if !flags.Changed("concurrency") {
		analyzeConcurrency = cliConfig.Check.Concurrency
	}
	if !flags.Changed("rate-limit") {
		analyzeRateLimit = cliConfig.Check.RateLimit
	}
	if !flags.Changed("nameserver") && len(analyzeNameservers) == 0 {
		analyzeNameservers = cliConfig.Check.DNS.Nameservers
	}
}

// analysisOutput is the JSON shape of one run.
type analysisOutput struct {
	AnalyzedAt time.Time             `json:"analyzed_at"`
	Results    []checker.CheckResult `json:"results"`
}

func analyzeTargets(ctx context.Context, targets []string, out io.Writer) error {
	runner := &checker.Runner{
		Concurrency: intOr(analyzeConcurrency, cliConfig.Check.Concurrency),
		RateLimit:   intOr(analyzeRateLimit, cliConfig.Check.RateLimit),
		Timeout:     time.Duration(intOr(analyzeTimeout, cliConfig.Check.TimeoutSecs)) * time.Second,
	}

	var all []checker.CheckResult
	for _, chk := range buildCheckers() {
		results := runner.RunChecks(ctx, targets, chk)
		all = append(all, results...)
		if !analyzeJSON {
			for _, result := range results {
				renderResult(out, chk.Name(), result)
			}
		}
	}

	if analyzeJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(analysisOutput{AnalyzedAt: time.Now().UTC(), Results: all})
	}
	return nil
}

func buildCheckers() []checker.Checker {
	dnsTimeout := time.Duration(intOr(analyzeTimeout, cliConfig.Check.DNS.Timeout)) * time.Second
	nameservers := analyzeNameservers
	if len(nameservers) == 0 {
		nameservers = cliConfig.Check.DNS.Nameservers
	}

	checkers := []checker.Checker{
		&checker.TrustChecker{
			Timeout:     dnsTimeout,
			Nameservers: nameservers,
			NSProviders: cliConfig.Trust.NSProviders,
			IPProviders: cliConfig.Trust.IPProviders,
			Logger:      logger,
		},
	}
	if analyzeHTML || analyzeAll {
		checkers = append(checkers, &checker.HTMLChecker{
			Timeout: time.Duration(intOr(analyzeTimeout, cliConfig.Check.TimeoutSecs)) * time.Second,
		})
	}
	if analyzeWhois || analyzeAll {
		checkers = append(checkers, &checker.WhoisChecker{
			Timeout: time.Duration(intOr(analyzeTimeout, cliConfig.Check.Whois.Timeout)) * time.Second,
			Server:  cliConfig.Check.Whois.Server,
		})
	}
	return checkers
}

func interactiveLoop(ctx context.Context, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Enter domains to analyze, one per line (quit to stop).")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "domain> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "quit" || line == "exit":
			return nil
		}
		if err := analyzeTargets(ctx, []string{line}, out); err != nil {
			fmt.Fprintf(out, "%s %v\n", colorError("error:"), err)
		}
	}
	return scanner.Err()
}

// renderResult prints one checker's result for one target.
func renderResult(out io.Writer, name string, result checker.CheckResult) {
	fmt.Fprintf(out, "\n%s %s (%s)\n", colorInfo("==>"), result.Target, name)
	if result.Status != "ok" {
		fmt.Fprintf(out, "  %s %s\n", severityEmoji("bad"), colorError(result.Error))
		return
	}
	for _, f := range result.Findings {
		line := f.Message
		if f.Evidence != "" {
			line += " [" + f.Evidence + "]"
		}
		fmt.Fprintf(out, "  %s %s (%s)\n", severityEmoji(string(f.Severity)), line, formatDelta(f.Delta))
	}
	fmt.Fprintf(out, "  %s %s\n", colorInfo("score:"), formatScore(result.Score))
}

func intOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
