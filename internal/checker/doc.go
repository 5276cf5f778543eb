// Package checker defines the dnstrust-cli checking framework.
//
// Architecture overview:
//
//   - Checkers implement the Checker interface (Check + Name) for specific
//     concerns: TrustChecker wraps the DNS trust evaluator in internal/trust,
//     HTMLChecker performs a static single-pass scan of a target's landing
//     page, and WhoisChecker estimates registration age.
//   - Runner coordinates concurrent execution with rate limiting, so a batch
//     of targets never hammers a resolver or registry.
//   - CheckResult is the shared result struct; findings reuse trust.Finding so
//     the CLI renders every checker's output the same way.
//   - ParseTarget/ExtractHost are factored here so CLI commands in cmd/ simply
//     instantiate a checker and feed it into the runner.
//
// A checker failure is always folded into its own CheckResult; one bad target
// never aborts a batch.
package checker
