// Package trust scores how trustworthy a domain's DNS posture looks.
//
// Architecture overview:
//
//   - Resolver abstracts the DNS lookups the checks need (TXT, NS, CNAME,
//     host addresses, MX, reverse PTR). NetResolver is the production
//     implementation over net.Resolver; MockResolver serves tests. Every
//     failure is classified as FailNotFound, FailNoData or FailTransient so
//     callers never have to inspect platform error strings.
//   - Evaluator runs the six checks {SPF, DMARC, NS, CNAME, A, MX}
//     concurrently, classifies each raw result into an Outcome, and feeds the
//     (CheckKind, Outcome) pair through a static RuleTable to obtain the score
//     delta and message.
//   - TrustReport carries the total score and one Finding per check in fixed
//     order. The total is always the plain sum of the finding deltas.
//
// Transient lookup failures are never scored: a resolver or network problem
// says nothing about the domain, so those findings carry delta zero. Record
// absence, by contrast, is a meaningful state and scores per the rule table.
package trust
