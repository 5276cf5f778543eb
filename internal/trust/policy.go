package trust

// CheckKind identifies one of the six DNS trust checks. Reports list exactly
// one finding per kind, in declaration order.
type CheckKind int

const (
	CheckSPF CheckKind = iota
	CheckDMARC
	CheckNS
	CheckCNAME
	CheckA
	CheckMX

	numChecks int = iota
)

// checkOrder fixes the position of each check in a report.
var checkOrder = [numChecks]CheckKind{CheckSPF, CheckDMARC, CheckNS, CheckCNAME, CheckA, CheckMX}

func (k CheckKind) String() string {
	switch k {
	case CheckSPF:
		return "spf"
	case CheckDMARC:
		return "dmarc"
	case CheckNS:
		return "ns"
	case CheckCNAME:
		return "cname"
	case CheckA:
		return "a"
	case CheckMX:
		return "mx"
	default:
		return "unknown"
	}
}

// Outcome is the classified result of a single check. Each CheckKind uses a
// subset of these values; the rule table maps every valid pair.
type Outcome int

const (
	// SPF, DMARC and MX
	OutcomePresent Outcome = iota
	OutcomeAbsent
	// NS
	OutcomeReliableProvider
	OutcomeUnreliableProvider
	// CNAME
	OutcomeResolves
	OutcomeNoRecord
	OutcomeUnreachable
	// A
	OutcomeNoAddresses
	OutcomeManyAddresses
	OutcomeStableProvider
	OutcomeUnknownProvider
	// Any check whose lookup failed transiently (or, for NS, at all).
	OutcomeLookupFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomePresent:
		return "present"
	case OutcomeAbsent:
		return "absent"
	case OutcomeReliableProvider:
		return "reliable_provider"
	case OutcomeUnreliableProvider:
		return "unreliable_provider"
	case OutcomeResolves:
		return "resolves"
	case OutcomeNoRecord:
		return "no_record"
	case OutcomeUnreachable:
		return "unreachable"
	case OutcomeNoAddresses:
		return "no_addresses"
	case OutcomeManyAddresses:
		return "many_addresses"
	case OutcomeStableProvider:
		return "stable_provider"
	case OutcomeUnknownProvider:
		return "unknown_provider"
	case OutcomeLookupFailed:
		return "lookup_failed"
	default:
		return "unknown"
	}
}

// RuleOutcome is one entry of the scoring policy: the signed score delta and
// the finding message for a (CheckKind, Outcome) pair. Never mutated at
// runtime.
type RuleOutcome struct {
	Delta   int
	Message string
}

// RuleTable maps every classification a check can produce to its score delta
// and message.
type RuleTable map[CheckKind]map[Outcome]RuleOutcome

// fastFluxThreshold is the distinct-address count at and above which the A
// check reports rapidly rotating infrastructure. Reverse lookups are skipped
// once the threshold is met.
const fastFluxThreshold = 5

// Default provider allowlists. Matching is case-insensitive substring.
var (
	// DefaultNSProviders marks nameserver hostnames of established DNS
	// operators.
	DefaultNSProviders = []string{"cloudflare", "aws", "azure", "google"}

	// DefaultIPProviders marks reverse-lookup hostnames of established
	// hosting providers.
	DefaultIPProviders = []string{"amazonaws", "azure", "google"}
)

// DefaultRules returns the default scoring policy. Lookup failures are
// informational with delta zero throughout: a resolver problem is never a
// signal about the domain.
func DefaultRules() RuleTable {
	return RuleTable{
		CheckSPF: {
			OutcomePresent:      {Delta: 10, Message: "SPF record present"},
			OutcomeAbsent:       {Delta: -10, Message: "no SPF record"},
			OutcomeLookupFailed: {Delta: 0, Message: "SPF lookup failed, not scored"},
		},
		CheckDMARC: {
			OutcomePresent:      {Delta: 10, Message: "DMARC policy present"},
			OutcomeAbsent:       {Delta: -10, Message: "no DMARC policy"},
			OutcomeLookupFailed: {Delta: 0, Message: "DMARC lookup failed, not scored"},
		},
		CheckNS: {
			OutcomeReliableProvider:   {Delta: 10, Message: "nameservers run by an established provider"},
			OutcomeUnreliableProvider: {Delta: -5, Message: "nameservers not run by a recognized provider"},
			OutcomeLookupFailed:       {Delta: 0, Message: "NS lookup failed, not scored"},
		},
		CheckCNAME: {
			OutcomeResolves:     {Delta: 5, Message: "www alias resolves"},
			OutcomeNoRecord:     {Delta: 0, Message: "no www CNAME, host resolves directly"},
			OutcomeUnreachable:  {Delta: -15, Message: "www alias points at an unreachable target"},
			OutcomeLookupFailed: {Delta: 0, Message: "CNAME lookup failed, not scored"},
		},
		CheckA: {
			OutcomeNoAddresses:     {Delta: 0, Message: "no addresses found"},
			OutcomeManyAddresses:   {Delta: -10, Message: "many rotating addresses, possible fast-flux"},
			OutcomeStableProvider:  {Delta: 5, Message: "addresses hosted by an established provider"},
			OutcomeUnknownProvider: {Delta: 0, Message: "addresses not attributable to a known provider"},
			OutcomeLookupFailed:    {Delta: 0, Message: "address lookup failed, not scored"},
		},
		CheckMX: {
			OutcomePresent:      {Delta: 5, Message: "mail exchangers declared"},
			OutcomeAbsent:       {Delta: -5, Message: "no mail exchangers declared"},
			OutcomeLookupFailed: {Delta: 0, Message: "MX lookup failed, not scored"},
		},
	}
}
