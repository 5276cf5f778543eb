package trust

import "testing"

// outcomesPerCheck lists every classification each check can produce, so the
// default policy can be verified to cover all of them.
var outcomesPerCheck = map[CheckKind][]Outcome{
	CheckSPF:   {OutcomePresent, OutcomeAbsent, OutcomeLookupFailed},
	CheckDMARC: {OutcomePresent, OutcomeAbsent, OutcomeLookupFailed},
	CheckNS:    {OutcomeReliableProvider, OutcomeUnreliableProvider, OutcomeLookupFailed},
	CheckCNAME: {OutcomeResolves, OutcomeNoRecord, OutcomeUnreachable, OutcomeLookupFailed},
	CheckA: {
		OutcomeNoAddresses, OutcomeManyAddresses, OutcomeStableProvider,
		OutcomeUnknownProvider, OutcomeLookupFailed,
	},
	CheckMX: {OutcomePresent, OutcomeAbsent, OutcomeLookupFailed},
}

func TestDefaultRules_CoverAllOutcomes(t *testing.T) {
	rules := DefaultRules()
	for check, outcomes := range outcomesPerCheck {
		for _, outcome := range outcomes {
			if _, ok := rules[check][outcome]; !ok {
				t.Errorf("default rules missing entry for %s/%s", check, outcome)
			}
		}
	}
}

func TestDefaultRules_LookupFailuresUnscored(t *testing.T) {
	for check, byOutcome := range DefaultRules() {
		rule, ok := byOutcome[OutcomeLookupFailed]
		if !ok {
			t.Errorf("check %s has no lookup-failure rule", check)
			continue
		}
		if rule.Delta != 0 {
			t.Errorf("check %s scores lookup failures with delta %d", check, rule.Delta)
		}
	}
}

func TestDefaultRules_Deltas(t *testing.T) {
	testCases := []struct {
		check   CheckKind
		outcome Outcome
		want    int
	}{
		{CheckSPF, OutcomePresent, 10},
		{CheckSPF, OutcomeAbsent, -10},
		{CheckDMARC, OutcomePresent, 10},
		{CheckDMARC, OutcomeAbsent, -10},
		{CheckNS, OutcomeReliableProvider, 10},
		{CheckCNAME, OutcomeResolves, 5},
		{CheckCNAME, OutcomeUnreachable, -15},
		{CheckCNAME, OutcomeNoRecord, 0},
		{CheckA, OutcomeManyAddresses, -10},
		{CheckA, OutcomeStableProvider, 5},
		{CheckA, OutcomeUnknownProvider, 0},
		{CheckMX, OutcomePresent, 5},
		{CheckMX, OutcomeAbsent, -5},
	}

	rules := DefaultRules()
	for _, tc := range testCases {
		if got := rules[tc.check][tc.outcome].Delta; got != tc.want {
			t.Errorf("%s/%s: expected delta %d, got %d", tc.check, tc.outcome, tc.want, got)
		}
	}
}

func TestSeverityFor(t *testing.T) {
	if severityFor(5) != SeverityGood {
		t.Error("positive delta should be good")
	}
	if severityFor(-5) != SeverityBad {
		t.Error("negative delta should be bad")
	}
	if severityFor(0) != SeverityInfo {
		t.Error("zero delta should be informational")
	}
}

func TestCheckKindStrings(t *testing.T) {
	want := map[CheckKind]string{
		CheckSPF:   "spf",
		CheckDMARC: "dmarc",
		CheckNS:    "ns",
		CheckCNAME: "cname",
		CheckA:     "a",
		CheckMX:    "mx",
	}
	for kind, s := range want {
		if kind.String() != s {
			t.Errorf("expected %q, got %q", s, kind.String())
		}
	}
}
