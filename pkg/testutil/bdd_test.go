package testutil

import "testing"

func TestNarrationHelpers(t *testing.T) {
	// The helpers only narrate; the test passes when they accept a
	// description without needing a subtest closure.
	Given(t, "a ledger with one vendor")
	When(t, "a batch is consolidated")
	Then(t, "the counters grow")
}
