package testutil

import "testing"

// Given, When, and Then narrate test phases in the log without pulling in
// a heavy BDD framework. Assertions stay inline in the test body.
func Given(t *testing.T, desc string) {
	t.Helper()
	t.Log("Given " + desc)
}

func When(t *testing.T, desc string) {
	t.Helper()
	t.Log("When " + desc)
}

func Then(t *testing.T, desc string) {
	t.Helper()
	t.Log("Then " + desc)
}
