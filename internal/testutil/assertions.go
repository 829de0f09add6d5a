package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertLogged checks that the run logged message. Any attrs, given as
// "key=value" strings, must appear on the same line.
func AssertLogged(t *testing.T, result *HarnessResult, message string, attrs ...string) {
	t.Helper()

	for _, line := range strings.Split(result.LogOutput, "\n") {
		if !strings.Contains(line, message) {
			continue
		}
		matched := true
		for _, a := range attrs {
			if !strings.Contains(line, a) {
				matched = false
				break
			}
		}
		if matched {
			return
		}
	}
	require.Failf(t, "log line not found", "expected %q with %v in logs:\n%s", message, attrs, result.LogOutput)
}
