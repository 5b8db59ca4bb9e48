// Package testutil provides shared testing utilities used across the project.
package testutil

import (
	"regexp"
	"strings"
	"testing"
)

// ansiRegex matches the CSI escape sequences emitted by the color themes.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripAnsiCodes removes ANSI escape codes from a string, so that colored
// terminal output can be compared with plain text.
//
// Parameters:
//   - s: The string potentially containing ANSI escape codes.
//
// Returns:
//   - string: The input string with all ANSI escape codes removed.
func StripAnsiCodes(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// AssertContains fails t for every entry of want missing from output once
// its colors are stripped.
func AssertContains(t testing.TB, output string, want ...string) {
	t.Helper()
	plain := StripAnsiCodes(output)
	for _, w := range want {
		if !strings.Contains(plain, w) {
			t.Errorf("output missing %q:\n%s", w, plain)
		}
	}
}
