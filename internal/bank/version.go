package bank

import (
	"fmt"

	"golang.org/x/mod/semver"
)

func validateVersion(v string) error {
	if !semver.IsValid(v) {
		return fmt.Errorf("invalid bank version %q: expected semver like v1.2.3", v)
	}
	return nil
}

// Comparable reports whether results recorded against bank version a can be
// compared with results from version b. Scores are comparable within the
// same major version; a major bump means questions or weights changed.
func Comparable(a, b string) bool {
	if !semver.IsValid(a) || !semver.IsValid(b) {
		return false
	}
	return semver.Major(a) == semver.Major(b)
}

// Newer reports whether version a is newer than version b.
func Newer(a, b string) bool {
	return semver.Compare(a, b) > 0
}
