package handlers_test

import (
	"testing"
	"time"
)

// mustDate parses an ISO date or fails the test.
func mustDate(t *testing.T, value string) time.Time {
	t.Helper()

	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("Failed to parse date %q: %v", value, err)
	}
	return date
}
