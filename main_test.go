package main

import (
	"testing"
)

func TestMain(t *testing.T) {
	// Basic test to ensure main doesn't panic
	if testing.Short() {
		t.Skip("skipping main test in short mode")
	}
}
