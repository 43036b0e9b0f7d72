package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestIDShort tests the log-friendly prefix
func TestIDShort(t *testing.T) {
	if got := ID("0123456789abcdef").Short(); got != "01234567" {
		t.Errorf("Expected '01234567', got '%s'", got)
	}
	if got := ID("abc").Short(); got != "abc" {
		t.Errorf("Expected 'abc', got '%s'", got)
	}
}

// TestParseID tests ID parsing
func TestParseID(t *testing.T) {
	valid := NewID().String()

	tests := []struct {
		input    string
		hasError bool
	}{
		{valid, false},
		{"  " + valid + " ", false},
		{"", true},
		{"   ", true},
		{"not-a-uuid", true},
	}

	for _, test := range tests {
		result, err := ParseID(test.input)
		if test.hasError {
			if err == nil {
				t.Errorf("Expected error for input '%s'", test.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("Unexpected error for input '%s': %v", test.input, err)
		}
		if result.String() != valid {
			t.Errorf("Expected '%s', got '%s'", valid, result)
		}
	}
}
