package types

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestHexToHash(t *testing.T) {
	hexStr := strings.Repeat("ab", 32)

	h, err := HexToHash(hexStr)
	if err != nil {
		t.Fatalf("HexToHash() error: %v", err)
	}
	if h.String() != hexStr {
		t.Errorf("String() = %q, want %q", h.String(), hexStr)
	}
}

func TestHexToHash_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"too short", "abcd"},
		{"too long", strings.Repeat("ab", 33)},
		{"not hex", strings.Repeat("zz", 32)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := HexToHash(tt.input); err == nil {
				t.Errorf("HexToHash(%q) should fail", tt.input)
			}
		})
	}
}

func TestHash_JSON(t *testing.T) {
	h, err := HexToHash(strings.Repeat("1f", 32))
	if err != nil {
		t.Fatalf("HexToHash() error: %v", err)
	}

	data, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var decoded Hash
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if decoded != h {
		t.Error("JSON round-tripped hash does not match")
	}
}

func TestParseTokenID(t *testing.T) {
	hexStr := strings.Repeat("cd", 32)

	id, err := ParseTokenID(hexStr)
	if err != nil {
		t.Fatalf("ParseTokenID() error: %v", err)
	}
	if id.String() != hexStr {
		t.Errorf("String() = %q, want %q", id.String(), hexStr)
	}
	if id.IsZero() {
		t.Error("non-zero token ID should not report IsZero")
	}

	if _, err := ParseTokenID("bad"); err == nil {
		t.Error("ParseTokenID() with bad input should fail")
	}
}
