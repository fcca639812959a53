package security

import (
	"errors"
	"strings"
	"testing"
)

func TestRandomStringRejectsBadInput(t *testing.T) {
	tests := []struct {
		name     string
		length   int
		alphabet string
		want     error
	}{
		{name: "negative length", length: -1, alphabet: "abc", want: errNegativeLength},
		{name: "empty alphabet", length: 1, alphabet: "", want: errEmptyAlphabet},
		{name: "alphabet too long", length: 4, alphabet: strings.Repeat("a", 257), want: errAlphabetTooLong},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := RandomString(test.length, test.alphabet); !errors.Is(err, test.want) {
				t.Fatalf("RandomString(%d, ...) error = %v, want %v", test.length, err, test.want)
			}
		})
	}
}

func TestRandomStringUsesOnlyAlphabet(t *testing.T) {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	got, err := RandomString(64, alphabet)
	if err != nil {
		t.Fatalf("RandomString() unexpected error: %v", err)
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 characters, got %d", len(got))
	}
	for _, char := range got {
		if !strings.ContainsRune(alphabet, char) {
			t.Fatalf("character %q is outside the alphabet", char)
		}
	}

	if got, _ := RandomString(8, "X"); got != "XXXXXXXX" {
		t.Fatalf("single-character alphabet gave %q", got)
	}
	if got, _ := RandomString(0, alphabet); got != "" {
		t.Fatalf("zero length gave %q", got)
	}
}

func TestRandomStringCoversSmallAlphabet(t *testing.T) {
	got, err := RandomString(2000, "abc")
	if err != nil {
		t.Fatalf("RandomString() unexpected error: %v", err)
	}
	for _, char := range "abc" {
		count := strings.Count(got, string(char))
		if count < 500 || count > 850 {
			t.Fatalf("character %q drawn %d times out of 2000", char, count)
		}
	}
}
