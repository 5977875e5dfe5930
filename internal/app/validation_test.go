package app

import (
	"testing"
	"time"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"user@example.com", true},
		{"first.last@sub.domain.co", true},
		{"", false},
		{"no-at-sign", false},
		{"spaces in@example.com", false},
		{"user@nodot", false},
	}

	for _, tt := range tests {
		err := validateEmail(tt.email)
		if tt.valid && err != nil {
			t.Fatalf("expected %q to be valid, got %v", tt.email, err)
		}
		if !tt.valid && err == nil {
			t.Fatalf("expected %q to be rejected", tt.email)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{name: "meets all rules", password: "Str0ngPass", valid: true},
		{name: "exactly eight chars", password: "Abcdefg1", valid: true},
		{name: "seven chars", password: "Abcdef1", valid: false},
		{name: "missing digit", password: "Abcdefgh", valid: false},
		{name: "missing uppercase", password: "abcdefg1", valid: false},
		{name: "missing lowercase", password: "ABCDEFG1", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePassword(tt.password)
			if tt.valid && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tt.valid && err == nil {
				t.Fatal("expected rejection")
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("2026-04-01")
	if err != nil {
		t.Fatalf("expected plain date to parse, got %v", err)
	}
	if got.Year() != 2026 || got.Month() != time.April || got.Day() != 1 {
		t.Fatalf("unexpected parsed date %v", got)
	}

	got, err = parseDate("2026-04-01T15:04:05Z")
	if err != nil {
		t.Fatalf("expected RFC 3339 date to parse, got %v", err)
	}
	if got.Hour() != 15 {
		t.Fatalf("unexpected parsed time %v", got)
	}

	if _, err := parseDate("04/01/2026"); err == nil {
		t.Fatal("expected slash date to be rejected")
	}
}
