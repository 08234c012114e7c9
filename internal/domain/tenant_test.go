// ABOUTME: Tests for tenant domain derivation
// ABOUTME: Verifies determinism, idempotence, and slug validity

package domain

import "testing"

func TestDeriveTenantDomain(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "My Org", "my-org"},
		{"punctuation stripped", "Acme Corp!!", "acme-corp"},
		{"whitespace collapsed", "  multi   space ", "multi-space"},
		{"already a slug", "acme-corp", "acme-corp"},
		{"mixed case", "AskBob Inc.", "askbob-inc"},
		{"hyphen runs", "a --- b", "a-b"},
		{"digits kept", "Team 42", "team-42"},
		{"nothing usable", "!!!", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveTenantDomain(tt.input)
			if got != tt.expected {
				t.Errorf("DeriveTenantDomain(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDeriveTenantDomain_Idempotent(t *testing.T) {
	inputs := []string{"Acme Corp!!", "  multi   space ", "My Org", "a --- b"}
	for _, in := range inputs {
		once := DeriveTenantDomain(in)
		twice := DeriveTenantDomain(once)
		if once != twice {
			t.Errorf("derivation not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestValidTenantDomain(t *testing.T) {
	valid := []string{"acme", "acme-corp", "team-42", "a"}
	for _, d := range valid {
		if !ValidTenantDomain(d) {
			t.Errorf("expected %q to be valid", d)
		}
	}

	invalid := []string{"", "Acme", "acme corp", "acme_corp", "acme!"}
	for _, d := range invalid {
		if ValidTenantDomain(d) {
			t.Errorf("expected %q to be invalid", d)
		}
	}
}
