package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"admin@college.edu",
		"first.last+tag@sub.example.org",
	}
	for _, e := range valid {
		if !ValidateEmail(e) {
			t.Errorf("ValidateEmail(%q) = false, want true", e)
		}
	}

	invalid := []string{
		"",
		"no-at-sign.edu",
		"user@",
		"@college.edu",
		"user@college",
	}
	for _, e := range invalid {
		if ValidateEmail(e) {
			t.Errorf("ValidateEmail(%q) = true, want false", e)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if ok, _ := ValidatePassword("short"); ok {
		t.Fatalf("7-or-fewer character password must be rejected")
	}
	if ok, msg := ValidatePassword("long enough"); !ok {
		t.Fatalf("8+ character password rejected: %s", msg)
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := SanitizeInput("  padded  "); got != "padded" {
		t.Fatalf("expected trimmed input, got %q", got)
	}
	if got := SanitizeInput("a\x00b"); got != "ab" {
		t.Fatalf("expected null bytes stripped, got %q", got)
	}
}
