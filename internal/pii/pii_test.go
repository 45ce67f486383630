package pii

import (
	"strings"
	"testing"
)

func TestDetectEmail(t *testing.T) {
	matches := Detect("Contact me at user@example.com for details.")

	kinds := map[string]bool{}
	for _, m := range matches {
		kinds[m.Kind] = true
	}
	if !kinds["email"] {
		t.Errorf("expected an email match, got %v", matches)
	}
}

func TestDetectPhoneFormats(t *testing.T) {
	matches := Detect("+254712345678 and 0712345678 and 0112345678")

	phones := 0
	for _, m := range matches {
		if m.Kind == "phone" {
			phones++
		}
	}
	if phones != 3 {
		t.Errorf("expected 3 phone matches, got %d (%v)", phones, matches)
	}
}

func TestDetectEmptyInput(t *testing.T) {
	if got := Detect(""); len(got) != 0 {
		t.Errorf("Detect(\"\") = %v; want empty", got)
	}
	if got := Redact("", nil); got != "" {
		t.Errorf("Redact(\"\") = %q; want empty", got)
	}
}

func TestDetectSuppressesURLAndEmailFragments(t *testing.T) {
	matches := Detect("see http://abc123y or mail admin@agency.go.ke")

	for _, m := range matches {
		if m.Kind == "national_id" || m.Kind == "passport" {
			t.Errorf("unexpected %s match %q inside URL/email context", m.Kind, m.Text)
		}
	}
}

func TestRedactPositionalCorrectness(t *testing.T) {
	text := "ID 12345678, phone 0712345678, email user@example.com"
	red := Redact(text, nil)

	for _, literal := range []string{"12345678", "0712345678", "user@example.com"} {
		if strings.Contains(red, literal) {
			t.Errorf("literal %q survived redaction: %s", literal, red)
		}
	}
	for _, placeholder := range []string{"<NATIONAL_ID_REDACTED>", "<PHONE_REDACTED>", "<EMAIL_REDACTED>"} {
		if !strings.Contains(red, placeholder) {
			t.Errorf("missing %s in %s", placeholder, red)
		}
	}
}

func TestRedactIsIdempotentOnRescan(t *testing.T) {
	text := "ID 12345678, phone 0712345678, email user@example.com"
	red := Redact(text, nil)

	if again := Detect(red); len(again) != 0 {
		t.Errorf("placeholders matched on re-scan: %v", again)
	}
}

func TestRedactWithPrecomputedMatches(t *testing.T) {
	text := "call 0712345678"
	matches := Detect(text)
	red := Redact(text, matches)

	if red != "call <PHONE_REDACTED>" {
		t.Errorf("got %q", red)
	}
}
