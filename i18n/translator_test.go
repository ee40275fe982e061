package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("invalid_type", nil); msg == "invalid_type" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("invalid_type", nil); msg == "invalid type" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_ExpectedSuffix(t *testing.T) {
	msg := T("invalid_type", map[string]string{"expected": "string"})
	if msg != "invalid type: expected string" {
		t.Fatalf("unexpected message: %q", msg)
	}
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("expected code fallback, got %q", msg)
	}
}

type upperTranslator struct{}

func (upperTranslator) Message(code string, _ map[string]string) string { return "X-" + code }

func TestSetTranslator_CustomAndReset(t *testing.T) {
	SetTranslator(upperTranslator{})
	if msg := T("mismatch", nil); msg != "X-mismatch" {
		t.Fatalf("custom translator not used: %q", msg)
	}
	SetTranslator(nil)
	if msg := T("mismatch", nil); msg != "value does not match schema" {
		t.Fatalf("expected english default after reset, got %q", msg)
	}
}
