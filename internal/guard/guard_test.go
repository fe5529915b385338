package guard

import (
	"strings"
	"testing"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		flagged bool
		phrase  string
	}{
		{"you always", "You always cancel on me", true, "You always"},
		{"bare never", "I can never count on this", true, "never"},
		{"blame", "it's your fault we missed it", true, "it's your fault"},
		{"dismissive", "fine, whatever", true, "whatever"},
		{"calm down", "just calm down already", true, "calm down"},
		{"gentle statement", "I felt hurt when the plans changed", false, ""},
		{"empty", "   ", false, ""},
		{"case insensitive", "EVERY TIME this happens", true, "EVERY TIME"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, flagged := Check(tt.text)
			if flagged != tt.flagged {
				t.Fatalf("Check(%q) flagged = %v, want %v", tt.text, flagged, tt.flagged)
			}
			if flagged && f.Phrase != tt.phrase {
				t.Errorf("Phrase = %q, want %q", f.Phrase, tt.phrase)
			}
			if flagged && f.Hint == "" {
				t.Error("flagged finding carries no hint")
			}
		})
	}
}

func TestCheckFirstMatchWins(t *testing.T) {
	f, flagged := Check("you never listen, whatever")
	if !flagged {
		t.Fatal("expected a finding")
	}
	if f.Phrase != "you never" {
		t.Errorf("Phrase = %q, want the earliest pattern %q", f.Phrase, "you never")
	}
}

func TestDescribe(t *testing.T) {
	f, flagged := Check("you always do this")
	if !flagged {
		t.Fatal("expected a finding")
	}
	desc := Describe(f)
	if !strings.Contains(desc, "you always") {
		t.Errorf("Describe() = %q, should quote the phrase", desc)
	}
}
