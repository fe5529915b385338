// Package guard flags contentious phrasing in free text and suggests a
// gentler rewrite. It is a fixed pattern list, not a language model: the
// surrounding surface consults it on qualifying text fields, and it has no
// write access to session state.
package guard

import (
	"fmt"
	"regexp"
	"strings"
)

// Finding describes a flagged phrase and a rewrite hint.
type Finding struct {
	// Phrase is the matched contentious phrase, as it appeared in the input.
	Phrase string
	// Hint is a generic rewrite template the caller may show verbatim.
	Hint string
}

// pattern pairs a compiled matcher with the hint shown when it fires.
type pattern struct {
	re   *regexp.Regexp
	hint string
}

const softenHint = `Try describing the specific moment instead: "I felt ... when ..."`

// patterns matches absolute language and dismissiveness markers.
// Order matters: the first match wins.
var patterns = []pattern{
	{regexp.MustCompile(`(?i)\byou (always|never)\b`), softenHint},
	{regexp.MustCompile(`(?i)\b(always|never|every time|every single time)\b`), softenHint},
	{regexp.MustCompile(`(?i)\bit'?s (all )?your fault\b`), `Name your own part first: "I contributed by ..."`},
	{regexp.MustCompile(`(?i)\byou don'?t (care|listen)\b`), `Say what you need instead: "I need to feel heard when ..."`},
	{regexp.MustCompile(`(?i)\bwhatever\b`), `If you need a pause, ask for one instead of closing the door.`},
	{regexp.MustCompile(`(?i)\bcalm down\b`), `Describe your own state, not theirs: "I'm having trouble staying calm."`},
	{regexp.MustCompile(`(?i)\btypical\b`), softenHint},
	{regexp.MustCompile(`(?i)\byou people\b`), softenHint},
	{regexp.MustCompile(`(?i)\bshould have\b`), `Ask rather than rule: "Could we handle it differently next time?"`},
}

// Check reports whether text contains contentious phrasing. When it does,
// the returned Finding carries the first matched phrase and its hint.
func Check(text string) (Finding, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Finding{}, false
	}
	for _, p := range patterns {
		if loc := p.re.FindString(trimmed); loc != "" {
			return Finding{Phrase: loc, Hint: p.hint}, true
		}
	}
	return Finding{}, false
}

// Describe renders a finding as a single advisory line.
func Describe(f Finding) string {
	return fmt.Sprintf("%q may land as an attack. %s", f.Phrase, f.Hint)
}
