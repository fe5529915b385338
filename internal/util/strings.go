// Package util holds small helpers shared by the rendering surfaces.
package util

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Ellipsize shortens s to at most max runes, replacing the tail with "..."
// when it was cut. It counts runes, not columns; for styled terminal text
// use EllipsizeANSI.
func Ellipsize(s string, max int) string {
	if max <= 3 {
		return "..."
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// EllipsizeANSI shortens s to at most max visual columns, keeping any ANSI
// styling sequences intact.
func EllipsizeANSI(s string, max int) string {
	if max <= 3 {
		return "..."
	}
	if lipgloss.Width(s) <= max {
		return s
	}
	return ansi.Truncate(s, max, "...")
}
