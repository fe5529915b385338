package util

import "testing"

func TestEllipsize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short stays", "hello", 10, "hello"},
		{"exact stays", "hello", 5, "hello"},
		{"long cut", "hello world", 8, "hello..."},
		{"tiny budget", "hello", 2, "..."},
		{"runes not bytes", "héllo wörld", 8, "héllo..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Ellipsize(tt.in, tt.max); got != tt.want {
				t.Errorf("Ellipsize(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestEllipsizeANSIPlainText(t *testing.T) {
	if got := EllipsizeANSI("hello world", 8); got != "hello..." {
		t.Errorf("got %q, want %q", got, "hello...")
	}
	if got := EllipsizeANSI("hello", 10); got != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
}
