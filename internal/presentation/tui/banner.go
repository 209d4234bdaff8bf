package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the stepwise banner and version to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{"     _              _", "#818cf8"},
		{" ___| |_ ___ _ __ _| |_ __ _(_)___ ___", "#a78bfa"},
		{"(_-<  _/ -_) '_ \\ V  V / | (_-</ -_)", "#c084fc"},
		{"/__/\\__\\___| .__/\\_/\\_/  |_/__/\\___|", "#e879f9"},
		{"           |_|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	if v := strings.TrimSpace(version); v != "" {
		fmt.Fprintln(w, out.String("  v"+v).Faint())
	}
	fmt.Fprintln(w)
}
