package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for Procwise.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	// Subtle gradient-like color scheme (Indigo/Violet)
	lines := []struct {
		text  string
		color string
	}{
		{"  ____                       _          ", "#818cf8"},
		{" |  _ \\ _ __ ___   ___ _ __ (_)___  ___ ", "#a78bfa"},
		{" | |_) | '__/ _ \\ / __| '_ \\| / __|/ _ \\", "#c084fc"},
		{" |  __/| | | (_) | (__| | | | \\__ \\  __/", "#e879f9"},
		{" |_|   |_|  \\___/ \\___|_| |_|_|___/\\___|", "#f472b6"},
	}

	fmt.Println()
	for _, line := range lines {
		fmt.Println(termenv.String(line.text).Foreground(p.Color(line.color)))
	}
	fmt.Println()
	fmt.Println(termenv.String(fmt.Sprintf("  procwise %s", strings.TrimSpace(version))).Faint())
	fmt.Println()
}
