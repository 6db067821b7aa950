// Package ui styles the makegen terminal output.
package ui

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Light Mode Colors (Default)
	LightForeground = lipgloss.Color("#101F38")
	LightAccent     = lipgloss.Color("#8BC34A")
	LightBorder     = lipgloss.Color("#dce0e5")

	// Dark Mode Colors
	DarkForeground = lipgloss.Color("#f2f2f2")
	DarkAccent     = lipgloss.Color("#8BC34A")
	DarkBorder     = lipgloss.Color("#2a3850")

	// Semantic Colors (same in both modes)
	Success = lipgloss.Color("#8BC34A")
	Warning = lipgloss.Color("#FFC107")
)

// Theme holds the current color scheme
type Theme struct {
	Foreground lipgloss.Color
	Accent     lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{Foreground: LightForeground, Accent: LightAccent, Border: LightBorder}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{Foreground: DarkForeground, Accent: DarkAccent, Border: DarkBorder, IsDark: true}
}

// DetectTheme picks dark mode from COLORFGBG or MAKEGEN_DARK_MODE=1.
func DetectTheme() Theme {
	// Format is usually "foreground;background"
	if parts := strings.Split(os.Getenv("COLORFGBG"), ";"); len(parts) == 2 {
		if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
			if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
				return DarkTheme()
			}
		}
	}

	if os.Getenv("MAKEGEN_DARK_MODE") == "1" {
		return DarkTheme()
	}
	return LightTheme()
}

// Printer writes status lines and the Makefile preview to w.
// With color disabled every line is written verbatim.
type Printer struct {
	w     io.Writer
	color bool

	title   lipgloss.Style
	code    lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
}

// NewPrinter binds styles to w so color detection follows the real output.
func NewPrinter(w io.Writer, color bool, theme Theme) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:     w,
		color: color,

		title: r.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		code: r.NewStyle().
			Foreground(theme.Foreground).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		success: r.NewStyle().
			Foreground(Success).
			Bold(true),

		warning: r.NewStyle().
			Foreground(Warning).
			Bold(true),
	}
}

func (p *Printer) line(style lipgloss.Style, s string) {
	if p.color {
		s = style.Render(s)
	}
	io.WriteString(p.w, s+"\n")
}

// Preview prints the generated Makefile.
func (p *Printer) Preview(content string) {
	p.line(p.title, "Creating Makefile with content:")
	if !p.color {
		io.WriteString(p.w, content+"\n")
		return
	}
	// Tabs render as a single cell inside a border; expand them.
	io.WriteString(p.w, p.code.Render(strings.ReplaceAll(strings.Trim(content, "\n"), "\t", "    "))+"\n")
}

// Success prints a completion line.
func (p *Printer) Success(msg string) {
	p.line(p.success, msg)
}

// Warning prints a non-fatal problem.
func (p *Printer) Warning(msg string) {
	p.line(p.warning, msg)
}
