package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Default is the CLI palette.
var Default = NewPalette("#FA586A", "#04B575", "#FF0000", "#FFA500", "#626262")

// Plain renders text unstyled.
var Plain = &Palette{
	title: lipgloss.NewStyle(),
	ok:    lipgloss.NewStyle(),
	err:   lipgloss.NewStyle(),
	warn:  lipgloss.NewStyle(),
	help:  lipgloss.NewStyle(),
	key:   lipgloss.NewStyle().Width(14),
}

// interface Painter defines coloring text with [lipgloss] styles
type Painter interface {
	On(string, lipgloss.Color) string // Sets background color
	As(string, lipgloss.Color) string // Sets foreground color
}

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
	key   lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
		key:   NewStyle(h).Width(14),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

func (p *Palette) On(s string, c lipgloss.Color) string {
	return lipgloss.NewStyle().Background(c).Render(s)
}

func (p *Palette) As(s string, c lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(c).Render(s)
}

// Header renders a section title underlined to its width.
func (p *Palette) Header(title string) string {
	return p.title.Render(title) + "\n" + p.help.Render(strings.Repeat("─", lipgloss.Width(title))) + "\n"
}

// OK marks a successful step.
func (p *Palette) OK(format string, args ...any) string {
	return p.ok.Render("✓") + " " + fmt.Sprintf(format, args...)
}

// Fail marks a failed step.
func (p *Palette) Fail(format string, args ...any) string {
	return p.err.Render("✗") + " " + fmt.Sprintf(format, args...)
}

// Warn marks a skipped or degraded step.
func (p *Palette) Warn(format string, args ...any) string {
	return p.warn.Render("!") + " " + fmt.Sprintf(format, args...)
}

// Help renders a hint.
func (p *Palette) Help(s string) string {
	return p.help.Render(s)
}

// Row renders an aligned key/value line.
func (p *Palette) Row(key, value string) string {
	return p.key.Render(key) + value
}
