// Package ui styles CLI output with lipgloss.
//
// A [Palette] holds the named styles (title, ok, error, warning, help) and renders
// section headers, status marks and aligned key/value rows. [Default] is the
// palette the CLI uses; [Plain] renders without color for tests and pipes.
package ui
