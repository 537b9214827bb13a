package tui

import (
	"io"

	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Styles renders report and progress text in a catppuccin flavor. Colors
// are dropped automatically when the target writer is not a terminal.
type Styles struct {
	flavor   catppuccin.Flavor
	renderer *lipgloss.Renderer
}

func NewStyles(themeName string, w io.Writer) *Styles {
	flavor := flavorFromName(themeName)
	return &Styles{flavor: flavor, renderer: lipgloss.NewRenderer(w)}
}

func flavorFromName(name string) catppuccin.Flavor {
	switch name {
	case "latte":
		return catppuccin.Latte
	case "frappe":
		return catppuccin.Frappe
	case "macchiato":
		return catppuccin.Macchiato
	case "mocha":
		return catppuccin.Mocha
	default:
		return catppuccin.Mocha
	}
}

func (s *Styles) color(c catppuccin.Color) lipgloss.Color {
	return lipgloss.Color(c.Hex)
}

// TitleStyle is used for section headings.
func (s *Styles) TitleStyle() lipgloss.Style {
	return s.renderer.NewStyle().
		Bold(true).
		Foreground(s.color(s.flavor.Mauve()))
}

// ProjectStyle is used for project names in grouped output.
func (s *Styles) ProjectStyle() lipgloss.Style {
	return s.renderer.NewStyle().
		Bold(true).
		Foreground(s.color(s.flavor.Blue()))
}

func (s *Styles) SuccessStyle() lipgloss.Style {
	return s.renderer.NewStyle().
		Foreground(s.color(s.flavor.Green()))
}

func (s *Styles) WarningStyle() lipgloss.Style {
	return s.renderer.NewStyle().
		Foreground(s.color(s.flavor.Yellow()))
}

func (s *Styles) ErrorStyle() lipgloss.Style {
	return s.renderer.NewStyle().
		Foreground(s.color(s.flavor.Red())).
		Bold(true)
}

func (s *Styles) InfoStyle() lipgloss.Style {
	return s.renderer.NewStyle().
		Foreground(s.color(s.flavor.Text()))
}

func (s *Styles) AccentStyle() lipgloss.Style {
	return s.renderer.NewStyle().
		Foreground(s.color(s.flavor.Teal()))
}

// MutedStyle is used for truncation notes and skipped entries.
func (s *Styles) MutedStyle() lipgloss.Style {
	return s.renderer.NewStyle().
		Foreground(s.color(s.flavor.Overlay0()))
}
