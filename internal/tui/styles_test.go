package tui

import (
	"bytes"
	"testing"

	catppuccin "github.com/catppuccin/go"
)

func TestStyles_AllFlavors(t *testing.T) {
	tests := []struct {
		name string
		want catppuccin.Flavor
	}{
		{"latte", catppuccin.Latte},
		{"frappe", catppuccin.Frappe},
		{"macchiato", catppuccin.Macchiato},
		{"mocha", catppuccin.Mocha},
		{"unknown", catppuccin.Mocha},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			styles := NewStyles(tt.name, &bytes.Buffer{})
			if styles.flavor.Base().Hex != tt.want.Base().Hex {
				t.Errorf("base color = %s, want %s", styles.flavor.Base().Hex, tt.want.Base().Hex)
			}

			_ = styles.TitleStyle()
			_ = styles.ProjectStyle()
			_ = styles.MutedStyle()
		})
	}
}

func TestStyles_NoColorForNonTerminal(t *testing.T) {
	styles := NewStyles("mocha", &bytes.Buffer{})

	for name, rendered := range map[string]string{
		"title":   styles.TitleStyle().Render("x"),
		"success": styles.SuccessStyle().Render("x"),
		"warning": styles.WarningStyle().Render("x"),
		"error":   styles.ErrorStyle().Render("x"),
		"info":    styles.InfoStyle().Render("x"),
		"accent":  styles.AccentStyle().Render("x"),
	} {
		if rendered != "x" {
			t.Errorf("%s style rendered %q for a plain writer, want %q", name, rendered, "x")
		}
	}
}

func TestStyles_ErrorIsBold(t *testing.T) {
	styles := NewStyles("mocha", &bytes.Buffer{})
	if !styles.ErrorStyle().GetBold() {
		t.Error("ErrorStyle should be bold")
	}
	if styles.InfoStyle().GetBold() {
		t.Error("InfoStyle should not be bold")
	}
}
