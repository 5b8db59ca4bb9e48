package cli

import (
	"testing"

	"github.com/agbru/polycalc/internal/ui"
)

func TestCLIColorProvider(t *testing.T) {
	defer ui.SetCurrentTheme(ui.GetCurrentTheme())

	provider := CLIColorProvider{}

	ui.SetCurrentTheme(ui.DarkTheme)
	if provider.Yellow() != ui.DarkTheme.Warning {
		t.Errorf("Yellow() = %q, want the dark warning color", provider.Yellow())
	}
	if provider.Reset() != ui.DarkTheme.Reset {
		t.Errorf("Reset() = %q", provider.Reset())
	}

	ui.InitTheme(true, "dark")
	if provider.Yellow() != "" || provider.Reset() != "" {
		t.Error("colors should be empty when NoColor is true")
	}
}
