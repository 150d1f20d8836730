package cli

import (
	"github.com/alexanderramin/kanri/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func kanriHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorRed).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// huhConfirm asks a yes/no question on the terminal. The answer defaults to no.
func huhConfirm(title, description string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Replace").
				Negative("Cancel").
				Value(&ok),
		),
	).WithTheme(kanriHuhTheme()).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}

func (app *App) confirm(title, description string) (bool, error) {
	if app.Confirm != nil {
		return app.Confirm(title, description)
	}
	return huhConfirm(title, description)
}
