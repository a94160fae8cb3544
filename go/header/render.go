package header

import "github.com/charmbracelet/lipgloss"

const (
	buttonWidth       = 4
	horizontalPadding = 1
)

type Theme struct {
	Foreground lipgloss.Color
	Background lipgloss.Color
	Border     lipgloss.Color
}

func LightTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#1D1C1D"),
		Background: lipgloss.Color("#FFFFFF"),
		Border:     lipgloss.Color("#DDDDDD"),
	}
}

func DarkTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#D1D2D3"),
		Background: lipgloss.Color("#1A1D21"),
		Border:     lipgloss.Color("#35373B"),
	}
}

// Render draws the bar width cells wide, with a bottom border line
func (v View) Render(width int) string {
	titleWidth := width - 2*buttonWidth - 2*horizontalPadding
	if titleWidth < 0 {
		titleWidth = 0
	}

	button := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(v.theme.Foreground)
	center := lipgloss.NewStyle().
		Width(titleWidth).
		Align(lipgloss.Center).
		Foreground(v.theme.Foreground)
	if v.Center.Kind == KindTitle {
		center = center.Bold(true)
	}

	row := lipgloss.JoinHorizontal(lipgloss.Center,
		button.Render(v.Left.Label),
		center.Render(v.Center.Label),
		button.Render(v.Right.Label),
	)

	return lipgloss.NewStyle().
		Padding(0, horizontalPadding).
		Background(v.theme.Background).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(v.theme.Border).
		Render(row)
}
