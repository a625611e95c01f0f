package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds the styles used to render the reader.
type Theme struct {
	Brand       lipgloss.Style
	NavDate     lipgloss.Style
	NavActive   lipgloss.Style
	NavMuted    lipgloss.Style
	Row         lipgloss.Style
	RowActive   lipgloss.Style
	RowMeta     lipgloss.Style
	Divider     lipgloss.Style
	Title       lipgloss.Style
	Badge       lipgloss.Style
	Meta        lipgloss.Style
	Description lipgloss.Style
	Body        lipgloss.Style
	Muted       lipgloss.Style
	Error       lipgloss.Style
	Toast       lipgloss.Style
	ToastError  lipgloss.Style
	Help        lipgloss.Style
	Label       lipgloss.Style
	LabelFocus  lipgloss.Style
}

// DefaultTheme is a 256-colour palette that reads on dark and light
// terminals.
var DefaultTheme = Theme{
	Brand:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213")),
	NavDate:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	NavActive:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("213")).Padding(0, 1),
	NavMuted:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1),
	Row:         lipgloss.NewStyle().PaddingLeft(2),
	RowActive:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213")).Border(lipgloss.ThickBorder(), false, false, false, true).BorderForeground(lipgloss.Color("213")).PaddingLeft(1),
	RowMeta:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	Divider:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	Title:       lipgloss.NewStyle().Bold(true),
	Badge:       lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("111")).Padding(0, 1),
	Meta:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	Description: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("250")),
	Body:        lipgloss.NewStyle(),
	Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	Toast:       lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("114")).Padding(0, 1),
	ToastError:  lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("203")).Padding(0, 1),
	Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	Label:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	LabelFocus:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213")),
}
