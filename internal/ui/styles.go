package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true).
			Align(lipgloss.Center)

	OverviewStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("69")).
			Padding(0, 2)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Underline(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("253")).
				Background(lipgloss.Color("25")).
				Padding(0, 1)

	RowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	AltRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("75")).
				Background(lipgloss.Color("240")).
				Bold(true).
				Padding(0, 1)

	ScrollbarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("69"))

	StatusOnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46"))

	StatusOffStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	StatusLineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	StatusErrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)
