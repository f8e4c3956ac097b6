package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Teal      = lipgloss.Color("#14B8A6")
	SlateDark = lipgloss.Color("#1F2937")
	DimGray   = lipgloss.Color("#6B7280")
	LightGray = lipgloss.Color("#9CA3AF")
	White     = lipgloss.Color("#F9FAFB")
	Green     = lipgloss.Color("#10B981")
	Red       = lipgloss.Color("#EF4444")
	Blue      = lipgloss.Color("#3B82F6")
	Amber     = lipgloss.Color("#F59E0B")
)

// Borders
var (
	ActiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Teal)

	InactiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Teal)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	WarnStyle = lipgloss.NewStyle().
			Foreground(Amber)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(Teal).
			Padding(0, 1)

	TabActiveStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(SlateDark).
			Bold(true).
			Padding(0, 1)

	TabInactiveStyle = lipgloss.NewStyle().
				Foreground(LightGray).
				Padding(0, 1)

	BreadcrumbStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	BreadcrumbActiveStyle = lipgloss.NewStyle().
				Foreground(Teal).
				Bold(true)

	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(Teal)

	FilterStyle = lipgloss.NewStyle().
			Foreground(White)
)
