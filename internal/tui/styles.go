package tui

import "github.com/charmbracelet/lipgloss"

// Colors using AdaptiveColor for light/dark terminal support.
var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorOrange = lipgloss.AdaptiveColor{Light: "166", Dark: "208"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
)

// Layout styles.
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(lipgloss.AdaptiveColor{Light: "235", Dark: "236"})
)

// Tab styles.
var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(colorWhite)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorDim)

	tabSepStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

// Per-status styles for log lines and agent rows.
var (
	statusSuccessStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	statusFailedStyle    = lipgloss.NewStyle().Foreground(colorRed)
	statusRunningStyle   = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	statusCancelledStyle = lipgloss.NewStyle().Foreground(colorYellow)
	statusIdleStyle      = lipgloss.NewStyle().Foreground(colorDim)

	sectionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorWhite)

	selectedItemStyle = lipgloss.NewStyle().
				Background(lipgloss.AdaptiveColor{Light: "254", Dark: "237"})
)

// Banner styles.
var (
	bottleneckStyle = lipgloss.NewStyle().
			Background(colorOrange).
			Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "0"}).
			Bold(true).
			Padding(0, 1)

	clarificationBadgeStyle = lipgloss.NewStyle().
				Foreground(colorYellow).
				Bold(true)
)

// Overlay styles.
var (
	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorWhite).
			Padding(1, 2)

	overlayTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorWhite).
				MarginBottom(1)

	overlayDimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

// Bottom sheet styles. The backdrop fades in steps with drag distance; the
// faint style approximates low opacity on terminals without true dimming.
var (
	sheetBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder(), true, true, false, true).
				BorderForeground(colorWhite)

	sheetHandleStyle = lipgloss.NewStyle().
				Foreground(colorDim).
				Bold(true)

	backdropFaintStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "250", Dark: "235"})
)

// Key hint styles for the status bar.
var (
	keyStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	hintStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// statusStyle maps a backend status string to its display style.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case "success", "completed", "ok", "running_ok":
		return statusSuccessStyle
	case "failed", "error":
		return statusFailedStyle
	case "running", "processing":
		return statusRunningStyle
	case "cancelled", "interrupted":
		return statusCancelledStyle
	default:
		return statusIdleStyle
	}
}
