// Package theme holds the FreightDesk palette and the shared lipgloss
// styles. Every colour adapts to light and dark terminals.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/freightdesk/internal/model"
)

var (
	ColorAccent = lipgloss.AdaptiveColor{Dark: "#4FA3D9", Light: "#1F5F8B"}
	ColorOK     = lipgloss.AdaptiveColor{Dark: "#7BC96F", Light: "#2E7D32"}
	ColorWarn   = lipgloss.AdaptiveColor{Dark: "#F2C14E", Light: "#A66B00"}
	ColorDanger = lipgloss.AdaptiveColor{Dark: "#F25F5C", Light: "#B3261E"}
	ColorMuted  = lipgloss.AdaptiveColor{Dark: "#8A939B", Light: "#6B7280"}
	ColorText   = lipgloss.AdaptiveColor{Dark: "#EEF1F4", Light: "#111827"}
	ColorBar    = lipgloss.AdaptiveColor{Dark: "#3A4148", Light: "#D5DBE1"}
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorAccent).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorBar).
			Padding(0, 1)

	// DetailPanelStyle frames dialogs: the inbox detail, help and the
	// command line.
	DetailPanelStyle = lipgloss.NewStyle().
				Padding(1, 2).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBar)

	ListItemStyle = lipgloss.NewStyle().PaddingLeft(2)

	// SelectedItemStyle marks the cursor row with a left rule.
	SelectedItemStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				Bold(true).
				Foreground(ColorAccent).
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(ColorAccent)

	HelpStyle = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
)

// ToastStyle colours a toast by outcome.
func ToastStyle(failed bool) lipgloss.Style {
	c := ColorOK
	if failed {
		c = ColorDanger
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c)
}

var actionColors = map[model.ActionType]lipgloss.AdaptiveColor{
	model.ActionEdit:     ColorWarn,
	model.ActionDelete:   ColorDanger,
	model.ActionApproved: ColorOK,
	model.ActionDecline:  ColorDanger,
	model.ActionInfo:     ColorAccent,
}

// ActionStyle is the inbox badge for a request kind. Unknown actions are
// muted.
func ActionStyle(a model.ActionType) lipgloss.Style {
	c, ok := actionColors[a]
	if !ok {
		c = ColorMuted
	}
	return lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(c)
}
