// Package ui holds the pieces shared by every screen: the window frame and
// the toast messages that report backend outcomes.
package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/freightdesk/internal/theme"
)

// Layout splits the terminal into a one-line title bar, the screen body and
// a one-line footer.
type Layout struct {
	Width  int
	Height int
}

const chromeLines = 2

// NewLayout sizes a layout for a terminal of width x height cells.
func NewLayout(width, height int) Layout {
	return Layout{Width: width, Height: height}
}

// ContentWidth is the width handed to screens.
func (l Layout) ContentWidth() int { return l.Width }

// ContentHeight is the terminal height minus the title bar and footer.
func (l Layout) ContentHeight() int {
	return max(l.Height-chromeLines, 0)
}

// RenderHeader draws the title on the left and the session status on the
// right.
func (l Layout) RenderHeader(title, status string) string {
	return bar(theme.HeaderStyle, l.Width, title, status)
}

// RenderStatusBar draws key hints on the left. A pending toast takes the
// right-hand side so hints stay readable while it shows.
func (l Layout) RenderStatusBar(hints, toast string) string {
	return bar(theme.StatusBarStyle, l.Width, hints, toast)
}

// RenderWithFrame stacks header, body and footer. The body is padded or cut
// to ContentHeight so the footer stays on the last line.
func (l Layout) RenderWithFrame(header, content, footer string) string {
	body := lipgloss.NewStyle().
		Height(l.ContentHeight()).
		MaxHeight(l.ContentHeight()).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// bar renders left and right segments on one line filled with the style's
// background. The right segment wins when the line is too narrow.
func bar(style lipgloss.Style, width int, left, right string) string {
	r := ""
	if right != "" {
		r = right + " "
	}
	gap := width - lipgloss.Width(left) - lipgloss.Width(r) - style.GetHorizontalPadding()
	if gap < 1 {
		left = ""
		gap = max(width-lipgloss.Width(r)-style.GetHorizontalPadding(), 0)
	}
	return style.Width(width).MaxWidth(width).Render(left + strings.Repeat(" ", gap) + r)
}

// ToastMsg asks the root model to flash a short status message.
type ToastMsg struct {
	Text   string
	Failed bool
}

// FailureText is shown for every failed backend call. The backend sends
// no reason with its errors.
const FailureText = "Something Went Wrong, Check All Fields"

// Toast returns a command emitting a ToastMsg.
func Toast(text string, failed bool) tea.Cmd {
	return func() tea.Msg { return ToastMsg{Text: text, Failed: failed} }
}

// DuplicateText is the toast for a create the backend rejected with 201.
func DuplicateText(name string) string {
	return name + " already exists"
}
