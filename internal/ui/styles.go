package ui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	ColorSuccess   = lipgloss.Color("#00D26A") // green  — valid, success
	ColorWarning   = lipgloss.Color("#FFB800") // yellow — pending, warning
	ColorError     = lipgloss.Color("#FF4444") // red    — invalid, danger
	ColorHex       = lipgloss.Color("#00B4D8") // cyan   — addresses, calldata
	ColorValue     = lipgloss.Color("#FFFFFF") // white bold — entered values
	ColorMeta      = lipgloss.Color("#555555") // dim gray  — identifiers, hints
	ColorBorder    = lipgloss.Color("#1E3A5F") // dark blue — UI chrome
	ColorType      = lipgloss.Color("#9B5DE5") // purple    — ABI types
	ColorHighlight = lipgloss.Color("#F15BB5") // pink      — selected rows
)

// Base styles.
var (
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleHex     = lipgloss.NewStyle().Foreground(ColorHex)
	StyleValue   = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	StyleMeta    = lipgloss.NewStyle().Foreground(ColorMeta)
	StyleType    = lipgloss.NewStyle().Foreground(ColorType).Bold(true)

	StyleBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	StyleTitle = lipgloss.NewStyle().
			Foreground(ColorType).
			Bold(true).
			MarginBottom(1)

	StyleSelected = lipgloss.NewStyle().
			Background(ColorHighlight).
			Foreground(lipgloss.Color("#000000")).
			Bold(true)
)

// Success formats a success message.
func Success(msg string) string { return StyleSuccess.Render("✓ " + msg) }

// Warn formats a warning message.
func Warn(msg string) string { return StyleWarning.Render("⚠ " + msg) }

// Err formats an error message.
func Err(msg string) string { return StyleError.Render("✗ " + msg) }

// Hex formats an address or calldata string.
func Hex(h string) string { return StyleHex.Render(h) }

// Val formats an entered value.
func Val(v string) string { return StyleValue.Render(v) }

// Meta formats identifiers and hints.
func Meta(m string) string { return StyleMeta.Render(m) }

// TypeName formats an ABI type tag.
func TypeName(t string) string { return StyleType.Render(t) }

// TruncateHex shortens long hex for display: 0x1234…5678.
func TruncateHex(h string) string {
	if len(h) <= 20 {
		return h
	}
	return h[:10] + "…" + h[len(h)-8:]
}
