package modal

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette
var (
	Primary      = lipgloss.Color("#33A1FD") // header blue
	Success      = lipgloss.Color("#4CAF50") // proceed green
	Error        = lipgloss.Color("196")
	Warning      = lipgloss.Color("214")
	Info         = lipgloss.Color("45")
	Muted        = lipgloss.Color("241")
	TextMuted    = lipgloss.Color("244")
	BorderNormal = lipgloss.Color("240")
	BackdropTint = lipgloss.Color("236")
)

// Buttons
var (
	Button = lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Background(lipgloss.Color("238")).
		Padding(0, 2)

	ButtonFocused = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(Primary).
			Bold(true).
			Padding(0, 2)

	ButtonHover = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("245")).
			Padding(0, 2)

	ButtonPrimary = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(Success).
			Padding(0, 2)

	ButtonPrimaryFocused = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("#43A047")).
				Bold(true).
				Underline(true).
				Padding(0, 2)

	ButtonDanger = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238")).
			Padding(0, 2)

	ButtonDangerFocused = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(Error).
				Bold(true).
				Padding(0, 2)
)

// Text
var (
	ModalTitle   = lipgloss.NewStyle().Bold(true)
	MutedText    = lipgloss.NewStyle().Foreground(Muted)
	Body         = lipgloss.NewStyle()
	Label        = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	RequiredMark = lipgloss.NewStyle().Foreground(Error)
	Backdrop     = lipgloss.NewStyle().Foreground(BackdropTint)
	Rule         = lipgloss.NewStyle().Foreground(BorderNormal)
)

// Inputs
var (
	InputBar        = lipgloss.NewStyle().Foreground(BorderNormal)
	InputBarFocused = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	ReadOnlyValue   = lipgloss.NewStyle().Foreground(TextMuted)
)

// Lists
var (
	ListItemNormal = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	ListItemSelected = lipgloss.NewStyle().
				Background(lipgloss.Color("237")).
				Foreground(lipgloss.Color("255"))

	ListItemFocused = lipgloss.NewStyle().
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("255")).
			Bold(true)

	ListCursor = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)
)

// variantColor returns the border and title colour for v.
func variantColor(v Variant) lipgloss.Color {
	switch v {
	case VariantDanger:
		return Error
	case VariantWarning:
		return Warning
	case VariantInfo:
		return Primary
	default:
		return BorderNormal
	}
}
