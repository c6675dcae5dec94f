package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

type textSection struct {
	text string
}

// Text renders static text wrapped to the content width.
func Text(s string) Section {
	return &textSection{text: s}
}

func (s *textSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	return RenderedSection{Content: Body.Width(contentWidth).Render(s.text)}
}

func (s *textSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	return "", nil
}

type spacerSection struct{}

// Spacer renders a blank line.
func Spacer() Section {
	return spacerSection{}
}

func (spacerSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	// Empty content means "skip", so a spacer is a single space.
	return RenderedSection{Content: " "}
}

func (spacerSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	return "", nil
}

// ButtonDef describes one button. Its action doubles as its focus id.
type ButtonDef struct {
	Label   string
	Action  string
	danger  bool
	primary bool
}

// BtnOption configures a button.
type BtnOption func(*ButtonDef)

// BtnDanger styles the button as destructive.
func BtnDanger() BtnOption {
	return func(b *ButtonDef) { b.danger = true }
}

// BtnPrimary styles the button as the main call to action.
func BtnPrimary() BtnOption {
	return func(b *ButtonDef) { b.primary = true }
}

// Btn creates a button.
func Btn(label, action string, opts ...BtnOption) ButtonDef {
	b := ButtonDef{Label: label, Action: action}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

type buttonsSection struct {
	buttons []ButtonDef
}

// Buttons renders a row of buttons separated by two spaces.
func Buttons(btns ...ButtonDef) Section {
	return &buttonsSection{buttons: btns}
}

func (b ButtonDef) style(focused, hovered bool) lipgloss.Style {
	switch {
	case b.danger && focused:
		return ButtonDangerFocused
	case b.primary && focused:
		return ButtonPrimaryFocused
	case focused:
		return ButtonFocused
	case hovered:
		return ButtonHover
	case b.danger:
		return ButtonDanger
	case b.primary:
		return ButtonPrimary
	default:
		return Button
	}
}

func (s *buttonsSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	const gap = 2

	var (
		parts []string
		infos []FocusableInfo
		x     int
	)
	for _, b := range s.buttons {
		rendered := b.style(b.Action == focusID, b.Action == hoverID).Render(b.Label)
		w := ansi.StringWidth(rendered)
		infos = append(infos, FocusableInfo{ID: b.Action, OffsetX: x, Width: w, Height: 1})
		parts = append(parts, rendered)
		x += w + gap
	}

	return RenderedSection{
		Content:    strings.Join(parts, strings.Repeat(" ", gap)),
		Focusables: infos,
		Clickables: infos,
	}
}

func (s *buttonsSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return "", nil
	}
	switch keyMsg.String() {
	case "enter", " ":
		for _, b := range s.buttons {
			if b.Action == focusID {
				return b.Action, nil
			}
		}
	}
	return "", nil
}

type whenSection struct {
	cond    func() bool
	section Section
}

// When shows section only while cond returns true. Hidden sections take no
// space and cannot be focused.
func When(cond func() bool, section Section) Section {
	return &whenSection{cond: cond, section: section}
}

func (s *whenSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	if !s.cond() {
		return RenderedSection{}
	}
	return s.section.Render(contentWidth, focusID, hoverID)
}

func (s *whenSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if !s.cond() {
		return "", nil
	}
	return s.section.Update(msg, focusID)
}

type customSection struct {
	render func(contentWidth int, focusID, hoverID string) RenderedSection
	update func(msg tea.Msg, focusID string) (string, tea.Cmd)
}

// Custom builds a section from functions. update may be nil.
func Custom(
	render func(contentWidth int, focusID, hoverID string) RenderedSection,
	update func(msg tea.Msg, focusID string) (string, tea.Cmd),
) Section {
	return &customSection{render: render, update: update}
}

func (s *customSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	return s.render(contentWidth, focusID, hoverID)
}

func (s *customSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if s.update == nil {
		return "", nil
	}
	return s.update(msg, focusID)
}
