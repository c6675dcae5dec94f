package modal

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// InputOption configures an Input section.
type InputOption func(*inputSection)

// WithLabel draws label on its own line above the field.
func WithLabel(label string) InputOption {
	return func(s *inputSection) { s.label = label }
}

// WithRequiredMarker appends a red asterisk to the label. It is decorative.
func WithRequiredMarker() InputOption {
	return func(s *inputSection) { s.required = true }
}

// WithReadOnly shows the model's value without taking focus or input.
func WithReadOnly() InputOption {
	return func(s *inputSection) { s.readOnly = true }
}

// WithSubmitAction sets the action returned when Enter is pressed in the
// field. Without it Enter falls through to the modal's primary action.
func WithSubmitAction(action string) InputOption {
	return func(s *inputSection) { s.submitAction = action }
}

// WithAccept restricts typed runes to those accept allows.
func WithAccept(accept func(r rune) bool) InputOption {
	return func(s *inputSection) { s.accept = accept }
}

type inputSection struct {
	id           string
	model        *textinput.Model
	label        string
	required     bool
	readOnly     bool
	submitAction string
	accept       func(r rune) bool
}

// Input renders a labeled single-line text field bound to model.
func Input(id string, model *textinput.Model, opts ...InputOption) Section {
	s := &inputSection{id: id, model: model}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *inputSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	var lines []string
	if s.label != "" {
		label := Label.Render(s.label)
		if s.required {
			label += " " + RequiredMark.Render("*")
		}
		lines = append(lines, label)
	}
	fieldY := len(lines)

	if s.readOnly {
		lines = append(lines, InputBar.Render("│ ")+ReadOnlyValue.Render(s.model.Value()))
		return RenderedSection{Content: strings.Join(lines, "\n")}
	}

	focused := focusID == s.id
	if focused && !s.model.Focused() {
		s.model.Focus()
	} else if !focused && s.model.Focused() {
		s.model.Blur()
	}

	bar := InputBar
	if focused || hoverID == s.id {
		bar = InputBarFocused
	}
	s.model.Prompt = ""
	s.model.Width = max(contentWidth-3, 1)
	var field string
	if s.model.Value() == "" && s.model.Placeholder != "" {
		field = s.placeholderView(contentWidth-3, focused)
	} else {
		field = s.model.View()
	}
	lines = append(lines, bar.Render("│ ")+field)

	return RenderedSection{
		Content: strings.Join(lines, "\n"),
		Focusables: []FocusableInfo{{
			ID:      s.id,
			OffsetY: fieldY,
			Width:   contentWidth,
			Height:  1,
		}},
	}
}

// placeholderView draws the placeholder measured in cells. textinput counts
// runes, which cuts off scripts with combining marks.
func (s *inputSection) placeholderView(width int, focused bool) string {
	if !focused {
		return s.model.PlaceholderStyle.Render(ansi.Truncate(s.model.Placeholder, max(width, 1), "…"))
	}
	c := s.model.Cursor
	c.SetChar(" ")
	return c.View() + s.model.PlaceholderStyle.Render(ansi.Truncate(s.model.Placeholder, max(width-1, 1), "…"))
}

func (s *inputSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if s.readOnly || focusID != s.id {
		return "", nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return "", nil
	}

	switch keyMsg.Type {
	case tea.KeyEnter:
		return s.submitAction, nil
	case tea.KeyRunes, tea.KeySpace:
		if s.accept != nil {
			for _, r := range keyMsg.Runes {
				if !s.accept(r) {
					return "", nil
				}
			}
		}
	}

	if !s.model.Focused() {
		s.model.Focus()
	}
	var cmd tea.Cmd
	*s.model, cmd = s.model.Update(msg)
	return "", cmd
}
