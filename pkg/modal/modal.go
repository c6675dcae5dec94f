package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/billpay/pkg/mouse"
)

// Reserved region ids.
const (
	BackdropID = "modal:backdrop"
	BodyID     = "modal:body"
	CloseID    = "modal:close"
)

// ActionCancel is returned for Esc, the close icon and (when enabled) a click
// on the backdrop.
const ActionCancel = "cancel"

const defaultWidth = 50

// Variant selects the modal's accent colour.
type Variant int

const (
	VariantDefault Variant = iota
	VariantDanger
	VariantWarning
	VariantInfo
)

// Section is one vertical block of a modal.
type Section interface {
	// Render draws the section. Focusable offsets are relative to the
	// section's top-left corner.
	Render(contentWidth int, focusID, hoverID string) RenderedSection
	// Update handles a message while focusID has focus. A non-empty string
	// is an action for the caller.
	Update(msg tea.Msg, focusID string) (string, tea.Cmd)
}

// RenderedSection is the output of Section.Render.
type RenderedSection struct {
	Content string
	// Focusables take part in Tab order.
	Focusables []FocusableInfo
	// Clickables return their ID as an action when clicked.
	Clickables []FocusableInfo
}

// FocusableInfo locates an interactive element inside a section.
type FocusableInfo struct {
	ID      string
	OffsetX int
	OffsetY int
	Width   int
	Height  int
}

type regionKind int

const (
	regionFocus regionKind = iota + 1
	regionClick
)

// Option configures a Modal.
type Option func(*Modal)

// WithWidth sets the total modal width including the border.
func WithWidth(w int) Option {
	return func(m *Modal) {
		if w > 0 {
			m.width = w
		}
	}
}

// WithVariant sets the accent colour.
func WithVariant(v Variant) Option {
	return func(m *Modal) { m.variant = v }
}

// WithHints shows keyboard hints under the last section.
func WithHints(show bool) Option {
	return func(m *Modal) { m.showHints = show }
}

// WithPrimaryAction sets the action returned when Enter is not consumed by
// the focused element.
func WithPrimaryAction(actionID string) Option {
	return func(m *Modal) { m.primaryAction = actionID }
}

// WithCloseOnBackdropClick makes backdrop clicks return ActionCancel.
func WithCloseOnBackdropClick(close bool) Option {
	return func(m *Modal) { m.closeOnBackdrop = close }
}

// WithCloseIcon draws a clickable ✕ at the right of the header.
func WithCloseIcon(show bool) Option {
	return func(m *Modal) { m.closeIcon = show }
}

// WithTitleIcon draws glyph before the title.
func WithTitleIcon(glyph string) Option {
	return func(m *Modal) { m.icon = glyph }
}

// Modal is a dialog made of sections.
type Modal struct {
	title           string
	icon            string
	width           int
	variant         Variant
	showHints       bool
	primaryAction   string
	closeOnBackdrop bool
	closeIcon       bool
	sections        []Section

	focusID     string
	hoverID     string
	focusIDs    []string
	clickOwners map[string]string
	lastWidth   int
}

// New creates an empty modal.
func New(title string, opts ...Option) *Modal {
	m := &Modal{
		title:       title,
		width:       defaultWidth,
		clickOwners: make(map[string]string),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddSection appends s and returns the modal for chaining.
func (m *Modal) AddSection(s Section) *Modal {
	m.sections = append(m.sections, s)
	return m
}

// SetTitle replaces the header text.
func (m *Modal) SetTitle(title string) {
	m.title = title
}

// FocusedID returns the id of the focused element.
func (m *Modal) FocusedID() string {
	return m.focusID
}

// HoverID returns the id of the element under the mouse.
func (m *Modal) HoverID() string {
	return m.hoverID
}

// SetFocus moves focus to id. Unknown ids are corrected on the next render.
func (m *Modal) SetFocus(id string) {
	m.focusID = id
}

// FocusIDs returns the Tab order computed by the last layout.
func (m *Modal) FocusIDs() []string {
	return m.focusIDs
}

type layout struct {
	content    string
	focusables []FocusableInfo
	clickables []FocusableInfo
}

func (m *Modal) contentWidth(screenW int) int {
	w := m.width
	if screenW > 0 && w > screenW {
		w = screenW
	}
	return max(w-4, 10)
}

func (m *Modal) renderHeader(contentWidth int) string {
	color := variantColor(m.variant)
	closeW := 0
	if m.closeIcon {
		closeW = 2
	}

	title := m.title
	if m.icon != "" {
		title = m.icon + " " + title
	}
	title = ansi.Truncate(title, contentWidth-closeW, "…")
	left := ModalTitle.Foreground(color).Render(title)

	line := left
	if m.closeIcon {
		gap := max(contentWidth-ansi.StringWidth(left)-1, 1)
		line += strings.Repeat(" ", gap) + ModalTitle.Foreground(color).Render("✕")
	}
	return line + "\n" + Rule.Render(strings.Repeat("─", contentWidth))
}

// layoutSections renders every section and converts their element offsets
// to offsets within the content area.
func (m *Modal) layoutSections(contentWidth int) layout {
	var (
		blocks []string
		out    layout
	)

	header := m.renderHeader(contentWidth)
	blocks = append(blocks, header)
	y := lipgloss.Height(header)

	clear(m.clickOwners)
	for _, s := range m.sections {
		r := s.Render(contentWidth, m.focusID, m.hoverID)
		if r.Content == "" {
			continue
		}
		for _, f := range r.Focusables {
			f.OffsetY += y
			out.focusables = append(out.focusables, f)
		}
		owner := ""
		if len(r.Focusables) > 0 {
			owner = r.Focusables[0].ID
		}
		for _, c := range r.Clickables {
			m.clickOwners[c.ID] = owner
			for _, f := range r.Focusables {
				if f.ID == c.ID {
					m.clickOwners[c.ID] = c.ID
				}
			}
			c.OffsetY += y
			out.clickables = append(out.clickables, c)
		}
		blocks = append(blocks, r.Content)
		y += lipgloss.Height(r.Content)
	}

	if m.showHints {
		blocks = append(blocks, " ", MutedText.Render("tab next · shift+tab back · enter select · esc cancel"))
	}

	out.content = strings.Join(blocks, "\n")
	return out
}

// refresh lays the modal out, repairs focus and records the Tab order.
func (m *Modal) refresh(contentWidth int) layout {
	l := m.layoutSections(contentWidth)

	ids := make([]string, 0, len(l.focusables))
	found := false
	for _, f := range l.focusables {
		ids = append(ids, f.ID)
		if f.ID == m.focusID {
			found = true
		}
	}
	m.focusIDs = ids

	if !found {
		m.focusID = ""
		if len(ids) > 0 {
			m.focusID = ids[0]
		}
		l = m.layoutSections(contentWidth)
	}
	m.lastWidth = contentWidth
	return l
}

// Render draws the modal centered over a backdrop filling screenW x screenH
// and registers hit regions with handler (which may be nil).
func (m *Modal) Render(screenW, screenH int, handler *mouse.Handler) string {
	contentWidth := m.contentWidth(screenW)
	l := m.refresh(contentWidth)

	color := variantColor(m.variant)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Width(contentWidth + 2).
		Render(l.content)

	boxLines := strings.Split(box, "\n")
	boxW := 0
	for _, line := range boxLines {
		boxW = max(boxW, ansi.StringWidth(line))
	}
	boxH := len(boxLines)

	x0 := max((screenW-boxW)/2, 0)
	y0 := max((screenH-boxH)/2, 0)

	if handler != nil {
		hm := handler.HitMap
		hm.Clear()
		hm.AddRect(BackdropID, 0, 0, max(screenW, boxW), max(screenH, boxH), nil)
		hm.AddRect(BodyID, x0, y0, boxW, boxH, nil)

		// Border plus horizontal padding.
		originX, originY := x0+2, y0+1
		if m.closeIcon {
			hm.AddRect(CloseID, originX+contentWidth-1, originY, 1, 1, nil)
		}
		for _, f := range l.focusables {
			hm.AddRect(f.ID, originX+f.OffsetX, originY+f.OffsetY, f.Width, f.Height, regionFocus)
		}
		for _, c := range l.clickables {
			hm.AddRect(c.ID, originX+c.OffsetX, originY+c.OffsetY, c.Width, c.Height, regionClick)
		}
	}

	return composite(boxLines, boxW, x0, y0, screenW, screenH)
}

// composite draws box lines at (x0, y0) over a backdrop.
func composite(boxLines []string, boxW, x0, y0, screenW, screenH int) string {
	rows := max(screenH, y0+len(boxLines))
	fill := func(n int) string {
		if n <= 0 {
			return ""
		}
		return Backdrop.Render(strings.Repeat("░", n))
	}

	var sb strings.Builder
	for y := 0; y < rows; y++ {
		if y > 0 {
			sb.WriteString("\n")
		}
		i := y - y0
		if i < 0 || i >= len(boxLines) {
			sb.WriteString(fill(screenW))
			continue
		}
		line := boxLines[i]
		sb.WriteString(fill(x0))
		sb.WriteString(line)
		pad := boxW - ansi.StringWidth(line)
		if pad > 0 {
			sb.WriteString(strings.Repeat(" ", pad))
		}
		sb.WriteString(fill(screenW - x0 - boxW))
	}
	return sb.String()
}

func (m *Modal) cycleFocus(delta int) {
	n := len(m.focusIDs)
	if n == 0 {
		return
	}
	idx := -1
	for i, id := range m.focusIDs {
		if id == m.focusID {
			idx = i
			break
		}
	}
	if idx == -1 {
		m.focusID = m.focusIDs[0]
		return
	}
	m.focusID = m.focusIDs[(idx+delta+n)%n]
}

// HandleKey processes a key press and returns the resulting action, if any.
func (m *Modal) HandleKey(msg tea.KeyMsg) (string, tea.Cmd) {
	width := m.lastWidth
	if width == 0 {
		width = m.contentWidth(0)
	}
	// Sections may have appeared or vanished since the last render.
	m.refresh(width)

	switch msg.String() {
	case "tab":
		m.cycleFocus(1)
		return "", nil
	case "shift+tab":
		m.cycleFocus(-1)
		return "", nil
	case "esc":
		return ActionCancel, nil
	}

	var cmds []tea.Cmd
	for _, s := range m.sections {
		action, cmd := s.Update(msg, m.focusID)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if action != "" {
			return action, tea.Batch(cmds...)
		}
	}

	if msg.String() == "enter" && m.primaryAction != "" {
		return m.primaryAction, tea.Batch(cmds...)
	}
	return "", tea.Batch(cmds...)
}

// HandleMouse processes a mouse event against the regions registered by the
// last Render and returns the resulting action, if any.
func (m *Modal) HandleMouse(msg tea.MouseMsg, handler *mouse.Handler) (string, tea.Cmd) {
	if handler == nil {
		return "", nil
	}
	action := handler.HandleMouse(msg)

	switch action.Type {
	case mouse.ActionHover:
		m.hoverID = ""
		if action.Region != nil {
			if _, ok := action.Region.Data.(regionKind); ok {
				m.hoverID = action.Region.ID
			}
		}
		return "", nil

	case mouse.ActionClick, mouse.ActionDoubleClick:
		r := action.Region
		if r == nil {
			return "", nil
		}
		switch r.ID {
		case BackdropID:
			if m.closeOnBackdrop {
				return ActionCancel, nil
			}
			return "", nil
		case BodyID:
			return "", nil
		case CloseID:
			return ActionCancel, nil
		}

		switch r.Data {
		case regionClick:
			if owner := m.clickOwners[r.ID]; owner != "" {
				m.focusID = owner
			}
			return r.ID, nil
		case regionFocus:
			m.focusID = r.ID
		}

	case mouse.ActionScrollUp, mouse.ActionScrollDown:
		key := tea.KeyMsg{Type: tea.KeyDown}
		if action.Type == mouse.ActionScrollUp {
			key = tea.KeyMsg{Type: tea.KeyUp}
		}
		return m.HandleKey(key)
	}

	return "", nil
}
