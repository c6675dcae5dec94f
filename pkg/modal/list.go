package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ListItem represents an item in a list section.
type ListItem struct {
	ID    string // Returned as the action when the item is chosen
	Label string // Display text, may be pre-styled
	Data  any    // Optional associated data
}

// ListOption is a functional option for List sections.
type ListOption func(*listSection)

type listSection struct {
	id           string
	items        []ListItem
	selectedIdx  *int // owned by the caller
	maxVisible   int
	scrollOffset int
	header       string
}

// List creates a list section. Enter or a click on an item returns the
// item's ID as the action. selectedIdx is the cursor and may be nil.
func List(id string, items []ListItem, selectedIdx *int, opts ...ListOption) Section {
	s := &listSection{
		id:          id,
		items:       items,
		selectedIdx: selectedIdx,
		maxVisible:  5,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithMaxVisible sets the maximum number of visible items.
func WithMaxVisible(n int) ListOption {
	return func(s *listSection) {
		if n > 0 {
			s.maxVisible = n
		}
	}
}

// WithListHeader draws a muted caption above the items.
func WithListHeader(text string) ListOption {
	return func(s *listSection) { s.header = text }
}

func (s *listSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	if len(s.items) == 0 {
		return RenderedSection{Content: MutedText.Render("(no items)")}
	}

	visibleCount := min(s.maxVisible, len(s.items))
	selectedIdx := 0
	if s.selectedIdx != nil {
		selectedIdx = *s.selectedIdx
	}

	// Keep the cursor on screen.
	if selectedIdx < s.scrollOffset {
		s.scrollOffset = selectedIdx
	} else if selectedIdx >= s.scrollOffset+visibleCount {
		s.scrollOffset = selectedIdx - visibleCount + 1
	}
	s.scrollOffset = clamp(s.scrollOffset, 0, max(0, len(s.items)-visibleCount))

	listIsFocused := focusID == s.id

	var (
		lines      []string
		clickables []FocusableInfo
	)
	if s.header != "" {
		lines = append(lines, MutedText.Render(s.header))
	}
	if s.scrollOffset > 0 {
		lines = append(lines, MutedText.Render("↑ more above"))
	}
	firstItemY := len(lines)

	for i := 0; i < visibleCount; i++ {
		itemIdx := s.scrollOffset + i
		item := s.items[itemIdx]
		isSelected := s.selectedIdx != nil && *s.selectedIdx == itemIdx

		style := ListItemNormal
		switch {
		case isSelected && listIsFocused:
			style = ListItemFocused
		case isSelected, item.ID == hoverID:
			style = ListItemSelected
		}

		cursor := "  "
		if isSelected {
			cursor = ListCursor.Render("> ")
		}
		lines = append(lines, cursor+style.Render(item.Label))
		clickables = append(clickables, FocusableInfo{
			ID:      item.ID,
			OffsetY: firstItemY + i,
			Width:   contentWidth,
			Height:  1,
		})
	}

	if s.scrollOffset+visibleCount < len(s.items) {
		lines = append(lines, MutedText.Render("↓ more below"))
	}

	// The list is one Tab stop; items are reachable with the arrow keys or
	// by clicking.
	return RenderedSection{
		Content: strings.Join(lines, "\n"),
		Focusables: []FocusableInfo{{
			ID:      s.id,
			OffsetY: firstItemY,
			Width:   contentWidth,
			Height:  visibleCount,
		}},
		Clickables: clickables,
	}
}

func (s *listSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if focusID != s.id || s.selectedIdx == nil || len(s.items) == 0 {
		return "", nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return "", nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if *s.selectedIdx > 0 {
			*s.selectedIdx--
		}
	case "down", "j":
		if *s.selectedIdx < len(s.items)-1 {
			*s.selectedIdx++
		}
	case "home":
		*s.selectedIdx = 0
	case "end":
		*s.selectedIdx = len(s.items) - 1
	case "enter", " ":
		if *s.selectedIdx >= 0 && *s.selectedIdx < len(s.items) {
			return s.items[*s.selectedIdx].ID, nil
		}
	}
	return "", nil
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
