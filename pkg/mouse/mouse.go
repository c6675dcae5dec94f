// Package mouse maps terminal mouse events onto named screen regions.
package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DoubleClickThreshold is the longest gap between two clicks on the same
// region that still counts as a double click.
const DoubleClickThreshold = 400 * time.Millisecond

// Rect is a screen rectangle. W and H are exclusive bounds.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named rectangle with optional payload.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap holds regions in insertion order. Later regions sit on top.
type HitMap struct {
	regions []Region
}

// NewHitMap returns an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{}
}

// AddRect registers a region.
func (hm *HitMap) AddRect(id string, x, y, w, h int, data any) {
	hm.regions = append(hm.regions, Region{ID: id, Rect: Rect{X: x, Y: y, W: w, H: h}, Data: data})
}

// Test returns the topmost region containing (x, y), or nil.
func (hm *HitMap) Test(x, y int) *Region {
	for i := len(hm.regions) - 1; i >= 0; i-- {
		if hm.regions[i].Rect.Contains(x, y) {
			return &hm.regions[i]
		}
	}
	return nil
}

// Find returns the topmost region with the given id, or nil.
func (hm *HitMap) Find(id string) *Region {
	for i := len(hm.regions) - 1; i >= 0; i-- {
		if hm.regions[i].ID == id {
			return &hm.regions[i]
		}
	}
	return nil
}

// Regions returns the registered regions, bottom first.
func (hm *HitMap) Regions() []Region {
	return hm.regions
}

// Clear removes every region.
func (hm *HitMap) Clear() {
	hm.regions = hm.regions[:0]
}

// ActionType classifies a mouse event.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionDoubleClick
	ActionHover
	ActionScrollUp
	ActionScrollDown
	ActionScrollLeft
	ActionScrollRight
)

// Action is the result of handling one mouse event.
type Action struct {
	Type   ActionType
	Region *Region
	X, Y   int
}

// ClickResult describes a click.
type ClickResult struct {
	Region        *Region
	IsDoubleClick bool
}

// Handler turns raw mouse messages into actions against its HitMap.
type Handler struct {
	HitMap *HitMap

	now         func() time.Time
	lastClickAt time.Time
	lastClickID string
}

// NewHandler returns a handler with an empty hit map.
func NewHandler() *Handler {
	return &Handler{HitMap: NewHitMap(), now: time.Now}
}

// HandleClick resolves a click at (x, y) and tracks double clicks. A double
// click resets tracking so a third click starts over.
func (h *Handler) HandleClick(x, y int) ClickResult {
	region := h.HitMap.Test(x, y)
	now := h.now()

	id := ""
	if region != nil {
		id = region.ID
	}

	double := region != nil &&
		id == h.lastClickID &&
		!h.lastClickAt.IsZero() &&
		now.Sub(h.lastClickAt) <= DoubleClickThreshold

	if double {
		h.lastClickAt = time.Time{}
		h.lastClickID = ""
	} else {
		h.lastClickAt = now
		h.lastClickID = id
	}

	return ClickResult{Region: region, IsDoubleClick: double}
}

// HandleMouse classifies msg. Shift turns vertical wheel events horizontal.
func (h *Handler) HandleMouse(msg tea.MouseMsg) Action {
	action := Action{X: msg.X, Y: msg.Y}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			res := h.HandleClick(msg.X, msg.Y)
			action.Region = res.Region
			action.Type = ActionClick
			if res.IsDoubleClick {
				action.Type = ActionDoubleClick
			}
		case tea.MouseButtonWheelUp:
			action.Region = h.HitMap.Test(msg.X, msg.Y)
			action.Type = ActionScrollUp
			if msg.Shift {
				action.Type = ActionScrollLeft
			}
		case tea.MouseButtonWheelDown:
			action.Region = h.HitMap.Test(msg.X, msg.Y)
			action.Type = ActionScrollDown
			if msg.Shift {
				action.Type = ActionScrollRight
			}
		case tea.MouseButtonWheelLeft:
			action.Region = h.HitMap.Test(msg.X, msg.Y)
			action.Type = ActionScrollLeft
		case tea.MouseButtonWheelRight:
			action.Region = h.HitMap.Test(msg.X, msg.Y)
			action.Type = ActionScrollRight
		}
	case tea.MouseActionMotion:
		action.Region = h.HitMap.Test(msg.X, msg.Y)
		action.Type = ActionHover
	}

	return action
}

// Clear drops every region and forgets click history.
func (h *Handler) Clear() {
	h.HitMap.Clear()
	h.lastClickAt = time.Time{}
	h.lastClickID = ""
}
