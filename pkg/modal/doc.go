// Package modal provides a declarative modal dialog with automatic hit region
// management for mouse support.
//
// Sections are rendered first and measured afterwards, so hit regions always
// match what was drawn. The modal handles Tab/Shift+Tab focus movement,
// Enter, Esc and hover state itself.
//
// # Quick Start
//
//	m := modal.New("Confirm payment", modal.WithVariant(modal.VariantInfo), modal.WithCloseIcon(true)).
//	    AddSection(modal.Text("Pay ₹500.00 for CN1001?")).
//	    AddSection(modal.Spacer()).
//	    AddSection(modal.Buttons(
//	        modal.Btn(" Cancel ", "cancel"),
//	        modal.Btn(" Proceed ", "proceed", modal.BtnPrimary()),
//	    ))
//
//	// In View():
//	content := m.Render(screenW, screenH, mouseHandler)
//
//	// In Update():
//	if action, cmd := m.HandleKey(keyMsg); action != "" {
//	    switch action {
//	    case "proceed":
//	        return pay()
//	    case modal.ActionCancel:
//	        return closeModal()
//	    }
//	}
//
// # Built-in Sections
//
//   - Text(s string) - static text, auto-wrapped
//   - Spacer() - blank line
//   - Buttons(btns ...ButtonDef) - button row with focus/hover styling
//   - Input(id string, model *textinput.Model, opts...) - labeled text input
//   - List(id string, items []ListItem, selectedIdx *int, opts...) - scrollable list
//   - When(condition func() bool, section) - conditional rendering
//   - Custom(renderFn, updateFn) - escape hatch for complex content
//
// # Options
//
//   - WithWidth(w int) - set modal width (default: 50)
//   - WithVariant(v Variant) - set visual style (Default, Danger, Warning, Info)
//   - WithHints(show bool) - show/hide keyboard hints at bottom
//   - WithPrimaryAction(actionID string) - action for implicit Enter submit
//   - WithCloseOnBackdropClick(close bool) - return ActionCancel on backdrop click
//   - WithCloseIcon(show bool) - draw a clickable ✕ in the header
//   - WithTitleIcon(glyph string) - glyph drawn before the title
package modal
