package form

import (
	"github.com/marcus/billpay/internal/payment"
)

// Action is an input event the reducer understands.
type Action interface {
	isAction()
}

// ToggleDropdown flips the method menu open or closed.
type ToggleDropdown struct{}

// CloseDropdown closes the method menu if it is open.
type CloseDropdown struct{}

// SelectMethod picks a method and closes the menu.
type SelectMethod struct {
	Method payment.MethodID
}

// SetField stores a keystroke's result in one field.
type SetField struct {
	Field payment.FieldKey
	Value string
}

func (ToggleDropdown) isAction() {}
func (CloseDropdown) isAction()  {}
func (SelectMethod) isAction()   {}
func (SetField) isAction()       {}

// Reduce applies a to s and returns the resulting state.
//
// Selecting an unknown method only closes the menu. Contact fields are
// read-only, so SetField on them is ignored.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case ToggleDropdown:
		s.DropdownOpen = !s.DropdownOpen
	case CloseDropdown:
		s.DropdownOpen = false
	case SelectMethod:
		if a.Method.IsValid() {
			s.SelectedMethod = a.Method
		}
		s.DropdownOpen = false
	case SetField:
		switch a.Field {
		case payment.FieldChequeNumber:
			s.ChequeNumber = a.Value
		case payment.FieldChequeDate:
			s.ChequeDate = a.Value
		case payment.FieldDDNumber:
			s.DDNumber = a.Value
		case payment.FieldDDDate:
			s.DDDate = a.Value
		case payment.FieldRTGSNumber:
			s.RTGSNumber = a.Value
		case payment.FieldRTGSDate:
			s.RTGSDate = a.Value
		}
	}
	return s
}
