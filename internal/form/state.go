// Package form holds the confirmation dialog's form state and the reducer
// that is its only update path.
package form

import (
	"github.com/marcus/billpay/internal/payment"
)

// Prefilled contact details used when the host supplies none.
const (
	DefaultMobileNumber = "9876543210"
	DefaultEmail        = "rajesh.sharma@example.com"
)

// Contact is the read-only contact information shown in the dialog.
type Contact struct {
	MobileNumber string
	Email        string
}

// State is the dialog's mutable form state. It is a plain value: Reduce
// returns a new State and never modifies its argument.
type State struct {
	SelectedMethod payment.MethodID
	DropdownOpen   bool

	MobileNumber string
	Email        string

	ChequeNumber string
	ChequeDate   string
	DDNumber     string
	DDDate       string
	RTGSNumber   string
	RTGSDate     string
}

// New returns the state of a freshly opened dialog.
func New(c Contact) State {
	if c.MobileNumber == "" {
		c.MobileNumber = DefaultMobileNumber
	}
	if c.Email == "" {
		c.Email = DefaultEmail
	}
	return State{
		SelectedMethod: payment.DefaultMethod,
		MobileNumber:   c.MobileNumber,
		Email:          c.Email,
	}
}

// Field returns the current value of key.
func (s State) Field(key payment.FieldKey) string {
	switch key {
	case payment.FieldMobileNumber:
		return s.MobileNumber
	case payment.FieldEmail:
		return s.Email
	case payment.FieldChequeNumber:
		return s.ChequeNumber
	case payment.FieldChequeDate:
		return s.ChequeDate
	case payment.FieldDDNumber:
		return s.DDNumber
	case payment.FieldDDDate:
		return s.DDDate
	case payment.FieldRTGSNumber:
		return s.RTGSNumber
	case payment.FieldRTGSDate:
		return s.RTGSDate
	}
	return ""
}

// VisibleFields returns the fields shown for the selected method.
func (s State) VisibleFields() []payment.FieldSpec {
	return s.SelectedMethod.Fields()
}

// Method builds the selected method from the values entered for it. Values
// typed for other methods are ignored.
func (s State) Method() payment.Method {
	switch s.SelectedMethod {
	case payment.MethodCheque:
		return payment.Cheque{Number: s.ChequeNumber, Date: s.ChequeDate}
	case payment.MethodDD:
		return payment.DemandDraft{Number: s.DDNumber, Date: s.DDDate}
	case payment.MethodRTGS:
		return payment.RTGS{Reference: s.RTGSNumber, Date: s.RTGSDate}
	default:
		return payment.Cash{}
	}
}
