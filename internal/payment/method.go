package payment

import "fmt"

// MethodID names a payment method.
type MethodID string

const (
	MethodCash   MethodID = "cash"
	MethodCheque MethodID = "cheque"
	MethodDD     MethodID = "dd"
	MethodRTGS   MethodID = "rtgs"
)

// MethodOrder is the fixed order in which methods are offered.
var MethodOrder = []MethodID{MethodCash, MethodCheque, MethodDD, MethodRTGS}

// DefaultMethod is preselected when the dialog opens.
const DefaultMethod = MethodCash

// ParseMethodID returns the MethodID named by s.
func ParseMethodID(s string) (MethodID, error) {
	id := MethodID(s)
	if !id.IsValid() {
		return "", fmt.Errorf("unknown payment method %q", s)
	}
	return id, nil
}

// IsValid reports whether id is a known method.
func (id MethodID) IsValid() bool {
	switch id {
	case MethodCash, MethodCheque, MethodDD, MethodRTGS:
		return true
	}
	return false
}

// LabelKey is the translation key of the method's label.
func (id MethodID) LabelKey() string {
	return string(id)
}

// Index returns the position of id in MethodOrder, or -1.
func (id MethodID) Index() int {
	for i, m := range MethodOrder {
		if m == id {
			return i
		}
	}
	return -1
}

// Accent is the visual marker of a method: a glyph drawn on a tinted chip.
type Accent struct {
	Glyph      string
	Color      string
	Background string
}

// Accent returns the rendering accent for id.
func (id MethodID) Accent() Accent {
	switch id {
	case MethodCash:
		return Accent{Glyph: "▭", Color: "#4CAF50", Background: "#E8F5E9"}
	case MethodCheque:
		return Accent{Glyph: "✎", Color: "#9C27B0", Background: "#F3E5F5"}
	case MethodDD:
		return Accent{Glyph: "▤", Color: "#757575", Background: "#F5F5F5"}
	case MethodRTGS:
		return Accent{Glyph: "⇄", Color: "#2196F3", Background: "#E3F2FD"}
	default:
		return Accent{Glyph: "?", Color: "#757575", Background: "#F5F5F5"}
	}
}

// FieldKey identifies one entry field of the dialog.
type FieldKey string

const (
	FieldMobileNumber FieldKey = "mobile_number"
	FieldEmail        FieldKey = "email"
	FieldChequeNumber FieldKey = "cheque_number"
	FieldChequeDate   FieldKey = "cheque_date"
	FieldDDNumber     FieldKey = "dd_number"
	FieldDDDate       FieldKey = "dd_date"
	FieldRTGSNumber   FieldKey = "rtgs_number"
	FieldRTGSDate     FieldKey = "rtgs_date"
)

// FieldKind selects how a field accepts input.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldDate
)

// DateLayout is the calendar date format accepted by date fields.
const DateLayout = "2006-01-02"

// FieldSpec describes a method-specific field.
type FieldSpec struct {
	Key            FieldKey
	Kind           FieldKind
	LabelKey       string
	PlaceholderKey string // empty for date fields
}

// Fields returns the entry fields that belong to id. Cash has none.
func (id MethodID) Fields() []FieldSpec {
	switch id {
	case MethodCheque:
		return []FieldSpec{
			{Key: FieldChequeNumber, Kind: FieldText, LabelKey: "chequeNumber", PlaceholderKey: "chequeNumberPlaceholder"},
			{Key: FieldChequeDate, Kind: FieldDate, LabelKey: "chequeDate"},
		}
	case MethodDD:
		return []FieldSpec{
			{Key: FieldDDNumber, Kind: FieldText, LabelKey: "ddNumber", PlaceholderKey: "ddNumberPlaceholder"},
			{Key: FieldDDDate, Kind: FieldDate, LabelKey: "ddDate"},
		}
	case MethodRTGS:
		return []FieldSpec{
			{Key: FieldRTGSNumber, Kind: FieldText, LabelKey: "rtgsNumber", PlaceholderKey: "rtgsNumberPlaceholder"},
			{Key: FieldRTGSDate, Kind: FieldDate, LabelKey: "rtgsDate"},
		}
	default:
		return nil
	}
}

// Method is a selected payment method together with the values entered for
// it. The concrete types are Cash, Cheque, DemandDraft and RTGS.
type Method interface {
	ID() MethodID
	isMethod()
}

// Cash carries no instrument details.
type Cash struct{}

// Cheque is identified by its number and date.
type Cheque struct {
	Number string `json:"number" validate:"required"`
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
}

// DemandDraft is identified by its number and issue date.
type DemandDraft struct {
	Number string `json:"number" validate:"required"`
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
}

// RTGS is identified by the transfer reference and its date.
type RTGS struct {
	Reference string `json:"reference" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
}

func (Cash) ID() MethodID        { return MethodCash }
func (Cheque) ID() MethodID      { return MethodCheque }
func (DemandDraft) ID() MethodID { return MethodDD }
func (RTGS) ID() MethodID        { return MethodRTGS }

func (Cash) isMethod()        {}
func (Cheque) isMethod()      {}
func (DemandDraft) isMethod() {}
func (RTGS) isMethod()        {}

// Instrument returns the reference number and date carried by m. Both are
// empty for cash.
func Instrument(m Method) (number, date string) {
	switch v := m.(type) {
	case Cheque:
		return v.Number, v.Date
	case DemandDraft:
		return v.Number, v.Date
	case RTGS:
		return v.Reference, v.Date
	default:
		return "", ""
	}
}

// NewMethod builds the Method for id from an instrument number and date.
func NewMethod(id MethodID, number, date string) (Method, error) {
	switch id {
	case MethodCash:
		return Cash{}, nil
	case MethodCheque:
		return Cheque{Number: number, Date: date}, nil
	case MethodDD:
		return DemandDraft{Number: number, Date: date}, nil
	case MethodRTGS:
		return RTGS{Reference: number, Date: date}, nil
	}
	return nil, fmt.Errorf("unknown payment method %q", id)
}
