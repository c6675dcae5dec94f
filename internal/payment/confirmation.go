package payment

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Confirmation is what the dialog hands to its confirm callback: the props it
// was opened with plus everything the user selected or entered.
type Confirmation struct {
	ConsumerNo   string      `json:"consumer_no" validate:"required"`
	Amount       float64     `json:"amount" validate:"gte=0"`
	PaymentType  PaymentType `json:"payment_type" validate:"oneof=pending total partial"`
	Language     Language    `json:"language" validate:"oneof=mr hi en"`
	Method       Method      `json:"-" validate:"-"`
	MobileNumber string      `json:"mobile_number" validate:"required,mobile10"`
	Email        string      `json:"email" validate:"required,email"`
}

type methodJSON struct {
	ID     MethodID `json:"id"`
	Number string   `json:"number,omitempty"`
	Date   string   `json:"date,omitempty"`
}

// MarshalJSON flattens the method into {"id", "number", "date"}.
func (c Confirmation) MarshalJSON() ([]byte, error) {
	type alias Confirmation
	var m methodJSON
	if c.Method != nil {
		m.ID = c.Method.ID()
		m.Number, m.Date = Instrument(c.Method)
	}
	return json.Marshal(struct {
		alias
		Method methodJSON `json:"method"`
	}{alias(c), m})
}

// MethodID returns the id of the selected method, or "" when none is set.
func (c Confirmation) MethodID() MethodID {
	if c.Method == nil {
		return ""
	}
	return c.Method.ID()
}

var mobilePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Ten-digit Indian mobile number.
	v.RegisterValidation("mobile10", func(fl validator.FieldLevel) bool {
		return mobilePattern.MatchString(fl.Field().String())
	})
	return v
}

// FieldError is a single failed rule.
type FieldError struct {
	Field string
	Tag   string
}

// ValidationError collects every rule a confirmation failed.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("invalid confirmation: %s failed %q", e.Errors[0].Field, e.Errors[0].Tag)
	}
	names := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		names[i] = fe.Field
	}
	return fmt.Sprintf("invalid confirmation: %d fields failed (%s)", len(e.Errors), strings.Join(names, ", "))
}

// HasErrors returns true if any rule failed.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

func (e *ValidationError) add(prefix string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		e.Errors = append(e.Errors, FieldError{Field: prefix + fe.Field(), Tag: fe.Tag()})
	}
	return nil
}

// Validate checks the confirmation and the fields of its method. The dialog
// never calls it; hosts that want to reject incomplete input do.
func (c Confirmation) Validate() error {
	verr := &ValidationError{}
	if err := validate.Struct(c); err != nil {
		if err := verr.add("", err); err != nil {
			return err
		}
	}

	switch m := c.Method.(type) {
	case nil:
		verr.Errors = append(verr.Errors, FieldError{Field: "method", Tag: "required"})
	case Cash:
	default:
		if err := validate.Struct(m); err != nil {
			if err := verr.add("method.", err); err != nil {
				return err
			}
		}
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}
