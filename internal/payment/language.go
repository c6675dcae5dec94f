// Package payment defines the domain types shared by the confirmation dialog,
// the host CLI and the receipt journal.
package payment

import (
	"fmt"
	"strings"
)

// Language selects a translation set.
type Language string

const (
	LangMarathi Language = "mr"
	LangHindi   Language = "hi"
	LangEnglish Language = "en"
)

// Languages lists the supported languages in display order.
var Languages = []Language{LangMarathi, LangHindi, LangEnglish}

// UnsupportedLanguageError is returned when a language outside the supported
// set is requested.
type UnsupportedLanguageError struct {
	Value string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported language %q (want one of mr, hi, en)", e.Value)
}

// ParseLanguage normalizes s and returns the matching Language.
func ParseLanguage(s string) (Language, error) {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	if !l.IsValid() {
		return "", &UnsupportedLanguageError{Value: s}
	}
	return l, nil
}

// IsValid reports whether l is one of the supported languages.
func (l Language) IsValid() bool {
	switch l {
	case LangMarathi, LangHindi, LangEnglish:
		return true
	}
	return false
}

// NativeName returns the language's own name, used in pickers.
func (l Language) NativeName() string {
	switch l {
	case LangMarathi:
		return "मराठी"
	case LangHindi:
		return "हिन्दी"
	case LangEnglish:
		return "English"
	default:
		return string(l)
	}
}

// String implements pflag.Value.
func (l Language) String() string {
	return string(l)
}

// Set implements pflag.Value.
func (l *Language) Set(s string) error {
	v, err := ParseLanguage(s)
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Type implements pflag.Value.
func (l *Language) Type() string {
	return "language"
}
