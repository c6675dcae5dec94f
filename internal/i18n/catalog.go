// Package i18n holds the dialog's translation table. Messages live in
// embedded TOML files, one per language, and are loaded through go-i18n.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/marcus/billpay/internal/payment"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

// Key identifies a translated string.
type Key string

const (
	Title                   Key = "title"
	ConsumerNo              Key = "consumerNo"
	Amount                  Key = "amount"
	PaymentMethod           Key = "paymentMethod"
	PaymentMethodLabel      Key = "paymentMethodLabel"
	Cash                    Key = "cash"
	Cheque                  Key = "cheque"
	DD                      Key = "dd"
	RTGS                    Key = "rtgs"
	MobileNumber            Key = "mobileNumber"
	EmailAddress            Key = "emailAddress"
	ChequeNumber            Key = "chequeNumber"
	ChequeDate              Key = "chequeDate"
	DDNumber                Key = "ddNumber"
	DDDate                  Key = "ddDate"
	RTGSNumber              Key = "rtgsNumber"
	RTGSDate                Key = "rtgsDate"
	ChequeNumberPlaceholder Key = "chequeNumberPlaceholder"
	DDNumberPlaceholder     Key = "ddNumberPlaceholder"
	RTGSNumberPlaceholder   Key = "rtgsNumberPlaceholder"
	TermsConditions         Key = "termsConditions"
	Cancel                  Key = "cancel"
	Proceed                 Key = "proceed"
)

// Keys lists every key the dialog uses, in table order.
var Keys = []Key{
	Title, ConsumerNo, Amount, PaymentMethod, PaymentMethodLabel,
	Cash, Cheque, DD, RTGS,
	MobileNumber, EmailAddress,
	ChequeNumber, ChequeDate, DDNumber, DDDate, RTGSNumber, RTGSDate,
	ChequeNumberPlaceholder, DDNumberPlaceholder, RTGSNumberPlaceholder,
	TermsConditions, Cancel, Proceed,
}

// MissingKeyError reports keys absent from a language's message file.
type MissingKeyError struct {
	Language payment.Language
	Keys     []Key
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("translations for %s are missing %d keys: %v", e.Language, len(e.Keys), e.Keys)
}

// Catalog resolves keys to localized strings.
type Catalog struct {
	bundle     *goi18n.Bundle
	localizers map[payment.Language]*goi18n.Localizer
	tables     map[payment.Language]map[Key]string
}

// Load parses the embedded message files.
func Load() (*Catalog, error) {
	return LoadFS(localeFS, "locales")
}

// LoadFS parses every *.toml file under dir in fsys. File names follow the
// go-i18n convention: <name>.<lang>.toml.
func LoadFS(fsys fs.FS, dir string) (*Catalog, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(fsys, path.Join(dir, "*.toml"))
	if err != nil {
		return nil, fmt.Errorf("list message files: %w", err)
	}

	c := &Catalog{
		bundle:     bundle,
		localizers: make(map[payment.Language]*goi18n.Localizer),
		tables:     make(map[payment.Language]map[Key]string),
	}

	for _, name := range files {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		mf, err := bundle.ParseMessageFileBytes(data, name)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", name, err)
		}

		lang, err := payment.ParseLanguage(mf.Tag.String())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		table := make(map[Key]string, len(mf.Messages))
		for _, m := range mf.Messages {
			table[Key(m.ID)] = m.Other
		}
		c.tables[lang] = table
		c.localizers[lang] = goi18n.NewLocalizer(bundle, string(lang))
	}

	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog built from the embedded files. It panics if
// they fail to load or are incomplete, since both are build defects.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load()
		if err != nil {
			panic(fmt.Sprintf("i18n: %v", err))
		}
		if err := c.Check(); err != nil {
			panic(fmt.Sprintf("i18n: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Check verifies that every supported language defines every key.
func (c *Catalog) Check() error {
	for _, lang := range payment.Languages {
		table, ok := c.tables[lang]
		if !ok {
			return &MissingKeyError{Language: lang, Keys: Keys}
		}
		var missing []Key
		for _, k := range Keys {
			if _, ok := table[k]; !ok {
				missing = append(missing, k)
			}
		}
		if len(missing) > 0 {
			return &MissingKeyError{Language: lang, Keys: missing}
		}
	}
	return nil
}

// T returns the string for key in lang. Unknown keys come back verbatim.
func (c *Catalog) T(lang payment.Language, key Key) string {
	loc, ok := c.localizers[lang]
	if !ok {
		return string(key)
	}
	s, err := loc.Localize(&goi18n.LocalizeConfig{MessageID: string(key)})
	if err != nil || s == "" {
		if v, ok := c.tables[lang][key]; ok {
			return v
		}
		return string(key)
	}
	return s
}

// Table returns a copy of the full table for lang.
func (c *Catalog) Table(lang payment.Language) map[Key]string {
	out := make(map[Key]string, len(c.tables[lang]))
	for k, v := range c.tables[lang] {
		out[k] = v
	}
	return out
}

// Languages returns the languages the catalog has files for, sorted.
func (c *Catalog) Languages() []payment.Language {
	out := make([]payment.Language, 0, len(c.tables))
	for l := range c.tables {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// MethodLabel returns the localized label of a payment method.
func (c *Catalog) MethodLabel(lang payment.Language, id payment.MethodID) string {
	return c.T(lang, Key(id.LabelKey()))
}
