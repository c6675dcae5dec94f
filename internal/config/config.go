// Package config reads and writes the project config in .billpay/config.json
// and resolves settings against their environment overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/marcus/billpay/internal/form"
	"github.com/marcus/billpay/internal/payment"
)

// Dir is the project directory holding config, journal and logs.
const Dir = ".billpay"

const configFile = Dir + "/config.json"

// Environment overrides.
const (
	EnvLanguage = "BILLPAY_LANG"
	EnvMobile   = "BILLPAY_MOBILE"
	EnvEmail    = "BILLPAY_EMAIL"
	EnvDebug    = "BILLPAY_DEBUG"
)

// Config is the persisted project config.
type Config struct {
	Language     payment.Language `json:"language,omitempty"`
	MobileNumber string           `json:"mobile_number,omitempty"`
	Email        string           `json:"email,omitempty"`
	DialogWidth  int              `json:"dialog_width,omitempty"`
	Journal      *bool            `json:"journal,omitempty"`
}

// Load reads the config from disk. A missing file is an empty config.
func Load(baseDir string) (*Config, error) {
	configPath := filepath.Join(baseDir, configFile)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configPath, err)
	}
	return &cfg, nil
}

// Save writes the config to disk using atomic write.
func Save(baseDir string, cfg *Config) error {
	configPath := filepath.Join(baseDir, configFile)
	dir := filepath.Dir(configPath)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	// Atomic write: temp file + rename
	tmp, err := os.CreateTemp(dir, "config-*.json.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, configPath)
}

// Source says where a resolved value came from.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceConfig  Source = "config"
	SourceDefault Source = "default"
)

// ResolveLanguage returns the dialog language.
// Priority: BILLPAY_LANG env > project config > English.
func ResolveLanguage(baseDir string) (payment.Language, Source, error) {
	if v := os.Getenv(EnvLanguage); v != "" {
		lang, err := payment.ParseLanguage(v)
		if err != nil {
			return "", SourceEnv, fmt.Errorf("%s: %w", EnvLanguage, err)
		}
		return lang, SourceEnv, nil
	}
	cfg, err := Load(baseDir)
	if err == nil && cfg.Language != "" {
		if !cfg.Language.IsValid() {
			return "", SourceConfig, &payment.UnsupportedLanguageError{Value: string(cfg.Language)}
		}
		return cfg.Language, SourceConfig, nil
	}
	return payment.LangEnglish, SourceDefault, nil
}

// ResolveContact returns the prefilled contact details. Each field is taken
// from env, then project config; empty fields fall back to the dialog's
// defaults.
func ResolveContact(baseDir string) form.Contact {
	var c form.Contact
	cfg, err := Load(baseDir)
	if err != nil {
		cfg = &Config{}
	}

	c.MobileNumber = firstNonEmpty(os.Getenv(EnvMobile), cfg.MobileNumber)
	c.Email = firstNonEmpty(os.Getenv(EnvEmail), cfg.Email)
	return c
}

// DialogWidth returns the configured dialog width, or 0 for the default.
func DialogWidth(baseDir string) int {
	cfg, err := Load(baseDir)
	if err != nil {
		return 0
	}
	return cfg.DialogWidth
}

// JournalEnabled reports whether confirmations are recorded. Default true.
func JournalEnabled(baseDir string) bool {
	cfg, err := Load(baseDir)
	if err != nil || cfg.Journal == nil {
		return true
	}
	return *cfg.Journal
}

// DebugEnabled reports whether BILLPAY_DEBUG asks for a debug log.
func DebugEnabled() bool {
	v, err := strconv.ParseBool(os.Getenv(EnvDebug))
	return err == nil && v
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// UnknownKeyError is returned by Get and Set for keys the config lacks.
type UnknownKeyError struct {
	Key string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown config key %q (valid: %v)", e.Key, Keys())
}

type accessor struct {
	get func(*Config) string
	set func(*Config, string) error
}

var accessors = map[string]accessor{
	"language": {
		get: func(c *Config) string { return string(c.Language) },
		set: func(c *Config, v string) error {
			if v == "" {
				c.Language = ""
				return nil
			}
			lang, err := payment.ParseLanguage(v)
			if err != nil {
				return err
			}
			c.Language = lang
			return nil
		},
	},
	"mobile_number": {
		get: func(c *Config) string { return c.MobileNumber },
		set: func(c *Config, v string) error { c.MobileNumber = v; return nil },
	},
	"email": {
		get: func(c *Config) string { return c.Email },
		set: func(c *Config, v string) error { c.Email = v; return nil },
	},
	"dialog_width": {
		get: func(c *Config) string {
			if c.DialogWidth == 0 {
				return ""
			}
			return strconv.Itoa(c.DialogWidth)
		},
		set: func(c *Config, v string) error {
			if v == "" {
				c.DialogWidth = 0
				return nil
			}
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return fmt.Errorf("dialog_width: want a non-negative integer, got %q", v)
			}
			c.DialogWidth = n
			return nil
		},
	},
	"journal": {
		get: func(c *Config) string {
			if c.Journal == nil {
				return ""
			}
			return strconv.FormatBool(*c.Journal)
		},
		set: func(c *Config, v string) error {
			if v == "" {
				c.Journal = nil
				return nil
			}
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("journal: %w", err)
			}
			c.Journal = &b
			return nil
		},
	},
}

// Keys lists the settable keys, sorted.
func Keys() []string {
	keys := make([]string, 0, len(accessors))
	for k := range accessors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value stored under key, or "" when unset.
func (c *Config) Get(key string) (string, error) {
	a, ok := accessors[key]
	if !ok {
		return "", &UnknownKeyError{Key: key}
	}
	return a.get(c), nil
}

// Set parses value into key. An empty value clears the key.
func (c *Config) Set(key, value string) error {
	a, ok := accessors[key]
	if !ok {
		return &UnknownKeyError{Key: key}
	}
	return a.set(c, value)
}
