package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/marcus/billpay/internal/form"
	"github.com/marcus/billpay/internal/payment"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, Dir), 0755); err != nil {
		t.Fatalf("setup: mkdir failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, configFile), []byte(body), 0644); err != nil {
		t.Fatalf("setup: write failed: %v", err)
	}
	return dir
}

func TestLoad(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		cfg, err := Load(t.TempDir())
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if *cfg != (Config{}) {
			t.Errorf("got %+v, want empty config", cfg)
		}
	})

	t.Run("existing file", func(t *testing.T) {
		dir := writeConfig(t, `{"language":"mr","mobile_number":"9000000001","dialog_width":72,"journal":false}`)
		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Language != payment.LangMarathi {
			t.Errorf("Language: got %q", cfg.Language)
		}
		if cfg.MobileNumber != "9000000001" {
			t.Errorf("MobileNumber: got %q", cfg.MobileNumber)
		}
		if cfg.DialogWidth != 72 {
			t.Errorf("DialogWidth: got %d", cfg.DialogWidth)
		}
		if cfg.Journal == nil || *cfg.Journal {
			t.Errorf("Journal: got %v, want false", cfg.Journal)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		dir := writeConfig(t, `{not json`)
		if _, err := Load(dir); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	on := true
	want := &Config{Language: payment.LangHindi, Email: "x@y.in", Journal: &on}
	if err := Save(dir, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Language != want.Language || got.Email != want.Email || got.Journal == nil || !*got.Journal {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestResolveLanguage(t *testing.T) {
	tests := []struct {
		name       string
		env        string
		file       string
		want       payment.Language
		wantSource Source
		wantErr    bool
	}{
		{"default", "", "", payment.LangEnglish, SourceDefault, false},
		{"config", "", `{"language":"hi"}`, payment.LangHindi, SourceConfig, false},
		{"env beats config", "mr", `{"language":"hi"}`, payment.LangMarathi, SourceEnv, false},
		{"bad env", "fr", "", "", SourceEnv, true},
		{"bad config", "", `{"language":"de"}`, "", SourceConfig, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvLanguage, tt.env)
			dir := t.TempDir()
			if tt.file != "" {
				dir = writeConfig(t, tt.file)
			}

			got, src, err := ResolveLanguage(dir)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var ule *payment.UnsupportedLanguageError
				if !errors.As(err, &ule) {
					t.Errorf("error %v is not UnsupportedLanguageError", err)
				}
			}
			if got != tt.want || src != tt.wantSource {
				t.Errorf("got (%q, %s), want (%q, %s)", got, src, tt.want, tt.wantSource)
			}
		})
	}
}

func TestResolveContact(t *testing.T) {
	dir := writeConfig(t, `{"mobile_number":"9111111111","email":"file@example.com"}`)

	t.Setenv(EnvMobile, "")
	t.Setenv(EnvEmail, "")
	if got := ResolveContact(dir); got != (form.Contact{MobileNumber: "9111111111", Email: "file@example.com"}) {
		t.Errorf("from config: %+v", got)
	}

	t.Setenv(EnvEmail, "env@example.com")
	if got := ResolveContact(dir); got.Email != "env@example.com" || got.MobileNumber != "9111111111" {
		t.Errorf("env override: %+v", got)
	}

	t.Setenv(EnvEmail, "")
	if got := ResolveContact(t.TempDir()); got != (form.Contact{}) {
		t.Errorf("no config: %+v, want empty so the dialog applies its defaults", got)
	}
}

func TestJournalEnabled(t *testing.T) {
	if !JournalEnabled(t.TempDir()) {
		t.Error("journal should default to on")
	}
	if JournalEnabled(writeConfig(t, `{"journal":false}`)) {
		t.Error("journal:false should disable it")
	}
}

func TestDebugEnabled(t *testing.T) {
	for _, tt := range []struct {
		val  string
		want bool
	}{{"", false}, {"1", true}, {"true", true}, {"0", false}, {"nope", false}} {
		t.Setenv(EnvDebug, tt.val)
		if got := DebugEnabled(); got != tt.want {
			t.Errorf("DebugEnabled(%q) = %v, want %v", tt.val, got, tt.want)
		}
	}
}

func TestGetSet(t *testing.T) {
	var cfg Config

	tests := []struct {
		key, value string
		want       string
		wantErr    bool
	}{
		{"language", "MR", "mr", false},
		{"language", "xx", "mr", true},
		{"dialog_width", "64", "64", false},
		{"dialog_width", "wide", "64", true},
		{"journal", "false", "false", false},
		{"journal", "", "", false},
		{"email", "a@b.in", "a@b.in", false},
	}
	for _, tt := range tests {
		err := cfg.Set(tt.key, tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Set(%s, %q) err = %v, wantErr %v", tt.key, tt.value, err, tt.wantErr)
		}
		got, err := cfg.Get(tt.key)
		if err != nil {
			t.Fatalf("Get(%s): %v", tt.key, err)
		}
		if got != tt.want {
			t.Errorf("after Set(%s, %q): Get = %q, want %q", tt.key, tt.value, got, tt.want)
		}
	}

	var uke *UnknownKeyError
	if err := cfg.Set("colour", "red"); !errors.As(err, &uke) {
		t.Errorf("Set(unknown) err = %v", err)
	}
	if _, err := cfg.Get("colour"); !errors.As(err, &uke) {
		t.Errorf("Get(unknown) err = %v", err)
	}
}
