package workdir

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveBaseDir_Empty(t *testing.T) {
	if got := ResolveBaseDir(""); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestResolveBaseDir_RootFileAbsolute(t *testing.T) {
	dir := t.TempDir()
	target := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, rootFile), []byte(target+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := ResolveBaseDir(dir); got != filepath.Clean(target) {
		t.Errorf("got %q, want %q", got, target)
	}
}

func TestResolveBaseDir_RootFileRelative(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "shared"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, rootFile), []byte("shared"), 0644); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "shared")
	if got := ResolveBaseDir(dir); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveBaseDir_BlankRootFileIgnored(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, rootFile), []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, projectDir), 0755); err != nil {
		t.Fatal(err)
	}
	if got := ResolveBaseDir(dir); got != filepath.Clean(dir) {
		t.Errorf("got %q, want %q", got, dir)
	}
}

func TestResolveBaseDir_ProjectDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, projectDir), 0755); err != nil {
		t.Fatal(err)
	}
	if got := ResolveBaseDir(dir); got != filepath.Clean(dir) {
		t.Errorf("got %q, want %q", got, dir)
	}
}

func TestResolveBaseDir_NoMarkers(t *testing.T) {
	dir := t.TempDir()
	if got := ResolveBaseDir(dir); got != filepath.Clean(dir) {
		t.Errorf("got %q, want unchanged %q", got, dir)
	}
}
