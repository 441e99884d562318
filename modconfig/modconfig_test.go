package modconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	path := filepath.Join(dir, "nova-mod.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadValidModule(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[module]
name = "geometry"
interface-file = "geometry.nvi"
body-file = "geometry.nv"
nova-version = "0.1.0"
dependencies = ["collections"]
`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("expected a clean load, got: %v", err)
	}
	if m.Name != "geometry" {
		t.Fatalf("expected name `geometry`, got %q", m.Name)
	}
	if m.InterfacePath != filepath.Join(dir, "geometry.nvi") {
		t.Fatalf("unexpected interface path: %s", m.InterfacePath)
	}
	if m.BodyPath != filepath.Join(dir, "geometry.nv") {
		t.Fatalf("unexpected body path: %s", m.BodyPath)
	}
	if m.Unsafe {
		t.Fatal("expected unsafe to default to false")
	}
	if len(m.Dependencies) != 1 || m.Dependencies[0] != "collections" {
		t.Fatalf("unexpected dependencies: %v", m.Dependencies)
	}
}

func TestLoadUnsafeModule(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[module]
name = "rawio"
interface-file = "rawio.nvi"
body-file = "rawio.nv"
unsafe = true
`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("expected a clean load, got: %v", err)
	}
	if !m.Unsafe {
		t.Fatal("expected unsafe to be true")
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(dir); err == nil {
		t.Fatal("expected an error when nova-mod.toml is absent")
	}
}

func TestLoadMissingModuleTable(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `nova-version = "0.1.0"`)

	if _, err := Load(dir); err == nil {
		t.Fatal("expected an error when the [module] table is missing")
	}
}

func TestLoadInvalidIdentifierRejected(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[module]
name = "not-an-identifier"
interface-file = "a.nvi"
body-file = "a.nv"
`)

	if _, err := Load(dir); err == nil {
		t.Fatal("expected an error for an invalid module name")
	}
}

func TestLoadMissingFilesRejected(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[module]
name = "partial"
interface-file = "partial.nvi"
`)

	if _, err := Load(dir); err == nil {
		t.Fatal("expected an error when body-file is missing")
	}
}
