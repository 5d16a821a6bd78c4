package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvRealityFactor, "12.5")
	t.Setenv(EnvMaxParts, "7")
	t.Setenv(EnvPromptVariant, " terse ")
	t.Setenv(EnvAPIKey, "sk-test")

	c := FromEnv()
	if c.RealityFactor != 12.5 {
		t.Errorf("RealityFactor = %v; expected 12.5", c.RealityFactor)
	}
	if c.MaxPartsOverride != 7 {
		t.Errorf("MaxPartsOverride = %v; expected 7", c.MaxPartsOverride)
	}
	if c.PromptVariant != "terse" {
		t.Errorf("PromptVariant = %q; expected trimmed", c.PromptVariant)
	}
	if c.APIKey != "sk-test" {
		t.Errorf("APIKey = %q", c.APIKey)
	}
}

func TestFromEnvIgnoresGarbage(t *testing.T) {
	t.Setenv(EnvRealityFactor, "lots")
	t.Setenv(EnvMaxParts, "-3")

	c := FromEnv()
	if c.RealityFactor != DefaultRealityFactor {
		t.Errorf("RealityFactor = %v; expected default", c.RealityFactor)
	}
	if c.MaxPartsOverride != 0 {
		t.Errorf("MaxPartsOverride = %v; expected no override", c.MaxPartsOverride)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# comment\nDREAMFAST_TEST_A=plain\nDREAMFAST_TEST_B=\"quoted value\"\nDREAMFAST_TEST_C='single'\nbroken line\n"
	if err := ioutil.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"DREAMFAST_TEST_A", "DREAMFAST_TEST_B", "DREAMFAST_TEST_C"} {
		os.Unsetenv(k)
		defer os.Unsetenv(k)
	}

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() = %v", err)
	}
	if got := os.Getenv("DREAMFAST_TEST_A"); got != "plain" {
		t.Errorf("A = %q", got)
	}
	if got := os.Getenv("DREAMFAST_TEST_B"); got != "quoted value" {
		t.Errorf("B = %q", got)
	}
	if got := os.Getenv("DREAMFAST_TEST_C"); got != "single" {
		t.Errorf("C = %q", got)
	}
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := ioutil.WriteFile(path, []byte("DREAMFAST_TEST_D=file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DREAMFAST_TEST_D", "env")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() = %v", err)
	}
	if got := os.Getenv("DREAMFAST_TEST_D"); got != "env" {
		t.Errorf("D = %q; expected existing value kept", got)
	}
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "nope")); err != nil {
		t.Errorf("LoadDotEnv(missing) = %v; expected nil", err)
	}
}
