package config

import (
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"
)

const promptsYaml = `default: terse
terse:
  text: "Build with at most {max_parts} parts at reality {reality_factor}."
chatty:
  lines:
    - "Use {max_parts} parts."
    - "Reality factor {reality_factor}."
empty:
  text: ""
`

func writePrompts(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	if err := ioutil.WriteFile(path, []byte(promptsYaml), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSelectRequestedVariant(t *testing.T) {
	p, err := LoadPrompts(writePrompts(t))
	if err != nil {
		t.Fatalf("LoadPrompts() = %v", err)
	}
	prompt, selected, warning := p.Select("chatty", 5, 8)
	if selected != "chatty" || warning != "" {
		t.Fatalf("selected %q warning %q", selected, warning)
	}
	if !strings.Contains(prompt, "Use 8 parts.") || !strings.Contains(prompt, "Reality factor 5.") {
		t.Errorf("prompt = %q; placeholders not substituted", prompt)
	}
}

func TestSelectFallsBackToDefault(t *testing.T) {
	p, err := LoadPrompts(writePrompts(t))
	if err != nil {
		t.Fatal(err)
	}
	prompt, selected, warning := p.Select("nonexistent", 3, 4)
	if selected != "terse" {
		t.Errorf("selected = %q; expected default variant", selected)
	}
	if warning == "" {
		t.Error("expected a warning about the missing variant")
	}
	if !strings.Contains(prompt, "at most 4 parts at reality 3") {
		t.Errorf("prompt = %q", prompt)
	}
}

func TestSelectEmptyVariantFallsThrough(t *testing.T) {
	p, err := LoadPrompts(writePrompts(t))
	if err != nil {
		t.Fatal(err)
	}
	if _, selected, _ := p.Select("empty", 1, 1); selected == "empty" {
		t.Error("empty variant selected")
	}
}

func TestSelectLastResortIsDeterministic(t *testing.T) {
	p := Prompts{Variants: map[string]PromptVariant{
		"zeta":  {Text: "z {max_parts}"},
		"mid":   {Text: "m {max_parts}"},
		"alpha": {Text: "a {max_parts}"},
		"blank": {Text: ""},
	}}
	// no request, no default: the pick must not depend on map order
	for i := 0; i < 32; i++ {
		_, selected, _ := p.Select("", 1, 1)
		if selected != "alpha" {
			t.Fatalf("selected %q on run %d; expected alpha every time", selected, i)
		}
	}
}

func TestLoadPromptsMissingFile(t *testing.T) {
	p, err := LoadPrompts(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadPrompts(missing) = %v", err)
	}
	if prompt, selected, _ := p.Select("", 1, 1); prompt != "" || selected != "" {
		t.Errorf("empty prompts selected %q/%q", prompt, selected)
	}
}

func TestLoadPromptsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	if err := ioutil.WriteFile(path, []byte("\t: : :"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPrompts(path); err == nil {
		t.Error("LoadPrompts() accepted malformed yaml")
	}
}
