package config

import (
	"io/ioutil"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// PromptVariant is one named kitbash system prompt. Either Text or Lines
// holds the content; {reality_factor} and {max_parts} placeholders are
// substituted on selection.
type PromptVariant struct {
	Text  string   `yaml:"text"`
	Lines []string `yaml:"lines"`
}

func (v PromptVariant) content() string {
	if strings.TrimSpace(v.Text) != "" {
		return v.Text
	}
	if len(v.Lines) > 0 {
		return strings.Join(v.Lines, "\n")
	}
	return ""
}

// Prompts is the parsed prompt variants file.
type Prompts struct {
	Default  string                   `yaml:"default"`
	Variants map[string]PromptVariant `yaml:",inline"`
}

// LoadPrompts reads a prompt variants YAML file. A missing file returns an
// empty Prompts value (the built-in prompt will be used).
func LoadPrompts(path string) (Prompts, error) {
	var p Prompts
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return p, nil
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, errors.Wrapf(err, "Cannot parse prompts file %q", path)
	}
	return p, nil
}

// Select resolves a kitbash prompt: the requested variant if usable, else
// the file default, else the alphabetically first usable variant, else
// empty (the caller
// falls back to the built-in prompt). Returns the formatted prompt, the
// name of the variant actually used, and a human readable warning when the
// request could not be honored.
func (p Prompts) Select(name string, realityFactor, maxParts int) (prompt, selected, warning string) {
	pick := func(n string) string {
		if v, ok := p.Variants[n]; ok {
			return v.content()
		}
		return ""
	}

	if name != "" {
		if text := pick(name); text != "" {
			return format(text, realityFactor, maxParts), name, ""
		}
		warning = "prompt variant " + strconv.Quote(name) + " not found or empty"
	}
	if p.Default != "" {
		if text := pick(p.Default); text != "" {
			return format(text, realityFactor, maxParts), p.Default, warning
		}
	}
	// map order is random; pick the first usable variant by name
	names := make([]string, 0, len(p.Variants))
	for n := range p.Variants {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		if text := pick(n); text != "" {
			return format(text, realityFactor, maxParts), n, warning
		}
	}
	return "", "", warning
}

func format(text string, realityFactor, maxParts int) string {
	text = strings.ReplaceAll(text, "{reality_factor}", strconv.Itoa(realityFactor))
	return strings.ReplaceAll(text, "{max_parts}", strconv.Itoa(maxParts))
}
