// Package config resolves environment and .env settings into an explicit
// immutable Config passed down the pipeline; nothing below reads ambient
// state, so per-object pipelines stay parallel-safe and testable.
package config

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

// Env var names, kept compatible with the original tool.
const (
	EnvAPIKey        = "OPENAI_API_KEY"
	EnvRealityFactor = "REALITY_FACTOR"
	EnvMaxParts      = "KITBASH_MAX_PARTS"
	EnvPromptVariant = "KITBASH_PROMPT"
	EnvModel         = "DREAMFAST_MODEL"
)

const DefaultRealityFactor = 5

type Config struct {
	RealityFactor    float64
	MaxPartsOverride int // 0 = no override
	APIKey           string
	Model            string
	PromptVariant    string
	SketchesDir      string
	PresetsDir       string
	PromptsFile      string
	Verbose          bool
	Mock             bool
}

func Default() Config {
	return Config{
		RealityFactor: DefaultRealityFactor,
		SketchesDir:   "sketches",
		PresetsDir:    "presets",
		PromptsFile:   "prompts.yaml",
	}
}

// FromEnv layers environment variables over the defaults. Unparsable
// numeric values are ignored rather than fatal, matching the original.
func FromEnv() Config {
	c := Default()
	c.APIKey = os.Getenv(EnvAPIKey)
	if m := os.Getenv(EnvModel); m != "" {
		c.Model = m
	}
	c.PromptVariant = strings.TrimSpace(os.Getenv(EnvPromptVariant))
	if rf := strings.TrimSpace(os.Getenv(EnvRealityFactor)); rf != "" {
		if v, err := strconv.ParseFloat(rf, 64); err == nil && v >= 0 && v <= 100 {
			c.RealityFactor = v
		}
	}
	if cap := strings.TrimSpace(os.Getenv(EnvMaxParts)); cap != "" {
		if v, err := strconv.ParseFloat(cap, 64); err == nil && v >= 1 {
			c.MaxPartsOverride = int(v)
		}
	}
	return c
}

// LoadDotEnv sets environment variables from a KEY=VALUE file. Existing
// variables are not overridden; a missing file is not an error.
func LoadDotEnv(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		i := strings.Index(line, "=")
		if i <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:i])
		value := strings.TrimSpace(line[i+1:])
		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}
		if key == "" {
			continue
		}
		if _, exists := os.LookupEnv(key); !exists {
			os.Setenv(key, value)
		}
	}
	return scanner.Err()
}
