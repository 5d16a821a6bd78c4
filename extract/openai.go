package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"github.com/mogaika/dreamfast/sketch"
)

const openAIBaseURL = "https://api.openai.com/v1/chat/completions"

const defaultModel = "gpt-4o-mini"

// SemanticSystemPrompt extracts objects only; actions and paths are handled
// by the full scene flow and are ignored here.
const SemanticSystemPrompt = "Extract only the objects mentioned in the user's description.\n" +
	"Return JSON with key 'objects': an array of {name, category, color}.\n" +
	"Use concise, singular names; deduplicate by type and near-synonyms.\n" +
	"Category should be the specific object type (e.g., 'chair', 'box').\n" +
	"Include color as {r,g,b} in [0..1]; if unspecified, use neutral gray {r:0.7,g:0.7,b:0.7}."

// KitbashSystemPrompt is the built-in fallback used when no prompt variant
// file is configured or the configured variant is unusable.
const KitbashSystemPrompt = `You convert objects into kitbashed primitives.
Rules:
- Primitives only: {cube,sphere,cylinder,cone,plane,torus}.
- Each part has: name, type, dimensions[x,y,z], location[x,y,z], rotation_degrees[x,y,z], color[r,g,b 0..1].
- Use as few parts as possible. Only add parts that materially improve recognition.
- Sizes in meters within [0.1..20]. Keep assembly near origin; no environment/camera/animation fields.
- Silhouette-first: prefer one or two large volumes; add minimal accents.
- Maintain coherent relative placement: parts should connect or nest logically; avoid floating, intersecting unnaturally, or drifting apart.
- Align axes and centers where natural; keep assemblies compact and balanced around the origin.
- Local axes: cylinders/cones/torus are +Z-aligned before rotation; cubes/planes are box-aligned.
- Budget: do not exceed max_parts; prefer the minimum that remains recognizable.
Output exactly this JSON shape: {"objects":[{"name":<string>,"parts":[...] }],"meta":{"reality_factor":<int>}}`

// OpenAI implements Extractor against the chat completions API with strict
// JSON schema response format.
type OpenAI struct {
	APIKey string
	Model  string
	// KitbashPrompt overrides the built-in kitbash system prompt
	// (selected prompt variant, already formatted).
	KitbashPrompt string
	Verbose       bool

	client *http.Client
}

func NewOpenAI(apiKey string) *OpenAI {
	return &OpenAI{
		APIKey: apiKey,
		Model:  defaultModel,
		client: http.DefaultClient,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string                 `json:"model"`
	Messages       []chatMessage          `json:"messages"`
	ResponseFormat map[string]interface{} `json:"response_format,omitempty"`
	Temperature    float64                `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *OpenAI) complete(ctx context.Context, system, user string, schemaName string,
	schema map[string]interface{}, temperature float64) ([]byte, error) {
	if c.APIKey == "" {
		return nil, errors.Errorf("OPENAI_API_KEY not set; use the mock extractor or set your key")
	}
	model := c.Model
	if model == "" {
		model = defaultModel
	}
	if c.Verbose {
		log.Printf("[extract] model=%s schema=%s system:\n%s", model, schemaName, system)
		log.Printf("[extract] user:\n%s", user)
	}
	req := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		ResponseFormat: map[string]interface{}{
			"type": "json_schema",
			"json_schema": map[string]interface{}{
				"name":   schemaName,
				"schema": HardenSchema(schema),
				"strict": true,
			},
		},
		Temperature: temperature,
	}
	body, err := json.Marshal(&req)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIBaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to call openai")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("openai: %s", resp.Status)
	}
	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.Wrapf(err, "Failed to decode openai response")
	}
	if len(out.Choices) == 0 {
		return nil, errors.Errorf("openai: no choices in response")
	}
	return []byte(out.Choices[0].Message.Content), nil
}

func colorSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"r": map[string]interface{}{"type": "number"},
			"g": map[string]interface{}{"type": "number"},
			"b": map[string]interface{}{"type": "number"},
		},
	}
}

func vec3Schema() map[string]interface{} {
	return map[string]interface{}{
		"type":     "array",
		"items":    map[string]interface{}{"type": "number"},
		"minItems": 3,
		"maxItems": 3,
	}
}

// ExtractObjects asks the model for the objects mentioned in the prompt.
func (c *OpenAI) ExtractObjects(ctx context.Context, prompt string) ([]ObjectRef, error) {
	schema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"objects": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"name":     map[string]interface{}{"type": "string"},
						"category": map[string]interface{}{"type": "string"},
						"color":    colorSchema(),
					},
				},
			},
		},
	}

	raw, err := c.complete(ctx, SemanticSystemPrompt, prompt, "semantic_breakdown", schema, 0.0)
	if err != nil {
		return nil, err
	}

	var decoded struct {
		Objects []ObjectRef `json:"objects"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, errors.Wrapf(err, "Failed to unmarshal extraction result")
	}
	return Dedup(decoded.Objects), nil
}

// SynthesizeParts asks the model to kitbash one object into primitive parts
// under the part budget. The returned candidates are untrusted.
func (c *OpenAI) SynthesizeParts(ctx context.Context, obj ObjectRef, realityFactor, maxParts int) ([]sketch.PartCandidate, error) {
	partSchema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"name": map[string]interface{}{"type": "string"},
			"type": map[string]interface{}{
				"type": "string",
				"enum": []interface{}{"cube", "sphere", "cylinder", "cone", "plane", "torus"},
			},
			"dimensions":       vec3Schema(),
			"location":         vec3Schema(),
			"rotation_degrees": vec3Schema(),
			"color":            colorSchema(),
		},
	}
	schema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"objects": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"name": map[string]interface{}{"type": "string"},
						"parts": map[string]interface{}{
							"type":     "array",
							"maxItems": maxParts,
							"items":    partSchema,
						},
					},
				},
			},
			"meta": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"reality_factor": map[string]interface{}{"type": "integer"},
				},
			},
		},
	}

	system := c.KitbashPrompt
	if system == "" {
		system = KitbashSystemPrompt
	}

	objJSON, err := json.Marshal([]ObjectRef{obj})
	if err != nil {
		return nil, err
	}
	userMsg := "reality_factor=" + strconv.Itoa(realityFactor) + "; max_parts=" + strconv.Itoa(maxParts) + ".\n" +
		"Use at most 'max_parts' parts per object; prefer the fewest parts that yield a clear, recognizable silhouette. Do not add unrelated accessories or tiny decorative details.\n" +
		"Create parts for these objects (name, category, optional color {r,g,b}):\n" +
		string(objJSON) +
		"\nIf an object includes a 'color' with r,g,b in [0..1], use it as the base color for its parts."

	raw, err := c.complete(ctx, system, userMsg, "kitbash_parts", schema, 0.1)
	if err != nil {
		return nil, err
	}

	var decoded struct {
		Objects []struct {
			Name  string                 `json:"name"`
			Parts []sketch.PartCandidate `json:"parts"`
		} `json:"objects"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, errors.Wrapf(err, "Failed to unmarshal kitbash result")
	}

	parts := make([]sketch.PartCandidate, 0, maxParts)
	for _, o := range decoded.Objects {
		prefix := o.Name
		if prefix == "" {
			prefix = obj.Name
		}
		for i, p := range o.Parts {
			if p.Name == "" {
				p.Name = "Part"
			}
			p.Name = prefix + "_" + p.Name
			p.Rank = i // the prompt asks for silhouette-first ordering
			parts = append(parts, p)
		}
	}
	return parts, nil
}
