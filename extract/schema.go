package extract

// HardenSchema recursively hardens a JSON schema for strict LLM JSON mode:
// every object declares type, properties, additionalProperties=false, and
// requires every property key. Recurses into properties, definitions/$defs,
// items, and anyOf/oneOf/allOf. The input map is modified in place and
// returned for chaining.
func HardenSchema(schema map[string]interface{}) map[string]interface{} {
	if schema == nil {
		return nil
	}

	_, hasProps := schema["properties"]
	_, hasRequired := schema["required"]
	if schema["type"] == "object" || hasProps || hasRequired {
		if _, ok := schema["type"]; !ok {
			schema["type"] = "object"
		}
		props, ok := schema["properties"].(map[string]interface{})
		if !ok {
			props = map[string]interface{}{}
			schema["properties"] = props
		}
		schema["additionalProperties"] = false
		required := make([]interface{}, 0, len(props))
		for key := range props {
			required = append(required, key)
		}
		sortStrings(required)
		schema["required"] = required
	}

	for _, key := range []string{"properties", "definitions", "$defs"} {
		if m, ok := schema[key].(map[string]interface{}); ok {
			for k, v := range m {
				if sub, ok := v.(map[string]interface{}); ok {
					m[k] = HardenSchema(sub)
				}
			}
		}
	}

	if items, ok := schema["items"].(map[string]interface{}); ok {
		schema["items"] = HardenSchema(items)
	}

	for _, key := range []string{"anyOf", "oneOf", "allOf"} {
		if list, ok := schema[key].([]interface{}); ok {
			for i, v := range list {
				if sub, ok := v.(map[string]interface{}); ok {
					list[i] = HardenSchema(sub)
				}
			}
		}
	}

	return schema
}

// sortStrings orders the required list so the hardened schema is stable
// across runs (map iteration order is random).
func sortStrings(vals []interface{}) {
	for i := 1; i < len(vals); i++ {
		for j := i; j > 0; j-- {
			a, _ := vals[j-1].(string)
			b, _ := vals[j].(string)
			if a <= b {
				break
			}
			vals[j-1], vals[j] = vals[j], vals[j-1]
		}
	}
}
