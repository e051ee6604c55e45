package recommend

// BuildSchema constructs the response_format payload for an OpenAI-compatible
// chat-completion call: an object with a single bounded "items" array whose
// path field is enum-constrained to the allowed leaf list. This forces the
// model toward compliant output; membership is still re-verified downstream
// since providers do not enforce enum constraints perfectly.
func BuildSchema(leafList []string, maxItems int) map[string]any {
	return map[string]any{
		"type": "json_schema",
		"json_schema": map[string]any{
			"name":   "CategoryRecommendation",
			"strict": true,
			"schema": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"items": map[string]any{
						"type":     "array",
						"maxItems": maxItems,
						"items": map[string]any{
							"type":     "object",
							"required": []string{"path", "reason"},
							"properties": map[string]any{
								"path":   map[string]any{"type": "string", "enum": leafList},
								"reason": map[string]any{"type": "string", "minLength": 2, "maxLength": 220},
								"score":  map[string]any{"type": "number", "minimum": 0, "maximum": 1},
							},
							"additionalProperties": false,
						},
					},
				},
				"required":             []string{"items"},
				"additionalProperties": false,
			},
		},
	}
}
