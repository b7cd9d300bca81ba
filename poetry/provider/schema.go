package provider

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// reflectStrictSchema builds the JSON schema for a structured-output payload
// type and tightens it for strict mode.
func reflectStrictSchema[T any]() map[string]any {
	r := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var payload T
	raw, err := r.Reflect(payload).MarshalJSON()
	if err != nil {
		panic(err)
	}
	var schema map[string]any
	if err := json.Unmarshal(raw, &schema); err != nil {
		panic(err)
	}
	tightenForStrictMode(schema)
	return schema
}

// tightenForStrictMode walks the schema tree, closing every object node over
// its declared properties and marking all of them required. Strict structured
// outputs reject schemas that leave either open.
func tightenForStrictMode(node map[string]any) {
	if t, _ := node["type"].(string); t == "object" {
		node["additionalProperties"] = false
		if props, ok := node["properties"].(map[string]any); ok && len(props) > 0 {
			names := make([]string, 0, len(props))
			for name := range props {
				names = append(names, name)
			}
			node["required"] = names
		}
	}
	for _, child := range node {
		switch c := child.(type) {
		case map[string]any:
			tightenForStrictMode(c)
		case []any:
			for _, item := range c {
				if m, ok := item.(map[string]any); ok {
					tightenForStrictMode(m)
				}
			}
		}
	}
}
