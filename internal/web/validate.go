package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const maxBodyBytes = 64 << 10

var requestSchemas = map[string]string{
	"settings": `{
		"type": "object",
		"properties": {
			"grade": {"type": "string", "minLength": 1},
			"problem_type": {"type": "string", "minLength": 1},
			"difficulty": {"type": "string", "minLength": 1}
		},
		"required": ["grade", "problem_type", "difficulty"],
		"additionalProperties": false
	}`,
	"credential": `{
		"type": "object",
		"properties": {
			"api_key": {"type": "string", "maxLength": 512}
		},
		"required": ["api_key"],
		"additionalProperties": false
	}`,
	"check": `{
		"type": "object",
		"properties": {
			"answer": {"type": "string", "maxLength": 1000}
		},
		"required": ["answer"],
		"additionalProperties": false
	}`,
}

// compiledSchemas holds every request schema, compiled once at startup.
var compiledSchemas = mustCompileSchemas()

func mustCompileSchemas() map[string]*jsonschema.Schema {
	c := jsonschema.NewCompiler()
	out := make(map[string]*jsonschema.Schema, len(requestSchemas))
	for name, src := range requestSchemas {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(src))
		if err != nil {
			panic(fmt.Sprintf("web: parse %s schema: %v", name, err))
		}
		url := fmt.Sprintf("schema://%s.json", name)
		if err := c.AddResource(url, doc); err != nil {
			panic(fmt.Sprintf("web: add %s schema: %v", name, err))
		}
		compiled, err := c.Compile(url)
		if err != nil {
			panic(fmt.Sprintf("web: compile %s schema: %v", name, err))
		}
		out[name] = compiled
	}
	return out
}

// decodeBody validates the request body against the named schema and then
// decodes it into dst.
func decodeBody(r *http.Request, schema string, dst any) error {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := compiledSchemas[schema].Validate(doc); err != nil {
		return fmt.Errorf("%s request: %w", schema, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s request: %w", schema, err)
	}
	return nil
}
