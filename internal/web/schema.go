package web

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/qbank-ai/qbank/internal/questionbank"
)

const requestSchemaURL = "schema://question-request.json"

var (
	requestSchemaOnce sync.Once
	requestSchema     *jsonschema.Schema
	requestSchemaErr  error
)

// requestSchemaDefinition describes the shape of the JSON body of
// POST /api/v1/questions: field types and the known count keys. Required
// fields, bounds and the edition list are left to questionbank.ValidateAll
// so every problem is reported at once.
func requestSchemaDefinition() map[string]any {
	counts := map[string]any{}
	for _, k := range questionbank.CountKinds {
		counts[k.Key] = map[string]any{"type": "integer"}
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"subject": map[string]any{"type": "string"},
			"grade":   map[string]any{"type": "string"},
			"topic":   map[string]any{"type": "string"},
			"edition": map[string]any{"type": "string"},
			"counts": map[string]any{
				"type":                 "object",
				"properties":           counts,
				"additionalProperties": false,
			},
		},
		"additionalProperties": false,
	}
}

func compiledRequestSchema() (*jsonschema.Schema, error) {
	requestSchemaOnce.Do(func() {
		// The compiler wants a plain decoded JSON value.
		raw, err := json.Marshal(requestSchemaDefinition())
		if err != nil {
			requestSchemaErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			requestSchemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(requestSchemaURL, doc); err != nil {
			requestSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		requestSchema, requestSchemaErr = c.Compile(requestSchemaURL)
	})
	return requestSchema, requestSchemaErr
}

// decodeRequest validates body against the request schema and decodes it.
func decodeRequest(body []byte) (questionbank.Request, error) {
	var req questionbank.Request

	var inst any
	if err := json.Unmarshal(body, &inst); err != nil {
		return req, fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := compiledRequestSchema()
	if err != nil {
		return req, err
	}
	if err := schema.Validate(inst); err != nil {
		return req, fmt.Errorf("schema validation failed: %w", err)
	}

	if err := json.Unmarshal(body, &req); err != nil {
		return req, fmt.Errorf("decode request: %w", err)
	}
	if req.Edition == "" {
		req.Edition = questionbank.EditionKetNoiTriThuc
	}
	return req, nil
}
