// Package vault reads key-value secrets from HashiCorp Vault.
package vault

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	dserrors "github.com/systmms/vaultstep/internal/errors"
)

// Engine addresses secrets and unwraps responses for one version of the
// KV secrets engine.
type Engine interface {
	Version() string
	URL(base, path string) string
	Unwrap(path string, body []byte) (map[string]interface{}, error)
}

// EngineFor returns the engine for a kv-version input of "1" or "2".
func EngineFor(version string) (Engine, error) {
	switch version {
	case "1":
		return KV1{}, nil
	case "2":
		return KV2{}, nil
	default:
		return nil, fmt.Errorf("unsupported KV version %q", version)
	}
}

// KV1 reads {url}/v1/{path} and expects {"data": {...}}.
type KV1 struct{}

var kv1Schema = gojsonschema.NewStringLoader(`{
	"type": "object",
	"required": ["data"],
	"properties": {
		"data": {"type": "object"}
	}
}`)

func (KV1) Version() string { return "1" }

func (KV1) URL(base, path string) string {
	return strings.TrimSuffix(base, "/") + "/v1/" + strings.TrimPrefix(path, "/")
}

func (KV1) Unwrap(path string, body []byte) (map[string]interface{}, error) {
	var envelope struct {
		Data map[string]interface{} `json:"data"`
	}
	if err := decodeEnvelope(path, body, kv1Schema, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// KV2 reads {url}/v1/{mount}/data/{rest}, where mount is the first
// segment of the path, and expects {"data": {"data": {...}}}.
type KV2 struct{}

var kv2Schema = gojsonschema.NewStringLoader(`{
	"type": "object",
	"required": ["data"],
	"properties": {
		"data": {
			"type": "object",
			"required": ["data"],
			"properties": {
				"data": {"type": "object"}
			}
		}
	}
}`)

func (KV2) Version() string { return "2" }

func (KV2) URL(base, path string) string {
	mount, rest, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	return strings.TrimSuffix(base, "/") + "/v1/" + mount + "/data/" + rest
}

func (KV2) Unwrap(path string, body []byte) (map[string]interface{}, error) {
	var envelope struct {
		Data struct {
			Data map[string]interface{} `json:"data"`
		} `json:"data"`
	}
	if err := decodeEnvelope(path, body, kv2Schema, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data.Data, nil
}

// decodeEnvelope validates body against schema and decodes it into v,
// keeping numbers in their literal form.
func decodeEnvelope(path string, body []byte, schema gojsonschema.JSONLoader, v interface{}) error {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return &dserrors.ResponseError{
			Path:    path,
			Message: fmt.Sprintf("invalid response for %q", path),
			Err:     err,
		}
	}
	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return &dserrors.ResponseError{
			Path:    path,
			Message: fmt.Sprintf("unexpected response for %q: %s", path, strings.Join(problems, "; ")),
		}
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return &dserrors.ResponseError{
			Path:    path,
			Message: fmt.Sprintf("invalid response for %q", path),
			Err:     err,
		}
	}
	return nil
}
