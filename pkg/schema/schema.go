/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package schema validates JSON documents against a JSON Schema.
//
// Schemas are interpreted as OpenAPI 3 schema objects, which covers the
// structural keywords (type, required, properties, items, minItems and
// friends) that response contracts are written with.
package schema

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/getkin/kin-openapi/openapi3"
)

var (
	// ErrInvalidSchema is returned when the schema itself cannot be parsed.
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrInvalidDocument is returned when the document is not JSON.
	ErrInvalidDocument = errors.New("invalid JSON document")

	// ErrMismatch is returned when the document does not conform.
	ErrMismatch = errors.New("document does not match schema")
)

//go:embed post-schema.json
var postSchema []byte

// Validator checks documents against a single schema.
type Validator struct {
	schema *openapi3.Schema
}

// Parse builds a validator from a raw schema document.
func Parse(data []byte) (*Validator, error) {
	schema := &openapi3.Schema{}

	if err := json.Unmarshal(data, schema); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}

	return &Validator{
		schema: schema,
	}, nil
}

// Load builds a validator from a schema file.
func Load(path string) (*Validator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema %s: %w", path, err)
	}

	return Parse(data)
}

// DefaultPosts returns a validator for the bundled post list schema.
func DefaultPosts() (*Validator, error) {
	return Parse(postSchema)
}

// LoadOrDefault loads the schema at path, or the bundled post list schema
// when no path is given.
func LoadOrDefault(path string) (*Validator, error) {
	if path == "" {
		return DefaultPosts()
	}

	return Load(path)
}

// Validate checks every part of the document, not just the first element,
// and reports all violations at once.
func (v *Validator) Validate(document []byte) error {
	var value any

	if err := json.Unmarshal(document, &value); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return v.ValidateValue(value)
}

// ValidateValue checks an already decoded document.
func (v *Validator) ValidateValue(value any) error {
	if err := v.schema.VisitJSON(value, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("%w: %w", ErrMismatch, err)
	}

	return nil
}
