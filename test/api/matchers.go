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

package api

import (
	"errors"
	"fmt"

	"github.com/onsi/gomega/gcustom"
	"github.com/onsi/gomega/types"

	"github.com/nscaledev/jsonplaceholder-e2e/pkg/jsonplaceholder"
	"github.com/nscaledev/jsonplaceholder-e2e/pkg/schema"
)

var (
	ErrNilResponse       = errors.New("response is nil")
	ErrUnsupportedActual = errors.New("unsupported actual value")
)

// HaveStatus succeeds when the response carries the given status code.
func HaveStatus(code int) types.GomegaMatcher {
	return gcustom.MakeMatcher(func(resp *jsonplaceholder.Response) (bool, error) {
		if resp == nil {
			return false, ErrNilResponse
		}

		return resp.StatusCode == code, nil
	}).WithTemplate("Expected status {{.Actual.StatusCode}} {{.To}} equal {{.Data}}\nbody: {{printf \"%s\" .Actual.Body}}\ntrace ID: {{.Actual.TraceID}}", code)
}

// HaveJSONContentType succeeds when the response declares a JSON media type.
func HaveJSONContentType() types.GomegaMatcher {
	return gcustom.MakeMatcher(func(resp *jsonplaceholder.Response) (bool, error) {
		if resp == nil {
			return false, ErrNilResponse
		}

		return resp.IsJSON(), nil
	}).WithTemplate("Expected content type {{printf \"%q\" (.Actual.Header.Get \"Content-Type\")}} {{.To}} be JSON")
}

// MatchJSONSchema succeeds when the whole document conforms to the schema.
// The actual value may be a *jsonplaceholder.Response, []byte or string.
func MatchJSONSchema(validator *schema.Validator) types.GomegaMatcher {
	return &jsonSchemaMatcher{
		validator: validator,
	}
}

type jsonSchemaMatcher struct {
	validator *schema.Validator
	err       error
}

func (m *jsonSchemaMatcher) Match(actual any) (bool, error) {
	var document []byte

	switch t := actual.(type) {
	case *jsonplaceholder.Response:
		if t == nil {
			return false, ErrNilResponse
		}

		document = t.Body
	case []byte:
		document = t
	case string:
		document = []byte(t)
	default:
		return false, fmt.Errorf("%w: MatchJSONSchema expects a response, []byte or string, got %T", ErrUnsupportedActual, actual)
	}

	m.err = m.validator.Validate(document)

	// A document that isn't even JSON is a problem in either polarity.
	if errors.Is(m.err, schema.ErrInvalidDocument) {
		return false, m.err
	}

	return m.err == nil, nil
}

func (m *jsonSchemaMatcher) FailureMessage(_ any) string {
	return fmt.Sprintf("Expected document to match JSON schema:\n%v", m.err)
}

func (m *jsonSchemaMatcher) NegatedFailureMessage(_ any) string {
	return "Expected document not to match JSON schema, but it did"
}
