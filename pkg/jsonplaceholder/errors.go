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

package jsonplaceholder

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is matched by a StatusError carrying a 404.
	ErrNotFound = errors.New("resource not found")

	// ErrUnexpectedStatus is matched by every StatusError.
	ErrUnexpectedStatus = errors.New("unexpected status code")
)

// StatusError is returned by the typed helpers when the server answers
// with anything other than 200.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
	TraceID    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status code: expected %d, got %d, body: %s (trace ID: %s)", e.Method, e.Path, http.StatusOK, e.StatusCode, e.Body, e.TraceID)
}

func (e *StatusError) Is(target error) bool {
	switch {
	case target == ErrUnexpectedStatus:
		return true
	case target == ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}

	return false
}
