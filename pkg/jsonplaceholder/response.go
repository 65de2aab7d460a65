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
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"
)

// Response is an unprocessed HTTP response.  Interpretation of the status
// code is left entirely to the caller.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Duration   time.Duration

	// TraceID identifies the request in any downstream logs.
	TraceID string
}

// ContentType returns the media type without any parameters e.g. charset.
func (r *Response) ContentType() string {
	value := r.Header.Get("Content-Type")
	if value == "" {
		return ""
	}

	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		return strings.TrimSpace(strings.SplitN(value, ";", 2)[0])
	}

	return mediaType
}

// IsJSON returns true for application/json and any +json structured suffix.
func (r *Response) IsJSON() bool {
	mediaType := r.ContentType()

	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// JSON decodes the body into an untyped tree.
func (r *Response) JSON() (any, error) {
	var value any
	if err := json.Unmarshal(r.Body, &value); err != nil {
		return nil, fmt.Errorf("unmarshaling response body: %w", err)
	}

	return value, nil
}

// Posts decodes the body as a list of posts.
func (r *Response) Posts() ([]Post, error) {
	var posts []Post
	if err := json.Unmarshal(r.Body, &posts); err != nil {
		return nil, fmt.Errorf("unmarshaling posts response: %w", err)
	}

	return posts, nil
}

// Post decodes the body as a single post.
func (r *Response) Post() (*Post, error) {
	var post Post
	if err := json.Unmarshal(r.Body, &post); err != nil {
		return nil, fmt.Errorf("unmarshaling post response: %w", err)
	}

	return &post, nil
}
