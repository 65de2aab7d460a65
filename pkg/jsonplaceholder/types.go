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

// Post is a JSONPlaceholder post.  All fields are optional so that a missing
// or null attribute in a response can be told apart from a zero value.
type Post struct {
	ID     *int    `json:"id,omitempty"`
	UserID *int    `json:"userId,omitempty"`
	Title  *string `json:"title,omitempty"`
	Body   *string `json:"body,omitempty"`
}

// MissingFields returns the JSON names of any unset fields, in declaration order.
func (p *Post) MissingFields() []string {
	var missing []string

	if p.ID == nil {
		missing = append(missing, "id")
	}

	if p.UserID == nil {
		missing = append(missing, "userId")
	}

	if p.Title == nil {
		missing = append(missing, "title")
	}

	if p.Body == nil {
		missing = append(missing, "body")
	}

	return missing
}

// Complete is true when every field is present.
func (p *Post) Complete() bool {
	return len(p.MissingFields()) == 0
}
