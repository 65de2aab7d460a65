/*
Copyright 2024-2025 the Unikorn Authors.
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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spjmurray/go-util/pkg/set"

	"github.com/nscaledev/jsonplaceholder-e2e/pkg/jsonplaceholder"
	"github.com/nscaledev/jsonplaceholder-e2e/pkg/schema"
	"github.com/nscaledev/jsonplaceholder-e2e/test/stub"
)

// NewClient creates a client from the test configuration, logging to the
// Ginkgo writer.  When a stub is requested it is started and torn down with
// the calling node, so this must be called from within a setup node.
func NewClient(config *TestConfig) *jsonplaceholder.Client {
	baseURL := config.BaseURL

	if config.StubAPI {
		server := httptest.NewServer(stub.NewHandler(stub.DefaultPosts()))
		DeferCleanup(server.Close)

		GinkgoWriter.Printf("Using stub API at %s\n", server.URL)

		baseURL = server.URL
	}

	return jsonplaceholder.New(baseURL,
		jsonplaceholder.WithTimeout(config.RequestTimeout),
		jsonplaceholder.WithLogger(GinkgoLogr),
		jsonplaceholder.WithRequestLogging(config.LogRequests || config.DebugLogging),
		jsonplaceholder.WithResponseLogging(config.LogResponses),
	)
}

// LoadPostSchema loads the configured schema, or the bundled one.
func LoadPostSchema(config *TestConfig) *schema.Validator {
	validator, err := schema.LoadOrDefault(config.SchemaPath)
	Expect(err).NotTo(HaveOccurred(), "Post schema should load")

	return validator
}

// ExpectJSONResponse verifies the transport level contract of a successful read.
func ExpectJSONResponse(resp *jsonplaceholder.Response, expectedStatus int) {
	Expect(resp).To(HaveStatus(expectedStatus))
	Expect(resp).To(HaveJSONContentType())
}

// DecodePosts decodes a post list, failing the test on malformed JSON.
func DecodePosts(resp *jsonplaceholder.Response) []jsonplaceholder.Post {
	posts, err := resp.Posts()
	Expect(err).NotTo(HaveOccurred(), "Response body should be a JSON array of posts")

	return posts
}

// DecodePost decodes a single post, failing the test on malformed JSON.
func DecodePost(resp *jsonplaceholder.Response) *jsonplaceholder.Post {
	post, err := resp.Post()
	Expect(err).NotTo(HaveOccurred(), "Response body should be a JSON post object")

	return post
}

// ExpectCompletePost verifies every post attribute is present and non-null.
func ExpectCompletePost(post *jsonplaceholder.Post) {
	Expect(post).NotTo(BeNil())
	Expect(post.ID).NotTo(BeNil(), "Post should have an id")
	Expect(post.UserID).NotTo(BeNil(), "Post should have a userId")
	Expect(post.Title).NotTo(BeNil(), "Post should have a title")
	Expect(post.Body).NotTo(BeNil(), "Post should have a body")
}

// PostIDs extracts IDs from a list of posts, skipping any without one.
func PostIDs(posts []jsonplaceholder.Post) []int {
	ids := make([]int, 0, len(posts))

	for _, post := range posts {
		if post.ID != nil {
			ids = append(ids, *post.ID)
		}
	}

	return ids
}

// CountDistinct returns the number of unique IDs.
func CountDistinct(ids []int) int {
	var count int

	for range set.New[int](ids...).All() {
		count++
	}

	return count
}

// AbsentPostID returns an ID strictly greater than any listed.
func AbsentPostID(ids []int) int {
	highest := 0

	for _, id := range ids {
		highest = max(highest, id)
	}

	return highest + 1
}
