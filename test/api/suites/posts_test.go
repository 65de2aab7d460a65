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

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nscaledev/jsonplaceholder-e2e/test/api"
)

var _ = Describe("Posts", func() {
	Context("When listing posts", func() {
		Describe("Given the service is available", func() {
			It("should return a list of posts with the expected structure", func() {
				// When: I request all posts
				resp, err := client.GetPosts(ctx)
				Expect(err).NotTo(HaveOccurred())

				// Then: The response is a successful JSON response
				api.ExpectJSONResponse(resp, http.StatusOK)

				// And: The body is a non-empty list whose first element is complete
				posts := api.DecodePosts(resp)
				Expect(posts).NotTo(BeEmpty())
				api.ExpectCompletePost(&posts[0])

				// And: Every element conforms to the published schema
				Expect(resp).To(api.MatchJSONSchema(postSchema), "Response should match the posts schema")

				GinkgoWriter.Printf("Found %d posts\n", len(posts))
			})

			It("should return the same result when repeated", func() {
				first, err := client.GetPosts(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(first).To(api.HaveStatus(http.StatusOK))

				second, err := client.GetPosts(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(second).To(api.HaveStatus(http.StatusOK))

				Expect(second.Body).To(MatchJSON(first.Body), "Reads should be idempotent")
			})

			It("should identify every post uniquely", func() {
				resp, err := client.GetPosts(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp).To(api.HaveStatus(http.StatusOK))

				posts := api.DecodePosts(resp)
				ids := api.PostIDs(posts)

				Expect(ids).To(HaveLen(len(posts)), "Every post should have an id")
				Expect(api.CountDistinct(ids)).To(Equal(len(ids)), "Post ids should be unique")
			})
		})
	})

	Context("When retrieving a single post", func() {
		Describe("Given the post exists", func() {
			It("should return the requested post", func() {
				postID := 1

				// When: I request a post by ID
				resp, err := client.GetPost(ctx, postID)
				Expect(err).NotTo(HaveOccurred())

				// Then: The response is a successful JSON response
				api.ExpectJSONResponse(resp, http.StatusOK)

				// And: The post is the one requested, with all attributes
				post := api.DecodePost(resp)
				api.ExpectCompletePost(post)
				Expect(*post.ID).To(Equal(postID))
			})

			It("should return each listed post by its own ID", func() {
				// Given: A sample of IDs from the listing
				resp, err := client.GetPosts(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp).To(api.HaveStatus(http.StatusOK))

				ids := api.PostIDs(api.DecodePosts(resp))
				Expect(ids).NotTo(BeEmpty())

				sample := ids[:min(len(ids), config.SampleSize)]

				// Then: Each ID resolves to a post with the same ID
				for _, id := range sample {
					resp, err := client.GetPost(ctx, id)
					Expect(err).NotTo(HaveOccurred())
					api.ExpectJSONResponse(resp, http.StatusOK)

					post := api.DecodePost(resp)
					Expect(post.ID).NotTo(BeNil())
					Expect(*post.ID).To(Equal(id), "Post %d should report its own id", id)
				}
			})
		})

		Describe("Given the post does not exist", func() {
			It("should return a not found response without a client error", func() {
				resp, err := client.GetPosts(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp).To(api.HaveStatus(http.StatusOK))

				absentID := api.AbsentPostID(api.PostIDs(api.DecodePosts(resp)))

				resp, err = client.GetPost(ctx, absentID)
				Expect(err).NotTo(HaveOccurred(), "A 404 is a response, not a client failure")
				Expect(resp).To(api.HaveStatus(http.StatusNotFound))
			})
		})
	})
})
