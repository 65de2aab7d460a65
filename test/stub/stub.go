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

// Package stub provides an in-process stand in for the JSONPlaceholder posts
// resource, so suites can run without network access.
package stub

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nscaledev/jsonplaceholder-e2e/pkg/jsonplaceholder"

	"k8s.io/utils/ptr"
)

// DefaultPosts returns a small deterministic dataset.
func DefaultPosts() []jsonplaceholder.Post {
	posts := make([]jsonplaceholder.Post, 0, 10)

	for i := 1; i <= 10; i++ {
		posts = append(posts, jsonplaceholder.Post{
			ID:     ptr.To(i),
			UserID: ptr.To((i-1)/5 + 1),
			Title:  ptr.To(fmt.Sprintf("stub post %d", i)),
			Body:   ptr.To(fmt.Sprintf("body of stub post %d", i)),
		})
	}

	return posts
}

type handler struct {
	posts []jsonplaceholder.Post
}

// NewHandler serves the given posts in the same shape as the real service.
func NewHandler(posts []jsonplaceholder.Post) http.Handler {
	if posts == nil {
		posts = []jsonplaceholder.Post{}
	}

	h := &handler{
		posts: posts,
	}

	router := chi.NewRouter()
	router.Get("/posts", h.listPosts)
	router.Get("/posts/{id}", h.getPost)

	return router
}

func (h *handler) listPosts(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, h.posts)
}

func (h *handler) getPost(w http.ResponseWriter, r *http.Request) {
	// Like the real thing, anything unresolvable is a 404 with an empty object.
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSONResponse(w, http.StatusNotFound, struct{}{})
		return
	}

	for i := range h.posts {
		if h.posts[i].ID != nil && *h.posts[i].ID == id {
			writeJSONResponse(w, http.StatusOK, h.posts[i])
			return
		}
	}

	writeJSONResponse(w, http.StatusNotFound, struct{}{})
}

func writeJSONResponse(w http.ResponseWriter, code int, response any) {
	body, err := json.Marshal(response)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	_, _ = w.Write(body)
}
