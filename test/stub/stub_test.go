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

package stub_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nscaledev/jsonplaceholder-e2e/pkg/jsonplaceholder"
	"github.com/nscaledev/jsonplaceholder-e2e/pkg/schema"
	"github.com/nscaledev/jsonplaceholder-e2e/test/stub"
)

func newClient(t *testing.T) *jsonplaceholder.Client {
	t.Helper()

	server := httptest.NewServer(stub.NewHandler(stub.DefaultPosts()))
	t.Cleanup(server.Close)

	return jsonplaceholder.New(server.URL)
}

// TestListConformsToSchema ensures the stub honours the published contract.
func TestListConformsToSchema(t *testing.T) {
	t.Parallel()

	resp, err := newClient(t).GetPosts(t.Context())
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, resp.IsJSON())

	validator, err := schema.DefaultPosts()
	require.NoError(t, err)
	require.NoError(t, validator.Validate(resp.Body))
}

// TestGetPost ensures every listed post can be fetched by its ID.
func TestGetPost(t *testing.T) {
	t.Parallel()

	client := newClient(t)

	for _, expected := range stub.DefaultPosts() {
		post, err := client.FetchPost(t.Context(), *expected.ID)
		require.NoError(t, err)
		require.Equal(t, expected, *post)
	}
}

// TestGetPostNotFound ensures unknown and malformed IDs yield an empty 404.
func TestGetPostNotFound(t *testing.T) {
	t.Parallel()

	client := newClient(t)

	resp, err := client.GetPost(t.Context(), 9999)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.JSONEq(t, "{}", string(resp.Body))

	server := httptest.NewServer(stub.NewHandler(nil))
	defer server.Close()

	raw, err := http.Get(server.URL + "/posts/abc") //nolint:noctx
	require.NoError(t, err)

	defer raw.Body.Close()

	require.Equal(t, http.StatusNotFound, raw.StatusCode)
}
