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

// Package probe runs the posts API contract checks outside of a test runner,
// for smoke testing a deployment or a stub.
package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-logr/logr"

	"github.com/nscaledev/jsonplaceholder-e2e/pkg/jsonplaceholder"
	"github.com/nscaledev/jsonplaceholder-e2e/pkg/schema"
)

//go:generate mockgen -source=probe.go -destination=mock/client.go -package=mock

var (
	ErrStatus      = errors.New("unexpected status")
	ErrContentType = errors.New("unexpected content type")
	ErrEmpty       = errors.New("no posts returned")
	ErrIncomplete  = errors.New("post is incomplete")
	ErrIdentity    = errors.New("post id mismatch")
	ErrNotRepeated = errors.New("repeated read differs")
)

// PostsClient is the subset of the API the probe needs.
type PostsClient interface {
	GetPosts(ctx context.Context) (*jsonplaceholder.Response, error)
	GetPost(ctx context.Context, id int) (*jsonplaceholder.Response, error)
}

// Result is the outcome of a single check.
type Result struct {
	Name     string
	Err      error
	Duration time.Duration
}

// Passed is true when the check succeeded.
func (r Result) Passed() bool {
	return r.Err == nil
}

// Report is the ordered outcome of a run.
type Report struct {
	Results []Result
}

// OK is true when every check passed.
func (r *Report) OK() bool {
	for _, result := range r.Results {
		if !result.Passed() {
			return false
		}
	}

	return true
}

// Failed returns the number of failed checks.
func (r *Report) Failed() int {
	var failed int

	for _, result := range r.Results {
		if !result.Passed() {
			failed++
		}
	}

	return failed
}

// Runner executes the checks.
type Runner struct {
	client    PostsClient
	validator *schema.Validator
	logger    logr.Logger
	postID    int
}

// New returns a runner that will fetch the given post ID in the single post check.
func New(client PostsClient, validator *schema.Validator, logger logr.Logger, postID int) *Runner {
	return &Runner{
		client:    client,
		validator: validator,
		logger:    logger,
		postID:    postID,
	}
}

type check struct {
	name string
	run  func(ctx context.Context, first *jsonplaceholder.Response) error

	// needsList checks inspect the initial listing.
	needsList bool
}

// Run executes all checks in order.  The list is fetched once and shared
// between the checks that inspect it, if that fetch fails the dependent
// checks are reported as failed with the same error.
func (r *Runner) Run(ctx context.Context) *Report {
	report := &Report{}

	start := time.Now()
	first, listErr := r.client.GetPosts(ctx)
	listDuration := time.Since(start)

	checks := []check{
		{name: "list-posts", run: r.checkList, needsList: true},
		{name: "posts-schema", run: r.checkSchema, needsList: true},
		{name: "list-posts-idempotent", run: r.checkIdempotent, needsList: true},
		{name: "get-post", run: r.checkGetPost},
	}

	for i, c := range checks {
		result := Result{
			Name: c.name,
		}

		start := time.Now()

		if c.needsList && listErr != nil {
			result.Err = listErr
		} else {
			result.Err = c.run(ctx, first)
		}

		result.Duration = time.Since(start)

		// The initial fetch is attributed to the first check.
		if i == 0 {
			result.Duration += listDuration
		}

		if result.Err != nil {
			r.logger.Info("check failed", "check", c.name, "error", result.Err.Error())
		} else {
			r.logger.V(1).Info("check passed", "check", c.name, "duration", result.Duration)
		}

		report.Results = append(report.Results, result)
	}

	return report
}

func expectJSON(resp *jsonplaceholder.Response, expected int) error {
	if resp.StatusCode != expected {
		return fmt.Errorf("%w: expected %d, got %d (trace ID: %s)", ErrStatus, expected, resp.StatusCode, resp.TraceID)
	}

	if !resp.IsJSON() {
		return fmt.Errorf("%w: %q", ErrContentType, resp.Header.Get("Content-Type"))
	}

	return nil
}

func (r *Runner) checkList(_ context.Context, resp *jsonplaceholder.Response) error {
	if err := expectJSON(resp, http.StatusOK); err != nil {
		return err
	}

	posts, err := resp.Posts()
	if err != nil {
		return err
	}

	if len(posts) == 0 {
		return ErrEmpty
	}

	if missing := posts[0].MissingFields(); len(missing) != 0 {
		return fmt.Errorf("%w: first post is missing %v", ErrIncomplete, missing)
	}

	return nil
}

func (r *Runner) checkSchema(_ context.Context, resp *jsonplaceholder.Response) error {
	if err := expectJSON(resp, http.StatusOK); err != nil {
		return err
	}

	return r.validator.Validate(resp.Body)
}

func (r *Runner) checkIdempotent(ctx context.Context, first *jsonplaceholder.Response) error {
	second, err := r.client.GetPosts(ctx)
	if err != nil {
		return err
	}

	if first.StatusCode != http.StatusOK || second.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: got %d then %d", ErrStatus, first.StatusCode, second.StatusCode)
	}

	if !bytes.Equal(first.Body, second.Body) {
		return ErrNotRepeated
	}

	return nil
}

func (r *Runner) checkGetPost(ctx context.Context, _ *jsonplaceholder.Response) error {
	resp, err := r.client.GetPost(ctx, r.postID)
	if err != nil {
		return err
	}

	if err := expectJSON(resp, http.StatusOK); err != nil {
		return err
	}

	post, err := resp.Post()
	if err != nil {
		return err
	}

	if missing := post.MissingFields(); len(missing) != 0 {
		return fmt.Errorf("%w: missing %v", ErrIncomplete, missing)
	}

	if *post.ID != r.postID {
		return fmt.Errorf("%w: requested %d, got %d", ErrIdentity, r.postID, *post.ID)
	}

	return nil
}
