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

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/nscaledev/jsonplaceholder-e2e/pkg/jsonplaceholder"
	"github.com/nscaledev/jsonplaceholder-e2e/pkg/probe"
	"github.com/nscaledev/jsonplaceholder-e2e/pkg/schema"
)

var errChecksFailed = errors.New("probe checks failed")

type options struct {
	baseURL    string
	postID     int
	timeout    time.Duration
	schemaPath string
	debug      bool
}

func (o *options) addFlags(f *pflag.FlagSet) {
	f.StringVar(&o.baseURL, "base-url", jsonplaceholder.DefaultBaseURL, "Base URL of the posts API.")
	f.IntVar(&o.postID, "post-id", 1, "Post ID to fetch in the single post check.")
	f.DurationVar(&o.timeout, "timeout", jsonplaceholder.DefaultTimeout, "Timeout for each request.")
	f.StringVar(&o.schemaPath, "schema", "", "Path to a JSON schema for the post list, defaults to the bundled schema.")
	f.BoolVar(&o.debug, "debug", false, "Enable debug logging, including request traces.")
}

func newLogger(debug bool) (logr.Logger, error) {
	config := zap.NewProductionConfig()

	if debug {
		config = zap.NewDevelopmentConfig()
	}

	zapLog, err := config.Build()
	if err != nil {
		return logr.Discard(), err
	}

	return zapr.NewLogger(zapLog), nil
}

func printReport(report *probe.Report) {
	pass := color.New(color.FgGreen, color.Bold).SprintFunc()
	fail := color.New(color.FgRed, color.Bold).SprintFunc()

	for _, result := range report.Results {
		if result.Passed() {
			fmt.Printf("%s %s (%v)\n", pass("PASS"), result.Name, result.Duration.Round(time.Millisecond))
			continue
		}

		fmt.Printf("%s %s (%v): %v\n", fail("FAIL"), result.Name, result.Duration.Round(time.Millisecond), result.Err)
	}

	if report.OK() {
		fmt.Println(pass(fmt.Sprintf("all %d checks passed", len(report.Results))))
		return
	}

	fmt.Println(fail(fmt.Sprintf("%d of %d checks failed", report.Failed(), len(report.Results))))
}

func run(o *options) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger, err := newLogger(o.debug)
	if err != nil {
		return err
	}

	logger = logger.WithName("probe")

	validator, err := schema.LoadOrDefault(o.schemaPath)
	if err != nil {
		return err
	}

	client := jsonplaceholder.New(o.baseURL,
		jsonplaceholder.WithTimeout(o.timeout),
		jsonplaceholder.WithLogger(logger),
		jsonplaceholder.WithRequestLogging(o.debug),
	)

	logger.Info("probe starting", "baseURL", client.BaseURL(), "postID", o.postID)

	report := probe.New(client, validator, logger, o.postID).Run(ctx)

	printReport(report)

	if !report.OK() {
		return fmt.Errorf("%w: %d failed", errChecksFailed, report.Failed())
	}

	return nil
}

func main() {
	var o options

	o.addFlags(pflag.CommandLine)

	pflag.Parse()

	if err := run(&o); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
