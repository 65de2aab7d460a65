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

package api

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/nscaledev/jsonplaceholder-e2e/pkg/jsonplaceholder"
)

var ErrInvalidBaseURL = errors.New("invalid API base URL")

const (
	DefaultPostgresImage = "postgres:16-alpine"
	DefaultSampleSize    = 5
)

type TestConfig struct {
	BaseURL         string
	RequestTimeout  time.Duration
	TestTimeout     time.Duration
	SchemaPath      string
	SampleSize      int
	PostgresImage   string
	SkipIntegration bool
	StubAPI         bool
	DebugLogging    bool
	LogRequests     bool
	LogResponses    bool
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Everything has a default, so an empty environment targets the public service.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	config := &TestConfig{
		BaseURL:         getStringWithDefault("API_BASE_URL", jsonplaceholder.DefaultBaseURL),
		RequestTimeout:  getDurationWithDefault("REQUEST_TIMEOUT", 30*time.Second),
		TestTimeout:     getDurationWithDefault("TEST_TIMEOUT", 5*time.Minute),
		SchemaPath:      os.Getenv("POST_SCHEMA_PATH"),
		SampleSize:      getIntWithDefault("SAMPLE_SIZE", DefaultSampleSize),
		PostgresImage:   getStringWithDefault("POSTGRES_IMAGE", DefaultPostgresImage),
		SkipIntegration: getBoolWithDefault("SKIP_INTEGRATION", false),
		StubAPI:         getBoolWithDefault("STUB_API", false),
		DebugLogging:    getBoolWithDefault("DEBUG_LOGGING", false),
		LogRequests:     getBoolWithDefault("LOG_REQUESTS", false),
		LogResponses:    getBoolWithDefault("LOG_RESPONSES", false),
	}

	if err := validateBaseURL(config.BaseURL); err != nil {
		return nil, err
	}

	return config, nil
}

func getStringWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// getIntWithDefault gets a positive integer from environment variable or returns default.
func getIntWithDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil || intValue <= 0 {
		return defaultValue
	}

	return intValue
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func loadEnvFile() {
	envPaths := []string{
		"../../../test/.env", // From test/api/suites and test/contracts/* directories
		"../../test/.env",
		"../test/.env", // From test/db
	}

	var envPath string

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	// Existing environment variables take precedence.
	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}

// validateBaseURL checks the base URL is absolute.
func validateBaseURL(baseURL string) error {
	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme must be http or https, got %q", ErrInvalidBaseURL, baseURL)
	}

	if u.Host == "" {
		return fmt.Errorf("%w: missing host in %q", ErrInvalidBaseURL, baseURL)
	}

	return nil
}
