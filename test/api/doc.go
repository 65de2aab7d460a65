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

// Package api provides integration test utilities for the posts API.
//
// # Client Usage
//
// Suites drive the API with jsonplaceholder.Client, which hands back the
// raw response without interpreting the status code. All judgement happens
// in the suites, via the matchers and fixtures in this package:
//   - HaveStatus and HaveJSONContentType for transport level checks
//   - MatchJSONSchema for whole body structural validation
//   - ExpectCompletePost for typed field presence checks
//
// # Configuration
//
// Everything is driven from the environment, optionally seeded from
// test/.env, see LoadTestConfig.  With no configuration the suites target
// the public JSONPlaceholder service.  Setting STUB_API=true swaps in the
// in-process stub from the stub package for hermetic runs.
package api
