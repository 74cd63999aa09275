// Copyright 2025 the seoforge authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pipeline

import (
	"fmt"
	"sort"
	"strings"
)

// InvalidInputError rejects a run before any step executes, e.g. an empty
// or whitespace-only topic.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}

// ConfigurationError marks a step identifier that could not be resolved to
// an implementation. At a non-terminal position it is handled like any other
// step failure; an empty sequence surfaces as a ConfigurationError with an
// empty StepID.
type ConfigurationError struct {
	StepID string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.StepID == "" {
		return "configuration: " + e.Reason
	}
	return fmt.Sprintf("configuration: step %q: %s", e.StepID, e.Reason)
}

// StepError wraps a failure raised by a resolved step during invocation.
type StepError struct {
	StepID string
	Cause  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %q: %v", e.StepID, e.Cause)
}

func (e *StepError) Unwrap() error { return e.Cause }

// RunFailedError is returned by Orchestrator.Run when the terminal step did
// not produce output. It summarizes every recorded failure so callers need
// not inspect logs.
type RunFailedError struct {
	Failed map[string]Failure
}

func (e *RunFailedError) Error() string {
	ids := make([]string, 0, len(e.Failed))
	for id := range e.Failed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return "run failed, failed steps: " + strings.Join(ids, ", ")
}
