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
	"context"
	"sort"
	"sync"
)

// Step is one unit of the pipeline. It receives a snapshot of the state as
// it exists before the step runs (all prior outputs visible) and returns the
// artifact to record under its own identifier. A step must not assume it is
// retried within a run; the Orchestrator invokes it at most once.
//
// "No result" is a valid outcome: return an empty StepResult, not an error.
type Step interface {
	ID() string
	Run(ctx context.Context, st *State) (*StepResult, error)
}

// StepResult carries a step's produced artifact. Output must be
// JSON-serializable (strings, numbers, booleans, nil, slices, string-keyed
// maps); the core treats it opaquely.
type StepResult struct {
	Output any
}

// Factory constructs a step implementation for one identifier.
type Factory func() (Step, error)

// Registry resolves step identifiers to implementations. It replaces
// runtime reflection: steps are data-configured by name and bound to
// factories at startup.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register binds id to f, replacing any previous binding.
func (r *Registry) Register(id string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[id] = f
}

// Resolve builds the step registered under id. An unknown identifier or a
// failing factory surfaces as a ConfigurationError, distinguishable from a
// StepError raised by a resolved step.
func (r *Registry) Resolve(id string) (Step, error) {
	r.mu.RLock()
	f, ok := r.factories[id]
	r.mu.RUnlock()
	if !ok {
		return nil, &ConfigurationError{StepID: id, Reason: "no step registered"}
	}
	s, err := f()
	if err != nil {
		return nil, &ConfigurationError{StepID: id, Reason: err.Error()}
	}
	return s, nil
}

// IDs returns the registered identifiers in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
