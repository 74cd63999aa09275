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
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Status of one run. Transitions are monotonic:
// initialized -> running -> completed|failed.
type Status string

const (
	StatusInitialized Status = "initialized"
	StatusRunning     Status = "running"
	StatusCompleted   Status = "completed"
	StatusFailed      Status = "failed"
)

// Failure records why one step did not produce output.
type Failure struct {
	Message string `json:"message"`
	Trace   string `json:"trace,omitempty"`
}

// State is the single mutable record threaded through a run. The
// Orchestrator owns every field except Outputs entries, which steps produce;
// a step sees a snapshot and may only add under its own identifier.
// Once Status is terminal the state is no longer mutated.
type State struct {
	RunID          string             `json:"run_id"`
	Topic          string             `json:"topic"`
	CurrentStep    string             `json:"current_step"`
	CompletedSteps []string           `json:"completed_steps"`
	FailedSteps    map[string]Failure `json:"failed_steps"`
	Outputs        map[string]any     `json:"outputs"`
	Status         Status             `json:"status"`
	StartedAt      time.Time          `json:"started_at"`
	EndedAt        time.Time          `json:"ended_at,omitempty"`
	FinalOutput    any                `json:"final_output,omitempty"`
}

// NewState returns the initial state for a run.
func NewState(topic string) *State {
	return &State{
		RunID:          uuid.NewString(),
		Topic:          topic,
		CompletedSteps: []string{},
		FailedSteps:    map[string]Failure{},
		Outputs:        map[string]any{},
		Status:         StatusInitialized,
		StartedAt:      time.Now(),
	}
}

// Snapshot returns a copy whose collections are detached from the original,
// for handing to steps and progress sinks. Output values themselves are
// shared; they are immutable once written.
func (s *State) Snapshot() *State {
	if s == nil {
		return nil
	}
	out := *s
	out.CompletedSteps = append([]string(nil), s.CompletedSteps...)
	out.FailedSteps = make(map[string]Failure, len(s.FailedSteps))
	for k, v := range s.FailedSteps {
		out.FailedSteps[k] = v
	}
	out.Outputs = make(map[string]any, len(s.Outputs))
	for k, v := range s.Outputs {
		out.Outputs[k] = v
	}
	return &out
}

// Terminal reports whether the run has reached a final status.
func (s *State) Terminal() bool {
	return s.Status == StatusCompleted || s.Status == StatusFailed
}

// SaveToFile writes an indented JSON snapshot of the state, for inspection
// or re-export. Not read back by the Orchestrator.
func (s *State) SaveToFile(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadState reads a state snapshot previously written by SaveToFile.
func LoadState(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, err
	}
	return &st, nil
}
