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
	"path/filepath"
	"testing"
)

func TestState_SnapshotIsDetached(t *testing.T) {
	st := NewState("topic")
	st.Outputs["a"] = 1
	st.CompletedSteps = append(st.CompletedSteps, "a")

	snap := st.Snapshot()
	snap.Outputs["b"] = 2
	snap.CompletedSteps = append(snap.CompletedSteps, "b")
	snap.FailedSteps["x"] = Failure{Message: "m"}

	if _, ok := st.Outputs["b"]; ok {
		t.Error("snapshot mutation leaked into outputs")
	}
	if len(st.CompletedSteps) != 1 {
		t.Errorf("completed: got %v", st.CompletedSteps)
	}
	if len(st.FailedSteps) != 0 {
		t.Errorf("failed: got %v", st.FailedSteps)
	}
}

func TestState_SaveAndLoad(t *testing.T) {
	st := NewState("solar power")
	st.Status = StatusCompleted
	st.Outputs["outline"] = map[string]any{"sections": []any{"intro"}}
	st.FinalOutput = "article"

	path := filepath.Join(t.TempDir(), "runs", "state.json")
	if err := st.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile: %v", err)
	}
	got, err := LoadState(path)
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if got.RunID != st.RunID || got.Topic != st.Topic || got.Status != st.Status {
		t.Errorf("roundtrip mismatch: %+v", got)
	}
	if got.FinalOutput != "article" {
		t.Errorf("final output: got %v", got.FinalOutput)
	}
}

func TestNewState_Defaults(t *testing.T) {
	st := NewState("t")
	if st.Status != StatusInitialized {
		t.Errorf("status: got %s", st.Status)
	}
	if st.RunID == "" {
		t.Error("run id not set")
	}
	if st.Terminal() {
		t.Error("fresh state must not be terminal")
	}
	if st.Outputs == nil || st.FailedSteps == nil || st.CompletedSteps == nil {
		t.Error("collections not initialized")
	}
}
