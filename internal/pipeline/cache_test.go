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
	"strings"
	"testing"
)

func TestCache_PutAndList(t *testing.T) {
	cache, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	e1, err := cache.Put("run-1", "Future of Solar Power", "outline", 1, map[string]any{"sections": 5})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cache.Put("run-1", "Future of Solar Power", "draft", 2, "text"); err != nil {
		t.Fatal(err)
	}
	// A second run in the same directory must not collide or leak into List.
	if _, err := cache.Put("run-2", "Future of Solar Power", "outline", 1, "other"); err != nil {
		t.Fatal(err)
	}

	name := filepath.Base(e1.Path)
	if !strings.HasPrefix(name, "future_of_solar_power_") {
		t.Errorf("file name: got %s", name)
	}
	if !strings.Contains(name, "outline") {
		t.Errorf("file name missing step id: %s", name)
	}

	entries, err := cache.List("run-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries: got %d", len(entries))
	}
	if entries[0].StepID != "outline" || entries[1].StepID != "draft" {
		t.Errorf("write order: %s, %s", entries[0].StepID, entries[1].StepID)
	}
	if entries[0].Topic != "Future of Solar Power" {
		t.Errorf("topic: got %q", entries[0].Topic)
	}
}

func TestCache_UnserializablePayloadIsStringified(t *testing.T) {
	cache, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	// Channels cannot be marshaled; the write must still succeed.
	if _, err := cache.Put("run-1", "t", "step", 1, make(chan int)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	entries, err := cache.List("run-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries: got %d", len(entries))
	}
	if _, ok := entries[0].Payload.(string); !ok {
		t.Errorf("payload: got %T", entries[0].Payload)
	}
}

func TestSanitizeTopic(t *testing.T) {
	cases := map[string]string{
		"Future of Solar":         "future_of_solar",
		"AI/ML: what's next?":     "aiml_whats_next",
		"":                        "unknown_topic",
		"   ":                     "___",
		strings.Repeat("long", 30): strings.Repeat("long", 15),
	}
	for in, want := range cases {
		if got := sanitizeTopic(in); got != want {
			t.Errorf("sanitizeTopic(%q): got %q, want %q", in, got, want)
		}
	}
}
