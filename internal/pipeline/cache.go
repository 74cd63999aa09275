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
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"
)

// CacheEntry is an immutable persisted snapshot of one step's output.
// Entries are written once per successful step invocation and never read
// back by the Orchestrator; they exist for inspection and debugging.
type CacheEntry struct {
	RunID     string    `json:"run_id"`
	StepID    string    `json:"step_id"`
	Topic     string    `json:"topic"`
	Seq       int       `json:"seq"`
	WrittenAt time.Time `json:"written_at"`
	Payload   any       `json:"payload"`

	Path string `json:"-"`
}

// Cache stores step outputs as JSON files under a single directory. Writes
// are best-effort: the Orchestrator logs and swallows Put errors, so a full
// disk never fails a run. Concurrent runs write disjoint (run, step, seq)
// keys and need no coordination.
type Cache struct {
	Dir string
}

func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Cache{Dir: dir}, nil
}

// Put writes a new entry; it never overwrites. seq is the per-run write
// number, recorded so List can return entries in write order even when the
// timestamp granularity cannot separate adjacent steps.
func (c *Cache) Put(runID, topic, stepID string, seq int, payload any) (*CacheEntry, error) {
	entry := &CacheEntry{
		RunID:     runID,
		StepID:    stepID,
		Topic:     topic,
		Seq:       seq,
		WrittenAt: time.Now(),
		Payload:   payload,
	}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		// Unserializable payloads are stringified rather than lost.
		entry.Payload = fmt.Sprintf("%v", payload)
		data, err = json.MarshalIndent(entry, "", "  ")
		if err != nil {
			return nil, err
		}
	}
	name := fmt.Sprintf("%s_%03d_%s_%s.json",
		sanitizeTopic(topic), seq, stepID, entry.WrittenAt.Format("20060102_150405"))
	entry.Path = filepath.Join(c.Dir, name)
	if err := os.WriteFile(entry.Path, data, 0644); err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns all entries for a run in write order.
func (c *Cache) List(runID string) ([]CacheEntry, error) {
	names, err := filepath.Glob(filepath.Join(c.Dir, "*.json"))
	if err != nil {
		return nil, err
	}
	var entries []CacheEntry
	for _, name := range names {
		data, err := os.ReadFile(name)
		if err != nil {
			continue
		}
		var e CacheEntry
		if err := json.Unmarshal(data, &e); err != nil {
			continue
		}
		if e.RunID != runID {
			continue
		}
		e.Path = name
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Seq < entries[j].Seq })
	return entries, nil
}

// sanitizeTopic makes a topic safe for file names: spaces become
// underscores, anything outside [a-zA-Z0-9_-] is dropped, and the result is
// capped so long topics cannot overflow path limits.
func sanitizeTopic(topic string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(topic) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '_' || r == '-':
			b.WriteByte('_')
		}
	}
	s := b.String()
	if s == "" {
		s = "unknown_topic"
	}
	if len(s) > 60 {
		s = s[:60]
	}
	return s
}
