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
	"encoding/json"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// WatchCache tails a cache directory and invokes fn for each entry as it is
// written, typically from a second terminal while a run is in flight. It is
// an inspection tool only; the Orchestrator never reads the cache back.
// Blocks until ctx is done.
func WatchCache(ctx context.Context, dir string, fn func(CacheEntry)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return err
	}

	seen := make(map[string]bool)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 || !strings.HasSuffix(ev.Name, ".json") {
				continue
			}
			if seen[ev.Name] {
				continue
			}
			data, err := os.ReadFile(ev.Name)
			if err != nil {
				continue
			}
			var e CacheEntry
			if err := json.Unmarshal(data, &e); err != nil || e.StepID == "" {
				// Partially written file; the next Write event retries.
				continue
			}
			seen[ev.Name] = true
			e.Path = ev.Name
			fn(e)
		case <-w.Errors:
		}
	}
}
