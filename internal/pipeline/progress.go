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
	"github.com/seoforge/seoforge/internal/log"
)

// Reporter receives progress events during a run. Notify is called
// synchronously on the caller's goroutine, so it must return quickly. A
// panicking reporter never aborts the run; the Orchestrator recovers and
// discards it.
type Reporter interface {
	Notify(fraction float64, snapshot *State, message string)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(fraction float64, snapshot *State, message string)

func (f ReporterFunc) Notify(fraction float64, snapshot *State, message string) {
	f(fraction, snapshot, message)
}

// MultiReporter fans one event out to several sinks in order.
func MultiReporter(reporters ...Reporter) Reporter {
	return ReporterFunc(func(fraction float64, snapshot *State, message string) {
		for _, r := range reporters {
			if r != nil {
				r.Notify(fraction, snapshot, message)
			}
		}
	})
}

// emit delivers one event, swallowing reporter panics so UI failures never
// affect the run outcome.
func emit(r Reporter, fraction float64, snapshot *State, message string) {
	if r == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			log.Warn("progress reporter panicked: %v", rec)
		}
	}()
	r.Notify(fraction, snapshot, message)
}
