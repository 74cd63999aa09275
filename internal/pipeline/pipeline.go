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
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/seoforge/seoforge/internal/log"
)

// Orchestrator drives a configured sequence of steps over one State. It is
// strictly sequential: steps run one at a time on the calling goroutine, and
// a blocking step blocks the run. It imposes no timeout of its own; retry
// and deadline policy belong to the step's LLM client.
//
// Failure policy: a non-terminal step's failure is recorded and the run
// continues, because later steps may still produce a degraded-but-useful
// result from whatever outputs exist. The terminal step produces the
// deliverable, so its failure fails the run.
type Orchestrator struct {
	Registry *Registry
	Cache    *Cache   // optional; nil disables snapshot persistence
	Reporter Reporter // optional
}

// Run executes sequence for topic and returns the final State. The returned
// error is non-nil only for rejected input, an empty sequence, or a run that
// produced no deliverable; in the last case the State is still returned with
// its failure bookkeeping filled in.
func (o *Orchestrator) Run(ctx context.Context, topic string, sequence []string) (*State, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, &InvalidInputError{Reason: "topic is empty"}
	}
	if len(sequence) == 0 {
		return nil, &ConfigurationError{Reason: "step sequence is empty"}
	}
	if o.Registry == nil {
		return nil, &ConfigurationError{Reason: "no step registry"}
	}

	st := NewState(topic)
	st.Status = StatusRunning
	n := len(sequence)
	terminalID := sequence[n-1]
	log.Info("run %s started, topic %q, %d steps", st.RunID, topic, n)

	for i, id := range sequence {
		st.CurrentStep = id
		emit(o.Reporter, float64(i)/float64(n), st.Snapshot(), fmt.Sprintf("running %s (%d/%d)", id, i+1, n))

		output, err := o.invoke(ctx, id, st)
		if err != nil {
			st.FailedSteps[id] = Failure{
				Message: err.Error(),
				Trace:   fmt.Sprintf("%+v", err),
			}
			log.Error("step %s failed: %v", id, err)
			emit(o.Reporter, float64(i+1)/float64(n), st.Snapshot(), fmt.Sprintf("error in %s: %v", id, err))
			if id == terminalID {
				break
			}
			continue
		}

		st.Outputs[id] = output
		st.CompletedSteps = append(st.CompletedSteps, id)
		o.persist(st, id, output)
		log.Info("step %s completed (%d/%d)", id, i+1, n)
		emit(o.Reporter, float64(i+1)/float64(n), st.Snapshot(), fmt.Sprintf("completed %s", id))
	}

	if _, failed := st.FailedSteps[terminalID]; failed {
		st.Status = StatusFailed
	} else {
		st.FinalOutput = st.Outputs[terminalID]
		st.Status = StatusCompleted
	}
	st.CurrentStep = ""
	st.EndedAt = time.Now()

	msg := "run completed"
	var runErr error
	if st.Status == StatusFailed {
		msg = "run failed"
		runErr = &RunFailedError{Failed: st.FailedSteps}
	}
	log.Info("run %s %s in %s, %d completed, %d failed",
		st.RunID, st.Status, st.EndedAt.Sub(st.StartedAt), len(st.CompletedSteps), len(st.FailedSteps))
	emit(o.Reporter, 1.0, st.Snapshot(), msg)
	return st, runErr
}

// invoke resolves and runs one step against a snapshot of st. Resolution
// failures, step errors, and step panics all come back as errors; the caller
// does not distinguish them beyond recording the failure at that position.
func (o *Orchestrator) invoke(ctx context.Context, id string, st *State) (output any, err error) {
	step, rerr := o.Registry.Resolve(id)
	if rerr != nil {
		return nil, rerr
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = &StepError{StepID: id, Cause: fmt.Errorf("panic: %v\n%s", rec, debug.Stack())}
		}
	}()
	res, serr := step.Run(ctx, st.Snapshot())
	if serr != nil {
		return nil, &StepError{StepID: id, Cause: serr}
	}
	if res == nil {
		return nil, nil
	}
	return res.Output, nil
}

// persist writes the step's output to the cache. Best-effort: failures are
// logged and swallowed, never surfaced to the run.
func (o *Orchestrator) persist(st *State, id string, output any) {
	if o.Cache == nil {
		return
	}
	entry, err := o.Cache.Put(st.RunID, st.Topic, id, len(st.CompletedSteps), output)
	if err != nil {
		log.Warn("cache write for step %s failed: %v", id, err)
		return
	}
	log.Debug("cached %s output to %s", id, entry.Path)
}
