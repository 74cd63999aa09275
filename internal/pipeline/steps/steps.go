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

// Package steps implements the content-generation pipeline steps. Each step
// builds a prompt from the accumulated state, makes at most one Generator
// call, parses the response, and returns its artifact; a few are fully
// local. Failure handling, ordering, and persistence live in the pipeline
// package.
package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/seoforge/seoforge/internal/pipeline"
	"github.com/seoforge/seoforge/llm"
	"github.com/seoforge/seoforge/llm/prompt"
)

// Step identifiers, in their default execution order.
const (
	StepTrend       = "trend_analysis"
	StepIntent      = "intent_classifier"
	StepKeywords    = "keyword_mining"
	StepOutline     = "outline"
	StepDraft       = "draft_writer"
	StepHumanize    = "humanization"
	StepReadability = "readability"
	StepTone        = "tone_check"
	StepQA          = "qa_validation"
	StepLinks       = "internal_linking"
	StepOnPage      = "onpage_seo"
	StepSchema      = "schema_markup"
	StepAssemble    = "final_assembly"
)

// DefaultSequence is the full pipeline in order; final_assembly is the
// terminal step and produces the deliverable.
func DefaultSequence() []string {
	return []string{
		StepTrend, StepIntent, StepKeywords, StepOutline, StepDraft,
		StepHumanize, StepReadability, StepTone, StepQA, StepLinks,
		StepOnPage, StepSchema, StepAssemble,
	}
}

// Deps carries what step construction needs.
type Deps struct {
	Model   llm.ChatModel
	Retries int
	Timeout time.Duration
}

// Register binds every step to r. Each LLM-backed step gets its own client
// carrying that step's system prompt.
func Register(r *pipeline.Registry, deps Deps) {
	gen := func(sys string) llm.Generator {
		return llm.NewClient(llm.ClientOptions{
			SysPrompt: prompt.NewTextPrompt(sys),
			Model:     deps.Model,
			Retries:   deps.Retries,
			Timeout:   deps.Timeout,
		})
	}
	r.Register(StepTrend, func() (pipeline.Step, error) { return NewTrendStep(gen(sysTrend)), nil })
	r.Register(StepIntent, func() (pipeline.Step, error) { return NewIntentStep(gen(sysIntent)), nil })
	r.Register(StepKeywords, func() (pipeline.Step, error) { return NewKeywordStep(gen(sysKeywords)), nil })
	r.Register(StepOutline, func() (pipeline.Step, error) { return NewOutlineStep(gen(prompt.PromptOutline)), nil })
	r.Register(StepDraft, func() (pipeline.Step, error) { return NewDraftStep(gen(prompt.PromptDraftWriter)), nil })
	r.Register(StepHumanize, func() (pipeline.Step, error) { return NewHumanizeStep(gen(sysHumanize)), nil })
	r.Register(StepReadability, func() (pipeline.Step, error) { return NewReadabilityStep(gen(sysReadability)), nil })
	r.Register(StepTone, func() (pipeline.Step, error) { return NewToneStep(gen(sysTone)), nil })
	r.Register(StepQA, func() (pipeline.Step, error) { return NewQAStep(DefaultQARules()), nil })
	r.Register(StepLinks, func() (pipeline.Step, error) { return NewLinkStep(gen(sysLinks)), nil })
	r.Register(StepOnPage, func() (pipeline.Step, error) { return NewOnPageStep(gen(sysOnPage)), nil })
	r.Register(StepSchema, func() (pipeline.Step, error) { return NewSchemaStep(), nil })
	r.Register(StepAssemble, func() (pipeline.Step, error) { return NewAssembleStep(), nil })
}

// callJSON runs one generation and returns the JSON object in the reply.
func callJSON(ctx context.Context, gen llm.Generator, input string) (map[string]any, error) {
	resp, err := gen.Call(ctx, input)
	if err != nil {
		return nil, err
	}
	return llm.ExtractJSON(resp), nil
}

// output reads a prior step's artifact as a JSON object; ok is false when
// the step did not run, failed, or produced something else.
func output(st *pipeline.State, stepID string) (map[string]any, bool) {
	v, exists := st.Outputs[stepID]
	if !exists {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

// compact renders v as one-line JSON for embedding in a prompt.
func compact(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

// stringField reads a string out of a step output map.
func stringField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// body returns the most-revised article text available: humanization or
// readability rewrites supersede the raw draft. Empty when no writing step
// has succeeded yet.
func body(st *pipeline.State) string {
	for _, id := range []string{StepReadability, StepHumanize, StepDraft} {
		if m, ok := output(st, id); ok {
			if s := stringField(m, "markdown"); s != "" {
				return s
			}
		}
	}
	return ""
}
