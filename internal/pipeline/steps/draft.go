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

package steps

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/seoforge/seoforge/internal/analysis"
	"github.com/seoforge/seoforge/internal/pipeline"
	"github.com/seoforge/seoforge/llm"
)

// DraftStep writes the full article body from the outline. An outline is
// required; without one there is nothing to write from, and padding a draft
// out of thin air would only look like success.
type DraftStep struct {
	gen llm.Generator
}

func NewDraftStep(gen llm.Generator) *DraftStep { return &DraftStep{gen: gen} }

func (s *DraftStep) ID() string { return StepDraft }

func (s *DraftStep) Run(ctx context.Context, st *pipeline.State) (*pipeline.StepResult, error) {
	outline, ok := output(st, StepOutline)
	if !ok {
		return nil, errors.New("no outline available")
	}
	input := fmt.Sprintf("Topic: %s\nOutline: %s", st.Topic, compact(outline))
	if kws, ok := output(st, StepKeywords); ok {
		input += "\nKeywords: " + compact(kws)
	}
	if trends, ok := output(st, StepTrend); ok {
		input += "\nResearch: " + compact(trends)
	}

	out, err := callJSON(ctx, s.gen, input)
	if err != nil {
		return nil, err
	}
	md := stringField(out, "markdown")
	if md == "" {
		return nil, errors.New("model returned no markdown body")
	}
	// The model's own word count is unreliable; recount locally.
	out["word_count"] = analysis.Analyze(md).WordCount
	return &pipeline.StepResult{Output: out}, nil
}
