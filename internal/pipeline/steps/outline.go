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
	"github.com/seoforge/seoforge/internal/pipeline"
	"github.com/seoforge/seoforge/llm"
)

// OutlineStep turns topic plus research into a sectioned outline. The
// system prompt lives in llm/prompt/outline.md.
type OutlineStep struct {
	gen llm.Generator
}

func NewOutlineStep(gen llm.Generator) *OutlineStep { return &OutlineStep{gen: gen} }

func (s *OutlineStep) ID() string { return StepOutline }

func (s *OutlineStep) Run(ctx context.Context, st *pipeline.State) (*pipeline.StepResult, error) {
	input := fmt.Sprintf("Topic: %s", st.Topic)
	if intent, ok := output(st, StepIntent); ok {
		input += "\nSearch intent: " + compact(intent)
	}
	if kws, ok := output(st, StepKeywords); ok {
		input += "\nKeywords: " + compact(kws)
	}
	out, err := callJSON(ctx, s.gen, input)
	if err != nil {
		return nil, err
	}
	if _, ok := out["sections"]; !ok {
		return nil, errors.New("model returned no sections")
	}
	return &pipeline.StepResult{Output: out}, nil
}
