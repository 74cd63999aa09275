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

	"github.com/seoforge/seoforge/internal/pipeline"
	"github.com/seoforge/seoforge/llm"
)

const sysTrend = `You are a content strategist analyzing what makes a topic timely.
Given a blog topic, identify current angles, rising subtopics, and audience questions.
Respond with a single JSON object:
{"angles": ["..."], "rising_subtopics": ["..."], "audience_questions": ["..."], "content_ideas": ["..."]}`

// TrendStep surfaces timely angles and audience questions for the topic.
type TrendStep struct {
	gen llm.Generator
}

func NewTrendStep(gen llm.Generator) *TrendStep { return &TrendStep{gen: gen} }

func (s *TrendStep) ID() string { return StepTrend }

func (s *TrendStep) Run(ctx context.Context, st *pipeline.State) (*pipeline.StepResult, error) {
	out, err := callJSON(ctx, s.gen, fmt.Sprintf("Topic: %s", st.Topic))
	if err != nil {
		return nil, err
	}
	return &pipeline.StepResult{Output: out}, nil
}

const sysIntent = `You classify the dominant search intent for a blog topic.
Respond with a single JSON object:
{"intent": "informational|navigational|commercial|transactional", "confidence": 0.0, "rationale": "..."}`

// IntentStep classifies search intent; the outline step shapes the article
// structure around it.
type IntentStep struct {
	gen llm.Generator
}

func NewIntentStep(gen llm.Generator) *IntentStep { return &IntentStep{gen: gen} }

func (s *IntentStep) ID() string { return StepIntent }

func (s *IntentStep) Run(ctx context.Context, st *pipeline.State) (*pipeline.StepResult, error) {
	out, err := callJSON(ctx, s.gen, fmt.Sprintf("Topic: %s", st.Topic))
	if err != nil {
		return nil, err
	}
	return &pipeline.StepResult{Output: out}, nil
}

const sysKeywords = `You are an SEO keyword researcher.
Given a topic and optional trend research, mine primary and secondary keywords with intent labels.
Respond with a single JSON object:
{"primary_keywords": ["..."], "secondary_keywords": ["..."], "long_tail": ["..."]}`

// KeywordStep mines the keyword set the writing steps weave in.
type KeywordStep struct {
	gen llm.Generator
}

func NewKeywordStep(gen llm.Generator) *KeywordStep { return &KeywordStep{gen: gen} }

func (s *KeywordStep) ID() string { return StepKeywords }

func (s *KeywordStep) Run(ctx context.Context, st *pipeline.State) (*pipeline.StepResult, error) {
	input := fmt.Sprintf("Topic: %s", st.Topic)
	if trends, ok := output(st, StepTrend); ok {
		input += "\nTrend research: " + compact(trends)
	}
	out, err := callJSON(ctx, s.gen, input)
	if err != nil {
		return nil, err
	}
	return &pipeline.StepResult{Output: out}, nil
}
