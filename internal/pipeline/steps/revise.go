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

const sysHumanize = `You rewrite AI-drafted articles so they read as if written by an experienced human author.
Vary sentence length, cut boilerplate transitions, keep all facts and markdown structure intact.
Respond with a single JSON object: {"markdown": "...", "changes": ["..."]}`

// HumanizeStep rewrites the draft for a natural voice, preserving structure.
type HumanizeStep struct {
	gen llm.Generator
}

func NewHumanizeStep(gen llm.Generator) *HumanizeStep { return &HumanizeStep{gen: gen} }

func (s *HumanizeStep) ID() string { return StepHumanize }

func (s *HumanizeStep) Run(ctx context.Context, st *pipeline.State) (*pipeline.StepResult, error) {
	md := body(st)
	if md == "" {
		return nil, errors.New("no draft to humanize")
	}
	out, err := callJSON(ctx, s.gen, md)
	if err != nil {
		return nil, err
	}
	if stringField(out, "markdown") == "" {
		return nil, errors.New("model returned no markdown body")
	}
	return &pipeline.StepResult{Output: out}, nil
}

const sysReadability = `You simplify prose to a target readability without dumbing down content.
Shorten sentences, prefer common words, keep markdown structure and all facts.
Respond with a single JSON object: {"markdown": "..."}`

// readabilityTarget is the Flesch reading ease below which the body is sent
// for simplification. 50 is roughly "fairly difficult".
const readabilityTarget = 50.0

// ReadabilityStep scores the body locally and only spends a model call when
// the score is below target. Its output always carries the final metrics.
type ReadabilityStep struct {
	gen llm.Generator
}

func NewReadabilityStep(gen llm.Generator) *ReadabilityStep { return &ReadabilityStep{gen: gen} }

func (s *ReadabilityStep) ID() string { return StepReadability }

func (s *ReadabilityStep) Run(ctx context.Context, st *pipeline.State) (*pipeline.StepResult, error) {
	md := body(st)
	if md == "" {
		return nil, errors.New("no draft to score")
	}
	metrics := analysis.Analyze(md)
	out := map[string]any{
		"flesch_score": metrics.FleschScore,
		"word_count":   metrics.WordCount,
		"rewritten":    false,
	}
	if metrics.FleschScore >= readabilityTarget {
		return &pipeline.StepResult{Output: out}, nil
	}

	rewritten, err := callJSON(ctx, s.gen, md)
	if err != nil {
		return nil, err
	}
	newMD := stringField(rewritten, "markdown")
	if newMD == "" {
		return nil, errors.New("model returned no markdown body")
	}
	after := analysis.Analyze(newMD)
	out["markdown"] = newMD
	out["rewritten"] = true
	out["flesch_score"] = after.FleschScore
	out["word_count"] = after.WordCount
	out["flesch_before"] = metrics.FleschScore
	return &pipeline.StepResult{Output: out}, nil
}

const sysTone = `You audit an article's tone for consistency with a professional, approachable blog voice.
Flag hype, passive voice clusters, and abrupt register shifts. Do not rewrite.
Respond with a single JSON object: {"tone": "...", "consistent": true, "issues": ["..."]}`

// ToneStep audits voice consistency; advisory only, it never rewrites.
type ToneStep struct {
	gen llm.Generator
}

func NewToneStep(gen llm.Generator) *ToneStep { return &ToneStep{gen: gen} }

func (s *ToneStep) ID() string { return StepTone }

func (s *ToneStep) Run(ctx context.Context, st *pipeline.State) (*pipeline.StepResult, error) {
	md := body(st)
	if md == "" {
		return nil, errors.New("no draft to audit")
	}
	out, err := callJSON(ctx, s.gen, fmt.Sprintf("Topic: %s\n\n%s", st.Topic, md))
	if err != nil {
		return nil, err
	}
	return &pipeline.StepResult{Output: out}, nil
}
