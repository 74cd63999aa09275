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
	"time"

	"github.com/pkg/errors"
	"github.com/seoforge/seoforge/internal/analysis"
	"github.com/seoforge/seoforge/internal/pipeline"
	"github.com/seoforge/seoforge/llm"
)

const sysLinks = `You are an internal-linking strategist. Given an article in markdown,
propose internal link placements: anchor phrases already present in the text and the
slug of a related article each should point to. Do not invent anchor text that is not
in the article. Respond with a single JSON object:
{"links": [{"anchor": "...", "target_slug": "...", "section": "..."}]}`

const sysOnPage = `You are an on-page SEO specialist. Given an article and its keywords,
produce metadata for publication. The meta description must be 120-160 characters and
contain the primary keyword. Respond with a single JSON object:
{"meta_description": "...", "title_tag": "...", "h1": "...", "url_slug": "..."}`

// LinkStep asks the model for internal link suggestions. Advisory: the
// assembly step publishes fine without it.
type LinkStep struct {
	gen llm.Generator
}

func NewLinkStep(gen llm.Generator) *LinkStep { return &LinkStep{gen: gen} }

func (s *LinkStep) ID() string { return StepLinks }

func (s *LinkStep) Run(ctx context.Context, st *pipeline.State) (*pipeline.StepResult, error) {
	md := body(st)
	if md == "" {
		return nil, errors.New("no draft to link")
	}
	input := fmt.Sprintf("Topic: %s\n\nArticle:\n%s", st.Topic, md)
	out, err := callJSON(ctx, s.gen, input)
	if err != nil {
		return nil, err
	}
	return &pipeline.StepResult{Output: out}, nil
}

// OnPageStep generates title tag, meta description, and URL slug. The slug is
// normalized locally so downstream file names stay filesystem-safe whatever
// the model returns.
type OnPageStep struct {
	gen llm.Generator
}

func NewOnPageStep(gen llm.Generator) *OnPageStep { return &OnPageStep{gen: gen} }

func (s *OnPageStep) ID() string { return StepOnPage }

func (s *OnPageStep) Run(ctx context.Context, st *pipeline.State) (*pipeline.StepResult, error) {
	md := body(st)
	if md == "" {
		return nil, errors.New("no draft to optimize")
	}
	input := fmt.Sprintf("Topic: %s", st.Topic)
	if kws, ok := output(st, StepKeywords); ok {
		input += "\nKeywords: " + compact(kws)
	}
	input += "\n\nArticle:\n" + md
	out, err := callJSON(ctx, s.gen, input)
	if err != nil {
		return nil, err
	}
	if slug := stringField(out, "url_slug"); slug != "" {
		out["url_slug"] = analysis.Slugify(slug)
	}
	return &pipeline.StepResult{Output: out}, nil
}

// SchemaStep builds schema.org Article JSON-LD from what earlier steps
// produced. Deterministic, no model call.
type SchemaStep struct {
	now func() time.Time
}

func NewSchemaStep() *SchemaStep { return &SchemaStep{now: time.Now} }

func (s *SchemaStep) ID() string { return StepSchema }

func (s *SchemaStep) Run(ctx context.Context, st *pipeline.State) (*pipeline.StepResult, error) {
	title := st.Topic
	if o, ok := output(st, StepOutline); ok {
		if t := stringField(o, "title"); t != "" {
			title = t
		}
	}
	desc := ""
	if o, ok := output(st, StepOnPage); ok {
		desc = stringField(o, "meta_description")
	}

	ld := map[string]any{
		"@context":      "https://schema.org",
		"@type":         "Article",
		"headline":      title,
		"datePublished": s.now().UTC().Format(time.RFC3339),
	}
	if desc != "" {
		ld["description"] = desc
	}
	if kws, ok := output(st, StepKeywords); ok {
		if list, ok := kws["primary_keywords"].([]any); ok && len(list) > 0 {
			ld["keywords"] = list
		}
	}
	if md := body(st); md != "" {
		ld["wordCount"] = analysis.Analyze(md).WordCount
	}

	return &pipeline.StepResult{Output: map[string]any{"json_ld": ld}}, nil
}
