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

	"github.com/pkg/errors"
	"github.com/seoforge/seoforge/internal/analysis"
	"github.com/seoforge/seoforge/internal/pipeline"
)

// AssembleStep is the terminal step. It gathers whatever the upstream steps
// managed to produce into the article document; earlier failures only cost
// the fields those steps would have filled. A missing body is the one thing
// it cannot paper over.
type AssembleStep struct{}

func NewAssembleStep() *AssembleStep { return &AssembleStep{} }

func (s *AssembleStep) ID() string { return StepAssemble }

func (s *AssembleStep) Run(ctx context.Context, st *pipeline.State) (*pipeline.StepResult, error) {
	md := body(st)
	if md == "" {
		return nil, errors.New("no article body was produced")
	}

	title := st.Topic
	if o, ok := output(st, StepOutline); ok {
		if t := stringField(o, "title"); t != "" {
			title = t
		}
	}

	slug := analysis.Slugify(title)
	meta := ""
	if o, ok := output(st, StepOnPage); ok {
		if t := stringField(o, "title_tag"); t != "" {
			title = t
		}
		if u := stringField(o, "url_slug"); u != "" {
			slug = u
		}
		meta = stringField(o, "meta_description")
	}
	if meta == "" {
		meta = fallbackMeta(md)
	}

	var keywords []string
	if kws, ok := output(st, StepKeywords); ok {
		for _, key := range []string{"primary_keywords", "secondary_keywords"} {
			if list, ok := kws[key].([]any); ok {
				for _, v := range list {
					if s, ok := v.(string); ok && s != "" {
						keywords = append(keywords, s)
					}
				}
			}
		}
	}

	var schema map[string]any
	if o, ok := output(st, StepSchema); ok {
		if ld, ok := o["json_ld"].(map[string]any); ok {
			schema = ld
		}
	}

	metrics := analysis.Analyze(md)
	doc := map[string]any{
		"title":            title,
		"slug":             slug,
		"meta_description": meta,
		"keywords":         keywords,
		"markdown":         md,
		"word_count":       metrics.WordCount,
		"reading_ease":     metrics.FleschScore,
	}
	if schema != nil {
		doc["schema_markup"] = schema
	}
	if qa, ok := output(st, StepQA); ok {
		doc["qa"] = qa
	}
	return &pipeline.StepResult{Output: doc}, nil
}

// fallbackMeta derives a meta description from the opening of the article
// when the on-page step did not run.
func fallbackMeta(md string) string {
	text := analysis.StripMarkdown(md)
	words := analysis.Words(text)
	if len(words) > 25 {
		words = words[:25]
	}
	out := ""
	for i, w := range words {
		if i > 0 {
			out += " "
		}
		out += w
	}
	if len(out) > 157 {
		out = out[:157] + "..."
	}
	return out
}
