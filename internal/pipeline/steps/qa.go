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

	"github.com/Knetic/govaluate"
	"github.com/pkg/errors"
	"github.com/seoforge/seoforge/internal/analysis"
	"github.com/seoforge/seoforge/internal/pipeline"
)

// QARule is one expression-based validation over the article metrics.
// Expressions see the variables word_count, sentence_count, flesch_score,
// avg_words_per_sentence, and keyword_density.
type QARule struct {
	Name       string `json:"name"`
	Expression string `json:"expression"`
}

// DefaultQARules gate a publishable long-form article.
func DefaultQARules() []QARule {
	return []QARule{
		{Name: "minimum length", Expression: "word_count >= 600"},
		{Name: "readable", Expression: "flesch_score >= 30"},
		{Name: "sentences not bloated", Expression: "avg_words_per_sentence <= 30"},
		{Name: "keyword not stuffed", Expression: "keyword_density <= 0.05"},
	}
}

// QAStep evaluates validation rules against locally computed metrics. It is
// fully deterministic: no model call. Rule violations are reported in the
// output, not raised as step failures; a thin article is still an article.
type QAStep struct {
	rules []QARule
}

func NewQAStep(rules []QARule) *QAStep { return &QAStep{rules: rules} }

func (s *QAStep) ID() string { return StepQA }

func (s *QAStep) Run(ctx context.Context, st *pipeline.State) (*pipeline.StepResult, error) {
	md := body(st)
	if md == "" {
		return nil, errors.New("no draft to validate")
	}
	metrics := analysis.Analyze(md)

	density := 0.0
	if kws, ok := output(st, StepKeywords); ok {
		if list, ok := kws["primary_keywords"].([]any); ok && len(list) > 0 {
			if kw, ok := list[0].(string); ok {
				density = analysis.KeywordDensity(md, kw)
			}
		}
	}

	params := map[string]any{
		"word_count":             float64(metrics.WordCount),
		"sentence_count":         float64(metrics.SentenceCount),
		"flesch_score":           metrics.FleschScore,
		"avg_words_per_sentence": metrics.AvgWordsPerSen,
		"keyword_density":        density,
	}

	var violations []string
	for _, rule := range s.rules {
		expr, err := govaluate.NewEvaluableExpression(rule.Expression)
		if err != nil {
			return nil, errors.Wrapf(err, "qa rule %q", rule.Name)
		}
		res, err := expr.Evaluate(params)
		if err != nil {
			return nil, errors.Wrapf(err, "qa rule %q", rule.Name)
		}
		if pass, ok := res.(bool); !ok || !pass {
			violations = append(violations, rule.Name)
		}
	}

	return &pipeline.StepResult{Output: map[string]any{
		"passed":     len(violations) == 0,
		"violations": violations,
		"metrics":    params,
	}}, nil
}
