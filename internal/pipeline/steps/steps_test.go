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
	"strings"
	"testing"

	"github.com/seoforge/seoforge/internal/pipeline"
	"github.com/seoforge/seoforge/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reply builds a generator that returns a fixed response and records the
// input it was given.
func reply(resp string, got *string) llm.Generator {
	return llm.GeneratorFunc(func(ctx context.Context, input string) (string, error) {
		if got != nil {
			*got = input
		}
		return resp, nil
	})
}

func neverCalled(t *testing.T) llm.Generator {
	return llm.GeneratorFunc(func(ctx context.Context, input string) (string, error) {
		t.Fatal("generator should not be called")
		return "", nil
	})
}

func stateWith(topic string, outputs map[string]any) *pipeline.State {
	st := pipeline.NewState(topic)
	for k, v := range outputs {
		st.Outputs[k] = v
	}
	return st
}

func TestTrendStep(t *testing.T) {
	var got string
	step := NewTrendStep(reply("```json\n{\"angles\": [\"cost parity\"]}\n```", &got))
	res, err := step.Run(context.Background(), pipeline.NewState("solar power"))
	require.NoError(t, err)
	out := res.Output.(map[string]any)
	assert.Equal(t, []any{"cost parity"}, out["angles"])
	assert.Contains(t, got, "solar power")
}

func TestKeywordStep_IncludesTrendResearch(t *testing.T) {
	var got string
	step := NewKeywordStep(reply(`{"primary_keywords": ["solar panels"]}`, &got))
	st := stateWith("solar power", map[string]any{
		StepTrend: map[string]any{"angles": []any{"cost parity"}},
	})
	_, err := step.Run(context.Background(), st)
	require.NoError(t, err)
	assert.Contains(t, got, "cost parity")
}

func TestOutlineStep_RejectsMissingSections(t *testing.T) {
	step := NewOutlineStep(reply(`{"title": "Solar"}`, nil))
	_, err := step.Run(context.Background(), pipeline.NewState("solar power"))
	assert.ErrorContains(t, err, "no sections")
}

func TestDraftStep_RequiresOutline(t *testing.T) {
	step := NewDraftStep(neverCalled(t))
	_, err := step.Run(context.Background(), pipeline.NewState("solar power"))
	assert.ErrorContains(t, err, "no outline")
}

func TestDraftStep_RecountsWords(t *testing.T) {
	step := NewDraftStep(reply(`{"markdown": "The sun is hot.", "word_count": 9000}`, nil))
	st := stateWith("solar power", map[string]any{
		StepOutline: map[string]any{"sections": []any{}},
	})
	res, err := step.Run(context.Background(), st)
	require.NoError(t, err)
	out := res.Output.(map[string]any)
	assert.Equal(t, 4, out["word_count"])
}

func TestHumanizeStep_RequiresDraft(t *testing.T) {
	step := NewHumanizeStep(neverCalled(t))
	_, err := step.Run(context.Background(), pipeline.NewState("solar power"))
	assert.ErrorContains(t, err, "no draft")
}

func TestReadabilityStep_SkipsRewriteWhenReadable(t *testing.T) {
	st := stateWith("solar power", map[string]any{
		StepDraft: map[string]any{"markdown": "The sun is hot. It gives us light."},
	})
	step := NewReadabilityStep(neverCalled(t))
	res, err := step.Run(context.Background(), st)
	require.NoError(t, err)
	out := res.Output.(map[string]any)
	assert.Equal(t, false, out["rewritten"])
	assert.NotContains(t, out, "markdown")
}

func TestReadabilityStep_RewritesHardProse(t *testing.T) {
	hard := strings.Repeat("Extraordinarily sophisticated organizational methodologies necessitate comprehensive interdisciplinary administrative considerations regarding multifaceted infrastructural implementations ", 5)
	st := stateWith("solar power", map[string]any{
		StepDraft: map[string]any{"markdown": hard},
	})
	step := NewReadabilityStep(reply(`{"markdown": "The sun is hot. It gives us light."}`, nil))
	res, err := step.Run(context.Background(), st)
	require.NoError(t, err)
	out := res.Output.(map[string]any)
	assert.Equal(t, true, out["rewritten"])
	assert.Equal(t, "The sun is hot. It gives us light.", out["markdown"])
	assert.Contains(t, out, "flesch_before")
}

func TestBodyPrefersLatestRevision(t *testing.T) {
	st := stateWith("solar power", map[string]any{
		StepDraft:    map[string]any{"markdown": "draft"},
		StepHumanize: map[string]any{"markdown": "humanized"},
	})
	assert.Equal(t, "humanized", body(st))

	st.Outputs[StepReadability] = map[string]any{"rewritten": true, "markdown": "simplified"}
	assert.Equal(t, "simplified", body(st))
}

func TestQAStep_FlagsThinArticle(t *testing.T) {
	st := stateWith("solar power", map[string]any{
		StepDraft: map[string]any{"markdown": "The sun is hot."},
	})
	res, err := NewQAStep(DefaultQARules()).Run(context.Background(), st)
	require.NoError(t, err)
	out := res.Output.(map[string]any)
	assert.Equal(t, false, out["passed"])
	assert.Contains(t, out["violations"], "minimum length")
}

func TestQAStep_PassesSubstantialArticle(t *testing.T) {
	md := strings.Repeat("The sun gives us light and heat every day. ", 80)
	st := stateWith("solar power", map[string]any{
		StepDraft: map[string]any{"markdown": md},
	})
	res, err := NewQAStep(DefaultQARules()).Run(context.Background(), st)
	require.NoError(t, err)
	out := res.Output.(map[string]any)
	assert.Equal(t, true, out["passed"])
	assert.Empty(t, out["violations"])
}

func TestQAStep_RequiresBody(t *testing.T) {
	_, err := NewQAStep(DefaultQARules()).Run(context.Background(), pipeline.NewState("solar power"))
	assert.ErrorContains(t, err, "no draft")
}

func TestOnPageStep_NormalizesSlug(t *testing.T) {
	step := NewOnPageStep(reply(`{"meta_description": "All about solar.", "url_slug": "Solar Power 101!"}`, nil))
	st := stateWith("solar power", map[string]any{
		StepDraft: map[string]any{"markdown": "The sun is hot."},
	})
	res, err := step.Run(context.Background(), st)
	require.NoError(t, err)
	out := res.Output.(map[string]any)
	assert.Equal(t, "solar-power-101", out["url_slug"])
}

func TestSchemaStep_BuildsJSONLD(t *testing.T) {
	st := stateWith("solar power", map[string]any{
		StepOutline:  map[string]any{"title": "The Future of Solar Power", "sections": []any{}},
		StepOnPage:   map[string]any{"meta_description": "All about solar."},
		StepKeywords: map[string]any{"primary_keywords": []any{"solar panels"}},
		StepDraft:    map[string]any{"markdown": "The sun is hot."},
	})
	res, err := NewSchemaStep().Run(context.Background(), st)
	require.NoError(t, err)
	out := res.Output.(map[string]any)
	ld := out["json_ld"].(map[string]any)
	assert.Equal(t, "Article", ld["@type"])
	assert.Equal(t, "The Future of Solar Power", ld["headline"])
	assert.Equal(t, "All about solar.", ld["description"])
	assert.Equal(t, 4, ld["wordCount"])
}

func TestSchemaStep_MinimalState(t *testing.T) {
	res, err := NewSchemaStep().Run(context.Background(), pipeline.NewState("solar power"))
	require.NoError(t, err)
	ld := res.Output.(map[string]any)["json_ld"].(map[string]any)
	assert.Equal(t, "solar power", ld["headline"])
	assert.NotContains(t, ld, "description")
}

func TestAssembleStep_FullState(t *testing.T) {
	st := stateWith("solar power", map[string]any{
		StepOutline: map[string]any{"title": "The Future of Solar Power", "sections": []any{}},
		StepDraft:   map[string]any{"markdown": "# Solar\n\nThe sun is hot."},
		StepOnPage: map[string]any{
			"title_tag":        "The Future of Solar Power | Blog",
			"meta_description": "All about solar.",
			"url_slug":         "future-of-solar-power",
		},
		StepKeywords: map[string]any{
			"primary_keywords":   []any{"solar panels"},
			"secondary_keywords": []any{"renewable energy"},
		},
		StepSchema: map[string]any{"json_ld": map[string]any{"@type": "Article"}},
		StepQA:     map[string]any{"passed": true},
	})
	res, err := NewAssembleStep().Run(context.Background(), st)
	require.NoError(t, err)
	doc := res.Output.(map[string]any)
	assert.Equal(t, "The Future of Solar Power | Blog", doc["title"])
	assert.Equal(t, "future-of-solar-power", doc["slug"])
	assert.Equal(t, "All about solar.", doc["meta_description"])
	assert.Equal(t, []string{"solar panels", "renewable energy"}, doc["keywords"])
	assert.NotNil(t, doc["schema_markup"])
	assert.NotNil(t, doc["qa"])
}

func TestAssembleStep_DegradedState(t *testing.T) {
	// Only the draft survived; assembly still delivers.
	st := stateWith("solar power", map[string]any{
		StepDraft: map[string]any{"markdown": "The sun is hot. It gives us light."},
	})
	res, err := NewAssembleStep().Run(context.Background(), st)
	require.NoError(t, err)
	doc := res.Output.(map[string]any)
	assert.Equal(t, "solar power", doc["title"])
	assert.Equal(t, "solar-power", doc["slug"])
	assert.NotEmpty(t, doc["meta_description"])
	assert.NotContains(t, doc, "schema_markup")
}

func TestAssembleStep_RequiresBody(t *testing.T) {
	_, err := NewAssembleStep().Run(context.Background(), pipeline.NewState("solar power"))
	assert.ErrorContains(t, err, "no article body")
}

func TestDefaultSequence(t *testing.T) {
	seq := DefaultSequence()
	assert.Len(t, seq, 13)
	assert.Equal(t, StepTrend, seq[0])
	assert.Equal(t, StepAssemble, seq[len(seq)-1])
}
