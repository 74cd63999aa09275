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

package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSON_FencedBlock(t *testing.T) {
	resp := "Sure, here you go:\n```json\n{\"title\": \"Solar\", \"score\": 8}\n```\nanything else?"
	got := ExtractJSON(resp)
	assert.Equal(t, "Solar", got["title"])
	assert.Equal(t, float64(8), got["score"])
}

func TestExtractJSON_BracesInProse(t *testing.T) {
	resp := `The outline is {"sections": ["intro", "body"]} as requested.`
	got := ExtractJSON(resp)
	assert.Equal(t, []any{"intro", "body"}, got["sections"])
}

func TestExtractJSON_RawTextFallback(t *testing.T) {
	got := ExtractJSON("I could not produce JSON today.")
	assert.Equal(t, "I could not produce JSON today.", got["response"])
}

func TestExtractJSON_MalformedInsideFence(t *testing.T) {
	got := ExtractJSON("```json\n{broken\n```")
	assert.Contains(t, got, "response")
}

func TestExtractJSONInto(t *testing.T) {
	var v struct {
		Title string `json:"title"`
	}
	assert.True(t, ExtractJSONInto(`{"title": "x"}`, &v))
	assert.Equal(t, "x", v.Title)
	assert.False(t, ExtractJSONInto("no json here", &v))
}
