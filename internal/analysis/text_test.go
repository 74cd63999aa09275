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

package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyze(t *testing.T) {
	m := Analyze("The sun is hot. Solar panels work well.")
	assert.Equal(t, 8, m.WordCount)
	assert.Equal(t, 2, m.SentenceCount)
	assert.Equal(t, 4.0, m.AvgWordsPerSen)
	// Short simple sentences score high on Flesch.
	assert.Greater(t, m.FleschScore, 80.0)
}

func TestAnalyze_Empty(t *testing.T) {
	m := Analyze("")
	assert.Equal(t, 0, m.WordCount)
	assert.Equal(t, 0, m.SentenceCount)
	assert.Equal(t, 0.0, m.FleschScore)
}

func TestAnalyze_StripsMarkdown(t *testing.T) {
	md := "# Title\n\nSome **bold** text with a [link](https://example.com) inline."
	m := Analyze(md)
	// "https", "example", "com" must not count as words.
	assert.Equal(t, 8, m.WordCount)
}

func TestKeywordDensity(t *testing.T) {
	text := "solar power is the future and solar power is cheap"
	assert.InDelta(t, 0.2, KeywordDensity(text, "solar power"), 1e-9)
	assert.Equal(t, 0.0, KeywordDensity(text, "wind"))
	assert.Equal(t, 0.0, KeywordDensity("", "solar"))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "the-future-of-solar-power", Slugify("The Future of Solar Power!"))
	assert.Equal(t, "ai-ml-in-2026", Slugify("AI/ML in 2026"))
	assert.Equal(t, "", Slugify("???"))
}

func TestCountSyllables(t *testing.T) {
	cases := map[string]int{
		"sun":      1,
		"solar":    2,
		"energy":   3,
		"table":    2,
		"the":      1,
		"readable": 3,
	}
	for word, want := range cases {
		assert.Equal(t, want, countSyllables(word), word)
	}
}
