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

// Package analysis computes local text metrics: counts, readability,
// keyword density. Everything here is deterministic and runs without a
// model round-trip.
package analysis

import (
	"strings"
	"unicode"
)

// Metrics summarizes one article body.
type Metrics struct {
	WordCount      int     `json:"word_count"`
	SentenceCount  int     `json:"sentence_count"`
	SyllableCount  int     `json:"syllable_count"`
	FleschScore    float64 `json:"flesch_score"`
	AvgWordsPerSen float64 `json:"avg_words_per_sentence"`
}

// Analyze computes Metrics for text. Markdown syntax is stripped first so
// heading markers and link targets do not count as words.
func Analyze(text string) Metrics {
	plain := StripMarkdown(text)
	words := Words(plain)
	sentences := countSentences(plain)
	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w)
	}

	m := Metrics{
		WordCount:     len(words),
		SentenceCount: sentences,
		SyllableCount: syllables,
	}
	if sentences > 0 && len(words) > 0 {
		m.AvgWordsPerSen = float64(len(words)) / float64(sentences)
		// Flesch reading ease.
		m.FleschScore = 206.835 -
			1.015*m.AvgWordsPerSen -
			84.6*(float64(syllables)/float64(len(words)))
	}
	return m
}

// Words splits text into lowercase word tokens.
func Words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

// KeywordDensity returns occurrences of keyword per total words, in [0,1].
// Multi-word keywords are matched as adjacent token sequences.
func KeywordDensity(text, keyword string) float64 {
	words := Words(StripMarkdown(text))
	if len(words) == 0 {
		return 0
	}
	kw := Words(keyword)
	if len(kw) == 0 {
		return 0
	}
	count := 0
	for i := 0; i+len(kw) <= len(words); i++ {
		match := true
		for j, k := range kw {
			if words[i+j] != k {
				match = false
				break
			}
		}
		if match {
			count++
		}
	}
	return float64(count) / float64(len(words))
}

// Slugify converts a title to a URL slug.
func Slugify(title string) string {
	var b strings.Builder
	prevDash := true // suppress a leading dash
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		case !prevDash:
			b.WriteByte('-')
			prevDash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// StripMarkdown removes common markdown syntax, leaving prose.
func StripMarkdown(text string) string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimLeft(line, "#> ")
		line = strings.ReplaceAll(line, "**", "")
		line = strings.ReplaceAll(line, "*", "")
		line = strings.ReplaceAll(line, "`", "")
		// [text](url) -> text
		for {
			open := strings.Index(line, "[")
			mid := strings.Index(line, "](")
			if open < 0 || mid < open {
				break
			}
			end := strings.Index(line[mid:], ")")
			if end < 0 {
				break
			}
			line = line[:open] + line[open+1:mid] + line[mid+end+1:]
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func countSentences(text string) int {
	n := 0
	inSentence := false
	for _, r := range text {
		switch {
		case r == '.' || r == '!' || r == '?':
			if inSentence {
				n++
				inSentence = false
			}
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			inSentence = true
		}
	}
	if inSentence {
		n++
	}
	return n
}

// countSyllables approximates English syllables by vowel groups, with the
// usual silent-e adjustment. Good enough for Flesch scoring.
func countSyllables(word string) int {
	word = strings.ToLower(strings.Trim(word, "'"))
	if word == "" {
		return 0
	}
	isVowel := func(r byte) bool {
		return strings.IndexByte("aeiouy", r) >= 0
	}
	n := 0
	prevVowel := false
	for i := 0; i < len(word); i++ {
		v := isVowel(word[i])
		if v && !prevVowel {
			n++
		}
		prevVowel = v
	}
	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && n > 1 {
		n--
	}
	if n == 0 {
		n = 1
	}
	return n
}
