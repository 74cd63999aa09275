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

// Package export renders a finished article to publishable formats.
package export

import (
	"encoding/json"
	"fmt"

	"github.com/seoforge/seoforge/internal/analysis"
)

// Article is the deliverable produced by the terminal pipeline step.
type Article struct {
	Title           string         `json:"title"`
	Slug            string         `json:"slug"`
	MetaDescription string         `json:"meta_description"`
	Keywords        []string       `json:"keywords"`
	Markdown        string         `json:"markdown"`
	SchemaMarkup    map[string]any `json:"schema_markup,omitempty"`
	WordCount       int            `json:"word_count"`
	ReadingEase     float64        `json:"reading_ease"`
}

// FromOutput converts the pipeline's opaque final output into an Article.
// The core hands outputs around as decoded JSON, so a marshal round-trip is
// the lossless way back into a typed value.
func FromOutput(v any) (*Article, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("final output is not serializable: %w", err)
	}
	var a Article
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("final output is not an article document: %w", err)
	}
	if a.Title == "" && a.Markdown == "" {
		return nil, fmt.Errorf("final output has neither title nor body")
	}
	if a.Slug == "" {
		a.Slug = analysis.Slugify(a.Title)
	}
	return &a, nil
}
