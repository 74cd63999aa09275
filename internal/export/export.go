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

package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Format names accepted by Exporter.Save and the -format CLI flag.
const (
	FormatMarkdown  = "markdown"
	FormatHTML      = "html"
	FormatJSON      = "json"
	FormatWordPress = "wordpress"
)

// AllFormats in deterministic output order.
var AllFormats = []string{FormatMarkdown, FormatHTML, FormatJSON, FormatWordPress}

// Exporter writes article renditions under OutputDir. File names are
// <slug>_<timestamp>.<ext> so repeated exports never clobber each other.
type Exporter struct {
	OutputDir string

	now func() time.Time // test seam
}

func NewExporter(dir string) (*Exporter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Exporter{OutputDir: dir, now: time.Now}, nil
}

// Save renders a in format and returns the written path.
func (e *Exporter) Save(a *Article, format string) (string, error) {
	switch format {
	case FormatMarkdown:
		return e.write(a, "md", []byte(renderMarkdown(a)))
	case FormatHTML:
		data, err := renderHTML(a)
		if err != nil {
			return "", err
		}
		return e.write(a, "html", data)
	case FormatJSON:
		data, err := json.MarshalIndent(a, "", "  ")
		if err != nil {
			return "", err
		}
		return e.write(a, "json", data)
	case FormatWordPress:
		data, err := renderWordPress(a, e.now())
		if err != nil {
			return "", err
		}
		return e.write(a, "xml", data)
	default:
		return "", fmt.Errorf("unknown export format %q", format)
	}
}

// Bundle writes a in every requested format (all formats when formats is
// empty) and returns the written paths.
func (e *Exporter) Bundle(a *Article, formats []string) ([]string, error) {
	if len(formats) == 0 {
		formats = AllFormats
	}
	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		p, err := e.Save(a, f)
		if err != nil {
			return paths, errors.Wrapf(err, "export %s", f)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func (e *Exporter) write(a *Article, ext string, data []byte) (string, error) {
	slug := a.Slug
	if slug == "" {
		slug = "untitled"
	}
	name := fmt.Sprintf("%s_%s.%s", slug, e.now().Format("20060102_150405"), ext)
	path := filepath.Join(e.OutputDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// renderMarkdown emits YAML front matter followed by the body.
func renderMarkdown(a *Article) string {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %q\n", a.Title)
	fmt.Fprintf(&b, "slug: %s\n", a.Slug)
	fmt.Fprintf(&b, "description: %q\n", a.MetaDescription)
	if len(a.Keywords) > 0 {
		b.WriteString("keywords:\n")
		for _, k := range a.Keywords {
			fmt.Fprintf(&b, "  - %s\n", k)
		}
	}
	fmt.Fprintf(&b, "word_count: %d\n", a.WordCount)
	b.WriteString("---\n\n")
	b.WriteString(a.Markdown)
	if !strings.HasSuffix(a.Markdown, "\n") {
		b.WriteByte('\n')
	}
	return b.String()
}
