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
	"bytes"
	"encoding/json"
	"html/template"
	"strings"
)

var htmlTemplate = template.Must(template.New("article").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<meta name="description" content="{{.MetaDescription}}">
{{- if .Keywords}}
<meta name="keywords" content="{{.KeywordList}}">
{{- end}}
<meta property="og:title" content="{{.Title}}">
<meta property="og:description" content="{{.MetaDescription}}">
<meta name="twitter:card" content="summary_large_image">
<meta name="twitter:title" content="{{.Title}}">
{{- if .SchemaJSON}}
<script type="application/ld+json">{{.SchemaJSON}}</script>
{{- end}}
</head>
<body>
<article>
{{.Body}}
</article>
</body>
</html>
`))

func renderHTML(a *Article) ([]byte, error) {
	var schemaJSON template.JS
	if a.SchemaMarkup != nil {
		data, err := json.Marshal(a.SchemaMarkup)
		if err == nil {
			schemaJSON = template.JS(data)
		}
	}
	var buf bytes.Buffer
	err := htmlTemplate.Execute(&buf, struct {
		*Article
		KeywordList string
		SchemaJSON  template.JS
		Body        template.HTML
	}{
		Article:     a,
		KeywordList: strings.Join(a.Keywords, ", "),
		SchemaJSON:  schemaJSON,
		Body:        markdownToHTML(a.Markdown),
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// markdownToHTML is a small converter covering the markdown subset the
// draft writer emits: headings, paragraphs, bold, links. A full CommonMark
// renderer is deliberately out of scope for a preview rendition.
func markdownToHTML(md string) template.HTML {
	var b strings.Builder
	for _, block := range strings.Split(md, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		switch {
		case strings.HasPrefix(block, "### "):
			b.WriteString("<h3>" + inline(strings.TrimPrefix(block, "### ")) + "</h3>\n")
		case strings.HasPrefix(block, "## "):
			b.WriteString("<h2>" + inline(strings.TrimPrefix(block, "## ")) + "</h2>\n")
		case strings.HasPrefix(block, "# "):
			b.WriteString("<h1>" + inline(strings.TrimPrefix(block, "# ")) + "</h1>\n")
		default:
			b.WriteString("<p>" + inline(block) + "</p>\n")
		}
	}
	return template.HTML(b.String())
}

func inline(s string) string {
	s = template.HTMLEscapeString(s)
	// **bold**
	for {
		i := strings.Index(s, "**")
		if i < 0 {
			break
		}
		j := strings.Index(s[i+2:], "**")
		if j < 0 {
			break
		}
		s = s[:i] + "<strong>" + s[i+2:i+2+j] + "</strong>" + s[i+4+j:]
	}
	return s
}
