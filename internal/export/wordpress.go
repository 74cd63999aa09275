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
	"encoding/xml"
	"time"
)

// WXR (WordPress eXtended RSS) import document, the minimal subset the
// WordPress importer accepts for a draft post.
type wxrRSS struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel wxrChannel `xml:"channel"`
}

type wxrChannel struct {
	Title   string  `xml:"title"`
	PubDate string  `xml:"pubDate"`
	Item    wxrItem `xml:"item"`
}

type wxrItem struct {
	Title      string        `xml:"title"`
	PostName   string        `xml:"post_name"`
	Status     string        `xml:"status"`
	PostType   string        `xml:"post_type"`
	Content    wxrCDATA      `xml:"encoded"`
	Categories []wxrCategory `xml:"category"`
}

type wxrCDATA struct {
	Text string `xml:",cdata"`
}

type wxrCategory struct {
	Domain string `xml:"domain,attr"`
	Name   string `xml:",chardata"`
}

func renderWordPress(a *Article, now time.Time) ([]byte, error) {
	body, err := renderHTML(a)
	if err != nil {
		return nil, err
	}
	doc := wxrRSS{
		Version: "2.0",
		Channel: wxrChannel{
			Title:   a.Title,
			PubDate: now.Format(time.RFC1123Z),
			Item: wxrItem{
				Title:    a.Title,
				PostName: a.Slug,
				Status:   "draft",
				PostType: "post",
				Content:  wxrCDATA{Text: string(body)},
			},
		},
	}
	for _, k := range a.Keywords {
		doc.Channel.Item.Categories = append(doc.Channel.Item.Categories,
			wxrCategory{Domain: "post_tag", Name: k})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
