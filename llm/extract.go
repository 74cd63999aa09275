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
	"encoding/json"
	"strings"
)

// ExtractJSON pulls a JSON object out of a model response. Models wrap JSON
// in fenced blocks or prose more often than not; try the fence first, then
// the outermost braces, then give up and wrap the raw text so the caller
// always gets a usable map.
func ExtractJSON(response string) map[string]any {
	candidate := response
	if i := strings.Index(response, "```json"); i >= 0 {
		rest := response[i+len("```json"):]
		if j := strings.Index(rest, "```"); j >= 0 {
			candidate = rest[:j]
		}
	} else if i := strings.Index(response, "{"); i >= 0 {
		if j := strings.LastIndex(response, "}"); j > i {
			candidate = response[i : j+1]
		}
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(candidate)), &out); err == nil {
		return out
	}
	return map[string]any{"response": response}
}

// ExtractJSONInto unmarshals the JSON object in response into v; returns
// false when no parseable object is present.
func ExtractJSONInto(response string, v any) bool {
	m := ExtractJSON(response)
	if _, raw := m["response"]; raw && len(m) == 1 {
		return false
	}
	data, err := json.Marshal(m)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, v) == nil
}
