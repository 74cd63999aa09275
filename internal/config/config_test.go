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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/seoforge/seoforge/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadModels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.json")
	data := `[
		{"name": "writer", "type": "openai", "api_key": "sk-x", "model_name": "gpt-4o-mini"},
		{"name": "local", "type": "ollama", "base_url": "http://localhost:11434", "model_name": "llama3"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	models, err := LoadModels(path)
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, llm.ModelTypeOpenAI, models["writer"].APIType)
	assert.Equal(t, "llama3", models["local"].ModelName)
}

func TestLoadModels_RejectsNameless(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"type": "openai"}]`), 0644))

	_, err := LoadModels(path)
	assert.ErrorContains(t, err, "no name")
}

func TestDefaultModel(t *testing.T) {
	s := Settings{OpenAIAPIKey: "sk-x", AnthropicAPIKey: "sk-y"}
	m, err := s.DefaultModel()
	require.NoError(t, err)
	assert.Equal(t, llm.ModelTypeOpenAI, m.APIType)

	s.OpenAIAPIKey = ""
	m, err = s.DefaultModel()
	require.NoError(t, err)
	assert.Equal(t, llm.ModelTypeClaude, m.APIType)

	s.AnthropicAPIKey = ""
	_, err = s.DefaultModel()
	assert.Error(t, err)
}
