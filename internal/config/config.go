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

// Package config loads runtime settings from the environment and an
// optional models JSON file.
package config

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/seoforge/seoforge/llm"
)

// Settings are the env-derived defaults. Provider API keys follow the
// provider SDK conventions; SEOFORGE_* vars override directory defaults.
type Settings struct {
	OpenAIAPIKey    string
	AnthropicAPIKey string
	CacheDir        string
	OutputDir       string
}

func Load() Settings {
	s := Settings{
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		CacheDir:        os.Getenv("SEOFORGE_CACHE_DIR"),
		OutputDir:       os.Getenv("SEOFORGE_OUTPUT_DIR"),
	}
	if s.CacheDir == "" {
		s.CacheDir = "cache"
	}
	if s.OutputDir == "" {
		s.OutputDir = "output"
	}
	return s
}

// LoadModels reads a JSON array of llm.ModelConfig from path and indexes it
// by config name.
func LoadModels(path string) (map[string]llm.ModelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read models file")
	}
	var list []llm.ModelConfig
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, errors.Wrapf(err, "parse models file %s", path)
	}
	models := make(map[string]llm.ModelConfig, len(list))
	for _, m := range list {
		if m.Name == "" {
			return nil, errors.Errorf("model config in %s has no name", path)
		}
		models[m.Name] = m
	}
	return models, nil
}

// DefaultModel builds a ModelConfig from the environment when no models
// file is given: OpenAI when its key is present, Claude as fallback.
func (s Settings) DefaultModel() (llm.ModelConfig, error) {
	switch {
	case s.OpenAIAPIKey != "":
		return llm.ModelConfig{
			Name:      "default",
			APIType:   llm.ModelTypeOpenAI,
			APIKey:    s.OpenAIAPIKey,
			ModelName: "gpt-4o-mini",
		}, nil
	case s.AnthropicAPIKey != "":
		return llm.ModelConfig{
			Name:      "default",
			APIType:   llm.ModelTypeClaude,
			APIKey:    s.AnthropicAPIKey,
			ModelName: "claude-sonnet-4-20250514",
		}, nil
	}
	return llm.ModelConfig{}, errors.New("no model configured: set OPENAI_API_KEY or ANTHROPIC_API_KEY, or pass -model-config")
}
