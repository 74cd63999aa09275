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
	"context"

	"github.com/cloudwego/eino/components/model"
)

// Generator is the capability each pipeline step is given: one prompt in,
// one text completion out. Production implementations wrap a ChatModel with
// retry and timeout policy; tests substitute a deterministic fake.
type Generator interface {
	Call(ctx context.Context, input string) (string, error)
}

// GeneratorFunc adapts a function to Generator, for tests and small fakes.
type GeneratorFunc func(ctx context.Context, input string) (string, error)

func (f GeneratorFunc) Call(ctx context.Context, input string) (string, error) {
	return f(ctx, input)
}

// ChatModel is the interface for the LLM backend.
type ChatModel interface {
	model.BaseChatModel
}
