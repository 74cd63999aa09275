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
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/seoforge/seoforge/internal/log"
	"github.com/seoforge/seoforge/internal/utils"
	"github.com/seoforge/seoforge/llm/prompt"
)

var _ Generator = (*Client)(nil)

// Client is a single-shot Generator over a ChatModel with a fixed system
// prompt. Retries with exponential backoff happen here, invisibly to the
// pipeline core, which invokes each step at most once.
type Client struct {
	opts    ClientOptions
	model   ChatModel
	retries int
	timeout time.Duration
}

type ClientOptions struct {
	SysPrompt prompt.Prompt `json:"-"`
	Model     ChatModel     `json:"-"`
	Retries   int           `json:"retries"` // default: 3
	Timeout   time.Duration `json:"timeout"` // per attempt, default: 600s
}

func NewClient(opts ClientOptions) *Client {
	if opts.Model == nil {
		panic("client model must be set")
	}
	retries := opts.Retries
	if retries == 0 {
		retries = 3
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 600 * time.Second
	}
	return &Client{
		opts:    opts,
		model:   opts.Model,
		retries: retries,
		timeout: timeout,
	}
}

// Call implements Generator.
func (c *Client) Call(ctx context.Context, input string) (string, error) {
	msgs := make([]*schema.Message, 0, 2)
	if c.opts.SysPrompt != nil {
		msgs = append(msgs, schema.SystemMessage(c.opts.SysPrompt.String()))
	}
	msgs = append(msgs, schema.UserMessage(input))
	log.Debug("[User] %s", input)

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			log.Info("Retrying LLM call (attempt %d/%d)...", attempt+1, c.retries+1)
			// Exponential backoff: wait 1s, 2s, 4s... capped at 10s.
			waitTime := time.Duration(1<<uint(attempt-1)) * time.Second
			if waitTime > 10*time.Second {
				waitTime = 10 * time.Second
			}
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(waitTime):
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		out, err := c.model.Generate(attemptCtx, msgs)
		cancel()
		if err == nil {
			log.Debug("[Assistant] %s", out.Content)
			return out.Content, nil
		}

		lastErr = err
		if !isRetryable(err) {
			log.Error("Non-retryable error occurred: %v", err)
			return "", utils.WrapError(err, "llm generate")
		}
		log.Warn("Retryable error: %v", err)
	}
	return "", utils.WrapError(lastErr, "llm generate: retries exhausted")
}

func isRetryable(err error) bool {
	s := err.Error()
	return strings.Contains(s, "timeout") ||
		strings.Contains(s, "connection reset") ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "operation timed out") ||
		strings.Contains(s, "context deadline exceeded") ||
		strings.Contains(s, "read tcp") ||
		strings.Contains(s, "write tcp") ||
		strings.Contains(s, "429")
}
