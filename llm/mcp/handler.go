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

// Package mcp exposes the content pipeline over the Model Context Protocol
// so agent hosts can drive article generation as a tool call.
package mcp

import (
	"context"
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/seoforge/seoforge/internal/analysis"
	"github.com/seoforge/seoforge/internal/pipeline"
	"github.com/seoforge/seoforge/internal/utils"
)

// Tool pairs an MCP tool definition with its handler.
type Tool struct {
	Tool    mcp.Tool
	Handler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// NewTool wraps a typed handler into an MCP tool: arguments are bound into
// R, the result is serialized as JSON text content, and handler errors
// become error results rather than protocol failures.
func NewTool[R any, T any](name string, desc string, schema json.RawMessage, handler func(ctx context.Context, req R) (*T, error)) Tool {
	return Tool{
		Tool: mcp.NewToolWithRawSchema(name, desc, schema),
		Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			var req R
			if err := request.BindArguments(&req); err != nil {
				return nil, err
			}
			var final string
			var isError bool
			if resp, err := handler(ctx, req); err != nil {
				isError = true
				final = err.Error()
			} else if js, err := utils.MarshalJSONBytes(resp); err != nil {
				isError = true
				final = err.Error()
			} else {
				final = string(js)
			}
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					mcp.NewTextContent(final),
				},
				IsError: isError,
			}, nil
		},
	}
}

// schemaFor reflects a request struct into a JSON Schema document.
func schemaFor(v any) json.RawMessage {
	r := jsonschema.Reflector{DoNotReference: true}
	data, err := json.Marshal(r.Reflect(v))
	if err != nil {
		panic(err)
	}
	return data
}

type GenerateArticleRequest struct {
	Topic string   `json:"topic" jsonschema:"description=Blog topic to write about"`
	Steps []string `json:"steps,omitempty" jsonschema:"description=Optional subset of pipeline step IDs to run, in order"`
}

type ListStepsRequest struct{}

type ListStepsResponse struct {
	Steps []string `json:"steps"`
}

type AnalyzeTextRequest struct {
	Text string `json:"text" jsonschema:"description=Markdown or plain text to score"`
}

// pipelineTools builds the tool set backed by orch.
func pipelineTools(orch *pipeline.Orchestrator, sequence []string) []Tool {
	generate := func(ctx context.Context, req GenerateArticleRequest) (*pipeline.State, error) {
		seq := sequence
		if len(req.Steps) > 0 {
			seq = req.Steps
		}
		st, err := orch.Run(ctx, req.Topic, seq)
		if st != nil {
			// Degraded runs still return the state; the caller sees
			// failed_steps alongside whatever was produced.
			return st, nil
		}
		return nil, err
	}
	listSteps := func(ctx context.Context, req ListStepsRequest) (*ListStepsResponse, error) {
		return &ListStepsResponse{Steps: sequence}, nil
	}
	analyze := func(ctx context.Context, req AnalyzeTextRequest) (*analysis.Metrics, error) {
		m := analysis.Analyze(req.Text)
		return &m, nil
	}
	return []Tool{
		NewTool("generate_article", "Run the SEO content pipeline for a topic and return the full run state including the assembled article.", schemaFor(&GenerateArticleRequest{}), generate),
		NewTool("list_steps", "List the pipeline step IDs in execution order.", schemaFor(&ListStepsRequest{}), listSteps),
		NewTool("analyze_text", "Compute word count, sentence count, and Flesch reading ease for a text.", schemaFor(&AnalyzeTextRequest{}), analyze),
	}
}
