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

package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/seoforge/seoforge/internal/log"
	"github.com/seoforge/seoforge/internal/pipeline"
	"github.com/seoforge/seoforge/internal/pipeline/steps"
)

type ServerOptions struct {
	ServerName    string
	ServerVersion string
	Verbose       bool

	// Orchestrator backs the generate_article tool.
	Orchestrator *pipeline.Orchestrator
	// Sequence defaults to the full pipeline when empty.
	Sequence []string
}

type Server struct {
	Server *server.MCPServer
}

func NewServer(opts ServerOptions) *Server {
	if opts.Verbose {
		log.SetLogLevel(log.DebugLevel)
	}
	seq := opts.Sequence
	if len(seq) == 0 {
		seq = steps.DefaultSequence()
	}

	svr := server.NewMCPServer(
		opts.ServerName,
		opts.ServerVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	for _, t := range pipelineTools(opts.Orchestrator, seq) {
		svr.AddTool(t.Tool, t.Handler)
	}
	return &Server{Server: svr}
}

// ServeStdio blocks serving the protocol over stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.Server)
}
