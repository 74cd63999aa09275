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

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/seoforge/seoforge/internal/config"
	"github.com/seoforge/seoforge/internal/export"
	"github.com/seoforge/seoforge/internal/log"
	"github.com/seoforge/seoforge/internal/pipeline"
	"github.com/seoforge/seoforge/internal/pipeline/steps"
	"github.com/seoforge/seoforge/llm"
	"github.com/seoforge/seoforge/llm/mcp"
	"github.com/seoforge/seoforge/version"
)

const Usage = `seoforge <Action> [Topic|Path] [Flags]
Action:
   run          generate an article for the given topic and export it
   steps        list the pipeline step IDs in execution order
   export       re-export a saved run state file (run_*.json) to other formats
   watch        watch a cache directory and print step snapshots as they land
   mcp          run as an MCP server exposing the pipeline as tools
   version      print the version of seoforge
`

func main() {
	flags := flag.NewFlagSet("seoforge", flag.ExitOnError)

	flagHelp := flags.Bool("h", false, "Show help message.")
	flagVerbose := flags.Bool("verbose", false, "Verbose mode.")
	flagOutput := flags.String("o", "", "Output directory (default: output).")
	flagCache := flags.String("cache", "", "Step cache directory (default: cache).")
	flagModelConfig := flags.String("model-config", "", "Path to a models JSON file.")
	flagModel := flags.String("model", "default", "Model name to select from the models file.")
	flagSteps := flags.String("steps", "", "Comma-separated subset of step IDs to run, in order.")
	flagFormat := flags.String("format", "markdown", "Comma-separated export formats: markdown,html,json,wordpress,all.")

	flags.Usage = func() {
		fmt.Fprint(os.Stderr, Usage)
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flags.PrintDefaults()
	}

	if len(os.Args) < 2 {
		flags.Usage()
		os.Exit(1)
	}
	action := strings.ToLower(os.Args[1])

	switch action {
	case "version":
		fmt.Fprintf(os.Stdout, "%s\n", version.Version)

	case "steps":
		for i, id := range steps.DefaultSequence() {
			fmt.Fprintf(os.Stdout, "%2d. %s\n", i+1, id)
		}

	case "run":
		topic := parseArgAndFlags(flags, flagHelp, flagVerbose)
		if topic == "" {
			log.Error("Argument Topic is required\n")
			os.Exit(1)
		}
		settings := loadSettings(flagOutput, flagCache)

		model := buildModel(settings, *flagModelConfig, *flagModel)
		cache, err := pipeline.NewCache(settings.CacheDir)
		if err != nil {
			log.Error("Failed to open cache: %v\n", err)
			os.Exit(1)
		}

		registry := pipeline.NewRegistry()
		steps.Register(registry, steps.Deps{Model: model})
		orch := &pipeline.Orchestrator{
			Registry: registry,
			Cache:    cache,
			Reporter: progressReporter(),
		}

		sequence := steps.DefaultSequence()
		if *flagSteps != "" {
			sequence = splitList(*flagSteps)
		}

		st, err := orch.Run(context.Background(), topic, sequence)
		if err != nil && st == nil {
			log.Error("Run rejected: %v\n", err)
			os.Exit(1)
		}
		statePath, serr := saveRunState(settings.OutputDir, st)
		if serr != nil {
			log.Warn("Failed to save run state: %v\n", serr)
		} else {
			log.Info("Run state saved to %s\n", statePath)
		}
		if err != nil {
			log.Error("Run failed: %v\n", err)
			os.Exit(1)
		}

		if paths := exportFinal(st, settings.OutputDir, *flagFormat); len(paths) > 0 {
			for _, p := range paths {
				fmt.Fprintf(os.Stdout, "%s\n", p)
			}
		}

	case "export":
		path := parseArgAndFlags(flags, flagHelp, flagVerbose)
		if path == "" {
			log.Error("Argument Path is required\n")
			os.Exit(1)
		}
		settings := loadSettings(flagOutput, flagCache)

		st, err := pipeline.LoadState(path)
		if err != nil {
			log.Error("Failed to load run state: %v\n", err)
			os.Exit(1)
		}
		paths := exportFinal(st, settings.OutputDir, *flagFormat)
		if len(paths) == 0 {
			os.Exit(1)
		}
		for _, p := range paths {
			fmt.Fprintf(os.Stdout, "%s\n", p)
		}

	case "watch":
		dir := parseArgAndFlags(flags, flagHelp, flagVerbose)
		if dir == "" {
			dir = loadSettings(flagOutput, flagCache).CacheDir
		}
		err := pipeline.WatchCache(context.Background(), dir, func(e pipeline.CacheEntry) {
			fmt.Fprintf(os.Stdout, "%s  run=%s step=%s seq=%d\n",
				e.WrittenAt.Format(time.RFC3339), e.RunID, e.StepID, e.Seq)
		})
		if err != nil {
			log.Error("Watch failed: %v\n", err)
			os.Exit(1)
		}

	case "mcp":
		parseArgAndFlags(flags, flagHelp, flagVerbose)
		settings := loadSettings(flagOutput, flagCache)

		model := buildModel(settings, *flagModelConfig, *flagModel)
		cache, err := pipeline.NewCache(settings.CacheDir)
		if err != nil {
			log.Error("Failed to open cache: %v\n", err)
			os.Exit(1)
		}
		registry := pipeline.NewRegistry()
		steps.Register(registry, steps.Deps{Model: model})

		svr := mcp.NewServer(mcp.ServerOptions{
			ServerName:    "seoforge",
			ServerVersion: version.Version,
			Verbose:       *flagVerbose,
			Orchestrator:  &pipeline.Orchestrator{Registry: registry, Cache: cache},
		})
		if err := svr.ServeStdio(); err != nil {
			log.Error("MCP server stopped: %v\n", err)
			os.Exit(1)
		}

	default:
		flags.Usage()
		os.Exit(1)
	}
}

// parseArgAndFlags reads the optional positional argument after the action,
// then parses the remaining flags.
func parseArgAndFlags(flags *flag.FlagSet, flagHelp *bool, flagVerbose *bool) string {
	arg := ""
	rest := os.Args[2:]
	if len(rest) > 0 && !strings.HasPrefix(rest[0], "-") {
		arg = rest[0]
		rest = rest[1:]
	}
	_ = flags.Parse(rest)
	if *flagHelp {
		flags.Usage()
		os.Exit(0)
	}
	if *flagVerbose {
		log.SetLogLevel(log.DebugLevel)
	}
	return arg
}

func loadSettings(flagOutput, flagCache *string) config.Settings {
	settings := config.Load()
	if *flagOutput != "" {
		settings.OutputDir = *flagOutput
	}
	if *flagCache != "" {
		settings.CacheDir = *flagCache
	}
	return settings
}

// buildModel resolves the chat model from a models file when given, falling
// back to environment-based defaults.
func buildModel(settings config.Settings, configPath, name string) llm.ChatModel {
	var cfg llm.ModelConfig
	if configPath != "" {
		models, err := config.LoadModels(configPath)
		if err != nil {
			log.Error("Failed to load models: %v\n", err)
			os.Exit(1)
		}
		m, ok := models[name]
		if !ok {
			log.Error("Model %q not found in %s\n", name, configPath)
			os.Exit(1)
		}
		cfg = m
	} else {
		m, err := settings.DefaultModel()
		if err != nil {
			log.Error("%v\n", err)
			os.Exit(1)
		}
		cfg = m
	}
	return llm.NewChatModel(cfg)
}

func progressReporter() pipeline.Reporter {
	return pipeline.ReporterFunc(func(fraction float64, snapshot *pipeline.State, message string) {
		log.Info("[%3.0f%%] %s\n", fraction*100, message)
	})
}

func saveRunState(dir string, st *pipeline.State) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := fmt.Sprintf("%s/run_%s.json", dir, st.RunID)
	if err := st.SaveToFile(path); err != nil {
		return "", err
	}
	return path, nil
}

// exportFinal renders the run's deliverable in each requested format and
// returns the written paths. Logs and returns nil when there is nothing to
// export or a format fails.
func exportFinal(st *pipeline.State, outputDir, formats string) []string {
	if st == nil || st.FinalOutput == nil {
		log.Error("Run state has no final article to export\n")
		return nil
	}
	article, err := export.FromOutput(st.FinalOutput)
	if err != nil {
		log.Error("Failed to read final article: %v\n", err)
		return nil
	}
	list := splitList(formats)
	if len(list) == 1 && list[0] == "all" {
		list = export.AllFormats
	}
	exporter, err := export.NewExporter(outputDir)
	if err != nil {
		log.Error("Failed to open output directory: %v\n", err)
		return nil
	}
	paths, err := exporter.Bundle(article, list)
	if err != nil {
		log.Error("Export failed: %v\n", err)
		return nil
	}
	return paths
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
