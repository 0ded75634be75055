// Command blogsmith runs the blog generation HTTP service.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/blogsmith/blogsmith/pkg/blogsmith"
	"github.com/blogsmith/blogsmith/pkg/blogsmith/config"
	"github.com/blogsmith/blogsmith/pkg/blogsmith/llm"
	"github.com/blogsmith/blogsmith/pkg/blogsmith/observability"
	"github.com/blogsmith/blogsmith/pkg/blogsmith/runlog"
	"github.com/blogsmith/blogsmith/pkg/blogsmith/server"
)

func main() {
	configPath := flag.String("config", "", "path to config file (.yaml or .json)")
	addr := flag.String("addr", "", "http listen address (overrides config)")
	flag.Parse()

	if err := run(*configPath, *addr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, addr string) error {
	settings := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		settings = loaded
	}
	if addr != "" {
		settings.Addr = addr
	}

	logger := buildLogger(settings)
	slog.SetDefault(logger)

	client, err := buildClient(settings)
	if err != nil {
		return err
	}

	opts := []blogsmith.Option{
		blogsmith.WithMetrics(observability.NewMetricsRecorder()),
	}
	if settings.Tracing {
		opts = append(opts, blogsmith.WithTracing(observability.NewSpanManager()))
	}
	pipeline, err := blogsmith.New(client, opts...)
	if err != nil {
		return err
	}

	runs, err := buildRunLog(settings)
	if err != nil {
		return err
	}
	if runs != nil {
		defer runs.Close()
	}

	srv, err := server.New(pipeline, runs, logger)
	if err != nil {
		return err
	}

	logger.Info("starting blogsmith",
		slog.String("addr", settings.Addr),
		slog.String("version", blogsmith.Version),
		slog.String("llm_provider", settings.LLM.Provider),
	)
	return http.ListenAndServe(settings.Addr, srv.Routes())
}

func buildLogger(settings *config.Settings) *slog.Logger {
	var level slog.Level
	_ = level.UnmarshalText([]byte(settings.SlogLevel()))
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func buildClient(settings *config.Settings) (llm.Client, error) {
	switch settings.LLM.Provider {
	case "openai":
		return llm.NewOpenAIClient(llm.Settings{
			Provider: settings.LLM.Provider,
			Model:    settings.LLM.Model,
			APIKey:   settings.APIKey(),
			BaseURL:  settings.LLM.BaseURL,
		})
	case "mock":
		// Local development without an API key: five canned titles,
		// an echo of candidate one, and a short post.
		return llm.NewStubClient(
			"1. How to Get Started\n2. 10 Ways to Improve\n3. Why Does It Matter?\n4. The Ultimate Guide\n5. A Fresh Perspective",
			"How to Get Started",
			"## Getting Started\n\nThis is placeholder content from the mock provider.",
			"## Empezando\n\nEste es contenido de ejemplo del proveedor simulado.",
		), nil
	default:
		return nil, fmt.Errorf("llm provider %q not supported", settings.LLM.Provider)
	}
}

func buildRunLog(settings *config.Settings) (runlog.Store, error) {
	if !settings.RunLog.Enabled {
		return nil, nil
	}
	if settings.RunLog.Path == "" {
		return runlog.NewMemoryStore(), nil
	}
	return runlog.NewSQLiteStore(settings.RunLog.Path)
}
