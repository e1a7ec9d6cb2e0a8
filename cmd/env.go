package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/feasibility-cli/internal/advisory"
	"github.com/sells-group/feasibility-cli/internal/config"
	"github.com/sells-group/feasibility-cli/internal/cost"
	"github.com/sells-group/feasibility-cli/internal/display"
	"github.com/sells-group/feasibility-cli/internal/feasibility"
	"github.com/sells-group/feasibility-cli/internal/narrative"
	"github.com/sells-group/feasibility-cli/internal/planfile"
	"github.com/sells-group/feasibility-cli/internal/resilience"
	"github.com/sells-group/feasibility-cli/internal/scorer"
	"github.com/sells-group/feasibility-cli/internal/store"
	"github.com/sells-group/feasibility-cli/pkg/anthropic"
)

// appEnv holds the engine and its collaborators for the evaluate and serve
// commands.
type appEnv struct {
	Engine  *feasibility.Engine
	Advisor *narrative.Advisor
	Rates   display.Rates
	Cache   store.Cache // may be nil
}

// Close releases the narrative cache.
func (e *appEnv) Close() {
	if e.Cache != nil {
		if err := e.Cache.Close(); err != nil {
			zap.L().Warn("close narrative cache", zap.Error(err))
		}
	}
}

// initEnv validates cfg for mode and builds the engine. The narrative
// advisor and its cache are only built when withNarrative is set.
// Callers should defer env.Close().
func initEnv(ctx context.Context, c *config.Config, mode string, withNarrative bool) (*appEnv, error) {
	if err := c.Validate(mode); err != nil {
		return nil, err
	}

	engine, err := buildEngine(c.Engine)
	if err != nil {
		return nil, err
	}

	env := &appEnv{
		Engine: engine,
		Rates:  display.Rates{USD: c.Display.USDRate, EUR: c.Display.EURRate},
	}
	if !withNarrative {
		return env, nil
	}

	provider, err := buildProvider(ctx, c)
	if err != nil {
		return nil, err
	}
	if provider != nil {
		cache, err := store.Open(ctx, c.Cache.Driver, c.Cache.DSN)
		if err != nil {
			return nil, eris.Wrap(err, "open narrative cache")
		}
		env.Cache = cache
	}
	env.Advisor = narrative.NewAdvisor(provider, env.Cache, advisorConfig(c.Narrative))

	zap.L().Debug("narrative advisor ready",
		zap.String("provider", c.Narrative.Provider),
		zap.String("cache", c.Cache.Driver),
	)
	return env, nil
}

// buildEngine returns the default engine, or one built from the tables file
// when engine.tables_file is set.
func buildEngine(ec config.EngineConfig) (*feasibility.Engine, error) {
	if ec.TablesFile == "" {
		return feasibility.Default(), nil
	}
	tables, err := planfile.LoadTables(ec.TablesFile)
	if err != nil {
		return nil, err
	}
	return newEngine(tables)
}

func newEngine(tables cost.Tables) (*feasibility.Engine, error) {
	return feasibility.NewEngine(tables, scorer.DefaultConfig(), advisory.DefaultRules)
}

// buildProvider returns nil when narrative.provider is none.
func buildProvider(ctx context.Context, c *config.Config) (narrative.Provider, error) {
	switch c.Narrative.Provider {
	case narrative.ProviderGemini:
		return narrative.NewGeminiProvider(ctx, c.Gemini.Key, c.Gemini.Model)
	case narrative.ProviderAnthropic:
		var opts []anthropic.Option
		if c.Anthropic.BaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(c.Anthropic.BaseURL))
		}
		client := anthropic.NewClient(c.Anthropic.Key, opts...)
		return narrative.NewAnthropicProvider(client, c.Anthropic.Model, c.Anthropic.MaxTokens), nil
	case narrative.ProviderNone, "":
		return nil, nil
	default:
		return nil, eris.Errorf("unknown narrative provider %q", c.Narrative.Provider)
	}
}

func advisorConfig(nc config.NarrativeConfig) narrative.Config {
	ac := narrative.DefaultConfig()
	if nc.TimeoutSecs > 0 {
		ac.Timeout = nc.Timeout()
	}
	ac.RequestsPerMinute = nc.RequestsPerMinute
	ac.CacheTTL = nc.CacheTTL()
	if nc.MaxChars > 0 {
		ac.MaxChars = nc.MaxChars
	}
	if nc.MaxAttempts > 0 {
		ac.Retry.MaxAttempts = nc.MaxAttempts
	}
	ac.Circuit = resilience.FromCircuitConfig(nc.Provider, nc.CircuitFailures, nc.CircuitResetSecs)
	return ac
}
