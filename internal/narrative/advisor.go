package narrative

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/feasibility-cli/internal/model"
	"github.com/sells-group/feasibility-cli/internal/resilience"
	"github.com/sells-group/feasibility-cli/internal/store"
)

// ErrEmptyNarrative is returned when the provider answers with no text.
var ErrEmptyNarrative = eris.New("narrative: provider returned empty text")

// Config tunes the advisor.
type Config struct {
	Timeout           time.Duration // per Insight call, across retries
	RequestsPerMinute int           // 0 disables the limiter
	CacheTTL          time.Duration // 0 keeps entries forever
	MaxChars          int           // longer replies are cut at a word boundary
	Retry             resilience.RetryConfig
	Circuit           resilience.CircuitBreakerConfig
}

// DefaultConfig returns settings for an interactive CLI or API call.
func DefaultConfig() Config {
	return Config{
		Timeout:           20 * time.Second,
		RequestsPerMinute: 30,
		CacheTTL:          24 * time.Hour,
		MaxChars:          600,
		Retry:             resilience.DefaultRetryConfig(),
		Circuit:           resilience.DefaultCircuitBreakerConfig(),
	}
}

// Advisor turns a report into narrative text. A nil provider or any
// generation failure yields the canned fallback for the report's verdict.
type Advisor struct {
	provider Provider
	cache    store.Cache
	limiter  *rate.Limiter
	breaker  *resilience.CircuitBreaker
	cfg      Config
}

// NewAdvisor creates an advisor. provider and cache may be nil.
func NewAdvisor(provider Provider, cache store.Cache, cfg Config) *Advisor {
	limit := rate.Inf
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RequestsPerMinute))
	}
	if cfg.Circuit.Name == "" && provider != nil {
		cfg.Circuit.Name = provider.Name()
	}
	if cfg.Retry.OnRetry == nil && provider != nil {
		cfg.Retry.OnRetry = resilience.RetryLogger(provider.Name(), "generate")
	}
	return &Advisor{
		provider: provider,
		cache:    cache,
		limiter:  rate.NewLimiter(limit, 1),
		breaker:  resilience.NewCircuitBreaker(cfg.Circuit),
		cfg:      cfg,
	}
}

// Enabled reports whether a provider is configured.
func (a *Advisor) Enabled() bool {
	return a != nil && a.provider != nil
}

// Insight returns a narrative for the report. It never fails; problems are
// logged and replaced by the fallback.
func (a *Advisor) Insight(ctx context.Context, plan model.PlanInput, r *model.FeasibilityReport) string {
	if r == nil {
		return FallbackInfeasible
	}
	fallback := Fallback(r.IsFeasible)
	if !a.Enabled() {
		return fallback
	}

	prompt := BuildPrompt(plan, r)
	key := CacheKey(a.provider.Name(), prompt, r.IsFeasible)
	if a.cache != nil {
		v, ok, err := a.cache.Get(ctx, key)
		switch {
		case err != nil:
			zap.L().Warn("narrative: cache read failed", zap.String("key", key), zap.Error(err))
		case ok:
			return v
		}
	}

	text, err := a.generate(ctx, prompt)
	if err != nil {
		zap.L().Warn("narrative: using fallback",
			zap.String("provider", a.provider.Name()),
			zap.Bool("feasible", r.IsFeasible),
			zap.Error(err),
		)
		return fallback
	}

	if a.cache != nil {
		if err := a.cache.Set(ctx, key, text, a.cfg.CacheTTL); err != nil {
			zap.L().Warn("narrative: cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return text
}

// InsightAsync runs Insight in the background. The channel yields exactly
// one value and is then closed.
func (a *Advisor) InsightAsync(ctx context.Context, plan model.PlanInput, r *model.FeasibilityReport) <-chan string {
	out := make(chan string, 1)
	go func() {
		defer close(out)
		out <- a.Insight(ctx, plan, r)
	}()
	return out
}

func (a *Advisor) generate(ctx context.Context, prompt string) (string, error) {
	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}

	text, err := resilience.ExecuteVal(ctx, a.breaker, func(ctx context.Context) (string, error) {
		return resilience.DoVal(ctx, a.cfg.Retry, func(ctx context.Context) (string, error) {
			if err := a.limiter.Wait(ctx); err != nil {
				return "", eris.Wrap(err, "narrative: rate limit wait")
			}
			return a.provider.Generate(ctx, SystemPrompt, prompt)
		})
	})
	if err != nil {
		return "", eris.Wrapf(err, "narrative: %s generate", a.provider.Name())
	}

	text = Clean(text, a.cfg.MaxChars)
	if text == "" {
		return "", ErrEmptyNarrative
	}
	return text, nil
}

// Clean trims whitespace and wrapping quotes, then cuts the text to at most
// maxChars runes on a word boundary. maxChars <= 0 disables the cut.
func Clean(text string, maxChars int) string {
	text = strings.TrimSpace(text)
	text = strings.Trim(text, "\"'`")
	text = strings.TrimSpace(text)
	if maxChars <= 0 || utf8.RuneCountInString(text) <= maxChars {
		return text
	}
	runes := []rune(text)[:maxChars]
	cut := string(runes)
	if i := strings.LastIndexAny(cut, " \n\t"); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut) + "…"
}

// CacheKey hashes the provider, the rendered prompt and the verdict into a
// stable key. The prompt carries the report figures, so a plan evaluated
// under different cost tables gets its own entry.
func CacheKey(provider, prompt string, feasible bool) string {
	h := sha256.New()
	h.Write([]byte(SystemPrompt))
	h.Write([]byte{0})
	h.Write([]byte(prompt))
	h.Write([]byte{0})
	if feasible {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%s:%x", provider, h.Sum(nil)[:16])
}
