package twin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"persona-replicator-be/internal/pkg/logger"
	"persona-replicator-be/pkg/llm"
	"persona-replicator-be/pkg/metrics"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	logModule  = "TWIN_ENGINE"
	tracerName = "persona-replicator-be/pkg/twin"

	DefaultSampleLimit = 5
	DefaultTimeout     = 30 * time.Second
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1000
)

// SampleSource returns the most recent writing samples of a persona,
// newest first.
type SampleSource interface {
	RecentSamples(ctx context.Context, personaId uuid.UUID, limit int) ([]string, error)
}

type Config struct {
	Timeout      time.Duration
	StrictLabels bool // match sections by marker instead of position
	SampleLimit  int
	Temperature  float64
	MaxTokens    int
}

func DefaultConfig() Config {
	return Config{
		Timeout:     DefaultTimeout,
		SampleLimit: DefaultSampleLimit,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	}
}

// Engine produces persona-styled reply candidates. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	provider llm.LLMProvider
	samples  SampleSource
	logger   logger.ILogger
	cfg      Config
}

// NewEngine wires the pipeline. A nil provider puts the engine in
// fallback-only mode.
func NewEngine(provider llm.LLMProvider, samples SampleSource, log logger.ILogger, cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.SampleLimit <= 0 {
		cfg.SampleLimit = def.SampleLimit
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = def.Temperature
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = def.MaxTokens
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Engine{
		provider: provider,
		samples:  samples,
		logger:   log,
		cfg:      cfg,
	}
}

func (e *Engine) Configured() bool {
	return e.provider != nil
}

func (e *Engine) ProviderName() string {
	if e.provider == nil {
		return "none"
	}
	return e.provider.Name()
}

// GenerateTwinReply always returns exactly three candidates. Any failure
// along the way is logged and answered with FallbackCandidates.
func (e *Engine) GenerateTwinReply(ctx context.Context, persona Persona, msg InboundMessage, opts Options) (reply *Reply) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "twin.GenerateTwinReply")
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			reply = e.fallback(persona, msg, fmt.Errorf("reply pipeline panic: %v", r))
		}
		span.SetAttributes(
			attribute.String("twin.provider", reply.Provider),
			attribute.String("twin.origin", string(reply.Origin)),
			attribute.Int("twin.tokens_used", reply.TokensUsed),
		)
		if reply.Cause != nil {
			span.RecordError(reply.Cause)
			span.SetStatus(codes.Error, "served fallback")
		}
		metrics.ReplyGenerationCount.WithLabelValues(reply.Provider, string(reply.Origin)).Inc()
	}()

	if e.provider == nil {
		return e.fallback(persona, msg, llm.ErrUnconfigured)
	}

	opts = opts.Normalize()

	samples, err := e.recentSamples(ctx, persona.Id)
	if err != nil {
		return e.fallback(persona, msg, err)
	}

	history := []llm.Message{
		{Role: llm.RoleSystem, Content: BuildSystemPrompt(persona.Metadata, opts)},
		{Role: llm.RoleUser, Content: BuildUserPrompt(msg, samples)},
	}

	completion, err := e.invoke(ctx, history)
	if err != nil {
		return e.fallback(persona, msg, err)
	}

	candidates := e.parse(completion.Content)

	e.logger.Info(logModule, "Twin reply generated", map[string]interface{}{
		"persona_id":  persona.Id.String(),
		"provider":    e.provider.Name(),
		"mode":        string(opts.Mode),
		"tokens_used": completion.TotalTokens,
	})

	return &Reply{
		Candidates: candidates,
		Origin:     OriginGenerated,
		Provider:   e.provider.Name(),
		TokensUsed: completion.TotalTokens,
	}
}

// parse applies the configured label assignment rule.
func (e *Engine) parse(raw string) Candidates {
	if e.cfg.StrictLabels {
		return ParseCandidatesStrict(raw)
	}
	return ParseCandidates(raw)
}

func (e *Engine) recentSamples(ctx context.Context, personaId uuid.UUID) ([]string, error) {
	if e.samples == nil {
		return nil, nil
	}
	samples, err := e.samples.RecentSamples(ctx, personaId, e.cfg.SampleLimit)
	if err != nil {
		return nil, &PersonaDataError{PersonaId: personaId, Err: err}
	}
	return samples, nil
}

func (e *Engine) invoke(ctx context.Context, history []llm.Message) (*llm.Completion, error) {
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	name := e.provider.Name()
	start := time.Now()

	completion, err := e.provider.Chat(ctx, history,
		llm.WithTemperature(e.cfg.Temperature),
		llm.WithMaxTokens(e.cfg.MaxTokens),
	)

	status := "ok"
	if err == nil && (completion == nil || completion.Content == "") {
		err = errors.New("empty completion")
	}
	if err != nil {
		status = "error"
	}
	metrics.LLMCallLatency.WithLabelValues(name, status).Observe(float64(time.Since(start).Milliseconds()))

	if err != nil {
		return nil, &GenerationError{Provider: name, Err: err}
	}
	metrics.LLMTokensUsed.WithLabelValues(name).Add(float64(completion.TotalTokens))
	return completion, nil
}

func (e *Engine) fallback(persona Persona, msg InboundMessage, cause error) *Reply {
	kind := fallbackCause(cause)
	metrics.ReplyFallbackCount.WithLabelValues(kind).Inc()

	e.logger.Warn(logModule, "Serving fallback reply candidates", map[string]interface{}{
		"persona_id": persona.Id.String(),
		"provider":   e.ProviderName(),
		"cause":      kind,
		"error":      cause.Error(),
	})

	return &Reply{
		Candidates: FallbackCandidates(msg),
		Origin:     OriginFallback,
		Provider:   e.ProviderName(),
		Cause:      cause,
	}
}

func fallbackCause(err error) string {
	var genErr *GenerationError
	var dataErr *PersonaDataError
	switch {
	case errors.Is(err, llm.ErrUnconfigured):
		return "unconfigured"
	case errors.As(err, &dataErr):
		return "persona_data"
	case errors.As(err, &genErr):
		return "generation"
	default:
		return "parse"
	}
}
