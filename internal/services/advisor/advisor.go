package advisor

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"partsplit/internal/catalog"
	"partsplit/internal/config"
	"partsplit/internal/logging"
	"partsplit/internal/services"
	"partsplit/internal/textutil"
)

// Suggestion is a vetted advisor reply: a canonical catalog instrument and
// the model's self-reported confidence in [0, 1].
type Suggestion struct {
	Instrument string
	Confidence float64
}

// Advisor wraps the chat completion API behind a rate limiter.
type Advisor struct {
	client  *openai.Client
	catalog *catalog.Catalog
	model   string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *slog.Logger

	// MinConfidence is the threshold below which callers should not
	// auto-apply a suggestion.
	MinConfidence float64
}

// New builds an advisor from the llm config section. Fails when no API key
// is configured; callers should check config.LLMConfigured first.
func New(cfg *config.Config, cat *catalog.Catalog, logger *slog.Logger) (*Advisor, error) {
	if !cfg.LLMConfigured() {
		return nil, services.Wrap(services.ErrConfiguration, "advisor", "new", "llm.api_key is not set", nil)
	}

	clientConfig := openai.DefaultConfig(cfg.LLM.APIKey)
	if cfg.LLM.BaseURL != "" {
		clientConfig.BaseURL = cfg.LLM.BaseURL
	}

	perSecond := rate.Limit(float64(cfg.LLM.RequestsPerMinute) / 60.0)
	return &Advisor{
		client:        openai.NewClientWithConfig(clientConfig),
		catalog:       cat,
		model:         cfg.LLM.Model,
		timeout:       time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
		limiter:       rate.NewLimiter(perSecond, 1),
		logger:        logging.NewComponentLogger(logger, "advisor"),
		MinConfidence: cfg.LLM.MinConfidence,
	}, nil
}

type reply struct {
	Instrument string  `json:"instrument"`
	Confidence float64 `json:"confidence"`
}

// SuggestInstrument asks the model which catalog instrument the fragment
// names. Returns nil without error when the model declines or answers with
// something outside the catalog.
func (a *Advisor) SuggestInstrument(ctx context.Context, fragment string) (*Suggestion, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, services.Wrap(services.ErrExternalService, "advisor", "suggest", "rate limiter wait", err)
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildUserPrompt(fragment, a.catalog.Names())},
		},
	})
	if err != nil {
		return nil, services.Wrap(services.ErrExternalService, "advisor", "suggest", "chat completion", err)
	}
	if len(resp.Choices) == 0 {
		return nil, services.Wrap(services.ErrExternalService, "advisor", "suggest", "empty completion", nil)
	}

	var parsed reply
	content := resp.Choices[0].Message.Content
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, services.Wrap(services.ErrExternalService, "advisor", "suggest", "malformed completion JSON", err)
	}

	name := strings.TrimSpace(parsed.Instrument)
	if name == "" {
		a.logger.Debug("advisor declined", logging.String("fragment", fragment))
		return nil, nil
	}

	canonical, ok := a.catalog.Lookup(textutil.NormalizeLabel(name))
	if !ok {
		a.logger.Debug("advisor answer outside catalog",
			logging.String("fragment", fragment),
			logging.String("answer", name))
		return nil, nil
	}
	if parsed.Confidence < 0 || parsed.Confidence > 1 {
		a.logger.Debug("advisor confidence out of range",
			logging.String("fragment", fragment),
			logging.Float64("confidence", parsed.Confidence))
		return nil, nil
	}

	a.logger.Debug("advisor suggestion",
		logging.String("fragment", fragment),
		logging.String("instrument", canonical),
		logging.Float64("confidence", parsed.Confidence))
	return &Suggestion{Instrument: canonical, Confidence: parsed.Confidence}, nil
}
