package analysis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"pythia/internal/domain/marketdata"
	"pythia/pkg/errors"
	"pythia/pkg/logger"
)

// dataLabel prefixes the serialized sample in the user turn.
const dataLabel = "\n\nHere is the OHLCV + indicators data:\n"

// Summarizer produces a natural-language support/resistance summary of
// an enriched candle series via one chat completion per call.
type Summarizer struct {
	client     openai.Client
	model      openai.ChatModel
	prompt     string
	sampleSize int
	timeout    time.Duration
	log        *logger.Logger
}

// NewSummarizer creates a summarizer using the official OpenAI Go SDK.
// Extra request options (e.g. a test base URL) are appended after the
// API key.
func NewSummarizer(apiKey, model, prompt string, sampleSize int, timeout time.Duration, opts ...option.RequestOption) (*Summarizer, error) {
	if apiKey == "" {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "openai API key is required")
	}
	if prompt == "" {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "analysis prompt is required")
	}
	if sampleSize <= 0 {
		sampleSize = 100
	}
	if timeout == 0 {
		timeout = 120 * time.Second
	}

	clientOpts := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)

	return &Summarizer{
		client:     openai.NewClient(clientOpts...),
		model:      openai.ChatModel(model),
		prompt:     prompt,
		sampleSize: sampleSize,
		timeout:    timeout,
		log:        logger.Get().With("component", "summarizer", "model", model),
	}, nil
}

// Summarize serializes the most recent sample of the series and sends
// it with the instruction prompt as a single chat completion. The top
// completion text is returned verbatim. This is a billed external call.
func (s *Summarizer) Summarize(ctx context.Context, series marketdata.Series) (string, error) {
	if len(series) == 0 {
		return "", errors.Wrapf(errors.ErrInsufficientData, "no candles to summarize")
	}

	sample := series.Tail(s.sampleSize)
	payload, err := json.Marshal(sample.Records())
	if err != nil {
		return "", errors.Wrap(err, "marshal candle sample")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	completion, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(s.prompt),
			openai.UserMessage(dataLabel + string(payload)),
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "chat completion failed")
	}

	if len(completion.Choices) == 0 {
		return "", errors.Wrapf(errors.ErrExternal, "no completion choices returned")
	}
	content := completion.Choices[0].Message.Content
	if content == "" {
		return "", errors.Wrapf(errors.ErrExternal, "empty completion content")
	}

	s.log.Debugw("Generated analysis",
		"sample_size", len(sample),
		"tokens_used", completion.Usage.TotalTokens)

	return content, nil
}
