package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient implements ChatClient on any OpenAI-compatible chat
// completion API. History is kept client-side and replayed every turn.
type OpenAIClient struct {
	cfg      LLMConfig
	client   *openai.Client
	observer Observer
}

// NewOpenAIClient builds an OpenAI-backed ChatClient. cfg.Endpoint, when set,
// replaces the default base URL (for compatible gateways).
func NewOpenAIClient(cfg LLMConfig, observer Observer) (*OpenAIClient, error) {
	if observer == nil {
		observer = NoopObserver{}
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: openai api key missing", ErrNotConfigured)
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		oc.BaseURL = cfg.Endpoint
	}
	return &OpenAIClient{cfg: cfg, client: openai.NewClientWithConfig(oc), observer: observer}, nil
}

func (c *OpenAIClient) Provider() Provider { return ProviderOpenAI }

func (c *OpenAIClient) StartChat(_ context.Context, instruction string) (Conversation, error) {
	return &openAIConversation{
		client: c,
		history: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: instruction},
		},
	}, nil
}

type openAIConversation struct {
	client  *OpenAIClient
	history []openai.ChatCompletionMessage
}

func (s *openAIConversation) Send(ctx context.Context, parts []Part) (*SendResponse, error) {
	start := time.Now()
	c := s.client

	msg := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}
	for _, p := range parts {
		if p.IsInline() {
			msg.MultiContent = append(msg.MultiContent, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL:    dataURL(p),
					Detail: openai.ImageURLDetailAuto,
				},
			})
			continue
		}
		msg.MultiContent = append(msg.MultiContent, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeText,
			Text: p.Text,
		})
	}

	messages := append(append([]openai.ChatCompletionMessage(nil), s.history...), msg)
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		Temperature: float32(c.cfg.Temperature),
		MaxTokens:   c.cfg.MaxTokens,
	})

	var text string
	if err == nil {
		if len(resp.Choices) > 0 {
			text = resp.Choices[0].Message.Content
		}
		if strings.TrimSpace(text) == "" {
			err = ErrEmptyResponse
		}
	}
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			err = fmt.Errorf("%w: openai status %d: %s", ErrBadStatus, apiErr.HTTPStatusCode, apiErr.Message)
		}
		err = classifyError(ctx, err)
		report(c.observer, ProviderOpenAI, c.cfg.Model, parts, start, err)
		return nil, err
	}

	s.history = append(s.history, msg, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleAssistant,
		Content: text,
	})
	latency := report(c.observer, ProviderOpenAI, c.cfg.Model, parts, start, nil)
	return &SendResponse{Text: text, Model: resp.Model, LatencyMs: latency}, nil
}

func dataURL(p Part) string {
	return "data:" + p.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
}
