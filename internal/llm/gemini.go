package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// GeminiClient implements ChatClient on the Gemini API through the genai SDK.
// History is held by the SDK chat object.
type GeminiClient struct {
	cfg      LLMConfig
	client   *genai.Client
	observer Observer
}

// NewGeminiClient builds a Gemini-backed ChatClient. cfg.Endpoint, when set,
// overrides the API base URL.
func NewGeminiClient(ctx context.Context, cfg LLMConfig, observer Observer) (*GeminiClient, error) {
	if observer == nil {
		observer = NoopObserver{}
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini api key missing", ErrNotConfigured)
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Endpoint != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.Endpoint}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &GeminiClient{cfg: cfg, client: client, observer: observer}, nil
}

func (c *GeminiClient) Provider() Provider { return ProviderGemini }

func (c *GeminiClient) StartChat(ctx context.Context, instruction string) (Conversation, error) {
	chat, err := c.client.Chats.Create(ctx, c.cfg.Model, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
		Temperature:       genai.Ptr(float32(c.cfg.Temperature)),
	}, nil)
	if err != nil {
		return nil, classifyError(ctx, fmt.Errorf("creating gemini chat: %w", err))
	}
	return &geminiConversation{client: c, chat: chat}, nil
}

type geminiConversation struct {
	client *GeminiClient
	chat   *genai.Chat
}

func (s *geminiConversation) Send(ctx context.Context, parts []Part) (*SendResponse, error) {
	start := time.Now()
	c := s.client

	gparts := make([]genai.Part, 0, len(parts))
	for _, p := range parts {
		if p.IsInline() {
			gparts = append(gparts, *genai.NewPartFromBytes(p.Data, p.MIMEType))
			continue
		}
		gparts = append(gparts, *genai.NewPartFromText(p.Text))
	}

	resp, err := s.chat.SendMessage(ctx, gparts...)
	var text string
	if err == nil {
		text = resp.Text()
		if strings.TrimSpace(text) == "" {
			err = ErrEmptyResponse
		}
	}
	if err != nil {
		err = classifyError(ctx, err)
		report(c.observer, ProviderGemini, c.cfg.Model, parts, start, err)
		return nil, err
	}

	latency := report(c.observer, ProviderGemini, c.cfg.Model, parts, start, nil)
	model := c.cfg.Model
	if resp.ModelVersion != "" {
		model = resp.ModelVersion
	}
	return &SendResponse{Text: text, Model: model, LatencyMs: latency}, nil
}
