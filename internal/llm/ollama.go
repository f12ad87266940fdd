package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const defaultOllamaEndpoint = "http://localhost:11434"

// OllamaClient implements ChatClient using the Ollama HTTP chat API.
// Conversation history is kept client-side and replayed on every turn.
type OllamaClient struct {
	cfg      LLMConfig
	http     *http.Client
	observer Observer
}

// NewOllamaClient creates a ChatClient that talks to an Ollama instance.
func NewOllamaClient(cfg LLMConfig, observer Observer) *OllamaClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultOllamaEndpoint
	}
	return &OllamaClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

func (c *OllamaClient) Provider() Provider { return ProviderOllama }

func (c *OllamaClient) StartChat(_ context.Context, instruction string) (Conversation, error) {
	return &ollamaConversation{
		client:  c,
		history: []ollamaMessage{{Role: "system", Content: instruction}},
	}, nil
}

// Available checks whether the Ollama server is reachable.
func (c *OllamaClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// ollamaMessage is one entry of the messages array of POST /api/chat.
// Images are base64 without a data-URL prefix.
type ollamaMessage struct {
	Role    string   `json:"role"`
	Content string   `json:"content"`
	Images  []string `json:"images,omitempty"`
}

type ollamaRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  ollamaOptions   `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// ollamaResponse is the JSON body returned by POST /api/chat (non-streaming).
type ollamaResponse struct {
	Model   string        `json:"model"`
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
}

type ollamaConversation struct {
	client  *OllamaClient
	history []ollamaMessage
}

func (s *ollamaConversation) Send(ctx context.Context, parts []Part) (*SendResponse, error) {
	start := time.Now()
	c := s.client

	msg := ollamaMessage{Role: "user"}
	var texts []string
	for _, p := range parts {
		if p.IsInline() {
			msg.Images = append(msg.Images, base64.StdEncoding.EncodeToString(p.Data))
			continue
		}
		texts = append(texts, p.Text)
	}
	msg.Content = strings.Join(texts, "\n")

	body := ollamaRequest{
		Model:    c.cfg.Model,
		Messages: append(append([]ollamaMessage(nil), s.history...), msg),
		Stream:   false,
		Options: ollamaOptions{
			Temperature: c.cfg.Temperature,
			NumPredict:  c.cfg.MaxTokens,
		},
	}

	resp, err := c.doRequest(ctx, body)
	if err == nil && strings.TrimSpace(resp.Message.Content) == "" {
		err = ErrEmptyResponse
	}
	if err != nil {
		err = classifyError(ctx, err)
		report(c.observer, ProviderOllama, c.cfg.Model, parts, start, err)
		return nil, err
	}

	s.history = append(s.history, msg, ollamaMessage{Role: "assistant", Content: resp.Message.Content})
	latency := report(c.observer, ProviderOllama, c.cfg.Model, parts, start, nil)
	return &SendResponse{
		Text:      resp.Message.Content,
		Model:     resp.Model,
		LatencyMs: latency,
	}, nil
}

func (c *OllamaClient) doRequest(ctx context.Context, body ollamaRequest) (*ollamaResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := c.cfg.Endpoint + "/api/chat"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: ollama status %d: %s", ErrBadStatus, httpResp.StatusCode, string(respBody))
	}

	var resp ollamaResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &resp, nil
}
