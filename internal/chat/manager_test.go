package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/agrismart/internal/catalog"
	"github.com/alexanderramin/agrismart/internal/domain"
	"github.com/alexanderramin/agrismart/internal/llm"
	"github.com/alexanderramin/agrismart/internal/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient records every conversation it opens. Each conversation answers
// through reply, which defaults to echoing the text parts.
type fakeClient struct {
	mu           sync.Mutex
	instructions []string
	convs        []*fakeConversation
	startErr     error
	reply        func(ctx context.Context, parts []llm.Part) (*llm.SendResponse, error)
}

func (c *fakeClient) Provider() llm.Provider { return "fake" }

func (c *fakeClient) StartChat(_ context.Context, instruction string) (llm.Conversation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.startErr != nil {
		return nil, c.startErr
	}
	conv := &fakeConversation{reply: c.reply}
	c.instructions = append(c.instructions, instruction)
	c.convs = append(c.convs, conv)
	return conv, nil
}

func (c *fakeClient) started() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.convs)
}

type fakeConversation struct {
	mu    sync.Mutex
	sent  [][]llm.Part
	reply func(ctx context.Context, parts []llm.Part) (*llm.SendResponse, error)
}

func (c *fakeConversation) Send(ctx context.Context, parts []llm.Part) (*llm.SendResponse, error) {
	c.mu.Lock()
	c.sent = append(c.sent, parts)
	c.mu.Unlock()
	if c.reply != nil {
		return c.reply(ctx, parts)
	}
	return &llm.SendResponse{Text: "echo: " + parts[0].Text}, nil
}

func (c *fakeConversation) sends() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sent)
}

func testProfile() domain.UserProfile {
	return domain.UserProfile{
		Name:     "Sita Patil",
		Mobile:   "9876543210",
		Country:  "India",
		State:    "Maharashtra",
		District: "Pune",
		Tashil:   "Haveli",
	}
}

func newTestManager(client *fakeClient, opts ...Option) *Manager {
	return NewManager(prompt.NewComposer(catalog.Default()), client, opts...)
}

func TestManager_StartsEmpty(t *testing.T) {
	m := newTestManager(&fakeClient{})
	assert.Equal(t, StateEmpty, m.State())
	assert.Empty(t, m.Instruction())
}

func TestManager_EnsureSession_IsIdempotent(t *testing.T) {
	client := &fakeClient{}
	m := newTestManager(client)
	ctx := context.Background()

	require.NoError(t, m.EnsureSession(ctx, domain.PersonaAgriculture, testProfile(), domain.LangEnglish))
	require.NoError(t, m.EnsureSession(ctx, domain.PersonaAgriculture, testProfile(), domain.LangEnglish))

	assert.Equal(t, 1, client.started())
	assert.Equal(t, StateActive, m.State())
	assert.Equal(t, client.instructions[0], m.Instruction())
}

func TestManager_EnsureSession_PersonaChangeCreatesNewHandle(t *testing.T) {
	client := &fakeClient{}
	m := newTestManager(client)
	ctx := context.Background()

	require.NoError(t, m.EnsureSession(ctx, domain.PersonaAgriculture, testProfile(), domain.LangEnglish))
	require.NoError(t, m.EnsureSession(ctx, domain.PersonaPest, testProfile(), domain.LangEnglish))

	require.Equal(t, 2, client.started())
	assert.NotSame(t, client.convs[0], client.convs[1])
	assert.NotEqual(t, client.instructions[0], client.instructions[1])
	assert.Contains(t, m.Instruction(), "Identification")
	assert.Equal(t, domain.PersonaPest, m.Persona())
}

func TestManager_EnsureSession_LanguageOrProfileChangeCreatesNewHandle(t *testing.T) {
	client := &fakeClient{}
	m := newTestManager(client)
	ctx := context.Background()

	require.NoError(t, m.EnsureSession(ctx, domain.PersonaWeather, testProfile(), domain.LangEnglish))
	require.NoError(t, m.EnsureSession(ctx, domain.PersonaWeather, testProfile(), domain.LangMarathi))

	moved := testProfile()
	moved.District = "Nashik"
	require.NoError(t, m.EnsureSession(ctx, domain.PersonaWeather, moved, domain.LangMarathi))

	assert.Equal(t, 3, client.started())
	assert.Contains(t, m.Instruction(), "Nashik")
	assert.Contains(t, m.Instruction(), "Please respond exclusively in Marathi.")
}

func TestManager_EnsureSession_RejectsUnknownPersona(t *testing.T) {
	client := &fakeClient{}
	m := newTestManager(client)

	err := m.EnsureSession(context.Background(), domain.Persona("astrology"), testProfile(), domain.LangEnglish)

	assert.ErrorIs(t, err, domain.ErrUnknownPersona)
	assert.Equal(t, 0, client.started())
	assert.Equal(t, StateEmpty, m.State())
}

func TestManager_EnsureSession_StartFailureIsClassified(t *testing.T) {
	client := &fakeClient{startErr: fmt.Errorf("%w: dial tcp", llm.ErrUnavailable)}
	m := newTestManager(client)

	err := m.EnsureSession(context.Background(), domain.PersonaBuyer, testProfile(), domain.LangHindi)

	assert.ErrorIs(t, err, ErrTransport)
	assert.NotErrorIs(t, err, llm.ErrUnavailable)
	assert.Equal(t, StateEmpty, m.State())
}

func TestManager_SendTurn_EmptyTurnDoesNotDispatch(t *testing.T) {
	client := &fakeClient{}
	m := newTestManager(client)
	ctx := context.Background()
	require.NoError(t, m.EnsureSession(ctx, domain.PersonaAgriculture, testProfile(), domain.LangEnglish))

	_, err := m.SendTurn(ctx, domain.Turn{Text: "   "})

	assert.ErrorIs(t, err, ErrEmptyTurn)
	assert.Equal(t, 0, client.convs[0].sends())
	assert.Equal(t, StateActive, m.State())
}

func TestManager_SendTurn_WithoutSession(t *testing.T) {
	m := newTestManager(&fakeClient{})

	_, err := m.SendTurn(context.Background(), domain.Turn{Text: "hello"})

	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManager_SendTurn_ReusesHandleAndReturnsTextVerbatim(t *testing.T) {
	client := &fakeClient{reply: func(_ context.Context, parts []llm.Part) (*llm.SendResponse, error) {
		return &llm.SendResponse{Text: "  **Sow** soybean\n\nafter 75mm rain.  "}, nil
	}}
	m := newTestManager(client)
	ctx := context.Background()
	require.NoError(t, m.EnsureSession(ctx, domain.PersonaAgriculture, testProfile(), domain.LangEnglish))

	first, err := m.SendTurn(ctx, domain.Turn{Text: "when to sow?"})
	require.NoError(t, err)
	_, err = m.SendTurn(ctx, domain.Turn{Text: "which variety?"})
	require.NoError(t, err)

	assert.Equal(t, "  **Sow** soybean\n\nafter 75mm rain.  ", first)
	assert.Equal(t, 1, client.started())
	assert.Equal(t, 2, client.convs[0].sends())
	assert.Equal(t, StateActive, m.State())
}

func TestManager_SendTurn_TransportFailureDiscardsHandle(t *testing.T) {
	client := &fakeClient{reply: func(context.Context, []llm.Part) (*llm.SendResponse, error) {
		return nil, fmt.Errorf("%w: connection refused", llm.ErrUnavailable)
	}}
	m := newTestManager(client)
	ctx := context.Background()
	require.NoError(t, m.EnsureSession(ctx, domain.PersonaPest, testProfile(), domain.LangEnglish))

	_, err := m.SendTurn(ctx, domain.Turn{Text: "leaf spots"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.NotErrorIs(t, err, ErrService)
	assert.NotErrorIs(t, err, llm.ErrUnavailable)
	assert.Equal(t, "could not connect to the AI service, please check your connection", err.Error())
	assert.Equal(t, StateEmpty, m.State())

	var derr *DispatchError
	require.ErrorAs(t, err, &derr)
	assert.ErrorIs(t, derr.Cause, llm.ErrUnavailable)

	require.NoError(t, m.EnsureSession(ctx, domain.PersonaPest, testProfile(), domain.LangEnglish))
	assert.Equal(t, 2, client.started())
	assert.Equal(t, 1, client.convs[0].sends(), "failed turn is not retried")
}

func TestManager_SendTurn_ServiceFailure(t *testing.T) {
	client := &fakeClient{reply: func(context.Context, []llm.Part) (*llm.SendResponse, error) {
		return nil, fmt.Errorf("%w: 429 quota", llm.ErrBadStatus)
	}}
	m := newTestManager(client)
	ctx := context.Background()
	require.NoError(t, m.EnsureSession(ctx, domain.PersonaBuyer, testProfile(), domain.LangEnglish))

	_, err := m.SendTurn(ctx, domain.Turn{Text: "onion price"})

	assert.ErrorIs(t, err, ErrService)
	assert.NotErrorIs(t, err, ErrTransport)
	assert.Equal(t, "analysis failed, please try again", err.Error())
	assert.Equal(t, StateEmpty, m.State())
}

func TestManager_SendTurn_TimeoutIsTransport(t *testing.T) {
	client := &fakeClient{reply: func(ctx context.Context, _ []llm.Part) (*llm.SendResponse, error) {
		<-ctx.Done()
		return nil, fmt.Errorf("%w: %v", llm.ErrTimeout, ctx.Err())
	}}
	m := newTestManager(client, WithTimeout(20*time.Millisecond))
	ctx := context.Background()
	require.NoError(t, m.EnsureSession(ctx, domain.PersonaWeather, testProfile(), domain.LangEnglish))

	start := time.Now()
	_, err := m.SendTurn(ctx, domain.Turn{Text: "rain tomorrow?"})

	assert.ErrorIs(t, err, ErrTransport)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, StateEmpty, m.State())
}

func TestManager_SendTurn_ImageTurnUsesImageTimeout(t *testing.T) {
	var deadlines []time.Duration
	client := &fakeClient{reply: func(ctx context.Context, _ []llm.Part) (*llm.SendResponse, error) {
		d, ok := ctx.Deadline()
		require.True(t, ok)
		deadlines = append(deadlines, time.Until(d))
		return &llm.SendResponse{Text: "ok"}, nil
	}}
	cfg := llm.DefaultConfig()
	cfg.TimeoutMs = 1000
	cfg.ImageTimeoutMs = 60000
	m := newTestManager(client, WithTimeouts(cfg))
	ctx := context.Background()
	require.NoError(t, m.EnsureSession(ctx, domain.PersonaPest, testProfile(), domain.LangEnglish))

	_, err := m.SendTurn(ctx, domain.Turn{Text: "hi"})
	require.NoError(t, err)
	_, err = m.SendTurn(ctx, domain.Turn{Image: &domain.Image{Data: []byte{1}, MIMEType: "image/png"}})
	require.NoError(t, err)

	require.Len(t, deadlines, 2)
	assert.LessOrEqual(t, deadlines[0], time.Second)
	assert.Greater(t, deadlines[1], 30*time.Second)
}

func TestManager_SendTurn_CallerCancellation(t *testing.T) {
	client := &fakeClient{reply: func(ctx context.Context, _ []llm.Part) (*llm.SendResponse, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	m := newTestManager(client)
	require.NoError(t, m.EnsureSession(context.Background(), domain.PersonaWeather, testProfile(), domain.LangEnglish))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := m.SendTurn(ctx, domain.Turn{Text: "rain?"})

	assert.ErrorIs(t, err, ErrService)
	assert.NotErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateEmpty, m.State())
}

func TestManager_SendTurn_RejectsConcurrentTurn(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	client := &fakeClient{reply: func(context.Context, []llm.Part) (*llm.SendResponse, error) {
		close(entered)
		<-release
		return &llm.SendResponse{Text: "first"}, nil
	}}
	m := newTestManager(client)
	ctx := context.Background()
	require.NoError(t, m.EnsureSession(ctx, domain.PersonaAgriculture, testProfile(), domain.LangEnglish))

	done := make(chan error, 1)
	go func() {
		_, err := m.SendTurn(ctx, domain.Turn{Text: "first"})
		done <- err
	}()
	<-entered

	_, err := m.SendTurn(ctx, domain.Turn{Text: "second"})
	assert.ErrorIs(t, err, ErrTurnInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, StateActive, m.State())
}

func TestManager_ResetDuringFlightIsNotUndone(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	client := &fakeClient{reply: func(context.Context, []llm.Part) (*llm.SendResponse, error) {
		first := false
		once.Do(func() { first = true })
		if !first {
			return &llm.SendResponse{Text: "fresh"}, nil
		}
		close(entered)
		<-release
		return nil, errors.New("late failure")
	}}
	m := newTestManager(client)
	ctx := context.Background()
	require.NoError(t, m.EnsureSession(ctx, domain.PersonaAgriculture, testProfile(), domain.LangEnglish))

	done := make(chan error, 1)
	go func() {
		_, err := m.SendTurn(ctx, domain.Turn{Text: "slow"})
		done <- err
	}()
	<-entered

	// Switching persona mid-flight binds a new conversation immediately.
	require.NoError(t, m.EnsureSession(ctx, domain.PersonaPest, testProfile(), domain.LangEnglish))
	close(release)
	assert.ErrorIs(t, <-done, ErrService)

	assert.Equal(t, StateActive, m.State())
	assert.Equal(t, domain.PersonaPest, m.Persona())
	reply, err := m.SendTurn(ctx, domain.Turn{Text: "now"})
	require.NoError(t, err)
	assert.Equal(t, "fresh", reply)
}

func TestManager_Reset(t *testing.T) {
	client := &fakeClient{}
	m := newTestManager(client)
	ctx := context.Background()
	require.NoError(t, m.EnsureSession(ctx, domain.PersonaAgriculture, testProfile(), domain.LangEnglish))

	m.Reset()

	assert.Equal(t, StateEmpty, m.State())
	assert.Empty(t, m.Instruction())
	require.NoError(t, m.EnsureSession(ctx, domain.PersonaAgriculture, testProfile(), domain.LangEnglish))
	assert.Equal(t, 2, client.started())
}

func TestManager_Exchange_ImageOnlyTurn(t *testing.T) {
	var got []llm.Part
	client := &fakeClient{reply: func(_ context.Context, parts []llm.Part) (*llm.SendResponse, error) {
		got = parts
		return &llm.SendResponse{Text: "Early blight."}, nil
	}}
	m := newTestManager(client)
	img := &domain.Image{Data: []byte{0xff, 0xd8, 0xff}, MIMEType: "image/jpeg"}

	reply, err := m.Exchange(context.Background(), domain.PersonaPest, testProfile(), domain.LangEnglish, domain.Turn{Image: img})

	require.NoError(t, err)
	assert.Equal(t, "Early blight.", reply)
	require.Len(t, got, 1)
	assert.True(t, got[0].IsInline())
	assert.Equal(t, "image/jpeg", got[0].MIMEType)
}

func TestManager_Exchange_EmptyTurnSkipsSession(t *testing.T) {
	client := &fakeClient{}
	m := newTestManager(client)

	_, err := m.Exchange(context.Background(), domain.PersonaPest, testProfile(), domain.LangEnglish, domain.Turn{})

	assert.ErrorIs(t, err, ErrEmptyTurn)
	assert.Equal(t, 0, client.started())
}

func TestParts_Order(t *testing.T) {
	img := &domain.Image{Data: []byte{1, 2}, MIMEType: "image/png"}

	parts := Parts(domain.Turn{Text: "what is this?", Image: img})
	require.Len(t, parts, 2)
	assert.Equal(t, "what is this?", parts[0].Text)
	assert.False(t, parts[0].IsInline())
	assert.Equal(t, []byte{1, 2}, parts[1].Data)
	assert.Equal(t, "image/png", parts[1].MIMEType)

	textOnly := Parts(domain.Turn{Text: "hi"})
	require.Len(t, textOnly, 1)
	assert.Equal(t, "hi", textOnly[0].Text)
}
