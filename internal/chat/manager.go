package chat

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/agrismart/internal/domain"
	"github.com/alexanderramin/agrismart/internal/llm"
)

// State is the session lifecycle state of a Manager.
type State int

const (
	StateEmpty State = iota
	StateActive
)

func (s State) String() string {
	if s == StateActive {
		return "active"
	}
	return "empty"
}

// InstructionComposer builds the system instruction for a session.
type InstructionComposer interface {
	Compose(persona domain.Persona, profile domain.UserProfile, lang domain.Language) (string, error)
}

// sessionKey is everything the instruction depends on. Any change rebinds the session.
type sessionKey struct {
	persona domain.Persona
	profile domain.UserProfile
	lang    domain.Language
}

// Manager owns one user's conversation with the model service. It is either
// Empty (no conversation) or Active (a conversation bound to one composed
// instruction). Every failed dispatch drops it back to Empty.
type Manager struct {
	composer InstructionComposer
	client   llm.ChatClient
	timeout  func(withImage bool) time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu          sync.Mutex
	conv        llm.Conversation
	key         sessionKey
	instruction string
	generation  uint64
	inFlight    bool
	lastUsed    time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithTimeouts takes per-turn dispatch timeouts from cfg.
func WithTimeouts(cfg llm.LLMConfig) Option {
	return func(m *Manager) { m.timeout = cfg.Timeout }
}

// WithTimeout uses a fixed dispatch timeout for every turn.
func WithTimeout(d time.Duration) Option {
	return func(m *Manager) {
		m.timeout = func(bool) time.Duration { return d }
	}
}

// WithLogger sets the logger used for dispatch failures.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager creates an Empty Manager.
func NewManager(composer InstructionComposer, client llm.ChatClient, opts ...Option) *Manager {
	m := &Manager{
		composer: composer,
		client:   client,
		timeout:  llm.DefaultConfig().Timeout,
		logger:   slog.New(slog.DiscardHandler),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.lastUsed = m.now()
	return m
}

// EnsureSession makes the manager Active for (persona, profile, lang). It is a
// no-op when already Active for the same inputs; otherwise any existing
// conversation is discarded, even one with a turn in flight, and a fresh one
// is created from a newly composed instruction.
func (m *Manager) EnsureSession(ctx context.Context, persona domain.Persona, profile domain.UserProfile, lang domain.Language) error {
	key := sessionKey{persona: persona, profile: profile, lang: lang}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastUsed = m.now()

	if m.conv != nil && m.key == key {
		return nil
	}
	if m.conv != nil {
		m.logger.Debug("rebinding chat session",
			slog.String("from", string(m.key.persona)),
			slog.String("to", string(persona)))
	}
	m.discardLocked()

	instruction, err := m.composer.Compose(persona, profile, lang)
	if err != nil {
		return err
	}
	conv, err := m.client.StartChat(ctx, instruction)
	if err != nil {
		derr := classify(err)
		m.logger.Warn("chat session start failed",
			slog.String("persona", string(persona)),
			slog.String("kind", derr.Kind.Error()),
			slog.String("cause", err.Error()))
		return derr
	}

	m.conv = conv
	m.key = key
	m.instruction = instruction
	return nil
}

// SendTurn dispatches turn to the active conversation and returns the reply
// verbatim. Failures discard the conversation and come back as a
// *DispatchError wrapping ErrTransport or ErrService. There is no retry.
func (m *Manager) SendTurn(ctx context.Context, turn domain.Turn) (string, error) {
	if err := turn.Validate(); err != nil {
		return "", err
	}

	m.mu.Lock()
	if m.conv == nil {
		m.mu.Unlock()
		return "", ErrNoSession
	}
	if m.inFlight {
		m.mu.Unlock()
		return "", ErrTurnInFlight
	}
	m.inFlight = true
	m.lastUsed = m.now()
	gen := m.generation
	conv := m.conv
	persona := m.key.persona
	m.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, m.timeout(turn.HasImage()))
	defer cancel()
	resp, err := conv.Send(ctx, Parts(turn))

	m.mu.Lock()
	// A reset or rebind during the call owns the state now.
	if m.generation == gen {
		m.inFlight = false
		m.lastUsed = m.now()
		if err != nil {
			m.discardLocked()
		}
	}
	m.mu.Unlock()

	if err != nil {
		derr := classify(err)
		m.logger.Warn("chat turn failed",
			slog.String("persona", string(persona)),
			slog.Bool("image", turn.HasImage()),
			slog.String("kind", derr.Kind.Error()),
			slog.String("cause", err.Error()))
		return "", derr
	}
	return resp.Text, nil
}

// Exchange is EnsureSession followed by SendTurn. An empty turn is rejected
// before any session work.
func (m *Manager) Exchange(ctx context.Context, persona domain.Persona, profile domain.UserProfile, lang domain.Language, turn domain.Turn) (string, error) {
	if err := turn.Validate(); err != nil {
		return "", err
	}
	if err := m.EnsureSession(ctx, persona, profile, lang); err != nil {
		return "", err
	}
	return m.SendTurn(ctx, turn)
}

// Reset forces the manager to Empty.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.discardLocked()
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conv == nil {
		return StateEmpty
	}
	return StateActive
}

// Instruction returns the instruction bound to the active conversation, or "".
func (m *Manager) Instruction() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.instruction
}

// Persona returns the persona of the active conversation, or "".
func (m *Manager) Persona() domain.Persona {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.key.persona
}

// LastUsed returns when the manager last accepted a call.
func (m *Manager) LastUsed() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastUsed
}

func (m *Manager) touch() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastUsed = m.now()
}

func (m *Manager) busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inFlight
}

func (m *Manager) discardLocked() {
	m.conv = nil
	m.key = sessionKey{}
	m.instruction = ""
	m.inFlight = false
	m.generation++
}

// Parts orders a turn for dispatch: text first when present, then the image.
func Parts(turn domain.Turn) []llm.Part {
	parts := make([]llm.Part, 0, 2)
	if turn.HasText() {
		parts = append(parts, llm.TextPart(turn.Text))
	}
	if turn.HasImage() {
		parts = append(parts, llm.ImagePart(turn.Image.Data, turn.Image.MIMEType))
	}
	return parts
}
