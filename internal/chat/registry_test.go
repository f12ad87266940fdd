package chat

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/agrismart/internal/domain"
	"github.com/alexanderramin/agrismart/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_IsolatesUsers(t *testing.T) {
	client := &fakeClient{}
	reg := NewRegistry(func() *Manager { return newTestManager(client) })
	ctx := context.Background()

	a := reg.Get("9000000001")
	b := reg.Get("9000000002")
	assert.NotSame(t, a, b)
	assert.Same(t, a, reg.Get("9000000001"))

	require.NoError(t, a.EnsureSession(ctx, domain.PersonaPest, testProfile(), domain.LangEnglish))
	assert.Equal(t, StateActive, a.State())
	assert.Equal(t, StateEmpty, b.State())
	assert.Equal(t, 2, reg.Len())
}

func TestRegistry_Lookup(t *testing.T) {
	reg := NewRegistry(func() *Manager { return newTestManager(&fakeClient{}) })

	_, ok := reg.Lookup("nobody")
	assert.False(t, ok)
	assert.Equal(t, 0, reg.Len())

	reg.Get("someone")
	_, ok = reg.Lookup("someone")
	assert.True(t, ok)
}

func TestRegistry_RemoveResetsManager(t *testing.T) {
	reg := NewRegistry(func() *Manager { return newTestManager(&fakeClient{}) })
	m := reg.Get("u1")
	require.NoError(t, m.EnsureSession(context.Background(), domain.PersonaBuyer, testProfile(), domain.LangEnglish))

	reg.Remove("u1")

	assert.Equal(t, StateEmpty, m.State())
	assert.Equal(t, 0, reg.Len())
}

func TestRegistry_SweepEvictsIdleManagers(t *testing.T) {
	reg := NewRegistry(func() *Manager { return newTestManager(&fakeClient{}) })
	reg.Get("u1")
	reg.Get("u2")

	assert.Equal(t, 0, reg.Sweep(time.Hour))

	reg.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	assert.Equal(t, 2, reg.Sweep(time.Hour))
	assert.Equal(t, 0, reg.Len())
}

func TestRegistry_SweepKeepsBusyManagers(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	client := &fakeClient{reply: func(context.Context, []llm.Part) (*llm.SendResponse, error) {
		close(entered)
		<-release
		return &llm.SendResponse{Text: "ok"}, nil
	}}
	reg := NewRegistry(func() *Manager { return newTestManager(client) })
	m := reg.Get("u1")
	ctx := context.Background()
	require.NoError(t, m.EnsureSession(ctx, domain.PersonaWeather, testProfile(), domain.LangEnglish))

	done := make(chan struct{})
	go func() {
		m.SendTurn(ctx, domain.Turn{Text: "rain?"})
		close(done)
	}()
	<-entered

	reg.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	assert.Equal(t, 0, reg.Sweep(time.Hour))

	close(release)
	<-done
	assert.Equal(t, 1, reg.Sweep(time.Hour))
}

func TestRegistry_StartSweeper(t *testing.T) {
	reg := NewRegistry(func() *Manager { return newTestManager(&fakeClient{}) })
	reg.Get("u1")
	reg.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reg.StartSweeper(ctx, time.Hour, 5*time.Millisecond, nil)

	assert.Eventually(t, func() bool { return reg.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestRegistry_GetKeepsManagerFromSweep(t *testing.T) {
	clock := time.Now()
	reg := NewRegistry(func() *Manager {
		m := newTestManager(&fakeClient{})
		m.now = func() time.Time { return clock }
		return m
	})
	reg.now = func() time.Time { return clock }
	m := reg.Get("u1")

	clock = clock.Add(2 * time.Hour)
	assert.Same(t, m, reg.Get("u1"))

	assert.Equal(t, 0, reg.Sweep(time.Hour))
	got, ok := reg.Lookup("u1")
	require.True(t, ok)
	assert.Same(t, m, got)
}
