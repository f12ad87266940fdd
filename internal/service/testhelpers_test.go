package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/agrismart/internal/catalog"
	"github.com/alexanderramin/agrismart/internal/chat"
	"github.com/alexanderramin/agrismart/internal/llm"
	"github.com/alexanderramin/agrismart/internal/prompt"
	"github.com/alexanderramin/agrismart/internal/repository"
	"github.com/alexanderramin/agrismart/internal/testutil"
	"golang.org/x/crypto/bcrypt"
)

// scriptedClient answers every turn with reply, or fails with err.
type scriptedClient struct {
	mu    sync.Mutex
	reply string
	err   error
	opens int
}

func (c *scriptedClient) Provider() llm.Provider { return "scripted" }

func (c *scriptedClient) StartChat(context.Context, string) (llm.Conversation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opens++
	return c, nil
}

func (c *scriptedClient) Send(context.Context, []llm.Part) (*llm.SendResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	return &llm.SendResponse{Text: c.reply}, nil
}

func (c *scriptedClient) set(reply string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reply, c.err = reply, err
}

type harness struct {
	db       *sql.DB
	accounts AccountService
	chat     ChatService
	registry *chat.Registry
	client   *scriptedClient
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	client := &scriptedClient{reply: "ok"}
	composer := prompt.NewComposer(catalog.Default())
	registry := chat.NewRegistry(func() *chat.Manager { return chat.NewManager(composer, client) })

	accounts := NewAccountService(
		repository.NewSQLiteAccountRepo(database),
		repository.NewSQLiteActiveUserRepo(database),
		uow,
	)
	accounts.(*accountService).hashCost = bcrypt.MinCost

	return &harness{
		db:       database,
		accounts: accounts,
		chat:     NewChatService(registry, repository.NewSQLiteMessageRepo(database), uow),
		registry: registry,
		client:   client,
	}
}
