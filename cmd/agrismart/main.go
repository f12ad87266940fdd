package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alexanderramin/agrismart/internal/catalog"
	"github.com/alexanderramin/agrismart/internal/chat"
	"github.com/alexanderramin/agrismart/internal/cli"
	"github.com/alexanderramin/agrismart/internal/config"
	"github.com/alexanderramin/agrismart/internal/db"
	"github.com/alexanderramin/agrismart/internal/llm"
	"github.com/alexanderramin/agrismart/internal/prompt"
	"github.com/alexanderramin/agrismart/internal/repository"
	"github.com/alexanderramin/agrismart/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	if serving() {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	slog.SetDefault(logger)

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	accountRepo := repository.NewSQLiteAccountRepo(database)
	activeRepo := repository.NewSQLiteActiveUserRepo(database)
	messageRepo := repository.NewSQLiteMessageRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	// Wire the model client. A missing key only fails chat turns.
	var observer llm.Observer = llm.NoopObserver{}
	switch {
	case serving():
		observer = llm.NewSlogObserver(logger)
	case cfg.LLM.LogCalls:
		observer = llm.NewLogObserver(os.Stderr)
	}
	client, err := llm.NewClient(context.Background(), cfg.LLM, observer)
	if err != nil {
		logger.Warn("model service not configured", "provider", cfg.LLM.Provider, "error", err)
		client = unconfiguredClient{provider: cfg.LLM.Provider, err: err}
	}

	cat := catalog.Default()
	composer := prompt.NewComposer(cat)
	registry := chat.NewRegistry(func() *chat.Manager {
		return chat.NewManager(composer, client,
			chat.WithTimeouts(cfg.LLM),
			chat.WithLogger(logger),
		)
	})

	var useCaseObserver service.UseCaseObserver = service.NewSlogUseCaseObserver(logger)
	if cfg.LLM.LogCalls && !serving() {
		useCaseObserver = service.NewLogUseCaseObserver(os.Stderr)
	}

	app := &cli.App{
		Accounts: service.NewAccountService(accountRepo, activeRepo, uow, useCaseObserver),
		Chat:     service.NewChatService(registry, messageRepo, uow, useCaseObserver),
		Catalog:  cat,
		Composer: composer,
		Registry: registry,
		Config:   cfg,
		Logger:   logger,
	}
	if home, err := os.UserHomeDir(); err == nil {
		app.HistoryPath = filepath.Join(home, ".agrismart", "chat_history")
	}

	// Detect interactive terminal for forms and the full-screen chat.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

func serving() bool {
	return len(os.Args) > 1 && os.Args[1] == "serve"
}

// unconfiguredClient reports the construction error on every new chat.
type unconfiguredClient struct {
	provider llm.Provider
	err      error
}

func (c unconfiguredClient) StartChat(context.Context, string) (llm.Conversation, error) {
	return nil, c.err
}

func (c unconfiguredClient) Provider() llm.Provider { return c.provider }
