package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/agrismart/internal/catalog"
	"github.com/alexanderramin/agrismart/internal/chat"
	"github.com/alexanderramin/agrismart/internal/config"
	"github.com/alexanderramin/agrismart/internal/domain"
	"github.com/alexanderramin/agrismart/internal/prompt"
	"github.com/alexanderramin/agrismart/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds references to the services used by CLI commands.
type App struct {
	Accounts service.AccountService
	Chat     service.ChatService
	Catalog  *catalog.Catalog
	Composer *prompt.Composer

	// Registry and Config are only needed by serve.
	Registry *chat.Registry
	Config   *config.Config
	Logger   *slog.Logger

	// HistoryPath persists chat input lines. Empty keeps them in memory.
	HistoryPath string

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool

	// Now is the clock used for relative timestamps. Nil means time.Now.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) defaultLanguage() domain.Language {
	if a.Config != nil && a.Config.DefaultLanguage.Valid() {
		return a.Config.DefaultLanguage
	}
	return domain.LangEnglish
}

// currentUser returns the logged-in profile with a hint when nobody is.
func (a *App) currentUser(ctx context.Context) (*domain.UserProfile, error) {
	p, err := a.Accounts.Current(ctx)
	if errors.Is(err, service.ErrNotLoggedIn) {
		return nil, fmt.Errorf("%w: run 'agrismart login' or 'agrismart register' first", err)
	}
	return p, err
}

// NewRootCmd creates the top-level "agrismart" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "agrismart",
		Short:         "Multilingual farming assistants in your terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("lang", "l", string(app.defaultLanguage()), "language: en, mr or hi")

	root.AddCommand(
		newRegisterCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoAmICmd(app),
		newDashboardCmd(app),
		newChatCmd(app),
		newPromptCmd(app),
		newVideosCmd(app),
		newSchemesCmd(app),
		newHistoryCmd(app),
		newServeCmd(app),
	)

	return root
}

// languageFlag parses the persistent --lang flag.
func languageFlag(fs *pflag.FlagSet) (domain.Language, error) {
	raw, err := fs.GetString("lang")
	if err != nil {
		return "", err
	}
	return domain.ParseLanguage(raw)
}
