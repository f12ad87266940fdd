package service

import (
	"context"

	"github.com/alexanderramin/agrismart/internal/domain"
)

type AccountService interface {
	// Register creates an account and logs it in.
	Register(ctx context.Context, profile domain.UserProfile, password string) (*domain.UserProfile, error)
	Login(ctx context.Context, mobile, password string) (*domain.UserProfile, error)
	Logout(ctx context.Context) error
	// Current returns the logged-in profile or ErrNotLoggedIn.
	Current(ctx context.Context) (*domain.UserProfile, error)
	// Lookup returns a registered profile by mobile number or ErrUnknownUser.
	Lookup(ctx context.Context, mobile string) (*domain.UserProfile, error)
}

// SendRequest is one chat turn from a user.
type SendRequest struct {
	Profile  domain.UserProfile
	Persona  domain.Persona
	Language domain.Language
	Turn     domain.Turn
}

type ChatService interface {
	// Send runs the turn through the user's session and records both sides
	// of the exchange. Dispatch failures are recorded as a bot line carrying
	// the user-visible message.
	Send(ctx context.Context, req SendRequest) (string, error)
	// End discards the user's session.
	End(mobile string)
	History(ctx context.Context, mobile string, persona domain.Persona, limit int) ([]*domain.ChatMessage, error)
	ClearHistory(ctx context.Context, mobile string) (int64, error)
}
