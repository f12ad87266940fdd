package repository

import (
	"context"

	"github.com/alexanderramin/agrismart/internal/domain"
)

type AccountRepo interface {
	Create(ctx context.Context, a *domain.Account) error
	GetByMobile(ctx context.Context, mobile string) (*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
}

// ActiveUserRepo stores which account is logged in on this machine.
type ActiveUserRepo interface {
	// Get returns the logged-in mobile number, or ErrNotFound when nobody is.
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, mobile string) error
	Clear(ctx context.Context) error
}

// MessageRepo stores the chat transcript.
type MessageRepo interface {
	Append(ctx context.Context, m *domain.ChatMessage) error
	// ListRecent returns up to limit of the newest messages, oldest first.
	ListRecent(ctx context.Context, mobile string, persona domain.Persona, limit int) ([]*domain.ChatMessage, error)
	DeleteByUser(ctx context.Context, mobile string) (int64, error)
}
