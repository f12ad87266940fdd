package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/agrismart/internal/domain"
)

var testMobileCounter atomic.Int64

// Profile options
type ProfileOption func(*domain.UserProfile)

func WithMobile(m string) ProfileOption {
	return func(p *domain.UserProfile) {
		p.Mobile = m
	}
}

func WithEmail(e string) ProfileOption {
	return func(p *domain.UserProfile) {
		p.Email = e
	}
}

func WithLocation(tashil, district, state string) ProfileOption {
	return func(p *domain.UserProfile) {
		p.Tashil = tashil
		p.District = district
		p.State = state
	}
}

// NewTestProfile returns a complete profile in Haveli, Pune with a unique
// mobile number.
func NewTestProfile(name string, opts ...ProfileOption) domain.UserProfile {
	p := domain.UserProfile{
		Name:     name,
		Mobile:   fmt.Sprintf("98%08d", testMobileCounter.Add(1)),
		Country:  "India",
		State:    "Maharashtra",
		District: "Pune",
		Tashil:   "Haveli",
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// NewTestAccount wraps a test profile in an account with a placeholder hash.
func NewTestAccount(name string, opts ...ProfileOption) *domain.Account {
	return &domain.Account{
		UserProfile:  NewTestProfile(name, opts...),
		PasswordHash: "$2a$04$placeholderplaceholderplaceholderplaceholderplacehol",
		CreatedAt:    time.Now().UTC(),
	}
}

// NewTestMessage builds a transcript line for account mobile.
func NewTestMessage(mobile string, persona domain.Persona, role domain.MessageRole, text string) *domain.ChatMessage {
	return &domain.ChatMessage{
		Mobile:    mobile,
		Persona:   persona,
		Role:      role,
		Language:  domain.LangEnglish,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
}
