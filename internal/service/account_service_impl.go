package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/agrismart/internal/db"
	"github.com/alexanderramin/agrismart/internal/domain"
	"github.com/alexanderramin/agrismart/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type accountService struct {
	accounts repository.AccountRepo
	active   repository.ActiveUserRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
	hashCost int
}

func NewAccountService(
	accounts repository.AccountRepo,
	active repository.ActiveUserRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) AccountService {
	return &accountService{
		accounts: accounts,
		active:   active,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		hashCost: bcrypt.DefaultCost,
	}
}

func (s *accountService) Register(ctx context.Context, profile domain.UserProfile, password string) (registered *domain.UserProfile, err error) {
	defer s.observe(ctx, "register", time.Now(), map[string]any{"mobile": profile.Mobile}, &err)

	profile = trimProfile(profile)
	if err = profile.Validate(); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	acct := &domain.Account{
		UserProfile:  profile,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteAccountRepo(tx).Create(ctx, acct); err != nil {
			return err
		}
		return repository.NewSQLiteActiveUserRepo(tx).Set(ctx, acct.Mobile)
	})
	if err != nil {
		return nil, fmt.Errorf("registering %s: %w", profile.Mobile, err)
	}
	return &acct.UserProfile, nil
}

func (s *accountService) Login(ctx context.Context, mobile, password string) (profile *domain.UserProfile, err error) {
	defer s.observe(ctx, "login", time.Now(), map[string]any{"mobile": mobile}, &err)

	acct, err := s.accounts.GetByMobile(ctx, strings.TrimSpace(mobile))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err = bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if err = s.active.Set(ctx, acct.Mobile); err != nil {
		return nil, err
	}
	return &acct.UserProfile, nil
}

func (s *accountService) Logout(ctx context.Context) error {
	return s.active.Clear(ctx)
}

func (s *accountService) Current(ctx context.Context) (*domain.UserProfile, error) {
	mobile, err := s.active.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotLoggedIn
		}
		return nil, err
	}
	return s.Lookup(ctx, mobile)
}

func (s *accountService) Lookup(ctx context.Context, mobile string) (*domain.UserProfile, error) {
	acct, err := s.accounts.GetByMobile(ctx, mobile)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownUser, mobile)
		}
		return nil, err
	}
	return &acct.UserProfile, nil
}

func (s *accountService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, errp *error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   *errp == nil,
		Err:       *errp,
		Fields:    fields,
	})
}

func trimProfile(p domain.UserProfile) domain.UserProfile {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	p.Mobile = strings.TrimSpace(p.Mobile)
	p.Country = strings.TrimSpace(p.Country)
	p.State = strings.TrimSpace(p.State)
	p.District = strings.TrimSpace(p.District)
	p.Tashil = strings.TrimSpace(p.Tashil)
	return p
}
