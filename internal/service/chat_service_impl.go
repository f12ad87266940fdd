package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/agrismart/internal/chat"
	"github.com/alexanderramin/agrismart/internal/db"
	"github.com/alexanderramin/agrismart/internal/domain"
	"github.com/alexanderramin/agrismart/internal/repository"
)

type chatService struct {
	sessions *chat.Registry
	messages repository.MessageRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewChatService(
	sessions *chat.Registry,
	messages repository.MessageRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ChatService {
	return &chatService{
		sessions: sessions,
		messages: messages,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *chatService) Send(ctx context.Context, req SendRequest) (reply string, err error) {
	startedAt := time.Now()
	fields := map[string]any{
		"persona":  string(req.Persona),
		"language": string(req.Language),
		"image":    req.Turn.HasImage(),
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "chat-turn",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if err = req.Turn.Validate(); err != nil {
		return "", err
	}

	askedAt := time.Now().UTC()
	manager := s.sessions.Get(req.Profile.Mobile)
	reply, err = manager.Exchange(ctx, req.Persona, req.Profile, req.Language, req.Turn)

	var derr *chat.DispatchError
	botText := reply
	switch {
	case err == nil:
	case errors.As(err, &derr):
		botText = derr.Error()
		fields["kind"] = derr.Kind.Error()
	default:
		// Rejected before dispatch: nothing was said.
		return "", err
	}

	userMsg := &domain.ChatMessage{
		Mobile:    req.Profile.Mobile,
		Persona:   req.Persona,
		Role:      domain.RoleUser,
		Language:  req.Language,
		Text:      req.Turn.Text,
		CreatedAt: askedAt,
	}
	if req.Turn.HasImage() {
		userMsg.ImageMIME = req.Turn.Image.MIMEType
	}
	botMsg := &domain.ChatMessage{
		Mobile:    req.Profile.Mobile,
		Persona:   req.Persona,
		Role:      domain.RoleBot,
		Language:  req.Language,
		Text:      botText,
		CreatedAt: time.Now().UTC(),
	}
	if recErr := s.record(ctx, userMsg, botMsg); recErr != nil {
		if err == nil {
			err = recErr
		}
		return "", err
	}
	if err != nil {
		return "", err
	}
	return reply, nil
}

func (s *chatService) record(ctx context.Context, msgs ...*domain.ChatMessage) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteMessageRepo(tx)
		for _, m := range msgs {
			if err := repo.Append(ctx, m); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *chatService) End(mobile string) {
	s.sessions.Remove(mobile)
}

func (s *chatService) History(ctx context.Context, mobile string, persona domain.Persona, limit int) ([]*domain.ChatMessage, error) {
	if !persona.Valid() {
		return nil, domain.ErrUnknownPersona
	}
	return s.messages.ListRecent(ctx, mobile, persona, limit)
}

func (s *chatService) ClearHistory(ctx context.Context, mobile string) (int64, error) {
	return s.messages.DeleteByUser(ctx, mobile)
}
