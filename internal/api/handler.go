// Package api exposes the chat, account and catalog operations over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexanderramin/agrismart/internal/catalog"
	"github.com/alexanderramin/agrismart/internal/chat"
	"github.com/alexanderramin/agrismart/internal/domain"
	"github.com/alexanderramin/agrismart/internal/repository"
	"github.com/alexanderramin/agrismart/internal/service"
)

// maxBodyBytes bounds request bodies; an inline image is the largest payload.
const maxBodyBytes = 12 << 20

// Handler carries the dependencies shared by all routes.
type Handler struct {
	accounts    service.AccountService
	chat        service.ChatService
	catalog     *catalog.Catalog
	defaultLang domain.Language
	logger      *slog.Logger
}

// NewHandler creates a Handler. A nil logger discards.
func NewHandler(accounts service.AccountService, chatSvc service.ChatService, cat *catalog.Catalog, defaultLang domain.Language, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if !defaultLang.Valid() {
		defaultLang = domain.LangEnglish
	}
	return &Handler{
		accounts:    accounts,
		chat:        chatSvc,
		catalog:     cat,
		defaultLang: defaultLang,
		logger:      logger,
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeServiceError maps service and domain errors onto HTTP statuses.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, chat.ErrTransport):
		JSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error(), "kind": "transport"})
	case errors.Is(err, chat.ErrService):
		JSON(w, http.StatusBadGateway, map[string]string{"error": err.Error(), "kind": "service"})
	case errors.Is(err, chat.ErrTurnInFlight), errors.Is(err, chat.ErrNoSession):
		Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, chat.ErrEmptyTurn),
		errors.Is(err, domain.ErrUnknownPersona),
		errors.Is(err, domain.ErrUnknownLanguage),
		errors.Is(err, domain.ErrInvalidProfile),
		errors.Is(err, service.ErrPasswordRequired):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrDuplicate):
		Error(w, http.StatusConflict, "a user with this mobile number or email already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrUnknownUser):
		Error(w, http.StatusUnauthorized, err.Error())
	default:
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		Error(w, http.StatusInternalServerError, "internal error")
	}
}

// language resolves the ?lang= query parameter, or the default when absent.
func (h *Handler) language(r *http.Request, fromBody string) (domain.Language, error) {
	raw := fromBody
	if raw == "" {
		raw = r.URL.Query().Get("lang")
	}
	if raw == "" {
		return h.defaultLang, nil
	}
	return domain.ParseLanguage(raw)
}
