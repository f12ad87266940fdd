package api

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/agrismart/internal/domain"
	"github.com/alexanderramin/agrismart/internal/service"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
)

type turnRequest struct {
	Text     string `json:"text"`
	Image    string `json:"image,omitempty"` // base64, optionally as a data URL
	MIMEType string `json:"mime_type,omitempty"`
	Language string `json:"language,omitempty"`
}

type turnResponse struct {
	Reply    string `json:"reply"`
	Persona  string `json:"persona"`
	Language string `json:"language"`
}

type messageResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Language  string    `json:"language"`
	Text      string    `json:"text"`
	ImageMIME string    `json:"image_mime,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SendTurn handles POST /api/chat/{persona}/turns.
func (h *Handler) SendTurn(w http.ResponseWriter, r *http.Request) {
	profile, _ := ProfileFromContext(r.Context())

	persona, err := personaParam(chi.URLParam(r, "persona"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	var req turnRequest
	if err := decodeJSON(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	lang, err := h.language(r, req.Language)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	image, err := decodeImage(req.Image, req.MIMEType)
	if err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	reply, err := h.chat.Send(r.Context(), service.SendRequest{
		Profile:  profile,
		Persona:  persona,
		Language: lang,
		Turn:     domain.Turn{Text: req.Text, Image: image},
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, turnResponse{Reply: reply, Persona: string(persona), Language: string(lang)})
}

// EndChat handles DELETE /api/chat.
func (h *Handler) EndChat(w http.ResponseWriter, r *http.Request) {
	profile, _ := ProfileFromContext(r.Context())
	h.chat.End(profile.Mobile)
	w.WriteHeader(http.StatusNoContent)
}

// History handles GET /api/chat/{persona}/history?limit=.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	profile, _ := ProfileFromContext(r.Context())

	persona, err := personaParam(chi.URLParam(r, "persona"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			Error(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	msgs, err := h.chat.History(r.Context(), profile.Mobile, persona, limit)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	out := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, messageResponse{
			ID:        m.ID,
			Role:      string(m.Role),
			Language:  string(m.Language),
			Text:      m.Text,
			ImageMIME: m.ImageMIME,
			CreatedAt: m.CreatedAt,
		})
	}
	JSON(w, http.StatusOK, out)
}

// decodeImage turns the wire image into bytes plus MIME type. The type comes
// from a data URL prefix, then the explicit field, then content sniffing.
func decodeImage(raw, mimeType string) (*domain.Image, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if rest, ok := strings.CutPrefix(raw, "data:"); ok {
		header, payload, found := strings.Cut(rest, ",")
		if !found || !strings.HasSuffix(header, ";base64") {
			return nil, fmt.Errorf("image data URL must be base64 encoded")
		}
		if mimeType == "" {
			mimeType = strings.TrimSuffix(header, ";base64")
		}
		raw = payload
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("image is not valid base64")
	}
	if len(data) == 0 {
		return nil, nil
	}
	if mimeType == "" {
		mimeType = mimetype.Detect(data).String()
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, fmt.Errorf("unsupported image type %q", mimeType)
	}
	return &domain.Image{Data: data, MIMEType: mimeType}, nil
}
