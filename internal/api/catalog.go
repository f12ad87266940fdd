package api

import (
	"net/http"
	"strings"

	"github.com/alexanderramin/agrismart/internal/domain"
)

type videoResponse struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	YouTubeID   string   `json:"youtube_id"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
}

type schemeResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// ListVideos handles GET /api/catalog/videos?lang=&tag=.
func (h *Handler) ListVideos(w http.ResponseWriter, r *http.Request) {
	lang, err := h.language(r, "")
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	videos := h.catalog.Videos()
	if tag := strings.TrimSpace(r.URL.Query().Get("tag")); tag != "" {
		videos = h.catalog.VideosTagged(tag)
	}

	out := make([]videoResponse, 0, len(videos))
	for _, v := range videos {
		out = append(out, videoResponse{
			ID:          v.ID,
			Title:       v.Title.In(lang),
			Description: v.Description.In(lang),
			YouTubeID:   v.YouTubeID,
			URL:         v.URL(),
			Tags:        v.Tags,
		})
	}
	JSON(w, http.StatusOK, out)
}

// ListSchemes handles GET /api/catalog/schemes?lang=.
func (h *Handler) ListSchemes(w http.ResponseWriter, r *http.Request) {
	lang, err := h.language(r, "")
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	schemes := h.catalog.Schemes()
	out := make([]schemeResponse, 0, len(schemes))
	for _, s := range schemes {
		out = append(out, schemeResponse{
			Title:       s.Title.In(lang),
			Description: s.Description.In(lang),
			Link:        s.Link,
		})
	}
	JSON(w, http.StatusOK, out)
}

func personaParam(raw string) (domain.Persona, error) {
	return domain.ParsePersona(raw)
}
