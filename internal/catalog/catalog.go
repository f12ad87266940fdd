// Package catalog holds the static government-scheme and tutorial-video
// catalog. It is read-only and loaded once.
package catalog

import "github.com/alexanderramin/agrismart/internal/domain"

// Catalog is an immutable view over schemes and videos.
type Catalog struct {
	schemes []domain.GovernmentScheme
	videos  []domain.TutorialVideo
}

// New builds a Catalog from the given entries. The slices are copied.
func New(schemes []domain.GovernmentScheme, videos []domain.TutorialVideo) *Catalog {
	return &Catalog{
		schemes: append([]domain.GovernmentScheme(nil), schemes...),
		videos:  append([]domain.TutorialVideo(nil), videos...),
	}
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return New(defaultSchemes, defaultVideos)
}

func (c *Catalog) Schemes() []domain.GovernmentScheme {
	return append([]domain.GovernmentScheme(nil), c.schemes...)
}

func (c *Catalog) Videos() []domain.TutorialVideo {
	return append([]domain.TutorialVideo(nil), c.videos...)
}

// VideosTagged returns the videos carrying tag, in catalog order.
func (c *Catalog) VideosTagged(tag string) []domain.TutorialVideo {
	var out []domain.TutorialVideo
	for _, v := range c.videos {
		if v.HasTag(tag) {
			out = append(out, v)
		}
	}
	return out
}

// VideoByID looks up a video by its numeric id.
func (c *Catalog) VideoByID(id int) (domain.TutorialVideo, bool) {
	for _, v := range c.videos {
		if v.ID == id {
			return v, true
		}
	}
	return domain.TutorialVideo{}, false
}
