package domain

// LocalizedText maps a language to its rendering.
type LocalizedText map[Language]string

// In returns the text for lang, falling back to English.
func (t LocalizedText) In(lang Language) string {
	if s, ok := t[lang]; ok && s != "" {
		return s
	}
	return t[LangEnglish]
}

type TutorialVideo struct {
	ID          int
	Title       LocalizedText
	Description LocalizedText
	YouTubeID   string
	Tags        []string
}

// HasTag reports whether the video is tagged with tag.
func (v TutorialVideo) HasTag(tag string) bool {
	for _, t := range v.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// URL returns the watch URL of the video.
func (v TutorialVideo) URL() string {
	return "https://www.youtube.com/watch?v=" + v.YouTubeID
}

type GovernmentScheme struct {
	Title       LocalizedText
	Description LocalizedText
	Link        string
}
