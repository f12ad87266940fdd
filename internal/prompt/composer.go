// Package prompt composes the system instruction sent to the model for a
// persona, user profile and language. Composition is pure: the same inputs
// always produce the same string.
package prompt

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/agrismart/internal/catalog"
	"github.com/alexanderramin/agrismart/internal/domain"
)

// personaSpec describes the persona-specific part of an instruction.
// videoTag selects catalog entries for the recommendation appendix; empty
// means no appendix.
type personaSpec struct {
	instruction string
	videoTag    string
}

var personaSpecs = map[domain.Persona]personaSpec{
	domain.PersonaAgriculture: {instruction: agricultureInstruction, videoTag: "agriculture"},
	domain.PersonaPest:        {instruction: pestInstruction, videoTag: "pest"},
	domain.PersonaBuyer:       {instruction: buyerInstruction},
	domain.PersonaWeather:     {instruction: weatherInstruction},
}

// Composer builds system instructions. It is safe for concurrent use.
type Composer struct {
	catalog *catalog.Catalog
}

// NewComposer returns a Composer drawing video titles from cat.
// A nil catalog means no video appendix for any persona.
func NewComposer(cat *catalog.Catalog) *Composer {
	return &Composer{catalog: cat}
}

// Compose returns the full instruction: base, persona extension, optional
// video appendix, then the language directive.
func (c *Composer) Compose(persona domain.Persona, profile domain.UserProfile, lang domain.Language) (string, error) {
	spec, ok := personaSpecs[persona]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownPersona, string(persona))
	}
	if !lang.Valid() {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownLanguage, string(lang))
	}

	sections := []string{
		strings.Replace(baseInstructionTemplate, "%LOCATION%", profile.Location(), 1),
		spec.instruction,
	}
	if appendix := c.videoAppendix(spec.videoTag); appendix != "" {
		sections = append(sections, appendix)
	}
	sections = append(sections, LanguageDirective(lang))

	return strings.Join(sections, "\n\n"), nil
}

// LanguageDirective returns the closing instruction for lang.
func LanguageDirective(lang domain.Language) string {
	return strings.Replace(languageDirectiveTemplate, "%LANGUAGE%", lang.Name(), 1)
}

func (c *Composer) videoAppendix(tag string) string {
	if tag == "" || c.catalog == nil {
		return ""
	}
	videos := c.catalog.VideosTagged(tag)
	if len(videos) == 0 {
		return ""
	}

	lines := make([]string, len(videos))
	for i, v := range videos {
		lines[i] = fmt.Sprintf("- %q", v.Title.In(domain.LangEnglish))
	}
	return strings.Replace(videoAppendixTemplate, "%VIDEOS%", strings.Join(lines, "\n"), 1)
}
