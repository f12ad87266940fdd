package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownPersona is returned when a persona string is outside the closed set.
	ErrUnknownPersona = errors.New("unknown persona")

	// ErrUnknownLanguage is returned when a language code is outside the closed set.
	ErrUnknownLanguage = errors.New("unknown language")
)

type Persona string

const (
	PersonaAgriculture Persona = "agriculture"
	PersonaPest        Persona = "pest"
	PersonaBuyer       Persona = "buyer"
	PersonaWeather     Persona = "weather"
)

// Personas lists every persona in dashboard order.
var Personas = []Persona{PersonaAgriculture, PersonaPest, PersonaBuyer, PersonaWeather}

// ParsePersona converts user input into a Persona. Matching is case-insensitive.
func ParsePersona(s string) (Persona, error) {
	p := Persona(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPersona, s)
	}
	return p, nil
}

func (p Persona) Valid() bool {
	switch p {
	case PersonaAgriculture, PersonaPest, PersonaBuyer, PersonaWeather:
		return true
	}
	return false
}

func (p Persona) String() string { return string(p) }

type Language string

const (
	LangEnglish Language = "en"
	LangMarathi Language = "mr"
	LangHindi   Language = "hi"
)

// Languages lists every supported language.
var Languages = []Language{LangEnglish, LangMarathi, LangHindi}

// ParseLanguage converts a language code into a Language. Matching is case-insensitive.
func ParseLanguage(s string) (Language, error) {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
	}
	return l, nil
}

func (l Language) Valid() bool {
	switch l {
	case LangEnglish, LangMarathi, LangHindi:
		return true
	}
	return false
}

// Name returns the English name of the language, as used in model directives.
// Returns "" for an invalid language.
func (l Language) Name() string {
	switch l {
	case LangEnglish:
		return "English"
	case LangMarathi:
		return "Marathi"
	case LangHindi:
		return "Hindi"
	}
	return ""
}

// NativeName returns the language name written in its own script.
func (l Language) NativeName() string {
	switch l {
	case LangEnglish:
		return "English"
	case LangMarathi:
		return "मराठी"
	case LangHindi:
		return "हिन्दी"
	}
	return ""
}

func (l Language) String() string { return string(l) }

type MessageRole string

const (
	RoleUser MessageRole = "user"
	RoleBot  MessageRole = "bot"
)
