// Package i18n holds the user-facing strings shown around the chat in each
// supported language.
package i18n

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/agrismart/internal/domain"
)

type Key string

const (
	ChooseAssistant Key = "chooseAssistant"
	GovSchemes      Key = "govSchemes"
	TutorialVideos  Key = "tutorialVideos"
	EndChat         Key = "endChat"
	TypeMessage     Key = "typeMessage"
	Thinking        Key = "thinking"
)

var messages = map[Key]domain.LocalizedText{
	ChooseAssistant: {domain.LangEnglish: "Choose Your AI Assistant", domain.LangMarathi: "तुमचा AI सहाय्यक निवडा", domain.LangHindi: "अपना AI सहायक चुनें"},
	GovSchemes:      {domain.LangEnglish: "Government Schemes", domain.LangMarathi: "सरकारी योजना", domain.LangHindi: "सरकारी योजनाएं"},
	TutorialVideos:  {domain.LangEnglish: "Tutorial Videos", domain.LangMarathi: "प्रशिक्षण व्हिडिओ", domain.LangHindi: "ट्यूटोरियल वीडियो"},
	EndChat:         {domain.LangEnglish: "Back to Dashboard"},
	TypeMessage:     {domain.LangEnglish: "Type your message..."},
	Thinking:        {domain.LangEnglish: "Thinking..."},
}

var welcome = domain.LocalizedText{
	domain.LangEnglish: "Welcome, %s",
	domain.LangMarathi: "स्वागत आहे, %s",
	domain.LangHindi:   "आपका स्वागत है, %s",
}

// Dashboard card titles.
var assistantTitles = map[domain.Persona]domain.LocalizedText{
	domain.PersonaAgriculture: {domain.LangEnglish: "AI Agriculture Assistance", domain.LangMarathi: "AI कृषी सहाय्य", domain.LangHindi: "AI कृषि सहायता"},
	domain.PersonaPest:        {domain.LangEnglish: "Pest Attacks Assistance", domain.LangMarathi: "कीड हल्ला सहाय्य", domain.LangHindi: "कीट आक्रमण सहायता"},
	domain.PersonaBuyer:       {domain.LangEnglish: "Buyer Assistance", domain.LangMarathi: "खरेदीदार सहाय्य", domain.LangHindi: "क्रेता सहायता"},
	domain.PersonaWeather:     {domain.LangEnglish: "Weather Assistant", domain.LangMarathi: "हवामान सहाय्यक", domain.LangHindi: "मौसम सहायक"},
}

// Chat header titles. English wording differs slightly from the cards.
var chatTitles = map[domain.Persona]domain.LocalizedText{
	domain.PersonaAgriculture: {domain.LangEnglish: "AI Agriculture Assistant", domain.LangMarathi: "AI कृषी सहाय्य", domain.LangHindi: "AI कृषि सहायता"},
	domain.PersonaPest:        {domain.LangEnglish: "Pest Attacks Assistant", domain.LangMarathi: "कीड हल्ला सहाय्य", domain.LangHindi: "कीट आक्रमण सहायता"},
	domain.PersonaBuyer:       {domain.LangEnglish: "Buyer Assistance", domain.LangMarathi: "खरेदीदार सहाय्य", domain.LangHindi: "क्रेता सहायता"},
	domain.PersonaWeather:     {domain.LangEnglish: "Weather Assistant", domain.LangMarathi: "हवामान सहाय्यक", domain.LangHindi: "मौसम सहायक"},
}

// T returns the string for key in lang, falling back to English.
func T(lang domain.Language, key Key) string {
	if text, ok := messages[key]; ok {
		return text.In(lang)
	}
	return string(key)
}

// Welcome greets name in lang.
func Welcome(lang domain.Language, name string) string {
	return fmt.Sprintf(welcome.In(lang), strings.TrimSpace(name))
}

// AssistantTitle is the dashboard title of persona in lang.
func AssistantTitle(lang domain.Language, p domain.Persona) string {
	if text, ok := assistantTitles[p]; ok {
		return text.In(lang)
	}
	return string(p)
}

// ChatTitle is the chat header of persona in lang.
func ChatTitle(lang domain.Language, p domain.Persona) string {
	if text, ok := chatTitles[p]; ok {
		return text.In(lang)
	}
	return string(p)
}
