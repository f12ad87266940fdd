package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/agrismart/internal/domain"
	"github.com/alexanderramin/agrismart/internal/i18n"
)

const replyWrapWidth = 88

// FormatChatHeader renders the title bar of a chat with persona in lang.
func FormatChatHeader(persona domain.Persona, lang domain.Language) string {
	title := PersonaIcon(persona) + "  " + PersonaStyle(persona).Bold(true).Render(i18n.ChatTitle(lang, persona))
	hint := Dim(fmt.Sprintf("[%s]  /image <path>  /persona <name>  /lang <code>  /new  /quit", lang.NativeName()))
	return title + "\n" + hint + "\n"
}

// FormatUserTurn echoes what the farmer sent.
func FormatUserTurn(text, imageName string) string {
	var parts []string
	if imageName != "" {
		parts = append(parts, StylePurple.Render("[image: "+imageName+"]"))
	}
	if strings.TrimSpace(text) != "" {
		parts = append(parts, StyleFg.Render(text))
	}
	return StyleBold.Render("you") + Dim(" › ") + strings.Join(parts, " ")
}

// FormatReply renders a model reply verbatim, wrapped and indented.
func FormatReply(persona domain.Persona, reply string) string {
	return PersonaStyle(persona).Render(string(persona)) + Dim(" ›") + "\n" +
		IndentWrapped(reply, 2, replyWrapWidth)
}

// FormatFailure renders a user-visible dispatch failure.
func FormatFailure(err error) string {
	return StyleRed.Render("✖ " + err.Error())
}

// FormatNotice renders an informational line such as a persona switch.
func FormatNotice(text string) string {
	return Dim("· " + text)
}

// FormatHistory renders transcript lines oldest first.
func FormatHistory(persona domain.Persona, msgs []*domain.ChatMessage, now time.Time) string {
	if len(msgs) == 0 {
		return Dim("No messages yet.") + "\n"
	}
	var b strings.Builder
	b.WriteString(Header("History: " + string(persona)))
	b.WriteString("\n")
	for _, m := range msgs {
		who := StyleBold.Render("you")
		if m.Role == domain.RoleBot {
			who = PersonaStyle(persona).Render(string(persona))
		}
		stamp := Dim(fmt.Sprintf("%s · %s", HumanTimestamp(m.CreatedAt, now), m.Language))
		b.WriteString(fmt.Sprintf("%s  %s\n", who, stamp))
		text := m.Text
		if m.ImageMIME != "" {
			text = strings.TrimSpace("[" + m.ImageMIME + "] " + text)
		}
		b.WriteString(IndentWrapped(text, 2, replyWrapWidth))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatProfile renders a registered profile.
func FormatProfile(p *domain.UserProfile) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s\n", Dim("Name    "), Bold(p.Name)))
	b.WriteString(fmt.Sprintf("%s  %s\n", Dim("Mobile  "), p.Mobile))
	if p.Email != "" {
		b.WriteString(fmt.Sprintf("%s  %s\n", Dim("Email   "), p.Email))
	}
	b.WriteString(fmt.Sprintf("%s  %s", Dim("Location"), p.Location()))
	return RenderBox("Profile", b.String())
}
