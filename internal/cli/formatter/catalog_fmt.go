package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/agrismart/internal/domain"
	"github.com/alexanderramin/agrismart/internal/i18n"
)

const catalogWrapWidth = 72

// FormatVideos renders the tutorial videos in lang.
func FormatVideos(lang domain.Language, videos []domain.TutorialVideo) string {
	if len(videos) == 0 {
		return Dim("No videos found.") + "\n"
	}
	rows := make([][]string, 0, len(videos))
	for _, v := range videos {
		rows = append(rows, []string{
			strconv.Itoa(v.ID),
			v.Title.In(lang),
			StyleBlue.Render(v.URL()),
			Dim(strings.Join(v.Tags, ", ")),
		})
	}
	return Header(i18n.T(lang, i18n.TutorialVideos)) + "\n" +
		RenderTable([]string{"ID", "TITLE", "LINK", "TAGS"}, rows)
}

// FormatSchemes renders the government schemes in lang.
func FormatSchemes(lang domain.Language, schemes []domain.GovernmentScheme) string {
	var b strings.Builder
	b.WriteString(Header(i18n.T(lang, i18n.GovSchemes)))
	b.WriteString("\n")
	for _, s := range schemes {
		b.WriteString("\n")
		b.WriteString("  " + Bold(s.Title.In(lang)) + "\n")
		b.WriteString(Dim(IndentWrapped(s.Description.In(lang), 2, catalogWrapWidth)) + "\n")
		b.WriteString("  " + StyleBlue.Render(s.Link) + "\n")
	}
	return b.String()
}

// FormatDashboard renders the landing screen: greeting, assistants, schemes
// and videos.
func FormatDashboard(lang domain.Language, name string, schemes []domain.GovernmentScheme, videos []domain.TutorialVideo) string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render(i18n.Welcome(lang, name)))
	b.WriteString("\n\n")

	b.WriteString(Header(i18n.T(lang, i18n.ChooseAssistant)))
	b.WriteString("\n")
	for _, p := range domain.Personas {
		b.WriteString(fmt.Sprintf("  %s  %s  %s\n",
			PersonaIcon(p),
			PersonaStyle(p).Render(i18n.AssistantTitle(lang, p)),
			Dim("agrismart chat --persona "+string(p)),
		))
	}
	b.WriteString("\n")
	b.WriteString(FormatSchemes(lang, schemes))
	b.WriteString("\n")
	b.WriteString(FormatVideos(lang, videos))
	return b.String()
}
