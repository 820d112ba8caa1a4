// Package render draws story records for the terminal.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"story_generator/export"
	"story_generator/generator"
)

// Story renders a decoded record. width is the terminal width; zero means a
// fixed default.
func Story(c generator.StoryContent, v generator.Variant, width int) string {
	w := boxWidth(width)
	var b strings.Builder

	title := styleTitle
	if v == generator.VariantViral {
		title = title.Foreground(colorViral)
	}
	b.WriteString(title.Render("🎯 " + c.Hook))
	b.WriteString("\n")
	if v == generator.VariantViral {
		if c.ViralScore > 0 {
			b.WriteString(styleScore.Render(fmt.Sprintf("📈 Viral Score: %d/100", c.ViralScore)))
		} else {
			b.WriteString(styleMuted.Render("📈 Viral Score: N/A"))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, s := range c.Slides {
		lines := []string{
			styleHeading.Render(fmt.Sprintf("Slide %d · %s", s.Index, s.Headline)),
			s.Body,
		}
		if s.EngagementTip != "" {
			lines = append(lines, "", "🎯 "+s.EngagementTip)
		}
		lines = append(lines,
			"",
			styleMuted.Render("Sticker: "+s.StickerSuggestion),
			styleMuted.Render("Visual:  "+s.VisualSuggestion),
		)
		b.WriteString(styleBox.Width(w).Render(strings.Join(lines, "\n")))
		b.WriteString("\n")
	}

	writeList(&b, "📝 Captions", c.CaptionVariants)
	writeList(&b, "👉 CTA", c.CTAOptions)
	if p := c.Interaction; p != nil {
		b.WriteString("\n" + styleHeading.Render("📊 Interaktion") + "\n")
		fmt.Fprintf(&b, "%s: %s\n", p.Type, p.Prompt)
		for _, o := range p.Options {
			fmt.Fprintf(&b, "  ○ %s\n", o)
		}
	}
	if v == generator.VariantViral {
		writeList(&b, "🚀 Viral-Techniken", c.ViralTechniques)
	}
	if tags := export.Hashtags(c.Hashtags); tags != "" {
		b.WriteString("\n" + styleHeading.Render("#️⃣ Hashtags") + "\n" + tags + "\n")
	}

	note := c.SafetyNote
	if strings.TrimSpace(note) == "" {
		note = export.DefaultSafetyNote
	}
	b.WriteString("\n")
	b.WriteString(styleBox.Width(w).BorderForeground(colorSuccess).Render("🔒 " + note))
	b.WriteString("\n")
	return b.String()
}

// WeekPlan renders the seven-day plan, one box per day.
func WeekPlan(plan generator.WeekPlan, width int) string {
	w := boxWidth(width)
	var b strings.Builder
	b.WriteString(styleTitle.Render("🗓  " + plan.Theme))
	b.WriteString("\n\n")
	for _, d := range plan.Days {
		lines := []string{
			styleHeading.Render(d.Day + " · " + d.Topic),
			"Ziel: " + d.Goal,
			"Hook: " + d.Hook,
		}
		for i, s := range d.SlidesOutline {
			lines = append(lines, fmt.Sprintf("  %d. %s", i+1, s))
		}
		lines = append(lines,
			styleMuted.Render("Interaktion: "+d.Interaction),
			styleMuted.Render("CTA: "+d.CTA),
		)
		b.WriteString(styleBox.Width(w).Render(strings.Join(lines, "\n")))
		b.WriteString("\n")
	}
	if plan.SafetyNote != "" {
		b.WriteString("\n🔒 " + plan.SafetyNote + "\n")
	}
	return b.String()
}

// DecodeFailure shows why the response could not be parsed together with the
// raw model text so the user can salvage it by hand.
func DecodeFailure(err *generator.DecodeError, width int) string {
	w := boxWidth(width)
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(colorError).Bold(true).Render("Antwort konnte nicht als JSON gelesen werden"))
	b.WriteString("\n")
	b.WriteString(styleMuted.Render("Grund: " + string(err.Reason)))
	b.WriteString("\n\n")
	raw := err.RawText
	if strings.TrimSpace(raw) == "" {
		raw = "(leere Antwort)"
	}
	b.WriteString(styleBox.Width(w).BorderForeground(colorError).Render(raw))
	b.WriteString("\n")
	return b.String()
}

// Error renders any generation error with suggestions derived from the
// message. Decode failures are shown with their raw text.
func Error(err error, width int) string {
	if err == nil {
		return ""
	}
	var decErr *generator.DecodeError
	if errors.As(err, &decErr) {
		return DecodeFailure(decErr, width)
	}

	w := boxWidth(width)
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(colorError).Bold(true).Render("Fehler bei der Generierung"))
	b.WriteString("\n\n")
	b.WriteString(styleBox.Width(w).BorderForeground(colorError).Render(err.Error()))
	b.WriteString("\n")
	if s := Suggestions(err); len(s) > 0 {
		b.WriteString("\n")
		b.WriteString(styleBox.Width(w).Render("Tipps:\n" + strings.Join(s, "\n")))
		b.WriteString("\n")
	}
	return b.String()
}

// Suggestions returns hints for common failure causes.
func Suggestions(err error) []string {
	var valErr *generator.ValidationError
	if errors.As(err, &valErr) {
		return []string{fmt.Sprintf("Prüfe das Feld %q im Formular", valErr.Field)}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key") || strings.Contains(msg, "401") || strings.Contains(msg, "unauthorized"):
		return []string{
			"Setze OPENAI_API_KEY in der Umgebung oder in .env",
			"Oder trage llm.api_key in config/config.yaml ein",
		}
	case strings.Contains(msg, "rate limit") || strings.Contains(msg, "429"):
		return []string{
			"Das API-Limit ist erreicht",
			"Warte kurz und versuche es erneut",
		}
	case strings.Contains(msg, "connection") || strings.Contains(msg, "connect") ||
		strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline"):
		return []string{
			"Prüfe deine Internetverbindung",
			"Oder starte mit -mock für einen Offline-Test",
		}
	case strings.Contains(msg, "model"):
		return []string{"Wähle ein anderes Modell aus dem Katalog"}
	}
	return nil
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString("\n" + styleHeading.Render(title) + "\n")
	for _, item := range items {
		fmt.Fprintf(b, "• %s\n", item)
	}
}
