package export

import (
	"fmt"
	"strings"

	"story_generator/generator"
)

// Text is the plain-text export. The viral variant uses the sectioned layout
// with score and engagement tips.
func Text(content generator.StoryContent, v generator.Variant) string {
	if v == generator.VariantViral {
		return viralText(content)
	}
	return standardText(content)
}

func standardText(c generator.StoryContent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "HOOK: %s\n\n", c.Hook)
	for _, s := range c.Slides {
		fmt.Fprintf(&b, "--- SLIDE %d ---\n", s.Index)
		fmt.Fprintln(&b, s.Headline)
		fmt.Fprintln(&b, s.Body)
		fmt.Fprintf(&b, "[Sticker] %s\n", s.StickerSuggestion)
		fmt.Fprintf(&b, "[Visual] %s\n\n", s.VisualSuggestion)
	}
	b.WriteString("CAPTIONS:\n")
	for _, caption := range c.CaptionVariants {
		fmt.Fprintf(&b, "- %s\n", caption)
	}
	b.WriteString("\nCTA:\n")
	for _, cta := range c.CTAOptions {
		fmt.Fprintf(&b, "- %s\n", cta)
	}
	writeInteraction(&b, c.Interaction, "\nINTERAKTION:\n")
	fmt.Fprintf(&b, "\nHASHTAGS:\n%s\n", Hashtags(c.Hashtags))
	fmt.Fprintf(&b, "\nSAFETY:\n%s\n", safetyNote(c.SafetyNote))
	return b.String()
}

func viralText(c generator.StoryContent) string {
	wide := strings.Repeat("=", 50)
	narrow := strings.Repeat("=", 30)
	section := func(b *strings.Builder, title string) {
		fmt.Fprintf(b, "\n%s\n%s\n%s\n", narrow, title, narrow)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n🔥 VIRAL INSTAGRAM STORY - EXPORT\n%s\n", wide, wide)
	fmt.Fprintf(&b, "\n🎯 HOOK: %s\n", c.Hook)
	fmt.Fprintf(&b, "📈 VIRAL SCORE: %s/100\n", score(c.ViralScore))

	section(&b, "🎬 STORY SLIDES")
	for _, s := range c.Slides {
		fmt.Fprintf(&b, "\n--- SLIDE %d ---\n", s.Index)
		fmt.Fprintf(&b, "📌 %s\n", s.Headline)
		fmt.Fprintln(&b, s.Body)
		fmt.Fprintf(&b, "🎯 Engagement-Tipp: %s\n", s.EngagementTip)
		fmt.Fprintf(&b, "🔄 Sticker: %s\n", s.StickerSuggestion)
		fmt.Fprintf(&b, "🎨 Visual: %s\n", s.VisualSuggestion)
	}

	section(&b, "📝 CAPTION VARIANTS")
	for i, caption := range c.CaptionVariants {
		fmt.Fprintf(&b, "\nVariante %d: %s\n", i+1, caption)
	}

	section(&b, "🎯 CTA OPTIONS")
	for _, cta := range c.CTAOptions {
		fmt.Fprintf(&b, "• %s\n", cta)
	}

	if c.Interaction != nil {
		section(&b, "📊 INTERAKTION")
		writeInteraction(&b, c.Interaction, "")
	}
	if len(c.ViralTechniques) > 0 {
		section(&b, "🚀 VIRAL-TECHNIKEN")
		for _, t := range c.ViralTechniques {
			fmt.Fprintf(&b, "• %s\n", t)
		}
	}
	section(&b, "#️⃣ HASHTAGS")
	fmt.Fprintln(&b, Hashtags(c.Hashtags))
	section(&b, "🔒 SICHERHEIT")
	fmt.Fprintln(&b, safetyNote(c.SafetyNote))
	return b.String()
}

func writeInteraction(b *strings.Builder, p *generator.InteractionPrompt, heading string) {
	if p == nil {
		return
	}
	b.WriteString(heading)
	fmt.Fprintf(b, "- Typ: %s\n", p.Type)
	fmt.Fprintf(b, "- Prompt: %s\n", p.Prompt)
	if len(p.Options) > 0 {
		fmt.Fprintf(b, "- Optionen: %s\n", strings.Join(p.Options, ", "))
	}
}

func score(n int) string {
	if n <= 0 {
		return "N/A"
	}
	return fmt.Sprint(n)
}

// WeekPlanText is the plain-text export of a week plan.
func WeekPlanText(plan generator.WeekPlan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "WOCHENTHEMA: %s\n", plan.Theme)
	for _, d := range plan.Days {
		fmt.Fprintf(&b, "\n=== %s ===\n", d.Day)
		fmt.Fprintf(&b, "Ziel: %s\n", d.Goal)
		fmt.Fprintf(&b, "Thema: %s\n", d.Topic)
		fmt.Fprintf(&b, "Hook: %s\n", d.Hook)
		if len(d.SlidesOutline) > 0 {
			b.WriteString("Slides:\n")
			for i, s := range d.SlidesOutline {
				fmt.Fprintf(&b, "  %d. %s\n", i+1, s)
			}
		}
		fmt.Fprintf(&b, "Interaktion: %s\n", d.Interaction)
		fmt.Fprintf(&b, "CTA: %s\n", d.CTA)
	}
	fmt.Fprintf(&b, "\nSAFETY:\n%s\n", safetyNote(plan.SafetyNote))
	return b.String()
}
