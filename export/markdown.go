package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"story_generator/generator"
)

// Markdown renders the record as a Markdown document.
func Markdown(c generator.StoryContent, v generator.Variant) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", mdLine(c.Hook))
	if v == generator.VariantViral {
		fmt.Fprintf(&b, "**Viral Score:** %s/100\n\n", score(c.ViralScore))
	}

	b.WriteString("## Slides\n\n")
	for _, s := range c.Slides {
		fmt.Fprintf(&b, "### Slide %d: %s\n\n", s.Index, mdLine(s.Headline))
		if s.Body != "" {
			fmt.Fprintf(&b, "%s\n\n", s.Body)
		}
		if s.EngagementTip != "" {
			fmt.Fprintf(&b, "- **Engagement-Tipp:** %s\n", s.EngagementTip)
		}
		fmt.Fprintf(&b, "- **Sticker:** %s\n", s.StickerSuggestion)
		fmt.Fprintf(&b, "- **Visual:** %s\n\n", s.VisualSuggestion)
	}

	writeMarkdownList(&b, "Captions", c.CaptionVariants)
	writeMarkdownList(&b, "CTA", c.CTAOptions)
	if p := c.Interaction; p != nil {
		b.WriteString("## Interaktion\n\n")
		fmt.Fprintf(&b, "- **Typ:** %s\n", p.Type)
		fmt.Fprintf(&b, "- **Prompt:** %s\n", p.Prompt)
		if len(p.Options) > 0 {
			fmt.Fprintf(&b, "- **Optionen:** %s\n", strings.Join(p.Options, ", "))
		}
		b.WriteString("\n")
	}
	writeMarkdownList(&b, "Viral-Techniken", c.ViralTechniques)
	if tags := Hashtags(c.Hashtags); tags != "" {
		// Backticks keep goldmark from reading "#tag" at line start as a heading.
		fmt.Fprintf(&b, "## Hashtags\n\n`%s`\n\n", tags)
	}
	fmt.Fprintf(&b, "> %s\n", safetyNote(c.SafetyNote))
	return b.String()
}

// HTML converts the Markdown export into a standalone HTML page.
func HTML(c generator.StoryContent, v generator.Variant) ([]byte, error) {
	var body bytes.Buffer
	if err := goldmark.Convert([]byte(Markdown(c, v)), &body); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}
	var page bytes.Buffer
	page.WriteString("<!doctype html>\n<html lang=\"de\">\n<head><meta charset=\"utf-8\"><title>Instagram Story</title></head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

func writeMarkdownList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}

func mdLine(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", " ")
}
