package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"story_generator/generator"
	"story_generator/render"
)

var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorMuted   = lipgloss.Color("#6B7280")

	styleTitle     = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	styleSelected  = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	styleLabel     = lipgloss.NewStyle().Foreground(colorMuted).Width(16)
	styleStatusBar = lipgloss.NewStyle().Foreground(colorMuted)
)

func (a *App) View() string {
	switch a.view {
	case viewGenerating:
		return a.renderGenerating()
	case viewResult:
		return a.renderResult()
	case viewError:
		return a.renderError()
	default:
		return a.renderForm()
	}
}

func (a *App) renderForm() string {
	var b strings.Builder
	title := "📱 Instagram Story Generator"
	if a.req.Variant == generator.VariantViral {
		title = "🔥 Viral Instagram Story Generator"
	}
	b.WriteString(styleTitle.Render(title))
	b.WriteString("\n\n")

	for i, f := range visibleFields(a.req.Variant) {
		cursor := "  "
		if i == a.cursor {
			cursor = "> "
		}
		var value string
		switch f.key {
		case "no_gos":
			value = a.noGos.View()
		case "style_notes":
			value = a.notes.View()
		default:
			value = "‹ " + fieldValue(a.req, f.key) + " ›"
			if i == a.cursor {
				value = styleSelected.Render(value)
			}
		}
		b.WriteString(cursor + styleLabel.Render(f.label) + value + "\n")
	}

	b.WriteString("\n")
	b.WriteString(styleStatusBar.Render(fmt.Sprintf("API-Calls: %d", a.session.Usage().APICalls)))
	b.WriteString("\n")
	b.WriteString(styleStatusBar.Render("[↑/↓] Feld  [←/→] Wert  [Enter] Story  [Ctrl+W] 7-Tage-Plan  [Esc] Beenden"))
	return b.String()
}

func (a *App) renderGenerating() string {
	what := "Story"
	if a.lastPlan {
		what = "7-Tage-Plan"
	}
	return styleTitle.Render("⏳ Generiere "+what+"…") + "\n\n" +
		styleStatusBar.Render("Modell: "+a.request().Model)
}

func (a *App) renderResult() string {
	var b strings.Builder
	b.WriteString(a.viewport.View())
	b.WriteString("\n")
	if a.status != "" {
		b.WriteString(a.status)
		b.WriteString("\n")
	}
	help := "[t/j/c/m/h] Speichern  [r] Nochmal  [n] Neu  [Ctrl+C] Beenden"
	if a.plan != nil {
		help = "[t/j] Speichern  [r] Nochmal  [n] Neu  [Ctrl+C] Beenden"
	}
	b.WriteString(styleStatusBar.Render(fmt.Sprintf("API-Calls: %d  %s", a.session.Usage().APICalls, help)))
	return b.String()
}

func (a *App) renderError() string {
	var b strings.Builder
	b.WriteString(render.Error(a.lastErr, a.width))
	b.WriteString("\n")
	b.WriteString(styleStatusBar.Render("[r] Nochmal  [Esc] Zurück  [Ctrl+C] Beenden"))
	return b.String()
}
