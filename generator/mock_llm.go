package generator

import (
	"context"
	"strings"
)

// MockLLM returns a canned story without calling any service. The JSON is
// wrapped in prose and a fenced block, the way chatty models answer.
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	var sb strings.Builder
	sb.WriteString("Hier ist dein Story-Entwurf:\n\n")
	sb.WriteString("```json\n")
	if strings.Contains(prompt.User, "7-Tage-Plan") {
		sb.WriteString(mockWeekPlan)
	} else {
		sb.WriteString(mockStory)
	}
	sb.WriteString("\n```\n")
	sb.WriteString("Viel Erfolg beim Posten!")
	return sb.String(), nil
}

const mockStory = `{
  "title_hook": "Du bist nicht allein",
  "viral_score": 72,
  "slides": [
    {"slide_no": 1, "headline": "Erkenne das Muster", "body": "Wenn du ständig an dir zweifelst, lohnt ein zweiter Blick.", "sticker_suggestion": "Umfrage: Kennst du das?", "visual_suggestion": "ruhiges Blau, Spiegel-Symbol"},
    {"slide_no": 2, "headline": "Dein Gefühl zählt", "body": "Was du erlebt hast, ist real.", "sticker_suggestion": "Fragen-Sticker", "visual_suggestion": "warmes Licht"},
    {"headline": "Ein kleiner Schritt", "body": "Schreib dir heute einen Satz auf, der dir guttut.", "sticker_suggestion": "Slider", "visual_suggestion": "Notizbuch"}
  ],
  "caption_variants": ["Du bist nicht verrückt. Du bist müde vom Zweifeln.", "Klarheit beginnt bei dir."],
  "cta_options": ["Speicher dir das", "Teile es mit jemandem", "Schreib mir KLARHEIT"],
  "poll_or_question": {"type": "poll", "prompt": "Kennst du das Gefühl?", "options": ["Ja", "Nein"]},
  "hashtags": ["Selbstwert", "Grenzen", "#Heilung"],
  "safety_note": "Keine Diagnose. Bei akuter Gefahr bitte Hilfe holen."
}`

const mockWeekPlan = `{
  "week_theme": "Zurück zu dir",
  "days": [
    {"day": "Tag 1", "goal": "Validierung", "topic": "Gaslighting", "hook": "Du bist nicht verrückt", "slides_outline": ["Muster", "Gefühl", "Schritt"], "interaction": "Umfrage", "cta": "Speichern"},
    {"day": "Tag 2", "goal": "Aufklärung", "topic": "Grenzen", "hook": "Nein ist ein Satz", "slides_outline": ["Beispiel", "Satz", "Übung"], "interaction": "Frage", "cta": "Teilen"}
  ],
  "safety_note": "Keine Diagnose."
}`
