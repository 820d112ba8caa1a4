package generator

import (
	"fmt"
	"strings"
)

// Prompt is everything sent to the completion service for one call.
type Prompt struct {
	System      string
	User        string
	Model       string
	Temperature float64
	// MaxTokens of zero leaves the limit to the service.
	MaxTokens int
	// JSON asks the service for a json_object response.
	JSON bool
}

// BuildStoryPrompt assembles system and user instructions for a normalized request.
func BuildStoryPrompt(req GenerationRequest) Prompt {
	p := Prompt{
		Model:     req.Model,
		MaxTokens: req.Variant.MaxTokens(),
		JSON:      true,
	}
	if req.Temperature != nil {
		p.Temperature = *req.Temperature
	}
	if req.Variant == VariantViral {
		p.System = viralSystemPrompt
		p.User = buildViralUserPrompt(req)
	} else {
		p.System = standardSystemPrompt
		p.User = buildStandardUserPrompt(req)
	}
	return p
}

// BuildWeekPlanPrompt assembles the 7-day batch prompt. It always uses the
// standard system instruction.
func BuildWeekPlanPrompt(req GenerationRequest) Prompt {
	var sb strings.Builder
	sb.WriteString("Erstelle einen 7-Tage-Plan für Instagram Stories (deutsch) für einen Kanal: Hilfe bei narzisstischem Missbrauch.\n\n")
	sb.WriteString("Konfiguration:\n")
	sb.WriteString(fmt.Sprintf("- Zielgruppe/Phase: %s\n", req.Stage))
	sb.WriteString(fmt.Sprintf("- Tonalität: %s\n", req.Tone))
	sb.WriteString("- Fokus-Themen (rotierend): Gaslighting, Grenzen, Trauma Bond, Selbstwert, Kontrolle, Schuldumkehr, Heilung\n")
	sb.WriteString(fmt.Sprintf("- CTA-Stil: %s\n", req.CTA))
	sb.WriteString(fmt.Sprintf("- No-Gos: %s\n", req.NoGos))
	sb.WriteString(fmt.Sprintf("- Optionaler Kontext: %s\n\n", styleNotes(req)))
	sb.WriteString("Liefere valides JSON im Schema:\n")
	sb.WriteString(weekPlanSchema)

	p := Prompt{
		System: standardSystemPrompt,
		User:   sb.String(),
		Model:  req.Model,
		JSON:   true,
	}
	if req.Temperature != nil {
		p.Temperature = *req.Temperature
	}
	return p
}

// styleNotes folds the viral-only demographic and posting time choices into
// the free-text context line.
func styleNotes(req GenerationRequest) string {
	if req.Variant != VariantViral {
		return req.StyleNotes
	}
	var parts []string
	if req.StyleNotes != "" {
		parts = append(parts, req.StyleNotes)
	}
	if len(req.Viral.Demographics) > 0 {
		parts = append(parts, "Ziel: "+strings.Join(req.Viral.Demographics, ", "))
	}
	if req.Viral.PostingTime != "" {
		parts = append(parts, "Zeit: "+req.Viral.PostingTime)
	}
	return strings.Join(parts, " | ")
}

func buildStandardUserPrompt(req GenerationRequest) string {
	var sb strings.Builder
	sb.WriteString("Erstelle Instagram-Story-Inhalte in deutscher Sprache für einen Kanal mit Fokus: Hilfe für Betroffene von narzisstischem Missbrauch.\n\n")
	sb.WriteString("KONFIG:\n")
	sb.WriteString(fmt.Sprintf("- Ziel der Story: %s\n", req.Goal))
	sb.WriteString(fmt.Sprintf("- Textart: %s\n", req.Format))
	sb.WriteString(fmt.Sprintf("- Tonalität: %s\n", req.Tone))
	sb.WriteString(fmt.Sprintf("- Phase/Zustand der Zielgruppe: %s\n", req.Stage))
	sb.WriteString(fmt.Sprintf("- Hauptthema: %s\n", req.Topic))
	sb.WriteString(fmt.Sprintf("- Sensibilität/Trigger: %s\n", req.Sensitivity))
	sb.WriteString(fmt.Sprintf("- Länge pro Slide: %d\n", req.SlideLength))
	sb.WriteString(fmt.Sprintf("- Anzahl Slides: %d\n", req.SlideCount))
	sb.WriteString(fmt.Sprintf("- CTA/Interaktion: %s\n", req.CTA))
	sb.WriteString(fmt.Sprintf("- Tabu-Wörter/No-Gos: %s\n", req.NoGos))
	sb.WriteString(fmt.Sprintf("- Optionaler Kontext (Channel-Style, spezielle Situation): %s\n\n", req.StyleNotes))
	sb.WriteString("ANFORDERUNGEN:\n")
	sb.WriteString("1) Liefere ein JSON mit diesem Schema:\n")
	sb.WriteString(fmt.Sprintf(standardSchema, req.SlideLength))
	sb.WriteString("\n2) Achte darauf:\n")
	sb.WriteString("- Keine Täter-Labels/Diagnosen als Fakt. Keine Schuldumkehr. Keine Eskalations-Tipps.\n")
	sb.WriteString("- Konkrete, sichere Mikro-Schritte (z.B. Grenzen, Dokumentation für sich, Unterstützung suchen, Selbstfürsorge).\n")
	sb.WriteString("- Variation: nicht jede Slide gleich starten; ein klarer Gedanke pro Slide.\n")
	sb.WriteString("- Für die Zielgruppe passend: validierend, stärkend, handlungsfähig.\n\n")
	sb.WriteString("3) Wenn 'Sensibilität/Trigger' hoch ist: sanfter, vorsichtiger Ton, Hinweis auf Unterstützung.\n\n")
	sb.WriteString("Jetzt generieren.")
	return sb.String()
}

func buildViralUserPrompt(req GenerationRequest) string {
	notes := styleNotes(req)
	if notes == "" {
		notes = "Emojis sinnvoll einsetzen • Kurze Zeilen • Direkte Ansprache • Konkrete Beispiele"
	}

	var sb strings.Builder
	sb.WriteString("ERSTELLE VIRALE INSTAGRAM-STORY CONTENT mit maximalem Engagement-Potential!\n\n")
	sb.WriteString("🔥 VIRALE STRATEGIE:\n")
	sb.WriteString("- Slide 1: EMOTIONALER HOOK (muss zum Weiterscrollen zwingen)\n")
	sb.WriteString("- Slide 2-3: PROBLEM-VERSTÄNDNIS (Identifikation schaffen)\n")
	sb.WriteString("- Slide 4-5: LÖSUNGS-IMPULS (klarer Mehrwert)\n")
	sb.WriteString("- Slide 6+: INTERAKTIONS-PUSH (Community-Bindung)\n\n")
	sb.WriteString("📊 CONTENT-KONFIGURATION:\n")
	sb.WriteString(fmt.Sprintf("• Ziel: %s + Engagement-Boost\n", req.Goal))
	sb.WriteString(fmt.Sprintf("• Format: %s\n", req.Format))
	sb.WriteString(fmt.Sprintf("• Ton: %s + emotionale Tiefe\n", req.Tone))
	sb.WriteString(fmt.Sprintf("• Zielgruppe: %s (genau treffen!)\n", req.Stage))
	sb.WriteString(fmt.Sprintf("• Fokus: %s\n", req.Topic))
	sb.WriteString(fmt.Sprintf("• Sensibilität: %s (entsprechend anpassen)\n", req.Sensitivity))
	sb.WriteString(fmt.Sprintf("• Slides: %d (jede muss Wert liefern)\n", req.SlideCount))
	sb.WriteString(fmt.Sprintf("• CTA: %s (maximale Interaktion)\n\n", req.CTA))
	sb.WriteString("🚀 VIRALE ELEMENTE EINBAUEN:\n")
	sb.WriteString("1. KURIOSITÄTSLÜCKEN (Curiosity Gaps)\n")
	sb.WriteString("2. EMOTIONALE IDENTIFIKATION (\"Kennst du das?\")\n")
	sb.WriteString("3. ÜBERRASCHUNGS-MOMENTE (unerwartete Einsichten)\n")
	sb.WriteString("4. GEMEINSCHAFTSGEFÜHL (\"Wir sind viele\")\n")
	sb.WriteString("5. KLARE HANDLUNGSIMPULSE (mikro-Aktionen)\n\n")
	sb.WriteString(fmt.Sprintf("⚠️ TABUS: %s\n\n", req.NoGos))
	sb.WriteString(fmt.Sprintf("💡 STYLE-TIPPS: %s\n\n", notes))
	sb.WriteString("📝 OUTPUT-FORMAT (STRENG EINHALTEN):\n")
	sb.WriteString(fmt.Sprintf(viralSchema, req.SlideLength))
	sb.WriteString("\nJETZT: Erstelle den engagiertesten Content, den Instagram je gesehen hat!\n\n")

	sb.WriteString("ZUSÄTZLICHE VIRAL-KONFIG:\n")
	sb.WriteString(fmt.Sprintf("• Dringlichkeit: %d/10\n", req.Viral.Urgency))
	sb.WriteString(fmt.Sprintf("• Emotion: %d/10\n", req.Viral.Emotion))
	sb.WriteString(fmt.Sprintf("• Viral-Elemente: %s\n", strings.Join(req.Viral.Elements, ", ")))
	sb.WriteString(fmt.Sprintf("FOKUS: %s mit %s für Zielgruppe in %s\n", req.Goal, req.Topic, req.Stage))
	sb.WriteString("MACH DIESEN CONTENT UNVERGESSLICH!")
	return sb.String()
}

const standardSystemPrompt = "Du bist ein erfahrener Social-Media-Redakteur und Trauma-informierter Content-Stratege " +
	"für einen Instagram-Kanal, der Betroffene von narzisstischem Missbrauch unterstützt. " +
	"Du formulierst empathisch, klar, nicht reißerisch, ohne Diagnosen oder medizinische/therapeutische Anweisungen. " +
	"Du vermeidest gefährliche oder eskalierende Ratschläge (z.B. Konfrontationspläne, Rache, Stalking, Manipulation). " +
	"Du nutzt eine respektvolle Sprache: 'narzisstische Muster', 'emotionaler Missbrauch', 'Kontrolle', 'Gaslighting'. " +
	"Du gibst keine Rechts- oder Therapieanweisungen, sondern alltagstaugliche, sichere Mikro-Schritte und Selbstschutz. " +
	"Wenn sensible Themen vorkommen (Gewalt, Suizid, akute Gefahr), empfiehlst du Hilfe über lokale Notrufnummern/Hotlines. " +
	"Output immer im gewünschten Format als valides JSON."

const viralSystemPrompt = `Du bist ein hochkarätiger Social-Media-Content-Spezialist mit Expertise in Trauma-informierter Kommunikation.

DEINE ROLLE:
- Erstellst viralen, hoch-engagierenden Content für Instagram Stories
- Formulierst sofort süchtig machende Hooks & emotional packende Texte
- Nutzt psychologische Trigger für maximale Interaktion (Neugier, Identifikation, Empowerment)
- Bleibst absolut sicher: Keine Diagnosen, keine Eskalationstipps

FORMAT-RICHTLINIEN:
- Jede Slide hat einen klaren Mehrwert
- Emotionale Achterbahn: Problem → Einsicht → Lösung → Aktion
- Storytelling mit persönlicher Note (ohne zu privat zu sein)
- Zahlen, Emojis und kurze Zeilen für bessere Lesbarkeit

SICHERHEIT:
- Sprache: "narzisstische Dynamiken", "toxische Muster", "emotionaler Schutz"
- Immer empowernd, nie entmündigend
- Bei Hoch-Sensibilität: Sanfter Ton + Hilfsangebote
- Output immer als valides JSON.`

// %d is the slide length.
const standardSchema = `{
  "title_hook": "Sehr kurzer Hook (max 8 Wörter)",
  "slides": [
    {
      "slide_no": 1,
      "headline": "max 7 Wörter",
      "body": "max. %d Zeichen, kurze Zeilen, story-tauglich",
      "sticker_suggestion": "z.B. Umfrage, Fragen-Sticker, Slider, Quiz",
      "visual_suggestion": "z.B. Hintergrundidee / Symbolik / Farben"
    }
  ],
  "caption_variants": ["1-2 Sätze, empathisch, ohne Diagnose, mit CTA", "Alternative"],
  "cta_options": ["Kurzer CTA 1", "Kurzer CTA 2", "Kurzer CTA 3"],
  "poll_or_question": {
    "type": "poll|question|quiz|slider",
    "prompt": "Text",
    "options": ["Option A", "Option B"]
  },
  "hashtags": ["max 12, deutsch, thematisch, nicht zu generisch"],
  "safety_note": "1 Satz: keine Diagnose, bei akuter Gefahr Hilfe holen"
}
`

// %d is the slide length.
const viralSchema = `{
  "title_hook": "🔥 Emotionaler Hook (max 6 Wörter, muss neugierig machen)",
  "viral_score": 85,
  "slides": [
    {
      "slide_no": 1,
      "headline": "📌 Scroll-Stopper (max 5 Wörter)",
      "body": "Max %d Zeichen. Emotional • Persönlich • Wertvoll",
      "engagement_tip": "Warum diese Slide interaktionsstark ist",
      "sticker_suggestion": "Interaktiver Sticker + genaue Formulierung",
      "visual_suggestion": "Hintergrund-Farbe • Symbol • Bild-Idee"
    }
  ],
  "caption_variants": ["🔥 Caption mit Hook + CTA + Frage", "💫 Alternative mit Storytelling"],
  "cta_options": ["📍 Dringender Handlungsimpuls", "🤝 Community-Frage", "💡 Wissens-CTA"],
  "poll_or_question": {
    "type": "poll|question|quiz|slider|emoji_slider",
    "prompt": "Ultra-interaktive Frageformulierung",
    "options": ["Emotional Option A", "Überraschende Option B", "Tiefe Option C"]
  },
  "hashtags": ["Deutsch • Thematisch • Viral • Community"],
  "viral_techniques": ["Liste der verwendeten Viral-Techniken"],
  "safety_note": "🔒 Sicherheitshinweis + Empowerment"
}
`

const weekPlanSchema = `{
  "week_theme": "Titel",
  "days": [
    {
      "day": "Tag 1",
      "goal": "Ziel",
      "topic": "Thema",
      "hook": "max 8 Wörter",
      "slides_outline": ["Slide1 Idee", "Slide2 Idee", "Slide3 Idee", "… max 6"],
      "interaction": "Umfrage/Frage/Quiz/Slider Vorschlag",
      "cta": "kurzer CTA"
    }
  ],
  "safety_note": "1 Satz"
}
`
