package generator

// OptionSet lists the allowed values of one enumerated form field.
// Default is an index into Values.
type OptionSet struct {
	Label   string   `json:"label"`
	Values  []string `json:"values"`
	Default int      `json:"default"`
}

// DefaultValue returns the preselected value.
func (o OptionSet) DefaultValue() string {
	if o.Default < 0 || o.Default >= len(o.Values) {
		return ""
	}
	return o.Values[o.Default]
}

// Contains reports whether v is one of the allowed values.
func (o OptionSet) Contains(v string) bool {
	for _, x := range o.Values {
		if x == v {
			return true
		}
	}
	return false
}

// Catalogue is the full option set of one variant's form.
type Catalogue struct {
	Variant       Variant   `json:"variant"`
	Goal          OptionSet `json:"goal"`
	Format        OptionSet `json:"format"`
	Tone          OptionSet `json:"tone"`
	Stage         OptionSet `json:"stage"`
	Topic         OptionSet `json:"topic"`
	Sensitivity   OptionSet `json:"sensitivity"`
	CTA           OptionSet `json:"cta"`
	SlideLengths  []int     `json:"slide_lengths"`
	DefaultLength int       `json:"default_length"`
	MinSlides     int       `json:"min_slides"`
	MaxSlides     int       `json:"max_slides"`
	DefaultSlides int       `json:"default_slides"`
	DefaultNoGos  string    `json:"default_no_gos"`

	// viral only
	ViralElements OptionSet `json:"viral_elements,omitempty"`
	Demographics  OptionSet `json:"demographics,omitempty"`
	PostingTimes  OptionSet `json:"posting_times,omitempty"`
}

// ModelGroup is one category of the model picker.
type ModelGroup struct {
	Name   string   `json:"name"`
	Models []string `json:"models"`
}

// DefaultModel is used when neither request nor config names a model.
const DefaultModel = "gpt-4o-mini"

// Models returns the model picker, grouped by cost/quality.
func Models() []ModelGroup {
	return []ModelGroup{
		{Name: "Kosteneffizient", Models: []string{"gpt-4o-mini", "gpt-4.1-mini"}},
		{Name: "Hochwertig", Models: []string{"gpt-4o", "gpt-4.1"}},
		{Name: "Schnell", Models: []string{"gpt-3.5-turbo"}},
	}
}

// KnownModel reports whether id appears in the model picker.
func KnownModel(id string) bool {
	for _, g := range Models() {
		for _, m := range g.Models {
			if m == id {
				return true
			}
		}
	}
	return false
}

// CatalogueFor returns the option catalogue of the given variant.
func CatalogueFor(v Variant) Catalogue {
	if v == VariantViral {
		return viralCatalogue
	}
	return standardCatalogue
}

var standardCatalogue = Catalogue{
	Variant: VariantStandard,
	Goal: OptionSet{
		Label: "Ziel der Story",
		Values: []string{
			"Validierung & Entlastung (Du bist nicht verrückt)",
			"Aufklärung (Muster erkennen: Gaslighting, Silent Treatment, Triangulation)",
			"Selbstschutz (Grenzen, Abstand, No-Contact/Low-Contact Prinzipien ohne Anleitung zur Eskalation)",
			"Stärkung (Selbstwert, innere Klarheit, Identität zurückholen)",
			"Community & Interaktion (Umfrage/Frage/DM-Trigger)",
			"Motivation (Mut machen, kleine Schritte)",
			"Mythen brechen (z.B. 'Wenn ich mich nur besser erkläre…')",
		},
	},
	Format: OptionSet{
		Label: "Art des Textes",
		Values: []string{
			"Sprüche / One-Liner (Punchy, kurz)",
			"Mini-Carousel in Story (3–7 Slides, logisch aufgebaut)",
			"Checkliste (Warnsignale / Red Flags)",
			"Reframe (Gedanken umdrehen: Schuld → Klarheit)",
			"Übung / Mikro-Schritt (2 Minuten, sicher)",
			"Grenzsatz-Vorlagen (kommunikativ, nicht eskalierend)",
			"Story-Quiz (Mythos vs Fakt / Erkennen von Mustern)",
		},
		Default: 1,
	},
	Tone: OptionSet{
		Label: "Tonalität",
		Values: []string{
			"Sehr empathisch & sanft",
			"Klar & direkt (ohne hart zu sein)",
			"Mutmachend & hoffnungsvoll",
			"Faktenorientiert & ruhig",
		},
		Default: 1,
	},
	Stage: OptionSet{
		Label: "Phase/Zustand der Zielgruppe",
		Values: []string{
			"Noch drin / verwirrt / Selbstzweifel",
			"Trennung läuft / emotional instabil",
			"No-Contact/Abstand / Stabilisierung",
			"Rückfallgefahr / Trauma-Bond / Sehnsucht",
			"Heilung & Neuaufbau / Identität",
		},
	},
	Topic: OptionSet{
		Label: "Hauptthema",
		Values: []string{
			"Gaslighting",
			"Silent Treatment / Entzug",
			"Love Bombing → Abwertung",
			"Triangulation (Dritte ins Spiel bringen)",
			"Schuldumkehr & Projektion",
			"Grenzen setzen ohne Rechtfertigen",
			"Trauma Bond / Suchtgefühl",
			"Co-Abhängigkeit / People-Pleasing",
			"Eifersucht & Kontrolle",
			"Aftermath: Selbstwert & Vertrauen",
		},
	},
	Sensitivity: OptionSet{
		Label:   "Sensibilität/Trigger",
		Values:  []string{"Niedrig", "Mittel", "Hoch (sehr vorsichtig formulieren)"},
		Default: 1,
	},
	CTA: OptionSet{
		Label: "CTA / Interaktion",
		Values: []string{
			"Frage-Sticker: 'Was war dein Aha-Moment?'",
			"Umfrage: 'Kennst du das?'",
			"DM-Trigger: 'Schreib mir 'KLARHEIT' für…'",
			"Speichern/Teilen: 'Speicher dir das für schlechte Tage'",
			"Quiz: Mythos vs Fakt",
			"Kein CTA (nur Validierung)",
		},
		Default: 2,
	},
	SlideLengths:  []int{120, 160, 220, 300},
	DefaultLength: 160,
	MinSlides:     3,
	MaxSlides:     10,
	DefaultSlides: 6,
	DefaultNoGos:  "diagnose, narzisst, narzisstin, psychopat, rache, konfrontiere ihn, konfrontiere sie",
}

var viralCatalogue = Catalogue{
	Variant: VariantViral,
	Goal: OptionSet{
		Label: "Primäres Ziel",
		Values: []string{
			"🔥 Maximale Interaktion (Likes, Shares, Comments)",
			"💬 Community-Aufbau & Bindung",
			"📈 Reichweite steigern (viral Potential)",
			"🤝 Vertrauen & Glaubwürdigkeit",
			"🎯 Konkrete Aktionen (Downloads, DMs, Saves)",
			"💡 Aufklärung & Awareness",
			"❤️ Emotionale Verbindung",
		},
	},
	Format: OptionSet{
		Label: "Content-Format",
		Values: []string{
			"🚀 Viral Carousel (3-7 ultra-engagierende Slides)",
			"💥 Emotionaler One-Liner (Scroll-Stopper)",
			"📚 Mini-Guide (Wertvoll + Teilbar)",
			"🎯 Interaktive Checkliste",
			"📖 Storytelling (Persönlich + Relatable)",
			"🧠 Mindshift (Perspektivenwechsel)",
			"🔄 Transformations-Story (Vorher/Nachher)",
			"❓ Quiz/Test (hohe Interaktion)",
		},
	},
	Tone: OptionSet{
		Label: "Ton & Stimme",
		Values: []string{
			"🔥 Leidenschaftlich & Mitreißend",
			"💫 Empathisch & Tief",
			"🎯 Direkt & Klar",
			"✨ Inspirierend & Motivierend",
			"🤝 Vertrauensvoll & Autoritativ",
			"😊 Freundlich & Gemeinschaftlich",
		},
	},
	Stage: OptionSet{
		Label: "Zielgruppen-Phase",
		Values: []string{
			"🌀 Verwirrung & Selbstzweifel",
			"⚡ Erkenntnis & Schock",
			"💔 Trennung & Schmerz",
			"🛡️ Schutz & Distanzierung",
			"🌱 Heilung & Wachstum",
			"🚀 Transformation & Neuanfang",
		},
	},
	Topic: OptionSet{
		Label: "Fokus-Thema",
		Values: []string{
			"🔥 Gaslighting erkennen & benennen",
			"💔 Emotionale Erpressung durchbrechen",
			"🛡️ Grenzen setzen ohne Schuldgefühle",
			"🌀 Trauma-Bond verstehen & lösen",
			"🎯 Selbstwert aufbauen trotz Abwertung",
			"✨ Innere Freiheit gewinnen",
			"🤝 Gesunde Beziehungen nach toxischen",
			"💪 Empowerment & Selbstwirksamkeit",
		},
	},
	Sensitivity: OptionSet{
		Label:   "Sensibilitäts-Level",
		Values:  []string{"🌱 Sanft & Vorsichtig", "🎯 Klar & Direkt", "🔥 Intensiv & Tief"},
		Default: 1,
	},
	CTA: OptionSet{
		Label: "Interaktions-Typ",
		Values: []string{
			"🔥 Frage-Sticker (hohe Reply-Rate)",
			"📊 Umfrage (instant Engagement)",
			"💬 DM-Trigger (Community-Building)",
			"💾 Save-Sticker (Langzeit-Engagement)",
			"🎯 Quiz/Test (spielerisch)",
			"✨ Emoji-Slider (einfach & effektiv)",
			"🔄 Share-Prompt (Virality)",
		},
	},
	SlideLengths:  []int{80, 120, 160, 200, 240},
	DefaultLength: 120,
	MinSlides:     3,
	MaxSlides:     12,
	DefaultSlides: 6,
	DefaultNoGos:  "diagnose, narzisst, therapie, konfrontation, rache, opfer",
	ViralElements: OptionSet{
		Label: "Viral-Elemente",
		Values: []string{
			"Curiosity Gap (Neugier wecken)",
			"Social Proof (Community zeigen)",
			"Controversy (sanfte Provokation)",
			"Storytelling (persönliche Geschichte)",
			"Surprise (Überraschungseffekt)",
			"Utility (praktischer Nutzen)",
			"Inspiration (Motivationsboost)",
		},
	},
	Demographics: OptionSet{
		Label:  "Ziel-Demographie",
		Values: []string{"Frauen 25-45", "Männer 30-50", "Junge Erwachsene", "Berufstätige", "Eltern"},
	},
	PostingTimes: OptionSet{
		Label:  "Optimale Posting-Zeit",
		Values: []string{"⏰ Flexibel", "🌅 Morgens (7-9)", "☕ Mittag (12-14)", "🌇 Abend (18-20)", "🌙 Spät (20-22)"},
	},
}

// defaultViralElements mirrors the preselection of the viral sidebar.
var defaultViralElements = []string{
	"Curiosity Gap (Neugier wecken)",
	"Utility (praktischer Nutzen)",
	"Storytelling (persönliche Geschichte)",
}
