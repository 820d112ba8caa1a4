package generator

import "time"

// GenerationRequest is one set of form choices, consumed by a single generate action.
type GenerationRequest struct {
	Variant     Variant      `json:"variant" yaml:"variant"`
	Goal        string       `json:"goal" yaml:"goal"`
	Format      string       `json:"format" yaml:"format"`
	Tone        string       `json:"tone" yaml:"tone"`
	Stage       string       `json:"stage" yaml:"stage"`
	Topic       string       `json:"topic" yaml:"topic"`
	Sensitivity string       `json:"sensitivity" yaml:"sensitivity"`
	SlideLength int          `json:"slide_length" yaml:"slide_length"`
	SlideCount  int          `json:"slide_count" yaml:"slide_count"`
	CTA         string       `json:"cta" yaml:"cta"`
	NoGos       string       `json:"no_gos" yaml:"no_gos"`
	StyleNotes  string       `json:"style_notes" yaml:"style_notes"`
	Model       string       `json:"model" yaml:"model"`
	Temperature *float64     `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	Viral       ViralOptions `json:"viral" yaml:"viral"`
}

// ViralOptions only affect the viral variant.
type ViralOptions struct {
	Urgency      int      `json:"urgency" yaml:"urgency"`
	Emotion      int      `json:"emotion" yaml:"emotion"`
	Elements     []string `json:"elements" yaml:"elements"`
	Demographics []string `json:"demographics" yaml:"demographics"`
	PostingTime  string   `json:"posting_time" yaml:"posting_time"`
}

// StoryContent is the decoded story record. Every field is optional upstream;
// absent fields stay at their zero value.
type StoryContent struct {
	Hook            string             `json:"title_hook"`
	ViralScore      int                `json:"viral_score,omitempty"`
	Slides          []Slide            `json:"slides"`
	CaptionVariants []string           `json:"caption_variants"`
	CTAOptions      []string           `json:"cta_options"`
	Interaction     *InteractionPrompt `json:"poll_or_question,omitempty"`
	Hashtags        []string           `json:"hashtags"`
	ViralTechniques []string           `json:"viral_techniques,omitempty"`
	SafetyNote      string             `json:"safety_note"`
}

// Slide is one story frame. Index is never zero after decoding.
type Slide struct {
	Index             int    `json:"slide_no"`
	Headline          string `json:"headline"`
	Body              string `json:"body"`
	EngagementTip     string `json:"engagement_tip,omitempty"`
	StickerSuggestion string `json:"sticker_suggestion"`
	VisualSuggestion  string `json:"visual_suggestion"`
}

// InteractionPrompt is the poll / question / quiz / slider sticker.
type InteractionPrompt struct {
	Type    string   `json:"type"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

// WeekPlan is the batch-mode result: seven compact story concepts.
type WeekPlan struct {
	Theme      string    `json:"week_theme"`
	Days       []PlanDay `json:"days"`
	SafetyNote string    `json:"safety_note"`
}

// PlanDay is one concept inside a WeekPlan.
type PlanDay struct {
	Day           string   `json:"day"`
	Goal          string   `json:"goal"`
	Topic         string   `json:"topic"`
	Hook          string   `json:"hook"`
	SlidesOutline []string `json:"slides_outline"`
	Interaction   string   `json:"interaction"`
	CTA           string   `json:"cta"`
}

// Result bundles a decoded record with the raw model output it came from.
type Result struct {
	Request   GenerationRequest `json:"request"`
	Content   StoryContent      `json:"content"`
	Raw       string            `json:"raw"`
	CreatedAt time.Time         `json:"created_at"`
}

// PlanResult is the Result counterpart for week plans.
type PlanResult struct {
	Request   GenerationRequest `json:"request"`
	Plan      WeekPlan          `json:"plan"`
	Raw       string            `json:"raw"`
	CreatedAt time.Time         `json:"created_at"`
}

// Usage is the per-session API call tally.
type Usage struct {
	APICalls int `json:"api_calls"`
}
