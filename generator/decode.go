package generator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// DecodeReason classifies a decode failure.
type DecodeReason string

const (
	// ReasonNotStructured: no tier produced parseable JSON.
	ReasonNotStructured DecodeReason = "not_structured"
	// ReasonNotAMapping: JSON was found but its top level is not an object.
	ReasonNotAMapping DecodeReason = "not_a_mapping"
)

// DecodeError carries the untouched model output so the caller can show it
// for manual salvage.
type DecodeError struct {
	Reason  DecodeReason
	RawText string
	Err     error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode model output: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("decode model output: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DecodeOption tweaks the decoder.
type DecodeOption func(*decodeConfig)

type decodeConfig struct {
	lenient bool
}

// WithLenientRepair enables the last-resort tier: single quotes become double
// quotes and True/False become true/false before one more direct parse. The
// substitutions are literal and can corrupt prose that legitimately contains
// an apostrophe, so the tier only runs after the other two failed.
func WithLenientRepair() DecodeOption {
	return func(c *decodeConfig) { c.lenient = true }
}

// fencedBlock matches the first ``` fenced region, with an optional format tag
// right after the opening marker.
var fencedBlock = regexp.MustCompile("(?s)```(?:[A-Za-z0-9_+-]+)?\\n?(.*?)\\n?```")

var lenientReplacer = strings.NewReplacer("'", `"`, "True", "true", "False", "false")

// Decode turns raw model output into a StoryContent. Tiers run in order and the
// first success wins: whole text, first fenced block, then (optionally) the
// lenient repair. On failure the error is always a *DecodeError.
func Decode(raw string, opts ...DecodeOption) (StoryContent, error) {
	m, err := decodeMapping(raw, opts...)
	if err != nil {
		return StoryContent{}, err
	}
	return storyFromMapping(m), nil
}

// DecodeWeekPlan runs the same tiers as Decode and extracts a WeekPlan.
func DecodeWeekPlan(raw string, opts ...DecodeOption) (WeekPlan, error) {
	m, err := decodeMapping(raw, opts...)
	if err != nil {
		return WeekPlan{}, err
	}
	return weekPlanFromMapping(m), nil
}

func decodeMapping(raw string, opts ...DecodeOption) (map[string]any, error) {
	var cfg decodeConfig
	for _, o := range opts {
		o(&cfg)
	}

	var (
		sawNonMapping bool
		lastErr       error
	)
	attempt := func(text string) (map[string]any, bool) {
		v, err := parseJSON(text)
		if err != nil {
			lastErr = err
			return nil, false
		}
		m, ok := v.(map[string]any)
		if !ok {
			sawNonMapping = true
			lastErr = fmt.Errorf("top-level value is %s", jsonKind(v))
			return nil, false
		}
		return m, true
	}

	if m, ok := attempt(raw); ok {
		return m, nil
	}
	if sub := fencedBlock.FindStringSubmatch(raw); sub != nil {
		if m, ok := attempt(sub[1]); ok {
			return m, nil
		}
	}
	if cfg.lenient {
		if m, ok := attempt(lenientReplacer.Replace(raw)); ok {
			return m, nil
		}
	}

	reason := ReasonNotStructured
	if sawNonMapping {
		reason = ReasonNotAMapping
	}
	return nil, &DecodeError{Reason: reason, RawText: raw, Err: lastErr}
}

// parseJSON decodes exactly one JSON value; trailing non-space content is an error.
func parseJSON(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after JSON value")
	}
	return v, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "an array"
	case string:
		return "a string"
	case json.Number:
		return "a number"
	case bool:
		return "a boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func storyFromMapping(m map[string]any) StoryContent {
	return StoryContent{
		Hook:            stringField(m, "title_hook"),
		ViralScore:      intField(m, "viral_score"),
		Slides:          slidesField(m, "slides"),
		CaptionVariants: stringList(m, "caption_variants"),
		CTAOptions:      stringList(m, "cta_options"),
		Interaction:     interactionField(m, "poll_or_question"),
		Hashtags:        dedupe(stringList(m, "hashtags")),
		ViralTechniques: stringList(m, "viral_techniques"),
		SafetyNote:      stringField(m, "safety_note"),
	}
}

func slidesField(m map[string]any, key string) []Slide {
	items, _ := m[key].([]any)
	slides := make([]Slide, 0, len(items))
	for i, item := range items {
		s := Slide{Index: i + 1}
		sm, ok := item.(map[string]any)
		if !ok {
			// a bare string slide keeps its text as body
			s.Body = stringValue(item)
			slides = append(slides, s)
			continue
		}
		if idx := intField(sm, "slide_no"); idx > 0 {
			s.Index = idx
		}
		s.Headline = stringField(sm, "headline")
		s.Body = stringField(sm, "body")
		s.EngagementTip = stringField(sm, "engagement_tip")
		s.StickerSuggestion = stringField(sm, "sticker_suggestion")
		s.VisualSuggestion = stringField(sm, "visual_suggestion")
		slides = append(slides, s)
	}
	return slides
}

func interactionField(m map[string]any, key string) *InteractionPrompt {
	pm, ok := m[key].(map[string]any)
	if !ok || len(pm) == 0 {
		return nil
	}
	return &InteractionPrompt{
		Type:    stringField(pm, "type"),
		Prompt:  stringField(pm, "prompt"),
		Options: stringList(pm, "options"),
	}
}

func weekPlanFromMapping(m map[string]any) WeekPlan {
	items, _ := m["days"].([]any)
	days := make([]PlanDay, 0, len(items))
	for i, item := range items {
		dm, ok := item.(map[string]any)
		if !ok {
			continue
		}
		d := PlanDay{
			Day:           stringField(dm, "day"),
			Goal:          stringField(dm, "goal"),
			Topic:         stringField(dm, "topic"),
			Hook:          stringField(dm, "hook"),
			SlidesOutline: stringList(dm, "slides_outline"),
			Interaction:   stringField(dm, "interaction"),
			CTA:           stringField(dm, "cta"),
		}
		if d.Day == "" {
			d.Day = "Tag " + strconv.Itoa(i+1)
		}
		days = append(days, d)
	}
	return WeekPlan{
		Theme:      stringField(m, "week_theme"),
		Days:       days,
		SafetyNote: stringField(m, "safety_note"),
	}
}

func stringField(m map[string]any, key string) string {
	return stringValue(m[key])
}

// stringValue renders any JSON value as text. Objects and arrays are kept as
// compact JSON rather than dropped.
func stringValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(x); err != nil {
			return fmt.Sprint(x)
		}
		return strings.TrimSpace(buf.String())
	}
}

// stringList returns an empty, non-nil slice when the key is absent. A scalar
// is treated as a one-element list.
func stringList(m map[string]any, key string) []string {
	switch x := m[key].(type) {
	case nil:
		return []string{}
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			if item == nil {
				continue
			}
			out = append(out, stringValue(item))
		}
		return out
	default:
		return []string{stringValue(x)}
	}
}

func intField(m map[string]any, key string) int {
	switch x := m[key].(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return int(n)
		}
		if f, err := x.Float64(); err == nil {
			return int(f)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(x)); err == nil {
			return n
		}
	}
	return 0
}

func dedupe(xs []string) []string {
	seen := make(map[string]struct{}, len(xs))
	out := xs[:0]
	for _, x := range xs {
		if _, ok := seen[x]; ok {
			continue
		}
		seen[x] = struct{}{}
		out = append(out, x)
	}
	return out
}
