package tui

import (
	"fmt"
	"strconv"

	"story_generator/generator"
)

type fieldKind int

const (
	fieldChoice fieldKind = iota
	fieldText
)

type field struct {
	key   string
	label string
	kind  fieldKind
	viral bool
}

var formFields = []field{
	{key: "variant", label: "Variante"},
	{key: "goal", label: "Ziel"},
	{key: "format", label: "Format"},
	{key: "tone", label: "Tonalität"},
	{key: "stage", label: "Phase"},
	{key: "topic", label: "Thema"},
	{key: "sensitivity", label: "Sensibilität"},
	{key: "cta", label: "Interaktion"},
	{key: "slide_length", label: "Zeichen/Slide"},
	{key: "slide_count", label: "Slides"},
	{key: "model", label: "Modell"},
	{key: "temperature", label: "Kreativität"},
	{key: "urgency", label: "Dringlichkeit", viral: true},
	{key: "emotion", label: "Emotion", viral: true},
	{key: "demographics", label: "Zielgruppe", viral: true},
	{key: "posting_time", label: "Posting-Zeit", viral: true},
	{key: "no_gos", label: "No-Gos", kind: fieldText},
	{key: "style_notes", label: "Stil-Notizen", kind: fieldText},
}

// visibleFields drops viral-only fields for the standard form.
func visibleFields(v generator.Variant) []field {
	out := make([]field, 0, len(formFields))
	for _, f := range formFields {
		if f.viral && v != generator.VariantViral {
			continue
		}
		out = append(out, f)
	}
	return out
}

// fieldValue is the display text of a choice field.
func fieldValue(req generator.GenerationRequest, key string) string {
	switch key {
	case "variant":
		return req.Variant.String()
	case "goal":
		return req.Goal
	case "format":
		return req.Format
	case "tone":
		return req.Tone
	case "stage":
		return req.Stage
	case "topic":
		return req.Topic
	case "sensitivity":
		return req.Sensitivity
	case "cta":
		return req.CTA
	case "slide_length":
		return strconv.Itoa(req.SlideLength)
	case "slide_count":
		return strconv.Itoa(req.SlideCount)
	case "model":
		return req.Model
	case "temperature":
		if req.Temperature == nil {
			return ""
		}
		return fmt.Sprintf("%.1f", *req.Temperature)
	case "urgency":
		return strconv.Itoa(req.Viral.Urgency)
	case "emotion":
		return strconv.Itoa(req.Viral.Emotion)
	case "demographics":
		if len(req.Viral.Demographics) == 0 {
			return ""
		}
		return req.Viral.Demographics[0]
	case "posting_time":
		return req.Viral.PostingTime
	}
	return ""
}

// cycle moves a choice field by delta steps and returns the updated request.
// A variant change rebuilds the request from that variant's defaults.
func cycle(req generator.GenerationRequest, key string, delta int) generator.GenerationRequest {
	cat := generator.CatalogueFor(req.Variant)
	switch key {
	case "variant":
		next := generator.VariantViral
		if req.Variant == generator.VariantViral {
			next = generator.VariantStandard
		}
		return generator.GenerationRequest{
			Variant:    next,
			Model:      req.Model,
			StyleNotes: req.StyleNotes,
		}.Normalize()
	case "goal":
		req.Goal = step(cat.Goal.Values, req.Goal, delta)
	case "format":
		req.Format = step(cat.Format.Values, req.Format, delta)
	case "tone":
		req.Tone = step(cat.Tone.Values, req.Tone, delta)
	case "stage":
		req.Stage = step(cat.Stage.Values, req.Stage, delta)
	case "topic":
		req.Topic = step(cat.Topic.Values, req.Topic, delta)
	case "sensitivity":
		req.Sensitivity = step(cat.Sensitivity.Values, req.Sensitivity, delta)
	case "cta":
		req.CTA = step(cat.CTA.Values, req.CTA, delta)
	case "slide_length":
		lengths := make([]string, len(cat.SlideLengths))
		for i, n := range cat.SlideLengths {
			lengths[i] = strconv.Itoa(n)
		}
		req.SlideLength, _ = strconv.Atoi(step(lengths, strconv.Itoa(req.SlideLength), delta))
	case "slide_count":
		req.SlideCount = clamp(req.SlideCount+delta, cat.MinSlides, cat.MaxSlides)
	case "model":
		var models []string
		for _, g := range generator.Models() {
			models = append(models, g.Models...)
		}
		req.Model = step(models, req.Model, delta)
	case "temperature":
		t := 0.0
		if req.Temperature != nil {
			t = *req.Temperature
		}
		t = float64(clamp(int(t*10+0.5)+delta, 0, 10)) / 10
		req.Temperature = &t
	case "urgency":
		req.Viral.Urgency = clamp(req.Viral.Urgency+delta, 1, 10)
	case "emotion":
		req.Viral.Emotion = clamp(req.Viral.Emotion+delta, 1, 10)
	case "demographics":
		req.Viral.Demographics = []string{step(cat.Demographics.Values, fieldValue(req, key), delta)}
	case "posting_time":
		req.Viral.PostingTime = step(cat.PostingTimes.Values, req.Viral.PostingTime, delta)
	}
	return req
}

// step returns the value delta positions away from current, wrapping around.
// An unknown current value starts from the first entry.
func step(values []string, current string, delta int) string {
	if len(values) == 0 {
		return current
	}
	idx := 0
	for i, v := range values {
		if v == current {
			idx = i
			break
		}
	}
	n := len(values)
	return values[((idx+delta)%n+n)%n]
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
