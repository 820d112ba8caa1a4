package generator

import (
	"fmt"
	"strings"
)

// ValidationError reports a form value outside its option set.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Normalize fills unset fields with the variant's preselected form values.
func (r GenerationRequest) Normalize() GenerationRequest {
	if r.Variant == "" {
		r.Variant = VariantStandard
	}
	cat := CatalogueFor(r.Variant)
	fill := func(dst *string, set OptionSet) {
		if strings.TrimSpace(*dst) == "" {
			*dst = set.DefaultValue()
		}
	}
	fill(&r.Goal, cat.Goal)
	fill(&r.Format, cat.Format)
	fill(&r.Tone, cat.Tone)
	fill(&r.Stage, cat.Stage)
	fill(&r.Topic, cat.Topic)
	fill(&r.Sensitivity, cat.Sensitivity)
	fill(&r.CTA, cat.CTA)
	if r.SlideLength == 0 {
		r.SlideLength = cat.DefaultLength
	}
	if r.SlideCount == 0 {
		r.SlideCount = cat.DefaultSlides
	}
	if strings.TrimSpace(r.NoGos) == "" {
		r.NoGos = cat.DefaultNoGos
	}
	r.StyleNotes = strings.TrimSpace(r.StyleNotes)
	if r.Model == "" {
		r.Model = DefaultModel
	}
	if r.Temperature == nil {
		t := r.Variant.DefaultTemperature()
		r.Temperature = &t
	}
	if r.Variant == VariantViral {
		if r.Viral.Urgency == 0 {
			r.Viral.Urgency = 7
		}
		if r.Viral.Emotion == 0 {
			r.Viral.Emotion = 8
		}
		if r.Viral.Elements == nil {
			r.Viral.Elements = append([]string(nil), defaultViralElements...)
		}
		if r.Viral.Demographics == nil {
			r.Viral.Demographics = []string{cat.Demographics.Values[0]}
		}
		if r.Viral.PostingTime == "" {
			r.Viral.PostingTime = cat.PostingTimes.DefaultValue()
		}
	}
	return r
}

// Validate checks every enumerated field against its option set. Free-text
// fields are not checked.
func (r GenerationRequest) Validate() error {
	if r.Variant != VariantStandard && r.Variant != VariantViral {
		return &ValidationError{Field: "variant", Value: string(r.Variant), Reason: "unknown variant"}
	}
	cat := CatalogueFor(r.Variant)
	checks := []struct {
		field string
		value string
		set   OptionSet
	}{
		{"goal", r.Goal, cat.Goal},
		{"format", r.Format, cat.Format},
		{"tone", r.Tone, cat.Tone},
		{"stage", r.Stage, cat.Stage},
		{"topic", r.Topic, cat.Topic},
		{"sensitivity", r.Sensitivity, cat.Sensitivity},
		{"cta", r.CTA, cat.CTA},
	}
	for _, c := range checks {
		if !c.set.Contains(c.value) {
			return &ValidationError{Field: c.field, Value: c.value, Reason: "not an allowed option"}
		}
	}
	if !containsInt(cat.SlideLengths, r.SlideLength) {
		return &ValidationError{Field: "slide_length", Value: fmt.Sprint(r.SlideLength),
			Reason: fmt.Sprintf("must be one of %v", cat.SlideLengths)}
	}
	if r.SlideCount < cat.MinSlides || r.SlideCount > cat.MaxSlides {
		return &ValidationError{Field: "slide_count", Value: fmt.Sprint(r.SlideCount),
			Reason: fmt.Sprintf("must be between %d and %d", cat.MinSlides, cat.MaxSlides)}
	}
	if !KnownModel(r.Model) {
		return &ValidationError{Field: "model", Value: r.Model, Reason: "not in the model catalogue"}
	}
	if r.Temperature == nil || *r.Temperature < 0 || *r.Temperature > 1 {
		return &ValidationError{Field: "temperature", Reason: "must be between 0 and 1"}
	}
	if r.Variant == VariantViral {
		if r.Viral.Urgency < 1 || r.Viral.Urgency > 10 {
			return &ValidationError{Field: "urgency", Value: fmt.Sprint(r.Viral.Urgency), Reason: "must be between 1 and 10"}
		}
		if r.Viral.Emotion < 1 || r.Viral.Emotion > 10 {
			return &ValidationError{Field: "emotion", Value: fmt.Sprint(r.Viral.Emotion), Reason: "must be between 1 and 10"}
		}
		for _, e := range r.Viral.Elements {
			if !cat.ViralElements.Contains(e) {
				return &ValidationError{Field: "viral_elements", Value: e, Reason: "not an allowed option"}
			}
		}
		for _, d := range r.Viral.Demographics {
			if !cat.Demographics.Contains(d) {
				return &ValidationError{Field: "demographics", Value: d, Reason: "not an allowed option"}
			}
		}
		if !cat.PostingTimes.Contains(r.Viral.PostingTime) {
			return &ValidationError{Field: "posting_time", Value: r.Viral.PostingTime, Reason: "not an allowed option"}
		}
	}
	return nil
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
