package generator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeFillsDefaults(t *testing.T) {
	req := GenerationRequest{}.Normalize()

	require.Equal(t, VariantStandard, req.Variant)
	cat := CatalogueFor(VariantStandard)
	require.Equal(t, cat.Goal.Values[0], req.Goal)
	require.Equal(t, cat.Format.Values[1], req.Format)
	require.Equal(t, cat.CTA.Values[2], req.CTA)
	require.Equal(t, 160, req.SlideLength)
	require.Equal(t, 6, req.SlideCount)
	require.Equal(t, DefaultModel, req.Model)
	require.NotNil(t, req.Temperature)
	require.InDelta(t, 0.6, *req.Temperature, 1e-9)
	require.NoError(t, req.Validate())
}

func TestNormalizeViral(t *testing.T) {
	req := GenerationRequest{Variant: VariantViral}.Normalize()

	require.Equal(t, 120, req.SlideLength)
	require.Equal(t, 7, req.Viral.Urgency)
	require.Equal(t, 8, req.Viral.Emotion)
	require.Len(t, req.Viral.Elements, 3)
	require.Equal(t, []string{"Frauen 25-45"}, req.Viral.Demographics)
	require.InDelta(t, 0.7, *req.Temperature, 1e-9)
	require.NoError(t, req.Validate())
}

func TestNormalizeKeepsExplicitValues(t *testing.T) {
	zero := 0.0
	req := GenerationRequest{
		Tone:        "Faktenorientiert & ruhig",
		SlideCount:  3,
		Temperature: &zero,
	}.Normalize()

	require.Equal(t, "Faktenorientiert & ruhig", req.Tone)
	require.Equal(t, 3, req.SlideCount)
	require.Zero(t, *req.Temperature)
	require.NoError(t, req.Validate())
}

func TestValidateRejects(t *testing.T) {
	tooHot := 1.5
	tests := []struct {
		name  string
		edit  func(r *GenerationRequest)
		field string
	}{
		{"unknown goal", func(r *GenerationRequest) { r.Goal = "Reichweite um jeden Preis" }, "goal"},
		{"standard values in viral form", func(r *GenerationRequest) { r.Variant = VariantViral }, "goal"},
		{"slide length", func(r *GenerationRequest) { r.SlideLength = 150 }, "slide_length"},
		{"too many slides", func(r *GenerationRequest) { r.SlideCount = 11 }, "slide_count"},
		{"too few slides", func(r *GenerationRequest) { r.SlideCount = 2 }, "slide_count"},
		{"model", func(r *GenerationRequest) { r.Model = "gpt-2" }, "model"},
		{"temperature", func(r *GenerationRequest) { r.Temperature = &tooHot }, "temperature"},
		{"variant", func(r *GenerationRequest) { r.Variant = "loud" }, "variant"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := GenerationRequest{}.Normalize()
			tt.edit(&req)
			err := req.Validate()
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			require.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestValidateViralRanges(t *testing.T) {
	req := GenerationRequest{Variant: VariantViral}.Normalize()
	req.SlideCount = 12
	require.NoError(t, req.Validate())

	req.Viral.Urgency = 11
	require.Error(t, req.Validate())

	req.Viral.Urgency = 5
	req.Viral.Elements = []string{"Clickbait"}
	err := req.Validate()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	require.Equal(t, "viral_elements", ve.Field)
}

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant("")
	require.NoError(t, err)
	require.Equal(t, VariantStandard, v)

	v, err = ParseVariant(" Viral ")
	require.NoError(t, err)
	require.Equal(t, VariantViral, v)

	_, err = ParseVariant("pro")
	require.Error(t, err)
}

func TestCatalogueDefaultsAreMembers(t *testing.T) {
	for _, v := range []Variant{VariantStandard, VariantViral} {
		cat := CatalogueFor(v)
		for _, set := range []OptionSet{cat.Goal, cat.Format, cat.Tone, cat.Stage, cat.Topic, cat.Sensitivity, cat.CTA} {
			require.NotEmpty(t, set.DefaultValue(), "%s %s", v, set.Label)
		}
		require.Contains(t, cat.SlideLengths, cat.DefaultLength)
		require.True(t, KnownModel(DefaultModel))
	}
}
