package generator

import (
	"fmt"
	"strings"
)

// Variant selects prompt wording, option set and presentation of a generation.
type Variant string

const (
	VariantStandard Variant = "standard"
	VariantViral    Variant = "viral"
)

// ParseVariant accepts "standard" and "viral" (case-insensitive); empty means standard.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(VariantStandard):
		return VariantStandard, nil
	case string(VariantViral), "viral-optimized", "viral_optimized":
		return VariantViral, nil
	default:
		return "", fmt.Errorf("unknown variant %q (want standard or viral)", s)
	}
}

func (v Variant) String() string {
	if v == "" {
		return string(VariantStandard)
	}
	return string(v)
}

// DefaultTemperature is the creativity slider's initial value.
func (v Variant) DefaultTemperature() float64 {
	if v == VariantViral {
		return 0.7
	}
	return 0.6
}

// MaxTokens caps the completion length; zero leaves it to the service.
func (v Variant) MaxTokens() int {
	if v == VariantViral {
		return 2000
	}
	return 0
}

// LenientRepair reports whether decoding may fall back to the quote/boolean repair tier.
func (v Variant) LenientRepair() bool {
	return v == VariantViral
}

// DecodeOptions returns the decoder options this variant decodes with.
func (v Variant) DecodeOptions() []DecodeOption {
	if v.LenientRepair() {
		return []DecodeOption{WithLenientRepair()}
	}
	return nil
}
