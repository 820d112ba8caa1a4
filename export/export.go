// Package export turns decoded story records into files: plain text, JSON,
// CSV, Markdown and HTML.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"story_generator/generator"
)

// DefaultSafetyNote is printed when the model left safety_note empty.
const DefaultSafetyNote = "Keine Diagnose. Bei akuter Gefahr Hilfe holen."

// Format is an export file format.
type Format string

const (
	FormatText     Format = "txt"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
)

// Formats lists every supported format in menu order.
var Formats = []Format{FormatText, FormatJSON, FormatCSV, FormatMarkdown, FormatHTML}

// ParseFormat accepts the format name or a common alias.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "txt", "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unknown export format %q", s)
	}
}

// ContentType is the MIME type used when serving the export over HTTP.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json; charset=utf-8"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// FileName builds a timestamped name such as ig_story_20240131_0915.txt.
func FileName(prefix string, f Format, t time.Time) string {
	if prefix == "" {
		prefix = "ig_story"
	}
	return fmt.Sprintf("%s_%s.%s", prefix, t.Format("20060102_1504"), f)
}

// Write renders content in format f to w.
func Write(w io.Writer, f Format, content generator.StoryContent, v generator.Variant) error {
	var (
		out []byte
		err error
	)
	switch f {
	case FormatText:
		out = []byte(Text(content, v))
	case FormatJSON:
		out, err = JSON(content)
	case FormatCSV:
		out, err = CSV(content)
	case FormatMarkdown:
		out = []byte(Markdown(content, v))
	case FormatHTML:
		out, err = HTML(content, v)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// WritePlan renders a week plan. Only text and JSON are defined for plans.
func WritePlan(w io.Writer, f Format, plan generator.WeekPlan) error {
	var (
		out []byte
		err error
	)
	switch f {
	case FormatText:
		out = []byte(WeekPlanText(plan))
	case FormatJSON:
		out, err = WeekPlanJSON(plan)
	default:
		return fmt.Errorf("export format %q not available for week plans", f)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// JSON encodes content with two-space indentation and literal umlauts and emoji.
func JSON(content generator.StoryContent) ([]byte, error) {
	return marshalIndent(content)
}

// WeekPlanJSON is JSON for a week plan.
func WeekPlanJSON(plan generator.WeekPlan) ([]byte, error) {
	return marshalIndent(plan)
}

func marshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return buf.Bytes(), nil
}

// CSV writes one row per slide.
func CSV(content generator.StoryContent) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Slide", "Headline", "Body", "Sticker", "Visual"}); err != nil {
		return nil, err
	}
	for _, s := range content.Slides {
		row := []string{strconv.Itoa(s.Index), s.Headline, s.Body, s.StickerSuggestion, s.VisualSuggestion}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Hashtags renders the set as "#a #b", tolerating stored values that already
// carry the leading #.
func Hashtags(tags []string) string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(strings.TrimLeft(t, "#"))
		if t == "" {
			continue
		}
		out = append(out, "#"+t)
	}
	return strings.Join(out, " ")
}

func safetyNote(note string) string {
	if strings.TrimSpace(note) == "" {
		return DefaultSafetyNote
	}
	return note
}
