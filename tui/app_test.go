package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"story_generator/generator"
)

type failingLLM struct{}

func (failingLLM) Complete(context.Context, generator.Prompt) (string, error) {
	return "", errors.New("connection refused")
}

func newTestApp(t *testing.T, llm generator.LLMClient) *App {
	t.Helper()
	agent, err := generator.NewAgent(llm)
	require.NoError(t, err)
	app := NewApp(generator.NewSession("tui", agent), generator.GenerationRequest{}, t.TempDir())
	app.now = func() time.Time { return time.Date(2024, 3, 2, 7, 5, 0, 0, time.UTC) }
	return app
}

func press(t *testing.T, app *App, msg tea.KeyMsg) tea.Cmd {
	t.Helper()
	_, cmd := app.Update(msg)
	return cmd
}

func runCmd(t *testing.T, app *App, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	app.Update(cmd())
}

func TestStep(t *testing.T) {
	vals := []string{"a", "b", "c"}
	require.Equal(t, "b", step(vals, "a", 1))
	require.Equal(t, "c", step(vals, "a", -1))
	require.Equal(t, "a", step(vals, "c", 1))
	require.Equal(t, "x", step(nil, "x", 1))
}

func TestCycleBounds(t *testing.T) {
	req := generator.GenerationRequest{}.Normalize()
	cat := generator.CatalogueFor(req.Variant)

	req.SlideCount = cat.MaxSlides
	require.Equal(t, cat.MaxSlides, cycle(req, "slide_count", 1).SlideCount)

	one := 1.0
	req.Temperature = &one
	require.InDelta(t, 1.0, *cycle(req, "temperature", 1).Temperature, 1e-9)
	require.InDelta(t, 0.9, *cycle(req, "temperature", -1).Temperature, 1e-9)

	viral := cycle(req, "variant", 1)
	require.Equal(t, generator.VariantViral, viral.Variant)
	require.NoError(t, viral.Validate())
	require.Equal(t, generator.VariantStandard, cycle(viral, "variant", 1).Variant)
}

func TestFormNavigation(t *testing.T) {
	app := newTestApp(t, generator.MockLLM{})
	require.Len(t, visibleFields(app.req.Variant), len(formFields)-4)

	press(t, app, tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, generator.VariantViral, app.req.Variant)
	require.Len(t, visibleFields(app.req.Variant), len(formFields))

	press(t, app, tea.KeyMsg{Type: tea.KeyDown})
	goal := app.req.Goal
	press(t, app, tea.KeyMsg{Type: tea.KeyRight})
	require.NotEqual(t, goal, app.req.Goal)
	require.NoError(t, app.request().Validate())

	press(t, app, tea.KeyMsg{Type: tea.KeyUp})
	press(t, app, tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, "style_notes", visibleFields(app.req.Variant)[app.cursor].key)
	press(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ruhig")})
	require.Equal(t, "ruhig", app.request().StyleNotes)
	require.Contains(t, app.View(), "Viral Instagram Story Generator")
}

func TestGenerateAndSave(t *testing.T) {
	app := newTestApp(t, generator.MockLLM{})

	cmd := press(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, viewGenerating, app.view)
	runCmd(t, app, cmd)
	require.Equal(t, viewResult, app.view)
	require.NotNil(t, app.result)
	require.Equal(t, 1, app.session.Usage().APICalls)
	require.Contains(t, app.View(), "API-Calls: 1")

	press(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	path := filepath.Join(app.outDir, "ig_story_20240302_0705.csv")
	require.Contains(t, app.status, path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "Slide,Headline,Body,Sticker,Visual")

	press(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	require.Equal(t, viewForm, app.view)
}

func TestWeekPlanFlow(t *testing.T) {
	app := newTestApp(t, generator.MockLLM{})

	runCmd(t, app, press(t, app, tea.KeyMsg{Type: tea.KeyCtrlW}))
	require.Equal(t, viewResult, app.view)
	require.NotNil(t, app.plan)
	require.Nil(t, app.result)

	press(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	require.Contains(t, app.status, "fehlgeschlagen")

	press(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	_, err := os.Stat(filepath.Join(app.outDir, "ig_week_plan_20240302_0705.txt"))
	require.NoError(t, err)
}

func TestErrorViewAndRetry(t *testing.T) {
	app := newTestApp(t, failingLLM{})

	runCmd(t, app, press(t, app, tea.KeyMsg{Type: tea.KeyEnter}))
	require.Equal(t, viewError, app.view)
	require.Contains(t, app.View(), "connection refused")
	require.Equal(t, 0, app.session.Usage().APICalls)

	cmd := press(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.Equal(t, viewGenerating, app.view)
	runCmd(t, app, cmd)
	require.Equal(t, viewError, app.view)

	press(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, viewForm, app.view)
}
