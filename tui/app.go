// Package tui is the interactive terminal form. It drives the same
// generator.Session as the HTTP server.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"story_generator/export"
	"story_generator/generator"
	"story_generator/render"
)

type view int

const (
	viewForm view = iota
	viewGenerating
	viewResult
	viewError
)

const generateTimeout = 90 * time.Second

type App struct {
	width  int
	height int
	view   view

	session *generator.Session
	req     generator.GenerationRequest
	cursor  int
	noGos   textinput.Model
	notes   textinput.Model

	result   *generator.Result
	plan     *generator.PlanResult
	lastErr  error
	lastPlan bool
	viewport viewport.Model
	status   string

	outDir string
	now    func() time.Time
}

type storyMsg struct {
	res generator.Result
	err error
}

type planMsg struct {
	res generator.PlanResult
	err error
}

// NewApp builds the form pre-filled from base. Exports are written to outDir.
func NewApp(session *generator.Session, base generator.GenerationRequest, outDir string) *App {
	req := base.Normalize()

	noGos := textinput.New()
	noGos.Placeholder = "z.B. Diagnose, Therapie"
	noGos.CharLimit = 200
	noGos.Width = 50
	noGos.SetValue(req.NoGos)

	notes := textinput.New()
	notes.Placeholder = "optionale Stil-Hinweise"
	notes.CharLimit = 300
	notes.Width = 50
	notes.SetValue(req.StyleNotes)

	if outDir == "" {
		outDir = "."
	}
	return &App{
		view:     viewForm,
		session:  session,
		req:      req,
		noGos:    noGos,
		notes:    notes,
		viewport: viewport.New(80, 20),
		outDir:   outDir,
		now:      time.Now,
	}
}

// Run starts the program on the alternate screen and blocks until it exits.
func Run(app *App) error {
	_, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(tea.WindowSize(), textinput.Blink)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.viewport.Width = msg.Width
		a.viewport.Height = max(5, msg.Height-3)
		a.refreshResult()
		return a, nil

	case storyMsg:
		if msg.err != nil {
			a.lastErr = msg.err
			a.view = viewError
			return a, nil
		}
		res := msg.res
		a.result, a.plan = &res, nil
		a.showResult()
		return a, nil

	case planMsg:
		if msg.err != nil {
			a.lastErr = msg.err
			a.view = viewError
			return a, nil
		}
		res := msg.res
		a.plan, a.result = &res, nil
		a.showResult()
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return a, tea.Quit
		}
		switch a.view {
		case viewForm:
			return a, a.handleFormKey(msg)
		case viewResult:
			return a, a.handleResultKey(msg)
		case viewError:
			return a, a.handleErrorKey(msg)
		}
	}
	return a, nil
}

func (a *App) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	fields := visibleFields(a.req.Variant)
	current := fields[a.cursor]

	switch {
	case key.Matches(msg, keys.Back):
		return tea.Quit
	case key.Matches(msg, keys.Generate):
		return a.startGenerate(false)
	case key.Matches(msg, keys.Plan):
		return a.startGenerate(true)
	case key.Matches(msg, keys.Up):
		a.cursor = (a.cursor - 1 + len(fields)) % len(fields)
		return a.focusCurrent()
	case key.Matches(msg, keys.Down):
		a.cursor = (a.cursor + 1) % len(fields)
		return a.focusCurrent()
	}

	if current.kind == fieldText {
		var cmd tea.Cmd
		if current.key == "no_gos" {
			a.noGos, cmd = a.noGos.Update(msg)
		} else {
			a.notes, cmd = a.notes.Update(msg)
		}
		return cmd
	}

	switch {
	case key.Matches(msg, keys.Left):
		a.req = cycle(a.req, current.key, -1)
	case key.Matches(msg, keys.Right):
		a.req = cycle(a.req, current.key, 1)
	}
	if current.key == "variant" {
		a.noGos.SetValue(a.req.NoGos)
		a.cursor = min(a.cursor, len(visibleFields(a.req.Variant))-1)
	}
	return nil
}

func (a *App) focusCurrent() tea.Cmd {
	a.noGos.Blur()
	a.notes.Blur()
	switch visibleFields(a.req.Variant)[a.cursor].key {
	case "no_gos":
		return a.noGos.Focus()
	case "style_notes":
		return a.notes.Focus()
	}
	return nil
}

func (a *App) handleResultKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.New):
		a.view = viewForm
		a.status = ""
		return nil
	case key.Matches(msg, keys.Retry):
		return a.startGenerate(a.lastPlan)
	case key.Matches(msg, keys.Save):
		format, err := export.ParseFormat(saveFormats[msg.String()])
		if err != nil {
			a.status = err.Error()
			return nil
		}
		path, err := a.save(format)
		if err != nil {
			a.status = "Speichern fehlgeschlagen: " + err.Error()
		} else {
			a.status = "Gespeichert: " + path
		}
		return nil
	}
	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return cmd
}

func (a *App) handleErrorKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Retry):
		return a.startGenerate(a.lastPlan)
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.New):
		a.view = viewForm
	}
	return nil
}

// request is the current form state as a generation request.
func (a *App) request() generator.GenerationRequest {
	req := a.req
	req.NoGos = strings.TrimSpace(a.noGos.Value())
	req.StyleNotes = strings.TrimSpace(a.notes.Value())
	return req
}

func (a *App) startGenerate(plan bool) tea.Cmd {
	a.view = viewGenerating
	a.lastPlan = plan
	a.status = ""
	req := a.request()
	sess := a.session
	if plan {
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
			defer cancel()
			res, err := sess.GenerateWeekPlan(ctx, req)
			return planMsg{res: res, err: err}
		}
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
		defer cancel()
		res, err := sess.Generate(ctx, req)
		return storyMsg{res: res, err: err}
	}
}

func (a *App) showResult() {
	a.view = viewResult
	a.refreshResult()
	a.viewport.GotoTop()
}

func (a *App) refreshResult() {
	switch {
	case a.result != nil:
		a.viewport.SetContent(render.Story(a.result.Content, a.result.Request.Variant, a.width))
	case a.plan != nil:
		a.viewport.SetContent(render.WeekPlan(a.plan.Plan, a.width))
	}
}

// save writes the current result to a timestamped file in outDir.
func (a *App) save(format export.Format) (string, error) {
	var (
		buf    strings.Builder
		prefix string
		err    error
	)
	switch {
	case a.result != nil:
		prefix = "ig_story"
		if a.result.Request.Variant == generator.VariantViral {
			prefix = "viral_ig_story"
		}
		err = export.Write(&buf, format, a.result.Content, a.result.Request.Variant)
	case a.plan != nil:
		prefix = "ig_week_plan"
		err = export.WritePlan(&buf, format, a.plan.Plan)
	default:
		return "", errors.New("nothing to export")
	}
	if err != nil {
		return "", err
	}
	path := filepath.Join(a.outDir, export.FileName(prefix, format, a.now()))
	if err := os.WriteFile(path, []byte(buf.String()), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
