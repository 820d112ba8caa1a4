package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"story_generator/generator"
)

type stubLLM struct {
	raw string
	err error
}

func (s stubLLM) Complete(context.Context, generator.Prompt) (string, error) {
	return s.raw, s.err
}

func newTestServer(t *testing.T, llm generator.LLMClient) *httptest.Server {
	t.Helper()
	agent, err := generator.NewAgent(llm)
	require.NoError(t, err)
	srv, err := New(agent, generator.GenerationRequest{Model: generator.DefaultModel})
	require.NoError(t, err)
	srv.now = func() time.Time { return time.Date(2024, 5, 1, 18, 30, 0, 0, time.UTC) }
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestNewRequiresAgent(t *testing.T) {
	_, err := New(nil, generator.GenerationRequest{})
	require.Error(t, err)
}

func TestOptions(t *testing.T) {
	ts := newTestServer(t, generator.MockLLM{})

	resp, err := http.Get(ts.URL + "/api/options?variant=viral")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out optionsResp
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, generator.VariantViral, out.Catalogue.Variant)
	require.Equal(t, generator.VariantViral, out.Defaults.Variant)
	require.Equal(t, 7, out.Defaults.Viral.Urgency)
	require.NotEmpty(t, out.Models)
	require.Len(t, out.Formats, 5)

	resp2, err := http.Get(ts.URL + "/api/options?variant=spicy")
	require.NoError(t, err)
	resp2.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}

func TestSessionLifecycle(t *testing.T) {
	ts := newTestServer(t, generator.MockLLM{})

	resp, out := postJSON(t, ts.URL+"/api/sessions", `{"variant":"standard"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	id, _ := out["session_id"].(string)
	require.NotEmpty(t, id)
	result := out["result"].(map[string]any)
	content := result["content"].(map[string]any)
	require.Equal(t, "Du bist nicht allein", content["title_hook"])
	require.Len(t, content["slides"], 3)
	require.EqualValues(t, 1, out["usage"].(map[string]any)["api_calls"])

	resp, out = postJSON(t, ts.URL+"/api/sessions/"+id, `{}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.EqualValues(t, 2, out["usage"].(map[string]any)["api_calls"])

	resp, out = postJSON(t, ts.URL+"/api/sessions/"+id+"/plan", `{}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	plan := out["plan"].(map[string]any)["plan"].(map[string]any)
	require.Equal(t, "Zurück zu dir", plan["week_theme"])

	get, err := http.Get(ts.URL + "/api/sessions/" + id)
	require.NoError(t, err)
	defer get.Body.Close()
	var state sessionResp
	require.NoError(t, json.NewDecoder(get.Body).Decode(&state))
	require.Equal(t, 3, state.Usage.APICalls)
	require.NotNil(t, state.Result)
	require.NotNil(t, state.Plan)
}

func TestCreatePlanSession(t *testing.T) {
	ts := newTestServer(t, generator.MockLLM{})
	resp, out := postJSON(t, ts.URL+"/api/sessions?kind=plan", `{}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, out["plan"])
	require.Nil(t, out["result"])
}

func TestExport(t *testing.T) {
	ts := newTestServer(t, generator.MockLLM{})
	_, out := postJSON(t, ts.URL+"/api/sessions", `{"variant":"viral"}`)
	id := out["session_id"].(string)

	resp, err := http.Get(ts.URL + "/api/sessions/" + id + "/export?format=csv")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	require.Contains(t, resp.Header.Get("Content-Disposition"), "viral_ig_story_20240501_1830.csv")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(body), "Slide,Headline,Body,Sticker,Visual\n"))

	missing, err := http.Get(ts.URL + "/api/sessions/" + id + "/export?kind=plan&format=txt")
	require.NoError(t, err)
	missing.Body.Close()
	require.Equal(t, http.StatusNotFound, missing.StatusCode)

	bad, err := http.Get(ts.URL + "/api/sessions/" + id + "/export?format=pdf")
	require.NoError(t, err)
	bad.Body.Close()
	require.Equal(t, http.StatusBadRequest, bad.StatusCode)
}

func TestErrorMapping(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		ts := newTestServer(t, generator.MockLLM{})
		resp, out := postJSON(t, ts.URL+"/api/sessions", `{"tone":"sarkastisch"}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "validation", out["kind"])
		require.Equal(t, "tone", out["field"])
		require.EqualValues(t, 0, out["usage"].(map[string]any)["api_calls"])
	})

	t.Run("transport", func(t *testing.T) {
		ts := newTestServer(t, stubLLM{err: errors.New("connection refused")})
		resp, out := postJSON(t, ts.URL+"/api/sessions", `{}`)
		require.Equal(t, http.StatusBadGateway, resp.StatusCode)
		require.Equal(t, "transport", out["kind"])
	})

	t.Run("decode", func(t *testing.T) {
		ts := newTestServer(t, stubLLM{raw: "Leider kann ich das nicht."})
		resp, out := postJSON(t, ts.URL+"/api/sessions", `{}`)
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		require.Equal(t, "decode", out["kind"])
		require.Equal(t, "Leider kann ich das nicht.", out["raw_text"])
		require.EqualValues(t, 1, out["usage"].(map[string]any)["api_calls"])
	})

	t.Run("bad body", func(t *testing.T) {
		ts := newTestServer(t, generator.MockLLM{})
		resp, err := http.Post(ts.URL+"/api/sessions", "application/json", strings.NewReader(`{"colour":"red"}`))
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestRouting(t *testing.T) {
	ts := newTestServer(t, generator.MockLLM{})

	resp, err := http.Get(ts.URL + "/api/sessions/unknown")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/api/sessions")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "Story Generator")
}
