package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubLLM struct {
	raw     string
	err     error
	calls   int
	prompts []Prompt
}

func (s *stubLLM) Complete(_ context.Context, p Prompt) (string, error) {
	s.calls++
	s.prompts = append(s.prompts, p)
	return s.raw, s.err
}

func TestNewAgentRequiresClient(t *testing.T) {
	_, err := NewAgent(nil)
	require.Error(t, err)
}

func TestAgentGenerate(t *testing.T) {
	llm := &stubLLM{raw: `{"title_hook":"Hi","slides":[{"headline":"a"}]}`}
	agent, err := NewAgent(llm)
	require.NoError(t, err)

	res, err := agent.Generate(context.Background(), GenerationRequest{})
	require.NoError(t, err)
	require.Equal(t, "Hi", res.Content.Hook)
	require.Equal(t, 1, res.Content.Slides[0].Index)
	require.Equal(t, llm.raw, res.Raw)
	require.Equal(t, VariantStandard, res.Request.Variant)
	require.False(t, res.CreatedAt.IsZero())
	require.Equal(t, 1, llm.calls)
	require.True(t, llm.prompts[0].JSON)
}

func TestAgentGenerateValidationSkipsCall(t *testing.T) {
	llm := &stubLLM{raw: `{}`}
	agent, _ := NewAgent(llm)

	_, err := agent.Generate(context.Background(), GenerationRequest{SlideCount: 42})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	require.Zero(t, llm.calls)
}

func TestAgentGenerateTransportError(t *testing.T) {
	llm := &stubLLM{err: errors.New("401 unauthorized")}
	agent, _ := NewAgent(llm)

	_, err := agent.Generate(context.Background(), GenerationRequest{})
	var te *TransportError
	require.True(t, errors.As(err, &te))
	require.Contains(t, err.Error(), "401 unauthorized")
}

func TestAgentGenerateDecodeError(t *testing.T) {
	llm := &stubLLM{raw: "Tut mir leid, das kann ich nicht."}
	agent, _ := NewAgent(llm)

	res, err := agent.Generate(context.Background(), GenerationRequest{})
	var de *DecodeError
	require.True(t, errors.As(err, &de))
	require.Equal(t, llm.raw, de.RawText)
	require.Equal(t, llm.raw, res.Raw)
}

func TestAgentLenientRepairFollowsVariant(t *testing.T) {
	raw := `{'title_hook': 'Viral', 'ok': True}`

	agent, _ := NewAgent(&stubLLM{raw: raw})
	_, err := agent.Generate(context.Background(), GenerationRequest{Variant: VariantStandard})
	require.Error(t, err)

	res, err := agent.Generate(context.Background(), GenerationRequest{Variant: VariantViral})
	require.NoError(t, err)
	require.Equal(t, "Viral", res.Content.Hook)
}

func TestAgentWithMockLLM(t *testing.T) {
	agent, _ := NewAgent(MockLLM{})

	res, err := agent.Generate(context.Background(), GenerationRequest{})
	require.NoError(t, err)
	require.Equal(t, "Du bist nicht allein", res.Content.Hook)
	require.Len(t, res.Content.Slides, 3)
	require.Equal(t, 3, res.Content.Slides[2].Index)
	require.NotNil(t, res.Content.Interaction)

	plan, err := agent.GenerateWeekPlan(context.Background(), GenerationRequest{})
	require.NoError(t, err)
	require.Equal(t, "Zurück zu dir", plan.Plan.Theme)
}
