package generator

import (
	"context"
	"errors"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
)

// Agent runs one request through assembler, completion service and decoder.
type Agent struct {
	llm LLMClient
	now func() time.Time
}

func NewAgent(llm LLMClient) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	return &Agent{llm: llm, now: time.Now}, nil
}

// Generate produces one story. Errors are *ValidationError, *TransportError or
// *DecodeError; the latter carries the raw output.
func (a *Agent) Generate(ctx context.Context, req GenerationRequest) (Result, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	raw, err := a.complete(ctx, BuildStoryPrompt(req))
	if err != nil {
		return Result{}, err
	}

	content, err := Decode(raw, req.Variant.DecodeOptions()...)
	if err != nil {
		logx.WithContext(ctx).Errorw("decode story failed",
			logx.Field("variant", req.Variant),
			logx.Field("raw_len", len(raw)),
			logx.Field("error", err.Error()))
		return Result{Request: req, Raw: raw}, err
	}
	logx.WithContext(ctx).Infow("story generated",
		logx.Field("variant", req.Variant),
		logx.Field("slides", len(content.Slides)),
		logx.Field("hashtags", len(content.Hashtags)))

	return Result{Request: req, Content: content, Raw: raw, CreatedAt: a.now()}, nil
}

// GenerateWeekPlan produces the 7-day batch plan.
func (a *Agent) GenerateWeekPlan(ctx context.Context, req GenerationRequest) (PlanResult, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return PlanResult{}, err
	}

	raw, err := a.complete(ctx, BuildWeekPlanPrompt(req))
	if err != nil {
		return PlanResult{}, err
	}

	plan, err := DecodeWeekPlan(raw, req.Variant.DecodeOptions()...)
	if err != nil {
		logx.WithContext(ctx).Errorw("decode week plan failed",
			logx.Field("raw_len", len(raw)),
			logx.Field("error", err.Error()))
		return PlanResult{Request: req, Raw: raw}, err
	}
	logx.WithContext(ctx).Infow("week plan generated", logx.Field("days", len(plan.Days)))

	return PlanResult{Request: req, Plan: plan, Raw: raw, CreatedAt: a.now()}, nil
}

func (a *Agent) complete(ctx context.Context, prompt Prompt) (string, error) {
	start := a.now()
	raw, err := a.llm.Complete(ctx, prompt)
	if err != nil {
		logx.WithContext(ctx).Errorw("completion failed",
			logx.Field("model", prompt.Model),
			logx.Field("error", err.Error()))
		var te *TransportError
		if errors.As(err, &te) {
			return "", err
		}
		return "", &TransportError{Err: err}
	}
	logx.WithContext(ctx).Infow("completion done",
		logx.Field("model", prompt.Model),
		logx.Field("temperature", prompt.Temperature),
		logx.Field("duration", time.Since(start).String()))
	return raw, nil
}
