package generator

import (
	"context"
	"errors"
	"sync"
)

// Session holds one user's generation state: the usage tally, the last result
// and the raw text of the last failed decode. It lives only as long as the
// process and is never persisted.
type Session struct {
	ID string

	mu        sync.Mutex
	agent     *Agent
	usage     Usage
	last      *Result
	lastPlan  *PlanResult
	lastRaw   string
	lastError error
}

func NewSession(id string, agent *Agent) *Session {
	return &Session{ID: id, agent: agent}
}

// Generate runs a story request and records the outcome on the session.
func (s *Session) Generate(ctx context.Context, req GenerationRequest) (Result, error) {
	res, err := s.agent.Generate(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(err, res.Raw)
	if err == nil {
		s.last = &res
	}
	return res, err
}

// GenerateWeekPlan runs a batch request and records the outcome on the session.
func (s *Session) GenerateWeekPlan(ctx context.Context, req GenerationRequest) (PlanResult, error) {
	res, err := s.agent.GenerateWeekPlan(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(err, res.Raw)
	if err == nil {
		s.lastPlan = &res
	}
	return res, err
}

// record counts every call that reached the completion service, i.e. all
// outcomes except a rejected request and a failed transport.
func (s *Session) record(err error, raw string) {
	s.lastError = err
	s.lastRaw = ""

	var ve *ValidationError
	var te *TransportError
	if errors.As(err, &ve) || errors.As(err, &te) {
		return
	}
	s.usage.APICalls++
	if err != nil {
		s.lastRaw = raw
	}
}

// Usage returns a copy of the call tally.
func (s *Session) Usage() Usage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.usage
}

// Last returns the most recent successful story, if any.
func (s *Session) Last() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return Result{}, false
	}
	return *s.last, true
}

// LastPlan returns the most recent successful week plan, if any.
func (s *Session) LastPlan() (PlanResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastPlan == nil {
		return PlanResult{}, false
	}
	return *s.lastPlan, true
}

// LastFailure returns the raw output of the last failed decode (empty for
// other failures) and the last error.
func (s *Session) LastFailure() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRaw, s.lastError
}
