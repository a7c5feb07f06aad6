package ai

import (
	"context"
	"sync"
)

// scriptedModel replays canned replies in order and records the prompts it
// was given.
type scriptedModel struct {
	mu      sync.Mutex
	replies []string
	err     error
	parts   []Part
	prompts []string
}

func (m *scriptedModel) GenerateText(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	if len(m.replies) == 0 {
		return "", nil
	}
	reply := m.replies[0]
	m.replies = m.replies[1:]
	return reply, nil
}

func (m *scriptedModel) GenerateImage(_ context.Context, prompt string) ([]Part, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return nil, m.err
	}
	return m.parts, nil
}

func (m *scriptedModel) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}
