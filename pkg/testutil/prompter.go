package testutil

import "sync"

// FakePrompter returns scripted answers in order and records the questions.
type FakePrompter struct {
	mu      sync.Mutex
	answers []string
	asked   []string
}

// NewFakePrompter creates a prompter that answers with answers in order.
// Once exhausted it answers with the empty string.
func NewFakePrompter(answers ...string) *FakePrompter {
	return &FakePrompter{answers: answers}
}

// Ask records question and returns the next answer.
func (p *FakePrompter) Ask(question string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.asked = append(p.asked, question)
	if len(p.answers) == 0 {
		return "", nil
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

// Asked returns the questions asked so far.
func (p *FakePrompter) Asked() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.asked...)
}
