package ai

import "context"

// StubClient заглушка, которая не делает реальных запросов
type StubClient struct {
	Text string
}

func NewStubClient(text string) *StubClient { return &StubClient{Text: text} }

func (c *StubClient) SuggestAlternativeStart(_ context.Context, _ string) (string, bool) {
	return CleanSuggestion(c.Text)
}
