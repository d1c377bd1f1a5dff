package llm

import (
	"context"
	"testing"
)

type recordingLLM struct {
	got *ChatOptions
}

func (r *recordingLLM) Chat(_ context.Context, messages []Message, opts ...Option) (Response, error) {
	r.got = DefaultOptions()
	for _, opt := range opts {
		opt(r.got)
	}
	return Response{Message: NewAssistantMessage("echo: " + messages[len(messages)-1].Content)}, nil
}

func TestClientAppliesDefaultsBeforeCallOptions(t *testing.T) {
	inner := &recordingLLM{}
	c := NewClient(inner, WithModel("gpt-4o-mini"), WithTemperature(0.2))

	resp, err := c.Chat(context.Background(), []Message{NewUserMessage("hi")}, WithTemperature(0.9))
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if resp.Message.Content != "echo: hi" {
		t.Errorf("unexpected reply %q", resp.Message.Content)
	}
	if inner.got.Model != "gpt-4o-mini" {
		t.Errorf("default model not applied, got %q", inner.got.Model)
	}
	if inner.got.Temperature != 0.9 {
		t.Errorf("call option should win, got %v", inner.got.Temperature)
	}
}
