package core

import "context"

// MessageProcessor shapes conversation history before it reaches the model.
type MessageProcessor interface {
	Process(ctx context.Context, msgs []Message) []Message
}

// TokenLimiter keeps the most recent messages that fit inside MaxChars,
// dropping the oldest first. Character count stands in for token count.
type TokenLimiter struct {
	MaxChars int
}

func (p TokenLimiter) Process(ctx context.Context, msgs []Message) []Message {
	if p.MaxChars <= 0 {
		return msgs
	}

	total := 0
	start := len(msgs)
	for i := len(msgs) - 1; i >= 0; i-- {
		if total+len(msgs[i].Content) > p.MaxChars {
			break
		}
		total += len(msgs[i].Content)
		start = i
	}
	return msgs[start:]
}

// ToolCallFilter removes tool result messages from history, keeping the
// conversation the model sees to user and assistant turns.
type ToolCallFilter struct{}

func (ToolCallFilter) Process(ctx context.Context, msgs []Message) []Message {
	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		if m.Role == "tool" {
			continue
		}
		out = append(out, m)
	}
	return out
}
