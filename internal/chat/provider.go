// Package chat answers farmer questions through an OpenAI-compatible LLM
// and falls back to keyword-matched canned replies when no model is reachable.
package chat

import (
	"context"
	"errors"
)

// Message roles sent to the model.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrEmptyCompletion is returned when the model answers without usable text.
var ErrEmptyCompletion = errors.New("completion has no content")

// Message is one turn of the conversation sent to a Provider.
type Message struct {
	Role    string
	Content string
}

// Provider produces one assistant completion for an ordered conversation.
type Provider interface {
	Name() string
	Complete(ctx context.Context, messages []Message) (string, error)
}
