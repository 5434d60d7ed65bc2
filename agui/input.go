package agui

import (
	"errors"

	"github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"

	sb "github.com/spetersoncode/switchboard"
)

// RunInput is the AG-UI request for one chat run. Model selects the
// switchboard model; it may be left empty when the server has a default.
type RunInput struct {
	ThreadID    string           `json:"threadId"`
	RunID       string           `json:"runId"`
	Model       string           `json:"model,omitempty"`
	Messages    []events.Message `json:"messages"`
	MaxTokens   int              `json:"maxTokens,omitempty"`
	Temperature *float64         `json:"temperature,omitempty"`
}

// PreparedInput is a validated RunInput ready to hand to a client.
type PreparedInput struct {
	ThreadID     string
	RunID        string
	Model        sb.ModelID
	Conversation sb.Context
}

var (
	// ErrNoMessages is returned when the input has no usable messages.
	ErrNoMessages = errors.New("no messages provided")

	// ErrNoModel is returned when neither the input nor the server names a model.
	ErrNoModel = errors.New("no model provided")
)

// Prepare validates the input and converts it to a switchboard conversation.
// defaultModel is used when the input names none. The thread ID becomes the
// conversation ID so backend logs line up with the frontend thread.
func (r *RunInput) Prepare(defaultModel sb.ModelID) (*PreparedInput, error) {
	model := sb.ModelID(r.Model)
	if model == "" {
		model = defaultModel
	}
	if model == "" {
		return nil, ErrNoModel
	}

	messages := ToMessages(r.Messages)
	if len(messages) == 0 {
		return nil, ErrNoMessages
	}

	threadID := r.ThreadID
	if threadID == "" {
		threadID = events.GenerateThreadID()
	}
	runID := r.RunID
	if runID == "" {
		runID = events.GenerateRunID()
	}

	conv := sb.NewContext(messages...)
	conv.ConversationID = threadID
	conv.MaxTokens = r.MaxTokens
	conv.Temperature = r.Temperature

	return &PreparedInput{
		ThreadID:     threadID,
		RunID:        runID,
		Model:        model,
		Conversation: conv,
	}, nil
}
