package switchboard

import "time"

// ModelID identifies a model within a provider.
type ModelID string

// String returns the model identifier.
func (id ModelID) String() string { return string(id) }

// Model describes one model offered by a backend.
// Capability flags are nil when the backend does not report them.
type Model struct {
	ID            ModelID   `json:"id"`
	Name          string    `json:"name,omitempty"`
	Description   string    `json:"description,omitempty"`
	OwnedBy       string    `json:"ownedBy,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitzero"`
	ContextLength int64     `json:"contextLength,omitempty"`

	ToolsSupported            *bool `json:"toolsSupported,omitempty"`
	SupportsParallelToolCalls *bool `json:"supportsParallelToolCalls,omitempty"`
	SupportsReasoning         *bool `json:"supportsReasoning,omitempty"`
}

// DisplayName returns Name, falling back to the ID.
func (m Model) DisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	return m.ID.String()
}
