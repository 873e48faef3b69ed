package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
	MessageRoleSystem    MessageRole = "system"
)

type Message struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	Role           MessageRole
	Content        string
	Metadata       MessageMetadata
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}

// MessageMetadata mirrors ConversationSettings: typed generation stats plus
// an overflow map for keys the server does not interpret.
type MessageMetadata struct {
	Tokens     *int
	DurationMs *int64
	Model      *string
	Extra      map[string]any
}

func (m MessageMetadata) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Extra)+3)
	for k, v := range m.Extra {
		out[k] = v
	}
	if m.Tokens != nil {
		out["tokens"] = *m.Tokens
	}
	if m.DurationMs != nil {
		out["duration_ms"] = *m.DurationMs
	}
	if m.Model != nil {
		out["model"] = *m.Model
	}
	return json.Marshal(out)
}

func (m *MessageMetadata) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*m = MessageMetadata{}
	for key, value := range raw {
		switch key {
		case "tokens":
			if err := json.Unmarshal(value, &m.Tokens); err != nil {
				return err
			}
		case "duration_ms":
			if err := json.Unmarshal(value, &m.DurationMs); err != nil {
				return err
			}
		case "model":
			if err := json.Unmarshal(value, &m.Model); err != nil {
				return err
			}
		default:
			var v any
			if err := json.Unmarshal(value, &v); err != nil {
				return err
			}
			if m.Extra == nil {
				m.Extra = make(map[string]any)
			}
			m.Extra[key] = v
		}
	}
	return nil
}

func ValidMessageRole(role string) bool {
	switch MessageRole(role) {
	case MessageRoleUser, MessageRoleAssistant, MessageRoleSystem:
		return true
	}
	return false
}
