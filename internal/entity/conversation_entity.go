package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Conversation struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	Model     string
	Settings  ConversationSettings
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

// ConversationSettings keeps the sampling parameters the client understands
// as typed fields and carries everything else through Extra, so unknown keys
// written by older frontends survive a read-modify-write cycle.
type ConversationSettings struct {
	Temperature *float64
	TopP        *float64
	TopK        *int
	Role        *string
	Prompt      *string
	Extra       map[string]any
}

func (s ConversationSettings) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Extra)+5)
	for k, v := range s.Extra {
		out[k] = v
	}
	if s.Temperature != nil {
		out["temperature"] = *s.Temperature
	}
	if s.TopP != nil {
		out["topP"] = *s.TopP
	}
	if s.TopK != nil {
		out["topK"] = *s.TopK
	}
	if s.Role != nil {
		out["role"] = *s.Role
	}
	if s.Prompt != nil {
		out["prompt"] = *s.Prompt
	}
	return json.Marshal(out)
}

func (s *ConversationSettings) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = ConversationSettings{}
	for key, value := range raw {
		switch key {
		case "temperature":
			if err := json.Unmarshal(value, &s.Temperature); err != nil {
				return err
			}
		case "topP":
			if err := json.Unmarshal(value, &s.TopP); err != nil {
				return err
			}
		case "topK":
			if err := json.Unmarshal(value, &s.TopK); err != nil {
				return err
			}
		case "role":
			if err := json.Unmarshal(value, &s.Role); err != nil {
				return err
			}
		case "prompt":
			if err := json.Unmarshal(value, &s.Prompt); err != nil {
				return err
			}
		default:
			var v any
			if err := json.Unmarshal(value, &v); err != nil {
				return err
			}
			if s.Extra == nil {
				s.Extra = make(map[string]any)
			}
			s.Extra[key] = v
		}
	}
	return nil
}
