package mapper

import (
	"testing"
	"time"

	"drama-llm-be/internal/entity"
	"drama-llm-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestConversationRoundTrip(t *testing.T) {
	m := NewChatMapper()

	temp := 0.5
	conv := &entity.Conversation{
		Id:     uuid.New(),
		UserId: uuid.New(),
		Title:  "Test",
		Model:  "llama-3-8b",
		Settings: entity.ConversationSettings{
			Temperature: &temp,
			Extra:       map[string]any{"pinned": true},
		},
		CreatedAt: time.Now().Truncate(time.Second),
	}

	row, err := m.ConversationToModel(conv)
	require.NoError(t, err)
	assert.False(t, row.DeletedAt.Valid)
	assert.Contains(t, string(row.Settings), "temperature")

	back, err := m.ConversationToEntity(row)
	require.NoError(t, err)
	assert.Equal(t, conv.Id, back.Id)
	assert.Equal(t, conv.Title, back.Title)
	require.NotNil(t, back.Settings.Temperature)
	assert.Equal(t, temp, *back.Settings.Temperature)
	assert.Equal(t, true, back.Settings.Extra["pinned"])
	assert.False(t, back.IsDeleted)
}

func TestConversationDeletedAtProjection(t *testing.T) {
	m := NewChatMapper()

	deletedAt := time.Now()
	row := &model.Conversation{
		Id:        uuid.New(),
		UserId:    uuid.New(),
		Title:     "Gone",
		Model:     "llama-3-8b",
		Settings:  []byte(`{}`),
		CreatedAt: time.Now(),
		DeletedAt: gorm.DeletedAt{Time: deletedAt, Valid: true},
	}

	e, err := m.ConversationToEntity(row)
	require.NoError(t, err)
	assert.True(t, e.IsDeleted)
	require.NotNil(t, e.DeletedAt)
	assert.WithinDuration(t, deletedAt, *e.DeletedAt, time.Second)

	back, err := m.ConversationToModel(e)
	require.NoError(t, err)
	assert.True(t, back.DeletedAt.Valid)
}

func TestMessageRoundTrip(t *testing.T) {
	m := NewChatMapper()

	tokens := 42
	msg := &entity.Message{
		Id:             uuid.New(),
		ConversationId: uuid.New(),
		Role:           entity.MessageRoleAssistant,
		Content:        "hello",
		Metadata:       entity.MessageMetadata{Tokens: &tokens},
		CreatedAt:      time.Now(),
	}

	row, err := m.MessageToModel(msg)
	require.NoError(t, err)
	assert.Equal(t, "assistant", row.Role)

	back, err := m.MessageToEntity(row)
	require.NoError(t, err)
	assert.Equal(t, msg.Content, back.Content)
	assert.Equal(t, entity.MessageRoleAssistant, back.Role)
	require.NotNil(t, back.Metadata.Tokens)
	assert.Equal(t, tokens, *back.Metadata.Tokens)
}

func TestNilMappings(t *testing.T) {
	m := NewChatMapper()

	conv, err := m.ConversationToEntity(nil)
	require.NoError(t, err)
	assert.Nil(t, conv)

	msg, err := m.MessageToModel(nil)
	require.NoError(t, err)
	assert.Nil(t, msg)
}
