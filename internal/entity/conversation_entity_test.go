package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationSettingsRoundTrip(t *testing.T) {
	raw := []byte(`{"temperature":0.7,"topP":0.9,"topK":40,"role":"assistant","prompt":"be brief","custom_flag":true}`)

	var settings ConversationSettings
	require.NoError(t, json.Unmarshal(raw, &settings))

	require.NotNil(t, settings.Temperature)
	assert.Equal(t, 0.7, *settings.Temperature)
	require.NotNil(t, settings.TopP)
	assert.Equal(t, 0.9, *settings.TopP)
	require.NotNil(t, settings.TopK)
	assert.Equal(t, 40, *settings.TopK)
	require.NotNil(t, settings.Role)
	assert.Equal(t, "assistant", *settings.Role)
	require.NotNil(t, settings.Prompt)
	assert.Equal(t, "be brief", *settings.Prompt)

	// Unknown keys land in Extra and survive re-serialization.
	assert.Equal(t, true, settings.Extra["custom_flag"])

	out, err := json.Marshal(settings)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, 0.7, decoded["temperature"])
	assert.Equal(t, true, decoded["custom_flag"])
}

func TestConversationSettingsEmpty(t *testing.T) {
	var settings ConversationSettings
	require.NoError(t, json.Unmarshal([]byte(`{}`), &settings))

	assert.Nil(t, settings.Temperature)
	assert.Nil(t, settings.Extra)

	out, err := json.Marshal(settings)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(out))
}
