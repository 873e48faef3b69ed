package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageMetadataRoundTrip(t *testing.T) {
	raw := []byte(`{"tokens":128,"duration_ms":450,"model":"llama-3-8b","trace_id":"abc"}`)

	var meta MessageMetadata
	require.NoError(t, json.Unmarshal(raw, &meta))

	require.NotNil(t, meta.Tokens)
	assert.Equal(t, 128, *meta.Tokens)
	require.NotNil(t, meta.DurationMs)
	assert.Equal(t, int64(450), *meta.DurationMs)
	require.NotNil(t, meta.Model)
	assert.Equal(t, "llama-3-8b", *meta.Model)
	assert.Equal(t, "abc", meta.Extra["trace_id"])

	out, err := json.Marshal(meta)
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(out))
}

func TestValidMessageRole(t *testing.T) {
	assert.True(t, ValidMessageRole("user"))
	assert.True(t, ValidMessageRole("assistant"))
	assert.True(t, ValidMessageRole("system"))
	assert.False(t, ValidMessageRole("moderator"))
	assert.False(t, ValidMessageRole(""))
}
