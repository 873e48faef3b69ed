package serverutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drama-llm-be/internal/dto"
	"drama-llm-be/internal/pkg/apperror"
)

func TestValidateRequestRegister(t *testing.T) {
	valid := dto.RegisterRequest{Email: "user@example.com", Password: "longenough"}
	assert.NoError(t, ValidateRequest(valid))

	badEmail := dto.RegisterRequest{Email: "not-an-email", Password: "longenough"}
	err := ValidateRequest(badEmail)
	require.Error(t, err)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)

	shortPassword := dto.RegisterRequest{Email: "user@example.com", Password: "short"}
	err = ValidateRequest(shortPassword)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Password")
}

func TestValidateRequestMessageRole(t *testing.T) {
	valid := dto.CreateMessageRequest{Role: "user", Content: "hi"}
	assert.NoError(t, ValidateRequest(valid))

	invalid := dto.CreateMessageRequest{Role: "moderator", Content: "hi"}
	err := ValidateRequest(invalid)
	require.Error(t, err)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
}

func TestValidateRequestSortWhitelist(t *testing.T) {
	valid := dto.ListConversationsQuery{SortBy: "title", SortOrder: "asc"}
	assert.NoError(t, ValidateRequest(valid))

	invalid := dto.ListConversationsQuery{SortBy: "settings"}
	assert.Error(t, ValidateRequest(invalid))
}
