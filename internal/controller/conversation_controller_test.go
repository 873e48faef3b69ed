package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drama-llm-be/internal/dto"
	"drama-llm-be/internal/pkg/apperror"
	"drama-llm-be/internal/pkg/serverutils"
)

type stubConversationService struct {
	listFn      func(ctx context.Context, userId uuid.UUID, query *dto.ListConversationsQuery) ([]*dto.ConversationResponse, *dto.Pagination, error)
	createFn    func(ctx context.Context, userId uuid.UUID, req *dto.CreateConversationRequest) (*dto.ConversationResponse, error)
	getFn       func(ctx context.Context, userId, conversationId uuid.UUID) (*dto.ConversationDetailResponse, error)
	updateFn    func(ctx context.Context, conversationId uuid.UUID, req *dto.UpdateConversationRequest) (*dto.ConversationResponse, error)
	deleteFn    func(ctx context.Context, conversationId uuid.UUID) error
	exportFn    func(ctx context.Context, conversationId uuid.UUID) (*dto.ExportConversationResponse, error)
	duplicateFn func(ctx context.Context, conversationId uuid.UUID) (*dto.ConversationResponse, error)
}

func (s *stubConversationService) List(ctx context.Context, userId uuid.UUID, query *dto.ListConversationsQuery) ([]*dto.ConversationResponse, *dto.Pagination, error) {
	return s.listFn(ctx, userId, query)
}
func (s *stubConversationService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateConversationRequest) (*dto.ConversationResponse, error) {
	return s.createFn(ctx, userId, req)
}
func (s *stubConversationService) Get(ctx context.Context, userId, conversationId uuid.UUID) (*dto.ConversationDetailResponse, error) {
	return s.getFn(ctx, userId, conversationId)
}
func (s *stubConversationService) Update(ctx context.Context, conversationId uuid.UUID, req *dto.UpdateConversationRequest) (*dto.ConversationResponse, error) {
	return s.updateFn(ctx, conversationId, req)
}
func (s *stubConversationService) Delete(ctx context.Context, conversationId uuid.UUID) error {
	return s.deleteFn(ctx, conversationId)
}
func (s *stubConversationService) Export(ctx context.Context, conversationId uuid.UUID) (*dto.ExportConversationResponse, error) {
	return s.exportFn(ctx, conversationId)
}
func (s *stubConversationService) Duplicate(ctx context.Context, conversationId uuid.UUID) (*dto.ConversationResponse, error) {
	return s.duplicateFn(ctx, conversationId)
}

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

func newTestApp(svc *stubConversationService, userId, conversationId uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(noopLogger{}, false))

	fakeAuth := func(ctx *fiber.Ctx) error {
		ctx.Locals(serverutils.LocalsUserId, userId)
		return ctx.Next()
	}
	fakeOwnership := func(ctx *fiber.Ctx) error {
		ctx.Locals(serverutils.LocalsConversationId, conversationId)
		return ctx.Next()
	}

	NewConversationController(svc).RegisterRoutes(app.Group("/api"), fakeAuth, fakeOwnership)
	return app
}

func TestCreateConversation(t *testing.T) {
	userId := uuid.New()
	convId := uuid.New()

	svc := &stubConversationService{
		createFn: func(ctx context.Context, uid uuid.UUID, req *dto.CreateConversationRequest) (*dto.ConversationResponse, error) {
			assert.Equal(t, userId, uid)
			assert.Equal(t, "llama-3-8b", req.Model)
			return &dto.ConversationResponse{Id: convId, UserId: uid, Model: req.Model, Title: "New Conversation"}, nil
		},
	}
	app := newTestApp(svc, userId, convId)

	req := httptest.NewRequest("POST", "/api/conversations/", strings.NewReader(`{"model":"llama-3-8b"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var envelope map[string]any
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.Equal(t, true, envelope["success"])
}

func TestCreateConversationMissingModel(t *testing.T) {
	svc := &stubConversationService{}
	app := newTestApp(svc, uuid.New(), uuid.New())

	req := httptest.NewRequest("POST", "/api/conversations/", strings.NewReader(`{"title":"No model"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var envelope map[string]any
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.Equal(t, false, envelope["success"])
	assert.Contains(t, envelope["error"], "Model")
}

func TestShowConversationNotFound(t *testing.T) {
	convId := uuid.New()
	svc := &stubConversationService{
		getFn: func(ctx context.Context, userId, conversationId uuid.UUID) (*dto.ConversationDetailResponse, error) {
			return nil, apperror.NotFound("Conversation not found")
		},
	}
	app := newTestApp(svc, uuid.New(), convId)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/conversations/"+convId.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListConversationsPaginationEnvelope(t *testing.T) {
	userId := uuid.New()
	svc := &stubConversationService{
		listFn: func(ctx context.Context, uid uuid.UUID, query *dto.ListConversationsQuery) ([]*dto.ConversationResponse, *dto.Pagination, error) {
			assert.Equal(t, "llama", query.Model)
			return []*dto.ConversationResponse{}, dto.NewPagination(2, 10, 25), nil
		},
	}
	app := newTestApp(svc, userId, uuid.New())

	resp, err := app.Test(httptest.NewRequest("GET", "/api/conversations/?page=2&limit=10&model=llama", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var envelope struct {
		Success    bool            `json:"success"`
		Pagination *dto.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	require.NotNil(t, envelope.Pagination)
	assert.Equal(t, 2, envelope.Pagination.Page)
	assert.Equal(t, int64(25), envelope.Pagination.Total)
	assert.Equal(t, 3, envelope.Pagination.TotalPages)
}

func TestDuplicateConversation(t *testing.T) {
	convId := uuid.New()
	svc := &stubConversationService{
		duplicateFn: func(ctx context.Context, conversationId uuid.UUID) (*dto.ConversationResponse, error) {
			assert.Equal(t, convId, conversationId)
			return &dto.ConversationResponse{Id: uuid.New(), Title: "Chat (Copy)"}, nil
		},
	}
	app := newTestApp(svc, uuid.New(), convId)

	resp, err := app.Test(httptest.NewRequest("POST", "/api/conversations/"+convId.String()+"/duplicate", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}
