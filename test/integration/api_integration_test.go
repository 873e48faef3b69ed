package integration

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"drama-llm-be/internal/bootstrap"
	"drama-llm-be/internal/config"
	"drama-llm-be/internal/entity"
	"drama-llm-be/internal/repository/specification"
	"drama-llm-be/internal/repository/unitofwork"
	"drama-llm-be/internal/server"
	"drama-llm-be/internal/service"
	"drama-llm-be/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type quietLogger struct{}

func (quietLogger) Debug(string, string, map[string]interface{}) {}
func (quietLogger) Info(string, string, map[string]interface{})  {}
func (quietLogger) Warn(string, string, map[string]interface{})  {}
func (quietLogger) Error(string, string, map[string]interface{}) {}
func (quietLogger) Sync() error                                  { return nil }

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)
	return gormDB
}

func createTestUser(t *testing.T, ctx context.Context, uow unitofwork.UnitOfWork) *entity.User {
	t.Helper()
	user := &entity.User{
		Email:        "integration-" + uuid.New().String() + "@example.com",
		PasswordHash: "$2a$04$placeholderplaceholderplaceholde",
		IsActive:     true,
	}
	require.NoError(t, uow.UserRepository().Create(ctx, user))
	return user
}

func TestRepositoryIntegration(t *testing.T) {
	gormDB := openTestDB(t)

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	ctx := context.Background()
	uow := uowFactory.NewUnitOfWork(ctx)

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.SessionRepository())
	assert.NotNil(t, uow.ConversationRepository())
	assert.NotNil(t, uow.MessageRepository())

	sqlDB, _ := gormDB.DB()
	require.NoError(t, sqlDB.Ping())

	t.Run("conversation message transaction", func(t *testing.T) {
		user := createTestUser(t, ctx, uow)

		txUow := uowFactory.NewUnitOfWork(ctx)
		require.NoError(t, txUow.Begin(ctx))
		defer txUow.Rollback()

		conv := &entity.Conversation{
			UserId: user.Id,
			Title:  "Integration",
			Model:  "llama-3-8b",
		}
		require.NoError(t, txUow.ConversationRepository().Create(ctx, conv))

		msg := &entity.Message{
			ConversationId: conv.Id,
			Role:           entity.MessageRoleUser,
			Content:        "hello",
		}
		require.NoError(t, txUow.MessageRepository().Create(ctx, msg))
		require.NoError(t, txUow.ConversationRepository().Touch(ctx, conv.Id))
		require.NoError(t, txUow.Commit())

		found, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: conv.Id})
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Integration", found.Title)

		count, err := uow.MessageRepository().Count(ctx, specification.ByConversationID{ConversationID: conv.Id})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		// Soft delete hides the row from reads.
		require.NoError(t, uow.ConversationRepository().Delete(ctx, conv.Id))
		gone, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: conv.Id})
		require.NoError(t, err)
		assert.Nil(t, gone)
	})

	t.Run("session lifecycle", func(t *testing.T) {
		user := createTestUser(t, ctx, uow)

		token := "test-token-" + uuid.New().String()
		session := &entity.Session{
			UserId:    user.Id,
			Token:     token,
			ExpiresAt: time.Now().Add(time.Hour),
		}
		require.NoError(t, uow.SessionRepository().Create(ctx, session))

		found, err := uow.SessionRepository().FindOne(ctx,
			specification.ByToken{Token: token},
			specification.ActiveAt{Now: time.Now()},
		)
		require.NoError(t, err)
		require.NotNil(t, found)

		require.NoError(t, uow.SessionRepository().DeleteByToken(ctx, token))
		gone, err := uow.SessionRepository().FindOne(ctx, specification.ByToken{Token: token})
		require.NoError(t, err)
		assert.Nil(t, gone)
	})
}

func TestConversationDuplicateIntegration(t *testing.T) {
	gormDB := openTestDB(t)

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	ctx := context.Background()
	uow := uowFactory.NewUnitOfWork(ctx)

	user := createTestUser(t, ctx, uow)

	source := &entity.Conversation{
		UserId: user.Id,
		Title:  "Duplicate source",
		Model:  "llama-3-8b",
	}
	require.NoError(t, uow.ConversationRepository().Create(ctx, source))

	base := time.Now().Add(-time.Minute).Truncate(time.Millisecond)
	originals := []*entity.Message{
		{ConversationId: source.Id, Role: entity.MessageRoleUser, Content: "first question", CreatedAt: base},
		{ConversationId: source.Id, Role: entity.MessageRoleAssistant, Content: "first answer", CreatedAt: base.Add(time.Second)},
		{ConversationId: source.Id, Role: entity.MessageRoleUser, Content: "second question", CreatedAt: base.Add(2 * time.Second)},
	}
	require.NoError(t, uow.MessageRepository().CreateBatch(ctx, originals))

	// A deleted message must not travel with the copy.
	deleted := &entity.Message{
		ConversationId: source.Id,
		Role:           entity.MessageRoleAssistant,
		Content:        "regretted answer",
	}
	require.NoError(t, uow.MessageRepository().Create(ctx, deleted))
	affected, err := uow.MessageRepository().DeleteScoped(ctx, deleted.Id, source.Id)
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)

	svc := service.NewConversationService(uowFactory, nil, quietLogger{})

	res, err := svc.Duplicate(ctx, source.Id)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "Duplicate source (Copy)", res.Title)
	assert.NotEqual(t, source.Id, res.Id)

	copies, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: res.Id},
		specification.OrderBy{Field: "created_at"},
	)
	require.NoError(t, err)
	require.Len(t, copies, 3)
	for i, want := range originals {
		assert.Equal(t, want.Role, copies[i].Role)
		assert.Equal(t, want.Content, copies[i].Content)
	}

	// Source side stays untouched.
	kept, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: source.Id},
		specification.OrderBy{Field: "created_at"},
	)
	require.NoError(t, err)
	require.Len(t, kept, 3)
	for i, want := range originals {
		assert.Equal(t, want.Content, kept[i].Content)
	}

	unchanged, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: source.Id})
	require.NoError(t, err)
	require.NotNil(t, unchanged)
	assert.Equal(t, "Duplicate source", unchanged.Title)
}

func TestRegisterMeFlow(t *testing.T) {
	gormDB := openTestDB(t)

	cfg := &config.Config{
		App: config.AppConfig{
			Port:               "0",
			Environment:        "test",
			LogFilePath:        filepath.Join(t.TempDir(), "app.log"),
			CorsAllowedOrigins: "http://localhost:5173",
			EnableRegistration: true,
		},
		Auth: config.AuthConfig{
			JWTSecret:        "integration-test-secret",
			JWTExpiresIn:     time.Hour,
			SessionExpiresIn: time.Hour,
			BcryptRounds:     4,
		},
	}

	container := bootstrap.NewContainer(gormDB, cfg)
	app := server.New(cfg, container).GetApp()

	email := "integration-" + uuid.New().String() + "@example.com"
	body := `{"email":"` + email + `","password":"password123","username":"tester"}`

	req := httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 15000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	var registered struct {
		Success bool `json:"success"`
		Data    struct {
			Token string `json:"token"`
			User  struct {
				Email string `json:"email"`
			} `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &registered))
	require.True(t, registered.Success)
	require.NotEmpty(t, registered.Data.Token)
	assert.Equal(t, email, registered.Data.User.Email)

	meReq := httptest.NewRequest("GET", "/api/auth/me", nil)
	meReq.Header.Set("Authorization", "Bearer "+registered.Data.Token)
	meResp, err := app.Test(meReq, 15000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, meResp.StatusCode)

	meRaw, _ := io.ReadAll(meResp.Body)
	var me struct {
		Success bool `json:"success"`
		Data    struct {
			Email string `json:"email"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(meRaw, &me))
	require.True(t, me.Success)
	assert.Equal(t, email, me.Data.Email)

	// A made-up token must not pass the session gate.
	badReq := httptest.NewRequest("GET", "/api/auth/me", nil)
	badReq.Header.Set("Authorization", "Bearer not-a-real-token")
	badResp, err := app.Test(badReq, 15000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, badResp.StatusCode)
}
