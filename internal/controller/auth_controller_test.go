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
	"drama-llm-be/internal/pkg/serverutils"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, req *dto.RegisterRequest, ipAddress, userAgent string) (*dto.AuthResponse, error)
}

func (s *stubAuthService) Register(ctx context.Context, req *dto.RegisterRequest, ipAddress, userAgent string) (*dto.AuthResponse, error) {
	return s.registerFn(ctx, req, ipAddress, userAgent)
}
func (s *stubAuthService) Login(context.Context, *dto.LoginRequest, string, string) (*dto.AuthResponse, error) {
	return nil, nil
}
func (s *stubAuthService) Logout(context.Context, string) error { return nil }
func (s *stubAuthService) ChangePassword(context.Context, uuid.UUID, string, *dto.ChangePasswordRequest) error {
	return nil
}
func (s *stubAuthService) ListSessions(context.Context, uuid.UUID) ([]*dto.SessionResponse, error) {
	return nil, nil
}
func (s *stubAuthService) RevokeSession(context.Context, uuid.UUID, uuid.UUID) error { return nil }

type stubUserService struct{}

func (stubUserService) GetProfile(context.Context, uuid.UUID) (*dto.UserResponse, error) {
	return nil, nil
}
func (stubUserService) UpdateProfile(context.Context, uuid.UUID, *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	return nil, nil
}

func newAuthTestApp(svc *stubAuthService, registrationEnabled bool) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(noopLogger{}, false))

	passThrough := func(ctx *fiber.Ctx) error { return ctx.Next() }
	NewAuthController(svc, stubUserService{}, registrationEnabled).RegisterRoutes(app.Group("/api"), passThrough)
	return app
}

func postRegister(t *testing.T, app *fiber.App, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, _ := io.ReadAll(resp.Body)
	var envelope map[string]any
	require.NoError(t, json.Unmarshal(raw, &envelope))
	return resp.StatusCode, envelope
}

// A disabled registry answers the same way for every request, even when the
// payload would not pass field validation.
func TestRegisterDisabledBeforeValidation(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(context.Context, *dto.RegisterRequest, string, string) (*dto.AuthResponse, error) {
			t.Fatal("service must not be called when registration is disabled")
			return nil, nil
		},
	}
	app := newAuthTestApp(svc, false)

	status, envelope := postRegister(t, app, `{"email":"not-an-email","password":"x"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Registration is currently disabled", envelope["error"])
}

func TestRegisterEnabledValidatesFields(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(context.Context, *dto.RegisterRequest, string, string) (*dto.AuthResponse, error) {
			t.Fatal("service must not be called for invalid input")
			return nil, nil
		},
	}
	app := newAuthTestApp(svc, true)

	status, envelope := postRegister(t, app, `{"email":"not-an-email","password":"password123"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, envelope["error"], "Email")
}

func TestRegisterSuccess(t *testing.T) {
	userId := uuid.New()
	svc := &stubAuthService{
		registerFn: func(_ context.Context, req *dto.RegisterRequest, _, _ string) (*dto.AuthResponse, error) {
			assert.Equal(t, "new@example.com", req.Email)
			return &dto.AuthResponse{
				User:  &dto.UserResponse{Id: userId, Email: req.Email},
				Token: "token",
			}, nil
		},
	}
	app := newAuthTestApp(svc, true)

	status, envelope := postRegister(t, app, `{"email":"new@example.com","password":"password123"}`)
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, true, envelope["success"])
}
