package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"drama-llm-be/internal/dto"
	"drama-llm-be/internal/entity"
	"drama-llm-be/internal/pkg/apperror"
	"drama-llm-be/internal/pkg/authutil"
	"drama-llm-be/internal/pkg/logger"
	"drama-llm-be/internal/repository/specification"
	"drama-llm-be/internal/repository/unitofwork"
	"drama-llm-be/pkg/events"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest, ipAddress, userAgent string) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, userId uuid.UUID, token string, req *dto.ChangePasswordRequest) error
	ListSessions(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error)
	RevokeSession(ctx context.Context, userId, sessionId uuid.UUID) error
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	hasher         *authutil.PasswordHasher
	tokens         *authutil.TokenManager
	eventPublisher IPublisherService
	log            logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	hasher *authutil.PasswordHasher,
	tokens *authutil.TokenManager,
	eventPublisher IPublisherService,
	log logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		hasher:         hasher,
		tokens:         tokens,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *authService) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	event := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.log.Warn("auth", "failed to publish audit event", map[string]interface{}{
			"event_type": eventType,
			"error":      err.Error(),
		})
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest, ipAddress, userAgent string) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("User with this email already exists")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
		Username:     req.Username,
		IsActive:     true,
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(authutil.TokenPayload{UserId: user.Id, Email: user.Email})
	if err != nil {
		return nil, err
	}

	session := &entity.Session{
		UserId:    user.Id,
		Token:     token,
		ExpiresAt: s.tokens.SessionExpiration(),
		IpAddress: ipAddress,
		UserAgent: userAgent,
	}
	if err := uow.SessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.log.Info("auth", "new user registered", map[string]interface{}{"email": user.Email})
	s.publish(ctx, "USER_REGISTERED", map[string]interface{}{
		"user_id": user.Id.String(),
		"email":   user.Email,
	})

	return &dto.AuthResponse{
		User:      dto.NewUserResponse(user),
		Token:     token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.Authentication("Invalid email or password")
	}
	if !user.IsActive {
		return nil, apperror.Authentication("Account is deactivated")
	}
	if !s.hasher.Compare(req.Password, user.PasswordHash) {
		return nil, apperror.Authentication("Invalid email or password")
	}

	// Opportunistic cleanup of this user's expired sessions.
	if err := uow.SessionRepository().DeleteExpiredByUser(ctx, user.Id); err != nil {
		return nil, err
	}

	if err := uow.UserRepository().UpdateLastLogin(ctx, user.Id); err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(authutil.TokenPayload{UserId: user.Id, Email: user.Email})
	if err != nil {
		return nil, err
	}

	session := &entity.Session{
		UserId:    user.Id,
		Token:     token,
		ExpiresAt: s.tokens.SessionExpiration(),
		IpAddress: ipAddress,
		UserAgent: userAgent,
	}
	if err := uow.SessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}

	s.log.Info("auth", "user logged in", map[string]interface{}{"email": user.Email})
	s.publish(ctx, "USER_LOGIN", map[string]interface{}{
		"user_id": user.Id.String(),
		"device":  userAgent,
	})

	return &dto.AuthResponse{
		User:      dto.NewUserResponse(user),
		Token:     token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// Logout deletes the session row for the presented token. Unknown tokens are
// not an error; logging out twice succeeds both times.
func (s *authService) Logout(ctx context.Context, token string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.SessionRepository().DeleteByToken(ctx, token)
}

func (s *authService) ChangePassword(ctx context.Context, userId uuid.UUID, token string, req *dto.ChangePasswordRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NotFound("User not found")
	}
	if !s.hasher.Compare(req.CurrentPassword, user.PasswordHash) {
		return apperror.Authentication("Current password is incorrect")
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return err
	}
	if err := uow.UserRepository().UpdatePassword(ctx, userId, hash); err != nil {
		return err
	}

	// Every other session dies with the old password.
	if err := uow.SessionRepository().DeleteOthers(ctx, userId, token); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.log.Info("auth", "password changed", map[string]interface{}{"user_id": userId.String()})
	s.publish(ctx, "PASSWORD_CHANGED", map[string]interface{}{
		"user_id": userId.String(),
	})

	return nil
}

func (s *authService) ListSessions(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.SessionRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.ActiveAt{Now: time.Now()},
		specification.OrderBy{Field: "last_activity", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.SessionResponse, len(sessions))
	for i, sess := range sessions {
		out[i] = &dto.SessionResponse{
			Id:           sess.Id,
			ExpiresAt:    sess.ExpiresAt,
			LastActivity: sess.LastActivity,
			IpAddress:    sess.IpAddress,
			UserAgent:    sess.UserAgent,
			CreatedAt:    sess.CreatedAt,
		}
	}
	return out, nil
}

func (s *authService) RevokeSession(ctx context.Context, userId, sessionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	affected, err := uow.SessionRepository().DeleteByIDAndUser(ctx, sessionId, userId)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperror.NotFound("Session not found")
	}
	return nil
}
