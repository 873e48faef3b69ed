package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"drama-llm-be/internal/dto"
	"drama-llm-be/internal/pkg/apperror"
	"drama-llm-be/internal/repository/specification"
	"drama-llm-be/internal/repository/unitofwork"
)

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{
		uowFactory: uowFactory,
	}
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}
	return dto.NewUserResponse(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if req.Username == nil && req.Email == nil {
		return nil, apperror.Validation("No fields to update")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	if req.Email != nil {
		taken, err := uow.UserRepository().Count(ctx, specification.ByEmailExcluding{Email: *req.Email, UserID: userId})
		if err != nil {
			return nil, err
		}
		if taken > 0 {
			return nil, apperror.Conflict("Email already in use")
		}
		user.Email = strings.ToLower(*req.Email)
	}
	if req.Username != nil {
		user.Username = req.Username
	}

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}
