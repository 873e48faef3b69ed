package mapper

import (
	"drama-llm-be/internal/entity"
	"drama-llm-be/internal/model"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToEntity(s *model.Session) *entity.Session {
	if s == nil {
		return nil
	}

	return &entity.Session{
		Id:           s.Id,
		UserId:       s.UserId,
		Token:        s.Token,
		ExpiresAt:    s.ExpiresAt,
		LastActivity: s.LastActivity,
		IpAddress:    s.IpAddress,
		UserAgent:    s.UserAgent,
		CreatedAt:    s.CreatedAt,
	}
}

func (m *SessionMapper) ToModel(s *entity.Session) *model.Session {
	if s == nil {
		return nil
	}

	return &model.Session{
		Id:           s.Id,
		UserId:       s.UserId,
		Token:        s.Token,
		ExpiresAt:    s.ExpiresAt,
		LastActivity: s.LastActivity,
		IpAddress:    s.IpAddress,
		UserAgent:    s.UserAgent,
		CreatedAt:    s.CreatedAt,
	}
}
