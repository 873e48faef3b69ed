package authutil

import (
	"strings"
	"time"

	"drama-llm-be/internal/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenPayload is the claim set embedded in issued tokens.
type TokenPayload struct {
	UserId uuid.UUID
	Email  string
}

// TokenManager signs and verifies the bearer tokens that double as session
// keys. The session table, not the exp claim, is the authority on revocation;
// the claim only bounds how long a leaked token could be replayed if its
// session row survived.
type TokenManager struct {
	secret           []byte
	expiresIn        time.Duration
	sessionExpiresIn time.Duration
}

func NewTokenManager(secret string, expiresIn, sessionExpiresIn time.Duration) *TokenManager {
	return &TokenManager{
		secret:           []byte(secret),
		expiresIn:        expiresIn,
		sessionExpiresIn: sessionExpiresIn,
	}
}

func (m *TokenManager) Generate(payload TokenPayload) (string, error) {
	claims := jwt.MapClaims{
		"user_id": payload.UserId.String(),
		"email":   payload.Email,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(m.expiresIn).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *TokenManager) Verify(tokenStr string) (*TokenPayload, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperror.Authentication("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperror.Authentication("Invalid token claims")
	}

	userIdStr, _ := claims["user_id"].(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return nil, apperror.Authentication("Invalid token claims")
	}

	email, _ := claims["email"].(string)

	return &TokenPayload{UserId: userId, Email: email}, nil
}

// SessionExpiration returns the expiry for a freshly created session row.
func (m *TokenManager) SessionExpiration() time.Time {
	return time.Now().Add(m.sessionExpiresIn)
}

// ExtractTokenFromHeader pulls the token out of an "Authorization: Bearer x"
// header. Any other shape yields ok=false rather than an error; callers
// decide whether missing credentials are fatal.
func ExtractTokenFromHeader(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
