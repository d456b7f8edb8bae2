package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/wavdex/backend/internal/user"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInternalError      = errors.New("internal Server Error")
)

type UserService interface {
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
	GetUserByID(ctx context.Context, userID string) (*user.User, error)
}

type Service interface {
	Login(ctx context.Context, email, password string) (string, *user.User, error)
	JWTAccessTokenMiddleware() func(http.Handler) http.Handler
}

type service struct {
	userService UserService
	jwtManager  JWTManagerInterface
}

func NewAuthService(userService UserService, jwtManager JWTManagerInterface) Service {
	return &service{
		userService: userService,
		jwtManager:  jwtManager,
	}
}

// Login verifies the credentials and issues a 7-day access token. Wrong
// email and wrong password are indistinguishable to the caller.
func (s *service) Login(ctx context.Context, email, password string) (string, *user.User, error) {
	existingUser, err := s.userService.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, ErrInternalError
	}

	err = bcrypt.CompareHashAndPassword([]byte(existingUser.PasswordHash), []byte(password))
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateAccessJWT(existingUser.ID.String(), defaultJWTDuration)
	if err != nil {
		return "", nil, ErrInternalError
	}

	return token, existingUser, nil
}
