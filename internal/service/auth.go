package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"storefront/internal/model"
)

var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserStore is the identity store surface the auth gate and the order service
// need. Lookups return (nil, nil) on absence.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	ByID(ctx context.Context, id string) (*model.User, error)
	ByEmail(ctx context.Context, email string) (*model.User, error)
}

// AuthService issues credential tokens and resolves them back into users.
type AuthService struct {
	users  UserStore
	secret string
}

func NewAuthService(users UserStore, secret string) *AuthService {
	return &AuthService{users: users, secret: secret}
}

func (s *AuthService) SignUp(ctx context.Context, name, email, password string) (*model.User, string, error) {
	existing, err := s.users.ByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	// Password is stored as supplied. Hashing is a documented gap in the
	// credential contract, not something to fix silently here.
	user := &model.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Password:  password,
		CreatedAt: time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.Token(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.ByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("get user: %w", err)
	}
	if user == nil || user.Password != password {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.Token(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Token signs a credential bound to the user id. It carries no expiry;
// verification checks the signature only.
func (s *AuthService) Token(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
	})

	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ResolveUser verifies a presented credential and loads the bound user.
// It never fails: a missing, malformed, or unverifiable token, or a token
// bound to an unknown user, all resolve to nil (anonymous).
func (s *AuthService) ResolveUser(ctx context.Context, tokenString string) *model.User {
	if tokenString == "" {
		return nil
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil
	}

	user, err := s.users.ByID(ctx, userID)
	if err != nil {
		return nil
	}
	return user
}
