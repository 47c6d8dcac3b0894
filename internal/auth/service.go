package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/foodsphere/server/internal/entities"
)

var (
	ErrDuplicateUser          = errors.New("user already exists")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrInvalidInput           = errors.New("name, email and password are required")
	ErrPersistenceUnavailable = errors.New("credential store unavailable")
	ErrUserNotFound           = errors.New("user not found")
)

// UserStore is the credential store: user records keyed by email.
// FindByEmail returns (nil, nil) when no record exists. Insert returns
// entities.ErrDuplicate when the email is already taken.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	Insert(ctx context.Context, user *entities.User) error
}

// Service handles registration and login.
type Service struct {
	users  UserStore
	hasher *Hasher
	tokens *TokenIssuer

	// dummyDigest is compared against on unknown emails so both login
	// failure paths spend the same bcrypt time.
	dummyDigest string
}

// NewService creates a new authentication service.
func NewService(users UserStore, hasher *Hasher, tokens *TokenIssuer) *Service {
	dummy, _ := hasher.Hash("foodsphere-unknown-user")
	return &Service{
		users:       users,
		hasher:      hasher,
		tokens:      tokens,
		dummyDigest: dummy,
	}
}

// Register creates a user with a hashed password. It does not log the user in.
func (s *Service) Register(ctx context.Context, name, email, password string) (*entities.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: find user: %w", ErrPersistenceUnavailable, err)
	}
	if existing != nil {
		return nil, ErrDuplicateUser
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		Name:         name,
		Email:        email,
		PasswordHash: digest,
	}

	// The unique index catches a concurrent registration that passed the check above.
	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, entities.ErrDuplicate) {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("%w: insert user: %w", ErrPersistenceUnavailable, err)
	}

	return user, nil
}

// Login verifies credentials and returns a signed token.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("%w: find user: %w", ErrPersistenceUnavailable, err)
	}
	if user == nil {
		s.hasher.Verify(password, s.dummyDigest)
		return "", ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}

// ValidateToken verifies a token issued by Login.
func (s *Service) ValidateToken(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	return s.tokens.Verify(token)
}

// GetUserByEmail returns the user record for an authenticated email.
func (s *Service) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: find user: %w", ErrPersistenceUnavailable, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
