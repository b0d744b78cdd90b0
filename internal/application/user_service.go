package application

import (
	"context"
	"fmt"
	"time"

	"glowcart-marketing-core/internal/domain"
	"glowcart-marketing-core/internal/ports"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles dashboard user registration and login. Passwords are
// bcrypt hashed before they reach the repository.
type UserService struct {
	users    ports.UserRepository
	sessions ports.SessionStore
	logger   zerolog.Logger
}

// NewUserService creates the user service.
func NewUserService(users ports.UserRepository, sessions ports.SessionStore, logger zerolog.Logger) *UserService {
	return &UserService{users: users, sessions: sessions, logger: logger}
}

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	ShopID   string `json:"shop_id"`
}

// Register creates a user and starts their session.
func (s *UserService) Register(ctx context.Context, session *domain.Session, input RegisterInput) (*domain.User, error) {
	if input.Username == "" || input.Password == "" || input.Email == "" {
		return nil, domain.NewValidation("username, password and email are required")
	}

	existing, err := s.users.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, domain.NewConflict("username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		FullName:     input.FullName,
		PasswordHash: string(hash),
		ShopID:       input.ShopID,
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	session.UserID = user.ID
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	s.logger.Info().Str("username", user.Username).Msg("User registered")
	return user, nil
}

// Login verifies credentials and binds the user (and their shop, when they
// belong to one) into the session.
func (s *UserService) Login(ctx context.Context, session *domain.Session, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.NewValidation("username and password required")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, domain.NewUnauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.NewUnauthorized("invalid credentials")
	}

	session.UserID = user.ID
	if user.ShopID != "" {
		session.ShopID = user.ShopID
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	s.logger.Info().Str("username", user.Username).Msg("User logged in")
	return user, nil
}

// Logout destroys the session.
func (s *UserService) Logout(ctx context.Context, session *domain.Session) error {
	if err := s.sessions.Delete(ctx, session.Token); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

// Update lets a user modify their own profile fields.
func (s *UserService) Update(ctx context.Context, user *domain.User, email, fullName string) (*domain.User, error) {
	if email != "" {
		user.Email = email
	}
	if fullName != "" {
		user.FullName = fullName
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}
