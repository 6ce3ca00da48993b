package services

import (
	"agrotech-backend/internal/auth"
	"agrotech-backend/internal/config"
	"agrotech-backend/internal/models"
	"agrotech-backend/internal/store"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Custom errors for auth service
var (
	ErrUserAlreadyExists  = errors.New("username already taken")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrHashingPassword    = errors.New("failed to hash password")
	ErrCreatingToken      = errors.New("failed to create access token")
	ErrCreatingUser       = errors.New("failed to create user")
	ErrValidation         = errors.New("input validation failed") // Generic validation error
)

const (
	minUsernameLength = 3
	minPasswordLength = 6
)

type AuthService struct {
	store store.Store
	cfg   *config.Config
}

func NewAuthService(s store.Store, cfg *config.Config) *AuthService {
	return &AuthService{
		store: s,
		cfg:   cfg,
	}
}

func validateRegistration(req *models.RegisterRequest) error {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Name = strings.TrimSpace(req.Name)

	switch {
	case utf8.RuneCountInString(req.Username) < minUsernameLength:
		return fmt.Errorf("%w: username must be at least %d characters", ErrValidation, minUsernameLength)
	case utf8.RuneCountInString(req.Password) < minPasswordLength:
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	case req.Email == "" || !strings.Contains(req.Email, "@"):
		return fmt.Errorf("%w: a valid email is required", ErrValidation)
	case req.Name == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	return nil
}

// Register creates a user with the default role and returns an access token for it.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (string, *models.User, error) {
	if err := validateRegistration(&req); err != nil {
		return "", nil, err
	}

	// Check if user already exists
	_, err := s.store.GetUserByUsername(ctx, req.Username)
	if err == nil {
		return "", nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Printf("Error checking user existence for %s: %v", req.Username, err)
		return "", nil, fmt.Errorf("failed to check user existence: %w", err)
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("Error hashing password for %s: %v", req.Username, err)
		return "", nil, ErrHashingPassword
	}

	user := &models.User{
		ID:             uuid.New(),
		Username:       req.Username,
		Email:          req.Email,
		Name:           req.Name,
		Role:           models.RoleUser,
		HashedPassword: hashedPassword,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, store.ErrEmailConflict):
			return "", nil, ErrEmailAlreadyExists
		case errors.Is(err, store.ErrConflict):
			// Lost a race with a concurrent registration of the same name.
			return "", nil, ErrUserAlreadyExists
		}
		log.Printf("Error creating user %s: %v", req.Username, err)
		return "", nil, fmt.Errorf("%w: %v", ErrCreatingUser, err)
	}

	token, err := auth.NewAccessToken(user.ID, user.Username, user.Role, s.cfg.JWTSecret, s.cfg.TokenExpiration)
	if err != nil {
		log.Printf("Error generating JWT for new user %s (ID: %s): %v", user.Username, user.ID, err)
		return "", nil, ErrCreatingToken
	}

	log.Printf("Successfully registered user %s (ID: %s)", user.Username, user.ID)
	return token, user, nil
}

// Login verifies user credentials and returns an access token and user info.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, ErrInvalidCredentials // Basic check before hitting the store
	}

	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil, ErrInvalidCredentials // Don't reveal if user exists or password is wrong
		}
		log.Printf("Error retrieving user %s during login: %v", username, err)
		return "", nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	if !auth.CheckPasswordHash(password, user.HashedPassword) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.NewAccessToken(user.ID, user.Username, user.Role, s.cfg.JWTSecret, s.cfg.TokenExpiration)
	if err != nil {
		log.Printf("Error generating JWT for user %s (ID: %s): %v", user.Username, user.ID, err)
		return "", nil, ErrCreatingToken
	}

	log.Printf("Successfully logged in user %s (ID: %s)", user.Username, user.ID)
	return token, user, nil
}

// GetUser returns the user behind a verified token. Returns store.ErrNotFound
// if the account no longer exists.
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("Error retrieving user %s: %v", id, err)
		}
		return nil, err
	}
	return user, nil
}
