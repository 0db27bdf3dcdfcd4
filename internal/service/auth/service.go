package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Diego999991/ecommerce-api/internal/domain"
	tokenrepo "github.com/Diego999991/ecommerce-api/internal/repository/token"
	userrepo "github.com/Diego999991/ecommerce-api/internal/repository/user"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

// Service handles registration, login and token resolution.
type Service struct {
	users       userRepo
	tokens      *tokenManager
	accessTTL   time.Duration
	passwordMin int
}

type userRepo interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// New creates a Service with sane defaults.
func New(users userrepo.Repository, tokens tokenrepo.Repository) *Service {
	return &Service{
		users:       users,
		tokens:      newTokenManager(tokens),
		accessTTL:   48 * time.Hour,
		passwordMin: 6,
	}
}

// RegisterInput captures fields expected by the register endpoint.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and returns it with a fresh access token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(strings.ToLower(in.Email))
	password := strings.TrimSpace(in.Password)
	if name == "" || email == "" || password == "" {
		return nil, "", domain.Validationf("name, email and password are required")
	}
	if len(password) < s.passwordMin {
		return nil, "", domain.Validationf("password must be at least %d characters", s.passwordMin)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	u, err := s.users.Create(ctx, domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         domain.RoleCustomer,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(ctx, u.ID, "access", s.accessTTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login validates credentials and returns the user with an access token. It
// never says whether the email or the password was wrong.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return nil, "", domain.Validationf("email and password are required")
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(ctx, u.ID, "access", s.accessTTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Profile returns the account for an authenticated user id.
func (s *Service) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// LookupByToken resolves a bearer token to its user, for the auth middleware.
func (s *Service) LookupByToken(ctx context.Context, token string) (*domain.User, error) {
	userID, ok := s.tokens.Validate(ctx, token)
	if !ok {
		return nil, ErrInvalidToken
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return u, nil
}
