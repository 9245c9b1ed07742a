package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/domain"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/factory"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	users     ports.UserRepository
	factory   *factory.Factory
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, f *factory.Factory, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, factory: f, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.Password == "" || in.Email == "" {
		return nil, domain.ErrInvalidCredentials
	}

	role := domain.Role(in.Role)
	if in.Role == "" {
		role = domain.RoleStudent
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.users.FindByUsername(ctx, in.Username); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var user *domain.User
	if role == domain.RoleAdmin {
		user = s.factory.AdminUser(in.Username, in.Email, in.FullName, string(hash))
	} else {
		user = s.factory.StudentUser(in.Username, in.Email, in.FullName, string(hash))
	}

	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("username", in.Username).Msg("failed to create user")
		return nil, err
	}

	s.logger.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("user registered")
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !user.IsActive {
		return "", nil, domain.ErrUserInactive
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID.String(),
		"username": user.Username,
		"role":     string(user.Role),
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
