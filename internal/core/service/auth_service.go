package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/chiraitori/farm-management-api/internal/core/domain"
	"github.com/chiraitori/farm-management-api/internal/core/ports"
)

// AuthService implements login and the three-phase password-reset flow.
// Each phase is an independently atomic step: verification never writes, and
// a failed reset leaves both the PIN and the stored password untouched.
type AuthService struct {
	users     ports.UserRepository
	pins      ports.PinStore
	mailer    ports.Mailer
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, pins ports.PinStore, mailer ports.Mailer, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, pins: pins, mailer: mailer, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", string(user.ResolveRole())).Msg("login")
	return token, user, nil
}

// generateToken resolves the user's role flags into a single role claim.
// Downstream RBAC only ever sees this resolved role.
func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.ResolveRole()),
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) RequestReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	pin, err := generatePin()
	if err != nil {
		return fmt.Errorf("generate pin: %w", err)
	}

	if err := s.pins.Save(ctx, user.Email, pin); err != nil {
		return fmt.Errorf("store pin: %w", err)
	}

	if err := s.mailer.SendResetPin(user.Email, pin); err != nil {
		s.logger.Error().Err(err).Str("email", user.Email).Msg("failed to send reset pin")
		return fmt.Errorf("send pin: %w", err)
	}

	s.logger.Info().Str("email", user.Email).Msg("reset pin sent")
	return nil
}

func (s *AuthService) VerifyPin(ctx context.Context, email, pin string) error {
	stored, err := s.pins.Get(ctx, email)
	if err != nil {
		return err
	}
	if stored != pin {
		return domain.ErrInvalidPin
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, email, pin, newPassword string) error {
	if err := s.VerifyPin(ctx, email, pin); err != nil {
		return err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.users.SetPassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	// Consume only after the write landed; a failed write keeps the PIN
	// usable for a retry within its lifetime.
	if err := s.pins.Consume(ctx, email); err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("failed to consume reset pin")
	}

	s.logger.Info().Str("user_id", user.ID).Msg("password reset")
	return nil
}

// generatePin returns a 6-digit numeric PIN in [100000, 999999].
func generatePin() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
