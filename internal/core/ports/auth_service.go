package ports

import (
	"context"

	"github.com/chiraitori/farm-management-api/internal/core/domain"
)

// AuthService defines login and the three-phase password-reset flow.
type AuthService interface {
	// Login verifies credentials and returns a signed session token carrying
	// the user's resolved role.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// RequestReset generates a 6-digit PIN, stores it with a 15-minute
	// expiry, and emails it to the user.
	RequestReset(ctx context.Context, email string) error
	// VerifyPin checks the PIN without consuming it or mutating any state.
	VerifyPin(ctx context.Context, email, pin string) error
	// ResetPassword re-verifies the PIN, replaces the password hash, and
	// consumes the PIN.
	ResetPassword(ctx context.Context, email, pin, newPassword string) error
}

// PinStore holds reset PINs with a bounded lifetime.
type PinStore interface {
	Save(ctx context.Context, email, pin string) error
	// Get returns the stored PIN, or domain.ErrInvalidPin when absent or
	// expired.
	Get(ctx context.Context, email string) (string, error)
	Consume(ctx context.Context, email string) error
}

// Mailer delivers transactional mail.
type Mailer interface {
	SendResetPin(to, pin string) error
}
