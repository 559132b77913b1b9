package domain

import (
	"context"
	"time"
)

// User represents an authenticated principal. CoinBalance is the consumable
// credit charged per successful generation; it never goes negative and is
// mutated only through DeductCoins (and external top-up flows).
type User struct {
	ID                string
	GoogleID          string
	Email             string
	Name              string
	ProfilePictureURL string
	CoinBalance       int
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         *time.Time
}

// NewUser creates a new User instance with the given starting coin balance.
func NewUser(googleID, email string, initialCoins int) *User {
	now := time.Now()
	return &User{
		GoogleID:    googleID,
		Email:       email,
		CoinBalance: initialCoins,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate validates the user
func (u *User) Validate() error {
	if u.GoogleID == "" {
		return NewError(CodeValidation, "google_id is required", nil)
	}
	if u.Email == "" {
		return NewError(CodeValidation, "email is required", nil)
	}
	if u.CoinBalance < 0 {
		return NewError(CodeValidation, "coin balance must not be negative", nil)
	}
	return nil
}

// UserRepository defines the interface for principal persistence.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByGoogleID(ctx context.Context, googleID string) (*User, error)
	GetUserByID(ctx context.Context, userID string) (*User, error)
	UpdateUser(ctx context.Context, user *User) error

	// GetCoinBalance returns the current coin balance for the user.
	GetCoinBalance(ctx context.Context, userID string) (int, error)

	// DeductCoins atomically decrements the user's balance by cost and
	// returns the new balance. The decrement must be conditional at the
	// storage layer (balance >= cost) so concurrent requests cannot drive
	// the balance negative. ErrInsufficientBalance is returned when the
	// condition does not hold.
	DeductCoins(ctx context.Context, userID string, cost int) (int, error)
}

// ErrInsufficientBalance is returned by DeductCoins when the conditional
// decrement matched no row.
var ErrInsufficientBalance = NewError(CodeInsufficientCoins, "coin balance below deduction cost", nil)
