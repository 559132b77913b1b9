package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quizard/internal/domain"
	"quizard/internal/repository/models"
	"quizard/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxUserRepository implements domain.UserRepository using sqlx over the
// profiles table.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

func toDomainUser(m *models.Profile) *domain.User {
	if m == nil {
		return nil
	}
	u := &domain.User{
		ID:                m.ID,
		GoogleID:          m.GoogleID,
		Email:             m.Email,
		Name:              m.Name.String,
		ProfilePictureURL: m.ProfilePictureURL.String,
		CoinBalance:       m.CoinBalance,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
	if m.DeletedAt.Valid {
		deletedAt := m.DeletedAt.Time
		u.DeletedAt = &deletedAt
	}
	return u
}

func fromDomainUser(u *domain.User) *models.Profile {
	m := &models.Profile{
		ID:          u.ID,
		GoogleID:    u.GoogleID,
		Email:       u.Email,
		CoinBalance: u.CoinBalance,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
	if u.Name != "" {
		m.Name = sql.NullString{String: u.Name, Valid: true}
	}
	if u.ProfilePictureURL != "" {
		m.ProfilePictureURL = sql.NullString{String: u.ProfilePictureURL, Valid: true}
	}
	return m
}

// CreateUser inserts a new profile row. The ID is assigned here when the
// caller has not provided one.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = util.NewULID()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	query := `INSERT INTO profiles (id, google_id, email, name, profile_picture_url, coin_balance, created_at, updated_at)
	          VALUES (:id, :google_id, :email, :name, :profile_picture_url, :coin_balance, :created_at, :updated_at)`

	_, err := sqlx.NamedExecContext(ctx, GetExecutor(ctx, r.db), query, fromDomainUser(user))
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByGoogleID retrieves a profile by its Google ID. Returns nil, nil
// when no row matches.
func (r *sqlxUserRepository) GetUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	var profile models.Profile
	query := `SELECT id, google_id, email, name, profile_picture_url, coin_balance, created_at, updated_at, deleted_at
	          FROM profiles WHERE google_id = $1 AND deleted_at IS NULL`

	err := GetExecutor(ctx, r.db).GetContext(ctx, &profile, query, googleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by google_id: %w", err)
	}
	return toDomainUser(&profile), nil
}

// GetUserByID retrieves a profile by its internal ID. Returns nil, nil
// when no row matches.
func (r *sqlxUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	var profile models.Profile
	query := `SELECT id, google_id, email, name, profile_picture_url, coin_balance, created_at, updated_at, deleted_at
	          FROM profiles WHERE id = $1 AND deleted_at IS NULL`

	err := GetExecutor(ctx, r.db).GetContext(ctx, &profile, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return toDomainUser(&profile), nil
}

// UpdateUser updates profile fields that change on login (name, picture,
// email). The coin balance is deliberately not touched here; it belongs to
// DeductCoins and top-up flows only.
func (r *sqlxUserRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now()

	query := `UPDATE profiles SET
	            email = :email,
	            name = :name,
	            profile_picture_url = :profile_picture_url,
	            updated_at = :updated_at
	          WHERE id = :id AND deleted_at IS NULL`

	result, err := sqlx.NamedExecContext(ctx, GetExecutor(ctx, r.db), query, fromDomainUser(user))
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetCoinBalance returns the current coin balance for the user.
func (r *sqlxUserRepository) GetCoinBalance(ctx context.Context, userID string) (int, error) {
	var balance int
	query := `SELECT coin_balance FROM profiles WHERE id = $1 AND deleted_at IS NULL`

	err := GetExecutor(ctx, r.db).GetContext(ctx, &balance, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.NewUnauthenticatedError("No profile found for the authenticated session")
		}
		return 0, fmt.Errorf("failed to get coin balance: %w", err)
	}
	return balance, nil
}

// DeductCoins performs the conditional atomic decrement. The WHERE clause
// guards the floor so concurrent calls cannot take the balance negative;
// losing the race surfaces as domain.ErrInsufficientBalance.
func (r *sqlxUserRepository) DeductCoins(ctx context.Context, userID string, cost int) (int, error) {
	var newBalance int
	query := `UPDATE profiles SET coin_balance = coin_balance - $1, updated_at = $2
	          WHERE id = $3 AND coin_balance >= $1 AND deleted_at IS NULL
	          RETURNING coin_balance`

	err := GetExecutor(ctx, r.db).QueryRowxContext(ctx, query, cost, time.Now(), userID).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrInsufficientBalance
		}
		return 0, fmt.Errorf("failed to deduct coins: %w", err)
	}
	return newBalance, nil
}
