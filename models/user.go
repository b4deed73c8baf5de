package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Amanjain8795/matratv-connect-main-sub001/database"
	"github.com/Amanjain8795/matratv-connect-main-sub001/utils"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password_hash"`
	Name      string    `json:"name" db:"name"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

var ErrReferralCodeUnknown = errors.New("referral code not found")

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func FindUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	query := `SELECT id, email, password_hash, name, role, created_at, updated_at
	  FROM users WHERE email = $1`
	err := database.Pool.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.Name, &user.Role,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func GetUserByID(ctx context.Context, id string) (*User, error) {
	var user User
	query := `SELECT id, email, name, role, created_at, updated_at
	  FROM users WHERE id = $1`
	err := database.Pool.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.Name, &user.Role,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUserWithProfile registers a user and their profile in one
// transaction. referralCode, when supplied, is resolved to the referrer's
// profile and becomes the new profile's referred_by - set once here, never
// updated afterwards.
func CreateUserWithProfile(ctx context.Context, email, password, name, referralCode string) (*User, *UserProfile, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, nil, err
	}

	tx, err := database.Pool.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	var user User
	err = tx.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name, role, created_at, updated_at)
		VALUES ($1, $2, $3, 'user', NOW(), NOW())
		RETURNING id, email, name, role, created_at, updated_at
	`, email, hash, name).Scan(
		&user.ID, &user.Email, &user.Name, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, nil, err
	}

	var referredBy *string
	if referralCode != "" {
		var referrerProfileID string
		err = tx.QueryRow(ctx,
			`SELECT id FROM user_profiles WHERE referral_code = $1`,
			referralCode).Scan(&referrerProfileID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, nil, ErrReferralCodeUnknown
			}
			return nil, nil, err
		}
		referredBy = &referrerProfileID
	}

	var profile UserProfile
	err = tx.QueryRow(ctx, `
		INSERT INTO user_profiles (user_id, referral_code, referred_by)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, referral_code, referred_by, available_balance, total_earnings, created_at, updated_at
	`, user.ID, utils.GenerateReferralCode(), referredBy).Scan(
		&profile.ID, &profile.UserID, &profile.ReferralCode, &profile.ReferredBy,
		&profile.AvailableBalance, &profile.TotalEarnings, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("create profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return &user, &profile, nil
}
