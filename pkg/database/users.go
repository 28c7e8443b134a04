package database

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/CarodoesCoding/HeatControlAPI/pkg/models"
)

// ErrUserExists is returned when registering an already-taken email
var ErrUserExists = errors.New("email already registered")

// ErrInvalidCredentials is returned when email/password validation fails
var ErrInvalidCredentials = errors.New("invalid credentials")

// hashPassword creates a SHA-256 hash of the password to handle passwords longer than 72 bytes
func hashPassword(password string) string {
	hash := sha256.Sum256([]byte(password))
	return hex.EncodeToString(hash[:])
}

// hashForStorage pre-hashes with SHA-256 and bcrypts the result
func hashForStorage(password string) (string, error) {
	preHashed := hashPassword(password)
	hashed, err := bcrypt.GenerateFromPassword([]byte(preHashed), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return "v2:" + string(hashed), nil
}

// CreateUser creates a new user with hashed password and home coordinates
func (dm *DatabaseManager) CreateUser(ctx context.Context, email, password string, latitude, longitude float64) (*models.User, error) {
	if email == "" || password == "" {
		return nil, errors.New("email and password must not be empty")
	}

	var existing uuid.UUID
	err := dm.QueryRowWithHealthCheck(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&existing)
	if err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	finalHash, err := hashForStorage(password)
	if err != nil {
		return nil, err
	}

	query := `
        INSERT INTO users (email, password_hash, latitude, longitude)
        VALUES ($1, $2, $3, $4)
        RETURNING id, email, latitude, longitude, created_at
    `

	var user models.User
	err = dm.QueryRowWithHealthCheck(ctx, query, email, finalHash, latitude, longitude).
		Scan(&user.ID, &user.Email, &user.Latitude, &user.Longitude, &user.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// ValidateUser checks email and password
func (dm *DatabaseManager) ValidateUser(ctx context.Context, email, password string) (*models.User, error) {
	query := `
        SELECT id, email, password_hash, latitude, longitude, created_at
        FROM users
        WHERE email = $1
    `

	var user models.User
	var passwordHash string

	err := dm.QueryRowWithHealthCheck(ctx, query, email).
		Scan(&user.ID, &user.Email, &passwordHash, &user.Latitude, &user.Longitude, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	// v2 hashes are bcrypt over a SHA-256 prehash; anything else is a
	// plain bcrypt hash from before the prehash scheme.
	var compareErr error
	if strings.HasPrefix(passwordHash, "v2:") {
		actualHash := strings.TrimPrefix(passwordHash, "v2:")
		compareErr = bcrypt.CompareHashAndPassword([]byte(actualHash), []byte(hashPassword(password)))
	} else {
		compareErr = bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

		// If password is correct, migrate to the new format
		if compareErr == nil {
			if err := dm.setPassword(ctx, user.ID, password); err != nil {
				fmt.Printf("Warning: failed to migrate password for user %s: %v\n", user.ID, err)
			}
		}
	}

	if compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// GetUser loads a user by ID
func (dm *DatabaseManager) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	query := `
        SELECT id, email, latitude, longitude, created_at
        FROM users
        WHERE id = $1
    `

	var user models.User
	err := dm.QueryRowWithHealthCheck(ctx, query, userID).
		Scan(&user.ID, &user.Email, &user.Latitude, &user.Longitude, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s not found", userID)
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}

// GetUserByEmail loads a user by email
func (dm *DatabaseManager) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
        SELECT id, email, latitude, longitude, created_at
        FROM users
        WHERE email = $1
    `

	var user models.User
	err := dm.QueryRowWithHealthCheck(ctx, query, email).
		Scan(&user.ID, &user.Email, &user.Latitude, &user.Longitude, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s not found", email)
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}

// UpdateUserLocation updates a user's home coordinates
func (dm *DatabaseManager) UpdateUserLocation(ctx context.Context, userID uuid.UUID, latitude, longitude float64) error {
	query := `UPDATE users SET latitude = $1, longitude = $2 WHERE id = $3`
	_, err := dm.ExecWithHealthCheck(ctx, query, latitude, longitude, userID)
	if err != nil {
		return fmt.Errorf("failed to update location: %w", err)
	}
	return nil
}

// ChangePassword verifies the old password and stores a new one
func (dm *DatabaseManager) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	user, err := dm.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	if _, err := dm.ValidateUser(ctx, user.Email, oldPassword); err != nil {
		return err
	}

	return dm.setPassword(ctx, userID, newPassword)
}

// setPassword stores a freshly hashed password for a user
func (dm *DatabaseManager) setPassword(ctx context.Context, userID uuid.UUID, password string) error {
	finalHash, err := hashForStorage(password)
	if err != nil {
		return err
	}

	query := `UPDATE users SET password_hash = $1 WHERE id = $2`
	if _, err := dm.ExecWithHealthCheck(ctx, query, finalHash, userID); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
