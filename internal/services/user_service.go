package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/devconnect-be/internal/database"
	"github.com/isdelr/devconnect-be/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetUserByID(ctx context.Context, id string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	CreateUser(ctx context.Context, name, email, password string) (models.User, error)
	DeleteUser(ctx context.Context, id string) error
	AuthenticateUser(ctx context.Context, email, password string) (models.User, error)
}

// UserService provides business logic for user management.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

func scanUser(row scanner) (models.User, error) {
	var user models.User
	var createdAt string
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Avatar, &createdAt); err != nil {
		return models.User{}, err
	}
	t, err := database.ParseTime(createdAt)
	if err != nil {
		return models.User{}, err
	}
	user.CreatedAt = t
	return user, nil
}

// GetUserByID retrieves a single user by their ID, without the password hash.
func (s *UserService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, email, password_hash, avatar, created_at FROM users WHERE id = ?", id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("user with ID %s: %w", id, ErrNotFound)
		}
		return models.User{}, err
	}
	user.PasswordHash = ""
	return user, nil
}

// GetUserByEmail retrieves a single user by their email, including the password hash.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, email, password_hash, avatar, created_at FROM users WHERE email = ?", email)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
		}
		return models.User{}, err
	}
	return user, nil
}

// CreateUser creates a new user, hashing their password.
func (s *UserService) CreateUser(ctx context.Context, name, email, password string) (models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return models.User{}, ErrPasswordTooLong
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now().UTC(),
	}

	stmt, err := s.db.PrepareContext(ctx, "INSERT INTO users(id, name, email, password_hash, avatar, created_at) VALUES(?, ?, ?, ?, ?, ?)")
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, user.ID, user.Name, user.Email, user.PasswordHash, user.Avatar, database.FormatTime(user.CreatedAt))
	if err != nil {
		return models.User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	// Return user without password hash
	user.PasswordHash = ""
	return user, nil
}

// DeleteUser removes a user from the database.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	return err
}

// AuthenticateUser verifies a user's credentials.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (models.User, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}
