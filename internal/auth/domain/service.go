package domain

import (
	"context"
	"errors"
)

type RegisterRequest struct {
	Name     string
	Email    string
	Password string
}

type LoginRequest struct {
	Email    string
	Password string
}

type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type CreateUserRequest struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UpdateUserRequest is a partial update. Nil fields are left untouched.
type UpdateUserRequest struct {
	ID        string
	Name      *string
	Email     *string
	Role      *string
	Activated *bool
}

type Service interface {
	Register(context.Context, RegisterRequest) (LoginResponse, error)
	Login(context.Context, LoginRequest) (LoginResponse, error)
	// Verify resolves a bearer token into its active user.
	Verify(ctx context.Context, token string) (User, error)

	// Admin user management.
	ListUsers(context.Context) ([]User, error)
	GetUser(ctx context.Context, id string) (User, error)
	CreateUser(context.Context, CreateUserRequest) (User, error)
	UpdateUser(context.Context, UpdateUserRequest) (User, error)
	DeleteUser(ctx context.Context, id string) error
}

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidToken       = errors.New("invalid_token")
	ErrAccountDisabled    = errors.New("account_disabled")
	ErrRegistrationClosed = errors.New("registration_closed")
	ErrUserExists         = errors.New("user_exists")
	ErrUserNotFound       = errors.New("user_not_found")
	ErrInvalidName        = errors.New("invalid_name")
	ErrInvalidEmail       = errors.New("invalid_email")
	ErrInvalidPassword    = errors.New("invalid_password")
	ErrInvalidRole        = errors.New("invalid_role")
	ErrInvalidID          = errors.New("invalid_id")
)
