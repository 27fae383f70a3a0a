package models

import (
	"fmt"
	"regexp"
	"time"
)

// UserRole separates storefront customers from back-office administrators
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

// User represents an authenticated account
type User struct {
	ID           int        `json:"id,omitempty" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Name         string     `json:"name" db:"name"`
	Phone        *string    `json:"phone,omitempty" db:"phone"`
	Address      *string    `json:"address,omitempty" db:"address"`
	Role         UserRole   `json:"role" db:"role"`
	CreatedAt    time.Time  `json:"created_at,omitempty" db:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty" db:"last_login"`
}

// SignupRequest represents the payload for account creation
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

// LoginRequest represents the payload for signing in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks the signup payload
func (req *SignupRequest) Validate() error {
	if !emailPattern.MatchString(req.Email) {
		return fmt.Errorf("email is not valid")
	}
	if len(req.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if len(req.Name) == 0 {
		return fmt.Errorf("name is required")
	}
	if len(req.Name) > 100 {
		return fmt.Errorf("name must not exceed 100 characters")
	}
	return nil
}

// Validate checks the login payload
func (req *LoginRequest) Validate() error {
	if req.Email == "" || req.Password == "" {
		return fmt.Errorf("email and password are required")
	}
	return nil
}
