package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"fooddash/internal/database"
	"fooddash/internal/logger"
	"fooddash/internal/models"
)

// ErrInvalidCredentials is returned when email or password does not match
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrEmailTaken is returned when an account already exists for the email
var ErrEmailTaken = errors.New("an account with this email already exists")

// Service handles account creation and sign-in
type Service struct {
	db     *database.DB
	issuer *TokenIssuer
	logger *logger.Logger
}

// NewService creates a new auth service
func NewService(db *database.DB, issuer *TokenIssuer, log *logger.Logger) *Service {
	return &Service{
		db:     db,
		issuer: issuer,
		logger: log,
	}
}

// AuthResponse is returned on successful signup or login
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Signup creates a user account and its customer profile in one transaction
func (s *Service) Signup(ctx context.Context, req *models.SignupRequest, requestID string) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Reject duplicate accounts up front for a friendlier error
	var exists bool
	if err := s.db.QueryRow(ctx, database.UserExistsSQL, email).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         models.RoleCustomer,
	}
	if req.Phone != "" {
		user.Phone = &req.Phone
	}
	if req.Address != "" {
		user.Address = &req.Address
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, database.InsertUserSQL,
		user.Email, user.PasswordHash, user.Name, user.Phone, user.Address, user.Role,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	addresses := []string{}
	if user.Address != nil {
		addresses = append(addresses, *user.Address)
	}

	var customerID int
	var customerCreatedAt time.Time
	err = tx.QueryRow(ctx, database.InsertCustomerSQL,
		user.ID, user.Email, user.Name, user.Phone, addresses,
	).Scan(&customerID, &customerCreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	token, err := s.issuer.Generate(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("account_created", fmt.Sprintf("Created account for %s", user.Email), requestID,
		map[string]interface{}{
			"user_id":     user.ID,
			"customer_id": customerID,
		})

	return &AuthResponse{Token: token, User: user}, nil
}

// Login verifies credentials and issues a session token
func (s *Service) Login(ctx context.Context, req *models.LoginRequest, requestID string) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user := &models.User{}
	err := s.db.QueryRow(ctx, database.GetUserByEmailSQL, email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.Phone,
		&user.Address, &user.Role, &user.CreatedAt, &user.LastLogin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.db.Exec(ctx, database.UpdateUserLastLoginSQL, user.ID); err != nil {
		// Login still succeeds if the timestamp update fails
		s.logger.Error("last_login_update_failed", "Failed to update last login", requestID, err, nil)
	}

	token, err := s.issuer.Generate(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user_logged_in", fmt.Sprintf("User %s logged in", user.Email), requestID,
		map[string]interface{}{
			"user_id": user.ID,
			"role":    user.Role,
		})

	return &AuthResponse{Token: token, User: user}, nil
}

// GetUser returns the account for the given user id
func (s *Service) GetUser(ctx context.Context, userID int) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRow(ctx, database.GetUserSQL, userID).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.Phone,
		&user.Address, &user.Role, &user.CreatedAt, &user.LastLogin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
