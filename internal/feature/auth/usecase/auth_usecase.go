package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"credit_backend/internal/feature/auth/domain/entity"
	"credit_backend/internal/shared/apperror"
	"credit_backend/internal/shared/identity"
)

const (
	// minPasswordLength is the minimum accepted password length.
	minPasswordLength = 6

	// maxSessionsPerUser caps concurrent refresh sessions; the oldest is evicted.
	maxSessionsPerUser = 5

	refreshTokenBytes = 32
)

// dummyHash keeps login timing similar whether or not the email exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository abstracts the persistence layer for users.
type UserRepository interface {
	// Create persists a new user. Returns ErrEmailAlreadyExists on a duplicate email.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail returns ErrUserNotFound when no user matches.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID returns ErrUserNotFound when no user matches.
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// UpdateRefreshToken overwrites the user's current session reference. nil clears it.
	UpdateRefreshToken(ctx context.Context, id string, token *string) error
}

// JWTGenerator issues signed access tokens.
type JWTGenerator interface {
	GenerateToken(userID, email, role string) (string, error)
	TTL() time.Duration
}

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      identity.Role
}

// ClientInfo describes the client a session is issued to.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

// AuthResult is returned by every operation that issues tokens.
type AuthResult struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // access token lifetime in seconds
}

type authUsecase struct {
	users      UserRepository
	sessions   SessionRepository
	jwt        JWTGenerator
	refreshTTL time.Duration
	log        *zap.Logger
	now        func() time.Time
}

// NewAuthUsecase creates the auth usecase.
func NewAuthUsecase(users UserRepository, sessions SessionRepository, jwt JWTGenerator, refreshTTL time.Duration, log *zap.Logger) *authUsecase {
	return &authUsecase{
		users:      users,
		sessions:   sessions,
		jwt:        jwt,
		refreshTTL: refreshTTL,
		log:        log,
		now:        time.Now,
	}
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return apperror.ValidationFailed("password",
			fmt.Sprintf("password must be at least %d characters long", minPasswordLength))
	}
	return nil
}

// Register creates an account with a hashed password and signs the user in.
func (u *authUsecase) Register(ctx context.Context, in RegisterInput, client ClientInfo) (*AuthResult, error) {
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = identity.RoleUser
	}
	if !role.IsValid() {
		return nil, apperror.ValidationFailed("role", "role must be user or admin")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Password:  string(hashed),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Role:      role,
	}
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil, apperror.Conflict("user with this email already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	u.log.Info("user registered", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return u.issue(ctx, user, client)
}

// Login verifies credentials and opens a new refresh session.
// bcrypt runs even for unknown emails so both failures take similar time.
func (u *authUsecase) Login(ctx context.Context, email, password string, client ClientInfo) (*AuthResult, error) {
	user, err := u.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if err != nil || compareErr != nil {
		return nil, apperror.Unauthorized("invalid credentials")
	}

	return u.issue(ctx, user, client)
}

// Refresh rotates a refresh token: the presented session is revoked and a new pair is issued.
func (u *authUsecase) Refresh(ctx context.Context, refreshToken string, client ClientInfo) (*AuthResult, error) {
	session, err := u.sessions.FindByID(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, apperror.Unauthorized("invalid refresh token")
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	if session.IsRevoked() {
		return nil, apperror.Unauthorized("refresh token has been revoked")
	}
	if session.IsExpired() {
		return nil, apperror.Unauthorized("refresh token has expired")
	}

	user, err := u.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperror.Unauthorized("invalid refresh token")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := u.sessions.Revoke(ctx, session.ID); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return nil, fmt.Errorf("revoke session: %w", err)
	}

	return u.issue(ctx, user, client)
}

// RegenerateToken issues a fresh token pair for an already authenticated user.
func (u *authUsecase) RegenerateToken(ctx context.Context, userID string, client ClientInfo) (*AuthResult, error) {
	user, err := u.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.issue(ctx, user, client)
}

// Logout revokes every session of the user and clears the session reference.
func (u *authUsecase) Logout(ctx context.Context, userID string) error {
	if err := u.sessions.RevokeAllByUserID(ctx, userID); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	if err := u.users.UpdateRefreshToken(ctx, userID, nil); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return apperror.NotFound("user")
		}
		return fmt.Errorf("clear refresh token: %w", err)
	}
	u.log.Info("user logged out", zap.String("user_id", userID))
	return nil
}

// Profile returns the user with the given id.
func (u *authUsecase) Profile(ctx context.Context, userID string) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperror.NotFound("user")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// issue signs an access token and opens a refresh session, evicting the
// oldest one when the user already holds maxSessionsPerUser.
func (u *authUsecase) issue(ctx context.Context, user *entity.User, client ClientInfo) (*AuthResult, error) {
	accessToken, err := u.jwt.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	count, err := u.sessions.CountByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}
	if count >= maxSessionsPerUser {
		if err := u.sessions.DeleteOldestByUserID(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("evict session: %w", err)
		}
	}

	token, err := newRefreshToken()
	if err != nil {
		return nil, err
	}
	now := u.now()
	session := &entity.Session{
		ID:        token,
		UserID:    user.ID,
		UserAgent: client.UserAgent,
		IPAddress: client.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.refreshTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	if err := u.users.UpdateRefreshToken(ctx, user.ID, &token); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}
	user.RefreshToken = &token

	return &AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: token,
		ExpiresIn:    int64(u.jwt.TTL().Seconds()),
	}, nil
}

func newRefreshToken() (string, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
