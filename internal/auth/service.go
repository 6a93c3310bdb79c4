package auth

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"regwise/internal/audit"
	dErrors "regwise/pkg/domain-errors"
)

// bcryptCost matches the salt rounds the rest of the stack expects.
const bcryptCost = 10

// TokenIssuer mints signed session tokens.
type TokenIssuer interface {
	GenerateToken(userID, email string) (string, error)
}

// AuditRecorder records account lifecycle events. Emit never blocks.
type AuditRecorder interface {
	Emit(ctx context.Context, action, subject string)
}

// Service implements registration, login and profile lookup.
type Service struct {
	store  Store
	tokens TokenIssuer
	logger *slog.Logger
	audit  AuditRecorder
}

func NewService(store Store, tokens TokenIssuer, logger *slog.Logger, audit AuditRecorder) *Service {
	return &Service{store: store, tokens: tokens, logger: logger, audit: audit}
}

// Register creates an account and returns a live session for it.
func (s *Service) Register(ctx context.Context, creds Credentials) (*Session, error) {
	email := strings.TrimSpace(strings.ToLower(creds.Email))
	if !validEmail(email) {
		return nil, dErrors.New(dErrors.CodeValidation, "Invalid email")
	}
	if len(creds.Password) < 6 {
		return nil, dErrors.New(dErrors.CodeValidation, "Password must be at least 6 chars")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcryptCost)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	now := time.Now()
	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(creds.Name),
		Role:         "user",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Create(ctx, user); err != nil {
		if dErrors.Is(err, dErrors.CodeBadRequest) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}

	s.audit.Emit(ctx, audit.ActionUserRegistered, email)

	return s.session(&user)
}

// Login verifies credentials. Unknown emails and wrong passwords return the
// same error so callers cannot probe for registered addresses.
func (s *Service) Login(ctx context.Context, creds Credentials) (*Session, error) {
	email := strings.TrimSpace(strings.ToLower(creds.Email))

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeNotFound) {
			return nil, dErrors.New(dErrors.CodeBadRequest, "Invalid credentials")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch user")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Invalid credentials")
	}

	s.audit.Emit(ctx, audit.ActionUserLoggedIn, email)

	return s.session(user)
}

// Me returns the account behind an authenticated request.
func (s *Service) Me(ctx context.Context, userID string) (*User, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeNotFound) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch user")
	}
	return user, nil
}

func (s *Service) session(user *User) (*Session, error) {
	token, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign token")
	}
	return &Session{
		Token: token,
		User:  SessionUser{ID: user.ID, Email: user.Email, Name: user.Name},
	}, nil
}

// validEmail accepts anything shaped local@domain.tld. Full address
// validation happens at delivery time, not here.
func validEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	dot := strings.LastIndex(domain, ".")
	return dot > 0 && dot < len(domain)-1 && !strings.ContainsAny(email, " \t")
}
