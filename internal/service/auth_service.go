package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"bookiteasy/internal/model"
	"bookiteasy/internal/repository"
	"bookiteasy/internal/utils"
)

var (
	ErrMissingFields    = errors.New("all fields are required")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrUserNotFound     = errors.New("user not found")
)

// AuthService provides the demo sign-in flow: any non-empty credentials
// are accepted, unknown emails get an account synthesized on the spot.
// Real credential verification is intentionally absent; the token issuer
// and the stores are the swap points for a production backend.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, string, error)
	// Logout clears the caller's pending flash and the user-added
	// appointment records; seeded demo rows survive.
	Logout(ctx context.Context, userID string) error
	CurrentUser(ctx context.Context, userID string) (*model.User, error)
}

type authService struct {
	users  repository.UserStore
	appts  repository.AppointmentStore
	flash  repository.FlashStore
	tokens utils.TokenIssuer
	now    func() time.Time
}

// NewAuthService creates a new AuthService. The clock is injectable so
// that timestamp-derived IDs are deterministic under test.
func NewAuthService(users repository.UserStore, appts repository.AppointmentStore, flash repository.FlashStore, tokens utils.TokenIssuer, now func() time.Time) AuthService {
	if now == nil {
		now = time.Now
	}
	return &authService{users: users, appts: appts, flash: flash, tokens: tokens, now: now}
}

func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, "", ErrMissingFields
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		// Unknown email: fabricate an account from the address itself.
		now := s.now()
		user = &model.User{
			ID:        strconv.FormatInt(now.UnixMilli(), 10),
			Name:      displayNameFromEmail(email),
			Email:     strings.ToLower(email),
			Avatar:    initials(email),
			Role:      model.RoleUser,
			CreatedAt: now,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, "", fmt.Errorf("failed to create user in store: %w", err)
		}
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return user, token, nil
}

func (s *authService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, string, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" ||
		req.Password == "" || req.ConfirmPassword == "" {
		return nil, "", ErrMissingFields
	}
	if req.Password != req.ConfirmPassword {
		return nil, "", ErrPasswordMismatch
	}
	if len(req.Password) < 6 {
		return nil, "", ErrPasswordTooShort
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	name := strings.TrimSpace(req.Name)
	user := &model.User{
		ID:           strconv.FormatInt(now.UnixMilli(), 10),
		Name:         name,
		Email:        strings.ToLower(req.Email),
		Avatar:       initials(name),
		Role:         model.RoleUser,
		CreatedAt:    now,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to create user in store: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return user, "", fmt.Errorf("user created, but failed to issue token: %w", err)
	}
	return user, token, nil
}

func (s *authService) Logout(ctx context.Context, userID string) error {
	if err := s.flash.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear flash on logout: %w", err)
	}
	if err := s.appts.ClearUserAdded(ctx); err != nil {
		return fmt.Errorf("failed to clear appointment data on logout: %w", err)
	}
	return nil
}

func (s *authService) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load current user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// displayNameFromEmail turns the local part of an address into a display
// name: non-letters become spaces, each word gets its first letter
// capitalized ("a@b.com" -> "A", "john.doe@x.com" -> "John Doe").
func displayNameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return r
		}
		return ' '
	}, local)
	words := strings.Fields(mapped)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// initials takes the first two characters, uppercased.
func initials(s string) string {
	if len(s) > 2 {
		s = s[:2]
	}
	return strings.ToUpper(s)
}
