package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sngm3741/delight-spot/api/internal/public/domain"
)

type userService struct {
	users    UserRepository
	bookings BookingRepository
	hasher   PasswordHasher
}

// NewUserService creates the account use-case service.
func NewUserService(users UserRepository, bookings BookingRepository, hasher PasswordHasher) UserService {
	return &userService{users: users, bookings: bookings, hasher: hasher}
}

func (s *userService) Signup(ctx context.Context, cmd SignupCommand) (*domain.User, error) {
	username := strings.TrimSpace(cmd.Username)
	if username == "" {
		return nil, NewValidationError("username", "this field is required")
	}
	if cmd.Password == "" {
		return nil, NewValidationError("password", "this field is required")
	}
	var email domain.Email
	if strings.TrimSpace(cmd.Email) != "" {
		parsed, err := domain.NewEmail(cmd.Email)
		if err != nil {
			return nil, NewValidationError("email", err.Error())
		}
		email = parsed
	}
	hash, err := s.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Name:         strings.TrimSpace(cmd.Name),
		Email:        email.String(),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, NewValidationError("username", "a user with that username already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	if _, err := s.bookings.EnsureForUser(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("ensure booking: %w", err)
	}
	return user, nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, NewValidationError("", "username and password are required")
	}
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, NewValidationError("", "wrong password")
		}
		return nil, err
	}
	if !user.HasUsablePassword() || !s.hasher.Compare(user.PasswordHash, password) {
		return nil, NewValidationError("", "wrong password")
	}
	return user, nil
}

func (s *userService) Me(ctx context.Context, principal Principal) (*domain.User, error) {
	if principal.UserID == "" {
		return nil, ErrAuthenticationFailed
	}
	user, err := s.users.FindByID(ctx, principal.UserID)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrAuthenticationFailed
	}
	return user, err
}

func (s *userService) UpdateMe(ctx context.Context, principal Principal, cmd UpdateProfileCommand) (*domain.User, error) {
	user, err := s.Me(ctx, principal)
	if err != nil {
		return nil, err
	}
	if cmd.IsHost != nil {
		if !user.IsHost {
			return nil, fmt.Errorf("%w: is_host may only be changed by hosts", ErrPermissionDenied)
		}
		user.IsHost = *cmd.IsHost
	}
	if cmd.Name != nil {
		user.Name = strings.TrimSpace(*cmd.Name)
	}
	if cmd.Email != nil {
		email, err := domain.NewEmail(*cmd.Email)
		if err != nil {
			return nil, NewValidationError("email", err.Error())
		}
		user.Email = email.String()
	}
	if cmd.AvatarURL != nil {
		user.AvatarURL = strings.TrimSpace(*cmd.AvatarURL)
	}
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, principal Principal, oldPassword, newPassword string) error {
	user, err := s.Me(ctx, principal)
	if err != nil {
		return err
	}
	if newPassword == "" {
		return NewValidationError("new_password", "this field is required")
	}
	if !user.HasUsablePassword() || !s.hasher.Compare(user.PasswordHash, oldPassword) {
		return NewValidationError("old_password", "wrong password")
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash
	user.UpdatedAt = time.Now().UTC()
	return s.users.Update(ctx, user)
}

func (s *userService) PublicProfile(ctx context.Context, username string) (*domain.User, error) {
	return s.users.FindByUsername(ctx, username)
}
