package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sngm3741/delight-spot/api/internal/public/application"
	"github.com/sngm3741/delight-spot/api/internal/public/domain"
)

// LoginResult is the outcome of a Kakao login. Members get a token and a
// session; non-members get a signup ticket.
type LoginResult struct {
	IsMember     bool
	Token        string
	SessionID    string
	SignupTicket string
	User         *domain.User
}

// SignupResult is the outcome of a Kakao signup.
type SignupResult struct {
	Token     string
	SessionID string
	User      *domain.User
	Created   bool
}

// KakaoAuthenticator orchestrates Kakao login and signup.
type KakaoAuthenticator struct {
	provider KakaoProvider
	users    application.UserRepository
	bookings application.BookingRepository
	tokens   *TokenIssuer
	sessions SessionStore
	tickets  TicketStore
	logger   *slog.Logger
}

func NewKakaoAuthenticator(
	provider KakaoProvider,
	users application.UserRepository,
	bookings application.BookingRepository,
	tokens *TokenIssuer,
	sessions SessionStore,
	tickets TicketStore,
	logger *slog.Logger,
) *KakaoAuthenticator {
	if logger == nil {
		logger = slog.Default()
	}
	return &KakaoAuthenticator{
		provider: provider,
		users:    users,
		bookings: bookings,
		tokens:   tokens,
		sessions: sessions,
		tickets:  tickets,
		logger:   logger,
	}
}

// Login exchanges code, fetches the profile and either signs the member in
// or hands out a signup ticket. Provider failures surface as *ProviderError.
func (a *KakaoAuthenticator) Login(ctx context.Context, code string) (*LoginResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, application.NewValidationError("code", "authorization code is required")
	}
	token, err := a.provider.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}
	profile, err := a.provider.FetchProfile(ctx, token.AccessToken)
	if err != nil {
		return nil, err
	}

	user, err := a.users.FindByKakaoID(ctx, profile.ID)
	if errors.Is(err, application.ErrNotFound) {
		ticket, err := a.tickets.Issue(ctx, *profile)
		if err != nil {
			return nil, fmt.Errorf("issue signup ticket: %w", err)
		}
		a.logger.Info("kakao login for non-member", "kakao_id", profile.ID)
		return &LoginResult{IsMember: false, SignupTicket: ticket}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by kakao id: %w", err)
	}

	result, err := a.signIn(ctx, user)
	if err != nil {
		return nil, err
	}
	a.logger.Info("kakao login", "user_id", user.ID, "kakao_id", profile.ID)
	return &LoginResult{IsMember: true, Token: result.Token, SessionID: result.SessionID, User: user}, nil
}

// Signup redeems a signup ticket and creates (or relinks) the account keyed by Kakao id.
func (a *KakaoAuthenticator) Signup(ctx context.Context, email, ticket string) (*SignupResult, error) {
	if strings.TrimSpace(email) == "" {
		return nil, application.NewValidationError("email", "email is required")
	}
	normalized, err := domain.NewEmail(email)
	if err != nil {
		return nil, application.NewValidationError("email", err.Error())
	}
	if strings.TrimSpace(ticket) == "" {
		return nil, application.NewValidationError("signup_ticket", "signup state not found")
	}
	profile, err := a.tickets.Redeem(ctx, strings.TrimSpace(ticket))
	if errors.Is(err, ErrTicketNotFound) {
		return nil, application.NewValidationError("signup_ticket", "signup state not found")
	}
	if err != nil {
		return nil, fmt.Errorf("redeem signup ticket: %w", err)
	}

	user, created, err := a.getOrCreate(ctx, *profile, normalized)
	if err != nil {
		return nil, err
	}
	result, err := a.signIn(ctx, user)
	if err != nil {
		return nil, err
	}
	result.Created = created
	a.logger.Info("kakao signup", "user_id", user.ID, "kakao_id", profile.ID, "created", created)
	return result, nil
}

func (a *KakaoAuthenticator) getOrCreate(ctx context.Context, profile KakaoProfile, email domain.Email) (*domain.User, bool, error) {
	existing, err := a.users.FindByKakaoID(ctx, profile.ID)
	switch {
	case err == nil:
		existing.KakaoID = profile.ID
		existing.PasswordHash = domain.UnusablePassword
		existing.UpdatedAt = time.Now().UTC()
		if err := a.users.Update(ctx, existing); err != nil {
			return nil, false, fmt.Errorf("update kakao user: %w", err)
		}
		return existing, false, nil
	case !errors.Is(err, application.ErrNotFound):
		return nil, false, fmt.Errorf("find user by kakao id: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     usernameFor(profile),
		Name:         profile.Nickname,
		Email:        email.String(),
		AvatarURL:    profile.ProfileImageURL,
		KakaoID:      profile.ID,
		PasswordHash: domain.UnusablePassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = a.users.Create(ctx, user)
	if errors.Is(err, application.ErrConflict) {
		// Either the nickname is taken or a concurrent signup linked this Kakao id.
		if linked, findErr := a.users.FindByKakaoID(ctx, profile.ID); findErr == nil {
			return linked, false, nil
		}
		user.Username = fmt.Sprintf("%s_%s", user.Username, uuid.NewString()[:8])
		err = a.users.Create(ctx, user)
	}
	if err != nil {
		return nil, false, fmt.Errorf("create kakao user: %w", err)
	}
	return user, true, nil
}

// signIn ensures the booking list, opens a session and issues a token.
func (a *KakaoAuthenticator) signIn(ctx context.Context, user *domain.User) (*SignupResult, error) {
	if _, err := a.bookings.EnsureForUser(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("ensure booking: %w", err)
	}
	sessionID, err := a.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	token, err := a.tokens.Issue(*user)
	if err != nil {
		return nil, err
	}
	return &SignupResult{Token: token, SessionID: sessionID, User: user}, nil
}

func usernameFor(profile KakaoProfile) string {
	if nickname := strings.TrimSpace(profile.Nickname); nickname != "" {
		return nickname
	}
	return "kakao_" + profile.ID
}
