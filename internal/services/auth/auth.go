package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"escolta/internal/domain/models"
	"escolta/internal/lib/logger/sl"
	"escolta/internal/repository"
	"escolta/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExist          = errors.New("user already exist")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

const resetTokenTTL = time.Hour

type TokenIssuer interface {
	GenerateTokens(ctx context.Context, user models.User) (*models.TokenPair, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	RevokeAll(ctx context.Context, userID uuid.UUID) error
}

type MailSender interface {
	SendWelcome(ctx context.Context, to, name string) error
	SendPasswordReset(ctx context.Context, to, token string) error
}

type Auth struct {
	log    *slog.Logger
	users  repository.UserRepository
	tokens TokenIssuer
	reset  repository.TokenRepository
	mail   MailSender
}

func New(
	log *slog.Logger,
	users repository.UserRepository,
	tokens TokenIssuer,
	reset repository.TokenRepository,
	mail MailSender,
) *Auth {
	return &Auth{
		log:    log,
		users:  users,
		tokens: tokens,
		reset:  reset,
		mail:   mail,
	}
}

func (a *Auth) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	const op = "auth.Login"

	log := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)

	log.Info("attempting to login user")

	user, err := a.users.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("user not found", sl.Err(err))

			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		log.Error("failed to get user", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		log.Info("invalid credentials", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	pair, err := a.tokens.GenerateTokens(ctx, user)
	if err != nil {
		log.Error("failed to generate tokens", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user logged in successfully")

	return pair, nil
}

func (a *Auth) RegisterNewUser(ctx context.Context, name, email, password string, isAdmin bool) (uuid.UUID, error) {
	const op = "auth.RegisterNewUser"

	log := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)

	log.Info("register user")

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to generate password hash", sl.Err(err))

		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	id, err := a.users.SaveUser(ctx, models.User{
		Name:     name,
		Email:    email,
		PassHash: passHash,
		IsAdmin:  isAdmin,
	})
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			log.Warn("user already exist", sl.Err(err))

			return uuid.Nil, fmt.Errorf("%s: %w", op, ErrUserExist)
		}

		log.Error("failed to save user", sl.Err(err))

		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := a.mail.SendWelcome(ctx, email, name); err != nil {
		log.Warn("failed to send welcome mail", sl.Err(err))
	}

	log.Info("user registered", slog.String("id", id.String()))

	return id, nil
}

func (a *Auth) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	const op = "auth.Refresh"

	pair, err := a.tokens.RefreshTokens(ctx, refreshToken)
	if err != nil {
		a.log.Info("refresh rejected", slog.String("op", op), sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	return pair, nil
}

func (a *Auth) Logout(ctx context.Context, userID uuid.UUID) error {
	const op = "auth.Logout"

	if err := a.tokens.RevokeAll(ctx, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (a *Auth) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	const op = "auth.IsAdmin"

	isAdmin, err := a.users.IsAdmin(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return isAdmin, nil
}

// RequestPasswordReset mails a one-time reset code. An unknown email is
// treated as success so the endpoint does not leak which accounts
// exist.
func (a *Auth) RequestPasswordReset(ctx context.Context, email string) error {
	const op = "auth.RequestPasswordReset"

	log := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)

	user, err := a.users.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Info("reset requested for unknown email")

			return nil
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	token := uuid.NewString()

	if err := a.reset.SaveResetToken(ctx, user.ID.String(), token, resetTokenTTL); err != nil {
		log.Error("failed to store reset token", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	if err := a.mail.SendPasswordReset(ctx, email, token); err != nil {
		log.Error("failed to send reset mail", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("password reset mail sent")

	return nil
}

// CompletePasswordReset consumes the one-time code, replaces the hash
// and revokes every refresh token of the user.
func (a *Auth) CompletePasswordReset(ctx context.Context, token, newPassword string) error {
	const op = "auth.CompletePasswordReset"

	log := a.log.With(slog.String("op", op))

	userIDStr, err := a.reset.ConsumeResetToken(ctx, token)
	if err != nil {
		log.Info("reset token rejected", sl.Err(err))

		return fmt.Errorf("%s: %w", op, ErrInvalidResetToken)
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return fmt.Errorf("%s: %w", op, ErrInvalidResetToken)
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := a.users.UpdatePassword(ctx, userID, passHash); err != nil {
		log.Error("failed to update password", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	if err := a.tokens.RevokeAll(ctx, userID); err != nil {
		log.Warn("failed to revoke refresh tokens", sl.Err(err))
	}

	log.Info("password reset completed", slog.String("user_id", userID.String()))

	return nil
}
