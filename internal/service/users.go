package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pribylovaa/go-shorts-platform/internal/models"
	"github.com/pribylovaa/go-shorts-platform/internal/pkg/log"
	"github.com/pribylovaa/go-shorts-platform/internal/pkg/redact"
	"github.com/pribylovaa/go-shorts-platform/internal/storage"
)

// Register создаёт учётную запись и сразу выдаёт access-токен.
func (s *Service) Register(ctx context.Context, in models.RegisterInput) (*models.AuthResult, error) {
	const op = "service/users/Register"

	in = in.Normalize()
	lg := log.From(ctx).With(slog.String("op", op), slog.String("email", redact.Email(in.Email)))

	if err := in.Validate(); err != nil {
		lg.Warn("register_invalid", slog.String("err", err.Error()))
		return nil, invalid(op, err)
	}

	_, err := s.users.UserByEmail(ctx, in.Email)
	if err == nil {
		lg.Warn("register_email_taken")
		return nil, fmt.Errorf("%s: %w", op, ErrAlreadyExists)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, storageErr(lg, op, "user_lookup", err)
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		lg.Error("password_hash_failed", slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	now := s.now()
	u := &models.User{
		ID:           uuid.New(),
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: hash,
		Role:         models.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.SaveUser(ctx, u); err != nil {
		return nil, storageErr(lg, op, "save_user", err)
	}

	lg.Info("user_registered", slog.String("user_id", u.ID.String()))

	return s.issue(ctx, op, u)
}

// Login проверяет email и пароль. Неизвестный email и неверный пароль
// неразличимы для клиента: оба дают ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, in models.LoginInput) (*models.AuthResult, error) {
	const op = "service/users/Login"

	in = in.Normalize()
	lg := log.From(ctx).With(slog.String("op", op), slog.String("email", redact.Email(in.Email)))

	if err := in.Validate(); err != nil {
		return nil, invalid(op, err)
	}

	u, err := s.users.UserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("login_unknown_email")
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return nil, storageErr(lg, op, "user_lookup", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		lg.Warn("login_bad_password", slog.String("user_id", u.ID.String()))
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	return s.issue(ctx, op, u)
}

// Me возвращает учётную запись текущего пользователя.
func (s *Service) Me(ctx context.Context, actor models.Actor) (*models.User, error) {
	const op = "service/users/Me"

	if err := requireActor(op, actor); err != nil {
		return nil, err
	}

	u, err := s.users.UserByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Токен пережил учётную запись.
			return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
		}

		return nil, storageErr(log.From(ctx), op, "user_lookup", err)
	}

	return u, nil
}

func (s *Service) issue(ctx context.Context, op string, u *models.User) (*models.AuthResult, error) {
	token, exp, err := s.tokens.Issue(u, s.now())
	if err != nil {
		log.From(ctx).Error("access_token_sign_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return &models.AuthResult{User: u, AccessToken: token, ExpiresAt: exp}, nil
}

func (s *Service) hashPassword(password string) (string, error) {
	cost := s.cfg.Auth.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}

	return string(b), nil
}
