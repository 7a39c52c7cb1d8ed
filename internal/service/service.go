// service содержит бизнес-логику: комментарии и ветки, видео, учётные записи,
// пересчёт счётчиков и согласованность кэша представлений.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pribylovaa/go-shorts-platform/internal/cache"
	"github.com/pribylovaa/go-shorts-platform/internal/config"
	"github.com/pribylovaa/go-shorts-platform/internal/metrics"
	"github.com/pribylovaa/go-shorts-platform/internal/models"
	"github.com/pribylovaa/go-shorts-platform/internal/storage"
)

var (
	// ErrInvalidArgument — неверные входные параметры; в цепочке лежит *models.ValidationError, если известны поля.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound — сущность отсутствует (или скрыта модерацией).
	ErrNotFound = errors.New("not found")
	// ErrParentNotFound — родительский комментарий не найден.
	ErrParentNotFound = errors.New("parent comment not found")
	// ErrCrossVideo — родитель принадлежит другому видео.
	ErrCrossVideo = errors.New("parent comment belongs to another video")
	// ErrDepthLimit — на комментарий максимального уровня отвечать нельзя.
	ErrDepthLimit = errors.New("max thread depth reached")
	// ErrPermissionDenied — действие доступно только владельцу или администратору.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrUnauthenticated — операция требует токена.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrInvalidCredentials — неверный email или пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAlreadyExists — конфликт уникальности.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInternal — ошибка хранилища/БД.
	ErrInternal = errors.New("internal")
)

// TokenIssuer выпускает access-токен для пользователя.
type TokenIssuer interface {
	Issue(u *models.User, now time.Time) (string, time.Time, error)
}

// Deps — внешние зависимости сервиса.
// Cache и Metrics необязательны: nil заменяется на Noop и nil-safe Metrics.
type Deps struct {
	Comments storage.CommentsStorage
	Videos   storage.VideosStorage
	Users    storage.UsersStorage
	Objects  storage.VideoObjects
	Cache    cache.Cache
	Tokens   TokenIssuer
	Metrics  *metrics.Metrics
}

// Service — бизнес-логика shorts-service.
type Service struct {
	comments storage.CommentsStorage
	videos   storage.VideosStorage
	users    storage.UsersStorage
	objects  storage.VideoObjects
	cache    cache.Cache
	tokens   TokenIssuer
	metrics  *metrics.Metrics
	cfg      config.Config
	now      func() time.Time
}

// New создает новый экземпляр Service.
func New(d Deps, cfg config.Config) *Service {
	c := d.Cache
	if c == nil {
		c = cache.Noop{}
	}

	return &Service{
		comments: d.Comments,
		videos:   d.Videos,
		users:    d.Users,
		objects:  d.Objects,
		cache:    c,
		tokens:   d.Tokens,
		metrics:  d.Metrics,
		cfg:      cfg,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// invalid оборачивает ошибку валидации так, что в цепочке есть и
// ErrInvalidArgument, и *models.ValidationError.
func invalid(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrInvalidArgument, err)
}

// storageErr переводит ошибку хранилища в ошибку сервиса.
// Отмена и дедлайн контекста пробрасываются как есть.
func storageErr(lg *slog.Logger, op, event string, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		lg.Warn(event+"_not_found", slog.String("op", op))
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, storage.ErrAlreadyExists):
		lg.Warn(event+"_conflict", slog.String("op", op))
		return fmt.Errorf("%s: %w", op, ErrAlreadyExists)
	case errors.Is(err, storage.ErrInvalidArgument):
		lg.Warn(event+"_invalid", slog.String("op", op), slog.String("err", err.Error()))
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		lg.Warn(event+"_aborted", slog.String("op", op), slog.String("err", err.Error()))
		return fmt.Errorf("%s: %w", op, err)
	default:
		lg.Error(event+"_failed", slog.String("op", op), slog.String("err", err.Error()))
		return fmt.Errorf("%s: %w", op, ErrInternal)
	}
}

// requireActor — операции записи требуют аутентифицированного пользователя.
func requireActor(op string, actor models.Actor) error {
	if actor.IsAnonymous() {
		return fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	return nil
}
