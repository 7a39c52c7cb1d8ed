package storage

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-shorts-platform/internal/models"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — конфликт уникальности (email и т.п.).
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidArgument — битый идентификатор или нарушены ограничения объекта.
	ErrInvalidArgument = errors.New("invalid argument")
)

// CommentsStorage описывает операции над комментариями.
// Все обновления счётчиков — атомарные операции над одним документом.
type CommentsStorage interface {
	// CreateComment сохраняет комментарий с уже вычисленными Thread.
	// Хранилище проставляет ID, CreatedAt/UpdatedAt, пустые Likes/Reports/EditHistory
	// и статус approved, если он не задан.
	CreateComment(ctx context.Context, c models.Comment) (*models.Comment, error)

	// CommentByID возвращает комментарий. Если записи нет — ErrNotFound.
	CommentByID(ctx context.Context, id string) (*models.Comment, error)

	// UpdateContent заменяет текст, добавляя prior в EditHistory,
	// и выставляет IsEdited=true, EditedAt=at.
	UpdateContent(ctx context.Context, id, content string, mentions []uuid.UUID, prior models.EditRecord, at time.Time) (*models.Comment, error)

	// AddLike идемпотентно добавляет лайк и пересчитывает LikesCount по списку.
	AddLike(ctx context.Context, id string, userID uuid.UUID, at time.Time) (*models.Comment, error)
	// RemoveLike идемпотентно убирает лайк и пересчитывает LikesCount по списку.
	RemoveLike(ctx context.Context, id string, userID uuid.UUID) (*models.Comment, error)

	// AddReport добавляет жалобу (одна на пользователя), причину — во множество флагов,
	// пересчитывает ReportsCount и при ReportsCount >= threshold переводит
	// approved-комментарий в pending.
	AddReport(ctx context.Context, id string, r models.Report, threshold int32) (*models.Comment, error)

	// DeleteSubtree одной операцией удаляет комментарий и всех его потомков.
	// Возвращает точное число удалённых документов.
	DeleteSubtree(ctx context.Context, c *models.Comment) (int64, error)
	// DeleteByVideo удаляет все комментарии видео.
	DeleteByVideo(ctx context.Context, videoID string) (int64, error)
	// SubtreeIDs возвращает id самого c и всех его потомков (любого статуса).
	SubtreeIDs(ctx context.Context, c *models.Comment) ([]string, error)
	// IDsByVideo возвращает id всех комментариев видео.
	IDsByVideo(ctx context.Context, videoID string) ([]string, error)

	// IncRepliesCount атомарно меняет RepliesCount на delta.
	IncRepliesCount(ctx context.Context, id string, delta int32) error
	// CountReplies — точное число прямых ответов.
	CountReplies(ctx context.Context, parentID string) (int64, error)
	// SetRepliesCount записывает пересчитанное значение RepliesCount.
	SetRepliesCount(ctx context.Context, id string, n int64) error
	// CountByVideo — точное число комментариев видео (всех уровней и статусов).
	CountByVideo(ctx context.Context, videoID string) (int64, error)
	// ReconcileReplyCounts пересчитывает RepliesCount у всех комментариев видео.
	// Возвращает число исправленных документов.
	ReconcileReplyCounts(ctx context.Context, videoID string) (int64, error)
	// VideosChangedSince возвращает различные video_id комментариев с
	// updated_at >= since: по возрастанию, строго после afterID, не более limit.
	VideosChangedSince(ctx context.Context, since time.Time, afterID string, limit int64) ([]string, error)

	// ListTopLevel возвращает страницу корневых approved-комментариев и их общее число.
	ListTopLevel(ctx context.Context, p models.ListCommentsParams) ([]*models.Comment, int64, error)
	// ListReplies возвращает до limit approved-ответов на parentID.
	ListReplies(ctx context.Context, parentID string, limit int32, newestFirst bool) ([]*models.Comment, error)
	// ListThread возвращает корень и его потомков со статусом approved,
	// отсортированных по (level asc, created_at asc), не более limit.
	ListThread(ctx context.Context, root *models.Comment, limit int32) ([]*models.Comment, error)
}

// VideosStorage описывает операции над метаданными видео.
type VideosStorage interface {
	CreateVideo(ctx context.Context, v models.Video) (*models.Video, error)
	// VideoByID возвращает видео. Если записи нет — ErrNotFound.
	VideoByID(ctx context.Context, id string) (*models.Video, error)
	DeleteVideo(ctx context.Context, id string) error

	// IncCommentsCount атомарно меняет CommentsCount на delta, не опуская ниже нуля.
	IncCommentsCount(ctx context.Context, id string, delta int64) error
	// SetCommentsCount записывает точный пересчёт.
	SetCommentsCount(ctx context.Context, id string, n int64) error
	IncViews(ctx context.Context, id string) error
	AddLike(ctx context.Context, id string, userID uuid.UUID, at time.Time) (*models.Video, error)
	RemoveLike(ctx context.Context, id string, userID uuid.UUID) (*models.Video, error)
	SetThumbnail(ctx context.Context, id, key, url string) (*models.Video, error)

	// Touch выставляет updated_at = at, отмечая видео для реконсилера.
	Touch(ctx context.Context, id string, at time.Time) error
	// TouchedSince возвращает id видео с updated_at >= since:
	// по возрастанию, строго после afterID, не более limit.
	TouchedSince(ctx context.Context, since time.Time, afterID string, limit int64) ([]string, error)
}

// UsersStorage описывает операции над учётными записями.
type UsersStorage interface {
	// SaveUser сохраняет пользователя. Дубликат email — ErrAlreadyExists.
	SaveUser(ctx context.Context, u *models.User) error
	// UserByEmail — ErrNotFound, если пользователя нет.
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// UserByID — ErrNotFound, если пользователя нет.
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// VideoObjects — контракт объектного хранилища для видеофайлов и превью.
type VideoObjects interface {
	// UploadURL генерирует presigned PUT для видео владельца.
	// Ограничения типа/размера нарушены — ErrInvalidArgument.
	UploadURL(ctx context.Context, ownerID uuid.UUID, contentType string, size int64) (*models.UploadInfo, error)
	// StatVideo подтверждает загрузку по ключу. Нет объекта — ErrNotFound.
	StatVideo(ctx context.Context, ownerID uuid.UUID, key string) (*models.ObjectInfo, error)
	// PutThumbnail загружает превью и возвращает ключ и публичный URL.
	PutThumbnail(ctx context.Context, videoID string, r io.Reader, size int64, contentType string) (*models.ObjectInfo, error)
	// DeleteObject удаляет объект; отсутствие объекта ошибкой не считается.
	DeleteObject(ctx context.Context, key string) error
}
