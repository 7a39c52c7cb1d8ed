package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	apierrors "github.com/pribylovaa/go-shorts-platform/internal/http/errors"
	"github.com/pribylovaa/go-shorts-platform/internal/models"
	"github.com/pribylovaa/go-shorts-platform/internal/service"
)

// Service — операции доменного слоя, которые публикует HTTP.
type Service interface {
	CreateComment(ctx context.Context, actor models.Actor, in models.CreateCommentInput) (*models.Comment, error)
	CommentByID(ctx context.Context, actor models.Actor, id string) (*models.Comment, error)
	ListVideoComments(ctx context.Context, p models.ListCommentsParams) (*models.CommentsPage, error)
	GetThread(ctx context.Context, p models.ThreadParams) ([]*models.Comment, error)
	EditComment(ctx context.Context, actor models.Actor, id, content string) (*models.Comment, error)
	DeleteComment(ctx context.Context, actor models.Actor, id string) (int64, error)
	ToggleCommentLike(ctx context.Context, actor models.Actor, id string) (bool, int32, error)
	ReportComment(ctx context.Context, actor models.Actor, id, reason string) error

	RequestUploadURL(ctx context.Context, actor models.Actor, in models.UploadRequest) (*models.UploadInfo, error)
	CreateVideo(ctx context.Context, actor models.Actor, in models.CreateVideoInput) (*models.Video, error)
	VideoByID(ctx context.Context, id string) (*models.Video, error)
	RecordView(ctx context.Context, id string) error
	ToggleVideoLike(ctx context.Context, actor models.Actor, id string) (bool, int64, error)
	UploadThumbnail(ctx context.Context, actor models.Actor, id string, r io.Reader, size int64, contentType string) (*models.Video, error)
	DeleteVideo(ctx context.Context, actor models.Actor, id string) error

	Register(ctx context.Context, in models.RegisterInput) (*models.AuthResult, error)
	Login(ctx context.Context, in models.LoginInput) (*models.AuthResult, error)
	Me(ctx context.Context, actor models.Actor) (*models.User, error)

	ReconcileVideo(ctx context.Context, actor models.Actor, videoID string) (*service.ReconcileResult, error)
}

// Options — лимиты тел запросов.
type Options struct {
	MaxBodyBytes      int64
	MaxThumbnailBytes int64
}

// Handlers агрегирует зависимости HTTP-обработчиков.
type Handlers struct {
	svc  Service
	opts Options
}

func New(svc Service, opts Options) *Handlers {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}
	if opts.MaxThumbnailBytes <= 0 {
		opts.MaxThumbnailBytes = 2 << 20
	}

	return &Handlers{svc: svc, opts: opts}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: неизвестные поля и хвост после
// объекта запрещены, размер тела ограничен.
func (h *Handlers) decodeStrict(w http.ResponseWriter, r *http.Request, value any) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(value); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apierrors.BadRequest("body", "max", "request body too large")
		}

		return apierrors.BadRequest("body", "json", "malformed JSON body")
	}
	if dec.More() {
		return apierrors.BadRequest("body", "json", "unexpected data after JSON object")
	}

	return nil
}

// queryInt32 читает необязательный целочисленный параметр запроса.
func queryInt32(r *http.Request, name string) (int32, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}

	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return 0, apierrors.BadRequest(name, "int", "must be an integer")
	}

	return int32(n), nil
}
