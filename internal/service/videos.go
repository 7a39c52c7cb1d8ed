package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pribylovaa/go-shorts-platform/internal/models"
	"github.com/pribylovaa/go-shorts-platform/internal/pkg/log"
)

// RequestUploadURL выдаёт presigned PUT для загрузки видеофайла.
func (s *Service) RequestUploadURL(ctx context.Context, actor models.Actor, in models.UploadRequest) (*models.UploadInfo, error) {
	const op = "service/videos/RequestUploadURL"

	if err := requireActor(op, actor); err != nil {
		return nil, err
	}

	in.ContentType = strings.TrimSpace(in.ContentType)
	lg := log.From(ctx).With(slog.String("op", op), slog.String("user_id", actor.UserID.String()))

	if err := in.Validate(); err != nil {
		return nil, invalid(op, err)
	}

	info, err := s.objects.UploadURL(ctx, actor.UserID, in.ContentType, in.SizeBytes)
	if err != nil {
		return nil, storageErr(lg, op, "upload_url", err)
	}

	return info, nil
}

// CreateVideo подтверждает загрузку объекта и сохраняет метаданные видео.
// Объект должен существовать и принадлежать пользователю (ErrNotFound).
func (s *Service) CreateVideo(ctx context.Context, actor models.Actor, in models.CreateVideoInput) (*models.Video, error) {
	const op = "service/videos/CreateVideo"

	if err := requireActor(op, actor); err != nil {
		return nil, err
	}

	in = in.Normalize()
	lg := log.From(ctx).With(
		slog.String("op", op),
		slog.String("user_id", actor.UserID.String()),
		slog.String("object_key", in.ObjectKey),
	)

	if err := in.Validate(); err != nil {
		lg.Warn("create_video_invalid", slog.String("err", err.Error()))
		return nil, invalid(op, err)
	}

	obj, err := s.objects.StatVideo(ctx, actor.UserID, in.ObjectKey)
	if err != nil {
		return nil, storageErr(lg, op, "stat_video", err)
	}

	v, err := s.videos.CreateVideo(ctx, models.Video{
		OwnerID:     actor.UserID,
		Title:       in.Title,
		Description: in.Description,
		Tags:        in.Tags,
		ObjectKey:   obj.Key,
		URL:         obj.URL,
		ContentType: obj.ContentType,
		SizeBytes:   obj.Size,
		DurationSec: in.DurationSec,
		Width:       in.Width,
		Height:      in.Height,
	})
	if err != nil {
		return nil, storageErr(lg, op, "create_video", err)
	}

	lg.Info("video_created", slog.String("video_id", v.ID))

	return v, nil
}

// VideoByID возвращает видео.
func (s *Service) VideoByID(ctx context.Context, id string) (*models.Video, error) {
	const op = "service/videos/VideoByID"

	id = strings.TrimSpace(id)
	if err := models.ValidateID("id", id); err != nil {
		return nil, invalid(op, err)
	}

	v, err := s.videos.VideoByID(ctx, id)
	if err != nil {
		return nil, storageErr(log.From(ctx).With(slog.String("video_id", id)), op, "video_lookup", err)
	}

	return v, nil
}

// RecordView увеличивает счётчик просмотров.
func (s *Service) RecordView(ctx context.Context, id string) error {
	const op = "service/videos/RecordView"

	id = strings.TrimSpace(id)
	if err := models.ValidateID("id", id); err != nil {
		return invalid(op, err)
	}

	if err := s.videos.IncViews(ctx, id); err != nil {
		return storageErr(log.From(ctx).With(slog.String("video_id", id)), op, "inc_views", err)
	}

	return nil
}

// ToggleVideoLike ставит или снимает лайк видео.
func (s *Service) ToggleVideoLike(ctx context.Context, actor models.Actor, id string) (bool, int64, error) {
	const op = "service/videos/ToggleVideoLike"

	if err := requireActor(op, actor); err != nil {
		return false, 0, err
	}

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With(slog.String("op", op), slog.String("video_id", id))

	if err := models.ValidateID("id", id); err != nil {
		return false, 0, invalid(op, err)
	}

	v, err := s.videos.VideoByID(ctx, id)
	if err != nil {
		return false, 0, storageErr(lg, op, "video_lookup", err)
	}

	var updated *models.Video
	if v.IsLikedBy(actor.UserID) {
		updated, err = s.videos.RemoveLike(ctx, id, actor.UserID)
	} else {
		updated, err = s.videos.AddLike(ctx, id, actor.UserID, s.now())
	}
	if err != nil {
		return false, 0, storageErr(lg, op, "toggle_like", err)
	}

	return updated.IsLikedBy(actor.UserID), updated.Stats.LikesCount, nil
}

// UploadThumbnail загружает превью и привязывает его к видео.
// Старое превью удаляется после успешной замены.
func (s *Service) UploadThumbnail(ctx context.Context, actor models.Actor, id string, r io.Reader, size int64, contentType string) (*models.Video, error) {
	const op = "service/videos/UploadThumbnail"

	if err := requireActor(op, actor); err != nil {
		return nil, err
	}

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With(slog.String("op", op), slog.String("video_id", id))

	if err := models.ValidateID("id", id); err != nil {
		return nil, invalid(op, err)
	}

	v, err := s.videos.VideoByID(ctx, id)
	if err != nil {
		return nil, storageErr(lg, op, "video_lookup", err)
	}

	if !actor.CanModify(v.OwnerID) {
		return nil, fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	obj, err := s.objects.PutThumbnail(ctx, id, r, size, contentType)
	if err != nil {
		return nil, storageErr(lg, op, "put_thumbnail", err)
	}

	updated, err := s.videos.SetThumbnail(ctx, id, obj.Key, obj.URL)
	if err != nil {
		return nil, storageErr(lg, op, "set_thumbnail", err)
	}

	if v.ThumbnailKey != "" && v.ThumbnailKey != obj.Key {
		if err := s.objects.DeleteObject(ctx, v.ThumbnailKey); err != nil {
			lg.Warn("old_thumbnail_delete_failed", slog.String("err", err.Error()))
		}
	}

	return updated, nil
}

// DeleteVideo удаляет видео вместе со всеми комментариями и объектами в S3.
// Доступно владельцу и администратору.
func (s *Service) DeleteVideo(ctx context.Context, actor models.Actor, id string) error {
	const op = "service/videos/DeleteVideo"

	if err := requireActor(op, actor); err != nil {
		return err
	}

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With(slog.String("op", op), slog.String("video_id", id))

	if err := models.ValidateID("id", id); err != nil {
		return invalid(op, err)
	}

	v, err := s.videos.VideoByID(ctx, id)
	if err != nil {
		return storageErr(lg, op, "video_lookup", err)
	}

	if !actor.CanModify(v.OwnerID) {
		lg.Warn("delete_video_forbidden", slog.String("user_id", actor.UserID.String()))
		return fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	ids, err := s.comments.IDsByVideo(ctx, id)
	if err != nil {
		lg.Warn("comment_ids_failed", slog.String("err", err.Error()))
	}

	n, err := s.comments.DeleteByVideo(ctx, id)
	if err != nil {
		return storageErr(lg, op, "delete_comments", err)
	}

	if err := s.videos.DeleteVideo(ctx, id); err != nil {
		return storageErr(lg, op, "delete_video", err)
	}

	for _, key := range []string{v.ObjectKey, v.ThumbnailKey} {
		if key == "" {
			continue
		}

		if err := s.objects.DeleteObject(ctx, key); err != nil {
			lg.Warn("object_delete_failed", slog.String("key", key), slog.String("err", err.Error()))
		}
	}

	s.invalidateForVideo(ctx, id)
	s.invalidateThreads(ctx, ids)

	lg.Info("video_deleted", slog.Int64("comments", n))

	return nil
}
