package minio

import (
	"context"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/google/uuid"
	mclient "github.com/minio/minio-go/v7"
	"github.com/pribylovaa/go-shorts-platform/internal/models"
	"github.com/pribylovaa/go-shorts-platform/internal/storage"
)

var extByType = map[string]string{
	"video/mp4":       ".mp4",
	"video/webm":      ".webm",
	"video/quicktime": ".mov",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
}

// UploadURL генерирует presigned PUT для загрузки видео.
// Ключ имеет вид "videos/<ownerID>/<uuid>.<ext>"; в ответе — заголовки,
// которые клиент обязан передать при PUT (проверяются в StatVideo).
func (s *ObjectsStorage) UploadURL(ctx context.Context, ownerID uuid.UUID, contentType string, size int64) (*models.UploadInfo, error) {
	const op = "storage/minio/objects/UploadURL"

	if size <= 0 || size > s.upload.MaxVideoBytes {
		return nil, fmt.Errorf("%s: size: %w", op, storage.ErrInvalidArgument)
	}

	if !isAllowedContentType(s.upload.VideoContentTypes, contentType) {
		return nil, fmt.Errorf("%s: content type: %w", op, storage.ErrInvalidArgument)
	}

	key := path.Join("videos", ownerID.String(), uuid.NewString()+extByType[contentType])

	u, err := s.client.PresignedPutObject(ctx, s.s3.Bucket, key, s.s3.PresignTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.UploadInfo{
		UploadURL: u.String(),
		ObjectKey: key,
		Expires:   s.s3.PresignTTL,
		RequiredHeader: map[string]string{
			"Content-Type":   contentType,
			"Content-Length": strconv.FormatInt(size, 10),
		},
	}, nil
}

// StatVideo подтверждает загрузку: объект существует, принадлежит владельцу
// и удовлетворяет ограничениям размера/типа.
func (s *ObjectsStorage) StatVideo(ctx context.Context, ownerID uuid.UUID, key string) (*models.ObjectInfo, error) {
	const op = "storage/minio/objects/StatVideo"

	if !strings.HasPrefix(key, "videos/"+ownerID.String()+"/") {
		return nil, fmt.Errorf("%s: foreign key: %w", op, storage.ErrInvalidArgument)
	}

	info, err := s.client.StatObject(ctx, s.s3.Bucket, key, mclient.StatObjectOptions{})
	if err != nil {
		errResp := mclient.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.StatusCode == 404 {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if info.Size <= 0 || info.Size > s.upload.MaxVideoBytes {
		return nil, fmt.Errorf("%s: size: %w", op, storage.ErrInvalidArgument)
	}

	if ct := info.ContentType; ct != "" && !isAllowedContentType(s.upload.VideoContentTypes, ct) {
		return nil, fmt.Errorf("%s: content type: %w", op, storage.ErrInvalidArgument)
	}

	return &models.ObjectInfo{
		Key:         key,
		Size:        info.Size,
		ContentType: info.ContentType,
		URL:         s.PublicURL(key),
	}, nil
}

// PutThumbnail загружает превью под ключом "thumbnails/<videoID>/<uuid>.<ext>".
func (s *ObjectsStorage) PutThumbnail(ctx context.Context, videoID string, r io.Reader, size int64, contentType string) (*models.ObjectInfo, error) {
	const op = "storage/minio/objects/PutThumbnail"

	if size <= 0 || size > s.upload.MaxThumbnailBytes {
		return nil, fmt.Errorf("%s: size: %w", op, storage.ErrInvalidArgument)
	}

	if !isAllowedContentType(s.upload.ThumbnailContentTypes, contentType) {
		return nil, fmt.Errorf("%s: content type: %w", op, storage.ErrInvalidArgument)
	}

	key := path.Join("thumbnails", videoID, uuid.NewString()+extByType[contentType])

	info, err := s.client.PutObject(ctx, s.s3.Bucket, key, r, size, mclient.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.ObjectInfo{
		Key:         key,
		Size:        info.Size,
		ContentType: contentType,
		URL:         s.PublicURL(key),
	}, nil
}

// DeleteObject удаляет объект. S3 не сообщает об отсутствии ключа, поэтому
// повторное удаление не ошибка.
func (s *ObjectsStorage) DeleteObject(ctx context.Context, key string) error {
	const op = "storage/minio/objects/DeleteObject"

	if key == "" {
		return nil
	}

	if err := s.client.RemoveObject(ctx, s.s3.Bucket, key, mclient.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// isAllowedContentType проверяет, что тип содержимого входит в allow-list.
func isAllowedContentType(allow []string, contentType string) bool {
	for _, a := range allow {
		if a == contentType {
			return true
		}
	}

	return false
}
