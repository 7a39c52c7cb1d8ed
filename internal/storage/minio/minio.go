// minio предоставляет реализацию storage.VideoObjects на базе MinIO/S3.
// minio.go — конструктор клиента: нормализует endpoint, настраивает Secure/creds
// и проверяет наличие целевого бакета.
// objects.go — presigned PUT для видео, подтверждение загрузки,
// загрузка превью и удаление объектов.
package minio

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pribylovaa/go-shorts-platform/internal/config"
	"github.com/pribylovaa/go-shorts-platform/internal/storage"
)

// ObjectsStorage — адаптер MinIO для видеофайлов и превью.
type ObjectsStorage struct {
	s3      config.S3Config
	upload  config.UploadConfig
	client  *mclient.Client
	baseURL string
}

// New создает клиент MinIO и выполняет fail-fast-проверку бакета.
func New(ctx context.Context, cfg *config.Config) (*ObjectsStorage, error) {
	const op = "storage/minio/New"

	endpoint := cfg.S3.Endpoint
	secure := strings.HasPrefix(endpoint, "https://")

	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" && u.Host != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(cfg.S3.AccessKey, cfg.S3.SecretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, cfg.S3.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !exists {
		return nil, fmt.Errorf("%s: bucket %q does not exist", op, cfg.S3.Bucket)
	}

	base := strings.TrimRight(cfg.S3.PublicBaseURL, "/")
	if base == "" {
		scheme := "http"
		if secure {
			scheme = "https"
		}
		base = scheme + "://" + endpoint + "/" + cfg.S3.Bucket
	}

	return &ObjectsStorage{
		s3:      cfg.S3,
		upload:  cfg.Upload,
		client:  client,
		baseURL: base,
	}, nil
}

// PublicURL — адрес объекта для клиентов.
func (s *ObjectsStorage) PublicURL(key string) string {
	return s.baseURL + "/" + key
}

var _ storage.VideoObjects = (*ObjectsStorage)(nil)
