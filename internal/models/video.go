package models

import (
	"time"

	"github.com/google/uuid"
)

// VideoStats — агрегаты видео. CommentsCount == число комментариев с VideoID == ID.
type VideoStats struct {
	ViewsCount    int64
	LikesCount    int64
	CommentsCount int64
}

// Video — загруженное видео (объект в S3 + метаданные в MongoDB).
type Video struct {
	ID           string
	OwnerID      uuid.UUID
	Title        string
	Description  string
	Tags         []string
	ObjectKey    string
	URL          string
	ThumbnailKey string
	ThumbnailURL string
	ContentType  string
	SizeBytes    int64
	DurationSec  float64
	Width        int32
	Height       int32
	Stats        VideoStats
	Likes        []Like
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsLikedBy сообщает, ставил ли пользователь лайк видео.
func (v *Video) IsLikedBy(userID uuid.UUID) bool {
	for _, l := range v.Likes {
		if l.UserID == userID {
			return true
		}
	}

	return false
}

// UploadInfo — данные для клиента о presigned PUT загрузке.
//   - UploadURL: адрес для PUT-запроса;
//   - ObjectKey: ключ будущего объекта в бакете;
//   - Expires: время жизни подписи;
//   - RequiredHeader: заголовки, которые клиент обязан передать при PUT.
type UploadInfo struct {
	UploadURL      string
	ObjectKey      string
	Expires        time.Duration
	RequiredHeader map[string]string
}

// ObjectInfo — сведения о загруженном объекте.
type ObjectInfo struct {
	Key         string
	Size        int64
	ContentType string
	URL         string
}
