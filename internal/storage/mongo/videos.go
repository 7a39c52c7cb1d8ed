package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-shorts-platform/internal/models"
	"github.com/pribylovaa/go-shorts-platform/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateVideo сохраняет метаданные видео.
func (s *Videos) CreateVideo(ctx context.Context, v models.Video) (*models.Video, error) {
	const op = "storage/mongo/CreateVideo"

	now := toMS(time.Now())
	v.CreatedAt = now
	v.UpdatedAt = now
	v.Stats = models.VideoStats{}

	doc := videoToDoc(v)

	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("%s: insert: %w", op, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected inserted id type %T", op, res.InsertedID)
	}

	doc.ID = oid

	return videoFromDoc(&doc), nil
}

// VideoByID возвращает видео по hex-идентификатору.
func (s *Videos) VideoByID(ctx context.Context, id string) (*models.Video, error) {
	const op = "storage/mongo/VideoByID"

	oid, err := oidFromHex(op, id)
	if err != nil {
		return nil, err
	}

	var doc videoDoc
	if err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return videoFromDoc(&doc), nil
}

// DeleteVideo удаляет документ видео. Комментарии удаляются отдельно (DeleteByVideo).
func (s *Videos) DeleteVideo(ctx context.Context, id string) error {
	const op = "storage/mongo/DeleteVideo"

	oid, err := oidFromHex(op, id)
	if err != nil {
		return err
	}

	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// IncCommentsCount меняет stats.comments_count на delta (не ниже нуля)
// и обновляет updated_at, чтобы видео попало в окно реконсилера.
func (s *Videos) IncCommentsCount(ctx context.Context, id string, delta int64) error {
	const op = "storage/mongo/IncCommentsCount"

	return s.updateVideo(ctx, op, id, clampedIncPipeline("stats.comments_count", delta, time.Now()))
}

// SetCommentsCount записывает точный пересчёт.
func (s *Videos) SetCommentsCount(ctx context.Context, id string, n int64) error {
	const op = "storage/mongo/SetCommentsCount"

	return s.updateVideo(ctx, op, id, bson.D{{Key: "$set", Value: bson.D{
		{Key: "stats.comments_count", Value: n},
	}}})
}

// IncViews — атомарный $inc просмотров. updated_at не трогаем.
func (s *Videos) IncViews(ctx context.Context, id string) error {
	const op = "storage/mongo/IncViews"

	return s.updateVideo(ctx, op, id, bson.D{{Key: "$inc", Value: bson.D{
		{Key: "stats.views_count", Value: int64(1)},
	}}})
}

func (s *Videos) AddLike(ctx context.Context, id string, userID uuid.UUID, at time.Time) (*models.Video, error) {
	const op = "storage/mongo/videos/AddLike"

	return s.findVideoAndUpdate(ctx, op, id, addLikePipeline(userID.String(), at, "stats.likes_count", false))
}

func (s *Videos) RemoveLike(ctx context.Context, id string, userID uuid.UUID) (*models.Video, error) {
	const op = "storage/mongo/videos/RemoveLike"

	return s.findVideoAndUpdate(ctx, op, id, removeLikePipeline(userID.String(), time.Now(), "stats.likes_count", false))
}

// SetThumbnail записывает ключ и URL превью.
func (s *Videos) SetThumbnail(ctx context.Context, id, key, url string) (*models.Video, error) {
	const op = "storage/mongo/SetThumbnail"

	return s.findVideoAndUpdate(ctx, op, id, bson.D{{Key: "$set", Value: bson.D{
		{Key: "thumbnail_key", Value: key},
		{Key: "thumbnail_url", Value: url},
		{Key: "updated_at", Value: toMS(time.Now())},
	}}})
}

// Touch выставляет updated_at, не меняя счётчиков.
func (s *Videos) Touch(ctx context.Context, id string, at time.Time) error {
	const op = "storage/mongo/Touch"

	return s.updateVideo(ctx, op, id, bson.D{{Key: "$set", Value: bson.D{
		{Key: "updated_at", Value: toMS(at)},
	}}})
}

// TouchedSince возвращает id видео с updated_at >= since по возрастанию _id,
// начиная строго после afterID.
func (s *Videos) TouchedSince(ctx context.Context, since time.Time, afterID string, limit int64) ([]string, error) {
	const op = "storage/mongo/TouchedSince"

	filter := bson.D{{Key: "updated_at", Value: bson.D{{Key: "$gte", Value: toMS(since)}}}}
	if afterID != "" {
		after, err := oidFromHex(op, afterID)
		if err != nil {
			return nil, err
		}

		filter = append(filter, bson.E{Key: "_id", Value: bson.D{{Key: "$gt", Value: after}}})
	}

	opts := options.Find().
		SetProjection(bson.D{{Key: "_id", Value: 1}}).
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(limit)

	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var row struct {
			ID primitive.ObjectID `bson:"_id"`
		}

		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}

		ids = append(ids, row.ID.Hex())
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return ids, nil
}

func (s *Videos) updateVideo(ctx context.Context, op, id string, update any) error {
	oid, err := oidFromHex(op, id)
	if err != nil {
		return err
	}

	res, err := s.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (s *Videos) findVideoAndUpdate(ctx context.Context, op, id string, update any) (*models.Video, error) {
	oid, err := oidFromHex(op, id)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc videoDoc
	if err := s.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return videoFromDoc(&doc), nil
}
