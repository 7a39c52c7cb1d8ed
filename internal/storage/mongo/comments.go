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

func oidFromHex(op, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return oid, nil
}

// CreateComment вставляет комментарий с уже вычисленными thread.level/path.
func (s *Comments) CreateComment(ctx context.Context, c models.Comment) (*models.Comment, error) {
	const op = "storage/mongo/CreateComment"

	now := toMS(time.Now())
	c.ID = ""
	c.CreatedAt = now
	c.UpdatedAt = now
	c.Stats = models.CommentStats{}
	if c.Moderation.Status == "" {
		c.Moderation.Status = models.StatusApproved
	}

	doc, err := commentToDoc(c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrInvalidArgument)
	}

	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("%s: insert: %w", op, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected inserted id type %T", op, res.InsertedID)
	}

	doc.ID = oid

	return commentFromDoc(&doc), nil
}

// CommentByID возвращает комментарий по hex-идентификатору.
func (s *Comments) CommentByID(ctx context.Context, id string) (*models.Comment, error) {
	const op = "storage/mongo/CommentByID"

	oid, err := oidFromHex(op, id)
	if err != nil {
		return nil, err
	}

	var doc commentDoc
	if err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return commentFromDoc(&doc), nil
}

// UpdateContent заменяет текст и дописывает прежнюю версию в edit_history.
func (s *Comments) UpdateContent(ctx context.Context, id, content string, mentions []uuid.UUID, prior models.EditRecord, at time.Time) (*models.Comment, error) {
	const op = "storage/mongo/UpdateContent"

	oid, err := oidFromHex(op, id)
	if err != nil {
		return nil, err
	}

	ms := make([]string, 0, len(mentions))
	for _, u := range mentions {
		ms = append(ms, u.String())
	}

	at = toMS(at)
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "content", Value: content},
			{Key: "mentions", Value: ms},
			{Key: "is_edited", Value: true},
			{Key: "edited_at", Value: at},
			{Key: "updated_at", Value: at},
		}},
		{Key: "$push", Value: bson.D{
			{Key: "edit_history", Value: editDoc{Content: prior.Content, EditedAt: toMS(prior.EditedAt)}},
		}},
	}

	return s.findOneAndUpdate(ctx, op, oid, update)
}

// AddLike — идемпотентный лайк; likes_count пересчитывается из списка.
func (s *Comments) AddLike(ctx context.Context, id string, userID uuid.UUID, at time.Time) (*models.Comment, error) {
	const op = "storage/mongo/AddLike"

	oid, err := oidFromHex(op, id)
	if err != nil {
		return nil, err
	}

	return s.findOneAndUpdate(ctx, op, oid, addLikePipeline(userID.String(), at, "stats.likes_count", true))
}

// RemoveLike — идемпотентное снятие лайка.
func (s *Comments) RemoveLike(ctx context.Context, id string, userID uuid.UUID) (*models.Comment, error) {
	const op = "storage/mongo/RemoveLike"

	oid, err := oidFromHex(op, id)
	if err != nil {
		return nil, err
	}

	return s.findOneAndUpdate(ctx, op, oid, removeLikePipeline(userID.String(), time.Now(), "stats.likes_count", true))
}

// AddReport регистрирует жалобу и при необходимости отправляет комментарий на модерацию.
func (s *Comments) AddReport(ctx context.Context, id string, r models.Report, threshold int32) (*models.Comment, error) {
	const op = "storage/mongo/AddReport"

	oid, err := oidFromHex(op, id)
	if err != nil {
		return nil, err
	}

	return s.findOneAndUpdate(ctx, op, oid, reportPipeline(r.UserID.String(), string(r.Reason), r.CreatedAt, threshold))
}

func (s *Comments) findOneAndUpdate(ctx context.Context, op string, oid primitive.ObjectID, update any) (*models.Comment, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc commentDoc
	if err := s.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return commentFromDoc(&doc), nil
}

// DeleteSubtree удаляет узел и всех потомков одним DeleteMany:
// _id == c.id ИЛИ thread.path ~ ^<c.path>/<c.id>(/|$).
func (s *Comments) DeleteSubtree(ctx context.Context, c *models.Comment) (int64, error) {
	const op = "storage/mongo/DeleteSubtree"

	oid, err := oidFromHex(op, c.ID)
	if err != nil {
		return 0, err
	}

	filter := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "thread.path", Value: subtreeRegex(c.SubtreePath())}},
	}}}

	res, err := s.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return res.DeletedCount, nil
}

// DeleteByVideo удаляет все комментарии видео.
func (s *Comments) DeleteByVideo(ctx context.Context, videoID string) (int64, error) {
	const op = "storage/mongo/DeleteByVideo"

	vid, err := oidFromHex(op, videoID)
	if err != nil {
		return 0, err
	}

	res, err := s.coll.DeleteMany(ctx, bson.D{{Key: "video_id", Value: vid}})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return res.DeletedCount, nil
}

// SubtreeIDs — id узла и всех его потомков, тем же фильтром, что и DeleteSubtree.
func (s *Comments) SubtreeIDs(ctx context.Context, c *models.Comment) ([]string, error) {
	const op = "storage/mongo/SubtreeIDs"

	oid, err := oidFromHex(op, c.ID)
	if err != nil {
		return nil, err
	}

	ids, err := s.findIDs(ctx, bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "thread.path", Value: subtreeRegex(c.SubtreePath())}},
	}}})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ids, nil
}

// IDsByVideo — id всех комментариев видео.
func (s *Comments) IDsByVideo(ctx context.Context, videoID string) ([]string, error) {
	const op = "storage/mongo/IDsByVideo"

	vid, err := oidFromHex(op, videoID)
	if err != nil {
		return nil, err
	}

	ids, err := s.findIDs(ctx, bson.D{{Key: "video_id", Value: vid}})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ids, nil
}

func (s *Comments) findIDs(ctx context.Context, filter bson.D) ([]string, error) {
	cur, err := s.coll.Find(ctx, filter, options.Find().SetProjection(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}
	defer cur.Close(ctx)

	ids := make([]string, 0)
	for cur.Next(ctx) {
		var row struct {
			ID primitive.ObjectID `bson:"_id"`
		}

		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}

		ids = append(ids, row.ID.Hex())
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("cursor: %w", err)
	}

	return ids, nil
}

// IncRepliesCount атомарно меняет replies_count (не ниже нуля).
func (s *Comments) IncRepliesCount(ctx context.Context, id string, delta int32) error {
	const op = "storage/mongo/IncRepliesCount"

	oid, err := oidFromHex(op, id)
	if err != nil {
		return err
	}

	res, err := s.coll.UpdateByID(ctx, oid, clampedIncPipeline("stats.replies_count", int64(delta), time.Now()))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// CountReplies — точное число прямых ответов на parentID.
func (s *Comments) CountReplies(ctx context.Context, parentID string) (int64, error) {
	const op = "storage/mongo/CountReplies"

	n, err := s.coll.CountDocuments(ctx, bson.D{{Key: "parent_id", Value: parentID}})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// SetRepliesCount записывает точное значение replies_count.
func (s *Comments) SetRepliesCount(ctx context.Context, id string, n int64) error {
	const op = "storage/mongo/SetRepliesCount"

	oid, err := oidFromHex(op, id)
	if err != nil {
		return err
	}

	res, err := s.coll.UpdateByID(ctx, oid, bson.D{{Key: "$set", Value: bson.D{
		{Key: "stats.replies_count", Value: int32(n)},
	}}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// CountByVideo — точное число комментариев видео.
func (s *Comments) CountByVideo(ctx context.Context, videoID string) (int64, error) {
	const op = "storage/mongo/CountByVideo"

	vid, err := oidFromHex(op, videoID)
	if err != nil {
		return 0, err
	}

	n, err := s.coll.CountDocuments(ctx, bson.D{{Key: "video_id", Value: vid}})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// ReconcileReplyCounts сверяет replies_count каждого комментария видео
// с фактическим числом детей и исправляет расхождения одним BulkWrite.
func (s *Comments) ReconcileReplyCounts(ctx context.Context, videoID string) (int64, error) {
	const op = "storage/mongo/ReconcileReplyCounts"

	vid, err := oidFromHex(op, videoID)
	if err != nil {
		return 0, err
	}

	actual, err := s.childCounts(ctx, vid)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	cur, err := s.coll.Find(ctx,
		bson.D{{Key: "video_id", Value: vid}},
		options.Find().SetProjection(bson.D{{Key: "_id", Value: 1}, {Key: "stats.replies_count", Value: 1}}),
	)
	if err != nil {
		return 0, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	var writes []mongodriver.WriteModel
	for cur.Next(ctx) {
		var row struct {
			ID    primitive.ObjectID `bson:"_id"`
			Stats struct {
				RepliesCount int32 `bson:"replies_count"`
			} `bson:"stats"`
		}

		if err := cur.Decode(&row); err != nil {
			return 0, fmt.Errorf("%s: decode: %w", op, err)
		}

		want := actual[row.ID.Hex()]
		if row.Stats.RepliesCount == want {
			continue
		}

		writes = append(writes, mongodriver.NewUpdateOneModel().
			SetFilter(bson.D{{Key: "_id", Value: row.ID}}).
			SetUpdate(bson.D{{Key: "$set", Value: bson.D{{Key: "stats.replies_count", Value: want}}}}))
	}

	if err := cur.Err(); err != nil {
		return 0, fmt.Errorf("%s: cursor: %w", op, err)
	}

	if len(writes) == 0 {
		return 0, nil
	}

	res, err := s.coll.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, fmt.Errorf("%s: bulk: %w", op, err)
	}

	return res.ModifiedCount, nil
}

// childCounts — число прямых ответов по parent_id в пределах видео.
func (s *Comments) childCounts(ctx context.Context, vid primitive.ObjectID) (map[string]int32, error) {
	pipeline := mongodriver.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "video_id", Value: vid},
			{Key: "parent_id", Value: bson.D{{Key: "$ne", Value: ""}}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$parent_id"},
			{Key: "n", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[string]int32)
	for cur.Next(ctx) {
		var row struct {
			ParentID string `bson:"_id"`
			N        int32  `bson:"n"`
		}

		if err := cur.Decode(&row); err != nil {
			return nil, err
		}

		out[row.ParentID] = row.N
	}

	return out, cur.Err()
}

// VideosChangedSince — различные video_id комментариев, изменённых не раньше since.
// Постраничный обход по возрастанию video_id: следующая страница
// запрашивается с afterID = последний id предыдущей.
func (s *Comments) VideosChangedSince(ctx context.Context, since time.Time, afterID string, limit int64) ([]string, error) {
	const op = "storage/mongo/VideosChangedSince"

	match := bson.D{{Key: "updated_at", Value: bson.D{{Key: "$gte", Value: toMS(since)}}}}
	if afterID != "" {
		after, err := oidFromHex(op, afterID)
		if err != nil {
			return nil, err
		}

		match = append(match, bson.E{Key: "video_id", Value: bson.D{{Key: "$gt", Value: after}}})
	}

	pipeline := mongodriver.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$video_id"}}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var row struct {
			VideoID primitive.ObjectID `bson:"_id"`
		}

		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}

		ids = append(ids, row.VideoID.Hex())
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return ids, nil
}

var sortFields = map[models.SortField]string{
	models.SortByCreatedAt:    "created_at",
	models.SortByLikesCount:   "stats.likes_count",
	models.SortByRepliesCount: "stats.replies_count",
}

// ListTopLevel возвращает страницу корневых approved-комментариев видео и общее их число.
// Параметры должны быть нормализованы (models.ListCommentsParams.Normalize).
func (s *Comments) ListTopLevel(ctx context.Context, p models.ListCommentsParams) ([]*models.Comment, int64, error) {
	const op = "storage/mongo/ListTopLevel"

	vid, err := oidFromHex(op, p.VideoID)
	if err != nil {
		return nil, 0, err
	}

	filter := bson.D{
		{Key: "video_id", Value: vid},
		{Key: "parent_id", Value: ""},
		{Key: "moderation.status", Value: string(models.StatusApproved)},
	}

	total, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: count: %w", op, err)
	}

	field, ok := sortFields[p.SortBy]
	if !ok {
		field = "created_at"
	}

	dir := -1
	if p.SortOrder == models.SortAsc {
		dir = 1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: field, Value: dir}, {Key: "_id", Value: dir}}).
		SetSkip(p.Offset()).
		SetLimit(int64(p.Limit))

	items, err := s.findComments(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return items, total, nil
}

// ListReplies возвращает до limit approved-ответов на parentID.
func (s *Comments) ListReplies(ctx context.Context, parentID string, limit int32, newestFirst bool) ([]*models.Comment, error) {
	const op = "storage/mongo/ListReplies"

	if limit <= 0 {
		return nil, nil
	}

	dir := 1
	if newestFirst {
		dir = -1
	}

	filter := bson.D{
		{Key: "parent_id", Value: parentID},
		{Key: "moderation.status", Value: string(models.StatusApproved)},
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: dir}, {Key: "_id", Value: dir}}).
		SetLimit(int64(limit))

	items, err := s.findComments(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// ListThread возвращает корень и потомков со статусом approved,
// упорядоченных по (level asc, created_at asc). Ответ обрезается по limit,
// поэтому потомки включённого узла могут не попасть в выдачу.
func (s *Comments) ListThread(ctx context.Context, root *models.Comment, limit int32) ([]*models.Comment, error) {
	const op = "storage/mongo/ListThread"

	oid, err := oidFromHex(op, root.ID)
	if err != nil {
		return nil, err
	}

	filter := bson.D{
		{Key: "$or", Value: bson.A{
			bson.D{{Key: "_id", Value: oid}},
			bson.D{{Key: "thread.path", Value: subtreeRegex(root.SubtreePath())}},
		}},
		{Key: "moderation.status", Value: string(models.StatusApproved)},
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "thread.level", Value: 1}, {Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(limit))

	items, err := s.findComments(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

func (s *Comments) findComments(ctx context.Context, filter bson.D, opts *options.FindOptions) ([]*models.Comment, error) {
	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]*models.Comment, 0)
	for cur.Next(ctx) {
		var doc commentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}

		out = append(out, commentFromDoc(&doc))
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("cursor: %w", err)
	}

	return out, nil
}
