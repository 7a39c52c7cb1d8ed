package service

import (
	"context"
	"errors"
	"io"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pribylovaa/go-shorts-platform/internal/models"
	"github.com/pribylovaa/go-shorts-platform/internal/storage"
)

// memDB — in-memory хранилище с той же семантикой, что и mongo-реализация:
// счётчики лайков и жалоб пересчитываются по спискам, поддерево выбирается по Path.
type memDB struct {
	mu       sync.Mutex
	comments map[string]*models.Comment
	videos   map[string]*models.Video
	clock    time.Time
}

func newMemDB() *memDB {
	return &memDB{
		comments: make(map[string]*models.Comment),
		videos:   make(map[string]*models.Video),
		clock:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick — монотонные времена создания, чтобы порядок был детерминирован.
func (db *memDB) tick() time.Time {
	db.clock = db.clock.Add(time.Second)
	return db.clock
}

// advance сдвигает часы хранилища (и сервиса) на d.
func (db *memDB) advance(d time.Duration) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.clock = db.clock.Add(d)
}

func cloneComment(c *models.Comment) *models.Comment {
	out := *c
	out.Mentions = append([]uuid.UUID(nil), c.Mentions...)
	out.Moderation.Flags = append([]models.ReportReason{}, c.Moderation.Flags...)
	out.Likes = append([]models.Like{}, c.Likes...)
	out.Reports = append([]models.Report{}, c.Reports...)
	out.EditHistory = append([]models.EditRecord{}, c.EditHistory...)
	if c.EditedAt != nil {
		at := *c.EditedAt
		out.EditedAt = &at
	}

	return &out
}

func cloneVideo(v *models.Video) *models.Video {
	out := *v
	out.Tags = append([]string(nil), v.Tags...)
	out.Likes = append([]models.Like{}, v.Likes...)

	return &out
}

func inSubtree(c *models.Comment, root *models.Comment) bool {
	if c.ID == root.ID {
		return true
	}

	sub := root.SubtreePath()

	return c.Thread.Path == sub || strings.HasPrefix(c.Thread.Path, sub+"/")
}

type memComments struct{ db *memDB }

var _ storage.CommentsStorage = memComments{}

func (s memComments) CreateComment(_ context.Context, c models.Comment) (*models.Comment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	now := s.db.tick()
	c.ID = primitive.NewObjectID().Hex()
	c.Stats = models.CommentStats{}
	c.CreatedAt, c.UpdatedAt = now, now
	if c.Moderation.Status == "" {
		c.Moderation.Status = models.StatusApproved
	}

	s.db.comments[c.ID] = cloneComment(&c)

	return cloneComment(&c), nil
}

func (s memComments) get(id string) (*models.Comment, error) {
	c, ok := s.db.comments[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	return c, nil
}

func (s memComments) CommentByID(_ context.Context, id string) (*models.Comment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	c, err := s.get(id)
	if err != nil {
		return nil, err
	}

	return cloneComment(c), nil
}

func (s memComments) UpdateContent(_ context.Context, id, content string, mentions []uuid.UUID, prior models.EditRecord, at time.Time) (*models.Comment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	c, err := s.get(id)
	if err != nil {
		return nil, err
	}

	c.EditHistory = append(c.EditHistory, prior)
	c.Content = content
	c.Mentions = mentions
	c.IsEdited = true
	c.EditedAt = &at
	c.UpdatedAt = at

	return cloneComment(c), nil
}

func (s memComments) AddLike(_ context.Context, id string, userID uuid.UUID, at time.Time) (*models.Comment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	c, err := s.get(id)
	if err != nil {
		return nil, err
	}

	if !c.IsLikedBy(userID) {
		c.Likes = append(c.Likes, models.Like{UserID: userID, CreatedAt: at})
	}
	c.Stats.LikesCount = int32(len(c.Likes))

	return cloneComment(c), nil
}

func (s memComments) RemoveLike(_ context.Context, id string, userID uuid.UUID) (*models.Comment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	c, err := s.get(id)
	if err != nil {
		return nil, err
	}

	kept := c.Likes[:0]
	for _, l := range c.Likes {
		if l.UserID != userID {
			kept = append(kept, l)
		}
	}
	c.Likes = kept
	c.Stats.LikesCount = int32(len(c.Likes))

	return cloneComment(c), nil
}

func (s memComments) AddReport(_ context.Context, id string, r models.Report, threshold int32) (*models.Comment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	c, err := s.get(id)
	if err != nil {
		return nil, err
	}

	if !c.IsReportedBy(r.UserID) {
		c.Reports = append(c.Reports, r)
		if !c.HasFlag(r.Reason) {
			c.Moderation.Flags = append(c.Moderation.Flags, r.Reason)
		}
	}
	c.Stats.ReportsCount = int32(len(c.Reports))

	if c.Moderation.Status == models.StatusApproved && c.Stats.ReportsCount >= threshold {
		c.Moderation.Status = models.StatusPending
	}

	return cloneComment(c), nil
}

func (s memComments) DeleteSubtree(_ context.Context, root *models.Comment) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var n int64
	for id, c := range s.db.comments {
		if inSubtree(c, root) {
			delete(s.db.comments, id)
			n++
		}
	}

	return n, nil
}

func (s memComments) DeleteByVideo(_ context.Context, videoID string) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var n int64
	for id, c := range s.db.comments {
		if c.VideoID == videoID {
			delete(s.db.comments, id)
			n++
		}
	}

	return n, nil
}

func (s memComments) SubtreeIDs(_ context.Context, root *models.Comment) ([]string, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var ids []string
	for id, c := range s.db.comments {
		if inSubtree(c, root) {
			ids = append(ids, id)
		}
	}

	return ids, nil
}

func (s memComments) IDsByVideo(_ context.Context, videoID string) ([]string, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var ids []string
	for id, c := range s.db.comments {
		if c.VideoID == videoID {
			ids = append(ids, id)
		}
	}

	return ids, nil
}

func (s memComments) VideosChangedSince(_ context.Context, since time.Time, afterID string, limit int64) ([]string, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	seen := make(map[string]struct{})
	for _, c := range s.db.comments {
		if !c.UpdatedAt.Before(since) && c.VideoID > afterID {
			seen[c.VideoID] = struct{}{}
		}
	}

	return firstSorted(seen, limit), nil
}

// firstSorted — первые limit ключей по возрастанию.
func firstSorted(set map[string]struct{}, limit int64) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if int64(len(ids)) > limit {
		ids = ids[:limit]
	}

	return ids
}

func (s memComments) IncRepliesCount(_ context.Context, id string, delta int32) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	c, err := s.get(id)
	if err != nil {
		return err
	}

	c.Stats.RepliesCount = max(0, c.Stats.RepliesCount+delta)

	return nil
}

func (s memComments) countReplies(parentID string) int64 {
	var n int64
	for _, c := range s.db.comments {
		if c.ParentID == parentID {
			n++
		}
	}

	return n
}

func (s memComments) CountReplies(_ context.Context, parentID string) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	return s.countReplies(parentID), nil
}

func (s memComments) SetRepliesCount(_ context.Context, id string, n int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	c, err := s.get(id)
	if err != nil {
		return err
	}

	c.Stats.RepliesCount = int32(n)

	return nil
}

func (s memComments) CountByVideo(_ context.Context, videoID string) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var n int64
	for _, c := range s.db.comments {
		if c.VideoID == videoID {
			n++
		}
	}

	return n, nil
}

func (s memComments) ReconcileReplyCounts(_ context.Context, videoID string) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var fixed int64
	for _, c := range s.db.comments {
		if c.VideoID != videoID {
			continue
		}

		if actual := int32(s.countReplies(c.ID)); actual != c.Stats.RepliesCount {
			c.Stats.RepliesCount = actual
			fixed++
		}
	}

	return fixed, nil
}

func (s memComments) filter(keep func(*models.Comment) bool) []*models.Comment {
	var out []*models.Comment
	for _, c := range s.db.comments {
		if keep(c) {
			out = append(out, cloneComment(c))
		}
	}

	return out
}

func (s memComments) ListTopLevel(_ context.Context, p models.ListCommentsParams) ([]*models.Comment, int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	all := s.filter(func(c *models.Comment) bool {
		return c.VideoID == p.VideoID && c.IsTopLevel() && c.IsApproved()
	})

	key := func(c *models.Comment) int64 {
		switch p.SortBy {
		case models.SortByLikesCount:
			return int64(c.Stats.LikesCount)
		case models.SortByRepliesCount:
			return int64(c.Stats.RepliesCount)
		default:
			return c.CreatedAt.UnixNano()
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		ki, kj := key(all[i]), key(all[j])
		if ki == kj {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		if p.SortOrder == models.SortAsc {
			return ki < kj
		}

		return ki > kj
	})

	total := int64(len(all))
	from := min(p.Offset(), total)
	to := min(from+int64(p.Limit), total)

	return all[from:to], total, nil
}

func (s memComments) ListReplies(_ context.Context, parentID string, limit int32, newestFirst bool) ([]*models.Comment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	out := s.filter(func(c *models.Comment) bool {
		return c.ParentID == parentID && c.IsApproved()
	})

	sort.Slice(out, func(i, j int) bool {
		if newestFirst {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}

		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	if int32(len(out)) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (s memComments) ListThread(_ context.Context, root *models.Comment, limit int32) ([]*models.Comment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	out := s.filter(func(c *models.Comment) bool {
		return inSubtree(c, root) && c.IsApproved()
	})

	sort.Slice(out, func(i, j int) bool {
		if out[i].Thread.Level != out[j].Thread.Level {
			return out[i].Thread.Level < out[j].Thread.Level
		}

		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	if int32(len(out)) > limit {
		out = out[:limit]
	}

	return out, nil
}

type memVideos struct{ db *memDB }

var _ storage.VideosStorage = memVideos{}

func (s memVideos) CreateVideo(_ context.Context, v models.Video) (*models.Video, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	now := s.db.tick()
	v.ID = primitive.NewObjectID().Hex()
	v.CreatedAt, v.UpdatedAt = now, now
	s.db.videos[v.ID] = cloneVideo(&v)

	return cloneVideo(&v), nil
}

func (s memVideos) get(id string) (*models.Video, error) {
	v, ok := s.db.videos[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	return v, nil
}

func (s memVideos) VideoByID(_ context.Context, id string) (*models.Video, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	v, err := s.get(id)
	if err != nil {
		return nil, err
	}

	return cloneVideo(v), nil
}

func (s memVideos) DeleteVideo(_ context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, err := s.get(id); err != nil {
		return err
	}
	delete(s.db.videos, id)

	return nil
}

func (s memVideos) IncCommentsCount(_ context.Context, id string, delta int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	v, err := s.get(id)
	if err != nil {
		return err
	}

	v.Stats.CommentsCount = max(0, v.Stats.CommentsCount+delta)
	v.UpdatedAt = s.db.tick()

	return nil
}

func (s memVideos) SetCommentsCount(_ context.Context, id string, n int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	v, err := s.get(id)
	if err != nil {
		return err
	}

	v.Stats.CommentsCount = n

	return nil
}

func (s memVideos) IncViews(_ context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	v, err := s.get(id)
	if err != nil {
		return err
	}

	v.Stats.ViewsCount++

	return nil
}

func (s memVideos) AddLike(_ context.Context, id string, userID uuid.UUID, at time.Time) (*models.Video, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	v, err := s.get(id)
	if err != nil {
		return nil, err
	}

	if !v.IsLikedBy(userID) {
		v.Likes = append(v.Likes, models.Like{UserID: userID, CreatedAt: at})
	}
	v.Stats.LikesCount = int64(len(v.Likes))

	return cloneVideo(v), nil
}

func (s memVideos) RemoveLike(_ context.Context, id string, userID uuid.UUID) (*models.Video, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	v, err := s.get(id)
	if err != nil {
		return nil, err
	}

	kept := v.Likes[:0]
	for _, l := range v.Likes {
		if l.UserID != userID {
			kept = append(kept, l)
		}
	}
	v.Likes = kept
	v.Stats.LikesCount = int64(len(v.Likes))

	return cloneVideo(v), nil
}

func (s memVideos) SetThumbnail(_ context.Context, id, key, url string) (*models.Video, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	v, err := s.get(id)
	if err != nil {
		return nil, err
	}

	v.ThumbnailKey, v.ThumbnailURL = key, url

	return cloneVideo(v), nil
}

func (s memVideos) Touch(_ context.Context, id string, at time.Time) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	v, err := s.get(id)
	if err != nil {
		return err
	}

	v.UpdatedAt = at

	return nil
}

func (s memVideos) TouchedSince(_ context.Context, since time.Time, afterID string, limit int64) ([]string, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	set := make(map[string]struct{})
	for id, v := range s.db.videos {
		if !v.UpdatedAt.Before(since) && id > afterID {
			set[id] = struct{}{}
		}
	}

	return firstSorted(set, limit), nil
}

// lostCounterWrites теряет каждый инкремент CommentsCount.
type lostCounterWrites struct{ memVideos }

func (lostCounterWrites) IncCommentsCount(context.Context, string, int64) error {
	return errors.New("counter write lost")
}

// memObjects — объектное хранилище: ключи видео считаются загруженными.
type memObjects struct {
	mu      sync.Mutex
	objects map[string]int64
}

var _ storage.VideoObjects = (*memObjects)(nil)

func newMemObjects() *memObjects {
	return &memObjects{objects: make(map[string]int64)}
}

func (o *memObjects) UploadURL(_ context.Context, ownerID uuid.UUID, contentType string, size int64) (*models.UploadInfo, error) {
	if contentType != "video/mp4" {
		return nil, storage.ErrInvalidArgument
	}

	key := "videos/" + ownerID.String() + "/" + uuid.NewString() + ".mp4"

	o.mu.Lock()
	o.objects[key] = size
	o.mu.Unlock()

	return &models.UploadInfo{UploadURL: "http://s3.local/" + key, ObjectKey: key, Expires: 15 * time.Minute}, nil
}

func (o *memObjects) StatVideo(_ context.Context, ownerID uuid.UUID, key string) (*models.ObjectInfo, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	size, ok := o.objects[key]
	if !ok || !strings.HasPrefix(key, "videos/"+ownerID.String()+"/") {
		return nil, storage.ErrNotFound
	}

	return &models.ObjectInfo{Key: key, Size: size, ContentType: "video/mp4", URL: "http://s3.local/" + key}, nil
}

func (o *memObjects) PutThumbnail(_ context.Context, videoID string, r io.Reader, _ int64, _ string) (*models.ObjectInfo, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	key := "thumbnails/" + videoID + "/" + uuid.NewString() + ".jpg"

	o.mu.Lock()
	o.objects[key] = int64(len(b))
	o.mu.Unlock()

	return &models.ObjectInfo{Key: key, Size: int64(len(b)), ContentType: "image/jpeg", URL: "http://s3.local/" + key}, nil
}

func (o *memObjects) DeleteObject(_ context.Context, key string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	delete(o.objects, key)

	return nil
}

func (o *memObjects) has(key string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	_, ok := o.objects[key]

	return ok
}

var errCacheDown = errors.New("cache down")

// memCache — кэш на map с glob-удалением; down=true имитирует недоступный Redis.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	down bool
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.down {
		return nil, false, errCacheDown
	}

	v, ok := c.data[key]

	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, val []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.down {
		return errCacheDown
	}

	c.data[key] = val

	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, k := range keys {
		delete(c.data, k)
	}

	return nil
}

func (c *memCache) DeleteByPattern(_ context.Context, pattern string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.down {
		return 0, errCacheDown
	}

	var n int64
	for k := range c.data {
		if ok, _ := path.Match(pattern, k); ok {
			delete(c.data, k)
			n++
		}
	}

	return n, nil
}

func (c *memCache) Close() error { return nil }

func (c *memCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.data[key]

	return ok
}
