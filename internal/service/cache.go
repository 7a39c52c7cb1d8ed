package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/goccy/go-json"

	"github.com/pribylovaa/go-shorts-platform/internal/metrics"
	"github.com/pribylovaa/go-shorts-platform/internal/models"
	"github.com/pribylovaa/go-shorts-platform/internal/pkg/log"
)

// Представления, которые кэшируются целиком.
const (
	viewList   = "list"
	viewThread = "thread"
)

// listKey — comments:video:<videoId>:p<page>:l<limit>:<sortBy>:<sortOrder>.
func listKey(p models.ListCommentsParams) string {
	return fmt.Sprintf("comments:video:%s:p%d:l%d:%s:%s", p.VideoID, p.Page, p.Limit, p.SortBy, p.SortOrder)
}

func listPattern(videoID string) string {
	return "comments:video:" + videoID + ":*"
}

// threadKey — comment_threads:<rootId>:l<limit>.
func threadKey(rootID string, limit int32) string {
	return fmt.Sprintf("comment_threads:%s:l%d", rootID, limit)
}

func threadPattern(rootID string) string {
	return "comment_threads:" + rootID + ":*"
}

// cacheGet читает представление. Любая ошибка (кэш недоступен, битые данные)
// превращается в промах: источник истины — хранилище.
func (s *Service) cacheGet(ctx context.Context, view, key string, dst any) bool {
	const op = "service/cache/cacheGet"

	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.metrics.CacheLookup(view, metrics.CacheError)
		log.From(ctx).Warn("cache_get_failed",
			slog.String("op", op),
			slog.String("key", key),
			slog.String("err", err.Error()),
		)
		return false
	}

	if !ok {
		s.metrics.CacheLookup(view, metrics.CacheMiss)
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		s.metrics.CacheLookup(view, metrics.CacheError)
		log.From(ctx).Warn("cache_decode_failed",
			slog.String("op", op),
			slog.String("key", key),
			slog.String("err", err.Error()),
		)
		return false
	}

	s.metrics.CacheLookup(view, metrics.CacheHit)

	return true
}

func (s *Service) cacheSet(ctx context.Context, view, key string, v any, ttl time.Duration) {
	const op = "service/cache/cacheSet"

	if ttl <= 0 {
		return
	}

	raw, err := json.Marshal(v)
	if err != nil {
		log.From(ctx).Error("cache_encode_failed",
			slog.String("op", op),
			slog.String("view", view),
			slog.String("err", err.Error()),
		)
		return
	}

	if err := s.cache.Set(ctx, key, raw, ttl); err != nil {
		s.metrics.CacheLookup(view, metrics.CacheError)
		log.From(ctx).Warn("cache_set_failed",
			slog.String("op", op),
			slog.String("key", key),
			slog.String("err", err.Error()),
		)
	}
}

// invalidateForVideo сбрасывает все страницы комментариев видео.
func (s *Service) invalidateForVideo(ctx context.Context, videoID string) {
	s.purge(ctx, viewList, listPattern(videoID))
}

// invalidateForThread сбрасывает ветки самого комментария и каждого его предка.
func (s *Service) invalidateForThread(ctx context.Context, c *models.Comment) {
	for _, id := range c.Thread.Ancestors() {
		s.purge(ctx, viewThread, threadPattern(id))
	}

	s.purge(ctx, viewThread, threadPattern(c.ID))
}

// invalidateThreads сбрасывает ветки с корнями ids: при каскадном удалении
// закэшированной может оказаться ветка любого потомка.
func (s *Service) invalidateThreads(ctx context.Context, ids []string) {
	for _, id := range ids {
		s.purge(ctx, viewThread, threadPattern(id))
	}
}

// invalidateComment — изменение комментария затрагивает и страницы видео, и ветки.
func (s *Service) invalidateComment(ctx context.Context, c *models.Comment) {
	s.invalidateForVideo(ctx, c.VideoID)
	s.invalidateForThread(ctx, c)
}

func (s *Service) purge(ctx context.Context, view, pattern string) {
	const op = "service/cache/purge"

	n, err := s.cache.DeleteByPattern(ctx, pattern)
	if err != nil {
		s.metrics.CacheLookup(view, metrics.CacheError)
		log.From(ctx).Warn("cache_invalidate_failed",
			slog.String("op", op),
			slog.String("pattern", pattern),
			slog.String("err", err.Error()),
		)
		return
	}

	s.metrics.CacheInvalidated(view, n)
}
