package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pribylovaa/go-shorts-platform/internal/models"
	"github.com/pribylovaa/go-shorts-platform/internal/pkg/log"
	"github.com/pribylovaa/go-shorts-platform/internal/storage"
)

// prepareThread вычисляет Thread нового комментария.
//
// Правила:
//   - пустой parentID — корень: {0, ""};
//   - родителя нет — ErrParentNotFound;
//   - родитель под другим видео — ErrCrossVideo;
//   - уровень родителя >= MaxDepth — ErrDepthLimit;
//   - иначе {parent.Level+1, parent.Path + "/" + parent.ID}.
//
// Возвращает и самого родителя (nil для корня).
func (s *Service) prepareThread(ctx context.Context, videoID, parentID string) (models.Thread, *models.Comment, error) {
	const op = "service/thread/prepareThread"

	if parentID == "" {
		return models.Thread{}, nil, nil
	}

	lg := log.From(ctx).With(slog.String("op", op), slog.String("parent_id", parentID))

	parent, err := s.comments.CommentByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("parent_not_found")
			return models.Thread{}, nil, fmt.Errorf("%s: %w", op, ErrParentNotFound)
		}

		return models.Thread{}, nil, storageErr(lg, op, "parent_lookup", err)
	}

	if parent.VideoID != videoID {
		lg.Warn("parent_cross_video",
			slog.String("video_id", videoID),
			slog.String("parent_video_id", parent.VideoID),
		)
		return models.Thread{}, nil, fmt.Errorf("%s: %w", op, ErrCrossVideo)
	}

	if !parent.CanReply(s.maxDepth()) {
		lg.Warn("parent_depth_limit", slog.Int("level", int(parent.Thread.Level)))
		return models.Thread{}, nil, fmt.Errorf("%s: %w", op, ErrDepthLimit)
	}

	return parent.ChildThread(), parent, nil
}

func (s *Service) maxDepth() int32 {
	if s.cfg.Limits.MaxDepth > 0 {
		return s.cfg.Limits.MaxDepth
	}

	return models.MaxThreadLevel
}

// GetThread возвращает корень и всех approved-потомков, отсортированных
// по (level asc, created_at asc) и обрезанных по Limit.
// Обрезка может оставить «сирот» без родителя в выдаче.
//
// Ошибки:
//   - ErrInvalidArgument — битый id или отрицательный limit;
//   - ErrNotFound — корня нет, он не approved, или выдача пуста.
func (s *Service) GetThread(ctx context.Context, p models.ThreadParams) ([]*models.Comment, error) {
	const op = "service/thread/GetThread"

	lg := log.From(ctx).With(slog.String("op", op), slog.String("root_id", p.RootID))

	if err := models.ValidateID("id", p.RootID); err != nil {
		lg.Warn("invalid_root_id")
		return nil, invalid(op, err)
	}

	if err := models.ValidateStruct(p); err != nil {
		lg.Warn("thread_params_invalid", slog.String("err", err.Error()))
		return nil, invalid(op, err)
	}

	p = p.Normalize(s.cfg.Limits.ThreadDefault, s.cfg.Limits.ThreadMax)

	key := threadKey(p.RootID, p.Limit)

	var cached []*models.Comment
	if s.cacheGet(ctx, viewThread, key, &cached) {
		return cached, nil
	}

	root, err := s.comments.CommentByID(ctx, p.RootID)
	if err != nil {
		return nil, storageErr(lg, op, "thread_root", err)
	}

	if !root.IsApproved() {
		lg.Warn("thread_root_hidden", slog.String("status", string(root.Moderation.Status)))
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	items, err := s.comments.ListThread(ctx, root, p.Limit)
	if err != nil {
		return nil, storageErr(lg, op, "thread_list", err)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	s.cacheSet(ctx, viewThread, key, items, s.cfg.Cache.ThreadTTL)

	return items, nil
}
