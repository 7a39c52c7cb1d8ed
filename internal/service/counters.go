package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pribylovaa/go-shorts-platform/internal/models"
	"github.com/pribylovaa/go-shorts-platform/internal/pkg/log"
)

// ReconcileResult — итог пересчёта счётчиков одного видео.
type ReconcileResult struct {
	VideoID       string
	CommentsCount int64
	// CommentsFixed — CommentsCount видео расходился с фактом и был перезаписан.
	CommentsFixed bool
	// RepliesFixed — число комментариев с исправленным RepliesCount.
	RepliesFixed int64
}

// ReconcileVideo пересчитывает CommentsCount видео и RepliesCount всех его
// комментариев. Доступно только администратору.
func (s *Service) ReconcileVideo(ctx context.Context, actor models.Actor, videoID string) (*ReconcileResult, error) {
	const op = "service/counters/ReconcileVideo"

	if err := requireActor(op, actor); err != nil {
		return nil, err
	}

	if !actor.IsAdmin() {
		log.From(ctx).Warn("reconcile_forbidden",
			slog.String("op", op),
			slog.String("user_id", actor.UserID.String()),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	videoID = strings.TrimSpace(videoID)
	if err := models.ValidateID("id", videoID); err != nil {
		return nil, invalid(op, err)
	}

	res, err := s.reconcileVideo(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return res, nil
}

func (s *Service) reconcileVideo(ctx context.Context, videoID string) (*ReconcileResult, error) {
	const op = "service/counters/reconcileVideo"

	lg := log.From(ctx).With(slog.String("op", op), slog.String("video_id", videoID))

	v, err := s.videos.VideoByID(ctx, videoID)
	if err != nil {
		return nil, storageErr(lg, op, "video_lookup", err)
	}

	actual, err := s.comments.CountByVideo(ctx, videoID)
	if err != nil {
		return nil, storageErr(lg, op, "count_by_video", err)
	}

	res := &ReconcileResult{VideoID: videoID, CommentsCount: actual}

	if actual != v.Stats.CommentsCount {
		if err := s.videos.SetCommentsCount(ctx, videoID, actual); err != nil {
			return nil, storageErr(lg, op, "set_comments_count", err)
		}

		res.CommentsFixed = true
		s.metrics.ReconcileFixed("comments", 1)
		lg.Info("comments_count_fixed",
			slog.Int64("was", v.Stats.CommentsCount),
			slog.Int64("now", actual),
		)
	}

	fixed, err := s.comments.ReconcileReplyCounts(ctx, videoID)
	if err != nil {
		return nil, storageErr(lg, op, "reconcile_replies", err)
	}

	res.RepliesFixed = fixed
	if fixed > 0 {
		s.metrics.ReconcileFixed("replies", fixed)
		lg.Info("replies_count_fixed", slog.Int64("comments", fixed))
	}

	if res.CommentsFixed || fixed > 0 {
		s.invalidateForVideo(ctx, videoID)
	}

	return res, nil
}

// StartReconciler периодически пересчитывает счётчики видео, обновлённых
// за последние Reconciler.Window. Блокируется до отмены ctx.
func (s *Service) StartReconciler(ctx context.Context) error {
	const op = "service/counters/StartReconciler"

	interval := s.cfg.Reconciler.Interval
	if interval <= 0 {
		return fmt.Errorf("%s: non-positive interval", op)
	}

	lg := log.From(ctx)
	lg.Info("reconciler_start",
		slog.String("op", op),
		slog.Duration("interval", interval),
		slog.Duration("window", s.cfg.Reconciler.Window),
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			lg.Info("reconciler_stop", slog.String("op", op))
			return nil
		case <-ticker.C:
			if _, err := s.ReconcileOnce(ctx); err != nil {
				lg.Warn("reconciler_tick_error",
					slog.String("op", op),
					slog.String("err", err.Error()),
				)
			}
		}
	}
}

// ReconcileOnce — один проход пересчёта. Кандидаты:
//   - видео, у которых комментарии менялись за последние Reconciler.Window;
//   - видео с updated_at в том же окне (удаления комментариев отмечают видео заранее).
//
// Оба источника читаются страницами по Reconciler.Batch до конца, каждое видео
// пересчитывается один раз. Ошибка по отдельному видео не прерывает проход.
// Возвращает число обработанных видео.
func (s *Service) ReconcileOnce(ctx context.Context) (int, error) {
	const op = "service/counters/ReconcileOnce"

	lg := log.From(ctx)
	since := s.now().Add(-s.cfg.Reconciler.Window)

	batch := s.cfg.Reconciler.Batch
	if batch <= 0 {
		batch = 200
	}

	var done, failed int
	seen := make(map[string]struct{})
	visit := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}

		if _, err := s.reconcileVideo(ctx, id); err != nil {
			failed++
			return
		}
		done++
	}

	sources := []struct {
		step  string
		fetch touchedFunc
	}{
		{"changed_comments", s.comments.VideosChangedSince},
		{"touched_videos", s.videos.TouchedSince},
	}

	for _, src := range sources {
		if err := eachTouched(ctx, src.fetch, since, batch, visit); err != nil {
			return done, storageErr(lg, op, src.step, err)
		}
	}

	s.metrics.ReconcileRun()
	lg.Info("reconcile_pass",
		slog.String("op", op),
		slog.Int("videos", done),
		slog.Int("failed", failed),
	)

	return done, nil
}

type touchedFunc func(ctx context.Context, since time.Time, afterID string, limit int64) ([]string, error)

// eachTouched обходит все страницы fetch: следующая запрашивается
// после последнего id предыдущей, пока страница не окажется неполной.
func eachTouched(ctx context.Context, fetch touchedFunc, since time.Time, batch int64, visit func(id string)) error {
	after := ""
	for ctx.Err() == nil {
		ids, err := fetch(ctx, since, after, batch)
		if err != nil {
			return err
		}

		for _, id := range ids {
			if ctx.Err() != nil {
				return nil
			}
			visit(id)
		}

		if int64(len(ids)) < batch {
			return nil
		}
		after = ids[len(ids)-1]
	}

	return nil
}
