package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pribylovaa/go-shorts-platform/internal/models"
	"github.com/pribylovaa/go-shorts-platform/internal/pkg/log"
	"github.com/pribylovaa/go-shorts-platform/internal/storage"
)

// CreateComment — создание корневого комментария или ответа.
//
// Порядок:
//   - валидация текста и идентификаторов;
//   - видео должно существовать (ErrNotFound);
//   - Thread вычисляется по родителю (ErrParentNotFound, ErrCrossVideo, ErrDepthLimit);
//   - после вставки: CommentsCount видео +1, RepliesCount родителя +1.
//
// Сбой инкремента счётчиков не откатывает вставку: ошибка пишется в лог,
// расхождение исправляет пересчёт.
func (s *Service) CreateComment(ctx context.Context, actor models.Actor, in models.CreateCommentInput) (*models.Comment, error) {
	const op = "service/comments/CreateComment"

	if err := requireActor(op, actor); err != nil {
		return nil, err
	}

	in = in.Normalize()
	lg := log.From(ctx).With(
		slog.String("op", op),
		slog.String("video_id", in.VideoID),
		slog.String("parent_id", in.ParentID),
		slog.String("user_id", actor.UserID.String()),
	)

	if err := in.Validate(); err != nil {
		lg.Warn("create_comment_invalid", slog.String("err", err.Error()))
		return nil, invalid(op, err)
	}

	if _, err := s.videos.VideoByID(ctx, in.VideoID); err != nil {
		return nil, storageErr(lg, op, "video_lookup", err)
	}

	thread, parent, err := s.prepareThread(ctx, in.VideoID, in.ParentID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.comments.CreateComment(ctx, models.Comment{
		VideoID:    in.VideoID,
		AuthorID:   actor.UserID,
		AuthorName: actor.Username,
		Content:    in.Content,
		ParentID:   in.ParentID,
		Mentions:   models.ParseMentions(in.Content),
		Thread:     thread,
		Moderation: models.Moderation{Status: models.StatusApproved},
	})
	if err != nil {
		return nil, storageErr(lg, op, "create_comment", err)
	}

	if err := s.videos.IncCommentsCount(ctx, created.VideoID, 1); err != nil {
		lg.Error("comments_count_inc_failed", slog.String("err", err.Error()))
	}

	if parent != nil {
		if err := s.comments.IncRepliesCount(ctx, parent.ID, 1); err != nil {
			lg.Error("replies_count_inc_failed", slog.String("err", err.Error()))
		}
	}

	s.metrics.CommentWrite("create")
	s.invalidateComment(ctx, created)

	lg.Info("comment_created",
		slog.String("comment_id", created.ID),
		slog.Int("level", int(created.Thread.Level)),
	)

	return created, nil
}

// CommentByID возвращает комментарий. Скрытые модерацией комментарии
// видны только автору и администратору.
func (s *Service) CommentByID(ctx context.Context, actor models.Actor, id string) (*models.Comment, error) {
	const op = "service/comments/CommentByID"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With(slog.String("op", op), slog.String("comment_id", id))

	if err := models.ValidateID("id", id); err != nil {
		return nil, invalid(op, err)
	}

	c, err := s.comments.CommentByID(ctx, id)
	if err != nil {
		return nil, storageErr(lg, op, "comment_lookup", err)
	}

	if !c.IsApproved() && !actor.CanModify(c.AuthorID) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return c, nil
}

// ListVideoComments — страница корневых approved-комментариев видео
// с превью до Limits.PreviewReplies ответов под каждым.
//
// Ошибки:
//   - ErrInvalidArgument — битый id видео, отрицательные page/limit или параметры сортировки;
//   - ErrNotFound — видео не существует.
func (s *Service) ListVideoComments(ctx context.Context, p models.ListCommentsParams) (*models.CommentsPage, error) {
	const op = "service/comments/ListVideoComments"

	p.VideoID = strings.TrimSpace(p.VideoID)
	lg := log.From(ctx).With(slog.String("op", op), slog.String("video_id", p.VideoID))

	if err := models.ValidateID("video_id", p.VideoID); err != nil {
		return nil, invalid(op, err)
	}

	// Отрицательные page/limit — ошибка клиента, а не повод подставить умолчания.
	if err := models.ValidateStruct(p); err != nil {
		lg.Warn("list_params_invalid", slog.String("err", err.Error()))
		return nil, invalid(op, err)
	}

	p = p.Normalize(s.cfg.Limits.Default, s.cfg.Limits.Max)

	key := listKey(p)

	var cached models.CommentsPage
	if s.cacheGet(ctx, viewList, key, &cached) {
		return &cached, nil
	}

	if _, err := s.videos.VideoByID(ctx, p.VideoID); err != nil {
		return nil, storageErr(lg, op, "video_lookup", err)
	}

	roots, total, err := s.comments.ListTopLevel(ctx, p)
	if err != nil {
		return nil, storageErr(lg, op, "list_top_level", err)
	}

	items := make([]models.CommentWithReplies, 0, len(roots))
	for _, root := range roots {
		replies, err := s.previewReplies(ctx, root.ID)
		if err != nil {
			return nil, storageErr(lg, op, "list_replies", err)
		}

		items = append(items, models.CommentWithReplies{Comment: root, Replies: replies})
	}

	page := models.NewCommentsPage(items, p, total)
	s.cacheSet(ctx, viewList, key, page, s.cfg.Cache.ListTTL)

	return page, nil
}

func (s *Service) previewReplies(ctx context.Context, rootID string) ([]*models.Comment, error) {
	n := s.cfg.Limits.PreviewReplies
	if n <= 0 {
		return []*models.Comment{}, nil
	}

	replies, err := s.comments.ListReplies(ctx, rootID, n, s.cfg.Limits.PreviewOrder != "oldest")
	if err != nil {
		return nil, err
	}

	if replies == nil {
		replies = []*models.Comment{}
	}

	return replies, nil
}

// EditComment заменяет текст комментария. Редактировать может только автор.
// Предыдущая версия уходит в EditHistory.
func (s *Service) EditComment(ctx context.Context, actor models.Actor, id, content string) (*models.Comment, error) {
	const op = "service/comments/EditComment"

	if err := requireActor(op, actor); err != nil {
		return nil, err
	}

	id = strings.TrimSpace(id)
	content = strings.TrimSpace(content)
	lg := log.From(ctx).With(slog.String("op", op), slog.String("comment_id", id))

	if err := models.ValidateID("id", id); err != nil {
		return nil, invalid(op, err)
	}

	if err := models.ValidateCommentContent(content); err != nil {
		lg.Warn("edit_comment_invalid", slog.String("err", err.Error()))
		return nil, invalid(op, err)
	}

	c, err := s.comments.CommentByID(ctx, id)
	if err != nil {
		return nil, storageErr(lg, op, "comment_lookup", err)
	}

	if c.AuthorID != actor.UserID {
		lg.Warn("edit_comment_forbidden", slog.String("user_id", actor.UserID.String()))
		return nil, fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	updated, err := s.comments.UpdateContent(ctx, id, content, models.ParseMentions(content), c.PriorVersion(), s.now())
	if err != nil {
		return nil, storageErr(lg, op, "update_content", err)
	}

	s.metrics.CommentWrite("edit")
	s.invalidateComment(ctx, updated)

	return updated, nil
}

// DeleteComment удаляет комментарий вместе со всем поддеревом ответов
// и возвращает число удалённых документов. Доступно автору и администратору.
//
// После удаления:
//   - CommentsCount видео уменьшается на n (не ниже нуля);
//   - RepliesCount родителя выставляется точным пересчётом;
//   - сбрасываются страницы видео и ветки предков, самого узла и всех потомков.
func (s *Service) DeleteComment(ctx context.Context, actor models.Actor, id string) (int64, error) {
	const op = "service/comments/DeleteComment"

	if err := requireActor(op, actor); err != nil {
		return 0, err
	}

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With(slog.String("op", op), slog.String("comment_id", id))

	if err := models.ValidateID("id", id); err != nil {
		return 0, invalid(op, err)
	}

	c, err := s.comments.CommentByID(ctx, id)
	if err != nil {
		return 0, storageErr(lg, op, "comment_lookup", err)
	}

	if !actor.CanModify(c.AuthorID) {
		lg.Warn("delete_comment_forbidden", slog.String("user_id", actor.UserID.String()))
		return 0, fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	// Id поддерева нужны до удаления: после него ветки потомков не найти.
	ids, err := s.comments.SubtreeIDs(ctx, c)
	if err != nil {
		lg.Warn("subtree_ids_failed", slog.String("err", err.Error()))
		ids = []string{c.ID}
	}

	// Отметка раньше удаления: если декремент ниже не пройдёт,
	// реконсилер всё равно увидит видео.
	if err := s.videos.Touch(ctx, c.VideoID, s.now()); err != nil {
		lg.Warn("video_touch_failed", slog.String("err", err.Error()))
	}

	n, err := s.comments.DeleteSubtree(ctx, c)
	if err != nil {
		return 0, storageErr(lg, op, "delete_subtree", err)
	}

	if n > 0 {
		if err := s.videos.IncCommentsCount(ctx, c.VideoID, -n); err != nil {
			lg.Error("comments_count_dec_failed", slog.String("err", err.Error()))
		}
	}

	if !c.IsTopLevel() {
		s.recountReplies(ctx, c.ParentID)
	}

	s.metrics.CommentWrite("delete")
	s.invalidateComment(ctx, c)
	s.invalidateThreads(ctx, ids)

	lg.Info("comment_deleted", slog.Int64("deleted", n))

	return n, nil
}

// recountReplies выставляет RepliesCount родителя по фактическому числу ответов.
func (s *Service) recountReplies(ctx context.Context, parentID string) {
	const op = "service/comments/recountReplies"

	lg := log.From(ctx).With(slog.String("op", op), slog.String("parent_id", parentID))

	n, err := s.comments.CountReplies(ctx, parentID)
	if err != nil {
		lg.Error("replies_count_failed", slog.String("err", err.Error()))
		return
	}

	if err := s.comments.SetRepliesCount(ctx, parentID, n); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("replies_parent_gone")
			return
		}

		lg.Error("replies_count_set_failed", slog.String("err", err.Error()))
	}
}

// ToggleCommentLike ставит или снимает лайк пользователя.
// Возвращает итоговое состояние и LikesCount, пересчитанный по списку лайков.
func (s *Service) ToggleCommentLike(ctx context.Context, actor models.Actor, id string) (bool, int32, error) {
	const op = "service/comments/ToggleCommentLike"

	if err := requireActor(op, actor); err != nil {
		return false, 0, err
	}

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With(slog.String("op", op), slog.String("comment_id", id))

	if err := models.ValidateID("id", id); err != nil {
		return false, 0, invalid(op, err)
	}

	c, err := s.comments.CommentByID(ctx, id)
	if err != nil {
		return false, 0, storageErr(lg, op, "comment_lookup", err)
	}

	if !c.IsApproved() {
		return false, 0, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	var updated *models.Comment
	if c.IsLikedBy(actor.UserID) {
		updated, err = s.comments.RemoveLike(ctx, id, actor.UserID)
	} else {
		updated, err = s.comments.AddLike(ctx, id, actor.UserID, s.now())
	}
	if err != nil {
		return false, 0, storageErr(lg, op, "toggle_like", err)
	}

	s.metrics.CommentWrite("like")
	s.invalidateComment(ctx, updated)

	return updated.IsLikedBy(actor.UserID), updated.Stats.LikesCount, nil
}

// ReportComment регистрирует жалобу. Повторная жалоба того же пользователя
// ничего не меняет. По достижении порога approved-комментарий уходит в pending
// и пропадает из публичной выдачи.
func (s *Service) ReportComment(ctx context.Context, actor models.Actor, id, reason string) error {
	const op = "service/comments/ReportComment"

	if err := requireActor(op, actor); err != nil {
		return err
	}

	id = strings.TrimSpace(id)
	reason = strings.TrimSpace(reason)
	lg := log.From(ctx).With(slog.String("op", op), slog.String("comment_id", id))

	if err := models.ValidateID("id", id); err != nil {
		return invalid(op, err)
	}

	if err := models.ValidateReportReason(reason); err != nil {
		lg.Warn("report_reason_invalid", slog.String("reason", reason))
		return invalid(op, err)
	}

	c, err := s.comments.CommentByID(ctx, id)
	if err != nil {
		return storageErr(lg, op, "comment_lookup", err)
	}

	updated, err := s.comments.AddReport(ctx, id, models.Report{
		UserID:    actor.UserID,
		Reason:    models.ReportReason(reason),
		CreatedAt: s.now(),
	}, s.reportThreshold())
	if err != nil {
		return storageErr(lg, op, "add_report", err)
	}

	if c.IsApproved() && !updated.IsApproved() {
		lg.Info("comment_sent_to_moderation", slog.Int("reports", int(updated.Stats.ReportsCount)))
	}

	s.metrics.CommentWrite("report")
	s.invalidateComment(ctx, updated)

	return nil
}

func (s *Service) reportThreshold() int32 {
	if s.cfg.Moderation.ReportThreshold > 0 {
		return s.cfg.Moderation.ReportThreshold
	}

	return models.DefaultReportThreshold
}
