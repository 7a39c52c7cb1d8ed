// Package models содержит доменные сущности сервиса коротких видео.
package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ModerationStatus — состояние модерации комментария.
type ModerationStatus string

const (
	StatusPending  ModerationStatus = "pending"
	StatusApproved ModerationStatus = "approved"
	StatusRejected ModerationStatus = "rejected"
)

// ReportReason — причина жалобы на комментарий.
type ReportReason string

const (
	ReasonSpam          ReportReason = "spam"
	ReasonInappropriate ReportReason = "inappropriate"
	ReasonHarassment    ReportReason = "harassment"
	ReasonHateSpeech    ReportReason = "hate_speech"
	ReasonOther         ReportReason = "other"
)

// Valid сообщает, входит ли причина в перечень допустимых.
func (r ReportReason) Valid() bool {
	switch r {
	case ReasonSpam, ReasonInappropriate, ReasonHarassment, ReasonHateSpeech, ReasonOther:
		return true
	default:
		return false
	}
}

const (
	// MaxThreadLevel — максимальный уровень вложенности (корень = 0).
	// Комментарий уровня MaxThreadLevel существует, но ответить на него нельзя.
	MaxThreadLevel = 5
	// MaxContentLength — длина текста комментария в символах (после TrimSpace).
	MaxContentLength = 500
	// DefaultReportThreshold — число жалоб, после которого комментарий уходит на модерацию.
	DefaultReportThreshold = 5
)

// Thread — предвычисленные метаданные вложенности.
//   - Level — глубина в дереве ответов;
//   - Path — цепочка предков вида "/<root>/<...>/<parent>", "" у корня.
//
// По Path поддерево выбирается одним запросом без рекурсии.
type Thread struct {
	Level int32
	Path  string
}

// Ancestors возвращает идентификаторы предков от корня к родителю.
func (t Thread) Ancestors() []string {
	if t.Path == "" {
		return nil
	}

	return strings.Split(strings.TrimPrefix(t.Path, "/"), "/")
}

// HasAncestor сообщает, является ли id одним из сегментов пути.
func (t Thread) HasAncestor(id string) bool {
	for _, a := range t.Ancestors() {
		if a == id {
			return true
		}
	}

	return false
}

// Like — отметка «нравится»; список лайков — источник истины для LikesCount.
type Like struct {
	UserID    uuid.UUID
	CreatedAt time.Time
}

// Report — жалоба пользователя; один пользователь — одна жалоба.
type Report struct {
	UserID    uuid.UUID
	Reason    ReportReason
	CreatedAt time.Time
}

// Moderation — статус и множество причин жалоб (без повторов).
type Moderation struct {
	Status ModerationStatus
	Flags  []ReportReason
}

// CommentStats — производные счётчики.
//   - LikesCount == len(Likes);
//   - RepliesCount == число комментариев с ParentID == ID;
//   - ReportsCount == len(Reports).
type CommentStats struct {
	LikesCount   int32
	RepliesCount int32
	ReportsCount int32
}

// EditRecord — предыдущая версия текста и момент, с которого она действовала.
type EditRecord struct {
	Content  string
	EditedAt time.Time
}

// Comment — комментарий к видео (корневой или ответ).
type Comment struct {
	ID          string
	VideoID     string
	AuthorID    uuid.UUID
	AuthorName  string
	Content     string
	ParentID    string
	Mentions    []uuid.UUID
	Thread      Thread
	Moderation  Moderation
	Stats       CommentStats
	Likes       []Like
	Reports     []Report
	IsEdited    bool
	EditHistory []EditRecord
	EditedAt    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsTopLevel — комментарий без родителя.
func (c *Comment) IsTopLevel() bool { return c.ParentID == "" }

// IsApproved — комментарий виден в публичной выдаче.
func (c *Comment) IsApproved() bool { return c.Moderation.Status == StatusApproved }

// IsLikedBy сообщает, ставил ли пользователь лайк.
func (c *Comment) IsLikedBy(userID uuid.UUID) bool {
	for _, l := range c.Likes {
		if l.UserID == userID {
			return true
		}
	}

	return false
}

// IsReportedBy сообщает, жаловался ли уже пользователь.
func (c *Comment) IsReportedBy(userID uuid.UUID) bool {
	for _, r := range c.Reports {
		if r.UserID == userID {
			return true
		}
	}

	return false
}

// HasFlag сообщает, есть ли уже такая причина среди флагов.
func (c *Comment) HasFlag(reason ReportReason) bool {
	for _, f := range c.Moderation.Flags {
		if f == reason {
			return true
		}
	}

	return false
}

// ChildThread — метаданные, которые получит прямой ответ на этот комментарий.
func (c *Comment) ChildThread() Thread {
	return Thread{
		Level: c.Thread.Level + 1,
		Path:  c.SubtreePath(),
	}
}

// SubtreePath — общий префикс Path всех потомков комментария.
func (c *Comment) SubtreePath() string {
	return c.Thread.Path + "/" + c.ID
}

// CanReply — можно ли ответить на комментарий, не превысив MaxThreadLevel.
func (c *Comment) CanReply(maxLevel int32) bool {
	return c.Thread.Level < maxLevel
}

// PriorVersion — запись истории для текущего текста перед правкой.
// При первой правке временем версии считается CreatedAt, далее — момент прошлой правки.
func (c *Comment) PriorVersion() EditRecord {
	at := c.CreatedAt
	if c.IsEdited && c.EditedAt != nil {
		at = *c.EditedAt
	}

	return EditRecord{Content: c.Content, EditedAt: at}
}

var mentionRe = regexp.MustCompile(`@([0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12})`)

// ParseMentions извлекает упоминания вида @<uuid> без повторов, в порядке появления.
func ParseMentions(content string) []uuid.UUID {
	matches := mentionRe.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[uuid.UUID]struct{}, len(matches))
	out := make([]uuid.UUID, 0, len(matches))
	for _, m := range matches {
		id, err := uuid.Parse(m[1])
		if err != nil {
			continue
		}

		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
