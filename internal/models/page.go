package models

// SortField — поле сортировки корневых комментариев.
type SortField string

const (
	SortByCreatedAt    SortField = "createdAt"
	SortByLikesCount   SortField = "likesCount"
	SortByRepliesCount SortField = "repliesCount"
)

// SortOrder — направление сортировки.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

const (
	DefaultPageLimit   = 20
	MaxPageLimit       = 100
	DefaultPreviewSize = 3
	DefaultThreadLimit = 50
	MaxThreadLimit     = 200
)

// ListCommentsParams — параметры выдачи корневых комментариев видео.
// Теги проверяются до Normalize; нулевые значения затем заменяются умолчаниями:
// Page=1, Limit=DefaultPageLimit, SortBy=createdAt, SortOrder=desc.
type ListCommentsParams struct {
	VideoID   string    `validate:"required"`
	Page      int32     `validate:"gte=0"`
	Limit     int32     `validate:"gte=0"`
	SortBy    SortField `validate:"omitempty,oneof=createdAt likesCount repliesCount"`
	SortOrder SortOrder `validate:"omitempty,oneof=asc desc"`
}

// Normalize подставляет значения по умолчанию и ограничивает Limit сверху.
func (p ListCommentsParams) Normalize(defaultLimit, maxLimit int32) ListCommentsParams {
	if defaultLimit <= 0 {
		defaultLimit = DefaultPageLimit
	}

	if maxLimit <= 0 {
		maxLimit = MaxPageLimit
	}

	if p.Page <= 0 {
		p.Page = 1
	}

	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}

	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}

	if p.SortBy == "" {
		p.SortBy = SortByCreatedAt
	}

	if p.SortOrder == "" {
		p.SortOrder = SortDesc
	}

	return p
}

// Offset — число пропускаемых документов для текущей страницы.
func (p ListCommentsParams) Offset() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// ThreadParams — параметры выдачи ветки. Limit обрезает результат
// после сортировки (level asc, createdAt asc).
type ThreadParams struct {
	RootID string `validate:"required"`
	Limit  int32  `validate:"gte=0"`
}

// Normalize подставляет лимит по умолчанию и ограничивает его сверху.
func (p ThreadParams) Normalize(defaultLimit, maxLimit int32) ThreadParams {
	if defaultLimit <= 0 {
		defaultLimit = DefaultThreadLimit
	}

	if maxLimit <= 0 {
		maxLimit = MaxThreadLimit
	}

	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}

	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}

	return p
}

// CommentWithReplies — корневой комментарий с превью ответов.
type CommentWithReplies struct {
	Comment *Comment
	Replies []*Comment
}

// CommentsPage — страница корневых комментариев.
type CommentsPage struct {
	Items      []CommentWithReplies
	Page       int32
	Limit      int32
	Total      int64
	TotalPages int64
	HasNext    bool
	HasPrev    bool
}

// NewCommentsPage считает производные поля пагинации.
func NewCommentsPage(items []CommentWithReplies, p ListCommentsParams, total int64) *CommentsPage {
	var pages int64
	if p.Limit > 0 {
		pages = (total + int64(p.Limit) - 1) / int64(p.Limit)
	}

	return &CommentsPage{
		Items:      items,
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: pages,
		HasNext:    int64(p.Page) < pages,
		HasPrev:    p.Page > 1,
	}
}
