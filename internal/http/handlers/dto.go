package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-shorts-platform/internal/models"
	"github.com/pribylovaa/go-shorts-platform/internal/service"
)

// Ответы API. Доменные модели не несут json-тегов, поэтому наружу
// отдаются только эти структуры.

type threadDTO struct {
	Level int32  `json:"level"`
	Path  string `json:"path"`
}

type commentStatsDTO struct {
	LikesCount   int32 `json:"likes_count"`
	RepliesCount int32 `json:"replies_count"`
}

type editRecordDTO struct {
	Content  string    `json:"content"`
	EditedAt time.Time `json:"edited_at"`
}

type commentDTO struct {
	ID          string          `json:"id"`
	VideoID     string          `json:"video_id"`
	AuthorID    string          `json:"author_id"`
	AuthorName  string          `json:"author_name"`
	Content     string          `json:"content"`
	ParentID    string          `json:"parent_id,omitempty"`
	Mentions    []string        `json:"mentions"`
	Thread      threadDTO       `json:"thread"`
	Status      string          `json:"status"`
	Stats       commentStatsDTO `json:"stats"`
	IsLiked     bool            `json:"is_liked"`
	IsEdited    bool            `json:"is_edited"`
	EditHistory []editRecordDTO `json:"edit_history,omitempty"`
	EditedAt    *time.Time      `json:"edited_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func commentFromModel(c *models.Comment, viewer uuid.UUID) commentDTO {
	out := commentDTO{
		ID:         c.ID,
		VideoID:    c.VideoID,
		AuthorID:   c.AuthorID.String(),
		AuthorName: c.AuthorName,
		Content:    c.Content,
		ParentID:   c.ParentID,
		Mentions:   make([]string, 0, len(c.Mentions)),
		Thread:     threadDTO{Level: c.Thread.Level, Path: c.Thread.Path},
		Status:     string(c.Moderation.Status),
		Stats: commentStatsDTO{
			LikesCount:   c.Stats.LikesCount,
			RepliesCount: c.Stats.RepliesCount,
		},
		IsLiked:   viewer != uuid.Nil && c.IsLikedBy(viewer),
		IsEdited:  c.IsEdited,
		EditedAt:  c.EditedAt,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}

	for _, m := range c.Mentions {
		out.Mentions = append(out.Mentions, m.String())
	}
	for _, e := range c.EditHistory {
		out.EditHistory = append(out.EditHistory, editRecordDTO{Content: e.Content, EditedAt: e.EditedAt})
	}

	return out
}

func commentsFromModels(cs []*models.Comment, viewer uuid.UUID) []commentDTO {
	out := make([]commentDTO, 0, len(cs))
	for _, c := range cs {
		out = append(out, commentFromModel(c, viewer))
	}

	return out
}

type commentWithRepliesDTO struct {
	commentDTO
	Replies []commentDTO `json:"replies"`
}

type paginationDTO struct {
	Page       int32 `json:"page"`
	Limit      int32 `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

type commentsPageDTO struct {
	Comments   []commentWithRepliesDTO `json:"comments"`
	Pagination paginationDTO           `json:"pagination"`
}

func pageFromModel(p *models.CommentsPage, viewer uuid.UUID) commentsPageDTO {
	out := commentsPageDTO{
		Comments: make([]commentWithRepliesDTO, 0, len(p.Items)),
		Pagination: paginationDTO{
			Page:       p.Page,
			Limit:      p.Limit,
			Total:      p.Total,
			TotalPages: p.TotalPages,
			HasNext:    p.HasNext,
			HasPrev:    p.HasPrev,
		},
	}

	for _, it := range p.Items {
		out.Comments = append(out.Comments, commentWithRepliesDTO{
			commentDTO: commentFromModel(it.Comment, viewer),
			Replies:    commentsFromModels(it.Replies, viewer),
		})
	}

	return out
}

type videoStatsDTO struct {
	ViewsCount    int64 `json:"views_count"`
	LikesCount    int64 `json:"likes_count"`
	CommentsCount int64 `json:"comments_count"`
}

type videoDTO struct {
	ID           string        `json:"id"`
	OwnerID      string        `json:"owner_id"`
	Title        string        `json:"title"`
	Description  string        `json:"description,omitempty"`
	Tags         []string      `json:"tags"`
	URL          string        `json:"url"`
	ThumbnailURL string        `json:"thumbnail_url,omitempty"`
	ContentType  string        `json:"content_type"`
	SizeBytes    int64         `json:"size_bytes"`
	DurationSec  float64       `json:"duration"`
	Width        int32         `json:"width"`
	Height       int32         `json:"height"`
	Stats        videoStatsDTO `json:"stats"`
	IsLiked      bool          `json:"is_liked"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func videoFromModel(v *models.Video, viewer uuid.UUID) videoDTO {
	tags := v.Tags
	if tags == nil {
		tags = []string{}
	}

	return videoDTO{
		ID:           v.ID,
		OwnerID:      v.OwnerID.String(),
		Title:        v.Title,
		Description:  v.Description,
		Tags:         tags,
		URL:          v.URL,
		ThumbnailURL: v.ThumbnailURL,
		ContentType:  v.ContentType,
		SizeBytes:    v.SizeBytes,
		DurationSec:  v.DurationSec,
		Width:        v.Width,
		Height:       v.Height,
		Stats: videoStatsDTO{
			ViewsCount:    v.Stats.ViewsCount,
			LikesCount:    v.Stats.LikesCount,
			CommentsCount: v.Stats.CommentsCount,
		},
		IsLiked:   viewer != uuid.Nil && v.IsLikedBy(viewer),
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

type uploadURLDTO struct {
	UploadURL      string            `json:"upload_url"`
	ObjectKey      string            `json:"object_key"`
	ExpiresIn      int64             `json:"expires_in"`
	RequiredHeader map[string]string `json:"required_headers,omitempty"`
}

func uploadFromModel(u *models.UploadInfo) uploadURLDTO {
	return uploadURLDTO{
		UploadURL:      u.UploadURL,
		ObjectKey:      u.ObjectKey,
		ExpiresIn:      int64(u.Expires.Seconds()),
		RequiredHeader: u.RequiredHeader,
	}
}

type userDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func userFromModel(u *models.User) userDTO {
	return userDTO{
		ID:        u.ID.String(),
		Email:     u.Email,
		Username:  u.Username,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

type authDTO struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        userDTO   `json:"user"`
}

func authFromModel(a *models.AuthResult) authDTO {
	return authDTO{
		AccessToken: a.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   a.ExpiresAt,
		User:        userFromModel(a.User),
	}
}

type reconcileDTO struct {
	VideoID       string `json:"video_id"`
	CommentsCount int64  `json:"comments_count"`
	CommentsFixed bool   `json:"comments_fixed"`
	RepliesFixed  int64  `json:"replies_fixed"`
}

func reconcileFromResult(r *service.ReconcileResult) reconcileDTO {
	return reconcileDTO{
		VideoID:       r.VideoID,
		CommentsCount: r.CommentsCount,
		CommentsFixed: r.CommentsFixed,
		RepliesFixed:  r.RepliesFixed,
	}
}

// Тела запросов.

type createCommentRequest struct {
	Content  string `json:"content"`
	ParentID string `json:"parent_id"`
}

type editCommentRequest struct {
	Content string `json:"content"`
}

type reportCommentRequest struct {
	Reason string `json:"reason"`
}

type toggleLikeResponse struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}

type deleteCommentResponse struct {
	Deleted int64 `json:"deleted"`
}
