package mongo

import (
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-shorts-platform/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoDB DateTime хранит миллисекунды.
func toMS(t time.Time) time.Time { return t.UTC().Truncate(time.Millisecond) }

type likeDoc struct {
	UserID    string    `bson:"user_id"`
	CreatedAt time.Time `bson:"created_at"`
}

type reportDoc struct {
	UserID    string    `bson:"user_id"`
	Reason    string    `bson:"reason"`
	CreatedAt time.Time `bson:"created_at"`
}

type editDoc struct {
	Content  string    `bson:"content"`
	EditedAt time.Time `bson:"edited_at"`
}

type threadDoc struct {
	Level int32  `bson:"level"`
	Path  string `bson:"path"`
}

type moderationDoc struct {
	Status string   `bson:"status"`
	Flags  []string `bson:"flags"`
}

type commentStatsDoc struct {
	LikesCount   int32 `bson:"likes_count"`
	RepliesCount int32 `bson:"replies_count"`
	ReportsCount int32 `bson:"reports_count"`
}

// commentDoc — представление комментария в коллекции comments.
// parent_id хранится hex-строкой ("" у корня), чтобы фильтр корневых был равенством.
type commentDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	VideoID     primitive.ObjectID `bson:"video_id"`
	AuthorID    string             `bson:"author_id"`
	AuthorName  string             `bson:"author_name"`
	Content     string             `bson:"content"`
	ParentID    string             `bson:"parent_id"`
	Mentions    []string           `bson:"mentions"`
	Thread      threadDoc          `bson:"thread"`
	Moderation  moderationDoc      `bson:"moderation"`
	Stats       commentStatsDoc    `bson:"stats"`
	Likes       []likeDoc          `bson:"likes"`
	Reports     []reportDoc        `bson:"reports"`
	IsEdited    bool               `bson:"is_edited"`
	EditHistory []editDoc          `bson:"edit_history"`
	EditedAt    *time.Time         `bson:"edited_at,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

type videoStatsDoc struct {
	ViewsCount    int64 `bson:"views_count"`
	LikesCount    int64 `bson:"likes_count"`
	CommentsCount int64 `bson:"comments_count"`
}

type videoDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID      string             `bson:"owner_id"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description"`
	Tags         []string           `bson:"tags"`
	ObjectKey    string             `bson:"object_key"`
	URL          string             `bson:"url"`
	ThumbnailKey string             `bson:"thumbnail_key,omitempty"`
	ThumbnailURL string             `bson:"thumbnail_url,omitempty"`
	ContentType  string             `bson:"content_type"`
	SizeBytes    int64              `bson:"size_bytes"`
	DurationSec  float64            `bson:"duration_sec"`
	Width        int32              `bson:"width"`
	Height       int32              `bson:"height"`
	Stats        videoStatsDoc      `bson:"stats"`
	Likes        []likeDoc          `bson:"likes"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func likesToDoc(in []models.Like) []likeDoc {
	out := make([]likeDoc, 0, len(in))
	for _, l := range in {
		out = append(out, likeDoc{UserID: l.UserID.String(), CreatedAt: toMS(l.CreatedAt)})
	}

	return out
}

func likesFromDoc(in []likeDoc) []models.Like {
	out := make([]models.Like, 0, len(in))
	for _, l := range in {
		out = append(out, models.Like{UserID: parseUUID(l.UserID), CreatedAt: l.CreatedAt})
	}

	return out
}

func parseUUID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}

	return id
}

func commentToDoc(c models.Comment) (commentDoc, error) {
	vid, err := primitive.ObjectIDFromHex(c.VideoID)
	if err != nil {
		return commentDoc{}, err
	}

	d := commentDoc{
		VideoID:    vid,
		AuthorID:   c.AuthorID.String(),
		AuthorName: c.AuthorName,
		Content:    c.Content,
		ParentID:   c.ParentID,
		Mentions:   make([]string, 0, len(c.Mentions)),
		Thread:     threadDoc{Level: c.Thread.Level, Path: c.Thread.Path},
		Moderation: moderationDoc{Status: string(c.Moderation.Status), Flags: make([]string, 0, len(c.Moderation.Flags))},
		Stats: commentStatsDoc{
			LikesCount:   int32(len(c.Likes)),
			RepliesCount: c.Stats.RepliesCount,
			ReportsCount: int32(len(c.Reports)),
		},
		Likes:       likesToDoc(c.Likes),
		Reports:     make([]reportDoc, 0, len(c.Reports)),
		IsEdited:    c.IsEdited,
		EditHistory: make([]editDoc, 0, len(c.EditHistory)),
		CreatedAt:   toMS(c.CreatedAt),
		UpdatedAt:   toMS(c.UpdatedAt),
	}

	if c.ID != "" {
		if d.ID, err = primitive.ObjectIDFromHex(c.ID); err != nil {
			return commentDoc{}, err
		}
	}

	if c.EditedAt != nil {
		at := toMS(*c.EditedAt)
		d.EditedAt = &at
	}

	for _, m := range c.Mentions {
		d.Mentions = append(d.Mentions, m.String())
	}

	for _, f := range c.Moderation.Flags {
		d.Moderation.Flags = append(d.Moderation.Flags, string(f))
	}

	for _, r := range c.Reports {
		d.Reports = append(d.Reports, reportDoc{UserID: r.UserID.String(), Reason: string(r.Reason), CreatedAt: toMS(r.CreatedAt)})
	}

	for _, e := range c.EditHistory {
		d.EditHistory = append(d.EditHistory, editDoc{Content: e.Content, EditedAt: toMS(e.EditedAt)})
	}

	return d, nil
}

func commentFromDoc(d *commentDoc) *models.Comment {
	c := &models.Comment{
		ID:         d.ID.Hex(),
		VideoID:    d.VideoID.Hex(),
		AuthorID:   parseUUID(d.AuthorID),
		AuthorName: d.AuthorName,
		Content:    d.Content,
		ParentID:   d.ParentID,
		Thread:     models.Thread{Level: d.Thread.Level, Path: d.Thread.Path},
		Moderation: models.Moderation{Status: models.ModerationStatus(d.Moderation.Status)},
		Stats: models.CommentStats{
			LikesCount:   d.Stats.LikesCount,
			RepliesCount: d.Stats.RepliesCount,
			ReportsCount: d.Stats.ReportsCount,
		},
		Likes:     likesFromDoc(d.Likes),
		IsEdited:  d.IsEdited,
		EditedAt:  d.EditedAt,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}

	for _, m := range d.Mentions {
		if id, err := uuid.Parse(m); err == nil {
			c.Mentions = append(c.Mentions, id)
		}
	}

	for _, f := range d.Moderation.Flags {
		c.Moderation.Flags = append(c.Moderation.Flags, models.ReportReason(f))
	}

	for _, r := range d.Reports {
		c.Reports = append(c.Reports, models.Report{UserID: parseUUID(r.UserID), Reason: models.ReportReason(r.Reason), CreatedAt: r.CreatedAt})
	}

	for _, e := range d.EditHistory {
		c.EditHistory = append(c.EditHistory, models.EditRecord{Content: e.Content, EditedAt: e.EditedAt})
	}

	return c
}

func videoToDoc(v models.Video) videoDoc {
	tags := v.Tags
	if tags == nil {
		tags = []string{}
	}

	return videoDoc{
		OwnerID:      v.OwnerID.String(),
		Title:        v.Title,
		Description:  v.Description,
		Tags:         tags,
		ObjectKey:    v.ObjectKey,
		URL:          v.URL,
		ThumbnailKey: v.ThumbnailKey,
		ThumbnailURL: v.ThumbnailURL,
		ContentType:  v.ContentType,
		SizeBytes:    v.SizeBytes,
		DurationSec:  v.DurationSec,
		Width:        v.Width,
		Height:       v.Height,
		Stats: videoStatsDoc{
			ViewsCount:    v.Stats.ViewsCount,
			LikesCount:    int64(len(v.Likes)),
			CommentsCount: v.Stats.CommentsCount,
		},
		Likes:     likesToDoc(v.Likes),
		CreatedAt: toMS(v.CreatedAt),
		UpdatedAt: toMS(v.UpdatedAt),
	}
}

func videoFromDoc(d *videoDoc) *models.Video {
	return &models.Video{
		ID:           d.ID.Hex(),
		OwnerID:      parseUUID(d.OwnerID),
		Title:        d.Title,
		Description:  d.Description,
		Tags:         d.Tags,
		ObjectKey:    d.ObjectKey,
		URL:          d.URL,
		ThumbnailKey: d.ThumbnailKey,
		ThumbnailURL: d.ThumbnailURL,
		ContentType:  d.ContentType,
		SizeBytes:    d.SizeBytes,
		DurationSec:  d.DurationSec,
		Width:        d.Width,
		Height:       d.Height,
		Stats: models.VideoStats{
			ViewsCount:    d.Stats.ViewsCount,
			LikesCount:    d.Stats.LikesCount,
			CommentsCount: d.Stats.CommentsCount,
		},
		Likes:     likesFromDoc(d.Likes),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
