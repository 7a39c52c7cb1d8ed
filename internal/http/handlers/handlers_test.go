package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-shorts-platform/internal/models"
	"github.com/pribylovaa/go-shorts-platform/internal/service"
)

func TestDecodeStrict(t *testing.T) {
	h := New(nil, Options{MaxBodyBytes: 64})

	tcs := []struct {
		name string
		body string
		ok   bool
	}{
		{"valid", `{"content":"hi"}`, true},
		{"unknown_field", `{"content":"hi","video_id":"x"}`, false},
		{"malformed", `{"content":`, false},
		{"trailing_object", `{"content":"a"}{"content":"b"}`, false},
		{"too_large", `{"content":"` + strings.Repeat("a", 100) + `"}`, false},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))

			var in editCommentRequest
			err := h.decodeStrict(rr, req, &in)
			if tc.ok {
				require.NoError(t, err)
				require.Equal(t, "hi", in.Content)
				return
			}

			require.ErrorIs(t, err, service.ErrInvalidArgument)
			ve, ok := models.AsValidationError(err)
			require.True(t, ok)
			require.Equal(t, "body", ve.Fields[0].Field)
		})
	}
}

func TestQueryInt32(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?page=3&limit=abc&big=99999999999", nil)

	n, err := queryInt32(req, "page")
	require.NoError(t, err)
	require.EqualValues(t, 3, n)

	n, err = queryInt32(req, "missing")
	require.NoError(t, err)
	require.Zero(t, n)

	_, err = queryInt32(req, "limit")
	require.ErrorIs(t, err, service.ErrInvalidArgument)

	_, err = queryInt32(req, "big")
	require.ErrorIs(t, err, service.ErrInvalidArgument)
}

func TestCommentFromModel(t *testing.T) {
	viewer := uuid.New()
	mention := uuid.New()
	edited := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	c := &models.Comment{
		ID:         "c1",
		VideoID:    "v1",
		AuthorID:   uuid.New(),
		AuthorName: "alice",
		Content:    "hello @" + mention.String(),
		ParentID:   "p1",
		Mentions:   []uuid.UUID{mention},
		Thread:     models.Thread{Level: 2, Path: "/r1/p1"},
		Moderation: models.Moderation{Status: models.StatusApproved},
		Stats:      models.CommentStats{LikesCount: 1, RepliesCount: 4, ReportsCount: 2},
		Likes:      []models.Like{{UserID: viewer}},
		IsEdited:   true,
		EditHistory: []models.EditRecord{
			{Content: "hello", EditedAt: edited.Add(-time.Hour)},
		},
		EditedAt: &edited,
	}

	out := commentFromModel(c, viewer)
	require.True(t, out.IsLiked)
	require.Equal(t, []string{mention.String()}, out.Mentions)
	require.Equal(t, "approved", out.Status)
	require.Len(t, out.EditHistory, 1)

	raw, err := json.Marshal(out)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	require.Equal(t, "p1", m["parent_id"])
	require.Equal(t, map[string]any{"level": float64(2), "path": "/r1/p1"}, m["thread"])
	require.NotContains(t, m, "likes")
	require.NotContains(t, m, "reports")

	require.False(t, commentFromModel(c, uuid.Nil).IsLiked)
}

func TestPageFromModel_EmptyListsAreArrays(t *testing.T) {
	root := &models.Comment{ID: "r1", AuthorID: uuid.New()}
	page := &models.CommentsPage{
		Items: []models.CommentWithReplies{{Comment: root}},
		Page:  1, Limit: 20, Total: 1, TotalPages: 1,
	}

	raw, err := json.Marshal(pageFromModel(page, uuid.Nil))
	require.NoError(t, err)
	require.Contains(t, string(raw), `"replies":[]`)
	require.Contains(t, string(raw), `"mentions":[]`)
	require.Contains(t, string(raw), `"id":"r1"`)
	require.Contains(t, string(raw), `"total_pages":1`)
}
