package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const validHex = "65a1b2c3d4e5f60718293a4b"

func fieldNames(t *testing.T, err error) []string {
	t.Helper()

	ve, ok := AsValidationError(err)
	require.True(t, ok, "expected *ValidationError, got %v", err)

	out := make([]string, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		out = append(out, f.Field)
	}

	return out
}

func TestValidateCommentContent(t *testing.T) {
	require.NoError(t, ValidateCommentContent("  hello  "))
	require.NoError(t, ValidateCommentContent(strings.Repeat("я", MaxContentLength)))

	err := ValidateCommentContent("   ")
	require.Equal(t, []string{"content"}, fieldNames(t, err))

	err = ValidateCommentContent(strings.Repeat("я", MaxContentLength+1))
	ve, _ := AsValidationError(err)
	require.Equal(t, "runemax", ve.Fields[0].Rule)
}

func TestCreateCommentInput_Validate(t *testing.T) {
	in := CreateCommentInput{VideoID: " " + validHex + " ", Content: "  text "}.Normalize()
	require.Equal(t, validHex, in.VideoID)
	require.Equal(t, "text", in.Content)
	require.NoError(t, in.Validate())

	in.ParentID = "bad"
	require.Equal(t, []string{"parent_id"}, fieldNames(t, in.Validate()))

	bad := CreateCommentInput{VideoID: "x", Content: ""}
	require.ElementsMatch(t, []string{"video_id", "content"}, fieldNames(t, bad.Validate()))
}

func TestValidateReportReason(t *testing.T) {
	require.NoError(t, ValidateReportReason("hate_speech"))
	require.Equal(t, []string{"reason"}, fieldNames(t, ValidateReportReason("meh")))
	require.Equal(t, []string{"reason"}, fieldNames(t, ValidateReportReason("")))
}

func TestValidateID(t *testing.T) {
	require.NoError(t, ValidateID("id", validHex))
	require.Equal(t, []string{"comment_id"}, fieldNames(t, ValidateID("comment_id", "123")))
}

func TestListCommentsParams_NormalizeAndValidate(t *testing.T) {
	p := ListCommentsParams{VideoID: validHex}.Normalize(20, 100)
	require.Equal(t, int32(1), p.Page)
	require.Equal(t, int32(20), p.Limit)
	require.Equal(t, SortByCreatedAt, p.SortBy)
	require.Equal(t, SortDesc, p.SortOrder)
	require.Equal(t, int64(0), p.Offset())

	p = ListCommentsParams{VideoID: validHex, Page: 3, Limit: 500}.Normalize(20, 100)
	require.Equal(t, int32(100), p.Limit)
	require.Equal(t, int64(200), p.Offset())

	bad := ListCommentsParams{VideoID: validHex, SortBy: "views", SortOrder: "up"}
	require.ElementsMatch(t, []string{"sort_by", "sort_order"}, fieldNames(t, ValidateStruct(bad)))
}

func TestNewCommentsPage(t *testing.T) {
	p := ListCommentsParams{Page: 2, Limit: 10}

	page := NewCommentsPage(nil, p, 25)
	require.Equal(t, int64(3), page.TotalPages)
	require.True(t, page.HasNext)
	require.True(t, page.HasPrev)

	page = NewCommentsPage(nil, ListCommentsParams{Page: 1, Limit: 10}, 0)
	require.Equal(t, int64(0), page.TotalPages)
	require.False(t, page.HasNext)
	require.False(t, page.HasPrev)
}

func TestThreadParams_Normalize(t *testing.T) {
	require.Equal(t, int32(50), ThreadParams{RootID: validHex}.Normalize(50, 200).Limit)
	require.Equal(t, int32(200), ThreadParams{RootID: validHex, Limit: 1000}.Normalize(50, 200).Limit)
}

func TestCreateVideoInput_Normalize(t *testing.T) {
	in := CreateVideoInput{
		ObjectKey: " videos/a.mp4 ",
		Title:     "  Clip ",
		Tags:      []string{" Go ", "go", "", "cats"},
	}.Normalize()

	require.Equal(t, "videos/a.mp4", in.ObjectKey)
	require.Equal(t, "Clip", in.Title)
	require.Equal(t, []string{"go", "cats"}, in.Tags)
	require.NoError(t, in.Validate())

	in.Title = ""
	require.Equal(t, []string{"title"}, fieldNames(t, in.Validate()))
}

func TestRegisterInput_Validate(t *testing.T) {
	in := RegisterInput{Email: " A@B.io ", Username: " bob ", Password: "password1"}.Normalize()
	require.Equal(t, "a@b.io", in.Email)
	require.NoError(t, in.Validate())

	bad := RegisterInput{Email: "nope", Username: "x", Password: "short"}
	require.ElementsMatch(t, []string{"email", "username", "password"}, fieldNames(t, bad.Validate()))
}
