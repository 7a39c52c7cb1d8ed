package models

// Тесты доменной модели комментария: метаданные ветки, лайки/жалобы,
// история правок и разбор упоминаний.

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestThread_Ancestors(t *testing.T) {
	require.Nil(t, Thread{}.Ancestors())
	require.Equal(t, []string{"a", "b", "c"}, Thread{Level: 3, Path: "/a/b/c"}.Ancestors())

	th := Thread{Level: 2, Path: "/root/mid"}
	require.True(t, th.HasAncestor("root"))
	require.True(t, th.HasAncestor("mid"))
	require.False(t, th.HasAncestor("ro"))
}

func TestComment_ChildThread(t *testing.T) {
	root := &Comment{ID: "r1"}
	require.True(t, root.IsTopLevel())

	child := root.ChildThread()
	require.Equal(t, Thread{Level: 1, Path: "/r1"}, child)

	reply := &Comment{ID: "c2", ParentID: "r1", Thread: child}
	require.Equal(t, Thread{Level: 2, Path: "/r1/c2"}, reply.ChildThread())
	require.Equal(t, "/r1/c2", reply.SubtreePath())
}

func TestComment_CanReply_DepthBoundary(t *testing.T) {
	c := &Comment{Thread: Thread{Level: MaxThreadLevel - 1}}
	require.True(t, c.CanReply(MaxThreadLevel))

	c.Thread.Level = MaxThreadLevel
	require.False(t, c.CanReply(MaxThreadLevel))
}

func TestComment_LikesReportsFlags(t *testing.T) {
	u1, u2 := uuid.New(), uuid.New()
	c := &Comment{
		Likes:      []Like{{UserID: u1}},
		Reports:    []Report{{UserID: u2, Reason: ReasonSpam}},
		Moderation: Moderation{Status: StatusApproved, Flags: []ReportReason{ReasonSpam}},
	}

	require.True(t, c.IsLikedBy(u1))
	require.False(t, c.IsLikedBy(u2))
	require.True(t, c.IsReportedBy(u2))
	require.False(t, c.IsReportedBy(u1))
	require.True(t, c.HasFlag(ReasonSpam))
	require.False(t, c.HasFlag(ReasonOther))
	require.True(t, c.IsApproved())
}

func TestComment_PriorVersion(t *testing.T) {
	created := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	c := &Comment{Content: "v1", CreatedAt: created}

	// первая правка: время версии — момент создания
	require.Equal(t, EditRecord{Content: "v1", EditedAt: created}, c.PriorVersion())

	edited := created.Add(time.Hour)
	c.Content, c.IsEdited, c.EditedAt = "v2", true, &edited
	require.Equal(t, EditRecord{Content: "v2", EditedAt: edited}, c.PriorVersion())
}

func TestReportReason_Valid(t *testing.T) {
	for _, r := range []ReportReason{ReasonSpam, ReasonInappropriate, ReasonHarassment, ReasonHateSpeech, ReasonOther} {
		require.True(t, r.Valid(), r)
	}
	require.False(t, ReportReason("boring").Valid())
}

func TestParseMentions(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	got := ParseMentions("hi @" + a.String() + " and @" + b.String() + ", again @" + a.String() + " @not-a-uuid")
	require.Equal(t, []uuid.UUID{a, b}, got)

	require.Nil(t, ParseMentions("no mentions here"))
}

func TestActor(t *testing.T) {
	owner := uuid.New()

	require.True(t, Actor{}.IsAnonymous())
	require.False(t, Actor{}.CanModify(owner))

	require.True(t, Actor{UserID: owner, Role: RoleUser}.CanModify(owner))
	require.False(t, Actor{UserID: uuid.New(), Role: RoleUser}.CanModify(owner))
	require.True(t, Actor{UserID: uuid.New(), Role: RoleAdmin}.CanModify(owner))
}
