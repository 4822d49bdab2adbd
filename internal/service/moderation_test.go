package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Share_Space/internal/model"
)

func timelineIDs(posts []model.Post) []string {
	var ids []string
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestPostReviewLifecycle(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	alice := e.register(t, "Alice", "a@x")
	bob := e.register(t, "Bob", "b@x")

	sub, err := e.posts.Publish(ctx, bob, PostDraft{
		Category: model.SectionLife,
		Title:    "Hi",
		Content:  "first day",
		Tags:     "daily， notes,,",
	})
	require.NoError(t, err)
	assert.True(t, sub.Pending)
	assert.Equal(t, NoticePendingReview, sub.Notice)
	assert.Equal(t, model.StatusPending, sub.Item.Status)
	assert.Equal(t, model.PostArticle, sub.Item.Type)
	assert.Equal(t, []string{"daily", "notes"}, sub.Item.Tags)
	assert.Equal(t, 1, sub.Item.Views)

	assert.NotContains(t, timelineIDs(e.posts.Timeline(model.SectionAll, "")), sub.Item.ID)
	assert.Empty(t, e.space.Space(bob.UID).Posts, "pending posts stay out of the owner's space")
	assert.Equal(t, 1, e.space.PendingQueue().Len())

	changed, err := e.posts.Approve(ctx, alice, sub.Item.ID)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Contains(t, timelineIDs(e.posts.Timeline(model.SectionLife, "first")), sub.Item.ID)
	assert.Equal(t, 0, e.space.PendingQueue().Len())

	changed, err = e.posts.Approve(ctx, alice, sub.Item.ID)
	require.NoError(t, err)
	assert.False(t, changed, "approving a published post is a no-op")

	assert.Equal(t,
		[]model.ModerationAction{model.ActionApproved, model.ActionSubmitted},
		e.outboxActions(model.KindPost, sub.Item.ID))
}

func TestAdminSubmissionsPublishImmediately(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	alice := e.register(t, "Alice", "a@x")

	sub, err := e.posts.Publish(ctx, alice, PostDraft{Category: model.SectionNews, Title: "T", Content: "C"})
	require.NoError(t, err)
	assert.False(t, sub.Pending)
	assert.Empty(t, sub.Notice)
	assert.Equal(t, model.PostNews, sub.Item.Type)
	assert.Equal(t, sub.Item.ID, e.posts.Timeline(model.SectionAll, "")[0].ID)

	sub2, err := e.posts.Publish(ctx, alice, PostDraft{Category: model.SectionNews, Title: "Autumn lineup", Content: "C"})
	require.NoError(t, err)
	assert.Contains(t, timelineIDs(e.posts.Timeline(model.SectionNews, "")), sub2.Item.ID)
	assert.Contains(t, timelineIDs(e.posts.Timeline(model.SectionNews, "T")), sub.Item.ID)
	assert.Equal(t, []string{sub2.Item.ID}, timelineIDs(e.posts.Timeline(model.SectionAll, "lineup")))
	assert.NotContains(t, timelineIDs(e.posts.Timeline(model.SectionLife, "")), sub2.Item.ID)
}

func TestRejectRemovesAndRecords(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	alice := e.register(t, "Alice", "a@x")
	bob := e.register(t, "Bob", "b@x")

	sub, err := e.posts.Publish(ctx, bob, PostDraft{Category: model.SectionLife, Title: "T", Content: "C"})
	require.NoError(t, err)

	changed, err := e.posts.Reject(ctx, alice, sub.Item.ID)
	require.NoError(t, err)
	assert.True(t, changed)
	_, ok := e.stores.Posts.Get(sub.Item.ID)
	assert.False(t, ok)
	assert.Equal(t,
		[]model.ModerationAction{model.ActionRejected, model.ActionSubmitted},
		e.outboxActions(model.KindPost, sub.Item.ID))

	changed, err = e.posts.Reject(ctx, alice, sub.Item.ID)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestReviewRequiresAdmin(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.register(t, "Alice", "a@x")
	bob := e.register(t, "Bob", "b@x")

	sub, err := e.media.Add(ctx, bob, MediaDraft{Title: "Frieren", Cover: "c.png"})
	require.NoError(t, err)

	_, err = e.media.Approve(ctx, bob, sub.Item.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	_, err = e.media.Reject(ctx, bob, sub.Item.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	_, err = e.media.Approve(ctx, nil, sub.Item.ID)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	m, ok := e.stores.Media.Get(sub.Item.ID)
	require.True(t, ok)
	assert.Equal(t, model.StatusPending, m.ApprovalStatus)
}

func TestGalleryRejectTouchesGalleryOnly(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	alice := e.register(t, "Alice", "a@x")
	bob := e.register(t, "Bob", "b@x")

	art, err := e.gallery.Add(ctx, bob, ArtDraft{URL: "data:image/png;base64,AAAA"})
	require.NoError(t, err)
	assert.Equal(t, "Untitled", art.Item.Title)
	assert.Equal(t, model.AspectPortrait, art.Item.AspectRatio)

	mediaBefore := len(e.stores.Media.List())
	changed, err := e.review.Reject(ctx, alice, model.KindGallery, art.Item.ID)
	require.NoError(t, err)
	assert.True(t, changed)
	_, ok := e.stores.Gallery.Get(art.Item.ID)
	assert.False(t, ok)
	assert.Len(t, e.stores.Media.List(), mediaBefore)

	_, err = e.review.Approve(ctx, alice, "music", "x")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteOwnerOrAdmin(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	alice := e.register(t, "Alice", "a@x")
	bob := e.register(t, "Bob", "b@x")
	carol := e.register(t, "Carol", "c@x")

	sub, err := e.posts.Publish(ctx, bob, PostDraft{Category: model.SectionLife, Title: "T", Content: "C"})
	require.NoError(t, err)

	_, err = e.posts.Delete(ctx, carol, sub.Item.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	removed, err := e.posts.Delete(ctx, bob, sub.Item.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = e.posts.Delete(ctx, alice, "seed-that-does-not-exist")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestPostVisibilityAndComments(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	alice := e.register(t, "Alice", "a@x")
	bob := e.register(t, "Bob", "b@x")
	carol := e.register(t, "Carol", "c@x")

	sub, err := e.posts.Publish(ctx, bob, PostDraft{Category: model.SectionLife, Title: "T", Content: "C"})
	require.NoError(t, err)

	_, ok := e.posts.Get(nil, sub.Item.ID)
	assert.False(t, ok, "pending posts are hidden from anonymous readers")
	_, ok = e.posts.Get(carol, sub.Item.ID)
	assert.False(t, ok)

	p, ok := e.posts.Get(bob, sub.Item.ID)
	require.True(t, ok)
	assert.Equal(t, 1, p.Views)

	// 看不到的待审核帖子不能评论
	_, found, err := e.posts.AddComment(ctx, carol, sub.Item.ID, "sneaky")
	require.NoError(t, err)
	assert.False(t, found)

	_, err = e.posts.Approve(ctx, alice, sub.Item.ID)
	require.NoError(t, err)
	_, _, err = e.posts.AddComment(ctx, alice, sub.Item.ID, "one")
	require.NoError(t, err)
	_, _, err = e.posts.AddComment(ctx, bob, sub.Item.ID, "two")
	require.NoError(t, err)

	p, ok = e.posts.Get(nil, sub.Item.ID)
	require.True(t, ok)
	require.Len(t, p.Comments, 2)
	assert.Equal(t, "one", p.Comments[0].Text)
	assert.Equal(t, bob.UID, p.Comments[1].SenderUID)
	assert.Equal(t, 1, p.Views, "reading does not change the stored post")

	_, found, err = e.posts.AddComment(ctx, bob, "missing", "x")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMediaCommentsRespectVisibility(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	alice := e.register(t, "Alice", "a@x")
	bob := e.register(t, "Bob", "b@x")
	carol := e.register(t, "Carol", "c@x")

	sub, err := e.media.Add(ctx, bob, MediaDraft{Title: "Frieren", Cover: "c.png"})
	require.NoError(t, err)

	_, found, err := e.media.AddComment(ctx, carol, sub.Item.ID, "hi")
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = e.media.AddComment(ctx, bob, sub.Item.ID, "mine")
	require.NoError(t, err)
	assert.True(t, found)
	_, found, err = e.media.AddComment(ctx, alice, sub.Item.ID, "review note")
	require.NoError(t, err)
	assert.True(t, found)

	m, ok := e.stores.Media.Get(sub.Item.ID)
	require.True(t, ok)
	require.Len(t, m.Comments, 2)
	assert.Equal(t, "mine", m.Comments[0].Text)
}

func TestPublishValidation(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	alice := e.register(t, "Alice", "a@x")

	_, err := e.posts.Publish(ctx, alice, PostDraft{Category: model.SectionLife, Title: " ", Content: "C"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = e.posts.Publish(ctx, alice, PostDraft{Category: model.SectionAll, Title: "T", Content: "C"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = e.posts.Publish(ctx, nil, PostDraft{Category: model.SectionLife, Title: "T", Content: "C"})
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = e.media.Add(ctx, alice, MediaDraft{Title: "T", Cover: "c", Type: "book"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGuestbook(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	alice := e.register(t, "Alice", "a@x")
	bob := e.register(t, "Bob", "b@x")
	carol := e.register(t, "Carol", "c@x")

	msg, err := e.guestbook.Add(ctx, bob, "Bobby", "hello")
	require.NoError(t, err)
	assert.Equal(t, bob.UID, msg.SenderUID)
	assert.Len(t, e.guestbook.List(), 1)

	_, err = e.guestbook.Remove(ctx, carol, msg.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	removed, err := e.guestbook.Remove(ctx, alice, msg.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, e.guestbook.List())
}

// Alice (admin) and Bob (user) walk through a full review round.
func TestReviewRoundTrip(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	alice := e.register(t, "Alice", "a@x")
	bob := e.register(t, "Bob", "b@x")

	post, err := e.posts.Publish(ctx, bob, PostDraft{Category: model.SectionAnalysis, Title: "Essay", Content: "body"})
	require.NoError(t, err)
	media, err := e.media.Add(ctx, bob, MediaDraft{Title: "Zelda", Cover: "z.png", Type: model.MediaGame})
	require.NoError(t, err)
	art, err := e.gallery.Add(ctx, bob, ArtDraft{URL: "a.png", Title: "Sky", AspectRatio: model.AspectLandscape})
	require.NoError(t, err)

	q := e.space.PendingQueue()
	assert.Equal(t, 3, q.Len())

	_, err = e.review.Approve(ctx, alice, model.KindPost, post.Item.ID)
	require.NoError(t, err)
	_, err = e.review.Approve(ctx, alice, model.KindMedia, media.Item.ID)
	require.NoError(t, err)
	_, err = e.review.Reject(ctx, alice, model.KindGallery, art.Item.ID)
	require.NoError(t, err)

	sp := e.space.Space(bob.UID)
	assert.True(t, sp.Known)
	assert.Len(t, sp.Posts, 1)
	assert.Len(t, sp.Media, 1)
	assert.Empty(t, sp.Gallery)
	assert.Equal(t, 0, e.space.PendingQueue().Len())
}
