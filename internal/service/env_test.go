package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"Share_Space/internal/model"
	"Share_Space/internal/repository"
	"Share_Space/internal/repository/slot"
)

type testEnv struct {
	stores    *repository.Stores
	users     *UserService
	posts     *PostService
	media     *MediaService
	gallery   *GalleryService
	guestbook *GuestbookService
	space     *SpaceService
	review    *ReviewService
	prefs     *PreferenceService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := zaptest.NewLogger(t)
	stores, err := repository.Open(context.Background(), slot.NewMemoryStore(), time.Now())
	require.NoError(t, err)

	e := &testEnv{stores: stores}
	e.users = NewUserService(stores, log)
	e.users.hashCost = bcrypt.MinCost
	e.posts = NewPostService(stores, log)
	e.media = NewMediaService(stores, log)
	e.gallery = NewGalleryService(stores, log)
	e.guestbook = NewGuestbookService(stores)
	e.space = NewSpaceService(stores, e.users)
	e.review = NewReviewService(e.posts, e.media, e.gallery)
	e.prefs = NewPreferenceService(stores.Slots)
	return e
}

// register creates an account and returns its session user.
func (e *testEnv) register(t *testing.T, name, email string) *model.User {
	t.Helper()
	sess, err := e.users.Register(context.Background(), name, email, "pw-"+name)
	require.NoError(t, err)
	u := sess.User
	return &u
}

func (e *testEnv) outboxActions(kind model.ContentKind, id string) []model.ModerationAction {
	repo := &repository.OutboxRepository{Events: e.stores.Outbox}
	var out []model.ModerationAction
	for _, ev := range repo.History(kind, id) {
		out = append(out, ev.Action)
	}
	return out
}
