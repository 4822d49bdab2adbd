package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"Share_Space/internal/model"
	"Share_Space/internal/pkg"
	"Share_Space/internal/repository"
)

func seedEvents(t *testing.T, e *testEnv, n int) {
	t.Helper()
	e.register(t, "Alice", "a@x")
	bob := e.register(t, "Bob", "b@x")
	for i := 0; i < n; i++ {
		_, err := e.posts.Publish(context.Background(), bob, PostDraft{Category: model.SectionLife, Title: "T", Content: "C"})
		require.NoError(t, err)
	}
}

func TestRelayerMarksSentAndRetries(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	seedEvents(t, e, 3)
	repo := &repository.OutboxRepository{Events: e.stores.Outbox}

	var delivered []string
	calls := 0
	sender := func(_ context.Context, ev *model.ModerationEvent) error {
		calls++
		if calls == 2 {
			return errors.New("broker down")
		}
		delivered = append(delivered, ev.ID)
		return nil
	}
	r := NewOutboxRelayer(repo, sender, zaptest.NewLogger(t), RelayerOptions{MaxRetry: 2})

	sent, failed := r.DrainOnce(ctx)
	assert.Equal(t, 2, sent)
	assert.Equal(t, 1, failed)

	// 失败的事件在下一轮重试
	sent, failed = r.DrainOnce(ctx)
	assert.Equal(t, 1, sent)
	assert.Equal(t, 0, failed)
	assert.Len(t, delivered, 3)

	for _, ev := range e.stores.Outbox.List() {
		assert.Equal(t, model.OutboxSent, ev.Status)
	}
	sent, _ = r.DrainOnce(ctx)
	assert.Zero(t, sent)
}

func TestRelayerGivesUpAfterMaxRetry(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	seedEvents(t, e, 1)
	repo := &repository.OutboxRepository{Events: e.stores.Outbox}

	r := NewOutboxRelayer(repo, func(context.Context, *model.ModerationEvent) error {
		return errors.New("nope")
	}, zaptest.NewLogger(t), RelayerOptions{MaxRetry: 2})

	for i := 0; i < 5; i++ {
		r.DrainOnce(ctx)
	}
	ev := e.stores.Outbox.List()[0]
	assert.Equal(t, model.OutboxFailed, ev.Status)
	assert.Equal(t, 2, ev.Retry)
}

func TestRelayerRunStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := newTestEnv(t)
	seedEvents(t, e, 1)
	repo := &repository.OutboxRepository{Events: e.stores.Outbox}

	got := make(chan string, 1)
	r := NewOutboxRelayer(repo, func(_ context.Context, ev *model.ModerationEvent) error {
		select {
		case got <- ev.ID:
		default:
		}
		return nil
	}, zaptest.NewLogger(t), RelayerOptions{Interval: 5 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	select {
	case <-got:
	case <-time.After(2 * time.Second):
		t.Fatal("relayer never delivered")
	}
	cancel()
	<-done
}

func TestMailSenderOnlyNotifiesSubmissions(t *testing.T) {
	var subjects []string
	send := func(_ pkg.SMTPConfig, to []string, subject, body string) error {
		assert.Equal(t, []string{"mod@x"}, to)
		assert.Contains(t, body, "&lt;b&gt;")
		subjects = append(subjects, subject)
		return nil
	}
	s := mailSender(send, pkg.SMTPConfig{Host: "smtp.x"}, []string{"mod@x"})
	ctx := context.Background()

	require.NoError(t, s(ctx, &model.ModerationEvent{Kind: model.KindPost, Action: model.ActionApproved, Title: "<b>"}))
	require.NoError(t, s(ctx, &model.ModerationEvent{Kind: model.KindPost, Action: model.ActionSubmitted, Title: "<b>"}))
	assert.Equal(t, []string{"[Share] post awaiting review"}, subjects)

	none := mailSender(send, pkg.SMTPConfig{Host: "smtp.x"}, nil)
	require.NoError(t, none(ctx, &model.ModerationEvent{Action: model.ActionSubmitted}))
	assert.Len(t, subjects, 1)
}

func TestFanOutJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	ran := 0
	ok := func(context.Context, *model.ModerationEvent) error { ran++; return nil }
	bad := func(context.Context, *model.ModerationEvent) error { ran++; return boom }

	ev := &model.ModerationEvent{}
	err := FanOut(Sink{Name: "bad", Send: bad}, Sink{Name: "ok", Send: ok})(context.Background(), ev)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, ran)
	assert.Equal(t, []string{"ok"}, ev.Delivered)

	assert.NoError(t, FanOut(
		Sink{Name: "ok", Send: ok},
		Sink{Name: "log", Send: LogSender(zaptest.NewLogger(t))},
	)(context.Background(), &model.ModerationEvent{}))
}

// 某个下游失败时，重试不会重复投递已经成功的下游
func TestRelayerRetriesOnlyFailedSinks(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	seedEvents(t, e, 1)
	repo := &repository.OutboxRepository{Events: e.stores.Outbox}

	mails, kafkaCalls := 0, 0
	kafkaDown := true
	sender := FanOut(
		Sink{Name: "log", Send: LogSender(zaptest.NewLogger(t))},
		Sink{Name: "kafka", Send: func(context.Context, *model.ModerationEvent) error {
			kafkaCalls++
			if kafkaDown {
				return errors.New("broker down")
			}
			return nil
		}},
		Sink{Name: "mail", Send: func(context.Context, *model.ModerationEvent) error {
			mails++
			return nil
		}},
	)
	r := NewOutboxRelayer(repo, sender, zaptest.NewLogger(t), RelayerOptions{MaxRetry: 5})

	for i := 0; i < 3; i++ {
		sent, failed := r.DrainOnce(ctx)
		assert.Zero(t, sent)
		assert.Equal(t, 1, failed)
	}
	assert.Equal(t, 1, mails)
	assert.Equal(t, 3, kafkaCalls)

	ev := e.stores.Outbox.List()[0]
	assert.Equal(t, model.OutboxFailed, ev.Status)
	assert.ElementsMatch(t, []string{"log", "mail"}, ev.Delivered)

	kafkaDown = false
	sent, _ := r.DrainOnce(ctx)
	assert.Equal(t, 1, sent)
	assert.Equal(t, 1, mails)
	assert.Equal(t, model.OutboxSent, e.stores.Outbox.List()[0].Status)
}

func TestBanSweeper(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := newTestEnv(t)
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	e.users.now = func() time.Time { return now }
	admin := e.register(t, "Alice", "a@x")
	bob := e.register(t, "Bob", "b@x")
	require.NoError(t, e.users.Ban(ctx, admin, bob.UID, 1))

	s, err := NewBanSweeper(e.users, "@every 1h", zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Zero(t, s.SweepOnce(ctx))

	now = now.AddDate(0, 0, 1)
	assert.Equal(t, 1, s.SweepOnce(ctx))

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		s.Run(runCtx)
		close(done)
	}()
	cancel()
	<-done

	_, err = NewBanSweeper(e.users, "not a schedule", zaptest.NewLogger(t))
	assert.Error(t, err)
}
