package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"Share_Space/internal/model"
	"Share_Space/internal/pkg"
	"Share_Space/internal/repository"
)

// Sender delivers one moderation event downstream.
type Sender func(ctx context.Context, ev *model.ModerationEvent) error

type RelayerOptions struct {
	BatchSize int
	MaxRetry  int
	Keep      int
	Interval  time.Duration
}

// OutboxRelayer drains the moderation outbox into a Sender.
type OutboxRelayer struct {
	repo   *repository.OutboxRepository
	opts   RelayerOptions
	sender Sender
	log    *zap.Logger
	now    func() time.Time
}

func NewOutboxRelayer(repo *repository.OutboxRepository, sender Sender, log *zap.Logger, opts RelayerOptions) *OutboxRelayer {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 200
	}
	if opts.MaxRetry <= 0 {
		opts.MaxRetry = 5
	}
	if opts.Keep <= 0 {
		opts.Keep = 1000
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	return &OutboxRelayer{
		repo:   repo,
		opts:   opts,
		sender: sender,
		log:    log.Named("outbox"),
		now:    time.Now,
	}
}

// Run drains on every tick until ctx is done.
func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.opts.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.DrainOnce(ctx)
		}
	}
}

// DrainOnce sends one batch, oldest first.
func (r *OutboxRelayer) DrainOnce(ctx context.Context) (sent, failed int) {
	for _, ev := range r.repo.List(r.opts.BatchSize, r.opts.MaxRetry) {
		if err := r.sender(ctx, &ev); err != nil {
			failed++
			r.log.Warn("send failed", zap.String("event", ev.ID), zap.Int("retry", ev.Retry+1), zap.Error(err))
			if err = r.repo.RetryUpdate(ctx, ev.ID, ev.Delivered, r.now()); err != nil {
				r.log.Error("mark retry", zap.String("event", ev.ID), zap.Error(err))
			}
			continue
		}
		sent++
		if err := r.repo.SuccessUpdate(ctx, ev.ID, r.now()); err != nil {
			r.log.Error("mark sent", zap.String("event", ev.ID), zap.Error(err))
		}
	}
	if sent > 0 || failed > 0 {
		if _, err := r.repo.Prune(ctx, r.opts.Keep, r.opts.MaxRetry); err != nil {
			r.log.Error("prune", zap.Error(err))
		}
	}
	return sent, failed
}

// LogSender only writes the event to the log.
func LogSender(log *zap.Logger) Sender {
	return func(_ context.Context, ev *model.ModerationEvent) error {
		log.Info("moderation event",
			zap.String("kind", string(ev.Kind)),
			zap.String("action", string(ev.Action)),
			zap.String("item", ev.ItemID),
			zap.String("author", ev.AuthorUID),
			zap.String("actor", ev.ActorUID))
		return nil
	}
}

// KafkaSender publishes the event as JSON keyed by item id.
func KafkaSender(p *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ev *model.ModerationEvent) error {
		payload, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		return p.Send(ctx, ev.ItemID, payload)
	}
}

type mailFunc func(cfg pkg.SMTPConfig, to []string, subject, htmlBody string) error

// MailSender e-mails reviewers when something enters the review queue.
// Other actions are ignored.
func MailSender(cfg pkg.SMTPConfig, reviewers []string) Sender {
	return mailSender(pkg.SendEmail, cfg, reviewers)
}

func mailSender(send mailFunc, cfg pkg.SMTPConfig, reviewers []string) Sender {
	return func(_ context.Context, ev *model.ModerationEvent) error {
		if ev.Action != model.ActionSubmitted || len(reviewers) == 0 {
			return nil
		}
		subject := fmt.Sprintf("[Share] %s awaiting review", ev.Kind)
		return send(cfg, reviewers, subject, pkg.ReviewNoticeHTML(string(ev.Kind), ev.Title, ev.AuthorUID))
	}
}

// Sink is one named downstream of the outbox.
type Sink struct {
	Name string
	Send Sender
}

// FanOut delivers to every sink that has not taken the event yet and records
// the ones that succeed in ev.Delivered, so a retry only reaches the sinks
// that failed. It fails if any sink failed.
func FanOut(sinks ...Sink) Sender {
	return func(ctx context.Context, ev *model.ModerationEvent) error {
		var errs []error
		for _, s := range sinks {
			if ev.DeliveredTo(s.Name) {
				continue
			}
			if err := s.Send(ctx, ev); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", s.Name, err))
				continue
			}
			ev.Delivered = append(slices.Clip(ev.Delivered), s.Name)
		}
		return errors.Join(errs...)
	}
}
