package repository

import (
	"context"
	"time"

	"Share_Space/internal/model"
)

// OutboxRepository adds relay bookkeeping on top of the outbox collection.
// Events are stored newest first; List hands them out oldest first.
type OutboxRepository struct {
	Events *Collection[model.ModerationEvent]
}

// List outbox查询：待投递以及未超过重试上限的失败事件
func (r *OutboxRepository) List(batchSize, maxRetry int) []model.ModerationEvent {
	all := r.Events.List()
	var out []model.ModerationEvent
	for i := len(all) - 1; i >= 0 && len(out) < batchSize; i-- {
		ev := all[i]
		if ev.Status == model.OutboxPending || (ev.Status == model.OutboxFailed && ev.Retry < maxRetry) {
			out = append(out, ev)
		}
	}
	return out
}

// RetryUpdate outbox记录消息失败重试，同时记下已经投递成功的下游
func (r *OutboxRepository) RetryUpdate(ctx context.Context, id string, delivered []string, now time.Time) error {
	_, _, err := r.Events.UpdateOne(ctx, id, func(ev *model.ModerationEvent) {
		ev.Status = model.OutboxFailed
		ev.Retry++
		ev.Delivered = delivered
		ev.UpdatedAt = now
	})
	return err
}

// SuccessUpdate outbox成功记录消息更新
func (r *OutboxRepository) SuccessUpdate(ctx context.Context, id string, now time.Time) error {
	_, _, err := r.Events.UpdateOne(ctx, id, func(ev *model.ModerationEvent) {
		ev.Status = model.OutboxSent
		ev.UpdatedAt = now
	})
	return err
}

// Prune keeps at most keep delivered events and at most keep dead events
// (failed maxRetry times). Events still due for delivery are never dropped.
func (r *OutboxRepository) Prune(ctx context.Context, keep, maxRetry int) (int, error) {
	dead := func(ev model.ModerationEvent) bool {
		return ev.Status == model.OutboxFailed && ev.Retry >= maxRetry
	}
	sentTotal, deadTotal := 0, 0
	for _, ev := range r.Events.List() {
		switch {
		case ev.Status == model.OutboxSent:
			sentTotal++
		case dead(ev):
			deadTotal++
		}
	}
	if sentTotal <= keep && deadTotal <= keep {
		return 0, nil
	}
	dropped := 0
	err := r.Events.Mutate(ctx, func(items []model.ModerationEvent) ([]model.ModerationEvent, error) {
		next := make([]model.ModerationEvent, 0, len(items))
		sent, gone := 0, 0
		for _, ev := range items {
			switch {
			case ev.Status == model.OutboxSent:
				if sent++; sent > keep {
					dropped++
					continue
				}
			case dead(ev):
				if gone++; gone > keep {
					dropped++
					continue
				}
			}
			next = append(next, ev)
		}
		return next, nil
	})
	return dropped, err
}

// History returns the audit trail for one item, newest first.
func (r *OutboxRepository) History(kind model.ContentKind, itemID string) []model.ModerationEvent {
	var out []model.ModerationEvent
	for _, ev := range r.Events.List() {
		if ev.Kind == kind && ev.ItemID == itemID {
			out = append(out, ev)
		}
	}
	return out
}
