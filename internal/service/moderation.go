package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"Share_Space/internal/model"
	"Share_Space/internal/pkg"
	"Share_Space/internal/repository"
)

// NoticePendingReview is returned to non-admin submitters.
const NoticePendingReview = "submitted for review"

type moderatedPtr[T any] interface {
	*T
	SetModerationStatus(model.Status)
}

// Submission is the outcome of Submit.
type Submission[T any] struct {
	Item    T      `json:"item"`
	Pending bool   `json:"pending"`
	Notice  string `json:"notice,omitempty"`
}

// Moderator runs the pending/published lifecycle for one content kind.
// Approve and Reject check the actor's role themselves; callers cannot skip
// the check by reaching the method some other way.
type Moderator[T model.Moderated, P moderatedPtr[T]] struct {
	kind   model.ContentKind
	items  *repository.Collection[T]
	outbox *repository.Collection[model.ModerationEvent]
	title  func(T) string
	log    *zap.Logger
	now    func() time.Time
}

func NewModerator[T model.Moderated, P moderatedPtr[T]](
	kind model.ContentKind,
	items *repository.Collection[T],
	outbox *repository.Collection[model.ModerationEvent],
	title func(T) string,
	log *zap.Logger,
) *Moderator[T, P] {
	return &Moderator[T, P]{
		kind:   kind,
		items:  items,
		outbox: outbox,
		title:  title,
		log:    log.With(zap.String("kind", string(kind))),
		now:    time.Now,
	}
}

// InitialStatus is published for admins and pending for everyone else.
func InitialStatus(actor model.User) model.Status {
	if actor.IsAdmin() {
		return model.StatusPublished
	}
	return model.StatusPending
}

func requireAdmin(actor *model.User) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if !actor.IsAdmin() {
		return ErrPermissionDenied
	}
	return nil
}

// Submit stores item at the front of its collection with the actor's
// initial status.
func (m *Moderator[T, P]) Submit(ctx context.Context, actor *model.User, item T) (Submission[T], error) {
	if actor == nil {
		return Submission[T]{}, ErrUnauthenticated
	}
	status := InitialStatus(*actor)
	P(&item).SetModerationStatus(status)
	if err := m.items.Add(ctx, item); err != nil {
		return Submission[T]{}, err
	}

	sub := Submission[T]{Item: item}
	action := model.ActionPublished
	if status == model.StatusPending {
		sub.Pending = true
		sub.Notice = NoticePendingReview
		action = model.ActionSubmitted
	}
	m.record(ctx, action, item, actor.UID)
	return sub, nil
}

// Approve publishes a pending item. It reports whether anything changed;
// published or missing items are left alone.
func (m *Moderator[T, P]) Approve(ctx context.Context, actor *model.User, id string) (bool, error) {
	if err := requireAdmin(actor); err != nil {
		return false, err
	}
	cur, ok := m.items.Get(id)
	if !ok || cur.ModerationStatus() != model.StatusPending {
		return false, nil
	}
	updated, found, err := m.items.UpdateOne(ctx, id, func(it *T) {
		P(it).SetModerationStatus(model.StatusPublished)
	})
	if err != nil || !found {
		return false, err
	}
	m.record(ctx, model.ActionApproved, updated, actor.UID)
	return true, nil
}

// Reject removes the item. The outbox keeps the rejection on record.
func (m *Moderator[T, P]) Reject(ctx context.Context, actor *model.User, id string) (bool, error) {
	if err := requireAdmin(actor); err != nil {
		return false, err
	}
	return m.remove(ctx, actor, id, model.ActionRejected)
}

// Delete removes an item on behalf of its owner or an admin.
func (m *Moderator[T, P]) Delete(ctx context.Context, actor *model.User, id string) (bool, error) {
	if actor == nil {
		return false, ErrUnauthenticated
	}
	cur, ok := m.items.Get(id)
	if !ok {
		return false, nil
	}
	if !actor.IsAdmin() && cur.OwnerUID() != actor.UID {
		return false, ErrPermissionDenied
	}
	return m.remove(ctx, actor, id, model.ActionDeleted)
}

func (m *Moderator[T, P]) remove(ctx context.Context, actor *model.User, id string, action model.ModerationAction) (bool, error) {
	cur, ok := m.items.Get(id)
	if !ok {
		return false, nil
	}
	removed, err := m.items.Remove(ctx, id)
	if err != nil || !removed {
		return false, err
	}
	m.record(ctx, action, cur, actor.UID)
	return true, nil
}

func (m *Moderator[T, P]) Get(id string) (T, bool) { return m.items.Get(id) }

func (m *Moderator[T, P]) Pending() []T {
	var out []T
	for _, it := range m.items.List() {
		if it.ModerationStatus() == model.StatusPending {
			out = append(out, it)
		}
	}
	return out
}

// record appends to the outbox. The content change has already been
// persisted, so a failed append is logged rather than returned.
func (m *Moderator[T, P]) record(ctx context.Context, action model.ModerationAction, item T, actorUID string) {
	if m.outbox == nil {
		return
	}
	now := m.now()
	ev := model.ModerationEvent{
		ID:        pkg.NewID("evt"),
		Kind:      m.kind,
		Action:    action,
		ItemID:    item.EntityID(),
		AuthorUID: item.OwnerUID(),
		ActorUID:  actorUID,
		Status:    model.OutboxPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if m.title != nil {
		ev.Title = m.title(item)
	}
	if err := m.outbox.Add(ctx, ev); err != nil {
		m.log.Error("outbox append failed",
			zap.String("action", string(action)),
			zap.String("item", ev.ItemID),
			zap.Error(err))
		return
	}
	m.log.Info("moderation",
		zap.String("action", string(action)),
		zap.String("item", ev.ItemID),
		zap.String("actor", actorUID))
}
