package repository

import (
	"context"
	"time"

	"Share_Space/internal/model"
	"Share_Space/internal/repository/slot"
)

// Stores groups every collection loaded from one slot store.
type Stores struct {
	Slots     slot.Store
	Users     *Collection[model.User]
	Posts     *Collection[model.Post]
	Media     *Collection[model.MediaItem]
	Gallery   *Collection[model.ArtItem]
	Guestbook *Collection[model.Message]
	Outbox    *Collection[model.ModerationEvent]
}

// Open loads all collections. Sample content is only used for slots that
// were never written, and is always published.
func Open(ctx context.Context, store slot.Store, now time.Time) (*Stores, error) {
	var (
		s   = &Stores{Slots: store}
		err error
	)
	if s.Users, err = Load(ctx, store, slot.UsersKey, Options[model.User]{}); err != nil {
		return nil, err
	}
	s.Posts, err = Load(ctx, store, slot.PostsKey, Options[model.Post]{
		Seed: func() []model.Post {
			return publishAll(SeedPosts(now), func(p *model.Post) { p.SetModerationStatus(model.StatusPublished) })
		},
		Normalize: func(p *model.Post) {
			if p.Comments == nil {
				p.Comments = []model.Comment{}
			}
		},
	})
	if err != nil {
		return nil, err
	}
	s.Media, err = Load(ctx, store, slot.MediaKey, Options[model.MediaItem]{
		Seed: func() []model.MediaItem {
			return publishAll(SeedMedia(now), func(m *model.MediaItem) { m.SetModerationStatus(model.StatusPublished) })
		},
		Normalize: func(m *model.MediaItem) {
			if m.Comments == nil {
				m.Comments = []model.Comment{}
			}
		},
	})
	if err != nil {
		return nil, err
	}
	s.Gallery, err = Load(ctx, store, slot.GalleryKey, Options[model.ArtItem]{
		Seed: func() []model.ArtItem {
			return publishAll(SeedGallery(), func(a *model.ArtItem) { a.SetModerationStatus(model.StatusPublished) })
		},
	})
	if err != nil {
		return nil, err
	}
	if s.Guestbook, err = Load(ctx, store, slot.GuestbookKey, Options[model.Message]{}); err != nil {
		return nil, err
	}
	if s.Outbox, err = Load(ctx, store, slot.OutboxKey, Options[model.ModerationEvent]{}); err != nil {
		return nil, err
	}
	return s, nil
}

func publishAll[T any](items []T, set func(*T)) []T {
	for i := range items {
		set(&items[i])
	}
	return items
}

func (s *Stores) Close() error {
	return s.Slots.Close()
}
