package service

import (
	"context"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"Share_Space/internal/model"
	"Share_Space/internal/pkg"
	"Share_Space/internal/repository"
	"Share_Space/internal/view"
)

type MediaService struct {
	items *repository.Collection[model.MediaItem]
	mod   *Moderator[model.MediaItem, *model.MediaItem]
	now   func() time.Time
}

func NewMediaService(stores *repository.Stores, log *zap.Logger) *MediaService {
	return &MediaService{
		items: stores.Media,
		mod: NewModerator[model.MediaItem, *model.MediaItem](model.KindMedia, stores.Media, stores.Outbox,
			func(m model.MediaItem) string { return m.Title }, log),
		now: time.Now,
	}
}

// MediaDraft mirrors the add form. Progress and Rating are kept as given.
type MediaDraft struct {
	Title    string            `json:"title"`
	Cover    string            `json:"cover"`
	Progress float64           `json:"progress"`
	Rating   float64           `json:"rating"`
	Status   model.WatchStatus `json:"status"`
	Type     model.MediaType   `json:"type"`
}

func (s *MediaService) Add(ctx context.Context, actor *model.User, d MediaDraft) (Submission[model.MediaItem], error) {
	if actor == nil {
		return Submission[model.MediaItem]{}, ErrUnauthenticated
	}
	if strings.TrimSpace(d.Title) == "" || d.Cover == "" {
		return Submission[model.MediaItem]{}, invalid("title and cover required")
	}
	if d.Status == "" {
		d.Status = model.WatchWatching
	}
	switch d.Status {
	case model.WatchWatching, model.WatchCompleted, model.WatchDropped, model.WatchPlanToWatch:
	default:
		return Submission[model.MediaItem]{}, invalid("unknown watch status")
	}
	if d.Type == "" {
		d.Type = model.MediaAnime
	}
	if d.Type != model.MediaAnime && d.Type != model.MediaGame {
		return Submission[model.MediaItem]{}, invalid("unknown media type")
	}

	item := model.MediaItem{
		ID:        pkg.NewID("media"),
		AuthorUID: actor.UID,
		Title:     d.Title,
		Cover:     d.Cover,
		Progress:  d.Progress,
		Rating:    d.Rating,
		Status:    d.Status,
		Type:      d.Type,
		Comments:  []model.Comment{},
	}
	return s.mod.Submit(ctx, actor, item)
}

func (s *MediaService) Approve(ctx context.Context, actor *model.User, id string) (bool, error) {
	return s.mod.Approve(ctx, actor, id)
}

func (s *MediaService) Reject(ctx context.Context, actor *model.User, id string) (bool, error) {
	return s.mod.Reject(ctx, actor, id)
}

func (s *MediaService) Remove(ctx context.Context, actor *model.User, id string) (bool, error) {
	return s.mod.Delete(ctx, actor, id)
}

func (s *MediaService) Pending() []model.MediaItem { return s.mod.Pending() }

func (s *MediaService) Published() []model.MediaItem {
	return view.PublishedMedia(s.items.List())
}

func (s *MediaService) Get(viewer *model.User, id string) (model.MediaItem, bool) {
	m, ok := s.items.Get(id)
	if !ok || !canSee(viewer, m) {
		return model.MediaItem{}, false
	}
	return m, true
}

// AddComment appends a comment to an item the actor can see.
func (s *MediaService) AddComment(ctx context.Context, actor *model.User, mediaID, text string) (model.Comment, bool, error) {
	if actor == nil {
		return model.Comment{}, false, ErrUnauthenticated
	}
	if strings.TrimSpace(text) == "" {
		return model.Comment{}, false, invalid("comment text required")
	}
	c := model.Comment{
		ID:        pkg.NewID("m-comm"),
		Sender:    actor.Name,
		SenderUID: actor.UID,
		Text:      text,
		Timestamp: s.now(),
	}
	if _, ok := s.Get(actor, mediaID); !ok {
		return model.Comment{}, false, nil
	}
	_, found, err := s.items.UpdateOne(ctx, mediaID, func(m *model.MediaItem) {
		m.Comments = append(slices.Clip(m.Comments), c)
	})
	if err != nil || !found {
		return model.Comment{}, found, err
	}
	return c, true, nil
}
