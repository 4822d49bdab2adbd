package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"Share_Space/internal/model"
	"Share_Space/internal/pkg"
	"Share_Space/internal/repository"
	"Share_Space/internal/view"
)

const untitledArt = "Untitled"

type GalleryService struct {
	items *repository.Collection[model.ArtItem]
	mod   *Moderator[model.ArtItem, *model.ArtItem]
}

func NewGalleryService(stores *repository.Stores, log *zap.Logger) *GalleryService {
	return &GalleryService{
		items: stores.Gallery,
		mod: NewModerator[model.ArtItem, *model.ArtItem](model.KindGallery, stores.Gallery, stores.Outbox,
			func(a model.ArtItem) string { return a.Title }, log),
	}
}

type ArtDraft struct {
	URL         string            `json:"url"`
	Title       string            `json:"title"`
	AspectRatio model.AspectRatio `json:"aspectRatio"`
}

func (s *GalleryService) Add(ctx context.Context, actor *model.User, d ArtDraft) (Submission[model.ArtItem], error) {
	if actor == nil {
		return Submission[model.ArtItem]{}, ErrUnauthenticated
	}
	if d.URL == "" {
		return Submission[model.ArtItem]{}, invalid("image required")
	}
	if strings.TrimSpace(d.Title) == "" {
		d.Title = untitledArt
	}
	switch d.AspectRatio {
	case "":
		d.AspectRatio = model.AspectPortrait
	case model.AspectSquare, model.AspectPortrait, model.AspectLandscape:
	default:
		return Submission[model.ArtItem]{}, invalid("unknown aspect ratio")
	}

	item := model.ArtItem{
		ID:          pkg.NewID("art"),
		AuthorUID:   actor.UID,
		URL:         d.URL,
		Title:       d.Title,
		AspectRatio: d.AspectRatio,
	}
	return s.mod.Submit(ctx, actor, item)
}

func (s *GalleryService) Approve(ctx context.Context, actor *model.User, id string) (bool, error) {
	return s.mod.Approve(ctx, actor, id)
}

// Reject removes a gallery item from the gallery collection.
func (s *GalleryService) Reject(ctx context.Context, actor *model.User, id string) (bool, error) {
	return s.mod.Reject(ctx, actor, id)
}

func (s *GalleryService) Remove(ctx context.Context, actor *model.User, id string) (bool, error) {
	return s.mod.Delete(ctx, actor, id)
}

func (s *GalleryService) Pending() []model.ArtItem { return s.mod.Pending() }

func (s *GalleryService) Published() []model.ArtItem {
	return view.PublishedGallery(s.items.List())
}
