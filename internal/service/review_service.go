package service

import (
	"context"
	"fmt"

	"Share_Space/internal/model"
)

type reviewer interface {
	Approve(ctx context.Context, actor *model.User, id string) (bool, error)
	Reject(ctx context.Context, actor *model.User, id string) (bool, error)
}

// ReviewService routes admin decisions to the collection of the given kind.
type ReviewService struct {
	byKind map[model.ContentKind]reviewer
}

func NewReviewService(posts *PostService, media *MediaService, gallery *GalleryService) *ReviewService {
	return &ReviewService{byKind: map[model.ContentKind]reviewer{
		model.KindPost:    posts,
		model.KindMedia:   media,
		model.KindGallery: gallery,
	}}
}

func (s *ReviewService) Approve(ctx context.Context, actor *model.User, kind model.ContentKind, id string) (bool, error) {
	r, err := s.route(kind)
	if err != nil {
		return false, err
	}
	return r.Approve(ctx, actor, id)
}

func (s *ReviewService) Reject(ctx context.Context, actor *model.User, kind model.ContentKind, id string) (bool, error) {
	r, err := s.route(kind)
	if err != nil {
		return false, err
	}
	return r.Reject(ctx, actor, id)
}

func (s *ReviewService) route(kind model.ContentKind) (reviewer, error) {
	r, ok := s.byKind[kind]
	if !ok {
		return nil, invalid(fmt.Sprintf("unknown content kind %q", kind))
	}
	return r, nil
}
