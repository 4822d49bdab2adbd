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

type PostService struct {
	posts *repository.Collection[model.Post]
	mod   *Moderator[model.Post, *model.Post]
	now   func() time.Time
}

func NewPostService(stores *repository.Stores, log *zap.Logger) *PostService {
	return &PostService{
		posts: stores.Posts,
		mod: NewModerator[model.Post, *model.Post](model.KindPost, stores.Posts, stores.Outbox,
			func(p model.Post) string { return p.Title }, log),
		now: time.Now,
	}
}

// PostDraft is what an author submits. Tags is the raw comma separated input.
type PostDraft struct {
	Type     model.PostType `json:"type"`
	Category model.Section  `json:"category"`
	Title    string         `json:"title"`
	Content  string         `json:"content"`
	Images   []string       `json:"images"`
	Tags     string         `json:"tags"`
}

// ParseTags splits on ASCII and full-width commas and drops blanks.
func ParseTags(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == '，' })
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// Publish creates a post owned by actor. Admin posts go live at once, others
// wait in the review queue.
func (s *PostService) Publish(ctx context.Context, actor *model.User, d PostDraft) (Submission[model.Post], error) {
	if actor == nil {
		return Submission[model.Post]{}, ErrUnauthenticated
	}
	if strings.TrimSpace(d.Title) == "" || strings.TrimSpace(d.Content) == "" {
		return Submission[model.Post]{}, invalid("title and content required")
	}
	if !d.Category.Valid() || d.Category == model.SectionAll {
		return Submission[model.Post]{}, invalid("unknown category")
	}
	typ := d.Type
	if typ == "" {
		typ = model.PostArticle
		if d.Category == model.SectionNews {
			typ = model.PostNews
		}
	} else if !typ.Valid() {
		return Submission[model.Post]{}, invalid("unknown post type")
	}
	images := d.Images
	if images == nil {
		images = []string{}
	}

	post := model.Post{
		ID:        pkg.NewID("post"),
		Type:      typ,
		Category:  d.Category,
		Title:     d.Title,
		Content:   d.Content,
		Author:    actor.Name,
		AuthorUID: actor.UID,
		Timestamp: s.now(),
		Images:    images,
		Tags:      ParseTags(d.Tags),
		Comments:  []model.Comment{},
		Views:     1,
	}
	return s.mod.Submit(ctx, actor, post)
}

func (s *PostService) Approve(ctx context.Context, actor *model.User, id string) (bool, error) {
	return s.mod.Approve(ctx, actor, id)
}

func (s *PostService) Reject(ctx context.Context, actor *model.User, id string) (bool, error) {
	return s.mod.Reject(ctx, actor, id)
}

func (s *PostService) Delete(ctx context.Context, actor *model.User, id string) (bool, error) {
	return s.mod.Delete(ctx, actor, id)
}

func (s *PostService) Pending() []model.Post { return s.mod.Pending() }

// AddComment appends a comment. A missing post, or a pending one the actor
// cannot see, is a no-op (found=false).
func (s *PostService) AddComment(ctx context.Context, actor *model.User, postID, text string) (model.Comment, bool, error) {
	if actor == nil {
		return model.Comment{}, false, ErrUnauthenticated
	}
	if strings.TrimSpace(text) == "" {
		return model.Comment{}, false, invalid("comment text required")
	}
	c := model.Comment{
		ID:        pkg.NewID("comment"),
		Sender:    actor.Name,
		SenderUID: actor.UID,
		Text:      text,
		Timestamp: s.now(),
	}
	if _, ok := s.Get(actor, postID); !ok {
		return model.Comment{}, false, nil
	}
	_, found, err := s.posts.UpdateOne(ctx, postID, func(p *model.Post) {
		p.Comments = append(slices.Clip(p.Comments), c)
	})
	if err != nil || !found {
		return model.Comment{}, found, err
	}
	return c, true, nil
}

// Get returns one post. Pending posts are only visible to their author and
// admins.
func (s *PostService) Get(viewer *model.User, id string) (model.Post, bool) {
	p, ok := s.posts.Get(id)
	if !ok || !canSee(viewer, p) {
		return model.Post{}, false
	}
	return p, true
}

func (s *PostService) Timeline(section model.Section, query string) []model.Post {
	if section == "" {
		section = model.SectionAll
	}
	return view.Timeline(s.posts.List(), section, query)
}

// Mine lists the actor's posts in any state.
func (s *PostService) Mine(uid string) []model.Post {
	return view.AuthoredBy(s.posts.List(), uid)
}

func canSee(viewer *model.User, item model.Moderated) bool {
	if item.ModerationStatus() == model.StatusPublished {
		return true
	}
	return viewer != nil && (viewer.IsAdmin() || viewer.UID == item.OwnerUID())
}
