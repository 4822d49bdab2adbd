// Package view holds read-only projections over collection snapshots.
// Every function is pure: it never modifies its input.
package view

import (
	"strings"

	"Share_Space/internal/model"
)

// Timeline returns published posts in section (or every section for
// SectionAll) whose title or content contains query. Matching is
// case-sensitive; an empty query matches everything.
func Timeline(posts []model.Post, section model.Section, query string) []model.Post {
	out := make([]model.Post, 0, len(posts))
	for _, p := range posts {
		if p.Status != model.StatusPublished {
			continue
		}
		if section != model.SectionAll && p.Category != section {
			continue
		}
		if !strings.Contains(p.Title, query) && !strings.Contains(p.Content, query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func PublishedMedia(items []model.MediaItem) []model.MediaItem {
	return published(items)
}

func PublishedGallery(items []model.ArtItem) []model.ArtItem {
	return published(items)
}

// AuthoredBy lists every post by uid regardless of status.
func AuthoredBy(posts []model.Post, uid string) []model.Post {
	var out []model.Post
	for _, p := range posts {
		if p.AuthorUID == uid {
			out = append(out, p)
		}
	}
	return out
}

// Space is one user's personal page.
type Space struct {
	User    model.User        `json:"user"`
	Known   bool              `json:"known"`
	Posts   []model.Post      `json:"posts"`
	Media   []model.MediaItem `json:"media"`
	Gallery []model.ArtItem   `json:"gallery"`
}

// UnknownUser stands in for a uid that no longer resolves.
func UnknownUser(uid string) model.User {
	return model.User{UID: uid, Name: "Unknown user", Role: model.RoleUser}
}

// SpaceOf builds the personal space for uid. Only published items are shown,
// whoever is looking, including the owner. user is the resolved owner; when
// known is false the placeholder user is used.
func SpaceOf(uid string, user model.User, known bool, posts []model.Post, media []model.MediaItem, gallery []model.ArtItem) Space {
	if !known {
		user = UnknownUser(uid)
	}
	return Space{
		User:    user.Public(),
		Known:   known,
		Posts:   ownedPublished(posts, uid),
		Media:   ownedPublished(media, uid),
		Gallery: ownedPublished(gallery, uid),
	}
}

// Queue is the admin review backlog.
type Queue struct {
	Posts   []model.Post      `json:"posts"`
	Media   []model.MediaItem `json:"media"`
	Gallery []model.ArtItem   `json:"gallery"`
}

func (q Queue) Len() int { return len(q.Posts) + len(q.Media) + len(q.Gallery) }

func PendingQueue(posts []model.Post, media []model.MediaItem, gallery []model.ArtItem) Queue {
	return Queue{
		Posts:   pending(posts),
		Media:   pending(media),
		Gallery: pending(gallery),
	}
}

func published[T model.Moderated](items []T) []T {
	return filter(items, func(it T) bool { return it.ModerationStatus() == model.StatusPublished })
}

func pending[T model.Moderated](items []T) []T {
	return filter(items, func(it T) bool { return it.ModerationStatus() == model.StatusPending })
}

func ownedPublished[T model.Moderated](items []T, uid string) []T {
	return filter(items, func(it T) bool {
		return it.OwnerUID() == uid && it.ModerationStatus() == model.StatusPublished
	})
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
