// Package slot defines the named text slots every collection is mirrored to.
package slot

import (
	"context"
	"errors"
)

// Slot names. Session and theme slots are per user, see UserKey.
const (
	CurrentUserKey = "share_current_user_v8"
	UsersKey       = "share_users_db_v8"
	PostsKey       = "share_posts_v8"
	MediaKey       = "share_media_v8"
	GalleryKey     = "share_gallery_v8"
	GuestbookKey   = "share_guestbook_v8"
	ThemeKey       = "share_theme_v8"
	OutboxKey      = "share_moderation_outbox_v8"
)

var ErrStoreClosed = errors.New("slot store closed")

// Store reads and writes whole slots as text. Get reports ok=false when the
// slot has never been written.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// UserKey scopes a per-user slot, e.g. UserKey(CurrentUserKey, "100001").
func UserKey(base, uid string) string {
	return base + ":" + uid
}
