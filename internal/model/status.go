package model

// Status is the moderation state of submitted content.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPublished Status = "published"
)

// Role of a registered user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ContentKind names the three submittable collections.
type ContentKind string

const (
	KindPost    ContentKind = "post"
	KindMedia   ContentKind = "media"
	KindGallery ContentKind = "gallery"
)

func (k ContentKind) Valid() bool {
	switch k {
	case KindPost, KindMedia, KindGallery:
		return true
	}
	return false
}

// Entity is anything stored in a collection slot.
type Entity interface {
	EntityID() string
}

// Moderated is content that passes through review before it is published.
type Moderated interface {
	Entity
	ModerationStatus() Status
	OwnerUID() string
}
