package model

import "time"

// ModerationAction is what happened to a piece of content.
type ModerationAction string

const (
	ActionSubmitted ModerationAction = "submitted"
	ActionPublished ModerationAction = "published"
	ActionApproved  ModerationAction = "approved"
	ActionRejected  ModerationAction = "rejected"
	ActionDeleted   ModerationAction = "deleted"
)

// Outbox delivery states.
const (
	OutboxPending int8 = 0
	OutboxSent    int8 = 1
	OutboxFailed  int8 = 2
)

// ModerationEvent is one row of the moderation outbox. It is kept after
// delivery so rejections remain auditable even though the item is gone.
type ModerationEvent struct {
	ID        string           `json:"id"`
	Kind      ContentKind      `json:"kind"`
	Action    ModerationAction `json:"action"`
	ItemID    string           `json:"itemId"`
	Title     string           `json:"title,omitempty"`
	AuthorUID string           `json:"authorUid"`
	ActorUID  string           `json:"actorUid"`
	Status    int8             `json:"status"`
	Retry     int              `json:"retry"`
	Delivered []string         `json:"delivered,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

func (e ModerationEvent) EntityID() string { return e.ID }

// DeliveredTo reports whether sink already accepted the event.
func (e ModerationEvent) DeliveredTo(sink string) bool {
	for _, d := range e.Delivered {
		if d == sink {
			return true
		}
	}
	return false
}
