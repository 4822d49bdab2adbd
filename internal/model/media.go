package model

type WatchStatus string

const (
	WatchWatching    WatchStatus = "watching"
	WatchCompleted   WatchStatus = "completed"
	WatchDropped     WatchStatus = "dropped"
	WatchPlanToWatch WatchStatus = "plan-to-watch"
)

type MediaType string

const (
	MediaAnime MediaType = "anime"
	MediaGame  MediaType = "game"
)

// MediaItem tracks progress on an anime or game. Progress and Rating are
// stored as given.
type MediaItem struct {
	ID             string      `json:"id"`
	AuthorUID      string      `json:"authorUid"`
	Title          string      `json:"title"`
	Cover          string      `json:"cover"`
	Progress       float64     `json:"progress"`
	Rating         float64     `json:"rating"`
	Status         WatchStatus `json:"status"`
	Type           MediaType   `json:"type"`
	Comments       []Comment   `json:"comments,omitempty"`
	ApprovalStatus Status      `json:"approvalStatus"`
}

func (m MediaItem) EntityID() string              { return m.ID }
func (m MediaItem) ModerationStatus() Status      { return m.ApprovalStatus }
func (m MediaItem) OwnerUID() string              { return m.AuthorUID }
func (m *MediaItem) SetModerationStatus(s Status) { m.ApprovalStatus = s }
