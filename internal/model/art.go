package model

type AspectRatio string

const (
	AspectSquare    AspectRatio = "square"
	AspectPortrait  AspectRatio = "portrait"
	AspectLandscape AspectRatio = "landscape"
)

type ArtItem struct {
	ID          string      `json:"id"`
	AuthorUID   string      `json:"authorUid"`
	URL         string      `json:"url"`
	Title       string      `json:"title"`
	AspectRatio AspectRatio `json:"aspectRatio"`
	Status      Status      `json:"status"`
}

func (a ArtItem) EntityID() string              { return a.ID }
func (a ArtItem) ModerationStatus() Status      { return a.Status }
func (a ArtItem) OwnerUID() string              { return a.AuthorUID }
func (a *ArtItem) SetModerationStatus(s Status) { a.Status = s }
