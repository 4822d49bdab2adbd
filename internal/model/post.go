package model

import "time"

type PostType string

const (
	PostArticle PostType = "article"
	PostNews    PostType = "news"
	PostReview  PostType = "review"
	PostWhisper PostType = "whisper"
)

func (t PostType) Valid() bool {
	switch t {
	case PostArticle, PostNews, PostReview, PostWhisper:
		return true
	}
	return false
}

// Section is the category tag a post is filed under.
type Section string

const (
	SectionAll        Section = "all"
	SectionNews       Section = "news"
	SectionAnalysis   Section = "analysis"
	SectionCollection Section = "collection"
	SectionLife       Section = "life"
	SectionMedia      Section = "media"
	SectionGallery    Section = "gallery"
	SectionGuestbook  Section = "guestbook"
)

func (s Section) Valid() bool {
	switch s {
	case SectionAll, SectionNews, SectionAnalysis, SectionCollection,
		SectionLife, SectionMedia, SectionGallery, SectionGuestbook:
		return true
	}
	return false
}

type Post struct {
	ID        string    `json:"id"`
	Type      PostType  `json:"type"`
	Category  Section   `json:"category"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	AuthorUID string    `json:"authorUid"`
	Timestamp time.Time `json:"timestamp"`
	Images    []string  `json:"images"`
	Tags      []string  `json:"tags"`
	Comments  []Comment `json:"comments"`
	Views     int       `json:"views"`
	Status    Status    `json:"status"`
}

func (p Post) EntityID() string              { return p.ID }
func (p Post) ModerationStatus() Status      { return p.Status }
func (p Post) OwnerUID() string              { return p.AuthorUID }
func (p *Post) SetModerationStatus(s Status) { p.Status = s }
