package model

import "time"

// Comment belongs to exactly one Post or MediaItem and is never edited.
type Comment struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	SenderUID string    `json:"senderUid,omitempty"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Message is a top-level guestbook entry.
type Message struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	SenderUID string    `json:"senderUid"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

func (m Message) EntityID() string { return m.ID }
