package service

import (
	"context"
	"strings"
	"time"

	"Share_Space/internal/model"
	"Share_Space/internal/pkg"
	"Share_Space/internal/repository"
)

// GuestbookService needs no review: messages appear immediately.
type GuestbookService struct {
	messages *repository.Collection[model.Message]
	now      func() time.Time
}

func NewGuestbookService(stores *repository.Stores) *GuestbookService {
	return &GuestbookService{messages: stores.Guestbook, now: time.Now}
}

// Add signs a message with the given display name. The sender uid always
// comes from the session.
func (s *GuestbookService) Add(ctx context.Context, actor *model.User, sender, text string) (model.Message, error) {
	if actor == nil {
		return model.Message{}, ErrUnauthenticated
	}
	if strings.TrimSpace(sender) == "" || strings.TrimSpace(text) == "" {
		return model.Message{}, invalid("sender and text required")
	}
	msg := model.Message{
		ID:        pkg.NewID("msg"),
		Sender:    sender,
		SenderUID: actor.UID,
		Text:      text,
		Timestamp: s.now(),
	}
	if err := s.messages.Add(ctx, msg); err != nil {
		return model.Message{}, err
	}
	return msg, nil
}

// Remove is allowed for the sender and admins; a missing id is a no-op.
func (s *GuestbookService) Remove(ctx context.Context, actor *model.User, id string) (bool, error) {
	if actor == nil {
		return false, ErrUnauthenticated
	}
	msg, ok := s.messages.Get(id)
	if !ok {
		return false, nil
	}
	if !actor.IsAdmin() && msg.SenderUID != actor.UID {
		return false, ErrPermissionDenied
	}
	return s.messages.Remove(ctx, id)
}

func (s *GuestbookService) List() []model.Message {
	return s.messages.List()
}
