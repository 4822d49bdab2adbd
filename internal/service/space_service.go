package service

import (
	"Share_Space/internal/repository"
	"Share_Space/internal/view"
)

// SpaceService assembles cross-collection views.
type SpaceService struct {
	stores *repository.Stores
	users  *UserService
}

func NewSpaceService(stores *repository.Stores, users *UserService) *SpaceService {
	return &SpaceService{stores: stores, users: users}
}

// Space is uid's personal page. Unknown uids render a placeholder owner.
func (s *SpaceService) Space(uid string) view.Space {
	owner, known := s.users.Lookup(uid)
	return view.SpaceOf(uid, owner, known, s.stores.Posts.List(), s.stores.Media.List(), s.stores.Gallery.List())
}

func (s *SpaceService) PendingQueue() view.Queue {
	return view.PendingQueue(s.stores.Posts.List(), s.stores.Media.List(), s.stores.Gallery.List())
}
