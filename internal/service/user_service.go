package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"Share_Space/internal/model"
	"Share_Space/internal/pkg"
	"Share_Space/internal/repository"
	"Share_Space/internal/repository/slot"
)

const uidAttempts = 20

// UserService is the session/auth gate. A session is a token pair plus a
// per-user slot holding the user snapshot (never the password hash).
type UserService struct {
	users    *repository.Collection[model.User]
	slots    slot.Store
	log      *zap.Logger
	now      func() time.Time
	newUID   func() (string, error)
	hashCost int
}

func NewUserService(stores *repository.Stores, log *zap.Logger) *UserService {
	return &UserService{
		users:    stores.Users,
		slots:    stores.Slots,
		log:      log.Named("user"),
		now:      time.Now,
		newUID:   pkg.RandUID,
		hashCost: bcrypt.DefaultCost,
	}
}

type Session struct {
	User   model.User `json:"user"`
	Tokens *pkg.Pair  `json:"tokens"`
}

// Register creates an account and logs it in. The very first account in an
// empty store becomes the admin.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, invalid("email and password required")
	}
	if strings.TrimSpace(name) == "" {
		name = "New Member"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, err
	}

	var user model.User
	err = s.users.Mutate(ctx, func(items []model.User) ([]model.User, error) {
		// 示例内容的作者 uid 不分配给真实用户
		taken := map[string]bool{repository.SeedAuthorUID: true}
		for _, u := range items {
			if u.Email == email {
				return nil, ErrDuplicateEmail
			}
			taken[u.UID] = true
		}
		uid, err := s.allocUID(taken)
		if err != nil {
			return nil, err
		}
		role := model.RoleUser
		if len(items) == 0 {
			role = model.RoleAdmin
		}
		user = newProfile(name, email, string(hash), uid, role)
		return append(items, user), nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("registered", zap.String("uid", user.UID), zap.String("role", string(user.Role)))
	return s.startSession(ctx, user)
}

func newProfile(name, email, hash, uid string, role model.Role) model.User {
	u := model.User{
		ID:           pkg.NewID("u"),
		UID:          uid,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Title:        "Share Member",
		Subtitle:     "A traveller recording life",
		Avatar:       "https://api.dicebear.com/7.x/avataaars/svg?seed=" + uid,
		Banner:       "https://images.unsplash.com/photo-1516706562776-08fd5035cc04?q=80&w=1920",
		Signature:    "Welcome to my digital space.",
		Stats:        &model.UserStats{Score: 100, Level: 1},
	}
	if role == model.RoleAdmin {
		u.Title = "System Administrator"
		u.Signature = "Keeping this world in order."
	}
	return u
}

// allocUID draws random uids until one is free.
func (s *UserService) allocUID(taken map[string]bool) (string, error) {
	for i := 0; i < uidAttempts; i++ {
		uid, err := s.newUID()
		if err != nil {
			return "", err
		}
		if !taken[uid] {
			return uid, nil
		}
	}
	return "", ErrUIDExhausted
}

func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, ok := s.users.Find(func(u model.User) bool { return u.Email == email })
	if !ok || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if user.BannedAt(s.now()) {
		return nil, &BannedError{Until: *user.BannedUntil}
	}
	return s.startSession(ctx, user)
}

func (s *UserService) startSession(ctx context.Context, user model.User) (*Session, error) {
	if err := s.writeSession(ctx, user); err != nil {
		return nil, err
	}
	tokens, err := pkg.GeneratePair(user.UID, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &Session{User: user.Public(), Tokens: tokens}, nil
}

func (s *UserService) writeSession(ctx context.Context, user model.User) error {
	raw, err := json.Marshal(user.Public())
	if err != nil {
		return err
	}
	key := slot.UserKey(slot.CurrentUserKey, user.UID)
	if err = s.slots.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}

// syncSession rewrites a live session snapshot; no session, no write.
func (s *UserService) syncSession(ctx context.Context, user model.User) error {
	_, ok, err := s.slots.Get(ctx, slot.UserKey(slot.CurrentUserKey, user.UID))
	if err != nil || !ok {
		return err
	}
	return s.writeSession(ctx, user)
}

// Logout clears the session only; stored collections are untouched.
func (s *UserService) Logout(ctx context.Context, uid string) error {
	return s.slots.Delete(ctx, slot.UserKey(slot.CurrentUserKey, uid))
}

// Current returns the session snapshot for uid.
func (s *UserService) Current(ctx context.Context, uid string) (model.User, error) {
	raw, ok, err := s.slots.Get(ctx, slot.UserKey(slot.CurrentUserKey, uid))
	if err != nil {
		return model.User{}, err
	}
	if !ok {
		return model.User{}, ErrSessionExpired
	}
	var u model.User
	if err = json.Unmarshal([]byte(raw), &u); err != nil {
		return model.User{}, fmt.Errorf("decode session: %w", err)
	}
	return u, nil
}

// Refresh issues a new pair while the session is still present.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*pkg.Pair, error) {
	claims, err := pkg.ParseRefresh(refreshToken)
	if err != nil {
		return nil, err
	}
	if _, err = s.Current(ctx, claims.UID); err != nil {
		return nil, err
	}
	role := claims.Role
	if u, ok := s.Lookup(claims.UID); ok {
		role = string(u.Role)
	}
	return pkg.GeneratePair(claims.UID, role)
}

// Ban blocks uid for days; days == 0 lifts the ban. A banned user's
// session ends at once. Unknown uids are ignored.
func (s *UserService) Ban(ctx context.Context, actor *model.User, uid string, days int) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if days < 0 {
		return invalid("days must not be negative")
	}
	target, ok := s.Lookup(uid)
	if !ok {
		return nil
	}
	var until *time.Time
	if days > 0 {
		t := s.now().AddDate(0, 0, days)
		until = &t
	}
	updated, found, err := s.users.UpdateOne(ctx, target.ID, func(u *model.User) { u.BannedUntil = until })
	if err != nil || !found {
		return err
	}
	s.log.Info("ban updated", zap.String("uid", uid), zap.Int("days", days), zap.String("by", actor.UID))
	if days > 0 {
		return s.Logout(ctx, uid)
	}
	return s.syncSession(ctx, updated)
}

// ProfilePatch carries the editable fields; nil means unchanged.
type ProfilePatch struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	Title     *string `json:"title"`
	Subtitle  *string `json:"subtitle"`
	Avatar    *string `json:"avatar"`
	Banner    *string `json:"banner"`
	Signature *string `json:"signature"`
}

// UpdateProfile edits uid's record (self or admin). A live session for that
// user is refreshed and a new password applies to the next login.
func (s *UserService) UpdateProfile(ctx context.Context, actor *model.User, uid string, p ProfilePatch) (model.User, error) {
	if actor == nil {
		return model.User{}, ErrUnauthenticated
	}
	if actor.UID != uid && !actor.IsAdmin() {
		return model.User{}, ErrPermissionDenied
	}
	var hash string
	if p.Password != nil {
		if *p.Password == "" {
			return model.User{}, invalid("password must not be empty")
		}
		h, err := bcrypt.GenerateFromPassword([]byte(*p.Password), s.hashCost)
		if err != nil {
			return model.User{}, err
		}
		hash = string(h)
	}
	if p.Email != nil && strings.TrimSpace(*p.Email) == "" {
		return model.User{}, invalid("email must not be empty")
	}

	var updated model.User
	found := false
	err := s.users.Mutate(ctx, func(items []model.User) ([]model.User, error) {
		idx := -1
		for i, u := range items {
			if u.UID == uid {
				idx = i
			}
		}
		if idx < 0 {
			return items, nil
		}
		u := items[idx]
		if p.Email != nil && *p.Email != u.Email {
			for _, other := range items {
				if other.Email == *p.Email {
					return nil, ErrDuplicateEmail
				}
			}
			u.Email = *p.Email
		}
		applyString(&u.Name, p.Name)
		applyString(&u.Title, p.Title)
		applyString(&u.Subtitle, p.Subtitle)
		applyString(&u.Avatar, p.Avatar)
		applyString(&u.Banner, p.Banner)
		applyString(&u.Signature, p.Signature)
		if hash != "" {
			u.PasswordHash = hash
		}
		items[idx] = u
		updated, found = u, true
		return items, nil
	})
	if err != nil {
		return model.User{}, err
	}
	if !found {
		return model.User{}, nil
	}
	if err = s.syncSession(ctx, updated); err != nil {
		return model.User{}, err
	}
	return updated.Public(), nil
}

func applyString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// DeleteUser removes the account and its session. Content it authored stays
// and keeps pointing at the now dangling uid.
func (s *UserService) DeleteUser(ctx context.Context, actor *model.User, uid string) (bool, error) {
	if err := requireAdmin(actor); err != nil {
		return false, err
	}
	target, ok := s.Lookup(uid)
	if !ok {
		return false, nil
	}
	removed, err := s.users.Remove(ctx, target.ID)
	if err != nil || !removed {
		return false, err
	}
	s.log.Info("user deleted", zap.String("uid", uid), zap.String("by", actor.UID))
	return true, s.Logout(ctx, uid)
}

// Lookup resolves a soft uid reference.
func (s *UserService) Lookup(uid string) (model.User, bool) {
	return s.users.Find(func(u model.User) bool { return u.UID == uid })
}

// Users lists every account without password hashes.
func (s *UserService) Users() []model.User {
	list := s.users.List()
	for i := range list {
		list[i] = list[i].Public()
	}
	return list
}

// ClearExpiredBans drops bannedUntil values that lie in the past.
func (s *UserService) ClearExpiredBans(ctx context.Context) (int, error) {
	now := s.now()
	return s.users.UpdateWhere(ctx,
		func(u model.User) bool { return u.BannedUntil != nil && !u.BannedUntil.After(now) },
		func(u *model.User) { u.BannedUntil = nil })
}
