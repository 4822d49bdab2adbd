package service

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// BanSweeper clears expired bans on a cron schedule so stored records stop
// carrying stale bannedUntil values.
type BanSweeper struct {
	users *UserService
	cron  *cron.Cron
	log   *zap.Logger
}

func NewBanSweeper(users *UserService, schedule string, log *zap.Logger) (*BanSweeper, error) {
	s := &BanSweeper{users: users, cron: cron.New(), log: log.Named("ban-sweeper")}
	if _, err := s.cron.AddFunc(schedule, func() { s.SweepOnce(context.Background()) }); err != nil {
		return nil, err
	}
	return s, nil
}

// Run blocks until ctx is done and waits for a running sweep to finish.
func (s *BanSweeper) Run(ctx context.Context) {
	s.cron.Start()
	<-ctx.Done()
	<-s.cron.Stop().Done()
}

func (s *BanSweeper) SweepOnce(ctx context.Context) int {
	n, err := s.users.ClearExpiredBans(ctx)
	if err != nil {
		s.log.Error("sweep failed", zap.Error(err))
		return 0
	}
	if n > 0 {
		s.log.Info("expired bans cleared", zap.Int("count", n))
	}
	return n
}
