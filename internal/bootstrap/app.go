// Package bootstrap wires configuration, storage and services into an App
// shared by the HTTP server and the admin CLI.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"Share_Space/internal/config"
	"Share_Space/internal/model"
	"Share_Space/internal/pkg"
	"Share_Space/internal/repository"
	"Share_Space/internal/repository/mysql"
	"Share_Space/internal/repository/redis"
	"Share_Space/internal/repository/slot"
	"Share_Space/internal/repository/sqlite"
	"Share_Space/internal/service"
)

type App struct {
	Config *config.Config
	Log    *zap.Logger
	Stores *repository.Stores

	Users     *service.UserService
	Prefs     *service.PreferenceService
	Posts     *service.PostService
	Media     *service.MediaService
	Gallery   *service.GalleryService
	Guestbook *service.GuestbookService
	Space     *service.SpaceService
	Review    *service.ReviewService

	Relayer *service.OutboxRelayer
	Sweeper *service.BanSweeper

	producer *pkg.KafkaProducer
}

// OpenStore opens the slot backend named by cfg.Driver.
func OpenStore(cfg config.StoreConfig) (slot.Store, error) {
	switch cfg.Driver {
	case "memory":
		return slot.NewMemoryStore(), nil
	case "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return sqlite.NewSlotRepository(db), nil
	case "mysql":
		if err := mysql.InitDB(cfg.MySQLDSN); err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
		return mysql.NewSlotRepository(mysql.DB), nil
	case "redis":
		if err := redis.Init(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
			return nil, fmt.Errorf("open redis: %w", err)
		}
		return redis.NewSlotRepository(redis.Client), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// New loads every collection from store and builds the services.
func New(ctx context.Context, cfg *config.Config, store slot.Store, log *zap.Logger) (*App, error) {
	pkg.SetSecrets(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret)

	stores, err := repository.Open(ctx, store, time.Now())
	if err != nil {
		return nil, fmt.Errorf("load collections: %w", err)
	}

	a := &App{Config: cfg, Log: log, Stores: stores}
	a.Users = service.NewUserService(stores, log)
	a.Prefs = service.NewPreferenceService(store)
	a.Posts = service.NewPostService(stores, log)
	a.Media = service.NewMediaService(stores, log)
	a.Gallery = service.NewGalleryService(stores, log)
	a.Guestbook = service.NewGuestbookService(stores)
	a.Space = service.NewSpaceService(stores, a.Users)
	a.Review = service.NewReviewService(a.Posts, a.Media, a.Gallery)

	sender, err := a.sender()
	if err != nil {
		return nil, err
	}
	interval, err := time.ParseDuration(cfg.Jobs.OutboxInterval)
	if err != nil {
		return nil, fmt.Errorf("jobs.outbox_interval: %w", err)
	}
	a.Relayer = service.NewOutboxRelayer(&repository.OutboxRepository{Events: stores.Outbox}, sender, log, service.RelayerOptions{
		BatchSize: cfg.Jobs.OutboxBatch,
		MaxRetry:  cfg.Jobs.OutboxMaxRetry,
		Keep:      cfg.Jobs.OutboxKeep,
		Interval:  interval,
	})
	if a.Sweeper, err = service.NewBanSweeper(a.Users, cfg.Jobs.BanSweep, log); err != nil {
		return nil, fmt.Errorf("jobs.ban_sweep: %w", err)
	}
	return a, nil
}

// sender always logs; kafka and mail are added when configured. Each sink
// is retried on its own.
func (a *App) sender() (service.Sender, error) {
	sinks := []service.Sink{{Name: "log", Send: service.LogSender(a.Log.Named("outbox"))}}
	if len(a.Config.Kafka.Brokers) > 0 {
		p, err := pkg.NewKafkaProducer(pkg.KafkaConfig{Brokers: a.Config.Kafka.Brokers, Topic: a.Config.Kafka.Topic})
		if err != nil {
			return nil, err
		}
		a.producer = p
		sinks = append(sinks, service.Sink{Name: "kafka", Send: service.KafkaSender(p)})
	}
	smtp := pkg.SMTPConfig{
		Host:     a.Config.SMTP.Host,
		Port:     a.Config.SMTP.Port,
		Username: a.Config.SMTP.Username,
		Password: a.Config.SMTP.Password,
		From:     a.Config.SMTP.From,
	}
	if smtp.Enabled() {
		sinks = append(sinks, service.Sink{Name: "mail", Send: service.MailSender(smtp, a.Config.SMTP.Reviewers)})
	}
	return service.FanOut(sinks...), nil
}

// Actor resolves uid to a stored user for CLI commands.
func (a *App) Actor(uid string) (*model.User, error) {
	u, ok := a.Users.Lookup(uid)
	if !ok {
		return nil, fmt.Errorf("no user with uid %s", uid)
	}
	return &u, nil
}

func (a *App) Close() error {
	return errors.Join(a.producer.Close(), a.Stores.Close())
}
