package service

import (
	"go.uber.org/zap"

	"github.com/lmt-transport/LMT-Driver-App/config"
	"github.com/lmt-transport/LMT-Driver-App/internal/cache"
	"github.com/lmt-transport/LMT-Driver-App/internal/notifier"
	"github.com/lmt-transport/LMT-Driver-App/internal/repository"
	"github.com/lmt-transport/LMT-Driver-App/pkg/jwt"
	"github.com/lmt-transport/LMT-Driver-App/pkg/redis"
)

// Service bundles every business service for injection into the handlers.
type Service struct {
	Auth      AuthService
	Dashboard DashboardService
	Job       JobService
	Export    ExportService
	Notify    NotifyService
}

// NewService wires the service layer over its infrastructure.
func NewService(
	repo *repository.Repository,
	store *cache.Store,
	n notifier.Notifier,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	cfg *config.Config,
	logger *zap.Logger,
) *Service {
	notify := NewNotifyService(repo, n, cfg.Notify, logger, nil)
	return &Service{
		Auth:      NewAuthService(store, jwtMgr, rdb, logger),
		Dashboard: NewDashboardService(store, logger, nil),
		Job:       NewJobService(repo, store, notify, logger, nil),
		Export:    NewExportService(store, logger),
		Notify:    notify,
	}
}
