package provider

import (
	"github.com/sanjose-despensas/backend/internal/authz"
	"github.com/sanjose-despensas/backend/internal/cache"
	"github.com/sanjose-despensas/backend/internal/config"
	"github.com/sanjose-despensas/backend/internal/logger"
	"github.com/sanjose-despensas/backend/internal/models"
	"github.com/sanjose-despensas/backend/internal/queue"
	"github.com/sanjose-despensas/backend/internal/repository"
	"github.com/sanjose-despensas/backend/internal/service"
)

// Container holds every shared dependency. Handlers and the worker embed
// it instead of wiring repositories themselves.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo      repository.UserRepository
	BranchRepo    repository.BranchRepository
	MemberRepo    repository.MemberRepository
	DeliveryRepo  repository.DeliveryRepository
	WarehouseRepo repository.WarehouseRepository
	DashboardRepo repository.DashboardRepository

	// Services
	AuthzService     *authz.Service
	AuthService      *service.AuthService
	CaptchaService   *service.CaptchaService
	StockService     *service.StockService
	MemberService    *service.MemberService
	DeliveryService  *service.DeliveryService
	DashboardService *service.DashboardService
}

// NewContainer builds the container against the global database.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.BranchRepo = repository.NewBranchRepository(db)
	c.MemberRepo = repository.NewMemberRepository(db)
	c.DeliveryRepo = repository.NewDeliveryRepository(db)
	c.WarehouseRepo = repository.NewWarehouseRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.StockService = service.NewStockService(c.BranchRepo, c.WarehouseRepo, c.Config.Inventory.InitialWarehouseStock)
	c.MemberService = service.NewMemberService(c.MemberRepo, c.DeliveryRepo)
	c.DeliveryService = service.NewDeliveryService(c.MemberRepo, c.BranchRepo, c.DeliveryRepo)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo)
}
