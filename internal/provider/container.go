package provider

import (
	"strconv"
	"strings"

	"github.com/delicute/delicute-api/internal/authz"
	"github.com/delicute/delicute-api/internal/cache"
	"github.com/delicute/delicute-api/internal/config"
	"github.com/delicute/delicute-api/internal/constants"
	"github.com/delicute/delicute-api/internal/logger"
	"github.com/delicute/delicute-api/internal/models"
	"github.com/delicute/delicute-api/internal/push"
	"github.com/delicute/delicute-api/internal/queue"
	"github.com/delicute/delicute-api/internal/repository"
	"github.com/delicute/delicute-api/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo        repository.AdminRepository
	UserRepo         repository.UserRepository
	MenuItemRepo     repository.MenuItemRepository
	CategoryRepo     repository.CategoryRepository
	CouponRepo       repository.CouponRepository
	CartRepo         repository.CartRepository
	OrderRepo        repository.OrderRepository
	PaymentRepo      repository.PaymentRepository
	BannerRepo       repository.BannerRepository
	SettingRepo      repository.SettingRepository
	NotificationRepo repository.NotificationRepository
	DeviceRepo       repository.DeviceRepository
	DashboardRepo    repository.DashboardRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	UserAuthService     *service.UserAuthService
	EmailService        *service.EmailService
	CaptchaService      *service.CaptchaService
	UploadService       *service.UploadService
	MenuService         *service.MenuService
	CategoryService     *service.CategoryService
	SettingService      *service.SettingService
	CartService         *service.CartService
	PricingService      *service.PricingService
	OrderService        *service.OrderService
	CouponAdminService  *service.CouponAdminService
	BannerService       *service.BannerService
	PaymentService      *service.PaymentService
	NotificationService *service.NotificationService
	DashboardService    *service.DashboardService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
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

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.MenuItemRepo = repository.NewMenuItemRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.CouponRepo = repository.NewCouponRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.PaymentRepo = repository.NewPaymentRepository(db)
	c.BannerRepo = repository.NewBannerRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
	c.NotificationRepo = repository.NewNotificationRepository(db)
	c.DeviceRepo = repository.NewDeviceRepository(db)
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

	c.SettingService = service.NewSettingService(c.SettingRepo)
	c.Config.Email = c.resolveEmailConfig()

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.UploadService = service.NewUploadService(c.Config)
	c.MenuService = service.NewMenuService(c.MenuItemRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo, c.MenuItemRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.MenuItemRepo)
	c.PricingService = service.NewPricingService(c.CartRepo, c.CouponRepo, c.OrderRepo, c.SettingService)
	c.OrderService = service.NewOrderService(models.DB, c.Config, c.OrderRepo, c.CartRepo, c.UserRepo, c.PricingService, c.SettingService, c.EmailService, c.QueueClient)
	c.CouponAdminService = service.NewCouponAdminService(c.CouponRepo)
	c.BannerService = service.NewBannerService(c.BannerRepo)
	c.PaymentService = service.NewPaymentService(c.PaymentRepo, c.OrderRepo, c.SettingService, c.OrderService)
	c.NotificationService = service.NewNotificationService(c.NotificationRepo, c.DeviceRepo, c.UserRepo, push.NewClient(&c.Config.Push), c.QueueClient)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo)
}

// ReloadEmailConfig 重新读取 SMTP 设置并热更新邮件服务
func (c *Container) ReloadEmailConfig() {
	c.Config.Email = c.resolveEmailConfig()
	if c.EmailService != nil {
		c.EmailService.SetConfig(&c.Config.Email)
	}
}

// resolveEmailConfig 以配置文件为底，合并数据库里的 SMTP 覆盖项
func (c *Container) resolveEmailConfig() config.EmailConfig {
	resolved := c.Config.Email
	value, err := c.SettingService.GetByKey(constants.SettingKeySMTP)
	if err != nil {
		logger.Warnw("provider_load_smtp_setting_failed", "error", err)
		return resolved
	}
	if value == nil {
		return resolved
	}

	if v, ok := readSettingBool(value, "enabled"); ok {
		resolved.Enabled = v
	}
	if v, ok := readSettingString(value, "host"); ok {
		resolved.Host = v
	}
	if v, ok := readSettingInt(value, "port"); ok {
		resolved.Port = v
	}
	if v, ok := readSettingString(value, "username"); ok {
		resolved.Username = v
	}
	if v, ok := readSettingString(value, "password"); ok {
		resolved.Password = v
	}
	if v, ok := readSettingString(value, "from"); ok {
		resolved.From = v
	}
	if v, ok := readSettingString(value, "from_name"); ok {
		resolved.FromName = v
	}
	if v, ok := readSettingBool(value, "use_tls"); ok {
		resolved.UseTLS = v
	}
	if v, ok := readSettingBool(value, "use_ssl"); ok {
		resolved.UseSSL = v
	}
	return resolved
}

func readSettingString(raw map[string]interface{}, key string) (string, bool) {
	value, ok := raw[key]
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(s), true
}

func readSettingBool(raw map[string]interface{}, key string) (bool, bool) {
	value, ok := raw[key]
	if !ok {
		return false, false
	}
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, false
		}
		return parsed, true
	default:
		return false, false
	}
}

func readSettingInt(raw map[string]interface{}, key string) (int, bool) {
	value, ok := raw[key]
	if !ok {
		return 0, false
	}
	switch v := value.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
