package router

import (
	"fmt"
	"strings"

	"github.com/delicute/delicute-api/internal/cache"
	"github.com/delicute/delicute-api/internal/config"
	adminhandlers "github.com/delicute/delicute-api/internal/http/handlers/admin"
	publichandlers "github.com/delicute/delicute-api/internal/http/handlers/public"
	"github.com/delicute/delicute-api/internal/logger"
	"github.com/delicute/delicute-api/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "dlc"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（上传的图片）
	r.Static("/uploads", "./uploads")

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/config", publicHandler.GetConfig)
			public.GET("/menu", publicHandler.GetMenu)
			public.GET("/menu/:id", publicHandler.GetMenuItem)
			public.GET("/categories", publicHandler.GetCategories)
			public.GET("/banners", publicHandler.GetBanners)
			public.GET("/available-coupons", publicHandler.GetActiveCoupons)
			public.GET("/captcha/image", publicHandler.GetCaptcha)
		}

		// 顾客认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
		}

		// 顾客接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetUserProfile)
			user.PUT("/me/profile", publicHandler.UpdateUserProfile)
			user.PUT("/me/password", publicHandler.ChangeUserPassword)

			user.GET("/cart", publicHandler.GetCart)
			user.PUT("/cart/items", publicHandler.UpsertCartItem)
			user.DELETE("/cart/items/:menu_item_id", publicHandler.DeleteCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)

			user.POST("/available-coupons/validate", publicHandler.ValidateCoupon)

			user.POST("/orders", publicHandler.CreateOrder)
			user.GET("/orders", publicHandler.GetUserOrders)
			user.GET("/orders/:id", publicHandler.GetUserOrder)
			user.POST("/orders/:id/cancel", publicHandler.CancelUserOrder)
			user.POST("/orders/:id/pay", publicHandler.CreateOrderPayment)
			user.GET("/orders/:id/payment", publicHandler.GetOrderPayment)
			user.POST("/orders/:id/payment/sync", publicHandler.SyncOrderPayment)

			user.POST("/devices", publicHandler.RegisterDevice)
			user.DELETE("/devices/:token", publicHandler.UnregisterDevice)
			user.GET("/devices", publicHandler.ListDevices)
		}

		// 支付回调（微信服务器调用，无鉴权）
		apiV1.POST("/payments/wechat/callback", publicHandler.WechatPayCallback)

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.AdminLogin)

			// 需要鉴权的接口
			authorized := admin.Use(AdminJWTMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				authorized.GET("/me", adminHandler.GetAdminProfile)
				authorized.PUT("/password", adminHandler.ChangeAdminPassword)

				// 仪表盘
				authorized.GET("/dashboard/overview", adminHandler.GetDashboardOverview)
				authorized.GET("/dashboard/trends", adminHandler.GetDashboardTrends)
				authorized.GET("/dashboard/top-menu-items", adminHandler.GetDashboardTopMenuItems)

				// 菜单管理
				authorized.GET("/menu-items", adminHandler.GetAdminMenuItems)
				authorized.POST("/menu-items", adminHandler.CreateMenuItem)
				authorized.PUT("/menu-items/:id", adminHandler.UpdateMenuItem)
				authorized.DELETE("/menu-items/:id", adminHandler.DeleteMenuItem)
				authorized.PATCH("/menu-items/:id/availability", adminHandler.SetMenuItemAvailability)

				// 分类管理
				authorized.GET("/categories", adminHandler.GetAdminCategories)
				authorized.POST("/categories", adminHandler.CreateCategory)
				authorized.PUT("/categories/:id", adminHandler.UpdateCategory)
				authorized.DELETE("/categories/:id", adminHandler.DeleteCategory)

				// 优惠券管理
				authorized.GET("/coupons", adminHandler.GetAdminCoupons)
				authorized.GET("/coupons/:id", adminHandler.GetAdminCoupon)
				authorized.POST("/coupons", adminHandler.CreateCoupon)
				authorized.PUT("/coupons/:id", adminHandler.UpdateCoupon)
				authorized.DELETE("/coupons/:id", adminHandler.DeleteCoupon)

				// Banner 管理
				authorized.GET("/banners", adminHandler.GetAdminBanners)
				authorized.POST("/banners", adminHandler.CreateBanner)
				authorized.PUT("/banners/:id", adminHandler.UpdateBanner)
				authorized.DELETE("/banners/:id", adminHandler.DeleteBanner)

				// 订单管理
				authorized.GET("/orders", adminHandler.GetAdminOrders)
				authorized.GET("/orders/:id", adminHandler.GetAdminOrder)
				authorized.PATCH("/orders/:id/status", adminHandler.UpdateOrderStatus)

				// 用户管理
				authorized.GET("/users", adminHandler.GetAdminUsers)
				authorized.GET("/users/:id", adminHandler.GetAdminUser)
				authorized.PATCH("/users/:id/status", adminHandler.SetUserStatus)

				// 设置管理
				authorized.GET("/settings/:key", adminHandler.GetSetting)
				authorized.PUT("/settings/:key", adminHandler.UpdateSetting)
				authorized.POST("/settings/smtp/test", adminHandler.SendTestEmail)

				// 推送通知
				authorized.POST("/notifications", adminHandler.CreateNotification)
				authorized.GET("/notifications", adminHandler.GetAdminNotifications)
				authorized.GET("/notifications/:id", adminHandler.GetAdminNotification)

				// 权限管理
				authorized.GET("/authz/roles", adminHandler.GetRoles)
				authorized.POST("/authz/roles", adminHandler.CreateRole)
				authorized.DELETE("/authz/roles/:role", adminHandler.DeleteRole)
				authorized.GET("/authz/roles/:role/policies", adminHandler.GetRolePolicies)
				authorized.POST("/authz/roles/:role/policies", adminHandler.GrantRolePolicy)
				authorized.DELETE("/authz/roles/:role/policies", adminHandler.RevokeRolePolicy)
				authorized.GET("/authz/admins/:id/roles", adminHandler.GetAdminRoles)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAdminRoles)

				// 文件上传
				authorized.POST("/upload", adminHandler.UploadFile)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
