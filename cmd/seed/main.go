package main

import (
	"fmt"
	"time"

	"github.com/delicute/delicute-api/internal/config"
	"github.com/delicute/delicute-api/internal/constants"
	"github.com/delicute/delicute-api/internal/logger"
	"github.com/delicute/delicute-api/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Name: "Pizza", SortOrder: 300, IsActive: true},
		{Name: "Burgers", SortOrder: 280, IsActive: true},
		{Name: "Salads", SortOrder: 260, IsActive: true},
		{Name: "Drinks", SortOrder: 240, IsActive: true},
		{Name: "Desserts", SortOrder: 220, IsActive: true},
	}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("name = ?", cat.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Name, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Name)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Name)
		}
	}

	// 添加菜品
	menuItems := []models.MenuItem{
		{
			Name:        "Margherita Pizza",
			Description: "Tomato, fresh mozzarella and basil on a thin crust",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(12.90)),
			Category:    "Pizza",
			ImageURL:    "https://images.unsplash.com/photo-1574071318508-1cdbab80d002?w=800",
			IsAvailable: true,
		},
		{
			Name:        "Pepperoni Pizza",
			Description: "Loaded pepperoni with extra mozzarella",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(14.50)),
			Category:    "Pizza",
			ImageURL:    "https://images.unsplash.com/photo-1628840042765-356cda07504e?w=800",
			IsAvailable: true,
		},
		{
			Name:        "Classic Cheeseburger",
			Description: "Beef patty, cheddar, lettuce and house sauce",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(10.90)),
			Category:    "Burgers",
			ImageURL:    "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?w=800",
			IsAvailable: true,
		},
		{
			Name:        "Double Bacon Burger",
			Description: "Two patties, crispy bacon and smoked cheese",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(13.90)),
			Category:    "Burgers",
			ImageURL:    "https://images.unsplash.com/photo-1553979459-d2229ba7433b?w=800",
			IsAvailable: true,
		},
		{
			Name:        "Caesar Salad",
			Description: "Romaine, parmesan, croutons and caesar dressing",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(8.50)),
			Category:    "Salads",
			ImageURL:    "https://images.unsplash.com/photo-1550304943-4f24f54ddde9?w=800",
			IsAvailable: true,
		},
		{
			Name:        "Fresh Lemonade",
			Description: "House-made with fresh lemons and mint",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(3.90)),
			Category:    "Drinks",
			ImageURL:    "https://images.unsplash.com/photo-1621263764928-df1444c5e859?w=800",
			IsAvailable: true,
		},
		{
			Name:        "Tiramisu",
			Description: "Classic Italian dessert with mascarpone",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(6.50)),
			Category:    "Desserts",
			ImageURL:    "https://images.unsplash.com/photo-1571877227200-a0d98ea607e9?w=800",
			IsAvailable: true,
		},
		{
			Name:        "Seasonal Special (Sold Out Demo)",
			Description: "Used to demo the unavailable badge in the app",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(9.90)),
			Category:    "Salads",
			ImageURL:    "https://images.unsplash.com/photo-1512621776951-a57141f2eefd?w=800",
			IsAvailable: false,
		},
	}
	for _, item := range menuItems {
		var existing models.MenuItem
		if err := models.DB.Where("name = ?", item.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&item).Error; err != nil {
				stdLog.Printf("Failed to create menu item %s: %v", item.Name, err)
			} else {
				stdLog.Printf("Created menu item: %s", item.Name)
			}
		} else {
			existing.Description = item.Description
			existing.Price = item.Price
			existing.Category = item.Category
			existing.ImageURL = item.ImageURL
			existing.IsAvailable = item.IsAvailable
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update menu item %s: %v", item.Name, err)
			} else {
				stdLog.Printf("Updated menu item: %s", item.Name)
			}
		}
	}

	// 添加优惠券
	now := time.Now()
	weekStart := now.Add(-24 * time.Hour)
	weekEnd := now.AddDate(0, 0, 7)
	monthEnd := now.AddDate(0, 1, 0)

	coupons := []models.Coupon{
		{
			Code:        "WELCOME10",
			Type:        constants.CouponTypeFirstOrder,
			Description: "10% off your first order",
			Value:       models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
			IsActive:    true,
		},
		{
			Code:        "PIZZA3",
			Type:        constants.CouponTypeBuyX,
			Description: "15% off when ordering 3 or more pizzas",
			Value:       models.NewMoneyFromDecimal(decimal.NewFromInt(15)),
			MinQty:      3,
			Category:    "Pizza",
			IsActive:    true,
		},
		{
			Code:        "SAVE20",
			Type:        constants.CouponTypePercent,
			Description: "20% off the whole cart",
			Value:       models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
			StartDate:   &weekStart,
			EndDate:     &monthEnd,
			IsActive:    true,
		},
		{
			Code:        "FLASHWEEK",
			Type:        constants.CouponTypeDateRange,
			Description: "Flash week: 25% off, this week only",
			Value:       models.NewMoneyFromDecimal(decimal.NewFromInt(25)),
			StartDate:   &weekStart,
			EndDate:     &weekEnd,
			IsActive:    true,
		},
	}
	for _, coupon := range coupons {
		var existing models.Coupon
		if err := models.DB.Where("code = ?", coupon.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&coupon).Error; err != nil {
				stdLog.Printf("Failed to create coupon %s: %v", coupon.Code, err)
			} else {
				stdLog.Printf("Created coupon: %s", coupon.Code)
			}
		} else {
			existing.Type = coupon.Type
			existing.Description = coupon.Description
			existing.Value = coupon.Value
			existing.MinQty = coupon.MinQty
			existing.Category = coupon.Category
			existing.StartDate = coupon.StartDate
			existing.EndDate = coupon.EndDate
			existing.IsActive = coupon.IsActive
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update coupon %s: %v", coupon.Code, err)
			} else {
				stdLog.Printf("Updated coupon: %s", coupon.Code)
			}
		}
	}

	// 添加 Banner
	heroStart := now.Add(-12 * time.Hour)
	heroEnd := now.AddDate(0, 2, 0)
	banners := []models.Banner{
		{
			Name:      "home-flash-week",
			Title:     "Flash Week",
			Subtitle:  "25% off everything with code FLASHWEEK",
			Image:     "https://images.unsplash.com/photo-1504674900247-0877df9cc836?w=1600",
			LinkURL:   "/menu",
			SortOrder: 300,
			IsActive:  true,
			StartAt:   &heroStart,
			EndAt:     &weekEnd,
		},
		{
			Name:      "home-new-menu",
			Title:     "New Spring Menu",
			Subtitle:  "Fresh salads and seasonal pizzas just landed",
			Image:     "https://images.unsplash.com/photo-1414235077428-338989a2e8c0?w=1600",
			LinkURL:   "/menu?category=Salads",
			SortOrder: 280,
			IsActive:  true,
			StartAt:   &heroStart,
			EndAt:     &heroEnd,
		},
	}
	for _, banner := range banners {
		var existing models.Banner
		if err := models.DB.Where("name = ?", banner.Name).First(&existing).Error; err != nil {
			if err := models.DB.Select("*").Create(&banner).Error; err != nil {
				stdLog.Printf("Failed to create banner %s: %v", banner.Name, err)
			} else {
				stdLog.Printf("Created banner: %s", banner.Name)
			}
		} else {
			existing.Title = banner.Title
			existing.Subtitle = banner.Subtitle
			existing.Image = banner.Image
			existing.LinkURL = banner.LinkURL
			existing.SortOrder = banner.SortOrder
			existing.IsActive = banner.IsActive
			existing.StartAt = banner.StartAt
			existing.EndAt = banner.EndAt
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update banner %s: %v", banner.Name, err)
			} else {
				stdLog.Printf("Updated banner: %s", banner.Name)
			}
		}
	}

	// 更新网站配置
	siteConfig := map[string]interface{}{
		"name":     "Delicute",
		"currency": "USD",
		"contact": map[string]string{
			"phone":    "+1-555-0100",
			"email":    "hello@delicute.example",
			"whatsapp": "https://wa.me/15550100",
		},
	}
	var setting models.Setting
	if err := models.DB.Where("key = ?", constants.SettingKeySiteConfig).First(&setting).Error; err != nil {
		setting = models.Setting{
			Key:       constants.SettingKeySiteConfig,
			ValueJSON: models.JSON(siteConfig),
		}
		if err := models.DB.Create(&setting).Error; err != nil {
			stdLog.Printf("Failed to create site config: %v", err)
		} else {
			stdLog.Println("Created site config")
		}
	} else {
		setting.ValueJSON = models.JSON(siteConfig)
		if err := models.DB.Save(&setting).Error; err != nil {
			stdLog.Printf("Failed to update site config: %v", err)
		} else {
			stdLog.Println("Updated site config")
		}
	}

	fmt.Println("\nSeed data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 5 Categories")
	fmt.Println("- 8 Menu items (incl. one unavailable demo)")
	fmt.Println("- 4 Coupons (PERCENT / BUY_X / FIRST_ORDER / DATE_RANGE)")
	fmt.Println("- 2 Banners")
	fmt.Println("- Site configuration")
}
