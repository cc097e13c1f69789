package service

import (
	"strings"
	"time"

	"github.com/delicute/delicute-api/internal/constants"
	"github.com/delicute/delicute-api/internal/models"
	"github.com/delicute/delicute-api/internal/pricing"
	"github.com/delicute/delicute-api/internal/repository"

	"github.com/shopspring/decimal"
)

// defaultDeliveryFee 未配置配送费时的兜底值
var defaultDeliveryFee = decimal.RequireFromString("5.00")

// PricingService 购物车计价服务
// 报价与券校验共用同一条引擎路径，资格、折扣与总价全部由 pricing 包计算。
type PricingService struct {
	cartRepo       repository.CartRepository
	couponRepo     repository.CouponRepository
	orderRepo      repository.OrderRepository
	settingService *SettingService

	now func() time.Time
}

// NewPricingService 创建计价服务
func NewPricingService(
	cartRepo repository.CartRepository,
	couponRepo repository.CouponRepository,
	orderRepo repository.OrderRepository,
	settingService *SettingService,
) *PricingService {
	return &PricingService{
		cartRepo:       cartRepo,
		couponRepo:     couponRepo,
		orderRepo:      orderRepo,
		settingService: settingService,
		now:            time.Now,
	}
}

// QuoteItem 报价中的购物车行
type QuoteItem struct {
	MenuItemID uint         `json:"menu_item_id"`
	Name       string       `json:"name"`
	Category   string       `json:"category"`
	ImageURL   string       `json:"image_url"`
	Price      models.Money `json:"price"`
	Quantity   int          `json:"quantity"`
	LineTotal  models.Money `json:"line_total"`
}

// CouponCheck 券校验结果
// 不合格不是错误：Valid=false 且 Message 说明原因。
type CouponCheck struct {
	Valid       bool         `json:"valid"`
	Message     string       `json:"message,omitempty"`
	Code        string       `json:"code"`
	Description string       `json:"description,omitempty"`
	Discount    models.Money `json:"discount"`
}

// CartQuote 购物车报价
type CartQuote struct {
	Items       []QuoteItem  `json:"items"`
	ItemCount   int          `json:"item_count"`
	Subtotal    models.Money `json:"subtotal"`
	Discount    models.Money `json:"discount"`
	DeliveryFee models.Money `json:"delivery_fee"`
	Total       models.Money `json:"total"`
	Coupon      *CouponCheck `json:"coupon,omitempty"`
}

// ValidateItemInput 券校验时调用方自带的购物车行快照（仅分类与数量）
type ValidateItemInput struct {
	Category string
	Quantity int
}

type quoteBasis struct {
	items    []QuoteItem
	subtotal decimal.Decimal
	agg      pricing.Aggregate
}

// QuoteCart 对用户当前购物车报价，可选应用优惠码
// 优惠码不合格时仍返回完整报价，折扣计为 0。
func (s *PricingService) QuoteCart(userID uint, couponCode string) (*CartQuote, error) {
	basis, err := s.basisFromCart(userID)
	if err != nil {
		return nil, err
	}

	var check *CouponCheck
	discount := decimal.Zero
	if strings.TrimSpace(couponCode) != "" {
		check, err = s.checkCoupon(userID, couponCode, basis.subtotal, basis.agg)
		if err != nil {
			return nil, err
		}
		if check.Valid {
			discount = check.Discount.Decimal
		}
	}

	deliveryFee, err := s.settingService.GetDeliveryFee(defaultDeliveryFee)
	if err != nil {
		return nil, err
	}

	total := pricing.Total(basis.subtotal, discount, deliveryFee, basis.agg.TotalQty)
	quote := &CartQuote{
		Items:       basis.items,
		ItemCount:   basis.agg.TotalQty,
		Subtotal:    models.NewMoneyFromDecimal(pricing.Round2(basis.subtotal)),
		Discount:    models.NewMoneyFromDecimal(discount),
		DeliveryFee: models.NewMoneyFromDecimal(decimal.Zero),
		Total:       models.NewMoneyFromDecimal(total),
		Coupon:      check,
	}
	if basis.agg.TotalQty > 0 {
		quote.DeliveryFee = models.NewMoneyFromDecimal(pricing.Round2(deliveryFee))
	}
	return quote, nil
}

// ValidateCoupon 校验优惠码资格
// items 为空时以用户持久化购物车为准。
func (s *PricingService) ValidateCoupon(userID uint, code string, items []ValidateItemInput) (*CouponCheck, error) {
	if strings.TrimSpace(code) == "" {
		return nil, ErrCouponInvalid
	}

	var basis *quoteBasis
	var err error
	if len(items) > 0 {
		basis = basisFromSnapshot(items)
	} else {
		basis, err = s.basisFromCart(userID)
		if err != nil {
			return nil, err
		}
	}
	return s.checkCoupon(userID, code, basis.subtotal, basis.agg)
}

func (s *PricingService) basisFromCart(userID uint) (*quoteBasis, error) {
	cartItems, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	basis := &quoteBasis{items: make([]QuoteItem, 0, len(cartItems))}
	lines := make([]pricing.Line, 0, len(cartItems))
	subtotal := decimal.Zero
	for _, item := range cartItems {
		if item.MenuItem == nil || !item.MenuItem.IsAvailable || item.Quantity <= 0 {
			continue
		}
		lineTotal := item.MenuItem.Price.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		basis.items = append(basis.items, QuoteItem{
			MenuItemID: item.MenuItemID,
			Name:       item.MenuItem.Name,
			Category:   pricing.NormalizeCategory(item.MenuItem.Category),
			ImageURL:   item.MenuItem.ImageURL,
			Price:      item.MenuItem.Price,
			Quantity:   item.Quantity,
			LineTotal:  models.NewMoneyFromDecimal(pricing.Round2(lineTotal)),
		})
		lines = append(lines, pricing.Line{Category: item.MenuItem.Category, Quantity: item.Quantity})
	}
	basis.subtotal = subtotal
	basis.agg = pricing.AggregateLines(lines)
	return basis, nil
}

// basisFromSnapshot 以调用方提供的分类/数量快照聚合
// 快照不含价格，小计按 0 处理：资格判定只依赖数量聚合与订单历史。
func basisFromSnapshot(items []ValidateItemInput) *quoteBasis {
	lines := make([]pricing.Line, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		lines = append(lines, pricing.Line{Category: item.Category, Quantity: item.Quantity})
	}
	return &quoteBasis{
		subtotal: decimal.Zero,
		agg:      pricing.AggregateLines(lines),
	}
}

func (s *PricingService) checkCoupon(userID uint, rawCode string, subtotal decimal.Decimal, agg pricing.Aggregate) (*CouponCheck, error) {
	code := pricing.NormalizeCode(rawCode)
	coupon, err := s.couponRepo.GetActiveByCode(code)
	if err != nil {
		return nil, err
	}

	engineCoupon := toEngineCoupon(coupon)
	status := pricing.ResolveWindow(engineCoupon, s.now())
	if status != pricing.WindowActive {
		return &CouponCheck{Valid: false, Message: status.Message(), Code: code}, nil
	}

	facts := pricing.Facts{Subtotal: subtotal, Cart: agg}
	if pricing.NormalizeType(coupon.Type) == constants.CouponTypeFirstOrder && userID != 0 {
		completed, err := s.orderRepo.CountCompletedByUser(userID)
		if err != nil {
			return nil, err
		}
		facts.CompletedOrders = completed
	}

	eval := pricing.Evaluate(*engineCoupon, facts)
	if !eval.Valid {
		return &CouponCheck{Valid: false, Message: eval.Message, Code: code}, nil
	}
	return &CouponCheck{
		Valid:       true,
		Code:        code,
		Description: coupon.Description,
		Discount:    models.NewMoneyFromDecimal(eval.Discount),
	}, nil
}

func toEngineCoupon(c *models.Coupon) *pricing.Coupon {
	if c == nil {
		return nil
	}
	return &pricing.Coupon{
		Code:        c.Code,
		Type:        c.Type,
		Description: c.Description,
		Value:       c.Value.Decimal,
		MinQty:      c.MinQty,
		Category:    c.Category,
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
	}
}
