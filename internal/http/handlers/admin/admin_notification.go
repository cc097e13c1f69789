package admin

import (
	"strconv"
	"strings"

	"github.com/delicute/delicute-api/internal/http/response"
	"github.com/delicute/delicute-api/internal/repository"
	"github.com/delicute/delicute-api/internal/service"

	"github.com/gin-gonic/gin"
)

// NotificationRequest 推送通知创建请求
type NotificationRequest struct {
	Title    string `json:"title" binding:"required"`
	Body     string `json:"body"`
	ImageURL string `json:"image_url"`
	Audience string `json:"audience"`
	UserID   uint   `json:"user_id"`
}

var notificationErrorRules = []mappedHandlerError{
	{target: service.ErrNotificationInvalid, code: response.CodeBadRequest, msg: "Notification definition is invalid"},
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "Notification not found"},
}

// CreateNotification 创建通知并投递发送任务
func (h *Handler) CreateNotification(c *gin.Context) {
	var req NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	notification, err := h.NotificationService.Create(service.NotificationInput{
		Title:    req.Title,
		Body:     req.Body,
		ImageURL: req.ImageURL,
		Audience: req.Audience,
		UserID:   req.UserID,
	})
	if err != nil {
		respondWithMappedError(c, err, notificationErrorRules, response.CodeInternal, "Failed to create notification")
		return
	}
	response.Success(c, notification)
}

// GetAdminNotifications 获取通知列表
func (h *Handler) GetAdminNotifications(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	notifications, total, err := h.NotificationService.List(repository.NotificationListFilter{
		Audience: strings.TrimSpace(c.Query("audience")),
		Status:   strings.TrimSpace(c.Query("status")),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load notifications", err)
		return
	}
	response.SuccessWithPage(c, notifications, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetAdminNotification 获取单条通知
func (h *Handler) GetAdminNotification(c *gin.Context) {
	notificationID, ok := parseIDParam(c)
	if !ok {
		return
	}
	notification, err := h.NotificationService.GetByID(notificationID)
	if err != nil {
		respondWithMappedError(c, err, notificationErrorRules, response.CodeInternal, "Failed to load notification")
		return
	}
	response.Success(c, notification)
}
