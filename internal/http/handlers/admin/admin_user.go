package admin

import (
	"strconv"
	"strings"

	"github.com/delicute/delicute-api/internal/http/response"
	"github.com/delicute/delicute-api/internal/repository"
	"github.com/delicute/delicute-api/internal/service"

	"github.com/gin-gonic/gin"
)

// UserStatusRequest 顾客账号状态请求
type UserStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

var adminUserErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "User not found"},
	{target: service.ErrUserStatusInvalid, code: response.CodeBadRequest, msg: "User status is invalid"},
}

// GetAdminUsers 获取顾客账号列表
func (h *Handler) GetAdminUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	users, total, err := h.UserRepo.List(repository.UserListFilter{
		Email:    strings.TrimSpace(c.Query("email")),
		Status:   strings.TrimSpace(c.Query("status")),
		Keyword:  strings.TrimSpace(c.Query("search")),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load users", err)
		return
	}
	response.SuccessWithPage(c, users, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetAdminUser 获取单个顾客账号
func (h *Handler) GetAdminUser(c *gin.Context) {
	userID, ok := parseIDParam(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetUserByID(userID)
	if err != nil {
		respondWithMappedError(c, err, adminUserErrorRules, response.CodeInternal, "Failed to load user")
		return
	}
	if user == nil {
		respondError(c, response.CodeNotFound, "User not found", nil)
		return
	}
	response.Success(c, user)
}

// SetUserStatus 启用/停用顾客账号
func (h *Handler) SetUserStatus(c *gin.Context) {
	userID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.UserAuthService.SetStatus(userID, req.Status)
	if err != nil {
		respondWithMappedError(c, err, adminUserErrorRules, response.CodeInternal, "Failed to update user status")
		return
	}
	response.Success(c, user)
}
