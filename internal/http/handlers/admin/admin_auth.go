package admin

import (
	"errors"
	"time"

	"github.com/delicute/delicute-api/internal/http/response"
	"github.com/delicute/delicute-api/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminLoginRequest 管理员登录请求
type AdminLoginRequest struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required"`
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// AdminPasswordRequest 管理员改密请求
type AdminPasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// AdminLogin 管理员登录
// 开启图片验证码后需先通过验证码校验。
func (h *Handler) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	if h.CaptchaService.Enabled() {
		if err := h.CaptchaService.Verify(req.CaptchaID, req.CaptchaCode); err != nil {
			switch {
			case errors.Is(err, service.ErrCaptchaRequired):
				respondError(c, response.CodeBadRequest, "Captcha is required", nil)
			case errors.Is(err, service.ErrCaptchaInvalid):
				respondError(c, response.CodeBadRequest, "Captcha is incorrect", nil)
			default:
				respondError(c, response.CodeInternal, "Captcha verification failed", err)
			}
			return
		}
	}

	admin, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, msg: "Invalid username or password"},
		}, response.CodeInternal, "Login failed")
		return
	}

	response.Success(c, gin.H{
		"admin": gin.H{
			"id":       admin.ID,
			"username": admin.Username,
			"is_super": admin.IsSuper,
		},
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}

// GetAdminProfile 获取当前管理员信息
func (h *Handler) GetAdminProfile(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	admin, err := h.AuthService.GetAdminByID(adminID)
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrNotFound, code: response.CodeNotFound, msg: "Admin not found"},
		}, response.CodeInternal, "Failed to load admin")
		return
	}

	roles, err := h.AuthzService.GetAdminRoles(admin.ID)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load admin roles", err)
		return
	}
	response.Success(c, gin.H{
		"id":       admin.ID,
		"username": admin.Username,
		"is_super": admin.IsSuper,
		"roles":    roles,
	})
}

// ChangeAdminPassword 修改当前管理员密码
func (h *Handler) ChangeAdminPassword(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	var req AdminPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	if err := h.AuthService.ChangePassword(adminID, req.OldPassword, req.NewPassword); err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrInvalidPassword, code: response.CodeBadRequest, msg: "Current password is incorrect"},
			{target: service.ErrWeakPassword, code: response.CodeBadRequest, msg: "Password does not meet the policy"},
			{target: service.ErrNotFound, code: response.CodeNotFound, msg: "Admin not found"},
		}, response.CodeInternal, "Failed to change password")
		return
	}
	response.Success(c, gin.H{"changed": true})
}
