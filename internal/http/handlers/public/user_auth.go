package public

import (
	"time"

	"github.com/delicute/delicute-api/internal/http/response"
	"github.com/delicute/delicute-api/internal/models"
	"github.com/delicute/delicute-api/internal/service"

	"github.com/gin-gonic/gin"
)

// UserRegisterRequest 注册请求
type UserRegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

// UserLoginRequest 登录请求
type UserLoginRequest struct {
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// UserProfileRequest 资料更新请求
type UserProfileRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// UserPasswordRequest 改密请求
type UserPasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

var userRegisterErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, msg: "Email address is invalid"},
	{target: service.ErrEmailExists, code: response.CodeBadRequest, msg: "Email already registered"},
	{target: service.ErrWeakPassword, code: response.CodeBadRequest, msg: "Password does not meet the policy"},
}

var userLoginErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, msg: "Invalid email or password"},
	{target: service.ErrUserDisabled, code: response.CodeForbidden, msg: "Account is disabled"},
}

var userPasswordErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidPassword, code: response.CodeBadRequest, msg: "Current password is incorrect"},
	{target: service.ErrWeakPassword, code: response.CodeBadRequest, msg: "Password does not meet the policy"},
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "User not found"},
}

func userView(user *models.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"name":       user.Name,
		"phone":      user.Phone,
		"status":     user.Status,
		"created_at": user.CreatedAt,
	}
}

func authPayload(user *models.User, token string, expiresAt time.Time) gin.H {
	return gin.H{
		"user":       userView(user),
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
	}
}

// UserRegister 用户注册
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Register(req.Email, req.Password, req.Name, req.Phone)
	if err != nil {
		respondWithMappedError(c, err, userRegisterErrorRules, response.CodeInternal, "Registration failed")
		return
	}
	response.Success(c, authPayload(user, token, expiresAt))
}

// UserLogin 用户登录
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Login(req.Email, req.Password, req.RememberMe)
	if err != nil {
		respondWithMappedError(c, err, userLoginErrorRules, response.CodeInternal, "Login failed")
		return
	}
	response.Success(c, authPayload(user, token, expiresAt))
}

// GetUserProfile 获取当前用户资料
func (h *Handler) GetUserProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	user, err := h.UserAuthService.GetUserByID(uid)
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrNotFound, code: response.CodeNotFound, msg: "User not found"},
		}, response.CodeInternal, "Failed to load profile")
		return
	}
	response.Success(c, userView(user))
}

// UpdateUserProfile 更新当前用户资料
func (h *Handler) UpdateUserProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req UserProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.UserAuthService.UpdateProfile(uid, req.Name, req.Phone)
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrProfileEmpty, code: response.CodeBadRequest, msg: "Nothing to update"},
			{target: service.ErrNotFound, code: response.CodeNotFound, msg: "User not found"},
		}, response.CodeInternal, "Failed to update profile")
		return
	}
	response.Success(c, userView(user))
}

// ChangeUserPassword 修改当前用户密码
// 改密后旧 Token 全部失效，客户端需要重新登录。
func (h *Handler) ChangeUserPassword(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req UserPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	if err := h.UserAuthService.ChangePassword(uid, req.OldPassword, req.NewPassword); err != nil {
		respondWithMappedError(c, err, userPasswordErrorRules, response.CodeInternal, "Failed to change password")
		return
	}
	response.Success(c, gin.H{"changed": true})
}
