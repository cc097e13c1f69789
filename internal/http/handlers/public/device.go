package public

import (
	"github.com/delicute/delicute-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// DeviceRegisterRequest 注册推送设备请求
type DeviceRegisterRequest struct {
	Platform string `json:"platform" binding:"required"`
	Token    string `json:"token" binding:"required"`
}

// DeviceUnregisterRequest 解绑推送设备请求
type DeviceUnregisterRequest struct {
	Token string `json:"token" binding:"required"`
}

// RegisterDevice 注册/刷新当前用户的推送设备
func (h *Handler) RegisterDevice(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req DeviceRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	device, err := h.NotificationService.RegisterDevice(uid, req.Platform, req.Token)
	if err != nil {
		respondWithMappedError(c, err, deviceErrorRules, response.CodeInternal, "Failed to register device")
		return
	}
	response.Success(c, device)
}

// UnregisterDevice 解绑当前用户的推送设备
func (h *Handler) UnregisterDevice(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req DeviceUnregisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	if err := h.NotificationService.UnregisterDevice(uid, req.Token); err != nil {
		respondWithMappedError(c, err, deviceErrorRules, response.CodeInternal, "Failed to unregister device")
		return
	}
	response.Success(c, gin.H{"removed": true})
}

// ListDevices 获取当前用户已注册的推送设备
func (h *Handler) ListDevices(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	devices, err := h.NotificationService.ListDevices(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load devices", err)
		return
	}
	response.Success(c, gin.H{"devices": devices})
}
