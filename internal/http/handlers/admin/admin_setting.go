package admin

import (
	"strings"

	"github.com/delicute/delicute-api/internal/constants"
	"github.com/delicute/delicute-api/internal/http/response"
	"github.com/delicute/delicute-api/internal/service"

	"github.com/gin-gonic/gin"
)

// SettingUpdateRequest 设置更新请求
type SettingUpdateRequest struct {
	Value map[string]interface{} `json:"value" binding:"required"`
}

// TestEmailRequest 测试邮件请求
type TestEmailRequest struct {
	To      string `json:"to" binding:"required"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// GetSetting 读取单个设置键
func (h *Handler) GetSetting(c *gin.Context) {
	key := strings.ToLower(strings.TrimSpace(c.Param("key")))
	if key == "" {
		respondError(c, response.CodeBadRequest, "Setting key is required", nil)
		return
	}

	value, err := h.SettingService.GetByKey(key)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load setting", err)
		return
	}
	response.Success(c, gin.H{"key": key, "value": value})
}

// UpdateSetting 覆盖写入单个设置键
// 仅允许白名单内的键（site/order/wechatpay/smtp）。
func (h *Handler) UpdateSetting(c *gin.Context) {
	key := strings.ToLower(strings.TrimSpace(c.Param("key")))
	var req SettingUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	value, err := h.SettingService.Update(key, req.Value)
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrSettingKeyInvalid, code: response.CodeBadRequest, msg: "Setting key is not supported"},
		}, response.CodeInternal, "Failed to update setting")
		return
	}

	// SMTP 配置热更新，无需重启
	if key == constants.SettingKeySMTP && h.EmailService != nil {
		h.ReloadEmailConfig()
	}
	response.Success(c, gin.H{"key": key, "value": value})
}

// SendTestEmail 发送测试邮件验证 SMTP 配置
func (h *Handler) SendTestEmail(c *gin.Context) {
	var req TestEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	if err := h.EmailService.SendCustomEmail(req.To, req.Subject, req.Body); err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrEmailServiceDisabled, code: response.CodeBadRequest, msg: "Email service is disabled"},
			{target: service.ErrEmailServiceNotConfigured, code: response.CodeBadRequest, msg: "Email service is not configured"},
		}, response.CodeInternal, "Failed to send test email")
		return
	}
	response.Success(c, gin.H{"sent": true})
}
