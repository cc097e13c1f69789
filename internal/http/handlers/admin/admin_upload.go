package admin

import (
	"github.com/delicute/delicute-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// UploadFile 后台图片上传
// 表单字段 file 为文件本体，scene 决定存储子目录。
func (h *Handler) UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "Upload file is required", err)
		return
	}

	url, err := h.UploadService.SaveFile(file, c.PostForm("scene"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "Upload rejected", err)
		return
	}
	response.Success(c, gin.H{"url": url})
}
