package admin

import (
	"github.com/delicute/delicute-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// RoleRequest 角色创建请求
type RoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// RolePolicyRequest 角色授权请求
type RolePolicyRequest struct {
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

// AdminRolesRequest 管理员角色绑定请求
type AdminRolesRequest struct {
	Roles []string `json:"roles" binding:"required"`
}

// GetRoles 获取角色列表
func (h *Handler) GetRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load roles", err)
		return
	}
	response.Success(c, gin.H{"roles": roles})
}

// CreateRole 创建角色
func (h *Handler) CreateRole(c *gin.Context) {
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	role, err := h.AuthzService.EnsureRole(req.Role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "Role name is invalid", err)
		return
	}
	response.Success(c, gin.H{"role": role})
}

// DeleteRole 删除角色及其授权
func (h *Handler) DeleteRole(c *gin.Context) {
	if err := h.AuthzService.DeleteRole(c.Param("role")); err != nil {
		respondError(c, response.CodeBadRequest, "Failed to delete role", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetRolePolicies 获取角色授权列表
func (h *Handler) GetRolePolicies(c *gin.Context) {
	policies, err := h.AuthzService.GetRolePolicies(c.Param("role"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "Failed to load role policies", err)
		return
	}
	response.Success(c, gin.H{"policies": policies})
}

// GrantRolePolicy 为角色授权
func (h *Handler) GrantRolePolicy(c *gin.Context) {
	var req RolePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	if err := h.AuthzService.GrantRolePolicy(c.Param("role"), req.Object, req.Action); err != nil {
		respondError(c, response.CodeBadRequest, "Failed to grant policy", err)
		return
	}
	response.Success(c, gin.H{"granted": true})
}

// RevokeRolePolicy 撤销角色授权
func (h *Handler) RevokeRolePolicy(c *gin.Context) {
	var req RolePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	if err := h.AuthzService.RevokeRolePolicy(c.Param("role"), req.Object, req.Action); err != nil {
		respondError(c, response.CodeBadRequest, "Failed to revoke policy", err)
		return
	}
	response.Success(c, gin.H{"revoked": true})
}

// GetAdminRoles 获取管理员绑定的角色
func (h *Handler) GetAdminRoles(c *gin.Context) {
	adminID, ok := parseIDParam(c)
	if !ok {
		return
	}
	roles, err := h.AuthzService.GetAdminRoles(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load admin roles", err)
		return
	}
	response.Success(c, gin.H{"roles": roles})
}

// SetAdminRoles 重设管理员绑定的角色
func (h *Handler) SetAdminRoles(c *gin.Context) {
	adminID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req AdminRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}

	if err := h.AuthzService.SetAdminRoles(adminID, req.Roles); err != nil {
		respondError(c, response.CodeBadRequest, "Failed to set admin roles", err)
		return
	}
	response.Success(c, gin.H{"updated": true})
}
