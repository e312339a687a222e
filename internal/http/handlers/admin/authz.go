package admin

import (
	"errors"

	handlershared "github.com/heatspares-next/internal/http/handlers/shared"
	"github.com/heatspares-next/internal/http/response"
	"github.com/heatspares-next/internal/service"

	"github.com/gin-gonic/gin"
)

// RolePolicyRequest addresses one role permission rule.
type RolePolicyRequest struct {
	Role   string `json:"role" binding:"required"`
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

// ListRoles returns every back-office role.
func (h *Handler) ListRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load roles", err)
		return
	}
	response.Success(c, gin.H{"roles": roles})
}

// CreateRole registers a role.
func (h *Handler) CreateRole(c *gin.Context) {
	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	role, err := h.AuthzService.EnsureRole(req.Role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "failed to create role", err)
		return
	}
	response.Success(c, gin.H{"role": role})
}

// DeleteRole removes a role with its policies and member links.
func (h *Handler) DeleteRole(c *gin.Context) {
	role := c.Param("role")
	if err := h.AuthzService.DeleteRole(role); err != nil {
		respondError(c, response.CodeBadRequest, "failed to delete role", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetRolePolicies lists a role's permission rules.
func (h *Handler) GetRolePolicies(c *gin.Context) {
	policies, err := h.AuthzService.GetRolePolicies(c.Param("role"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "failed to load role policies", err)
		return
	}
	response.Success(c, gin.H{"policies": policies})
}

// GrantRolePolicy adds a permission rule to a role.
func (h *Handler) GrantRolePolicy(c *gin.Context) {
	var req RolePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	if err := h.AuthzService.GrantRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondError(c, response.CodeBadRequest, "failed to grant policy", err)
		return
	}
	response.Success(c, gin.H{"granted": true})
}

// RevokeRolePolicy removes a permission rule from a role.
func (h *Handler) RevokeRolePolicy(c *gin.Context) {
	var req RolePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	if err := h.AuthzService.RevokeRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondError(c, response.CodeBadRequest, "failed to revoke policy", err)
		return
	}
	response.Success(c, gin.H{"revoked": true})
}

// GetAdminRoles lists the roles assigned to an admin account.
func (h *Handler) GetAdminRoles(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	roles, err := h.AuthzService.GetAdminRoles(id)
	if err != nil {
		respondError(c, response.CodeBadRequest, "failed to load admin roles", err)
		return
	}
	response.Success(c, gin.H{"roles": roles})
}

// SetAdminRoles replaces the roles assigned to an admin account.
func (h *Handler) SetAdminRoles(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req struct {
		Roles []string `json:"roles"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	admin, err := h.AdminRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load admin", err)
		return
	}
	if admin == nil {
		response.NotFound(c, "admin not found")
		return
	}
	if err := h.AuthzService.SetAdminRoles(id, req.Roles); err != nil {
		respondError(c, response.CodeBadRequest, "failed to assign roles", err)
		return
	}
	response.Success(c, gin.H{"assigned": true})
}

// CreateAdmin registers a back-office account.
func (h *Handler) CreateAdmin(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required,min=3,max=64"`
		Password string `json:"password" binding:"required,min=8"`
		IsSuper  bool   `json:"is_super"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	admin, err := h.AuthService.CreateAdmin(req.Username, req.Password, req.IsSuper)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			respondError(c, response.CodeConflict, "username already exists", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to create admin", err)
		return
	}
	response.Success(c, gin.H{
		"id":       admin.ID,
		"username": admin.Username,
		"is_super": admin.IsSuper,
	})
}

// ListAdmins returns the back-office account list.
func (h *Handler) ListAdmins(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	admins, total, err := h.AdminRepo.List(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load admins", err)
		return
	}
	out := make([]gin.H, 0, len(admins))
	for _, admin := range admins {
		out = append(out, gin.H{
			"id":            admin.ID,
			"username":      admin.Username,
			"is_super":      admin.IsSuper,
			"last_login_at": admin.LastLoginAt,
			"created_at":    admin.CreatedAt,
		})
	}
	response.SuccessWithPage(c, gin.H{"admins": out}, response.NewPagination(page, pageSize, total))
}
