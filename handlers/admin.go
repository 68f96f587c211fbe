package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slotly/middleware"
	"slotly/models"
	"slotly/services/auth"
	"slotly/utils"
)

// AdminHandler exposes admin-only role and impersonation management.
type AdminHandler struct {
	Service auth.AuthService
}

func NewAdminHandler(svc auth.AuthService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

// Ping handles GET /api/admin/ping.
func (h *AdminHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GrantRole handles POST /api/admin/users/:id/roles/grant.
func (h *AdminHandler) GrantRole(c *gin.Context) {
	var input struct {
		Role         string `json:"role"`
		BusinessName string `json:"businessName"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, utils.NewBadRequest("Invalid request body"))
		return
	}
	grant, err := h.Service.GrantRole(c.Request.Context(), c.Param("id"), models.Role(input.Role), input.BusinessName)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, grant)
}

// RevokeRole handles POST /api/admin/users/:id/roles/revoke.
func (h *AdminHandler) RevokeRole(c *gin.Context) {
	var input struct {
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, utils.NewBadRequest("Invalid request body"))
		return
	}
	grant, err := h.Service.RevokeRole(c.Request.Context(), c.Param("id"), models.Role(input.Role))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, grant)
}

// Impersonate handles POST /api/admin/users/:id/impersonate.
func (h *AdminHandler) Impersonate(c *gin.Context) {
	identity, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHENTICATED", "message": "Authentication required"})
		return
	}
	resp, err := h.Service.Impersonate(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
