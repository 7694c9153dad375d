package api_router

import (
	"net/http"

	"github.com/haierkeys/trade-journal-service/internal/app"
	pkgapp "github.com/haierkeys/trade-journal-service/pkg/app"
	"github.com/haierkeys/trade-journal-service/pkg/code"
	apperrors "github.com/haierkeys/trade-journal-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// UserHandler user API router handler
// UserHandler 用户 API 路由处理器
type UserHandler struct {
	*Handler
}

// NewUserHandler creates UserHandler instance
// NewUserHandler 创建 UserHandler 实例
func NewUserHandler(a *app.App) *UserHandler {
	return &UserHandler{Handler: NewHandler(a)}
}

// Me current user, 401 when not logged in
// @Summary Current user
// @Tags User
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.UserDTO} "Success"
// @Failure 401 {object} pkgapp.Res "Not authenticated"
// @Router /api/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	uid := pkgapp.GetUID(c)
	if uid == "" {
		response.ToResponseWithStatus(http.StatusUnauthorized, code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	userDTO, err := h.App.UserService.GetInfo(ctx, uid)
	if err != nil {
		h.logError(ctx, "UserHandler.Me", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(userDTO))
}

// Status onboarding status and where the frontend should go next
// @Summary User onboarding status
// @Tags User
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.UserStatusDTO} "Success"
// @Router /api/user/status [get]
func (h *UserHandler) Status(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	uid := pkgapp.GetUID(c)
	if uid == "" {
		response.ToResponseWithStatus(http.StatusUnauthorized, code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	status, err := h.App.UserService.GetStatus(ctx, uid)
	if err != nil {
		h.logError(ctx, "UserHandler.Status", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(status))
}
