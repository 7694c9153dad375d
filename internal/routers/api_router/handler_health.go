package api_router

import (
	"context"
	"time"

	"github.com/haierkeys/trade-journal-service/internal/app"
	"github.com/haierkeys/trade-journal-service/internal/dto"
	pkgapp "github.com/haierkeys/trade-journal-service/pkg/app"
	"github.com/haierkeys/trade-journal-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	*Handler
}

// NewHealthHandler 创建健康检查处理器实例
func NewHealthHandler(a *app.App) *HealthHandler {
	return &HealthHandler{Handler: NewHandler(a)}
}

// Check 健康检查接口，数据库不可用时 status 为 degraded
// @Summary 健康检查
// @Tags 系统
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.HealthDTO}
// @Router /api/health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	resp := dto.HealthDTO{
		Status:   "ok",
		Database: "connected",
		Uptime:   h.App.Uptime().Truncate(time.Second).String(),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.App.PingDB(ctx); err != nil {
		h.logError(ctx, "HealthHandler.Check", err)
		resp.Status = "degraded"
		resp.Database = "error"
		pkgapp.NewResponse(c).ToResponse(code.Failed.WithData(resp))
		return
	}

	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(resp))
}
