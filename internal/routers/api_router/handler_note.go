package api_router

import (
	"github.com/haierkeys/trade-journal-service/internal/app"
	"github.com/haierkeys/trade-journal-service/internal/dto"
	pkgapp "github.com/haierkeys/trade-journal-service/pkg/app"
	"github.com/haierkeys/trade-journal-service/pkg/code"
	apperrors "github.com/haierkeys/trade-journal-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NoteHandler 笔记格式化 API 路由处理器
type NoteHandler struct {
	*Handler
}

// NewNoteHandler 创建 NoteHandler 实例
func NewNoteHandler(a *app.App) *NoteHandler {
	return &NoteHandler{Handler: NewHandler(a)}
}

// Preview 按 renderAs 格式化笔记内容，不保存
// @Summary Preview a formatted note
// @Tags Note
// @Accept json
// @Produce json
// @Param params body dto.NotePreviewRequest true "Preview Parameters"
// @Success 200 {object} pkgapp.Res{data=note.Content} "Success"
// @Router /api/note/preview [post]
func (h *NoteHandler) Preview(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NotePreviewRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Warn("NoteHandler.Preview.BindAndValid errs", zap.Error(errs))
		apperrors.ErrorResponse(c, code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()))
		return
	}

	ctx := c.Request.Context()
	content, err := h.App.NoteService.Preview(ctx, params)
	if err != nil {
		h.logError(ctx, "NoteHandler.Preview", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(content))
}
