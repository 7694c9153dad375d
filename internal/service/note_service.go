package service

import (
	"context"
	"errors"

	"github.com/haierkeys/trade-journal-service/internal/dto"
	"github.com/haierkeys/trade-journal-service/pkg/code"
	"github.com/haierkeys/trade-journal-service/pkg/note"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var noteFormatTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "note_format_total",
	Help: "Notes passed through the formatter, by requested format and outcome.",
}, []string{"format", "outcome"})

// NoteService 笔记格式化服务
type NoteService interface {
	// Format 按 renderAs 格式化任意笔记值 (字符串、TipTap 对象或已格式化的笔记)
	// renderAs 为空时使用默认格式
	Format(ctx context.Context, value interface{}, renderAs string) (note.Content, error)

	// FormatText 格式化纯文本
	FormatText(ctx context.Context, text string, renderAs note.Format) (note.Content, error)

	// Reformat 读取已存储的笔记，已格式化的笔记原样返回
	Reformat(stored *note.Content) *note.Content

	// Preview 预览接口
	Preview(ctx context.Context, params *dto.NotePreviewRequest) (*note.Content, error)
}

type noteService struct {
	formatter *note.Formatter
	logger    *zap.Logger
	config    *ServiceConfig
}

// NewNoteService 创建 NoteService 实例
func NewNoteService(formatter *note.Formatter, logger *zap.Logger, config *ServiceConfig) NoteService {
	if formatter == nil {
		formatter = note.Default()
	}
	return &noteService{formatter: formatter, logger: logger, config: config}
}

func (s *noteService) Format(ctx context.Context, value interface{}, renderAs string) (note.Content, error) {
	f := s.config.defaultFormat()
	if renderAs != "" {
		parsed, err := note.ParseFormat(renderAs)
		if err != nil {
			noteFormatTotal.WithLabelValues(renderAs, "rejected").Inc()
			return note.Content{}, code.ErrorInvalidRenderFormat.WithDetails(renderAs)
		}
		f = parsed
	}
	return s.format(note.InputFromValue(value), f)
}

func (s *noteService) FormatText(ctx context.Context, text string, renderAs note.Format) (note.Content, error) {
	return s.format(note.RawText(text), renderAs)
}

func (s *noteService) format(in note.Input, renderAs note.Format) (note.Content, error) {
	c, err := s.formatter.FormatInput(in, renderAs)
	if errors.Is(err, note.ErrUnsupportedFormat) {
		noteFormatTotal.WithLabelValues(string(renderAs), "rejected").Inc()
		return note.Content{}, code.ErrorInvalidRenderFormat.WithDetails(string(renderAs))
	}
	if err != nil {
		s.logger.Error("note format failed", zap.String("format", string(renderAs)), zap.Error(err))
		return note.Content{}, code.ErrorServerInternal.WithDetails(err.Error())
	}

	outcome := "formatted"
	switch {
	case c.IsEmpty():
		outcome = "empty"
	case in != nil:
		if _, ok := in.(note.AlreadyFormatted); ok {
			outcome = "passthrough"
		}
	}
	noteFormatTotal.WithLabelValues(string(renderAs), outcome).Inc()
	return c, nil
}

func (s *noteService) Reformat(stored *note.Content) *note.Content {
	if stored == nil {
		return nil
	}
	c, err := s.formatter.FormatInput(note.AlreadyFormatted{Content: *stored}, note.DefaultFormat)
	if err != nil {
		return stored
	}
	return &c
}

func (s *noteService) Preview(ctx context.Context, params *dto.NotePreviewRequest) (*note.Content, error) {
	c, err := s.Format(ctx, params.Content, params.RenderAs)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
