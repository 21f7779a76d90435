package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/mikolajradlinski-prog/stand-dashboard/internal/service"
	apperrors "github.com/mikolajradlinski-prog/stand-dashboard/pkg/errors"
	"github.com/mikolajradlinski-prog/stand-dashboard/pkg/response"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Calendar    *CalendarHandler
	Export      *ExportHandler
	Diagnostics *DiagnosticsHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Calendar:    NewCalendarHandler(svc.Calendar),
		Export:      NewExportHandler(svc.Export),
		Diagnostics: NewDiagnosticsHandler(svc.Diagnostics),
	}
}

// handleSnapshotError 处理各模块共有的快照错误，已写入响应时返回 true
func handleSnapshotError(c *gin.Context, err error) bool {
	if errors.Is(err, apperrors.ErrSnapshotUnavailable) {
		response.ServiceUnavailable(c, 20001, "快照数据尚未加载，请稍后重试")
		return true
	}
	return false
}
