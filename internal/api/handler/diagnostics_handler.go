package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mikolajradlinski-prog/stand-dashboard/internal/service"
	"github.com/mikolajradlinski-prog/stand-dashboard/internal/snapshot"
	"github.com/mikolajradlinski-prog/stand-dashboard/pkg/response"
)

// DiagnosticsHandler 诊断模块 HTTP 处理器
type DiagnosticsHandler struct {
	diagSvc service.DiagnosticsService
}

// NewDiagnosticsHandler 创建 DiagnosticsHandler
func NewDiagnosticsHandler(diagSvc service.DiagnosticsService) *DiagnosticsHandler {
	return &DiagnosticsHandler{diagSvc: diagSvc}
}

// GetStats 快照计数
// GET /api/v1/diagnostics/stats
func (h *DiagnosticsHandler) GetStats(c *gin.Context) {
	resp, err := h.diagSvc.Stats(c.Request.Context())
	if err != nil {
		h.handleDiagnosticsError(c, err)
		return
	}
	response.OK(c, resp)
}

// RunSelfTest 快照自检
// GET /api/v1/diagnostics/self-test
func (h *DiagnosticsHandler) RunSelfTest(c *gin.Context) {
	resp, err := h.diagSvc.SelfTest(c.Request.Context())
	if err != nil {
		h.handleDiagnosticsError(c, err)
		return
	}
	response.OK(c, resp)
}

// RefreshSnapshot 立即重新拉取快照
// POST /api/v1/snapshot/refresh
func (h *DiagnosticsHandler) RefreshSnapshot(c *gin.Context) {
	resp, err := h.diagSvc.Refresh(c.Request.Context())
	if err != nil {
		h.handleDiagnosticsError(c, err)
		return
	}
	response.OK(c, resp)
}

func (h *DiagnosticsHandler) handleDiagnosticsError(c *gin.Context, err error) {
	if handleSnapshotError(c, err) {
		return
	}
	switch {
	case errors.Is(err, snapshot.ErrFetchStatus):
		response.BadGateway(c, 20002, "快照源返回错误", err.Error())
	case errors.Is(err, service.ErrRefreshFailed):
		response.ErrorWithDetails(c, http.StatusServiceUnavailable, 20003, "快照刷新失败", err.Error())
	default:
		response.InternalError(c)
	}
}
