package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mikolajradlinski-prog/stand-dashboard/internal/dto"
	"github.com/mikolajradlinski-prog/stand-dashboard/internal/service"
	"github.com/mikolajradlinski-prog/stand-dashboard/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportMonthCSV 导出月度登记表 CSV
// GET /api/v1/export/month.csv?anchor=YYYY-MM-DD&building=ALL
func (h *ExportHandler) ExportMonthCSV(c *gin.Context) {
	var q dto.CalendarQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	file, err := h.exportSvc.MonthCSV(c.Request.Context(), &q)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}

// ExportMonthXLSX 导出月度登记表 Excel
// GET /api/v1/export/month.xlsx?anchor=YYYY-MM-DD&building=ALL
func (h *ExportHandler) ExportMonthXLSX(c *gin.Context) {
	var q dto.CalendarQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	file, err := h.exportSvc.MonthXLSX(c.Request.Context(), &q)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}

// ExportMonthICS 导出月度登记表 iCalendar
// GET /api/v1/export/month.ics?anchor=YYYY-MM-DD&building=ALL
func (h *ExportHandler) ExportMonthICS(c *gin.Context) {
	var q dto.CalendarQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	file, err := h.exportSvc.MonthICS(c.Request.Context(), &q)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	if handleSnapshotError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrExportGenerateFail):
		response.Error(c, http.StatusInternalServerError, 22001, err.Error())
	default:
		response.InternalError(c)
	}
}
