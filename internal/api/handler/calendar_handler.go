package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/mikolajradlinski-prog/stand-dashboard/internal/dto"
	"github.com/mikolajradlinski-prog/stand-dashboard/internal/service"
	"github.com/mikolajradlinski-prog/stand-dashboard/pkg/response"
)

// CalendarHandler 日历模块 HTTP 处理器
type CalendarHandler struct {
	calendarSvc service.CalendarService
}

// NewCalendarHandler 创建 CalendarHandler
func NewCalendarHandler(calendarSvc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc}
}

// ListBuildings 获取建筑列表（筛选下拉框）
// GET /api/v1/buildings
func (h *CalendarHandler) ListBuildings(c *gin.Context) {
	resp, err := h.calendarSvc.Buildings(c.Request.Context())
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetWeek 周视图（周一至周五，按建筑分列）
// GET /api/v1/calendar/week?anchor=YYYY-MM-DD&building=ALL
func (h *CalendarHandler) GetWeek(c *gin.Context) {
	var q dto.CalendarQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	resp, err := h.calendarSvc.Week(c.Request.Context(), &q)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetMonth 月视图（42 格）
// GET /api/v1/calendar/month?anchor=YYYY-MM-DD&building=ALL
func (h *CalendarHandler) GetMonth(c *gin.Context) {
	var q dto.CalendarQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	resp, err := h.calendarSvc.Month(c.Request.Context(), &q)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetDay 单日明细（按建筑分组）
// GET /api/v1/calendar/days/:date?building=ALL
func (h *CalendarHandler) GetDay(c *gin.Context) {
	var q dto.DayQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	resp, err := h.calendarSvc.Day(c.Request.Context(), c.Param("date"), &q)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}
	response.OK(c, resp)
}

// Navigate 视图翻页
// GET /api/v1/calendar/navigate?anchor=YYYY-MM-DD&view=week|month&delta=1
func (h *CalendarHandler) Navigate(c *gin.Context) {
	var q dto.NavigateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	resp, err := h.calendarSvc.Navigate(c.Request.Context(), &q)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}
	response.OK(c, resp)
}

func (h *CalendarHandler) handleCalendarError(c *gin.Context, err error) {
	if handleSnapshotError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 21001, err.Error())
	default:
		response.InternalError(c)
	}
}
