package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mikolajradlinski-prog/stand-dashboard/internal/dto"
	"github.com/mikolajradlinski-prog/stand-dashboard/internal/service"
	"github.com/mikolajradlinski-prog/stand-dashboard/internal/snapshot"
	apperrors "github.com/mikolajradlinski-prog/stand-dashboard/pkg/errors"
	"github.com/mikolajradlinski-prog/stand-dashboard/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock CalendarService ──

type mockCalendarService struct {
	buildings *dto.BuildingListResponse
	week      *dto.WeekResponse
	month     *dto.MonthResponse
	day       *dto.DayDetailResponse
	navigate  *dto.NavigateResponse
	err       error

	lastQuery *dto.CalendarQuery
	lastDate  string
	lastNav   *dto.NavigateQuery
}

func (m *mockCalendarService) Buildings(_ context.Context) (*dto.BuildingListResponse, error) {
	return m.buildings, m.err
}
func (m *mockCalendarService) Week(_ context.Context, q *dto.CalendarQuery) (*dto.WeekResponse, error) {
	m.lastQuery = q
	return m.week, m.err
}
func (m *mockCalendarService) Month(_ context.Context, q *dto.CalendarQuery) (*dto.MonthResponse, error) {
	m.lastQuery = q
	return m.month, m.err
}
func (m *mockCalendarService) Day(_ context.Context, date string, _ *dto.DayQuery) (*dto.DayDetailResponse, error) {
	m.lastDate = date
	return m.day, m.err
}
func (m *mockCalendarService) Navigate(_ context.Context, q *dto.NavigateQuery) (*dto.NavigateResponse, error) {
	m.lastNav = q
	return m.navigate, m.err
}

// ── Mock ExportService ──

type mockExportService struct {
	file *service.ExportFile
	err  error
}

func (m *mockExportService) MonthCSV(_ context.Context, _ *dto.CalendarQuery) (*service.ExportFile, error) {
	return m.file, m.err
}
func (m *mockExportService) MonthXLSX(_ context.Context, _ *dto.CalendarQuery) (*service.ExportFile, error) {
	return m.file, m.err
}
func (m *mockExportService) MonthICS(_ context.Context, _ *dto.CalendarQuery) (*service.ExportFile, error) {
	return m.file, m.err
}

// ── Mock DiagnosticsService ──

type mockDiagnosticsService struct {
	stats    *dto.SnapshotStatsResponse
	selfTest *dto.SelfTestResponse
	refresh  *dto.SnapshotInfo
	err      error
}

func (m *mockDiagnosticsService) Stats(_ context.Context) (*dto.SnapshotStatsResponse, error) {
	return m.stats, m.err
}
func (m *mockDiagnosticsService) SelfTest(_ context.Context) (*dto.SelfTestResponse, error) {
	return m.selfTest, m.err
}
func (m *mockDiagnosticsService) Refresh(_ context.Context) (*dto.SnapshotInfo, error) {
	return m.refresh, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func serve(r *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func calendarRouter(m *mockCalendarService) *gin.Engine {
	h := NewCalendarHandler(m)
	r := gin.New()
	r.GET("/buildings", h.ListBuildings)
	r.GET("/week", h.GetWeek)
	r.GET("/month", h.GetMonth)
	r.GET("/days/:date", h.GetDay)
	r.GET("/navigate", h.Navigate)
	return r
}

// ═══════════════════════════════════════════════════════════
// CalendarHandler Tests
// ═══════════════════════════════════════════════════════════

func TestCalendarHandler_GetWeek_Success(t *testing.T) {
	mock := &mockCalendarService{week: &dto.WeekResponse{Title: "20.10 – 24.10"}}
	w := serve(calendarRouter(mock), "GET", "/week?anchor=2025-10-22&building=J")

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
	if mock.lastQuery.Anchor != "2025-10-22" || mock.lastQuery.GetBuilding() != "J" {
		t.Errorf("查询参数未透传: %+v", mock.lastQuery)
	}
	resp := parseResponse(w)
	data, _ := resp.Data.(map[string]interface{})
	if resp.Code != 0 || data["title"] != "20.10 – 24.10" {
		t.Errorf("响应错误: %+v", resp)
	}
}

func TestCalendarHandler_BadAnchor(t *testing.T) {
	mock := &mockCalendarService{}
	r := calendarRouter(mock)
	for _, target := range []string{"/week?anchor=22.10.2025", "/month?anchor=2025-13-01", "/month?building=" + strings.Repeat("x", 33)} {
		w := serve(r, "GET", target)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: 期望 400，实际 %d", target, w.Code)
		}
		if resp := parseResponse(w); resp.Code != 10001 {
			t.Errorf("%s: 期望业务码 10001，实际 %d", target, resp.Code)
		}
	}
	if mock.lastQuery != nil {
		t.Error("参数校验失败时不应调用服务")
	}
}

func TestCalendarHandler_DefaultBuilding(t *testing.T) {
	mock := &mockCalendarService{month: &dto.MonthResponse{}}
	if w := serve(calendarRouter(mock), "GET", "/month"); w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
	if mock.lastQuery.GetBuilding() != "ALL" {
		t.Errorf("默认筛选应为 ALL，实际 %s", mock.lastQuery.GetBuilding())
	}
}

func TestCalendarHandler_SnapshotUnavailable(t *testing.T) {
	mock := &mockCalendarService{err: apperrors.ErrSnapshotUnavailable}
	w := serve(calendarRouter(mock), "GET", "/buildings")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("期望 503，实际 %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 20001 {
		t.Errorf("期望业务码 20001，实际 %d", resp.Code)
	}
}

func TestCalendarHandler_GetDay(t *testing.T) {
	mock := &mockCalendarService{day: &dto.DayDetailResponse{Date: "2025-10-20"}}
	w := serve(calendarRouter(mock), "GET", "/days/2025-10-20")
	if w.Code != http.StatusOK || mock.lastDate != "2025-10-20" {
		t.Errorf("期望 200 且日期透传，实际 %d %s", w.Code, mock.lastDate)
	}

	mock.err = service.ErrInvalidDate
	w = serve(calendarRouter(mock), "GET", "/days/jutro")
	if w.Code != http.StatusBadRequest {
		t.Errorf("期望 400，实际 %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 21001 {
		t.Errorf("期望业务码 21001，实际 %d", resp.Code)
	}
}

func TestCalendarHandler_Navigate(t *testing.T) {
	mock := &mockCalendarService{navigate: &dto.NavigateResponse{View: "week", Anchor: "2025-10-29"}}
	r := calendarRouter(mock)

	w := serve(r, "GET", "/navigate?anchor=2025-10-22&view=week&delta=1")
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
	if mock.lastNav.View != "week" || mock.lastNav.Delta != 1 {
		t.Errorf("参数未透传: %+v", mock.lastNav)
	}

	for _, target := range []string{"/navigate?view=year", "/navigate?delta=500", "/navigate?delta=abc"} {
		if w := serve(r, "GET", target); w.Code != http.StatusBadRequest {
			t.Errorf("%s: 期望 400，实际 %d", target, w.Code)
		}
	}
}

func TestCalendarHandler_InternalError(t *testing.T) {
	mock := &mockCalendarService{err: errors.New("boom")}
	if w := serve(calendarRouter(mock), "GET", "/week"); w.Code != http.StatusInternalServerError {
		t.Errorf("期望 500，实际 %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_MonthCSV(t *testing.T) {
	mock := &mockExportService{file: &service.ExportFile{
		Filename:    "rejestr_miesiac_2025_10_J.csv",
		ContentType: service.ContentTypeCSV,
		Data:        []byte(`"date","start"`),
	}}
	h := NewExportHandler(mock)
	r := gin.New()
	r.GET("/export/month.csv", h.ExportMonthCSV)

	w := serve(r, "GET", "/export/month.csv?anchor=2025-10-01&building=J")
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
	if got := w.Header().Get("Content-Disposition"); got != "attachment; filename*=UTF-8''rejestr_miesiac_2025_10_J.csv" {
		t.Errorf("Content-Disposition 错误: %s", got)
	}
	if w.Body.String() != `"date","start"` {
		t.Errorf("响应体错误: %s", w.Body.String())
	}
}

func TestExportHandler_MonthICS(t *testing.T) {
	mock := &mockExportService{file: &service.ExportFile{
		Filename:    "rejestr_miesiac_2025_10.ics",
		ContentType: service.ContentTypeICS,
		Data:        []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"),
	}}
	h := NewExportHandler(mock)
	r := gin.New()
	r.GET("/export/month.ics", h.ExportMonthICS)

	w := serve(r, "GET", "/export/month.ics?anchor=2025-10-01")
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
	if got := w.Header().Get("Content-Type"); got != service.ContentTypeICS {
		t.Errorf("Content-Type 错误: %s", got)
	}
	if got := w.Header().Get("Content-Disposition"); got != "attachment; filename*=UTF-8''rejestr_miesiac_2025_10.ics" {
		t.Errorf("Content-Disposition 错误: %s", got)
	}

	if w := serve(r, "GET", "/export/month.ics?anchor=2025-13-01"); w.Code != http.StatusBadRequest {
		t.Errorf("非法 anchor 期望 400，实际 %d", w.Code)
	}
}

func TestExportHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   int
	}{
		{"快照未加载", apperrors.ErrSnapshotUnavailable, http.StatusServiceUnavailable, 20001},
		{"生成失败", service.ErrExportGenerateFail, http.StatusInternalServerError, 22001},
		{"未知错误", errors.New("x"), http.StatusInternalServerError, 50000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewExportHandler(&mockExportService{err: tt.err})
			r := gin.New()
			r.GET("/export/month.xlsx", h.ExportMonthXLSX)

			w := serve(r, "GET", "/export/month.xlsx")
			if w.Code != tt.status {
				t.Errorf("期望 %d，实际 %d", tt.status, w.Code)
			}
			if resp := parseResponse(w); resp.Code != tt.code {
				t.Errorf("期望业务码 %d，实际 %d", tt.code, resp.Code)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// DiagnosticsHandler Tests
// ═══════════════════════════════════════════════════════════

func TestDiagnosticsHandler_SelfTest(t *testing.T) {
	mock := &mockDiagnosticsService{selfTest: &dto.SelfTestResponse{Passed: true}}
	h := NewDiagnosticsHandler(mock)
	r := gin.New()
	r.GET("/self-test", h.RunSelfTest)

	w := serve(r, "GET", "/self-test")
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
	data, _ := parseResponse(w).Data.(map[string]interface{})
	if data["passed"] != true {
		t.Errorf("响应错误: %v", data)
	}
}

func TestDiagnosticsHandler_RefreshErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   int
	}{
		{"上游状态码", errors.Join(service.ErrRefreshFailed, &snapshot.StatusError{Code: 500}), http.StatusBadGateway, 20002},
		{"网络错误", errors.Join(service.ErrRefreshFailed, errors.New("timeout")), http.StatusServiceUnavailable, 20003},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewDiagnosticsHandler(&mockDiagnosticsService{err: tt.err})
			r := gin.New()
			r.POST("/refresh", h.RefreshSnapshot)

			w := serve(r, "POST", "/refresh")
			if w.Code != tt.status {
				t.Errorf("期望 %d，实际 %d", tt.status, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.code || resp.Details == "" {
				t.Errorf("期望业务码 %d 且带详情，实际 %+v", tt.code, resp)
			}
		})
	}
}

func TestDiagnosticsHandler_Stats(t *testing.T) {
	mock := &mockDiagnosticsService{stats: &dto.SnapshotStatsResponse{Bookings: 6}}
	h := NewDiagnosticsHandler(mock)
	r := gin.New()
	r.GET("/stats", h.GetStats)

	w := serve(r, "GET", "/stats")
	data, _ := parseResponse(w).Data.(map[string]interface{})
	if w.Code != http.StatusOK || data["bookings"] != float64(6) {
		t.Errorf("响应错误: %d %v", w.Code, data)
	}
}
