package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 看板服务指标
var (
	// ── HTTP ──
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stand_http_requests_total",
			Help: "HTTP 请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stand_http_request_duration_seconds",
			Help:    "HTTP 请求耗时（秒）",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// ── 快照 ──
	SnapshotRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stand_snapshot_refresh_total",
			Help: "快照刷新次数",
		},
		[]string{"source", "status"},
	)

	SnapshotEntities = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "stand_snapshot_entities",
			Help: "当前快照中的实体数量",
		},
		[]string{"kind"},
	)

	SnapshotLoadedAt = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stand_snapshot_loaded_timestamp_seconds",
			Help: "当前快照加载时间（Unix 秒）",
		},
	)

	// ── 导出 ──
	ExportRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stand_export_rows_total",
			Help: "导出的数据行数（不含表头）",
		},
		[]string{"format"},
	)
)

// RecordHTTPRequest 记录一次 HTTP 请求
func RecordHTTPRequest(method, path string, status int, d time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// RecordSnapshotRefresh 记录快照刷新结果
func RecordSnapshotRefresh(source string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	SnapshotRefreshTotal.WithLabelValues(source, status).Inc()
}

// SetSnapshotSize 更新当前快照的实体数量与加载时间
func SetSnapshotSize(buildings, blackouts, bookings int, loadedAt time.Time) {
	SnapshotEntities.WithLabelValues("buildings").Set(float64(buildings))
	SnapshotEntities.WithLabelValues("blackouts").Set(float64(blackouts))
	SnapshotEntities.WithLabelValues("bookings").Set(float64(bookings))
	SnapshotLoadedAt.Set(float64(loadedAt.Unix()))
}

// RecordExport 记录导出行数
func RecordExport(format string, rows int) {
	ExportRowsTotal.WithLabelValues(format).Add(float64(rows))
}
