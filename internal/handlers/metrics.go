package handlers

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/huangang/collabhub/internal/models"
	"github.com/huangang/collabhub/internal/services"
	"gorm.io/gorm"
)

var startTime = time.Now()

type MetricsHandler struct {
	db    *gorm.DB
	queue services.TaskQueue
}

func NewMetricsHandler(db *gorm.DB, queue services.TaskQueue) *MetricsHandler {
	return &MetricsHandler{db: db, queue: queue}
}

type statusCount struct {
	Status string
	Total  int64
}

// Metrics returns Prometheus-compatible text format metrics.
// GET /metrics
func (h *MetricsHandler) Metrics(c *gin.Context) {
	var b strings.Builder

	// -- Runtime metrics --
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	writeGauge(&b, "collabhub_uptime_seconds", "Time since server start in seconds", time.Since(startTime).Seconds())
	writeGauge(&b, "collabhub_goroutines", "Number of active goroutines", float64(runtime.NumGoroutine()))
	writeGauge(&b, "collabhub_memory_alloc_bytes", "Current heap allocation in bytes", float64(m.Alloc))
	writeGauge(&b, "collabhub_gc_runs_total", "Total number of GC runs", float64(m.NumGC))

	// -- Database metrics --
	if sqlDB, err := h.db.DB(); err == nil {
		stats := sqlDB.Stats()
		writeGauge(&b, "collabhub_db_open_connections", "Number of open DB connections", float64(stats.OpenConnections))
		writeGauge(&b, "collabhub_db_in_use_connections", "Number of in-use DB connections", float64(stats.InUse))
	}

	// -- Queue metrics --
	queueAsync := 0.0
	if h.queue != nil && h.queue.IsAsync() {
		queueAsync = 1.0
	}
	writeGauge(&b, "collabhub_queue_async_enabled", "Whether async queue (Redis) is enabled (1=yes, 0=no)", queueAsync)

	// -- Domain metrics --
	ctx := c.Request.Context()

	var projects []statusCount
	h.db.WithContext(ctx).Model(&models.Project{}).
		Select("status, COUNT(*) AS total").Group("status").Scan(&projects)
	writeLabeled(&b, "collabhub_projects", "Number of projects by status", "status", projects)

	var members []statusCount
	h.db.WithContext(ctx).Model(&models.ProjectMember{}).
		Where("role = ?", models.MemberRoleMember).
		Select("status, COUNT(*) AS total").Group("status").Scan(&members)
	writeLabeled(&b, "collabhub_memberships", "Number of member applications by status", "status", members)

	var unread int64
	h.db.WithContext(ctx).Model(&models.Notification{}).Where("read_at IS NULL").Count(&unread)
	writeGauge(&b, "collabhub_notifications_unread", "Number of unread notifications", float64(unread))

	c.Data(200, "text/plain; version=0.0.4; charset=utf-8", []byte(b.String()))
}

func writeGauge(b *strings.Builder, name, help string, value float64) {
	fmt.Fprintf(b, "# HELP %s %s\n", name, help)
	fmt.Fprintf(b, "# TYPE %s gauge\n", name)
	fmt.Fprintf(b, "%s %g\n\n", name, value)
}

func writeLabeled(b *strings.Builder, name, help, label string, rows []statusCount) {
	fmt.Fprintf(b, "# HELP %s %s\n", name, help)
	fmt.Fprintf(b, "# TYPE %s gauge\n", name)
	for _, r := range rows {
		fmt.Fprintf(b, "%s{%s=%q} %d\n", name, label, r.Status, r.Total)
	}
	b.WriteString("\n")
}
