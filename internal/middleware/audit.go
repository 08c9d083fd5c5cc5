package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Harikowshik052/investment-deal-pipeline/pkg/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuditLog is one record of a mutating API request. Together with the
// per-deal activity trail it forms the full audit surface: activities are
// the product-visible history, audit logs the operational one.
type AuditLog struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"column:user_id;index" json:"user_id"`
	Method    string    `gorm:"column:method;type:varchar(10)" json:"method"`
	Path      string    `gorm:"column:path;type:varchar(255)" json:"path"`
	Status    int       `gorm:"column:status" json:"status"`
	ClientIP  string    `gorm:"column:client_ip;type:varchar(45)" json:"client_ip"`
	RequestID string    `gorm:"column:request_id;type:varchar(36)" json:"request_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// AuditLogger writes audit log entries
type AuditLogger struct {
	db *gorm.DB
}

// NewAuditLogger creates a new AuditLogger
func NewAuditLogger(db *gorm.DB) *AuditLogger {
	return &AuditLogger{db: db}
}

// Audit returns a middleware that records every mutating request after it
// completes. Write failures are logged, never surfaced to the client.
func (a *AuditLogger) Audit() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method == "GET" || c.Request.Method == "HEAD" || c.Request.Method == "OPTIONS" {
			return
		}
		if a.db == nil {
			return
		}

		entry := &AuditLog{
			UserID:    GetUserID(c),
			Method:    c.Request.Method,
			Path:      c.FullPath(),
			Status:    c.Writer.Status(),
			ClientIP:  c.ClientIP(),
			RequestID: c.GetString("request_id"),
		}
		if entry.Path == "" {
			entry.Path = c.Request.URL.Path
		}

		if err := a.db.Create(entry).Error; err != nil {
			logger.Warn("audit log write failed: %v", err)
		}
	}
}

// Summary formats an audit entry for operator-facing output
func (e *AuditLog) Summary() string {
	return fmt.Sprintf("%s %s -> %s (user %s)",
		e.Method, e.Path, strconv.Itoa(e.Status), strconv.FormatUint(e.UserID, 10))
}
