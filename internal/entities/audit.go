package entities

import "time"

type AuditEventType string

const (
	AuditEventRegister AuditEventType = "register"
	AuditEventLogin    AuditEventType = "login"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

type AuditEvent struct {
	ID          string         `gorm:"primaryKey;size:24" bson:"-" json:"_id"`
	EventType   AuditEventType `gorm:"index;size:50" bson:"eventType" json:"eventType"`
	Action      string         `gorm:"size:100" bson:"action" json:"action"`           // e.g., "register", "login_invalid_credentials"
	Description string         `gorm:"size:500" bson:"description" json:"description"` // Human-readable summary
	Email       string         `gorm:"index;size:255" bson:"email" json:"email,omitempty"`
	IPAddress   string         `gorm:"size:45" bson:"ipAddress" json:"ipAddress,omitempty"`
	UserAgent   string         `gorm:"size:500" bson:"userAgent" json:"userAgent,omitempty"`
	Status      AuditStatus    `gorm:"size:20" bson:"status" json:"status"`
	CreatedAt   time.Time      `gorm:"index" bson:"createdAt" json:"createdAt"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
