package http

import (
	"github.com/foodsphere/server/internal/auth"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Storage backend repositories
	Stores Stores

	// Authentication
	AuthService *auth.Service
	Auditor     auth.AuditLogger

	// Audit trail reader (optional)
	AuditReader AuditReader

	// Audit retention schedule shown by /health (optional)
	AuditCleanup JobSchedule

	// CORS origins; "*" allows every origin
	AllowedOrigins []string

	// Application info
	Version string
}
