package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"database/sql"
	"database/sql/driver"

	"github.com/foodsphere/server/internal/audit"
	"github.com/foodsphere/server/internal/auth"
	"github.com/foodsphere/server/internal/database"
	dbaudit "github.com/foodsphere/server/internal/database/audit"
	"github.com/foodsphere/server/internal/database/listings"
	"github.com/foodsphere/server/internal/database/mongodb"
	"github.com/foodsphere/server/internal/database/stats"
	"github.com/foodsphere/server/internal/database/users"
	"github.com/foodsphere/server/internal/entities"
	"github.com/foodsphere/server/internal/http"
	"github.com/foodsphere/server/internal/scheduler"
	"github.com/foodsphere/server/internal/tasks"
)

// =============================================================================
// Entities
// =============================================================================

var _ driver.Valuer = entities.Document(nil)
var _ sql.Scanner = (*entities.Document)(nil)

// =============================================================================
// Credential Store
// =============================================================================

var _ auth.UserStore = (*users.Repository)(nil)
var _ auth.UserStore = (*mongodb.UsersRepository)(nil)

// TokenVerifier implementations
var _ auth.TokenVerifier = (*auth.Service)(nil)

// =============================================================================
// Listing and Stats Stores
// =============================================================================

var _ http.ListingStore = (*listings.Repository)(nil)
var _ http.ListingStore = (*mongodb.ListingsRepository)(nil)

var _ http.StatsStore = (*stats.Repository)(nil)
var _ http.StatsStore = (*mongodb.StatsRepository)(nil)

// Pinger implementations
var _ http.Pinger = (*database.Database)(nil)
var _ http.Pinger = (*mongodb.Database)(nil)

// =============================================================================
// Audit Trail
// =============================================================================

var _ audit.Repository = (*dbaudit.Repository)(nil)
var _ audit.Repository = (*mongodb.AuditRepository)(nil)
var _ auth.AuditLogger = (*audit.Service)(nil)
var _ http.AuditReader = (*audit.Service)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ tasks.AuditEventCleaner = (*audit.Service)(nil)
var _ scheduler.CleanupEnqueuer = (*tasks.Client)(nil)
var _ http.JobSchedule = (*scheduler.AuditCleanupScheduler)(nil)
