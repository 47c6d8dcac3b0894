// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - auth.UserStore: Credential store keyed by unique email (internal/auth/service.go)
//   - http.ListingStore: CRUD for supplies, volunteers, comments, testimonials (internal/http/stores.go)
//   - http.StatsStore: Counts and grouped supply totals (internal/http/stores.go)
//   - audit.Repository: Audit event persistence (internal/audit/service.go)
//   - http.Pinger: Backend health (internal/http/stores.go)
//
// Every data access interface has two implementations: a gorm/SQLite repository
// under internal/database/ and a MongoDB repository under internal/database/mongodb/.
// The entrypoint picks one backend and injects it.
//
// ## Auth Interfaces
//
//   - auth.TokenVerifier: Bearer token validation used by the middleware
//   - auth.AuditLogger: Non-blocking audit sink used by the auth controller
//
// ## Background Work Interfaces
//
//   - tasks.AuditEventCleaner: Retention cleanup run by the task queue
//   - scheduler.CleanupEnqueuer: Queues cleanup from the cron scheduler
//   - http.JobSchedule: Cron schedule state reported by /health
//
// # Adding a New Listing Kind
//
//  1. Define the entity in internal/entities/ with pointer-receiver
//     GetID, SetID, SetCreatedAt and Fields methods.
//
//  2. Add it to database.Models so SQLite migrates it.
//
//  3. Build both repositories in entrypoint/backend.go:
//
//     listings.NewRepository[entities.Donor](db.DB)
//     mongodb.NewListingsRepository[entities.Donor](mdb, "donors")
//
//  4. Register routes in router.go:
//
//     NewListingsController(stores.Donors, "donor").RegisterRoutes(routes, CollectionRoutes("/donors"))
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
