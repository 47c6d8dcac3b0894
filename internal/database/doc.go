// Package database provides the SQLite data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, ping
//	├── users/           # Credential store (users keyed by unique email)
//	├── listings/        # Generic CRUD for supplies, volunteers, comments, testimonials
//	├── stats/           # Counts and grouped supply totals
//	├── audit/           # Auth audit events and retention cleanup
//	└── mongodb/         # The same repositories backed by MongoDB
//
// # Using Sub-packages
//
//	// Initialize database connection
//	db, err := database.NewDatabase("./foodsphere.db")
//
//	// Create domain-specific repositories
//	usersRepo := users.NewRepository(db.DB)
//	supplies := listings.NewRepository(db.DB, entities.Supplies)
//
// Errors from gorm are translated (TranslateError), so a unique index
// violation surfaces as gorm.ErrDuplicatedKey and repositories report it
// as entities.ErrDuplicate.
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Add the entity to Models so it is migrated (listing collections go in
//     entities.ListingCollections instead)
//  5. Add compile-time interface check in internal/interfaces
package database
