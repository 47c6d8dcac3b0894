package config

// Default paths and names for the storage backends
const (
	// DefaultDatabasePath is the default path for the SQLite database
	DefaultDatabasePath = "./foodsphere.db"

	// DefaultMongoDatabase is the database name the site has always used in MongoDB
	DefaultMongoDatabase = "FoodSphere"
)
